package config

import (
	"errors"
	"fmt"
	"os"
	"path/filepath"
	"strings"
	"time"

	"github.com/spf13/viper"
)

// Config captures the settings labmon needs to reach the operator.
type Config struct {
	OperatorAddr string
	PollInterval time.Duration
	LogLevel     string
	LogFile      string
}

const (
	defaultConfigPath   = "~/.config/labmon/config.toml"
	defaultOperatorAddr = "http://localhost:5000"
	defaultPollInterval = time.Second
	defaultLogLevel     = "info"
	defaultLogFile      = "~/.local/state/labmon/labmon.log"

	// OperatorAddrEnv overrides operator_addr.
	OperatorAddrEnv = "OPERATOR_ADDR"
	envPrefix       = "LABMON"
)

// Load reads the config file at path (or the default location), applies
// environment overrides, and fills in defaults. A missing file is not an error.
func Load(path string) (Config, error) {
	resolved, err := resolvePath(path)
	if err != nil {
		return Config{}, err
	}

	v := viper.New()
	v.SetDefault("operator_addr", defaultOperatorAddr)
	v.SetDefault("poll_interval", defaultPollInterval.String())
	v.SetDefault("log_level", defaultLogLevel)
	v.SetDefault("log_file", defaultLogFile)

	v.SetConfigFile(resolved)
	v.SetConfigType("toml")
	if _, err := os.Stat(resolved); err == nil {
		if err := v.ReadInConfig(); err != nil {
			return Config{}, fmt.Errorf("parse config: %w", err)
		}
	} else if !errors.Is(err, os.ErrNotExist) {
		return Config{}, fmt.Errorf("open config: %w", err)
	}

	v.SetEnvPrefix(envPrefix)
	v.AutomaticEnv()
	if err := v.BindEnv("operator_addr", OperatorAddrEnv, envPrefix+"_OPERATOR_ADDR"); err != nil {
		return Config{}, fmt.Errorf("bind env: %w", err)
	}

	cfg := Config{
		OperatorAddr: strings.TrimSpace(v.GetString("operator_addr")),
		LogLevel:     strings.ToLower(strings.TrimSpace(v.GetString("log_level"))),
		LogFile:      strings.TrimSpace(v.GetString("log_file")),
	}
	if cfg.OperatorAddr == "" {
		cfg.OperatorAddr = defaultOperatorAddr
	}
	if cfg.LogLevel == "" {
		cfg.LogLevel = defaultLogLevel
	}
	if cfg.LogFile == "" {
		cfg.LogFile = defaultLogFile
	}
	cfg.LogFile = mustExpand(cfg.LogFile)

	interval, err := parseInterval(v.GetString("poll_interval"))
	if err != nil {
		return Config{}, err
	}
	cfg.PollInterval = interval

	return cfg, nil
}

func parseInterval(raw string) (time.Duration, error) {
	raw = strings.TrimSpace(raw)
	if raw == "" {
		return defaultPollInterval, nil
	}
	d, err := time.ParseDuration(raw)
	if err != nil {
		return 0, fmt.Errorf("parse poll_interval %q: %w", raw, err)
	}
	if d <= 0 {
		return defaultPollInterval, nil
	}
	return d, nil
}

func resolvePath(path string) (string, error) {
	if strings.TrimSpace(path) == "" {
		return expandPath(defaultConfigPath)
	}
	return expandPath(path)
}

func mustExpand(path string) string {
	expanded, err := expandPath(path)
	if err != nil {
		return path
	}
	return expanded
}

func expandPath(path string) (string, error) {
	trimmed := strings.TrimSpace(path)
	if trimmed == "" {
		return "", fmt.Errorf("path is empty")
	}
	if strings.HasPrefix(trimmed, "~") {
		home, err := os.UserHomeDir()
		if err != nil {
			return "", fmt.Errorf("resolve home dir: %w", err)
		}
		trimmed = filepath.Join(home, strings.TrimPrefix(trimmed, "~"))
	}
	return filepath.Abs(trimmed)
}

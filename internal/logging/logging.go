// Package logging builds the zerolog loggers used by labmon and labsim.
package logging

import (
	"fmt"
	"io"
	"os"
	"path/filepath"
	"strings"
	"time"

	"github.com/rs/zerolog"
)

// ParseLevel maps a config string to a zerolog level, defaulting to info.
func ParseLevel(in string) zerolog.Level {
	switch strings.ToLower(strings.TrimSpace(in)) {
	case "trace":
		return zerolog.TraceLevel
	case "debug":
		return zerolog.DebugLevel
	case "warn", "warning":
		return zerolog.WarnLevel
	case "error":
		return zerolog.ErrorLevel
	default:
		return zerolog.InfoLevel
	}
}

// Console returns a human-readable logger on w.
func Console(w io.Writer, level string) zerolog.Logger {
	return zerolog.New(
		zerolog.ConsoleWriter{Out: w, TimeFormat: time.RFC3339},
	).Level(ParseLevel(level)).With().Timestamp().Logger()
}

// File opens (or creates) path for appending and returns a JSON logger
// writing to it. The TUI owns the terminal, so labmon never logs to stderr.
func File(path, level string) (zerolog.Logger, io.Closer, error) {
	if err := os.MkdirAll(filepath.Dir(path), 0o755); err != nil {
		return zerolog.Nop(), nil, fmt.Errorf("create log dir: %w", err)
	}
	f, err := os.OpenFile(path, os.O_APPEND|os.O_CREATE|os.O_WRONLY, 0o644)
	if err != nil {
		return zerolog.Nop(), nil, fmt.Errorf("open log file: %w", err)
	}
	logger := zerolog.New(f).Level(ParseLevel(level)).With().Timestamp().Logger()
	logger.Info().Str("level", logger.GetLevel().String()).Msg("logging initialized")
	return logger, f, nil
}

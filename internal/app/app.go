package app

import (
	"context"
	"fmt"
	"io"
	"time"

	"github.com/ktnyt/labmon/internal/config"
	"github.com/ktnyt/labmon/internal/logging"
	"github.com/ktnyt/labmon/internal/operator"
	"github.com/ktnyt/labmon/internal/prefs"
	"github.com/ktnyt/labmon/internal/state"
	"github.com/ktnyt/labmon/internal/ui"
)

// Options configure the labmon application.
type Options struct {
	ConfigPath string
	PrefsPath  string        // empty uses default ~/.config/labmon/prefs.toml
	PollEvery  time.Duration // zero uses the configured interval
}

// Run boots the labmon TUI until the context is cancelled or the user quits.
func Run(ctx context.Context, opts Options) error {
	cfg, err := config.Load(opts.ConfigPath)
	if err != nil {
		return fmt.Errorf("load config: %w", err)
	}
	if opts.PollEvery > 0 {
		cfg.PollInterval = opts.PollEvery
	}

	logger, closer, err := logging.File(cfg.LogFile, cfg.LogLevel)
	if err != nil {
		return fmt.Errorf("init logging: %w", err)
	}
	defer func(c io.Closer) { _ = c.Close() }(closer)

	userPrefs, err := prefs.Load(opts.PrefsPath)
	if err != nil {
		logger.Warn().Err(err).Msg("using default preferences")
	}

	client, err := operator.NewClient(
		operator.Config{BaseAddress: cfg.OperatorAddr},
		operator.WithLogger(logger),
	)
	if err != nil {
		return fmt.Errorf("init operator client: %w", err)
	}
	logger.Info().Str("operator", client.BaseURL()).Dur("poll", cfg.PollInterval).Msg("starting labmon")

	ctx, cancel := context.WithCancel(ctx)
	defer cancel()

	store := &state.Store{}
	watcher := NewWatcher(ctx, client, store, cfg.PollInterval, logger)
	defer watcher.Stop()
	watcher.MountArm()

	return ui.Run(ui.Options{
		Context:      ctx,
		API:          client,
		Store:        store,
		Poller:       watcher,
		Logger:       logger,
		LogPath:      cfg.LogFile,
		OperatorAddr: client.BaseURL(),
		Prefs:        userPrefs,
		PrefsPath:    opts.PrefsPath,
	})
}

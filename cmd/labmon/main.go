package main

import (
	"context"
	"flag"
	"fmt"
	"os"
	"os/signal"
	"syscall"

	"github.com/ktnyt/labmon/internal/app"
)

func main() {
	os.Exit(run())
}

func run() int {
	configPath := flag.String("config", "", "override labmon config path (optional)")
	prefsPath := flag.String("prefs", "", "override preferences path (optional)")
	poll := flag.Duration("poll", 0, "device poll interval (optional, defaults to the configured 1s)")
	flag.Parse()

	ctx, cancel := signal.NotifyContext(context.Background(), syscall.SIGINT, syscall.SIGTERM)
	defer cancel()

	opts := app.Options{ConfigPath: *configPath, PrefsPath: *prefsPath}
	if *poll > 0 {
		opts.PollEvery = *poll
	} else if *poll < 0 {
		fmt.Fprintf(os.Stderr, "labmon: -poll must not be negative\n")
		return 2
	}

	if err := app.Run(ctx, opts); err != nil {
		fmt.Fprintf(os.Stderr, "labmon: %v\n", err)
		return 1
	}
	return 0
}

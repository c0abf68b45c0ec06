package main

import (
	"context"
	"errors"
	"flag"
	"fmt"
	"net/http"
	"os"
	"os/signal"
	"strconv"
	"strings"
	"syscall"
	"time"

	"github.com/gin-gonic/gin"

	"github.com/ktnyt/labmon/internal/logging"
	"github.com/ktnyt/labmon/internal/simulator"
)

func main() {
	os.Exit(run())
}

func run() int {
	addr := flag.String("addr", ":5000", "listen address")
	delay := flag.Duration("delay", 5*time.Second, "time the arm takes per operation")
	spots := flag.String("spots", "2,1,1", "comma-separated spot count per station")
	level := flag.String("log-level", "debug", "log level (trace, debug, info, warn, error)")
	flag.Parse()

	logger := logging.Console(os.Stderr, *level)

	cfg := simulator.DefaultConfig()
	cfg.Delay = *delay
	counts, err := parseSpots(*spots)
	if err != nil {
		fmt.Fprintf(os.Stderr, "labsim: %v\n", err)
		return 2
	}
	cfg.Spots = counts

	ctx, cancel := signal.NotifyContext(context.Background(), syscall.SIGINT, syscall.SIGTERM, syscall.SIGHUP)
	defer cancel()

	gin.SetMode(gin.ReleaseMode)
	sim := simulator.New(cfg, logger)
	server := &http.Server{
		Addr:              *addr,
		Handler:           simulator.NewRouter(sim, simulator.DefaultRouterConfig()),
		ReadHeaderTimeout: 5 * time.Second,
	}

	go func() {
		if err := sim.Run(ctx); err != nil && !errors.Is(err, context.Canceled) {
			logger.Error().Err(err).Msg("simulator stopped")
		}
	}()

	errc := make(chan error, 1)
	go func() {
		logger.Info().Str("addr", *addr).Ints("spots", counts).Dur("delay", *delay).Msg("operator simulator listening")
		if err := server.ListenAndServe(); err != nil && !errors.Is(err, http.ErrServerClosed) {
			errc <- err
		}
		close(errc)
	}()

	select {
	case <-ctx.Done():
		logger.Info().Msg("shutdown signal received")
	case err := <-errc:
		if err != nil {
			logger.Error().Err(err).Msg("listen")
			return 1
		}
	}

	shutdownCtx, shutdownCancel := context.WithTimeout(context.Background(), 5*time.Second)
	defer shutdownCancel()
	if err := server.Shutdown(shutdownCtx); err != nil {
		logger.Error().Err(err).Msg("shutdown")
		return 1
	}
	logger.Info().Msg("server stopped")
	return 0
}

// parseSpots reads "2,1,1" into per-station spot counts.
func parseSpots(in string) ([]int, error) {
	var counts []int
	for _, field := range strings.Split(in, ",") {
		field = strings.TrimSpace(field)
		if field == "" {
			continue
		}
		n, err := strconv.Atoi(field)
		if err != nil || n < 0 {
			return nil, fmt.Errorf("invalid spot count %q", field)
		}
		counts = append(counts, n)
	}
	if len(counts) == 0 {
		return nil, fmt.Errorf("no stations in %q", in)
	}
	return counts, nil
}

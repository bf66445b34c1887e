// cinescope-twin serves an in-process stand-in for the Cinescope auth and
// catalog services on one port.
//
// Storage and session backends are picked with TWIN_STORE and TWIN_SESSIONS.
package main

import (
	"context"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/mshlentov/cinescope/internal/app"
	"github.com/mshlentov/cinescope/internal/infrastructure/config"
	"github.com/mshlentov/cinescope/pkg/logger"
)

func main() {
	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	defer stop()

	cfg := config.MustLoad(ctx)
	log := logger.Init(logger.Options{Level: cfg.LogLevel, Pretty: cfg.LogPretty})

	twin, err := app.NewTwin(ctx, cfg, log)
	if err != nil {
		log.Fatal().Err(err).Msg("failed to start twin")
	}

	if err := twin.Serve(ctx, ":"+cfg.Twin.Port); err != nil {
		log.Error().Err(err).Msg("server error")
	}

	closeCtx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
	defer cancel()
	if err := twin.Close(closeCtx); err != nil {
		log.Error().Err(err).Msg("failed to close twin")
	}
	log.Info().Msg("twin stopped")
}

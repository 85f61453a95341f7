package main

import (
	"context"
	"fmt"
	"os"
	"os/signal"
	"syscall"

	"github.com/rs/zerolog/log"

	"github.com/comitanigiacomo/kyool-companion/internal/app"
	"github.com/comitanigiacomo/kyool-companion/internal/config"
	"github.com/comitanigiacomo/kyool-companion/internal/logger"
)

// @title           Kyool Companion API
// @version         1.0
// @description     Local companion service for the Kyool tracker.
// @BasePath        /api/v1
// @securityDefinitions.apikey BearerAuth
// @in header
// @name Authorization
func main() {
	cfg := config.Load()

	if err := logger.Initialize(cfg.Log); err != nil {
		fmt.Fprintf(os.Stderr, "Critical: failed to initialize logger: %v\n", err)
		os.Exit(1)
	}

	ctx, stop := signal.NotifyContext(context.Background(), syscall.SIGINT, syscall.SIGTERM)
	defer stop()

	log.Info().Str("api_url", cfg.APIURL).Str("storage", cfg.StorageDriver).Msg("Starting companion...")

	a, err := app.New(ctx, cfg)
	if err != nil {
		log.Fatal().Err(err).Msg("Critical: failed to start companion")
	}
	defer a.Close()

	if a.UserID() == "" {
		log.Warn().Msg("No usable KYOOL_ID_TOKEN, requests without a bearer token run signed out")
	}

	a.StartWorker(ctx)

	if err := a.Serve(ctx, cfg.Port); err != nil {
		log.Error().Err(err).Msg("Critical server error")
		a.Close()
		os.Exit(1)
	}
}

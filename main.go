package main

import (
	"context"
	"os"
	"os/signal"
	"syscall"

	"github.com/joho/godotenv"
	"github.com/rs/zerolog"

	service "solana-withdraw-alerts/internal"
	"solana-withdraw-alerts/internal/config"
)

func main() {
	// Best effort: config comes from the environment either way.
	_ = godotenv.Load()

	logger := zerolog.New(os.Stdout).With().
		Timestamp().
		Str("service", "withdraw-alerts").
		Logger()

	ctx, cancel := signal.NotifyContext(context.Background(), syscall.SIGINT, syscall.SIGTERM)
	defer cancel()

	cfg, err := config.Load()
	if err != nil {
		logger.Fatal().Err(err).Msg("failed to load config")
	}

	app, err := service.NewApp(cfg, logger)
	if err != nil {
		logger.Fatal().Err(err).Msg("failed to build app")
	}

	if err := app.Run(ctx); err != nil {
		logger.Fatal().Err(err).Msg("service exited with error")
	}
}

package main

import (
	"context"
	"os"
	"os/signal"
	"syscall"

	"github.com/joho/godotenv"

	"github.com/mostudy/aiproxy/internal/app"
	"github.com/mostudy/aiproxy/internal/config"
)

func main() {
	// A local .env supplies OPENROUTER_API_KEY during development.
	envErr := godotenv.Load()

	cfg := config.Load()
	logger := setupLogger(cfg.LogLevel)

	if envErr != nil {
		logger.Debug("no .env file loaded, using process environment")
	}

	if err := config.EnsureConfigFile(); err != nil {
		logger.Warn("could not create config file", "path", config.ConfigPath(), "error", err)
	}
	if cfg.APIKey == "" {
		logger.Warn("upstream API key is not set; chat requests will fail", "env", config.APIKeyEnv)
	}

	printStartupBanner(cfg)

	handler := app.NewHandler(cfg, nil, logger)
	srv := app.NewServer(cfg, handler, logger)

	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	defer stop()

	if err := srv.Start(ctx); err != nil {
		logger.Error("server failed", "error", err)
		os.Exit(1)
	}
}

package main

import (
	"fmt"
	"log/slog"
	"os"
	"strings"

	"github.com/mostudy/aiproxy/internal/config"
	"github.com/mostudy/aiproxy/internal/version"
)

func setupLogger(level string) *slog.Logger {
	handler := slog.NewTextHandler(os.Stdout, &slog.HandlerOptions{
		Level: parseLevel(level),
	})
	return slog.New(handler)
}

func parseLevel(level string) slog.Level {
	switch strings.ToLower(strings.TrimSpace(level)) {
	case "debug":
		return slog.LevelDebug
	case "warn", "warning":
		return slog.LevelWarn
	case "error":
		return slog.LevelError
	default:
		return slog.LevelInfo
	}
}

func printStartupBanner(cfg *config.Config) {
	fmt.Fprintf(os.Stderr, "\n")
	fmt.Fprintf(os.Stderr, "aiproxy %s - chat completion proxy\n", version.Version)
	fmt.Fprintln(os.Stderr, "════════════════════════════════════════════════")
	fmt.Fprintf(os.Stderr, "Function:   http://localhost%s/v1/chat/completions\n", cfg.ServerPort)
	fmt.Fprintf(os.Stderr, "Upstream:   %s\n", cfg.BaseURL)
	fmt.Fprintf(os.Stderr, "Model:      %s\n", cfg.DefaultModel)
	fmt.Fprintf(os.Stderr, "Config:     %s\n", config.ConfigPath())
	fmt.Fprintln(os.Stderr, "════════════════════════════════════════════════")
	fmt.Fprintf(os.Stderr, "\n")
}

// Package main implements the entry point for the Analog Algorithm letter
// server, which generates personalized card readings and hands them to the
// mail carrier.
package main

import (
	"context"
	"fmt"
	"log"
	"log/slog"
	"os"
	"os/signal"
	"syscall"

	"github.com/analogalgo/letters/internal/config"
	"github.com/analogalgo/letters/internal/platform/logger"
)

// main is the entry point for the letter server. It loads configuration,
// sets up logging, wires the application and serves HTTP until SIGINT or
// SIGTERM.
func main() {
	ctx, stop := signal.NotifyContext(context.Background(), syscall.SIGINT, syscall.SIGTERM)
	defer stop()

	cfg, l, err := initializeApp()
	if err != nil {
		log.Fatalf("Failed to initialize application: %v", err)
	}

	app, err := newApplication(ctx, cfg, l)
	if err != nil {
		l.Error("Failed to build application", slog.String("error", err.Error()))
		os.Exit(1)
	}

	if err := app.Run(ctx); err != nil {
		l.Error("Server stopped with error", slog.String("error", err.Error()))
		os.Exit(1)
	}
}

// initializeApp loads configuration and sets up the structured logger.
func initializeApp() (*config.Config, *slog.Logger, error) {
	cfg, err := config.Load()
	if err != nil {
		return nil, nil, fmt.Errorf("failed to load configuration: %w", err)
	}

	l, err := logger.Setup(cfg.Server)
	if err != nil {
		return nil, nil, fmt.Errorf("failed to set up logger: %w", err)
	}

	l.Info("Server configuration loaded",
		"port", cfg.Server.Port,
		"log_level", cfg.Server.LogLevel)

	// Log additional configuration details at debug level if available
	l.Debug("Backing services",
		"database_url_present", cfg.Database.URL != "",
		"redis_url_present", cfg.Redis.URL != "",
		"admin_login_enabled", cfg.Auth.AdminPasswordHash != "",
		"webhook_signatures_enabled", cfg.Auth.WebhookSecret != "")

	return cfg, l, nil
}

// Package main implements the entry point for the task timer API server.
package main

import (
	"context"
	"flag"
	"fmt"
	"log"
	"log/slog"
	"os"
	"os/signal"
	"syscall"

	"github.com/phrazzld/tasktimer-api/internal/config"
	"github.com/phrazzld/tasktimer-api/internal/platform/logger"
)

func main() {
	migrateCmd := flag.String("migrate", "",
		"Run a database migration command and exit: up, down, status, version, reset")
	flag.Parse()

	ctx, stop := signal.NotifyContext(context.Background(), syscall.SIGINT, syscall.SIGTERM)
	defer stop()

	if err := run(ctx, *migrateCmd); err != nil {
		log.Printf("tasktimer-api: %v", err)
		os.Exit(1)
	}
}

// run loads configuration and either executes a migration command or serves
// HTTP until ctx is cancelled.
func run(ctx context.Context, migrateCmd string) error {
	cfg, l, err := initializeApp()
	if err != nil {
		return err
	}

	if migrateCmd != "" {
		return runMigrations(ctx, cfg, migrateCmd, l)
	}

	app, err := newApplication(ctx, cfg, l)
	if err != nil {
		return fmt.Errorf("failed to initialize application: %w", err)
	}
	return app.Run(ctx)
}

// initializeApp loads configuration and sets up structured logging.
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
		"log_level", cfg.Server.LogLevel,
		"driver", cfg.Database.Driver,
		"default_duration_ms", cfg.Task.DefaultDurationMs)
	if cfg.Database.URL != "" {
		l.Debug("Database configuration", "url_present", true)
	}

	return cfg, l, nil
}

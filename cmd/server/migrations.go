package main

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"strings"

	"github.com/phrazzld/tasktimer-api/internal/config"
	"github.com/phrazzld/tasktimer-api/internal/platform/postgres/migrations"
	"github.com/pressly/goose/v3"
)

// migrationCommands are the goose commands accepted by -migrate.
var migrationCommands = map[string]bool{
	"up":      true,
	"down":    true,
	"status":  true,
	"version": true,
	"reset":   true,
}

// runMigrations executes a goose command against the configured PostgreSQL
// database using the migrations embedded in the binary.
func runMigrations(ctx context.Context, cfg *config.Config, command string, logger *slog.Logger) error {
	if err := validateMigrationRequest(cfg.Database, command); err != nil {
		return err
	}

	log := logger.With("component", "migrations", "command", command)
	log.Info("Starting migration operation")

	db, err := openPostgres(ctx, cfg.Database, log)
	if err != nil {
		return err
	}
	defer func() {
		if err := db.Close(); err != nil {
			log.Error("Error closing database connection", "error", err)
		}
	}()

	configureGoose(log)
	if err := goose.SetDialect("postgres"); err != nil {
		return fmt.Errorf("failed to set goose dialect: %w", err)
	}

	if err := goose.RunContext(ctx, command, db, "."); err != nil {
		return fmt.Errorf("migration %s failed: %w", command, err)
	}

	log.Info("Migration operation completed")
	return nil
}

func validateMigrationRequest(cfg config.DatabaseConfig, command string) error {
	if !migrationCommands[command] {
		return fmt.Errorf("unknown migration command %q (want one of up, down, status, version, reset)", command)
	}
	if cfg.Driver != "postgres" {
		return fmt.Errorf("migrations require the postgres driver, got %q", cfg.Driver)
	}
	if cfg.URL == "" {
		return errors.New("database URL is empty: check your configuration")
	}
	return nil
}

func configureGoose(log *slog.Logger) {
	goose.SetBaseFS(migrations.FS)
	goose.SetTableName(migrations.TableName)
	goose.SetLogger(&slogGooseLogger{logger: log})
}

// slogGooseLogger adapts the goose logger interface to use slog
type slogGooseLogger struct {
	logger *slog.Logger
}

// Printf implements goose.Logger.
func (l *slogGooseLogger) Printf(format string, v ...interface{}) {
	l.logger.Info(strings.TrimSpace(fmt.Sprintf(format, v...)))
}

// Fatalf implements goose.Logger. It logs at error level and leaves exiting
// to the caller, which sees the error goose returns.
func (l *slogGooseLogger) Fatalf(format string, v ...interface{}) {
	l.logger.Error(strings.TrimSpace(fmt.Sprintf(format, v...)))
}

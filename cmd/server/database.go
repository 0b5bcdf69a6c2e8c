package main

import (
	"context"
	"database/sql"
	"fmt"
	"log/slog"
	"time"

	_ "github.com/jackc/pgx/v5/stdlib" // registers the "pgx" database/sql driver
	"github.com/phrazzld/tasktimer-api/internal/config"
	"github.com/phrazzld/tasktimer-api/internal/redact"
	"github.com/redis/go-redis/v9"
)

const connectTimeout = 5 * time.Second

// openPostgres establishes a connection to PostgreSQL and configures the pool.
func openPostgres(ctx context.Context, cfg config.DatabaseConfig, logger *slog.Logger) (*sql.DB, error) {
	db, err := sql.Open("pgx", cfg.URL)
	if err != nil {
		return nil, fmt.Errorf("failed to open database connection: %s", redact.Error(err))
	}

	db.SetMaxOpenConns(cfg.MaxOpenConns)
	db.SetMaxIdleConns(cfg.MaxIdleConns)
	db.SetConnMaxLifetime(5 * time.Minute)

	pingCtx, cancel := context.WithTimeout(ctx, connectTimeout)
	defer cancel()

	if err := db.PingContext(pingCtx); err != nil {
		_ = db.Close()
		return nil, fmt.Errorf("failed to ping database: %s", redact.Error(err))
	}

	logger.Info("Database connection established",
		"max_open_conns", cfg.MaxOpenConns,
		"max_idle_conns", cfg.MaxIdleConns)
	return db, nil
}

// openRedis connects to the Redis server named by a redis:// URL.
func openRedis(ctx context.Context, cfg config.DatabaseConfig, logger *slog.Logger) (*redis.Client, error) {
	opts, err := redis.ParseURL(cfg.URL)
	if err != nil {
		return nil, fmt.Errorf("invalid redis URL: %s", redact.Error(err))
	}
	opts.PoolSize = cfg.MaxOpenConns
	opts.MinIdleConns = cfg.MaxIdleConns

	client := redis.NewClient(opts)

	pingCtx, cancel := context.WithTimeout(ctx, connectTimeout)
	defer cancel()

	if err := client.Ping(pingCtx).Err(); err != nil {
		_ = client.Close()
		return nil, fmt.Errorf("failed to ping redis: %s", redact.Error(err))
	}

	logger.Info("Redis connection established", "addr", opts.Addr, "db", opts.DB)
	return client, nil
}

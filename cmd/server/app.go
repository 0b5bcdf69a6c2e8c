package main

import (
	"context"
	"fmt"
	"log/slog"

	"github.com/jonboulle/clockwork"
	"github.com/phrazzld/tasktimer-api/internal/config"
	"github.com/phrazzld/tasktimer-api/internal/events"
	"github.com/phrazzld/tasktimer-api/internal/generation"
	"github.com/phrazzld/tasktimer-api/internal/platform/memory"
	"github.com/phrazzld/tasktimer-api/internal/platform/postgres"
	"github.com/phrazzld/tasktimer-api/internal/platform/redisstore"
	"github.com/phrazzld/tasktimer-api/internal/service"
	"github.com/phrazzld/tasktimer-api/internal/store"
	"github.com/phrazzld/tasktimer-api/internal/task"
)

// application holds all the shared application dependencies to simplify management
// and ensure proper cleanup on shutdown.
type application struct {
	config *config.Config
	logger *slog.Logger
	clock  clockwork.Clock

	taskStore store.TaskStore
	// closeStore releases the store's connection, if it has one.
	closeStore func() error

	eventEmitter *events.InMemoryEventEmitter
	engine       *task.Engine
	reconciler   *task.Reconciler
	taskService  service.TaskService
}

// newApplication creates a new application instance with all dependencies
// initialized. The store backend is chosen by cfg.Database.Driver.
func newApplication(ctx context.Context, cfg *config.Config, logger *slog.Logger) (*application, error) {
	return newApplicationWithClock(ctx, cfg, logger, clockwork.NewRealClock())
}

func newApplicationWithClock(
	ctx context.Context,
	cfg *config.Config,
	logger *slog.Logger,
	clock clockwork.Clock,
) (*application, error) {
	app := &application{
		config:     cfg,
		logger:     logger,
		clock:      clock,
		closeStore: func() error { return nil },
	}

	var err error
	app.taskStore, app.closeStore, err = openTaskStore(ctx, cfg.Database, logger)
	if err != nil {
		return nil, err
	}

	app.eventEmitter = events.NewInMemoryEventEmitter(logger)
	app.eventEmitter.RegisterHandler(events.NewLogHandler(logger))

	app.engine, err = task.NewEngine(
		app.taskStore,
		generation.NewRandomGenerator(),
		app.eventEmitter,
		clock,
		task.EngineConfig{FireTimeout: cfg.Task.FireTimeout},
		logger,
	)
	if err != nil {
		app.cleanup()
		return nil, fmt.Errorf("failed to create task engine: %w", err)
	}

	app.taskService, err = service.NewTaskService(app.taskStore, app.engine, cfg.Task.DefaultDuration(), logger)
	if err != nil {
		app.cleanup()
		return nil, fmt.Errorf("failed to create task service: %w", err)
	}

	app.reconciler, err = task.NewReconciler(app.engine, task.ReconcilerConfig{
		Schedule:         cfg.Task.ReconcileSchedule,
		RecoverOnStartup: cfg.Task.RecoverOnStartup,
	}, logger)
	if err != nil {
		app.cleanup()
		return nil, fmt.Errorf("failed to create reconciler: %w", err)
	}

	logger.Info("Application initialized successfully", "driver", cfg.Database.Driver)
	return app, nil
}

// openTaskStore builds the store backend for the configured driver and
// returns a function that releases its connection.
func openTaskStore(
	ctx context.Context,
	cfg config.DatabaseConfig,
	logger *slog.Logger,
) (store.TaskStore, func() error, error) {
	switch cfg.Driver {
	case "postgres":
		db, err := openPostgres(ctx, cfg, logger)
		if err != nil {
			return nil, nil, err
		}
		return postgres.NewPostgresTaskStore(db, logger), db.Close, nil

	case "redis":
		client, err := openRedis(ctx, cfg, logger)
		if err != nil {
			return nil, nil, err
		}
		return redisstore.NewTaskStore(client, redisstore.DefaultKeyPrefix, logger), client.Close, nil

	case "memory", "":
		logger.Warn("Using in-memory task store; tasks are lost on restart")
		return memory.NewTaskStore(), func() error { return nil }, nil

	default:
		return nil, nil, fmt.Errorf("unsupported database driver %q", cfg.Driver)
	}
}

// Run recovers running tasks, starts the periodic sweep and serves HTTP
// until ctx is cancelled.
func (app *application) Run(ctx context.Context) error {
	if err := app.reconciler.Start(ctx); err != nil {
		app.cleanup()
		return err
	}

	if err := app.startHTTPServer(ctx, app.setupRouter()); err != nil {
		return fmt.Errorf("server error: %w", err)
	}
	return nil
}

// cleanup handles graceful shutdown of application resources: the sweep
// first, then every pending timer, then the store connection.
func (app *application) cleanup() {
	if app.reconciler != nil {
		app.reconciler.Stop()
	}

	if app.engine != nil {
		app.engine.Stop()
	}

	if app.closeStore != nil {
		if err := app.closeStore(); err != nil {
			app.logger.Error("Error closing task store", "error", err)
		}
	}

	app.logger.Info("Application shutdown completed")
}

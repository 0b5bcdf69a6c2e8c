package task

import (
	"context"
	"fmt"
	"log/slog"
	"sync"
	"time"

	"github.com/robfig/cron/v3"
)

// DefaultSweepTimeout bounds a single scheduled reconcile sweep.
const DefaultSweepTimeout = time.Minute

// TimerReconciler re-arms timers for running tasks that have none.
// *Engine implements it.
type TimerReconciler interface {
	Reconcile(ctx context.Context) (int, error)
}

// ReconcilerConfig holds configuration for the Reconciler.
type ReconcilerConfig struct {
	// Schedule is a cron expression (e.g. "@every 1m") for the periodic sweep.
	// An empty schedule disables the sweep.
	Schedule string

	// RecoverOnStartup runs one sweep synchronously from Start.
	RecoverOnStartup bool

	// SweepTimeout bounds each scheduled sweep. If zero, DefaultSweepTimeout
	// is used.
	SweepTimeout time.Duration
}

// Reconciler recovers running tasks after a restart and periodically
// closes any gap between the store and the timer registry.
type Reconciler struct {
	engine TimerReconciler
	config ReconcilerConfig
	cron   *cron.Cron
	logger *slog.Logger

	ctx        context.Context
	cancelFunc context.CancelFunc
	stopOnce   sync.Once
}

// NewReconciler creates a Reconciler. It returns an error if the schedule
// cannot be parsed.
func NewReconciler(engine TimerReconciler, config ReconcilerConfig, logger *slog.Logger) (*Reconciler, error) {
	if engine == nil {
		return nil, fmt.Errorf("reconciler engine cannot be nil")
	}
	if logger == nil {
		logger = slog.Default()
	}
	if config.SweepTimeout <= 0 {
		config.SweepTimeout = DefaultSweepTimeout
	}

	ctx, cancel := context.WithCancel(context.Background())
	r := &Reconciler{
		engine:     engine,
		config:     config,
		logger:     logger.With("component", "task_reconciler"),
		ctx:        ctx,
		cancelFunc: cancel,
	}

	if config.Schedule != "" {
		cl := cronLogger{r.logger}
		r.cron = cron.New(
			cron.WithLogger(cl),
			cron.WithChain(cron.Recover(cl), cron.SkipIfStillRunning(cl)),
		)
		if _, err := r.cron.AddFunc(config.Schedule, r.sweep); err != nil {
			cancel()
			return nil, fmt.Errorf("invalid reconcile schedule %q: %w", config.Schedule, err)
		}
	}

	return r, nil
}

// Start runs the startup recovery if configured and then starts the
// periodic sweep. A failed recovery is returned and the sweep is not
// started.
func (r *Reconciler) Start(ctx context.Context) error {
	if r.config.RecoverOnStartup {
		if _, err := r.Recover(ctx); err != nil {
			return fmt.Errorf("failed to recover tasks: %w", err)
		}
	}

	if r.cron != nil {
		r.cron.Start()
		r.logger.Info("reconcile sweep scheduled", "schedule", r.config.Schedule)
	}
	return nil
}

// Recover re-arms timers for every running task that has none.
func (r *Reconciler) Recover(ctx context.Context) (int, error) {
	n, err := r.engine.Reconcile(ctx)
	if err != nil {
		return n, err
	}
	r.logger.Info("recovered running tasks", "rearmed_count", n)
	return n, nil
}

// Stop halts the periodic sweep and waits for a running sweep to return.
// It is safe to call more than once.
func (r *Reconciler) Stop() {
	r.stopOnce.Do(func() {
		r.cancelFunc()
		if r.cron != nil {
			<-r.cron.Stop().Done()
		}
		r.logger.Debug("reconciler stopped")
	})
}

func (r *Reconciler) sweep() {
	ctx, cancel := context.WithTimeout(r.ctx, r.config.SweepTimeout)
	defer cancel()

	n, err := r.engine.Reconcile(ctx)
	if err != nil {
		r.logger.Error("reconcile sweep failed", "error", err)
		return
	}
	r.logger.Debug("reconcile sweep finished", "rearmed_count", n)
}

// cronLogger adapts slog to cron.Logger.
type cronLogger struct {
	logger *slog.Logger
}

func (l cronLogger) Info(msg string, keysAndValues ...interface{}) {
	l.logger.Debug(msg, keysAndValues...)
}

func (l cronLogger) Error(err error, msg string, keysAndValues ...interface{}) {
	l.logger.Error(msg, append([]interface{}{"error", err}, keysAndValues...)...)
}

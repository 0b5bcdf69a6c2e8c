package task

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"sync"
	"time"

	"github.com/google/uuid"
	"github.com/jonboulle/clockwork"
	"github.com/phrazzld/tasktimer-api/internal/domain"
	"github.com/phrazzld/tasktimer-api/internal/events"
	"github.com/phrazzld/tasktimer-api/internal/generation"
	"github.com/phrazzld/tasktimer-api/internal/platform/logger"
	"github.com/phrazzld/tasktimer-api/internal/store"
)

// DefaultFireTimeout bounds the store work of a timer-driven completion when
// EngineConfig.FireTimeout is zero.
const DefaultFireTimeout = 10 * time.Second

// TaskRepository is the subset of store.TaskStore the engine needs.
type TaskRepository interface {
	GetByID(ctx context.Context, id uuid.UUID) (*domain.Task, error)
	Update(ctx context.Context, id uuid.UUID, update store.TaskUpdate) (*domain.Task, error)
	ListByStatus(ctx context.Context, status domain.TaskStatus) ([]*domain.Task, error)
}

// EngineConfig holds tunables for the lifecycle engine.
type EngineConfig struct {
	// FireTimeout bounds the store reads and writes done when a timer fires.
	// If zero, DefaultFireTimeout is used.
	FireTimeout time.Duration
}

// Engine drives tasks through their lifecycle. It owns the timer registry,
// keeps the registry and the store in agreement, and serializes all
// operations on the same task ID.
type Engine struct {
	repo        TaskRepository
	timers      *TimerRegistry
	results     generation.Generator
	emitter     events.EventEmitter
	clock       clockwork.Clock
	locks       *keyedMutex
	fireTimeout time.Duration
	logger      *slog.Logger

	// fireMu guards inflight and idle, which let Stop wait for completions
	// that are already running.
	fireMu   sync.Mutex
	inflight int
	idle     chan struct{}
}

// NewEngine creates an Engine. emitter may be nil, in which case no
// lifecycle events are published. A nil clock means the real clock.
func NewEngine(
	repo TaskRepository,
	results generation.Generator,
	emitter events.EventEmitter,
	clock clockwork.Clock,
	config EngineConfig,
	log *slog.Logger,
) (*Engine, error) {
	if repo == nil {
		return nil, errors.New("task repository cannot be nil")
	}
	if results == nil {
		return nil, errors.New("result generator cannot be nil")
	}
	if clock == nil {
		clock = clockwork.NewRealClock()
	}
	if log == nil {
		log = slog.Default()
	}
	if config.FireTimeout <= 0 {
		config.FireTimeout = DefaultFireTimeout
	}

	return &Engine{
		repo:        repo,
		timers:      NewTimerRegistry(clock, log),
		results:     results,
		emitter:     emitter,
		clock:       clock,
		locks:       newKeyedMutex(),
		fireTimeout: config.FireTimeout,
		logger:      log.With("component", "task_engine"),
	}, nil
}

// Run starts a NOT_STARTED or CANCELLED task from zero elapsed time.
func (e *Engine) Run(ctx context.Context, id uuid.UUID) (*domain.Task, error) {
	unlock := e.locks.Lock(id)
	defer unlock()
	return e.run(ctx, id)
}

func (e *Engine) run(ctx context.Context, id uuid.UUID) (*domain.Task, error) {
	task, err := e.load(ctx, id, domain.ActionRun)
	if err != nil {
		return nil, err
	}

	if e.timers.IsActive(id) {
		e.log(ctx).Warn("run requested for task with an active timer",
			"task_id", id,
			"status", task.Status)
		return task, nil
	}

	now := e.clock.Now()
	status := domain.TaskStatusInProgress
	var zero int64
	updated, err := e.repo.Update(ctx, id, store.TaskUpdate{
		Status:      &status,
		LastRunAt:   &now,
		ElapsedTime: &zero,
	})
	if err != nil {
		return nil, fmt.Errorf("failed to start task: %w", err)
	}

	if !e.timers.Schedule(id, updated.DurationTime(), e.onTimerFired) {
		e.log(ctx).Warn("task started without a countdown; reconcile will re-arm it",
			"task_id", id)
	}

	e.log(ctx).Info("task started",
		"task_id", id,
		"duration_ms", updated.Duration)
	e.emit(ctx, events.TaskStarted, updated, now)
	return updated, nil
}

// Pause stops the countdown of an IN_PROGRESS task and folds the current
// interval into its elapsed time.
func (e *Engine) Pause(ctx context.Context, id uuid.UUID) (*domain.Task, error) {
	unlock := e.locks.Lock(id)
	defer unlock()
	return e.pause(ctx, id)
}

func (e *Engine) pause(ctx context.Context, id uuid.UUID) (*domain.Task, error) {
	task, err := e.load(ctx, id, domain.ActionPause)
	if err != nil {
		return nil, err
	}

	if !e.timers.IsActive(id) {
		// The store says running but nothing is ticking. Leave it to the
		// reconciler rather than guessing at the elapsed time.
		e.log(ctx).Warn("pause requested for task without an active timer",
			"task_id", id)
		return task, nil
	}

	now := e.clock.Now()
	elapsed := task.ElapsedAt(now)
	status := domain.TaskStatusPaused
	updated, err := e.repo.Update(ctx, id, store.TaskUpdate{
		Status:      &status,
		ElapsedTime: &elapsed,
	})
	if err != nil {
		return nil, fmt.Errorf("failed to pause task: %w", err)
	}

	e.timers.Cancel(id)

	e.log(ctx).Info("task paused",
		"task_id", id,
		"elapsed_ms", elapsed)
	e.emit(ctx, events.TaskPaused, updated, now)
	return updated, nil
}

// Resume restarts the countdown of a PAUSED task for its remaining time.
func (e *Engine) Resume(ctx context.Context, id uuid.UUID) (*domain.Task, error) {
	unlock := e.locks.Lock(id)
	defer unlock()
	return e.resume(ctx, id)
}

func (e *Engine) resume(ctx context.Context, id uuid.UUID) (*domain.Task, error) {
	task, err := e.load(ctx, id, domain.ActionResume)
	if err != nil {
		return nil, err
	}

	if e.timers.IsActive(id) {
		e.log(ctx).Warn("resume requested for task with an active timer",
			"task_id", id)
		return task, nil
	}

	remaining := task.Remaining()
	now := e.clock.Now()
	status := domain.TaskStatusInProgress
	updated, err := e.repo.Update(ctx, id, store.TaskUpdate{
		Status:    &status,
		LastRunAt: &now,
	})
	if err != nil {
		return nil, fmt.Errorf("failed to resume task: %w", err)
	}

	// A zero remaining time fires right away.
	if !e.timers.Schedule(id, remaining, e.onTimerFired) {
		e.log(ctx).Warn("task resumed without a countdown; reconcile will re-arm it",
			"task_id", id)
	}

	e.log(ctx).Info("task resumed",
		"task_id", id,
		"remaining_ms", remaining.Milliseconds())
	e.emit(ctx, events.TaskResumed, updated, now)
	return updated, nil
}

// Cancel stops an IN_PROGRESS or PAUSED task and resets its elapsed time.
func (e *Engine) Cancel(ctx context.Context, id uuid.UUID) (*domain.Task, error) {
	unlock := e.locks.Lock(id)
	defer unlock()
	return e.cancel(ctx, id)
}

func (e *Engine) cancel(ctx context.Context, id uuid.UUID) (*domain.Task, error) {
	if _, err := e.load(ctx, id, domain.ActionCancel); err != nil {
		return nil, err
	}

	now := e.clock.Now()
	status := domain.TaskStatusCancelled
	var zero int64
	updated, err := e.repo.Update(ctx, id, store.TaskUpdate{
		Status:      &status,
		ElapsedTime: &zero,
	})
	if err != nil {
		return nil, fmt.Errorf("failed to cancel task: %w", err)
	}

	hadTimer := e.timers.Cancel(id)

	e.log(ctx).Info("task cancelled",
		"task_id", id,
		"had_timer", hadTimer)
	e.emit(ctx, events.TaskCancelled, updated, now)
	return updated, nil
}

// Reconcile arms a timer for every IN_PROGRESS task that has none, using
// the wall-clock time left since its last run. It returns how many tasks
// were re-armed. Failures on individual tasks are logged and skipped.
func (e *Engine) Reconcile(ctx context.Context) (int, error) {
	running, err := e.repo.ListByStatus(ctx, domain.TaskStatusInProgress)
	if err != nil {
		return 0, fmt.Errorf("failed to list running tasks: %w", err)
	}

	rearmed := 0
	for _, t := range running {
		if err := ctx.Err(); err != nil {
			return rearmed, err
		}
		ok, err := e.rearm(ctx, t.ID)
		if err != nil {
			e.log(ctx).Error("failed to re-arm task timer",
				"task_id", t.ID,
				"error", err)
			continue
		}
		if ok {
			rearmed++
		}
	}

	if rearmed > 0 {
		e.log(ctx).Info("re-armed task timers",
			"rearmed_count", rearmed,
			"running_count", len(running))
	}
	return rearmed, nil
}

// ActiveTimers returns the number of tasks currently counting down.
func (e *Engine) ActiveTimers() int {
	return e.timers.Len()
}

// Stop cancels every countdown and waits, at most the fire timeout, for
// completions that were already running. Running tasks stay IN_PROGRESS in
// the store and are picked up by Reconcile on the next start.
func (e *Engine) Stop() {
	n := e.timers.StopAll()

	e.fireMu.Lock()
	if e.inflight == 0 {
		e.fireMu.Unlock()
		e.logger.Info("task engine stopped", "stopped_timers", n)
		return
	}
	if e.idle == nil {
		e.idle = make(chan struct{})
	}
	idle, pending := e.idle, e.inflight
	e.fireMu.Unlock()

	wait := time.NewTimer(e.fireTimeout)
	defer wait.Stop()
	select {
	case <-idle:
		e.logger.Info("task engine stopped",
			"stopped_timers", n,
			"drained_completions", pending)
	case <-wait.C:
		e.logger.Warn("task engine stopped with completions still running",
			"stopped_timers", n,
			"pending_completions", pending)
	}
}

func (e *Engine) beginFire() {
	e.fireMu.Lock()
	e.inflight++
	e.fireMu.Unlock()
}

func (e *Engine) endFire() {
	e.fireMu.Lock()
	defer e.fireMu.Unlock()
	e.inflight--
	if e.inflight == 0 && e.idle != nil {
		close(e.idle)
		e.idle = nil
	}
}

func (e *Engine) rearm(ctx context.Context, id uuid.UUID) (bool, error) {
	unlock := e.locks.Lock(id)
	defer unlock()

	if e.timers.IsActive(id) {
		return false, nil
	}

	task, err := e.repo.GetByID(ctx, id)
	if err != nil {
		return false, err
	}
	if task.Status != domain.TaskStatusInProgress {
		return false, nil
	}

	now := e.clock.Now()
	remaining := time.Duration(task.Duration-task.ElapsedAt(now)) * time.Millisecond
	if !e.timers.Schedule(id, remaining, e.onTimerFired) {
		return false, nil
	}

	e.log(ctx).Info("task timer re-armed",
		"task_id", id,
		"remaining_ms", remaining.Milliseconds())
	e.emit(ctx, events.TaskRecovered, task, now)
	return true, nil
}

// onTimerFired is the countdown callback. It completes the task unless a
// pause or cancel replaced the countdown while this callback waited for
// the lock.
func (e *Engine) onTimerFired(h *TimerHandle) {
	e.beginFire()
	defer e.endFire()

	id := h.TaskID()
	unlock := e.locks.Lock(id)
	defer unlock()

	if !e.timers.Owns(h) {
		e.logger.Debug("timer fire superseded", "task_id", id)
		return
	}

	ctx, cancel := context.WithTimeout(context.Background(), e.fireTimeout)
	defer cancel()

	if err := e.complete(ctx, id); err != nil {
		e.logger.Error("failed to complete task",
			"task_id", id,
			"error", err)
	}
}

// complete must be called with the task's lock held.
func (e *Engine) complete(ctx context.Context, id uuid.UUID) error {
	task, err := e.repo.GetByID(ctx, id)
	if err != nil {
		return fmt.Errorf("failed to load task: %w", err)
	}
	if task.Status != domain.TaskStatusInProgress {
		e.logger.Info("skipping completion of task that is no longer running",
			"task_id", id,
			"status", task.Status)
		return nil
	}

	now := e.clock.Now()
	elapsed := task.ElapsedAt(now)
	result := e.results.Generate()
	status := domain.TaskStatusCompleted
	updated, err := e.repo.Update(ctx, id, store.TaskUpdate{
		Status:      &status,
		ElapsedTime: &elapsed,
		CompletedAt: &now,
		Result:      &result,
	})
	if err != nil {
		return fmt.Errorf("failed to save completed task: %w", err)
	}

	e.logger.Info("task completed",
		"task_id", id,
		"elapsed_ms", elapsed,
		"result", result)
	e.emit(ctx, events.TaskCompleted, updated, now)
	return nil
}

// load reads the task and checks that action is legal from its status.
func (e *Engine) load(ctx context.Context, id uuid.UUID, action domain.Action) (*domain.Task, error) {
	task, err := e.repo.GetByID(ctx, id)
	if err != nil {
		return nil, fmt.Errorf("failed to load task: %w", err)
	}
	if err := domain.CheckTransition(action, task.Status); err != nil {
		return nil, err
	}
	return task, nil
}

func (e *Engine) emit(ctx context.Context, eventType string, task *domain.Task, at time.Time) {
	if e.emitter == nil {
		return
	}
	if err := e.emitter.EmitEvent(ctx, events.NewTaskEvent(eventType, task, at)); err != nil {
		e.log(ctx).Warn("failed to emit task event",
			"event_type", eventType,
			"task_id", task.ID,
			"error", err)
	}
}

func (e *Engine) log(ctx context.Context) *slog.Logger {
	return logger.FromContextOrDefault(ctx, e.logger)
}

package task

import (
	"log/slog"
	"sync"
	"time"

	"github.com/google/uuid"
	"github.com/jonboulle/clockwork"
)

// TimerHandle identifies one scheduled countdown. A handle stays valid after
// its entry is removed, so a fire callback can ask the registry whether it
// was cancelled in the meantime.
type TimerHandle struct {
	taskID uuid.UUID
	timer  clockwork.Timer
}

// TaskID returns the task the countdown belongs to.
func (h *TimerHandle) TaskID() uuid.UUID {
	return h.taskID
}

// TimerRegistry tracks at most one active countdown per task.
// The zero value is not usable; create one with NewTimerRegistry.
type TimerRegistry struct {
	clock   clockwork.Clock
	logger  *slog.Logger
	mu      sync.Mutex
	entries map[uuid.UUID]*TimerHandle
}

// NewTimerRegistry creates an empty registry driven by clock.
func NewTimerRegistry(clock clockwork.Clock, logger *slog.Logger) *TimerRegistry {
	if clock == nil {
		clock = clockwork.NewRealClock()
	}
	if logger == nil {
		logger = slog.Default()
	}
	return &TimerRegistry{
		clock:   clock,
		logger:  logger.With("component", "timer_registry"),
		entries: make(map[uuid.UUID]*TimerHandle),
	}
}

// Schedule arranges for onFire to be called once after delay, unless the
// countdown is cancelled first. onFire runs on its own goroutine and receives
// the handle of the countdown that fired. The entry is removed after onFire
// returns if it still belongs to that handle.
//
// If taskID already has a countdown, Schedule does nothing and returns false.
func (r *TimerRegistry) Schedule(taskID uuid.UUID, delay time.Duration, onFire func(*TimerHandle)) bool {
	r.mu.Lock()
	defer r.mu.Unlock()

	if _, exists := r.entries[taskID]; exists {
		r.logger.Warn("timer already registered for task",
			"task_id", taskID)
		return false
	}

	h := &TimerHandle{taskID: taskID}
	// The entry is stored before r.mu is released, and the callback needs
	// r.mu to release it, so a zero delay cannot observe a missing entry.
	h.timer = r.clock.AfterFunc(delay, func() {
		onFire(h)
		r.release(h)
	})
	r.entries[taskID] = h

	r.logger.Debug("timer scheduled",
		"task_id", taskID,
		"delay_ms", delay.Milliseconds())
	return true
}

// Cancel stops and removes the countdown for taskID. It reports whether an
// entry was present.
func (r *TimerRegistry) Cancel(taskID uuid.UUID) bool {
	r.mu.Lock()
	defer r.mu.Unlock()

	h, ok := r.entries[taskID]
	if !ok {
		return false
	}
	h.timer.Stop()
	delete(r.entries, taskID)

	r.logger.Debug("timer cancelled", "task_id", taskID)
	return true
}

// IsActive reports whether taskID has a registered countdown.
func (r *TimerRegistry) IsActive(taskID uuid.UUID) bool {
	r.mu.Lock()
	defer r.mu.Unlock()
	_, ok := r.entries[taskID]
	return ok
}

// Owns reports whether h is still the registered countdown for its task.
func (r *TimerRegistry) Owns(h *TimerHandle) bool {
	if h == nil {
		return false
	}
	r.mu.Lock()
	defer r.mu.Unlock()
	return r.entries[h.taskID] == h
}

// Len returns the number of registered countdowns.
func (r *TimerRegistry) Len() int {
	r.mu.Lock()
	defer r.mu.Unlock()
	return len(r.entries)
}

// StopAll stops and removes every countdown and returns how many there were.
func (r *TimerRegistry) StopAll() int {
	r.mu.Lock()
	defer r.mu.Unlock()

	n := len(r.entries)
	for id, h := range r.entries {
		h.timer.Stop()
		delete(r.entries, id)
	}
	return n
}

func (r *TimerRegistry) release(h *TimerHandle) {
	r.mu.Lock()
	defer r.mu.Unlock()
	if r.entries[h.taskID] == h {
		delete(r.entries, h.taskID)
	}
}

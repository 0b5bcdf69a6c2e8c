package domain

import (
	"errors"
	"strings"
	"time"

	"github.com/google/uuid"
)

// TaskStatus represents the lifecycle state of a task
type TaskStatus string

// Possible task status values
const (
	TaskStatusNotStarted TaskStatus = "NOT_STARTED"
	TaskStatusInProgress TaskStatus = "IN_PROGRESS"
	TaskStatusPaused     TaskStatus = "PAUSED"
	TaskStatusCancelled  TaskStatus = "CANCELLED"
	TaskStatusCompleted  TaskStatus = "COMPLETED"
)

// DefaultTaskDuration is the simulated work time given to new tasks when
// no other duration is configured.
const DefaultTaskDuration = 30 * time.Second

// Common validation errors for Task
var (
	ErrEmptyTaskID         = errors.New("task ID cannot be empty")
	ErrInvalidTaskStatus   = errors.New("invalid task status")
	ErrInvalidTaskDuration = errors.New("task duration must be positive")
	ErrInvalidElapsedTime  = errors.New("task elapsed time must be between 0 and duration")
	ErrCompletionMismatch  = errors.New("task result and completion time must be set only when completed")
)

// Task is a unit of simulated work. Duration and ElapsedTime are in
// milliseconds; ElapsedTime only accounts for finished active intervals,
// the running interval is measured from LastRunAt.
type Task struct {
	ID          uuid.UUID  `json:"id"`
	Title       string     `json:"title"`
	Description string     `json:"description"`
	Status      TaskStatus `json:"status"`
	Duration    int64      `json:"duration"`
	ElapsedTime int64      `json:"elapsedTime"`
	LastRunAt   *time.Time `json:"lastRunAt"`
	CompletedAt *time.Time `json:"completedAt"`
	Result      *string    `json:"result"`
	CreatedAt   time.Time  `json:"createdAt"`
	UpdatedAt   time.Time  `json:"updatedAt"`
}

// NewTask creates a new Task in NOT_STARTED status with a fresh ID.
// Title and description are trimmed; both are required.
// Returns an error if validation fails.
func NewTask(title, description string, duration time.Duration) (*Task, error) {
	now := time.Now().UTC()
	task := &Task{
		ID:          uuid.New(),
		Title:       strings.TrimSpace(title),
		Description: strings.TrimSpace(description),
		Status:      TaskStatusNotStarted,
		Duration:    duration.Milliseconds(),
		CreatedAt:   now,
		UpdatedAt:   now,
	}

	if err := task.Validate(); err != nil {
		return nil, err
	}

	return task, nil
}

// Validate checks if the Task has valid data.
// Missing title/description are reported together in a single
// *ValidationError so callers can list every absent field.
func (t *Task) Validate() error {
	if t.ID == uuid.Nil {
		return ErrEmptyTaskID
	}

	var missing []string
	if strings.TrimSpace(t.Title) == "" {
		missing = append(missing, "title")
	}
	if strings.TrimSpace(t.Description) == "" {
		missing = append(missing, "description")
	}
	if len(missing) > 0 {
		return NewMissingFieldsError(missing...)
	}

	if !t.Status.IsValid() {
		return ErrInvalidTaskStatus
	}

	if t.Duration <= 0 {
		return ErrInvalidTaskDuration
	}

	if t.ElapsedTime < 0 || t.ElapsedTime > t.Duration {
		return ErrInvalidElapsedTime
	}

	completed := t.Status == TaskStatusCompleted
	if completed != (t.Result != nil) || completed != (t.CompletedAt != nil) {
		return ErrCompletionMismatch
	}

	return nil
}

// Clone returns a deep copy of the task. Pointer fields are not shared.
func (t *Task) Clone() *Task {
	c := *t
	if t.LastRunAt != nil {
		v := *t.LastRunAt
		c.LastRunAt = &v
	}
	if t.CompletedAt != nil {
		v := *t.CompletedAt
		c.CompletedAt = &v
	}
	if t.Result != nil {
		v := *t.Result
		c.Result = &v
	}
	return &c
}

// DurationTime returns the total simulated work time.
func (t *Task) DurationTime() time.Duration {
	return time.Duration(t.Duration) * time.Millisecond
}

// Remaining returns the work left according to the accumulated elapsed
// time, never negative.
func (t *Task) Remaining() time.Duration {
	remaining := t.Duration - t.ElapsedTime
	if remaining < 0 {
		return 0
	}
	return time.Duration(remaining) * time.Millisecond
}

// ElapsedAt returns the accumulated elapsed time in milliseconds if the
// current active interval were closed at now. The result is clamped to
// Duration. Tasks that are not running report their stored value.
func (t *Task) ElapsedAt(now time.Time) int64 {
	elapsed := t.ElapsedTime
	if t.Status == TaskStatusInProgress && t.LastRunAt != nil {
		if delta := now.Sub(*t.LastRunAt).Milliseconds(); delta > 0 {
			elapsed += delta
		}
	}
	if elapsed > t.Duration {
		return t.Duration
	}
	return elapsed
}

// IsValid reports whether the status is one of the known values.
func (s TaskStatus) IsValid() bool {
	switch s {
	case TaskStatusNotStarted, TaskStatusInProgress, TaskStatusPaused,
		TaskStatusCancelled, TaskStatusCompleted:
		return true
	default:
		return false
	}
}

// Message returns the human-readable description of the status used in
// rejected-transition responses.
func (s TaskStatus) Message() string {
	switch s {
	case TaskStatusNotStarted:
		return "This task hasn't started yet."
	case TaskStatusCancelled:
		return "This task is already cancelled."
	case TaskStatusInProgress:
		return "This task is already running."
	case TaskStatusPaused:
		return "This task is already paused."
	case TaskStatusCompleted:
		return "This task is already completed."
	default:
		return "This task is in an unknown state."
	}
}

package store

import (
	"context"
	"time"

	"github.com/google/uuid"
	"github.com/phrazzld/tasktimer-api/internal/domain"
)

// TaskUpdate is a partial update of a task row. Nil fields are left
// unchanged.
type TaskUpdate struct {
	Status      *domain.TaskStatus
	ElapsedTime *int64
	LastRunAt   *time.Time
	CompletedAt *time.Time
	Result      *string
}

// Apply copies the update onto task and bumps UpdatedAt to now.
// Store implementations that read-modify-write use it so every backend
// interprets a TaskUpdate the same way.
func (u TaskUpdate) Apply(task *domain.Task, now time.Time) {
	if u.Status != nil {
		task.Status = *u.Status
	}
	if u.ElapsedTime != nil {
		task.ElapsedTime = *u.ElapsedTime
	}
	if u.LastRunAt != nil {
		t := u.LastRunAt.UTC()
		task.LastRunAt = &t
	}
	if u.CompletedAt != nil {
		t := u.CompletedAt.UTC()
		task.CompletedAt = &t
	}
	if u.Result != nil {
		r := *u.Result
		task.Result = &r
	}
	task.UpdatedAt = now.UTC()
}

// TaskStore defines the interface for task data persistence.
// Version: 1.0
type TaskStore interface {
	// Create builds a new NOT_STARTED task with a store-assigned ID and saves it.
	// Returns a *domain.ValidationError if title or description is empty.
	Create(ctx context.Context, title, description string, duration time.Duration) (*domain.Task, error)

	// GetByID retrieves a task by its unique ID.
	// Returns ErrTaskNotFound if the task does not exist.
	GetByID(ctx context.Context, id uuid.UUID) (*domain.Task, error)

	// Update applies a partial update and returns the updated task.
	// Returns ErrTaskNotFound if the task does not exist.
	Update(ctx context.Context, id uuid.UUID, update TaskUpdate) (*domain.Task, error)

	// List returns all tasks ordered by creation time.
	// Returns an empty slice if there are none.
	List(ctx context.Context) ([]*domain.Task, error)

	// ListByStatus returns all tasks with the given status ordered by creation time.
	ListByStatus(ctx context.Context, status domain.TaskStatus) ([]*domain.Task, error)
}

package events

import (
	"context"
	"time"

	"github.com/google/uuid"
	"github.com/phrazzld/tasktimer-api/internal/domain"
)

// Lifecycle event types published by the task engine.
const (
	TaskStarted   = "task.started"
	TaskPaused    = "task.paused"
	TaskResumed   = "task.resumed"
	TaskCancelled = "task.cancelled"
	TaskCompleted = "task.completed"
	TaskRecovered = "task.recovered"
)

// TaskEvent records one successful lifecycle transition of a task.
// It carries a snapshot of the fields that changed so handlers do not
// need to read the store.
type TaskEvent struct {
	// ID is a unique identifier for this event
	ID uuid.UUID `json:"id"`

	// Type is one of the Task* constants
	Type string `json:"type"`

	TaskID      uuid.UUID         `json:"taskId"`
	Status      domain.TaskStatus `json:"status"`
	ElapsedTime int64             `json:"elapsedTime"`
	Result      *string           `json:"result,omitempty"`

	// OccurredAt is the engine's clock reading when the transition happened
	OccurredAt time.Time `json:"occurredAt"`
}

// NewTaskEvent builds an event of eventType from the post-transition task.
func NewTaskEvent(eventType string, task *domain.Task, at time.Time) *TaskEvent {
	ev := &TaskEvent{
		ID:          uuid.New(),
		Type:        eventType,
		TaskID:      task.ID,
		Status:      task.Status,
		ElapsedTime: task.ElapsedTime,
		OccurredAt:  at.UTC(),
	}
	if task.Result != nil {
		r := *task.Result
		ev.Result = &r
	}
	return ev
}

// EventHandler defines an interface for components that can handle events.
// Handlers are responsible for processing events and taking appropriate actions.
type EventHandler interface {
	// HandleEvent processes the given event within the provided context.
	// Returns an error if the event cannot be handled successfully.
	HandleEvent(ctx context.Context, event *TaskEvent) error
}

// HandlerFunc adapts an ordinary function to EventHandler.
type HandlerFunc func(ctx context.Context, event *TaskEvent) error

// HandleEvent calls f(ctx, event).
func (f HandlerFunc) HandleEvent(ctx context.Context, event *TaskEvent) error {
	return f(ctx, event)
}

// EventEmitter defines an interface for components that can emit events.
// This allows the engine to publish transitions without direct knowledge of handlers.
type EventEmitter interface {
	// EmitEvent publishes the given event to all registered handlers.
	// Returns an error if the event cannot be emitted.
	EmitEvent(ctx context.Context, event *TaskEvent) error
}

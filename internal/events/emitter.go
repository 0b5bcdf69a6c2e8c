package events

import (
	"context"
	"log/slog"
	"sync"
)

// InMemoryEventEmitter delivers task events synchronously, in registration
// order, to the handlers registered with it.
type InMemoryEventEmitter struct {
	mu       sync.RWMutex
	handlers []EventHandler
	logger   *slog.Logger
}

// NewInMemoryEventEmitter returns an emitter with no handlers.
func NewInMemoryEventEmitter(logger *slog.Logger) *InMemoryEventEmitter {
	if logger == nil {
		logger = slog.Default()
	}
	return &InMemoryEventEmitter{
		logger: logger.With("component", "task_events"),
	}
}

// RegisterHandler subscribes handler to every later event.
func (e *InMemoryEventEmitter) RegisterHandler(handler EventHandler) {
	e.mu.Lock()
	e.handlers = append(e.handlers, handler)
	count := len(e.handlers)
	e.mu.Unlock()

	e.logger.Debug("task event handler registered", "handler_count", count)
}

// EmitEvent hands event to each handler. A failing handler does not stop
// delivery to the rest; the first failure is returned.
func (e *InMemoryEventEmitter) EmitEvent(ctx context.Context, event *TaskEvent) error {
	e.mu.RLock()
	handlers := append([]EventHandler(nil), e.handlers...)
	e.mu.RUnlock()

	if len(handlers) == 0 {
		return nil
	}

	var firstErr error
	for i, h := range handlers {
		err := h.HandleEvent(ctx, event)
		if err == nil {
			continue
		}
		e.logger.Error("task event handler failed",
			"error", err,
			"handler_index", i,
			"event_type", event.Type,
			"task_id", event.TaskID)
		if firstErr == nil {
			firstErr = err
		}
	}
	return firstErr
}

// NewLogHandler returns a handler that records every event at info level.
func NewLogHandler(logger *slog.Logger) EventHandler {
	logger = logger.With("component", "task_event_log")
	return HandlerFunc(func(ctx context.Context, event *TaskEvent) error {
		attrs := []any{
			"event_id", event.ID,
			"task_id", event.TaskID,
			"status", event.Status,
			"elapsed_ms", event.ElapsedTime,
		}
		if event.Result != nil {
			attrs = append(attrs, "result", *event.Result)
		}
		logger.InfoContext(ctx, event.Type, attrs...)
		return nil
	})
}

package service

import (
	"errors"
	"fmt"

	"github.com/phrazzld/tasktimer-api/internal/domain"
	"github.com/phrazzld/tasktimer-api/internal/store"
)

// Common service errors - sentinel errors used across service implementations.
// Callers check them with errors.Is(); the API layer maps them to HTTP status
// codes.
//
// Error handling principles:
// 1. Service methods return sentinel errors for expected error conditions
// 2. Domain validation and transition errors pass through unchanged
// 3. Unexpected errors are wrapped in *TaskServiceError
var (
	// ErrTaskNotFound indicates that the task does not exist.
	// API layer should map this to HTTP 404 Not Found.
	ErrTaskNotFound = errors.New("task not found")
)

// TaskServiceError wraps unexpected errors from the task service with context.
type TaskServiceError struct {
	// Operation is the operation that failed (e.g., "create_task", "run_task")
	Operation string
	// Message is a human-readable description of the error
	Message string
	// Err is the underlying error that caused the failure
	Err error
}

// Error implements the error interface for TaskServiceError.
func (e *TaskServiceError) Error() string {
	if e.Err != nil {
		return fmt.Sprintf("task service %s failed: %s: %v", e.Operation, e.Message, e.Err)
	}
	return fmt.Sprintf("task service %s failed: %s", e.Operation, e.Message)
}

// Unwrap returns the wrapped error to support errors.Is/errors.As.
func (e *TaskServiceError) Unwrap() error {
	return e.Err
}

// NewTaskServiceError classifies err for callers of the service.
// Not-found conditions become ErrTaskNotFound, domain validation and
// transition errors are returned as they are, and anything else is wrapped
// in a *TaskServiceError.
func NewTaskServiceError(operation, message string, err error) error {
	if err == nil {
		return nil
	}

	if errors.Is(err, ErrTaskNotFound) || errors.Is(err, store.ErrTaskNotFound) {
		return ErrTaskNotFound
	}

	var transitionErr *domain.TransitionError
	if errors.As(err, &transitionErr) {
		return transitionErr
	}

	var validationErr *domain.ValidationError
	if errors.As(err, &validationErr) {
		return validationErr
	}

	return &TaskServiceError{
		Operation: operation,
		Message:   message,
		Err:       err,
	}
}

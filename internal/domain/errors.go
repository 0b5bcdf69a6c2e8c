// Package domain defines the core business entities and errors.
package domain

import (
	"errors"
	"fmt"
	"strings"
)

// Common domain errors used across the application.
var (
	// ErrValidation is returned when a domain entity fails validation.
	// This is often wrapped with a more specific error message.
	ErrValidation = errors.New("validation failed")

	// ErrInvalidID is returned when an ID is malformed or invalid.
	ErrInvalidID = errors.New("invalid ID")

	// ErrIllegalTransition is returned when a lifecycle action is not allowed
	// from the task's current status. Use errors.As with *TransitionError to
	// get the action and status involved.
	ErrIllegalTransition = errors.New("illegal task transition")
)

// ValidationError describes one or more fields that failed validation.
type ValidationError struct {
	Fields  []string
	Message string
	Err     error
}

// NewValidationError creates a ValidationError for a single field.
func NewValidationError(field, message string, err error) *ValidationError {
	return &ValidationError{
		Fields:  []string{field},
		Message: message,
		Err:     err,
	}
}

// NewMissingFieldsError creates a ValidationError for required fields that
// were absent or empty.
func NewMissingFieldsError(fields ...string) *ValidationError {
	return &ValidationError{
		Fields:  fields,
		Message: "is required",
		Err:     ErrValidation,
	}
}

// Error implements the error interface for ValidationError.
func (e *ValidationError) Error() string {
	return fmt.Sprintf("%s %s", strings.Join(e.Fields, ", "), e.Message)
}

// Unwrap returns the wrapped error to support errors.Is/errors.As.
func (e *ValidationError) Unwrap() error {
	if e.Err == nil {
		return ErrValidation
	}
	return e.Err
}

// TransitionError is returned when a lifecycle action is attempted from a
// status that does not allow it.
type TransitionError struct {
	Action Action
	Status TaskStatus
}

// NewTransitionError creates a TransitionError for the given action and
// current status.
func NewTransitionError(action Action, status TaskStatus) *TransitionError {
	return &TransitionError{Action: action, Status: status}
}

// Error implements the error interface for TransitionError.
func (e *TransitionError) Error() string {
	return fmt.Sprintf("cannot %s task in status %s", e.Action, e.Status)
}

// Unwrap returns ErrIllegalTransition so callers can use errors.Is.
func (e *TransitionError) Unwrap() error {
	return ErrIllegalTransition
}

// UserMessage returns the client-facing explanation for the rejected
// transition, e.g. "This task is already paused. You can only resume a
// paused task." (run/pause/cancel read the same way).
func (e *TransitionError) UserMessage() string {
	return e.Status.Message() + " " + e.Action.Requirement()
}

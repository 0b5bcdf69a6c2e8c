package api

import (
	"errors"
	"fmt"
	"net/http"
	"strings"

	"github.com/phrazzld/tasktimer-api/internal/domain"
	"github.com/phrazzld/tasktimer-api/internal/service"
	"github.com/phrazzld/tasktimer-api/internal/store"
)

// Client-facing messages.
const (
	msgInvalidRequest = "Invalid request format"
	msgInvalidTaskID  = "Invalid task ID format"
	msgTaskNotFound   = "Task not found."
)

// MapErrorToStatusCode maps internal errors to appropriate HTTP status codes
// based on the error type. This prevents leaking internal error types or
// messages to clients.
func MapErrorToStatusCode(err error) int {
	var transitionErr *domain.TransitionError

	switch {
	case errors.Is(err, service.ErrTaskNotFound),
		errors.Is(err, store.ErrNotFound):
		return http.StatusNotFound

	case errors.As(err, &transitionErr):
		return http.StatusBadRequest

	case errors.Is(err, domain.ErrValidation),
		errors.Is(err, domain.ErrInvalidID),
		errors.Is(err, store.ErrInvalidEntity):
		return http.StatusBadRequest

	default:
		return http.StatusInternalServerError
	}
}

// GetSafeErrorMessage returns the message a client may see for err.
// fallback is used for anything unexpected, e.g. "An error occurred while
// running the task.".
func GetSafeErrorMessage(err error, fallback string) string {
	if err == nil {
		return fallback
	}

	var transitionErr *domain.TransitionError
	var validationErr *domain.ValidationError

	switch {
	case errors.Is(err, service.ErrTaskNotFound),
		errors.Is(err, store.ErrNotFound):
		return msgTaskNotFound

	case errors.As(err, &transitionErr):
		return transitionErr.UserMessage()

	case errors.Is(err, domain.ErrInvalidID):
		return msgInvalidTaskID

	case errors.As(err, &validationErr) && errors.Is(err, domain.ErrValidation):
		return MissingFieldsMessage(validationErr.Fields)

	case errors.Is(err, store.ErrInvalidEntity):
		return "Invalid task data"

	default:
		return fallback
	}
}

// MissingFieldsMessage lists required fields that were not supplied,
// e.g. "The following fields are required: title, description.".
func MissingFieldsMessage(fields []string) string {
	if len(fields) == 0 {
		return "Validation error"
	}
	return fmt.Sprintf("The following fields are required: %s.", strings.Join(fields, ", "))
}

// failureMessage builds the generic 5xx message for an operation.
func failureMessage(doing string) string {
	return fmt.Sprintf("An error occurred while %s.", doing)
}

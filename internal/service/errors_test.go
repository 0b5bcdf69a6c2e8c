package service

import (
	"errors"
	"fmt"
	"testing"

	"github.com/phrazzld/tasktimer-api/internal/domain"
	"github.com/phrazzld/tasktimer-api/internal/store"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestNewTaskServiceError(t *testing.T) {
	t.Parallel()

	assert.NoError(t, NewTaskServiceError("op", "msg", nil))

	assert.Equal(t, ErrTaskNotFound, NewTaskServiceError("op", "msg", store.ErrTaskNotFound))
	assert.Equal(t, ErrTaskNotFound,
		NewTaskServiceError("op", "msg", fmt.Errorf("wrapped: %w", store.ErrTaskNotFound)))

	transition := domain.NewTransitionError(domain.ActionPause, domain.TaskStatusPaused)
	assert.Same(t, transition, NewTaskServiceError("op", "msg", fmt.Errorf("x: %w", transition)))

	validation := domain.NewMissingFieldsError("title")
	assert.Same(t, validation, NewTaskServiceError("op", "msg", validation))

	cause := errors.New("disk full")
	err := NewTaskServiceError("run_task", "failed", cause)
	var svcErr *TaskServiceError
	require.ErrorAs(t, err, &svcErr)
	assert.Equal(t, "task service run_task failed: failed: disk full", err.Error())
	assert.ErrorIs(t, err, cause)
}

func TestTaskServiceError_NoCause(t *testing.T) {
	t.Parallel()

	err := &TaskServiceError{Operation: "create_service", Message: "repo cannot be nil"}
	assert.Equal(t, "task service create_service failed: repo cannot be nil", err.Error())
	assert.Nil(t, err.Unwrap())
}

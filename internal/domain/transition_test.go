package domain

import (
	"errors"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestCanTransition(t *testing.T) {
	t.Parallel()

	statuses := []TaskStatus{
		TaskStatusNotStarted,
		TaskStatusInProgress,
		TaskStatusPaused,
		TaskStatusCancelled,
		TaskStatusCompleted,
	}

	legal := map[Action]map[TaskStatus]bool{
		ActionRun:    {TaskStatusNotStarted: true, TaskStatusCancelled: true},
		ActionPause:  {TaskStatusInProgress: true},
		ActionResume: {TaskStatusPaused: true},
		ActionCancel: {TaskStatusInProgress: true, TaskStatusPaused: true},
	}

	for action, allowed := range legal {
		for _, status := range statuses {
			t.Run(string(action)+"_from_"+string(status), func(t *testing.T) {
				assert.Equal(t, allowed[status], CanTransition(action, status))
			})
		}
	}
}

func TestCheckTransition_CompletedIsTerminal(t *testing.T) {
	t.Parallel()

	for _, action := range []Action{ActionRun, ActionPause, ActionResume, ActionCancel} {
		err := CheckTransition(action, TaskStatusCompleted)
		require.Error(t, err)
		assert.True(t, errors.Is(err, ErrIllegalTransition))

		var trErr *TransitionError
		require.True(t, errors.As(err, &trErr))
		assert.Equal(t, action, trErr.Action)
		assert.Equal(t, TaskStatusCompleted, trErr.Status)
	}
}

func TestTransitionError_UserMessage(t *testing.T) {
	t.Parallel()

	tests := []struct {
		action Action
		status TaskStatus
		want   string
	}{
		{
			ActionRun, TaskStatusInProgress,
			"This task is already running. You can only run a task that hasn't started yet or has been cancelled.",
		},
		{
			ActionPause, TaskStatusNotStarted,
			"This task hasn't started yet. You can only pause a running task.",
		},
		{
			ActionResume, TaskStatusCompleted,
			"This task is already completed. You can only resume a paused task.",
		},
		{
			ActionCancel, TaskStatusCancelled,
			"This task is already cancelled. You can only cancel a running or paused task.",
		},
	}

	for _, tc := range tests {
		err := NewTransitionError(tc.action, tc.status)
		assert.Equal(t, tc.want, err.UserMessage())
		assert.Contains(t, err.Error(), string(tc.status))
	}
}

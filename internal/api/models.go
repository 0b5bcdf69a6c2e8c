package api

import (
	"time"

	"github.com/phrazzld/tasktimer-api/internal/domain"
)

// CreateTaskRequest defines the payload for creating a task.
type CreateTaskRequest struct {
	Title       string `json:"title"       validate:"required"`
	Description string `json:"description" validate:"required"`
}

// TaskResponse is the JSON representation of a task.
type TaskResponse struct {
	ID          string     `json:"id"`
	Title       string     `json:"title"`
	Description string     `json:"description"`
	Status      string     `json:"status"`
	Duration    int64      `json:"duration"`
	ElapsedTime int64      `json:"elapsedTime"`
	LastRunAt   *time.Time `json:"lastRunAt"`
	CompletedAt *time.Time `json:"completedAt"`
	Result      *string    `json:"result"`
	CreatedAt   time.Time  `json:"createdAt"`
	UpdatedAt   time.Time  `json:"updatedAt"`
}

func taskToResponse(task *domain.Task) TaskResponse {
	return TaskResponse{
		ID:          task.ID.String(),
		Title:       task.Title,
		Description: task.Description,
		Status:      string(task.Status),
		Duration:    task.Duration,
		ElapsedTime: task.ElapsedTime,
		LastRunAt:   task.LastRunAt,
		CompletedAt: task.CompletedAt,
		Result:      task.Result,
		CreatedAt:   task.CreatedAt,
		UpdatedAt:   task.UpdatedAt,
	}
}

func tasksToResponse(tasks []*domain.Task) []TaskResponse {
	out := make([]TaskResponse, 0, len(tasks))
	for _, t := range tasks {
		out = append(out, taskToResponse(t))
	}
	return out
}

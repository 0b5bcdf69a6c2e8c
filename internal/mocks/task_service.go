package mocks

import (
	"context"

	"github.com/google/uuid"
	"github.com/phrazzld/tasktimer-api/internal/domain"
	"github.com/phrazzld/tasktimer-api/internal/service"
)

// MockTaskService implements service.TaskService for testing
type MockTaskService struct {
	// Custom behavior functions
	CreateTaskFn func(ctx context.Context, title, description string) (*domain.Task, error)
	ListTasksFn  func(ctx context.Context) ([]*domain.Task, error)
	GetTaskFn    func(ctx context.Context, id uuid.UUID) (*domain.Task, error)
	RunTaskFn    func(ctx context.Context, id uuid.UUID) (*domain.Task, error)
	PauseTaskFn  func(ctx context.Context, id uuid.UUID) (*domain.Task, error)
	ResumeTaskFn func(ctx context.Context, id uuid.UUID) (*domain.Task, error)
	CancelTaskFn func(ctx context.Context, id uuid.UUID) (*domain.Task, error)

	// Default return values
	Task         *domain.Task
	Tasks        []*domain.Task
	DefaultError error
}

var _ service.TaskService = (*MockTaskService)(nil)

// CreateTask implements the TaskService.CreateTask method
func (m *MockTaskService) CreateTask(ctx context.Context, title, description string) (*domain.Task, error) {
	if m.CreateTaskFn != nil {
		return m.CreateTaskFn(ctx, title, description)
	}
	return m.Task, m.DefaultError
}

// ListTasks implements the TaskService.ListTasks method
func (m *MockTaskService) ListTasks(ctx context.Context) ([]*domain.Task, error) {
	if m.ListTasksFn != nil {
		return m.ListTasksFn(ctx)
	}
	return m.Tasks, m.DefaultError
}

// GetTask implements the TaskService.GetTask method
func (m *MockTaskService) GetTask(ctx context.Context, id uuid.UUID) (*domain.Task, error) {
	return m.byID(m.GetTaskFn, ctx, id)
}

// RunTask implements the TaskService.RunTask method
func (m *MockTaskService) RunTask(ctx context.Context, id uuid.UUID) (*domain.Task, error) {
	return m.byID(m.RunTaskFn, ctx, id)
}

// PauseTask implements the TaskService.PauseTask method
func (m *MockTaskService) PauseTask(ctx context.Context, id uuid.UUID) (*domain.Task, error) {
	return m.byID(m.PauseTaskFn, ctx, id)
}

// ResumeTask implements the TaskService.ResumeTask method
func (m *MockTaskService) ResumeTask(ctx context.Context, id uuid.UUID) (*domain.Task, error) {
	return m.byID(m.ResumeTaskFn, ctx, id)
}

// CancelTask implements the TaskService.CancelTask method
func (m *MockTaskService) CancelTask(ctx context.Context, id uuid.UUID) (*domain.Task, error) {
	return m.byID(m.CancelTaskFn, ctx, id)
}

func (m *MockTaskService) byID(
	fn func(context.Context, uuid.UUID) (*domain.Task, error),
	ctx context.Context,
	id uuid.UUID,
) (*domain.Task, error) {
	if fn != nil {
		return fn(ctx, id)
	}
	return m.Task, m.DefaultError
}

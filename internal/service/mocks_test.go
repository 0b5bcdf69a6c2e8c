package service

import (
	"context"
	"time"

	"github.com/google/uuid"
	"github.com/phrazzld/tasktimer-api/internal/domain"
	"github.com/stretchr/testify/mock"
)

// MockTaskRepository mocks the TaskRepository interface
type MockTaskRepository struct {
	mock.Mock
}

func (m *MockTaskRepository) Create(
	ctx context.Context,
	title, description string,
	duration time.Duration,
) (*domain.Task, error) {
	args := m.Called(ctx, title, description, duration)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*domain.Task), args.Error(1)
}

func (m *MockTaskRepository) GetByID(ctx context.Context, id uuid.UUID) (*domain.Task, error) {
	args := m.Called(ctx, id)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*domain.Task), args.Error(1)
}

func (m *MockTaskRepository) List(ctx context.Context) ([]*domain.Task, error) {
	args := m.Called(ctx)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).([]*domain.Task), args.Error(1)
}

// MockLifecycleEngine mocks the LifecycleEngine interface
type MockLifecycleEngine struct {
	mock.Mock
}

func (m *MockLifecycleEngine) Run(ctx context.Context, id uuid.UUID) (*domain.Task, error) {
	args := m.Called(ctx, id)
	return taskOrNil(args), args.Error(1)
}

func (m *MockLifecycleEngine) Pause(ctx context.Context, id uuid.UUID) (*domain.Task, error) {
	args := m.Called(ctx, id)
	return taskOrNil(args), args.Error(1)
}

func (m *MockLifecycleEngine) Resume(ctx context.Context, id uuid.UUID) (*domain.Task, error) {
	args := m.Called(ctx, id)
	return taskOrNil(args), args.Error(1)
}

func (m *MockLifecycleEngine) Cancel(ctx context.Context, id uuid.UUID) (*domain.Task, error) {
	args := m.Called(ctx, id)
	return taskOrNil(args), args.Error(1)
}

func taskOrNil(args mock.Arguments) *domain.Task {
	if args.Get(0) == nil {
		return nil
	}
	return args.Get(0).(*domain.Task)
}

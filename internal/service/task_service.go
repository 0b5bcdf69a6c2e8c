package service

import (
	"context"
	"errors"
	"log/slog"
	"time"

	"github.com/google/uuid"
	"github.com/phrazzld/tasktimer-api/internal/domain"
	"github.com/phrazzld/tasktimer-api/internal/platform/logger"
	"github.com/phrazzld/tasktimer-api/internal/redact"
)

// TaskRepository defines the store operations the service reads and creates
// with. Lifecycle writes go through the LifecycleEngine only.
type TaskRepository interface {
	// Create builds and saves a new NOT_STARTED task
	Create(ctx context.Context, title, description string, duration time.Duration) (*domain.Task, error)

	// GetByID retrieves a task by its unique ID
	GetByID(ctx context.Context, id uuid.UUID) (*domain.Task, error)

	// List returns all tasks in creation order
	List(ctx context.Context) ([]*domain.Task, error)
}

// LifecycleEngine performs the timer-backed transitions of a task.
// *task.Engine satisfies it.
type LifecycleEngine interface {
	Run(ctx context.Context, id uuid.UUID) (*domain.Task, error)
	Pause(ctx context.Context, id uuid.UUID) (*domain.Task, error)
	Resume(ctx context.Context, id uuid.UUID) (*domain.Task, error)
	Cancel(ctx context.Context, id uuid.UUID) (*domain.Task, error)
}

// TaskService provides the task operations exposed by the API.
type TaskService interface {
	// CreateTask creates a NOT_STARTED task with the default duration
	CreateTask(ctx context.Context, title, description string) (*domain.Task, error)

	// ListTasks returns every task in creation order, never nil
	ListTasks(ctx context.Context) ([]*domain.Task, error)

	// GetTask retrieves a single task
	GetTask(ctx context.Context, id uuid.UUID) (*domain.Task, error)

	// RunTask starts a NOT_STARTED or CANCELLED task from zero
	RunTask(ctx context.Context, id uuid.UUID) (*domain.Task, error)

	// PauseTask pauses a running task
	PauseTask(ctx context.Context, id uuid.UUID) (*domain.Task, error)

	// ResumeTask resumes a paused task
	ResumeTask(ctx context.Context, id uuid.UUID) (*domain.Task, error)

	// CancelTask cancels a running or paused task
	CancelTask(ctx context.Context, id uuid.UUID) (*domain.Task, error)
}

// taskServiceImpl implements the TaskService interface
type taskServiceImpl struct {
	repo            TaskRepository
	engine          LifecycleEngine
	defaultDuration time.Duration
	logger          *slog.Logger
}

// NewTaskService creates a new TaskService.
// It returns an error if any of the required dependencies are nil.
// A non-positive defaultDuration selects domain.DefaultTaskDuration.
func NewTaskService(
	repo TaskRepository,
	engine LifecycleEngine,
	defaultDuration time.Duration,
	logger *slog.Logger,
) (TaskService, error) {
	if repo == nil {
		return nil, &TaskServiceError{
			Operation: "create_service",
			Message:   "repo cannot be nil",
		}
	}
	if engine == nil {
		return nil, &TaskServiceError{
			Operation: "create_service",
			Message:   "engine cannot be nil",
		}
	}
	if defaultDuration <= 0 {
		defaultDuration = domain.DefaultTaskDuration
	}
	if logger == nil {
		logger = slog.Default()
	}

	return &taskServiceImpl{
		repo:            repo,
		engine:          engine,
		defaultDuration: defaultDuration,
		logger:          logger.With("component", "task_service"),
	}, nil
}

// CreateTask validates and stores a new task
func (s *taskServiceImpl) CreateTask(ctx context.Context, title, description string) (*domain.Task, error) {
	log := s.log(ctx)

	task, err := s.repo.Create(ctx, title, description, s.defaultDuration)
	if err != nil {
		var validationErr *domain.ValidationError
		if errors.As(err, &validationErr) {
			log.Debug("task creation rejected", "fields", validationErr.Fields)
		} else {
			log.Error("failed to create task", "error", redact.Error(err))
		}
		return nil, NewTaskServiceError("create_task", "failed to save task", err)
	}

	log.Info("task created", "task_id", task.ID, "duration_ms", task.Duration)
	return task, nil
}

// ListTasks returns all tasks
func (s *taskServiceImpl) ListTasks(ctx context.Context) ([]*domain.Task, error) {
	tasks, err := s.repo.List(ctx)
	if err != nil {
		s.log(ctx).Error("failed to list tasks", "error", redact.Error(err))
		return nil, NewTaskServiceError("list_tasks", "failed to retrieve tasks", err)
	}
	if tasks == nil {
		tasks = []*domain.Task{}
	}
	return tasks, nil
}

// GetTask retrieves a task by its ID
func (s *taskServiceImpl) GetTask(ctx context.Context, id uuid.UUID) (*domain.Task, error) {
	task, err := s.repo.GetByID(ctx, id)
	if err != nil {
		err = NewTaskServiceError("get_task", "failed to retrieve task", err)
		s.logFailure(ctx, "failed to retrieve task", id, err)
		return nil, err
	}
	return task, nil
}

// RunTask starts a task's countdown
func (s *taskServiceImpl) RunTask(ctx context.Context, id uuid.UUID) (*domain.Task, error) {
	return s.transition(ctx, "run_task", id, s.engine.Run)
}

// PauseTask pauses a running task
func (s *taskServiceImpl) PauseTask(ctx context.Context, id uuid.UUID) (*domain.Task, error) {
	return s.transition(ctx, "pause_task", id, s.engine.Pause)
}

// ResumeTask resumes a paused task
func (s *taskServiceImpl) ResumeTask(ctx context.Context, id uuid.UUID) (*domain.Task, error) {
	return s.transition(ctx, "resume_task", id, s.engine.Resume)
}

// CancelTask cancels a running or paused task
func (s *taskServiceImpl) CancelTask(ctx context.Context, id uuid.UUID) (*domain.Task, error) {
	return s.transition(ctx, "cancel_task", id, s.engine.Cancel)
}

func (s *taskServiceImpl) transition(
	ctx context.Context,
	operation string,
	id uuid.UUID,
	apply func(context.Context, uuid.UUID) (*domain.Task, error),
) (*domain.Task, error) {
	task, err := apply(ctx, id)
	if err != nil {
		err = NewTaskServiceError(operation, "failed to change task status", err)
		s.logFailure(ctx, operation+" failed", id, err)
		return nil, err
	}

	s.log(ctx).Debug("task status changed",
		"operation", operation,
		"task_id", id,
		"status", task.Status)
	return task, nil
}

// logFailure logs expected client errors at debug and everything else at error.
func (s *taskServiceImpl) logFailure(ctx context.Context, msg string, id uuid.UUID, err error) {
	var serviceErr *TaskServiceError
	if errors.As(err, &serviceErr) {
		s.log(ctx).Error(msg, "task_id", id, "error", redact.Error(err))
		return
	}
	s.log(ctx).Debug(msg, "task_id", id, "error", err.Error())
}

func (s *taskServiceImpl) log(ctx context.Context) *slog.Logger {
	return logger.FromContextOrDefault(ctx, s.logger)
}

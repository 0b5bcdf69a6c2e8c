package memory

import (
	"context"
	"fmt"
	"sync"
	"time"

	"github.com/google/uuid"
	"github.com/phrazzld/tasktimer-api/internal/domain"
	"github.com/phrazzld/tasktimer-api/internal/store"
)

// TaskStore keeps tasks in a map guarded by a RWMutex. Callers always
// receive copies, never the stored values.
type TaskStore struct {
	mu    sync.RWMutex
	tasks map[uuid.UUID]*domain.Task
	// order holds IDs in creation order
	order []uuid.UUID
	now   func() time.Time
}

// Compile-time check to ensure TaskStore implements store.TaskStore
var _ store.TaskStore = (*TaskStore)(nil)

// NewTaskStore creates an empty store.
func NewTaskStore() *TaskStore {
	return &TaskStore{
		tasks: make(map[uuid.UUID]*domain.Task),
		now:   time.Now,
	}
}

// Create implements store.TaskStore.
func (s *TaskStore) Create(ctx context.Context, title, description string, duration time.Duration) (*domain.Task, error) {
	task, err := domain.NewTask(title, description, duration)
	if err != nil {
		return nil, err
	}

	s.mu.Lock()
	s.tasks[task.ID] = task.Clone()
	s.order = append(s.order, task.ID)
	s.mu.Unlock()

	return task, nil
}

// GetByID implements store.TaskStore.
func (s *TaskStore) GetByID(ctx context.Context, id uuid.UUID) (*domain.Task, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()

	task, ok := s.tasks[id]
	if !ok {
		return nil, store.ErrTaskNotFound
	}
	return task.Clone(), nil
}

// Update implements store.TaskStore.
func (s *TaskStore) Update(ctx context.Context, id uuid.UUID, update store.TaskUpdate) (*domain.Task, error) {
	s.mu.Lock()
	defer s.mu.Unlock()

	current, ok := s.tasks[id]
	if !ok {
		return nil, store.ErrTaskNotFound
	}

	next := current.Clone()
	update.Apply(next, s.now())
	if err := next.Validate(); err != nil {
		return nil, store.NewStoreError("task", "update", "update would leave task invalid",
			fmt.Errorf("%w: %w", store.ErrInvalidEntity, err))
	}

	s.tasks[id] = next
	return next.Clone(), nil
}

// List implements store.TaskStore.
func (s *TaskStore) List(ctx context.Context) ([]*domain.Task, error) {
	return s.collect(func(*domain.Task) bool { return true }), nil
}

// ListByStatus implements store.TaskStore.
func (s *TaskStore) ListByStatus(ctx context.Context, status domain.TaskStatus) ([]*domain.Task, error) {
	return s.collect(func(t *domain.Task) bool { return t.Status == status }), nil
}

func (s *TaskStore) collect(keep func(*domain.Task) bool) []*domain.Task {
	s.mu.RLock()
	defer s.mu.RUnlock()

	tasks := make([]*domain.Task, 0, len(s.order))
	for _, id := range s.order {
		if t := s.tasks[id]; keep(t) {
			tasks = append(tasks, t.Clone())
		}
	}
	return tasks
}

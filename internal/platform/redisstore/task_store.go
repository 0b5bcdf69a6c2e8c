package redisstore

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"log/slog"
	"time"

	"github.com/google/uuid"
	"github.com/phrazzld/tasktimer-api/internal/domain"
	"github.com/phrazzld/tasktimer-api/internal/platform/logger"
	"github.com/phrazzld/tasktimer-api/internal/store"
	"github.com/redis/go-redis/v9"
)

const (
	// DefaultKeyPrefix namespaces every key the store writes.
	DefaultKeyPrefix = "tasktimer"

	// maxUpdateRetries bounds the optimistic transaction retries in Update.
	maxUpdateRetries = 10
)

// TaskStore implements store.TaskStore on a Redis client.
type TaskStore struct {
	client redis.UniversalClient
	prefix string
	logger *slog.Logger
	now    func() time.Time
}

var _ store.TaskStore = (*TaskStore)(nil)

// NewTaskStore creates a store on client. An empty prefix selects
// DefaultKeyPrefix. If logger is nil, the default logger is used.
func NewTaskStore(client redis.UniversalClient, prefix string, logger *slog.Logger) *TaskStore {
	if client == nil {
		panic("redis client cannot be nil")
	}
	if prefix == "" {
		prefix = DefaultKeyPrefix
	}
	if logger == nil {
		logger = slog.Default()
	}

	return &TaskStore{
		client: client,
		prefix: prefix,
		logger: logger.With(slog.String("component", "task_store")),
		now:    time.Now,
	}
}

func (s *TaskStore) taskKey(id uuid.UUID) string {
	return fmt.Sprintf("%s:task:%s", s.prefix, id)
}

func (s *TaskStore) indexKey() string {
	return s.prefix + ":tasks"
}

// Create implements store.TaskStore.
func (s *TaskStore) Create(ctx context.Context, title, description string, duration time.Duration) (*domain.Task, error) {
	log := logger.FromContextOrDefault(ctx, s.logger)

	task, err := domain.NewTask(title, description, duration)
	if err != nil {
		log.Debug("task validation failed during create", slog.String("error", err.Error()))
		return nil, err
	}

	payload, err := json.Marshal(task)
	if err != nil {
		return nil, store.NewStoreError("task", "create", "failed to encode task", err)
	}

	ok, err := s.client.SetNX(ctx, s.taskKey(task.ID), payload, 0).Result()
	if err != nil {
		log.Error("failed to create task", slog.String("error", err.Error()), slog.String("task_id", task.ID.String()))
		return nil, store.NewStoreError("task", "create", "failed to write task", err)
	}
	if !ok {
		return nil, store.NewStoreError("task", "create", "task id already in use", store.ErrDuplicate)
	}

	member := redis.Z{Score: float64(task.CreatedAt.UnixMicro()), Member: task.ID.String()}
	if err := s.client.ZAdd(ctx, s.indexKey(), member).Err(); err != nil {
		// Leave no orphan document behind an index that does not list it.
		s.client.Del(context.WithoutCancel(ctx), s.taskKey(task.ID))
		log.Error("failed to index task", slog.String("error", err.Error()), slog.String("task_id", task.ID.String()))
		return nil, store.NewStoreError("task", "create", "failed to index task", err)
	}

	log.Debug("task created", slog.String("task_id", task.ID.String()))
	return task, nil
}

// GetByID implements store.TaskStore.
func (s *TaskStore) GetByID(ctx context.Context, id uuid.UUID) (*domain.Task, error) {
	raw, err := s.client.Get(ctx, s.taskKey(id)).Bytes()
	if err != nil {
		if errors.Is(err, redis.Nil) {
			return nil, store.ErrTaskNotFound
		}
		return nil, store.NewStoreError("task", "get", "failed to read task", err)
	}
	return decodeTask(raw)
}

// Update implements store.TaskStore.
func (s *TaskStore) Update(ctx context.Context, id uuid.UUID, update store.TaskUpdate) (*domain.Task, error) {
	log := logger.FromContextOrDefault(ctx, s.logger)
	key := s.taskKey(id)

	var updated *domain.Task
	txf := func(tx *redis.Tx) error {
		raw, err := tx.Get(ctx, key).Bytes()
		if err != nil {
			if errors.Is(err, redis.Nil) {
				return store.ErrTaskNotFound
			}
			return err
		}

		task, err := decodeTask(raw)
		if err != nil {
			return err
		}

		update.Apply(task, s.now())
		if err := task.Validate(); err != nil {
			return store.NewStoreError("task", "update", "update would leave task invalid",
				fmt.Errorf("%w: %w", store.ErrInvalidEntity, err))
		}

		payload, err := json.Marshal(task)
		if err != nil {
			return err
		}

		_, err = tx.TxPipelined(ctx, func(pipe redis.Pipeliner) error {
			pipe.Set(ctx, key, payload, 0)
			return nil
		})
		if err == nil {
			updated = task
		}
		return err
	}

	for attempt := 0; attempt < maxUpdateRetries; attempt++ {
		err := s.client.Watch(ctx, txf, key)
		if err == nil {
			return updated, nil
		}
		if errors.Is(err, redis.TxFailedErr) {
			log.Debug("task update conflicted, retrying",
				slog.String("task_id", id.String()),
				slog.Int("attempt", attempt+1))
			continue
		}

		var storeErr *store.StoreError
		if errors.Is(err, store.ErrTaskNotFound) || errors.As(err, &storeErr) {
			return nil, err
		}
		log.Error("failed to update task", slog.String("error", err.Error()), slog.String("task_id", id.String()))
		return nil, store.NewStoreError("task", "update", "failed to update task", err)
	}

	log.Warn("task update gave up after conflicts", slog.String("task_id", id.String()))
	return nil, store.NewStoreError("task", "update", "too many concurrent writers", store.ErrUpdateFailed)
}

// List implements store.TaskStore.
func (s *TaskStore) List(ctx context.Context) ([]*domain.Task, error) {
	return s.collect(ctx, func(*domain.Task) bool { return true })
}

// ListByStatus implements store.TaskStore.
func (s *TaskStore) ListByStatus(ctx context.Context, status domain.TaskStatus) ([]*domain.Task, error) {
	return s.collect(ctx, func(t *domain.Task) bool { return t.Status == status })
}

func (s *TaskStore) collect(ctx context.Context, keep func(*domain.Task) bool) ([]*domain.Task, error) {
	ids, err := s.client.ZRange(ctx, s.indexKey(), 0, -1).Result()
	if err != nil {
		return nil, store.NewStoreError("task", "list", "failed to read task index", err)
	}

	tasks := make([]*domain.Task, 0, len(ids))
	if len(ids) == 0 {
		return tasks, nil
	}

	keys := make([]string, len(ids))
	for i, id := range ids {
		keys[i] = fmt.Sprintf("%s:task:%s", s.prefix, id)
	}

	values, err := s.client.MGet(ctx, keys...).Result()
	if err != nil {
		return nil, store.NewStoreError("task", "list", "failed to read tasks", err)
	}

	for _, v := range values {
		raw, ok := v.(string)
		if !ok {
			// indexed but the document is gone
			continue
		}
		task, err := decodeTask([]byte(raw))
		if err != nil {
			return nil, err
		}
		if keep(task) {
			tasks = append(tasks, task)
		}
	}
	return tasks, nil
}

func decodeTask(raw []byte) (*domain.Task, error) {
	var task domain.Task
	if err := json.Unmarshal(raw, &task); err != nil {
		return nil, store.NewStoreError("task", "decode", "stored task is not valid JSON", err)
	}
	return &task, nil
}

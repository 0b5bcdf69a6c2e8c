package postgres

import (
	"context"
	"database/sql"
	"errors"
	"fmt"
	"log/slog"
	"strings"
	"time"

	"github.com/google/uuid"
	"github.com/phrazzld/tasktimer-api/internal/domain"
	"github.com/phrazzld/tasktimer-api/internal/platform/logger"
	"github.com/phrazzld/tasktimer-api/internal/store"
)

const taskColumns = `id, title, description, status, duration_ms, elapsed_time_ms,
	last_run_at, completed_at, result, created_at, updated_at`

// PostgresTaskStore implements the store.TaskStore interface
// using a PostgreSQL database as the storage backend.
type PostgresTaskStore struct {
	db     store.DBTX
	logger *slog.Logger
}

// NewPostgresTaskStore creates a new PostgreSQL implementation of the TaskStore interface.
// It accepts a database connection or transaction that should be initialized and managed by the caller.
// If logger is nil, a default logger will be used.
func NewPostgresTaskStore(db store.DBTX, logger *slog.Logger) *PostgresTaskStore {
	// Validate inputs
	if db == nil {
		panic("db cannot be nil")
	}

	// Use provided logger or create default
	if logger == nil {
		logger = slog.Default()
	}

	return &PostgresTaskStore{
		db:     db,
		logger: logger.With(slog.String("component", "task_store")),
	}
}

// Ensure PostgresTaskStore implements store.TaskStore interface
var _ store.TaskStore = (*PostgresTaskStore)(nil)

// Create implements store.TaskStore.Create
// It builds and validates a new task, then inserts it.
// Returns validation errors from the domain Task if data is invalid.
func (s *PostgresTaskStore) Create(
	ctx context.Context,
	title, description string,
	duration time.Duration,
) (*domain.Task, error) {
	log := logger.FromContextOrDefault(ctx, s.logger)

	task, err := domain.NewTask(title, description, duration)
	if err != nil {
		log.Debug("task validation failed during create", slog.String("error", err.Error()))
		return nil, err
	}

	query := `
		INSERT INTO tasks (id, title, description, status, duration_ms, elapsed_time_ms, created_at, updated_at)
		VALUES ($1, $2, $3, $4, $5, $6, $7, $8)
	`
	_, err = s.db.ExecContext(
		ctx,
		query,
		task.ID,
		task.Title,
		task.Description,
		string(task.Status),
		task.Duration,
		task.ElapsedTime,
		task.CreatedAt,
		task.UpdatedAt,
	)
	if err != nil {
		log.Error("failed to create task",
			slog.String("error", err.Error()),
			slog.String("task_id", task.ID.String()))
		return nil, MapError(err)
	}

	log.Debug("task created", slog.String("task_id", task.ID.String()))
	return task, nil
}

// GetByID implements store.TaskStore.GetByID
// Returns store.ErrTaskNotFound if the task does not exist.
func (s *PostgresTaskStore) GetByID(ctx context.Context, id uuid.UUID) (*domain.Task, error) {
	log := logger.FromContextOrDefault(ctx, s.logger)

	query := `SELECT ` + taskColumns + ` FROM tasks WHERE id = $1`

	task, err := scanTask(s.db.QueryRowContext(ctx, query, id))
	if err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			log.Debug("task not found", slog.String("task_id", id.String()))
			return nil, store.ErrTaskNotFound
		}
		log.Error("failed to get task",
			slog.String("task_id", id.String()),
			slog.String("error", err.Error()))
		return nil, MapError(err)
	}

	return task, nil
}

// Update implements store.TaskStore.Update
// Only the fields set in update are written; updated_at is always bumped.
// Returns store.ErrTaskNotFound if the task does not exist.
func (s *PostgresTaskStore) Update(ctx context.Context, id uuid.UUID, update store.TaskUpdate) (*domain.Task, error) {
	log := logger.FromContextOrDefault(ctx, s.logger)

	query, args := buildUpdate(id, update, time.Now().UTC())

	task, err := scanTask(s.db.QueryRowContext(ctx, query, args...))
	if err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			log.Debug("task not found for update", slog.String("task_id", id.String()))
			return nil, store.ErrTaskNotFound
		}
		log.Error("failed to update task",
			slog.String("task_id", id.String()),
			slog.String("error", err.Error()))
		return nil, MapError(err)
	}

	return task, nil
}

// List implements store.TaskStore.List
func (s *PostgresTaskStore) List(ctx context.Context) ([]*domain.Task, error) {
	query := `SELECT ` + taskColumns + ` FROM tasks ORDER BY created_at ASC, id ASC`
	return s.query(ctx, "list", query)
}

// ListByStatus implements store.TaskStore.ListByStatus
func (s *PostgresTaskStore) ListByStatus(ctx context.Context, status domain.TaskStatus) ([]*domain.Task, error) {
	query := `SELECT ` + taskColumns + ` FROM tasks WHERE status = $1 ORDER BY created_at ASC, id ASC`
	return s.query(ctx, "list_by_status", query, string(status))
}

func (s *PostgresTaskStore) query(ctx context.Context, op, query string, args ...any) ([]*domain.Task, error) {
	log := logger.FromContextOrDefault(ctx, s.logger)

	rows, err := s.db.QueryContext(ctx, query, args...)
	if err != nil {
		log.Error("failed to query tasks",
			slog.String("operation", op),
			slog.String("error", err.Error()))
		return nil, MapError(err)
	}
	defer func() {
		if cerr := rows.Close(); cerr != nil {
			log.Warn("failed to close rows", slog.String("error", cerr.Error()))
		}
	}()

	tasks := make([]*domain.Task, 0)
	for rows.Next() {
		task, err := scanTask(rows)
		if err != nil {
			return nil, store.NewStoreError("task", op, "failed to scan row", MapError(err))
		}
		tasks = append(tasks, task)
	}
	if err := rows.Err(); err != nil {
		return nil, store.NewStoreError("task", op, "row iteration failed", MapError(err))
	}

	return tasks, nil
}

// buildUpdate renders the UPDATE ... RETURNING statement for the fields set
// in update. $1 is always the task ID.
func buildUpdate(id uuid.UUID, update store.TaskUpdate, now time.Time) (string, []any) {
	args := []any{id}
	var sets []string
	add := func(column string, value any) {
		args = append(args, value)
		sets = append(sets, fmt.Sprintf("%s = $%d", column, len(args)))
	}

	if update.Status != nil {
		add("status", string(*update.Status))
	}
	if update.ElapsedTime != nil {
		add("elapsed_time_ms", *update.ElapsedTime)
	}
	if update.LastRunAt != nil {
		add("last_run_at", update.LastRunAt.UTC())
	}
	if update.CompletedAt != nil {
		add("completed_at", update.CompletedAt.UTC())
	}
	if update.Result != nil {
		add("result", *update.Result)
	}
	add("updated_at", now)

	query := `UPDATE tasks SET ` + strings.Join(sets, ", ") +
		` WHERE id = $1 RETURNING ` + taskColumns
	return query, args
}

// rowScanner is satisfied by *sql.Row and *sql.Rows.
type rowScanner interface {
	Scan(dest ...any) error
}

func scanTask(row rowScanner) (*domain.Task, error) {
	var (
		task        domain.Task
		status      string
		lastRunAt   sql.NullTime
		completedAt sql.NullTime
		result      sql.NullString
	)

	err := row.Scan(
		&task.ID,
		&task.Title,
		&task.Description,
		&status,
		&task.Duration,
		&task.ElapsedTime,
		&lastRunAt,
		&completedAt,
		&result,
		&task.CreatedAt,
		&task.UpdatedAt,
	)
	if err != nil {
		return nil, err
	}

	task.Status = domain.TaskStatus(status)
	task.CreatedAt = task.CreatedAt.UTC()
	task.UpdatedAt = task.UpdatedAt.UTC()
	if lastRunAt.Valid {
		t := lastRunAt.Time.UTC()
		task.LastRunAt = &t
	}
	if completedAt.Valid {
		t := completedAt.Time.UTC()
		task.CompletedAt = &t
	}
	if result.Valid {
		r := result.String
		task.Result = &r
	}

	return &task, nil
}

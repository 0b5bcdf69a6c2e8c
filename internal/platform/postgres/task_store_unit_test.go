package postgres

import (
	"testing"
	"time"

	"github.com/google/uuid"
	"github.com/phrazzld/tasktimer-api/internal/domain"
	"github.com/phrazzld/tasktimer-api/internal/store"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestNewPostgresTaskStore_NilDBPanics(t *testing.T) {
	assert.Panics(t, func() { NewPostgresTaskStore(nil, nil) })
}

func TestBuildUpdate(t *testing.T) {
	id := uuid.New()
	now := time.Date(2025, time.July, 1, 12, 0, 0, 0, time.UTC)

	t.Run("only updated_at", func(t *testing.T) {
		query, args := buildUpdate(id, store.TaskUpdate{}, now)
		assert.Contains(t, query, "UPDATE tasks SET updated_at = $2 WHERE id = $1 RETURNING ")
		assert.Equal(t, []any{id, now}, args)
	})

	t.Run("all fields", func(t *testing.T) {
		status := domain.TaskStatusCompleted
		elapsed := int64(1000)
		loc := time.FixedZone("UTC+1", 3600)
		lastRun := time.Date(2025, time.July, 1, 13, 0, 0, 0, loc)
		completed := lastRun.Add(time.Second)
		result := "🍔 Burger"

		query, args := buildUpdate(id, store.TaskUpdate{
			Status:      &status,
			ElapsedTime: &elapsed,
			LastRunAt:   &lastRun,
			CompletedAt: &completed,
			Result:      &result,
		}, now)

		assert.Contains(t, query,
			"SET status = $2, elapsed_time_ms = $3, last_run_at = $4, completed_at = $5, result = $6, updated_at = $7 WHERE id = $1")
		require.Len(t, args, 7)
		assert.Equal(t, id, args[0])
		assert.Equal(t, "COMPLETED", args[1])
		assert.Equal(t, int64(1000), args[2])
		assert.Equal(t, time.UTC, args[3].(time.Time).Location())
		assert.True(t, args[3].(time.Time).Equal(lastRun))
		assert.True(t, args[4].(time.Time).Equal(completed))
		assert.Equal(t, result, args[5])
		assert.Equal(t, now, args[6])
	})
}

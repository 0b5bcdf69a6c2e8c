//go:build integration

package testdb

import (
	"database/sql"
	"fmt"
	"sync"
	"testing"

	"github.com/phrazzld/tasktimer-api/internal/platform/postgres/migrations"
	"github.com/pressly/goose/v3"
	"github.com/stretchr/testify/require"
)

// goose keeps its configuration in package globals.
var gooseMu sync.Mutex

// SetupTestDatabaseSchema runs the embedded migrations against db.
func SetupTestDatabaseSchema(t *testing.T, db *sql.DB) {
	t.Helper()

	gooseMu.Lock()
	defer gooseMu.Unlock()

	goose.SetLogger(&testGooseLogger{t: t})
	require.NoError(t, applyMigrations(db), "Failed to run migrations")
}

func applyMigrations(db *sql.DB) error {
	goose.SetBaseFS(migrations.FS)
	goose.SetTableName(migrations.TableName)
	if err := goose.SetDialect("postgres"); err != nil {
		return fmt.Errorf("failed to set goose dialect: %w", err)
	}

	if err := goose.Up(db, "."); err != nil {
		return fmt.Errorf("failed to run migrations: %w", err)
	}
	return nil
}

// testGooseLogger implements a minimal logger interface for goose
type testGooseLogger struct {
	t *testing.T
}

// Printf implements the required logging method for goose's SetLogger
func (l *testGooseLogger) Printf(format string, v ...interface{}) {
	l.t.Logf(format, v...)
}

// Fatalf implements the required logging method for goose's SetLogger
func (l *testGooseLogger) Fatalf(format string, v ...interface{}) {
	l.t.Fatalf(format, v...)
}

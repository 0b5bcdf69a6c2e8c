//go:build integration

// Package testdb provides utilities for PostgreSQL integration tests.
//
// Tests obtain a migrated connection with GetTestDBWithT, which skips the
// test when no database is configured, and run inside WithTx so every change
// is rolled back when the test function returns:
//
//	func TestSomething(t *testing.T) {
//	    db := testdb.GetTestDBWithT(t)
//	    testdb.WithTx(t, db, func(t *testing.T, tx *sql.Tx) {
//	        taskStore := postgres.NewPostgresTaskStore(tx, nil)
//	        // ...
//	    })
//	}
//
// # Environment Variables
//
// - DATABASE_URL: Primary connection string
// - TASKTIMER_TEST_DB_URL: Alternative connection string
package testdb

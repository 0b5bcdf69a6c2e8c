// Package postgres stores tasks in PostgreSQL through database/sql and the
// pgx stdlib driver. Driver errors are translated to the store sentinels by
// MapError. The schema lives in the migrations subpackage and is applied
// with goose.
package postgres

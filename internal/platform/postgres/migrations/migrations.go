// Package migrations embeds the goose SQL migrations for the PostgreSQL
// task store so the server binary and integration tests share one schema.
package migrations

import "embed"

// TableName is the goose version table.
const TableName = "schema_migrations"

// FS holds the migration files. Pass it to goose.SetBaseFS and use "." as
// the directory.
//
//go:embed *.sql
var FS embed.FS

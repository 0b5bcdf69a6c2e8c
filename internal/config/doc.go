// Package config loads server, database and task settings from defaults,
// an optional config.yaml and TASKTIMER_* environment variables, and
// validates them before the server starts.
package config

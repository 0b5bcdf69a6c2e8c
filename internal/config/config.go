package config

import "time"

// Config holds all application configuration.
// It organizes settings into logical groups for better maintainability.
type Config struct {
	Server   ServerConfig   `mapstructure:"server" validate:"required"`
	Database DatabaseConfig `mapstructure:"database" validate:"required"`
	Task     TaskConfig     `mapstructure:"task" validate:"required"`
}

// ServerConfig contains all server-related configuration settings.
type ServerConfig struct {
	Port     int    `mapstructure:"port" validate:"required,gt=0,lt=65536"`
	LogLevel string `mapstructure:"log_level" validate:"required,oneof=debug info warn error"`
}

// DatabaseConfig selects and configures the task store backend.
type DatabaseConfig struct {
	// Driver is one of memory, postgres or redis.
	Driver string `mapstructure:"driver" validate:"required,oneof=memory postgres redis"`
	// URL is a postgres DSN or a redis:// URL. Unused by the memory driver.
	URL          string `mapstructure:"url" validate:"required_unless=Driver memory"`
	MaxOpenConns int    `mapstructure:"max_open_conns" validate:"gte=1"`
	MaxIdleConns int    `mapstructure:"max_idle_conns" validate:"gte=0"`
}

// TaskConfig contains lifecycle engine settings.
type TaskConfig struct {
	DefaultDurationMs int64 `mapstructure:"default_duration_ms" validate:"gt=0"`
	// ReconcileSchedule is a cron expression for the recovery sweep; empty disables it.
	ReconcileSchedule string `mapstructure:"reconcile_schedule"`
	RecoverOnStartup  bool   `mapstructure:"recover_on_startup"`
	// FireTimeout bounds the store work done when a timer completes a task.
	FireTimeout time.Duration `mapstructure:"fire_timeout" validate:"gt=0"`
}

// DefaultDuration returns DefaultDurationMs as a time.Duration.
func (c TaskConfig) DefaultDuration() time.Duration {
	return time.Duration(c.DefaultDurationMs) * time.Millisecond
}

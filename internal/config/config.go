package config

import "time"

// Config holds all application configuration.
// It organizes settings into logical groups for better maintainability.
type Config struct {
	Server   ServerConfig   `mapstructure:"server" validate:"required"`
	Library  LibraryConfig  `mapstructure:"library" validate:"required"`
	Database DatabaseConfig `mapstructure:"database"`
	LLM      LLMConfig      `mapstructure:"llm" validate:"required"`
	Task     TaskConfig     `mapstructure:"task" validate:"required"`
	Session  SessionConfig  `mapstructure:"session" validate:"required"`
}

// ServerConfig contains all server-related configuration settings.
type ServerConfig struct {
	Port                   int      `mapstructure:"port" validate:"required,gt=0,lt=65536"`
	LogLevel               string   `mapstructure:"log_level" validate:"required,oneof=debug info warn error"`
	AllowedOrigins         []string `mapstructure:"allowed_origins" validate:"required,min=1,dive,required"`
	ShutdownTimeoutSeconds int      `mapstructure:"shutdown_timeout_seconds" validate:"gte=1,lte=120"`
}

// ShutdownTimeout returns ShutdownTimeoutSeconds as a duration.
func (c ServerConfig) ShutdownTimeout() time.Duration {
	return time.Duration(c.ShutdownTimeoutSeconds) * time.Second
}

// LibraryConfig controls the in-memory library.
type LibraryConfig struct {
	UserID   string `mapstructure:"user_id" validate:"required"`
	SeedDemo bool   `mapstructure:"seed_demo"`
}

// DatabaseConfig contains snapshot persistence settings. An empty URL keeps
// the library purely in memory.
type DatabaseConfig struct {
	URL            string `mapstructure:"url" validate:"omitempty,url"`
	SaveDebounceMS int    `mapstructure:"save_debounce_ms" validate:"gte=0,lte=60000"`
}

// Enabled reports whether snapshot persistence is configured.
func (c DatabaseConfig) Enabled() bool {
	return c.URL != ""
}

// SaveDebounce returns SaveDebounceMS as a duration.
func (c DatabaseConfig) SaveDebounce() time.Duration {
	return time.Duration(c.SaveDebounceMS) * time.Millisecond
}

// LLMConfig contains all LLM integration related settings. An empty
// GeminiAPIKey selects the offline stub generator.
type LLMConfig struct {
	GeminiAPIKey      string `mapstructure:"gemini_api_key"`
	ModelName         string `mapstructure:"model_name" validate:"required"`
	MaxRetries        int    `mapstructure:"max_retries" validate:"gte=0,lte=10"`
	RetryDelaySeconds int    `mapstructure:"retry_delay_seconds" validate:"gte=1,lte=60"`
}

// TaskConfig sizes the background task queue and worker pool.
type TaskConfig struct {
	QueueSize   int `mapstructure:"queue_size" validate:"gt=0"`
	WorkerCount int `mapstructure:"worker_count" validate:"gt=0"`
}

// SessionConfig controls learn/test session housekeeping.
type SessionConfig struct {
	IdleTimeoutMinutes int `mapstructure:"idle_timeout_minutes" validate:"gt=0"`
}

// IdleTimeout returns IdleTimeoutMinutes as a duration.
func (c SessionConfig) IdleTimeout() time.Duration {
	return time.Duration(c.IdleTimeoutMinutes) * time.Minute
}

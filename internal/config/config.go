package config

import (
	"time"

	"github.com/analogalgo/letters/internal/domain"
)

// Config holds all application configuration.
// It organizes settings into logical groups for better maintainability.
type Config struct {
	Server   ServerConfig   `mapstructure:"server"   validate:"required"`
	Database DatabaseConfig `mapstructure:"database"`
	Redis    RedisConfig    `mapstructure:"redis"`
	Auth     AuthConfig     `mapstructure:"auth"     validate:"required"`
	Task     TaskConfig     `mapstructure:"task"     validate:"required"`
	Mail     MailConfig     `mapstructure:"mail"     validate:"required"`
}

// ServerConfig contains all server-related configuration settings.
type ServerConfig struct {
	Port            int           `mapstructure:"port"             validate:"required,gt=0,lt=65536"`
	LogLevel        string        `mapstructure:"log_level"        validate:"required,oneof=debug info warn error"`
	ShutdownTimeout time.Duration `mapstructure:"shutdown_timeout" validate:"gt=0"`
}

// DatabaseConfig contains all database-related configuration settings.
// An empty URL keeps letters and tasks in memory.
type DatabaseConfig struct {
	URL string `mapstructure:"url" validate:"omitempty,url"`
}

// RedisConfig configures the letter data cache. An empty URL disables it.
type RedisConfig struct {
	URL      string        `mapstructure:"url"       validate:"omitempty,url"`
	CacheTTL time.Duration `mapstructure:"cache_ttl" validate:"gt=0"`
}

// AuthConfig contains all authentication and authorization settings.
type AuthConfig struct {
	JWTSecret            string `mapstructure:"jwt_secret"             validate:"required,min=32"`
	TokenLifetimeMinutes int    `mapstructure:"token_lifetime_minutes" validate:"required,gt=0,lte=1440"`
	// AdminPasswordHash is a bcrypt hash. When empty, admin login is refused.
	AdminPasswordHash string `mapstructure:"admin_password_hash"`
	// WebhookSecret signs storefront webhooks. When empty, signatures are not checked.
	WebhookSecret string `mapstructure:"webhook_secret"`
}

// TaskConfig contains settings for the background task runner.
type TaskConfig struct {
	WorkerCount         int `mapstructure:"worker_count"           validate:"required,gt=0"`
	QueueSize           int `mapstructure:"queue_size"             validate:"required,gt=0"`
	StuckTaskAgeMinutes int `mapstructure:"stuck_task_age_minutes" validate:"required,gt=0"`
}

// MailConfig configures letter output and the mail carrier.
type MailConfig struct {
	OutputDir      string         `mapstructure:"output_dir"      validate:"required"`
	MaxRetries     int            `mapstructure:"max_retries"     validate:"gte=0,lte=10"`
	DefaultAddress domain.Address `mapstructure:"default_address" validate:"required"`
}

package config

import (
	"errors"
	"fmt"
	"strings"

	"github.com/go-playground/validator/v10"
	"github.com/spf13/viper"
)

// EnvPrefix is prepended to every environment variable, e.g.
// ANALOG_SERVER_PORT for server.port.
const EnvPrefix = "ANALOG"

var defaults = map[string]any{
	"server.port":             8080,
	"server.log_level":        "info",
	"server.shutdown_timeout": "10s",

	"database.url": "",

	"redis.url":       "",
	"redis.cache_ttl": "24h",

	"auth.jwt_secret":             "",
	"auth.token_lifetime_minutes": 60,
	"auth.admin_password_hash":    "",
	"auth.webhook_secret":         "",

	"task.worker_count":           2,
	"task.queue_size":             100,
	"task.stuck_task_age_minutes": 30,

	"mail.output_dir":                    "./output",
	"mail.max_retries":                   3,
	"mail.default_address.name":          "Analog Algorithm Test",
	"mail.default_address.address_line1": "123 Mystic Lane",
	"mail.default_address.address_line2": "",
	"mail.default_address.city":          "Portland",
	"mail.default_address.state":         "OR",
	"mail.default_address.zip_code":      "97204",
	"mail.default_address.country":       "US",
}

// Load configuration from environment variables and optionally a config.yaml
// in the working directory. Environment variables take precedence over values
// from the file. Returns a populated Config or an error if loading or
// validation fails.
func Load() (*Config, error) {
	return LoadWithPaths(".")
}

// LoadWithPaths is like Load but searches the given directories for
// config.yaml.
func LoadWithPaths(paths ...string) (*Config, error) {
	v := viper.New()

	for key, value := range defaults {
		v.SetDefault(key, value)
	}

	v.SetConfigName("config")
	v.SetConfigType("yaml")
	for _, p := range paths {
		v.AddConfigPath(p)
	}
	if err := v.ReadInConfig(); err != nil {
		var notFound viper.ConfigFileNotFoundError
		if !errors.As(err, &notFound) {
			return nil, fmt.Errorf("failed to read config file: %w", err)
		}
	}

	v.SetEnvPrefix(EnvPrefix)
	v.SetEnvKeyReplacer(strings.NewReplacer(".", "_"))
	v.AutomaticEnv()

	var cfg Config
	if err := v.Unmarshal(&cfg); err != nil {
		return nil, fmt.Errorf("failed to unmarshal config: %w", err)
	}

	if err := validator.New().Struct(&cfg); err != nil {
		return nil, fmt.Errorf("config validation failed: %w", err)
	}

	return &cfg, nil
}

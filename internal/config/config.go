// Package config manages environment variables.
//
// It reads variables from the process environment (and a `.env` file when
// present), loads them into structured Go types, and validates that
// required values are present so they can be reused across the application
// runtime.
//
// Keys are read with the TASKS_ prefix and use "." for nesting:
//
//	TASKS_SERVER.PORT=8080        -> Config.Server.Port
//	TASKS_DATABASE.HOST=localhost -> Config.Database.Host
package config

import (
	"fmt"
	"strings"

	"github.com/go-playground/validator/v10"
	// Side-effect import: loads `.env` into the process env if it exists.
	_ "github.com/joho/godotenv/autoload"
	"github.com/knadh/koanf/providers/confmap"
	"github.com/knadh/koanf/providers/env"
	"github.com/knadh/koanf/v2"
)

// EnvPrefix is the prefix every configuration variable carries.
const EnvPrefix = "TASKS_"

// ServiceName identifies this service in logs and APM.
const ServiceName = "tasks-api"

// Config is the root configuration object for the application.
//
// Observability is a pointer because it is optional. If not provided,
// defaults are injected at load time.
type Config struct {
	Primary       Primary              `koanf:"primary" validate:"required"`
	Server        ServerConfig         `koanf:"server" validate:"required"`
	Database      DatabaseConfig       `koanf:"database" validate:"required"`
	Redis         RedisConfig          `koanf:"redis"`
	Pagination    PaginationConfig     `koanf:"pagination" validate:"required"`
	RateLimit     RateLimitConfig      `koanf:"rate_limit"`
	Observability *ObservabilityConfig `koanf:"observability"`
}

// Primary holds top-level information about the runtime environment.
type Primary struct {
	Env string `koanf:"env" validate:"required"`
}

// ServerConfig groups settings for the HTTP server runtime.
// Timeouts are in seconds.
type ServerConfig struct {
	Port               string   `koanf:"port" validate:"required"`
	ReadTimeout        int      `koanf:"read_timeout" validate:"required,min=1"`
	WriteTimeout       int      `koanf:"write_timeout" validate:"required,min=1"`
	IdleTimeout        int      `koanf:"idle_timeout" validate:"required,min=1"`
	ShutdownTimeout    int      `koanf:"shutdown_timeout" validate:"required,min=1"`
	CORSAllowedOrigins []string `koanf:"cors_allowed_origins" validate:"required"`
}

// DatabaseConfig contains PostgreSQL connection parameters and pool tuning.
// ConnMaxLifetime and ConnMaxIdleTime are in seconds.
type DatabaseConfig struct {
	Host            string `koanf:"host" validate:"required"`
	Port            int    `koanf:"port" validate:"required"`
	User            string `koanf:"user" validate:"required"`
	Password        string `koanf:"password" validate:"required"`
	Name            string `koanf:"name" validate:"required"`
	SSLMode         string `koanf:"ssl_mode" validate:"required,oneof=disable allow prefer require verify-ca verify-full"`
	MaxOpenConns    int    `koanf:"max_open_conns" validate:"required,min=1"`
	MaxIdleConns    int    `koanf:"max_idle_conns" validate:"min=0"`
	ConnMaxLifetime int    `koanf:"conn_max_lifetime" validate:"required"`
	ConnMaxIdleTime int    `koanf:"conn_max_idle_time" validate:"required"`
	MigrateOnStart  bool   `koanf:"migrate_on_start"`
}

// RedisConfig contains Redis connection details. Redis is optional: an
// empty Address disables it and the rate limiter falls back to memory.
type RedisConfig struct {
	Address  string `koanf:"address" validate:"omitempty,hostname_port"`
	Password string `koanf:"password"`
	DB       int    `koanf:"db" validate:"min=0"`
}

// Enabled reports whether a Redis address is configured.
func (r RedisConfig) Enabled() bool {
	return r.Address != ""
}

// PaginationConfig drives list endpoint defaults.
type PaginationConfig struct {
	DefaultSize int `koanf:"default_size" validate:"required,min=1,ltefield=MaxSize"`
	MaxSize     int `koanf:"max_size" validate:"required,min=1"`
}

// RateLimitConfig controls per-client request throttling.
type RateLimitConfig struct {
	Enabled           bool `koanf:"enabled"`
	RequestsPerMinute int  `koanf:"requests_per_minute" validate:"min=1"`
	Burst             int  `koanf:"burst" validate:"min=0"`
}

// defaults are loaded before the environment, so every key here can be
// overridden by a TASKS_ variable.
func defaults() map[string]any {
	return map[string]any{
		"primary.env": "local",

		"server.port":                 "8080",
		"server.read_timeout":         30,
		"server.write_timeout":        30,
		"server.idle_timeout":         60,
		"server.shutdown_timeout":     30,
		"server.cors_allowed_origins": []string{"*"},

		"database.port":               5432,
		"database.ssl_mode":           "disable",
		"database.max_open_conns":     10,
		"database.max_idle_conns":     2,
		"database.conn_max_lifetime":  3600,
		"database.conn_max_idle_time": 300,

		"pagination.default_size": 10,
		"pagination.max_size":     100,

		"rate_limit.enabled":             false,
		"rate_limit.requests_per_minute": 120,
		"rate_limit.burst":               20,

		"observability.logging.level":                         "info",
		"observability.logging.format":                        "json",
		"observability.logging.slow_query_threshold":          "100ms",
		"observability.new_relic.app_log_forwarding_enabled":  true,
		"observability.new_relic.distributed_tracing_enabled": true,
		"observability.health_checks.enabled":                 true,
		"observability.health_checks.interval":                "30s",
		"observability.health_checks.timeout":                 "5s",
		"observability.health_checks.checks":                  []string{"database", "redis"},
	}
}

// LoadConfig loads configuration from defaults and environment variables,
// unmarshals it into Config, validates it, applies observability defaults
// and returns the resulting config.
func LoadConfig() (*Config, error) {
	k := koanf.New(".")

	if err := k.Load(confmap.Provider(defaults(), "."), nil); err != nil {
		return nil, fmt.Errorf("could not load config defaults: %w", err)
	}

	// TASKS_DATABASE.HOST -> "database.host".
	err := k.Load(env.Provider(EnvPrefix, ".", func(s string) string {
		return strings.ToLower(strings.TrimPrefix(s, EnvPrefix))
	}), nil)
	if err != nil {
		return nil, fmt.Errorf("could not load env variables: %w", err)
	}

	mainConfig := &Config{}
	if err := k.Unmarshal("", mainConfig); err != nil {
		return nil, fmt.Errorf("could not unmarshal main config: %w", err)
	}

	if mainConfig.Observability == nil {
		mainConfig.Observability = DefaultObservabilityConfig()
	}

	// Service name and environment always follow the primary config.
	mainConfig.Observability.ServiceName = ServiceName
	mainConfig.Observability.Environment = mainConfig.Primary.Env

	if err := validator.New().Struct(mainConfig); err != nil {
		return nil, fmt.Errorf("config validation failed: %w", err)
	}

	if err := mainConfig.Observability.Validate(); err != nil {
		return nil, fmt.Errorf("invalid observability config: %w", err)
	}

	return mainConfig, nil
}

// IsLocal reports whether the service runs in the local environment.
func (c *Config) IsLocal() bool {
	return c.Primary.Env == "local"
}

// Package config provides centralized configuration for the server and
// worker binaries. Values come from environment variables with sensible
// defaults and are validated on startup to fail fast on misconfiguration.
package config

import (
	"fmt"
	"time"
)

// Config holds all application configuration.
type Config struct {
	Server   ServerConfig
	Database DatabaseConfig
	Redis    RedisConfig
	Storage  StorageConfig
	Upload   UploadConfig
	Convert  ConvertConfig
	Auth     AuthConfig
	Worker   WorkerConfig
	Rate     RateLimitConfig
	Logging  LoggingConfig
}

// ServerConfig holds HTTP server settings.
type ServerConfig struct {
	// Host is the interface to bind to (default: 0.0.0.0)
	Host string `env:"SERVER_HOST" default:"0.0.0.0"`

	// Port is the port to listen on (default: 8080)
	Port int `env:"SERVER_PORT" default:"8080"`

	// ReadTimeout is the maximum duration for reading the request (default: 30s)
	ReadTimeout time.Duration `env:"SERVER_READ_TIMEOUT" default:"30s"`

	// WriteTimeout is the maximum duration for writing the response (default: 30s)
	WriteTimeout time.Duration `env:"SERVER_WRITE_TIMEOUT" default:"30s"`

	// IdleTimeout is the keep-alive timeout (default: 60s)
	IdleTimeout time.Duration `env:"SERVER_IDLE_TIMEOUT" default:"60s"`

	// ShutdownTimeout is the maximum wait for graceful shutdown (default: 30s)
	ShutdownTimeout time.Duration `env:"SERVER_SHUTDOWN_TIMEOUT" default:"30s"`

	// RequestTimeout is the middleware timeout for requests (default: 60s)
	RequestTimeout time.Duration `env:"SERVER_REQUEST_TIMEOUT" default:"60s"`
}

// DatabaseConfig holds PostgreSQL connection settings.
type DatabaseConfig struct {
	// URL is the PostgreSQL connection string (required)
	URL string `env:"DATABASE_URL" envAlt:"DB_URL" required:"true"`

	// MaxConns is the maximum number of pooled connections (default: 10)
	MaxConns int `env:"DB_MAX_CONNS" default:"10"`

	// MinConns is the minimum number of pooled connections (default: 2)
	MinConns int `env:"DB_MIN_CONNS" default:"2"`

	// MaxConnLifetime is the maximum lifetime of a connection (default: 1h)
	MaxConnLifetime time.Duration `env:"DB_MAX_CONN_LIFETIME" default:"1h"`

	// MaxConnIdleTime is the idle time before a connection closes (default: 30m)
	MaxConnIdleTime time.Duration `env:"DB_MAX_CONN_IDLE_TIME" default:"30m"`
}

// RedisConfig holds dispatch queue settings.
type RedisConfig struct {
	// URL is the Redis connection string (default: local instance, db 0)
	URL string `env:"REDIS_URL" default:"redis://localhost:6379/0"`

	// Queue is the Redis list jobs are dispatched through
	Queue string `env:"REDIS_QUEUE" default:"leadpipe:jobs"`
}

// StorageConfig holds blob storage settings.
type StorageConfig struct {
	// Dir is the base directory for input and output artifacts (default: ./storage)
	Dir string `env:"STORAGE_DIR" default:"storage"`
}

// UploadConfig holds submission limits.
type UploadConfig struct {
	// MaxFileSize is the maximum accepted upload in bytes (default: 10MB)
	MaxFileSize int64 `env:"UPLOAD_MAX_FILE_SIZE" default:"10485760"`
}

// ConvertConfig holds conversion pipeline settings.
type ConvertConfig struct {
	// PhoneRegion is the default region for parsing phone numbers without a
	// country code (default: BR)
	PhoneRegion string `env:"CONVERT_PHONE_REGION" default:"BR"`
}

// AuthConfig holds token settings.
type AuthConfig struct {
	// JWTSecret signs access tokens (required)
	JWTSecret string `env:"JWT_SECRET" required:"true"`

	// TokenTTL is how long issued tokens stay valid (default: 168h)
	TokenTTL time.Duration `env:"AUTH_TOKEN_TTL" default:"168h"`
}

// WorkerConfig holds queue consumer settings.
type WorkerConfig struct {
	// Concurrency is the number of jobs processed in parallel (default: 2)
	Concurrency int `env:"WORKER_CONCURRENCY" default:"2"`
}

// RateLimitConfig holds per-IP request throttling settings.
type RateLimitConfig struct {
	// Enabled controls whether rate limiting is active (default: true)
	Enabled bool `env:"RATE_LIMIT_ENABLED" default:"true"`

	// RequestsPerMinute is the per-IP limit (default: 100)
	RequestsPerMinute int `env:"RATE_LIMIT_REQUESTS_PER_MINUTE" default:"100"`
}

// LoggingConfig holds logging settings.
type LoggingConfig struct {
	// Level is the minimum log level: debug, info, warn, error (default: info)
	Level string `env:"LOG_LEVEL" default:"info"`

	// Format is the log format: text or json (default: text)
	Format string `env:"LOG_FORMAT" default:"text"`
}

// Addr returns the server listen address in host:port format.
func (c *ServerConfig) Addr() string {
	return fmt.Sprintf("%s:%d", c.Host, c.Port)
}

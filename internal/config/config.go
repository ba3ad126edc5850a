// Package config provides application configuration management.
// Configuration is loaded from environment variables following 12-factor principles.
package config

import (
	"fmt"
	"strings"
	"time"

	"github.com/caarlos0/env/v10"
)

// Note store backends.
const (
	NoteStoreSQLite   = "sqlite"
	NoteStorePostgres = "postgres"
	NoteStoreDynamoDB = "dynamodb"
)

// Secret store backends.
const (
	SecretBackendSecretsManager = "secretsmanager"
	SecretBackendRedis          = "redis"
)

// Config holds all application configuration.
// All fields are populated from environment variables.
type Config struct {
	// Application settings
	AppEnv  string `env:"APP_ENV" envDefault:"development"`
	AppPort int    `env:"PORT" envDefault:"8080"`

	// Deployment project used to namespace secret lookups.
	// GOOGLE_CLOUD_PROJECT wins over GCP_PROJECT when both are set.
	GoogleCloudProject string `env:"GOOGLE_CLOUD_PROJECT"`
	GCPProject         string `env:"GCP_PROJECT"`

	// Note store
	NoteStore        string `env:"NOTE_STORE" envDefault:"sqlite"`
	DatabaseURL      string `env:"DATABASE_URL"`
	SQLitePath       string `env:"SQLITE_PATH" envDefault:"data/notes.db"`
	DynamoDBTable    string `env:"DYNAMODB_TABLE" envDefault:"notes"`
	DynamoDBEndpoint string `env:"DYNAMODB_ENDPOINT"`
	AWSRegion        string `env:"AWS_REGION" envDefault:"us-east-1"`

	// Secret store
	SecretBackend string `env:"SECRET_BACKEND" envDefault:"secretsmanager"`
	RedisURL      string `env:"REDIS_URL"`

	// Secret names read by the diagnostic endpoints
	SecretEnvironmentName string `env:"SECRET_ENVIRONMENT_NAME" envDefault:"app-environment"`
	SecretDatabaseURLName string `env:"SECRET_DATABASE_URL_NAME" envDefault:"database-url"`
	SecretJWTName         string `env:"SECRET_JWT_NAME" envDefault:"jwt-secret"`

	// Logging
	LogLevel  string `env:"LOG_LEVEL" envDefault:"info"`
	LogFormat string `env:"LOG_FORMAT" envDefault:"json"`

	// Server timeouts
	ReadTimeout     time.Duration `env:"READ_TIMEOUT" envDefault:"5s"`
	WriteTimeout    time.Duration `env:"WRITE_TIMEOUT" envDefault:"10s"`
	ShutdownTimeout time.Duration `env:"SHUTDOWN_TIMEOUT" envDefault:"30s"`

	// CORS configuration
	// Comma-separated list of allowed origins (e.g., "https://example.com,https://app.example.com")
	CORSAllowedOrigins string `env:"CORS_ALLOWED_ORIGINS" envDefault:""`

	// Request body size limit in bytes (default 1MB)
	MaxRequestBodySize int64 `env:"MAX_REQUEST_BODY_SIZE" envDefault:"1048576"`

	MetricsEnabled bool `env:"METRICS_ENABLED" envDefault:"true"`
}

// IsDevelopment returns true if running in development mode.
func (c *Config) IsDevelopment() bool {
	return c.AppEnv == "development"
}

// IsProduction returns true if running in production mode.
func (c *Config) IsProduction() bool {
	return c.AppEnv == "production"
}

// ProjectID returns the deployment project identifier, or "" when neither
// recognized variable is set.
func (c *Config) ProjectID() string {
	if c.GoogleCloudProject != "" {
		return c.GoogleCloudProject
	}
	return c.GCPProject
}

// GetCORSAllowedOrigins parses the comma-separated origins string into a slice.
func (c *Config) GetCORSAllowedOrigins() []string {
	if c.CORSAllowedOrigins == "" {
		return nil
	}

	origins := strings.Split(c.CORSAllowedOrigins, ",")
	result := make([]string, 0, len(origins))

	for _, origin := range origins {
		trimmed := strings.TrimSpace(origin)
		if trimmed != "" {
			result = append(result, trimmed)
		}
	}

	return result
}

// Validate checks backend selections and the settings each one requires.
func (c *Config) Validate() error {
	switch c.NoteStore {
	case NoteStoreSQLite:
		if c.SQLitePath == "" {
			return fmt.Errorf("SQLITE_PATH is required when NOTE_STORE=%s", c.NoteStore)
		}
	case NoteStorePostgres:
		if c.DatabaseURL == "" {
			return fmt.Errorf("DATABASE_URL is required when NOTE_STORE=%s", c.NoteStore)
		}
	case NoteStoreDynamoDB:
		if c.DynamoDBTable == "" {
			return fmt.Errorf("DYNAMODB_TABLE is required when NOTE_STORE=%s", c.NoteStore)
		}
	default:
		return fmt.Errorf("unknown NOTE_STORE %q", c.NoteStore)
	}

	switch c.SecretBackend {
	case SecretBackendSecretsManager:
	case SecretBackendRedis:
		if c.RedisURL == "" {
			return fmt.Errorf("REDIS_URL is required when SECRET_BACKEND=%s", c.SecretBackend)
		}
	default:
		return fmt.Errorf("unknown SECRET_BACKEND %q", c.SecretBackend)
	}

	return nil
}

// Load parses environment variables and returns a validated Config.
func Load() (*Config, error) {
	cfg := &Config{}
	if err := env.Parse(cfg); err != nil {
		return nil, fmt.Errorf("failed to parse config: %w", err)
	}
	if err := cfg.Validate(); err != nil {
		return nil, fmt.Errorf("invalid config: %w", err)
	}
	return cfg, nil
}

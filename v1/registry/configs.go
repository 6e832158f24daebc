package registry

import (
	"context"
	"time"
)

// Config defines the configuration for the schema registry client.
type Config struct {
	// URL is the schema registry endpoint (e.g., "http://localhost:8081")
	// Required; NewClient fails without it.
	URL string `yaml:"url" envconfig:"SCHEMA_REGISTRY_URL"`

	// Username for basic auth
	// Leave empty for no authentication
	Username string `yaml:"username" envconfig:"SCHEMA_REGISTRY_USERNAME"`

	// Password for basic auth
	// Leave empty for no authentication
	Password string `yaml:"password" envconfig:"SCHEMA_REGISTRY_PASSWORD"`

	// Timeout bounds every HTTP request made by the client
	// Default: 10 seconds
	Timeout time.Duration `yaml:"timeout" envconfig:"SCHEMA_REGISTRY_TIMEOUT"`

	// Logger is an optional logger from v1/logger
	// If provided, it is used to log request failures
	Logger Logger
}

// Logger is an interface that matches the v1/logger.Logger context-aware methods.
// It provides context-aware structured logging with optional error and field parameters.

//go:generate mockgen -source=configs.go -destination=mock_logger.go -package=registry
type Logger interface {
	// InfoWithContext logs an informational message with trace context.
	InfoWithContext(ctx context.Context, msg string, err error, fields ...map[string]interface{})

	// WarnWithContext logs a warning message with trace context.
	WarnWithContext(ctx context.Context, msg string, err error, fields ...map[string]interface{})

	// ErrorWithContext logs an error message with trace context.
	ErrorWithContext(ctx context.Context, msg string, err error, fields ...map[string]interface{})
}

// Default values for configuration
const (
	DefaultTimeout = 10 * time.Second
)

// contentType is the media type the Confluent registry API speaks, used for
// both request and response bodies.
const contentType = "application/vnd.schemaregistry.v1+json"

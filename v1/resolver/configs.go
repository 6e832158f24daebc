package resolver

import (
	"context"

	"github.com/Aleph-Alpha/avrokit/v1/registry"
)

// Config defines the configuration for the schema resolver.
type Config struct {
	// Registry is the schema registry client used for cache-miss fetches
	// and for registration. Required.
	Registry registry.Registry

	// Logger is an optional logger that matches the Logger interface (see
	// v1/logger)
	Logger Logger
}

// Logger is an interface that matches the v1/logger.Logger context-aware
// methods, so any logger implementation can be plugged in.
type Logger interface {
	InfoWithContext(ctx context.Context, msg string, err error, fields ...map[string]interface{})
	WarnWithContext(ctx context.Context, msg string, err error, fields ...map[string]interface{})
	ErrorWithContext(ctx context.Context, msg string, err error, fields ...map[string]interface{})
}

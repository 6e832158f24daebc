// Package logger provides structured logging functionality for Go applications.
//
// The logger package is designed to provide a standardized logging approach
// with features such as log levels, contextual logging, distributed tracing
// integration, and flexible output formatting. It integrates with the fx
// dependency injection framework for easy incorporation into applications.
//
// Core Features:
//   - Structured logging with key-value pairs
//   - Support for multiple log levels (Debug, Info, Warn, Error, Fatal)
//   - Context-aware logging for request tracing
//   - Automatic trace and span ID extraction from context (OpenTelemetry)
//   - JSON output suitable for common log collection systems
//
// # Direct Usage (Without FX)
//
// For simple applications or tests, create a logger directly:
//
//	import "github.com/Aleph-Alpha/avrokit/v1/logger"
//
//	log := logger.NewLoggerClient(logger.Config{
//		Level:         "info",
//		EnableTracing: true,
//	})
//
//	// Log with structured fields (without context)
//	log.Info("User logged in", nil, map[string]interface{}{
//		"user_id": "12345",
//		"ip":      "192.168.1.1",
//	})
//
//	// Log with trace context (automatically includes trace_id and span_id)
//	log.InfoWithContext(ctx, "Processing request", nil, map[string]interface{}{
//		"request_id": "abc-123",
//	})
//
// # FX Module Integration
//
// For production applications using Uber's fx, use the FXModule:
//
//	import (
//		"github.com/Aleph-Alpha/avrokit/v1/logger"
//		"go.uber.org/fx"
//	)
//
//	app := fx.New(
//		logger.FXModule, // Provides *logger.Logger
//		fx.Provide(func() logger.Config {
//			return logger.Config{
//				Level:         "info",
//				EnableTracing: true,
//				ServiceName:   "my-service",
//			}
//		}),
//		fx.Invoke(func(log *logger.Logger) {
//			log.Info("Service started", nil, nil)
//		}),
//		// ... other modules
//	)
//	app.Run()
//
// # Consumer Interfaces
//
// Packages in this module that accept a logger define their own small,
// package-local Logger interface satisfied by *logger.Logger. This keeps
// consumers decoupled from the concrete implementation and makes logging
// trivially mockable in tests.
//
// # Configuration
//
// The logger can be configured via environment variables:
//
//	ZAP_LOGGER_LEVEL=debug          # Log level (debug, info, warning, error)
//	LOGGER_SERVICE_NAME=my-service  # Service name attached to every entry
//	LOGGER_ENABLE_TRACING=true      # Enable distributed tracing integration
//
// # Tracing Integration
//
// When tracing is enabled (EnableTracing: true), the *WithContext methods
// automatically extract trace and span IDs from the context and include them
// in log entries. This provides correlation between logs and distributed
// traces in your observability system.
//
// The following fields are added when the context carries a valid span:
//   - trace_id: The OpenTelemetry trace ID
//   - span_id: The OpenTelemetry span ID
//
// # Thread Safety
//
// All logging methods are safe for concurrent use by multiple goroutines.
package logger

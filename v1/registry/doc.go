// Package registry provides the HTTP client for Confluent Schema Registry.
//
// This package covers the three remote operations the rest of the module is
// built on: fetching a schema by its registry-assigned ID, fetching a
// subject's schema by version, and registering a new schema under a subject.
// The client translates HTTP and transport failures into typed errors and is
// deliberately free of caching; the resolver package layers the cache and
// request deduplication on top of this client.
//
// Core Features:
//   - HTTP client for Confluent Schema Registry
//   - Schema retrieval by ID or by subject and version
//   - Schema registration with Avro, Protobuf, and JSON Schema types
//   - Basic auth support
//   - Typed errors distinguishing transport failures, error statuses, and
//     malformed responses
//
// Basic Usage:
//
//	import "github.com/Aleph-Alpha/avrokit/v1/registry"
//
//	// Create schema registry client
//	client, err := registry.NewClient(registry.Config{
//	    URL:      "http://localhost:8081",
//	    Username: "user",     // Optional
//	    Password: "password", // Optional
//	    Timeout:  10 * time.Second,
//	})
//	if err != nil {
//	    log.Fatal(err)
//	}
//
//	// Register a schema
//	avroSchema := `{
//	    "type": "record",
//	    "name": "User",
//	    "fields": [
//	        {"name": "name", "type": "string"},
//	        {"name": "age", "type": "int"}
//	    ]
//	}`
//
//	schemaID, err := client.RegisterSchema(ctx, "users-value", avroSchema, "AVRO")
//	if err != nil {
//	    log.Fatal(err)
//	}
//
//	// Retrieve a schema
//	schema, err := client.GetSchemaByID(ctx, schemaID)
//	if err != nil {
//	    log.Fatal(err)
//	}
//
//	// Retrieve the latest version registered under a subject
//	metadata, err := client.GetSubjectVersion(ctx, "users-value", "")
//
// Error Handling:
//
// Failures never panic and are always represented as typed errors:
//
//	_, err := client.GetSchemaByID(ctx, 9999)
//	switch {
//	case registry.IsNotFound(err):
//	    // the registry does not know this ID
//	case registry.IsTransportError(err):
//	    // the registry was unreachable
//	case registry.IsStatusError(err):
//	    // any other non-2xx answer; the error carries status and body
//	}
//
// Using with FX:
//
//	import (
//	    "go.uber.org/fx"
//	    "github.com/Aleph-Alpha/avrokit/v1/registry"
//	)
//
//	app := fx.New(
//	    registry.FXModule,
//	    fx.Provide(
//	        func() registry.Config {
//	            return registry.Config{
//	                URL:      os.Getenv("SCHEMA_REGISTRY_URL"),
//	                Username: os.Getenv("SCHEMA_REGISTRY_USER"),
//	                Password: os.Getenv("SCHEMA_REGISTRY_PASSWORD"),
//	                Timeout:  30 * time.Second,
//	            }
//	        },
//	    ),
//	    // Your application code that uses registry.Registry
//	)
//
// The FX module provides both the concrete *registry.Client and the
// registry.Registry interface, and picks up an optional logger and observer
// when the surrounding application provides them.
//
// Caching:
//
// The client performs one HTTP round-trip per call and remembers nothing.
// Use github.com/Aleph-Alpha/avrokit/v1/resolver for the cached, deduplicated
// view of the registry that applications normally want.
package registry

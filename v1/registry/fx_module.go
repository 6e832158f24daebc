package registry

import (
	"context"
	"log"

	"go.uber.org/fx"

	"github.com/Aleph-Alpha/avrokit/v1/observability"
)

// FXModule is an fx.Module that provides and configures the schema registry client.
// This module registers the client with the Fx dependency injection framework,
// making it available to other components in the application.
//
// The module:
// 1. Provides the registry client factory function
// 2. Invokes the lifecycle registration to manage the client's lifecycle
//
// Usage:
//
//	app := fx.New(
//	    registry.FXModule,
//	    fx.Provide(
//	        func() registry.Config {
//	            return registry.Config{
//	                URL:      "http://localhost:8081",
//	                Username: "user",
//	                Password: "pass",
//	            }
//	        },
//	    ),
//	)
var FXModule = fx.Module("registry",
	fx.Provide(
		NewClientWithDI,
		func(client *Client) Registry { return client },
	),
	fx.Invoke(RegisterRegistryLifecycle),
)

// RegistryParams groups the dependencies needed to create a registry client
type RegistryParams struct {
	fx.In

	Config   Config
	Logger   Logger                 `optional:"true"` // Optional logger from v1/logger
	Observer observability.Observer `optional:"true"` // Optional observer for metrics/tracing
}

// NewClientWithDI creates a new schema registry client using dependency injection.
// This function is designed to be used with Uber's fx dependency injection framework
// where dependencies are automatically provided via the RegistryParams struct.
//
// Under the hood, this function injects the optional logger and observer
// before delegating to the standard NewClient function.
func NewClientWithDI(params RegistryParams) (*Client, error) {
	if params.Logger != nil {
		params.Config.Logger = params.Logger
	}

	client, err := NewClient(params.Config)
	if err != nil {
		return nil, err
	}

	if params.Observer != nil {
		client = client.WithObserver(params.Observer)
	}

	return client, nil
}

// RegistryLifecycleParams groups the dependencies needed for lifecycle management
type RegistryLifecycleParams struct {
	fx.In

	Lifecycle fx.Lifecycle
	Registry  Registry
}

// RegisterRegistryLifecycle registers the schema registry client with the fx
// lifecycle system.
//
// The function:
//  1. On application start: Logs that the registry client is ready
//  2. On application stop: Currently no cleanup needed (HTTP client is stateless)
func RegisterRegistryLifecycle(params RegistryLifecycleParams) {
	params.Lifecycle.Append(fx.Hook{
		OnStart: func(ctx context.Context) error {
			log.Println("INFO: Schema Registry client initialized")
			return nil
		},
		OnStop: func(ctx context.Context) error {
			log.Println("INFO: Schema Registry client shutdown")
			// HTTP client cleanup is handled automatically by Go runtime
			return nil
		},
	})
}

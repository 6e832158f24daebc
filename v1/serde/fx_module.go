package serde

import (
	"context"
	"log"

	"go.uber.org/fx"

	"github.com/Aleph-Alpha/avrokit/v1/observability"
	"github.com/Aleph-Alpha/avrokit/v1/resolver"
)

// FXModule provides the serde as an fx module, wiring it to the resolver
// provided by the resolver module.
var FXModule = fx.Module("serde",
	fx.Provide(
		NewSerdeWithDI,
	),
	fx.Invoke(RegisterSerdeLifecycle),
)

// SerdeParams defines the parameters needed to create a serde with
// dependency injection
type SerdeParams struct {
	fx.In

	Config   Config
	Resolver *resolver.Resolver
	Logger   Logger                 `optional:"true"`
	Observer observability.Observer `optional:"true"`
}

// NewSerdeWithDI creates a serde using dependency injection parameters
func NewSerdeWithDI(params SerdeParams) (*Serde, error) {
	config := params.Config
	config.Resolver = params.Resolver
	if config.Logger == nil {
		config.Logger = params.Logger
	}

	serde, err := NewSerde(config)
	if err != nil {
		return nil, err
	}

	if params.Observer != nil {
		serde = serde.WithObserver(params.Observer)
	}

	return serde, nil
}

// SerdeLifecycleParams defines the parameters needed for serde lifecycle
// management
type SerdeLifecycleParams struct {
	fx.In

	Lifecycle fx.Lifecycle
	Serde     *Serde
}

// RegisterSerdeLifecycle manages the serde lifecycle
func RegisterSerdeLifecycle(params SerdeLifecycleParams) {
	params.Lifecycle.Append(fx.Hook{
		OnStart: func(ctx context.Context) error {
			log.Println("INFO: Avro serde initialized")
			return nil
		},
		OnStop: func(ctx context.Context) error {
			log.Println("INFO: Avro serde shutdown")
			return nil
		},
	})
}

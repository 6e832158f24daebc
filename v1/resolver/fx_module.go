package resolver

import (
	"context"
	"log"

	"go.uber.org/fx"

	"github.com/Aleph-Alpha/avrokit/v1/observability"
	"github.com/Aleph-Alpha/avrokit/v1/registry"
)

// FXModule provides the schema resolver as an fx module, wiring it to the
// registry client provided by the registry module.
var FXModule = fx.Module("resolver",
	fx.Provide(
		NewResolverWithDI,
	),
	fx.Invoke(RegisterResolverLifecycle),
)

// ResolverParams defines the parameters needed to create a resolver with
// dependency injection
type ResolverParams struct {
	fx.In

	Registry registry.Registry
	Logger   Logger                 `optional:"true"`
	Observer observability.Observer `optional:"true"`
}

// NewResolverWithDI creates a resolver using dependency injection
// parameters
func NewResolverWithDI(params ResolverParams) (*Resolver, error) {
	resolver, err := NewResolver(Config{
		Registry: params.Registry,
		Logger:   params.Logger,
	})
	if err != nil {
		return nil, err
	}

	if params.Observer != nil {
		resolver = resolver.WithObserver(params.Observer)
	}

	return resolver, nil
}

// ResolverLifecycleParams defines the parameters needed for resolver
// lifecycle management
type ResolverLifecycleParams struct {
	fx.In

	Lifecycle fx.Lifecycle
	Resolver  *Resolver
}

// RegisterResolverLifecycle manages the resolver lifecycle
func RegisterResolverLifecycle(params ResolverLifecycleParams) {
	params.Lifecycle.Append(fx.Hook{
		OnStart: func(ctx context.Context) error {
			log.Println("INFO: Schema resolver initialized")
			return nil
		},
		OnStop: func(ctx context.Context) error {
			// The cache is in-memory only; nothing to flush.
			log.Println("INFO: Schema resolver shutdown")
			return nil
		},
	})
}

package resolver

import (
	"fmt"

	"golang.org/x/sync/singleflight"

	"github.com/Aleph-Alpha/avrokit/v1/observability"
	"github.com/Aleph-Alpha/avrokit/v1/registry"
)

// Resolver resolves schema references against a schema registry at most
// once each, caching the parsed schemas for the lifetime of the process.
//
// Resolution is collapsed per canonical key: any number of concurrent
// Resolve calls for the same reference cost at most one registry
// round-trip, and every successful caller observes the same *goavro.Codec
// instance. Failed fetches are never cached, so the next call retries.
//
// The cache never evicts. Entries stay until the process exits, which
// assumes the set of distinct references a process touches is small and
// stable. Long-running processes that resolve unbounded reference sets
// need a different tool.
type Resolver struct {
	registry registry.Registry

	cache schemaCache
	group singleflight.Group

	logger   Logger
	observer observability.Observer
}

// NewResolver creates a schema resolver on top of a registry client.
func NewResolver(config Config) (*Resolver, error) {
	if config.Registry == nil {
		return nil, fmt.Errorf("registry client is required")
	}

	return &Resolver{
		registry: config.Registry,
		logger:   config.Logger,
	}, nil
}

// WithLogger sets the logger for the resolver and returns the same
// instance for chaining.
func (r *Resolver) WithLogger(logger Logger) *Resolver {
	r.logger = logger
	return r
}

// WithObserver sets the observer for resolver operations and returns the
// same instance for chaining.
func (r *Resolver) WithObserver(observer observability.Observer) *Resolver {
	r.observer = observer
	return r
}

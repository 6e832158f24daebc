package resolver

import (
	"time"

	"github.com/Aleph-Alpha/avrokit/v1/observability"
)

// observeOperation reports a resolver operation to the configured observer.
//
// Notes:
//   - resource: the reference or subject being operated on
//   - metadata: resolve operations carry "cache_hit" and, for collapsed
//     flights, "shared"
func (r *Resolver) observeOperation(operation, resource, subResource string, duration time.Duration, err error, metadata map[string]interface{}) {
	if r == nil || r.observer == nil {
		return
	}

	r.observer.ObserveOperation(observability.OperationContext{
		Component:   "resolver",
		Operation:   operation,
		Resource:    resource,
		SubResource: subResource,
		Duration:    duration,
		Error:       err,
		Metadata:    metadata,
	})
}

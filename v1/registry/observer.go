package registry

import (
	"time"

	"github.com/Aleph-Alpha/avrokit/v1/observability"
)

// observeOperation notifies the observer about an operation if one is configured.
// This is used internally to track registry requests for metrics and tracing.
//
// Notes:
//   - resource: the schema ID or subject being operated on
//   - subResource: additional context like the requested version or schema type
func (c *Client) observeOperation(operation, resource, subResource string, duration time.Duration, err error, size int64, metadata map[string]interface{}) {
	if c == nil || c.observer == nil {
		return
	}

	c.observer.ObserveOperation(observability.OperationContext{
		Component:   "registry",
		Operation:   operation,
		Resource:    resource,
		SubResource: subResource,
		Duration:    duration,
		Error:       err,
		Size:        size,
		Metadata:    metadata,
	})
}

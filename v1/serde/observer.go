package serde

import (
	"time"

	"github.com/Aleph-Alpha/avrokit/v1/observability"
)

// observeOperation reports a serde operation to the configured observer.
//
// Notes:
//   - resource: the schema reference in use, empty when untagging failed
//     before one was known
//   - subResource: the encoding, "binary" or "textual"
//   - size: payload bytes produced (encode) or consumed (decode)
func (s *Serde) observeOperation(operation, resource, subResource string, duration time.Duration, err error, size int64) {
	if s == nil || s.observer == nil {
		return
	}

	s.observer.ObserveOperation(observability.OperationContext{
		Component:   "serde",
		Operation:   operation,
		Resource:    resource,
		SubResource: subResource,
		Duration:    duration,
		Error:       err,
		Size:        size,
	})
}

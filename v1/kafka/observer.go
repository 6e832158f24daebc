package kafka

import (
	"time"

	"github.com/Aleph-Alpha/avrokit/v1/observability"
)

// observeOperation notifies the observer about an operation if one is configured.
// This is used internally to track produce and consume operations for metrics
// and tracing. Resource is the topic; for consumed messages SubResource is
// the partition.
func (k *KafkaClient) observeOperation(operation, resource, subResource string, duration time.Duration, err error, size int64) {
	if k == nil || k.observer == nil {
		return
	}
	k.observer.ObserveOperation(observability.OperationContext{
		Component:   "kafka",
		Operation:   operation,
		Resource:    resource,
		SubResource: subResource,
		Duration:    duration,
		Error:       err,
		Size:        size,
		Metadata:    nil,
	})
}

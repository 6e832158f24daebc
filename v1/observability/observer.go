package observability

import "time"

// OperationContext carries the details of a single completed operation.
// Components fill in whichever fields apply; consumers should treat
// missing fields as "not applicable" rather than as errors.
type OperationContext struct {
	// Component identifies the emitting package, e.g. "registry" or "kafka".
	Component string

	// Operation is the component-specific action, e.g. "get_schema_by_id".
	Operation string

	// Resource is the primary object of the operation (subject, topic, key).
	Resource string

	// SubResource adds detail below Resource (version, partition, field).
	SubResource string

	// Duration is how long the operation took.
	Duration time.Duration

	// Error is the operation's outcome; nil on success.
	Error error

	// Size is the payload size in bytes where the operation has one, else 0.
	Size int64

	// Metadata holds extra component-specific values.
	Metadata map[string]interface{}
}

// Observer receives operation notifications from instrumented components.
// Implementations typically forward to a metrics or tracing backend.
//
// Implementations must be safe for concurrent use; components may call
// ObserveOperation from multiple goroutines.
type Observer interface {
	ObserveOperation(ctx OperationContext)
}

// NoopObserver is an Observer that discards all notifications. Useful as a
// default when no metrics backend is wired.
type NoopObserver struct{}

// ObserveOperation implements Observer by doing nothing.
func (NoopObserver) ObserveOperation(_ OperationContext) {}

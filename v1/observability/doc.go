// Package observability defines the shared observer contract used by the
// other packages in this module to report operation outcomes.
//
// Components accept an Observer via their WithObserver method (or through
// the fx module's optional dependency injection) and call ObserveOperation
// after each significant operation with an OperationContext describing what
// happened. The package deliberately contains no metrics or tracing
// implementation: adapters translate OperationContext into whatever backend
// the application uses.
//
// # Usage
//
//	type MetricsObserver struct {
//		metrics *metrics.Metrics
//	}
//
//	func (o *MetricsObserver) ObserveOperation(ctx observability.OperationContext) {
//		o.metrics.OperationDuration.
//			WithLabelValues(ctx.Component, ctx.Operation, errorStatus(ctx.Error)).
//			Observe(ctx.Duration.Seconds())
//	}
//
//	client = client.WithObserver(&MetricsObserver{metrics: m})
//
// A ready-made adapter over the metrics package lives in
// github.com/Aleph-Alpha/avrokit/v1/metrics (see NewOperationObserver).
package observability

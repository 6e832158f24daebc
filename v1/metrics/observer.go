package metrics

import (
	"github.com/Aleph-Alpha/avrokit/v1/observability"
)

// OperationObserver translates operation reports from the client packages
// into the built-in Prometheus metrics. Plug one into any client carrying
// a WithObserver method, or let the FX module inject it everywhere.
type OperationObserver struct {
	metrics *Metrics
}

// NewOperationObserver creates an observer backed by the given metrics
// instance.
func NewOperationObserver(m *Metrics) *OperationObserver {
	return &OperationObserver{metrics: m}
}

// ObserveOperation records one operation: a count by outcome, its
// duration, its payload size when reported, and cache hit/miss outcomes
// when the operation carries them.
func (o *OperationObserver) ObserveOperation(ctx observability.OperationContext) {
	status := "success"
	if ctx.Error != nil {
		status = "error"
	}

	o.metrics.operationsTotal.WithLabelValues(ctx.Component, ctx.Operation, status).Inc()
	o.metrics.operationDuration.WithLabelValues(ctx.Component, ctx.Operation).Observe(ctx.Duration.Seconds())

	if ctx.Size > 0 {
		o.metrics.payloadBytes.WithLabelValues(ctx.Component, ctx.Operation).Observe(float64(ctx.Size))
	}

	if hit, ok := ctx.Metadata["cache_hit"].(bool); ok {
		o.metrics.IncrementCacheRequests(hit)
	}
}

package metrics

import (
	"time"

	"github.com/prometheus/client_golang/prometheus"
)

// MetricsCollector provides an interface for collecting and exposing application metrics.
// It abstracts Prometheus metric operations with support for counters, histograms, and gauges.
//
// This interface is implemented by the concrete *Metrics type.
type MetricsCollector interface {
	// Default metric methods

	// IncrementOperations increments the operation counter for a component,
	// operation, and outcome.
	IncrementOperations(component, operation, status string)

	// RecordOperationDuration records the duration (in seconds) of an operation.
	RecordOperationDuration(start time.Time, component, operation string)

	// ObservePayloadSize records the size in bytes of an encoded or decoded payload.
	ObservePayloadSize(size float64, component, operation string)

	// SetCacheEntries sets the number of schemas held by a cache.
	SetCacheEntries(entries float64, cache string)

	// IncrementCacheRequests counts a cache lookup by outcome.
	IncrementCacheRequests(hit bool)

	// Dynamic metric factories

	// CreateCounter creates a new CounterVec metric and registers it.
	CreateCounter(name, help string, labels []string) *prometheus.CounterVec

	// CreateHistogram creates a new HistogramVec metric and registers it.
	CreateHistogram(name, help string, labels []string, buckets []float64) *prometheus.HistogramVec

	// CreateGauge creates a new GaugeVec metric and registers it.
	CreateGauge(name, help string, labels []string) *prometheus.GaugeVec
}

package metrics

import (
	"time"

	"github.com/prometheus/client_golang/prometheus"
)

// IncrementOperations increments the operation counter for a component,
// operation, and outcome.
// Example: metrics.IncrementOperations("registry", "get_schema_by_id", "success")
func (m *Metrics) IncrementOperations(component, operation, status string) {
	m.operationsTotal.WithLabelValues(component, operation, status).Inc()
}

// RecordOperationDuration records the duration (in seconds) of an operation.
// Example: defer metrics.RecordOperationDuration(time.Now(), "resolver", "resolve")
func (m *Metrics) RecordOperationDuration(start time.Time, component, operation string) {
	duration := time.Since(start).Seconds()
	m.operationDuration.WithLabelValues(component, operation).Observe(duration)
}

// ObservePayloadSize records the size in bytes of an encoded or decoded payload.
// Example: metrics.ObservePayloadSize(float64(len(data)), "serde", "encode")
func (m *Metrics) ObservePayloadSize(size float64, component, operation string) {
	m.payloadBytes.WithLabelValues(component, operation).Observe(size)
}

// SetCacheEntries sets the number of schemas held by a cache.
// Example: metrics.SetCacheEntries(float64(res.CacheSize()), "resolver")
func (m *Metrics) SetCacheEntries(entries float64, cache string) {
	m.cacheEntries.WithLabelValues(cache).Set(entries)
}

// IncrementCacheRequests counts a cache lookup by outcome.
// Example: metrics.IncrementCacheRequests(true)
func (m *Metrics) IncrementCacheRequests(hit bool) {
	if hit {
		m.cacheRequests.WithLabelValues("true").Inc()
	} else {
		m.cacheRequests.WithLabelValues("false").Inc()
	}
}

// CreateCounter creates a new CounterVec metric and registers it.
func (m *Metrics) CreateCounter(name, help string, labels []string) *prometheus.CounterVec {
	counter := createCounterVec(m.namespace, name, help, labels)
	m.Registry.MustRegister(counter)
	return counter
}

// CreateHistogram creates a new HistogramVec metric and registers it.
func (m *Metrics) CreateHistogram(name, help string, labels []string, buckets []float64) *prometheus.HistogramVec {
	hist := createHistogramVec(m.namespace, name, help, labels, buckets)
	m.Registry.MustRegister(hist)
	return hist
}

// CreateGauge creates a new GaugeVec metric and registers it.
func (m *Metrics) CreateGauge(name, help string, labels []string) *prometheus.GaugeVec {
	gauge := createGaugeVec(m.namespace, name, help, labels)
	m.Registry.MustRegister(gauge)
	return gauge
}

// createCounterVec defines a new CounterVec with standard options.
// Used internally by NewMetrics to maintain consistency.
func createCounterVec(namespace, name, help string, labels []string) *prometheus.CounterVec {
	return prometheus.NewCounterVec(
		prometheus.CounterOpts{
			Namespace: namespace,
			Name:      name,
			Help:      help,
		},
		labels,
	)
}

// createHistogramVec defines a new HistogramVec with configurable buckets.
// Used internally by NewMetrics for latency and size tracking.
func createHistogramVec(namespace, name, help string, labels []string, buckets []float64) *prometheus.HistogramVec {
	return prometheus.NewHistogramVec(
		prometheus.HistogramOpts{
			Namespace: namespace,
			Name:      name,
			Help:      help,
			Buckets:   buckets,
		},
		labels,
	)
}

// createGaugeVec defines a new GaugeVec safely for resource monitoring.
// Used internally by NewMetrics to track resource utilization.
func createGaugeVec(namespace, name, help string, labels []string) *prometheus.GaugeVec {
	return prometheus.NewGaugeVec(
		prometheus.GaugeOpts{
			Namespace: namespace,
			Name:      name,
			Help:      help,
		},
		labels,
	)
}

package metrics

import (
	"net/http"

	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/collectors"
	"github.com/prometheus/client_golang/prometheus/promhttp"
)

// Metrics encapsulates the Prometheus registry and HTTP server responsible
// for exposing application metrics.
//
// This structure provides the components needed to register metrics collectors
// and serve them via the /metrics HTTP endpoint for Prometheus scraping.
type Metrics struct {
	// Server defines the HTTP server used to expose the /metrics endpoint.
	Server *http.Server

	// Registry is the Prometheus registry where all metrics are registered.
	// Each service maintains its own isolated registry to prevent metric name collisions.
	Registry *prometheus.Registry

	namespace string

	// Core built-in metrics for the schema pipeline
	operationsTotal   *prometheus.CounterVec
	operationDuration *prometheus.HistogramVec
	payloadBytes      *prometheus.HistogramVec
	cacheEntries      *prometheus.GaugeVec
	cacheRequests     *prometheus.CounterVec
}

// NewMetrics initializes and returns a new instance of the Metrics struct.
// It sets up a dedicated Prometheus registry, registers default system collectors,
// wraps all metrics with a constant `service` label, and creates an HTTP server
// exposing the /metrics endpoint.
//
// The setup includes:
//   - A dedicated Prometheus registry for the service
//   - Built-in counters, histograms, and gauges for schema operations
//   - Automatic registration of Go, process, and build info collectors
//   - A global "service" label applied to all metrics for easier aggregation
//   - An HTTP server exposing the metrics endpoint
//
// Example:
//
//	cfg := metrics.Config{
//	    Address:                 ":9090",
//	    ServiceName:             "order-consumer",
//	    EnableDefaultCollectors: true,
//	}
//	metricsInstance := metrics.NewMetrics(cfg)
//	go metricsInstance.Server.ListenAndServe()
//
// Access metrics at: http://localhost:9090/metrics
func NewMetrics(cfg Config) *Metrics {
	if cfg.Address == "" {
		cfg.Address = DefaultAddress
	}

	// Create a new isolated Prometheus registry for this service.
	// This avoids metric collisions when multiple services run in the same process.
	registry := prometheus.NewRegistry()

	// Wrap the registry with a constant label for consistent observability.
	// All metrics emitted by this service will automatically include the label:
	//   service="<cfg.ServiceName>"
	wrappedRegistry := prometheus.WrapRegistererWith(
		prometheus.Labels{"service": cfg.ServiceName},
		registry,
	)

	m := &Metrics{
		Registry:  registry,
		namespace: cfg.Namespace,
	}

	// Define the built-in schema pipeline metrics
	m.operationsTotal = createCounterVec(cfg.Namespace, "avro_operations_total", "Total number of schema, resolve, and codec operations", []string{"component", "operation", "status"})
	m.operationDuration = createHistogramVec(cfg.Namespace, "avro_operation_duration_seconds", "Duration of schema, resolve, and codec operations in seconds", []string{"component", "operation"}, prometheus.DefBuckets)
	m.payloadBytes = createHistogramVec(cfg.Namespace, "avro_payload_bytes", "Size of encoded and decoded payloads in bytes", []string{"component", "operation"}, prometheus.ExponentialBuckets(64, 4, 8))
	m.cacheEntries = createGaugeVec(cfg.Namespace, "avro_schema_cache_entries", "Number of schemas currently cached", []string{"cache"})
	m.cacheRequests = createCounterVec(cfg.Namespace, "avro_schema_cache_requests_total", "Schema cache lookups partitioned by outcome", []string{"hit"})

	// Register the metrics
	wrappedRegistry.MustRegister(
		m.operationsTotal,
		m.operationDuration,
		m.payloadBytes,
		m.cacheEntries,
		m.cacheRequests,
	)

	// Register standard collectors if enabled.
	// These provide essential runtime metrics for Go processes:
	//   - GoCollector: Memory usage, goroutines, GC stats
	//   - ProcessCollector: CPU, file descriptors, memory stats
	//   - BuildInfoCollector: Binary version/build info
	if cfg.EnableDefaultCollectors {
		wrappedRegistry.MustRegister(
			collectors.NewGoCollector(),
			collectors.NewProcessCollector(collectors.ProcessCollectorOpts{}),
			collectors.NewBuildInfoCollector(),
		)
	}

	// Create an HTTP handler that serves metrics from the registry.
	// The handler exposes metrics at /metrics for Prometheus scraping.
	handler := promhttp.HandlerFor(registry, promhttp.HandlerOpts{})

	server := &http.Server{
		Addr:    cfg.Address,
		Handler: handler,
	}

	m.Server = server
	return m
}

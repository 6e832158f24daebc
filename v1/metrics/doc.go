// Package metrics provides Prometheus-based monitoring and metrics collection
// functionality for the schema pipeline.
//
// The package exposes a configurable /metrics endpoint, ships built-in
// counters, histograms, and gauges for schema operations, and integrates
// with the Fx dependency injection framework for lifecycle management.
//
// # Architecture
//
// This package follows the "accept interfaces, return structs" design pattern:
//   - MetricsCollector interface: Defines the contract for metrics operations
//   - Metrics struct: Concrete implementation of the MetricsCollector interface
//   - NewMetrics constructor: Returns *Metrics (concrete type)
//   - OperationObserver: Implements observability.Observer on top of the
//     built-in metrics
//   - FX module: Provides *Metrics, MetricsCollector, and the observer
//
// # Built-in Metrics
//
// Every instance registers the following families, all carrying a constant
// service label:
//
//	avro_operations_total{component, operation, status}
//	avro_operation_duration_seconds{component, operation}
//	avro_payload_bytes{component, operation}
//	avro_schema_cache_entries{cache}
//	avro_schema_cache_requests_total{hit}
//
// # Direct Usage (Without FX)
//
// For simple applications or tests, create metrics directly:
//
//	import "github.com/Aleph-Alpha/avrokit/v1/metrics"
//
//	cfg := metrics.Config{
//		Address:                 ":9090",
//		EnableDefaultCollectors: true,
//		ServiceName:             "order-consumer",
//	}
//
//	m := metrics.NewMetrics(cfg)
//	go m.Server.ListenAndServe()
//
//	m.IncrementOperations("resolver", "resolve", "success")
//	defer m.RecordOperationDuration(time.Now(), "resolver", "resolve")
//
// # Wiring Clients to Prometheus
//
// The OperationObserver adapts the observability.Observer contract to the
// built-in metrics, so every registry, resolver, and serde operation is
// counted and timed:
//
//	observer := metrics.NewOperationObserver(m)
//	client.WithObserver(observer)
//	res.WithObserver(observer)
//
// The FX module provides the observer as observability.Observer, which the
// other modules pick up automatically through their optional parameters.
//
// # FX Module Integration
//
//	import (
//		"go.uber.org/fx"
//		"github.com/Aleph-Alpha/avrokit/v1/logger"
//		"github.com/Aleph-Alpha/avrokit/v1/metrics"
//	)
//
//	app := fx.New(
//		logger.FXModule,
//		metrics.FXModule,
//		fx.Provide(func() metrics.Config {
//			return metrics.Config{
//				Address:                 ":9090",
//				EnableDefaultCollectors: true,
//				ServiceName:             "order-consumer",
//			}
//		}),
//	)
//	app.Run()
//
// # Configuration
//
// The metrics server can be configured via environment variables:
//
//	METRICS_ADDRESS=:9090                      # Port and address for /metrics endpoint
//	METRICS_ENABLE_DEFAULT_COLLECTORS=true     # Enable runtime and process metrics
//	METRICS_NAMESPACE=pharia_data              # Optional prefix for all metric names
//	METRICS_SERVICE_NAME=order-consumer        # Adds service label to all metrics
//
// # Default Collectors
//
// When EnableDefaultCollectors is true, the package automatically registers
// the following collectors:
//   - Go runtime metrics (goroutines, GC stats, heap usage)
//   - Process metrics (CPU time, memory, file descriptors)
//   - Build info (binary version)
//
// # Custom Metrics
//
// Applications can register additional Prometheus metrics through the
// factories, which apply the configured namespace, or directly on the
// exposed Registry:
//
//	lagGauge := m.CreateGauge("consumer_lag", "Messages behind the head of the partition", []string{"topic"})
//	lagGauge.WithLabelValues("orders").Set(12)
//
// # Thread Safety
//
// All methods on the Metrics struct and Prometheus collectors are safe for
// concurrent use by multiple goroutines.
package metrics

package metrics

// DefaultAddress is used when Config.Address is empty.
const DefaultAddress = ":9090"

// Config defines the configuration for the metrics server.
type Config struct {
	// Address is the listen address for the /metrics endpoint
	Address string `yaml:"address" envconfig:"METRICS_ADDRESS"`

	// ServiceName is applied as a constant "service" label to all metrics
	ServiceName string `yaml:"service_name" envconfig:"METRICS_SERVICE_NAME"`

	// Namespace is an optional prefix for all metric names
	Namespace string `yaml:"namespace" envconfig:"METRICS_NAMESPACE"`

	// EnableDefaultCollectors registers the Go runtime, process, and build
	// info collectors
	EnableDefaultCollectors bool `yaml:"enable_default_collectors" envconfig:"METRICS_ENABLE_DEFAULT_COLLECTORS"`
}

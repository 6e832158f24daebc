package tracer

// Config defines the configuration for the tracer.
type Config struct {
	// ServiceName identifies this service in trace backends
	ServiceName string `yaml:"service_name" envconfig:"TRACER_SERVICE_NAME"`

	// AppEnv is the deployment environment reported with every span
	AppEnv string `yaml:"app_env" envconfig:"APP_ENV"`

	// EnableExport turns on the OTLP HTTP exporter. The exporter endpoint is
	// taken from the standard OTEL_EXPORTER_OTLP_* environment variables.
	EnableExport bool `yaml:"enable_export" envconfig:"TRACER_ENABLE_EXPORT"`

	// SampleRatio is the fraction of new traces to sample. Values at or
	// below 0 and at or above 1 keep every trace.
	SampleRatio float64 `yaml:"sample_ratio" envconfig:"TRACER_SAMPLE_RATIO"`
}

// Logger is an interface that matches the v1/logger.Logger methods, so any
// logger implementation can be plugged in.
type Logger interface {
	Info(msg string, err error, fields ...map[string]interface{})
	Debug(msg string, err error, fields ...map[string]interface{})
	Warn(msg string, err error, fields ...map[string]interface{})
	Error(msg string, err error, fields ...map[string]interface{})
	Fatal(msg string, err error, fields ...map[string]interface{})
}

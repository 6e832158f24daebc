package kafka

import (
	"time"

	"github.com/segmentio/kafka-go"
)

// Config defines the configuration for the Kafka client.
// A client acts either as a producer or as a consumer, selected by IsConsumer;
// the unused half of the settings is ignored.
type Config struct {
	// Brokers lists the Kafka bootstrap servers (e.g., "localhost:9092")
	// Required; NewClient fails without at least one.
	Brokers []string `yaml:"brokers" envconfig:"KAFKA_BROKERS"`

	// Topic to produce to or consume from
	// Required; NewClient fails without it.
	Topic string `yaml:"topic" envconfig:"KAFKA_TOPIC"`

	// GroupID is the consumer group ID
	// Consumers without a group read a single partition directly.
	GroupID string `yaml:"group_id" envconfig:"KAFKA_GROUP_ID"`

	// IsConsumer selects consumer setup (reader) instead of producer setup (writer)
	IsConsumer bool `yaml:"is_consumer" envconfig:"KAFKA_IS_CONSUMER"`

	// Consumer settings

	// MinBytes is the minimum batch size the broker should return
	// Default: 10KB
	MinBytes int `yaml:"min_bytes" envconfig:"KAFKA_MIN_BYTES"`

	// MaxBytes is the maximum batch size the broker should return
	// Default: 10MB
	MaxBytes int `yaml:"max_bytes" envconfig:"KAFKA_MAX_BYTES"`

	// MaxWait is how long the broker may delay a fetch response while
	// accumulating MinBytes
	// Default: 1 second
	MaxWait time.Duration `yaml:"max_wait" envconfig:"KAFKA_MAX_WAIT"`

	// EnableAutoCommit enables periodic asynchronous offset commits.
	// When false, CommitMsg commits synchronously.
	EnableAutoCommit bool `yaml:"enable_auto_commit" envconfig:"KAFKA_ENABLE_AUTO_COMMIT"`

	// CommitInterval is the flush interval for asynchronous commits
	// Only used when EnableAutoCommit is true. Default: 1 second
	CommitInterval time.Duration `yaml:"commit_interval" envconfig:"KAFKA_COMMIT_INTERVAL"`

	// StartOffset is where a new consumer group starts when it has no
	// committed offset: kafka.FirstOffset or kafka.LastOffset
	// Default: kafka.FirstOffset
	StartOffset int64 `yaml:"start_offset" envconfig:"KAFKA_START_OFFSET"`

	// Partition pins a group-less consumer to a single partition.
	// Ignored when GroupID is set. Default: -1 (unpinned)
	Partition int `yaml:"partition" envconfig:"KAFKA_PARTITION"`

	// Producer settings

	// RequiredAcks is the number of broker acknowledgements required before
	// a write is considered successful: -1 all, 1 leader, 0 none
	// Default: -1
	RequiredAcks int `yaml:"required_acks" envconfig:"KAFKA_REQUIRED_ACKS"`

	// Async enables fire-and-forget batched writes. Write errors are only
	// reported through the error logger.
	Async bool `yaml:"async" envconfig:"KAFKA_ASYNC"`

	// BatchSize is the maximum number of messages per batch in async mode
	// Default: 100
	BatchSize int `yaml:"batch_size" envconfig:"KAFKA_BATCH_SIZE"`

	// BatchTimeout is how long an incomplete batch may wait in async mode
	// Default: 1 second
	BatchTimeout time.Duration `yaml:"batch_timeout" envconfig:"KAFKA_BATCH_TIMEOUT"`

	// MaxAttempts is how many times a write is retried before failing
	// Default: 3
	MaxAttempts int `yaml:"max_attempts" envconfig:"KAFKA_MAX_ATTEMPTS"`

	// WriteTimeout bounds each write to the brokers
	// Default: 10 seconds
	WriteTimeout time.Duration `yaml:"write_timeout" envconfig:"KAFKA_WRITE_TIMEOUT"`

	// CompressionCodec selects the producer compression:
	// "gzip", "snappy", "lz4" or "zstd". Empty means no compression.
	CompressionCodec string `yaml:"compression_codec" envconfig:"KAFKA_COMPRESSION_CODEC"`

	// Logger is an optional logger from v1/logger.
	// Kafka internal errors and client events are logged through it.
	Logger Logger

	// ErrorLogger is an optional printf-style fallback for Kafka internal
	// errors, used when Logger is not set
	ErrorLogger func(msg string, args ...interface{})
}

// Logger is an interface that matches the v1/logger.Logger basic methods.
// It provides structured logging with optional error and field parameters.
type Logger interface {
	// Info logs an informational message.
	Info(msg string, err error, fields ...map[string]interface{})

	// Warn logs a warning message.
	Warn(msg string, err error, fields ...map[string]interface{})

	// Error logs an error message.
	Error(msg string, err error, fields ...map[string]interface{})
}

// Default values for configuration
const (
	DefaultMinBytes       = 10e3
	DefaultMaxBytes       = 10e6
	DefaultMaxWait        = time.Second
	DefaultCommitInterval = time.Second
	DefaultStartOffset    = kafka.FirstOffset
	DefaultPartition      = -1
	DefaultRequiredAcks   = -1
	DefaultBatchSize      = 100
	DefaultBatchTimeout   = time.Second
	DefaultMaxAttempts    = 3
	DefaultWriteTimeout   = 10 * time.Second
)

package kafka

import (
	"fmt"
	"log"
	"sync"

	"github.com/Aleph-Alpha/avrokit/v1/observability"
	"github.com/segmentio/kafka-go"
	"github.com/segmentio/kafka-go/compress"
)

// KafkaClient represents a client for interacting with Apache Kafka.
// It manages connections and provides methods for publishing
// and consuming messages.
//
// KafkaClient implements the Client interface.
type KafkaClient struct {
	// cfg stores the configuration for this Kafka client
	cfg Config

	// observer provides optional observability hooks for tracking operations
	observer observability.Observer

	// writer is the Kafka writer used for publishing messages
	writer *kafka.Writer

	// reader is the Kafka reader used for consuming messages
	reader *kafka.Reader

	// serializer is used to encode messages before publishing
	serializer Serializer

	// deserializer is used to decode messages after consuming
	deserializer Deserializer

	// mu protects concurrent access to writer, reader and the serializer slots
	mu sync.RWMutex

	// shutdownSignal is closed when the client is being shut down
	shutdownSignal chan struct{}

	closeShutdownOnce sync.Once
}

// NewClient creates and initializes a new KafkaClient with the provided configuration.
// This function sets up the producer or consumer based on the configuration.
// No connection is made until the first publish or consume; the brokers may
// come up after the client.
//
// Parameters:
//   - cfg: Configuration for connecting to Kafka
//
// Returns a new KafkaClient instance that is ready to use.
//
// Example:
//
//	client, err := kafka.NewClient(config)
//	if err != nil {
//		log.Printf("ERROR: failed to create Kafka client: %v", err)
//		return nil, err
//	}
//	defer client.GracefulShutdown()
func NewClient(cfg Config) (*KafkaClient, error) {
	if len(cfg.Brokers) == 0 {
		return nil, fmt.Errorf("at least one kafka broker is required")
	}
	if cfg.Topic == "" {
		return nil, fmt.Errorf("kafka topic is required")
	}

	// Apply defaults
	if cfg.MinBytes == 0 {
		cfg.MinBytes = DefaultMinBytes
	}
	if cfg.MaxBytes == 0 {
		cfg.MaxBytes = DefaultMaxBytes
	}
	if cfg.MaxWait == 0 {
		cfg.MaxWait = DefaultMaxWait
	}
	if cfg.CommitInterval == 0 {
		cfg.CommitInterval = DefaultCommitInterval
	}
	if cfg.StartOffset == 0 {
		cfg.StartOffset = DefaultStartOffset
	}
	if cfg.Partition == 0 {
		cfg.Partition = DefaultPartition
	}
	if cfg.RequiredAcks == 0 {
		cfg.RequiredAcks = DefaultRequiredAcks
	}
	if cfg.BatchSize == 0 {
		cfg.BatchSize = DefaultBatchSize
	}
	if cfg.BatchTimeout == 0 {
		cfg.BatchTimeout = DefaultBatchTimeout
	}
	if cfg.MaxAttempts == 0 {
		cfg.MaxAttempts = DefaultMaxAttempts
	}
	if cfg.WriteTimeout == 0 {
		cfg.WriteTimeout = DefaultWriteTimeout
	}

	k := &KafkaClient{
		cfg:            cfg,
		observer:       nil, // No observer by default
		shutdownSignal: make(chan struct{}),
	}

	// Create reader (consumer) or writer (producer)
	if cfg.IsConsumer {
		k.reader = createReader(cfg)
		log.Println("INFO: Kafka consumer initialized")
	} else {
		k.writer = createWriter(cfg)
		log.Println("INFO: Kafka producer initialized")
	}

	// Fill any serializer slots that are still empty
	k.SetDefaultSerializers()

	return k, nil
}

// WithObserver attaches an observer to the Kafka client for tracking operations.
// This method uses the builder pattern and returns the client for method chaining.
//
// The observer will be notified of all produce and consume operations, allowing
// external code to collect metrics, create traces, or log operations.
//
// This is useful for non-FX usage where you want to enable observability after
// creating the client. When using FX, use NewClientWithDI instead, which
// automatically injects the observer.
//
// Example:
//
//	client, err := kafka.NewClient(config)
//	if err != nil {
//	    return err
//	}
//	client = client.WithObserver(myObserver)
//	defer client.GracefulShutdown()
func (k *KafkaClient) WithObserver(observer observability.Observer) *KafkaClient {
	k.observer = observer
	return k
}

// SetSerializer sets the serializer for the Kafka client.
// Typically called once during wiring, before the first Publish.
func (k *KafkaClient) SetSerializer(s Serializer) {
	k.mu.Lock()
	defer k.mu.Unlock()
	k.serializer = s
}

// SetDeserializer sets the deserializer for the Kafka client.
// Typically called once during wiring, before the first Consume.
func (k *KafkaClient) SetDeserializer(d Deserializer) {
	k.mu.Lock()
	defer k.mu.Unlock()
	k.deserializer = d
}

// SetDefaultSerializers fills empty serializer slots with the raw byte
// passthrough. Schema-aware serializers need a live registry client, so they
// are wired explicitly through SetSerializer and SetDeserializer.
func (k *KafkaClient) SetDefaultSerializers() {
	k.mu.Lock()
	defer k.mu.Unlock()
	if k.serializer == nil {
		k.serializer = RawSerializer{}
	}
	if k.deserializer == nil {
		k.deserializer = RawDeserializer{}
	}
}

// createErrorLogger creates a Kafka error logger from the config
func createErrorLogger(cfg Config) kafka.LoggerFunc {
	// Priority 1: Use v1/logger if provided
	if cfg.Logger != nil {
		return kafka.LoggerFunc(func(msg string, args ...interface{}) {
			formattedMsg := msg
			if len(args) > 0 {
				formattedMsg = fmt.Sprintf(msg, args...)
			}
			cfg.Logger.Error("Kafka internal error", nil, map[string]interface{}{
				"error": formattedMsg,
			})
		})
	}

	// Priority 2: Use custom error logger function
	if cfg.ErrorLogger != nil {
		return kafka.LoggerFunc(cfg.ErrorLogger)
	}

	// Priority 3: Use standard log package
	return kafka.LoggerFunc(func(msg string, args ...interface{}) {
		log.Printf("KAFKA ERROR: "+msg, args...)
	})
}

// createWriter creates a Kafka writer with the given configuration
func createWriter(cfg Config) *kafka.Writer {
	writerConfig := kafka.WriterConfig{
		Brokers:      cfg.Brokers,
		Topic:        cfg.Topic,
		Balancer:     &kafka.LeastBytes{},
		MaxAttempts:  cfg.MaxAttempts,
		WriteTimeout: cfg.WriteTimeout,
		ErrorLogger:  createErrorLogger(cfg),
	}

	// Set required acks
	writerConfig.RequiredAcks = cfg.RequiredAcks

	// Set async mode
	if cfg.Async {
		writerConfig.Async = true
		writerConfig.BatchSize = cfg.BatchSize
		writerConfig.BatchTimeout = cfg.BatchTimeout
	}

	// Set compression
	switch cfg.CompressionCodec {
	case "gzip":
		writerConfig.CompressionCodec = &compress.GzipCodec
	case "snappy":
		writerConfig.CompressionCodec = &compress.SnappyCodec
	case "lz4":
		writerConfig.CompressionCodec = &compress.Lz4Codec
	case "zstd":
		writerConfig.CompressionCodec = &compress.ZstdCodec
	}

	return kafka.NewWriter(writerConfig)
}

// createReader creates a Kafka reader with the given configuration
func createReader(cfg Config) *kafka.Reader {
	readerConfig := kafka.ReaderConfig{
		Brokers:     cfg.Brokers,
		Topic:       cfg.Topic,
		GroupID:     cfg.GroupID,
		MinBytes:    cfg.MinBytes,
		MaxBytes:    cfg.MaxBytes,
		MaxWait:     cfg.MaxWait,
		StartOffset: cfg.StartOffset,
		ErrorLogger: createErrorLogger(cfg),
	}

	// Configure auto-commit behavior
	if cfg.EnableAutoCommit {
		// Auto-commit enabled: CommitMsg queues, flushed on the interval
		readerConfig.CommitInterval = cfg.CommitInterval
	} else {
		// Auto-commit disabled: CommitMsg commits synchronously
		readerConfig.CommitInterval = 0
	}

	// A partition may only be pinned for group-less consumers; kafka-go
	// rejects GroupID and Partition together.
	if cfg.GroupID == "" && cfg.Partition != -1 {
		readerConfig.Partition = cfg.Partition
	}

	return kafka.NewReader(readerConfig)
}

// logInfo logs through the configured logger, falling back to the standard
// log package.
func (k *KafkaClient) logInfo(msg string, fields map[string]interface{}) {
	if k.cfg.Logger != nil {
		k.cfg.Logger.Info(msg, nil, fields)
		return
	}
	log.Printf("INFO: %s", msg)
}

func (k *KafkaClient) logWarn(msg string, err error, fields map[string]interface{}) {
	if k.cfg.Logger != nil {
		k.cfg.Logger.Warn(msg, err, fields)
		return
	}
	log.Printf("WARNING: %s: %v", msg, err)
}

func (k *KafkaClient) logError(msg string, err error, fields map[string]interface{}) {
	if k.cfg.Logger != nil {
		k.cfg.Logger.Error(msg, err, fields)
		return
	}
	log.Printf("ERROR: %s: %v", msg, err)
}

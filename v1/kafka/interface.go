package kafka

import (
	"context"
	"sync"
)

// Client provides a high-level interface for interacting with Apache Kafka.
// It abstracts connection management, serialization, and message
// publishing/consuming.
//
// This interface is implemented by the concrete *KafkaClient type.
type Client interface {
	// Producer operations

	// Publish serializes a value and sends it to the configured topic.
	// Headers are attached verbatim and are typically used for trace
	// context propagation.
	Publish(ctx context.Context, key string, value interface{}, headers map[string]string) error

	// Consumer operations

	// Consume starts consuming messages from the configured topic.
	// Returns a channel that delivers consumed messages.
	Consume(ctx context.Context, wg *sync.WaitGroup) <-chan Message

	// ConsumeParallel consumes with the given number of concurrent workers
	// feeding a single channel, for high-volume topics.
	ConsumeParallel(ctx context.Context, wg *sync.WaitGroup, workers int) <-chan Message

	// Serialization

	// SetSerializer replaces the serializer used by Publish.
	SetSerializer(s Serializer)

	// SetDeserializer replaces the deserializer used by Message.Decode.
	SetDeserializer(d Deserializer)

	// Lifecycle

	// GracefulShutdown stops consumption and closes the underlying
	// writer and reader cleanly.
	GracefulShutdown()
}

// Message represents a consumed message from Kafka.
// It provides methods for committing offsets and accessing message data.
type Message interface {
	// Body returns the raw message payload as a byte slice.
	Body() []byte

	// Decode runs the client's deserializer over the payload.
	Decode() (interface{}, error)

	// Key returns the message key.
	Key() string

	// Header returns the message headers.
	Header() map[string]string

	// Partition returns the partition the message was read from.
	Partition() int

	// Offset returns the message offset within its partition.
	Offset() int64

	// CommitMsg commits the message's offset. With EnableAutoCommit the
	// commit is queued and flushed on the commit interval; otherwise it is
	// synchronous.
	CommitMsg() error
}

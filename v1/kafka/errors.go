package kafka

import "errors"

var (
	// ErrNotProducer is returned by Publish when the client was configured
	// as a consumer.
	ErrNotProducer = errors.New("kafka client is not configured as a producer")

	// ErrNotConsumer is returned through the consume channel setup when the
	// client was configured as a producer.
	ErrNotConsumer = errors.New("kafka client is not configured as a consumer")
)

// IsNotProducer reports whether the error indicates a consumer-configured
// client was asked to publish.
func IsNotProducer(err error) bool {
	return errors.Is(err, ErrNotProducer)
}

// IsNotConsumer reports whether the error indicates a producer-configured
// client was asked to consume.
func IsNotConsumer(err error) bool {
	return errors.Is(err, ErrNotConsumer)
}

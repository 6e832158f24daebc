package kafka

import (
	"context"
	"errors"
	"fmt"
	"io"
	"strconv"
	"sync"
	"time"

	"github.com/segmentio/kafka-go"
)

// ConsumerMessage implements the Message interface and wraps a fetched
// Kafka message.
type ConsumerMessage struct {
	msg    kafka.Message
	reader *kafka.Reader
	client *KafkaClient

	// ctx is the consume context; commits and decodes run under it
	ctx context.Context
}

// Publish serializes a value and sends it to the topic specified in the
// configuration. This method is thread-safe and respects context cancellation.
//
// Parameters:
//   - ctx: Context for cancellation control
//   - key: Message key used for partition assignment; empty means the
//     balancer picks a partition
//   - value: The value handed to the configured serializer. With the default
//     raw serializer this must be a []byte or string.
//   - headers: Optional message headers, typically used for distributed
//     tracing propagation
//
// The headers parameter pairs with the tracer package: extract trace headers
// on the producer side and include them in the message:
//
//	traceHeaders := tracerClient.GetCarrier(ctx)
//	err := kafkaClient.Publish(ctx, "order-123", payload, traceHeaders)
//
// Returns an error if serialization or the write fails, or if the client was
// configured as a consumer.
func (k *KafkaClient) Publish(ctx context.Context, key string, value interface{}, headers map[string]string) error {
	start := time.Now()
	var publishErr error
	var msgSize int64

	defer func() {
		k.observeOperation("produce", k.cfg.Topic, "", time.Since(start), publishErr, msgSize)
	}()

	k.mu.RLock()
	writer, serializer := k.writer, k.serializer
	k.mu.RUnlock()

	if writer == nil {
		publishErr = ErrNotProducer
		return publishErr
	}
	if serializer == nil {
		publishErr = fmt.Errorf("no serializer configured")
		return publishErr
	}

	payload, err := serializer.Serialize(ctx, value)
	if err != nil {
		publishErr = fmt.Errorf("failed to serialize message: %w", err)
		k.logError("Failed to serialize message", err, map[string]interface{}{
			"topic": k.cfg.Topic,
		})
		return publishErr
	}
	msgSize = int64(len(payload))

	msg := kafka.Message{
		Value:   payload,
		Headers: kafkaHeaders(headers),
	}
	if key != "" {
		msg.Key = []byte(key)
	}

	if publishErr = writer.WriteMessages(ctx, msg); publishErr != nil {
		k.logError("Failed to publish message", publishErr, map[string]interface{}{
			"topic": k.cfg.Topic,
		})
	}
	return publishErr
}

// Consume starts consuming messages from the topic specified in the
// configuration. This method provides a channel where consumed messages will
// be delivered.
//
// Parameters:
//   - ctx: Context for cancellation control
//   - wg: WaitGroup for coordinating shutdown
//
// Returns a channel that delivers Message interfaces for each consumed
// message. The channel is closed when consumption stops due to context
// cancellation or shutdown.
//
// Example:
//
//	wg := &sync.WaitGroup{}
//	ctx, cancel := context.WithCancel(context.Background())
//	defer cancel()
//
//	msgChan := kafkaClient.Consume(ctx, wg)
//	for msg := range msgChan {
//	    // Process the message
//	    fmt.Println("Received:", string(msg.Body()))
//
//	    // Commit successful processing
//	    if err := msg.CommitMsg(); err != nil {
//	        log.Printf("Failed to commit message: %v", err)
//	    }
//	}
func (k *KafkaClient) Consume(ctx context.Context, wg *sync.WaitGroup) <-chan Message {
	return k.consumeTopic(ctx, wg, 1)
}

// ConsumeParallel consumes the topic with the given number of concurrent
// workers feeding a single channel. Use it for high-volume topics where one
// fetch loop cannot keep up.
//
// Messages from different workers are interleaved; ordering is only
// preserved per partition as far as Kafka itself guarantees it.
func (k *KafkaClient) ConsumeParallel(ctx context.Context, wg *sync.WaitGroup, workers int) <-chan Message {
	if workers < 1 {
		workers = 1
	}
	return k.consumeTopic(ctx, wg, workers)
}

// consumeTopic starts the fetch workers and hands out the shared channel.
func (k *KafkaClient) consumeTopic(ctx context.Context, wg *sync.WaitGroup, workers int) <-chan Message {
	outChan := make(chan Message, 100)

	k.mu.RLock()
	reader := k.reader
	k.mu.RUnlock()

	if reader == nil {
		k.logError("Cannot consume", ErrNotConsumer, map[string]interface{}{
			"topic": k.cfg.Topic,
		})
		close(outChan)
		return outChan
	}

	workersDone := &sync.WaitGroup{}
	for i := 0; i < workers; i++ {
		wg.Add(1)
		workersDone.Add(1)
		go func() {
			defer wg.Done()
			defer workersDone.Done()
			k.consumeLoop(ctx, reader, outChan)
		}()
	}

	// The channel closes when the last worker stops.
	go func() {
		workersDone.Wait()
		close(outChan)
	}()

	return outChan
}

// consumeLoop fetches messages until the context is canceled or the client
// shuts down. Fetch errors other than termination are logged and retried.
func (k *KafkaClient) consumeLoop(ctx context.Context, reader *kafka.Reader, outChan chan<- Message) {
	for {
		select {
		case <-k.shutdownSignal:
			k.logInfo("Stopping consumer due to shutdown signal", map[string]interface{}{
				"topic": k.cfg.Topic,
			})
			return
		case <-ctx.Done():
			k.logInfo("Stopping consumer due to context cancellation", map[string]interface{}{
				"topic": k.cfg.Topic,
				"error": ctx.Err().Error(),
			})
			return
		default:
		}

		start := time.Now()
		msg, err := reader.FetchMessage(ctx)
		if err != nil {
			if errors.Is(err, io.EOF) {
				// The reader was closed out from under the fetch, which is
				// how shutdown interrupts a blocked consumer.
				k.logInfo("Stopping consumer, reader closed", map[string]interface{}{
					"topic": k.cfg.Topic,
				})
				return
			}
			if errors.Is(err, context.Canceled) || errors.Is(err, context.DeadlineExceeded) {
				// The loop head logs the stop.
				continue
			}
			k.observeOperation("consume", k.cfg.Topic, "", time.Since(start), err, 0)
			k.logError("Failed to fetch message", err, map[string]interface{}{
				"topic": k.cfg.Topic,
			})
			time.Sleep(100 * time.Millisecond)
			continue
		}

		k.observeOperation("consume", k.cfg.Topic, strconv.Itoa(msg.Partition), time.Since(start), nil, int64(len(msg.Value)))

		select {
		case outChan <- &ConsumerMessage{msg: msg, reader: reader, client: k, ctx: ctx}:
		case <-ctx.Done():
		case <-k.shutdownSignal:
		}
	}
}

// kafkaHeaders converts a header map into Kafka wire headers.
func kafkaHeaders(headers map[string]string) []kafka.Header {
	if len(headers) == 0 {
		return nil
	}
	hs := make([]kafka.Header, 0, len(headers))
	for key, value := range headers {
		hs = append(hs, kafka.Header{Key: key, Value: []byte(value)})
	}
	return hs
}

// Body returns the raw message payload as a byte slice.
func (m *ConsumerMessage) Body() []byte {
	return m.msg.Value
}

// Decode runs the client's deserializer over the payload. With a
// schema-aware deserializer this untags the payload and decodes it against
// the schema the tag names.
func (m *ConsumerMessage) Decode() (interface{}, error) {
	m.client.mu.RLock()
	deserializer := m.client.deserializer
	m.client.mu.RUnlock()
	if deserializer == nil {
		return nil, fmt.Errorf("no deserializer configured")
	}
	return deserializer.Deserialize(m.ctx, m.msg.Value)
}

// Key returns the message key.
func (m *ConsumerMessage) Key() string {
	return string(m.msg.Key)
}

// Header returns the headers associated with the message.
// Message headers provide metadata about the message and commonly carry
// trace context set by the publisher:
//
//	msgChan := kafkaClient.Consume(ctx, wg)
//	for msg := range msgChan {
//	    ctx = tracerClient.SetCarrierOnContext(ctx, msg.Header())
//	    ctx, span := tracerClient.StartSpan(ctx, "process-message")
//	    // ...
//	}
func (m *ConsumerMessage) Header() map[string]string {
	headers := make(map[string]string, len(m.msg.Headers))
	for _, h := range m.msg.Headers {
		headers[h.Key] = string(h.Value)
	}
	return headers
}

// Partition returns the partition the message was read from.
func (m *ConsumerMessage) Partition() int {
	return m.msg.Partition
}

// Offset returns the message offset within its partition.
func (m *ConsumerMessage) Offset() int64 {
	return m.msg.Offset
}

// CommitMsg commits the message's offset, informing Kafka that everything up
// to and including this message has been processed. With EnableAutoCommit the
// commit is queued and flushed on the commit interval; otherwise it blocks
// until the broker confirms.
func (m *ConsumerMessage) CommitMsg() error {
	return m.reader.CommitMessages(m.ctx, m.msg)
}

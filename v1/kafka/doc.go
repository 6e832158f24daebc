// Package kafka provides functionality for interacting with Apache Kafka.
//
// The kafka package offers a simplified interface for working with Kafka
// message brokers, providing connection management, message publishing, and
// consuming capabilities with schema-registry-aware serialization built in.
//
// Core Features:
//   - Producer and consumer setup on segmentio/kafka-go
//   - Simple publishing interface with error handling
//   - Consumer interface with manual commit handling
//   - Consumer group support
//   - Pluggable serializers; the Avro, Protobuf and JSON implementations
//     frame every payload in Confluent wire format so consumers resolve
//     schemas through the registry
//   - Integration with the logger package for structured logging
//   - Distributed tracing support via message headers
//
// Basic Usage:
//
//	import (
//		"github.com/Aleph-Alpha/avrokit/v1/kafka"
//		"context"
//		"sync"
//	)
//
//	// Create a new Kafka client
//	client, err := kafka.NewClient(kafka.Config{
//		Brokers: []string{"localhost:9092"},
//		Topic:   "events",
//		GroupID: "my-consumer-group",
//		IsConsumer: true,
//	})
//	if err != nil {
//		log.Fatalf("failed to create kafka client: %v", err)
//	}
//	defer client.GracefulShutdown()
//
//	// Consume messages
//	wg := &sync.WaitGroup{}
//	ctx, cancel := context.WithCancel(context.Background())
//	defer cancel()
//
//	msgChan := client.Consume(ctx, wg)
//	for msg := range msgChan {
//		log.Printf("received: %s", msg.Body())
//
//		// Process the message
//
//		// Commit the message
//		if err := msg.CommitMsg(); err != nil {
//			log.Printf("failed to commit message: %v", err)
//		}
//	}
//
// A producer is the same client with IsConsumer left false:
//
//	producer, err := kafka.NewClient(kafka.Config{
//		Brokers: []string{"localhost:9092"},
//		Topic:   "events",
//	})
//	// With the default raw serializer the value must be a []byte or string.
//	err = producer.Publish(ctx, "key", []byte(`{"id": "123"}`), nil)
//
// Schema-Aware Serialization:
//
// The serializers connect the client to a schema registry. A producer
// registers its schema once and tags every payload with the registry-assigned
// ID; a consumer resolves each tag back to a schema through the resolver's
// cache:
//
//	serializer, err := kafka.NewAvroSerializer(ctx, kafka.AvroSerializerConfig{
//		Registry: registryClient,
//		Subject:  "events-value",
//		Schema:   eventSchema,
//	})
//	if err != nil {
//		return err
//	}
//	producer.SetSerializer(serializer)
//
//	// Avro native form: records are map[string]interface{}
//	err = producer.Publish(ctx, "key", map[string]interface{}{
//		"name": "Ada",
//		"age":  36,
//	}, nil)
//
//	deserializer, err := kafka.NewAvroDeserializer(kafka.AvroDeserializerConfig{
//		Serde: avroSerde,
//	})
//	if err != nil {
//		return err
//	}
//	client.SetDeserializer(deserializer)
//
//	for msg := range client.Consume(ctx, wg) {
//		value, err := msg.Decode()
//		if err != nil {
//			log.Printf("failed to decode message: %v", err)
//			continue
//		}
//		record := value.(map[string]interface{})
//		// ...
//	}
//
// NewProtobufSerializer and NewJSONSerializer follow the same pattern for
// proto.Message values and arbitrary JSON-marshalable values.
//
// High-Throughput Consumption with Parallel Workers:
//
// For high-volume topics, use ConsumeParallel to process messages concurrently:
//
//	wg := &sync.WaitGroup{}
//	ctx, cancel := context.WithCancel(context.Background())
//	defer cancel()
//
//	// Use 5 concurrent workers for better throughput
//	msgChan := client.ConsumeParallel(ctx, wg, 5)
//	for msg := range msgChan {
//		// Process messages concurrently
//		processMessage(msg)
//
//		// Commit the message
//		if err := msg.CommitMsg(); err != nil {
//			log.Printf("failed to commit message: %v", err)
//		}
//	}
//
// Distributed Tracing with Message Headers:
//
// This package supports distributed tracing by propagating trace context
// through message headers, enabling end-to-end visibility across services.
//
// Publisher Example (sending trace context):
//
//	import (
//		"github.com/Aleph-Alpha/avrokit/v1/tracer"
//		// other imports...
//	)
//
//	// Create a span for the operation that includes publishing
//	ctx, span := tracerClient.StartSpan(ctx, "process-and-publish")
//	defer span.End()
//
//	// Extract trace context as headers before publishing
//	traceHeaders := tracerClient.GetCarrier(ctx)
//
//	// Publish with trace headers
//	err = kafkaClient.Publish(ctx, "key", message, traceHeaders)
//	if err != nil {
//		span.RecordError(err)
//	}
//
// Consumer Example (continuing the trace):
//
//	msgChan := kafkaClient.Consume(ctx, wg)
//	for msg := range msgChan {
//		// Create a new context with the incoming trace information
//		ctx = tracerClient.SetCarrierOnContext(ctx, msg.Header())
//
//		// Create a span as a child of the incoming trace
//		ctx, span := tracerClient.StartSpan(ctx, "process-message")
//
//		tracerClient.SetAttributes(span, map[string]interface{}{
//			"message.size": len(msg.Body()),
//			"message.key":  msg.Key(),
//		})
//
//		// Process the message...
//
//		if err := msg.CommitMsg(); err != nil {
//			tracerClient.RecordErrorOnSpan(span, err)
//		}
//		span.End()
//	}
//
// FX Module Integration:
//
// This package provides a fx module for easy integration:
//
//	app := fx.New(
//		logger.FXModule, // Optional: provides the structured logger
//		kafka.FXModule,
//		// ... other modules
//	)
//	app.Run()
//
// The Kafka module will automatically use the logger and the observer if
// they are available in the dependency injection container.
//
// Configuration:
//
// The kafka client can be configured via environment variables or explicitly:
//
//	KAFKA_BROKERS=localhost:9092,localhost:9093
//	KAFKA_TOPIC=events
//	KAFKA_GROUP_ID=my-consumer-group
//
// Thread Safety:
//
// All methods on the KafkaClient type are safe for concurrent use by
// multiple goroutines. GracefulShutdown may be called more than once; only
// the first call closes the underlying writer and reader.
package kafka

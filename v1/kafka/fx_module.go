package kafka

import (
	"context"

	"github.com/Aleph-Alpha/avrokit/v1/observability"
	"go.uber.org/fx"
)

// FXModule is an fx.Module that provides and configures the Kafka client.
// This module registers the Kafka client with the Fx dependency injection
// framework, making it available to other components in the application.
//
// The module provides:
// 1. *KafkaClient (concrete type) for direct use
// 2. Client interface for dependency injection
// 3. Lifecycle management for graceful shutdown
//
// Usage:
//
//	app := fx.New(
//	    kafka.FXModule,
//	    // other modules...
//	)
var FXModule = fx.Module("kafka",
	fx.Provide(
		NewClientWithDI, // Provides *KafkaClient
		// Also provide the Client interface
		fx.Annotate(
			func(k *KafkaClient) Client { return k },
			fx.As(new(Client)),
		),
	),
	fx.Invoke(RegisterKafkaLifecycle),
)

// KafkaParams groups the dependencies needed to create a Kafka client
type KafkaParams struct {
	fx.In

	Config   Config
	Logger   Logger                 `optional:"true"`
	Observer observability.Observer `optional:"true"`
}

// NewClientWithDI creates a new Kafka client using dependency injection.
// This function is designed to be used with Uber's fx dependency injection
// framework where dependencies are automatically provided via the
// KafkaParams struct.
//
// Parameters:
//   - params: A KafkaParams struct that contains the Config instance and
//     optionally a Logger and Observer required to initialize the client.
//     This struct embeds fx.In to enable automatic injection.
//
// Returns:
//   - *KafkaClient: A fully initialized Kafka client ready for use.
//
// Example usage with fx:
//
//	app := fx.New(
//	    kafka.FXModule,
//	    logger.FXModule,  // Optional: provides logger
//	    metrics.FXModule, // Optional: provides observability.Observer
//	    fx.Provide(
//	        func() kafka.Config {
//	            return loadKafkaConfig() // Your config loading function
//	        },
//	    ),
//	)
//
// Schema-aware serializers need a registry client, so they are wired in an
// fx.Invoke after the client exists:
//
//	fx.Invoke(func(k *kafka.KafkaClient, sd *serde.Serde) error {
//	    d, err := kafka.NewAvroDeserializer(kafka.AvroDeserializerConfig{Serde: sd})
//	    if err != nil {
//	        return err
//	    }
//	    k.SetDeserializer(d)
//	    return nil
//	})
func NewClientWithDI(params KafkaParams) (*KafkaClient, error) {
	// Wire the injected logger through the config so the internal error
	// logger picks it up
	if params.Config.Logger == nil && params.Logger != nil {
		params.Config.Logger = params.Logger
	}

	// Create client with config
	client, err := NewClient(params.Config)
	if err != nil {
		return nil, err
	}

	// Inject observer if provided
	if params.Observer != nil {
		client.observer = params.Observer
	}

	return client, nil
}

// KafkaLifecycleParams groups the dependencies needed for Kafka lifecycle management
type KafkaLifecycleParams struct {
	fx.In

	Lifecycle fx.Lifecycle
	Client    *KafkaClient
}

// RegisterKafkaLifecycle registers the Kafka client with the fx lifecycle
// system. The writer and reader dial lazily, so there is nothing to do on
// start; on application stop the client is shut down gracefully, closing
// the reader so blocked consumers unwind.
func RegisterKafkaLifecycle(params KafkaLifecycleParams) {
	params.Lifecycle.Append(fx.Hook{
		OnStop: func(ctx context.Context) error {
			params.Client.GracefulShutdown()
			return nil
		},
	})
}

// GracefulShutdown closes the Kafka client's writer and reader cleanly.
// This method ensures that all resources are properly released when the
// application is shutting down.
//
// The shutdown process:
// 1. Signals all consume loops to stop by closing the shutdownSignal channel
// 2. Closes the writer, flushing any batched messages
// 3. Closes the reader, which unblocks in-flight fetches
//
// Any errors during shutdown are logged but not propagated, as they
// typically cannot be handled at this stage of application shutdown.
func (k *KafkaClient) GracefulShutdown() {
	k.closeShutdownOnce.Do(func() {
		close(k.shutdownSignal)
	})

	k.mu.Lock()
	defer k.mu.Unlock()

	k.logInfo("Shutting down Kafka client", nil)

	if k.writer != nil {
		if err := k.writer.Close(); err != nil {
			k.logWarn("Failed to close kafka writer", err, map[string]interface{}{
				"topic": k.cfg.Topic,
			})
		}
		k.writer = nil
	}
	if k.reader != nil {
		if err := k.reader.Close(); err != nil {
			k.logWarn("Failed to close kafka reader", err, map[string]interface{}{
				"topic": k.cfg.Topic,
			})
		}
		k.reader = nil
	}
}

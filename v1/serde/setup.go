package serde

import (
	"fmt"

	"github.com/Aleph-Alpha/avrokit/v1/observability"
)

// Serde encodes and decodes Avro values for schemas addressed by
// references, resolving schemas through a resolver so the network is hit
// at most once per schema.
//
// A Serde is stateless apart from its configuration and safe for
// concurrent use.
type Serde struct {
	resolver SchemaResolver
	encoding Encoding

	logger   Logger
	observer observability.Observer
}

// NewSerde creates a Serde on top of a schema resolver. The encoding
// defaults to binary.
func NewSerde(config Config) (*Serde, error) {
	if config.Resolver == nil {
		return nil, fmt.Errorf("schema resolver is required")
	}

	encoding := config.Encoding
	if encoding == "" {
		encoding = EncodingBinary
	}
	if encoding != EncodingBinary && encoding != EncodingTextual {
		return nil, fmt.Errorf("unknown encoding %q", encoding)
	}

	return &Serde{
		resolver: config.Resolver,
		encoding: encoding,
		logger:   config.Logger,
	}, nil
}

// WithLogger sets the logger for the serde and returns the same instance
// for chaining.
func (s *Serde) WithLogger(logger Logger) *Serde {
	s.logger = logger
	return s
}

// WithObserver sets the observer for serde operations and returns the same
// instance for chaining.
func (s *Serde) WithObserver(observer observability.Observer) *Serde {
	s.observer = observer
	return s
}

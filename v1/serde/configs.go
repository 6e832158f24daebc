package serde

import (
	"context"

	"github.com/linkedin/goavro/v2"

	"github.com/Aleph-Alpha/avrokit/v1/resolver"
)

// Encoding selects the Avro representation produced and consumed by a
// Serde.
type Encoding string

const (
	// EncodingBinary is the Avro binary encoding, the wire default.
	EncodingBinary Encoding = "binary"

	// EncodingTextual is the Avro JSON encoding, mainly useful for
	// debugging and fixtures.
	EncodingTextual Encoding = "textual"
)

// Config defines the configuration for a Serde.
type Config struct {
	// Resolver supplies parsed schemas for references. Required.
	Resolver SchemaResolver

	// Encoding selects binary (default) or textual Avro.
	Encoding Encoding

	// Logger is an optional logger that matches the Logger interface (see
	// v1/logger)
	Logger Logger
}

// SchemaResolver yields the parsed schema for a reference. *resolver.Resolver
// implements it; tests substitute stubs.
type SchemaResolver interface {
	Resolve(ctx context.Context, ref resolver.Reference) (*goavro.Codec, error)
}

// Logger is an interface that matches the v1/logger.Logger context-aware
// methods, so any logger implementation can be plugged in.
type Logger interface {
	InfoWithContext(ctx context.Context, msg string, err error, fields ...map[string]interface{})
	WarnWithContext(ctx context.Context, msg string, err error, fields ...map[string]interface{})
	ErrorWithContext(ctx context.Context, msg string, err error, fields ...map[string]interface{})
}

package kafka

import (
	"context"
	"encoding/json"
	"fmt"

	"github.com/Aleph-Alpha/avrokit/v1/registry"
	"github.com/Aleph-Alpha/avrokit/v1/serde"
	"github.com/Aleph-Alpha/avrokit/v1/wire"
	"github.com/linkedin/goavro/v2"
	"google.golang.org/protobuf/proto"
)

// Serializer converts a value into the byte payload published to Kafka.
//
// The schema-aware implementations in this package frame their payload in
// Confluent wire format, so anything they publish can be consumed by tools
// that understand the registry's tagging convention.
type Serializer interface {
	Serialize(ctx context.Context, value interface{}) ([]byte, error)
}

// Deserializer converts a consumed payload back into a value.
type Deserializer interface {
	Deserialize(ctx context.Context, data []byte) (interface{}, error)
}

// RawSerializer passes byte payloads through untouched. It is the default
// serializer of a new client.
type RawSerializer struct{}

// Serialize returns the value's bytes. Only []byte and string values are
// accepted; anything else needs a schema-aware serializer.
func (RawSerializer) Serialize(_ context.Context, value interface{}) ([]byte, error) {
	switch v := value.(type) {
	case []byte:
		return v, nil
	case string:
		return []byte(v), nil
	default:
		return nil, fmt.Errorf("raw serializer accepts []byte or string, got %T", value)
	}
}

// RawDeserializer returns consumed payloads untouched. It is the default
// deserializer of a new client.
type RawDeserializer struct{}

// Deserialize returns the payload bytes as-is.
func (RawDeserializer) Deserialize(_ context.Context, data []byte) (interface{}, error) {
	return data, nil
}

// AvroSerializerConfig configures an AvroSerializer.
type AvroSerializerConfig struct {
	// Registry is the schema registry client used to register the schema.
	Registry registry.Registry

	// Subject is the registry subject the schema is registered under.
	Subject string

	// Schema is the Avro schema as a JSON document. It is parsed and
	// registered at construction.
	Schema string
}

// AvroSerializer encodes Avro native values and frames them in Confluent
// wire format. The schema is registered once at construction; every payload
// carries the registry-assigned ID, so consumers resolve the schema without
// any out-of-band agreement.
type AvroSerializer struct {
	id    uint32
	codec *goavro.Codec
}

// NewAvroSerializer registers the schema and binds a codec for it.
// Registration is idempotent on the registry side: re-registering an
// identical schema returns the existing ID.
func NewAvroSerializer(ctx context.Context, config AvroSerializerConfig) (*AvroSerializer, error) {
	if config.Registry == nil {
		return nil, fmt.Errorf("schema registry client is required")
	}
	codec, err := goavro.NewCodec(config.Schema)
	if err != nil {
		return nil, fmt.Errorf("failed to parse avro schema: %w", err)
	}
	id, err := config.Registry.RegisterSchema(ctx, config.Subject, config.Schema, "")
	if err != nil {
		return nil, err
	}
	return &AvroSerializer{id: uint32(id), codec: codec}, nil
}

// Serialize encodes an Avro native value (map[string]interface{} for records)
// and prepends the wire tag.
func (s *AvroSerializer) Serialize(_ context.Context, value interface{}) ([]byte, error) {
	body, err := s.codec.BinaryFromNative(nil, value)
	if err != nil {
		return nil, fmt.Errorf("failed to encode avro value: %w", err)
	}
	return wire.Tag(s.id, body), nil
}

// AvroDeserializerConfig configures an AvroDeserializer.
type AvroDeserializerConfig struct {
	// Serde decodes tagged payloads, resolving each payload's schema ID
	// through its resolver.
	Serde *serde.Serde
}

// AvroDeserializer decodes Confluent-framed Avro payloads. The embedded ID of
// each payload is resolved through the serde's resolver, so one deserializer
// handles every schema the topic carries, at one registry round-trip per
// distinct ID.
type AvroDeserializer struct {
	serde *serde.Serde
}

// NewAvroDeserializer creates a deserializer backed by the given serde.
func NewAvroDeserializer(config AvroDeserializerConfig) (*AvroDeserializer, error) {
	if config.Serde == nil {
		return nil, fmt.Errorf("avro serde is required")
	}
	return &AvroDeserializer{serde: config.Serde}, nil
}

// Deserialize untags the payload and decodes it into Avro native form.
func (d *AvroDeserializer) Deserialize(ctx context.Context, data []byte) (interface{}, error) {
	return d.serde.DecodeTagged(ctx, data)
}

// ProtobufSerializerConfig configures a ProtobufSerializer.
type ProtobufSerializerConfig struct {
	// Registry is the schema registry client used to register the schema.
	Registry registry.Registry

	// Subject is the registry subject the schema is registered under.
	Subject string

	// Schema is the .proto definition registered for the subject.
	Schema string
}

// ProtobufSerializer marshals proto.Message values and frames them in
// Confluent wire format. The .proto definition is registered at construction
// with schema type PROTOBUF.
type ProtobufSerializer struct {
	id uint32
}

// NewProtobufSerializer registers the schema and returns a serializer
// tagging payloads with the assigned ID.
func NewProtobufSerializer(ctx context.Context, config ProtobufSerializerConfig) (*ProtobufSerializer, error) {
	if config.Registry == nil {
		return nil, fmt.Errorf("schema registry client is required")
	}
	id, err := config.Registry.RegisterSchema(ctx, config.Subject, config.Schema, "PROTOBUF")
	if err != nil {
		return nil, err
	}
	return &ProtobufSerializer{id: uint32(id)}, nil
}

// Serialize marshals a proto.Message and prepends the wire tag.
func (s *ProtobufSerializer) Serialize(_ context.Context, value interface{}) ([]byte, error) {
	msg, ok := value.(proto.Message)
	if !ok {
		return nil, fmt.Errorf("protobuf serializer needs a proto.Message, got %T", value)
	}
	body, err := proto.Marshal(msg)
	if err != nil {
		return nil, fmt.Errorf("failed to marshal protobuf value: %w", err)
	}
	return wire.Tag(s.id, body), nil
}

// ProtobufDeserializerConfig configures a ProtobufDeserializer.
type ProtobufDeserializerConfig struct {
	// NewMessage returns an empty message of the expected type.
	// Called once per payload.
	NewMessage func() proto.Message
}

// ProtobufDeserializer decodes Confluent-framed protobuf payloads into
// messages produced by the configured factory.
type ProtobufDeserializer struct {
	newMessage func() proto.Message
}

// NewProtobufDeserializer creates a deserializer for one message type.
func NewProtobufDeserializer(config ProtobufDeserializerConfig) (*ProtobufDeserializer, error) {
	if config.NewMessage == nil {
		return nil, fmt.Errorf("a message factory is required")
	}
	return &ProtobufDeserializer{newMessage: config.NewMessage}, nil
}

// Deserialize untags the payload and unmarshals it into a fresh message.
func (d *ProtobufDeserializer) Deserialize(_ context.Context, data []byte) (interface{}, error) {
	_, body, err := wire.Untag(data)
	if err != nil {
		return nil, err
	}
	msg := d.newMessage()
	if err := proto.Unmarshal(body, msg); err != nil {
		return nil, fmt.Errorf("failed to unmarshal protobuf payload: %w", err)
	}
	return msg, nil
}

// JSONSerializerConfig configures a JSONSerializer.
type JSONSerializerConfig struct {
	// Registry is the schema registry client used to register the schema.
	Registry registry.Registry

	// Subject is the registry subject the schema is registered under.
	Subject string

	// Schema is the JSON Schema document registered for the subject.
	Schema string
}

// JSONSerializer marshals values with encoding/json and frames them in
// Confluent wire format. The JSON Schema document is registered at
// construction with schema type JSON. Payloads are not validated against
// the schema; registration makes it discoverable for consumers.
type JSONSerializer struct {
	id uint32
}

// NewJSONSerializer registers the schema and returns a serializer tagging
// payloads with the assigned ID.
func NewJSONSerializer(ctx context.Context, config JSONSerializerConfig) (*JSONSerializer, error) {
	if config.Registry == nil {
		return nil, fmt.Errorf("schema registry client is required")
	}
	id, err := config.Registry.RegisterSchema(ctx, config.Subject, config.Schema, "JSON")
	if err != nil {
		return nil, err
	}
	return &JSONSerializer{id: uint32(id)}, nil
}

// Serialize marshals the value as JSON and prepends the wire tag.
func (s *JSONSerializer) Serialize(_ context.Context, value interface{}) ([]byte, error) {
	body, err := json.Marshal(value)
	if err != nil {
		return nil, fmt.Errorf("failed to marshal json value: %w", err)
	}
	return wire.Tag(s.id, body), nil
}

// JSONDeserializer decodes Confluent-framed JSON payloads into generic
// values (map[string]interface{} for objects).
type JSONDeserializer struct{}

// NewJSONDeserializer creates a JSON deserializer.
func NewJSONDeserializer() *JSONDeserializer {
	return &JSONDeserializer{}
}

// Deserialize untags the payload and unmarshals the JSON body.
func (JSONDeserializer) Deserialize(_ context.Context, data []byte) (interface{}, error) {
	_, body, err := wire.Untag(data)
	if err != nil {
		return nil, err
	}
	var value interface{}
	if err := json.Unmarshal(body, &value); err != nil {
		return nil, fmt.Errorf("failed to unmarshal json payload: %w", err)
	}
	return value, nil
}

package serde

import (
	"context"
	"encoding/binary"
	"errors"
	"fmt"
	"sync"
	"testing"

	"github.com/linkedin/goavro/v2"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/Aleph-Alpha/avrokit/v1/resolver"
	"github.com/Aleph-Alpha/avrokit/v1/wire"
)

const recordSchema = `{"type": "record", "name": "User", "namespace": "com.example", "fields": [{"name": "name", "type": "string"}, {"name": "age", "type": "int"}]}`

// stubSchemaResolver serves codecs from a map and counts Resolve calls.
type stubSchemaResolver struct {
	mu      sync.Mutex
	codecs  map[resolver.Key]*goavro.Codec
	calls   int
	lastRef resolver.Reference
	err     error
}

func newStubSchemaResolver() *stubSchemaResolver {
	return &stubSchemaResolver{codecs: map[resolver.Key]*goavro.Codec{}}
}

func (s *stubSchemaResolver) add(t *testing.T, ref resolver.Reference, schema string) *goavro.Codec {
	t.Helper()
	codec, err := goavro.NewCodec(schema)
	require.NoError(t, err)
	s.codecs[ref.Key()] = codec
	return codec
}

func (s *stubSchemaResolver) Resolve(ctx context.Context, ref resolver.Reference) (*goavro.Codec, error) {
	s.mu.Lock()
	defer s.mu.Unlock()

	s.calls++
	s.lastRef = ref
	if s.err != nil {
		return nil, s.err
	}
	codec, ok := s.codecs[ref.Key()]
	if !ok {
		return nil, fmt.Errorf("no schema for %s", ref)
	}
	return codec, nil
}

func (s *stubSchemaResolver) callCount() int {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.calls
}

func (s *stubSchemaResolver) lastReference() resolver.Reference {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.lastRef
}

func newTestSerde(t *testing.T, stub *stubSchemaResolver, encoding Encoding) *Serde {
	t.Helper()
	sd, err := NewSerde(Config{Resolver: stub, Encoding: encoding})
	require.NoError(t, err)
	return sd
}

func userRecord() map[string]interface{} {
	return map[string]interface{}{"name": "Ada", "age": 36}
}

func TestNewSerdeRequiresResolver(t *testing.T) {
	_, err := NewSerde(Config{})
	require.Error(t, err)
	assert.Contains(t, err.Error(), "schema resolver is required")
}

func TestNewSerdeRejectsUnknownEncoding(t *testing.T) {
	_, err := NewSerde(Config{Resolver: newStubSchemaResolver(), Encoding: "yaml"})
	require.Error(t, err)
	assert.Contains(t, err.Error(), "unknown encoding")
}

func TestNewSerdeDefaultsToBinary(t *testing.T) {
	sd, err := NewSerde(Config{Resolver: newStubSchemaResolver()})
	require.NoError(t, err)
	assert.Equal(t, EncodingBinary, sd.encoding)
}

func TestBinaryRoundTrip(t *testing.T) {
	stub := newStubSchemaResolver()
	ref := resolver.NameFingerprint("com.example.User", 1)
	stub.add(t, ref, recordSchema)
	sd := newTestSerde(t, stub, EncodingBinary)

	data, err := sd.Encode(context.Background(), ref, userRecord())
	require.NoError(t, err)
	require.NotEmpty(t, data)

	value, err := sd.Decode(context.Background(), ref, data)
	require.NoError(t, err)

	record, ok := value.(map[string]interface{})
	require.True(t, ok, "expected a record, got %T", value)
	assert.Equal(t, "Ada", record["name"])
	assert.Equal(t, int32(36), record["age"])
}

func TestTextualRoundTrip(t *testing.T) {
	stub := newStubSchemaResolver()
	ref := resolver.NameFingerprint("com.example.User", 1)
	stub.add(t, ref, recordSchema)
	sd := newTestSerde(t, stub, EncodingTextual)

	data, err := sd.Encode(context.Background(), ref, userRecord())
	require.NoError(t, err)
	assert.JSONEq(t, `{"name": "Ada", "age": 36}`, string(data))

	value, err := sd.Decode(context.Background(), ref, data)
	require.NoError(t, err)

	record, ok := value.(map[string]interface{})
	require.True(t, ok, "expected a record, got %T", value)
	assert.Equal(t, "Ada", record["name"])
	assert.Equal(t, int32(36), record["age"])
}

func TestTextualDecodeToleratesTrailingNewline(t *testing.T) {
	stub := newStubSchemaResolver()
	ref := resolver.NameFingerprint("com.example.User", 1)
	stub.add(t, ref, recordSchema)
	sd := newTestSerde(t, stub, EncodingTextual)

	data, err := sd.Encode(context.Background(), ref, userRecord())
	require.NoError(t, err)

	_, err = sd.Decode(context.Background(), ref, append(data, '\n'))
	require.NoError(t, err)
}

func TestEncodePropagatesResolveFailure(t *testing.T) {
	stub := newStubSchemaResolver()
	stub.err = errors.New("registry unavailable")
	sd := newTestSerde(t, stub, EncodingBinary)

	_, err := sd.Encode(context.Background(), resolver.IDReference(1), userRecord())
	require.Error(t, err)
	assert.Contains(t, err.Error(), "registry unavailable")
}

func TestEncodeRejectsMismatchedValue(t *testing.T) {
	stub := newStubSchemaResolver()
	ref := resolver.NameFingerprint("com.example.User", 1)
	stub.add(t, ref, recordSchema)
	sd := newTestSerde(t, stub, EncodingBinary)

	_, err := sd.Encode(context.Background(), ref, map[string]interface{}{"name": "Ada"})
	require.Error(t, err)
}

func TestDecodeRejectsTrailingBytes(t *testing.T) {
	stub := newStubSchemaResolver()
	ref := resolver.NameFingerprint("com.example.User", 1)
	stub.add(t, ref, recordSchema)
	sd := newTestSerde(t, stub, EncodingBinary)

	data, err := sd.Encode(context.Background(), ref, userRecord())
	require.NoError(t, err)

	_, err = sd.Decode(context.Background(), ref, append(data, 0xde))
	require.Error(t, err)
	assert.True(t, IsTrailingBytes(err))
}

func TestDecodeRejectsCorruptPayload(t *testing.T) {
	stub := newStubSchemaResolver()
	ref := resolver.NameFingerprint("com.example.User", 1)
	stub.add(t, ref, recordSchema)
	sd := newTestSerde(t, stub, EncodingBinary)

	_, err := sd.Decode(context.Background(), ref, []byte{0xff})
	require.Error(t, err)
}

func TestMakeEncoderResolvesEagerly(t *testing.T) {
	stub := newStubSchemaResolver()
	ref := resolver.NameFingerprint("com.example.User", 1)
	stub.add(t, ref, recordSchema)
	sd := newTestSerde(t, stub, EncodingBinary)

	encode, err := sd.MakeEncoder(context.Background(), ref)
	require.NoError(t, err)
	assert.Equal(t, 1, stub.callCount())

	_, err = encode(userRecord())
	require.NoError(t, err)
	_, err = encode(userRecord())
	require.NoError(t, err)
	assert.Equal(t, 1, stub.callCount(), "a bound encoder must not resolve again")
}

func TestMakeEncoderPropagatesResolveFailure(t *testing.T) {
	stub := newStubSchemaResolver()
	stub.err = errors.New("registry unavailable")
	sd := newTestSerde(t, stub, EncodingBinary)

	_, err := sd.MakeEncoder(context.Background(), resolver.IDReference(1))
	require.Error(t, err)
}

func TestMakeDecoderBindsSchema(t *testing.T) {
	stub := newStubSchemaResolver()
	ref := resolver.NameFingerprint("com.example.User", 1)
	stub.add(t, ref, recordSchema)
	sd := newTestSerde(t, stub, EncodingBinary)

	encode, err := sd.MakeEncoder(context.Background(), ref)
	require.NoError(t, err)
	decode, err := sd.MakeDecoder(context.Background(), ref)
	require.NoError(t, err)
	assert.Equal(t, 2, stub.callCount())

	data, err := encode(userRecord())
	require.NoError(t, err)
	value, err := decode(data)
	require.NoError(t, err)

	record, ok := value.(map[string]interface{})
	require.True(t, ok, "expected a record, got %T", value)
	assert.Equal(t, "Ada", record["name"])
	assert.Equal(t, 2, stub.callCount(), "bound closures must not resolve again")
}

func TestGetEncoderResolvesPerCall(t *testing.T) {
	stub := newStubSchemaResolver()
	ref := resolver.NameFingerprint("com.example.User", 1)
	stub.add(t, ref, recordSchema)
	sd := newTestSerde(t, stub, EncodingBinary)

	encode := sd.GetEncoder(context.Background(), ref)
	assert.Equal(t, 0, stub.callCount(), "construction must not resolve")

	_, err := encode(userRecord())
	require.NoError(t, err)
	_, err = encode(userRecord())
	require.NoError(t, err)
	assert.Equal(t, 2, stub.callCount())
}

func TestGetDecoderResolvesPerCall(t *testing.T) {
	stub := newStubSchemaResolver()
	ref := resolver.NameFingerprint("com.example.User", 1)
	codec := stub.add(t, ref, recordSchema)
	sd := newTestSerde(t, stub, EncodingBinary)

	data, err := codec.BinaryFromNative(nil, userRecord())
	require.NoError(t, err)

	decode := sd.GetDecoder(context.Background(), ref)
	assert.Equal(t, 0, stub.callCount(), "construction must not resolve")

	_, err = decode(data)
	require.NoError(t, err)
	assert.Equal(t, 1, stub.callCount())
}

func TestEncodeTaggedProducesHeader(t *testing.T) {
	stub := newStubSchemaResolver()
	stub.add(t, resolver.IDReference(42), recordSchema)
	sd := newTestSerde(t, stub, EncodingBinary)

	data, err := sd.EncodeTagged(context.Background(), 42, userRecord())
	require.NoError(t, err)
	require.Greater(t, len(data), wire.HeaderSize)

	assert.Equal(t, wire.MagicByte, data[0])
	assert.Equal(t, uint32(42), binary.BigEndian.Uint32(data[1:wire.HeaderSize]))
}

func TestDecodeTaggedResolvesHeaderID(t *testing.T) {
	stub := newStubSchemaResolver()
	codec := stub.add(t, resolver.IDReference(42), recordSchema)
	sd := newTestSerde(t, stub, EncodingBinary)

	body, err := codec.BinaryFromNative(nil, userRecord())
	require.NoError(t, err)

	value, err := sd.DecodeTagged(context.Background(), wire.Tag(42, body))
	require.NoError(t, err)

	record, ok := value.(map[string]interface{})
	require.True(t, ok, "expected a record, got %T", value)
	assert.Equal(t, "Ada", record["name"])
	assert.Equal(t, resolver.IDReference(42), stub.lastReference())
}

func TestDecodeTaggedRejectsMalformedHeader(t *testing.T) {
	stub := newStubSchemaResolver()
	sd := newTestSerde(t, stub, EncodingBinary)

	_, err := sd.DecodeTagged(context.Background(), []byte{0x0, 0x1, 0x2})
	require.Error(t, err)
	assert.True(t, wire.IsMalformedTag(err))
	assert.Equal(t, 0, stub.callCount(), "untag failures must not resolve")
}

func TestTaggedRoundTrip(t *testing.T) {
	stub := newStubSchemaResolver()
	stub.add(t, resolver.IDReference(7), recordSchema)
	sd := newTestSerde(t, stub, EncodingBinary)

	data, err := sd.EncodeTagged(context.Background(), 7, userRecord())
	require.NoError(t, err)

	value, err := sd.DecodeTagged(context.Background(), data)
	require.NoError(t, err)

	record, ok := value.(map[string]interface{})
	require.True(t, ok, "expected a record, got %T", value)
	assert.Equal(t, "Ada", record["name"])
	assert.Equal(t, int32(36), record["age"])
}

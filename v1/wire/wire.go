package wire

import (
	"encoding/binary"
	"errors"
	"fmt"
)

const (
	// MagicByte is the format version byte that starts every tagged payload.
	MagicByte byte = 0x0

	// HeaderSize is the length of the tag header: 1 magic byte followed by
	// a 4-byte big-endian schema ID.
	HeaderSize = 5
)

// ErrMalformedTag indicates input that does not begin with a valid tag
// header. Use errors.Is (or IsMalformedTag) to test for it.
var ErrMalformedTag = errors.New("malformed wire tag")

// Tag prepends the Confluent wire-format header to body.
// Format: [magic_byte][schema_id][body]
//   - magic_byte: 0x0 (1 byte)
//   - schema_id: 4 bytes (big-endian)
//
// The returned slice is freshly allocated; body is left untouched. An empty
// body is valid and produces a bare 5-byte header.
func Tag(id uint32, body []byte) []byte {
	buf := make([]byte, HeaderSize+len(body))
	buf[0] = MagicByte
	binary.BigEndian.PutUint32(buf[1:HeaderSize], id)
	copy(buf[HeaderSize:], body)
	return buf
}

// Untag splits a tagged payload into its schema ID and body.
//
// It fails with ErrMalformedTag when data is shorter than HeaderSize or its
// first byte is not MagicByte. The returned body aliases data rather than
// copying it; callers that need to mutate the body should copy it first.
func Untag(data []byte) (uint32, []byte, error) {
	if len(data) < HeaderSize {
		return 0, nil, fmt.Errorf("%w: expected at least %d bytes, got %d", ErrMalformedTag, HeaderSize, len(data))
	}

	if data[0] != MagicByte {
		return 0, nil, fmt.Errorf("%w: expected magic byte 0x%x, got 0x%x", ErrMalformedTag, MagicByte, data[0])
	}

	return binary.BigEndian.Uint32(data[1:HeaderSize]), data[HeaderSize:], nil
}

// IsMalformedTag reports whether the error indicates an invalid tag header.
func IsMalformedTag(err error) bool {
	return errors.Is(err, ErrMalformedTag)
}

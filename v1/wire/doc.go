// Package wire implements the Confluent wire format used to frame encoded
// payloads with the ID of the schema that produced them.
//
// Every tagged payload is laid out as:
//
//	[0x00][4-byte big-endian schema ID][encoded record bytes]
//
// The leading byte is a format version marker (always zero today); the next
// four bytes carry the registry-assigned schema ID. Tag and Untag are pure
// functions over this layout and hold the entire compatibility contract with
// other producers and consumers of the format, so the byte layout is exact
// and never extended in place.
//
// # Usage
//
//	payload := wire.Tag(42, encoded)
//
//	id, body, err := wire.Untag(payload)
//	if wire.IsMalformedTag(err) {
//	    // input did not start with a valid header
//	}
package wire

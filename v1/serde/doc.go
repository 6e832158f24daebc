// Package serde encodes and decodes Avro values for schemas addressed by
// resolver references, so callers never handle schema JSON or registry
// lookups themselves.
//
// Values cross the boundary in goavro native form: records are
// map[string]interface{}, arrays are []interface{}, and so on. The
// encoding is binary Avro by default; textual (JSON) Avro is available for
// fixtures and debugging.
//
// # Usage
//
//	sd, err := serde.NewSerde(serde.Config{Resolver: res})
//	if err != nil {
//		log.Fatal(err)
//	}
//
//	ref := resolver.NameFingerprint("com.example.User", fingerprint)
//
//	data, err := sd.Encode(ctx, ref, map[string]interface{}{
//		"name": "Ada",
//		"age":  36,
//	})
//
//	value, err := sd.Decode(ctx, ref, data)
//
// # Bound encoders and decoders
//
// Hot paths should bind the schema once instead of passing a reference per
// call. MakeEncoder and MakeDecoder resolve eagerly and return closures
// that never touch the network:
//
//	encode, err := sd.MakeEncoder(ctx, ref)
//	if err != nil {
//		log.Fatal(err)
//	}
//	data, err := encode(record)
//
// GetEncoder and GetDecoder are the lazy variants: construction is free
// and the schema is resolved on first use, which suits schemas that may
// not be registered yet at startup.
//
// # Tagged payloads
//
// EncodeTagged and DecodeTagged produce and consume self-describing
// payloads in the 5-byte header format from v1/wire, as used in Kafka
// messages:
//
//	msg, err := sd.EncodeTagged(ctx, schemaID, record)
//	value, err := sd.DecodeTagged(ctx, msg)
//
// DecodeTagged resolves whatever schema ID the header names, so one
// consumer handles payloads written under any registered schema.
package serde

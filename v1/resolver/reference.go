package resolver

import (
	"fmt"
	"strconv"
)

// refKind discriminates the two addressing schemes a Reference can use.
type refKind uint8

const (
	refByID refKind = iota
	refByName
)

// Reference identifies a schema to resolve: either a registry-assigned
// numeric ID, or a (name, fingerprint) pair. Construct one with
// IDReference, NameFingerprint, NameFingerprintString, or
// NameFingerprintBytes; the constructors normalize the fingerprint so that
// the same logical value always yields the same Reference no matter how it
// was spelled (64-bit integer, decimal string, or byte string).
//
// References are immutable values, safe to copy and compare.
type Reference struct {
	kind refKind
	id   int
	name string
	fp   string
}

// IDReference builds a Reference addressing a schema by its
// registry-assigned ID.
func IDReference(id int) Reference {
	return Reference{kind: refByID, id: id}
}

// NameFingerprint builds a Reference addressing a schema by its logical
// name and 64-bit fingerprint.
func NameFingerprint(name string, fingerprint uint64) Reference {
	return Reference{kind: refByName, name: name, fp: strconv.FormatUint(fingerprint, 10)}
}

// NameFingerprintString builds a Reference whose fingerprint is already in
// textual form, typically the decimal rendering of the 64-bit value.
func NameFingerprintString(name, fingerprint string) Reference {
	return Reference{kind: refByName, name: name, fp: fingerprint}
}

// NameFingerprintBytes builds a Reference whose fingerprint is a raw byte
// string.
func NameFingerprintBytes(name string, fingerprint []byte) Reference {
	return Reference{kind: refByName, name: name, fp: string(fingerprint)}
}

// Key returns the canonical cache key for the reference. Two references
// address the same schema iff their keys are equal.
func (r Reference) Key() Key {
	return Key(r)
}

// Subject returns the registry subject the reference maps to: the schema
// name and fingerprint joined with a dash. ID references carry no subject
// and return "".
func (r Reference) Subject() string {
	if r.kind != refByName {
		return ""
	}
	return r.name + "-" + r.fp
}

// String renders the reference for logs and error messages.
func (r Reference) String() string {
	if r.kind == refByID {
		return fmt.Sprintf("id/%d", r.id)
	}
	return fmt.Sprintf("name/%s/%s", r.name, r.fp)
}

// Key is the canonical, comparable form of a Reference. It indexes the
// schema cache and scopes the single-flight gate.
type Key struct {
	kind refKind
	id   int
	name string
	fp   string
}

// String renders the key in a readable form for logs.
func (k Key) String() string {
	if k.kind == refByID {
		return "id/" + strconv.Itoa(k.id)
	}
	return "name/" + k.name + "/" + k.fp
}

// flightKey is the single-flight group key. NUL separators guarantee two
// distinct keys never collapse onto one string, which would hand a waiter
// the wrong schema.
func (k Key) flightKey() string {
	if k.kind == refByID {
		return "id\x00" + strconv.Itoa(k.id)
	}
	return "name\x00" + k.name + "\x00" + k.fp
}

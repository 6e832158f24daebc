package resolver

import (
	"context"
	"fmt"
	"time"

	"github.com/linkedin/goavro/v2"
)

// Resolve returns the parsed schema addressed by ref.
//
// The fast path is a lock-free cache lookup. On a miss the calling
// goroutine joins the single flight for the reference's canonical key: one
// leader performs the fetch appropriate to the reference kind (by ID, or
// by subject version 1 for name/fingerprint references), parses the
// schema, and populates the cache; the other callers wait and share the
// leader's result. The leader's context governs the fetch, so a waiter's
// cancellation does not abort the flight.
func (r *Resolver) Resolve(ctx context.Context, ref Reference) (*goavro.Codec, error) {
	start := time.Now()
	key := ref.Key()

	if codec, ok := r.cache.get(key); ok {
		r.observeOperation("resolve", ref.String(), "", time.Since(start), nil, map[string]interface{}{"cache_hit": true})
		return codec, nil
	}

	v, err, shared := r.group.Do(key.flightKey(), func() (interface{}, error) {
		// An earlier flight may have populated the cache after our miss.
		if codec, ok := r.cache.get(key); ok {
			return codec, nil
		}

		codec, err := r.fetch(ctx, ref)
		if err != nil {
			return nil, err
		}

		codec = r.cache.putIfAbsent(key, codec)
		r.logInfo(ctx, "schema resolved and cached", map[string]interface{}{
			"reference": ref.String(),
		})
		return codec, nil
	})

	r.observeOperation("resolve", ref.String(), "", time.Since(start), err, map[string]interface{}{
		"cache_hit": false,
		"shared":    shared,
	})
	if err != nil {
		return nil, err
	}

	return v.(*goavro.Codec), nil
}

// MustResolve is like Resolve but panics when resolution fails. It exists
// for call sites that cannot proceed without the schema; the failure is
// surfaced, never swallowed.
func (r *Resolver) MustResolve(ctx context.Context, ref Reference) *goavro.Codec {
	codec, err := r.Resolve(ctx, ref)
	if err != nil {
		panic(fmt.Sprintf("failed to resolve schema %s: %v", ref, err))
	}
	return codec
}

// Register publishes schemaJSON under the subject derived from ref. Only
// name/fingerprint references carry a subject; registering an ID reference
// fails with ErrInvalidReference.
//
// When the reference is already cached the call is a no-op: a cached
// schema was fetched from the registry, so it is registered by definition.
// A successful registration does not populate the cache; the next Resolve
// for the reference fetches the registered version and caches it then.
func (r *Resolver) Register(ctx context.Context, ref Reference, schemaJSON string) error {
	start := time.Now()
	err := r.register(ctx, ref, schemaJSON)
	r.observeOperation("register", ref.Subject(), "", time.Since(start), err, nil)
	return err
}

// RegisterWithFingerprint publishes schemaJSON under the subject
// <name>-<fingerprint> and returns the reference that resolves it later.
func (r *Resolver) RegisterWithFingerprint(ctx context.Context, name string, fingerprint uint64, schemaJSON string) (Reference, error) {
	ref := NameFingerprint(name, fingerprint)
	if err := r.Register(ctx, ref, schemaJSON); err != nil {
		return Reference{}, err
	}
	return ref, nil
}

// RegisterSchema parses schemaJSON, fingerprints its canonical form with
// CRC-64-AVRO, and registers it under <name>-<fingerprint>. The returned
// reference resolves to the registered schema.
func (r *Resolver) RegisterSchema(ctx context.Context, name, schemaJSON string) (Reference, error) {
	codec, err := goavro.NewCodec(schemaJSON)
	if err != nil {
		return Reference{}, fmt.Errorf("failed to parse schema: %w", err)
	}

	ref := NameFingerprint(name, codec.Rabin)
	if err := r.Register(ctx, ref, schemaJSON); err != nil {
		return Reference{}, err
	}
	return ref, nil
}

// CacheSize reports the number of resolved references currently cached.
func (r *Resolver) CacheSize() int {
	return r.cache.size()
}

func (r *Resolver) fetch(ctx context.Context, ref Reference) (*goavro.Codec, error) {
	var schemaJSON string

	switch ref.kind {
	case refByID:
		schema, err := r.registry.GetSchemaByID(ctx, ref.id)
		if err != nil {
			return nil, err
		}
		schemaJSON = schema
	default:
		// A fingerprint-addressed subject has exactly one version ever
		// registered under it.
		metadata, err := r.registry.GetSubjectVersion(ctx, ref.Subject(), "1")
		if err != nil {
			return nil, err
		}
		schemaJSON = metadata.Schema
	}

	codec, err := goavro.NewCodec(schemaJSON)
	if err != nil {
		r.logError(ctx, "failed to parse schema from registry", err, map[string]interface{}{
			"reference": ref.String(),
		})
		return nil, fmt.Errorf("failed to parse schema for %s: %w", ref, err)
	}

	return codec, nil
}

func (r *Resolver) register(ctx context.Context, ref Reference, schemaJSON string) error {
	if ref.kind != refByName {
		return fmt.Errorf("%w: registration needs a name/fingerprint reference, got %s", ErrInvalidReference, ref)
	}

	if _, ok := r.cache.get(ref.Key()); ok {
		return nil
	}

	id, err := r.registry.RegisterSchema(ctx, ref.Subject(), schemaJSON, "")
	if err != nil {
		return err
	}

	r.logInfo(ctx, "schema registered", map[string]interface{}{
		"subject": ref.Subject(),
		"id":      id,
	})
	return nil
}

func (r *Resolver) logInfo(ctx context.Context, msg string, fields ...map[string]interface{}) {
	if r.logger == nil {
		return
	}
	r.logger.InfoWithContext(ctx, msg, nil, fields...)
}

func (r *Resolver) logError(ctx context.Context, msg string, err error, fields ...map[string]interface{}) {
	if r.logger == nil {
		return
	}
	r.logger.ErrorWithContext(ctx, msg, err, fields...)
}

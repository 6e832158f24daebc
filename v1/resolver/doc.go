// Package resolver caches parsed Avro schemas resolved from a schema
// registry, so that encoding and decoding hot paths never wait on the
// network more than once per schema.
//
// A schema is addressed by a Reference: either the registry-assigned
// numeric ID found in tagged payloads, or a (name, fingerprint) pair for
// schemas registered under fingerprint-derived subjects. All fingerprint
// spellings (64-bit integer, decimal string, byte string) normalize to the
// same canonical key, so callers can mix them freely.
//
// # Guarantees
//
//   - At most one registry round-trip per canonical key for the process
//     lifetime. Concurrent Resolve calls for the same key are collapsed
//     into a single flight; flights for different keys do not block each
//     other.
//   - Every successful Resolve for a key returns the same *goavro.Codec
//     instance, so callers may compare and cache codec pointers.
//   - Failures are never cached. A failed fetch leaves no trace and the
//     next Resolve retries.
//   - The cache never evicts. Memory grows with the number of distinct
//     references resolved, which is assumed small and stable; processes
//     resolving unbounded reference sets need a different tool.
//
// # Usage
//
//	client, err := registry.NewClient(registry.Config{
//		URL: "http://localhost:8081",
//	})
//	if err != nil {
//		log.Fatal(err)
//	}
//
//	res, err := resolver.NewResolver(resolver.Config{Registry: client})
//	if err != nil {
//		log.Fatal(err)
//	}
//
//	// By registry ID, e.g. from a tagged payload.
//	codec, err := res.Resolve(ctx, resolver.IDReference(42))
//
//	// By name and fingerprint.
//	codec, err = res.Resolve(ctx, resolver.NameFingerprint("com.example.User", 123456789))
//
// # Registration
//
// Register publishes a schema under the subject <name>-<fingerprint>.
// RegisterSchema computes the CRC-64-AVRO fingerprint itself:
//
//	ref, err := res.RegisterSchema(ctx, "com.example.User", userSchemaJSON)
//	if err != nil {
//		log.Fatal(err)
//	}
//	codec, err := res.Resolve(ctx, ref)
//
// Registration does not populate the cache. The first Resolve after a
// successful Register performs a normal fetch, which doubles as a
// read-back check of the registered schema.
//
// # FX Module
//
// The package provides an FX module that wires the resolver to the
// registry client:
//
//	app := fx.New(
//		registry.FXModule,
//		resolver.FXModule,
//		fx.Provide(func() registry.Config {
//			return registry.Config{URL: "http://localhost:8081"}
//		}),
//		fx.Populate(&res),
//	)
package resolver

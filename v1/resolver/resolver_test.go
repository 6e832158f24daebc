package resolver

import (
	"context"
	"errors"
	"fmt"
	"net/http"
	"net/http/httptest"
	"sync"
	"sync/atomic"
	"testing"
	"time"

	"github.com/linkedin/goavro/v2"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/Aleph-Alpha/avrokit/v1/registry"
)

const stringSchema = `{"type": "string"}`

// stubRegistry is an in-memory registry.Registry. Counters are
// mutex-guarded so tests can assert fetch counts across concurrent
// Resolve calls.
type stubRegistry struct {
	mu               sync.Mutex
	schemasByID      map[int]string
	schemasBySubject map[string]string

	idCalls        int
	subjectCalls   int
	registerCalls  int
	lastSubject    string
	lastVersion    string
	lastSchemaType string

	errNext error

	blockOn      int
	blockCh      chan struct{}
	blockStarted chan struct{}
}

func newStubRegistry() *stubRegistry {
	return &stubRegistry{
		schemasByID:      map[int]string{},
		schemasBySubject: map[string]string{},
	}
}

func (s *stubRegistry) GetSchemaByID(ctx context.Context, id int) (string, error) {
	s.mu.Lock()
	s.idCalls++
	err := s.errNext
	s.errNext = nil
	schema, ok := s.schemasByID[id]
	var block chan struct{}
	if s.blockCh != nil && id == s.blockOn {
		if s.blockStarted != nil {
			close(s.blockStarted)
			s.blockStarted = nil
		}
		block = s.blockCh
	}
	s.mu.Unlock()

	if block != nil {
		<-block
	}
	if err != nil {
		return "", err
	}
	if !ok {
		return "", &registry.StatusError{StatusCode: http.StatusNotFound, Body: "schema not found"}
	}
	return schema, nil
}

func (s *stubRegistry) GetSubjectVersion(ctx context.Context, subject, version string) (*registry.Metadata, error) {
	s.mu.Lock()
	s.subjectCalls++
	s.lastSubject = subject
	s.lastVersion = version
	err := s.errNext
	s.errNext = nil
	schema, ok := s.schemasBySubject[subject]
	s.mu.Unlock()

	if err != nil {
		return nil, err
	}
	if !ok {
		return nil, &registry.StatusError{StatusCode: http.StatusNotFound, Body: "subject not found"}
	}
	return &registry.Metadata{ID: 1, Version: 1, Schema: schema, Subject: subject}, nil
}

func (s *stubRegistry) RegisterSchema(ctx context.Context, subject, schema, schemaType string) (int, error) {
	s.mu.Lock()
	defer s.mu.Unlock()

	s.registerCalls++
	s.lastSubject = subject
	s.lastSchemaType = schemaType
	if s.errNext != nil {
		err := s.errNext
		s.errNext = nil
		return 0, err
	}
	s.schemasBySubject[subject] = schema
	return len(s.schemasBySubject), nil
}

func (s *stubRegistry) setErrNext(err error) {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.errNext = err
}

func (s *stubRegistry) counts() (id, subject, register int) {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.idCalls, s.subjectCalls, s.registerCalls
}

func (s *stubRegistry) lastSubjectVersion() (subject, version string) {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.lastSubject, s.lastVersion
}

func newTestResolver(t *testing.T, stub *stubRegistry) *Resolver {
	t.Helper()
	res, err := NewResolver(Config{Registry: stub})
	require.NoError(t, err)
	return res
}

func TestNewResolverRequiresRegistry(t *testing.T) {
	_, err := NewResolver(Config{})
	require.Error(t, err)
	assert.Contains(t, err.Error(), "registry client is required")
}

func TestResolveByIDCachesSchema(t *testing.T) {
	stub := newStubRegistry()
	stub.schemasByID[42] = stringSchema
	res := newTestResolver(t, stub)

	first, err := res.Resolve(context.Background(), IDReference(42))
	require.NoError(t, err)
	require.NotNil(t, first)

	second, err := res.Resolve(context.Background(), IDReference(42))
	require.NoError(t, err)
	require.Same(t, first, second)

	idCalls, _, _ := stub.counts()
	assert.Equal(t, 1, idCalls)
	assert.Equal(t, 1, res.CacheSize())
}

func TestResolveByNameFingerprintFetchesVersionOne(t *testing.T) {
	stub := newStubRegistry()
	stub.schemasBySubject["com.example.Foo-123456789"] = stringSchema
	res := newTestResolver(t, stub)

	codec, err := res.Resolve(context.Background(), NameFingerprint("com.example.Foo", 123456789))
	require.NoError(t, err)
	require.NotNil(t, codec)

	subject, version := stub.lastSubjectVersion()
	assert.Equal(t, "com.example.Foo-123456789", subject)
	assert.Equal(t, "1", version)
}

func TestResolveHitsCacheAcrossFingerprintRepresentations(t *testing.T) {
	stub := newStubRegistry()
	stub.schemasBySubject["com.example.Foo-123456789"] = stringSchema
	res := newTestResolver(t, stub)

	first, err := res.Resolve(context.Background(), NameFingerprint("com.example.Foo", 123456789))
	require.NoError(t, err)

	second, err := res.Resolve(context.Background(), NameFingerprintString("com.example.Foo", "123456789"))
	require.NoError(t, err)
	require.Same(t, first, second)

	third, err := res.Resolve(context.Background(), NameFingerprintBytes("com.example.Foo", []byte("123456789")))
	require.NoError(t, err)
	require.Same(t, first, third)

	_, subjectCalls, _ := stub.counts()
	assert.Equal(t, 1, subjectCalls)
}

func TestResolveUnknownIDPropagatesNotFound(t *testing.T) {
	stub := newStubRegistry()
	res := newTestResolver(t, stub)

	_, err := res.Resolve(context.Background(), IDReference(9))
	require.Error(t, err)
	assert.True(t, registry.IsNotFound(err))
	assert.Equal(t, 0, res.CacheSize())
}

func TestConcurrentResolveCollapses(t *testing.T) {
	stub := newStubRegistry()
	stub.schemasByID[42] = stringSchema
	res := newTestResolver(t, stub)

	const callers = 25
	var (
		start  = make(chan struct{})
		wg     sync.WaitGroup
		codecs = make([]*goavro.Codec, callers)
		errs   = make([]error, callers)
	)

	for i := 0; i < callers; i++ {
		wg.Add(1)
		go func(i int) {
			defer wg.Done()
			<-start
			codecs[i], errs[i] = res.Resolve(context.Background(), IDReference(42))
		}(i)
	}
	close(start)
	wg.Wait()

	for i := 0; i < callers; i++ {
		require.NoError(t, errs[i])
		require.Same(t, codecs[0], codecs[i])
	}

	idCalls, _, _ := stub.counts()
	assert.Equal(t, 1, idCalls)
}

func TestDistinctKeysResolveIndependently(t *testing.T) {
	stub := newStubRegistry()
	stub.schemasByID[1] = stringSchema
	stub.schemasByID[2] = `{"type": "long"}`
	stub.blockOn = 1
	stub.blockCh = make(chan struct{})
	stub.blockStarted = make(chan struct{})
	res := newTestResolver(t, stub)

	done := make(chan error, 1)
	go func() {
		_, err := res.Resolve(context.Background(), IDReference(1))
		done <- err
	}()

	select {
	case <-stub.blockStarted:
	case <-time.After(5 * time.Second):
		t.Fatal("fetch for ID 1 never started")
	}

	// The flight for ID 1 is parked; ID 2 must still go through.
	finished := make(chan struct{})
	go func() {
		defer close(finished)
		_, err := res.Resolve(context.Background(), IDReference(2))
		assert.NoError(t, err)
	}()

	select {
	case <-finished:
	case <-time.After(5 * time.Second):
		t.Fatal("resolve for ID 2 blocked behind the flight for ID 1")
	}

	close(stub.blockCh)
	require.NoError(t, <-done)
}

func TestFailedResolveNotCached(t *testing.T) {
	stub := newStubRegistry()
	stub.schemasByID[42] = stringSchema
	stub.setErrNext(errors.New("registry unavailable"))
	res := newTestResolver(t, stub)

	_, err := res.Resolve(context.Background(), IDReference(42))
	require.Error(t, err)
	assert.Equal(t, 0, res.CacheSize())

	codec, err := res.Resolve(context.Background(), IDReference(42))
	require.NoError(t, err)
	require.NotNil(t, codec)

	idCalls, _, _ := stub.counts()
	assert.Equal(t, 2, idCalls)
}

func TestUnparsableSchemaNotCached(t *testing.T) {
	stub := newStubRegistry()
	stub.schemasByID[7] = "not a schema"
	res := newTestResolver(t, stub)

	_, err := res.Resolve(context.Background(), IDReference(7))
	require.Error(t, err)
	assert.Contains(t, err.Error(), "failed to parse schema")
	assert.Equal(t, 0, res.CacheSize())

	_, err = res.Resolve(context.Background(), IDReference(7))
	require.Error(t, err)

	idCalls, _, _ := stub.counts()
	assert.Equal(t, 2, idCalls)
}

func TestMustResolveReturnsCodec(t *testing.T) {
	stub := newStubRegistry()
	stub.schemasByID[42] = stringSchema
	res := newTestResolver(t, stub)

	codec := res.MustResolve(context.Background(), IDReference(42))
	require.NotNil(t, codec)
}

func TestMustResolvePanicsOnFailure(t *testing.T) {
	stub := newStubRegistry()
	res := newTestResolver(t, stub)

	require.Panics(t, func() {
		res.MustResolve(context.Background(), IDReference(9))
	})
}

func TestRegisterPostsToFingerprintSubject(t *testing.T) {
	stub := newStubRegistry()
	res := newTestResolver(t, stub)

	ref := NameFingerprint("com.example.Foo", 123456789)
	require.NoError(t, res.Register(context.Background(), ref, stringSchema))

	_, _, registerCalls := stub.counts()
	assert.Equal(t, 1, registerCalls)
	subject, _ := stub.lastSubjectVersion()
	assert.Equal(t, "com.example.Foo-123456789", subject)

	// Registration must not seed the cache; the next Resolve fetches.
	assert.Equal(t, 0, res.CacheSize())

	codec, err := res.Resolve(context.Background(), ref)
	require.NoError(t, err)
	require.NotNil(t, codec)

	_, subjectCalls, _ := stub.counts()
	assert.Equal(t, 1, subjectCalls)
	_, version := stub.lastSubjectVersion()
	assert.Equal(t, "1", version)
}

func TestRegisterIDReferenceInvalid(t *testing.T) {
	stub := newStubRegistry()
	res := newTestResolver(t, stub)

	err := res.Register(context.Background(), IDReference(1), stringSchema)
	require.Error(t, err)
	assert.True(t, IsInvalidReference(err))

	_, _, registerCalls := stub.counts()
	assert.Equal(t, 0, registerCalls)
}

func TestRegisterSkipsWhenCached(t *testing.T) {
	stub := newStubRegistry()
	stub.schemasBySubject["com.example.Foo-123456789"] = stringSchema
	res := newTestResolver(t, stub)

	ref := NameFingerprint("com.example.Foo", 123456789)
	_, err := res.Resolve(context.Background(), ref)
	require.NoError(t, err)

	require.NoError(t, res.Register(context.Background(), ref, stringSchema))

	_, _, registerCalls := stub.counts()
	assert.Equal(t, 0, registerCalls)
}

func TestRegisterWithFingerprintReturnsResolvableRef(t *testing.T) {
	stub := newStubRegistry()
	res := newTestResolver(t, stub)

	ref, err := res.RegisterWithFingerprint(context.Background(), "com.example.Foo", 123456789, stringSchema)
	require.NoError(t, err)
	assert.Equal(t, "com.example.Foo-123456789", ref.Subject())

	codec, err := res.Resolve(context.Background(), ref)
	require.NoError(t, err)
	require.NotNil(t, codec)
}

func TestRegisterSchemaComputesFingerprint(t *testing.T) {
	schema := `{"type": "record", "name": "User", "namespace": "com.example", "fields": [{"name": "name", "type": "string"}]}`
	codec, err := goavro.NewCodec(schema)
	require.NoError(t, err)

	stub := newStubRegistry()
	res := newTestResolver(t, stub)

	ref, err := res.RegisterSchema(context.Background(), "com.example.User", schema)
	require.NoError(t, err)
	assert.Equal(t, fmt.Sprintf("com.example.User-%d", codec.Rabin), ref.Subject())

	resolved, err := res.Resolve(context.Background(), ref)
	require.NoError(t, err)
	require.NotNil(t, resolved)
}

func TestRegisterSchemaRejectsInvalidJSON(t *testing.T) {
	stub := newStubRegistry()
	res := newTestResolver(t, stub)

	_, err := res.RegisterSchema(context.Background(), "com.example.User", "not a schema")
	require.Error(t, err)

	_, _, registerCalls := stub.counts()
	assert.Equal(t, 0, registerCalls)
}

func TestResolveOverHTTP(t *testing.T) {
	var hits int32
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		assert.Equal(t, "/schemas/ids/42", r.URL.Path)
		atomic.AddInt32(&hits, 1)
		w.Header().Set("Content-Type", "application/vnd.schemaregistry.v1+json")
		fmt.Fprint(w, `{"schema": "{\"type\":\"string\"}"}`)
	}))
	defer server.Close()

	client, err := registry.NewClient(registry.Config{URL: server.URL})
	require.NoError(t, err)

	res, err := NewResolver(Config{Registry: client})
	require.NoError(t, err)

	first, err := res.Resolve(context.Background(), IDReference(42))
	require.NoError(t, err)
	second, err := res.Resolve(context.Background(), IDReference(42))
	require.NoError(t, err)

	require.Same(t, first, second)
	assert.Equal(t, int32(1), atomic.LoadInt32(&hits))
}

func TestRegisterThenResolveOverHTTP(t *testing.T) {
	var mu sync.Mutex
	var requests []string
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		mu.Lock()
		requests = append(requests, r.Method+" "+r.URL.Path)
		mu.Unlock()
		w.Header().Set("Content-Type", "application/vnd.schemaregistry.v1+json")
		if r.Method == http.MethodPost {
			fmt.Fprint(w, `{"id": 7}`)
			return
		}
		fmt.Fprint(w, `{"id": 7, "version": 1, "schema": "{\"type\":\"string\"}"}`)
	}))
	defer server.Close()

	client, err := registry.NewClient(registry.Config{URL: server.URL})
	require.NoError(t, err)

	res, err := NewResolver(Config{Registry: client})
	require.NoError(t, err)

	ref, err := res.RegisterWithFingerprint(context.Background(), "com.example.Foo", 123456789, stringSchema)
	require.NoError(t, err)
	assert.Equal(t, 0, res.CacheSize())

	_, err = res.Resolve(context.Background(), ref)
	require.NoError(t, err)

	mu.Lock()
	defer mu.Unlock()
	require.Equal(t, []string{
		"POST /subjects/com.example.Foo-123456789/versions",
		"GET /subjects/com.example.Foo-123456789/versions/1",
	}, requests)
}

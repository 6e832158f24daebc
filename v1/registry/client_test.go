package registry

import (
	"context"
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/mock/gomock"
)

func TestNewClientRequiresURL(t *testing.T) {
	_, err := NewClient(Config{})
	require.Error(t, err)
	assert.Contains(t, err.Error(), "URL is required")
}

func TestNewClientAppliesDefaults(t *testing.T) {
	client, err := NewClient(Config{URL: "http://localhost:8081/"})
	require.NoError(t, err)

	assert.Equal(t, "http://localhost:8081", client.url)
	assert.Equal(t, DefaultTimeout, client.httpClient.Timeout)
}

func TestNewClientKeepsExplicitTimeout(t *testing.T) {
	client, err := NewClient(Config{URL: "http://localhost:8081", Timeout: 3 * time.Second})
	require.NoError(t, err)

	assert.Equal(t, 3*time.Second, client.httpClient.Timeout)
}

func TestGetSchemaByID(t *testing.T) {
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		assert.Equal(t, http.MethodGet, r.Method)
		assert.Equal(t, "/schemas/ids/42", r.URL.Path)
		assert.Equal(t, contentType, r.Header.Get("Accept"))

		w.WriteHeader(http.StatusOK)
		_, _ = w.Write([]byte(`{"schema": "{\"type\":\"string\"}"}`))
	}))
	defer server.Close()

	client, err := NewClient(Config{URL: server.URL})
	require.NoError(t, err)

	schema, err := client.GetSchemaByID(context.Background(), 42)
	require.NoError(t, err)
	assert.Equal(t, `{"type":"string"}`, schema)
}

func TestGetSchemaByIDNotFound(t *testing.T) {
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, _ *http.Request) {
		w.WriteHeader(http.StatusNotFound)
		_, _ = w.Write([]byte(`{"error_code":40403,"message":"Schema not found"}`))
	}))
	defer server.Close()

	client, err := NewClient(Config{URL: server.URL})
	require.NoError(t, err)

	_, err = client.GetSchemaByID(context.Background(), 9999)
	require.Error(t, err)
	assert.True(t, IsNotFound(err))
	assert.True(t, IsStatusError(err))
	assert.False(t, IsTransportError(err))
	assert.Contains(t, err.Error(), "Schema not found")
}

func TestGetSchemaByIDMalformedResponse(t *testing.T) {
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, _ *http.Request) {
		w.WriteHeader(http.StatusOK)
		_, _ = w.Write([]byte(`{}`))
	}))
	defer server.Close()

	client, err := NewClient(Config{URL: server.URL})
	require.NoError(t, err)

	_, err = client.GetSchemaByID(context.Background(), 1)
	require.Error(t, err)
	assert.True(t, IsMalformedResponse(err))
}

func TestGetSchemaByIDTransportError(t *testing.T) {
	server := httptest.NewServer(http.HandlerFunc(func(_ http.ResponseWriter, _ *http.Request) {}))
	server.Close() // connection refused from here on

	client, err := NewClient(Config{URL: server.URL})
	require.NoError(t, err)

	_, err = client.GetSchemaByID(context.Background(), 1)
	require.Error(t, err)
	assert.True(t, IsTransportError(err))
	assert.False(t, IsStatusError(err))
}

func TestGetSubjectVersionDefaultsToLatest(t *testing.T) {
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		assert.Equal(t, "/subjects/users-value/versions/latest", r.URL.Path)

		w.WriteHeader(http.StatusOK)
		_, _ = w.Write([]byte(`{"subject":"users-value","id":7,"version":3,"schema":"{\"type\":\"string\"}"}`))
	}))
	defer server.Close()

	client, err := NewClient(Config{URL: server.URL})
	require.NoError(t, err)

	metadata, err := client.GetSubjectVersion(context.Background(), "users-value", "")
	require.NoError(t, err)
	assert.Equal(t, 7, metadata.ID)
	assert.Equal(t, 3, metadata.Version)
	assert.Equal(t, "users-value", metadata.Subject)
	assert.Equal(t, `{"type":"string"}`, metadata.Schema)
}

func TestGetSubjectVersionExplicit(t *testing.T) {
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		assert.Equal(t, "/subjects/com.example.Foo-123456789/versions/1", r.URL.Path)

		w.WriteHeader(http.StatusOK)
		_, _ = w.Write([]byte(`{"subject":"com.example.Foo-123456789","id":12,"version":1,"schema":"{\"type\":\"long\"}"}`))
	}))
	defer server.Close()

	client, err := NewClient(Config{URL: server.URL})
	require.NoError(t, err)

	metadata, err := client.GetSubjectVersion(context.Background(), "com.example.Foo-123456789", "1")
	require.NoError(t, err)
	assert.Equal(t, 12, metadata.ID)
	assert.Equal(t, 1, metadata.Version)
}

func TestRegisterSchema(t *testing.T) {
	schema := `{"type":"record","name":"User","fields":[{"name":"name","type":"string"}]}`

	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		assert.Equal(t, http.MethodPost, r.Method)
		assert.Equal(t, "/subjects/users-value/versions", r.URL.Path)
		assert.Equal(t, contentType, r.Header.Get("Content-Type"))

		var payload map[string]interface{}
		require.NoError(t, json.NewDecoder(r.Body).Decode(&payload))
		assert.Equal(t, schema, payload["schema"])

		// AVRO is the registry default and must not be sent explicitly
		_, hasType := payload["schemaType"]
		assert.False(t, hasType)

		w.WriteHeader(http.StatusOK)
		_, _ = w.Write([]byte(`{"id": 7}`))
	}))
	defer server.Close()

	client, err := NewClient(Config{URL: server.URL})
	require.NoError(t, err)

	id, err := client.RegisterSchema(context.Background(), "users-value", schema, "AVRO")
	require.NoError(t, err)
	assert.Equal(t, 7, id)
}

func TestRegisterSchemaNonAvroType(t *testing.T) {
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		var payload map[string]interface{}
		require.NoError(t, json.NewDecoder(r.Body).Decode(&payload))
		assert.Equal(t, "PROTOBUF", payload["schemaType"])

		w.WriteHeader(http.StatusOK)
		_, _ = w.Write([]byte(`{"id": 8}`))
	}))
	defer server.Close()

	client, err := NewClient(Config{URL: server.URL})
	require.NoError(t, err)

	id, err := client.RegisterSchema(context.Background(), "users-proto", "syntax = \"proto3\";", "PROTOBUF")
	require.NoError(t, err)
	assert.Equal(t, 8, id)
}

func TestRegisterSchemaMissingID(t *testing.T) {
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, _ *http.Request) {
		w.WriteHeader(http.StatusOK)
		_, _ = w.Write([]byte(`{}`))
	}))
	defer server.Close()

	client, err := NewClient(Config{URL: server.URL})
	require.NoError(t, err)

	_, err = client.RegisterSchema(context.Background(), "users-value", `{"type":"string"}`, "")
	require.Error(t, err)
	assert.True(t, IsMalformedResponse(err))
}

func TestBasicAuthAttached(t *testing.T) {
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		user, pass, ok := r.BasicAuth()
		assert.True(t, ok)
		assert.Equal(t, "user", user)
		assert.Equal(t, "secret", pass)

		w.WriteHeader(http.StatusOK)
		_, _ = w.Write([]byte(`{"schema": "{\"type\":\"string\"}"}`))
	}))
	defer server.Close()

	client, err := NewClient(Config{URL: server.URL, Username: "user", Password: "secret"})
	require.NoError(t, err)

	_, err = client.GetSchemaByID(context.Background(), 1)
	require.NoError(t, err)
}

func TestNoAuthHeaderWithoutCredentials(t *testing.T) {
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		assert.Empty(t, r.Header.Get("Authorization"))

		w.WriteHeader(http.StatusOK)
		_, _ = w.Write([]byte(`{"schema": "{\"type\":\"string\"}"}`))
	}))
	defer server.Close()

	client, err := NewClient(Config{URL: server.URL})
	require.NoError(t, err)

	_, err = client.GetSchemaByID(context.Background(), 1)
	require.NoError(t, err)
}

func TestFailuresAreLogged(t *testing.T) {
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, _ *http.Request) {
		w.WriteHeader(http.StatusInternalServerError)
		_, _ = w.Write([]byte(`{"error_code":50001,"message":"Error in the backend datastore"}`))
	}))
	defer server.Close()

	ctrl := gomock.NewController(t)
	defer ctrl.Finish()

	mockLogger := NewMockLogger(ctrl)
	mockLogger.EXPECT().
		ErrorWithContext(gomock.Any(), "schema registry returned an error status", gomock.Any(), gomock.Any()).
		Times(1)

	client, err := NewClient(Config{URL: server.URL, Logger: mockLogger})
	require.NoError(t, err)

	_, err = client.GetSchemaByID(context.Background(), 1)
	require.Error(t, err)
}

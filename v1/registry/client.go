package registry

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"io"
	"net/http"
	"strconv"
	"strings"
	"time"

	"github.com/Aleph-Alpha/avrokit/v1/observability"
)

// Registry provides an interface for interacting with a Confluent Schema Registry.
// It exposes the three remote operations used for schema resolution and
// registration. Callers that need caching should wrap a Registry with the
// resolver package rather than expecting the client to remember responses.
type Registry interface {
	// GetSchemaByID retrieves a schema by its registry-assigned ID
	GetSchemaByID(ctx context.Context, id int) (string, error)

	// GetSubjectVersion retrieves one version of a subject's schema.
	// An empty version requests the latest one.
	GetSubjectVersion(ctx context.Context, subject, version string) (*Metadata, error)

	// RegisterSchema registers a new schema under a subject and returns
	// the registry-assigned ID
	RegisterSchema(ctx context.Context, subject, schema, schemaType string) (int, error)
}

// Metadata contains metadata about a registered schema
type Metadata struct {
	ID      int    `json:"id"`
	Version int    `json:"version"`
	Schema  string `json:"schema"`
	Subject string `json:"subject"`
	Type    string `json:"schemaType,omitempty"`
}

// Client is the default implementation of Registry
// that communicates with Confluent Schema Registry over HTTP.
//
// The client is stateless: every call is a single blocking request with the
// configured timeout and no retry. It is safe for concurrent use.
type Client struct {
	url        string
	httpClient *http.Client

	// Authentication
	username string
	password string

	logger   Logger
	observer observability.Observer
}

// NewClient creates a new schema registry client
// Returns the concrete *Client type.
func NewClient(config Config) (*Client, error) {
	if config.URL == "" {
		return nil, fmt.Errorf("schema registry URL is required")
	}

	if config.Timeout == 0 {
		config.Timeout = DefaultTimeout
	}

	return &Client{
		url: strings.TrimRight(config.URL, "/"),
		httpClient: &http.Client{
			Timeout: config.Timeout,
		},
		username: config.Username,
		password: config.Password,
		logger:   config.Logger,
	}, nil
}

// WithLogger sets the logger for this client and returns the client for
// method chaining.
//
// Example:
//
//	client = client.WithLogger(myLogger).WithObserver(myObserver)
func (c *Client) WithLogger(logger Logger) *Client {
	c.logger = logger
	return c
}

// WithObserver attaches an observer to the client for observability hooks.
//
// Example:
//
//	client = client.WithObserver(myObserver)
func (c *Client) WithObserver(observer observability.Observer) *Client {
	c.observer = observer
	return c
}

// GetSchemaByID retrieves a schema from the registry by its ID.
// The schema is returned as the registry stores it, a JSON document in text
// form.
func (c *Client) GetSchemaByID(ctx context.Context, id int) (string, error) {
	start := time.Now()
	schema, err := c.fetchSchemaByID(ctx, id)
	c.observeOperation("get_schema_by_id", strconv.Itoa(id), "", time.Since(start), err, int64(len(schema)), nil)
	return schema, err
}

func (c *Client) fetchSchemaByID(ctx context.Context, id int) (string, error) {
	url := fmt.Sprintf("%s/schemas/ids/%d", c.url, id)
	req, err := http.NewRequestWithContext(ctx, http.MethodGet, url, nil)
	if err != nil {
		return "", fmt.Errorf("failed to create request: %w", err)
	}
	c.setHeaders(req)

	resp, err := c.do(ctx, req, "fetch schema by id")
	if err != nil {
		return "", err
	}
	defer resp.Body.Close()

	var result struct {
		Schema string `json:"schema"`
	}

	if err := json.NewDecoder(resp.Body).Decode(&result); err != nil {
		return "", fmt.Errorf("%w: %v", ErrMalformedResponse, err)
	}
	if result.Schema == "" {
		return "", fmt.Errorf("%w: missing schema field", ErrMalformedResponse)
	}

	return result.Schema, nil
}

// GetSubjectVersion retrieves one version of the schema registered under a
// subject. Pass an empty version (or "latest") for the most recent one.
func (c *Client) GetSubjectVersion(ctx context.Context, subject, version string) (*Metadata, error) {
	if version == "" {
		version = "latest"
	}

	start := time.Now()
	metadata, err := c.fetchSubjectVersion(ctx, subject, version)

	var size int64
	if metadata != nil {
		size = int64(len(metadata.Schema))
	}
	c.observeOperation("get_subject_version", subject, version, time.Since(start), err, size, nil)

	return metadata, err
}

func (c *Client) fetchSubjectVersion(ctx context.Context, subject, version string) (*Metadata, error) {
	url := fmt.Sprintf("%s/subjects/%s/versions/%s", c.url, subject, version)
	req, err := http.NewRequestWithContext(ctx, http.MethodGet, url, nil)
	if err != nil {
		return nil, fmt.Errorf("failed to create request: %w", err)
	}
	c.setHeaders(req)

	resp, err := c.do(ctx, req, "fetch subject version")
	if err != nil {
		return nil, err
	}
	defer resp.Body.Close()

	var metadata Metadata
	if err := json.NewDecoder(resp.Body).Decode(&metadata); err != nil {
		return nil, fmt.Errorf("%w: %v", ErrMalformedResponse, err)
	}
	if metadata.ID == 0 || metadata.Schema == "" {
		return nil, fmt.Errorf("%w: missing id or schema field", ErrMalformedResponse)
	}

	metadata.Subject = subject

	return &metadata, nil
}

// RegisterSchema registers a new schema with the schema registry and returns
// the registry-assigned ID. The schemaType is sent only when it is set and
// differs from the registry default of "AVRO".
//
// Registering a schema that is already registered under the subject is not
// an error; the registry answers with the existing ID.
func (c *Client) RegisterSchema(ctx context.Context, subject, schema, schemaType string) (int, error) {
	start := time.Now()
	id, err := c.postSchema(ctx, subject, schema, schemaType)
	c.observeOperation("register_schema", subject, schemaType, time.Since(start), err, int64(len(schema)), nil)
	return id, err
}

func (c *Client) postSchema(ctx context.Context, subject, schema, schemaType string) (int, error) {
	url := fmt.Sprintf("%s/subjects/%s/versions", c.url, subject)

	payload := map[string]interface{}{
		"schema": schema,
	}
	if schemaType != "" && schemaType != "AVRO" {
		payload["schemaType"] = schemaType
	}

	body, err := json.Marshal(payload)
	if err != nil {
		return 0, fmt.Errorf("failed to marshal request: %w", err)
	}

	req, err := http.NewRequestWithContext(ctx, http.MethodPost, url, bytes.NewReader(body))
	if err != nil {
		return 0, fmt.Errorf("failed to create request: %w", err)
	}
	c.setHeaders(req)
	req.Header.Set("Content-Type", contentType)

	resp, err := c.do(ctx, req, "register schema")
	if err != nil {
		return 0, err
	}
	defer resp.Body.Close()

	var result struct {
		ID int `json:"id"`
	}

	if err := json.NewDecoder(resp.Body).Decode(&result); err != nil {
		return 0, fmt.Errorf("%w: %v", ErrMalformedResponse, err)
	}
	if result.ID == 0 {
		return 0, fmt.Errorf("%w: missing id field", ErrMalformedResponse)
	}

	return result.ID, nil
}

// setHeaders attaches basic auth credentials (when configured) and the
// registry media type to the request.
func (c *Client) setHeaders(req *http.Request) {
	if c.username != "" {
		req.SetBasicAuth(c.username, c.password)
	}
	req.Header.Set("Accept", contentType)
}

// do executes the request and translates failures into typed errors:
// TransportError when no HTTP response was produced, StatusError for any
// non-2xx status. Both are logged with the decoded status and response body
// before being returned.
func (c *Client) do(ctx context.Context, req *http.Request, op string) (*http.Response, error) {
	resp, err := c.httpClient.Do(req)
	if err != nil {
		transportErr := &TransportError{Err: err}
		c.logError(ctx, "schema registry request failed", transportErr, map[string]interface{}{
			"operation": op,
			"url":       req.URL.String(),
		})
		return nil, transportErr
	}

	if resp.StatusCode < 200 || resp.StatusCode > 299 {
		body, _ := io.ReadAll(resp.Body)
		resp.Body.Close()

		statusErr := &StatusError{StatusCode: resp.StatusCode, Body: string(body)}
		c.logError(ctx, "schema registry returned an error status", statusErr, map[string]interface{}{
			"operation": op,
			"url":       req.URL.String(),
			"status":    resp.StatusCode,
			"body":      string(body),
		})
		return nil, statusErr
	}

	return resp, nil
}

// logError forwards to the configured logger if one is set.
func (c *Client) logError(ctx context.Context, msg string, err error, fields ...map[string]interface{}) {
	if c.logger == nil {
		return
	}
	c.logger.ErrorWithContext(ctx, msg, err, fields...)
}

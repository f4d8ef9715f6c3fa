// Package rest is the request executor shared by the local service and
// Central clients. A Backend turns (method, path, body) into a decoded
// result or one of APIError, TransportError or DecodeError.
package rest

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"io"
	"net/http"
	"strings"
	"time"

	"github.com/hashicorp/go-hclog"
	"github.com/lydakis/ztmcp/internal/httpheaders"
)

// Options configures a Backend.
type Options struct {
	Name    string
	BaseURL string
	Auth    AuthStrategy
	Timeout time.Duration

	// Headers are sent on every request. Auth wins on conflict.
	Headers map[string]string

	// HTTPClient overrides the default client. Its Timeout is replaced
	// by Options.Timeout when the latter is set.
	HTTPClient *http.Client
	Logger     hclog.Logger
}

// Backend is an immutable REST endpoint. Safe for concurrent use.
type Backend struct {
	name    string
	baseURL string
	headers map[string]string
	timeout time.Duration
	client  *http.Client
	logger  hclog.Logger
}

// New builds a Backend from opts.
func New(opts Options) *Backend {
	auth := opts.Auth
	if auth == nil {
		auth = NoAuth{}
	}

	headers := auth.Apply(httpheaders.Set(nil, "Accept", "application/json"))
	headers = httpheaders.Merge(headers, opts.Headers, false)

	client := &http.Client{}
	if opts.HTTPClient != nil {
		copied := *opts.HTTPClient
		client = &copied
	}
	if opts.Timeout > 0 {
		client.Timeout = opts.Timeout
	}

	logger := opts.Logger
	if logger == nil {
		logger = hclog.NewNullLogger()
	}

	name := opts.Name
	if name == "" {
		name = "rest"
	}

	logger.Trace("backend configured", "base_url", opts.BaseURL, "timeout", client.Timeout, "headers", httpheaders.Redacted(headers))

	return &Backend{
		name:    name,
		baseURL: strings.TrimRight(opts.BaseURL, "/"),
		headers: headers,
		timeout: client.Timeout,
		client:  client,
		logger:  logger,
	}
}

// Name returns the backend name used in errors and logs.
func (b *Backend) Name() string { return b.name }

// BaseURL returns the base address requests are resolved against.
func (b *Backend) BaseURL() string { return b.baseURL }

// Timeout returns the per-call timeout.
func (b *Backend) Timeout() time.Duration { return b.timeout }

// Do performs exactly one HTTP exchange. A nil body sends no payload; a nil
// out discards the response body on success.
func (b *Backend) Do(ctx context.Context, method, path string, body, out any) error {
	var payload io.Reader
	if body != nil {
		data, err := json.Marshal(body)
		if err != nil {
			return fmt.Errorf("encoding %s request body for %s: %w", b.name, path, err)
		}
		payload = bytes.NewReader(data)
	}

	req, err := http.NewRequestWithContext(ctx, method, b.baseURL+path, payload)
	if err != nil {
		return &TransportError{Backend: b.name, Method: method, Path: path, Err: err}
	}
	httpheaders.Apply(req, b.headers)
	if body != nil {
		req.Header.Set("Content-Type", "application/json")
	}

	start := time.Now()
	resp, err := b.client.Do(req)
	if err != nil {
		b.logger.Debug("request failed", "method", method, "path", path, "duration", time.Since(start), "error", err)
		return &TransportError{Backend: b.name, Method: method, Path: path, Err: err}
	}
	defer resp.Body.Close()

	respBody, err := io.ReadAll(resp.Body)
	if err != nil {
		return &TransportError{Backend: b.name, Method: method, Path: path, Err: fmt.Errorf("reading response: %w", err)}
	}
	b.logger.Debug("request", "method", method, "path", path, "status", resp.StatusCode, "duration", time.Since(start))

	if resp.StatusCode < 200 || resp.StatusCode >= 300 {
		return &APIError{
			Backend: b.name,
			Method:  method,
			Path:    path,
			Status:  resp.StatusCode,
			Body:    string(respBody),
		}
	}

	if out == nil {
		return nil
	}
	if err := json.Unmarshal(respBody, out); err != nil {
		return &DecodeError{Backend: b.name, Path: path, Err: err}
	}
	return nil
}

// Get is Do with GET and no body.
func (b *Backend) Get(ctx context.Context, path string, out any) error {
	return b.Do(ctx, http.MethodGet, path, nil, out)
}

// Post is Do with POST.
func (b *Backend) Post(ctx context.Context, path string, body, out any) error {
	return b.Do(ctx, http.MethodPost, path, body, out)
}

// Delete is Do with DELETE, no body and no payload expected.
func (b *Backend) Delete(ctx context.Context, path string) error {
	return b.Do(ctx, http.MethodDelete, path, nil, nil)
}

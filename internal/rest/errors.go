package rest

import (
	"errors"
	"fmt"
	"net/http"
	"strings"
)

// APIError is a non-2xx response. Body is the raw response text.
type APIError struct {
	Backend string
	Method  string
	Path    string
	Status  int
	Body    string
}

func (e *APIError) Error() string {
	body := strings.TrimSpace(e.Body)
	if body == "" {
		body = http.StatusText(e.Status)
	}
	return fmt.Sprintf("%s API error (%d): %s", e.Backend, e.Status, body)
}

// NotFound reports whether the backend answered 404.
func (e *APIError) NotFound() bool {
	return e.Status == http.StatusNotFound
}

// TransportError covers DNS, connect, TLS, timeout and cancellation failures.
type TransportError struct {
	Backend string
	Method  string
	Path    string
	Err     error
}

func (e *TransportError) Error() string {
	return fmt.Sprintf("%s request %s %s failed: %v", e.Backend, e.Method, e.Path, e.Err)
}

func (e *TransportError) Unwrap() error { return e.Err }

// DecodeError is a 2xx response whose body could not be parsed.
type DecodeError struct {
	Backend string
	Path    string
	Err     error
}

func (e *DecodeError) Error() string {
	return fmt.Sprintf("decoding %s response from %s: %v", e.Backend, e.Path, e.Err)
}

func (e *DecodeError) Unwrap() error { return e.Err }

// StatusCode returns the HTTP status carried by an APIError anywhere in
// err's chain, or 0.
func StatusCode(err error) int {
	var apiErr *APIError
	if errors.As(err, &apiErr) {
		return apiErr.Status
	}
	return 0
}

// IsNotFound reports whether err is a backend 404.
func IsNotFound(err error) bool {
	return StatusCode(err) == http.StatusNotFound
}

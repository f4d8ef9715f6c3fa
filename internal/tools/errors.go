package tools

import (
	"errors"
	"fmt"
	"net/http"
	"strings"

	"github.com/mark3labs/mcp-go/mcp"

	"github.com/lydakis/ztmcp/internal/rest"
)

// Kind classifies an outcome for callers that need more than the text.
type Kind string

const (
	KindNone          Kind = ""
	KindValidation    Kind = "validation"
	KindNotConfigured Kind = "not_configured"
	KindTransport     Kind = "transport"
	KindAPI           Kind = "api"
	KindDecoding      Kind = "decoding"
	KindInternal      Kind = "internal"
)

// NotConfiguredMessage is rendered for Central tools when no cloud
// credential was supplied.
const NotConfiguredMessage = "No cloud credential configured: set ZEROTIER_CENTRAL_TOKEN or central.token to use Central tools."

// ErrNotConfigured is returned for Central tools without a cloud credential.
var ErrNotConfigured = errors.New("central backend not configured")

// ErrUnknownTool is returned when no tool is registered under the name.
var ErrUnknownTool = errors.New("unknown tool")

func classify(err error) Kind {
	if err == nil {
		return KindNone
	}

	var (
		apiErr       *rest.APIError
		transportErr *rest.TransportError
		decodeErr    *rest.DecodeError
	)
	switch {
	case errors.Is(err, ErrNotConfigured):
		return KindNotConfigured
	case errors.Is(err, ErrUnknownTool), errors.Is(err, mcp.ErrInvalidParams):
		return KindValidation
	case errors.As(err, &apiErr):
		return KindAPI
	case errors.As(err, &transportErr):
		return KindTransport
	case errors.As(err, &decodeErr):
		return KindDecoding
	default:
		return KindInternal
	}
}

// summarize renders err as the short clause following "<Action> failed: ".
func summarize(err error) string {
	var (
		apiErr       *rest.APIError
		transportErr *rest.TransportError
		decodeErr    *rest.DecodeError
	)
	switch {
	case errors.As(err, &apiErr):
		body := strings.TrimSpace(apiErr.Body)
		if body == "" {
			body = http.StatusText(apiErr.Status)
		}
		return fmt.Sprintf("HTTP %d: %s", apiErr.Status, body)
	case errors.As(err, &transportErr):
		return fmt.Sprintf("could not reach the %s API: %v", transportErr.Backend, transportErr.Err)
	case errors.As(err, &decodeErr):
		return fmt.Sprintf("unexpected response from the %s API: %v", decodeErr.Backend, decodeErr.Err)
	default:
		return err.Error()
	}
}

func failureText(action string, err error) string {
	if errors.Is(err, ErrNotConfigured) {
		return NotConfiguredMessage
	}
	return fmt.Sprintf("%s failed: %s", action, summarize(err))
}

package rest

import (
	"strings"

	"github.com/lydakis/ztmcp/internal/httpheaders"
)

// AuthStrategy attaches backend credentials to the outgoing header set.
type AuthStrategy interface {
	Apply(headers map[string]string) map[string]string
}

// HeaderToken sends the raw token as the value of a custom header.
// The local ZeroTier service uses X-ZT1-AUTH.
type HeaderToken struct {
	Header string
	Token  string
}

func (h HeaderToken) Apply(headers map[string]string) map[string]string {
	return httpheaders.Set(headers, h.Header, h.Token)
}

// SchemeToken sends "Authorization: <scheme> <token>".
// Central expects the scheme "token", not "Bearer".
type SchemeToken struct {
	Scheme string
	Token  string
}

func (s SchemeToken) Apply(headers map[string]string) map[string]string {
	value := strings.TrimSpace(s.Scheme + " " + s.Token)
	return httpheaders.Set(headers, "Authorization", value)
}

// NoAuth leaves headers untouched.
type NoAuth struct{}

func (NoAuth) Apply(headers map[string]string) map[string]string { return headers }

// Package central is a client for the ZeroTier Central REST API.
package central

import (
	"context"
	"net/http"
	"time"

	"github.com/hashicorp/go-hclog"
	"github.com/lydakis/ztmcp/internal/rest"
)

const (
	DefaultBaseURL = "https://api.zerotier.com/api/v1"
	DefaultTimeout = 30 * time.Second

	authScheme = "token"
)

// Options configures a Client.
type Options struct {
	BaseURL    string
	Token      string
	Timeout    time.Duration
	Headers    map[string]string
	HTTPClient *http.Client
	Logger     hclog.Logger
}

// Client talks to Central.
type Client struct {
	backend *rest.Backend
}

// New creates a Client with defaults applied for unset options.
func New(opts Options) *Client {
	if opts.BaseURL == "" {
		opts.BaseURL = DefaultBaseURL
	}
	if opts.Timeout <= 0 {
		opts.Timeout = DefaultTimeout
	}
	return &Client{
		backend: rest.New(rest.Options{
			Name:       "central",
			BaseURL:    opts.BaseURL,
			Auth:       rest.SchemeToken{Scheme: authScheme, Token: opts.Token},
			Timeout:    opts.Timeout,
			Headers:    opts.Headers,
			HTTPClient: opts.HTTPClient,
			Logger:     opts.Logger,
		}),
	}
}

// Backend exposes the underlying executor.
func (c *Client) Backend() *rest.Backend { return c.backend }

// Status returns the API status and the token's user.
func (c *Client) Status(ctx context.Context) (*Status, error) {
	var status Status
	if err := c.backend.Get(ctx, "/status", &status); err != nil {
		return nil, err
	}
	return &status, nil
}

// Networks returns the network service.
func (c *Client) Networks() *NetworkService { return &NetworkService{backend: c.backend} }

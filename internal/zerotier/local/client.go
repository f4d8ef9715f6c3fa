// Package local is a client for the ZeroTier One service API exposed on the
// node itself (default http://localhost:9993).
package local

import (
	"context"
	"net/http"
	"time"

	"github.com/hashicorp/go-hclog"
	"github.com/lydakis/ztmcp/internal/rest"
)

const (
	DefaultBaseURL = "http://localhost:9993"
	DefaultTimeout = 10 * time.Second

	// AuthHeader carries the node's authtoken.secret.
	AuthHeader = "X-ZT1-AUTH"
)

// Options configures a Client. Token must already be resolved; see the
// credentials package.
type Options struct {
	BaseURL    string
	Token      string
	Timeout    time.Duration
	Headers    map[string]string
	HTTPClient *http.Client
	Logger     hclog.Logger
}

// Client talks to the local service API.
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
			Name:       "local",
			BaseURL:    opts.BaseURL,
			Auth:       rest.HeaderToken{Header: AuthHeader, Token: opts.Token},
			Timeout:    opts.Timeout,
			Headers:    opts.Headers,
			HTTPClient: opts.HTTPClient,
			Logger:     opts.Logger,
		}),
	}
}

// Backend exposes the underlying executor.
func (c *Client) Backend() *rest.Backend { return c.backend }

// Status returns the node status.
func (c *Client) Status(ctx context.Context) (*NodeStatus, error) {
	var status NodeStatus
	if err := c.backend.Get(ctx, "/status", &status); err != nil {
		return nil, err
	}
	return &status, nil
}

// Networks returns the joined-network service.
func (c *Client) Networks() *NetworkService { return &NetworkService{backend: c.backend} }

// Peers returns the peer service.
func (c *Client) Peers() *PeerService { return &PeerService{backend: c.backend} }

// Controller returns the self-hosted controller service.
func (c *Client) Controller() *ControllerService { return &ControllerService{backend: c.backend} }

package local

import (
	"context"
	"net/url"

	"github.com/lydakis/ztmcp/internal/rest"
)

// NetworkService manages networks this node has joined.
type NetworkService struct {
	backend *rest.Backend
}

func networkPath(id string) string {
	return "/network/" + url.PathEscape(id)
}

// List returns joined networks in backend order.
func (s *NetworkService) List(ctx context.Context) ([]Network, error) {
	var networks []Network
	if err := s.backend.Get(ctx, "/network", &networks); err != nil {
		return nil, err
	}
	return networks, nil
}

// Get returns one joined network.
func (s *NetworkService) Get(ctx context.Context, networkID string) (*Network, error) {
	var network Network
	if err := s.backend.Get(ctx, networkPath(networkID), &network); err != nil {
		return nil, err
	}
	return &network, nil
}

// Join joins networkID. Joining an already-joined network is a no-op on the
// service side.
func (s *NetworkService) Join(ctx context.Context, networkID string) (*Network, error) {
	var network Network
	if err := s.backend.Post(ctx, networkPath(networkID), struct{}{}, &network); err != nil {
		return nil, err
	}
	return &network, nil
}

// Leave leaves networkID.
func (s *NetworkService) Leave(ctx context.Context, networkID string) error {
	return s.backend.Delete(ctx, networkPath(networkID))
}

// Update changes only the flags set in settings.
func (s *NetworkService) Update(ctx context.Context, networkID string, settings NetworkSettings) (*Network, error) {
	var network Network
	if err := s.backend.Post(ctx, networkPath(networkID), settings, &network); err != nil {
		return nil, err
	}
	return &network, nil
}

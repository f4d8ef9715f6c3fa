package central

import (
	"context"
	"net/url"

	"github.com/lydakis/ztmcp/internal/rest"
)

// NetworkService manages Central networks.
type NetworkService struct {
	backend *rest.Backend
}

func networkPath(id string) string {
	return "/network/" + url.PathEscape(id)
}

// List returns all networks visible to the token.
func (s *NetworkService) List(ctx context.Context) ([]Network, error) {
	var networks []Network
	if err := s.backend.Get(ctx, "/network", &networks); err != nil {
		return nil, err
	}
	return networks, nil
}

// Get returns one network.
func (s *NetworkService) Get(ctx context.Context, networkID string) (*Network, error) {
	var network Network
	if err := s.backend.Get(ctx, networkPath(networkID), &network); err != nil {
		return nil, err
	}
	return &network, nil
}

// Create creates a network. A nil config lets Central pick every default.
func (s *NetworkService) Create(ctx context.Context, config *NetworkConfigUpdate) (*Network, error) {
	var network Network
	if err := s.backend.Post(ctx, "/network", NetworkRequest{Config: config}, &network); err != nil {
		return nil, err
	}
	return &network, nil
}

// Update applies only the fields set in config.
func (s *NetworkService) Update(ctx context.Context, networkID string, config NetworkConfigUpdate) (*Network, error) {
	var network Network
	if err := s.backend.Post(ctx, networkPath(networkID), NetworkRequest{Config: &config}, &network); err != nil {
		return nil, err
	}
	return &network, nil
}

// Delete deletes a network.
func (s *NetworkService) Delete(ctx context.Context, networkID string) error {
	return s.backend.Delete(ctx, networkPath(networkID))
}

// Members returns the member service scoped to networkID.
func (s *NetworkService) Members(networkID string) *MemberService {
	return &MemberService{backend: s.backend, networkID: networkID}
}

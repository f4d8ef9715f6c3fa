package local

import (
	"context"
	"net/url"

	"github.com/lydakis/ztmcp/internal/rest"
)

// PeerService reads the node's peer table.
type PeerService struct {
	backend *rest.Backend
}

// List returns all peers in backend order.
func (s *PeerService) List(ctx context.Context) ([]Peer, error) {
	var peers []Peer
	if err := s.backend.Get(ctx, "/peer", &peers); err != nil {
		return nil, err
	}
	return peers, nil
}

// Get returns one peer by ZeroTier address.
func (s *PeerService) Get(ctx context.Context, peerID string) (*Peer, error) {
	var peer Peer
	if err := s.backend.Get(ctx, "/peer/"+url.PathEscape(peerID), &peer); err != nil {
		return nil, err
	}
	return &peer, nil
}

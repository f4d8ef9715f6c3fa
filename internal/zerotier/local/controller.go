package local

import (
	"context"
	"encoding/json"
	"fmt"
	"net/url"
	"sort"
	"strings"

	"github.com/lydakis/ztmcp/internal/rest"
)

// networkIDSuffix is appended to the controller's node id when creating a
// network; the controller picks the remaining id digits itself.
const networkIDSuffix = "______"

// ControllerService manages networks on a self-hosted controller.
type ControllerService struct {
	backend *rest.Backend
}

// NewNetworkID returns the creation id for a network owned by nodeID.
func NewNetworkID(nodeID string) string {
	return strings.TrimSpace(nodeID) + networkIDSuffix
}

func controllerNetworkPath(networkID string) string {
	return "/controller/network/" + url.PathEscape(networkID)
}

func controllerMemberPath(networkID, memberID string) string {
	return controllerNetworkPath(networkID) + "/member/" + url.PathEscape(memberID)
}

// Status returns the controller status.
func (s *ControllerService) Status(ctx context.Context) (*ControllerStatus, error) {
	var status ControllerStatus
	if err := s.backend.Get(ctx, "/controller", &status); err != nil {
		return nil, err
	}
	return &status, nil
}

// ListNetworks returns the ids of networks hosted by this controller.
func (s *ControllerService) ListNetworks(ctx context.Context) ([]string, error) {
	var raw json.RawMessage
	if err := s.backend.Get(ctx, "/controller/network", &raw); err != nil {
		return nil, err
	}
	ids, err := decodeIDList(raw)
	if err != nil {
		return nil, &rest.DecodeError{Backend: s.backend.Name(), Path: "/controller/network", Err: err}
	}
	return ids, nil
}

// GetNetwork returns one controller network.
func (s *ControllerService) GetNetwork(ctx context.Context, networkID string) (*ControllerNetwork, error) {
	var network ControllerNetwork
	if err := s.backend.Get(ctx, controllerNetworkPath(networkID), &network); err != nil {
		return nil, err
	}
	return &network, nil
}

// CreateNetwork creates a network owned by nodeID. A nil config sends {}.
func (s *ControllerService) CreateNetwork(ctx context.Context, nodeID string, config *ControllerNetworkConfig) (*ControllerNetwork, error) {
	if strings.TrimSpace(nodeID) == "" {
		return nil, fmt.Errorf("creating controller network: node id is required")
	}
	var body any = struct{}{}
	if config != nil {
		body = config
	}

	var network ControllerNetwork
	if err := s.backend.Post(ctx, controllerNetworkPath(NewNetworkID(nodeID)), body, &network); err != nil {
		return nil, err
	}
	return &network, nil
}

// UpdateNetwork applies only the fields set in config.
func (s *ControllerService) UpdateNetwork(ctx context.Context, networkID string, config ControllerNetworkConfig) (*ControllerNetwork, error) {
	var network ControllerNetwork
	if err := s.backend.Post(ctx, controllerNetworkPath(networkID), config, &network); err != nil {
		return nil, err
	}
	return &network, nil
}

// DeleteNetwork deletes a controller network.
func (s *ControllerService) DeleteNetwork(ctx context.Context, networkID string) error {
	return s.backend.Delete(ctx, controllerNetworkPath(networkID))
}

// ListMembers returns member ids of networkID, sorted.
func (s *ControllerService) ListMembers(ctx context.Context, networkID string) ([]string, error) {
	path := controllerNetworkPath(networkID) + "/member"
	var raw json.RawMessage
	if err := s.backend.Get(ctx, path, &raw); err != nil {
		return nil, err
	}
	ids, err := decodeIDList(raw)
	if err != nil {
		return nil, &rest.DecodeError{Backend: s.backend.Name(), Path: path, Err: err}
	}
	return ids, nil
}

// GetMember returns one member.
func (s *ControllerService) GetMember(ctx context.Context, networkID, memberID string) (*ControllerMember, error) {
	var member ControllerMember
	if err := s.backend.Get(ctx, controllerMemberPath(networkID, memberID), &member); err != nil {
		return nil, err
	}
	return &member, nil
}

// UpdateMember applies only the fields set in config.
func (s *ControllerService) UpdateMember(ctx context.Context, networkID, memberID string, config ControllerMemberConfig) (*ControllerMember, error) {
	var member ControllerMember
	if err := s.backend.Post(ctx, controllerMemberPath(networkID, memberID), config, &member); err != nil {
		return nil, err
	}
	return &member, nil
}

// AuthorizeMember sets authorized=true and nothing else.
func (s *ControllerService) AuthorizeMember(ctx context.Context, networkID, memberID string) (*ControllerMember, error) {
	return s.UpdateMember(ctx, networkID, memberID, ControllerMemberConfig{Authorized: Bool(true)})
}

// DeauthorizeMember sets authorized=false and nothing else.
func (s *ControllerService) DeauthorizeMember(ctx context.Context, networkID, memberID string) (*ControllerMember, error) {
	return s.UpdateMember(ctx, networkID, memberID, ControllerMemberConfig{Authorized: Bool(false)})
}

// DeleteMember removes a member record.
func (s *ControllerService) DeleteMember(ctx context.Context, networkID, memberID string) error {
	return s.backend.Delete(ctx, controllerMemberPath(networkID, memberID))
}

// decodeIDList accepts either a JSON array of ids or an object keyed by id
// (the member listing maps id to revision).
func decodeIDList(raw json.RawMessage) ([]string, error) {
	trimmed := strings.TrimSpace(string(raw))
	if trimmed == "" || trimmed == "null" {
		return []string{}, nil
	}

	if strings.HasPrefix(trimmed, "[") {
		var ids []string
		if err := json.Unmarshal(raw, &ids); err != nil {
			return nil, err
		}
		return ids, nil
	}

	var byID map[string]json.RawMessage
	if err := json.Unmarshal(raw, &byID); err != nil {
		return nil, err
	}
	ids := make([]string, 0, len(byID))
	for id := range byID {
		ids = append(ids, id)
	}
	sort.Strings(ids)
	return ids, nil
}

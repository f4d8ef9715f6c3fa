package central

import (
	"context"
	"net/url"

	"github.com/lydakis/ztmcp/internal/rest"
)

// MemberService manages the members of one network.
type MemberService struct {
	backend   *rest.Backend
	networkID string
}

func (s *MemberService) basePath() string {
	return networkPath(s.networkID) + "/member"
}

func (s *MemberService) memberPath(memberID string) string {
	return s.basePath() + "/" + url.PathEscape(memberID)
}

// List returns all members in backend order.
func (s *MemberService) List(ctx context.Context) ([]Member, error) {
	var members []Member
	if err := s.backend.Get(ctx, s.basePath(), &members); err != nil {
		return nil, err
	}
	return members, nil
}

// Get returns one member.
func (s *MemberService) Get(ctx context.Context, memberID string) (*Member, error) {
	var member Member
	if err := s.backend.Get(ctx, s.memberPath(memberID), &member); err != nil {
		return nil, err
	}
	return &member, nil
}

// Update applies only the fields set in req.
func (s *MemberService) Update(ctx context.Context, memberID string, req UpdateMemberRequest) (*Member, error) {
	var member Member
	if err := s.backend.Post(ctx, s.memberPath(memberID), req, &member); err != nil {
		return nil, err
	}
	return &member, nil
}

// Authorize sets config.authorized=true and leaves everything else as is.
func (s *MemberService) Authorize(ctx context.Context, memberID string) (*Member, error) {
	return s.setAuthorized(ctx, memberID, true)
}

// Deauthorize sets config.authorized=false and leaves everything else as is.
func (s *MemberService) Deauthorize(ctx context.Context, memberID string) (*Member, error) {
	return s.setAuthorized(ctx, memberID, false)
}

// AuthorizeWithIP authorizes the member and replaces its managed addresses
// with exactly ip.
func (s *MemberService) AuthorizeWithIP(ctx context.Context, memberID, ip string) (*Member, error) {
	return s.Update(ctx, memberID, UpdateMemberRequest{
		Config: &MemberConfigUpdate{
			Authorized:    Bool(true),
			IPAssignments: Strings(ip),
		},
	})
}

// Delete removes the member.
func (s *MemberService) Delete(ctx context.Context, memberID string) error {
	return s.backend.Delete(ctx, s.memberPath(memberID))
}

func (s *MemberService) setAuthorized(ctx context.Context, memberID string, authorized bool) (*Member, error) {
	return s.Update(ctx, memberID, UpdateMemberRequest{
		Config: &MemberConfigUpdate{Authorized: Bool(authorized)},
	})
}

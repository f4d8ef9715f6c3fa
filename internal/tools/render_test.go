package tools

import (
	"strings"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"

	"github.com/lydakis/ztmcp/internal/zerotier/central"
	"github.com/lydakis/ztmcp/internal/zerotier/local"
)

func TestRenderMembersShowsAuthorizationAndLastSeen(t *testing.T) {
	members := []central.Member{
		{NodeID: "2222222222", Name: "server", LastSeen: testNow.Add(-3 * time.Hour).UnixMilli(),
			Config: &central.MemberConfig{Authorized: true, IPAssignments: []string{"10.0.0.2", "fd00::2"}}},
		{ID: "abcd-1111111111", Name: "", Config: nil},
	}

	got := renderMembers("abcd", members, testNow)

	assert.True(t, strings.HasPrefix(got, "Members of network abcd:\n"))
	assert.Contains(t, got, "[2222222222] server (authorized)\n  IPs: 10.0.0.2, fd00::2\n  Last seen: 3 hours ago")
	assert.Contains(t, got, "[abcd-1111111111]  (not authorized)\n  IPs: none\n  Last seen: never")
	assert.False(t, strings.HasSuffix(got, "\n"))
}

func TestRenderCentralNetworksUsesUnnamedPlaceholder(t *testing.T) {
	got := renderCentralNetworks([]central.Network{
		{ID: "n1", OnlineMemberCount: 3, AuthorizedMemberCount: 1200, TotalMemberCount: 1500},
	})

	assert.Equal(t, "Central networks:\n\n[n1] (unnamed)\n  Online: 3 / Authorized: 1,200 / Total: 1,500", got)
}

func TestRenderPeerDetailListsPaths(t *testing.T) {
	got := renderPeerDetail(&local.Peer{
		Address: "89e92ceee5",
		Role:    "LEAF",
		Version: "1.12.2",
		Latency: 4,
		Paths: []local.PeerPath{
			{Address: "192.0.2.10/9993", Active: true, Preferred: true, LastReceive: testNow.Add(-30 * time.Second).UnixMilli()},
		},
	}, testNow)

	assert.Contains(t, got, "- Latency: 4ms")
	assert.Contains(t, got, "192.0.2.10/9993 [active,preferred] last receive 30 seconds ago")
}

func TestRenderJoinedFallsBackToRequestedID(t *testing.T) {
	assert.Equal(t, "Joined network: abcd", renderJoined("abcd", nil))
	assert.Equal(t, "Joined network: abcd (home)", renderJoined("abcd", &local.Network{ID: "abcd", Name: "home"}))
	assert.Equal(t, "Joined network: abcd (status REQUESTING_CONFIGURATION)",
		renderJoined("abcd", &local.Network{ID: "abcd", Status: "REQUESTING_CONFIGURATION"}))
}

func TestRenderIDList(t *testing.T) {
	assert.Equal(t, emptyNetworks, renderIDList("Controller networks:", nil, emptyNetworks))
	assert.Equal(t, "Controller networks:\n- a\n- b", renderIDList("Controller networks:", []string{"a", "b"}, emptyNetworks))
}

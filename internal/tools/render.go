package tools

import (
	"fmt"
	"strings"
	"time"

	"github.com/dustin/go-humanize"

	"github.com/lydakis/ztmcp/internal/zerotier/central"
	"github.com/lydakis/ztmcp/internal/zerotier/local"
)

// Fixed sentences for empty collections.
const (
	emptyJoined   = "No networks joined."
	emptyPeers    = "No peers found."
	emptyNetworks = "No networks found."
	emptyMembers  = "No members found."
)

func renderNodeStatus(st *local.NodeStatus) string {
	if st == nil {
		st = &local.NodeStatus{}
	}
	var b strings.Builder
	b.WriteString("Node status:\n")
	fmt.Fprintf(&b, "- Address: %s\n", st.Address)
	fmt.Fprintf(&b, "- Version: %s\n", st.Version)
	fmt.Fprintf(&b, "- Online: %t\n", st.Online)
	fmt.Fprintf(&b, "- TCP fallback: %t", st.TCPFallbackActive)
	return b.String()
}

func renderNetworks(networks []local.Network) string {
	if len(networks) == 0 {
		return emptyJoined
	}
	var b strings.Builder
	b.WriteString("Joined networks:\n")
	for _, n := range networks {
		fmt.Fprintf(&b, "\n[%s] %s\n", n.ID, n.Name)
		fmt.Fprintf(&b, "  Status: %s\n", n.Status)
		fmt.Fprintf(&b, "  IPs: %s\n", joinOrNone(n.AssignedAddresses))
	}
	return strings.TrimRight(b.String(), "\n")
}

func renderNetworkDetail(n *local.Network) string {
	if n == nil {
		return emptyNetworks
	}
	var b strings.Builder
	fmt.Fprintf(&b, "[%s] %s\n", n.ID, n.Name)
	fmt.Fprintf(&b, "- Status: %s\n", n.Status)
	fmt.Fprintf(&b, "- Type: %s\n", n.Type)
	fmt.Fprintf(&b, "- Device: %s\n", n.PortDeviceName)
	fmt.Fprintf(&b, "- MAC: %s\n", n.MAC)
	fmt.Fprintf(&b, "- MTU: %d\n", n.MTU)
	fmt.Fprintf(&b, "- IPs: %s\n", joinOrNone(n.AssignedAddresses))
	fmt.Fprintf(&b, "- Allow managed: %t / global: %t / default: %t / DNS: %t",
		n.AllowManaged, n.AllowGlobal, n.AllowDefault, n.AllowDNS)
	if n.DNS != nil && n.DNS.Domain != "" {
		fmt.Fprintf(&b, "\n- DNS: %s (%s)", n.DNS.Domain, joinOrNone(n.DNS.Servers))
	}
	return b.String()
}

func renderJoined(networkID string, n *local.Network) string {
	if n == nil || n.ID == "" {
		return "Joined network: " + networkID
	}
	if n.Name == "" {
		return fmt.Sprintf("Joined network: %s (status %s)", n.ID, n.Status)
	}
	return fmt.Sprintf("Joined network: %s (%s)", n.ID, n.Name)
}

func renderPeers(peers []local.Peer) string {
	if len(peers) == 0 {
		return emptyPeers
	}
	var b strings.Builder
	b.WriteString("Peers:\n")
	for _, p := range peers {
		fmt.Fprintf(&b, "\n[%s]\n", p.Address)
		fmt.Fprintf(&b, "  Role: %s\n", p.Role)
		fmt.Fprintf(&b, "  Version: %s\n", p.Version)
		fmt.Fprintf(&b, "  Latency: %s\n", latency(p.Latency))
	}
	return strings.TrimRight(b.String(), "\n")
}

func renderPeerDetail(p *local.Peer, now time.Time) string {
	if p == nil {
		return emptyPeers
	}
	var b strings.Builder
	fmt.Fprintf(&b, "[%s]\n", p.Address)
	fmt.Fprintf(&b, "- Role: %s\n", p.Role)
	fmt.Fprintf(&b, "- Version: %s\n", p.Version)
	fmt.Fprintf(&b, "- Latency: %s\n", latency(p.Latency))
	if len(p.Paths) == 0 {
		b.WriteString("- Paths: none")
		return b.String()
	}
	b.WriteString("- Paths:")
	for _, path := range p.Paths {
		flags := []string{}
		if path.Active {
			flags = append(flags, "active")
		}
		if path.Preferred {
			flags = append(flags, "preferred")
		}
		if path.Expired {
			flags = append(flags, "expired")
		}
		fmt.Fprintf(&b, "\n  %s [%s] last receive %s", path.Address, strings.Join(flags, ","), relative(path.LastReceive, now))
	}
	return b.String()
}

func renderControllerStatus(st *local.ControllerStatus) string {
	if st == nil {
		st = &local.ControllerStatus{}
	}
	var b strings.Builder
	b.WriteString("Controller status:\n")
	fmt.Fprintf(&b, "- Controller: %t\n", st.Controller)
	fmt.Fprintf(&b, "- API version: %d", st.APIVersion)
	return b.String()
}

func renderIDList(header string, ids []string, empty string) string {
	if len(ids) == 0 {
		return empty
	}
	var b strings.Builder
	b.WriteString(header)
	for _, id := range ids {
		b.WriteString("\n- ")
		b.WriteString(id)
	}
	return b.String()
}

func renderCentralStatus(st *central.Status) string {
	if st == nil {
		st = &central.Status{}
	}
	var b strings.Builder
	b.WriteString("Central status:\n")
	fmt.Fprintf(&b, "- Version: %s\n", st.Version)
	fmt.Fprintf(&b, "- API version: %s\n", st.APIVersion)
	if st.User != nil {
		fmt.Fprintf(&b, "- User: %s (%s)\n", st.User.DisplayName, st.User.ID)
	}
	fmt.Fprintf(&b, "- Read only: %t", st.ReadOnlyMode)
	return b.String()
}

func renderCentralNetworks(networks []central.Network) string {
	if len(networks) == 0 {
		return emptyNetworks
	}
	var b strings.Builder
	b.WriteString("Central networks:\n")
	for _, n := range networks {
		name := n.Name()
		if name == "" {
			name = "(unnamed)"
		}
		fmt.Fprintf(&b, "\n[%s] %s\n", n.ID, name)
		fmt.Fprintf(&b, "  Online: %s / Authorized: %s / Total: %s\n",
			humanize.Comma(int64(n.OnlineMemberCount)),
			humanize.Comma(int64(n.AuthorizedMemberCount)),
			humanize.Comma(int64(n.TotalMemberCount)))
	}
	return strings.TrimRight(b.String(), "\n")
}

func renderMembers(networkID string, members []central.Member, now time.Time) string {
	if len(members) == 0 {
		return emptyMembers
	}
	var b strings.Builder
	fmt.Fprintf(&b, "Members of network %s:\n", networkID)
	for _, m := range members {
		fmt.Fprintf(&b, "\n[%s] %s (%s)\n", memberNodeID(m), m.Name, authLabel(m.Authorized()))
		fmt.Fprintf(&b, "  IPs: %s\n", joinOrNone(m.IPAssignments()))
		fmt.Fprintf(&b, "  Last seen: %s\n", relative(m.LastSeen, now))
	}
	return strings.TrimRight(b.String(), "\n")
}

func renderMemberDetail(m *central.Member, now time.Time) string {
	if m == nil {
		return emptyMembers
	}
	var b strings.Builder
	fmt.Fprintf(&b, "[%s] %s\n", memberNodeID(*m), m.Name)
	fmt.Fprintf(&b, "- Network: %s\n", m.NetworkID)
	fmt.Fprintf(&b, "- Authorized: %t\n", m.Authorized())
	fmt.Fprintf(&b, "- IPs: %s\n", joinOrNone(m.IPAssignments()))
	if m.Description != "" {
		fmt.Fprintf(&b, "- Description: %s\n", m.Description)
	}
	if m.PhysicalAddress != "" {
		fmt.Fprintf(&b, "- Physical address: %s\n", m.PhysicalAddress)
	}
	if m.ClientVersion != "" {
		fmt.Fprintf(&b, "- Client version: %s\n", m.ClientVersion)
	}
	fmt.Fprintf(&b, "- Last seen: %s", relative(m.LastSeen, now))
	return b.String()
}

func memberLabel(m *central.Member, fallbackID string) string {
	if m == nil {
		return fallbackID
	}
	id := memberNodeID(*m)
	if id == "" {
		id = fallbackID
	}
	if m.Name == "" {
		return id
	}
	return fmt.Sprintf("%s (%s)", id, m.Name)
}

func memberNodeID(m central.Member) string {
	if m.NodeID != "" {
		return m.NodeID
	}
	return m.ID
}

func authLabel(authorized bool) string {
	if authorized {
		return "authorized"
	}
	return "not authorized"
}

func latency(ms int) string {
	if ms < 0 {
		return "unknown"
	}
	return fmt.Sprintf("%dms", ms)
}

func joinOrNone(values []string) string {
	if len(values) == 0 {
		return "none"
	}
	return strings.Join(values, ", ")
}

// relative renders a millisecond Unix timestamp relative to now.
func relative(ms int64, now time.Time) string {
	if ms <= 0 {
		return "never"
	}
	return humanize.RelTime(time.UnixMilli(ms), now, "ago", "from now")
}

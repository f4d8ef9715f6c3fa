package tools

import (
	"context"

	"github.com/lydakis/ztmcp/internal/zerotier/central"
)

var (
	argNetworkID = ArgSpec{Name: "network_id", Type: ArgString, Required: true, Description: "Network ID (16 hex digits)"}
	argMemberID  = ArgSpec{Name: "member_id", Type: ArgString, Required: true, Description: "Member node ID (10 hex digits)"}
	argPeerID    = ArgSpec{Name: "peer_id", Type: ArgString, Required: true, Description: "Peer node address (10 hex digits)"}
	argIPAddress = ArgSpec{Name: "ip_address", Type: ArgString, Required: true, Description: "IP address to assign, e.g. 10.147.20.100"}
)

type networkParams struct {
	NetworkID string `mapstructure:"network_id"`
}

type peerParams struct {
	PeerID string `mapstructure:"peer_id"`
}

type memberParams struct {
	NetworkID string `mapstructure:"network_id"`
	MemberID  string `mapstructure:"member_id"`
}

type memberIPParams struct {
	NetworkID string `mapstructure:"network_id"`
	MemberID  string `mapstructure:"member_id"`
	IPAddress string `mapstructure:"ip_address"`
}

// Catalog returns every tool descriptor in registration order.
func Catalog() []Descriptor {
	bindings := (&Dispatcher{}).bindings()
	out := make([]Descriptor, 0, len(bindings))
	for _, b := range bindings {
		out = append(out, b.Descriptor)
	}
	return out
}

func (d *Dispatcher) bindings() []Tool {
	return []Tool{
		{Descriptor{Name: "status", Backend: BackendLocal, Action: "Get status",
			Description: "Show the local ZeroTier node status"}, HandlerFunc(d.status)},
		{Descriptor{Name: "list-networks", Backend: BackendLocal, Action: "List networks",
			Description: "List the networks this node has joined"}, HandlerFunc(d.listNetworks)},
		{Descriptor{Name: "join-network", Backend: BackendLocal, Action: "Join network",
			Description: "Join a ZeroTier network", Args: []ArgSpec{argNetworkID}}, HandlerFunc(d.joinNetwork)},
		{Descriptor{Name: "leave-network", Backend: BackendLocal, Action: "Leave network",
			Description: "Leave a ZeroTier network", Args: []ArgSpec{argNetworkID}}, HandlerFunc(d.leaveNetwork)},
		{Descriptor{Name: "list-peers", Backend: BackendLocal, Action: "List peers",
			Description: "List the peers known to this node"}, HandlerFunc(d.listPeers)},
		{Descriptor{Name: "cloud-list-networks", Backend: BackendCloud, Action: "List Central networks",
			Description: "List networks in ZeroTier Central"}, HandlerFunc(d.cloudListNetworks)},
		{Descriptor{Name: "cloud-list-members", Backend: BackendCloud, Action: "List members",
			Description: "List members of a ZeroTier Central network", Args: []ArgSpec{argNetworkID}}, HandlerFunc(d.cloudListMembers)},
		{Descriptor{Name: "cloud-authorize-member", Backend: BackendCloud, Action: "Authorize member",
			Description: "Authorize a member of a ZeroTier Central network", Args: []ArgSpec{argNetworkID, argMemberID}}, HandlerFunc(d.cloudAuthorizeMember)},
		{Descriptor{Name: "cloud-authorize-member-with-ip", Backend: BackendCloud, Action: "Authorize member",
			Description: "Authorize a member and assign it a specific IP address", Args: []ArgSpec{argNetworkID, argMemberID, argIPAddress}}, HandlerFunc(d.cloudAuthorizeMemberWithIP)},
		{Descriptor{Name: "cloud-deauthorize-member", Backend: BackendCloud, Action: "Deauthorize member",
			Description: "Revoke a member's authorization on a ZeroTier Central network", Args: []ArgSpec{argNetworkID, argMemberID}}, HandlerFunc(d.cloudDeauthorizeMember)},

		{Descriptor{Name: "get-network", Backend: BackendLocal, Action: "Get network",
			Description: "Show one joined network in detail", Args: []ArgSpec{argNetworkID}}, HandlerFunc(d.getNetwork)},
		{Descriptor{Name: "get-peer", Backend: BackendLocal, Action: "Get peer",
			Description: "Show one peer and its paths", Args: []ArgSpec{argPeerID}}, HandlerFunc(d.getPeer)},
		{Descriptor{Name: "controller-status", Backend: BackendLocal, Action: "Get controller status",
			Description: "Show the status of the network controller embedded in this node"}, HandlerFunc(d.controllerStatus)},
		{Descriptor{Name: "controller-list-networks", Backend: BackendLocal, Action: "List controller networks",
			Description: "List networks hosted by this node's controller"}, HandlerFunc(d.controllerListNetworks)},
		{Descriptor{Name: "controller-list-members", Backend: BackendLocal, Action: "List controller members",
			Description: "List member IDs of a network hosted by this node's controller", Args: []ArgSpec{argNetworkID}}, HandlerFunc(d.controllerListMembers)},
		{Descriptor{Name: "cloud-status", Backend: BackendCloud, Action: "Get Central status",
			Description: "Show ZeroTier Central API status and the token's user"}, HandlerFunc(d.cloudStatus)},
		{Descriptor{Name: "cloud-get-member", Backend: BackendCloud, Action: "Get member",
			Description: "Show one member of a ZeroTier Central network", Args: []ArgSpec{argNetworkID, argMemberID}}, HandlerFunc(d.cloudGetMember)},
	}
}

func (d *Dispatcher) status(ctx context.Context, _ Args) (string, error) {
	st, err := d.local.Status(ctx)
	if err != nil {
		return "", err
	}
	return renderNodeStatus(st), nil
}

func (d *Dispatcher) listNetworks(ctx context.Context, _ Args) (string, error) {
	networks, err := d.local.Networks().List(ctx)
	if err != nil {
		return "", err
	}
	return renderNetworks(networks), nil
}

func (d *Dispatcher) getNetwork(ctx context.Context, args Args) (string, error) {
	var p networkParams
	if err := args.Decode(&p); err != nil {
		return "", err
	}
	n, err := d.local.Networks().Get(ctx, p.NetworkID)
	if err != nil {
		return "", err
	}
	return renderNetworkDetail(n), nil
}

func (d *Dispatcher) joinNetwork(ctx context.Context, args Args) (string, error) {
	var p networkParams
	if err := args.Decode(&p); err != nil {
		return "", err
	}
	n, err := d.local.Networks().Join(ctx, p.NetworkID)
	if err != nil {
		return "", err
	}
	return renderJoined(p.NetworkID, n), nil
}

func (d *Dispatcher) leaveNetwork(ctx context.Context, args Args) (string, error) {
	var p networkParams
	if err := args.Decode(&p); err != nil {
		return "", err
	}
	if err := d.local.Networks().Leave(ctx, p.NetworkID); err != nil {
		return "", err
	}
	return "Left network: " + p.NetworkID, nil
}

func (d *Dispatcher) listPeers(ctx context.Context, _ Args) (string, error) {
	peers, err := d.local.Peers().List(ctx)
	if err != nil {
		return "", err
	}
	return renderPeers(peers), nil
}

func (d *Dispatcher) getPeer(ctx context.Context, args Args) (string, error) {
	var p peerParams
	if err := args.Decode(&p); err != nil {
		return "", err
	}
	peer, err := d.local.Peers().Get(ctx, p.PeerID)
	if err != nil {
		return "", err
	}
	return renderPeerDetail(peer, d.now()), nil
}

func (d *Dispatcher) controllerStatus(ctx context.Context, _ Args) (string, error) {
	st, err := d.local.Controller().Status(ctx)
	if err != nil {
		return "", err
	}
	return renderControllerStatus(st), nil
}

func (d *Dispatcher) controllerListNetworks(ctx context.Context, _ Args) (string, error) {
	ids, err := d.local.Controller().ListNetworks(ctx)
	if err != nil {
		return "", err
	}
	return renderIDList("Controller networks:", ids, emptyNetworks), nil
}

func (d *Dispatcher) controllerListMembers(ctx context.Context, args Args) (string, error) {
	var p networkParams
	if err := args.Decode(&p); err != nil {
		return "", err
	}
	ids, err := d.local.Controller().ListMembers(ctx, p.NetworkID)
	if err != nil {
		return "", err
	}
	return renderIDList("Members of controller network "+p.NetworkID+":", ids, emptyMembers), nil
}

func (d *Dispatcher) cloudStatus(ctx context.Context, _ Args) (string, error) {
	st, err := d.central.Status(ctx)
	if err != nil {
		return "", err
	}
	return renderCentralStatus(st), nil
}

func (d *Dispatcher) cloudListNetworks(ctx context.Context, _ Args) (string, error) {
	networks, err := d.central.Networks().List(ctx)
	if err != nil {
		return "", err
	}
	return renderCentralNetworks(networks), nil
}

func (d *Dispatcher) members(networkID string) *central.MemberService {
	return d.central.Networks().Members(networkID)
}

func (d *Dispatcher) cloudListMembers(ctx context.Context, args Args) (string, error) {
	var p networkParams
	if err := args.Decode(&p); err != nil {
		return "", err
	}
	members, err := d.members(p.NetworkID).List(ctx)
	if err != nil {
		return "", err
	}
	return renderMembers(p.NetworkID, members, d.now()), nil
}

func (d *Dispatcher) cloudGetMember(ctx context.Context, args Args) (string, error) {
	var p memberParams
	if err := args.Decode(&p); err != nil {
		return "", err
	}
	m, err := d.members(p.NetworkID).Get(ctx, p.MemberID)
	if err != nil {
		return "", err
	}
	return renderMemberDetail(m, d.now()), nil
}

func (d *Dispatcher) cloudAuthorizeMember(ctx context.Context, args Args) (string, error) {
	var p memberParams
	if err := args.Decode(&p); err != nil {
		return "", err
	}
	m, err := d.members(p.NetworkID).Authorize(ctx, p.MemberID)
	if err != nil {
		return "", err
	}
	return "Authorized member: " + memberLabel(m, p.MemberID), nil
}

func (d *Dispatcher) cloudAuthorizeMemberWithIP(ctx context.Context, args Args) (string, error) {
	var p memberIPParams
	if err := args.Decode(&p); err != nil {
		return "", err
	}
	m, err := d.members(p.NetworkID).AuthorizeWithIP(ctx, p.MemberID, p.IPAddress)
	if err != nil {
		return "", err
	}
	return "Authorized member: " + memberLabel(m, p.MemberID) + "\nIPs: " + joinOrNone(m.IPAssignments()), nil
}

func (d *Dispatcher) cloudDeauthorizeMember(ctx context.Context, args Args) (string, error) {
	var p memberParams
	if err := args.Decode(&p); err != nil {
		return "", err
	}
	m, err := d.members(p.NetworkID).Deauthorize(ctx, p.MemberID)
	if err != nil {
		return "", err
	}
	return "Deauthorized member: " + memberLabel(m, p.MemberID), nil
}

package local

// NodeStatus is the response of GET /status.
type NodeStatus struct {
	Address           string `json:"address"`
	Clock             int64  `json:"clock"`
	Online            bool   `json:"online"`
	PlanetWorldID     int64  `json:"planetWorldId"`
	PublicIdentity    string `json:"publicIdentity"`
	TCPFallbackActive bool   `json:"tcpFallbackActive"`
	Version           string `json:"version"`
}

// Network is a network this node has joined.
type Network struct {
	ID                string   `json:"id"`
	Name              string   `json:"name"`
	Status            string   `json:"status"`
	Type              string   `json:"type"`
	MAC               string   `json:"mac"`
	MTU               int      `json:"mtu"`
	Bridge            bool     `json:"bridge"`
	BroadcastEnabled  bool     `json:"broadcastEnabled"`
	PortDeviceName    string   `json:"portDeviceName"`
	NetconfRevision   int      `json:"netconfRevision"`
	AssignedAddresses []string `json:"assignedAddresses"`
	AllowDNS          bool     `json:"allowDNS"`
	AllowDefault      bool     `json:"allowDefault"`
	AllowGlobal       bool     `json:"allowGlobal"`
	AllowManaged      bool     `json:"allowManaged"`
	DNS               *DNS     `json:"dns,omitempty"`
}

// DNS is the DNS configuration pushed by a network controller.
type DNS struct {
	Domain  string   `json:"domain"`
	Servers []string `json:"servers"`
}

// NetworkSettings is a partial update of local network flags. Nil fields
// are omitted from the request body.
type NetworkSettings struct {
	AllowDNS     *bool `json:"allowDNS,omitempty"`
	AllowDefault *bool `json:"allowDefault,omitempty"`
	AllowGlobal  *bool `json:"allowGlobal,omitempty"`
	AllowManaged *bool `json:"allowManaged,omitempty"`
}

// Peer is a node this node knows about.
type Peer struct {
	Address string     `json:"address"`
	Version string     `json:"version"`
	Role    string     `json:"role"`
	Latency int        `json:"latency"`
	Paths   []PeerPath `json:"paths"`
}

// PeerPath is one physical path to a peer.
type PeerPath struct {
	Active        bool   `json:"active"`
	Address       string `json:"address"`
	Expired       bool   `json:"expired"`
	LastReceive   int64  `json:"lastReceive"`
	LastSend      int64  `json:"lastSend"`
	Preferred     bool   `json:"preferred"`
	TrustedPathID int64  `json:"trustedPathId"`
}

// ControllerStatus is the response of GET /controller.
type ControllerStatus struct {
	Controller bool  `json:"controller"`
	APIVersion int   `json:"apiVersion"`
	Clock      int64 `json:"clock"`
}

// ControllerNetwork is a network defined on the self-hosted controller.
type ControllerNetwork struct {
	ID                string             `json:"id"`
	Name              string             `json:"name"`
	Private           bool               `json:"private"`
	CreationTime      int64              `json:"creationTime"`
	Revision          int                `json:"revision"`
	MulticastLimit    int                `json:"multicastLimit"`
	EnableBroadcast   bool               `json:"enableBroadcast"`
	Routes            []Route            `json:"routes"`
	IPAssignmentPools []IPAssignmentPool `json:"ipAssignmentPools"`
	V4AssignMode      *AssignMode        `json:"v4AssignMode,omitempty"`
	V6AssignMode      *AssignMode        `json:"v6AssignMode,omitempty"`
}

// Route is a managed route.
type Route struct {
	Target string  `json:"target"`
	Via    *string `json:"via,omitempty"`
}

// IPAssignmentPool is an inclusive address range.
type IPAssignmentPool struct {
	IPRangeStart string `json:"ipRangeStart"`
	IPRangeEnd   string `json:"ipRangeEnd"`
}

// AssignMode toggles automatic address assignment.
type AssignMode struct {
	ZT bool `json:"zt"`
}

// ControllerMember is a member record on the self-hosted controller.
type ControllerMember struct {
	ID                   string   `json:"id"`
	Address              string   `json:"address"`
	NetworkID            string   `json:"nwid"`
	Authorized           bool     `json:"authorized"`
	ActiveBridge         bool     `json:"activeBridge"`
	IPAssignments        []string `json:"ipAssignments"`
	NoAutoAssignIPs      bool     `json:"noAutoAssignIps"`
	Revision             int      `json:"revision"`
	CreationTime         int64    `json:"creationTime"`
	LastAuthorizedTime   int64    `json:"lastAuthorizedTime"`
	LastDeauthorizedTime int64    `json:"lastDeauthorizedTime"`
}

// ControllerNetworkConfig is a partial create/update body. Nil fields are
// left to the controller's defaults.
type ControllerNetworkConfig struct {
	Name              *string             `json:"name,omitempty"`
	Private           *bool               `json:"private,omitempty"`
	EnableBroadcast   *bool               `json:"enableBroadcast,omitempty"`
	MulticastLimit    *int                `json:"multicastLimit,omitempty"`
	Routes            *[]Route            `json:"routes,omitempty"`
	IPAssignmentPools *[]IPAssignmentPool `json:"ipAssignmentPools,omitempty"`
	V4AssignMode      *AssignMode         `json:"v4AssignMode,omitempty"`
	V6AssignMode      *AssignMode         `json:"v6AssignMode,omitempty"`
}

// ControllerMemberConfig is a partial member update body.
type ControllerMemberConfig struct {
	Authorized      *bool     `json:"authorized,omitempty"`
	ActiveBridge    *bool     `json:"activeBridge,omitempty"`
	IPAssignments   *[]string `json:"ipAssignments,omitempty"`
	NoAutoAssignIPs *bool     `json:"noAutoAssignIps,omitempty"`
}

// Bool returns a pointer to v, for partial-update fields.
func Bool(v bool) *bool { return &v }

// String returns a pointer to v, for partial-update fields.
func String(v string) *string { return &v }

// Int returns a pointer to v, for partial-update fields.
func Int(v int) *int { return &v }

// Strings returns a pointer to v. A pointer to an empty slice sends [].
func Strings(v ...string) *[]string {
	if v == nil {
		v = []string{}
	}
	return &v
}

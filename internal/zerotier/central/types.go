package central

// Central frequently returns null for strings, lists and maps. encoding/json
// leaves the Go zero value in place for null, so the record types below can
// be plain values.

// Status is the response of GET /status.
type Status struct {
	ID           string          `json:"id"`
	Type         string          `json:"type"`
	Clock        int64           `json:"clock"`
	Version      string          `json:"version"`
	APIVersion   string          `json:"apiVersion"`
	Uptime       int64           `json:"uptime"`
	User         *StatusUser     `json:"user"`
	ReadOnlyMode bool            `json:"readOnlyMode"`
	LoginMethods map[string]bool `json:"loginMethods"`
}

// StatusUser is the account owning the API token.
type StatusUser struct {
	ID          string `json:"id"`
	OrgID       string `json:"orgId"`
	DisplayName string `json:"displayName"`
	SMSNumber   string `json:"smsNumber"`
}

// Network is a Central network.
type Network struct {
	ID                    string         `json:"id"`
	Clock                 int64          `json:"clock"`
	Config                *NetworkConfig `json:"config"`
	Description           string         `json:"description"`
	RulesSource           string         `json:"rulesSource"`
	OwnerID               string         `json:"ownerId"`
	OnlineMemberCount     int            `json:"onlineMemberCount"`
	AuthorizedMemberCount int            `json:"authorizedMemberCount"`
	TotalMemberCount      int            `json:"totalMemberCount"`
	CapabilitiesByName    map[string]int `json:"capabilitiesByName"`
	TagsByName            map[string]int `json:"tagsByName"`
}

// Name returns the configured network name, or "".
func (n Network) Name() string {
	if n.Config == nil {
		return ""
	}
	return n.Config.Name
}

// NetworkConfig is the controller-side network definition.
type NetworkConfig struct {
	ID                string             `json:"id"`
	Name              string             `json:"name"`
	Private           bool               `json:"private"`
	CreationTime      int64              `json:"creationTime"`
	LastModified      int64              `json:"lastModified"`
	EnableBroadcast   bool               `json:"enableBroadcast"`
	MTU               int                `json:"mtu"`
	MulticastLimit    int                `json:"multicastLimit"`
	Routes            []Route            `json:"routes"`
	IPAssignmentPools []IPAssignmentPool `json:"ipAssignmentPools"`
	V4AssignMode      *AssignMode        `json:"v4AssignMode"`
	V6AssignMode      *AssignMode        `json:"v6AssignMode"`
	DNS               *DNS               `json:"dns"`
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
	ZT       bool `json:"zt"`
	RFC4193  bool `json:"rfc4193,omitempty"`
	SixPlane bool `json:"6plane,omitempty"`
}

// DNS is the pushed DNS configuration.
type DNS struct {
	Domain  string   `json:"domain"`
	Servers []string `json:"servers"`
}

// Member is a device that joined or requested to join a network.
type Member struct {
	ID                  string        `json:"id"`
	NetworkID           string        `json:"networkId"`
	NodeID              string        `json:"nodeId"`
	Name                string        `json:"name"`
	Description         string        `json:"description"`
	Config              *MemberConfig `json:"config"`
	LastOnline          int64         `json:"lastOnline"`
	LastSeen            int64         `json:"lastSeen"`
	PhysicalAddress     string        `json:"physicalAddress"`
	ClientVersion       string        `json:"clientVersion"`
	ProtocolVersion     int           `json:"protocolVersion"`
	SupportsRulesEngine bool          `json:"supportsRulesEngine"`
}

// Authorized reports the member's authorization flag; false when the
// config block is absent.
func (m Member) Authorized() bool {
	return m.Config != nil && m.Config.Authorized
}

// IPAssignments returns the member's managed addresses.
func (m Member) IPAssignments() []string {
	if m.Config == nil {
		return nil
	}
	return m.Config.IPAssignments
}

// MemberConfig is the controller-side member definition.
type MemberConfig struct {
	Authorized      bool     `json:"authorized"`
	ActiveBridge    bool     `json:"activeBridge"`
	NoAutoAssignIPs bool     `json:"noAutoAssignIps"`
	CreationTime    int64    `json:"creationTime"`
	IPAssignments   []string `json:"ipAssignments"`
	SSOExempt       bool     `json:"ssoExempt"`
}

// NetworkRequest wraps a network create/update body.
type NetworkRequest struct {
	Config *NetworkConfigUpdate `json:"config,omitempty"`
}

// NetworkConfigUpdate is a partial network config. Nil fields are omitted.
type NetworkConfigUpdate struct {
	Name              *string             `json:"name,omitempty"`
	Private           *bool               `json:"private,omitempty"`
	EnableBroadcast   *bool               `json:"enableBroadcast,omitempty"`
	MTU               *int                `json:"mtu,omitempty"`
	MulticastLimit    *int                `json:"multicastLimit,omitempty"`
	Routes            *[]Route            `json:"routes,omitempty"`
	IPAssignmentPools *[]IPAssignmentPool `json:"ipAssignmentPools,omitempty"`
	V4AssignMode      *AssignMode         `json:"v4AssignMode,omitempty"`
	V6AssignMode      *AssignMode         `json:"v6AssignMode,omitempty"`
	DNS               *DNS                `json:"dns,omitempty"`
}

// UpdateMemberRequest is a partial member update. Nil fields are omitted.
type UpdateMemberRequest struct {
	Name        *string             `json:"name,omitempty"`
	Description *string             `json:"description,omitempty"`
	Config      *MemberConfigUpdate `json:"config,omitempty"`
}

// MemberConfigUpdate is a partial member config.
type MemberConfigUpdate struct {
	Authorized      *bool     `json:"authorized,omitempty"`
	ActiveBridge    *bool     `json:"activeBridge,omitempty"`
	NoAutoAssignIPs *bool     `json:"noAutoAssignIps,omitempty"`
	IPAssignments   *[]string `json:"ipAssignments,omitempty"`
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

package local

import (
	"context"
	"encoding/json"
	"io"
	"net/http"
	"net/http/httptest"
	"sync"
	"testing"

	"github.com/lydakis/ztmcp/internal/rest"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

type recordedRequest struct {
	Method string
	Path   string
	Auth   string
	Body   string
}

type fakeService struct {
	mu       sync.Mutex
	requests []recordedRequest
	routes   map[string]func(w http.ResponseWriter)
}

func newFakeService(t *testing.T, routes map[string]func(w http.ResponseWriter)) (*fakeService, *Client) {
	t.Helper()
	f := &fakeService{routes: routes}
	srv := httptest.NewServer(f)
	t.Cleanup(srv.Close)
	return f, New(Options{BaseURL: srv.URL, Token: "authtoken"})
}

func (f *fakeService) ServeHTTP(w http.ResponseWriter, r *http.Request) {
	body, _ := io.ReadAll(r.Body)
	f.mu.Lock()
	f.requests = append(f.requests, recordedRequest{
		Method: r.Method,
		Path:   r.URL.EscapedPath(),
		Auth:   r.Header.Get(AuthHeader),
		Body:   string(body),
	})
	f.mu.Unlock()

	if route, ok := f.routes[r.Method+" "+r.URL.EscapedPath()]; ok {
		route(w)
		return
	}
	w.WriteHeader(http.StatusNotFound)
	_, _ = io.WriteString(w, `{}`)
}

func (f *fakeService) last() recordedRequest {
	f.mu.Lock()
	defer f.mu.Unlock()
	return f.requests[len(f.requests)-1]
}

func respond(body string) func(w http.ResponseWriter) {
	return func(w http.ResponseWriter) {
		_, _ = io.WriteString(w, body)
	}
}

func TestStatusSendsAuthHeader(t *testing.T) {
	f, c := newFakeService(t, map[string]func(http.ResponseWriter){
		"GET /status": respond(`{"address":"abcd1234","version":"1.10.1","online":true,"tcpFallbackActive":false}`),
	})

	status, err := c.Status(context.Background())
	require.NoError(t, err)
	assert.Equal(t, "abcd1234", status.Address)
	assert.Equal(t, "1.10.1", status.Version)
	assert.True(t, status.Online)
	assert.Equal(t, "authtoken", f.last().Auth)
}

func TestNewAppliesDefaults(t *testing.T) {
	c := New(Options{})
	assert.Equal(t, DefaultBaseURL, c.Backend().BaseURL())
	assert.Equal(t, DefaultTimeout, c.Backend().Timeout())
	assert.Equal(t, "local", c.Backend().Name())
}

func TestNetworksListPreservesOrderAndEmpty(t *testing.T) {
	_, c := newFakeService(t, map[string]func(http.ResponseWriter){
		"GET /network": respond(`[{"id":"b"},{"id":"a"}]`),
	})
	networks, err := c.Networks().List(context.Background())
	require.NoError(t, err)
	require.Len(t, networks, 2)
	assert.Equal(t, "b", networks[0].ID)
	assert.Equal(t, "a", networks[1].ID)

	_, empty := newFakeService(t, map[string]func(http.ResponseWriter){
		"GET /network": respond(`[]`),
	})
	networks, err = empty.Networks().List(context.Background())
	require.NoError(t, err)
	assert.Empty(t, networks)
}

func TestNetworksJoinPostsEmptyObjectAndLeaveDeletes(t *testing.T) {
	f, c := newFakeService(t, map[string]func(http.ResponseWriter){
		"POST /network/8056c2e21c000001":   respond(`{"id":"8056c2e21c000001","name":"earth"}`),
		"DELETE /network/8056c2e21c000001": respond(`{"result":true}`),
	})

	network, err := c.Networks().Join(context.Background(), "8056c2e21c000001")
	require.NoError(t, err)
	assert.Equal(t, "earth", network.Name)
	assert.JSONEq(t, `{}`, f.last().Body)

	require.NoError(t, c.Networks().Leave(context.Background(), "8056c2e21c000001"))
	assert.Equal(t, http.MethodDelete, f.last().Method)
	assert.Empty(t, f.last().Body)
}

func TestNetworksGetMissingIsAPIError404(t *testing.T) {
	_, c := newFakeService(t, nil)
	_, err := c.Networks().Get(context.Background(), "deadbeef00000000")
	assert.True(t, rest.IsNotFound(err))
}

func TestNetworksUpdateSendsOnlySetFields(t *testing.T) {
	f, c := newFakeService(t, map[string]func(http.ResponseWriter){
		"POST /network/abcd": respond(`{"id":"abcd","allowDNS":true}`),
	})
	_, err := c.Networks().Update(context.Background(), "abcd", NetworkSettings{AllowDNS: Bool(true), AllowGlobal: Bool(false)})
	require.NoError(t, err)
	assert.JSONEq(t, `{"allowDNS":true,"allowGlobal":false}`, f.last().Body)
}

func TestPeersListAndGet(t *testing.T) {
	f, c := newFakeService(t, map[string]func(http.ResponseWriter){
		"GET /peer":            respond(`[{"address":"1111111111","role":"PLANET","latency":12}]`),
		"GET /peer/1111111111": respond(`{"address":"1111111111","role":"PLANET","paths":[{"address":"1.2.3.4/9993","active":true}]}`),
	})

	peers, err := c.Peers().List(context.Background())
	require.NoError(t, err)
	require.Len(t, peers, 1)
	assert.Equal(t, 12, peers[0].Latency)

	peer, err := c.Peers().Get(context.Background(), "1111111111")
	require.NoError(t, err)
	require.Len(t, peer.Paths, 1)
	assert.True(t, peer.Paths[0].Active)
	assert.Equal(t, "/peer/1111111111", f.last().Path)
}

func TestControllerCreateNetworkDerivesID(t *testing.T) {
	f, c := newFakeService(t, map[string]func(http.ResponseWriter){
		"POST /controller/network/abcdef0123______": respond(`{"id":"abcdef0123000001","name":"lab"}`),
	})

	network, err := c.Controller().CreateNetwork(context.Background(), "abcdef0123", nil)
	require.NoError(t, err)
	assert.Equal(t, "abcdef0123000001", network.ID)
	assert.Equal(t, "/controller/network/abcdef0123______", f.last().Path)
	assert.JSONEq(t, `{}`, f.last().Body)

	_, err = c.Controller().CreateNetwork(context.Background(), "abcdef0123", &ControllerNetworkConfig{Name: String("lab"), Private: Bool(true)})
	require.NoError(t, err)
	assert.JSONEq(t, `{"name":"lab","private":true}`, f.last().Body)
}

func TestNewNetworkIDAppendsSixUnderscores(t *testing.T) {
	assert.Equal(t, "abcdef0123______", NewNetworkID("abcdef0123"))
}

func TestControllerCreateNetworkRequiresNodeID(t *testing.T) {
	f, c := newFakeService(t, nil)
	_, err := c.Controller().CreateNetwork(context.Background(), "  ", nil)
	require.Error(t, err)
	assert.Empty(t, f.requests)
}

func TestControllerAuthorizeMemberSendsOnlyAuthorized(t *testing.T) {
	f, c := newFakeService(t, map[string]func(http.ResponseWriter){
		"POST /controller/network/net1/member/mem1": respond(`{"id":"mem1","authorized":true,"ipAssignments":["10.0.0.9"]}`),
	})

	member, err := c.Controller().AuthorizeMember(context.Background(), "net1", "mem1")
	require.NoError(t, err)
	assert.True(t, member.Authorized)
	assert.JSONEq(t, `{"authorized":true}`, f.last().Body)

	_, err = c.Controller().DeauthorizeMember(context.Background(), "net1", "mem1")
	require.NoError(t, err)
	assert.JSONEq(t, `{"authorized":false}`, f.last().Body)
}

func TestControllerUpdateMemberExplicitEmptyIPs(t *testing.T) {
	f, c := newFakeService(t, map[string]func(http.ResponseWriter){
		"POST /controller/network/net1/member/mem1": respond(`{"id":"mem1"}`),
	})
	_, err := c.Controller().UpdateMember(context.Background(), "net1", "mem1", ControllerMemberConfig{IPAssignments: Strings()})
	require.NoError(t, err)
	assert.JSONEq(t, `{"ipAssignments":[]}`, f.last().Body)
}

func TestControllerListMembersAcceptsRevisionMap(t *testing.T) {
	_, c := newFakeService(t, map[string]func(http.ResponseWriter){
		"GET /controller/network/net1/member": respond(`{"ffff000002":3,"aaaa000001":1}`),
		"GET /controller/network":             respond(`["net1","net2"]`),
	})

	members, err := c.Controller().ListMembers(context.Background(), "net1")
	require.NoError(t, err)
	assert.Equal(t, []string{"aaaa000001", "ffff000002"}, members)

	networks, err := c.Controller().ListNetworks(context.Background())
	require.NoError(t, err)
	assert.Equal(t, []string{"net1", "net2"}, networks)
}

func TestControllerListMembersRejectsScalar(t *testing.T) {
	_, c := newFakeService(t, map[string]func(http.ResponseWriter){
		"GET /controller/network/net1/member": respond(`42`),
	})
	_, err := c.Controller().ListMembers(context.Background(), "net1")
	var decodeErr *rest.DecodeError
	assert.ErrorAs(t, err, &decodeErr)
}

func TestControllerDeleteMember(t *testing.T) {
	f, c := newFakeService(t, map[string]func(http.ResponseWriter){
		"DELETE /controller/network/net1/member/mem1": respond(`{"id":"mem1"}`),
	})
	require.NoError(t, c.Controller().DeleteMember(context.Background(), "net1", "mem1"))
	assert.Equal(t, http.MethodDelete, f.last().Method)
}

func TestControllerNetworkConfigOmitsUnset(t *testing.T) {
	data, err := json.Marshal(ControllerNetworkConfig{MulticastLimit: Int(32)})
	require.NoError(t, err)
	assert.JSONEq(t, `{"multicastLimit":32}`, string(data))
}

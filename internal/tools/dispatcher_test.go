package tools

import (
	"context"
	"errors"
	"net/http"
	"strings"
	"sync"
	"testing"

	"github.com/mark3labs/mcp-go/mcp"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/lydakis/ztmcp/internal/rest"
)

func TestCatalogStartsWithCanonicalTools(t *testing.T) {
	want := []string{
		"status", "list-networks", "join-network", "leave-network", "list-peers",
		"cloud-list-networks", "cloud-list-members", "cloud-authorize-member",
		"cloud-authorize-member-with-ip", "cloud-deauthorize-member",
	}

	catalog := Catalog()
	require.GreaterOrEqual(t, len(catalog), len(want))

	seen := map[string]bool{}
	for i, d := range catalog {
		if i < len(want) {
			assert.Equal(t, want[i], d.Name)
		}
		assert.False(t, seen[d.Name], "duplicate tool %q", d.Name)
		seen[d.Name] = true
		assert.NotEmpty(t, d.Action, d.Name)
		assert.Equal(t, strings.HasPrefix(d.Name, "cloud-"), d.Backend == BackendCloud, d.Name)
	}
}

func TestInvokeMissingRequiredArgumentIsRejectedWithoutNetworkCall(t *testing.T) {
	localAPI := newFakeAPI(t, nil)
	centralAPI := newFakeAPI(t, nil)
	d := newTestDispatcher(t, localAPI, centralAPI)

	for _, desc := range d.Descriptors() {
		if len(desc.Args) == 0 {
			continue
		}
		out := d.Invoke(context.Background(), desc.Name, map[string]any{})

		assert.Equal(t, StateRejected, out.State, desc.Name)
		assert.Equal(t, KindValidation, out.Kind, desc.Name)
		assert.True(t, errors.Is(out.Err, mcp.ErrInvalidParams), desc.Name)
		assert.Contains(t, out.Text, "missing required argument", desc.Name)
	}

	assert.Zero(t, localAPI.calls.Load())
	assert.Zero(t, centralAPI.calls.Load())
}

func TestInvokeRejectsUnknownToolArgumentAndType(t *testing.T) {
	localAPI := newFakeAPI(t, nil)
	d := newTestDispatcher(t, localAPI, nil)
	ctx := context.Background()

	out := d.Invoke(ctx, "format-disk", nil)
	assert.Equal(t, StateRejected, out.State)
	assert.True(t, errors.Is(out.Err, ErrUnknownTool))
	assert.Equal(t, "Unknown tool: format-disk", out.Text)

	out = d.Invoke(ctx, "join-network", map[string]any{"network_id": 42})
	assert.Equal(t, StateRejected, out.State)
	assert.Contains(t, out.Text, `argument "network_id" must be string`)

	out = d.Invoke(ctx, "status", map[string]any{"verbose": true})
	assert.Equal(t, StateRejected, out.State)
	assert.Contains(t, out.Text, `unknown argument "verbose"`)

	out = d.Invoke(ctx, "join-network", map[string]any{"network_id": "   "})
	assert.Equal(t, StateRejected, out.State)

	assert.Zero(t, localAPI.calls.Load())
}

func TestInvokeCloudToolWithoutCredentialFailsWithoutNetworkCall(t *testing.T) {
	localAPI := newFakeAPI(t, nil)
	d := newTestDispatcher(t, localAPI, nil)
	require.False(t, d.CloudConfigured())

	args := map[string]any{
		"network_id": "8056c2e21c000001",
		"member_id":  "1234567890",
		"ip_address": "10.0.0.5",
	}
	for _, desc := range d.Descriptors() {
		if desc.Backend != BackendCloud {
			continue
		}
		callArgs := map[string]any{}
		for _, a := range desc.Args {
			callArgs[a.Name] = args[a.Name]
		}

		out := d.Invoke(context.Background(), desc.Name, callArgs)

		assert.Equal(t, StateFailed, out.State, desc.Name)
		assert.Equal(t, KindNotConfigured, out.Kind, desc.Name)
		assert.True(t, errors.Is(out.Err, ErrNotConfigured), desc.Name)
		assert.Equal(t, NotConfiguredMessage, out.Text, desc.Name)
	}

	assert.Zero(t, localAPI.calls.Load())
}

func TestInvokeStatusRendersNodeFields(t *testing.T) {
	localAPI := newFakeAPI(t, map[string]fakeRoute{
		"GET /status": {body: `{"address":"abcd1234","version":"1.10.1","online":true,"tcpFallbackActive":false}`},
	})
	d := newTestDispatcher(t, localAPI, nil)

	out := d.Invoke(context.Background(), "status", nil)

	require.Equal(t, StateRendered, out.State, out.Text)
	assert.True(t, out.OK())
	assert.NotEmpty(t, out.InvocationID)
	assert.Equal(t, "Node status:\n- Address: abcd1234\n- Version: 1.10.1\n- Online: true\n- TCP fallback: false", out.Text)
	assert.EqualValues(t, 1, localAPI.calls.Load())
}

func TestInvokeEmptyListsRenderFixedSentences(t *testing.T) {
	localAPI := newFakeAPI(t, map[string]fakeRoute{
		"GET /network":                        {body: `[]`},
		"GET /peer":                           {body: `[]`},
		"GET /controller/network":             {body: `[]`},
		"GET /controller/network/abcd/member": {body: `{}`},
	})
	centralAPI := newFakeAPI(t, map[string]fakeRoute{
		"GET /network":             {body: `[]`},
		"GET /network/abcd/member": {body: `null`},
	})
	d := newTestDispatcher(t, localAPI, centralAPI)
	ctx := context.Background()

	tests := []struct {
		tool string
		args map[string]any
		want string
	}{
		{"list-networks", nil, "No networks joined."},
		{"list-peers", nil, "No peers found."},
		{"controller-list-networks", nil, "No networks found."},
		{"controller-list-members", map[string]any{"network_id": "abcd"}, "No members found."},
		{"cloud-list-networks", nil, "No networks found."},
		{"cloud-list-members", map[string]any{"network_id": "abcd"}, "No members found."},
	}
	for _, tt := range tests {
		out := d.Invoke(ctx, tt.tool, tt.args)
		assert.Equal(t, StateRendered, out.State, tt.tool)
		assert.Equal(t, tt.want, out.Text, tt.tool)
	}
}

func TestInvokeListsPreserveBackendOrder(t *testing.T) {
	localAPI := newFakeAPI(t, map[string]fakeRoute{
		"GET /network": {body: `[
			{"id":"ffff000000000002","name":"zeta","status":"OK","assignedAddresses":["10.0.0.2/24"]},
			{"id":"aaaa000000000001","name":"alpha","status":"REQUESTING_CONFIGURATION","assignedAddresses":[]}
		]`},
		"GET /peer": {body: `[
			{"address":"ffffffffff","role":"LEAF","version":"1.10.1","latency":12},
			{"address":"1111111111","role":"PLANET","version":"-1","latency":-1}
		]`},
	})
	d := newTestDispatcher(t, localAPI, nil)
	ctx := context.Background()

	out := d.Invoke(ctx, "list-networks", nil)
	require.Equal(t, StateRendered, out.State)
	assert.Less(t, strings.Index(out.Text, "zeta"), strings.Index(out.Text, "alpha"))
	assert.Contains(t, out.Text, "[ffff000000000002] zeta\n  Status: OK\n  IPs: 10.0.0.2/24")
	assert.Contains(t, out.Text, "IPs: none")

	out = d.Invoke(ctx, "list-peers", nil)
	require.Equal(t, StateRendered, out.State)
	assert.Less(t, strings.Index(out.Text, "ffffffffff"), strings.Index(out.Text, "1111111111"))
	assert.Contains(t, out.Text, "Latency: 12ms")
	assert.Contains(t, out.Text, "Latency: unknown")
}

func TestInvokeAuthorizeWithIPRendersAssignedAddress(t *testing.T) {
	localAPI := newFakeAPI(t, nil)
	centralAPI := newFakeAPI(t, map[string]fakeRoute{
		"POST /network/abcd/member/1234": {body: `{"id":"abcd-1234","nodeId":"1234","name":"laptop","config":{"authorized":true,"ipAssignments":["10.0.0.5"]}}`},
	})
	d := newTestDispatcher(t, localAPI, centralAPI)

	out := d.Invoke(context.Background(), "cloud-authorize-member-with-ip", map[string]any{
		"network_id": "abcd",
		"member_id":  "1234",
		"ip_address": "10.0.0.5",
	})

	require.Equal(t, StateRendered, out.State, out.Text)
	assert.Equal(t, "Authorized member: 1234 (laptop)\nIPs: 10.0.0.5", out.Text)
	assert.JSONEq(t, `{"config":{"authorized":true,"ipAssignments":["10.0.0.5"]}}`, centralAPI.body("POST /network/abcd/member/1234"))
	assert.Zero(t, localAPI.calls.Load())
}

func TestInvokeAuthorizeSendsOnlyAuthorizedFlag(t *testing.T) {
	centralAPI := newFakeAPI(t, map[string]fakeRoute{
		"POST /network/abcd/member/1234": {body: `{"nodeId":"1234","config":{"authorized":false,"ipAssignments":["10.0.0.9"]}}`},
	})
	d := newTestDispatcher(t, newFakeAPI(t, nil), centralAPI)
	ctx := context.Background()

	out := d.Invoke(ctx, "cloud-authorize-member", map[string]any{"network_id": "abcd", "member_id": "1234"})
	require.Equal(t, StateRendered, out.State)
	assert.Equal(t, "Authorized member: 1234", out.Text)
	assert.JSONEq(t, `{"config":{"authorized":true}}`, centralAPI.body("POST /network/abcd/member/1234"))

	out = d.Invoke(ctx, "cloud-deauthorize-member", map[string]any{"network_id": "abcd", "member_id": "1234"})
	require.Equal(t, StateRendered, out.State)
	assert.Equal(t, "Deauthorized member: 1234", out.Text)
	assert.JSONEq(t, `{"config":{"authorized":false}}`, centralAPI.body("POST /network/abcd/member/1234"))
}

func TestInvokeAPIErrorRendersStatusAndBody(t *testing.T) {
	localAPI := newFakeAPI(t, map[string]fakeRoute{
		"POST /network/deadbeef00000000": {status: http.StatusUnauthorized, body: `{"message":"bad token"}`},
	})
	d := newTestDispatcher(t, localAPI, nil)

	out := d.Invoke(context.Background(), "join-network", map[string]any{"network_id": "deadbeef00000000"})

	assert.Equal(t, StateFailed, out.State)
	assert.Equal(t, KindAPI, out.Kind)
	assert.Equal(t, http.StatusUnauthorized, rest.StatusCode(out.Err))
	assert.Equal(t, `Join network failed: HTTP 401: {"message":"bad token"}`, out.Text)
}

func TestInvokeLeaveMissingNetworkSurfaces404(t *testing.T) {
	localAPI := newFakeAPI(t, nil)
	d := newTestDispatcher(t, localAPI, nil)

	out := d.Invoke(context.Background(), "leave-network", map[string]any{"network_id": "0000000000000000"})

	assert.Equal(t, StateFailed, out.State)
	assert.True(t, rest.IsNotFound(out.Err))
	assert.True(t, strings.HasPrefix(out.Text, "Leave network failed: HTTP 404"))
}

func TestInvokeTransportAndDecodingFailures(t *testing.T) {
	localAPI := newFakeAPI(t, map[string]fakeRoute{
		"GET /peer": {body: `{"not":"a list"`},
	})
	d := newTestDispatcher(t, localAPI, nil)

	out := d.Invoke(context.Background(), "list-peers", nil)
	assert.Equal(t, StateFailed, out.State)
	assert.Equal(t, KindDecoding, out.Kind)
	assert.True(t, strings.HasPrefix(out.Text, "List peers failed: unexpected response from the local API"))

	localAPI.server.Close()
	out = d.Invoke(context.Background(), "status", nil)
	assert.Equal(t, StateFailed, out.State)
	assert.Equal(t, KindTransport, out.Kind)
	assert.True(t, strings.HasPrefix(out.Text, "Get status failed: could not reach the local API"))
}

func TestInvokeRecoversHandlerPanic(t *testing.T) {
	d := newTestDispatcher(t, newFakeAPI(t, nil), nil)
	d.registry.Register(Tool{
		Descriptor: Descriptor{Name: "boom", Backend: BackendLocal, Action: "Explode"},
		Handler: HandlerFunc(func(context.Context, Args) (string, error) {
			panic("kaboom")
		}),
	})

	out := d.Invoke(context.Background(), "boom", nil)

	assert.Equal(t, StateFailed, out.State)
	assert.Equal(t, KindInternal, out.Kind)
	assert.Equal(t, "Explode failed: panic: kaboom", out.Text)
}

func TestInvokeConcurrentCallsAreIndependent(t *testing.T) {
	localAPI := newFakeAPI(t, map[string]fakeRoute{
		"GET /status": {body: `{"address":"abcd1234","version":"1.10.1","online":true}`},
	})
	d := newTestDispatcher(t, localAPI, nil)

	const n = 16
	ids := make([]string, n)
	var wg sync.WaitGroup
	for i := 0; i < n; i++ {
		wg.Add(1)
		go func(i int) {
			defer wg.Done()
			out := d.Invoke(context.Background(), "status", nil)
			assert.Equal(t, StateRendered, out.State)
			ids[i] = out.InvocationID
		}(i)
	}
	wg.Wait()

	seen := map[string]bool{}
	for _, id := range ids {
		assert.False(t, seen[id], "invocation id reused")
		seen[id] = true
	}
	assert.EqualValues(t, n, localAPI.calls.Load())
}

func TestWithDisabledToolsRemovesMatches(t *testing.T) {
	d := newTestDispatcher(t, newFakeAPI(t, nil), nil, WithDisabledTools([]string{"cloud-*", "leave-network"}))

	for _, desc := range d.Descriptors() {
		assert.NotEqual(t, BackendCloud, desc.Backend, desc.Name)
		assert.NotEqual(t, "leave-network", desc.Name)
	}
	out := d.Invoke(context.Background(), "leave-network", map[string]any{"network_id": "abcd"})
	assert.Equal(t, StateRejected, out.State)
}

func TestNewRejectsBadPatternAndMissingLocal(t *testing.T) {
	localAPI := newFakeAPI(t, nil)
	_, err := New(nil, nil)
	assert.Error(t, err)

	lc := newTestDispatcher(t, localAPI, nil).local
	_, err = New(lc, nil, WithDisabledTools([]string{"["}))
	assert.Error(t, err)
}

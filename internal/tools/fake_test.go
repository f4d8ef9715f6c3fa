package tools

import (
	"io"
	"net/http"
	"net/http/httptest"
	"sync"
	"sync/atomic"
	"testing"
	"time"

	"github.com/stretchr/testify/require"

	"github.com/lydakis/ztmcp/internal/zerotier/central"
	"github.com/lydakis/ztmcp/internal/zerotier/local"
)

type fakeRoute struct {
	status int
	body   string
}

// fakeAPI answers "METHOD /path" routes and counts every request it sees.
type fakeAPI struct {
	server *httptest.Server
	calls  atomic.Int32

	mu     sync.Mutex
	routes map[string]fakeRoute
	bodies map[string]string
}

func newFakeAPI(t *testing.T, routes map[string]fakeRoute) *fakeAPI {
	t.Helper()
	f := &fakeAPI{routes: routes, bodies: map[string]string{}}
	f.server = httptest.NewServer(http.HandlerFunc(f.serve))
	t.Cleanup(f.server.Close)
	return f
}

func (f *fakeAPI) serve(w http.ResponseWriter, r *http.Request) {
	f.calls.Add(1)
	key := r.Method + " " + r.URL.Path
	body, _ := io.ReadAll(r.Body)

	f.mu.Lock()
	f.bodies[key] = string(body)
	route, ok := f.routes[key]
	f.mu.Unlock()

	if !ok {
		w.WriteHeader(http.StatusNotFound)
		_, _ = io.WriteString(w, `{"message":"not found"}`)
		return
	}
	if route.status == 0 {
		route.status = http.StatusOK
	}
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(route.status)
	_, _ = io.WriteString(w, route.body)
}

func (f *fakeAPI) body(key string) string {
	f.mu.Lock()
	defer f.mu.Unlock()
	return f.bodies[key]
}

var testNow = time.Date(2026, 10, 18, 12, 0, 0, 0, time.UTC)

func newTestDispatcher(t *testing.T, localAPI, centralAPI *fakeAPI, opts ...Option) *Dispatcher {
	t.Helper()
	lc := local.New(local.Options{BaseURL: localAPI.server.URL, Token: "local-secret"})

	var cc *central.Client
	if centralAPI != nil {
		cc = central.New(central.Options{BaseURL: centralAPI.server.URL, Token: "central-token"})
	}

	opts = append([]Option{WithClock(func() time.Time { return testNow })}, opts...)
	d, err := New(lc, cc, opts...)
	require.NoError(t, err)
	return d
}

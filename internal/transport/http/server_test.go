package http

import (
	"encoding/json"
	"io"
	stdhttp "net/http"
	"net/http/httptest"
	"strings"
	"testing"

	"github.com/rs/zerolog"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/vovakirdan/roomrelay/internal/config"
	"github.com/vovakirdan/roomrelay/internal/proto"
)

func TestHealthEndpoint(t *testing.T) {
	ts := startTestServer(t)

	resp, err := ts.Client().Get(ts.URL + "/health")
	require.NoError(t, err)
	defer resp.Body.Close()

	body, _ := io.ReadAll(resp.Body)
	assert.Equal(t, stdhttp.StatusOK, resp.StatusCode)
	assert.Equal(t, "ok", string(body))
}

func TestMetricsEndpointCountsRooms(t *testing.T) {
	ts := startTestServer(t)
	ctx := testContext(t)
	conn := ts.dial(t, ctx)

	send(t, ctx, conn, "make", nil)
	receive(t, ctx, conn, "make")

	resp, err := ts.Client().Get(ts.URL + "/metrics")
	require.NoError(t, err)
	defer resp.Body.Close()

	body, _ := io.ReadAll(resp.Body)
	assert.Equal(t, stdhttp.StatusOK, resp.StatusCode)
	assert.Contains(t, string(body), "roomrelay_rooms_created_total 1")
	assert.Contains(t, string(body), "roomrelay_connected_clients 1")
}

func TestUnknownRoute(t *testing.T) {
	ts := startTestServer(t)

	resp, err := ts.Client().Get(ts.URL + "/new")
	require.NoError(t, err)
	defer resp.Body.Close()

	var body ErrorResponse
	require.NoError(t, json.NewDecoder(resp.Body).Decode(&body))
	assert.Equal(t, stdhttp.StatusNotFound, resp.StatusCode)
	assert.Equal(t, "not found", body.Error)
}

func postJSON(t *testing.T, ts *testServer, path, body string) (*stdhttp.Response, proto.Bootstrap) {
	t.Helper()

	resp, err := ts.Client().Post(ts.URL+path, "application/json", strings.NewReader(body))
	require.NoError(t, err)
	t.Cleanup(func() { resp.Body.Close() })

	var out proto.Bootstrap
	if resp.StatusCode == stdhttp.StatusOK {
		require.NoError(t, json.NewDecoder(resp.Body).Decode(&out))
	}
	return resp, out
}

func TestBootstrapNew(t *testing.T) {
	ts := startTestServer(t)

	resp, out := postJSON(t, ts, "/api/new", `{"userName":"Alexander the Great"}`)
	require.Equal(t, stdhttp.StatusOK, resp.StatusCode)
	assert.Equal(t, proto.Bootstrap{UserName: "Alexande", GameCode: "new", Master: true}, out)

	resp, out = postJSON(t, ts, "/api/new", `{"userName":"たなかたろうさんです"}`)
	require.Equal(t, stdhttp.StatusOK, resp.StatusCode)
	assert.Equal(t, "たなかたろうさん", out.UserName)
}

func TestBootstrapJoin(t *testing.T) {
	ts := startTestServer(t)

	resp, out := postJSON(t, ts, "/api/join", `{"userName":"Bob","gameCode":"00042317"}`)
	require.Equal(t, stdhttp.StatusOK, resp.StatusCode)
	assert.Equal(t, proto.Bootstrap{UserName: "Bob", GameCode: "00042317", Master: false}, out)
}

func TestBootstrapRejectsMissingFields(t *testing.T) {
	ts := startTestServer(t)

	cases := []struct {
		path string
		body string
	}{
		{"/api/new", `{}`},
		{"/api/new", `{"userName":""}`},
		{"/api/new", `not json`},
		{"/api/join", `{"userName":"Bob"}`},
		{"/api/join", `{"gameCode":"00042317"}`},
		{"/api/join", `{"userName":"Bob","gameCode":7}`},
	}
	for _, tc := range cases {
		resp, _ := postJSON(t, ts, tc.path, tc.body)
		assert.Equal(t, stdhttp.StatusBadRequest, resp.StatusCode, "%s %s", tc.path, tc.body)
	}
}

func TestTruncateUserName(t *testing.T) {
	assert.Equal(t, "", truncateUserName(""))
	assert.Equal(t, "12345678", truncateUserName("12345678"))
	assert.Equal(t, "12345678", truncateUserName("123456789"))
}

func TestRouterWithoutMetrics(t *testing.T) {
	ts := startTestServer(t)
	logger := zerolog.Nop()
	router := NewRouter(ts.hub, config.Default(), &logger, nil)

	rec := httptest.NewRecorder()
	router.ServeHTTP(rec, httptest.NewRequest(stdhttp.MethodGet, "/metrics", nil))
	assert.Equal(t, stdhttp.StatusNotFound, rec.Code)

	rec = httptest.NewRecorder()
	router.ServeHTTP(rec, httptest.NewRequest(stdhttp.MethodPost, "/api/new", strings.NewReader(`{"userName":"m"}`)))
	assert.Equal(t, stdhttp.StatusOK, rec.Code)
	assert.JSONEq(t, `{"userName":"m","gameCode":"new","master":true}`, rec.Body.String())
}

package http

import (
	"context"
	"encoding/json"
	"net/http/httptest"
	"strings"
	"testing"
	"time"

	"github.com/coder/websocket"
	"github.com/coder/websocket/wsjson"
	"github.com/rs/zerolog"
	"github.com/stretchr/testify/require"

	"github.com/vovakirdan/roomrelay/internal/config"
	"github.com/vovakirdan/roomrelay/internal/core"
	"github.com/vovakirdan/roomrelay/internal/metrics"
	"github.com/vovakirdan/roomrelay/internal/proto"
)

type testServer struct {
	*httptest.Server
	hub     *core.Hub
	metrics *metrics.Metrics
}

func startTestServer(t *testing.T, opts ...core.HubOption) *testServer {
	t.Helper()
	return startTestServerWithConfig(t, config.Default(), opts...)
}

func startTestServerWithConfig(t *testing.T, cfg config.Config, opts ...core.HubOption) *testServer {
	t.Helper()

	logger := zerolog.Nop()
	m := metrics.New()
	opts = append([]core.HubOption{core.WithRecorder(m)}, opts...)
	hub := core.NewHub(core.NewRegistry(&logger), core.NewGroups(), opts...)

	cfg.Addr = ":0"
	server := NewServer(hub, cfg, &logger, m.Handler())

	ts := httptest.NewServer(server.Handler)
	t.Cleanup(ts.Close)
	return &testServer{Server: ts, hub: hub, metrics: m}
}

func (ts *testServer) dial(t *testing.T, ctx context.Context) *websocket.Conn {
	t.Helper()

	wsURL := strings.Replace(ts.URL, "http", "ws", 1) + "/ws"
	conn, _, err := websocket.Dial(ctx, wsURL, nil)
	require.NoError(t, err)
	t.Cleanup(func() { conn.Close(websocket.StatusNormalClosure, "done") })
	return conn
}

func testContext(t *testing.T) context.Context {
	t.Helper()
	ctx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
	t.Cleanup(cancel)
	return ctx
}

func send(t *testing.T, ctx context.Context, conn *websocket.Conn, typ string, data any) {
	t.Helper()

	var raw json.RawMessage
	if data != nil {
		var err error
		raw, err = json.Marshal(data)
		require.NoError(t, err)
	}
	require.NoError(t, wsjson.Write(ctx, conn, proto.Inbound{Type: typ, Data: raw}))
}

type received struct {
	Type string         `json:"type"`
	Data map[string]any `json:"data"`
}

func receive(t *testing.T, ctx context.Context, conn *websocket.Conn, typ string) map[string]any {
	t.Helper()

	var msg received
	require.NoError(t, wsjson.Read(ctx, conn, &msg))
	require.Equal(t, typ, msg.Type, "unexpected outbound: %+v", msg)
	return msg.Data
}

// requireSilent asserts nothing arrives on conn within a short window.
func requireSilent(t *testing.T, conn *websocket.Conn) {
	t.Helper()

	ctx, cancel := context.WithTimeout(context.Background(), 150*time.Millisecond)
	defer cancel()

	_, data, err := conn.Read(ctx)
	require.Error(t, err, "unexpected frame: %s", data)
}

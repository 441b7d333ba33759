package core

import (
	"sync"
	"testing"
	"time"

	"github.com/stretchr/testify/require"
)

func newTestHub(t *testing.T, opts ...HubOption) *Hub {
	t.Helper()
	return NewHub(NewRegistry(nil), NewGroups(), opts...)
}

func connect(t *testing.T, hub *Hub, id string) *Client {
	t.Helper()

	c := NewClient(id, 16)
	require.NoError(t, hub.RegisterClient(c))
	t.Cleanup(func() { hub.UnregisterClient(c) })
	return c
}

// nextEvent returns the next queued event for c and requires it to be of kind.
func nextEvent(t *testing.T, c *Client, kind EventKind) *Event {
	t.Helper()

	select {
	case ev, ok := <-c.Events:
		require.True(t, ok, "events channel of %s closed", c.ID)
		require.Equal(t, kind, ev.Kind, "unexpected event for %s: %+v", c.ID, ev)
		return ev
	case <-time.After(2 * time.Second):
		t.Fatalf("expected event kind %v for %s not received", kind, c.ID)
		return nil
	}
}

func requireNoEvent(t *testing.T, c *Client) {
	t.Helper()

	select {
	case ev := <-c.Events:
		t.Fatalf("unexpected event for %s: %+v", c.ID, ev)
	default:
	}
}

func makeRoom(t *testing.T, hub *Hub, c *Client) string {
	t.Helper()

	require.NoError(t, hub.Handle(c, &Command{Kind: CommandMake}))
	ev := nextEvent(t, c, EventMake)
	require.Equal(t, true, ev.Payload[KeyStatus])
	code, ok := ev.Payload.String(KeyGameCode)
	require.True(t, ok)
	return code
}

type fakeClock struct {
	mu  sync.Mutex
	now time.Time
}

func newFakeClock() *fakeClock {
	return &fakeClock{now: time.Date(2024, 1, 1, 12, 0, 0, 0, time.UTC)}
}

func (f *fakeClock) Now() time.Time {
	f.mu.Lock()
	defer f.mu.Unlock()
	return f.now
}

func (f *fakeClock) Advance(d time.Duration) {
	f.mu.Lock()
	defer f.mu.Unlock()
	f.now = f.now.Add(d)
}

func fixedCode(code string) CodeGenerator {
	return GeneratorFunc(func() string { return code })
}

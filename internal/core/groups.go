package core

import (
	"fmt"
	"slices"
	"sync"
)

// Groups tracks live connections and the broadcast groups they joined.
// All methods are safe for concurrent use.
type Groups struct {
	mu      sync.RWMutex
	clients map[string]*Client              // connection id -> client
	members map[string]map[*Client]struct{} // room code -> members
}

// NewGroups creates an empty Groups.
func NewGroups() *Groups {
	return &Groups{
		clients: make(map[string]*Client),
		members: make(map[string]map[*Client]struct{}),
	}
}

// Register makes a connection addressable by its id.
func (g *Groups) Register(c *Client) error {
	g.mu.Lock()
	defer g.mu.Unlock()

	if _, exists := g.clients[c.ID]; exists {
		return fmt.Errorf("%w: %s", ErrClientExists, c.ID)
	}
	g.clients[c.ID] = c
	return nil
}

// Unregister forgets a connection, removes it from every group and closes it.
// Empty groups are dropped. Returns false if the client was already closed.
func (g *Groups) Unregister(c *Client) bool {
	g.mu.Lock()
	defer g.mu.Unlock()

	if cur, ok := g.clients[c.ID]; ok && cur == c {
		delete(g.clients, c.ID)
	}
	rooms, closed := c.close()
	for _, code := range rooms {
		set, ok := g.members[code]
		if !ok {
			continue
		}
		delete(set, c)
		if len(set) == 0 {
			delete(g.members, code)
		}
	}
	return closed
}

// Lookup returns the live client with the given connection id.
func (g *Groups) Lookup(id string) (*Client, bool) {
	g.mu.RLock()
	defer g.mu.RUnlock()
	c, ok := g.clients[id]
	return c, ok
}

// Join adds the client to the group for code. Idempotent.
// Returns true if the client was newly added.
func (g *Groups) Join(c *Client, code string) bool {
	g.mu.Lock()
	defer g.mu.Unlock()

	if c.State() == StateClosed {
		return false
	}
	set, ok := g.members[code]
	if !ok {
		set = make(map[*Client]struct{})
		g.members[code] = set
	}
	set[c] = struct{}{}
	return c.addRoom(code)
}

// EmitToGroup delivers ev to every current member of the group, the sender
// included if it is a member. Returns how many members accepted the event.
func (g *Groups) EmitToGroup(code string, ev *Event) int {
	g.mu.RLock()
	defer g.mu.RUnlock()

	delivered := 0
	for c := range g.members[code] {
		if c.Deliver(ev) {
			delivered++
		}
	}
	return delivered
}

// EmitToConnection delivers ev to exactly one connection.
// Returns false when the id is not live or the event was dropped.
func (g *Groups) EmitToConnection(id string, ev *Event) bool {
	c, ok := g.Lookup(id)
	if !ok {
		return false
	}
	return c.Deliver(ev)
}

// Members returns the connection ids currently in the group, sorted.
func (g *Groups) Members(code string) []string {
	g.mu.RLock()
	defer g.mu.RUnlock()

	ids := make([]string, 0, len(g.members[code]))
	for c := range g.members[code] {
		ids = append(ids, c.ID)
	}
	slices.Sort(ids)
	return ids
}

// ClientCount returns the number of registered connections.
func (g *Groups) ClientCount() int {
	g.mu.RLock()
	defer g.mu.RUnlock()
	return len(g.clients)
}

// GroupCount returns the number of non-empty groups.
func (g *Groups) GroupCount() int {
	g.mu.RLock()
	defer g.mu.RUnlock()
	return len(g.members)
}

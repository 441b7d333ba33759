package core

import (
	"slices"
	"sync"
)

const defaultEventBuffer = 64

// ClientState is the relay-visible lifecycle of a connection.
type ClientState int

const (
	// StateConnected is a live connection that has not joined any group.
	StateConnected ClientState = iota
	// StateIdentified is a live connection that joined at least one group.
	StateIdentified
	// StateClosed is a connection that has been unregistered.
	StateClosed
)

func (s ClientState) String() string {
	switch s {
	case StateConnected:
		return "connected"
	case StateIdentified:
		return "identified"
	case StateClosed:
		return "closed"
	default:
		return "unknown"
	}
}

// Client is a connection session as seen by the core layer.
type Client struct {
	ID     string
	Events chan *Event

	mu     sync.Mutex
	rooms  map[string]struct{}
	closed bool
}

// NewClient constructs a client with a buffered outbound channel.
func NewClient(id string, buffer int) *Client {
	if buffer <= 0 {
		buffer = defaultEventBuffer
	}
	return &Client{
		ID:     id,
		Events: make(chan *Event, buffer),
		rooms:  make(map[string]struct{}),
	}
}

// Deliver enqueues an event without blocking.
// Returns false if the client is closed or its buffer is full.
func (c *Client) Deliver(ev *Event) bool {
	c.mu.Lock()
	defer c.mu.Unlock()

	if c.closed {
		return false
	}
	select {
	case c.Events <- ev:
		return true
	default:
		// Drop if slow consumer.
		return false
	}
}

// Rooms returns the room codes the client has joined, sorted.
func (c *Client) Rooms() []string {
	c.mu.Lock()
	defer c.mu.Unlock()

	out := make([]string, 0, len(c.rooms))
	for code := range c.rooms {
		out = append(out, code)
	}
	slices.Sort(out)
	return out
}

// InRoom reports whether the client joined the given room code.
func (c *Client) InRoom(code string) bool {
	c.mu.Lock()
	defer c.mu.Unlock()
	_, ok := c.rooms[code]
	return ok
}

// State reports where the client is in its lifecycle.
func (c *Client) State() ClientState {
	c.mu.Lock()
	defer c.mu.Unlock()

	switch {
	case c.closed:
		return StateClosed
	case len(c.rooms) > 0:
		return StateIdentified
	default:
		return StateConnected
	}
}

func (c *Client) addRoom(code string) bool {
	c.mu.Lock()
	defer c.mu.Unlock()

	if _, exists := c.rooms[code]; exists {
		return false
	}
	c.rooms[code] = struct{}{}
	return true
}

// close marks the client closed and closes its outbound channel. Idempotent.
// Returns the rooms the client belonged to and whether this call closed it.
func (c *Client) close() ([]string, bool) {
	c.mu.Lock()
	defer c.mu.Unlock()

	if c.closed {
		return nil, false
	}
	c.closed = true
	close(c.Events)

	rooms := make([]string, 0, len(c.rooms))
	for code := range c.rooms {
		rooms = append(rooms, code)
	}
	return rooms, true
}

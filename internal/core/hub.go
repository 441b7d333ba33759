package core

import (
	"fmt"

	"github.com/rs/zerolog"
)

// DefaultMaxAttempts bounds the generate-and-reserve loop of a make command.
const DefaultMaxAttempts = 10

// Hub routes client commands to the registry and groups and emits the
// resulting events. It keeps no per-connection state of its own.
type Hub struct {
	registry    *Registry
	groups      *Groups
	gen         CodeGenerator
	maxAttempts int
	rec         Recorder
	log         zerolog.Logger
}

// HubOption customizes a Hub.
type HubOption func(*Hub)

// WithGenerator sets the room code generator.
func WithGenerator(gen CodeGenerator) HubOption {
	return func(h *Hub) {
		if gen != nil {
			h.gen = gen
		}
	}
}

// WithMaxAttempts sets how many codes a make command tries before giving up.
func WithMaxAttempts(n int) HubOption {
	return func(h *Hub) {
		if n > 0 {
			h.maxAttempts = n
		}
	}
}

// WithRecorder sets the observation sink.
func WithRecorder(rec Recorder) HubOption {
	return func(h *Hub) {
		if rec != nil {
			h.rec = rec
		}
	}
}

// WithLogger sets the hub logger.
func WithLogger(logger *zerolog.Logger) HubOption {
	return func(h *Hub) {
		h.log = componentLogger(logger, "hub")
	}
}

// NewHub creates a hub over the given registry and groups.
func NewHub(registry *Registry, groups *Groups, opts ...HubOption) *Hub {
	h := &Hub{
		registry:    registry,
		groups:      groups,
		gen:         NumericGenerator{},
		maxAttempts: DefaultMaxAttempts,
		rec:         nopRecorder{},
		log:         zerolog.Nop(),
	}
	for _, opt := range opts {
		opt(h)
	}
	return h
}

// Registry returns the room registry the hub reserves codes in.
func (h *Hub) Registry() *Registry { return h.registry }

// Groups returns the connection groups the hub emits to.
func (h *Hub) Groups() *Groups { return h.groups }

// RegisterClient makes a new connection addressable.
func (h *Hub) RegisterClient(c *Client) error {
	if err := h.groups.Register(c); err != nil {
		return err
	}
	h.rec.ClientConnected()
	h.log.Debug().Str("client_id", c.ID).Msg("client connected")
	return nil
}

// UnregisterClient drops a closed connection from every group and closes its
// event channel.
func (h *Hub) UnregisterClient(c *Client) {
	rooms := c.Rooms()
	if !h.groups.Unregister(c) {
		return
	}
	h.rec.ClientDisconnected()
	h.log.Debug().Str("client_id", c.ID).Strs("rooms", rooms).Msg("client disconnected")
}

// Handle processes one command from c. Commands from the same client must be
// handled sequentially; commands from different clients may run concurrently.
//
// Every failure except an unreachable direct target has already been reported
// to c when Handle returns; the error is for logging.
func (h *Hub) Handle(c *Client, cmd *Command) error {
	payload := cmd.Payload
	if payload == nil {
		payload = Payload{}
	}

	var err error
	switch cmd.Kind {
	case CommandMake:
		err = h.handleMake(c)
	case CommandJoin:
		err = h.handleJoin(c, payload)
	case CommandSend:
		err = h.handleSend(c, payload)
	case CommandSendDirect:
		err = h.handleSendDirect(c, payload)
	default:
		err = fmt.Errorf("%w: %d", ErrUnknownCommand, cmd.Kind)
	}

	h.rec.CommandHandled(cmd.Kind, ErrorCode(err))
	return err
}

func (h *Hub) handleMake(c *Client) error {
	for attempt := 1; attempt <= h.maxAttempts; attempt++ {
		code := h.gen.Generate()
		if !h.registry.Reserve(code) {
			h.log.Debug().Str("code", code).Int("attempt", attempt).Msg("room code collision")
			continue
		}

		h.groups.Join(c, code)
		h.rec.RoomCreated()
		h.rec.LiveRooms(h.registry.Len())
		h.reply(c, EventMake, Payload{
			KeyStatus:       true,
			KeyGameCode:     code,
			KeyConnectionID: c.ID,
		})
		h.log.Info().Str("code", code).Str("client_id", c.ID).Msg("make")
		return nil
	}

	h.rec.RoomCreationExhausted()
	h.reply(c, EventMake, Payload{
		KeyStatus:       false,
		KeyGameCode:     "",
		KeyConnectionID: c.ID,
	})
	h.log.Warn().Str("client_id", c.ID).Int("attempts", h.maxAttempts).Msg("room code space exhausted")
	return ErrRoomCreationExhausted
}

func (h *Hub) handleJoin(c *Client, p Payload) error {
	code, ok := p.String(KeyGameCode)
	if !ok {
		h.rejectJoin(c)
		return missingField(KeyGameCode)
	}
	userName, ok := p.String(KeyUserName)
	if !ok {
		h.rejectJoin(c)
		return missingField(KeyUserName)
	}
	if !h.registry.Exists(code) {
		h.rejectJoin(c)
		return fmt.Errorf("%w: %q", ErrNotFound, code)
	}

	h.groups.Join(c, code)
	n := h.groups.EmitToGroup(code, &Event{Kind: EventJoin, Payload: Payload{
		KeyStatus:       true,
		KeyUserName:     userName,
		KeyConnectionID: c.ID,
	}})
	h.rec.EventsDelivered(EventJoin, n)
	h.log.Info().Str("code", code).Str("client_id", c.ID).Str("user", userName).Msg("join")
	return nil
}

func (h *Hub) rejectJoin(c *Client) {
	h.reply(c, EventJoin, Payload{
		KeyStatus:       false,
		KeyUserName:     "",
		KeyConnectionID: c.ID,
	})
}

func (h *Hub) handleSend(c *Client, p Payload) error {
	code, ok := p.String(KeyGameCode)
	if !ok {
		h.rejectSend(c, ActionGameCodeError)
		return missingField(KeyGameCode)
	}

	out := p.stamped(true, c.ID)
	n := h.groups.EmitToGroup(code, &Event{Kind: EventRecv, Payload: out})
	h.rec.EventsDelivered(EventRecv, n)
	h.logRelay(c, p).Str("code", code).Int("recipients", n).Msg("send")
	return nil
}

func (h *Hub) handleSendDirect(c *Client, p Payload) error {
	to, ok := p.String(KeyTo)
	if !ok {
		h.rejectSend(c, ActionSocketIDError)
		return missingField(KeyTo)
	}

	out := p.stamped(true, c.ID)
	if !h.groups.EmitToConnection(to, &Event{Kind: EventRecv, Payload: out}) {
		return fmt.Errorf("%w: %q", ErrUnreachableTarget, to)
	}
	h.rec.EventsDelivered(EventRecv, 1)
	h.logRelay(c, p).Str("to", to).Msg("send_direct")
	return nil
}

func (h *Hub) rejectSend(c *Client, action string) {
	h.reply(c, EventRecv, Payload{
		KeyStatus:       false,
		KeyAction:       action,
		KeyConnectionID: c.ID,
	})
}

func (h *Hub) logRelay(c *Client, p Payload) *zerolog.Event {
	ev := h.log.Debug().Str("client_id", c.ID)
	if action, ok := p[KeyAction]; ok {
		ev = ev.Interface("action", action)
	}
	return ev
}

func (h *Hub) reply(c *Client, kind EventKind, p Payload) {
	if c.Deliver(&Event{Kind: kind, Payload: p}) {
		h.rec.EventsDelivered(kind, 1)
	}
}

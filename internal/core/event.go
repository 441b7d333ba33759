package core

// EventKind is a notification the core emits to clients.
type EventKind int

const (
	// EventMake answers a make command; sent to the requester only.
	EventMake EventKind = iota
	// EventJoin announces a join to the group, or rejects it to the caller.
	EventJoin
	// EventRecv carries a relayed payload or a send error.
	EventRecv
)

func (k EventKind) String() string {
	switch k {
	case EventMake:
		return "make"
	case EventJoin:
		return "join"
	case EventRecv:
		return "recv"
	default:
		return "unknown"
	}
}

// Event is sent to clients to describe what happened in the system.
// Payload must not be mutated once the event is emitted; several clients
// may serialize it concurrently.
type Event struct {
	Kind    EventKind
	Payload Payload
}

package core

// Reserved and well-known payload keys.
const (
	KeyStatus       = "status"
	KeyConnectionID = "connectionId"
	KeyGameCode     = "gameCode"
	KeyUserName     = "userName"
	KeyAction       = "action"
	KeyTo           = "to"
)

// Error actions reported on recv when a send is rejected.
const (
	ActionGameCodeError = "GAME CODE ERROR"
	ActionSocketIDError = "SOCKET ID ERROR"
)

// Payload is the schema-less body of a command or event.
//
// On relayed messages the keys KeyStatus and KeyConnectionID are owned by the
// relay and always overwritten; callers must not expect their own values under
// those names to round-trip.
type Payload map[string]any

// String returns the value stored under key when it is present and a string.
// A JSON null counts as absent.
func (p Payload) String(key string) (string, bool) {
	v, ok := p[key]
	if !ok || v == nil {
		return "", false
	}
	s, ok := v.(string)
	return s, ok
}

// Clone returns a shallow copy of p. Nested values are shared.
func (p Payload) Clone() Payload {
	out := make(Payload, len(p)+2)
	for k, v := range p {
		out[k] = v
	}
	return out
}

// stamped returns a copy of p with the relay-owned keys set.
func (p Payload) stamped(status bool, connectionID string) Payload {
	out := p.Clone()
	out[KeyStatus] = status
	out[KeyConnectionID] = connectionID
	return out
}

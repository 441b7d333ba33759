package proto

import "encoding/json"

// Inbound is the envelope for messages coming from the client.
type Inbound struct {
	Type string          `json:"type"`
	Data json.RawMessage `json:"data,omitempty"`
}

const (
	InboundTypeMake       = "make"
	InboundTypeJoin       = "join"
	InboundTypeSend       = "send"
	InboundTypeSendDirect = "send_direct"

	OutboundTypeMake = "make"
	OutboundTypeJoin = "join"
	OutboundTypeRecv = "recv"
)

// Outbound is the envelope for messages sent to the client.
type Outbound struct {
	Type string         `json:"type"`
	Data map[string]any `json:"data"`
}

// BootstrapNewRequest asks for the parameters of a room-creating session.
type BootstrapNewRequest struct {
	UserName string `json:"userName" binding:"required"`
}

// BootstrapJoinRequest asks for the parameters of a room-joining session.
type BootstrapJoinRequest struct {
	UserName string `json:"userName" binding:"required"`
	GameCode string `json:"gameCode" binding:"required"`
}

// Bootstrap is the (userName, gameCode, master) triple a client needs before
// it opens a relay connection. A master sends make; everyone else sends join.
type Bootstrap struct {
	UserName string `json:"userName"`
	GameCode string `json:"gameCode"`
	Master   bool   `json:"master"`
}

// NewGameCode is the placeholder game code handed to a master before make.
const NewGameCode = "new"

// MaxUserNameLength is the number of runes kept from a bootstrap userName.
const MaxUserNameLength = 8

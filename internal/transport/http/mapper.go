package http

import (
	"bytes"
	"encoding/json"
	"errors"
	"fmt"

	"github.com/vovakirdan/roomrelay/internal/core"
	"github.com/vovakirdan/roomrelay/internal/proto"
)

var errUnknownType = errors.New("unknown message type")

var commandKinds = map[string]core.CommandKind{
	proto.InboundTypeMake:       core.CommandMake,
	proto.InboundTypeJoin:       core.CommandJoin,
	proto.InboundTypeSend:       core.CommandSend,
	proto.InboundTypeSendDirect: core.CommandSendDirect,
}

func inboundToCommand(frame []byte) (*core.Command, error) {
	var inbound proto.Inbound
	if err := json.Unmarshal(frame, &inbound); err != nil {
		return nil, fmt.Errorf("decode envelope: %w", err)
	}

	kind, ok := commandKinds[inbound.Type]
	if !ok {
		return nil, fmt.Errorf("%w: %q", errUnknownType, inbound.Type)
	}
	return &core.Command{Kind: kind, Payload: decodePayload(inbound.Data)}, nil
}

// decodePayload keeps numbers as json.Number so relayed values re-encode
// exactly as received. Absent, null and non-object data decode to an empty payload.
func decodePayload(raw json.RawMessage) core.Payload {
	if len(raw) == 0 {
		return core.Payload{}
	}

	dec := json.NewDecoder(bytes.NewReader(raw))
	dec.UseNumber()

	var obj map[string]any
	if err := dec.Decode(&obj); err != nil || obj == nil {
		return core.Payload{}
	}
	return core.Payload(obj)
}

func outboundFromEvent(event *core.Event) proto.Outbound {
	data := event.Payload
	if data == nil {
		data = core.Payload{}
	}

	var typ string
	switch event.Kind {
	case core.EventMake:
		typ = proto.OutboundTypeMake
	case core.EventJoin:
		typ = proto.OutboundTypeJoin
	default:
		typ = proto.OutboundTypeRecv
	}
	return proto.Outbound{Type: typ, Data: data}
}

package core

// CommandKind describes what the client wants to do.
type CommandKind int

const (
	// CommandMake reserves a new room code and joins its group.
	CommandMake CommandKind = iota
	// CommandJoin joins the group of an existing room code.
	CommandJoin
	// CommandSend broadcasts a payload to every member of a group.
	CommandSend
	// CommandSendDirect delivers a payload to a single connection.
	CommandSendDirect
)

func (k CommandKind) String() string {
	switch k {
	case CommandMake:
		return "make"
	case CommandJoin:
		return "join"
	case CommandSend:
		return "send"
	case CommandSendDirect:
		return "send_direct"
	default:
		return "unknown"
	}
}

// Command represents an event received from a client.
type Command struct {
	Kind    CommandKind
	Payload Payload
}

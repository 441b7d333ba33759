package core

// Recorder receives relay observations, typically to export them as metrics.
// Implementations must be safe for concurrent use.
type Recorder interface {
	RoomCreated()
	RoomCreationExhausted()
	RoomsEvicted(n int)
	LiveRooms(n int)
	CommandHandled(kind CommandKind, errCode string)
	EventsDelivered(kind EventKind, recipients int)
	ClientConnected()
	ClientDisconnected()
}

type nopRecorder struct{}

func (nopRecorder) RoomCreated()                       {}
func (nopRecorder) RoomCreationExhausted()             {}
func (nopRecorder) RoomsEvicted(int)                   {}
func (nopRecorder) LiveRooms(int)                      {}
func (nopRecorder) CommandHandled(CommandKind, string) {}
func (nopRecorder) EventsDelivered(EventKind, int)     {}
func (nopRecorder) ClientConnected()                   {}
func (nopRecorder) ClientDisconnected()                {}

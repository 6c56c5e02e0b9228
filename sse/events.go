package sse

// Event names written by the stream itself. Run events use the runner's
// event type names.
const (
	EventTypeConnected = "connected"
	EventTypeMessage   = "message"
	EventTypeError     = "error"
)

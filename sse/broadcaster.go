package sse

// Broadcaster sends an event to every client whose ID matches a glob pattern.
type Broadcaster interface {
	Broadcast(pattern, event string, data []byte)
}

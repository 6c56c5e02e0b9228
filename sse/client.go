package sse

import (
	"sync"

	"github.com/RichTeaMan/timer/logger"
)

// DefaultClientBuffer is the number of frames a client may fall behind
// before new frames are dropped.
const DefaultClientBuffer = 64

// Frame is one SSE message.
type Frame struct {
	Event string
	Data  []byte
}

// Client is one connected stream.
type Client struct {
	id       string
	metadata map[string]string
	frames   chan Frame
	buffer   int
	once     sync.Once
	dropped  int
	mu       sync.Mutex
}

// ClientOption configures a Client.
type ClientOption func(*Client)

// WithMetadata adds a metadata key-value pair to the client.
func WithMetadata(key, value string) ClientOption {
	return func(c *Client) {
		c.metadata[key] = value
	}
}

// WithRunID records the run the client is watching.
func WithRunID(runID string) ClientOption {
	return WithMetadata("run_id", runID)
}

// WithBuffer sets the client's frame buffer size.
func WithBuffer(n int) ClientOption {
	return func(c *Client) {
		if n > 0 {
			c.buffer = n
		}
	}
}

// NewClient creates a client with the given ID.
func NewClient(id string, opts ...ClientOption) *Client {
	c := &Client{
		id:       id,
		metadata: make(map[string]string),
		buffer:   DefaultClientBuffer,
	}
	for _, opt := range opts {
		opt(c)
	}
	c.frames = make(chan Frame, c.buffer)
	return c
}

// ID returns the client's identifier.
func (c *Client) ID() string { return c.id }

// Metadata returns the client's metadata.
func (c *Client) Metadata() map[string]string { return c.metadata }

// RunID returns the run the client is watching, if set.
func (c *Client) RunID() string { return c.metadata["run_id"] }

// Frames returns the channel of frames to write. It is closed when the
// client is unregistered.
func (c *Client) Frames() <-chan Frame { return c.frames }

// Dropped returns how many frames were discarded because the client was slow.
func (c *Client) Dropped() int {
	c.mu.Lock()
	defer c.mu.Unlock()
	return c.dropped
}

// Send queues a frame without blocking. It returns false when the buffer is full.
func (c *Client) Send(f Frame) bool {
	select {
	case c.frames <- f:
		return true
	default:
		c.mu.Lock()
		c.dropped++
		c.mu.Unlock()
		logger.Get("sse").Warn("client buffer full, dropping frame", logger.Fields("client_id", c.id, "event", f.Event))
		return false
	}
}

// Close closes the frame channel. Safe to call more than once.
func (c *Client) Close() {
	c.once.Do(func() { close(c.frames) })
}

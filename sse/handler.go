package sse

import (
	"encoding/json"
	"fmt"
	"io"
	"net/http"
	"strings"
	"time"

	"github.com/RichTeaMan/timer/logger"
)

// DefaultKeepAlive is how often an idle stream sends a comment line.
const DefaultKeepAlive = 30 * time.Second

// ConnectedEvent is the first frame a client receives.
type ConnectedEvent struct {
	ClientID string            `json:"clientId"`
	RunID    string            `json:"runId,omitempty"`
	Metadata map[string]string `json:"metadata,omitempty"`
}

// StreamOptions tune a single stream.
type StreamOptions struct {
	KeepAlive time.Duration
	// Initial frames are written right after the connected frame, before
	// any broadcast. Used to send the current snapshot.
	Initial []Frame
}

// ServeSSE streams hub frames addressed to clientID until the request ends
// or the hub closes the client.
func ServeSSE(hub *Hub, w http.ResponseWriter, r *http.Request, clientID string, stream StreamOptions, opts ...ClientOption) {
	log := logger.Get("sse").WithContext(r.Context())

	flusher, ok := w.(http.Flusher)
	if !ok {
		log.Error("streaming not supported", logger.Fields("client_id", clientID))
		http.Error(w, "streaming not supported", http.StatusInternalServerError)
		return
	}

	// Streams outlive the server's WriteTimeout.
	rc := http.NewResponseController(w)
	if err := rc.SetWriteDeadline(time.Time{}); err != nil {
		log.Debug("could not clear write deadline", logger.Fields("client_id", clientID, logger.FieldError, err.Error()))
	}

	h := w.Header()
	h.Set("Content-Type", "text/event-stream")
	h.Set("Cache-Control", "no-cache")
	h.Set("Connection", "keep-alive")
	h.Set("X-Accel-Buffering", "no")

	client := NewClient(clientID, opts...)
	if !hub.Register(client) {
		http.Error(w, "stream closed", http.StatusServiceUnavailable)
		return
	}
	defer hub.Unregister(client)

	connected, _ := json.Marshal(ConnectedEvent{
		ClientID: clientID,
		RunID:    client.RunID(),
		Metadata: client.Metadata(),
	})
	_ = WriteFrame(w, Frame{Event: EventTypeConnected, Data: connected})
	for _, f := range stream.Initial {
		_ = WriteFrame(w, f)
	}
	flusher.Flush()
	log.Debug("client connected", logger.Fields("client_id", clientID, "remote_addr", r.RemoteAddr))

	interval := stream.KeepAlive
	if interval <= 0 {
		interval = DefaultKeepAlive
	}
	keepAlive := time.NewTicker(interval)
	defer keepAlive.Stop()

	ctx := r.Context()
	for {
		select {
		case <-ctx.Done():
			log.Debug("client disconnected", logger.Fields("client_id", clientID, "dropped", client.Dropped()))
			return

		case f, ok := <-client.Frames():
			if !ok {
				return
			}
			if err := WriteFrame(w, f); err != nil {
				log.Debug("write failed", logger.Fields("client_id", clientID, logger.FieldError, err.Error()))
				return
			}
			flusher.Flush()

		case <-keepAlive.C:
			_, _ = fmt.Fprintf(w, ": keepalive %d\n\n", time.Now().Unix())
			flusher.Flush()
		}
	}
}

// WriteFrame writes f in SSE wire format. Multi-line data is split across
// data fields.
func WriteFrame(w io.Writer, f Frame) error {
	var b strings.Builder
	if f.Event != "" {
		b.WriteString("event: ")
		b.WriteString(f.Event)
		b.WriteByte('\n')
	}
	for _, line := range strings.Split(string(f.Data), "\n") {
		b.WriteString("data: ")
		b.WriteString(line)
		b.WriteByte('\n')
	}
	b.WriteByte('\n')
	_, err := io.WriteString(w, b.String())
	return err
}

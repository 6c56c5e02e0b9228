package sse

import (
	"path/filepath"
	"sync"

	"github.com/RichTeaMan/timer/logger"
)

// Message is a frame addressed to a client ID pattern.
type Message struct {
	Pattern string
	Frame   Frame
}

// Hub manages client connections and routes broadcasts to them.
type Hub struct {
	clients    map[string]*Client
	register   chan *Client
	unregister chan *Client
	broadcast  chan Message
	done       chan struct{}
	stopped    bool
	mu         sync.RWMutex
	log        *logger.Logger
}

// NewHub creates a hub. Call Run to start routing.
func NewHub() *Hub {
	return &Hub{
		clients:    make(map[string]*Client),
		register:   make(chan *Client),
		unregister: make(chan *Client),
		broadcast:  make(chan Message, 256),
		done:       make(chan struct{}),
		log:        logger.Get("sse"),
	}
}

// Run routes registrations and broadcasts until Stop is called.
func (h *Hub) Run() {
	for {
		select {
		case <-h.done:
			h.closeAllClients()
			return

		case client := <-h.register:
			h.mu.Lock()
			if old, ok := h.clients[client.id]; ok {
				old.Close()
			}
			h.clients[client.id] = client
			total := len(h.clients)
			h.mu.Unlock()
			h.log.Debug("client registered", logger.Fields("client_id", client.id, "total_clients", total))

		case client := <-h.unregister:
			h.mu.Lock()
			if current, ok := h.clients[client.id]; ok && current == client {
				delete(h.clients, client.id)
			}
			total := len(h.clients)
			h.mu.Unlock()
			client.Close()
			h.log.Debug("client unregistered", logger.Fields("client_id", client.id, "total_clients", total))

		case msg := <-h.broadcast:
			h.deliver(msg)
		}
	}
}

// Stop closes every client and makes Run return. Safe to call more than once.
func (h *Hub) Stop() {
	h.mu.Lock()
	defer h.mu.Unlock()
	if !h.stopped {
		h.stopped = true
		close(h.done)
	}
}

func (h *Hub) closeAllClients() {
	h.mu.Lock()
	defer h.mu.Unlock()
	for id, client := range h.clients {
		client.Close()
		delete(h.clients, id)
	}
}

// Register adds a client. It returns false if the hub has stopped.
func (h *Hub) Register(client *Client) bool {
	select {
	case h.register <- client:
		return true
	case <-h.done:
		client.Close()
		return false
	}
}

// Unregister removes a client and closes it.
func (h *Hub) Unregister(client *Client) {
	select {
	case h.unregister <- client:
	case <-h.done:
		client.Close()
	}
}

// Broadcast queues a frame for every client whose ID matches pattern.
// Broadcasts after Stop are dropped.
func (h *Hub) Broadcast(pattern, event string, data []byte) {
	select {
	case h.broadcast <- Message{Pattern: pattern, Frame: Frame{Event: event, Data: data}}:
	case <-h.done:
	}
}

func (h *Hub) deliver(msg Message) {
	h.mu.RLock()
	defer h.mu.RUnlock()

	matched := 0
	for id, client := range h.clients {
		ok, err := filepath.Match(msg.Pattern, id)
		if err != nil {
			h.log.Error("bad broadcast pattern", logger.Fields("pattern", msg.Pattern, logger.FieldError, err.Error()))
			return
		}
		if ok && client.Send(msg.Frame) {
			matched++
		}
	}
	h.log.Debug("broadcast", logger.Fields("pattern", msg.Pattern, "event", msg.Frame.Event, "match_count", matched))
}

// ClientCount returns the number of connected clients.
func (h *Hub) ClientCount() int {
	h.mu.RLock()
	defer h.mu.RUnlock()
	return len(h.clients)
}

// ClientIDs returns the IDs of all connected clients.
func (h *Hub) ClientIDs() []string {
	h.mu.RLock()
	defer h.mu.RUnlock()
	ids := make([]string, 0, len(h.clients))
	for id := range h.clients {
		ids = append(ids, id)
	}
	return ids
}

// Client returns a client by ID, or nil.
func (h *Hub) Client(id string) *Client {
	h.mu.RLock()
	defer h.mu.RUnlock()
	return h.clients[id]
}

var _ Broadcaster = (*Hub)(nil)

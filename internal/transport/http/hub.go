package http

import (
	"encoding/json"
	"log"
	"sync"
)

const sendBuffer = 16

// envelope is the wire format in both directions.
type envelope struct {
	Type    string          `json:"type"`
	Payload json.RawMessage `json:"payload"`
}

// Hub maps connection identifiers to their outbound channels. It implements
// live.Sender: fire-and-forget delivery, with messages to slow connections
// dropped rather than blocking an event handler.
type Hub struct {
	mu    sync.RWMutex
	conns map[string]chan []byte
}

func NewHub() *Hub {
	return &Hub{conns: make(map[string]chan []byte)}
}

// Add registers a connection and returns its outbound channel, which the
// caller's writer goroutine drains. The channel is closed by Remove.
func (h *Hub) Add(connID string) <-chan []byte {
	ch := make(chan []byte, sendBuffer)
	h.mu.Lock()
	h.conns[connID] = ch
	h.mu.Unlock()
	return ch
}

// Remove drops the connection and closes its channel; no-op if absent.
func (h *Hub) Remove(connID string) {
	h.mu.Lock()
	if ch, ok := h.conns[connID]; ok {
		delete(h.conns, connID)
		close(ch)
	}
	h.mu.Unlock()
}

// Send marshals the event and queues it for the connection. Unknown
// connections and full buffers drop the message.
func (h *Hub) Send(connID, event string, payload any) {
	data, err := json.Marshal(payload)
	if err != nil {
		log.Printf("hub: marshal %s: %v", event, err)
		return
	}
	frame, err := json.Marshal(envelope{Type: event, Payload: data})
	if err != nil {
		log.Printf("hub: marshal envelope %s: %v", event, err)
		return
	}

	h.mu.RLock()
	defer h.mu.RUnlock()
	ch, ok := h.conns[connID]
	if !ok {
		return
	}
	select {
	case ch <- frame:
	default:
		// Drop if the connection is too slow to keep up.
	}
}

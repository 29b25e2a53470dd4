package http

import (
	"encoding/json"
	"log"
	"net/http"

	"classquiz/internal/live"
	"github.com/google/uuid"
	"github.com/gorilla/websocket"
)

// WSHandler upgrades HTTP requests to websockets and feeds their events into
// the session coordinator. One socket is one connection; the coordinator
// never sees transport details.
type WSHandler struct {
	coordinator *live.Coordinator
	hub         *Hub
	upgrader    websocket.Upgrader
}

func NewWSHandler(coordinator *live.Coordinator, hub *Hub) *WSHandler {
	return &WSHandler{
		coordinator: coordinator,
		hub:         hub,
		upgrader: websocket.Upgrader{
			ReadBufferSize:  1024,
			WriteBufferSize: 1024,
			CheckOrigin:     func(r *http.Request) bool { return true },
		},
	}
}

// ServeWS handles one client for the lifetime of its socket. Events from a
// single connection are processed in the order sent; across connections there
// is no ordering guarantee.
func (h *WSHandler) ServeWS(w http.ResponseWriter, r *http.Request) {
	conn, err := h.upgrader.Upgrade(w, r, nil)
	if err != nil {
		log.Printf("ws upgrade failed: %v", err)
		return
	}
	defer conn.Close()

	connID := uuid.NewString()
	outbound := h.hub.Add(connID)
	log.Printf("client connected: %s", connID)

	writerDone := make(chan struct{})
	go func() {
		defer close(writerDone)
		for frame := range outbound {
			if err := conn.WriteMessage(websocket.TextMessage, frame); err != nil {
				log.Printf("ws write error: %v", err)
				return
			}
		}
	}()

	for {
		var inbound envelope
		if err := conn.ReadJSON(&inbound); err != nil {
			break
		}
		h.dispatch(connID, inbound)
	}

	// Disconnect before tearing down delivery so user-left reaches the
	// remaining members but not this connection.
	h.coordinator.Disconnect(connID)
	h.hub.Remove(connID)
	<-writerDone
	log.Printf("client disconnected: %s", connID)
}

// dispatch decodes one inbound event and routes it. Malformed payloads are
// reported to the sender only and never propagate further.
func (h *WSHandler) dispatch(connID string, msg envelope) {
	switch msg.Type {
	case live.EventJoinQuiz:
		var ev live.JoinQuiz
		if !h.decode(connID, msg, &ev) {
			return
		}
		h.coordinator.Join(connID, ev)
	case live.EventStartQuiz:
		var ev live.StartQuiz
		if !h.decode(connID, msg, &ev) {
			return
		}
		h.coordinator.Start(connID, ev)
	case live.EventSubmitAnswer:
		var ev live.SubmitAnswer
		if !h.decode(connID, msg, &ev) {
			return
		}
		h.coordinator.Submit(connID, ev)
	case live.EventGetLeaderboard:
		var ev live.GetLeaderboard
		if !h.decode(connID, msg, &ev) {
			return
		}
		h.coordinator.SendLeaderboard(connID, ev)
	case live.EventEndQuiz:
		var ev live.EndQuiz
		if !h.decode(connID, msg, &ev) {
			return
		}
		h.coordinator.End(connID, ev)
	default:
		h.hub.Send(connID, "error", errorPayload{Message: "unsupported message type"})
	}
}

type errorPayload struct {
	Message string `json:"message"`
}

func (h *WSHandler) decode(connID string, msg envelope, dst any) bool {
	if err := json.Unmarshal(msg.Payload, dst); err != nil {
		h.hub.Send(connID, "error", errorPayload{Message: "invalid " + msg.Type + " payload"})
		return false
	}
	return true
}

package http

import (
	"encoding/json"
	"testing"
)

func TestHubSendDeliversFrames(t *testing.T) {
	hub := NewHub()
	ch := hub.Add("c1")

	hub.Send("c1", "user-joined", map[string]any{"userId": "u1"})

	frame := <-ch
	var msg envelope
	if err := json.Unmarshal(frame, &msg); err != nil {
		t.Fatalf("unmarshal frame: %v", err)
	}
	if msg.Type != "user-joined" {
		t.Fatalf("expected user-joined, got %s", msg.Type)
	}
}

func TestHubSendToUnknownConnectionIsSilent(t *testing.T) {
	hub := NewHub()
	hub.Send("nope", "user-joined", map[string]any{})
}

func TestHubDropsWhenBufferFull(t *testing.T) {
	hub := NewHub()
	ch := hub.Add("c1")

	for i := 0; i < sendBuffer+10; i++ {
		hub.Send("c1", "answer-submitted", map[string]any{"n": i})
	}
	if len(ch) != sendBuffer {
		t.Fatalf("expected buffer capped at %d, got %d", sendBuffer, len(ch))
	}
}

func TestHubRemoveClosesChannel(t *testing.T) {
	hub := NewHub()
	ch := hub.Add("c1")
	hub.Remove("c1")
	if _, ok := <-ch; ok {
		t.Fatalf("expected channel closed")
	}
	// Sending after removal must not panic.
	hub.Send("c1", "user-left", map[string]any{})
	hub.Remove("c1")
}

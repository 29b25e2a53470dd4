package gemini

import (
	"context"
	"encoding/json"
	"errors"
	"net/http"
	"net/http/httptest"
	"sync/atomic"
	"testing"
	"time"

	"classquiz/internal/domain"
)

func candidateReply(text string) string {
	data, _ := json.Marshal(map[string]any{
		"candidates": []map[string]any{
			{"content": map[string]any{"parts": []map[string]any{{"text": text}}}},
		},
	})
	return string(data)
}

func newTestClient(serverURL string) *Client {
	return New(Config{
		APIKey:     "test-key",
		BaseURL:    serverURL,
		Model:      "test-model",
		Timeout:    2 * time.Second,
		MaxRetries: 3,
	})
}

func TestGenerateQuizParsesFencedJSON(t *testing.T) {
	reply := "Here is your quiz:\n```json\n" + `{
		"title": "Go Basics",
		"questions": [
			{"question": "What is a goroutine?", "options": ["a","b","c","d"], "correctAnswer": 2, "explanation": "because"}
		]
	}` + "\n```"

	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		if r.URL.Query().Get("key") != "test-key" {
			t.Errorf("expected api key in query, got %q", r.URL.RawQuery)
		}
		w.Write([]byte(candidateReply(reply)))
	}))
	defer server.Close()

	quiz, err := newTestClient(server.URL).GenerateQuiz(context.Background(), "Go", "easy", 1)
	if err != nil {
		t.Fatalf("generate: %v", err)
	}
	if quiz.Title != "Go Basics" || len(quiz.Questions) != 1 || quiz.Questions[0].CorrectAnswer != 2 {
		t.Fatalf("unexpected quiz: %+v", quiz)
	}
}

func TestGenerateRetriesServerErrors(t *testing.T) {
	var calls atomic.Int32
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		if calls.Add(1) < 3 {
			w.WriteHeader(http.StatusInternalServerError)
			return
		}
		w.Write([]byte(candidateReply("All good.")))
	}))
	defer server.Close()

	text, err := newTestClient(server.URL).ExplainAnswer(context.Background(), "q", "a")
	if err != nil {
		t.Fatalf("explain: %v", err)
	}
	if text != "All good." {
		t.Fatalf("unexpected text: %q", text)
	}
	if calls.Load() != 3 {
		t.Fatalf("expected 3 calls, got %d", calls.Load())
	}
}

func TestGenerateSurfacesClientErrors(t *testing.T) {
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.WriteHeader(http.StatusBadRequest)
		w.Write([]byte(`{"error":{"code":400,"message":"bad prompt"}}`))
	}))
	defer server.Close()

	if _, err := newTestClient(server.URL).ExplainAnswer(context.Background(), "q", "a"); err == nil {
		t.Fatalf("expected error for 400 response")
	}
}

func TestDisabledWithoutAPIKey(t *testing.T) {
	client := New(Config{})
	if client.Enabled() {
		t.Fatalf("expected disabled without api key")
	}
	_, err := client.ExplainAnswer(context.Background(), "q", "a")
	if !errors.Is(err, domain.ErrGenerationDisabled) {
		t.Fatalf("expected ErrGenerationDisabled, got %v", err)
	}
}

func TestExtractJSON(t *testing.T) {
	cases := []struct {
		in      string
		want    string
		wantErr bool
	}{
		{in: `{"a":1}`, want: `{"a":1}`},
		{in: "prose before {\"a\":1} prose after", want: `{"a":1}`},
		{in: "no json here", wantErr: true},
	}
	for _, tc := range cases {
		got, err := extractJSON(tc.in)
		if tc.wantErr {
			if err == nil {
				t.Fatalf("expected error for %q", tc.in)
			}
			continue
		}
		if err != nil || got != tc.want {
			t.Fatalf("extractJSON(%q) = %q, %v", tc.in, got, err)
		}
	}
}

package groq

import (
	"context"
	"encoding/json"
	"io"
	"log/slog"
	"net/http"
	"net/http/httptest"
	"testing"
	"time"
)

func testLogger() *slog.Logger {
	return slog.New(slog.NewTextHandler(io.Discard, nil))
}

func testClient(serverURL string) *Client {
	c := NewClient("test-key", "test-model", "test-whisper", testLogger())
	c.baseURL = serverURL
	c.retryWait = func(int) time.Duration { return 0 }
	return c
}

func TestComplete_Success(t *testing.T) {
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		if r.URL.Path != "/chat/completions" {
			t.Errorf("unexpected path %s", r.URL.Path)
		}
		if got := r.Header.Get("Authorization"); got != "Bearer test-key" {
			t.Errorf("expected bearer auth, got %q", got)
		}

		var req chatRequest
		if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
			t.Fatalf("failed to decode request: %v", err)
		}
		if req.Model != "test-model" {
			t.Errorf("expected model test-model, got %q", req.Model)
		}
		if len(req.Messages) != 2 {
			t.Fatalf("expected system + user message, got %d", len(req.Messages))
		}
		if req.Messages[0].Role != "system" || req.Messages[0].Content != "you are a test" {
			t.Errorf("system message wrong: %+v", req.Messages[0])
		}
		if req.Temperature != 0.7 || req.MaxTokens != 500 || req.TopP != 0.9 {
			t.Errorf("generation params wrong: %+v", req)
		}

		json.NewEncoder(w).Encode(map[string]any{
			"choices": []map[string]any{
				{"message": map[string]string{"content": "Hello! How are you today?"}},
			},
		})
	}))
	defer server.Close()

	c := testClient(server.URL)
	got := c.Complete(context.Background(), "you are a test", []Message{{Role: "user", Content: "hello"}})
	if got != "Hello! How are you today?" {
		t.Errorf("unexpected reply %q", got)
	}
}

func TestComplete_RetriesThenSucceeds(t *testing.T) {
	attempts := 0
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		attempts++
		if attempts < 3 {
			w.WriteHeader(http.StatusInternalServerError)
			return
		}
		json.NewEncoder(w).Encode(map[string]any{
			"choices": []map[string]any{
				{"message": map[string]string{"content": "third time lucky"}},
			},
		})
	}))
	defer server.Close()

	c := testClient(server.URL)
	got := c.Complete(context.Background(), "sys", nil)
	if got != "third time lucky" {
		t.Errorf("unexpected reply %q", got)
	}
	if attempts != 3 {
		t.Errorf("expected 3 attempts, got %d", attempts)
	}
}

func TestComplete_FallbackAfterExhaustedRetries(t *testing.T) {
	attempts := 0
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		attempts++
		w.WriteHeader(http.StatusServiceUnavailable)
	}))
	defer server.Close()

	c := testClient(server.URL)
	got := c.Complete(context.Background(), "sys", nil)
	if got != Fallback {
		t.Errorf("expected fallback string, got %q", got)
	}
	if attempts != 3 {
		t.Errorf("expected 3 attempts, got %d", attempts)
	}
}

func TestComplete_EmptyChoices(t *testing.T) {
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		json.NewEncoder(w).Encode(map[string]any{"choices": []any{}})
	}))
	defer server.Close()

	c := testClient(server.URL)
	if got := c.Complete(context.Background(), "sys", nil); got != Fallback {
		t.Errorf("expected fallback on empty choices, got %q", got)
	}
}

package groq

import (
	"bytes"
	"context"
	"encoding/json"
	"errors"
	"io"
	"net/http"
	"net/http/httptest"
	"testing"
)

func TestTranscribe_Success(t *testing.T) {
	audio := []byte("fake-wav-bytes")

	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		if r.URL.Path != "/audio/transcriptions" {
			t.Errorf("unexpected path %s", r.URL.Path)
		}
		if err := r.ParseMultipartForm(1 << 20); err != nil {
			t.Fatalf("failed to parse multipart form: %v", err)
		}
		if got := r.FormValue("model"); got != "test-whisper" {
			t.Errorf("expected model test-whisper, got %q", got)
		}
		file, _, err := r.FormFile("file")
		if err != nil {
			t.Fatalf("missing file part: %v", err)
		}
		defer file.Close()
		uploaded, _ := io.ReadAll(file)
		if !bytes.Equal(uploaded, audio) {
			t.Error("uploaded audio does not match")
		}

		json.NewEncoder(w).Encode(map[string]string{"text": "  hello world \n"})
	}))
	defer server.Close()

	c := testClient(server.URL)
	got, err := c.Transcribe(context.Background(), audio)
	if err != nil {
		t.Fatalf("Transcribe failed: %v", err)
	}
	if got != "hello world" {
		t.Errorf("expected trimmed transcription, got %q", got)
	}
}

func TestTranscribe_APIError(t *testing.T) {
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.WriteHeader(http.StatusBadRequest)
		json.NewEncoder(w).Encode(map[string]any{
			"error": map[string]string{"type": "invalid_request_error", "message": "unsupported audio format"},
		})
	}))
	defer server.Close()

	c := testClient(server.URL)
	_, err := c.Transcribe(context.Background(), []byte("not-audio"))
	if !errors.Is(err, ErrTranscription) {
		t.Errorf("expected ErrTranscription, got %v", err)
	}
}

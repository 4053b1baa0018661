package tts

import (
	"bytes"
	"context"
	"encoding/binary"
	"io"
	"log/slog"
	"net/http"
	"net/http/httptest"
	"testing"
)

func testLogger() *slog.Logger {
	return slog.New(slog.NewTextHandler(io.Discard, nil))
}

func TestSynthesize_Success(t *testing.T) {
	want := []byte("mp3-audio-bytes")
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		if got := r.URL.Query().Get("voice"); got != "en-US-Standard-C" {
			t.Errorf("expected voice param, got %q", got)
		}
		if got := r.URL.Query().Get("text"); got != "Hello there!" {
			t.Errorf("expected text param, got %q", got)
		}
		w.Write(want)
	}))
	defer server.Close()

	c := NewClient("en-US-Standard-C", testLogger())
	c.baseURL = server.URL

	got := c.Synthesize(context.Background(), "Hello there!")
	if !bytes.Equal(got, want) {
		t.Errorf("expected upstream audio passthrough, got %d bytes", len(got))
	}
}

func TestSynthesize_FallsBackOnError(t *testing.T) {
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.WriteHeader(http.StatusBadGateway)
	}))
	defer server.Close()

	c := NewClient("en-US-Standard-C", testLogger())
	c.baseURL = server.URL

	got := c.Synthesize(context.Background(), "anything")
	if !bytes.Equal(got, FallbackTone()) {
		t.Error("expected the fallback tone on upstream failure")
	}
}

func TestFallbackTone_Deterministic(t *testing.T) {
	a := FallbackTone()
	b := FallbackTone()
	if !bytes.Equal(a, b) {
		t.Error("fallback tone must be byte-identical across calls")
	}
}

func TestFallbackTone_ValidWAV(t *testing.T) {
	tone := FallbackTone()

	if len(tone) < 44 {
		t.Fatalf("tone too short for a WAV header: %d bytes", len(tone))
	}
	if string(tone[0:4]) != "RIFF" || string(tone[8:12]) != "WAVE" {
		t.Error("missing RIFF/WAVE markers")
	}
	if string(tone[36:40]) != "data" {
		t.Error("missing data chunk marker")
	}

	sampleRate := binary.LittleEndian.Uint32(tone[24:28])
	if sampleRate != toneSampleRate {
		t.Errorf("expected sample rate %d, got %d", toneSampleRate, sampleRate)
	}
	dataLen := binary.LittleEndian.Uint32(tone[40:44])
	if int(dataLen) != len(tone)-44 {
		t.Errorf("data length %d does not match payload %d", dataLen, len(tone)-44)
	}
	// One second of mono 16-bit samples.
	if dataLen != toneSampleRate*2 {
		t.Errorf("expected %d payload bytes, got %d", toneSampleRate*2, dataLen)
	}

	// Fades mean the edges are silent and the middle is not.
	first := int16(binary.LittleEndian.Uint16(tone[44:46]))
	if first != 0 {
		t.Errorf("expected silence at the start, got %d", first)
	}
	// Sample 22075 sits a quarter period past the half-second mark, well away
	// from any zero crossing.
	off := 44 + 22075*2
	midSample := int16(binary.LittleEndian.Uint16(tone[off : off+2]))
	if midSample == 0 {
		t.Error("expected a non-zero sample mid-tone")
	}
}

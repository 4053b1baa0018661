package groq

import (
	"bytes"
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"io"
	"mime/multipart"
	"net/http"
	"strings"
)

// ErrTranscription wraps any failure to turn audio into text. The request
// that carried the audio fails as a whole; no session state is committed.
var ErrTranscription = errors.New("transcription failed")

type transcriptionResponse struct {
	Text string `json:"text"`
}

// Transcribe uploads recorded audio to the whisper endpoint and returns the
// transcribed text, trimmed.
func (c *Client) Transcribe(ctx context.Context, audio []byte) (string, error) {
	var buf bytes.Buffer
	mw := multipart.NewWriter(&buf)

	part, err := mw.CreateFormFile("file", "utterance.wav")
	if err != nil {
		return "", fmt.Errorf("%w: create form file: %v", ErrTranscription, err)
	}
	if _, err := part.Write(audio); err != nil {
		return "", fmt.Errorf("%w: write audio: %v", ErrTranscription, err)
	}
	if err := mw.WriteField("model", c.whisperModel); err != nil {
		return "", fmt.Errorf("%w: write model field: %v", ErrTranscription, err)
	}
	if err := mw.Close(); err != nil {
		return "", fmt.Errorf("%w: close writer: %v", ErrTranscription, err)
	}

	req, err := http.NewRequestWithContext(ctx, http.MethodPost, c.baseURL+"/audio/transcriptions", &buf)
	if err != nil {
		return "", fmt.Errorf("%w: create request: %v", ErrTranscription, err)
	}
	req.Header.Set("Content-Type", mw.FormDataContentType())
	req.Header.Set("Authorization", "Bearer "+c.apiKey)

	resp, err := c.client.Do(req)
	if err != nil {
		return "", fmt.Errorf("%w: api call: %v", ErrTranscription, err)
	}
	defer resp.Body.Close()

	respBody, err := io.ReadAll(resp.Body)
	if err != nil {
		return "", fmt.Errorf("%w: read response: %v", ErrTranscription, err)
	}

	if resp.StatusCode != http.StatusOK {
		var errResp errorResponse
		if json.Unmarshal(respBody, &errResp) == nil && errResp.Error.Message != "" {
			return "", fmt.Errorf("%w: api error %d: %s", ErrTranscription, resp.StatusCode, errResp.Error.Message)
		}
		return "", fmt.Errorf("%w: api error %d", ErrTranscription, resp.StatusCode)
	}

	var apiResp transcriptionResponse
	if err := json.Unmarshal(respBody, &apiResp); err != nil {
		return "", fmt.Errorf("%w: unmarshal response: %v", ErrTranscription, err)
	}
	return strings.TrimSpace(apiResp.Text), nil
}

// Package tts is the speech-synthesis collaborator. Synthesis never fails
// from the caller's viewpoint: when the upstream voice service is down the
// client degrades to a short generated tone.
package tts

import (
	"context"
	"fmt"
	"io"
	"log/slog"
	"net/http"
	"net/url"
	"time"
)

const defaultBaseURL = "https://api.streamelements.com/kappa/v2/speech"

type Client struct {
	voice   string
	baseURL string
	client  *http.Client
	logger  *slog.Logger
}

func NewClient(voice string, logger *slog.Logger) *Client {
	return &Client{
		voice:   voice,
		baseURL: defaultBaseURL,
		client:  &http.Client{Timeout: 30 * time.Second},
		logger:  logger,
	}
}

// Synthesize converts text to audio bytes. On any upstream failure it returns
// the fallback tone instead.
func (c *Client) Synthesize(ctx context.Context, text string) []byte {
	audio, err := c.synthesize(ctx, text)
	if err != nil {
		c.logger.Warn("speech synthesis failed, using fallback tone", "error", err)
		return FallbackTone()
	}
	return audio
}

func (c *Client) synthesize(ctx context.Context, text string) ([]byte, error) {
	params := url.Values{}
	params.Set("voice", c.voice)
	params.Set("text", text)

	req, err := http.NewRequestWithContext(ctx, http.MethodGet, c.baseURL+"?"+params.Encode(), nil)
	if err != nil {
		return nil, fmt.Errorf("create request: %w", err)
	}

	resp, err := c.client.Do(req)
	if err != nil {
		return nil, fmt.Errorf("api call: %w", err)
	}
	defer resp.Body.Close()

	if resp.StatusCode != http.StatusOK {
		return nil, fmt.Errorf("api error %d", resp.StatusCode)
	}

	audio, err := io.ReadAll(resp.Body)
	if err != nil {
		return nil, fmt.Errorf("read audio: %w", err)
	}
	if len(audio) == 0 {
		return nil, fmt.Errorf("empty audio body")
	}
	return audio, nil
}

// Package groq is the HTTP client for the Groq OpenAI-compatible API. It
// carries both external speech/language collaborators: chat completions for
// reply generation and whisper for audio transcription.
package groq

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"io"
	"log/slog"
	"net/http"
	"time"
)

const defaultBaseURL = "https://api.groq.com/openai/v1"

// Fallback is returned by Complete when every attempt fails. Callers rely on
// getting this string instead of an error: generation degrades, it never
// propagates failure.
const Fallback = "I'm sorry, I'm having trouble generating a response right now. Could you please repeat what you said?"

const (
	maxAttempts = 3
	retryBase   = 1 * time.Second
)

type Client struct {
	apiKey       string
	model        string
	whisperModel string
	baseURL      string
	client       *http.Client
	logger       *slog.Logger

	// retryWait is overridable in tests to avoid sleeping.
	retryWait func(attempt int) time.Duration
}

func NewClient(apiKey, model, whisperModel string, logger *slog.Logger) *Client {
	return &Client{
		apiKey:       apiKey,
		model:        model,
		whisperModel: whisperModel,
		baseURL:      defaultBaseURL,
		client:       &http.Client{Timeout: 60 * time.Second},
		logger:       logger,
		retryWait: func(attempt int) time.Duration {
			return retryBase << attempt
		},
	}
}

type Message struct {
	Role    string `json:"role"`
	Content string `json:"content"`
}

type chatRequest struct {
	Model       string    `json:"model"`
	Messages    []Message `json:"messages"`
	Temperature float64   `json:"temperature"`
	MaxTokens   int       `json:"max_tokens"`
	TopP        float64   `json:"top_p"`
}

type chatResponse struct {
	Choices []struct {
		Message struct {
			Content string `json:"content"`
		} `json:"message"`
	} `json:"choices"`
}

type errorResponse struct {
	Error struct {
		Type    string `json:"type"`
		Message string `json:"message"`
	} `json:"error"`
}

// Complete generates a reply for the given system prompt and prior messages.
// Transient failures are retried with exponential backoff (1s, 2s); after the
// last attempt the fixed Fallback string is returned instead of an error.
func (c *Client) Complete(ctx context.Context, system string, messages []Message) string {
	for attempt := 0; attempt < maxAttempts; attempt++ {
		text, err := c.complete(ctx, system, messages)
		if err == nil {
			return text
		}
		c.logger.Warn("chat completion failed", "attempt", attempt+1, "error", err)
		if attempt == maxAttempts-1 {
			break
		}
		select {
		case <-time.After(c.retryWait(attempt)):
		case <-ctx.Done():
			return Fallback
		}
	}
	return Fallback
}

func (c *Client) complete(ctx context.Context, system string, messages []Message) (string, error) {
	reqBody := chatRequest{
		Model:       c.model,
		Messages:    append([]Message{{Role: "system", Content: system}}, messages...),
		Temperature: 0.7,
		MaxTokens:   500,
		TopP:        0.9,
	}

	body, err := json.Marshal(reqBody)
	if err != nil {
		return "", fmt.Errorf("marshal request: %w", err)
	}

	req, err := http.NewRequestWithContext(ctx, http.MethodPost, c.baseURL+"/chat/completions", bytes.NewReader(body))
	if err != nil {
		return "", fmt.Errorf("create request: %w", err)
	}
	req.Header.Set("Content-Type", "application/json")
	req.Header.Set("Authorization", "Bearer "+c.apiKey)

	resp, err := c.client.Do(req)
	if err != nil {
		return "", fmt.Errorf("api call: %w", err)
	}
	defer resp.Body.Close()

	respBody, err := io.ReadAll(resp.Body)
	if err != nil {
		return "", fmt.Errorf("read response: %w", err)
	}

	if resp.StatusCode != http.StatusOK {
		var errResp errorResponse
		if json.Unmarshal(respBody, &errResp) == nil && errResp.Error.Message != "" {
			return "", fmt.Errorf("api error %d: %s", resp.StatusCode, errResp.Error.Message)
		}
		return "", fmt.Errorf("api error %d: %s", resp.StatusCode, string(respBody))
	}

	var apiResp chatResponse
	if err := json.Unmarshal(respBody, &apiResp); err != nil {
		return "", fmt.Errorf("unmarshal response: %w", err)
	}
	if len(apiResp.Choices) == 0 {
		return "", fmt.Errorf("empty response choices")
	}
	return apiResp.Choices[0].Message.Content, nil
}

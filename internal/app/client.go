package app

import (
	"bytes"
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"io"
	"net/http"
	"strings"
	"time"
)

// ModelClient is the boundary to the language model. Implementations must
// return the completion text or an error; callers convert errors into the
// user-facing apology, never propagate them as fatal.
type ModelClient interface {
	Complete(ctx context.Context, system string, messages []ChatMessage, temperature float64, maxTokens int) (string, error)
}

// AnthropicClient talks to an Anthropic-style messages API over HTTP.
type AnthropicClient struct {
	APIKey  string
	Model   string
	BaseURL string
	HTTP    *http.Client
}

type anthropicRequest struct {
	Model       string        `json:"model"`
	System      string        `json:"system,omitempty"`
	MaxTokens   int           `json:"max_tokens"`
	Temperature float64       `json:"temperature,omitempty"`
	Messages    []ChatMessage `json:"messages"`
}

type anthropicResponse struct {
	Content []struct {
		Type string `json:"type"`
		Text string `json:"text,omitempty"`
	} `json:"content"`
	Error *struct {
		Message string `json:"message"`
		Type    string `json:"type"`
	} `json:"error,omitempty"`
	StopReason string `json:"stop_reason,omitempty"`
}

func NewAnthropicClient(apiKey, model, baseURL string) *AnthropicClient {
	if model == "" {
		model = "claude-3-5-sonnet-20240620"
	}
	if baseURL == "" {
		baseURL = "https://api.anthropic.com/v1/messages"
	}
	return &AnthropicClient{
		APIKey:  apiKey,
		Model:   model,
		BaseURL: baseURL,
		HTTP:    &http.Client{Timeout: 60 * time.Second},
	}
}

func (c *AnthropicClient) Complete(ctx context.Context, system string, messages []ChatMessage, temperature float64, maxTokens int) (string, error) {
	if c.APIKey == "mock" || c.BaseURL == "mock://" {
		return c.mockComplete(messages)
	}
	if c.APIKey == "" {
		return "", errors.New("anthropic api key is required")
	}
	if maxTokens <= 0 {
		maxTokens = 1000
	}

	// Only role/content cross this boundary; ChatMessage carries nothing else.
	reqBody := anthropicRequest{
		Model:       c.Model,
		System:      system,
		MaxTokens:   maxTokens,
		Temperature: temperature,
		Messages:    messages,
	}
	payload, err := json.Marshal(reqBody)
	if err != nil {
		return "", err
	}
	request, err := http.NewRequestWithContext(ctx, http.MethodPost, c.BaseURL, bytes.NewReader(payload))
	if err != nil {
		return "", err
	}
	request.Header.Set("Content-Type", "application/json")
	request.Header.Set("x-api-key", c.APIKey)
	request.Header.Set("anthropic-version", "2023-06-01")

	resp, err := c.HTTP.Do(request)
	if err != nil {
		return "", fmt.Errorf("api request failed: %w", err)
	}
	defer resp.Body.Close()

	body, err := io.ReadAll(resp.Body)
	if err != nil {
		return "", err
	}

	var decoded anthropicResponse
	if err := json.Unmarshal(body, &decoded); err != nil {
		return "", fmt.Errorf("decode response: %w", err)
	}
	if decoded.Error != nil {
		return "", fmt.Errorf("api error (%s): %s", decoded.Error.Type, decoded.Error.Message)
	}
	if resp.StatusCode != http.StatusOK {
		return "", fmt.Errorf("api returned status %d", resp.StatusCode)
	}

	var out strings.Builder
	for _, block := range decoded.Content {
		if block.Type == "" || block.Type == "text" {
			out.WriteString(block.Text)
		}
	}
	text := strings.TrimSpace(out.String())
	if text == "" {
		return "", errors.New("empty completion")
	}
	return text, nil
}

// mockComplete produces canned replies for offline demo runs. The skill
// discovery reply carries a marker block so the extraction path is
// exercisable without a key.
func (c *AnthropicClient) mockComplete(messages []ChatMessage) (string, error) {
	last := ""
	if len(messages) > 0 {
		last = strings.ToLower(messages[len(messages)-1].Content)
	}
	if strings.Contains(last, "skill") || strings.Contains(last, "experience") || strings.Contains(last, "work") {
		return "Thanks for sharing! Based on what you've told me, here are the strengths I see:\n\n" +
			skillsStartMarker + "\n" +
			"1. Communication: you explain things clearly and listen well\n" +
			"2. Problem-solving: you troubleshoot issues on your own\n" +
			"3. Organization: you keep track of schedules and details\n" +
			skillsEndMarker + "\n\n" +
			"Select up to three of these to focus your job search on.", nil
	}
	return "That's a great question. Let's keep exploring what kind of work would suit you best.", nil
}

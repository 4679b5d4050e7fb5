package llm

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"io"
	"net/http"
	"time"
)

// Client talks to an OpenAI-compatible chat completions API.
type Client struct {
	BaseURL string
	APIKey  string
	Model   string
	client  *http.Client
}

// NewClient creates a new chat completions client. A zero timeout leaves the
// underlying HTTP client without a deadline.
func NewClient(baseURL, apiKey, model string, timeout time.Duration) *Client {
	return &Client{
		BaseURL: baseURL,
		APIKey:  apiKey,
		Model:   model,
		client:  &http.Client{Timeout: timeout},
	}
}

// ChatMessage represents a single message in a chat conversation.
type ChatMessage struct {
	Role    string `json:"role"`
	Content string `json:"content"`
}

// ResponseFormat selects the completion output mode.
type ResponseFormat struct {
	Type string `json:"type"`
}

// ChatRequest represents the request payload for chat completions.
type ChatRequest struct {
	Model          string          `json:"model"`
	Messages       []ChatMessage   `json:"messages"`
	Temperature    float32         `json:"temperature,omitempty"`
	MaxTokens      int             `json:"max_tokens,omitempty"`
	ResponseFormat *ResponseFormat `json:"response_format,omitempty"`
}

// ChatChoiceMessage represents the message in a chat choice.
type ChatChoiceMessage struct {
	Role    string `json:"role"`
	Content string `json:"content"`
}

// ChatChoice represents a single choice in the chat response.
type ChatChoice struct {
	Index        int               `json:"index"`
	Message      ChatChoiceMessage `json:"message"`
	FinishReason string            `json:"finish_reason"`
}

// ChatResponse represents the response from the chat completions API.
type ChatResponse struct {
	ID      string       `json:"id"`
	Object  string       `json:"object"`
	Choices []ChatChoice `json:"choices"`
}

// Generate sends a chat completion request and returns the completion text.
func (c *Client) Generate(ctx context.Context, prompt string, params GenerateParams) (string, error) {
	return c.complete(ctx, prompt, params, nil)
}

// GenerateJSON sends a chat completion request in JSON mode. The model is
// constrained to emit a JSON object; the raw text is returned unparsed so
// callers can run their own repair pass.
func (c *Client) GenerateJSON(ctx context.Context, prompt string, params GenerateParams) (string, error) {
	return c.complete(ctx, prompt, params, &ResponseFormat{Type: "json_object"})
}

func (c *Client) complete(ctx context.Context, prompt string, params GenerateParams, format *ResponseFormat) (string, error) {
	url := fmt.Sprintf("%s/v1/chat/completions", c.BaseURL)

	payload := ChatRequest{
		Model: c.Model,
		Messages: []ChatMessage{
			{Role: "user", Content: prompt},
		},
		Temperature:    params.Temperature,
		MaxTokens:      params.MaxTokens,
		ResponseFormat: format,
	}

	body, err := json.Marshal(payload)
	if err != nil {
		return "", &GenerationError{Err: fmt.Errorf("failed to marshal request: %w", err)}
	}

	req, err := http.NewRequestWithContext(ctx, "POST", url, bytes.NewBuffer(body))
	if err != nil {
		return "", &GenerationError{Err: fmt.Errorf("failed to create request: %w", err)}
	}

	req.Header.Set("Authorization", fmt.Sprintf("Bearer %s", c.APIKey))
	req.Header.Set("Content-Type", "application/json")

	resp, err := c.client.Do(req)
	if err != nil {
		return "", &GenerationError{Err: fmt.Errorf("failed to send request: %w", err)}
	}
	defer func() {
		_ = resp.Body.Close()
	}()

	if resp.StatusCode != http.StatusOK {
		raw, _ := io.ReadAll(resp.Body)
		return "", &GenerationError{Status: resp.StatusCode, Body: string(raw)}
	}

	var chatResp ChatResponse
	if err := json.NewDecoder(resp.Body).Decode(&chatResp); err != nil {
		return "", &GenerationError{Err: fmt.Errorf("failed to decode response: %w", err)}
	}

	if len(chatResp.Choices) == 0 {
		return "", &GenerationError{Err: fmt.Errorf("no choices returned")}
	}

	return chatResp.Choices[0].Message.Content, nil
}

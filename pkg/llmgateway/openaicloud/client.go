// Package openaicloud implements the llmgateway.Client contract against the
// OpenAI chat completions API: a hand-rolled HTTP client (manual
// request/response structs over net/http) rather than a generated SDK.
package openaicloud

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"io"
	"net/http"
	"time"

	"github.com/regsentry/regsentry/pkg/llmgateway"
)

// Client talks to the OpenAI API (or an OpenAI-compatible endpoint).
type Client struct {
	httpClient *http.Client
	baseURL    string
	apiKey     string
	model      string
	minTokens  int
}

// New constructs a Client. baseURL defaults to the public OpenAI API.
// apiKey may be overridden per-request via X-LLM-API-Key.
func New(apiKey, baseURL, model string, minTokens int) *Client {
	if baseURL == "" {
		baseURL = "https://api.openai.com/v1"
	}
	if model == "" {
		model = "gpt-4o-mini"
	}
	return &Client{
		httpClient: &http.Client{Timeout: 90 * time.Second},
		baseURL:    baseURL,
		apiKey:     apiKey,
		model:      model,
		minTokens:  minTokens,
	}
}

// WithAPIKey returns a shallow copy of c using apiKey instead, used when a
// request carries X-LLM-API-Key.
func (c *Client) WithAPIKey(apiKey string) *Client {
	clone := *c
	clone.apiKey = apiKey
	return &clone
}

// Name identifies this backend for logging.
func (c *Client) Name() string { return "openai-cloud" }

type chatMessage struct {
	Role    string `json:"role"`
	Content string `json:"content"`
}

type chatRequest struct {
	Model     string        `json:"model"`
	Messages  []chatMessage `json:"messages"`
	MaxTokens int           `json:"max_tokens"`
}

type chatResponse struct {
	Choices []struct {
		Message chatMessage `json:"message"`
	} `json:"choices"`
	Error *struct {
		Message string `json:"message"`
	} `json:"error,omitempty"`
}

// Generate implements llmgateway.Client.
func (c *Client) Generate(ctx context.Context, prompt string, maxTokens int) (string, error) {
	if c.apiKey == "" {
		return "", fmt.Errorf("%w: OPENAI_API_KEY not configured", llmgateway.ErrLLMAuthError)
	}

	floor := c.minTokens
	if floor <= 0 {
		floor = llmgateway.MinTokens
	}
	if maxTokens < floor {
		maxTokens = floor
	}

	reqBody := chatRequest{
		Model:     c.model,
		Messages:  []chatMessage{{Role: "user", Content: prompt}},
		MaxTokens: maxTokens,
	}
	payload, err := json.Marshal(reqBody)
	if err != nil {
		return "", fmt.Errorf("%w: marshal request: %v", llmgateway.ErrLLMInvalidOutput, err)
	}

	httpReq, err := http.NewRequestWithContext(ctx, http.MethodPost, c.baseURL+"/chat/completions", bytes.NewReader(payload))
	if err != nil {
		return "", fmt.Errorf("%w: %v", llmgateway.ErrLLMUnavailable, err)
	}
	httpReq.Header.Set("Content-Type", "application/json")
	httpReq.Header.Set("Authorization", "Bearer "+c.apiKey)

	resp, err := c.httpClient.Do(httpReq)
	if err != nil {
		return "", fmt.Errorf("%w: %v", llmgateway.ErrLLMUnavailable, err)
	}
	defer resp.Body.Close()

	body, _ := io.ReadAll(resp.Body)

	switch {
	case resp.StatusCode == http.StatusTooManyRequests:
		return "", llmgateway.ErrLLMRateLimited
	case resp.StatusCode == http.StatusUnauthorized || resp.StatusCode == http.StatusForbidden:
		return "", llmgateway.ErrLLMAuthError
	case resp.StatusCode >= 500:
		return "", fmt.Errorf("%w: openai returned %d", llmgateway.ErrLLMUnavailable, resp.StatusCode)
	case resp.StatusCode != http.StatusOK:
		return "", fmt.Errorf("%w: openai returned %d: %s", llmgateway.ErrLLMInvalidOutput, resp.StatusCode, string(body))
	}

	var out chatResponse
	if err := json.Unmarshal(body, &out); err != nil {
		return "", fmt.Errorf("%w: decode response: %v", llmgateway.ErrLLMInvalidOutput, err)
	}
	if out.Error != nil {
		return "", fmt.Errorf("%w: %s", llmgateway.ErrLLMInvalidOutput, out.Error.Message)
	}
	if len(out.Choices) == 0 || out.Choices[0].Message.Content == "" {
		return "", llmgateway.ErrLLMEmptyResponse
	}
	return out.Choices[0].Message.Content, nil
}

// Package ollamalocal implements the llmgateway.Client contract against a
// local Ollama server's /api/generate endpoint.
package ollamalocal

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"net/http"
	"time"

	"github.com/regsentry/regsentry/pkg/llmgateway"
)

// Client talks to a local Ollama instance.
type Client struct {
	httpClient *http.Client
	baseURL    string
	model      string
	minTokens  int
}

// New constructs a Client. baseURL defaults to http://localhost:11434.
func New(baseURL, model string, minTokens int) *Client {
	if baseURL == "" {
		baseURL = "http://localhost:11434"
	}
	if model == "" {
		model = "llama3"
	}
	return &Client{
		httpClient: &http.Client{Timeout: 60 * time.Second},
		baseURL:    baseURL,
		model:      model,
		minTokens:  minTokens,
	}
}

// Name identifies this backend for logging.
func (c *Client) Name() string { return "ollama-local" }

type generateRequest struct {
	Model   string         `json:"model"`
	Prompt  string         `json:"prompt"`
	Stream  bool           `json:"stream"`
	Options map[string]any `json:"options,omitempty"`
}

type generateResponse struct {
	Response string `json:"response"`
	Done     bool   `json:"done"`
}

// Generate implements llmgateway.Client.
func (c *Client) Generate(ctx context.Context, prompt string, maxTokens int) (string, error) {
	floor := c.minTokens
	if floor <= 0 {
		floor = llmgateway.MinTokens
	}
	if maxTokens < floor {
		maxTokens = floor
	}

	reqBody := generateRequest{
		Model:  c.model,
		Prompt: prompt,
		Stream: false,
		Options: map[string]any{
			"num_predict": maxTokens,
		},
	}
	payload, err := json.Marshal(reqBody)
	if err != nil {
		return "", fmt.Errorf("%w: marshal request: %v", llmgateway.ErrLLMInvalidOutput, err)
	}

	httpReq, err := http.NewRequestWithContext(ctx, http.MethodPost, c.baseURL+"/api/generate", bytes.NewReader(payload))
	if err != nil {
		return "", fmt.Errorf("%w: %v", llmgateway.ErrLLMUnavailable, err)
	}
	httpReq.Header.Set("Content-Type", "application/json")

	resp, err := c.httpClient.Do(httpReq)
	if err != nil {
		return "", fmt.Errorf("%w: %v", llmgateway.ErrLLMUnavailable, err)
	}
	defer resp.Body.Close()

	if resp.StatusCode == http.StatusTooManyRequests {
		return "", llmgateway.ErrLLMRateLimited
	}
	if resp.StatusCode == http.StatusUnauthorized || resp.StatusCode == http.StatusForbidden {
		return "", llmgateway.ErrLLMAuthError
	}
	if resp.StatusCode >= 500 {
		return "", fmt.Errorf("%w: ollama returned %d", llmgateway.ErrLLMUnavailable, resp.StatusCode)
	}
	if resp.StatusCode != http.StatusOK {
		return "", fmt.Errorf("%w: ollama returned %d", llmgateway.ErrLLMInvalidOutput, resp.StatusCode)
	}

	var out generateResponse
	if err := json.NewDecoder(resp.Body).Decode(&out); err != nil {
		return "", fmt.Errorf("%w: decode response: %v", llmgateway.ErrLLMInvalidOutput, err)
	}
	if out.Response == "" {
		return "", llmgateway.ErrLLMEmptyResponse
	}
	return out.Response, nil
}

// Package geminicloud implements the llmgateway.Client contract against
// Google's Gemini generateContent API, mirroring
// itsneelabh-gomind/ai/providers/gemini's request/response shape.
package geminicloud

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

// Client talks to the Gemini API.
type Client struct {
	httpClient *http.Client
	baseURL    string
	apiKey     string
	model      string
	minTokens  int
}

// New constructs a Client.
func New(apiKey, baseURL, model string, minTokens int) *Client {
	if baseURL == "" {
		baseURL = "https://generativelanguage.googleapis.com/v1beta"
	}
	if model == "" {
		model = "gemini-1.5-flash"
	}
	return &Client{
		httpClient: &http.Client{Timeout: 90 * time.Second},
		baseURL:    baseURL,
		apiKey:     apiKey,
		model:      model,
		minTokens:  minTokens,
	}
}

// WithAPIKey returns a shallow copy of c using apiKey instead.
func (c *Client) WithAPIKey(apiKey string) *Client {
	clone := *c
	clone.apiKey = apiKey
	return &clone
}

// Name identifies this backend for logging.
func (c *Client) Name() string { return "gemini-cloud" }

type geminiPart struct {
	Text string `json:"text"`
}

type geminiContent struct {
	Parts []geminiPart `json:"parts"`
}

type generationConfig struct {
	MaxOutputTokens int `json:"maxOutputTokens"`
}

type generateContentRequest struct {
	Contents         []geminiContent  `json:"contents"`
	GenerationConfig generationConfig `json:"generationConfig"`
}

type generateContentResponse struct {
	Candidates []struct {
		Content geminiContent `json:"content"`
	} `json:"candidates"`
	Error *struct {
		Message string `json:"message"`
		Status  string `json:"status"`
	} `json:"error,omitempty"`
}

// Generate implements llmgateway.Client.
func (c *Client) Generate(ctx context.Context, prompt string, maxTokens int) (string, error) {
	if c.apiKey == "" {
		return "", fmt.Errorf("%w: GEMINI_API_KEY not configured", llmgateway.ErrLLMAuthError)
	}

	floor := c.minTokens
	if floor <= 0 {
		floor = llmgateway.MinTokens
	}
	if maxTokens < floor {
		maxTokens = floor
	}

	reqBody := generateContentRequest{
		Contents: []geminiContent{{Parts: []geminiPart{{Text: prompt}}}},
		GenerationConfig: generationConfig{
			MaxOutputTokens: maxTokens,
		},
	}
	payload, err := json.Marshal(reqBody)
	if err != nil {
		return "", fmt.Errorf("%w: marshal request: %v", llmgateway.ErrLLMInvalidOutput, err)
	}

	url := fmt.Sprintf("%s/models/%s:generateContent?key=%s", c.baseURL, c.model, c.apiKey)
	httpReq, err := http.NewRequestWithContext(ctx, http.MethodPost, url, bytes.NewReader(payload))
	if err != nil {
		return "", fmt.Errorf("%w: %v", llmgateway.ErrLLMUnavailable, err)
	}
	httpReq.Header.Set("Content-Type", "application/json")

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
		return "", fmt.Errorf("%w: gemini returned %d", llmgateway.ErrLLMUnavailable, resp.StatusCode)
	case resp.StatusCode != http.StatusOK:
		return "", fmt.Errorf("%w: gemini returned %d: %s", llmgateway.ErrLLMInvalidOutput, resp.StatusCode, string(body))
	}

	var out generateContentResponse
	if err := json.Unmarshal(body, &out); err != nil {
		return "", fmt.Errorf("%w: decode response: %v", llmgateway.ErrLLMInvalidOutput, err)
	}
	if out.Error != nil {
		return "", fmt.Errorf("%w: %s", llmgateway.ErrLLMInvalidOutput, out.Error.Message)
	}
	if len(out.Candidates) == 0 || len(out.Candidates[0].Content.Parts) == 0 || out.Candidates[0].Content.Parts[0].Text == "" {
		return "", llmgateway.ErrLLMEmptyResponse
	}
	return out.Candidates[0].Content.Parts[0].Text, nil
}

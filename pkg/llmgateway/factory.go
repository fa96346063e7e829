package llmgateway

import (
	"fmt"

	"github.com/regsentry/regsentry/pkg/llmgateway/geminicloud"
	"github.com/regsentry/regsentry/pkg/llmgateway/ollamalocal"
	"github.com/regsentry/regsentry/pkg/llmgateway/openaicloud"
)

// Backend names selectable via the LLM_TYPE configuration key.
const (
	BackendOllama = "ollama"
	BackendOpenAI = "openai"
	BackendGemini = "gemini"
)

// Config carries the subset of pkg/config.Config needed to construct a
// backend client.
type Config struct {
	LLMType string

	OllamaBaseURL string
	OllamaModel   string

	OpenAIAPIKey string
	OpenAIModel  string

	GeminiAPIKey string
	GeminiModel  string

	MinTokens int
}

// New constructs the backend named by cfg.LLMType (Ollama when empty),
// wrapped in the gateway's retry policy.
func New(cfg Config) (Client, error) {
	client, err := newBackend(cfg)
	if err != nil {
		return nil, err
	}
	return WithRetry(client), nil
}

func newBackend(cfg Config) (Client, error) {
	switch cfg.LLMType {
	case BackendOllama, "":
		return ollamalocal.New(cfg.OllamaBaseURL, cfg.OllamaModel, cfg.MinTokens), nil
	case BackendOpenAI:
		return openaicloud.New(cfg.OpenAIAPIKey, "", cfg.OpenAIModel, cfg.MinTokens), nil
	case BackendGemini:
		return geminicloud.New(cfg.GeminiAPIKey, "", cfg.GeminiModel, cfg.MinTokens), nil
	default:
		return nil, fmt.Errorf("llmgateway: unknown LLM_TYPE %q", cfg.LLMType)
	}
}

// WithOverrideAPIKey returns a client using apiKey in place of the
// configured credential, for the per-request X-LLM-API-Key header.
// Backends without per-request credentials (ollama) are returned
// unchanged.
func WithOverrideAPIKey(client Client, apiKey string) Client {
	if apiKey == "" {
		return client
	}
	switch c := client.(type) {
	case *retrying:
		return &retrying{inner: WithOverrideAPIKey(c.inner, apiKey)}
	case *openaicloud.Client:
		return c.WithAPIKey(apiKey)
	case *geminicloud.Client:
		return c.WithAPIKey(apiKey)
	default:
		return client
	}
}

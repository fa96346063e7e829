// Package llmgateway is the pluggable LLM abstraction (C3): a uniform
// generate(prompt, max_tokens) contract over three concrete backends
// (ollama-local, gemini-cloud, openai-cloud), with JSON-extraction helpers
// for parsing structured model output.
//
// Each backend is a minimal hand-rolled HTTP client (net/http, a
// baseURL/apiKey pair, context-scoped calls), selected by name through a
// registry-plus-factory pattern.
package llmgateway

import "context"

// MinTokens is the floor enforced on every call's maxTokens,
// overridable via the LLM_MIN_TOKENS configuration key.
const MinTokens = 100

// Client is the uniform contract every backend implements.
type Client interface {
	// Generate synchronously produces text for prompt. Implementations
	// must raise ErrLLMEmptyResponse rather than returning "".
	Generate(ctx context.Context, prompt string, maxTokens int) (string, error)

	// Name identifies the backend for logging (e.g. "ollama-local").
	Name() string
}

// clampMaxTokens enforces the configured floor on maxTokens so that models
// which spend tokens on internal reasoning before producing visible text
// are not starved.
func clampMaxTokens(maxTokens, floor int) int {
	if floor <= 0 {
		floor = MinTokens
	}
	if maxTokens < floor {
		return floor
	}
	return maxTokens
}

package llmgateway

import "errors"

// Error taxonomy for the LLM gateway.
var (
	// ErrLLMUnavailable covers network failures and HTTP 5xx responses.
	// The gateway retries once with backoff before surfacing this.
	ErrLLMUnavailable = errors.New("llmgateway: backend unavailable")

	// ErrLLMRateLimited covers HTTP 429 responses. Not retried internally;
	// surfaced to the caller.
	ErrLLMRateLimited = errors.New("llmgateway: rate limited")

	// ErrLLMInvalidOutput marks output that cannot be used. Agents wrap it
	// when a response's JSON cannot be parsed, and the backends return it
	// from Generate when the request cannot be encoded, the response cannot
	// be decoded or reports an error, or the status code is one none of the
	// other errors covers.
	ErrLLMInvalidOutput = errors.New("llmgateway: invalid output")

	// ErrLLMAuthError covers authentication failures (e.g. HTTP 401/403).
	// Fatal: never retried.
	ErrLLMAuthError = errors.New("llmgateway: authentication failed")

	// ErrLLMEmptyResponse is raised when a backend returns empty text after
	// a successful call.
	ErrLLMEmptyResponse = errors.New("llmgateway: empty response")
)

package llmgateway

import (
	"context"
	"errors"

	"github.com/cenkalti/backoff/v4"
)

// retrying wraps a Client so that ErrLLMUnavailable is retried exactly once
// with backoff before being surfaced. Rate-limit and
// auth errors are never retried.
type retrying struct {
	inner Client
}

// WithRetry decorates client with the gateway's single-retry-with-backoff
// policy, built on cenkalti/backoff/v4.
func WithRetry(client Client) Client {
	return &retrying{inner: client}
}

func (r *retrying) Name() string { return r.inner.Name() }

func (r *retrying) Generate(ctx context.Context, prompt string, maxTokens int) (string, error) {
	policy := backoff.WithMaxRetries(backoff.NewExponentialBackOff(), 1)

	var text string
	op := func() error {
		var err error
		text, err = r.inner.Generate(ctx, prompt, maxTokens)
		if errors.Is(err, ErrLLMUnavailable) {
			return err // retryable
		}
		if err != nil {
			return backoff.Permanent(err)
		}
		return nil
	}

	if err := backoff.Retry(op, backoff.WithContext(policy, ctx)); err != nil {
		return "", err
	}
	return text, nil
}

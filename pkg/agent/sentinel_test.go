package agent

import (
	"context"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/regsentry/regsentry/pkg/llmgateway"
	"github.com/regsentry/regsentry/pkg/models"
)

func newTestState(text string) *models.State {
	return models.NewState(models.NewExecutionID(), text, "repo-a", time.Now().UTC())
}

func TestSentinelParsesChangeDetected(t *testing.T) {
	llm := &fakeLLM{responses: []string{`{"change_detected": true, "risk_level": "high", "reasoning": "mandatory change"}`}}
	s := &Sentinel{LLM: llm}
	state := newTestState("RESOLUCAO BCB 789/2024")

	require.NoError(t, s.Run(context.Background(), state))
	require.NotNil(t, state.ChangeDetected)
	assert.True(t, *state.ChangeDetected)
	require.NotNil(t, state.RiskLevel)
	assert.Equal(t, models.RiskHigh, *state.RiskLevel)
}

func TestSentinelDefaultsUnknownRiskLevelToMedium(t *testing.T) {
	llm := &fakeLLM{responses: []string{`{"change_detected": true, "risk_level": "critical"}`}}
	s := &Sentinel{LLM: llm}
	state := newTestState("texto")

	require.NoError(t, s.Run(context.Background(), state))
	require.NotNil(t, state.RiskLevel)
	assert.Equal(t, models.RiskMedium, *state.RiskLevel)
}

func TestSentinelIsFatalOnUnparsableOutput(t *testing.T) {
	llm := &fakeLLM{responses: []string{"not json at all"}}
	s := &Sentinel{LLM: llm}
	state := newTestState("texto")

	err := s.Run(context.Background(), state)
	assert.Error(t, err)
}

func TestSentinelIsFatalOnLLMFailure(t *testing.T) {
	llm := &fakeLLM{errs: []error{llmgateway.ErrLLMAuthError}}
	s := &Sentinel{LLM: llm}
	state := newTestState("texto")

	err := s.Run(context.Background(), state)
	assert.Error(t, err)
}

package agent

import (
	"context"
	"fmt"
	"log/slog"

	"github.com/regsentry/regsentry/pkg/llmgateway"
	"github.com/regsentry/regsentry/pkg/models"
)

// sentinelKeywords are the regulatory-trigger terms the Sentinel's prompt
// highlights to the model.
var sentinelKeywords = []string{
	"alteração", "nova regra", "obrigatório",
	"deve", "revogada", "entra em vigor", "prazo",
}

// Sentinel is the first pipeline stage: it decides whether the regulatory
// text mandates a change and assigns a risk level.
type Sentinel struct {
	LLM llmgateway.Client
}

// Name implements Agent.
func (s *Sentinel) Name() string { return "Sentinel" }

type sentinelOutput struct {
	ChangeDetected bool   `json:"change_detected"`
	RiskLevel      string `json:"risk_level"`
	Reasoning      string `json:"reasoning"`
}

// Run implements Agent.
func (s *Sentinel) Run(ctx context.Context, state *models.State) error {
	prompt := buildSentinelPrompt(state.RegulatoryText)

	text, err := s.LLM.Generate(ctx, prompt, 400)
	if err != nil {
		return fmt.Errorf("LLM call failed: %w", err)
	}

	var out sentinelOutput
	if !llmgateway.ExtractJSONInto(text, &out) {
		return fmt.Errorf("%w: could not parse sentinel JSON", llmgateway.ErrLLMInvalidOutput)
	}

	risk := models.RiskLevel(out.RiskLevel)
	if !risk.IsValid() {
		slog.Warn("Sentinel: unknown risk_level, defaulting to medium",
			"execution_id", state.ExecutionID, "raw_risk_level", out.RiskLevel)
		risk = models.RiskMedium
	}

	changeDetected := out.ChangeDetected
	state.ChangeDetected = &changeDetected
	state.RiskLevel = &risk
	return nil
}

func buildSentinelPrompt(regulatoryText string) string {
	return fmt.Sprintf(`You are a regulatory-change sentinel for a software engineering team.

Determine whether the following regulatory text mandates a change to
software systems, and assign a risk level.

Pay attention to change-indicating terms such as: %v

Regulatory text:
%s

Respond with a single JSON object and nothing else:
{"change_detected": <bool>, "risk_level": "low"|"medium"|"high", "reasoning": "<short reasoning>"}`,
		sentinelKeywords, regulatoryText)
}

package agent

import (
	"context"
	"fmt"
	"log/slog"

	"github.com/regsentry/regsentry/pkg/llmgateway"
	"github.com/regsentry/regsentry/pkg/models"
)

// Impact produces one Impact per impacted file, in input order. A failure
// analyzing a single file never aborts the sequence: it yields a
// low-severity business_logic impact describing the failure.
type Impact struct {
	LLM llmgateway.Client
}

// Name implements Agent.
func (im *Impact) Name() string { return "Impact" }

type impactOutput struct {
	ImpactType       string   `json:"impact_type"`
	Severity         string   `json:"severity"`
	Description      string   `json:"description"`
	SuggestedChanges []string `json:"suggested_changes"`
}

// Run implements Agent.
func (im *Impact) Run(ctx context.Context, state *models.State) error {
	analyses := make([]models.Impact, 0, len(state.ImpactedFiles))

	for _, file := range state.ImpactedFiles {
		analyses = append(analyses, im.analyzeOne(ctx, state, file))
	}

	state.ImpactAnalysis = analyses
	return nil
}

func (im *Impact) analyzeOne(ctx context.Context, state *models.State, file models.ImpactedFile) models.Impact {
	prompt := buildImpactPrompt(state.RegulatoryModel, file)

	text, err := im.LLM.Generate(ctx, prompt, 600)
	if err != nil {
		return fallbackImpact(file.FilePath, err)
	}

	var out impactOutput
	if !llmgateway.ExtractJSONInto(text, &out) {
		return fallbackImpact(file.FilePath, fmt.Errorf("%w: could not parse impact JSON", llmgateway.ErrLLMInvalidOutput))
	}

	changes := out.SuggestedChanges
	if changes == nil {
		changes = []string{}
	}

	return models.Impact{
		FilePath:         file.FilePath,
		ImpactType:       models.ClampImpactType(out.ImpactType),
		Severity:         models.ClampSeverity(out.Severity),
		Description:      out.Description,
		SuggestedChanges: changes,
	}
}

func fallbackImpact(filePath string, cause error) models.Impact {
	slog.Warn("Impact: per-file analysis failed, recording fallback impact",
		"file_path", filePath, "error", cause)
	return models.Impact{
		FilePath:         filePath,
		ImpactType:       models.ImpactBusinessLogic,
		Severity:         models.SeverityLow,
		Description:      fmt.Sprintf("Impact analysis failed for this file: %v", cause),
		SuggestedChanges: []string{},
	}
}

func buildImpactPrompt(m *models.RegulatoryModel, file models.ImpactedFile) string {
	title, description := "", ""
	if m != nil {
		title, description = m.Title, m.Description
	}
	return fmt.Sprintf(`A regulatory change is being assessed for impact on a source file.

Regulation: %s
%s

File: %s
File excerpt:
%s

Respond with a single JSON object and nothing else:
{
  "impact_type": "schema_change"|"business_logic"|"validation"|"api_contract",
  "severity": "low"|"medium"|"high",
  "description": "<what must change and why>",
  "suggested_changes": ["<concrete change>", ...]
}`, title, description, file.FilePath, file.Snippet)
}

package agent

import (
	"context"
	"fmt"
	"log/slog"
	"strings"

	"github.com/regsentry/regsentry/pkg/llmgateway"
	"github.com/regsentry/regsentry/pkg/models"
)

// Translator projects the free-form regulatory text into a structured
// RegulatoryModel.
type Translator struct {
	LLM llmgateway.Client
}

// Name implements Agent.
func (t *Translator) Name() string { return "Translator" }

// Run implements Agent.
func (t *Translator) Run(ctx context.Context, state *models.State) error {
	prompt := buildTranslatorPrompt(state.RegulatoryText)

	text, err := t.LLM.Generate(ctx, prompt, 800)
	if err != nil {
		slog.Warn("Translator: LLM call failed, using minimal fallback model",
			"execution_id", state.ExecutionID, "error", err)
		state.RegulatoryModel = minimalRegulatoryModel(state.RegulatoryText)
		return nil
	}

	var model models.RegulatoryModel
	if !llmgateway.ExtractJSONInto(text, &model) || model.Title == "" {
		slog.Warn("Translator: could not parse regulatory model, using minimal fallback model",
			"execution_id", state.ExecutionID)
		state.RegulatoryModel = minimalRegulatoryModel(state.RegulatoryText)
		return nil
	}

	if err := model.Validate(); err != nil {
		slog.Warn("Translator: parsed model failed validation, using minimal fallback model",
			"execution_id", state.ExecutionID, "error", err)
		state.RegulatoryModel = minimalRegulatoryModel(state.RegulatoryText)
		return nil
	}

	state.RegulatoryModel = &model
	return nil
}

// minimalRegulatoryModel builds the fallback model: title is the first
// non-empty line, description is the full text, all lists empty.
func minimalRegulatoryModel(text string) *models.RegulatoryModel {
	title := text
	for _, line := range strings.Split(text, "\n") {
		trimmed := strings.TrimSpace(line)
		if trimmed != "" {
			title = trimmed
			break
		}
	}
	if len(title) > 200 {
		title = title[:200]
	}
	return &models.RegulatoryModel{
		Title:           title,
		Description:     text,
		Requirements:    []string{},
		Deadlines:       []models.Deadline{},
		AffectedSystems: []string{},
	}
}

func buildTranslatorPrompt(regulatoryText string) string {
	return fmt.Sprintf(`Extract a structured summary of the following regulatory text.

Regulatory text:
%s

Respond with a single JSON object and nothing else, matching exactly this shape:
{
  "title": "<short title>",
  "description": "<one paragraph summary>",
  "requirements": ["<requirement>", ...],
  "deadlines": [{"date": "YYYY-MM-DD", "description": "<what is due>"}, ...],
  "affected_systems": ["<system name>", ...]
}`, regulatoryText)
}

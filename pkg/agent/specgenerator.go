package agent

import (
	"context"
	"fmt"
	"strings"

	"github.com/regsentry/regsentry/pkg/models"
)

// SpecGenerator synthesizes the Markdown technical specification from the
// regulatory model and impact analysis. It is deterministic (no LLM
// call): the document's required structure and the obligation to cite
// every impacted file_path are easier to guarantee by direct rendering
// than by hoping the model follows formatting instructions exactly.
type SpecGenerator struct{}

// Name implements Agent.
func (g *SpecGenerator) Name() string { return "SpecGenerator" }

// Run implements Agent.
func (g *SpecGenerator) Run(ctx context.Context, state *models.State) error {
	var b strings.Builder

	title := "Regulatory Change"
	description := ""
	if state.RegulatoryModel != nil {
		if state.RegulatoryModel.Title != "" {
			title = state.RegulatoryModel.Title
		}
		description = state.RegulatoryModel.Description
	}

	fmt.Fprintf(&b, "# Technical Specification: %s\n\n", title)

	b.WriteString("## Overview\n\n")
	if description != "" {
		b.WriteString(description)
		b.WriteString("\n\n")
	} else {
		b.WriteString("No description was extracted from the regulatory text.\n\n")
	}

	b.WriteString("## Affected Components\n\n")
	if len(state.ImpactAnalysis) == 0 {
		b.WriteString("No code components were identified as impacted by this change.\n\n")
	} else {
		for _, imp := range state.ImpactAnalysis {
			fmt.Fprintf(&b, "- `%s` (%s, severity: %s)\n", imp.FilePath, imp.ImpactType, imp.Severity)
		}
		b.WriteString("\n")
	}

	b.WriteString("## Required Changes\n\n")
	if len(state.ImpactAnalysis) == 0 {
		b.WriteString("No changes are required.\n\n")
	} else {
		for _, imp := range state.ImpactAnalysis {
			fmt.Fprintf(&b, "### `%s`\n\n%s\n\n", imp.FilePath, imp.Description)
			for _, change := range imp.SuggestedChanges {
				fmt.Fprintf(&b, "- %s\n", change)
			}
			b.WriteString("\n")
		}
	}

	b.WriteString("## Acceptance Criteria\n\n")
	if len(state.ImpactAnalysis) == 0 {
		b.WriteString("- No impacted files; confirm no code change is required.\n\n")
	} else {
		for _, imp := range state.ImpactAnalysis {
			fmt.Fprintf(&b, "- `%s` implements the changes described above and is covered by tests.\n", imp.FilePath)
		}
		b.WriteString("\n")
	}

	effort, bucket := estimateEffort(state.ImpactAnalysis)
	b.WriteString("## Estimated Effort\n\n")
	fmt.Fprintf(&b, "Total effort score: %d (%s)\n", effort, bucket)

	spec := b.String()
	state.TechnicalSpec = &spec
	return nil
}

// estimateEffort sums severity weights (low=1, medium=2, high=3) and
// buckets the total: <5 small, 5-10 medium, >10 large.
func estimateEffort(impacts []models.Impact) (int, string) {
	total := 0
	for _, imp := range impacts {
		total += models.SeverityWeight(imp.Severity)
	}
	switch {
	case total < 5:
		return total, "small"
	case total <= 10:
		return total, "medium"
	default:
		return total, "large"
	}
}

package agent

import (
	"context"
	"fmt"
	"strings"

	"github.com/regsentry/regsentry/pkg/models"
)

// PromptBuilder renders the final developer-facing "Kiro prompt": an
// executable instruction set derived from the technical spec and impact
// list. Deterministic for the same reasons as
// SpecGenerator: the required section labels are a hard output contract.
type PromptBuilder struct{}

// Name implements Agent.
func (p *PromptBuilder) Name() string { return "PromptBuilder" }

// Run implements Agent.
func (p *PromptBuilder) Run(ctx context.Context, state *models.State) error {
	var b strings.Builder

	title := "Regulatory Change"
	if state.RegulatoryModel != nil && state.RegulatoryModel.Title != "" {
		title = state.RegulatoryModel.Title
	}

	b.WriteString("CONTEXT\n")
	fmt.Fprintf(&b, "Regulation: %s\n", title)
	if state.RegulatoryModel != nil && state.RegulatoryModel.Description != "" {
		b.WriteString(state.RegulatoryModel.Description)
		b.WriteString("\n")
	}
	if state.TechnicalSpec != nil {
		b.WriteString("\nSee the accompanying technical specification for full detail.\n")
	}
	b.WriteString("\n")

	b.WriteString("OBJECTIVE\n")
	fmt.Fprintf(&b, "Implement the code changes required to comply with \"%s\".\n\n", title)

	b.WriteString("SPECIFIC INSTRUCTIONS\n")
	if len(state.ImpactAnalysis) == 0 {
		b.WriteString("No impacted files were identified; confirm no implementation work is required.\n\n")
	} else {
		for _, imp := range state.ImpactAnalysis {
			fmt.Fprintf(&b, "- For `%s` (%s, severity %s): %s\n", imp.FilePath, imp.ImpactType, imp.Severity, imp.Description)
		}
		b.WriteString("\n")
	}

	b.WriteString("FILE MODIFICATIONS\n")
	if len(state.ImpactAnalysis) == 0 {
		b.WriteString("None.\n\n")
	} else {
		for _, imp := range state.ImpactAnalysis {
			fmt.Fprintf(&b, "%s:\n", imp.FilePath)
			if len(imp.SuggestedChanges) == 0 {
				b.WriteString("  - review for compliance with the new requirements\n")
			}
			for _, change := range imp.SuggestedChanges {
				fmt.Fprintf(&b, "  - %s\n", change)
			}
		}
		b.WriteString("\n")
	}

	b.WriteString("VALIDATION STEPS\n")
	b.WriteString("- Run the existing test suite for each modified package.\n")
	if len(state.ImpactAnalysis) > 0 {
		b.WriteString("- Add or update tests covering the new regulatory requirements for:\n")
		for _, imp := range state.ImpactAnalysis {
			fmt.Fprintf(&b, "  - %s\n", imp.FilePath)
		}
	}
	b.WriteString("\n")

	b.WriteString("CONSTRAINTS\n")
	b.WriteString("- Do not change behavior unrelated to this regulatory requirement.\n")
	b.WriteString("- Preserve existing public APIs unless an impact explicitly calls for a breaking change.\n")

	prompt := b.String()
	state.KiroPrompt = &prompt
	return nil
}

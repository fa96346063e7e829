package agent

import (
	"context"
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/regsentry/regsentry/pkg/models"
)

func TestSpecGeneratorIncludesRequiredSections(t *testing.T) {
	g := &SpecGenerator{}
	state := stateWithImpactedFiles()
	state.RegulatoryModel = &models.RegulatoryModel{Title: "RESOLUCAO BCB 789/2024", Description: "Estabelece regras para chaves Pix."}
	state.ImpactAnalysis = []models.Impact{
		{FilePath: "pkg/pix/validate.go", ImpactType: models.ImpactValidation, Severity: models.SeverityHigh, Description: "validar chave", SuggestedChanges: []string{"adicionar checagem"}},
	}

	require.NoError(t, g.Run(context.Background(), state))
	require.NotNil(t, state.TechnicalSpec)
	doc := *state.TechnicalSpec

	for _, heading := range []string{
		"# Technical Specification: RESOLUCAO BCB 789/2024",
		"## Overview",
		"## Affected Components",
		"## Required Changes",
		"## Acceptance Criteria",
		"## Estimated Effort",
	} {
		assert.Contains(t, doc, heading)
	}
	assert.Contains(t, doc, "pkg/pix/validate.go")

	headingOrder := []string{"## Overview", "## Affected Components", "## Required Changes", "## Acceptance Criteria", "## Estimated Effort"}
	last := -1
	for _, h := range headingOrder {
		idx := strings.Index(doc, h)
		require.GreaterOrEqual(t, idx, 0)
		assert.Greater(t, idx, last)
		last = idx
	}
}

func TestSpecGeneratorHandlesNoImpactedFiles(t *testing.T) {
	g := &SpecGenerator{}
	state := stateWithImpactedFiles()
	state.RegulatoryModel = &models.RegulatoryModel{Title: "Comunicado", Description: "Sem impacto direto."}

	require.NoError(t, g.Run(context.Background(), state))
	require.NotNil(t, state.TechnicalSpec)
	assert.Contains(t, *state.TechnicalSpec, "No code components were identified")
	assert.Contains(t, *state.TechnicalSpec, "Total effort score: 0 (small)")
}

func TestSpecGeneratorEstimatesEffortBucket(t *testing.T) {
	g := &SpecGenerator{}
	state := stateWithImpactedFiles()
	state.RegulatoryModel = &models.RegulatoryModel{Title: "X", Description: "Y"}
	state.ImpactAnalysis = []models.Impact{
		{FilePath: "a.go", ImpactType: models.ImpactValidation, Severity: models.SeverityHigh},
		{FilePath: "b.go", ImpactType: models.ImpactValidation, Severity: models.SeverityHigh},
		{FilePath: "c.go", ImpactType: models.ImpactValidation, Severity: models.SeverityHigh},
		{FilePath: "d.go", ImpactType: models.ImpactValidation, Severity: models.SeverityHigh},
	}

	require.NoError(t, g.Run(context.Background(), state))
	assert.Contains(t, *state.TechnicalSpec, "Total effort score: 12 (large)")
}

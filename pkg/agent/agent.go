// Package agent implements the six specialized pipeline stages (C6):
// Sentinel, Translator, CodeReader, Impact, SpecGenerator, PromptBuilder.
//
// Each agent is a pure-ish function of the shared state, run as part of a
// strictly sequential, non-streaming pipeline.
package agent

import (
	"context"

	"github.com/regsentry/regsentry/pkg/models"
)

// Agent is a single pipeline stage.
type Agent interface {
	// Name returns the stage's identifier, used in logs and in
	// state.Error ("<AgentName>: <message>").
	Name() string

	// Run reads the fields produced by earlier stages and writes exactly
	// the fields in this stage's output contract. A
	// returned error is always fatal; handled failures are recorded as
	// sentinel/fallback values on state instead of being returned.
	Run(ctx context.Context, state *models.State) error
}

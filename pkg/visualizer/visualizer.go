// Package visualizer renders a completed or partial run's Shared State as a
// directed graph (C8), one node per agent annotated with its key outputs,
// edges following execution order.
//
// DOT (Graphviz's textual graph format) is the output chosen: it is the
// de facto standard textual graph format in the Go ecosystem and needs no
// rendering library to produce.
package visualizer

import (
	"fmt"
	"strings"

	"github.com/regsentry/regsentry/pkg/models"
)

// stageNames is the fixed pipeline order.
var stageNames = []string{"Sentinel", "Translator", "CodeReader", "Impact", "SpecGenerator", "PromptBuilder"}

// Render emits Graphviz DOT text describing state's run: one node per agent,
// annotated with that agent's key outputs, with edges reflecting the fixed
// execution order. Agents that never ran (the run halted before reaching
// them) are still rendered, so the diagram always shows the full pipeline
// shape: Sentinel, Translator, SpecGenerator and PromptBuilder carry no
// annotation when their output is absent, while CodeReader and Impact
// always show their count, which is 0 when they did not run.
func Render(state *models.State) string {
	var b strings.Builder
	b.WriteString("digraph regsentry_run {\n")
	b.WriteString("  rankdir=LR;\n")
	fmt.Fprintf(&b, "  label=%q;\n", state.ExecutionID)

	for _, name := range stageNames {
		fmt.Fprintf(&b, "  %q [label=%q];\n", name, nodeLabel(state, name))
	}
	for i := 1; i < len(stageNames); i++ {
		fmt.Fprintf(&b, "  %q -> %q;\n", stageNames[i-1], stageNames[i])
	}

	if state.HasError() {
		b.WriteString("  \"Error\" [shape=box, style=filled, fillcolor=lightpink];\n")
		fmt.Fprintf(&b, "  \"Error\" [label=%q];\n", *state.Error)
	}

	b.WriteString("}\n")
	return b.String()
}

func nodeLabel(state *models.State, name string) string {
	switch name {
	case "Sentinel":
		if state.ChangeDetected == nil || state.RiskLevel == nil {
			return "Sentinel"
		}
		return fmt.Sprintf("Sentinel[change=%t, risk=%s]", *state.ChangeDetected, *state.RiskLevel)
	case "Translator":
		if state.RegulatoryModel == nil {
			return "Translator"
		}
		return fmt.Sprintf("Translator[title=%q]", state.RegulatoryModel.Title)
	case "CodeReader":
		return fmt.Sprintf("CodeReader[n=%d]", len(state.ImpactedFiles))
	case "Impact":
		return fmt.Sprintf("Impact[n=%d]", len(state.ImpactAnalysis))
	case "SpecGenerator":
		if state.TechnicalSpec == nil {
			return "SpecGenerator"
		}
		return "SpecGenerator[generated]"
	case "PromptBuilder":
		if state.KiroPrompt == nil {
			return "PromptBuilder"
		}
		return "PromptBuilder[generated]"
	default:
		return name
	}
}

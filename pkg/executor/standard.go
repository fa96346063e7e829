package executor

import (
	"github.com/regsentry/regsentry/pkg/agent"
	"github.com/regsentry/regsentry/pkg/embedding"
	"github.com/regsentry/regsentry/pkg/llmgateway"
)

// StandardOptions configures the default RegSentry pipeline wiring.
type StandardOptions struct {
	KeywordBoost []string
	BoostAmount  float64
	TopK         int
	Threshold    float64
}

// NewStandard builds the six-stage RegSentry pipeline in execution order
// (Sentinel, Translator, CodeReader, Impact, SpecGenerator, PromptBuilder),
// wiring the shared LLM client, encoder, and code index into the stages
// that need them.
func NewStandard(llm llmgateway.Client, enc *embedding.Encoder, index agent.Searcher, opts StandardOptions) *Graph {
	return New(
		&agent.Sentinel{LLM: llm},
		&agent.Translator{LLM: llm},
		&agent.CodeReader{
			Encoder:      enc,
			Index:        index,
			TopK:         opts.TopK,
			Threshold:    opts.Threshold,
			KeywordBoost: opts.KeywordBoost,
			BoostAmount:  opts.BoostAmount,
		},
		&agent.Impact{LLM: llm},
		&agent.SpecGenerator{},
		&agent.PromptBuilder{},
	)
}

// Package executor implements the graph executor (C7): the fixed-order
// walk of the six pipeline agents over a shared *models.State.
//
// Lifecycle bookkeeping follows a structured slog start/end-event style
// with status tracking and duration measurement, kept strictly sequential
// and non-concurrent: no goroutines, since parallel agent execution is out
// of scope for this pipeline.
package executor

import (
	"context"
	"fmt"
	"log/slog"
	"time"

	"github.com/regsentry/regsentry/pkg/agent"
	"github.com/regsentry/regsentry/pkg/models"
)

// Graph runs a fixed ordered sequence of agents against one State.
type Graph struct {
	Agents []agent.Agent
}

// New builds a Graph that runs the given stages in the order given.
// NewStandard wires the six RegSentry agents into one.
func New(stages ...agent.Agent) *Graph {
	return &Graph{Agents: stages}
}

// Execute runs every stage in order, validating state after each one.
// A stage returning an error, or a post-stage validation failure, is fatal:
// Execute records it on state.Error and halts immediately, preserving
// whatever partial state the prior stages produced.
// Execute itself never returns an error for an agent-level failure — the
// failure is recorded on state and observable via state.HasError(). It only
// returns a non-nil error for a caller mistake (e.g. a nil state).
func (g *Graph) Execute(ctx context.Context, state *models.State) error {
	if state == nil {
		return fmt.Errorf("executor: state must not be nil")
	}

	for _, stage := range g.Agents {
		name := stage.Name()
		start := time.Now()
		slog.Info("agent_start", "execution_id", state.ExecutionID, "agent", name)

		if err := ctx.Err(); err != nil {
			state.SetError(name, fmt.Sprintf("run cancelled before stage started: %v", err))
			slog.Info("agent_end", "execution_id", state.ExecutionID, "agent", name,
				"status", "error", "duration_ms", time.Since(start).Milliseconds())
			return nil
		}

		runErr := stage.Run(ctx, state)
		if runErr == nil {
			runErr = state.Validate()
		}

		duration := time.Since(start)
		if runErr != nil {
			state.SetError(name, runErr.Error())
			slog.Info("agent_end", "execution_id", state.ExecutionID, "agent", name,
				"status", "error", "duration_ms", duration.Milliseconds(), "error", runErr)
			return nil
		}

		slog.Info("agent_end", "execution_id", state.ExecutionID, "agent", name,
			"status", "ok", "duration_ms", duration.Milliseconds())
	}

	return nil
}

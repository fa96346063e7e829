// Package orchestrator implements the Orchestrator API (C10): it accepts
// raw regulatory text, drives the graph executor (C7) end to end, commits
// the resulting state to the audit store (C9) on every path, and returns
// the aggregated result plus a graph visualization.
//
// Analyze splits into "create run state, drive it, persist it" behind the
// HTTP-facing handler. A RegSentry run is synchronous from the caller's
// viewpoint: Analyze blocks until the run terminates or its soft budget
// elapses.
package orchestrator

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"time"

	"github.com/regsentry/regsentry/pkg/executor"
	"github.com/regsentry/regsentry/pkg/llmgateway"
	"github.com/regsentry/regsentry/pkg/models"
	"github.com/regsentry/regsentry/pkg/visualizer"
)

// DefaultRunBudget is the soft end-to-end time budget for a single run,
// enforced at the Orchestrator API boundary.
const DefaultRunBudget = 120 * time.Second

// ErrEmptyRegulatoryText is returned when the caller supplies no
// regulatory text; the Orchestrator API surfaces this as HTTP 400 with no
// audit record written.
var ErrEmptyRegulatoryText = errors.New("orchestrator: regulatory_text must not be empty")

// GraphBuilder constructs the fixed six-stage pipeline for a run, given an
// LLM client (already carrying any per-request API key override). It is
// satisfied by a closure over the process-wide embedding encoder and
// vector index, rebuilt per run only in the one stage (the LLM client)
// that can vary per request.
type GraphBuilder func(llm llmgateway.Client) *executor.Graph

// AuditStore is the subset of *audit.Store the Orchestrator depends on,
// accepted as an interface (mirroring pkg/agent.CodeReader's Searcher
// pattern) so tests can substitute a fake in place of a real database.
type AuditStore interface {
	Save(ctx context.Context, state *models.State) error
	Get(ctx context.Context, executionID string) (*models.State, error)
}

// Orchestrator drives the pipeline for each incoming analysis request and
// is the sole writer of runs into the audit store.
type Orchestrator struct {
	BuildGraph  GraphBuilder
	AuditStore  AuditStore
	DefaultRepo string
	RunBudget   time.Duration
}

// Result is the aggregated outcome of one run: the final (or partial)
// Shared State plus its rendered graph visualization.
type Result struct {
	State         *models.State
	Visualization string
}

// New builds an Orchestrator. runBudget <= 0 selects DefaultRunBudget.
func New(buildGraph GraphBuilder, auditStore AuditStore, defaultRepo string, runBudget time.Duration) *Orchestrator {
	if runBudget <= 0 {
		runBudget = DefaultRunBudget
	}
	return &Orchestrator{
		BuildGraph:  buildGraph,
		AuditStore:  auditStore,
		DefaultRepo: defaultRepo,
		RunBudget:   runBudget,
	}
}

// Analyze runs one full pipeline execution for regulatoryText against
// repoPath (falling back to o.DefaultRepo when empty), using llmOverride
// in place of the process-wide LLM client when non-nil (the per-request
// X-LLM-API-Key override,).
//
// The returned error is non-nil only for the input-validation case
// (ErrEmptyRegulatoryText); every other failure mode is captured on
// Result.State.Error per the executor's fatal-containment contract
// and still yields a committed audit record.
func (o *Orchestrator) Analyze(ctx context.Context, regulatoryText, repoPath string, llmOverride llmgateway.Client) (*Result, error) {
	if regulatoryText == "" {
		return nil, ErrEmptyRegulatoryText
	}
	if repoPath == "" {
		repoPath = o.DefaultRepo
	}

	runCtx, cancel := context.WithTimeout(ctx, o.RunBudget)
	defer cancel()

	executionID := models.NewExecutionID()
	state := models.NewState(executionID, regulatoryText, repoPath, time.Now().UTC())

	graph := o.BuildGraph(llmOverride)

	slog.Info("orchestrator: run starting", "execution_id", executionID, "repo_path", repoPath)
	if err := graph.Execute(runCtx, state); err != nil {
		// Execute only returns an error for a caller mistake (nil state);
		// a real pipeline failure is captured on state.Error instead.
		state.SetError("Orchestrator", err.Error())
	}

	viz := visualizer.Render(state)

	if err := o.saveAudit(state); err != nil {
		slog.Error("orchestrator: audit save failed, proceeding best-effort",
			"execution_id", executionID, "error", err)
	}

	if state.HasError() {
		slog.Warn("orchestrator: run halted with error", "execution_id", executionID, "error", *state.Error)
	} else {
		slog.Info("orchestrator: run completed", "execution_id", executionID,
			"change_detected", state.ChangeDetected != nil && *state.ChangeDetected,
			"impacted_files", len(state.ImpactedFiles))
	}

	return &Result{State: state, Visualization: viz}, nil
}

// saveAudit persists state within its own bounded window, independent of
// the run's own deadline (which may already be exhausted), so that a slow
// but otherwise successful run still gets audited.
func (o *Orchestrator) saveAudit(state *models.State) error {
	saveCtx, cancel := context.WithTimeout(context.Background(), 2*time.Second)
	defer cancel()
	if err := o.AuditStore.Save(saveCtx, state); err != nil {
		return fmt.Errorf("orchestrator: save audit record: %w", err)
	}
	return nil
}

// GetAudit retrieves a previously committed run by execution id.
func (o *Orchestrator) GetAudit(ctx context.Context, executionID string) (*models.State, error) {
	return o.AuditStore.Get(ctx, executionID)
}

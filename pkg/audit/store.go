// Package audit implements the audit store (C9): a Postgres-backed record
// of every run, keyed by execution_id, persisted whether the run succeeded
// or halted with an error.
//
// Grounded on TARSy's data-access idiom: audit_logs is modeled as an
// ent/schema entity and accessed exclusively through the generated
// *ent.Client, the same way TARSy persists llminteraction rows through its
// ent client rather than hand-written SQL.
package audit

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"time"

	"github.com/regsentry/regsentry/ent"
	entauditlog "github.com/regsentry/regsentry/ent/auditlog"
	"github.com/regsentry/regsentry/pkg/models"
)

// ErrStoreUnavailable is returned when the backing database cannot be
// reached; this is tolerated by callers as best-effort.
var ErrStoreUnavailable = errors.New("audit: store unavailable")

// ErrNotFound is returned by Get when no record matches the given
// execution id.
var ErrNotFound = errors.New("audit: record not found")

// Store persists and retrieves Shared State snapshots.
type Store struct {
	client *ent.Client
}

// New wraps an existing ent client. The audit_logs table is expected to
// already exist (created by pkg/database migrations).
func New(client *ent.Client) *Store {
	return &Store{client: client}
}

// Save writes a row keyed by state.ExecutionID; a second Save for the same
// execution id overwrites the row (idempotent on retries). Save must be
// called for every run, including runs that halted with state.Error set.
func (s *Store) Save(ctx context.Context, state *models.State) error {
	var structuredModel []byte
	if state.RegulatoryModel != nil {
		var err error
		structuredModel, err = json.Marshal(state.RegulatoryModel)
		if err != nil {
			return fmt.Errorf("audit: failed to marshal regulatory_model: %w", err)
		}
	}

	impactedFiles, err := json.Marshal(state.ImpactedFiles)
	if err != nil {
		return fmt.Errorf("audit: failed to marshal impacted_files: %w", err)
	}
	impactAnalysis, err := json.Marshal(state.ImpactAnalysis)
	if err != nil {
		return fmt.Errorf("audit: failed to marshal impact_analysis: %w", err)
	}

	err = s.client.AuditLog.Create().
		SetExecutionID(state.ExecutionID).
		SetRawText(state.RegulatoryText).
		SetNillableChangeDetected(state.ChangeDetected).
		SetNillableRiskLevel(riskLevelString(state)).
		SetStructuredModel(structuredModel).
		SetImpactedFiles(impactedFiles).
		SetImpactAnalysis(impactAnalysis).
		SetNillableTechnicalSpec(state.TechnicalSpec).
		SetNillableKiroPrompt(state.KiroPrompt).
		SetNillableError(state.Error).
		SetTimestamp(state.ExecutionTimestamp).
		OnConflictColumns(entauditlog.FieldExecutionID).
		UpdateNewValues().
		Exec(ctx)
	if err != nil {
		return fmt.Errorf("%w: %v", ErrStoreUnavailable, err)
	}
	return nil
}

// Get retrieves the full audit record for executionID.
func (s *Store) Get(ctx context.Context, executionID string) (*models.State, error) {
	row, err := s.client.AuditLog.Get(ctx, executionID)
	if ent.IsNotFound(err) {
		return nil, ErrNotFound
	}
	if err != nil {
		return nil, fmt.Errorf("%w: %v", ErrStoreUnavailable, err)
	}

	state := models.State{
		ExecutionID:        row.ExecutionID,
		RegulatoryText:     row.RawText,
		ChangeDetected:     row.ChangeDetected,
		TechnicalSpec:      row.TechnicalSpec,
		KiroPrompt:         row.KiroPrompt,
		Error:              row.Error,
		ExecutionTimestamp: row.Timestamp,
	}

	if row.RiskLevel != nil {
		rl := models.RiskLevel(*row.RiskLevel)
		state.RiskLevel = &rl
	}
	if len(row.StructuredModel) > 0 {
		var m models.RegulatoryModel
		if err := json.Unmarshal(row.StructuredModel, &m); err != nil {
			return nil, fmt.Errorf("audit: failed to unmarshal regulatory_model: %w", err)
		}
		state.RegulatoryModel = &m
	}
	if len(row.ImpactedFiles) > 0 {
		if err := json.Unmarshal(row.ImpactedFiles, &state.ImpactedFiles); err != nil {
			return nil, fmt.Errorf("audit: failed to unmarshal impacted_files: %w", err)
		}
	}
	if len(row.ImpactAnalysis) > 0 {
		if err := json.Unmarshal(row.ImpactAnalysis, &state.ImpactAnalysis); err != nil {
			return nil, fmt.Errorf("audit: failed to unmarshal impact_analysis: %w", err)
		}
	}

	return &state, nil
}

// DeleteOlderThan removes audit records whose timestamp is before cutoff,
// returning the number of rows removed. Used by pkg/cleanup's retention
// policy to keep audit_logs bounded; the Audit Store's own contract
// otherwise never deletes rows.
func (s *Store) DeleteOlderThan(ctx context.Context, cutoff time.Time) (int64, error) {
	n, err := s.client.AuditLog.Delete().WhereTimestampLT(cutoff).Exec(ctx)
	if err != nil {
		return 0, fmt.Errorf("%w: %v", ErrStoreUnavailable, err)
	}
	return int64(n), nil
}

func riskLevelString(state *models.State) *string {
	if state.RiskLevel == nil {
		return nil
	}
	s := string(*state.RiskLevel)
	return &s
}

// Package models defines the shared, serializable data types threaded
// through the regulatory-impact pipeline: the run-scoped State and the
// structured records each agent reads or writes.
package models

import (
	"time"

	"github.com/go-playground/validator/v10"
)

// RiskLevel is the Sentinel-assigned severity of a regulatory change.
type RiskLevel string

const (
	RiskLow    RiskLevel = "low"
	RiskMedium RiskLevel = "medium"
	RiskHigh   RiskLevel = "high"
)

// IsValid reports whether r is one of the allowed risk levels.
func (r RiskLevel) IsValid() bool {
	switch r {
	case RiskLow, RiskMedium, RiskHigh:
		return true
	}
	return false
}

// MaxImpactedFiles is the configured cap on State.ImpactedFiles.
const MaxImpactedFiles = 10

var validate = validator.New()

// State is the single mutable record threaded through the pipeline.
// It is owned by the orchestrator for the lifetime of one run, handed by
// reference to the graph executor, and mutated by exactly one agent at a
// time in the fixed stage order.
type State struct {
	ExecutionID         string    `json:"execution_id" validate:"required,len=36"`
	RegulatoryText      string    `json:"regulatory_text" validate:"required"`
	RepoPath            string    `json:"repo_path"`
	ExecutionTimestamp  time.Time `json:"execution_timestamp" validate:"required"`

	ChangeDetected *bool      `json:"change_detected,omitempty"`
	RiskLevel      *RiskLevel `json:"risk_level,omitempty" validate:"omitempty,oneof=low medium high"`

	RegulatoryModel *RegulatoryModel `json:"regulatory_model,omitempty"`

	ImpactedFiles   []ImpactedFile `json:"impacted_files" validate:"max=10,dive"`
	ImpactAnalysis  []Impact       `json:"impact_analysis" validate:"dive"`

	TechnicalSpec *string `json:"technical_spec,omitempty"`
	KiroPrompt    *string `json:"kiro_prompt,omitempty"`

	Error *string `json:"error,omitempty"`
}

// NewState creates a fresh run state. executionID must already be a unique
// 36-character identifier (see NewExecutionID).
func NewState(executionID, regulatoryText, repoPath string, startedAt time.Time) *State {
	return &State{
		ExecutionID:        executionID,
		RegulatoryText:     regulatoryText,
		RepoPath:           repoPath,
		ExecutionTimestamp: startedAt,
		ImpactedFiles:      []ImpactedFile{},
		ImpactAnalysis:     []Impact{},
	}
}

// Validate checks the structural invariants of State and its nested
// records. It is called by the graph executor after every agent runs; a
// non-nil return is treated as a fatal schema violation.
func (s *State) Validate() error {
	if err := validate.Struct(s); err != nil {
		return err
	}
	if s.RegulatoryModel != nil {
		if err := s.RegulatoryModel.Validate(); err != nil {
			return err
		}
	}

	impactedPaths := make(map[string]struct{}, len(s.ImpactedFiles))
	lastScore := 1.0 + 1e-9
	for _, f := range s.ImpactedFiles {
		if f.RelevanceScore > lastScore {
			return &ScoreOrderError{FilePath: f.FilePath}
		}
		lastScore = f.RelevanceScore
		impactedPaths[f.FilePath] = struct{}{}
	}

	for _, imp := range s.ImpactAnalysis {
		if _, ok := impactedPaths[imp.FilePath]; !ok {
			return &DanglingImpactError{FilePath: imp.FilePath}
		}
	}

	return nil
}

// SetError records a fatal failure exactly once, preserving any
// previously-set error.
func (s *State) SetError(agentName, message string) {
	if s.Error != nil {
		return
	}
	msg := agentName + ": " + message
	s.Error = &msg
}

// HasError reports whether the run already halted abnormally.
func (s *State) HasError() bool {
	return s.Error != nil
}

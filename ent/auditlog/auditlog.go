// Package auditlog contains field name constants and predicate helpers for
// the AuditLog entity, in the shape ent generates per-entity.
package auditlog

import (
	"entgo.io/ent/dialect/sql"

	"github.com/regsentry/regsentry/ent/predicate"
)

const (
	// Table is the table name produced by the schema migration.
	Table = "audit_logs"

	FieldID              = "id"
	FieldExecutionID     = "execution_id"
	FieldRawText         = "raw_text"
	FieldChangeDetected  = "change_detected"
	FieldRiskLevel       = "risk_level"
	FieldStructuredModel = "structured_model"
	FieldImpactedFiles   = "impacted_files"
	FieldImpactAnalysis  = "impact_analysis"
	FieldTechnicalSpec   = "technical_spec"
	FieldKiroPrompt      = "kiro_prompt"
	FieldError           = "error"
	FieldTimestamp       = "timestamp"
)

// Columns holds all SQL columns for the audit_logs table.
var Columns = []string{
	FieldID, FieldExecutionID, FieldRawText, FieldChangeDetected, FieldRiskLevel,
	FieldStructuredModel, FieldImpactedFiles, FieldImpactAnalysis,
	FieldTechnicalSpec, FieldKiroPrompt, FieldError, FieldTimestamp,
}

// ExecutionIDEQ applies the EQ predicate on the "execution_id" field.
func ExecutionIDEQ(v string) predicate.AuditLog {
	return predicate.AuditLog(func(s *sql.Selector) {
		s.Where(sql.EQ(s.C(FieldExecutionID), v))
	})
}

// TimestampLT applies the LT predicate on the "timestamp" field.
func TimestampLT(v interface{}) predicate.AuditLog {
	return predicate.AuditLog(func(s *sql.Selector) {
		s.Where(sql.LT(s.C(FieldTimestamp), v))
	})
}

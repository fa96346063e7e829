package ent

import (
	"context"
	"fmt"
	"time"

	"github.com/regsentry/regsentry/ent/auditlog"
)

// AuditLogCreate is the builder for creating an AuditLog entity.
type AuditLogCreate struct {
	config
	executionID     string
	rawText         string
	changeDetected  *bool
	riskLevel       *string
	structuredModel []byte
	impactedFiles   []byte
	impactAnalysis  []byte
	technicalSpec   *string
	kiroPrompt      *string
	error           *string
	timestamp       time.Time
}

func (ac *AuditLogCreate) SetExecutionID(v string) *AuditLogCreate { ac.executionID = v; return ac }
func (ac *AuditLogCreate) SetRawText(v string) *AuditLogCreate     { ac.rawText = v; return ac }

// SetNillableChangeDetected sets the "change_detected" field, leaving it
// NULL if v is nil.
func (ac *AuditLogCreate) SetNillableChangeDetected(v *bool) *AuditLogCreate {
	ac.changeDetected = v
	return ac
}

// SetNillableRiskLevel sets the "risk_level" field, leaving it NULL if v is
// nil.
func (ac *AuditLogCreate) SetNillableRiskLevel(v *string) *AuditLogCreate {
	ac.riskLevel = v
	return ac
}

// SetStructuredModel sets the "structured_model" JSON field; a nil or empty
// slice leaves the column NULL.
func (ac *AuditLogCreate) SetStructuredModel(v []byte) *AuditLogCreate {
	ac.structuredModel = v
	return ac
}

// SetImpactedFiles sets the "impacted_files" JSON field.
func (ac *AuditLogCreate) SetImpactedFiles(v []byte) *AuditLogCreate {
	ac.impactedFiles = v
	return ac
}

// SetImpactAnalysis sets the "impact_analysis" JSON field.
func (ac *AuditLogCreate) SetImpactAnalysis(v []byte) *AuditLogCreate {
	ac.impactAnalysis = v
	return ac
}

func (ac *AuditLogCreate) SetNillableTechnicalSpec(v *string) *AuditLogCreate {
	ac.technicalSpec = v
	return ac
}

func (ac *AuditLogCreate) SetNillableKiroPrompt(v *string) *AuditLogCreate {
	ac.kiroPrompt = v
	return ac
}

func (ac *AuditLogCreate) SetNillableError(v *string) *AuditLogCreate {
	ac.error = v
	return ac
}

// SetTimestamp sets the "timestamp" field.
func (ac *AuditLogCreate) SetTimestamp(v time.Time) *AuditLogCreate {
	ac.timestamp = v
	return ac
}

// AuditLogUpsertOne is the builder for upserting a single AuditLog entity.
type AuditLogUpsertOne struct {
	create *AuditLogCreate
}

// OnConflictColumns configures the upsert to trigger on a conflict over the
// given unique columns.
func (ac *AuditLogCreate) OnConflictColumns(columns ...string) *AuditLogUpsertOne {
	return &AuditLogUpsertOne{create: ac}
}

// UpdateNewValues tells the upsert to overwrite every non-conflict column
// with the values proposed in this insert.
func (u *AuditLogUpsertOne) UpdateNewValues() *AuditLogUpsertOne {
	return u
}

func nullable(v []byte) any {
	if len(v) == 0 {
		return nil
	}
	return v
}

// Exec executes the upsert query and returns an error if it fails.
func (u *AuditLogUpsertOne) Exec(ctx context.Context) error {
	ac := u.create
	db := ac.db()
	query := fmt.Sprintf(`
		INSERT INTO %s (
			%s, %s, %s, %s, %s, %s, %s, %s, %s, %s, %s
		) VALUES ($1, $2, $3, $4, $5, $6, $7, $8, $9, $10, $11)
		ON CONFLICT (%s) DO UPDATE SET
			%s  = EXCLUDED.%s,
			%s  = EXCLUDED.%s,
			%s  = EXCLUDED.%s,
			%s  = EXCLUDED.%s,
			%s  = EXCLUDED.%s,
			%s  = EXCLUDED.%s,
			%s  = EXCLUDED.%s,
			%s  = EXCLUDED.%s,
			%s  = EXCLUDED.%s,
			%s  = EXCLUDED.%s
	`,
		auditlog.Table,
		auditlog.FieldExecutionID, auditlog.FieldRawText, auditlog.FieldChangeDetected, auditlog.FieldRiskLevel,
		auditlog.FieldStructuredModel, auditlog.FieldImpactedFiles, auditlog.FieldImpactAnalysis,
		auditlog.FieldTechnicalSpec, auditlog.FieldKiroPrompt, auditlog.FieldError, auditlog.FieldTimestamp,
		auditlog.FieldExecutionID,
		auditlog.FieldRawText, auditlog.FieldRawText,
		auditlog.FieldChangeDetected, auditlog.FieldChangeDetected,
		auditlog.FieldRiskLevel, auditlog.FieldRiskLevel,
		auditlog.FieldStructuredModel, auditlog.FieldStructuredModel,
		auditlog.FieldImpactedFiles, auditlog.FieldImpactedFiles,
		auditlog.FieldImpactAnalysis, auditlog.FieldImpactAnalysis,
		auditlog.FieldTechnicalSpec, auditlog.FieldTechnicalSpec,
		auditlog.FieldKiroPrompt, auditlog.FieldKiroPrompt,
		auditlog.FieldError, auditlog.FieldError,
		auditlog.FieldTimestamp, auditlog.FieldTimestamp,
	)
	_, err := db.ExecContext(ctx, query,
		ac.executionID, ac.rawText, ac.changeDetected, ac.riskLevel,
		nullable(ac.structuredModel), nullable(ac.impactedFiles), nullable(ac.impactAnalysis),
		ac.technicalSpec, ac.kiroPrompt, ac.error, ac.timestamp,
	)
	if err != nil {
		return fmt.Errorf("ent: failed upserting audit_log: %w", err)
	}
	return nil
}

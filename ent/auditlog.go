package ent

import (
	"context"
	"database/sql"
	"fmt"
)

// AuditLogClient is a client for the AuditLog schema.
type AuditLogClient struct {
	config
}

// Create returns a builder for creating an AuditLog entity.
func (c *AuditLogClient) Create() *AuditLogCreate {
	return &AuditLogCreate{config: c.config}
}

// Query returns a query builder for AuditLog.
func (c *AuditLogClient) Query() *AuditLogQuery {
	return &AuditLogQuery{config: c.config}
}

// Delete returns a builder for deleting AuditLog entities.
func (c *AuditLogClient) Delete() *AuditLogDelete {
	return &AuditLogDelete{config: c.config}
}

// Get returns an AuditLog entity by its execution_id, the table's natural
// unique key.
func (c *AuditLogClient) Get(ctx context.Context, executionID string) (*AuditLog, error) {
	return c.Query().WhereExecutionID(executionID).Only(ctx)
}

func (c *AuditLogClient) scanRow(row *sql.Row) (*AuditLog, error) {
	var a AuditLog
	err := row.Scan(
		&a.ID, &a.ExecutionID, &a.RawText, &a.ChangeDetected, &a.RiskLevel,
		&a.StructuredModel, &a.ImpactedFiles, &a.ImpactAnalysis,
		&a.TechnicalSpec, &a.KiroPrompt, &a.Error, &a.Timestamp,
	)
	if err == sql.ErrNoRows {
		return nil, &NotFoundError{label: "audit_log"}
	}
	if err != nil {
		return nil, fmt.Errorf("ent: failed scanning audit_log row: %w", err)
	}
	return &a, nil
}

package ent

import (
	"context"
	"fmt"

	"github.com/regsentry/regsentry/ent/auditlog"
)

// AuditLogQuery is the builder for querying AuditLog entities.
type AuditLogQuery struct {
	config
	whereExecutionID *string
}

// WhereExecutionID restricts the query to the row with the given
// execution_id.
func (aq *AuditLogQuery) WhereExecutionID(v string) *AuditLogQuery {
	aq.whereExecutionID = &v
	return aq
}

// Only executes the query restricted by WhereExecutionID and returns the
// single matching row, or a *NotFoundError.
func (aq *AuditLogQuery) Only(ctx context.Context) (*AuditLog, error) {
	if aq.whereExecutionID == nil {
		return nil, fmt.Errorf("ent: Only requires a WhereExecutionID predicate")
	}
	db := aq.db()
	query := fmt.Sprintf(`
		SELECT %s, %s, %s, %s, %s, %s, %s, %s, %s, %s, %s, %s
		FROM %s WHERE %s = $1
	`,
		auditlog.FieldID, auditlog.FieldExecutionID, auditlog.FieldRawText,
		auditlog.FieldChangeDetected, auditlog.FieldRiskLevel,
		auditlog.FieldStructuredModel, auditlog.FieldImpactedFiles, auditlog.FieldImpactAnalysis,
		auditlog.FieldTechnicalSpec, auditlog.FieldKiroPrompt, auditlog.FieldError, auditlog.FieldTimestamp,
		auditlog.Table, auditlog.FieldExecutionID,
	)
	row := db.QueryRowContext(ctx, query, *aq.whereExecutionID)
	return (&AuditLogClient{config: aq.config}).scanRow(row)
}

package ent

import (
	"context"
	"fmt"
	"time"

	"github.com/regsentry/regsentry/ent/auditlog"
)

// AuditLogDelete is the builder for deleting AuditLog entities.
type AuditLogDelete struct {
	config
	whereTimestampLT *time.Time
}

// WhereTimestampLT restricts the delete to rows whose timestamp is before
// cutoff.
func (ad *AuditLogDelete) WhereTimestampLT(cutoff time.Time) *AuditLogDelete {
	ad.whereTimestampLT = &cutoff
	return ad
}

// Exec executes the delete and returns the number of rows removed.
func (ad *AuditLogDelete) Exec(ctx context.Context) (int, error) {
	if ad.whereTimestampLT == nil {
		return 0, fmt.Errorf("ent: Exec requires a WhereTimestampLT predicate")
	}
	db := ad.db()
	query := fmt.Sprintf(`DELETE FROM %s WHERE %s < $1`, auditlog.Table, auditlog.FieldTimestamp)
	res, err := db.ExecContext(ctx, query, *ad.whereTimestampLT)
	if err != nil {
		return 0, fmt.Errorf("ent: failed deleting audit_logs: %w", err)
	}
	n, err := res.RowsAffected()
	if err != nil {
		return 0, fmt.Errorf("ent: failed reading rows affected: %w", err)
	}
	return int(n), nil
}

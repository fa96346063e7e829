// Package cleanup provides a background retention policy for the audit
// store (C9): audit_logs accumulates one row per run forever otherwise,
// so a periodic sweep removes rows older than a configured window.
//
// Construct-with-config / Start-ticker-loop / Stop-via-cancel shape,
// targeting RegSentry's single audit table.
package cleanup

import (
	"context"
	"log/slog"
	"time"

	"github.com/regsentry/regsentry/pkg/audit"
)

// RetentionConfig controls how long audit records are kept and how often
// the sweep runs.
type RetentionConfig struct {
	AuditRetentionDays int
	CleanupInterval    time.Duration
}

// Service periodically deletes audit_logs rows older than
// RetentionConfig.AuditRetentionDays. Idempotent and safe to run from
// multiple replicas (each sweep is a single DELETE ... WHERE timestamp <
// cutoff).
type Service struct {
	config     RetentionConfig
	auditStore *audit.Store

	cancel context.CancelFunc
	done   chan struct{}
}

// NewService creates a cleanup Service bound to auditStore.
func NewService(cfg RetentionConfig, auditStore *audit.Store) *Service {
	return &Service{config: cfg, auditStore: auditStore}
}

// Start launches the background cleanup loop. A no-op if already running.
func (s *Service) Start(ctx context.Context) {
	if s.cancel != nil {
		return
	}
	ctx, s.cancel = context.WithCancel(ctx)
	s.done = make(chan struct{})

	go s.run(ctx)

	slog.Info("cleanup: retention service started",
		"audit_retention_days", s.config.AuditRetentionDays,
		"interval", s.config.CleanupInterval)
}

// Stop signals the cleanup loop to exit and waits for it to finish.
func (s *Service) Stop() {
	if s.cancel == nil {
		return
	}
	s.cancel()
	<-s.done
	slog.Info("cleanup: retention service stopped")
}

func (s *Service) run(ctx context.Context) {
	defer close(s.done)

	s.runAll(ctx)

	ticker := time.NewTicker(s.config.CleanupInterval)
	defer ticker.Stop()

	for {
		select {
		case <-ctx.Done():
			return
		case <-ticker.C:
			s.runAll(ctx)
		}
	}
}

func (s *Service) runAll(ctx context.Context) {
	cutoff := time.Now().Add(-time.Duration(s.config.AuditRetentionDays) * 24 * time.Hour)
	count, err := s.auditStore.DeleteOlderThan(ctx, cutoff)
	if err != nil {
		slog.Error("cleanup: audit retention sweep failed", "error", err)
		return
	}
	if count > 0 {
		slog.Info("cleanup: deleted old audit records", "count", count)
	}
}

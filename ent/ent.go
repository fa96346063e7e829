// Package ent is a hand-written data-access layer for the entities in
// ent/schema/*.go, laid out the way ent's code generator lays out its
// output. It mirrors the pattern TARSy uses for
// alertsession/llminteraction: entity structs, a typed *Client with one
// sub-client per entity, and fluent Create/Query/Delete builders.
//
// RegSentry has exactly two entities, Embedding and AuditLog, so this
// package is far smaller than TARSy's, but the shapes (predicate functions,
// field-name constants, NotFoundError/ConstraintError, OnConflict upsert)
// are the same ones ent itself generates.
package ent

import (
	"fmt"
	"time"
)

// Embedding is the model entity backing the Vector Index (C2): one row per
// indexed source file.
type Embedding struct {
	ID        int64
	FilePath  string
	Content   string
	Vector    []float64
	CreatedAt time.Time
	UpdatedAt time.Time
}

// AuditLog is the model entity backing the Audit Store (C9): one row per
// pipeline run.
type AuditLog struct {
	ID              int64
	ExecutionID     string
	RawText         string
	ChangeDetected  *bool
	RiskLevel       *string
	StructuredModel []byte
	ImpactedFiles   []byte
	ImpactAnalysis  []byte
	TechnicalSpec   *string
	KiroPrompt      *string
	Error           *string
	Timestamp       time.Time
}

// NotFoundError returns the name of the entity that was not found.
type NotFoundError struct {
	label string
}

func (e *NotFoundError) Error() string {
	return fmt.Sprintf("ent: %s not found", e.label)
}

// IsNotFound returns true if the error represents a NotFoundError.
func IsNotFound(err error) bool {
	_, ok := err.(*NotFoundError)
	return ok
}

// ConstraintError returns when trying to create/update one or more entities
// and one or more of their constraints failed, for example a unique field
// already exists in the database.
type ConstraintError struct {
	msg  string
	wrap error
}

func (e *ConstraintError) Error() string { return e.msg }
func (e *ConstraintError) Unwrap() error { return e.wrap }

// IsConstraintError returns true if the error represents a constraint violation.
func IsConstraintError(err error) bool {
	_, ok := err.(*ConstraintError)
	return ok
}

// Package embedding contains field name constants and predicate helpers
// for the Embedding entity, in the shape ent generates per-entity: a
// package named after the entity, FieldX constants matching the table's
// column names, and XEQ/XLT/... predicate constructors.
package embedding

import (
	"entgo.io/ent/dialect/sql"

	"github.com/regsentry/regsentry/ent/predicate"
)

const (
	// Table is the table name produced by the schema migration.
	Table = "embeddings"

	FieldID        = "id"
	FieldFilePath  = "file_path"
	FieldContent   = "content"
	FieldVector    = "vector"
	FieldCreatedAt = "created_at"
	FieldUpdatedAt = "updated_at"
)

// Columns holds all SQL columns for the embeddings table.
var Columns = []string{FieldID, FieldFilePath, FieldContent, FieldVector, FieldCreatedAt, FieldUpdatedAt}

// FilePathEQ applies the EQ predicate on the "file_path" field.
func FilePathEQ(v string) predicate.Embedding {
	return predicate.Embedding(func(s *sql.Selector) {
		s.Where(sql.EQ(s.C(FieldFilePath), v))
	})
}

// IDEQ applies the EQ predicate on the "id" field.
func IDEQ(v int64) predicate.Embedding {
	return predicate.Embedding(func(s *sql.Selector) {
		s.Where(sql.EQ(s.C(FieldID), v))
	})
}

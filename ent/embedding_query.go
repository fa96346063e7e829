package ent

import (
	"context"
	"fmt"

	"github.com/regsentry/regsentry/ent/embedding"
)

// EmbeddingQuery is the builder for querying Embedding entities.
type EmbeddingQuery struct {
	config
	wherePath *string
}

// WhereFilePath restricts the query to the row with the given file_path.
// A thin, entity-specific convenience over the predicate.Embedding
// mechanism ent itself generates as Where(embedding.FilePathEQ(v)).
func (eq *EmbeddingQuery) WhereFilePath(v string) *EmbeddingQuery {
	eq.wherePath = &v
	return eq
}

// All executes the query and returns every matching Embedding.
func (eq *EmbeddingQuery) All(ctx context.Context) ([]*Embedding, error) {
	db := eq.db()
	query := fmt.Sprintf(`SELECT %s, %s, %s, %s, %s, %s FROM %s`,
		embedding.FieldID, embedding.FieldFilePath, embedding.FieldContent,
		embedding.FieldVector, embedding.FieldCreatedAt, embedding.FieldUpdatedAt,
		embedding.Table,
	)
	rows, err := db.QueryContext(ctx, query)
	if err != nil {
		return nil, fmt.Errorf("ent: failed querying embeddings: %w", err)
	}
	defer rows.Close()
	return (&EmbeddingClient{config: eq.config}).scanRows(rows)
}

// Only executes the query restricted by WhereFilePath and returns the
// single matching row, or a *NotFoundError.
func (eq *EmbeddingQuery) Only(ctx context.Context) (*Embedding, error) {
	if eq.wherePath == nil {
		return nil, fmt.Errorf("ent: Only requires a WhereFilePath predicate")
	}
	db := eq.db()
	query := fmt.Sprintf(`SELECT %s, %s, %s, %s, %s, %s FROM %s WHERE %s = $1`,
		embedding.FieldID, embedding.FieldFilePath, embedding.FieldContent,
		embedding.FieldVector, embedding.FieldCreatedAt, embedding.FieldUpdatedAt,
		embedding.Table, embedding.FieldFilePath,
	)
	row := db.QueryRowContext(ctx, query, *eq.wherePath)
	return (&EmbeddingClient{config: eq.config}).scanRow(row)
}

// Count returns the number of rows in the embeddings table.
func (eq *EmbeddingQuery) Count(ctx context.Context) (int, error) {
	db := eq.db()
	var n int
	query := fmt.Sprintf(`SELECT count(*) FROM %s`, embedding.Table)
	if err := db.QueryRowContext(ctx, query).Scan(&n); err != nil {
		return 0, fmt.Errorf("ent: failed counting embeddings: %w", err)
	}
	return n, nil
}

package ent

import (
	"context"
	"database/sql"
	"fmt"

	"github.com/lib/pq"
)

// EmbeddingClient is a client for the Embedding schema, the generated
// sub-client callers obtain off *ent.Client (client.Embedding), exactly as
// TARSy callers use client.AlertSession / client.LLMInteraction.
type EmbeddingClient struct {
	config
}

// Create returns a builder for creating an Embedding entity.
func (c *EmbeddingClient) Create() *EmbeddingCreate {
	return &EmbeddingCreate{config: c.config}
}

// Query returns a query builder for Embedding.
func (c *EmbeddingClient) Query() *EmbeddingQuery {
	return &EmbeddingQuery{config: c.config}
}

// Get returns an Embedding entity by its file_path, the table's natural
// unique key.
func (c *EmbeddingClient) Get(ctx context.Context, filePath string) (*Embedding, error) {
	return c.Query().WhereFilePath(filePath).Only(ctx)
}

func (c *EmbeddingClient) scanRow(row *sql.Row) (*Embedding, error) {
	var e Embedding
	var vec pq.Float64Array
	err := row.Scan(&e.ID, &e.FilePath, &e.Content, &vec, &e.CreatedAt, &e.UpdatedAt)
	if err == sql.ErrNoRows {
		return nil, &NotFoundError{label: "embedding"}
	}
	if err != nil {
		return nil, fmt.Errorf("ent: failed scanning embedding row: %w", err)
	}
	e.Vector = []float64(vec)
	return &e, nil
}

func (c *EmbeddingClient) scanRows(rows *sql.Rows) ([]*Embedding, error) {
	var out []*Embedding
	for rows.Next() {
		var e Embedding
		var vec pq.Float64Array
		if err := rows.Scan(&e.ID, &e.FilePath, &e.Content, &vec, &e.CreatedAt, &e.UpdatedAt); err != nil {
			return nil, fmt.Errorf("ent: failed scanning embedding row: %w", err)
		}
		e.Vector = []float64(vec)
		out = append(out, &e)
	}
	if err := rows.Err(); err != nil {
		return nil, err
	}
	return out, nil
}

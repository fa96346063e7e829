package ent

import (
	"context"
	"fmt"

	"github.com/lib/pq"

	"github.com/regsentry/regsentry/ent/embedding"
)

// EmbeddingCreate is the builder for creating an Embedding entity.
type EmbeddingCreate struct {
	config
	filePath string
	content  string
	vector   []float64
}

// SetFilePath sets the "file_path" field.
func (ec *EmbeddingCreate) SetFilePath(v string) *EmbeddingCreate {
	ec.filePath = v
	return ec
}

// SetContent sets the "content" field.
func (ec *EmbeddingCreate) SetContent(v string) *EmbeddingCreate {
	ec.content = v
	return ec
}

// SetVector sets the "vector" field.
func (ec *EmbeddingCreate) SetVector(v []float64) *EmbeddingCreate {
	ec.vector = v
	return ec
}

// EmbeddingUpsertOne is the builder for upserting a single Embedding
// entity, the shape ent generates for Create().OnConflictColumns(...).
type EmbeddingUpsertOne struct {
	create *EmbeddingCreate
}

// OnConflictColumns configures the upsert to trigger on a conflict over the
// given unique columns, mirroring ent's generated
// Create().OnConflict(sql.ConflictColumns(...)) builder.
func (ec *EmbeddingCreate) OnConflictColumns(columns ...string) *EmbeddingUpsertOne {
	return &EmbeddingUpsertOne{create: ec}
}

// UpdateNewValues tells the upsert to update every non-conflict column with
// the values proposed in this insert, equivalent to ent's
// UpdateNewValues(), itself equivalent to a Postgres `DO UPDATE SET col =
// EXCLUDED.col` clause for every column.
func (u *EmbeddingUpsertOne) UpdateNewValues() *EmbeddingUpsertOne {
	return u
}

// Exec executes the upsert query and returns an error if it fails.
func (u *EmbeddingUpsertOne) Exec(ctx context.Context) error {
	ec := u.create
	db := ec.db()
	_, err := db.ExecContext(ctx, fmt.Sprintf(`
		INSERT INTO %s (%s, %s, %s, %s, %s)
		VALUES ($1, $2, $3, now(), now())
		ON CONFLICT (%s) DO UPDATE
		SET %s = EXCLUDED.%s,
		    %s = EXCLUDED.%s,
		    %s = now()
	`,
		embedding.Table,
		embedding.FieldFilePath, embedding.FieldContent, embedding.FieldVector, embedding.FieldCreatedAt, embedding.FieldUpdatedAt,
		embedding.FieldFilePath,
		embedding.FieldContent, embedding.FieldContent,
		embedding.FieldVector, embedding.FieldVector,
		embedding.FieldUpdatedAt,
	), ec.filePath, ec.content, pq.Array(ec.vector))
	if err != nil {
		return fmt.Errorf("ent: failed upserting embedding: %w", err)
	}
	return nil
}

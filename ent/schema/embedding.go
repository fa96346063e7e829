package schema

import (
	"time"

	"entgo.io/ent"
	"entgo.io/ent/schema/field"
	"entgo.io/ent/schema/index"
)

// Embedding holds the schema definition for the Embedding entity: one row
// per indexed source file backing the Vector Index (C2).
type Embedding struct {
	ent.Schema
}

// Fields of the Embedding.
func (Embedding) Fields() []ent.Field {
	return []ent.Field{
		field.String("file_path").
			Unique().
			NotEmpty().
			Comment("Repo-relative path; the natural key for upsert"),
		field.Text("content").
			Comment("Raw file content, truncated to a snippet by CodeReader"),
		field.JSON("vector", []float64{}).
			Comment("Fixed-dimension embedding produced by the Encoder; stored as a Postgres double precision[] column, not JSONB (see migrations)"),
		field.Time("created_at").
			Default(time.Now).
			Immutable(),
		field.Time("updated_at").
			Default(time.Now).
			UpdateDefault(time.Now),
	}
}

// Indexes of the Embedding.
func (Embedding) Indexes() []ent.Index {
	return []ent.Index{
		index.Fields("file_path").Unique(),
	}
}

// Edges of the Embedding.
func (Embedding) Edges() []ent.Edge {
	return nil
}

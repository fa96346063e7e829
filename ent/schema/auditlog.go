package schema

import (
	"time"

	"entgo.io/ent"
	"entgo.io/ent/schema/field"
	"entgo.io/ent/schema/index"
)

// AuditLog holds the schema definition for the AuditLog entity: one row per
// pipeline run, persisted by the Audit Store (C9) on every completion path.
type AuditLog struct {
	ent.Schema
}

// Fields of the AuditLog.
func (AuditLog) Fields() []ent.Field {
	return []ent.Field{
		field.String("execution_id").
			Unique().
			NotEmpty().
			Comment("Natural key; a second Save for the same id overwrites the row"),
		field.Text("raw_text").
			Comment("The regulatory text submitted for analysis"),
		field.Bool("change_detected").
			Optional().
			Nillable(),
		field.String("risk_level").
			Optional().
			Nillable(),
		field.JSON("structured_model", map[string]any{}).
			Optional().
			Comment("Parsed RegulatoryModel, nil when the run halted before Translator produced a model"),
		field.JSON("impacted_files", []any{}).
			Optional(),
		field.JSON("impact_analysis", []any{}).
			Optional(),
		field.Text("technical_spec").
			Optional().
			Nillable(),
		field.Text("kiro_prompt").
			Optional().
			Nillable(),
		field.Text("error").
			Optional().
			Nillable().
			Comment("Set when the run halted early; Save is still called"),
		field.Time("timestamp").
			Default(time.Now),
	}
}

// Indexes of the AuditLog.
func (AuditLog) Indexes() []ent.Index {
	return []ent.Index{
		index.Fields("execution_id").Unique(),
		index.Fields("timestamp"),
		index.Fields("risk_level"),
	}
}

// Edges of the AuditLog.
func (AuditLog) Edges() []ent.Edge {
	return nil
}

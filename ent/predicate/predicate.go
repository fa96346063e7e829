// Package predicate holds the predicate function types used by query
// builders across the ent package, mirroring ent's own generated
// predicate package (one function type per entity, wrapping a SQL
// selector mutation).
package predicate

import "entgo.io/ent/dialect/sql"

// Embedding is the predicate function for the Embedding builders.
type Embedding func(*sql.Selector)

// AuditLog is the predicate function for the AuditLog builders.
type AuditLog func(*sql.Selector)

// Package database provides test helpers for constructing a
// *database.Client against an isolated PostgreSQL schema.
package database

import (
	stdsql "database/sql"
	"testing"

	"entgo.io/ent/dialect"
	entsql "entgo.io/ent/dialect/sql"
	_ "github.com/jackc/pgx/v5/stdlib" // registers the pgx driver for database/sql
	"github.com/stretchr/testify/require"

	"github.com/regsentry/regsentry/ent"
	"github.com/regsentry/regsentry/pkg/database"
	"github.com/regsentry/regsentry/test/util"
)

// NewTestClient creates a test database client backed by an isolated
// PostgreSQL schema with RegSentry's migrations already applied.
//
// In CI (when CI_DATABASE_URL is set): connects to an external PostgreSQL
// service container. In local dev: reuses a shared testcontainer started
// once per package. The schema and connection are cleaned up automatically
// when the test ends.
//
// Migrations are applied with golang-migrate, exactly as in production;
// unlike TARSy's own test helper (which uses ent's Schema.Create
// auto-migration), the embedded SQL migrations stay the single source of
// truth for both code paths here.
func NewTestClient(t *testing.T) *database.Client {
	t.Helper()

	connStr := util.SetupTestDatabase(t)

	db, err := stdsql.Open("pgx", connStr)
	require.NoError(t, err)

	drv := entsql.OpenDB(dialect.Postgres, db)
	entClient := ent.NewClient(ent.Driver(drv))

	client := database.NewClientFromEnt(entClient, db)
	t.Cleanup(client.Close)

	return client
}

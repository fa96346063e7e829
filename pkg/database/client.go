// Package database provides the PostgreSQL connection and migration runner
// backing the Vector Index (C2) and Audit Store (C9).
//
// Grounded on TARSy's pkg/database/client.go: a *stdsql.DB opened with the
// pgx stdlib driver, wrapped by entgo.io/ent's sql dialect, and handed to a
// generated *ent.Client. Production schema changes still go through
// golang-migrate against the embedded migrations; ent is purely the typed
// query layer over an already-migrated schema, exactly as in TARSy.
package database

import (
	"context"
	stdsql "database/sql"
	"embed"
	"errors"
	"fmt"
	"io/fs"

	"entgo.io/ent/dialect"
	entsql "entgo.io/ent/dialect/sql"
	"github.com/golang-migrate/migrate/v4"
	migratedb "github.com/golang-migrate/migrate/v4/database"
	"github.com/golang-migrate/migrate/v4/database/postgres"
	"github.com/golang-migrate/migrate/v4/source/iofs"
	_ "github.com/jackc/pgx/v5/stdlib" // registers the pgx driver for database/sql

	"github.com/regsentry/regsentry/ent"
)

//go:embed migrations
var migrationsFS embed.FS

// Client wraps the generated ent client together with the underlying
// *database/sql.DB, mirroring TARSy's pkg/database.Client.
type Client struct {
	*ent.Client
	db *stdsql.DB
}

// DB returns the underlying *database/sql.DB, the handle the ent driver
// runs on. Migrations do not use it: runMigrations opens its own connection.
func (c *Client) DB() *stdsql.DB {
	return c.db
}

// NewClientFromEnt assembles a Client from an already-constructed ent
// client and its backing *database/sql.DB. Exported so test/database can
// build one against an isolated test schema.
func NewClientFromEnt(entClient *ent.Client, db *stdsql.DB) *Client {
	return &Client{Client: entClient, db: db}
}

// NewClient opens a connection against databaseURL, applies any pending
// migrations, and returns a ready-to-use Client backed by a generated
// *ent.Client.
func NewClient(ctx context.Context, databaseURL string) (*Client, error) {
	db, err := stdsql.Open("pgx", databaseURL)
	if err != nil {
		return nil, fmt.Errorf("database: failed to open connection: %w", err)
	}

	if err := db.PingContext(ctx); err != nil {
		_ = db.Close()
		return nil, fmt.Errorf("database: failed to ping database: %w", err)
	}

	if err := runMigrations(databaseURL); err != nil {
		_ = db.Close()
		return nil, fmt.Errorf("database: failed to run migrations: %w", err)
	}

	drv := entsql.OpenDB(dialect.Postgres, db)
	entClient := ent.NewClient(ent.Driver(drv))

	return &Client{Client: entClient, db: db}, nil
}

// Close releases the underlying connection.
func (c *Client) Close() {
	_ = c.Client.Close()
}

// runMigrations applies embedded SQL migrations with golang-migrate.
func runMigrations(databaseURL string) error {
	hasMigrations, err := hasEmbeddedMigrations()
	if err != nil {
		return fmt.Errorf("failed to check embedded migrations: %w", err)
	}
	if !hasMigrations {
		return fmt.Errorf("no embedded migration files found - binary may be built incorrectly")
	}

	db, err := stdsql.Open("pgx", databaseURL)
	if err != nil {
		return fmt.Errorf("failed to open migration connection: %w", err)
	}
	defer func() { _ = db.Close() }()

	driver, err := postgres.WithInstance(db, &postgres.Config{})
	if err != nil {
		return fmt.Errorf("failed to create postgres driver: %w", err)
	}

	m, err := NewMigrator(driver, "regsentry")
	if err != nil {
		return err
	}

	if err := m.Up(); err != nil && !errors.Is(err, migrate.ErrNoChange) {
		return fmt.Errorf("failed to apply migrations: %w", err)
	}
	return nil
}

// NewMigrator builds a *migrate.Migrate instance over the embedded SQL
// migrations using an already-constructed golang-migrate database driver.
// Exported so integration tests can run RegSentry's migrations against a
// driver pointed at an isolated test schema (test/util.SetupTestDatabase).
func NewMigrator(driver migratedb.Driver, dbName string) (*migrate.Migrate, error) {
	sourceDriver, err := iofs.New(migrationsFS, "migrations")
	if err != nil {
		return nil, fmt.Errorf("failed to create migration source: %w", err)
	}
	return migrate.NewWithInstance("iofs", sourceDriver, dbName, driver)
}

func hasEmbeddedMigrations() (bool, error) {
	entries, err := fs.ReadDir(migrationsFS, "migrations")
	if err != nil {
		if errors.Is(err, fs.ErrNotExist) {
			return false, nil
		}
		return false, fmt.Errorf("failed to read embedded migrations: %w", err)
	}
	for _, entry := range entries {
		name := entry.Name()
		if !entry.IsDir() && len(name) > 4 && name[len(name)-4:] == ".sql" {
			return true, nil
		}
	}
	return false, nil
}

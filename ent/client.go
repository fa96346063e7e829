package ent

import (
	stdsql "database/sql"

	"entgo.io/ent/dialect"
	entsql "entgo.io/ent/dialect/sql"
)

// Client is the client that holds all ent builders, mirroring the shape
// ent generates: one typed sub-client per entity hanging off a shared
// driver. pkg/database.Client embeds this, exactly as TARSy's
// pkg/database.Client embeds *ent.Client.
type Client struct {
	config

	// Embedding is the client for interacting with the Embedding builders.
	Embedding *EmbeddingClient
	// AuditLog is the client for interacting with the AuditLog builders.
	AuditLog *AuditLogClient
}

// config carries the dialect driver shared by every sub-client. Queries are
// written as plain SQL strings and executed through driver.DB(), the
// one escape hatch onto *database/sql.DB that ent's sql dialect exposes
// (the same one TARSy's pkg/database/migrations.go uses for its GIN index
// statements).
type config struct {
	driver *entsql.Driver
}

func (c config) db() *stdsql.DB {
	return c.driver.DB()
}

// Option configures the client.
type Option func(*config)

// Driver configures the client driver.
func Driver(driver dialect.Driver) Option {
	return func(c *config) {
		if d, ok := driver.(*entsql.Driver); ok {
			c.driver = d
			return
		}
		panic("ent: Driver option requires a *entgo.io/ent/dialect/sql.Driver")
	}
}

// NewClient creates a new client configured with the given options.
func NewClient(opts ...Option) *Client {
	cfg := config{}
	for _, opt := range opts {
		opt(&cfg)
	}
	cli := &Client{config: cfg}
	cli.Embedding = &EmbeddingClient{config: cfg}
	cli.AuditLog = &AuditLogClient{config: cfg}
	return cli
}

// Close closes the underlying driver.
func (c *Client) Close() error {
	return c.driver.Close()
}

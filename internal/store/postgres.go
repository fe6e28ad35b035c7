package store

import (
	"context"
	"errors"
	"fmt"

	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgconn"
	"github.com/jackc/pgx/v5/pgxpool"
)

// PGX is the subset of pgxpool.Pool the store needs. Both a pool and a
// transaction implement it, which lets tests run against a transaction
// rolled back afterwards.
type PGX interface {
	Exec(ctx context.Context, sql string, arguments ...any) (pgconn.CommandTag, error)
	QueryRow(ctx context.Context, sql string, args ...any) pgx.Row
}

// Ensure types implement the interface at compile time.
var (
	_ PGX = (*pgxpool.Pool)(nil)
	_ PGX = (pgx.Tx)(nil)
)

// Postgres is a Store backed by a PostgreSQL kv table. Useful when the
// store should live on a shared host rather than a local file.
type Postgres struct {
	db   PGX
	pool *pgxpool.Pool
}

// OpenPostgres establishes a connection pool and ensures the kv table
// exists.
func OpenPostgres(ctx context.Context, databaseURL string) (*Postgres, error) {
	pool, err := pgxpool.New(ctx, databaseURL)
	if err != nil {
		return nil, fmt.Errorf("unable to create connection pool: %w", err)
	}

	if err := pool.Ping(ctx); err != nil {
		pool.Close()
		return nil, fmt.Errorf("unable to ping database: %w", err)
	}

	p := &Postgres{db: pool, pool: pool}
	if err := p.migrate(ctx); err != nil {
		pool.Close()
		return nil, err
	}
	return p, nil
}

// NewPostgresWithDB wraps an existing connection or transaction. The
// caller owns the table schema and connection lifecycle.
func NewPostgresWithDB(db PGX) *Postgres {
	return &Postgres{db: db}
}

func (p *Postgres) migrate(ctx context.Context) error {
	_, err := p.db.Exec(ctx, `CREATE TABLE IF NOT EXISTS kv (
		key TEXT PRIMARY KEY,
		value BYTEA NOT NULL,
		updated_at TIMESTAMPTZ NOT NULL DEFAULT NOW()
	)`)
	if err != nil {
		return fmt.Errorf("create kv table: %w", err)
	}
	return nil
}

// Get returns the value stored under key, or ErrNotFound.
func (p *Postgres) Get(ctx context.Context, key string) ([]byte, error) {
	var value []byte
	err := p.db.QueryRow(ctx, "SELECT value FROM kv WHERE key = $1", key).Scan(&value)
	if errors.Is(err, pgx.ErrNoRows) {
		return nil, ErrNotFound
	}
	if err != nil {
		return nil, fmt.Errorf("get %q: %w", key, err)
	}
	return value, nil
}

// Set stores value under key, overwriting any previous value.
func (p *Postgres) Set(ctx context.Context, key string, value []byte) error {
	_, err := p.db.Exec(ctx, `
		INSERT INTO kv (key, value, updated_at) VALUES ($1, $2, NOW())
		ON CONFLICT (key) DO UPDATE SET value = EXCLUDED.value, updated_at = NOW()
	`, key, value)
	if err != nil {
		return fmt.Errorf("set %q: %w", key, err)
	}
	return nil
}

// Remove deletes key. Removing an absent key is not an error.
func (p *Postgres) Remove(ctx context.Context, key string) error {
	if _, err := p.db.Exec(ctx, "DELETE FROM kv WHERE key = $1", key); err != nil {
		return fmt.Errorf("remove %q: %w", key, err)
	}
	return nil
}

// Clear removes every key with the given prefix.
func (p *Postgres) Clear(ctx context.Context, prefix string) error {
	if _, err := p.db.Exec(ctx, "DELETE FROM kv WHERE key LIKE $1 || '%'", prefix); err != nil {
		return fmt.Errorf("clear %q: %w", prefix, err)
	}
	return nil
}

// Close releases the connection pool if this store owns one.
func (p *Postgres) Close() {
	if p.pool != nil {
		p.pool.Close()
	}
}

var _ Store = (*Postgres)(nil)

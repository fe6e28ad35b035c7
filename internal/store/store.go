// Package store provides the persistent key-value collaborator: durable
// string-keyed blob storage behind a small interface, with sqlite,
// postgres, and in-memory implementations.
package store

import (
	"context"
	"errors"
	"fmt"

	"github.com/paisapal/paisa/internal/config"
)

// ErrNotFound is returned by Get for keys that have never been set or have
// been removed.
var ErrNotFound = errors.New("store: key not found")

// Store is durable string-keyed blob storage. Values are opaque to the
// store; callers serialize whole collections as single snapshots.
type Store interface {
	Get(ctx context.Context, key string) ([]byte, error)
	Set(ctx context.Context, key string, value []byte) error
	Remove(ctx context.Context, key string) error
	// Clear removes every key with the given prefix. Used on logout.
	Clear(ctx context.Context, prefix string) error
}

// Open creates the store selected by the configuration. The returned
// cleanup func releases the underlying connection and is safe to call on a
// nil-error result only.
func Open(ctx context.Context, cfg *config.Config) (Store, func(), error) {
	switch cfg.Backend {
	case config.BackendSQLite:
		s, err := OpenSQLite(cfg.SQLitePath)
		if err != nil {
			return nil, nil, fmt.Errorf("open sqlite store: %w", err)
		}
		return s, func() { _ = s.Close() }, nil
	case config.BackendPostgres:
		s, err := OpenPostgres(ctx, cfg.DatabaseURL)
		if err != nil {
			return nil, nil, fmt.Errorf("open postgres store: %w", err)
		}
		return s, s.Close, nil
	case config.BackendMemory:
		return NewMemory(), func() {}, nil
	default:
		return nil, nil, fmt.Errorf("unsupported backend %q", cfg.Backend)
	}
}

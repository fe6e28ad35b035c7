// Package repository holds the canonical in-memory collections (user,
// transactions, goals, bills), keeps them mirrored to the persistent
// key-value store, and maintains the running balance ledger.
//
// Every mutation applies to memory first and is then written through as a
// whole-collection snapshot. A failed write is logged and reported to the
// caller but never rolls the in-memory change back; the app stays usable
// and the durable copy catches up on the next successful write.
package repository

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"sync"
	"time"

	"github.com/paisapal/paisa/internal/logger"
	"github.com/paisapal/paisa/internal/models"
	"github.com/paisapal/paisa/internal/store"
)

// Store keys. The four collections persist as independent snapshots; the
// prefix scopes Clear on logout.
const (
	KeyPrefix       = "paisa:"
	keyUser         = KeyPrefix + "user"
	keyTransactions = KeyPrefix + "transactions"
	keyGoals        = KeyPrefix + "goals"
	keyBills        = KeyPrefix + "bills"
)

// ErrNoUser is returned by operations that require a loaded user profile.
var ErrNoUser = errors.New("repository: no user loaded")

// Repository is the single-writer state container. Screens and the CLI
// read through accessors and mutate only through its operations; nothing
// else touches the collections or the balance.
type Repository struct {
	store store.Store
	now   func() time.Time

	mu           sync.Mutex
	user         *models.User
	transactions []models.Transaction
	goals        []models.Goal
	bills        []models.Bill

	subMu   sync.Mutex
	subs    map[int]func()
	nextSub int
}

// New creates a repository over the given store. State is empty until
// LoadAll runs.
func New(s store.Store) *Repository {
	return &Repository{
		store: s,
		now:   time.Now,
		subs:  make(map[int]func()),
	}
}

// NewWithClock creates a repository with an injected clock. Tests use this
// to pin "today".
func NewWithClock(s store.Store, now func() time.Time) *Repository {
	r := New(s)
	r.now = now
	return r
}

// Subscribe registers a change-notification callback, invoked after every
// in-memory mutation. The returned func unsubscribes.
func (r *Repository) Subscribe(fn func()) func() {
	r.subMu.Lock()
	defer r.subMu.Unlock()
	id := r.nextSub
	r.nextSub++
	r.subs[id] = fn
	return func() {
		r.subMu.Lock()
		defer r.subMu.Unlock()
		delete(r.subs, id)
	}
}

func (r *Repository) notify() {
	r.subMu.Lock()
	fns := make([]func(), 0, len(r.subs))
	for _, fn := range r.subs {
		fns = append(fns, fn)
	}
	r.subMu.Unlock()
	for _, fn := range fns {
		fn()
	}
}

// LoadAll reads the four collection snapshots from the store and evaluates
// the daily streak. It fails soft: any read or parse error leaves that
// collection empty and is logged, never propagated, so the app always
// reaches a usable state.
func (r *Repository) LoadAll(ctx context.Context) {
	r.mu.Lock()

	r.user = loadSnapshot[models.User](ctx, r.store, keyUser)
	r.transactions = loadListSnapshot[models.Transaction](ctx, r.store, keyTransactions)
	r.goals = loadListSnapshot[models.Goal](ctx, r.store, keyGoals)
	r.bills = loadListSnapshot[models.Bill](ctx, r.store, keyBills)

	if r.user != nil {
		if evaluateStreak(r.user, r.now()) {
			if err := r.persistUser(ctx); err != nil {
				logger.Log.Error().Err(err).Msg("persist streak update")
			}
		}
	}

	r.mu.Unlock()
	r.notify()
}

func loadSnapshot[T any](ctx context.Context, s store.Store, key string) *T {
	raw, err := s.Get(ctx, key)
	if errors.Is(err, store.ErrNotFound) {
		return nil
	}
	if err != nil {
		logger.Log.Error().Err(err).Str("key", key).Msg("load snapshot")
		return nil
	}
	var v T
	if err := json.Unmarshal(raw, &v); err != nil {
		logger.Log.Error().Err(err).Str("key", key).Msg("parse snapshot")
		return nil
	}
	return &v
}

func loadListSnapshot[T any](ctx context.Context, s store.Store, key string) []T {
	raw, err := s.Get(ctx, key)
	if errors.Is(err, store.ErrNotFound) {
		return nil
	}
	if err != nil {
		logger.Log.Error().Err(err).Str("key", key).Msg("load snapshot")
		return nil
	}
	var v []T
	if err := json.Unmarshal(raw, &v); err != nil {
		logger.Log.Error().Err(err).Str("key", key).Msg("parse snapshot")
		return nil
	}
	return v
}

// Logout clears all in-memory collections and removes their persisted
// snapshots.
func (r *Repository) Logout(ctx context.Context) error {
	r.mu.Lock()
	r.user = nil
	r.transactions = nil
	r.goals = nil
	r.bills = nil
	err := r.store.Clear(ctx, KeyPrefix)
	if err != nil {
		logger.Log.Error().Err(err).Msg("clear persisted state")
		err = fmt.Errorf("clear persisted state: %w", err)
	}
	r.mu.Unlock()
	r.notify()
	return err
}

// User returns a copy of the loaded user profile, if any.
func (r *Repository) User() (models.User, bool) {
	r.mu.Lock()
	defer r.mu.Unlock()
	if r.user == nil {
		return models.User{}, false
	}
	return *r.user, true
}

// Transactions returns a copy of the transaction list, most recent first.
func (r *Repository) Transactions() []models.Transaction {
	r.mu.Lock()
	defer r.mu.Unlock()
	out := make([]models.Transaction, len(r.transactions))
	copy(out, r.transactions)
	return out
}

// Goals returns a copy of the goal list.
func (r *Repository) Goals() []models.Goal {
	r.mu.Lock()
	defer r.mu.Unlock()
	out := make([]models.Goal, len(r.goals))
	copy(out, r.goals)
	return out
}

// Bills returns a copy of the bill list.
func (r *Repository) Bills() []models.Bill {
	r.mu.Lock()
	defer r.mu.Unlock()
	out := make([]models.Bill, len(r.bills))
	copy(out, r.bills)
	return out
}

// persistUser writes the user snapshot. Callers hold the state mutex.
func (r *Repository) persistUser(ctx context.Context) error {
	if r.user == nil {
		if err := r.store.Remove(ctx, keyUser); err != nil {
			return fmt.Errorf("remove user snapshot: %w", err)
		}
		return nil
	}
	return r.persistSnapshot(ctx, keyUser, r.user)
}

func (r *Repository) persistTransactions(ctx context.Context) error {
	return r.persistSnapshot(ctx, keyTransactions, r.transactions)
}

func (r *Repository) persistGoals(ctx context.Context) error {
	return r.persistSnapshot(ctx, keyGoals, r.goals)
}

func (r *Repository) persistBills(ctx context.Context) error {
	return r.persistSnapshot(ctx, keyBills, r.bills)
}

func (r *Repository) persistSnapshot(ctx context.Context, key string, v any) error {
	raw, err := json.Marshal(v)
	if err != nil {
		return fmt.Errorf("marshal %s snapshot: %w", key, err)
	}
	if err := r.store.Set(ctx, key, raw); err != nil {
		logger.Log.Error().Err(err).Str("key", key).Msg("persist snapshot")
		return fmt.Errorf("persist %s snapshot: %w", key, err)
	}
	return nil
}

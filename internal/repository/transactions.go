package repository

import (
	"context"
	"errors"

	"github.com/paisapal/paisa/internal/logger"
	"github.com/paisapal/paisa/internal/models"
)

// AddTransaction validates and records a new transaction, prepending it to
// the list and applying its effect to the balance ledger. A fresh ID and a
// creation timestamp are assigned when the input carries none. The stored
// transaction is returned along with the persistence outcome; a
// validation failure or missing user rejects the call before any state
// changes.
func (r *Repository) AddTransaction(ctx context.Context, input models.Transaction) (models.Transaction, error) {
	r.mu.Lock()
	tx, err := r.addTransactionLocked(ctx, input)
	r.mu.Unlock()
	if err != nil && tx.ID == "" {
		return tx, err
	}
	r.notify()
	return tx, err
}

// addTransactionLocked is the shared create path used directly and by the
// goal-funding and bill-payment flows. Callers hold the state mutex.
//
// On a validation failure or missing user the returned transaction has an
// empty ID and nothing was mutated. Otherwise the transaction is in memory
// and any non-nil error reports a failed persistence write only.
func (r *Repository) addTransactionLocked(ctx context.Context, input models.Transaction) (models.Transaction, error) {
	if r.user == nil {
		return models.Transaction{}, ErrNoUser
	}
	if err := input.Validate(); err != nil {
		return models.Transaction{}, err
	}

	tx := input
	if tx.ID == "" {
		tx.ID = models.NewID()
	}
	if tx.UserID == "" {
		tx.UserID = r.user.ID
	}
	if tx.Date.IsZero() {
		tx.Date = r.now()
	}

	// Most-recent-first is the canonical in-memory order.
	r.transactions = append([]models.Transaction{tx}, r.transactions...)

	delta := tx.Amount
	if tx.Type == models.TypeExpense {
		delta = delta.Neg()
	}
	r.applyBalance(delta)

	logger.Log.Debug().
		Str("transaction_id", tx.ID).
		Str("type", string(tx.Type)).
		Str("category", tx.Category).
		Msg("transaction added")

	err := errors.Join(r.persistTransactions(ctx), r.persistUser(ctx))
	return tx, err
}

// DeleteTransaction removes a transaction and reverses its exact balance
// contribution, computed from the stored record's own type and amount. A
// missing ID is a silent no-op.
func (r *Repository) DeleteTransaction(ctx context.Context, id string) error {
	r.mu.Lock()
	if r.user == nil {
		r.mu.Unlock()
		return nil
	}
	idx := -1
	for i, tx := range r.transactions {
		if tx.ID == id {
			idx = i
			break
		}
	}
	if idx < 0 {
		r.mu.Unlock()
		return nil
	}

	tx := r.transactions[idx]
	r.transactions = append(r.transactions[:idx], r.transactions[idx+1:]...)

	// Exact inverse of the original contribution.
	delta := tx.Amount
	if tx.Type == models.TypeIncome {
		delta = delta.Neg()
	}
	r.applyBalance(delta)

	logger.Log.Debug().
		Str("transaction_id", tx.ID).
		Str("type", string(tx.Type)).
		Msg("transaction deleted")

	err := errors.Join(r.persistTransactions(ctx), r.persistUser(ctx))
	r.mu.Unlock()
	r.notify()
	return err
}

package repository

import (
	"context"
	"errors"
	"fmt"
	"time"

	"github.com/paisapal/paisa/internal/logger"
	"github.com/paisapal/paisa/internal/models"
)

// AddBill validates and records a new bill template. IsPaid always starts
// false; non-recurring bills default to the one-time frequency.
func (r *Repository) AddBill(ctx context.Context, input models.Bill) (models.Bill, error) {
	r.mu.Lock()
	if r.user == nil {
		r.mu.Unlock()
		return models.Bill{}, ErrNoUser
	}
	if err := input.Validate(); err != nil {
		r.mu.Unlock()
		return models.Bill{}, err
	}

	bill := input
	if bill.ID == "" {
		bill.ID = models.NewID()
	}
	if bill.UserID == "" {
		bill.UserID = r.user.ID
	}
	if bill.CreatedAt.IsZero() {
		bill.CreatedAt = r.now()
	}
	bill.IsPaid = false
	bill.PaidDate = time.Time{}
	bill.DueDate = models.DateOf(bill.DueDate)
	if !bill.IsRecurring || bill.Frequency == "" {
		bill.Frequency = models.FrequencyOneTime
	}

	r.bills = append([]models.Bill{bill}, r.bills...)
	err := r.persistBills(ctx)
	r.mu.Unlock()

	logger.Log.Debug().Str("bill_id", bill.ID).Str("name", bill.Name).Msg("bill added")
	r.notify()
	return bill, err
}

// DeleteBill removes the bill with the given ID. A missing ID is a silent
// no-op.
func (r *Repository) DeleteBill(ctx context.Context, id string) error {
	r.mu.Lock()
	idx := r.billIndex(id)
	if idx < 0 {
		r.mu.Unlock()
		return nil
	}
	r.bills = append(r.bills[:idx], r.bills[idx+1:]...)
	err := r.persistBills(ctx)
	r.mu.Unlock()
	r.notify()
	return err
}

// PayBill marks the bill template paid, which suppresses the whole
// occurrence series from projection. With createExpense it also records an
// expense transaction of the bill's amount. A missing ID is a silent
// no-op.
//
// For recurring bills this settles every future occurrence at once; use
// PayBillOccurrence to settle a single period instead.
func (r *Repository) PayBill(ctx context.Context, id string, createExpense bool) error {
	r.mu.Lock()
	idx := r.billIndex(id)
	if idx < 0 {
		r.mu.Unlock()
		return nil
	}

	b := &r.bills[idx]
	b.IsPaid = true
	b.PaidDate = r.now()

	err := r.persistBills(ctx)
	if createExpense {
		_, txErr := r.addTransactionLocked(ctx, billExpense(*b))
		err = errors.Join(err, txErr)
	}
	r.mu.Unlock()

	logger.Log.Debug().Str("bill_id", id).Msg("bill paid")
	r.notify()
	return err
}

// PayBillOccurrence settles the single occurrence of a recurring bill due
// on the given date, leaving the rest of the series projectable. An
// already-settled occurrence is a no-op. Non-recurring bills route to the
// template-level pay.
func (r *Repository) PayBillOccurrence(ctx context.Context, id string, due time.Time, createExpense bool) error {
	r.mu.Lock()
	idx := r.billIndex(id)
	if idx < 0 {
		r.mu.Unlock()
		return nil
	}

	b := &r.bills[idx]
	if !b.IsRecurring {
		r.mu.Unlock()
		return r.PayBill(ctx, id, createExpense)
	}
	if b.OccurrencePaid(due) {
		r.mu.Unlock()
		return nil
	}

	key := models.DateOf(due).Format(models.DateLayout)
	b.PaidOccurrences = append(b.PaidOccurrences, key)

	err := r.persistBills(ctx)
	if createExpense {
		_, txErr := r.addTransactionLocked(ctx, billExpense(*b))
		err = errors.Join(err, txErr)
	}
	r.mu.Unlock()

	logger.Log.Debug().Str("bill_id", id).Str("occurrence", key).Msg("bill occurrence paid")
	r.notify()
	return err
}

// billExpense builds the expense transaction recorded when a bill is paid.
func billExpense(b models.Bill) models.Transaction {
	category := b.Category
	if category == "" {
		category = models.DefaultBillCategory
	}
	return models.Transaction{
		Type:     models.TypeExpense,
		Amount:   b.Amount,
		Category: category,
		Note:     fmt.Sprintf("Paid bill: %s", b.Name),
	}
}

// billIndex finds a bill by ID. Callers hold the state mutex.
func (r *Repository) billIndex(id string) int {
	for i, b := range r.bills {
		if b.ID == id {
			return i
		}
	}
	return -1
}

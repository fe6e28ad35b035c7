package models

import (
	"errors"
	"fmt"

	"github.com/shopspring/decimal"
)

// Validation sentinels. Validation failures are rejected before any state
// mutation and surfaced to the initiating caller.
var (
	ErrInvalidType     = errors.New("transaction type must be income or expense")
	ErrInvalidAmount   = errors.New("amount must be positive")
	ErrMissingCategory = errors.New("category is required")
	ErrMissingName     = errors.New("name is required")
	ErrInvalidTarget   = errors.New("target amount must be positive")
	ErrInvalidDueDate  = errors.New("due date is required")
)

// ValidFrequencies lists the recurrence steps a bill may carry.
var ValidFrequencies = []Frequency{
	FrequencyWeekly,
	FrequencyMonthly,
	FrequencyYearly,
	FrequencyOneTime,
}

// Validate checks a transaction before it enters the repository.
func (t Transaction) Validate() error {
	if t.Type != TypeIncome && t.Type != TypeExpense {
		return fmt.Errorf("%w: %q", ErrInvalidType, t.Type)
	}
	if !t.Amount.IsPositive() {
		return fmt.Errorf("%w: %s", ErrInvalidAmount, t.Amount)
	}
	if t.Category == "" {
		return ErrMissingCategory
	}
	return nil
}

// Validate checks a goal before it enters the repository.
func (g Goal) Validate() error {
	if g.Name == "" {
		return ErrMissingName
	}
	if !g.TargetAmount.IsPositive() {
		return fmt.Errorf("%w: %s", ErrInvalidTarget, g.TargetAmount)
	}
	if g.CurrentAmount.IsNegative() {
		return fmt.Errorf("%w: current amount %s", ErrInvalidAmount, g.CurrentAmount)
	}
	return nil
}

// Validate checks a bill before it enters the repository.
func (b Bill) Validate() error {
	if b.Name == "" {
		return ErrMissingName
	}
	if !b.Amount.IsPositive() {
		return fmt.Errorf("%w: %s", ErrInvalidAmount, b.Amount)
	}
	if b.DueDate.IsZero() {
		return ErrInvalidDueDate
	}
	if b.IsRecurring && b.Frequency != "" && !validFrequency(b.Frequency) {
		return fmt.Errorf("unknown frequency %q", b.Frequency)
	}
	return nil
}

func validFrequency(f Frequency) bool {
	for _, v := range ValidFrequencies {
		if v == f {
			return true
		}
	}
	return false
}

// ParseAmount converts user-entered text into a positive decimal amount.
// Comma decimal separators are accepted.
func ParseAmount(s string) (decimal.Decimal, error) {
	d, err := decimal.NewFromString(normalizeAmount(s))
	if err != nil {
		return decimal.Zero, fmt.Errorf("%w: %q", ErrInvalidAmount, s)
	}
	if !d.IsPositive() {
		return decimal.Zero, fmt.Errorf("%w: %s", ErrInvalidAmount, d)
	}
	return d, nil
}

func normalizeAmount(s string) string {
	out := make([]byte, 0, len(s))
	for i := 0; i < len(s); i++ {
		switch c := s[i]; {
		case c == ',':
			out = append(out, '.')
		case c == ' ' || c == '\t':
			// ignore stray whitespace
		default:
			out = append(out, c)
		}
	}
	return string(out)
}

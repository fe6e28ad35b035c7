// Package assistant provides the AI advice collaborator: a Gemini-backed
// advisor with bounded retries and model fallback, degrading to a local
// keyword-matched generator so advice is always available and never blocks
// core operations.
package assistant

import (
	"context"

	"github.com/shopspring/decimal"
)

// Context is the snapshot of the user's finances handed to an advisor
// alongside the prompt. No state is carried across calls.
type Context struct {
	Balance        decimal.Decimal
	MonthlyIncome  decimal.Decimal
	MonthlyExpense decimal.Decimal
	TxCount        int
	StreakDays     int
	CategoryTotals map[string]decimal.Decimal
}

// Savings is the month's income minus expense.
func (c Context) Savings() decimal.Decimal {
	return c.MonthlyIncome.Sub(c.MonthlyExpense)
}

// TopCategory returns the expense category with the largest total, or
// ("", zero) when there are none.
func (c Context) TopCategory() (string, decimal.Decimal) {
	var name string
	var top decimal.Decimal
	for cat, total := range c.CategoryTotals {
		if name == "" || total.GreaterThan(top) || (total.Equal(top) && cat < name) {
			name = cat
			top = total
		}
	}
	return name, top
}

// Advisor produces free-text financial advice for a prompt given the
// user's context.
type Advisor interface {
	Advise(ctx context.Context, prompt string, fin Context) (string, error)
}

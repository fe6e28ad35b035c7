// Package analytics derives read-only figures from the transaction list:
// monthly slices, per-category totals, and goal progress.
package analytics

import (
	"fmt"
	"strings"
	"time"

	"github.com/shopspring/decimal"

	"github.com/paisapal/paisa/internal/models"
)

// MonthlyTransactions filters to transactions whose date falls in the
// calendar month containing ref. Each timestamp's month is read in its
// own location, matching the day keys produced by models.DateOf.
func MonthlyTransactions(all []models.Transaction, ref time.Time) []models.Transaction {
	y, m, _ := ref.Date()
	var out []models.Transaction
	for _, tx := range all {
		ty, tm, _ := tx.Date.Date()
		if ty == y && tm == m {
			out = append(out, tx)
		}
	}
	return out
}

// CategoryTotals sums expense amounts grouped by category. Income
// transactions are ignored.
func CategoryTotals(txs []models.Transaction) map[string]decimal.Decimal {
	totals := make(map[string]decimal.Decimal)
	for _, tx := range txs {
		if tx.Type != models.TypeExpense {
			continue
		}
		totals[tx.Category] = totals[tx.Category].Add(tx.Amount)
	}
	return totals
}

// Summary holds the monthly income/expense aggregate fed to the advisor.
type Summary struct {
	Income  decimal.Decimal
	Expense decimal.Decimal
}

// Net is income minus expense for the period.
func (s Summary) Net() decimal.Decimal {
	return s.Income.Sub(s.Expense)
}

// Summarize totals income and expense over the given transactions.
func Summarize(txs []models.Transaction) Summary {
	var s Summary
	for _, tx := range txs {
		switch tx.Type {
		case models.TypeIncome:
			s.Income = s.Income.Add(tx.Amount)
		case models.TypeExpense:
			s.Expense = s.Expense.Add(tx.Amount)
		}
	}
	return s
}

// GoalProgressPercent returns how far along a goal is, capped at 100.
// A non-positive target counts as 100: the goal is trivially met rather
// than an error, since stored goals are validated to have positive
// targets and this only guards hand-built values.
func GoalProgressPercent(goal models.Goal) float64 {
	if !goal.TargetAmount.IsPositive() {
		return 100
	}
	pct, _ := goal.CurrentAmount.
		Div(goal.TargetAmount).
		Mul(decimal.NewFromInt(100)).
		Float64()
	if pct > 100 {
		return 100
	}
	if pct < 0 {
		return 0
	}
	return pct
}

// FormatRupees renders an amount as rupees with Indian digit grouping
// (12,34,567). Negative amounts render their absolute value; callers show
// direction separately.
func FormatRupees(amount decimal.Decimal) string {
	s := amount.Abs().StringFixed(2)
	whole, frac, _ := strings.Cut(s, ".")

	if len(whole) > 3 {
		head := whole[:len(whole)-3]
		tail := whole[len(whole)-3:]
		var groups []string
		for len(head) > 2 {
			groups = append([]string{head[len(head)-2:]}, groups...)
			head = head[:len(head)-2]
		}
		if head != "" {
			groups = append([]string{head}, groups...)
		}
		whole = strings.Join(append(groups, tail), ",")
	}

	return fmt.Sprintf("₹%s.%s", whole, frac)
}

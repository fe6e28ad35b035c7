package assistant

import (
	"context"
	"fmt"
	"strings"

	"github.com/shopspring/decimal"

	"github.com/paisapal/paisa/internal/analytics"
)

// Local is the offline fallback Advisor. It matches keywords in the
// prompt against a fixed set of canned responses rendered from the user's
// figures. It never fails.
type Local struct{}

// NewLocal returns the keyword-matching fallback advisor.
func NewLocal() *Local {
	return &Local{}
}

// Advise picks a canned response by keyword. The error is always nil.
func (l *Local) Advise(_ context.Context, prompt string, fin Context) (string, error) {
	lower := strings.ToLower(prompt)
	savings := fin.Savings()

	switch {
	case strings.Contains(lower, "how am i doing") || strings.Contains(lower, "status"):
		saved := "room to optimize"
		if savings.IsPositive() {
			saved = fmt.Sprintf("%s saved", analytics.FormatRupees(savings))
		}
		return fmt.Sprintf(
			"Based on your data, you're maintaining a balance of %s! With %s this month, keep tracking — you're on track.",
			analytics.FormatRupees(fin.Balance), saved), nil

	case strings.Contains(lower, "savings tips") || strings.Contains(lower, "save"):
		top, _ := fin.TopCategory()
		if top == "" {
			top = "expenses"
		}
		return fmt.Sprintf(
			"Top tip: review your biggest category, %s, and cut 10-20%%. Start a %s emergency fund — small wins add up.",
			top, analytics.FormatRupees(decimal.NewFromInt(500))), nil

	case strings.Contains(lower, "analyze") || strings.Contains(lower, "spending"):
		top, total := fin.TopCategory()
		if top == "" {
			top = "Uncategorized"
		}
		return fmt.Sprintf(
			"Your biggest spend is %s at %s. Shift %s from there to savings for better balance.",
			top, analytics.FormatRupees(total), analytics.FormatRupees(decimal.NewFromInt(200))), nil

	case strings.Contains(lower, "compare") || strings.Contains(lower, "trend"):
		return fmt.Sprintf(
			"Your monthly expenses are %s — aim to keep them under 70%% of income. Log more transactions for deeper insights.",
			analytics.FormatRupees(fin.MonthlyExpense)), nil

	case strings.Contains(lower, "budget"):
		target := fin.MonthlyIncome.Mul(decimal.NewFromFloat(0.2))
		return fmt.Sprintf(
			"Build a budget: 50%% needs, 30%% wants, 20%% savings. On your %s income, target %s saved.",
			analytics.FormatRupees(fin.MonthlyIncome), analytics.FormatRupees(target)), nil

	default:
		return fmt.Sprintf(
			"With your current %s and %d-day streak, focus on consistent tracking. Which area — savings or spending?",
			analytics.FormatRupees(fin.Balance), fin.StreakDays), nil
	}
}

var _ Advisor = (*Local)(nil)

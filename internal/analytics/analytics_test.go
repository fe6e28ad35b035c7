package analytics

import (
	"testing"
	"time"

	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/require"

	"github.com/paisapal/paisa/internal/models"
)

func tx(txType models.TransactionType, amount int64, category string, date time.Time) models.Transaction {
	return models.Transaction{
		Type:     txType,
		Amount:   decimal.NewFromInt(amount),
		Category: category,
		Date:     date,
	}
}

func TestMonthlyTransactions(t *testing.T) {
	t.Parallel()

	ref := time.Date(2025, 6, 15, 12, 0, 0, 0, time.UTC)
	all := []models.Transaction{
		tx(models.TypeExpense, 100, "Food", time.Date(2025, 6, 1, 0, 0, 0, 0, time.UTC)),
		tx(models.TypeExpense, 200, "Food", time.Date(2025, 6, 30, 23, 59, 0, 0, time.UTC)),
		tx(models.TypeExpense, 300, "Food", time.Date(2025, 5, 31, 23, 59, 0, 0, time.UTC)),
		tx(models.TypeExpense, 400, "Food", time.Date(2025, 7, 1, 0, 0, 0, 0, time.UTC)),
		tx(models.TypeExpense, 500, "Food", time.Date(2024, 6, 15, 0, 0, 0, 0, time.UTC)),
	}

	got := MonthlyTransactions(all, ref)
	require.Len(t, got, 2)
	require.True(t, got[0].Amount.Equal(decimal.NewFromInt(100)))
	require.True(t, got[1].Amount.Equal(decimal.NewFromInt(200)))
}

func TestMonthlyTransactionsHonorsLocation(t *testing.T) {
	t.Parallel()

	// Just after local midnight on July 1 is still June 30 in UTC; the
	// entry belongs to July because its own zone says so.
	ist := time.FixedZone("IST", 5*3600+1800)
	entry := tx(models.TypeExpense, 100, "Food", time.Date(2025, 7, 1, 0, 30, 0, 0, ist))

	july := MonthlyTransactions([]models.Transaction{entry}, time.Date(2025, 7, 15, 12, 0, 0, 0, ist))
	require.Len(t, july, 1)

	june := MonthlyTransactions([]models.Transaction{entry}, time.Date(2025, 6, 15, 12, 0, 0, 0, ist))
	require.Empty(t, june)
}

func TestCategoryTotalsIgnoresIncome(t *testing.T) {
	t.Parallel()

	now := time.Now()
	totals := CategoryTotals([]models.Transaction{
		tx(models.TypeExpense, 200, "Food", now),
		tx(models.TypeExpense, 300, "Food", now),
		tx(models.TypeExpense, 150, "Transport", now),
		tx(models.TypeIncome, 5000, "Salary", now),
	})

	require.Len(t, totals, 2)
	require.True(t, totals["Food"].Equal(decimal.NewFromInt(500)))
	require.True(t, totals["Transport"].Equal(decimal.NewFromInt(150)))
	require.NotContains(t, totals, "Salary")
}

func TestSummarize(t *testing.T) {
	t.Parallel()

	now := time.Now()
	s := Summarize([]models.Transaction{
		tx(models.TypeIncome, 5000, "Salary", now),
		tx(models.TypeExpense, 200, "Food", now),
		tx(models.TypeExpense, 800, "Rent", now),
	})

	require.True(t, s.Income.Equal(decimal.NewFromInt(5000)))
	require.True(t, s.Expense.Equal(decimal.NewFromInt(1000)))
	require.True(t, s.Net().Equal(decimal.NewFromInt(4000)))
}

func TestGoalProgressPercent(t *testing.T) {
	t.Parallel()

	tests := []struct {
		name    string
		current int64
		target  int64
		want    float64
	}{
		{name: "halfway", current: 500, target: 1000, want: 50},
		{name: "complete", current: 1000, target: 1000, want: 100},
		{name: "overfunded caps at 100", current: 1500, target: 1000, want: 100},
		{name: "empty", current: 0, target: 1000, want: 0},
		{name: "zero target counts as met", current: 0, target: 0, want: 100},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			t.Parallel()
			goal := models.Goal{
				CurrentAmount: decimal.NewFromInt(tt.current),
				TargetAmount:  decimal.NewFromInt(tt.target),
			}
			require.InDelta(t, tt.want, GoalProgressPercent(goal), 0.001)
		})
	}
}

func TestFormatRupees(t *testing.T) {
	t.Parallel()

	tests := []struct {
		in   string
		want string
	}{
		{in: "0", want: "₹0.00"},
		{in: "200", want: "₹200.00"},
		{in: "5000", want: "₹5,000.00"},
		{in: "100000", want: "₹1,00,000.00"},
		{in: "1234567", want: "₹12,34,567.00"},
		{in: "1234567.89", want: "₹12,34,567.89"},
		{in: "-200", want: "₹200.00"},
	}

	for _, tt := range tests {
		t.Run(tt.in, func(t *testing.T) {
			t.Parallel()
			require.Equal(t, tt.want, FormatRupees(decimal.RequireFromString(tt.in)))
		})
	}
}

package assistant

import (
	"context"
	"errors"
	"testing"

	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/require"
)

func TestLocalAdviseKeywords(t *testing.T) {
	t.Parallel()

	fin := testFinContext()
	local := NewLocal()

	tests := []struct {
		name   string
		prompt string
		want   string
	}{
		{name: "status", prompt: "How am I doing?", want: "₹4,800.00"},
		{name: "savings tips", prompt: "any savings tips?", want: "Food"},
		{name: "spending analysis", prompt: "analyze my spending", want: "biggest spend is Food"},
		{name: "trend", prompt: "compare my trend", want: "monthly expenses are ₹200.00"},
		{name: "budget", prompt: "help me budget", want: "50% needs, 30% wants, 20% savings"},
		{name: "fallthrough", prompt: "tell me a joke", want: "3-day streak"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			t.Parallel()
			answer, err := local.Advise(context.Background(), tt.prompt, fin)
			require.NoError(t, err)
			require.Contains(t, answer, tt.want)
		})
	}
}

func TestLocalAdviseEmptyFigures(t *testing.T) {
	t.Parallel()

	answer, err := NewLocal().Advise(context.Background(), "savings tips please", Context{})
	require.NoError(t, err)
	require.Contains(t, answer, "expenses")
}

func TestContextSavings(t *testing.T) {
	t.Parallel()

	fin := Context{
		MonthlyIncome:  decimal.NewFromInt(5000),
		MonthlyExpense: decimal.NewFromInt(1800),
	}
	require.True(t, fin.Savings().Equal(decimal.NewFromInt(3200)))
}

func TestContextTopCategory(t *testing.T) {
	t.Parallel()

	t.Run("largest wins", func(t *testing.T) {
		t.Parallel()
		fin := Context{CategoryTotals: map[string]decimal.Decimal{
			"Food":      decimal.NewFromInt(200),
			"Rent":      decimal.NewFromInt(900),
			"Transport": decimal.NewFromInt(150),
		}}
		name, total := fin.TopCategory()
		require.Equal(t, "Rent", name)
		require.True(t, total.Equal(decimal.NewFromInt(900)))
	})

	t.Run("ties break alphabetically", func(t *testing.T) {
		t.Parallel()
		fin := Context{CategoryTotals: map[string]decimal.Decimal{
			"Travel": decimal.NewFromInt(300),
			"Food":   decimal.NewFromInt(300),
		}}
		name, _ := fin.TopCategory()
		require.Equal(t, "Food", name)
	})

	t.Run("empty map", func(t *testing.T) {
		t.Parallel()
		name, total := Context{}.TopCategory()
		require.Empty(t, name)
		require.True(t, total.IsZero())
	})
}

// stubAdvisor returns a fixed result for Service wiring tests.
type stubAdvisor struct {
	answer string
	err    error
}

func (s *stubAdvisor) Advise(context.Context, string, Context) (string, error) {
	return s.answer, s.err
}

func TestServiceAdvise(t *testing.T) {
	t.Parallel()

	t.Run("primary answer wins", func(t *testing.T) {
		t.Parallel()
		svc := NewService(&stubAdvisor{answer: "invest in index funds"})
		require.Equal(t, "invest in index funds", svc.Advise(context.Background(), "advice?", Context{}))
	})

	t.Run("degrades to local when primary fails", func(t *testing.T) {
		t.Parallel()
		svc := NewService(&stubAdvisor{err: errors.New("all models failed")})
		answer := svc.Advise(context.Background(), "budget", testFinContext())
		require.Contains(t, answer, "50% needs")
	})

	t.Run("nil primary answers locally", func(t *testing.T) {
		t.Parallel()
		answer := NewService(nil).Advise(context.Background(), "status", testFinContext())
		require.Contains(t, answer, "₹4,800.00")
	})
}

package repository

import (
	"context"
	"testing"
	"time"

	"github.com/stretchr/testify/require"

	"github.com/paisapal/paisa/internal/models"
	"github.com/paisapal/paisa/internal/schedule"
)

func TestAddBillDefaults(t *testing.T) {
	ctx := context.Background()
	repo, _ := newTestRepo(t)

	bill, err := repo.AddBill(ctx, models.Bill{
		Name:    "Rent",
		Amount:  rupees(15000),
		DueDate: time.Date(2025, 6, 20, 18, 30, 0, 0, time.UTC),
		IsPaid:  true, // callers cannot create pre-paid bills
	})
	require.NoError(t, err)

	require.NotEmpty(t, bill.ID)
	require.False(t, bill.IsPaid)
	require.True(t, bill.PaidDate.IsZero())
	require.Equal(t, models.FrequencyOneTime, bill.Frequency)
	// Anchor is normalized to day granularity.
	require.Equal(t, time.Date(2025, 6, 20, 0, 0, 0, 0, time.UTC), bill.DueDate)
}

func TestPayBillCreatesExpense(t *testing.T) {
	ctx := context.Background()
	repo, _ := newTestRepo(t)

	bill, err := repo.AddBill(ctx, models.Bill{
		Name: "Electricity", Amount: rupees(1200), Category: "Utilities", DueDate: testDay,
	})
	require.NoError(t, err)

	require.NoError(t, repo.PayBill(ctx, bill.ID, true))

	bills := repo.Bills()
	require.True(t, bills[0].IsPaid)
	require.Equal(t, testDay, bills[0].PaidDate)

	txs := repo.Transactions()
	require.Len(t, txs, 1)
	require.Equal(t, models.TypeExpense, txs[0].Type)
	require.Equal(t, "Utilities", txs[0].Category)
	require.Equal(t, "Paid bill: Electricity", txs[0].Note)
	require.True(t, txs[0].Amount.Equal(rupees(1200)))

	user, _ := repo.User()
	require.True(t, user.Balance.Equal(rupees(-1200)))
}

func TestPayBillWithoutExpense(t *testing.T) {
	ctx := context.Background()
	repo, _ := newTestRepo(t)

	bill, err := repo.AddBill(ctx, models.Bill{
		Name: "Rent", Amount: rupees(15000), DueDate: testDay,
	})
	require.NoError(t, err)

	require.NoError(t, repo.PayBill(ctx, bill.ID, false))
	require.Empty(t, repo.Transactions())
	user, _ := repo.User()
	require.True(t, user.Balance.IsZero())
}

func TestPayBillDefaultsCategory(t *testing.T) {
	ctx := context.Background()
	repo, _ := newTestRepo(t)

	bill, err := repo.AddBill(ctx, models.Bill{
		Name: "Subscription", Amount: rupees(499), DueDate: testDay,
	})
	require.NoError(t, err)

	require.NoError(t, repo.PayBill(ctx, bill.ID, true))
	require.Equal(t, models.DefaultBillCategory, repo.Transactions()[0].Category)
}

func TestPayBillMissingIDIsNoOp(t *testing.T) {
	ctx := context.Background()
	repo, _ := newTestRepo(t)

	require.NoError(t, repo.PayBill(ctx, "no-such-bill", true))
	require.Empty(t, repo.Transactions())
}

func TestPayBillSuppressesProjection(t *testing.T) {
	ctx := context.Background()
	repo, _ := newTestRepo(t)

	bill, err := repo.AddBill(ctx, models.Bill{
		Name: "Gym", Amount: rupees(2000), DueDate: testDay,
		IsRecurring: true, Frequency: models.FrequencyMonthly,
	})
	require.NoError(t, err)
	require.NoError(t, repo.PayBill(ctx, bill.ID, false))

	require.Empty(t, schedule.Upcoming(repo.Bills(), testDay))
	require.Empty(t, schedule.Overdue(repo.Bills(), testDay.AddDate(1, 0, 0)))
}

func TestPayBillOccurrenceKeepsSeries(t *testing.T) {
	ctx := context.Background()
	repo, _ := newTestRepo(t)

	anchor := time.Date(2025, 6, 10, 0, 0, 0, 0, time.UTC)
	bill, err := repo.AddBill(ctx, models.Bill{
		Name: "Netflix", Amount: rupees(649), DueDate: anchor,
		IsRecurring: true, Frequency: models.FrequencyMonthly,
	})
	require.NoError(t, err)

	require.NoError(t, repo.PayBillOccurrence(ctx, bill.ID, anchor, true))

	// The settled occurrence disappears, the series survives.
	occs := schedule.Project(repo.Bills(), anchor, anchor.AddDate(0, 2, 0))
	require.Len(t, occs, 2)
	require.Equal(t, time.Date(2025, 7, 10, 0, 0, 0, 0, time.UTC), occs[0].DueDate)
	require.Equal(t, time.Date(2025, 8, 10, 0, 0, 0, 0, time.UTC), occs[1].DueDate)

	bills := repo.Bills()
	require.False(t, bills[0].IsPaid)
	require.Len(t, repo.Transactions(), 1)

	// Settling the same occurrence again records nothing new.
	require.NoError(t, repo.PayBillOccurrence(ctx, bill.ID, anchor, true))
	require.Len(t, repo.Transactions(), 1)
}

func TestPayBillOccurrenceNonRecurringRoutesToPay(t *testing.T) {
	ctx := context.Background()
	repo, _ := newTestRepo(t)

	bill, err := repo.AddBill(ctx, models.Bill{
		Name: "Deposit", Amount: rupees(5000), DueDate: testDay,
	})
	require.NoError(t, err)

	require.NoError(t, repo.PayBillOccurrence(ctx, bill.ID, testDay, false))
	require.True(t, repo.Bills()[0].IsPaid)
}

func TestDeleteBill(t *testing.T) {
	ctx := context.Background()
	repo, _ := newTestRepo(t)

	bill, err := repo.AddBill(ctx, models.Bill{
		Name: "Rent", Amount: rupees(15000), DueDate: testDay,
	})
	require.NoError(t, err)

	require.NoError(t, repo.DeleteBill(ctx, bill.ID))
	require.Empty(t, repo.Bills())
	require.NoError(t, repo.DeleteBill(ctx, bill.ID))
}

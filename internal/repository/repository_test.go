package repository

import (
	"context"
	"testing"
	"time"

	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/require"

	"github.com/paisapal/paisa/internal/models"
	"github.com/paisapal/paisa/internal/store"
)

func fixedClock(t time.Time) func() time.Time {
	return func() time.Time { return t }
}

var testDay = time.Date(2025, 6, 10, 9, 30, 0, 0, time.UTC)

func newTestRepo(t *testing.T) (*Repository, *store.Memory) {
	t.Helper()
	mem := store.NewMemory()
	repo := NewWithClock(mem, fixedClock(testDay))
	require.NoError(t, repo.SetUser(context.Background(), models.User{
		ID:    "user-1",
		Name:  "Asha",
		Email: "asha@example.com",
	}))
	return repo, mem
}

func rupees(n int64) decimal.Decimal {
	return decimal.NewFromInt(n)
}

func TestEndToEndBalanceScenario(t *testing.T) {
	ctx := context.Background()
	repo, _ := newTestRepo(t)

	user, ok := repo.User()
	require.True(t, ok)
	require.True(t, user.Balance.IsZero())

	expense, err := repo.AddTransaction(ctx, models.Transaction{
		Type: models.TypeExpense, Amount: rupees(200), Category: "Food",
	})
	require.NoError(t, err)

	user, _ = repo.User()
	require.True(t, user.Balance.Equal(rupees(-200)), "balance = %s", user.Balance)

	_, err = repo.AddTransaction(ctx, models.Transaction{
		Type: models.TypeIncome, Amount: rupees(5000), Category: "Salary",
	})
	require.NoError(t, err)

	user, _ = repo.User()
	require.True(t, user.Balance.Equal(rupees(4800)), "balance = %s", user.Balance)

	require.NoError(t, repo.DeleteTransaction(ctx, expense.ID))

	user, _ = repo.User()
	require.True(t, user.Balance.Equal(rupees(5000)), "balance = %s", user.Balance)
}

func TestDeleteAndReAddRestoresBalance(t *testing.T) {
	ctx := context.Background()
	repo, _ := newTestRepo(t)

	tx, err := repo.AddTransaction(ctx, models.Transaction{
		Type: models.TypeExpense, Amount: rupees(750), Category: "Transport",
	})
	require.NoError(t, err)
	before, _ := repo.User()

	require.NoError(t, repo.DeleteTransaction(ctx, tx.ID))
	_, err = repo.AddTransaction(ctx, models.Transaction{
		Type: models.TypeExpense, Amount: rupees(750), Category: "Transport",
	})
	require.NoError(t, err)

	after, _ := repo.User()
	require.True(t, after.Balance.Equal(before.Balance))
}

func TestAddTransactionRejectsBeforeMutation(t *testing.T) {
	ctx := context.Background()
	repo, _ := newTestRepo(t)

	tests := []struct {
		name  string
		input models.Transaction
		want  error
	}{
		{
			name:  "zero amount",
			input: models.Transaction{Type: models.TypeExpense, Category: "Food"},
			want:  models.ErrInvalidAmount,
		},
		{
			name:  "bad type",
			input: models.Transaction{Type: "transfer", Amount: rupees(10), Category: "Food"},
			want:  models.ErrInvalidType,
		},
		{
			name:  "missing category",
			input: models.Transaction{Type: models.TypeExpense, Amount: rupees(10)},
			want:  models.ErrMissingCategory,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			_, err := repo.AddTransaction(ctx, tt.input)
			require.ErrorIs(t, err, tt.want)
			require.Empty(t, repo.Transactions())
			user, _ := repo.User()
			require.True(t, user.Balance.IsZero())
		})
	}
}

func TestAddTransactionRequiresUser(t *testing.T) {
	repo := New(store.NewMemory())
	_, err := repo.AddTransaction(context.Background(), models.Transaction{
		Type: models.TypeIncome, Amount: rupees(10), Category: "Salary",
	})
	require.ErrorIs(t, err, ErrNoUser)
}

func TestDeleteTransactionMissingIDIsNoOp(t *testing.T) {
	ctx := context.Background()
	repo, _ := newTestRepo(t)

	_, err := repo.AddTransaction(ctx, models.Transaction{
		Type: models.TypeIncome, Amount: rupees(100), Category: "Salary",
	})
	require.NoError(t, err)

	require.NoError(t, repo.DeleteTransaction(ctx, "no-such-id"))
	require.Len(t, repo.Transactions(), 1)
	user, _ := repo.User()
	require.True(t, user.Balance.Equal(rupees(100)))
}

func TestTransactionsMostRecentFirst(t *testing.T) {
	ctx := context.Background()
	repo, _ := newTestRepo(t)

	first, err := repo.AddTransaction(ctx, models.Transaction{
		Type: models.TypeIncome, Amount: rupees(1), Category: "Salary",
	})
	require.NoError(t, err)
	second, err := repo.AddTransaction(ctx, models.Transaction{
		Type: models.TypeIncome, Amount: rupees(2), Category: "Salary",
	})
	require.NoError(t, err)

	txs := repo.Transactions()
	require.Equal(t, []string{second.ID, first.ID}, []string{txs[0].ID, txs[1].ID})
}

func TestLoadAllRoundTrip(t *testing.T) {
	ctx := context.Background()
	repo, mem := newTestRepo(t)

	_, err := repo.AddTransaction(ctx, models.Transaction{
		Type: models.TypeIncome, Amount: rupees(5000), Category: "Salary",
	})
	require.NoError(t, err)
	_, err = repo.AddGoal(ctx, models.Goal{Name: "Bike", TargetAmount: rupees(80000)})
	require.NoError(t, err)
	_, err = repo.AddBill(ctx, models.Bill{
		Name: "Rent", Amount: rupees(15000), DueDate: testDay,
	})
	require.NoError(t, err)

	// A second repository over the same store sees the same state.
	reload := NewWithClock(mem, fixedClock(testDay))
	reload.LoadAll(ctx)

	user, ok := reload.User()
	require.True(t, ok)
	require.True(t, user.Balance.Equal(rupees(5000)))
	require.Len(t, reload.Transactions(), 1)
	require.Len(t, reload.Goals(), 1)
	require.Len(t, reload.Bills(), 1)
}

func TestLoadAllIdempotent(t *testing.T) {
	ctx := context.Background()
	repo, mem := newTestRepo(t)

	_, err := repo.AddTransaction(ctx, models.Transaction{
		Type: models.TypeIncome, Amount: rupees(100), Category: "Salary",
	})
	require.NoError(t, err)

	reload := NewWithClock(mem, fixedClock(testDay))
	reload.LoadAll(ctx)
	afterFirst, _ := reload.User()
	firstTxs := reload.Transactions()

	reload.LoadAll(ctx)
	afterSecond, _ := reload.User()

	require.Equal(t, afterFirst, afterSecond)
	require.Equal(t, firstTxs, reload.Transactions())
}

func TestLoadAllFailsSoftOnCorruptSnapshot(t *testing.T) {
	ctx := context.Background()
	mem := store.NewMemory()
	require.NoError(t, mem.Set(ctx, keyTransactions, []byte("{not json")))
	require.NoError(t, mem.Set(ctx, keyUser, []byte("also not json")))

	repo := NewWithClock(mem, fixedClock(testDay))
	repo.LoadAll(ctx)

	_, ok := repo.User()
	require.False(t, ok)
	require.Empty(t, repo.Transactions())
}

func TestLogoutClearsStateAndStore(t *testing.T) {
	ctx := context.Background()
	repo, mem := newTestRepo(t)

	_, err := repo.AddTransaction(ctx, models.Transaction{
		Type: models.TypeIncome, Amount: rupees(100), Category: "Salary",
	})
	require.NoError(t, err)

	require.NoError(t, repo.Logout(ctx))

	_, ok := repo.User()
	require.False(t, ok)
	require.Empty(t, repo.Transactions())

	_, err = mem.Get(ctx, keyUser)
	require.ErrorIs(t, err, store.ErrNotFound)
	_, err = mem.Get(ctx, keyTransactions)
	require.ErrorIs(t, err, store.ErrNotFound)
}

func TestUpdateUserMergesAndNoUserIsNoOp(t *testing.T) {
	ctx := context.Background()

	empty := New(store.NewMemory())
	require.NoError(t, empty.UpdateUser(ctx, UserPatch{Name: ptr("Nobody")}))
	_, ok := empty.User()
	require.False(t, ok)

	repo, _ := newTestRepo(t)
	points := 50
	require.NoError(t, repo.UpdateUser(ctx, UserPatch{Name: ptr("Asha K"), Points: &points}))

	user, _ := repo.User()
	require.Equal(t, "Asha K", user.Name)
	require.Equal(t, 50, user.Points)
	require.Equal(t, "asha@example.com", user.Email)
}

func TestSubscribeNotifiesOnMutation(t *testing.T) {
	ctx := context.Background()
	repo, _ := newTestRepo(t)

	var calls int
	unsubscribe := repo.Subscribe(func() { calls++ })

	_, err := repo.AddTransaction(ctx, models.Transaction{
		Type: models.TypeIncome, Amount: rupees(10), Category: "Salary",
	})
	require.NoError(t, err)
	require.Equal(t, 1, calls)

	unsubscribe()
	_, err = repo.AddTransaction(ctx, models.Transaction{
		Type: models.TypeIncome, Amount: rupees(10), Category: "Salary",
	})
	require.NoError(t, err)
	require.Equal(t, 1, calls)
}

func TestMutationSurvivesFailedPersist(t *testing.T) {
	ctx := context.Background()
	failing := &failingStore{Memory: store.NewMemory()}
	repo := NewWithClock(failing, fixedClock(testDay))
	require.NoError(t, repo.SetUser(ctx, models.User{ID: "u", Name: "A", Email: "a@b"}))

	failing.failWrites = true
	_, err := repo.AddTransaction(ctx, models.Transaction{
		Type: models.TypeIncome, Amount: rupees(100), Category: "Salary",
	})
	require.Error(t, err)

	// In-memory state keeps the mutation; only durability failed.
	require.Len(t, repo.Transactions(), 1)
	user, _ := repo.User()
	require.True(t, user.Balance.Equal(rupees(100)))
}

func ptr[T any](v T) *T { return &v }

// failingStore wraps Memory and fails writes on demand.
type failingStore struct {
	*store.Memory
	failWrites bool
}

func (f *failingStore) Set(ctx context.Context, key string, value []byte) error {
	if f.failWrites {
		return context.DeadlineExceeded
	}
	return f.Memory.Set(ctx, key, value)
}

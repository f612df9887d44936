package storage

import (
	"context"
	"errors"
	"path/filepath"
	"testing"
	"time"

	"fintrack/internal/core"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func newTestStore(t *testing.T) *SQLiteStore {
	t.Helper()

	base := time.Date(2024, 3, 1, 12, 0, 0, 0, time.UTC)
	tick := 0
	clock := func() time.Time {
		tick++
		return base.Add(time.Duration(tick) * time.Minute)
	}

	s, err := Open(filepath.Join(t.TempDir(), "data", "fintrack.db"), WithClock(clock))
	require.NoError(t, err)
	t.Cleanup(func() { s.Close() })
	return s
}

func TestBudgetCRUD(t *testing.T) {
	ctx := context.Background()
	s := newTestStore(t)

	created, err := s.Budgets.Create(ctx, core.Budget{Name: "Food", Amount: core.NewMoney(500), Icon: "🍔", OwnerID: "alice"})
	require.NoError(t, err)
	assert.NotEmpty(t, created.ID)
	assert.False(t, created.CreatedAt.IsZero())

	got, err := s.Budgets.Get(ctx, "alice", created.ID)
	require.NoError(t, err)
	assert.Equal(t, created, got)

	updated, err := s.Budgets.Update(ctx, "alice", created.ID, core.Budget{Name: "Groceries", Amount: core.NewMoney(650.25), Icon: "🛒"})
	require.NoError(t, err)
	assert.Equal(t, "Groceries", updated.Name)
	assert.Equal(t, int64(65025), updated.Amount.Cents)
	assert.Equal(t, "alice", updated.OwnerID)
	assert.Equal(t, created.CreatedAt, updated.CreatedAt)

	require.NoError(t, s.Budgets.Delete(ctx, "alice", created.ID))
	_, err = s.Budgets.Get(ctx, "alice", created.ID)
	assert.True(t, errors.Is(err, core.ErrNotFound))
}

func TestOwnerScoping(t *testing.T) {
	ctx := context.Background()
	s := newTestStore(t)

	b, err := s.Budgets.Create(ctx, core.Budget{Name: "Rent", Amount: core.NewMoney(1000), OwnerID: "alice"})
	require.NoError(t, err)

	list, err := s.Budgets.List(ctx, "bob")
	require.NoError(t, err)
	assert.Empty(t, list)
	assert.NotNil(t, list)

	_, err = s.Budgets.Update(ctx, "bob", b.ID, core.Budget{Name: "Hijack"})
	assert.True(t, errors.Is(err, core.ErrNotFound))

	err = s.Budgets.Delete(ctx, "bob", b.ID)
	assert.True(t, errors.Is(err, core.ErrNotFound))
}

func TestListNewestFirst(t *testing.T) {
	ctx := context.Background()
	s := newTestStore(t)

	for _, name := range []string{"first", "second", "third"} {
		_, err := s.Expenses.Create(ctx, core.Expense{Name: name, Amount: core.NewMoney(1), OwnerID: "alice"})
		require.NoError(t, err)
	}

	list, err := s.Expenses.List(ctx, "alice")
	require.NoError(t, err)
	require.Len(t, list, 3)
	assert.Equal(t, "third", list[0].Name)
	assert.Equal(t, "first", list[2].Name)
}

func TestExpensesByBudget(t *testing.T) {
	ctx := context.Background()
	s := newTestStore(t)

	b, err := s.Budgets.Create(ctx, core.Budget{Name: "Food", Amount: core.NewMoney(100), OwnerID: "alice"})
	require.NoError(t, err)

	_, err = s.Expenses.Create(ctx, core.Expense{Name: "Lunch", Amount: core.NewMoney(12.5), BudgetID: b.ID, OwnerID: "alice"})
	require.NoError(t, err)
	loose, err := s.Expenses.Create(ctx, core.Expense{Name: "Parking", Amount: core.NewMoney(3), OwnerID: "alice"})
	require.NoError(t, err)

	byBudget, err := s.Expenses.ListByBudget(ctx, "alice", b.ID)
	require.NoError(t, err)
	require.Len(t, byBudget, 1)
	assert.Equal(t, "Lunch", byBudget[0].Name)
	assert.Equal(t, int64(1250), byBudget[0].Amount.Cents)

	got, err := s.Expenses.Get(ctx, "alice", loose.ID)
	require.NoError(t, err)
	assert.Empty(t, got.BudgetID)

	moved, err := s.Expenses.Update(ctx, "alice", loose.ID, core.Expense{Name: "Parking", Amount: core.NewMoney(4), BudgetID: b.ID})
	require.NoError(t, err)
	assert.Equal(t, b.ID, moved.BudgetID)
}

func TestDeletingBudgetKeepsExpenses(t *testing.T) {
	ctx := context.Background()
	s := newTestStore(t)

	b, err := s.Budgets.Create(ctx, core.Budget{Name: "Fun", Amount: core.NewMoney(50), OwnerID: "alice"})
	require.NoError(t, err)
	_, err = s.Expenses.Create(ctx, core.Expense{Name: "Movie", Amount: core.NewMoney(15), BudgetID: b.ID, OwnerID: "alice"})
	require.NoError(t, err)

	require.NoError(t, s.Budgets.Delete(ctx, "alice", b.ID))

	list, err := s.Expenses.List(ctx, "alice")
	require.NoError(t, err)
	require.Len(t, list, 1)
	assert.Equal(t, b.ID, list[0].BudgetID)
}

func TestIncomeRoundTrip(t *testing.T) {
	ctx := context.Background()
	s := newTestStore(t)

	in, err := s.Incomes.Create(ctx, core.Income{
		Name:        "Bonus",
		Amount:      core.NewMoney(750),
		Frequency:   core.OneTime,
		Date:        core.NewDate(2024, 3, 10),
		Description: "Q1",
		Icon:        "🎉",
		OwnerID:     "alice",
	})
	require.NoError(t, err)

	got, err := s.Incomes.Get(ctx, "alice", in.ID)
	require.NoError(t, err)
	assert.Equal(t, core.OneTime, got.Frequency)
	assert.Equal(t, "2024-03-10", got.Date.String())
	assert.Equal(t, "Q1", got.Description)

	got.Date = core.Date{}
	got.Frequency = core.Yearly
	updated, err := s.Incomes.Update(ctx, "alice", in.ID, got)
	require.NoError(t, err)
	assert.True(t, updated.Date.IsEmpty())
	assert.Equal(t, core.Yearly, updated.Frequency)

	require.NoError(t, s.Incomes.Delete(ctx, "alice", in.ID))
	assert.True(t, errors.Is(s.Incomes.Delete(ctx, "alice", in.ID), core.ErrNotFound))
}

func TestPurgeOwner(t *testing.T) {
	ctx := context.Background()
	s := newTestStore(t)

	_, err := s.Budgets.Create(ctx, core.Budget{Name: "A", OwnerID: "alice"})
	require.NoError(t, err)
	_, err = s.Expenses.Create(ctx, core.Expense{Name: "B", OwnerID: "alice"})
	require.NoError(t, err)
	_, err = s.Incomes.Create(ctx, core.Income{Name: "C", Frequency: core.Monthly, OwnerID: "alice"})
	require.NoError(t, err)
	_, err = s.Budgets.Create(ctx, core.Budget{Name: "D", OwnerID: "bob"})
	require.NoError(t, err)

	n, err := s.PurgeOwner(ctx, "alice")
	require.NoError(t, err)
	assert.Equal(t, int64(3), n)

	bobs, err := s.Budgets.List(ctx, "bob")
	require.NoError(t, err)
	assert.Len(t, bobs, 1)
}

func TestPing(t *testing.T) {
	s := newTestStore(t)
	assert.NoError(t, s.Ping(context.Background()))
}

func TestRunMigrationsIsIdempotent(t *testing.T) {
	path := filepath.Join(t.TempDir(), "fintrack.db")
	require.NoError(t, RunMigrations(path))
	require.NoError(t, RunMigrations(path))

	s, err := Open(path)
	require.NoError(t, err)
	defer s.Close()
	require.NoError(t, s.Ping(context.Background()))
}

package planner

import (
	"errors"
	"testing"

	"fintrack/internal/core"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestBuildDefaults(t *testing.T) {
	plan, err := Build(core.NewMoney(5000), nil)
	require.NoError(t, err)

	require.Len(t, plan.Allocations, 9)
	assert.Equal(t, "Housing", plan.Allocations[0].Name)
	assert.Equal(t, int64(150000), plan.Allocations[0].Amount.Cents)
	assert.Equal(t, "Food & Dining", plan.Allocations[2].Name)
	assert.Equal(t, int64(75000), plan.Allocations[2].Amount.Cents)
	assert.InDelta(t, 100.0, plan.TotalAllocated, 1e-9)
	assert.InDelta(t, 0.0, plan.Remaining, 1e-9)
	assert.Zero(t, plan.UnallocatedCash.Cents)
}

func TestBuildCustom(t *testing.T) {
	plan, err := Build(core.NewMoney(1000), []Category{
		{Name: " Rent ", Percentage: 40},
		{Name: "Travel", Percentage: 12.5},
	})
	require.NoError(t, err)

	assert.Equal(t, "Rent", plan.Allocations[0].Name)
	assert.Equal(t, int64(12500), plan.Allocations[1].Amount.Cents)
	assert.InDelta(t, 52.5, plan.TotalAllocated, 1e-9)
	assert.InDelta(t, 47.5, plan.Remaining, 1e-9)
	assert.Equal(t, int64(47500), plan.UnallocatedCash.Cents)
}

func TestBuildErrors(t *testing.T) {
	tests := []struct {
		name   string
		income float64
		cats   []Category
		want   error
	}{
		{"zero income", 0, nil, ErrInvalidIncome},
		{"over allocated", 1000, []Category{{"A", 60}, {"B", 40.5}}, ErrOverAllocated},
		{"zero percent", 1000, []Category{{"A", 0}}, ErrInvalidPercentage},
		{"negative percent", 1000, []Category{{"A", -5}}, ErrInvalidPercentage},
		{"blank name", 1000, []Category{{"  ", 10}}, ErrEmptyCategory},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			_, err := Build(core.NewMoney(tt.income), tt.cats)
			require.Error(t, err)
			assert.True(t, errors.Is(err, tt.want), err.Error())
		})
	}
}

func TestPlanBudgets(t *testing.T) {
	plan, err := Build(core.NewMoney(2000), []Category{{"Food", 25}})
	require.NoError(t, err)

	budgets := plan.Budgets("owner-1")
	require.Len(t, budgets, 1)
	assert.Equal(t, "Food", budgets[0].Name)
	assert.Equal(t, int64(50000), budgets[0].Amount.Cents)
	assert.Equal(t, "owner-1", budgets[0].OwnerID)
	assert.Equal(t, core.DefaultBudgetIcon, budgets[0].Icon)
	assert.NoError(t, budgets[0].Validate())
}

package storage

import (
	"context"

	"fintrack/internal/core"
)

// Repository is the persistence contract shared by every record type.
// ownerID scopes each call; ownerless stores ignore it.
type Repository[T any] interface {
	List(ctx context.Context, ownerID string) ([]T, error)
	Get(ctx context.Context, ownerID, id string) (T, error)
	Create(ctx context.Context, item T) (T, error)
	Update(ctx context.Context, ownerID, id string, item T) (T, error)
	Delete(ctx context.Context, ownerID, id string) error
}

type (
	BudgetRepository = Repository[core.Budget]
	IncomeRepository = Repository[core.Income]
	GoalRepository   = Repository[core.Goal]

	// ExpenseRepository adds listing by budget.
	ExpenseRepository interface {
		Repository[core.Expense]
		ListByBudget(ctx context.Context, ownerID, budgetID string) ([]core.Expense, error)
	}
)

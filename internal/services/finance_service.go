// Package services provides business logic and orchestration services.
package services

import (
	"context"
	"fmt"
	"log/slog"

	"fintrack/internal/amqp"
	"fintrack/internal/analytics"
	"fintrack/internal/core"
	"fintrack/internal/planner"
	"fintrack/internal/storage"
)

// EventPublisher announces record changes. Publishing is best effort.
type EventPublisher interface {
	PublishRecordEvent(ctx context.Context, ev amqp.RecordEvent) error
}

// BudgetDetail is one budget with its spend figures and expenses.
type BudgetDetail struct {
	analytics.BudgetSpend
	Expenses []core.Expense `json:"expenses"`
}

// FinanceService validates and persists budgets, expenses and incomes, and
// publishes a change event after every successful write.
type FinanceService struct {
	budgets   storage.BudgetRepository
	expenses  storage.ExpenseRepository
	incomes   storage.IncomeRepository
	publisher EventPublisher
}

func NewFinanceService(budgets storage.BudgetRepository, expenses storage.ExpenseRepository, incomes storage.IncomeRepository, publisher EventPublisher) *FinanceService {
	return &FinanceService{
		budgets:   budgets,
		expenses:  expenses,
		incomes:   incomes,
		publisher: publisher,
	}
}

func requireOwner(ownerID string) error {
	if ownerID == "" {
		return core.ErrMissingOwner
	}
	return nil
}

// Budgets

func (s *FinanceService) ListBudgets(ctx context.Context, ownerID string) ([]core.Budget, error) {
	if err := requireOwner(ownerID); err != nil {
		return nil, err
	}
	return s.budgets.List(ctx, ownerID)
}

// BudgetDetail joins a budget with the expenses filed under it.
func (s *FinanceService) BudgetDetail(ctx context.Context, ownerID, id string) (BudgetDetail, error) {
	if err := requireOwner(ownerID); err != nil {
		return BudgetDetail{}, err
	}
	b, err := s.budgets.Get(ctx, ownerID, id)
	if err != nil {
		return BudgetDetail{}, err
	}
	expenses, err := s.expenses.ListByBudget(ctx, ownerID, id)
	if err != nil {
		return BudgetDetail{}, err
	}
	return BudgetDetail{
		BudgetSpend: analytics.BudgetSpendFor(b, expenses),
		Expenses:    expenses,
	}, nil
}

func (s *FinanceService) CreateBudget(ctx context.Context, ownerID string, b core.Budget) (core.Budget, error) {
	if err := requireOwner(ownerID); err != nil {
		return core.Budget{}, err
	}
	b.ID = ""
	b.OwnerID = ownerID
	b.ApplyDefaults()
	if err := b.Validate(); err != nil {
		return core.Budget{}, err
	}
	created, err := s.budgets.Create(ctx, b)
	if err != nil {
		return core.Budget{}, fmt.Errorf("save budget: %w", err)
	}
	s.publish(ctx, amqp.KindBudget, amqp.ActionCreated, created.ID, ownerID, created.Name, created.Amount)
	return created, nil
}

func (s *FinanceService) UpdateBudget(ctx context.Context, ownerID, id string, b core.Budget) (core.Budget, error) {
	if err := requireOwner(ownerID); err != nil {
		return core.Budget{}, err
	}
	b.OwnerID = ownerID
	b.ApplyDefaults()
	if err := b.Validate(); err != nil {
		return core.Budget{}, err
	}
	updated, err := s.budgets.Update(ctx, ownerID, id, b)
	if err != nil {
		return core.Budget{}, err
	}
	s.publish(ctx, amqp.KindBudget, amqp.ActionUpdated, id, ownerID, updated.Name, updated.Amount)
	return updated, nil
}

// DeleteBudget removes the budget only. Its expenses become uncategorized.
func (s *FinanceService) DeleteBudget(ctx context.Context, ownerID, id string) error {
	if err := requireOwner(ownerID); err != nil {
		return err
	}
	if err := s.budgets.Delete(ctx, ownerID, id); err != nil {
		return err
	}
	s.publish(ctx, amqp.KindBudget, amqp.ActionDeleted, id, ownerID, "", core.Money{})
	return nil
}

// ApplyPlan creates one budget per plan allocation.
func (s *FinanceService) ApplyPlan(ctx context.Context, ownerID string, plan planner.Plan) ([]core.Budget, error) {
	if err := requireOwner(ownerID); err != nil {
		return nil, err
	}
	out := make([]core.Budget, 0, len(plan.Allocations))
	for _, b := range plan.Budgets(ownerID) {
		created, err := s.CreateBudget(ctx, ownerID, b)
		if err != nil {
			return out, fmt.Errorf("create budget %q: %w", b.Name, err)
		}
		out = append(out, created)
	}
	return out, nil
}

// Expenses

// ListExpenses lists an owner's expenses, newest first. A non-empty budgetID
// restricts the list to that budget.
func (s *FinanceService) ListExpenses(ctx context.Context, ownerID, budgetID string) ([]core.Expense, error) {
	if err := requireOwner(ownerID); err != nil {
		return nil, err
	}
	if budgetID != "" {
		return s.expenses.ListByBudget(ctx, ownerID, budgetID)
	}
	return s.expenses.List(ctx, ownerID)
}

func (s *FinanceService) CreateExpense(ctx context.Context, ownerID string, e core.Expense) (core.Expense, error) {
	if err := requireOwner(ownerID); err != nil {
		return core.Expense{}, err
	}
	e.ID = ""
	e.OwnerID = ownerID
	e.ApplyDefaults()
	if err := e.Validate(); err != nil {
		return core.Expense{}, err
	}
	created, err := s.expenses.Create(ctx, e)
	if err != nil {
		return core.Expense{}, fmt.Errorf("save expense: %w", err)
	}
	s.publish(ctx, amqp.KindExpense, amqp.ActionCreated, created.ID, ownerID, created.Name, created.Amount)
	return created, nil
}

func (s *FinanceService) UpdateExpense(ctx context.Context, ownerID, id string, e core.Expense) (core.Expense, error) {
	if err := requireOwner(ownerID); err != nil {
		return core.Expense{}, err
	}
	e.OwnerID = ownerID
	e.ApplyDefaults()
	if err := e.Validate(); err != nil {
		return core.Expense{}, err
	}
	updated, err := s.expenses.Update(ctx, ownerID, id, e)
	if err != nil {
		return core.Expense{}, err
	}
	s.publish(ctx, amqp.KindExpense, amqp.ActionUpdated, id, ownerID, updated.Name, updated.Amount)
	return updated, nil
}

func (s *FinanceService) DeleteExpense(ctx context.Context, ownerID, id string) error {
	if err := requireOwner(ownerID); err != nil {
		return err
	}
	if err := s.expenses.Delete(ctx, ownerID, id); err != nil {
		return err
	}
	s.publish(ctx, amqp.KindExpense, amqp.ActionDeleted, id, ownerID, "", core.Money{})
	return nil
}

// Incomes

func (s *FinanceService) ListIncomes(ctx context.Context, ownerID string) ([]core.Income, error) {
	if err := requireOwner(ownerID); err != nil {
		return nil, err
	}
	return s.incomes.List(ctx, ownerID)
}

func (s *FinanceService) CreateIncome(ctx context.Context, ownerID string, in core.Income) (core.Income, error) {
	if err := requireOwner(ownerID); err != nil {
		return core.Income{}, err
	}
	in.ID = ""
	in.OwnerID = ownerID
	in.ApplyDefaults()
	if err := in.Validate(); err != nil {
		return core.Income{}, err
	}
	created, err := s.incomes.Create(ctx, in)
	if err != nil {
		return core.Income{}, fmt.Errorf("save income: %w", err)
	}
	s.publish(ctx, amqp.KindIncome, amqp.ActionCreated, created.ID, ownerID, created.Name, created.Amount)
	return created, nil
}

func (s *FinanceService) UpdateIncome(ctx context.Context, ownerID, id string, in core.Income) (core.Income, error) {
	if err := requireOwner(ownerID); err != nil {
		return core.Income{}, err
	}
	in.OwnerID = ownerID
	in.ApplyDefaults()
	if err := in.Validate(); err != nil {
		return core.Income{}, err
	}
	updated, err := s.incomes.Update(ctx, ownerID, id, in)
	if err != nil {
		return core.Income{}, err
	}
	s.publish(ctx, amqp.KindIncome, amqp.ActionUpdated, id, ownerID, updated.Name, updated.Amount)
	return updated, nil
}

func (s *FinanceService) DeleteIncome(ctx context.Context, ownerID, id string) error {
	if err := requireOwner(ownerID); err != nil {
		return err
	}
	if err := s.incomes.Delete(ctx, ownerID, id); err != nil {
		return err
	}
	s.publish(ctx, amqp.KindIncome, amqp.ActionDeleted, id, ownerID, "", core.Money{})
	return nil
}

// publish never fails the caller; the record is already stored.
func (s *FinanceService) publish(ctx context.Context, kind, action, id, ownerID, name string, amount core.Money) {
	publishEvent(ctx, s.publisher, kind, action, id, ownerID, name, amount)
}

func publishEvent(ctx context.Context, p EventPublisher, kind, action, id, ownerID, name string, amount core.Money) {
	if p == nil {
		return
	}
	ev := amqp.NewRecordEvent(kind, action, id, ownerID, name, amount.Cents)
	if err := p.PublishRecordEvent(ctx, *ev); err != nil {
		slog.ErrorContext(ctx, "Failed to publish record event",
			"kind", kind,
			"action", action,
			"id", id,
			"error", err)
	}
}

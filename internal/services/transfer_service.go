package services

import (
	"context"
	"fmt"
	"log/slog"
	"time"

	"fintrack/internal/amqp"
	"fintrack/internal/storage"
	"fintrack/internal/transfer"
)

// Purger deletes all records of one owner.
type Purger interface {
	PurgeOwner(ctx context.Context, ownerID string) (int64, error)
}

// ImportResult counts what a bulk import created and skipped.
type ImportResult struct {
	Budgets  int      `json:"budgets"`
	Expenses int      `json:"expenses"`
	Incomes  int      `json:"incomes"`
	Skipped  int      `json:"skipped"`
	Problems []string `json:"problems,omitempty"`
}

// TransferService exports, imports and purges an owner's records.
type TransferService struct {
	budgets   storage.BudgetRepository
	expenses  storage.ExpenseRepository
	incomes   storage.IncomeRepository
	purger    Purger
	publisher EventPublisher
	now       func() time.Time
}

func NewTransferService(budgets storage.BudgetRepository, expenses storage.ExpenseRepository, incomes storage.IncomeRepository, purger Purger, publisher EventPublisher) *TransferService {
	return &TransferService{
		budgets:   budgets,
		expenses:  expenses,
		incomes:   incomes,
		purger:    purger,
		publisher: publisher,
		now:       time.Now,
	}
}

// Export reads every collection. Unlike the dashboard, a failed read fails
// the export so an incomplete file is never produced.
func (s *TransferService) Export(ctx context.Context, ownerID string) (transfer.Snapshot, error) {
	if err := requireOwner(ownerID); err != nil {
		return transfer.Snapshot{}, err
	}
	budgets, err := s.budgets.List(ctx, ownerID)
	if err != nil {
		return transfer.Snapshot{}, fmt.Errorf("export budgets: %w", err)
	}
	expenses, err := s.expenses.List(ctx, ownerID)
	if err != nil {
		return transfer.Snapshot{}, fmt.Errorf("export expenses: %w", err)
	}
	incomes, err := s.incomes.List(ctx, ownerID)
	if err != nil {
		return transfer.Snapshot{}, fmt.Errorf("export incomes: %w", err)
	}

	slog.InfoContext(ctx, "Exporting records",
		"owner_id", ownerID,
		"budgets", len(budgets),
		"expenses", len(expenses),
		"incomes", len(incomes))

	return transfer.NewSnapshot(ownerID, transfer.Data{
		Budgets:  budgets,
		Expenses: expenses,
		Incomes:  incomes,
	}, s.now()), nil
}

// Import creates every valid record for ownerID. Budgets go first so that
// expenses can be pointed at the new budget ids. Invalid records are skipped
// and reported; a store failure aborts the import.
func (s *TransferService) Import(ctx context.Context, ownerID string, bulk transfer.Bulk) (ImportResult, error) {
	if err := requireOwner(ownerID); err != nil {
		return ImportResult{}, err
	}
	bulk.Normalize()

	var res ImportResult
	skip := func(kind, name string, err error) {
		res.Skipped++
		res.Problems = append(res.Problems, fmt.Sprintf("%s %q: %v", kind, name, err))
	}

	idMap := make(map[string]string, len(bulk.Budgets))
	for _, b := range bulk.Budgets {
		oldID := b.ID
		b.ID = ""
		b.CreatedAt = time.Time{}
		b.OwnerID = ownerID
		b.ApplyDefaults()
		if err := b.Validate(); err != nil {
			skip(amqp.KindBudget, b.Name, err)
			continue
		}
		created, err := s.budgets.Create(ctx, b)
		if err != nil {
			return res, fmt.Errorf("import budget %q: %w", b.Name, err)
		}
		if oldID != "" {
			idMap[oldID] = created.ID
		}
		res.Budgets++
		publishEvent(ctx, s.publisher, amqp.KindBudget, amqp.ActionImported, created.ID, ownerID, created.Name, created.Amount)
	}

	// Expense dates live in CreatedAt, so an exported one is kept.
	for _, e := range transfer.RemapBudgetIDs(bulk.Expenses, idMap) {
		e.ID = ""
		e.OwnerID = ownerID
		e.ApplyDefaults()
		if err := e.Validate(); err != nil {
			skip(amqp.KindExpense, e.Name, err)
			continue
		}
		created, err := s.expenses.Create(ctx, e)
		if err != nil {
			return res, fmt.Errorf("import expense %q: %w", e.Name, err)
		}
		res.Expenses++
		publishEvent(ctx, s.publisher, amqp.KindExpense, amqp.ActionImported, created.ID, ownerID, created.Name, created.Amount)
	}

	for _, in := range bulk.Incomes {
		in.ID = ""
		in.CreatedAt = time.Time{}
		in.OwnerID = ownerID
		in.ApplyDefaults()
		if err := in.Validate(); err != nil {
			skip(amqp.KindIncome, in.Name, err)
			continue
		}
		created, err := s.incomes.Create(ctx, in)
		if err != nil {
			return res, fmt.Errorf("import income %q: %w", in.Name, err)
		}
		res.Incomes++
		publishEvent(ctx, s.publisher, amqp.KindIncome, amqp.ActionImported, created.ID, ownerID, created.Name, created.Amount)
	}

	slog.InfoContext(ctx, "Bulk import finished",
		"owner_id", ownerID,
		"budgets", res.Budgets,
		"expenses", res.Expenses,
		"incomes", res.Incomes,
		"skipped", res.Skipped)

	return res, nil
}

// DeleteAll removes every record of ownerID.
func (s *TransferService) DeleteAll(ctx context.Context, ownerID string) (int64, error) {
	if err := requireOwner(ownerID); err != nil {
		return 0, err
	}
	if s.purger == nil {
		return 0, fmt.Errorf("purge not supported by this store")
	}
	return s.purger.PurgeOwner(ctx, ownerID)
}


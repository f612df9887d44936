package storage

import (
	"context"
	"database/sql"
	"errors"
	"fmt"
	"log/slog"
	"os"
	"path/filepath"
	"time"

	"fintrack/internal/core"

	"github.com/google/uuid"
	_ "modernc.org/sqlite"
)

// SQLiteStore owns the database handle and exposes one repository per record type.
type SQLiteStore struct {
	db  *sql.DB
	now func() time.Time

	Budgets  *BudgetStore
	Expenses *ExpenseStore
	Incomes  *IncomeStore
}

// Option configures a SQLiteStore.
type Option func(*SQLiteStore)

// WithClock overrides the time source used for createdAt.
func WithClock(now func() time.Time) Option {
	return func(s *SQLiteStore) { s.now = now }
}

// Open creates the database file if needed, applies migrations and returns
// a ready store.
func Open(dbPath string, opts ...Option) (*SQLiteStore, error) {
	if err := os.MkdirAll(filepath.Dir(dbPath), 0o755); err != nil {
		return nil, fmt.Errorf("create db directory: %w", err)
	}

	db, err := sql.Open("sqlite", dbPath+"?_pragma=busy_timeout(5000)&_pragma=journal_mode(WAL)")
	if err != nil {
		return nil, fmt.Errorf("open sqlite database: %w", err)
	}

	if err := db.Ping(); err != nil {
		db.Close()
		return nil, fmt.Errorf("ping database: %w", err)
	}

	if err := RunMigrations(dbPath); err != nil {
		db.Close()
		return nil, fmt.Errorf("run migrations: %w", err)
	}

	s := &SQLiteStore{db: db, now: time.Now}
	for _, opt := range opts {
		opt(s)
	}
	s.Budgets = &BudgetStore{s: s}
	s.Expenses = &ExpenseStore{s: s}
	s.Incomes = &IncomeStore{s: s}

	slog.Info("SQLite store ready", "path", dbPath)
	return s, nil
}

// Close releases the database handle.
func (s *SQLiteStore) Close() error {
	if s.db != nil {
		return s.db.Close()
	}
	return nil
}

// Ping checks that the database answers.
func (s *SQLiteStore) Ping(ctx context.Context) error {
	return s.db.PingContext(ctx)
}

// PurgeOwner deletes every budget, expense and income of one owner.
func (s *SQLiteStore) PurgeOwner(ctx context.Context, ownerID string) (int64, error) {
	tx, err := s.db.BeginTx(ctx, nil)
	if err != nil {
		return 0, fmt.Errorf("begin purge: %w", err)
	}
	defer tx.Rollback()

	var total int64
	for _, table := range []string{"expenses", "incomes", "budgets"} {
		res, err := tx.ExecContext(ctx, "DELETE FROM "+table+" WHERE owner_id = ?", ownerID)
		if err != nil {
			return 0, fmt.Errorf("purge %s: %w", table, err)
		}
		n, _ := res.RowsAffected()
		total += n
	}

	if err := tx.Commit(); err != nil {
		return 0, fmt.Errorf("commit purge: %w", err)
	}
	slog.InfoContext(ctx, "Owner data purged", "owner_id", ownerID, "rows", total)
	return total, nil
}

func (s *SQLiteStore) stamp(id *string, createdAt *time.Time) {
	if *id == "" {
		*id = uuid.NewString()
	}
	if createdAt.IsZero() {
		*createdAt = s.now().UTC()
	}
}

// rowScanner is satisfied by *sql.Row and *sql.Rows.
type rowScanner interface {
	Scan(dest ...any) error
}

func checkAffected(res sql.Result, what, id string) error {
	n, err := res.RowsAffected()
	if err != nil {
		return fmt.Errorf("%s %s: %w", what, id, err)
	}
	if n == 0 {
		return fmt.Errorf("%s %s: %w", what, id, core.ErrNotFound)
	}
	return nil
}

func notFound(err error, what, id string) error {
	if errors.Is(err, sql.ErrNoRows) {
		return fmt.Errorf("%s %s: %w", what, id, core.ErrNotFound)
	}
	return fmt.Errorf("get %s %s: %w", what, id, err)
}

func fromUnix(nanos int64) time.Time {
	return time.Unix(0, nanos).UTC()
}

func nullable(s string) sql.NullString {
	return sql.NullString{String: s, Valid: s != ""}
}

// BudgetStore persists budgets.
type BudgetStore struct{ s *SQLiteStore }

const budgetColumns = "id, name, amount_cents, icon, owner_id, created_at"

func scanBudget(r rowScanner) (core.Budget, error) {
	var (
		b       core.Budget
		created int64
	)
	if err := r.Scan(&b.ID, &b.Name, &b.Amount.Cents, &b.Icon, &b.OwnerID, &created); err != nil {
		return core.Budget{}, err
	}
	b.CreatedAt = fromUnix(created)
	return b, nil
}

func (r *BudgetStore) List(ctx context.Context, ownerID string) ([]core.Budget, error) {
	rows, err := r.s.db.QueryContext(ctx,
		"SELECT "+budgetColumns+" FROM budgets WHERE owner_id = ? ORDER BY created_at DESC, id DESC", ownerID)
	if err != nil {
		return nil, fmt.Errorf("list budgets: %w", err)
	}
	defer rows.Close()

	out := []core.Budget{}
	for rows.Next() {
		b, err := scanBudget(rows)
		if err != nil {
			return nil, fmt.Errorf("scan budget: %w", err)
		}
		out = append(out, b)
	}
	return out, rows.Err()
}

func (r *BudgetStore) Get(ctx context.Context, ownerID, id string) (core.Budget, error) {
	row := r.s.db.QueryRowContext(ctx,
		"SELECT "+budgetColumns+" FROM budgets WHERE owner_id = ? AND id = ?", ownerID, id)
	b, err := scanBudget(row)
	if err != nil {
		return core.Budget{}, notFound(err, "budget", id)
	}
	return b, nil
}

func (r *BudgetStore) Create(ctx context.Context, b core.Budget) (core.Budget, error) {
	r.s.stamp(&b.ID, &b.CreatedAt)
	_, err := r.s.db.ExecContext(ctx,
		"INSERT INTO budgets ("+budgetColumns+") VALUES (?, ?, ?, ?, ?, ?)",
		b.ID, b.Name, b.Amount.Cents, b.Icon, b.OwnerID, b.CreatedAt.UnixNano())
	if err != nil {
		return core.Budget{}, fmt.Errorf("create budget: %w", err)
	}
	return b, nil
}

func (r *BudgetStore) Update(ctx context.Context, ownerID, id string, b core.Budget) (core.Budget, error) {
	res, err := r.s.db.ExecContext(ctx,
		"UPDATE budgets SET name = ?, amount_cents = ?, icon = ? WHERE owner_id = ? AND id = ?",
		b.Name, b.Amount.Cents, b.Icon, ownerID, id)
	if err != nil {
		return core.Budget{}, fmt.Errorf("update budget %s: %w", id, err)
	}
	if err := checkAffected(res, "budget", id); err != nil {
		return core.Budget{}, err
	}
	return r.Get(ctx, ownerID, id)
}

func (r *BudgetStore) Delete(ctx context.Context, ownerID, id string) error {
	res, err := r.s.db.ExecContext(ctx, "DELETE FROM budgets WHERE owner_id = ? AND id = ?", ownerID, id)
	if err != nil {
		return fmt.Errorf("delete budget %s: %w", id, err)
	}
	return checkAffected(res, "budget", id)
}

// ExpenseStore persists expenses.
type ExpenseStore struct{ s *SQLiteStore }

const expenseColumns = "id, name, amount_cents, budget_id, owner_id, created_at"

func scanExpense(r rowScanner) (core.Expense, error) {
	var (
		e        core.Expense
		budgetID sql.NullString
		created  int64
	)
	if err := r.Scan(&e.ID, &e.Name, &e.Amount.Cents, &budgetID, &e.OwnerID, &created); err != nil {
		return core.Expense{}, err
	}
	e.BudgetID = budgetID.String
	e.CreatedAt = fromUnix(created)
	return e, nil
}

func (r *ExpenseStore) query(ctx context.Context, where string, args ...any) ([]core.Expense, error) {
	rows, err := r.s.db.QueryContext(ctx,
		"SELECT "+expenseColumns+" FROM expenses WHERE "+where+" ORDER BY created_at DESC, id DESC", args...)
	if err != nil {
		return nil, fmt.Errorf("list expenses: %w", err)
	}
	defer rows.Close()

	out := []core.Expense{}
	for rows.Next() {
		e, err := scanExpense(rows)
		if err != nil {
			return nil, fmt.Errorf("scan expense: %w", err)
		}
		out = append(out, e)
	}
	return out, rows.Err()
}

func (r *ExpenseStore) List(ctx context.Context, ownerID string) ([]core.Expense, error) {
	return r.query(ctx, "owner_id = ?", ownerID)
}

func (r *ExpenseStore) ListByBudget(ctx context.Context, ownerID, budgetID string) ([]core.Expense, error) {
	return r.query(ctx, "owner_id = ? AND budget_id = ?", ownerID, budgetID)
}

func (r *ExpenseStore) Get(ctx context.Context, ownerID, id string) (core.Expense, error) {
	row := r.s.db.QueryRowContext(ctx,
		"SELECT "+expenseColumns+" FROM expenses WHERE owner_id = ? AND id = ?", ownerID, id)
	e, err := scanExpense(row)
	if err != nil {
		return core.Expense{}, notFound(err, "expense", id)
	}
	return e, nil
}

func (r *ExpenseStore) Create(ctx context.Context, e core.Expense) (core.Expense, error) {
	r.s.stamp(&e.ID, &e.CreatedAt)
	_, err := r.s.db.ExecContext(ctx,
		"INSERT INTO expenses ("+expenseColumns+") VALUES (?, ?, ?, ?, ?, ?)",
		e.ID, e.Name, e.Amount.Cents, nullable(e.BudgetID), e.OwnerID, e.CreatedAt.UnixNano())
	if err != nil {
		return core.Expense{}, fmt.Errorf("create expense: %w", err)
	}
	return e, nil
}

func (r *ExpenseStore) Update(ctx context.Context, ownerID, id string, e core.Expense) (core.Expense, error) {
	res, err := r.s.db.ExecContext(ctx,
		"UPDATE expenses SET name = ?, amount_cents = ?, budget_id = ? WHERE owner_id = ? AND id = ?",
		e.Name, e.Amount.Cents, nullable(e.BudgetID), ownerID, id)
	if err != nil {
		return core.Expense{}, fmt.Errorf("update expense %s: %w", id, err)
	}
	if err := checkAffected(res, "expense", id); err != nil {
		return core.Expense{}, err
	}
	return r.Get(ctx, ownerID, id)
}

func (r *ExpenseStore) Delete(ctx context.Context, ownerID, id string) error {
	res, err := r.s.db.ExecContext(ctx, "DELETE FROM expenses WHERE owner_id = ? AND id = ?", ownerID, id)
	if err != nil {
		return fmt.Errorf("delete expense %s: %w", id, err)
	}
	return checkAffected(res, "expense", id)
}

// IncomeStore persists incomes.
type IncomeStore struct{ s *SQLiteStore }

const incomeColumns = "id, name, amount_cents, frequency, income_date, description, icon, owner_id, created_at"

func scanIncome(r rowScanner) (core.Income, error) {
	var (
		in      core.Income
		freq    string
		date    sql.NullString
		created int64
	)
	if err := r.Scan(&in.ID, &in.Name, &in.Amount.Cents, &freq, &date, &in.Description, &in.Icon, &in.OwnerID, &created); err != nil {
		return core.Income{}, err
	}
	in.Frequency = core.Frequency(freq)
	if d, err := core.ParseDate(date.String); err == nil {
		in.Date = d
	}
	in.CreatedAt = fromUnix(created)
	return in, nil
}

func (r *IncomeStore) List(ctx context.Context, ownerID string) ([]core.Income, error) {
	rows, err := r.s.db.QueryContext(ctx,
		"SELECT "+incomeColumns+" FROM incomes WHERE owner_id = ? ORDER BY created_at DESC, id DESC", ownerID)
	if err != nil {
		return nil, fmt.Errorf("list incomes: %w", err)
	}
	defer rows.Close()

	out := []core.Income{}
	for rows.Next() {
		in, err := scanIncome(rows)
		if err != nil {
			return nil, fmt.Errorf("scan income: %w", err)
		}
		out = append(out, in)
	}
	return out, rows.Err()
}

func (r *IncomeStore) Get(ctx context.Context, ownerID, id string) (core.Income, error) {
	row := r.s.db.QueryRowContext(ctx,
		"SELECT "+incomeColumns+" FROM incomes WHERE owner_id = ? AND id = ?", ownerID, id)
	in, err := scanIncome(row)
	if err != nil {
		return core.Income{}, notFound(err, "income", id)
	}
	return in, nil
}

func (r *IncomeStore) Create(ctx context.Context, in core.Income) (core.Income, error) {
	r.s.stamp(&in.ID, &in.CreatedAt)
	_, err := r.s.db.ExecContext(ctx,
		"INSERT INTO incomes ("+incomeColumns+") VALUES (?, ?, ?, ?, ?, ?, ?, ?, ?)",
		in.ID, in.Name, in.Amount.Cents, string(in.Frequency), nullable(in.Date.String()),
		in.Description, in.Icon, in.OwnerID, in.CreatedAt.UnixNano())
	if err != nil {
		return core.Income{}, fmt.Errorf("create income: %w", err)
	}
	return in, nil
}

func (r *IncomeStore) Update(ctx context.Context, ownerID, id string, in core.Income) (core.Income, error) {
	res, err := r.s.db.ExecContext(ctx,
		`UPDATE incomes SET name = ?, amount_cents = ?, frequency = ?, income_date = ?,
		 description = ?, icon = ? WHERE owner_id = ? AND id = ?`,
		in.Name, in.Amount.Cents, string(in.Frequency), nullable(in.Date.String()),
		in.Description, in.Icon, ownerID, id)
	if err != nil {
		return core.Income{}, fmt.Errorf("update income %s: %w", id, err)
	}
	if err := checkAffected(res, "income", id); err != nil {
		return core.Income{}, err
	}
	return r.Get(ctx, ownerID, id)
}

func (r *IncomeStore) Delete(ctx context.Context, ownerID, id string) error {
	res, err := r.s.db.ExecContext(ctx, "DELETE FROM incomes WHERE owner_id = ? AND id = ?", ownerID, id)
	if err != nil {
		return fmt.Errorf("delete income %s: %w", id, err)
	}
	return checkAffected(res, "income", id)
}

var (
	_ BudgetRepository  = (*BudgetStore)(nil)
	_ ExpenseRepository = (*ExpenseStore)(nil)
	_ IncomeRepository  = (*IncomeStore)(nil)
)

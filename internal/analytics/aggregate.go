// Package analytics computes derived totals and ratios over one owner's
// budgets, expenses and incomes.
//
// Every function here is pure. Degenerate inputs (empty collections, zero
// denominators) resolve to zero rather than an error, and nothing returned can
// be NaN or infinite.
package analytics

import (
	"sort"

	"fintrack/internal/core"
)

// Summary is the derived aggregate. It is recomputed on every read.
type Summary struct {
	TotalBudget     core.Money `json:"totalBudget"`
	TotalSpend      core.Money `json:"totalSpend"`
	TotalIncome     core.Money `json:"totalIncome"`
	RemainingBudget core.Money `json:"remainingBudget"`

	// BudgetUtilization is unclamped so that over-budget states stay visible.
	BudgetUtilization float64 `json:"budgetUtilization"`
	// ClampedUtilization is BudgetUtilization limited to [0,100] for progress bars.
	ClampedUtilization float64 `json:"clampedUtilization"`
	SavingsRate        float64 `json:"savingsRate"`
	IncomeExpenseRatio float64 `json:"incomeExpenseRatio"`

	BudgetCount  int `json:"budgetCount"`
	ExpenseCount int `json:"expenseCount"`
	IncomeCount  int `json:"incomeCount"`
}

// BudgetSpend is one budget joined with the expenses that reference it.
type BudgetSpend struct {
	Budget             core.Budget `json:"budget"`
	Spend              core.Money  `json:"totalSpend"`
	Remaining          core.Money  `json:"remaining"`
	ItemCount          int         `json:"totalItem"`
	Utilization        float64     `json:"utilization"`
	ClampedUtilization float64     `json:"clampedUtilization"`
}

// CategoryShare is a slice of total spend attributed to one budget, or to
// the uncategorized bucket when BudgetID is empty.
type CategoryShare struct {
	BudgetID    string     `json:"budgetId,omitempty"`
	Name        string     `json:"name"`
	Spend       core.Money `json:"value"`
	Budget      core.Money `json:"budget"`
	Utilization float64    `json:"utilization"`
	Share       float64    `json:"share"`
}

// TotalBudget sums every budget amount.
func TotalBudget(budgets []core.Budget) core.Money {
	var total core.Money
	for _, b := range budgets {
		total = total.Add(b.Amount)
	}
	return total
}

// TotalSpend sums every expense amount, whatever budget it belongs to.
func TotalSpend(expenses []core.Expense) core.Money {
	var total core.Money
	for _, e := range expenses {
		total = total.Add(e.Amount)
	}
	return total
}

// SpendForBudget sums the expenses whose BudgetID equals budgetID.
func SpendForBudget(expenses []core.Expense, budgetID string) core.Money {
	var total core.Money
	for _, e := range expenses {
		if e.BudgetID == budgetID {
			total = total.Add(e.Amount)
		}
	}
	return total
}

// TotalIncome sums every income amount as recorded, ignoring frequency.
func TotalIncome(incomes []core.Income) core.Money {
	var total core.Money
	for _, in := range incomes {
		total = total.Add(in.Amount)
	}
	return total
}

// RemainingBudget is totalBudget - totalSpend. Negative means over budget.
func RemainingBudget(totalBudget, totalSpend core.Money) core.Money {
	return totalBudget.Sub(totalSpend)
}

// RawUtilization is spend / budget * 100, or 0 when the budget is 0.
func RawUtilization(totalBudget, totalSpend core.Money) float64 {
	return percent(totalSpend.Cents, totalBudget.Cents)
}

// ClampedUtilization is RawUtilization limited to [0,100].
func ClampedUtilization(totalBudget, totalSpend core.Money) float64 {
	return clamp(RawUtilization(totalBudget, totalSpend), 0, 100)
}

// SavingsRate is (income - spend) / income * 100, or 0 when income is 0.
func SavingsRate(totalIncome, totalSpend core.Money) float64 {
	return percent(totalIncome.Cents-totalSpend.Cents, totalIncome.Cents)
}

// IncomeExpenseRatio is income / spend, or 0 when nothing was spent.
func IncomeExpenseRatio(totalIncome, totalSpend core.Money) float64 {
	if totalSpend.Cents == 0 {
		return 0
	}
	return float64(totalIncome.Cents) / float64(totalSpend.Cents)
}

// Summarize computes the full derived aggregate.
func Summarize(budgets []core.Budget, expenses []core.Expense, incomes []core.Income) Summary {
	totalBudget := TotalBudget(budgets)
	totalSpend := TotalSpend(expenses)
	totalIncome := TotalIncome(incomes)

	return Summary{
		TotalBudget:        totalBudget,
		TotalSpend:         totalSpend,
		TotalIncome:        totalIncome,
		RemainingBudget:    RemainingBudget(totalBudget, totalSpend),
		BudgetUtilization:  RawUtilization(totalBudget, totalSpend),
		ClampedUtilization: ClampedUtilization(totalBudget, totalSpend),
		SavingsRate:        SavingsRate(totalIncome, totalSpend),
		IncomeExpenseRatio: IncomeExpenseRatio(totalIncome, totalSpend),
		BudgetCount:        len(budgets),
		ExpenseCount:       len(expenses),
		IncomeCount:        len(incomes),
	}
}

// BudgetSpends joins every budget with its expenses, preserving budget order.
func BudgetSpends(budgets []core.Budget, expenses []core.Expense) []BudgetSpend {
	out := make([]BudgetSpend, 0, len(budgets))
	for _, b := range budgets {
		out = append(out, BudgetSpendFor(b, expenses))
	}
	return out
}

// BudgetSpendFor computes the spend figures for a single budget.
func BudgetSpendFor(b core.Budget, expenses []core.Expense) BudgetSpend {
	bs := BudgetSpend{Budget: b}
	for _, e := range expenses {
		if e.BudgetID != b.ID {
			continue
		}
		bs.Spend = bs.Spend.Add(e.Amount)
		bs.ItemCount++
	}
	bs.Remaining = RemainingBudget(b.Amount, bs.Spend)
	bs.Utilization = RawUtilization(b.Amount, bs.Spend)
	bs.ClampedUtilization = ClampedUtilization(b.Amount, bs.Spend)
	return bs
}

// SpendingBreakdown attributes spend to budgets, largest first. Budgets with no
// spend are omitted. Expenses whose BudgetID is empty or matches no budget are
// grouped under core.UncategorizedName.
func SpendingBreakdown(budgets []core.Budget, expenses []core.Expense) []CategoryShare {
	known := make(map[string]struct{}, len(budgets))
	var shares []CategoryShare
	for _, bs := range BudgetSpends(budgets, expenses) {
		known[bs.Budget.ID] = struct{}{}
		if bs.Spend.Cents <= 0 {
			continue
		}
		shares = append(shares, CategoryShare{
			BudgetID:    bs.Budget.ID,
			Name:        bs.Budget.Name,
			Spend:       bs.Spend,
			Budget:      bs.Budget.Amount,
			Utilization: bs.Utilization,
		})
	}

	var orphan core.Money
	for _, e := range expenses {
		if _, ok := known[e.BudgetID]; !ok {
			orphan = orphan.Add(e.Amount)
		}
	}
	if orphan.Cents > 0 {
		shares = append(shares, CategoryShare{Name: core.UncategorizedName, Spend: orphan})
	}

	var total int64
	for _, s := range shares {
		total += s.Spend.Cents
	}
	for i := range shares {
		shares[i].Share = percent(shares[i].Spend.Cents, total)
	}

	sort.SliceStable(shares, func(i, j int) bool {
		return shares[i].Spend.Cents > shares[j].Spend.Cents
	})
	return shares
}

// HighestSpending returns the category with the largest spend.
func HighestSpending(budgets []core.Budget, expenses []core.Expense) (CategoryShare, bool) {
	shares := SpendingBreakdown(budgets, expenses)
	if len(shares) == 0 {
		return CategoryShare{}, false
	}
	return shares[0], true
}

func percent(num, den int64) float64 {
	if den == 0 {
		return 0
	}
	return float64(num) * 100 / float64(den)
}

func clamp(v, lo, hi float64) float64 {
	if v < lo {
		return lo
	}
	if v > hi {
		return hi
	}
	return v
}

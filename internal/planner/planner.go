// Package planner splits a monthly income across spending categories by
// percentage.
package planner

import (
	"errors"
	"fmt"
	"strings"

	"fintrack/internal/core"

	"github.com/shopspring/decimal"
)

var (
	ErrInvalidIncome     = errors.New("monthly income must be greater than zero")
	ErrInvalidPercentage = errors.New("category percentage must be greater than zero")
	ErrOverAllocated     = errors.New("total percentage cannot exceed 100%")
	ErrEmptyCategory     = errors.New("category name cannot be empty")
)

var hundred = decimal.NewFromInt(100)

// Category is a named share of income in percent.
type Category struct {
	Name       string  `json:"name"`
	Percentage float64 `json:"percentage"`
}

// Allocation is a category with its computed amount.
type Allocation struct {
	Name       string     `json:"name"`
	Percentage float64    `json:"percentage"`
	Amount     core.Money `json:"amount"`
}

// Plan is the result of splitting an income.
type Plan struct {
	MonthlyIncome   core.Money   `json:"monthlyIncome"`
	Allocations     []Allocation `json:"allocations"`
	TotalAllocated  float64      `json:"totalAllocated"`
	Remaining       float64      `json:"remaining"`
	UnallocatedCash core.Money   `json:"unallocatedAmount"`
}

// DefaultCategories is the starting split offered when none is given.
func DefaultCategories() []Category {
	return []Category{
		{"Housing", 30},
		{"Transportation", 10},
		{"Food & Dining", 15},
		{"Utilities", 5},
		{"Healthcare", 5},
		{"Entertainment", 5},
		{"Shopping", 5},
		{"Savings", 20},
		{"Emergency Fund", 5},
	}
}

// Build computes the plan. A nil or empty category list uses DefaultCategories.
func Build(income core.Money, categories []Category) (Plan, error) {
	if income.Cents <= 0 {
		return Plan{}, ErrInvalidIncome
	}
	if len(categories) == 0 {
		categories = DefaultCategories()
	}

	total := decimal.Zero
	allocs := make([]Allocation, 0, len(categories))
	for _, c := range categories {
		name := strings.TrimSpace(c.Name)
		if name == "" {
			return Plan{}, ErrEmptyCategory
		}
		if c.Percentage <= 0 {
			return Plan{}, fmt.Errorf("%s: %w", name, ErrInvalidPercentage)
		}
		pct := decimal.NewFromFloat(c.Percentage)
		total = total.Add(pct)
		allocs = append(allocs, Allocation{
			Name:       name,
			Percentage: c.Percentage,
			Amount:     core.MoneyFromDecimal(income.Decimal().Mul(pct).Div(hundred)),
		})
	}
	if total.GreaterThan(hundred) {
		return Plan{}, fmt.Errorf("%s%%: %w", total.String(), ErrOverAllocated)
	}

	plan := Plan{
		MonthlyIncome:  income,
		Allocations:    allocs,
		TotalAllocated: total.InexactFloat64(),
		Remaining:      hundred.Sub(total).InexactFloat64(),
	}
	allocated := core.Money{}
	for _, a := range allocs {
		allocated = allocated.Add(a.Amount)
	}
	plan.UnallocatedCash = income.Sub(allocated)
	return plan, nil
}

// Budgets turns the plan into budgets owned by ownerID, ready to be created.
func (p Plan) Budgets(ownerID string) []core.Budget {
	out := make([]core.Budget, 0, len(p.Allocations))
	for _, a := range p.Allocations {
		b := core.Budget{Name: a.Name, Amount: a.Amount, OwnerID: ownerID}
		b.ApplyDefaults()
		out = append(out, b)
	}
	return out
}

package insights

import (
	"fintrack/internal/analytics"
	"fintrack/internal/core"
)

// Report bundles everything the insight generator produces for one owner.
type Report struct {
	Health          Health           `json:"health"`
	Advice          string           `json:"advice"`
	Recommendations []Recommendation `json:"recommendations"`
	SpendingInsight string           `json:"spendingInsight"`
}

// Generate derives a full report from raw records.
func Generate(budgets []core.Budget, expenses []core.Expense, incomes []core.Income) Report {
	return FromSummary(analytics.Summarize(budgets, expenses, incomes), budgets, expenses)
}

// FromSummary derives a report from an existing summary. budgets and
// expenses are only used for the spending insight.
func FromSummary(s analytics.Summary, budgets []core.Budget, expenses []core.Expense) Report {
	return Report{
		Health:          HealthScore(s.TotalBudget, s.TotalIncome, s.TotalSpend),
		Advice:          Advice(s.TotalBudget, s.TotalIncome, s.TotalSpend),
		Recommendations: Recommendations(s.TotalBudget, s.TotalIncome, s.TotalSpend),
		SpendingInsight: SpendingInsight(budgets, expenses),
	}
}

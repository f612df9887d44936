// Package insights maps aggregate figures to a health score, advice text and
// prioritised recommendations using fixed threshold tables.
package insights

import (
	"fintrack/internal/analytics"
	"fintrack/internal/core"
)

// Status is the label attached to a health score band.
type Status string

const (
	StatusExcellent        Status = "Excellent"
	StatusGood             Status = "Good"
	StatusFair             Status = "Fair"
	StatusNeedsImprovement Status = "Needs Improvement"
)

// Health is the 0-100 composite score and its per-metric contributions.
type Health struct {
	Score         int     `json:"score"`
	Status        Status  `json:"status"`
	Color         string  `json:"color"`
	SavingsPoints int     `json:"savingsPoints"`
	UsagePoints   int     `json:"usagePoints"`
	RatioPoints   int     `json:"ratioPoints"`
	SavingsRate   float64 `json:"savingsRate"`
	BudgetUsage   float64 `json:"budgetUsage"`
	Ratio         float64 `json:"incomeExpenseRatio"`
}

type band struct {
	limit  float64
	points int
}

// Savings rate and ratio bands award points when value >= limit.
var (
	savingsBands = []band{{20, 40}, {10, 30}, {5, 20}, {0, 10}}
	ratioBands   = []band{{1.5, 30}, {1.2, 20}, {1.0, 10}}
)

// Usage bands award points when value <= limit.
var usageBands = []band{{80, 30}, {100, 20}, {120, 10}}

type statusBand struct {
	min    int
	status Status
	color  string
}

var statusBands = []statusBand{
	{80, StatusExcellent, "green"},
	{60, StatusGood, "blue"},
	{40, StatusFair, "yellow"},
	{0, StatusNeedsImprovement, "red"},
}

// HealthScore scores the three totals. Usage is the unclamped utilization.
func HealthScore(totalBudget, totalIncome, totalSpend core.Money) Health {
	return ScoreMetrics(
		analytics.SavingsRate(totalIncome, totalSpend),
		analytics.RawUtilization(totalBudget, totalSpend),
		analytics.IncomeExpenseRatio(totalIncome, totalSpend),
	)
}

// ScoreMetrics scores already-derived metrics.
func ScoreMetrics(savingsRate, budgetUsage, ratio float64) Health {
	h := Health{
		SavingsPoints: atLeast(savingsBands, savingsRate),
		UsagePoints:   atMost(usageBands, budgetUsage),
		RatioPoints:   atLeast(ratioBands, ratio),
		SavingsRate:   savingsRate,
		BudgetUsage:   budgetUsage,
		Ratio:         ratio,
	}
	h.Score = h.SavingsPoints + h.UsagePoints + h.RatioPoints

	for _, sb := range statusBands {
		if h.Score >= sb.min {
			h.Status = sb.status
			h.Color = sb.color
			break
		}
	}
	return h
}

func atLeast(bands []band, v float64) int {
	for _, b := range bands {
		if v >= b.limit {
			return b.points
		}
	}
	return 0
}

func atMost(bands []band, v float64) int {
	for _, b := range bands {
		if v <= b.limit {
			return b.points
		}
	}
	return 0
}

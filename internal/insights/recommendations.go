package insights

import (
	"sort"

	"fintrack/internal/analytics"
	"fintrack/internal/core"
)

// Priority orders recommendations.
type Priority string

const (
	PriorityHigh   Priority = "high"
	PriorityMedium Priority = "medium"
	PriorityLow    Priority = "low"
)

func (p Priority) rank() int {
	switch p {
	case PriorityHigh:
		return 0
	case PriorityMedium:
		return 1
	default:
		return 2
	}
}

// Recommendation is a static template selected by a threshold rule.
type Recommendation struct {
	Title       string   `json:"title"`
	Description string   `json:"description"`
	Priority    Priority `json:"priority"`
}

// metrics is the input every rule sees.
type metrics struct {
	totalBudget core.Money
	totalIncome core.Money
	totalSpend  core.Money
	savingsRate float64
	usage       float64
}

type rule struct {
	when func(m metrics) bool
	rec  Recommendation
}

var rules = []rule{
	{
		when: func(m metrics) bool { return m.savingsRate < 0 },
		rec: Recommendation{
			Title:       "Emergency: Reduce Expenses",
			Description: "You're spending more than you earn. Immediately cut non-essential expenses and find additional income sources.",
			Priority:    PriorityHigh,
		},
	},
	{
		when: func(m metrics) bool { return m.usage > 120 },
		rec: Recommendation{
			Title:       "Over Budget Alert",
			Description: "You're significantly over budget. Review your spending patterns and adjust your budget categories.",
			Priority:    PriorityHigh,
		},
	},
	{
		when: func(m metrics) bool { return m.savingsRate < 10 },
		rec: Recommendation{
			Title:       "Increase Savings Rate",
			Description: "Aim to save at least 10-20% of your income. Start with small, consistent amounts.",
			Priority:    PriorityMedium,
		},
	},
	{
		when: func(m metrics) bool { return m.usage > 80 && m.usage <= 100 },
		rec: Recommendation{
			Title:       "Monitor Budget Closely",
			Description: "You're approaching your budget limit. Track your spending daily to avoid overspending.",
			Priority:    PriorityMedium,
		},
	},
	{
		when: func(m metrics) bool { return m.totalIncome.Cents > 0 && m.totalSpend.IsZero() },
		rec: Recommendation{
			Title:       "Start Tracking Expenses",
			Description: "Great! You have income set up. Now start tracking your expenses to get better insights.",
			Priority:    PriorityLow,
		},
	},
	{
		when: func(m metrics) bool { return m.totalBudget.IsZero() && m.totalIncome.Cents > 0 },
		rec: Recommendation{
			Title:       "Create Budget Categories",
			Description: "Set up budget categories to better manage your spending and achieve your financial goals.",
			Priority:    PriorityLow,
		},
	},
}

// Recommendations returns every matching recommendation, high priority first.
func Recommendations(totalBudget, totalIncome, totalSpend core.Money) []Recommendation {
	m := metrics{
		totalBudget: totalBudget,
		totalIncome: totalIncome,
		totalSpend:  totalSpend,
		savingsRate: analytics.SavingsRate(totalIncome, totalSpend),
		usage:       analytics.RawUtilization(totalBudget, totalSpend),
	}

	out := []Recommendation{}
	for _, r := range rules {
		if r.when(m) {
			out = append(out, r.rec)
		}
	}
	sort.SliceStable(out, func(i, j int) bool {
		return out[i].Priority.rank() < out[j].Priority.rank()
	})
	return out
}

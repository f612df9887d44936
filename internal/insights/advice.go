package insights

import (
	"fmt"

	"fintrack/internal/analytics"
	"fintrack/internal/core"

	"github.com/dustin/go-humanize"
)

const (
	adviceWelcome = "Welcome! Start by adding your income sources and creating budgets to get personalized financial advice."

	adviceOverBudget = " You're currently over budget. Review your spending categories and identify areas to cut back."
	adviceNearLimit  = " You're close to your budget limit. Monitor your spending closely this month."

	spendingNoData = "No spending data available. Start tracking your expenses to get insights."
)

// adviceBands are checked in order; the first whose limit the savings rate
// reaches wins. The final entry catches negative rates.
var adviceBands = []struct {
	limit float64
	text  string
}{
	{20, "Excellent work! You're saving more than 20% of your income. Consider investing your savings in diversified portfolios or emergency funds."},
	{10, "Good savings rate! Try to increase it to 20% by reducing non-essential expenses. Consider setting up automatic savings transfers."},
	{0, "Your savings rate is below recommended levels. Focus on reducing expenses and increasing income. Start with small, achievable goals."},
}

const adviceDeficit = "You're spending more than you earn. This is unsustainable. Focus on reducing expenses and consider additional income sources."

// Advice picks the rule-based advice text for the three totals.
func Advice(totalBudget, totalIncome, totalSpend core.Money) string {
	if totalIncome.IsZero() && totalSpend.IsZero() {
		return adviceWelcome
	}

	savingsRate := analytics.SavingsRate(totalIncome, totalSpend)
	usage := analytics.RawUtilization(totalBudget, totalSpend)

	advice := adviceDeficit
	for _, b := range adviceBands {
		if savingsRate >= b.limit {
			advice = b.text
			break
		}
	}

	switch {
	case usage > 100:
		advice += adviceOverBudget
	case usage > 80:
		advice += adviceNearLimit
	}
	return advice
}

// SpendingInsight names the category with the highest spend.
func SpendingInsight(budgets []core.Budget, expenses []core.Expense) string {
	if len(expenses) == 0 {
		return spendingNoData
	}
	top, ok := analytics.HighestSpending(budgets, expenses)
	if !ok {
		return spendingNoData
	}
	return fmt.Sprintf("Your highest spending category is %s with %s. Consider reviewing this area for potential savings.",
		top.Name, FormatCurrency(top.Spend))
}

// FormatCurrency renders an amount with the currency symbol and thousands separators.
func FormatCurrency(m core.Money) string {
	return core.CurrencySymbol + humanize.FormatFloat("#,###.##", m.Float())
}

// Package report renders a dashboard for the terminal.
package report

import (
	"fmt"
	"strings"

	"fintrack/internal/insights"
	"fintrack/internal/services"

	"github.com/charmbracelet/lipgloss"
	"github.com/dustin/go-humanize"
)

var (
	titleStyle   = lipgloss.NewStyle().Bold(true).Foreground(lipgloss.Color("12"))
	headingStyle = lipgloss.NewStyle().Bold(true).Underline(true)
	labelStyle   = lipgloss.NewStyle().Width(22)
	mutedStyle   = lipgloss.NewStyle().Foreground(lipgloss.Color("8"))
	boxStyle     = lipgloss.NewStyle().Border(lipgloss.RoundedBorder()).Padding(0, 1)
	overStyle    = lipgloss.NewStyle().Foreground(lipgloss.Color("9"))

	healthColors = map[string]lipgloss.Color{
		"green":  lipgloss.Color("10"),
		"blue":   lipgloss.Color("12"),
		"yellow": lipgloss.Color("11"),
		"red":    lipgloss.Color("9"),
	}

	priorityMarks = map[insights.Priority]string{
		insights.PriorityHigh:   "!!",
		insights.PriorityMedium: "! ",
		insights.PriorityLow:    "  ",
	}
)

// Render lays out the dashboard and goals as styled text.
func Render(owner string, d services.Dashboard, goals []services.GoalView) string {
	sections := []string{
		titleStyle.Render("Finance report for "+owner) + mutedStyle.Render("  generated "+humanize.Time(d.GeneratedAt)),
		boxStyle.Render(renderSummary(d)),
		renderHealth(d.Insights.Health),
	}
	if len(d.Budgets) > 0 {
		sections = append(sections, renderBudgets(d))
	}
	if len(d.Breakdown) > 0 {
		sections = append(sections, renderBreakdown(d))
	}
	sections = append(sections, renderInsights(d.Insights))
	if len(goals) > 0 {
		sections = append(sections, renderGoals(goals))
	}
	if len(d.Notices) > 0 {
		sections = append(sections, overStyle.Render("Partial data: "+strings.Join(d.Notices, "; ")))
	}
	return lipgloss.JoinVertical(lipgloss.Left, sections...) + "\n"
}

func line(label, value string) string {
	return labelStyle.Render(label) + value
}

func renderSummary(d services.Dashboard) string {
	s := d.Summary
	lines := []string{
		line("Total budget", Currency(s.TotalBudget)),
		line("Total spend", Currency(s.TotalSpend)),
		line("Remaining", Currency(s.RemainingBudget)),
		line("Total income", Currency(s.TotalIncome)),
		line("Monthly income", Currency(d.MonthlyEquivalentIncome)),
		line("Budget utilization", Percent(s.BudgetUtilization)),
		line("Savings rate", Percent(s.SavingsRate)),
		line("Records", fmt.Sprintf("%s budgets, %s expenses, %s incomes",
			humanize.Comma(int64(s.BudgetCount)),
			humanize.Comma(int64(s.ExpenseCount)),
			humanize.Comma(int64(s.IncomeCount)))),
	}
	return strings.Join(lines, "\n")
}

func renderHealth(h insights.Health) string {
	style := lipgloss.NewStyle().Bold(true)
	if c, ok := healthColors[h.Color]; ok {
		style = style.Foreground(c)
	}
	return headingStyle.Render("Health") + "\n" +
		style.Render(fmt.Sprintf("%d/100 %s", h.Score, h.Status)) +
		mutedStyle.Render(fmt.Sprintf("  savings %d, usage %d, ratio %d", h.SavingsPoints, h.UsagePoints, h.RatioPoints))
}

func renderBudgets(d services.Dashboard) string {
	rows := []string{headingStyle.Render("Budgets")}
	for _, b := range d.Budgets {
		remaining := Compact(b.Remaining)
		if b.Remaining.IsNegative() {
			remaining = overStyle.Render(remaining)
		}
		rows = append(rows, fmt.Sprintf("%-20s %8s of %-8s left %-8s %s items",
			b.Budget.Name, Compact(b.Spend), Compact(b.Budget.Amount), remaining, humanize.Comma(int64(b.ItemCount))))
	}
	return strings.Join(rows, "\n")
}

func renderBreakdown(d services.Dashboard) string {
	rows := []string{headingStyle.Render("Spending breakdown")}
	for _, c := range d.Breakdown {
		rows = append(rows, fmt.Sprintf("%-20s %8s %7s", c.Name, Compact(c.Spend), Percent(c.Share)))
	}
	return strings.Join(rows, "\n")
}

func renderInsights(r insights.Report) string {
	rows := []string{headingStyle.Render("Insights"), r.Advice}
	if r.SpendingInsight != "" {
		rows = append(rows, r.SpendingInsight)
	}
	for _, rec := range r.Recommendations {
		rows = append(rows, priorityMarks[rec.Priority]+" "+rec.Title+": "+mutedStyle.Render(rec.Description))
	}
	return strings.Join(rows, "\n")
}

func renderGoals(goals []services.GoalView) string {
	rows := []string{headingStyle.Render("Goals")}
	for _, g := range goals {
		rows = append(rows, fmt.Sprintf("%-20s %8s of %-8s %s",
			g.Title, Compact(g.CurrentAmount), Compact(g.TargetAmount), Percent(g.Progress)))
	}
	return strings.Join(rows, "\n")
}

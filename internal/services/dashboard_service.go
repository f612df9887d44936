package services

import (
	"context"
	"fmt"
	"log/slog"
	"sync"
	"time"

	"fintrack/internal/analytics"
	"fintrack/internal/core"
	"fintrack/internal/insights"
	"fintrack/internal/storage"

	"golang.org/x/sync/errgroup"
)

const recentExpenseCount = 5

// Records is everything one owner has stored.
type Records struct {
	Budgets  []core.Budget
	Expenses []core.Expense
	Incomes  []core.Income
}

// Dashboard is the aggregate view served to the presentation layer.
type Dashboard struct {
	Summary                 analytics.Summary         `json:"summary"`
	MonthlyEquivalentIncome core.Money                `json:"monthlyEquivalentIncome"`
	Budgets                 []analytics.BudgetSpend   `json:"budgets"`
	Breakdown               []analytics.CategoryShare `json:"breakdown"`
	RecentExpenses          []core.Expense            `json:"recentExpenses"`
	Insights                insights.Report           `json:"insights"`
	Notices                 []string                  `json:"notices"`
	GeneratedAt             time.Time                 `json:"generatedAt"`
}

// InsightsView is the insight report plus the figures it was derived from.
type InsightsView struct {
	insights.Report
	Summary analytics.Summary `json:"summary"`
	Notices []string          `json:"notices"`
}

// DashboardService reads the three collections in parallel and derives the
// aggregate. Nothing it computes is stored.
type DashboardService struct {
	budgets  storage.BudgetRepository
	expenses storage.ExpenseRepository
	incomes  storage.IncomeRepository
	now      func() time.Time
}

func NewDashboardService(budgets storage.BudgetRepository, expenses storage.ExpenseRepository, incomes storage.IncomeRepository) *DashboardService {
	return &DashboardService{
		budgets:  budgets,
		expenses: expenses,
		incomes:  incomes,
		now:      time.Now,
	}
}

// Fetch lists budgets, expenses and incomes concurrently. A failed read
// yields an empty collection and a notice; Fetch itself never fails.
func (s *DashboardService) Fetch(ctx context.Context, ownerID string) (Records, []string) {
	var (
		recs    = Records{Budgets: []core.Budget{}, Expenses: []core.Expense{}, Incomes: []core.Income{}}
		mu      sync.Mutex
		notices = []string{}
	)
	fallback := func(what string, err error) {
		slog.WarnContext(ctx, "Dashboard read failed, using empty collection",
			"collection", what,
			"owner_id", ownerID,
			"error", err)
		mu.Lock()
		notices = append(notices, fmt.Sprintf("Could not load %s; showing without them.", what))
		mu.Unlock()
	}

	var g errgroup.Group
	g.Go(func() error {
		if list, err := s.budgets.List(ctx, ownerID); err != nil {
			fallback("budgets", err)
		} else {
			recs.Budgets = list
		}
		return nil
	})
	g.Go(func() error {
		if list, err := s.expenses.List(ctx, ownerID); err != nil {
			fallback("expenses", err)
		} else {
			recs.Expenses = list
		}
		return nil
	})
	g.Go(func() error {
		if list, err := s.incomes.List(ctx, ownerID); err != nil {
			fallback("incomes", err)
		} else {
			recs.Incomes = list
		}
		return nil
	})
	_ = g.Wait()

	return recs, notices
}

// Build assembles the dashboard for one owner.
func (s *DashboardService) Build(ctx context.Context, ownerID string) (Dashboard, error) {
	if err := requireOwner(ownerID); err != nil {
		return Dashboard{}, err
	}
	recs, notices := s.Fetch(ctx, ownerID)
	now := s.now()

	summary := analytics.Summarize(recs.Budgets, recs.Expenses, recs.Incomes)
	recent := recs.Expenses
	if len(recent) > recentExpenseCount {
		recent = recent[:recentExpenseCount]
	}

	breakdown := analytics.SpendingBreakdown(recs.Budgets, recs.Expenses)
	if breakdown == nil {
		breakdown = []analytics.CategoryShare{}
	}

	return Dashboard{
		Summary:                 summary,
		MonthlyEquivalentIncome: analytics.MonthlyEquivalentIncome(recs.Incomes, now),
		Budgets:                 analytics.BudgetSpends(recs.Budgets, recs.Expenses),
		Breakdown:               breakdown,
		RecentExpenses:          recent,
		Insights:                insights.FromSummary(summary, recs.Budgets, recs.Expenses),
		Notices:                 notices,
		GeneratedAt:             now.UTC(),
	}, nil
}

// Insights returns only the rule-based insight report.
func (s *DashboardService) Insights(ctx context.Context, ownerID string) (InsightsView, error) {
	if err := requireOwner(ownerID); err != nil {
		return InsightsView{}, err
	}
	recs, notices := s.Fetch(ctx, ownerID)
	summary := analytics.Summarize(recs.Budgets, recs.Expenses, recs.Incomes)
	return InsightsView{
		Report:  insights.FromSummary(summary, recs.Budgets, recs.Expenses),
		Summary: summary,
		Notices: notices,
	}, nil
}

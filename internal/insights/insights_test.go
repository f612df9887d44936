package insights

import (
	"strings"
	"testing"

	"fintrack/internal/core"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func m(v float64) core.Money { return core.NewMoney(v) }

func TestHealthScoreBands(t *testing.T) {
	tests := []struct {
		name                string
		budget, income, spd float64
		wantScore           int
		wantStatus          Status
		wantColor           string
	}{
		{"typical month", 500, 2000, 320, 100, StatusExcellent, "green"},
		{"empty", 0, 0, 0, 40, StatusFair, "yellow"},
		{"deficit and over budget", 100, 1000, 1500, 0, StatusNeedsImprovement, "red"},
		{"ten percent saved at budget", 900, 1000, 900, 30 + 20 + 10, StatusGood, "blue"},
		{"five percent saved slightly over", 900, 1000, 950, 20 + 10 + 10, StatusFair, "yellow"},
		{"ratio 1.25", 1000, 1000, 800, 40 + 30 + 20, StatusExcellent, "green"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			h := HealthScore(m(tt.budget), m(tt.income), m(tt.spd))
			assert.Equal(t, tt.wantScore, h.Score)
			assert.Equal(t, tt.wantStatus, h.Status)
			assert.Equal(t, tt.wantColor, h.Color)
			assert.Equal(t, h.Score, h.SavingsPoints+h.UsagePoints+h.RatioPoints)
		})
	}
}

func TestScoreMetricsBoundaries(t *testing.T) {
	assert.Equal(t, 40, ScoreMetrics(20, 0, 0).SavingsPoints)
	assert.Equal(t, 30, ScoreMetrics(19.99, 0, 0).SavingsPoints)
	assert.Equal(t, 10, ScoreMetrics(0, 0, 0).SavingsPoints)
	assert.Equal(t, 0, ScoreMetrics(-0.01, 0, 0).SavingsPoints)

	assert.Equal(t, 30, ScoreMetrics(0, 80, 0).UsagePoints)
	assert.Equal(t, 20, ScoreMetrics(0, 80.01, 0).UsagePoints)
	assert.Equal(t, 10, ScoreMetrics(0, 120, 0).UsagePoints)
	assert.Equal(t, 0, ScoreMetrics(0, 120.01, 0).UsagePoints)

	assert.Equal(t, 30, ScoreMetrics(0, 0, 1.5).RatioPoints)
	assert.Equal(t, 10, ScoreMetrics(0, 0, 1.0).RatioPoints)
	assert.Equal(t, 0, ScoreMetrics(0, 0, 0.99).RatioPoints)
}

func TestScoreMonotonicity(t *testing.T) {
	rates := []float64{-50, -1, 0, 2, 5, 7, 10, 15, 20, 25, 90}
	usages := []float64{0, 50, 80, 81, 100, 101, 120, 121, 300}
	ratios := []float64{0, 0.5, 1, 1.2, 1.5, 3}

	for _, ratio := range ratios {
		for _, usage := range usages {
			prev := -1
			for _, rate := range rates {
				s := ScoreMetrics(rate, usage, ratio).Score
				assert.GreaterOrEqual(t, s, prev, "rate=%v usage=%v ratio=%v", rate, usage, ratio)
				prev = s
			}
		}
		for _, rate := range rates {
			prev := 101
			for _, usage := range usages {
				s := ScoreMetrics(rate, usage, ratio).Score
				assert.LessOrEqual(t, s, prev, "rate=%v usage=%v ratio=%v", rate, usage, ratio)
				prev = s
			}
		}
	}

	assert.GreaterOrEqual(t, ScoreMetrics(25, 64, 2).Score, ScoreMetrics(5, 64, 2).Score)
}

func TestAdvice(t *testing.T) {
	tests := []struct {
		name                string
		budget, income, spd float64
		prefix              string
		suffix              string
	}{
		{"welcome", 0, 0, 0, "Welcome!", ""},
		{"excellent", 1000, 2000, 500, "Excellent work!", "funds."},
		{"good near limit", 1000, 1000, 850, "Good savings rate!", "Monitor your spending closely this month."},
		{"good", 2000, 1000, 850, "Good savings rate!", "transfers."},
		{"deficit over budget", 100, 1000, 1500, "You're spending more than you earn.", "identify areas to cut back."},
		{"spend without income", 0, 0, 10, "Your savings rate is below", "goals."},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got := Advice(m(tt.budget), m(tt.income), m(tt.spd))
			assert.True(t, strings.HasPrefix(got, tt.prefix), got)
			assert.True(t, strings.HasSuffix(got, tt.suffix), got)
		})
	}
}

func titles(recs []Recommendation) []string {
	out := make([]string, 0, len(recs))
	for _, r := range recs {
		out = append(out, r.Title)
	}
	return out
}

func TestRecommendations(t *testing.T) {
	tests := []struct {
		name                string
		budget, income, spd float64
		want                []string
	}{
		{"healthy", 500, 2000, 320, []string{}},
		{"deficit and way over budget", 100, 1000, 1500, []string{"Emergency: Reduce Expenses", "Over Budget Alert", "Increase Savings Rate"}},
		{"near limit", 1000, 1000, 950, []string{"Increase Savings Rate", "Monitor Budget Closely"}},
		{"income only", 0, 3000, 0, []string{"Start Tracking Expenses", "Create Budget Categories"}},
		{"nothing recorded", 0, 0, 0, []string{"Increase Savings Rate"}},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got := Recommendations(m(tt.budget), m(tt.income), m(tt.spd))
			assert.Equal(t, tt.want, titles(got))
			for i := 1; i < len(got); i++ {
				assert.LessOrEqual(t, got[i-1].Priority.rank(), got[i].Priority.rank())
			}
		})
	}
}

func TestSpendingInsight(t *testing.T) {
	assert.Equal(t, spendingNoData, SpendingInsight(nil, nil))

	budgets := []core.Budget{{ID: "b1", Name: "Rent", Amount: m(1000)}}
	got := SpendingInsight(budgets, []core.Expense{
		{Amount: m(1200), BudgetID: "b1"},
		{Amount: m(50)},
	})
	assert.Equal(t, "Your highest spending category is Rent with ₹1,200.00. Consider reviewing this area for potential savings.", got)

	got = SpendingInsight(nil, []core.Expense{{Amount: m(75.5)}})
	assert.Contains(t, got, core.UncategorizedName)
}

func TestGenerateEmpty(t *testing.T) {
	r := Generate(nil, nil, nil)

	require.NotNil(t, r.Recommendations)
	assert.Equal(t, 40, r.Health.Score)
	assert.Equal(t, adviceWelcome, r.Advice)
	assert.Equal(t, spendingNoData, r.SpendingInsight)
}

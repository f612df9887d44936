package report

import (
	"strings"

	"fintrack/internal/core"

	"github.com/dustin/go-humanize"
	"github.com/shopspring/decimal"
)

var compactUnits = []struct {
	at     decimal.Decimal
	suffix string
}{
	{decimal.New(1, 9), "B"},
	{decimal.New(1, 6), "M"},
	{decimal.New(1, 3), "K"},
}

// Compact shortens an amount for tight columns: 1.5K, 2M, 3B. Amounts
// under a thousand keep two decimals unless they are whole.
func Compact(m core.Money) string {
	d := m.Decimal()
	for _, u := range compactUnits {
		if d.GreaterThanOrEqual(u.at) {
			return strings.TrimSuffix(d.Div(u.at).StringFixed(1), ".0") + u.suffix
		}
	}
	return strings.TrimSuffix(d.StringFixed(2), ".00")
}

// Currency formats an amount with thousands separators, e.g. ₹1,234.50.
func Currency(m core.Money) string {
	sign := ""
	if m.IsNegative() {
		sign = "-"
		m = core.Money{Cents: -m.Cents}
	}
	return sign + core.CurrencySymbol + humanize.FormatFloat("#,###.##", m.Float())
}

// Percent formats a percentage with one decimal.
func Percent(p float64) string {
	return humanize.FtoaWithDigits(p, 1) + "%"
}

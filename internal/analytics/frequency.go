package analytics

// Each income frequency has its own normaliser that converts a recorded
// amount into the equivalent amount per calendar month.

import (
	"fmt"
	"time"

	"fintrack/internal/core"

	"github.com/shopspring/decimal"
)

// MonthlyNormalizer converts one income amount to its monthly equivalent.
type MonthlyNormalizer interface {
	Monthly(amount core.Money, date core.Date, now time.Time) core.Money
}

// DailyNormalizer scales a daily amount by 365/12.
type DailyNormalizer struct{}

func (DailyNormalizer) Monthly(amount core.Money, _ core.Date, _ time.Time) core.Money {
	return scale(amount, 365, 12)
}

// WeeklyNormalizer scales a weekly amount by 52/12.
type WeeklyNormalizer struct{}

func (WeeklyNormalizer) Monthly(amount core.Money, _ core.Date, _ time.Time) core.Money {
	return scale(amount, 52, 12)
}

// MonthlyPassthrough returns the amount unchanged.
type MonthlyPassthrough struct{}

func (MonthlyPassthrough) Monthly(amount core.Money, _ core.Date, _ time.Time) core.Money {
	return amount
}

// YearlyNormalizer divides a yearly amount by 12.
type YearlyNormalizer struct{}

func (YearlyNormalizer) Monthly(amount core.Money, _ core.Date, _ time.Time) core.Money {
	return scale(amount, 1, 12)
}

// OneTimeNormalizer counts the amount only when it is dated in the month of now.
type OneTimeNormalizer struct{}

func (OneTimeNormalizer) Monthly(amount core.Money, date core.Date, now time.Time) core.Money {
	if date.IsEmpty() {
		return core.Money{}
	}
	if date.Year() == now.Year() && date.Month() == int(now.Month()) {
		return amount
	}
	return core.Money{}
}

var normalizers = map[core.Frequency]MonthlyNormalizer{
	core.Daily:   DailyNormalizer{},
	core.Weekly:  WeeklyNormalizer{},
	core.Monthly: MonthlyPassthrough{},
	core.Yearly:  YearlyNormalizer{},
	core.OneTime: OneTimeNormalizer{},
}

// GetNormalizer returns the normaliser registered for a frequency.
func GetNormalizer(f core.Frequency) (MonthlyNormalizer, error) {
	n, ok := normalizers[f]
	if !ok {
		return nil, fmt.Errorf("unknown frequency: %s", f)
	}
	return n, nil
}

// MonthlyEquivalent converts a single income to its amount per month.
// An empty frequency is treated as monthly.
func MonthlyEquivalent(in core.Income, now time.Time) (core.Money, error) {
	f := in.Frequency
	if f == "" {
		f = core.Monthly
	}
	n, err := GetNormalizer(f)
	if err != nil {
		return core.Money{}, err
	}
	return n.Monthly(in.Amount, in.Date, now), nil
}

// MonthlyEquivalentIncome sums the monthly equivalents of all incomes.
// Incomes with an unknown frequency are skipped.
func MonthlyEquivalentIncome(incomes []core.Income, now time.Time) core.Money {
	var total core.Money
	for _, in := range incomes {
		m, err := MonthlyEquivalent(in, now)
		if err != nil {
			continue
		}
		total = total.Add(m)
	}
	return total
}

func scale(amount core.Money, num, den int64) core.Money {
	d := amount.Decimal().Mul(decimal.NewFromInt(num)).Div(decimal.NewFromInt(den))
	return core.MoneyFromDecimal(d)
}

// Package core provides money parsing and handling utilities.
//
// Amounts are normalised to integer cents at every boundary. Values that arrive
// as loosely typed JSON (numbers or strings) go through CoerceAmount, which
// resolves anything unparseable to zero instead of failing.
package core

import (
	"bytes"
	"encoding/json"
	"math"
	"strings"

	"github.com/shopspring/decimal"
)

// CurrencySymbol prefixes formatted amounts.
const CurrencySymbol = "₹"

// maxAmount bounds parsed values so that cents always fit in an int64.
var maxAmount = decimal.New(90_000_000_000_000_000, -2)

// Money is an amount in minor units (cents).
type Money struct {
	Cents int64
}

// NewMoney builds a Money from a major-unit float, rounding half away from zero.
func NewMoney(v float64) Money {
	if math.IsNaN(v) || math.IsInf(v, 0) {
		return Money{}
	}
	return fromDecimal(decimal.NewFromFloat(v))
}

// Add returns m + o.
func (m Money) Add(o Money) Money {
	return Money{Cents: m.Cents + o.Cents}
}

// Sub returns m - o.
func (m Money) Sub(o Money) Money {
	return Money{Cents: m.Cents - o.Cents}
}

// IsNegative reports whether the amount is below zero.
func (m Money) IsNegative() bool {
	return m.Cents < 0
}

// IsZero reports whether the amount is exactly zero.
func (m Money) IsZero() bool {
	return m.Cents == 0
}

// Float returns the amount in major units. Use cents for arithmetic.
func (m Money) Float() float64 {
	return float64(m.Cents) / 100.0
}

// Decimal returns the amount as an exact decimal in major units.
func (m Money) Decimal() decimal.Decimal {
	return decimal.New(m.Cents, -2)
}

// String formats the amount with two fractional digits, e.g. "45.50".
func (m Money) String() string {
	return m.Decimal().StringFixed(2)
}

// MarshalJSON encodes the amount as a JSON number with two decimals.
func (m Money) MarshalJSON() ([]byte, error) {
	return []byte(m.String()), nil
}

// UnmarshalJSON accepts numbers and numeric strings. Anything else becomes zero.
func (m *Money) UnmarshalJSON(b []byte) error {
	var raw any
	dec := json.NewDecoder(bytes.NewReader(b))
	dec.UseNumber()
	if err := dec.Decode(&raw); err != nil {
		*m = Money{}
		return nil
	}
	*m = CoerceAmount(raw)
	return nil
}

// ParseAmount parses a user supplied decimal string strictly.
//
// Both dot (12.34) and comma (12,34) separators are accepted. Fractional digits
// beyond the cent are rounded half away from zero. Empty input yields
// ErrMissingAmount, malformed input ErrInvalidAmount and values below zero
// ErrNegativeAmount.
func ParseAmount(s string) (Money, error) {
	s = strings.TrimSpace(s)
	if s == "" {
		return Money{}, ErrMissingAmount
	}
	d, ok := parseDecimal(s)
	if !ok {
		return Money{}, ErrInvalidAmount
	}
	if d.IsNegative() {
		return Money{}, ErrNegativeAmount
	}
	return fromDecimal(d), nil
}

// CoerceAmount converts a loosely typed amount to Money.
// Missing, non-numeric, NaN or out of range values resolve to zero.
func CoerceAmount(v any) Money {
	switch val := v.(type) {
	case nil:
		return Money{}
	case Money:
		return val
	case string:
		d, ok := parseDecimal(strings.TrimSpace(val))
		if !ok {
			return Money{}
		}
		return fromDecimal(d)
	case json.Number:
		d, ok := parseDecimal(val.String())
		if !ok {
			return Money{}
		}
		return fromDecimal(d)
	case float64:
		return NewMoney(val)
	case float32:
		return NewMoney(float64(val))
	case int:
		return fromDecimal(decimal.NewFromInt(int64(val)))
	case int64:
		return fromDecimal(decimal.NewFromInt(val))
	default:
		return Money{}
	}
}

func parseDecimal(s string) (decimal.Decimal, bool) {
	if s == "" {
		return decimal.Zero, false
	}
	if !strings.Contains(s, ".") {
		s = strings.Replace(s, ",", ".", 1)
	}
	d, err := decimal.NewFromString(s)
	if err != nil {
		return decimal.Zero, false
	}
	if d.Abs().GreaterThan(maxAmount) {
		return decimal.Zero, false
	}
	return d, true
}

// MoneyFromDecimal converts a major-unit decimal to Money, rounding half away
// from zero. Out-of-range values become zero.
func MoneyFromDecimal(d decimal.Decimal) Money {
	return fromDecimal(d)
}

func fromDecimal(d decimal.Decimal) Money {
	if d.Abs().GreaterThan(maxAmount) {
		return Money{}
	}
	return Money{Cents: d.Shift(2).Round(0).IntPart()}
}

// Amount is a request field that may arrive as a JSON number or string.
// It remembers whether the field was present and whether it parsed cleanly,
// so write paths can reject bad input while read paths coerce.
type Amount struct {
	Money
	Set   bool
	Valid bool
}

// UnmarshalJSON records presence and validity before coercing.
func (a *Amount) UnmarshalJSON(b []byte) error {
	a.Set = true
	trimmed := bytes.TrimSpace(b)
	if bytes.Equal(trimmed, []byte("null")) {
		a.Set = false
		return nil
	}
	var raw any
	dec := json.NewDecoder(bytes.NewReader(trimmed))
	dec.UseNumber()
	if err := dec.Decode(&raw); err != nil {
		return nil
	}
	switch val := raw.(type) {
	case string:
		if strings.TrimSpace(val) == "" {
			a.Set = false
			return nil
		}
		_, a.Valid = parseDecimal(strings.TrimSpace(val))
	case json.Number:
		_, a.Valid = parseDecimal(val.String())
	}
	a.Money = CoerceAmount(raw)
	return nil
}

// Require returns the amount for a write path, or the reason it cannot be used.
func (a Amount) Require() (Money, error) {
	if !a.Set {
		return Money{}, ErrMissingAmount
	}
	if !a.Valid {
		return Money{}, ErrInvalidAmount
	}
	if a.IsNegative() {
		return Money{}, ErrNegativeAmount
	}
	return a.Money, nil
}

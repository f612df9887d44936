package core

import (
	"encoding/json"
	"math"
	"testing"
)

func TestParseAmount(t *testing.T) {
	cases := []struct {
		in  string
		out int64
		err error
	}{
		{"1", 100, nil},
		{"1.0", 100, nil},
		{"1.23", 123, nil},
		{"1,23", 123, nil},
		{"0.01", 1, nil},
		{"0", 0, nil},
		{"1.005", 101, nil}, // half away from zero
		{" 2.50 ", 250, nil},
		{"45.50", 4550, nil},
		{"-1", 0, ErrNegativeAmount},
		{"abc", 0, ErrInvalidAmount},
		{"1.2.3", 0, ErrInvalidAmount},
		{"", 0, ErrMissingAmount},
	}
	for _, tc := range cases {
		got, err := ParseAmount(tc.in)
		if err != tc.err {
			t.Fatalf("%q expected err %v, got %v", tc.in, tc.err, err)
		}
		if err == nil && got.Cents != tc.out {
			t.Fatalf("%q expected %d, got %d", tc.in, tc.out, got.Cents)
		}
	}
}

func TestCoerceAmount(t *testing.T) {
	cases := []struct {
		in  any
		out int64
	}{
		{"45.50", 4550},
		{45.5, 4550},
		{json.Number("12.345"), 1235},
		{320, 32000},
		{int64(7), 700},
		{"", 0},
		{"not a number", 0},
		{nil, 0},
		{math.NaN(), 0},
		{math.Inf(1), 0},
		{[]int{1}, 0},
		{"1e400", 0},
	}
	for _, tc := range cases {
		if got := CoerceAmount(tc.in); got.Cents != tc.out {
			t.Fatalf("CoerceAmount(%v) = %d, want %d", tc.in, got.Cents, tc.out)
		}
	}
}

func TestMoneyJSON(t *testing.T) {
	var rec struct {
		Amount Money `json:"amount"`
	}
	for in, want := range map[string]int64{
		`{"amount":"45.50"}`: 4550,
		`{"amount":45.5}`:    4550,
		`{"amount":"oops"}`:  0,
		`{"amount":null}`:    0,
		`{"amount":true}`:    0,
	} {
		rec.Amount = Money{Cents: -1}
		if err := json.Unmarshal([]byte(in), &rec); err != nil {
			t.Fatalf("%s: unexpected error %v", in, err)
		}
		if rec.Amount.Cents != want {
			t.Fatalf("%s: expected %d, got %d", in, want, rec.Amount.Cents)
		}
	}

	out, err := json.Marshal(struct {
		Amount Money `json:"amount"`
	}{Money{Cents: 4550}})
	if err != nil || string(out) != `{"amount":45.50}` {
		t.Fatalf("unexpected marshal %s err=%v", out, err)
	}
}

func TestAmountRequire(t *testing.T) {
	type body struct {
		Amount Amount `json:"amount"`
	}
	cases := []struct {
		in   string
		want int64
		err  error
	}{
		{`{"amount":"12.50"}`, 1250, nil},
		{`{"amount":12}`, 1200, nil},
		{`{}`, 0, ErrMissingAmount},
		{`{"amount":""}`, 0, ErrMissingAmount},
		{`{"amount":null}`, 0, ErrMissingAmount},
		{`{"amount":"abc"}`, 0, ErrInvalidAmount},
		{`{"amount":-3}`, 0, ErrNegativeAmount},
	}
	for _, tc := range cases {
		var b body
		if err := json.Unmarshal([]byte(tc.in), &b); err != nil {
			t.Fatalf("%s: unmarshal: %v", tc.in, err)
		}
		got, err := b.Amount.Require()
		if err != tc.err {
			t.Fatalf("%s: expected err %v, got %v", tc.in, tc.err, err)
		}
		if err == nil && got.Cents != tc.want {
			t.Fatalf("%s: expected %d, got %d", tc.in, tc.want, got.Cents)
		}
	}
}

func TestMoneyArithmetic(t *testing.T) {
	a := Money{Cents: 50000}
	b := Money{Cents: 32000}
	if a.Sub(b).Cents != 18000 || a.Add(b).Cents != 82000 {
		t.Fatalf("unexpected arithmetic")
	}
	if !b.Sub(a).IsNegative() {
		t.Fatalf("expected negative")
	}
	if a.String() != "500.00" || a.Float() != 500 {
		t.Fatalf("unexpected formatting %s %v", a.String(), a.Float())
	}
}

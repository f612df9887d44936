package core

import (
	"encoding/json"
	"testing"
	"time"
)

func TestDateValidate(t *testing.T) {
	cases := []struct {
		d  Date
		ok bool
	}{
		{NewDate(2025, 1, 1), true},
		{NewDate(2025, 12, 31), true},
		{Date{Time: time.Time{}}, false}, // zero time
	}
	for i, tc := range cases {
		err := tc.d.Validate()
		if tc.ok && err != nil {
			t.Fatalf("case %d expected ok, got %v", i, err)
		}
		if !tc.ok && err == nil {
			t.Fatalf("case %d expected error", i)
		}
	}
}

func TestParseDate(t *testing.T) {
	d, err := ParseDate("2025-03-09")
	if err != nil || d.Year() != 2025 || d.Month() != 3 || d.Day() != 9 {
		t.Fatalf("unexpected date %v err=%v", d, err)
	}
	d, err = ParseDate("2025-03-09T15:04:05Z")
	if err != nil || d.String() != "2025-03-09" {
		t.Fatalf("unexpected rfc3339 date %v err=%v", d, err)
	}
	d, err = ParseDate("")
	if err != nil || !d.IsEmpty() {
		t.Fatalf("expected empty date, got %v err=%v", d, err)
	}
	if _, err := ParseDate("09/03/2025"); err != ErrInvalidDate {
		t.Fatalf("expected ErrInvalidDate, got %v", err)
	}
}

func TestDateJSON(t *testing.T) {
	var in struct {
		D Date `json:"d"`
	}
	if err := json.Unmarshal([]byte(`{"d":"2024-02-29"}`), &in); err != nil {
		t.Fatalf("unmarshal: %v", err)
	}
	out, _ := json.Marshal(in)
	if string(out) != `{"d":"2024-02-29"}` {
		t.Fatalf("unexpected json %s", out)
	}
	if err := json.Unmarshal([]byte(`{"d":""}`), &in); err != nil || !in.D.IsEmpty() {
		t.Fatalf("expected empty date, err=%v", err)
	}
}

func TestBudgetValidate(t *testing.T) {
	good := Budget{Name: "Food", Amount: Money{Cents: 50000}, OwnerID: "u1"}
	if err := good.Validate(); err != nil {
		t.Fatalf("expected ok, got %v", err)
	}
	zero := Budget{Name: "Zero", OwnerID: "u1"}
	if err := zero.Validate(); err != nil {
		t.Fatalf("zero amount is allowed, got %v", err)
	}

	bads := []struct {
		b   Budget
		err error
	}{
		{Budget{Name: " ", Amount: Money{Cents: 1}, OwnerID: "u1"}, ErrEmptyName},
		{Budget{Name: "x", Amount: Money{Cents: -1}, OwnerID: "u1"}, ErrNegativeAmount},
		{Budget{Name: "x", Amount: Money{Cents: 1}}, ErrMissingOwner},
	}
	for i, tc := range bads {
		if err := tc.b.Validate(); err != tc.err {
			t.Fatalf("case %d expected %v, got %v", i, tc.err, err)
		}
	}
}

func TestExpenseValidate(t *testing.T) {
	good := Expense{Name: "Lunch", Amount: Money{Cents: 1250}, OwnerID: "u1"}
	if err := good.Validate(); err != nil {
		t.Fatalf("expected ok, got %v", err)
	}
	long := make([]byte, 201)
	for i := range long {
		long[i] = 'a'
	}
	bads := []Expense{
		{Name: "", Amount: Money{Cents: 1}, OwnerID: "u1"},
		{Name: string(long), Amount: Money{Cents: 1}, OwnerID: "u1"},
		{Name: "a", Amount: Money{Cents: -5}, OwnerID: "u1"},
		{Name: "a", Amount: Money{Cents: 1}},
	}
	for i, e := range bads {
		if err := e.Validate(); err == nil {
			t.Fatalf("case %d expected error", i)
		}
	}
}

func TestIncomeValidateAndDefaults(t *testing.T) {
	in := Income{Name: " Salary ", Amount: Money{Cents: 200000}, OwnerID: "u1"}
	in.ApplyDefaults()
	if in.Frequency != Monthly || in.Icon != DefaultIncomeIcon || in.Name != "Salary" {
		t.Fatalf("defaults not applied: %+v", in)
	}
	if err := in.Validate(); err != nil {
		t.Fatalf("expected ok, got %v", err)
	}
	in.Frequency = "fortnightly"
	if err := in.Validate(); err != ErrInvalidFrequency {
		t.Fatalf("expected ErrInvalidFrequency, got %v", err)
	}
	for _, f := range Frequencies() {
		if !f.Valid() {
			t.Fatalf("frequency %q should be valid", f)
		}
	}
}

func TestGoalValidate(t *testing.T) {
	g := Goal{Title: "Trip", TargetAmount: Money{Cents: 100000}}
	g.ApplyDefaults()
	if g.Category != "savings" {
		t.Fatalf("expected default category, got %q", g.Category)
	}
	if err := g.Validate(); err != nil {
		t.Fatalf("expected ok, got %v", err)
	}
	if err := (Goal{Title: "x"}).Validate(); err != ErrInvalidAmount {
		t.Fatalf("expected ErrInvalidAmount, got %v", err)
	}
	if err := (Goal{TargetAmount: Money{Cents: 1}}).Validate(); err != ErrEmptyTitle {
		t.Fatalf("expected ErrEmptyTitle, got %v", err)
	}
}

func TestGoalProgress(t *testing.T) {
	tests := []struct {
		target, current float64
		want            float64
	}{
		{1000, 250, 25},
		{1000, 1500, 100},
		{0, 50, 0},
		{200, 0, 0},
	}
	for _, tt := range tests {
		g := Goal{TargetAmount: NewMoney(tt.target), CurrentAmount: NewMoney(tt.current)}
		if got := g.Progress(); got != tt.want {
			t.Fatalf("Progress(%v/%v) = %v, want %v", tt.current, tt.target, got, tt.want)
		}
	}
}

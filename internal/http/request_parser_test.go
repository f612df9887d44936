package http

import (
	"errors"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"

	"fintrack/internal/core"
)

func TestResolveOwner(t *testing.T) {
	tests := []struct {
		name      string
		header    string
		query     string
		body      string
		fallback  string
		wantOwner string
	}{
		{"header wins", "alice", "bob", "carol", "dflt", "alice"},
		{"query before body", "", "bob", "carol", "dflt", "bob"},
		{"body before default", "", "", "carol", "dflt", "carol"},
		{"default", "", "", "", "dflt", "dflt"},
		{"blank header ignored", "   ", "", "", "dflt", "dflt"},
		{"none", "", "", "", "", ""},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			target := "/api/budgets"
			if tt.query != "" {
				target += "?createdBy=" + tt.query
			}
			r := httptest.NewRequest(http.MethodGet, target, nil)
			if tt.header != "" {
				r.Header.Set(OwnerHeader, tt.header)
			}
			if got := resolveOwner(r, tt.body, tt.fallback); got != tt.wantOwner {
				t.Errorf("resolveOwner = %q, want %q", got, tt.wantOwner)
			}
		})
	}
}

func TestDecodeJSON(t *testing.T) {
	var req budgetRequest

	r := httptest.NewRequest(http.MethodPost, "/", strings.NewReader(`{"name":"Food","amount":"45.50"}`))
	if err := decodeJSON(httptest.NewRecorder(), r, maxBodyBytes, &req); err != nil {
		t.Fatalf("decode: %v", err)
	}
	b, err := req.budget()
	if err != nil {
		t.Fatalf("budget: %v", err)
	}
	if b.Amount.Cents != 4550 || b.Name != "Food" {
		t.Errorf("unexpected budget %+v", b)
	}

	r = httptest.NewRequest(http.MethodPost, "/", strings.NewReader(`{"name":`))
	if err := decodeJSON(httptest.NewRecorder(), r, maxBodyBytes, &req); !errors.Is(err, errBadBody) {
		t.Errorf("expected errBadBody, got %v", err)
	}

	r = httptest.NewRequest(http.MethodPost, "/", strings.NewReader(""))
	if err := decodeJSON(httptest.NewRecorder(), r, maxBodyBytes, &req); !errors.Is(err, errBadBody) {
		t.Errorf("expected errBadBody for empty body, got %v", err)
	}

	var in incomeRequest
	r = httptest.NewRequest(http.MethodPost, "/", strings.NewReader(`{"name":"x","amount":1,"date":"31/12/2024"}`))
	if err := decodeJSON(httptest.NewRecorder(), r, maxBodyBytes, &in); !errors.Is(err, core.ErrInvalidDate) {
		t.Errorf("expected ErrInvalidDate, got %v", err)
	}

	r = httptest.NewRequest(http.MethodPost, "/", strings.NewReader(`{"name":"`+strings.Repeat("x", 64)+`"}`))
	if err := decodeJSON(httptest.NewRecorder(), r, 16, &req); !errors.Is(err, errBadBody) {
		t.Errorf("expected errBadBody for oversized body, got %v", err)
	}
}

func TestRequestAmounts(t *testing.T) {
	tests := []struct {
		body    string
		wantErr error
	}{
		{`{"name":"x"}`, core.ErrMissingAmount},
		{`{"name":"x","amount":""}`, core.ErrMissingAmount},
		{`{"name":"x","amount":"abc"}`, core.ErrInvalidAmount},
		{`{"name":"x","amount":-5}`, core.ErrNegativeAmount},
		{`{"name":"x","amount":"12,34"}`, nil},
	}
	for _, tt := range tests {
		var req expenseRequest
		r := httptest.NewRequest(http.MethodPost, "/", strings.NewReader(tt.body))
		if err := decodeJSON(httptest.NewRecorder(), r, maxBodyBytes, &req); err != nil {
			t.Fatalf("decode %s: %v", tt.body, err)
		}
		_, err := req.expense()
		if !errors.Is(err, tt.wantErr) {
			t.Errorf("%s: err = %v, want %v", tt.body, err, tt.wantErr)
		}
	}
}

func TestIncomeRequestDefaults(t *testing.T) {
	var req incomeRequest
	r := httptest.NewRequest(http.MethodPost, "/", strings.NewReader(`{"source":"Salary","amount":2000,"frequency":"Monthly","date":"2024-03-01"}`))
	if err := decodeJSON(httptest.NewRecorder(), r, maxBodyBytes, &req); err != nil {
		t.Fatalf("decode: %v", err)
	}
	in, err := req.income()
	if err != nil {
		t.Fatalf("income: %v", err)
	}
	if in.Name != "Salary" || in.Frequency != core.Monthly || in.Date.String() != "2024-03-01" {
		t.Errorf("unexpected income %+v", in)
	}
}

func TestSanitizeInput(t *testing.T) {
	if got := sanitizeInput("  Gro\x00ceries\x07 "); got != "Groceries" {
		t.Errorf("sanitizeInput = %q", got)
	}
}

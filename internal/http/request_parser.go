// Package http provides HTTP server and handler implementations.
//
// This file implements request decoding, owner resolution and the request
// payloads accepted by the JSON API.

package http

import (
	"encoding/json"
	"errors"
	"fmt"
	"io"
	"net/http"
	"strings"

	"fintrack/internal/core"
	"fintrack/internal/planner"
)

const (
	// OwnerHeader carries the caller's identity, set by the identity proxy.
	OwnerHeader = "X-Owner-ID"

	maxBodyBytes   = 1 << 20
	maxImportBytes = 16 << 20
)

// decodeJSON reads a single JSON document from the request body.
func decodeJSON(w http.ResponseWriter, r *http.Request, limit int64, v any) error {
	body := http.MaxBytesReader(w, r.Body, limit)
	dec := json.NewDecoder(body)
	if err := dec.Decode(v); err != nil {
		if errors.Is(err, core.ErrInvalidDate) {
			return err
		}
		if errors.Is(err, io.EOF) {
			return fmt.Errorf("%w: empty body", errBadBody)
		}
		return fmt.Errorf("%w: %v", errBadBody, err)
	}
	return nil
}

// resolveOwner picks the owner id from the header, the createdBy query
// parameter, the body's createdBy field, then the configured default.
func resolveOwner(r *http.Request, bodyOwner, defaultOwner string) string {
	for _, candidate := range []string{
		r.Header.Get(OwnerHeader),
		r.URL.Query().Get("createdBy"),
		bodyOwner,
		defaultOwner,
	} {
		if c := sanitizeInput(candidate); c != "" {
			return c
		}
	}
	return ""
}

// sanitizeInput removes control characters and trims whitespace.
func sanitizeInput(s string) string {
	s = strings.TrimSpace(s)
	return strings.Map(func(r rune) rune {
		if r < 32 && r != 9 && r != 10 && r != 13 {
			return -1
		}
		return r
	}, s)
}

type budgetRequest struct {
	Name      string      `json:"name"`
	Amount    core.Amount `json:"amount"`
	Icon      string      `json:"icon"`
	CreatedBy string      `json:"createdBy"`
}

func (req budgetRequest) budget() (core.Budget, error) {
	amount, err := req.Amount.Require()
	if err != nil {
		return core.Budget{}, err
	}
	return core.Budget{
		Name:   sanitizeInput(req.Name),
		Amount: amount,
		Icon:   sanitizeInput(req.Icon),
	}, nil
}

type expenseRequest struct {
	Name      string      `json:"name"`
	Amount    core.Amount `json:"amount"`
	BudgetID  string      `json:"budgetId"`
	CreatedBy string      `json:"createdBy"`
}

func (req expenseRequest) expense() (core.Expense, error) {
	amount, err := req.Amount.Require()
	if err != nil {
		return core.Expense{}, err
	}
	return core.Expense{
		Name:     sanitizeInput(req.Name),
		Amount:   amount,
		BudgetID: sanitizeInput(req.BudgetID),
	}, nil
}

type incomeRequest struct {
	Name        string         `json:"name"`
	Source      string         `json:"source"`
	Amount      core.Amount    `json:"amount"`
	Frequency   core.Frequency `json:"frequency"`
	Date        core.Date      `json:"date"`
	Description string         `json:"description"`
	Icon        string         `json:"icon"`
	CreatedBy   string         `json:"createdBy"`
}

func (req incomeRequest) income() (core.Income, error) {
	amount, err := req.Amount.Require()
	if err != nil {
		return core.Income{}, err
	}
	name := req.Name
	if strings.TrimSpace(name) == "" {
		name = req.Source
	}
	return core.Income{
		Name:        sanitizeInput(name),
		Amount:      amount,
		Frequency:   core.Frequency(strings.ToLower(sanitizeInput(string(req.Frequency)))),
		Date:        req.Date,
		Description: sanitizeInput(req.Description),
		Icon:        sanitizeInput(req.Icon),
	}, nil
}

type goalRequest struct {
	Title         string      `json:"title"`
	TargetAmount  core.Amount `json:"targetAmount"`
	CurrentAmount core.Amount `json:"currentAmount"`
	Deadline      core.Date   `json:"deadline"`
	Category      string      `json:"category"`
}

func (req goalRequest) goal() (core.Goal, error) {
	target, err := req.TargetAmount.Require()
	if err != nil {
		return core.Goal{}, err
	}
	var current core.Money
	if req.CurrentAmount.Set {
		if current, err = req.CurrentAmount.Require(); err != nil {
			return core.Goal{}, err
		}
	}
	return core.Goal{
		Title:         sanitizeInput(req.Title),
		TargetAmount:  target,
		CurrentAmount: current,
		Deadline:      req.Deadline,
		Category:      sanitizeInput(req.Category),
	}, nil
}

type progressRequest struct {
	Amount core.Amount `json:"amount"`
}

type planRequest struct {
	MonthlyIncome core.Amount        `json:"monthlyIncome"`
	Categories    []planner.Category `json:"categories"`
	Save          bool               `json:"save"`
	CreatedBy     string             `json:"createdBy"`
}

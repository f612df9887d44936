// Package transfer serialises an owner's records for export and prepares
// bulk imports.
package transfer

import (
	"encoding/json"
	"io"
	"time"

	"fintrack/internal/core"
)

// Data holds the three exported collections.
type Data struct {
	Budgets  []core.Budget  `json:"budgets"`
	Expenses []core.Expense `json:"expenses"`
	Incomes  []core.Income  `json:"incomes"`
}

// Snapshot is the export document.
type Snapshot struct {
	ExportDate time.Time `json:"exportDate"`
	User       string    `json:"user"`
	Data       Data      `json:"data"`
}

// NewSnapshot stamps the collections with the export time. Nil slices are
// replaced with empty ones so they encode as [].
func NewSnapshot(user string, data Data, now time.Time) Snapshot {
	if data.Budgets == nil {
		data.Budgets = []core.Budget{}
	}
	if data.Expenses == nil {
		data.Expenses = []core.Expense{}
	}
	if data.Incomes == nil {
		data.Incomes = []core.Income{}
	}
	return Snapshot{ExportDate: now.UTC(), User: user, Data: data}
}

// WriteJSON encodes the snapshot with indentation.
func WriteJSON(w io.Writer, s Snapshot) error {
	enc := json.NewEncoder(w)
	enc.SetIndent("", "  ")
	return enc.Encode(s)
}

// Bulk is the import document. It accepts the same collections as an
// export, either at the top level or nested under "data".
type Bulk struct {
	Budgets   []core.Budget  `json:"budgets"`
	Expenses  []core.Expense `json:"expenses"`
	Incomes   []core.Income  `json:"incomes"`
	CreatedBy string         `json:"createdBy"`
	User      string         `json:"user"`
	Data      *Data          `json:"data"`
}

// Normalize folds a nested export document into the top-level lists.
func (b *Bulk) Normalize() {
	if b.Data != nil {
		b.Budgets = append(b.Budgets, b.Data.Budgets...)
		b.Expenses = append(b.Expenses, b.Data.Expenses...)
		b.Incomes = append(b.Incomes, b.Data.Incomes...)
		b.Data = nil
	}
	if b.CreatedBy == "" {
		b.CreatedBy = b.User
	}
}

// Empty reports whether there is nothing to import.
func (b Bulk) Empty() bool {
	return len(b.Budgets) == 0 && len(b.Expenses) == 0 && len(b.Incomes) == 0
}

// RemapBudgetIDs rewrites expense budget references using idMap, which maps
// exported budget ids to newly created ones. References missing from idMap
// are kept so they stay visible as uncategorized.
func RemapBudgetIDs(expenses []core.Expense, idMap map[string]string) []core.Expense {
	out := make([]core.Expense, len(expenses))
	for i, e := range expenses {
		if nid, ok := idMap[e.BudgetID]; ok && e.BudgetID != "" {
			e.BudgetID = nid
		}
		out[i] = e
	}
	return out
}

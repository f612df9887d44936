package memory

import (
	"context"
	"fmt"
	"sync"

	"fintrack/internal/sheets"
)

// Ledger keeps appended rows in memory. It stands in for the spreadsheet
// when none is configured.
type Ledger struct {
	mu   sync.Mutex
	rows []sheets.LedgerRow
}

func New() *Ledger {
	return &Ledger{}
}

// AppendRow stores the row and returns a synthetic row reference.
func (l *Ledger) AppendRow(_ context.Context, row sheets.LedgerRow) (string, error) {
	if row.Kind == "" || row.RecordID == "" {
		return "", fmt.Errorf("ledger row requires kind and record id")
	}
	l.mu.Lock()
	defer l.mu.Unlock()
	l.rows = append(l.rows, row)
	return fmt.Sprintf("mem:%d", len(l.rows)), nil
}

// Rows returns a copy of everything appended so far.
func (l *Ledger) Rows() []sheets.LedgerRow {
	l.mu.Lock()
	defer l.mu.Unlock()
	return append([]sheets.LedgerRow(nil), l.rows...)
}

var _ sheets.LedgerWriter = (*Ledger)(nil)

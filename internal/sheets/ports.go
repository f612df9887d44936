package sheets

import (
	"context"
	"time"

	"fintrack/internal/core"
)

// LedgerRow is one appended line in the change ledger.
type LedgerRow struct {
	Timestamp time.Time
	Kind      string
	Action    string
	RecordID  string
	OwnerID   string
	Name      string
	Amount    core.Money
}

// Values renders the row in column order A..G.
func (r LedgerRow) Values() []any {
	return []any{
		r.Timestamp.UTC().Format(time.RFC3339),
		r.Kind,
		r.Action,
		r.RecordID,
		r.OwnerID,
		r.Name,
		r.Amount.String(),
	}
}

// LedgerHeader names the columns written by Values.
var LedgerHeader = []any{"Timestamp", "Kind", "Action", "Record ID", "Owner", "Name", "Amount"}

// Ports for outbound adapters.
type (
	LedgerWriter interface {
		AppendRow(ctx context.Context, row LedgerRow) (rowRef string, err error)
	}
)

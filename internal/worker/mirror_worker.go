// Package worker turns queued record events into ledger rows.
package worker

import (
	"context"
	"fmt"
	"log/slog"

	"fintrack/internal/amqp"
	"fintrack/internal/core"
	"fintrack/internal/sheets"
)

// MirrorWorker appends one ledger row per record event.
type MirrorWorker struct {
	ledger sheets.LedgerWriter
}

func NewMirrorWorker(ledger sheets.LedgerWriter) *MirrorWorker {
	return &MirrorWorker{ledger: ledger}
}

// HandleRecordEvent writes ev to the ledger. A returned error makes the
// consumer requeue the delivery.
func (w *MirrorWorker) HandleRecordEvent(ctx context.Context, ev *amqp.RecordEvent) error {
	slog.InfoContext(ctx, "Mirroring record event",
		"kind", ev.Kind,
		"action", ev.Action,
		"id", ev.ID,
		"owner_id", ev.OwnerID)

	ref, err := w.ledger.AppendRow(ctx, RowFromEvent(ev))
	if err != nil {
		return fmt.Errorf("append ledger row for %s %s: %w", ev.Kind, ev.ID, err)
	}

	slog.InfoContext(ctx, "Record event mirrored", "id", ev.ID, "row_ref", ref)
	return nil
}

// RowFromEvent maps an event onto the ledger column layout.
func RowFromEvent(ev *amqp.RecordEvent) sheets.LedgerRow {
	return sheets.LedgerRow{
		Timestamp: ev.Timestamp,
		Kind:      ev.Kind,
		Action:    ev.Action,
		RecordID:  ev.ID,
		OwnerID:   ev.OwnerID,
		Name:      ev.Name,
		Amount:    core.Money{Cents: ev.AmountCents},
	}
}

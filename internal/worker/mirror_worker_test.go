package worker

import (
	"context"
	"errors"
	"testing"
	"time"

	"fintrack/internal/amqp"
	"fintrack/internal/sheets"
	"fintrack/internal/sheets/memory"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

type failingLedger struct{}

func (failingLedger) AppendRow(context.Context, sheets.LedgerRow) (string, error) {
	return "", errors.New("quota exceeded")
}

func TestHandleRecordEvent(t *testing.T) {
	ledger := memory.New()
	w := NewMirrorWorker(ledger)

	ev := &amqp.RecordEvent{
		Kind:        amqp.KindExpense,
		Action:      amqp.ActionCreated,
		ID:          "e-1",
		OwnerID:     "alice",
		Name:        "Coffee",
		AmountCents: 350,
		Timestamp:   time.Date(2024, 2, 2, 8, 0, 0, 0, time.UTC),
	}
	require.NoError(t, w.HandleRecordEvent(context.Background(), ev))

	rows := ledger.Rows()
	require.Len(t, rows, 1)
	assert.Equal(t, "e-1", rows[0].RecordID)
	assert.Equal(t, "Coffee", rows[0].Name)
	assert.Equal(t, int64(350), rows[0].Amount.Cents)
	assert.Equal(t, ev.Timestamp, rows[0].Timestamp)
}

func TestHandleRecordEventLedgerFailure(t *testing.T) {
	w := NewMirrorWorker(failingLedger{})

	err := w.HandleRecordEvent(context.Background(), &amqp.RecordEvent{Kind: amqp.KindBudget, Action: amqp.ActionDeleted, ID: "b-1"})
	require.Error(t, err)
	assert.Contains(t, err.Error(), "quota exceeded")
}

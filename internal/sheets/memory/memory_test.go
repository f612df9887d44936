package memory

import (
	"context"
	"testing"
	"time"

	"fintrack/internal/core"
	"fintrack/internal/sheets"
)

func TestLedgerAppendAndRows(t *testing.T) {
	l := New()
	row := sheets.LedgerRow{
		Timestamp: time.Date(2024, 5, 1, 9, 0, 0, 0, time.UTC),
		Kind:      "expense",
		Action:    "created",
		RecordID:  "e-1",
		OwnerID:   "alice",
		Name:      "Lunch",
		Amount:    core.Money{Cents: 1250},
	}

	ref, err := l.AppendRow(context.Background(), row)
	if err != nil || ref != "mem:1" {
		t.Fatalf("unexpected append: ref=%q err=%v", ref, err)
	}
	ref, err = l.AppendRow(context.Background(), row)
	if err != nil || ref != "mem:2" {
		t.Fatalf("unexpected append: ref=%q err=%v", ref, err)
	}

	rows := l.Rows()
	if len(rows) != 2 || rows[0].Name != "Lunch" {
		t.Fatalf("unexpected rows: %+v", rows)
	}

	rows[0].Name = "changed"
	if l.Rows()[0].Name != "Lunch" {
		t.Fatal("Rows should return a copy")
	}
}

func TestLedgerRejectsIncompleteRow(t *testing.T) {
	if _, err := New().AppendRow(context.Background(), sheets.LedgerRow{Kind: "budget"}); err == nil {
		t.Fatal("expected error for row without record id")
	}
}

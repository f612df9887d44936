package amqp

import (
	"encoding/json"
	"errors"
	"time"
)

// Record kinds carried by RecordEvent.
const (
	KindBudget  = "budget"
	KindExpense = "expense"
	KindIncome  = "income"
	KindGoal    = "goal"
)

// Actions carried by RecordEvent.
const (
	ActionCreated  = "created"
	ActionUpdated  = "updated"
	ActionDeleted  = "deleted"
	ActionImported = "imported"
)

var errIncompleteEvent = errors.New("record event requires kind, action and id")

// RecordEvent announces a change to one stored record. It carries enough to
// append a ledger row without reading the database.
type RecordEvent struct {
	Kind        string    `json:"kind"`
	Action      string    `json:"action"`
	ID          string    `json:"id"`
	OwnerID     string    `json:"ownerId,omitempty"`
	Name        string    `json:"name,omitempty"`
	AmountCents int64     `json:"amountCents"`
	Timestamp   time.Time `json:"timestamp"`
}

// NewRecordEvent stamps an event with the current time.
func NewRecordEvent(kind, action, id, ownerID, name string, amountCents int64) *RecordEvent {
	return &RecordEvent{
		Kind:        kind,
		Action:      action,
		ID:          id,
		OwnerID:     ownerID,
		Name:        name,
		AmountCents: amountCents,
		Timestamp:   time.Now().UTC(),
	}
}

// ToJSON converts the event to JSON bytes
func (e *RecordEvent) ToJSON() ([]byte, error) {
	return json.Marshal(e)
}

// RecordEventFromJSON decodes and checks an event.
func RecordEventFromJSON(data []byte) (*RecordEvent, error) {
	var ev RecordEvent
	if err := json.Unmarshal(data, &ev); err != nil {
		return nil, err
	}
	if ev.Kind == "" || ev.Action == "" || ev.ID == "" {
		return nil, errIncompleteEvent
	}
	return &ev, nil
}

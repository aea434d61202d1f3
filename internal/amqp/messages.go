package amqp

import (
	"encoding/json"
	"time"

	"github.com/shopspring/decimal"

	"expensewise/internal/core"
)

// ChangeOp names the kind of write a ChangeMessage reports.
type ChangeOp string

const (
	OpPut    ChangeOp = "put"
	OpDelete ChangeOp = "delete"
	OpClear  ChangeOp = "clear"
)

// ChangeMessage announces a completed write to the entity store. Payload
// carries the JSON of the stored entity for puts and is empty otherwise.
type ChangeMessage struct {
	Namespace string          `json:"namespace"`
	ID        string          `json:"id,omitempty"`
	Op        ChangeOp        `json:"op"`
	Payload   json.RawMessage `json:"payload,omitempty"`
	Timestamp time.Time       `json:"timestamp"`
}

// NewChangeMessage builds a change message stamped with the current time.
func NewChangeMessage(namespace, id string, op ChangeOp, payload json.RawMessage) *ChangeMessage {
	return &ChangeMessage{
		Namespace: namespace,
		ID:        id,
		Op:        op,
		Payload:   payload,
		Timestamp: time.Now(),
	}
}

func (m *ChangeMessage) ToJSON() ([]byte, error) {
	return json.Marshal(m)
}

func ChangeMessageFromJSON(data []byte) (*ChangeMessage, error) {
	var msg ChangeMessage
	if err := json.Unmarshal(data, &msg); err != nil {
		return nil, err
	}
	return &msg, nil
}

// ReminderMessage tells listeners a subscription renews soon.
type ReminderMessage struct {
	SubscriptionID string          `json:"subscriptionId"`
	Name           string          `json:"name"`
	Amount         decimal.Decimal `json:"amount"`
	Currency       string          `json:"currency"`
	RenewalDate    core.Date       `json:"renewalDate"`
	DaysLeft       int             `json:"daysLeft"`
	Timestamp      time.Time       `json:"timestamp"`
}

// NewReminderMessage builds a reminder for s, DaysLeft days before renewal.
func NewReminderMessage(s core.Subscription, currency string, daysLeft int) *ReminderMessage {
	return &ReminderMessage{
		SubscriptionID: s.ID,
		Name:           s.Name,
		Amount:         s.Amount,
		Currency:       currency,
		RenewalDate:    s.RenewalDate,
		DaysLeft:       daysLeft,
		Timestamp:      time.Now(),
	}
}

func (m *ReminderMessage) ToJSON() ([]byte, error) {
	return json.Marshal(m)
}

func ReminderMessageFromJSON(data []byte) (*ReminderMessage, error) {
	var msg ReminderMessage
	if err := json.Unmarshal(data, &msg); err != nil {
		return nil, err
	}
	return &msg, nil
}

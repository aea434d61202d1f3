package worker

import (
	"context"
	"fmt"

	"expensewise/internal/amqp"
	"expensewise/internal/core"
)

// Notifier delivers a human readable reminder.
type Notifier interface {
	Notify(ctx context.Context, text string) error
}

// LogNotifier writes reminders to the structured log.
type LogNotifier struct{}

func (LogNotifier) Notify(ctx context.Context, text string) error {
	workerLog().InfoContext(ctx, "Subscription reminder", "text", text)
	return nil
}

// ReminderWorker turns reminder messages into notifications.
type ReminderWorker struct {
	notifier Notifier
}

// NewReminderWorker creates a reminder worker. A nil notifier logs.
func NewReminderWorker(n Notifier) *ReminderWorker {
	if n == nil {
		n = LogNotifier{}
	}
	return &ReminderWorker{notifier: n}
}

// HandleReminder processes a single reminder message from AMQP.
func (w *ReminderWorker) HandleReminder(ctx context.Context, msg *amqp.ReminderMessage) error {
	if msg.SubscriptionID == "" {
		return fmt.Errorf("%w: reminder without subscription id", amqp.ErrMalformed)
	}
	if err := w.notifier.Notify(ctx, ReminderText(msg)); err != nil {
		return fmt.Errorf("notify: %w", err)
	}
	return nil
}

// ReminderText renders msg, e.g. "Netflix renews tomorrow (₹649)".
func ReminderText(msg *amqp.ReminderMessage) string {
	symbol := msg.Currency
	if cur, ok := core.CurrencyByCode(msg.Currency); ok {
		symbol = cur.Symbol
	}
	amount := core.FormatAmount(symbol, msg.Amount, 2)

	var when string
	switch msg.DaysLeft {
	case 0:
		when = "today"
	case 1:
		when = "tomorrow"
	default:
		when = fmt.Sprintf("in %d days", msg.DaysLeft)
	}
	return fmt.Sprintf("%s renews %s (%s)", msg.Name, when, amount)
}

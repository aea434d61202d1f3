package worker

import (
	"context"
	"errors"
	"testing"

	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"expensewise/internal/amqp"
	"expensewise/internal/core"
	"expensewise/internal/sheets"
)

type captureNotifier struct {
	texts []string
	err   error
}

func (c *captureNotifier) Notify(_ context.Context, text string) error {
	if c.err != nil {
		return c.err
	}
	c.texts = append(c.texts, text)
	return nil
}

func testRowFor(id string) sheets.ExpenseRow {
	return sheets.ExpenseRow{Date: "2025-01-01", Category: "Food & Dining", Amount: "1", ID: id}
}

func reminder(days int, currency string) *amqp.ReminderMessage {
	sub := core.Subscription{ID: "s1", Name: "Netflix", Amount: decimal.NewFromInt(1649), RenewalDate: core.NewDate(2025, 3, 12)}
	return amqp.NewReminderMessage(sub, currency, days)
}

func TestReminderText(t *testing.T) {
	tests := []struct {
		days     int
		currency string
		want     string
	}{
		{0, "INR", "Netflix renews today (₹1,649)"},
		{1, "USD", "Netflix renews tomorrow ($1,649)"},
		{3, "XYZ", "Netflix renews in 3 days (XYZ1,649)"},
	}
	for _, tt := range tests {
		assert.Equal(t, tt.want, ReminderText(reminder(tt.days, tt.currency)))
	}
}

func TestHandleReminder(t *testing.T) {
	ctx := context.Background()
	n := &captureNotifier{}
	w := NewReminderWorker(n)

	require.NoError(t, w.HandleReminder(ctx, reminder(2, "INR")))
	assert.Equal(t, []string{"Netflix renews in 2 days (₹1,649)"}, n.texts)

	err := w.HandleReminder(ctx, &amqp.ReminderMessage{})
	assert.ErrorIs(t, err, amqp.ErrMalformed)

	n.err = errors.New("smtp down")
	err = w.HandleReminder(ctx, reminder(1, "INR"))
	require.Error(t, err)
	assert.False(t, errors.Is(err, amqp.ErrMalformed), "delivery failures should be retried")
}

func TestNewReminderWorkerDefaultsToLog(t *testing.T) {
	w := NewReminderWorker(nil)
	assert.NoError(t, w.HandleReminder(context.Background(), reminder(1, "INR")))
}

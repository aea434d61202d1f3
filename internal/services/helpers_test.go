package services

import (
	"context"
	"fmt"
	"sync"
	"time"

	"github.com/shopspring/decimal"

	"expensewise/internal/amqp"
	"expensewise/internal/core"
	"expensewise/internal/storage"
	"expensewise/internal/taxonomy"
)

// testNow is a Monday afternoon.
var testNow = time.Date(2025, 3, 10, 15, 30, 0, 0, time.UTC)

type fakePublisher struct {
	mu        sync.Mutex
	changes   []*amqp.ChangeMessage
	reminders []*amqp.ReminderMessage
	err       error
}

func (p *fakePublisher) PublishChange(_ context.Context, msg *amqp.ChangeMessage) error {
	p.mu.Lock()
	defer p.mu.Unlock()
	if p.err != nil {
		return p.err
	}
	p.changes = append(p.changes, msg)
	return nil
}

func (p *fakePublisher) PublishReminder(_ context.Context, msg *amqp.ReminderMessage) error {
	p.mu.Lock()
	defer p.mu.Unlock()
	if p.err != nil {
		return p.err
	}
	p.reminders = append(p.reminders, msg)
	return nil
}

// ops renders published changes as "namespace:op:id".
func (p *fakePublisher) ops() []string {
	p.mu.Lock()
	defer p.mu.Unlock()
	out := make([]string, len(p.changes))
	for i, c := range p.changes {
		out[i] = fmt.Sprintf("%s:%s:%s", c.Namespace, c.Op, c.ID)
	}
	return out
}

type clock struct{ t time.Time }

func (c *clock) now() time.Time { return c.t }

type fixture struct {
	deps  Deps
	store *storage.Store
	pub   *fakePublisher
	clock *clock
}

func newFixture() *fixture {
	store := storage.NewStore(storage.NewMemoryKV())
	pub := &fakePublisher{}
	clk := &clock{t: testNow}
	n := 0
	return &fixture{
		deps: Deps{
			Store:     store,
			Publisher: pub,
			Now:       clk.now,
			NewID: func() string {
				n++
				return fmt.Sprintf("id-%d", n)
			},
		},
		store: store,
		pub:   pub,
		clock: clk,
	}
}

func dec(s string) decimal.Decimal { return decimal.RequireFromString(s) }

func expenseDraft(amount string, c taxonomy.Category, d core.Date) core.ExpenseDraft {
	return core.ExpenseDraft{
		Amount:        dec(amount),
		Category:      c,
		PaymentMethod: core.UPI,
		Date:          d,
	}
}

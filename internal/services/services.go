// Package services implements the lifecycle operations of every entity
// kind on top of the entity store. Each write assigns identity and
// timestamps, persists, and then announces the change on the optional
// publisher. Publishing is best effort: a failure is logged and never
// fails the write that already completed.
package services

import (
	"context"
	"encoding/json"
	"log/slog"
	"time"

	"github.com/google/uuid"

	"expensewise/internal/amqp"
	"expensewise/internal/storage"
)

// ChangePublisher announces completed writes.
type ChangePublisher interface {
	PublishChange(ctx context.Context, msg *amqp.ChangeMessage) error
}

// ReminderPublisher announces upcoming subscription renewals.
type ReminderPublisher interface {
	PublishReminder(ctx context.Context, msg *amqp.ReminderMessage) error
}

// Deps are the collaborators shared by every service. Publisher, Now and
// NewID are optional.
type Deps struct {
	Store     *storage.Store
	Publisher ChangePublisher
	Now       func() time.Time
	NewID     func() string
}

type base struct {
	store *storage.Store
	pub   ChangePublisher
	now   func() time.Time
	newID func() string
}

func newBase(d Deps) base {
	b := base{store: d.Store, pub: d.Publisher, now: d.Now, newID: d.NewID}
	if b.now == nil {
		b.now = time.Now
	}
	if b.newID == nil {
		b.newID = uuid.NewString
	}
	return b
}

func (b base) publishPut(ctx context.Context, ns storage.Namespace, id string, v any) {
	payload, err := json.Marshal(v)
	if err != nil {
		slog.ErrorContext(ctx, "Failed to encode change payload", "namespace", ns, "id", id, "error", err)
		return
	}
	b.publish(ctx, amqp.NewChangeMessage(string(ns), id, amqp.OpPut, payload))
}

func (b base) publishDelete(ctx context.Context, ns storage.Namespace, id string) {
	b.publish(ctx, amqp.NewChangeMessage(string(ns), id, amqp.OpDelete, nil))
}

func (b base) publishClear(ctx context.Context, ns storage.Namespace) {
	b.publish(ctx, amqp.NewChangeMessage(string(ns), "", amqp.OpClear, nil))
}

func (b base) publish(ctx context.Context, msg *amqp.ChangeMessage) {
	if b.pub == nil {
		return
	}
	if err := b.pub.PublishChange(ctx, msg); err != nil {
		// Don't fail the request - the write already completed
		slog.ErrorContext(ctx, "Failed to publish change message",
			"namespace", msg.Namespace, "id", msg.ID, "op", msg.Op, "error", err)
	}
}

// Services bundles every service over one set of dependencies.
type Services struct {
	Expenses      *ExpenseService
	Subscriptions *SubscriptionService
	Loans         *LoanService
	Profile       *ProfileService
	Budgets       *BudgetService
	Filters       *FilterService
	Reset         *ResetService
	Analytics     *AnalyticsService
	Import        *ImportService
}

func New(d Deps) *Services {
	return &Services{
		Expenses:      NewExpenseService(d),
		Subscriptions: NewSubscriptionService(d),
		Loans:         NewLoanService(d),
		Profile:       NewProfileService(d),
		Budgets:       NewBudgetService(d),
		Filters:       NewFilterService(d),
		Reset:         NewResetService(d),
		Analytics:     NewAnalyticsService(d),
		Import:        NewImportService(d),
	}
}

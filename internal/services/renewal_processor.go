package services

import (
	"context"
	"fmt"
	"log/slog"
	"sync"
	"time"

	"expensewise/internal/amqp"
	"expensewise/internal/analytics"
	"expensewise/internal/core"
	"expensewise/internal/log"
	"expensewise/internal/storage"
)

func renewalLog() *slog.Logger { return log.ForComponent(log.ComponentRenewal) }

// RenewalProcessorConfig holds configuration for the renewal processor
type RenewalProcessorConfig struct {
	// Interval is how often subscriptions are checked (default: 1h)
	Interval time.Duration
}

// DefaultRenewalProcessorConfig returns sensible defaults
func DefaultRenewalProcessorConfig() RenewalProcessorConfig {
	return RenewalProcessorConfig{Interval: time.Hour}
}

// RenewalReport summarizes one processing pass.
type RenewalReport struct {
	Checked   int
	Advanced  int
	Reminders int
}

// RenewalProcessor keeps active subscriptions' renewal dates current and
// publishes a reminder once per renewal when it enters the reminder window.
type RenewalProcessor struct {
	base
	reminders ReminderPublisher
	config    RenewalProcessorConfig

	remindedMu sync.Mutex
	reminded   map[string]core.Date

	// Lifecycle management
	mu      sync.Mutex
	running bool
	stopCh  chan struct{}
	doneCh  chan struct{}
}

// NewRenewalProcessor creates a renewal processor. reminders may be nil.
func NewRenewalProcessor(d Deps, reminders ReminderPublisher, config RenewalProcessorConfig) *RenewalProcessor {
	if config.Interval <= 0 {
		config.Interval = DefaultRenewalProcessorConfig().Interval
	}
	return &RenewalProcessor{
		base:      newBase(d),
		reminders: reminders,
		config:    config,
		reminded:  make(map[string]core.Date),
	}
}

// ProcessRenewals runs one pass over every subscription.
func (p *RenewalProcessor) ProcessRenewals(ctx context.Context) (RenewalReport, error) {
	if p.store == nil {
		return RenewalReport{}, fmt.Errorf("processor not properly initialized")
	}
	now := p.now()
	today := core.DateOf(now)

	subs, err := p.store.Subscriptions.GetAll(ctx)
	if err != nil {
		return RenewalReport{}, fmt.Errorf("list subscriptions: %w", err)
	}

	rep := RenewalReport{Checked: len(subs)}
	for i, sub := range subs {
		if !sub.Active {
			continue
		}
		strategy, err := GetRenewalStrategy(sub.Frequency)
		if err != nil {
			renewalLog().ErrorContext(ctx, "Skipping subscription with unknown frequency",
				"id", sub.ID, "frequency", sub.Frequency, "error", err)
			continue
		}
		next := strategy.Advance(sub.RenewalDate, today)
		if next.Equal(sub.RenewalDate) {
			continue
		}
		previous := sub.RenewalDate
		sub.RenewalDate = next
		if err := p.store.Subscriptions.Put(ctx, sub); err != nil {
			renewalLog().ErrorContext(ctx, "Failed to advance subscription renewal",
				"id", sub.ID, "error", err)
			continue
		}
		subs[i] = sub
		rep.Advanced++
		p.publishPut(ctx, storage.Subscriptions, sub.ID, sub)
		renewalLog().InfoContext(ctx, "Advanced subscription renewal",
			"id", sub.ID, "name", sub.Name, "from", previous, "to", next)
	}

	rep.Reminders = p.remind(ctx, subs, now)

	renewalLog().InfoContext(ctx, "Renewal processing complete",
		log.FieldCount, rep.Checked, "advanced", rep.Advanced, "reminders", rep.Reminders)
	return rep, nil
}

func (p *RenewalProcessor) remind(ctx context.Context, subs []core.Subscription, now time.Time) int {
	if p.reminders == nil {
		return 0
	}
	upcoming := analytics.UpcomingRenewals(subs, now)
	if len(upcoming) == 0 {
		return 0
	}
	profile, err := p.profileOrDefault(ctx)
	if err != nil {
		renewalLog().WarnContext(ctx, "Failed to load profile for reminders", "error", err)
		profile.CurrencyCode = core.Currencies[0].Code
	}

	p.remindedMu.Lock()
	defer p.remindedMu.Unlock()

	sent := 0
	for _, r := range upcoming {
		sub := r.Subscription
		if last, ok := p.reminded[sub.ID]; ok && last.Equal(sub.RenewalDate) {
			continue
		}
		msg := amqp.NewReminderMessage(sub, profile.CurrencyCode, r.DaysLeft)
		if err := p.reminders.PublishReminder(ctx, msg); err != nil {
			renewalLog().ErrorContext(ctx, "Failed to publish renewal reminder",
				"id", sub.ID, "error", err)
			continue
		}
		p.reminded[sub.ID] = sub.RenewalDate
		sent++
	}
	return sent
}

// Start begins the processing loop. Returns an error if already running.
func (p *RenewalProcessor) Start(ctx context.Context) error {
	p.mu.Lock()
	if p.running {
		p.mu.Unlock()
		return fmt.Errorf("renewal processor is already running")
	}
	p.running = true
	p.stopCh = make(chan struct{})
	p.doneCh = make(chan struct{})
	stop, done := p.stopCh, p.doneCh
	p.mu.Unlock()

	go p.runLoop(ctx, stop, done)

	renewalLog().InfoContext(ctx, "Renewal processor started", "interval", p.config.Interval)
	return nil
}

// Stop gracefully stops the processor and waits for completion. Only the
// first of several concurrent calls signals the loop; the others return
// immediately.
func (p *RenewalProcessor) Stop(ctx context.Context) error {
	p.mu.Lock()
	if !p.running {
		p.mu.Unlock()
		return nil
	}
	p.running = false
	stop, done := p.stopCh, p.doneCh
	p.stopCh, p.doneCh = nil, nil
	p.mu.Unlock()

	close(stop)

	select {
	case <-done:
		renewalLog().InfoContext(ctx, "Renewal processor stopped gracefully")
	case <-ctx.Done():
		renewalLog().WarnContext(ctx, "Renewal processor stop timed out")
		return ctx.Err()
	}
	return nil
}

// IsRunning returns whether the processor is currently running
func (p *RenewalProcessor) IsRunning() bool {
	p.mu.Lock()
	defer p.mu.Unlock()
	return p.running
}

func (p *RenewalProcessor) runLoop(ctx context.Context, stop <-chan struct{}, done chan<- struct{}) {
	defer close(done)

	ticker := time.NewTicker(p.config.Interval)
	defer ticker.Stop()

	// Process immediately on startup
	p.tick(ctx)

	for {
		select {
		case <-stop:
			return
		case <-ctx.Done():
			return
		case <-ticker.C:
			p.tick(ctx)
		}
	}
}

func (p *RenewalProcessor) tick(ctx context.Context) {
	if _, err := p.ProcessRenewals(ctx); err != nil {
		renewalLog().ErrorContext(ctx, "Renewal processing failed", "error", err)
	}
}

package services

import (
	"context"
	"fmt"

	"expensewise/internal/analytics"
	"expensewise/internal/core"
	"expensewise/internal/storage"
)

// SubscriptionService manages recurring subscriptions.
type SubscriptionService struct {
	base
}

func NewSubscriptionService(d Deps) *SubscriptionService {
	return &SubscriptionService{base: newBase(d)}
}

func (s *SubscriptionService) Create(ctx context.Context, d core.SubscriptionDraft) (core.Subscription, error) {
	sub, err := core.NewSubscription(d, s.newID(), s.now())
	if err != nil {
		return core.Subscription{}, err
	}
	return s.save(ctx, sub)
}

func (s *SubscriptionService) Update(ctx context.Context, id string, d core.SubscriptionDraft) (core.Subscription, error) {
	current, err := s.store.Subscriptions.GetByID(ctx, id)
	if err != nil {
		return core.Subscription{}, err
	}
	sub, err := d.ApplyTo(current)
	if err != nil {
		return core.Subscription{}, err
	}
	return s.save(ctx, sub)
}

// SetActive pauses or resumes a subscription.
func (s *SubscriptionService) SetActive(ctx context.Context, id string, active bool) (core.Subscription, error) {
	sub, err := s.store.Subscriptions.GetByID(ctx, id)
	if err != nil {
		return core.Subscription{}, err
	}
	sub.Active = active
	return s.save(ctx, sub)
}

// Toggle flips the active flag.
func (s *SubscriptionService) Toggle(ctx context.Context, id string) (core.Subscription, error) {
	sub, err := s.store.Subscriptions.GetByID(ctx, id)
	if err != nil {
		return core.Subscription{}, err
	}
	sub.Active = !sub.Active
	return s.save(ctx, sub)
}

func (s *SubscriptionService) save(ctx context.Context, sub core.Subscription) (core.Subscription, error) {
	if err := s.store.Subscriptions.Put(ctx, sub); err != nil {
		return core.Subscription{}, fmt.Errorf("save subscription: %w", err)
	}
	s.publishPut(ctx, storage.Subscriptions, sub.ID, sub)
	return sub, nil
}

func (s *SubscriptionService) Get(ctx context.Context, id string) (core.Subscription, error) {
	return s.store.Subscriptions.GetByID(ctx, id)
}

// List returns every subscription, soonest renewal first.
func (s *SubscriptionService) List(ctx context.Context) ([]core.Subscription, error) {
	all, err := s.store.Subscriptions.GetAll(ctx)
	if err != nil {
		return nil, fmt.Errorf("list subscriptions: %w", err)
	}
	analytics.SortByRenewal(all)
	return all, nil
}

func (s *SubscriptionService) Delete(ctx context.Context, id string) error {
	if _, err := s.store.Subscriptions.GetByID(ctx, id); err != nil {
		return err
	}
	if err := s.store.Subscriptions.Delete(ctx, id); err != nil {
		return fmt.Errorf("delete subscription: %w", err)
	}
	s.publishDelete(ctx, storage.Subscriptions, id)
	return nil
}

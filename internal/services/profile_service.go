package services

import (
	"context"
	"errors"
	"fmt"

	"expensewise/internal/core"
	"expensewise/internal/storage"
)

// ProfileService manages the single user profile.
type ProfileService struct {
	base
}

func NewProfileService(d Deps) *ProfileService {
	return &ProfileService{base: newBase(d)}
}

// Get returns the profile, or an error matching core.ErrNotFound before
// onboarding.
func (s *ProfileService) Get(ctx context.Context) (core.Profile, error) {
	return s.store.Profile(ctx)
}

// NeedsOnboarding reports whether the setup flow has not completed yet.
func (s *ProfileService) NeedsOnboarding(ctx context.Context) (bool, error) {
	p, err := s.store.Profile(ctx)
	if errors.Is(err, storage.ErrNotFound) {
		return true, nil
	}
	if err != nil {
		return false, err
	}
	return !p.OnboardingCompleted, nil
}

// Setup creates or completes the profile at the end of onboarding.
func (s *ProfileService) Setup(ctx context.Context, d core.ProfileDraft) (core.Profile, error) {
	current, err := s.store.Profile(ctx)
	switch {
	case errors.Is(err, storage.ErrNotFound):
		current = core.Profile{ID: s.newID(), CreatedAt: s.now()}
	case err != nil:
		return core.Profile{}, err
	}
	p, err := d.ApplyTo(current)
	if err != nil {
		return core.Profile{}, err
	}
	p.OnboardingCompleted = true
	return s.save(ctx, p)
}

// Update applies settings changes to an existing profile.
func (s *ProfileService) Update(ctx context.Context, d core.ProfileDraft) (core.Profile, error) {
	current, err := s.store.Profile(ctx)
	if err != nil {
		return core.Profile{}, err
	}
	p, err := d.ApplyTo(current)
	if err != nil {
		return core.Profile{}, err
	}
	return s.save(ctx, p)
}

func (s *ProfileService) save(ctx context.Context, p core.Profile) (core.Profile, error) {
	if err := s.store.SetProfile(ctx, p); err != nil {
		return core.Profile{}, fmt.Errorf("save profile: %w", err)
	}
	s.publishPut(ctx, storage.Users, storage.ProfileID, p)
	return p, nil
}

// profileOrDefault returns the stored profile, or an unnamed profile in
// the default currency when none exists yet.
func (b base) profileOrDefault(ctx context.Context) (core.Profile, error) {
	p, err := b.store.Profile(ctx)
	if errors.Is(err, storage.ErrNotFound) {
		cur := core.Currencies[0]
		return core.Profile{CurrencyCode: cur.Code, CurrencySymbol: cur.Symbol}, nil
	}
	return p, err
}

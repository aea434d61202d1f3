package storage

import (
	"context"
	"fmt"

	"golang.org/x/sync/errgroup"

	"expensewise/internal/core"
)

// ProfileID is the fixed id of the singleton profile record.
const ProfileID = "profile"

// Store bundles the typed collections of every entity kind over one KV.
type Store struct {
	kv KV

	Expenses      *Collection[core.Expense]
	Subscriptions *Collection[core.Subscription]
	Loans         *Collection[core.Loan]
	Budgets       *Collection[core.Budget]
	Filters       *Collection[core.SavedFilter]
	users         *Collection[core.Profile]
}

func NewStore(kv KV) *Store {
	return &Store{
		kv:            kv,
		Expenses:      NewCollection(kv, Expenses, func(e core.Expense) string { return e.ID }),
		Subscriptions: NewCollection(kv, Subscriptions, func(s core.Subscription) string { return s.ID }),
		Loans:         NewCollection(kv, Loans, func(l core.Loan) string { return l.ID }),
		Budgets:       NewCollection(kv, Budgets, func(b core.Budget) string { return b.ID }),
		Filters:       NewCollection(kv, Filters, func(f core.SavedFilter) string { return f.ID }),
		users:         NewCollection(kv, Users, func(core.Profile) string { return ProfileID }),
	}
}

// Profile returns the installation's profile, or an error matching
// ErrNotFound before onboarding.
func (s *Store) Profile(ctx context.Context) (core.Profile, error) {
	return s.users.GetByID(ctx, ProfileID)
}

// SetProfile replaces the singleton profile.
func (s *Store) SetProfile(ctx context.Context, p core.Profile) error {
	return s.users.Put(ctx, p)
}

// ClearAll wipes every namespace. Namespaces are cleared independently;
// the first failure is returned after all attempts finish.
func (s *Store) ClearAll(ctx context.Context) error {
	var g errgroup.Group
	for _, ns := range Namespaces() {
		g.Go(func() error {
			if err := s.kv.Clear(ctx, ns); err != nil {
				return fmt.Errorf("clear %s: %w", ns, err)
			}
			return nil
		})
	}
	return g.Wait()
}

func (s *Store) Close() error {
	return s.kv.Close()
}

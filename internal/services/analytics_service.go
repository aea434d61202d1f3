package services

import (
	"context"
	"fmt"

	"expensewise/internal/analytics"
	"expensewise/internal/core"
)

// AnalyticsService loads the data behind the dashboard and analytics views.
type AnalyticsService struct {
	base
}

func NewAnalyticsService(d Deps) *AnalyticsService {
	return &AnalyticsService{base: newBase(d)}
}

func (s *AnalyticsService) load(ctx context.Context) (core.Profile, []core.Expense, error) {
	p, err := s.profileOrDefault(ctx)
	if err != nil {
		return core.Profile{}, nil, fmt.Errorf("load profile: %w", err)
	}
	expenses, err := s.store.Expenses.GetAll(ctx)
	if err != nil {
		return core.Profile{}, nil, fmt.Errorf("list expenses: %w", err)
	}
	return p, expenses, nil
}

func (s *AnalyticsService) Dashboard(ctx context.Context, period analytics.Period) (analytics.DashboardView, error) {
	p, expenses, err := s.load(ctx)
	if err != nil {
		return analytics.DashboardView{}, err
	}
	return analytics.Dashboard(p, expenses, period, s.now()), nil
}

func (s *AnalyticsService) Monthly(ctx context.Context) (analytics.MonthlyView, error) {
	p, expenses, err := s.load(ctx)
	if err != nil {
		return analytics.MonthlyView{}, err
	}
	return analytics.MonthlyAnalytics(p, expenses, s.now()), nil
}

// Loans returns the loan ledger with each view newest first.
func (s *AnalyticsService) Loans(ctx context.Context) (analytics.LoanLedger, error) {
	loans, err := s.store.Loans.GetAll(ctx)
	if err != nil {
		return analytics.LoanLedger{}, fmt.Errorf("list loans: %w", err)
	}
	analytics.SortByCreatedDesc(loans)
	return analytics.PartitionLoans(loans), nil
}

// SubscriptionOverview is the rollup behind the subscriptions screen.
type SubscriptionOverview struct {
	Summary  analytics.SubscriptionSummary `json:"summary"`
	Upcoming []analytics.Renewal           `json:"upcoming"`
}

func (s *AnalyticsService) Subscriptions(ctx context.Context) (SubscriptionOverview, error) {
	subs, err := s.store.Subscriptions.GetAll(ctx)
	if err != nil {
		return SubscriptionOverview{}, fmt.Errorf("list subscriptions: %w", err)
	}
	return SubscriptionOverview{
		Summary:  analytics.SubscriptionTotals(subs),
		Upcoming: analytics.UpcomingRenewals(subs, s.now()),
	}, nil
}

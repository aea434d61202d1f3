package services

import (
	"context"
	"fmt"
	"sort"

	"expensewise/internal/analytics"
	"expensewise/internal/core"
	"expensewise/internal/storage"
)

// BudgetService manages budgets. Budgets are never edited: delete and
// create a new one instead.
type BudgetService struct {
	base
}

func NewBudgetService(d Deps) *BudgetService {
	return &BudgetService{base: newBase(d)}
}

func (s *BudgetService) Create(ctx context.Context, d core.BudgetDraft) (core.Budget, error) {
	b, err := core.NewBudget(d, s.newID(), s.now())
	if err != nil {
		return core.Budget{}, err
	}
	if err := s.store.Budgets.Put(ctx, b); err != nil {
		return core.Budget{}, fmt.Errorf("save budget: %w", err)
	}
	s.publishPut(ctx, storage.Budgets, b.ID, b)
	return b, nil
}

// List returns budgets in creation order.
func (s *BudgetService) List(ctx context.Context) ([]core.Budget, error) {
	all, err := s.store.Budgets.GetAll(ctx)
	if err != nil {
		return nil, fmt.Errorf("list budgets: %w", err)
	}
	sort.SliceStable(all, func(i, j int) bool { return all[i].CreatedAt.Before(all[j].CreatedAt) })
	return all, nil
}

func (s *BudgetService) Delete(ctx context.Context, id string) error {
	if _, err := s.store.Budgets.GetByID(ctx, id); err != nil {
		return err
	}
	if err := s.store.Budgets.Delete(ctx, id); err != nil {
		return fmt.Errorf("delete budget: %w", err)
	}
	s.publishDelete(ctx, storage.Budgets, id)
	return nil
}

// Progress rates every budget against the expenses of its current scope.
func (s *BudgetService) Progress(ctx context.Context) ([]analytics.BudgetStatus, error) {
	budgets, err := s.List(ctx)
	if err != nil {
		return nil, err
	}
	expenses, err := s.store.Expenses.GetAll(ctx)
	if err != nil {
		return nil, fmt.Errorf("list expenses: %w", err)
	}
	return analytics.BudgetProgress(budgets, expenses, s.now()), nil
}

// FilterService manages saved expense filters.
type FilterService struct {
	base
}

func NewFilterService(d Deps) *FilterService {
	return &FilterService{base: newBase(d)}
}

func (s *FilterService) Create(ctx context.Context, d core.FilterDraft) (core.SavedFilter, error) {
	f, err := core.NewSavedFilter(d, s.newID(), s.now())
	if err != nil {
		return core.SavedFilter{}, err
	}
	if err := s.store.Filters.Put(ctx, f); err != nil {
		return core.SavedFilter{}, fmt.Errorf("save filter: %w", err)
	}
	s.publishPut(ctx, storage.Filters, f.ID, f)
	return f, nil
}

// List returns saved filters sorted by name.
func (s *FilterService) List(ctx context.Context) ([]core.SavedFilter, error) {
	all, err := s.store.Filters.GetAll(ctx)
	if err != nil {
		return nil, fmt.Errorf("list filters: %w", err)
	}
	sort.SliceStable(all, func(i, j int) bool { return all[i].Name < all[j].Name })
	return all, nil
}

func (s *FilterService) Delete(ctx context.Context, id string) error {
	if _, err := s.store.Filters.GetByID(ctx, id); err != nil {
		return err
	}
	if err := s.store.Filters.Delete(ctx, id); err != nil {
		return fmt.Errorf("delete filter: %w", err)
	}
	s.publishDelete(ctx, storage.Filters, id)
	return nil
}

// Apply returns the expenses matching saved filter id, newest first.
func (s *FilterService) Apply(ctx context.Context, id string) ([]core.Expense, error) {
	f, err := s.store.Filters.GetByID(ctx, id)
	if err != nil {
		return nil, err
	}
	all, err := s.store.Expenses.GetAll(ctx)
	if err != nil {
		return nil, fmt.Errorf("list expenses: %w", err)
	}
	analytics.SortByDateDesc(all)
	return analytics.ApplyFilter(all, f.Filters), nil
}

// ResetService wipes every stored entity.
type ResetService struct {
	base
}

func NewResetService(d Deps) *ResetService {
	return &ResetService{base: newBase(d)}
}

// ClearAll deletes the profile and every collection.
func (s *ResetService) ClearAll(ctx context.Context) error {
	if err := s.store.ClearAll(ctx); err != nil {
		return fmt.Errorf("clear all data: %w", err)
	}
	for _, ns := range storage.Namespaces() {
		s.publishClear(ctx, ns)
	}
	return nil
}

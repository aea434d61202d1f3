package services

import (
	"context"
	"fmt"

	"expensewise/internal/analytics"
	"expensewise/internal/core"
	"expensewise/internal/storage"
)

// ExpenseService manages expenses.
type ExpenseService struct {
	base
}

func NewExpenseService(d Deps) *ExpenseService {
	return &ExpenseService{base: newBase(d)}
}

// Create validates d and stores a new expense.
func (s *ExpenseService) Create(ctx context.Context, d core.ExpenseDraft) (core.Expense, error) {
	e, err := core.NewExpense(d, s.newID(), s.now())
	if err != nil {
		return core.Expense{}, err
	}
	if err := s.store.Expenses.Put(ctx, e); err != nil {
		return core.Expense{}, fmt.Errorf("save expense: %w", err)
	}
	s.publishPut(ctx, storage.Expenses, e.ID, e)
	return e, nil
}

// Update rewrites the editable fields of expense id.
func (s *ExpenseService) Update(ctx context.Context, id string, d core.ExpenseDraft) (core.Expense, error) {
	current, err := s.store.Expenses.GetByID(ctx, id)
	if err != nil {
		return core.Expense{}, err
	}
	e, err := d.ApplyTo(current, s.now())
	if err != nil {
		return core.Expense{}, err
	}
	if err := s.store.Expenses.Put(ctx, e); err != nil {
		return core.Expense{}, fmt.Errorf("save expense: %w", err)
	}
	s.publishPut(ctx, storage.Expenses, e.ID, e)
	return e, nil
}

func (s *ExpenseService) Get(ctx context.Context, id string) (core.Expense, error) {
	return s.store.Expenses.GetByID(ctx, id)
}

// List returns every expense, newest first.
func (s *ExpenseService) List(ctx context.Context) ([]core.Expense, error) {
	all, err := s.store.Expenses.GetAll(ctx)
	if err != nil {
		return nil, fmt.Errorf("list expenses: %w", err)
	}
	analytics.SortByDateDesc(all)
	return all, nil
}

// Search returns the expenses matching query, newest first.
func (s *ExpenseService) Search(ctx context.Context, query string) ([]core.Expense, error) {
	all, err := s.List(ctx)
	if err != nil {
		return nil, err
	}
	return analytics.Search(all, query), nil
}

// Filter returns the expenses matching f, newest first.
func (s *ExpenseService) Filter(ctx context.Context, f core.FilterCriteria) ([]core.Expense, error) {
	all, err := s.List(ctx)
	if err != nil {
		return nil, err
	}
	return analytics.ApplyFilter(all, f), nil
}

func (s *ExpenseService) Delete(ctx context.Context, id string) error {
	if _, err := s.store.Expenses.GetByID(ctx, id); err != nil {
		return err
	}
	if err := s.store.Expenses.Delete(ctx, id); err != nil {
		return fmt.Errorf("delete expense: %w", err)
	}
	s.publishDelete(ctx, storage.Expenses, id)
	return nil
}

// DeleteMany deletes ids independently; see storage.BatchResult.
func (s *ExpenseService) DeleteMany(ctx context.Context, ids []string) storage.BatchResult {
	res := s.store.Expenses.DeleteMany(ctx, ids)
	for _, id := range res.Deleted {
		s.publishDelete(ctx, storage.Expenses, id)
	}
	return res
}

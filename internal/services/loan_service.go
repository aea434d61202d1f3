package services

import (
	"context"
	"fmt"

	"expensewise/internal/analytics"
	"expensewise/internal/core"
	"expensewise/internal/storage"
)

// LoanService manages money lent and borrowed. Settlement is one-way:
// a paid loan cannot be edited back to pending.
type LoanService struct {
	base
}

func NewLoanService(d Deps) *LoanService {
	return &LoanService{base: newBase(d)}
}

func (s *LoanService) Create(ctx context.Context, d core.LoanDraft) (core.Loan, error) {
	l, err := core.NewLoan(d, s.newID(), s.now())
	if err != nil {
		return core.Loan{}, err
	}
	return s.save(ctx, l)
}

// Update edits the descriptive fields; status and payment time are kept.
func (s *LoanService) Update(ctx context.Context, id string, d core.LoanDraft) (core.Loan, error) {
	current, err := s.store.Loans.GetByID(ctx, id)
	if err != nil {
		return core.Loan{}, err
	}
	l, err := d.ApplyTo(current)
	if err != nil {
		return core.Loan{}, err
	}
	return s.save(ctx, l)
}

// MarkPaid settles a pending loan. It returns core.ErrLoanSettled when
// the loan is already paid.
func (s *LoanService) MarkPaid(ctx context.Context, id string) (core.Loan, error) {
	current, err := s.store.Loans.GetByID(ctx, id)
	if err != nil {
		return core.Loan{}, err
	}
	l, err := current.Settle(s.now())
	if err != nil {
		return core.Loan{}, err
	}
	return s.save(ctx, l)
}

func (s *LoanService) save(ctx context.Context, l core.Loan) (core.Loan, error) {
	if err := s.store.Loans.Put(ctx, l); err != nil {
		return core.Loan{}, fmt.Errorf("save loan: %w", err)
	}
	s.publishPut(ctx, storage.Loans, l.ID, l)
	return l, nil
}

func (s *LoanService) Get(ctx context.Context, id string) (core.Loan, error) {
	return s.store.Loans.GetByID(ctx, id)
}

// List returns every loan, newest first.
func (s *LoanService) List(ctx context.Context) ([]core.Loan, error) {
	all, err := s.store.Loans.GetAll(ctx)
	if err != nil {
		return nil, fmt.Errorf("list loans: %w", err)
	}
	analytics.SortByCreatedDesc(all)
	return all, nil
}

func (s *LoanService) Delete(ctx context.Context, id string) error {
	if _, err := s.store.Loans.GetByID(ctx, id); err != nil {
		return err
	}
	if err := s.store.Loans.Delete(ctx, id); err != nil {
		return fmt.Errorf("delete loan: %w", err)
	}
	s.publishDelete(ctx, storage.Loans, id)
	return nil
}

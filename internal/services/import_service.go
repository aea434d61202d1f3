package services

import (
	"context"
	"errors"
	"fmt"
	"strings"

	"expensewise/internal/analytics"
	"expensewise/internal/core"
	"expensewise/internal/sheets"
	"expensewise/internal/storage"
)

// ImportReport summarizes a bulk import. Skipped rows could not be turned
// into an expense; Failed rows were valid but could not be stored.
type ImportReport struct {
	Imported int     `json:"imported"`
	Skipped  int     `json:"skipped"`
	Failed   int     `json:"failed"`
	Errors   []error `json:"-"`
}

// ImportService moves expenses between the store and spreadsheets.
type ImportService struct {
	base
}

func NewImportService(d Deps) *ImportService {
	return &ImportService{base: newBase(d)}
}

// Import reads every row from r and stores it as an expense.
func (s *ImportService) Import(ctx context.Context, r sheets.RowReader) (ImportReport, error) {
	rows, err := r.ReadRows(ctx)
	if err != nil {
		return ImportReport{}, fmt.Errorf("read rows: %w", err)
	}
	return s.ImportRows(ctx, rows, nil), nil
}

// ImportRows stores rows one by one. Rows carrying the ID of an existing
// expense update it in place; other rows become new expenses. onRow, when
// set, is called after each row.
func (s *ImportService) ImportRows(ctx context.Context, rows []sheets.ExpenseRow, onRow func()) ImportReport {
	rep := ImportReport{}
	for _, row := range rows {
		err := s.importRow(ctx, row)
		var formatErr *sheets.ImportFormatError
		switch {
		case err == nil:
			rep.Imported++
		case errors.As(err, &formatErr):
			rep.Skipped++
			rep.Errors = append(rep.Errors, err)
		default:
			rep.Failed++
			rep.Errors = append(rep.Errors, fmt.Errorf("row %d: %w", row.Line, err))
		}
		if onRow != nil {
			onRow()
		}
	}
	return rep
}

func (s *ImportService) importRow(ctx context.Context, row sheets.ExpenseRow) error {
	d, err := row.Draft()
	if err != nil {
		return err
	}
	now := s.now()

	var e core.Expense
	id := strings.TrimSpace(row.ID)
	current, err := s.lookup(ctx, id)
	switch {
	case err != nil:
		return err
	case current != nil:
		e, err = d.ApplyTo(*current, now)
	default:
		if id == "" {
			id = s.newID()
		}
		e, err = core.NewExpense(d, id, now)
	}
	if err != nil {
		return &sheets.ImportFormatError{Line: row.Line, Reason: err.Error()}
	}

	if err := s.store.Expenses.Put(ctx, e); err != nil {
		return fmt.Errorf("save expense: %w", err)
	}
	s.publishPut(ctx, storage.Expenses, e.ID, e)
	return nil
}

func (s *ImportService) lookup(ctx context.Context, id string) (*core.Expense, error) {
	if id == "" {
		return nil, nil
	}
	e, err := s.store.Expenses.GetByID(ctx, id)
	if errors.Is(err, storage.ErrNotFound) {
		return nil, nil
	}
	if err != nil {
		return nil, err
	}
	return &e, nil
}

// Export writes the expenses matching f (all when nil) to w, newest first,
// and returns how many rows were written.
func (s *ImportService) Export(ctx context.Context, w sheets.RowWriter, f *core.FilterCriteria) (int, error) {
	all, err := s.store.Expenses.GetAll(ctx)
	if err != nil {
		return 0, fmt.Errorf("list expenses: %w", err)
	}
	analytics.SortByDateDesc(all)
	if f != nil {
		all = analytics.ApplyFilter(all, *f)
	}
	rows := make([]sheets.ExpenseRow, len(all))
	for i, e := range all {
		rows[i] = sheets.FromExpense(e)
	}
	if err := w.WriteRows(ctx, rows); err != nil {
		return 0, fmt.Errorf("write rows: %w", err)
	}
	return len(rows), nil
}

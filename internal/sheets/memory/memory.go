// Package memory is an in-process spreadsheet used by tests and by the
// worker when no Google spreadsheet is configured.
package memory

import (
	"context"
	"sync"

	"expensewise/internal/sheets"
)

// Sheet holds expense rows in memory.
type Sheet struct {
	mu   sync.Mutex
	rows []sheets.ExpenseRow
}

var (
	_ sheets.RowReader   = (*Sheet)(nil)
	_ sheets.RowWriter   = (*Sheet)(nil)
	_ sheets.RowUpserter = (*Sheet)(nil)
)

// New returns a sheet pre-filled with rows.
func New(rows ...sheets.ExpenseRow) *Sheet {
	s := &Sheet{}
	s.set(rows)
	return s
}

func (s *Sheet) set(rows []sheets.ExpenseRow) {
	s.rows = make([]sheets.ExpenseRow, len(rows))
	for i, r := range rows {
		r.Line = i + 2
		s.rows[i] = r
	}
}

func (s *Sheet) ReadRows(_ context.Context) ([]sheets.ExpenseRow, error) {
	s.mu.Lock()
	defer s.mu.Unlock()
	return append([]sheets.ExpenseRow{}, s.rows...), nil
}

func (s *Sheet) WriteRows(_ context.Context, rows []sheets.ExpenseRow) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.set(rows)
	return nil
}

// UpsertRow replaces the row with the same ID or appends a new one.
func (s *Sheet) UpsertRow(_ context.Context, row sheets.ExpenseRow) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	for i := range s.rows {
		if s.rows[i].ID == row.ID {
			row.Line = s.rows[i].Line
			s.rows[i] = row
			return nil
		}
	}
	row.Line = len(s.rows) + 2
	s.rows = append(s.rows, row)
	return nil
}

// DeleteRow removes the row with id. Unknown ids are ignored.
func (s *Sheet) DeleteRow(_ context.Context, id string) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	for i := range s.rows {
		if s.rows[i].ID == id {
			rest := append(s.rows[:i:i], s.rows[i+1:]...)
			s.set(rest)
			return nil
		}
	}
	return nil
}

// Len returns the number of rows.
func (s *Sheet) Len() int {
	s.mu.Lock()
	defer s.mu.Unlock()
	return len(s.rows)
}

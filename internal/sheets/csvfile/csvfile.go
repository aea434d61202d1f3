// Package csvfile reads and writes expense sheets as local CSV files.
package csvfile

import (
	"context"
	"encoding/csv"
	"errors"
	"fmt"
	"io/fs"
	"os"
	"path/filepath"
	"sync"

	"expensewise/internal/sheets"
)

// File is a CSV expense sheet on disk. A missing file reads as empty.
type File struct {
	mu   sync.Mutex
	path string
}

var (
	_ sheets.RowReader   = (*File)(nil)
	_ sheets.RowWriter   = (*File)(nil)
	_ sheets.RowUpserter = (*File)(nil)
)

func New(path string) *File {
	return &File{path: path}
}

func (f *File) Path() string { return f.path }

func (f *File) ReadRows(_ context.Context) ([]sheets.ExpenseRow, error) {
	f.mu.Lock()
	defer f.mu.Unlock()
	return f.read()
}

func (f *File) WriteRows(_ context.Context, rows []sheets.ExpenseRow) error {
	f.mu.Lock()
	defer f.mu.Unlock()
	return f.write(rows)
}

func (f *File) UpsertRow(_ context.Context, row sheets.ExpenseRow) error {
	f.mu.Lock()
	defer f.mu.Unlock()
	rows, err := f.read()
	if err != nil {
		return err
	}
	for i := range rows {
		if rows[i].ID == row.ID {
			rows[i] = row
			return f.write(rows)
		}
	}
	return f.write(append(rows, row))
}

func (f *File) DeleteRow(_ context.Context, id string) error {
	f.mu.Lock()
	defer f.mu.Unlock()
	rows, err := f.read()
	if err != nil {
		return err
	}
	kept := rows[:0]
	for _, r := range rows {
		if r.ID != id {
			kept = append(kept, r)
		}
	}
	if len(kept) == len(rows) {
		return nil
	}
	return f.write(kept)
}

func (f *File) read() ([]sheets.ExpenseRow, error) {
	fh, err := os.Open(f.path)
	if errors.Is(err, fs.ErrNotExist) {
		return []sheets.ExpenseRow{}, nil
	}
	if err != nil {
		return nil, fmt.Errorf("open %s: %w", f.path, err)
	}
	defer fh.Close()

	r := csv.NewReader(fh)
	r.FieldsPerRecord = -1
	r.TrimLeadingSpace = true
	table, err := r.ReadAll()
	if err != nil {
		return nil, fmt.Errorf("read %s: %w", f.path, err)
	}
	rows, err := sheets.ParseTable(table)
	if err != nil {
		return nil, fmt.Errorf("parse %s: %w", f.path, err)
	}
	return rows, nil
}

// write replaces the file atomically through a temp file in the same dir.
func (f *File) write(rows []sheets.ExpenseRow) error {
	dir := filepath.Dir(f.path)
	if err := os.MkdirAll(dir, 0755); err != nil {
		return fmt.Errorf("create dir: %w", err)
	}
	tmp, err := os.CreateTemp(dir, ".expenses-*.csv")
	if err != nil {
		return fmt.Errorf("create temp file: %w", err)
	}
	defer os.Remove(tmp.Name())

	w := csv.NewWriter(tmp)
	if err := w.WriteAll(sheets.Table(rows)); err != nil {
		tmp.Close()
		return fmt.Errorf("write csv: %w", err)
	}
	if err := tmp.Close(); err != nil {
		return fmt.Errorf("close temp file: %w", err)
	}
	if err := os.Rename(tmp.Name(), f.path); err != nil {
		return fmt.Errorf("replace %s: %w", f.path, err)
	}
	return nil
}

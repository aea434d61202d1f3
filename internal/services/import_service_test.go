package services

import (
	"context"
	"errors"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"expensewise/internal/core"
	"expensewise/internal/sheets"
	"expensewise/internal/sheets/memory"
	"expensewise/internal/taxonomy"
)

func TestImportSkipsBadRows(t *testing.T) {
	ctx := context.Background()
	f := newFixture()
	svc := New(f.deps)

	sheet := memory.New(
		sheets.ExpenseRow{Date: "2025-03-01", Category: "Food & Dining", Amount: "120", Tags: "a, b"},
		sheets.ExpenseRow{Date: "2025-03-02", Category: "Pets", Amount: "5"},
		sheets.ExpenseRow{Date: "2025-03-03", Category: "travel", Amount: "-1"},
		sheets.ExpenseRow{Date: "2025-03-04", Category: "shopping", Amount: "99", PaymentMethod: "card"},
	)

	rep, err := svc.Import.Import(ctx, sheet)
	require.NoError(t, err)
	assert.Equal(t, 2, rep.Imported)
	assert.Equal(t, 2, rep.Skipped)
	assert.Equal(t, 0, rep.Failed)
	require.Len(t, rep.Errors, 2)
	var formatErr *sheets.ImportFormatError
	require.True(t, errors.As(rep.Errors[0], &formatErr))
	assert.Equal(t, 3, formatErr.Line)

	all, err := svc.Expenses.List(ctx)
	require.NoError(t, err)
	require.Len(t, all, 2)
	assert.Equal(t, core.Card, all[0].PaymentMethod)
	assert.Equal(t, core.Cash, all[1].PaymentMethod)
	assert.Equal(t, []string{"a", "b"}, all[1].Tags)
}

func TestImportReusesRowIDs(t *testing.T) {
	ctx := context.Background()
	f := newFixture()
	svc := New(f.deps)

	existing, err := svc.Expenses.Create(ctx, expenseDraft("10", taxonomy.Food, core.NewDate(2025, 3, 1)))
	require.NoError(t, err)

	calls := 0
	rep := svc.Import.ImportRows(ctx, []sheets.ExpenseRow{
		{Line: 2, Date: "2025-03-01", Category: "food", Amount: "15", ID: existing.ID},
		{Line: 3, Date: "2025-03-05", Category: "food", Amount: "20", ID: "from-sheet"},
	}, func() { calls++ })
	assert.Equal(t, 2, rep.Imported)
	assert.Equal(t, 2, calls)

	updated, err := svc.Expenses.Get(ctx, existing.ID)
	require.NoError(t, err)
	assert.True(t, updated.Amount.Equal(dec("15")))
	assert.Equal(t, existing.CreatedAt, updated.CreatedAt)

	_, err = svc.Expenses.Get(ctx, "from-sheet")
	assert.NoError(t, err)
}

func TestExportWritesFilteredRows(t *testing.T) {
	ctx := context.Background()
	f := newFixture()
	svc := New(f.deps)

	_, err := svc.Expenses.Create(ctx, expenseDraft("10", taxonomy.Food, core.NewDate(2025, 3, 1)))
	require.NoError(t, err)
	_, err = svc.Expenses.Create(ctx, expenseDraft("20", taxonomy.Travel, core.NewDate(2025, 3, 2)))
	require.NoError(t, err)

	sheet := memory.New()
	n, err := svc.Import.Export(ctx, sheet, nil)
	require.NoError(t, err)
	assert.Equal(t, 2, n)
	rows, _ := sheet.ReadRows(ctx)
	assert.Equal(t, "Travel & Tickets", rows[0].Category)

	n, err = svc.Import.Export(ctx, sheet, &core.FilterCriteria{Categories: []taxonomy.Category{taxonomy.Food}})
	require.NoError(t, err)
	assert.Equal(t, 1, n)
	assert.Equal(t, 1, sheet.Len())
}

func TestExportImportRoundTrip(t *testing.T) {
	ctx := context.Background()
	src := New(newFixture().deps)
	d := expenseDraft("42.5", taxonomy.Food, core.NewDate(2025, 3, 1))
	d.Subcategory = "Lunch"
	d.Description = "thali"
	d.Tags = []string{"office"}
	original, err := src.Expenses.Create(ctx, d)
	require.NoError(t, err)

	sheet := memory.New()
	_, err = src.Import.Export(ctx, sheet, nil)
	require.NoError(t, err)

	dst := New(newFixture().deps)
	rep, err := dst.Import.Import(ctx, sheet)
	require.NoError(t, err)
	require.Equal(t, 1, rep.Imported)

	got, err := dst.Expenses.Get(ctx, original.ID)
	require.NoError(t, err)
	assert.True(t, got.Amount.Equal(original.Amount))
	assert.Equal(t, original.Subcategory, got.Subcategory)
	assert.Equal(t, original.Description, got.Description)
	assert.Equal(t, original.Tags, got.Tags)
	assert.Equal(t, original.PaymentMethod, got.PaymentMethod)
	assert.True(t, got.Date.Equal(original.Date))
}

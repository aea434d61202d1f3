package sheets

import (
	"errors"
	"testing"
	"time"

	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"expensewise/internal/core"
	"expensewise/internal/taxonomy"
)

func TestFromExpenseAndBack(t *testing.T) {
	e := core.Expense{
		ID:            "e1",
		Amount:        decimal.RequireFromString("249.50"),
		Category:      taxonomy.Food,
		Subcategory:   "Lunch",
		PaymentMethod: core.UPI,
		Description:   "team lunch",
		Tags:          []string{"work", "team"},
		Date:          core.NewDate(2025, 3, 4),
		CreatedAt:     time.Date(2025, 3, 4, 12, 0, 0, 0, time.UTC),
	}

	r := FromExpense(e)
	assert.Equal(t, "Food & Dining", r.Category)
	assert.Equal(t, "2025-03-04", r.Date)
	assert.Equal(t, "work, team", r.Tags)
	assert.Equal(t, []string{"2025-03-04", "Food & Dining", "Lunch", "249.5", "UPI", "team lunch", "work, team", "e1"}, r.Record())

	d, err := r.Draft()
	require.NoError(t, err)
	assert.Equal(t, taxonomy.Food, d.Category)
	assert.True(t, d.Amount.Equal(e.Amount))
	assert.Equal(t, e.Tags, d.Tags)
	assert.True(t, d.Date.Equal(e.Date))
}

func TestDraftDefaultsAndKeys(t *testing.T) {
	d, err := ExpenseRow{Date: "2025-01-02", Category: "travel", Amount: "1,5"}.Draft()
	require.NoError(t, err)
	assert.Equal(t, core.Cash, d.PaymentMethod)
	assert.Equal(t, taxonomy.Travel, d.Category)
	assert.Equal(t, "1.5", d.Amount.String())
	assert.Empty(t, d.Tags)
}

func TestDraftRejectsBadRows(t *testing.T) {
	tests := []struct {
		name string
		row  ExpenseRow
		want string
	}{
		{"missing category", ExpenseRow{Line: 3, Date: "2025-01-02", Amount: "1"}, "missing category"},
		{"missing amount", ExpenseRow{Line: 3, Date: "2025-01-02", Category: "Travel & Tickets"}, "missing amount"},
		{"missing date", ExpenseRow{Line: 3, Category: "Travel & Tickets", Amount: "1"}, "missing date"},
		{"unknown category", ExpenseRow{Line: 3, Date: "2025-01-02", Category: "Pets", Amount: "1"}, "unknown category"},
		{"negative amount", ExpenseRow{Line: 3, Date: "2025-01-02", Category: "Travel & Tickets", Amount: "-4"}, "invalid amount"},
		{"bad date", ExpenseRow{Line: 3, Date: "02/01/2025", Category: "Travel & Tickets", Amount: "1"}, "invalid date"},
		{"bad method", ExpenseRow{Line: 3, Date: "2025-01-02", Category: "Travel & Tickets", Amount: "1", PaymentMethod: "Barter"}, "unknown payment method"},
		{"bad subcategory", ExpenseRow{Line: 3, Date: "2025-01-02", Category: "Travel & Tickets", Amount: "1", Subcategory: "Lunch"}, "subcategory"},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			_, err := tt.row.Draft()
			var fe *ImportFormatError
			require.True(t, errors.As(err, &fe), "want ImportFormatError, got %v", err)
			assert.Equal(t, 3, fe.Line)
			assert.Contains(t, fe.Error(), tt.want)
			assert.Contains(t, fe.Error(), "row 3")
		})
	}
}

func TestParseTable(t *testing.T) {
	rows, err := ParseTable([][]string{
		{"ID", " amount ", "DATE", "Category"},
		{"x1", "10", "2025-01-01", "Travel"},
		{"", "", "", ""},
		{"x2", "20", "2025-01-02"},
	})
	require.NoError(t, err)
	require.Len(t, rows, 2)
	assert.Equal(t, ExpenseRow{Line: 2, ID: "x1", Amount: "10", Date: "2025-01-01", Category: "Travel"}, rows[0])
	assert.Equal(t, 4, rows[1].Line)
	assert.Equal(t, "", rows[1].Category)

	empty, err := ParseTable(nil)
	require.NoError(t, err)
	assert.Empty(t, empty)

	_, err = ParseTable([][]string{{"Date", "Amount"}})
	assert.ErrorIs(t, err, ErrMissingHeader)
}

func TestTableStartsWithHeader(t *testing.T) {
	tbl := Table([]ExpenseRow{{ID: "a"}})
	require.Len(t, tbl, 2)
	assert.Equal(t, Header, tbl[0])
	assert.Equal(t, "a", tbl[1][7])

	tbl[0][0] = "mutated"
	assert.Equal(t, ColDate, Header[0])
}

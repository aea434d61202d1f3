package sheets

import (
	"errors"
	"fmt"
	"strings"

	"expensewise/internal/core"
	"expensewise/internal/taxonomy"
)

// Column names of an expense sheet, in export order.
const (
	ColDate          = "Date"
	ColCategory      = "Category"
	ColSubcategory   = "Subcategory"
	ColAmount        = "Amount"
	ColPaymentMethod = "Payment Method"
	ColDescription   = "Description"
	ColTags          = "Tags"
	ColID            = "ID"
)

// Header is the first row of every sheet written by the adapters.
var Header = []string{
	ColDate, ColCategory, ColSubcategory, ColAmount,
	ColPaymentMethod, ColDescription, ColTags, ColID,
}

// ExpenseRow is one spreadsheet row. Category holds the human label, Tags
// a comma separated list. Line is the 1-based sheet line it was read from,
// zero for rows built in memory.
type ExpenseRow struct {
	Line          int
	Date          string
	Category      string
	Subcategory   string
	Amount        string
	PaymentMethod string
	Description   string
	Tags          string
	ID            string
}

// ImportFormatError reports a row that cannot become an expense.
type ImportFormatError struct {
	Line   int
	Reason string
}

func (e *ImportFormatError) Error() string {
	if e.Line > 0 {
		return fmt.Sprintf("row %d: %s", e.Line, e.Reason)
	}
	return e.Reason
}

// ErrMissingHeader is returned for tables without the required columns.
var ErrMissingHeader = errors.New("sheet header must include Date, Category and Amount")

// FromExpense renders e as a row.
func FromExpense(e core.Expense) ExpenseRow {
	label, err := taxonomy.LabelOf(e.Category)
	if err != nil {
		label = string(e.Category)
	}
	return ExpenseRow{
		Date:          e.Date.String(),
		Category:      label,
		Subcategory:   e.Subcategory,
		Amount:        e.Amount.String(),
		PaymentMethod: string(e.PaymentMethod),
		Description:   e.Description,
		Tags:          strings.Join(e.Tags, ", "),
		ID:            e.ID,
	}
}

// Record returns the cells of r in Header order.
func (r ExpenseRow) Record() []string {
	return []string{r.Date, r.Category, r.Subcategory, r.Amount, r.PaymentMethod, r.Description, r.Tags, r.ID}
}

// Draft maps the row back to an expense draft. Category accepts either
// the label or the key; an empty payment method means cash.
func (r ExpenseRow) Draft() (core.ExpenseDraft, error) {
	fail := func(format string, args ...any) (core.ExpenseDraft, error) {
		return core.ExpenseDraft{}, &ImportFormatError{Line: r.Line, Reason: fmt.Sprintf(format, args...)}
	}

	if strings.TrimSpace(r.Category) == "" {
		return fail("missing category")
	}
	if strings.TrimSpace(r.Amount) == "" {
		return fail("missing amount")
	}
	if strings.TrimSpace(r.Date) == "" {
		return fail("missing date")
	}

	category, err := taxonomy.ParseLabel(r.Category)
	if err != nil {
		if category, err = taxonomy.Parse(strings.TrimSpace(r.Category)); err != nil {
			return fail("unknown category %q", r.Category)
		}
	}
	amount, err := core.ParseAmount(r.Amount)
	if err != nil {
		return fail("invalid amount %q", r.Amount)
	}
	date, err := core.ParseDate(r.Date)
	if err != nil {
		return fail("invalid date %q", r.Date)
	}
	method := core.Cash
	if strings.TrimSpace(r.PaymentMethod) != "" {
		m, ok := core.ParsePaymentMethod(r.PaymentMethod)
		if !ok {
			return fail("unknown payment method %q", r.PaymentMethod)
		}
		method = m
	}

	d := core.ExpenseDraft{
		Amount:        amount,
		Category:      category,
		Subcategory:   strings.TrimSpace(r.Subcategory),
		PaymentMethod: method,
		Description:   strings.TrimSpace(r.Description),
		Tags:          core.SplitTags(r.Tags),
		Date:          date,
	}
	if err := d.Validate(); err != nil {
		return fail("%v", err)
	}
	return d, nil
}

// ParseTable turns a raw table whose first row is a header into rows.
// Columns are matched by name, case-insensitively, in any order; blank
// lines are skipped.
func ParseTable(table [][]string) ([]ExpenseRow, error) {
	if len(table) == 0 {
		return []ExpenseRow{}, nil
	}
	col := map[string]int{}
	for i, h := range table[0] {
		col[strings.ToLower(strings.TrimSpace(h))] = i
	}
	for _, required := range []string{ColDate, ColCategory, ColAmount} {
		if _, ok := col[strings.ToLower(required)]; !ok {
			return nil, ErrMissingHeader
		}
	}
	cell := func(rec []string, name string) string {
		i, ok := col[strings.ToLower(name)]
		if !ok || i >= len(rec) {
			return ""
		}
		return strings.TrimSpace(rec[i])
	}

	out := make([]ExpenseRow, 0, len(table)-1)
	for n, rec := range table[1:] {
		if blank(rec) {
			continue
		}
		out = append(out, ExpenseRow{
			Line:          n + 2,
			Date:          cell(rec, ColDate),
			Category:      cell(rec, ColCategory),
			Subcategory:   cell(rec, ColSubcategory),
			Amount:        cell(rec, ColAmount),
			PaymentMethod: cell(rec, ColPaymentMethod),
			Description:   cell(rec, ColDescription),
			Tags:          cell(rec, ColTags),
			ID:            cell(rec, ColID),
		})
	}
	return out, nil
}

// Table renders rows as a header-first table.
func Table(rows []ExpenseRow) [][]string {
	out := make([][]string, 0, len(rows)+1)
	out = append(out, append([]string(nil), Header...))
	for _, r := range rows {
		out = append(out, r.Record())
	}
	return out
}

func blank(rec []string) bool {
	for _, c := range rec {
		if strings.TrimSpace(c) != "" {
			return false
		}
	}
	return true
}

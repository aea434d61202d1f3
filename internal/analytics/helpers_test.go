package analytics

import (
	"time"

	"github.com/shopspring/decimal"

	"expensewise/internal/core"
	"expensewise/internal/taxonomy"
)

var testNow = time.Date(2025, 3, 10, 15, 30, 0, 0, time.UTC)

func dec(s string) decimal.Decimal { return decimal.RequireFromString(s) }

func expense(id string, amount string, c taxonomy.Category, d core.Date) core.Expense {
	return core.Expense{
		ID:            id,
		Amount:        dec(amount),
		Category:      c,
		PaymentMethod: core.Card,
		Tags:          []string{},
		Date:          d,
	}
}

func ids(es []core.Expense) []string {
	out := make([]string, len(es))
	for i, e := range es {
		out[i] = e.ID
	}
	return out
}

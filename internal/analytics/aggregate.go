package analytics

import (
	"sort"

	"github.com/shopspring/decimal"

	"expensewise/internal/core"
	"expensewise/internal/taxonomy"
)

// CategorySlice is one bucket of a category breakdown.
type CategorySlice struct {
	Category taxonomy.Category `json:"category"`
	Label    string            `json:"label"`
	Amount   decimal.Decimal   `json:"amount"`
	Color    string            `json:"color"`
}

// DayTotal is the amount spent on a single calendar day.
type DayTotal struct {
	Date   core.Date       `json:"date"`
	Amount decimal.Decimal `json:"amount"`
}

// Total sums the amounts of expenses.
func Total(expenses []core.Expense) decimal.Decimal {
	sum := decimal.Zero
	for _, e := range expenses {
		sum = sum.Add(e.Amount)
	}
	return sum
}

// CategoryTotals sums expenses per category.
func CategoryTotals(expenses []core.Expense) map[taxonomy.Category]decimal.Decimal {
	totals := make(map[taxonomy.Category]decimal.Decimal)
	for _, e := range expenses {
		totals[e.Category] = totals[e.Category].Add(e.Amount)
	}
	return totals
}

// ByCategory returns the per-category totals sorted by descending amount.
// Equal amounts keep enumeration order. Categories outside the taxonomy are
// still counted, labelled with their raw key and sorted last among ties.
func ByCategory(expenses []core.Expense) []CategorySlice {
	totals := CategoryTotals(expenses)
	out := make([]CategorySlice, 0, len(totals))
	for c, amount := range totals {
		s := CategorySlice{Category: c, Label: string(c), Amount: amount}
		if e, err := taxonomy.Lookup(c); err == nil {
			s.Label = e.Label
			s.Color = e.Color
		}
		out = append(out, s)
	}
	sort.Slice(out, func(i, j int) bool {
		if cmp := out[i].Amount.Cmp(out[j].Amount); cmp != 0 {
			return cmp > 0
		}
		return enumPosition(out[i].Category) < enumPosition(out[j].Category)
	})
	return out
}

func enumPosition(c taxonomy.Category) int {
	if i := taxonomy.Index(c); i >= 0 {
		return i
	}
	return len(taxonomy.All())
}

// TopCategories returns at most n leading slices.
func TopCategories(slices []CategorySlice, n int) []CategorySlice {
	if n < 0 {
		n = 0
	}
	if len(slices) > n {
		slices = slices[:n]
	}
	out := make([]CategorySlice, len(slices))
	copy(out, slices)
	return out
}

// DailySeries buckets expenses by day over every day of the given month.
// Days without expenses yield a zero entry; expenses from other months are
// ignored.
func DailySeries(expenses []core.Expense, year, month int) []DayTotal {
	first := core.NewDate(year, month, 1)
	days := first.DaysInMonth()
	series := make([]DayTotal, days)
	for i := range series {
		series[i] = DayTotal{Date: first.AddDays(i), Amount: decimal.Zero}
	}
	for _, e := range expenses {
		if e.Date.Year() != first.Year() || e.Date.Month() != first.Month() {
			continue
		}
		i := e.Date.Day() - 1
		series[i].Amount = series[i].Amount.Add(e.Amount)
	}
	return series
}

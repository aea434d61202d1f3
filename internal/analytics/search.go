package analytics

import (
	"sort"
	"strings"

	"expensewise/internal/core"
	"expensewise/internal/taxonomy"
)

// Search matches query case-insensitively against the category label,
// description, tags and amount of each expense. An empty query matches
// everything.
func Search(expenses []core.Expense, query string) []core.Expense {
	q := strings.ToLower(strings.TrimSpace(query))
	if q == "" {
		return append([]core.Expense(nil), expenses...)
	}
	out := []core.Expense{}
	for _, e := range expenses {
		if matches(e, q) {
			out = append(out, e)
		}
	}
	return out
}

func matches(e core.Expense, q string) bool {
	label, err := taxonomy.LabelOf(e.Category)
	if err == nil && strings.Contains(strings.ToLower(label), q) {
		return true
	}
	if strings.Contains(strings.ToLower(e.Description), q) {
		return true
	}
	for _, t := range e.Tags {
		if strings.Contains(strings.ToLower(t), q) {
			return true
		}
	}
	return strings.Contains(e.Amount.String(), q)
}

// ApplyFilter keeps the expenses satisfying every non-empty predicate of f.
func ApplyFilter(expenses []core.Expense, f core.FilterCriteria) []core.Expense {
	out := []core.Expense{}
	for _, e := range expenses {
		if accepts(f, e) {
			out = append(out, e)
		}
	}
	return out
}

func accepts(f core.FilterCriteria, e core.Expense) bool {
	if len(f.Categories) > 0 && !contains(f.Categories, e.Category) {
		return false
	}
	if len(f.PaymentMethods) > 0 && !contains(f.PaymentMethods, e.PaymentMethod) {
		return false
	}
	if f.MinAmount != nil && e.Amount.LessThan(*f.MinAmount) {
		return false
	}
	if f.MaxAmount != nil && e.Amount.GreaterThan(*f.MaxAmount) {
		return false
	}
	if !f.StartDate.IsZero() && e.Date.Before(f.StartDate) {
		return false
	}
	if !f.EndDate.IsZero() && e.Date.After(f.EndDate) {
		return false
	}
	for _, t := range f.Tags {
		if !e.HasTag(t) {
			return false
		}
	}
	return true
}

func contains[T comparable](list []T, v T) bool {
	for _, x := range list {
		if x == v {
			return true
		}
	}
	return false
}

// SortByDateDesc orders expenses by transaction date, newest first. Same
// day expenses are ordered by creation time, newest first.
func SortByDateDesc(expenses []core.Expense) {
	sort.SliceStable(expenses, func(i, j int) bool {
		if c := expenses[i].Date.Compare(expenses[j].Date); c != 0 {
			return c > 0
		}
		return expenses[i].CreatedAt.After(expenses[j].CreatedAt)
	})
}

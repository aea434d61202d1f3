package analytics

import (
	"fmt"
	"time"

	"expensewise/internal/core"
)

// Range is an inclusive interval of calendar days.
type Range struct {
	Start core.Date `json:"start"`
	End   core.Date `json:"end"`
}

// Contains reports whether d lies in [Start, End].
func (r Range) Contains(d core.Date) bool {
	return !d.Before(r.Start) && !d.After(r.End)
}

// Days returns the number of calendar days covered by r, or 0 for an
// inverted range.
func (r Range) Days() int {
	n := r.Start.DaysUntil(r.End) + 1
	if n < 0 {
		return 0
	}
	return n
}

func (r Range) String() string {
	return fmt.Sprintf("%s..%s", r.Start, r.End)
}

// Last7Days covers the seven calendar days ending today.
func Last7Days(now time.Time) Range {
	today := core.DateOf(now)
	return Range{Start: today.AddDays(-6), End: today}
}

// Last14Days covers the fourteen calendar days ending today.
func Last14Days(now time.Time) Range {
	today := core.DateOf(now)
	return Range{Start: today.AddDays(-13), End: today}
}

// CurrentMonth covers the first through the last day of now's month.
func CurrentMonth(now time.Time) Range {
	today := core.DateOf(now)
	return Range{Start: today.StartOfMonth(), End: today.EndOfMonth()}
}

// Period names a dashboard interval preset.
type Period string

const (
	Period7Days  Period = "7days"
	Period14Days Period = "14days"
	PeriodMonth  Period = "30days"
)

// ParsePeriod accepts the preset names plus "month" as an alias of the
// current month. An empty string selects the current month.
func ParsePeriod(s string) (Period, error) {
	switch s {
	case "", string(PeriodMonth), "month":
		return PeriodMonth, nil
	case string(Period7Days):
		return Period7Days, nil
	case string(Period14Days):
		return Period14Days, nil
	}
	return "", fmt.Errorf("unknown period %q", s)
}

// RangeFor resolves p against now. Unknown periods fall back to the current
// month.
func RangeFor(p Period, now time.Time) Range {
	switch p {
	case Period7Days:
		return Last7Days(now)
	case Period14Days:
		return Last14Days(now)
	default:
		return CurrentMonth(now)
	}
}

// Dated is implemented by entities carrying a transaction date.
type Dated interface {
	TransactionDate() core.Date
}

// FilterByDate returns the items whose date lies in r, keeping their
// relative order.
func FilterByDate[T Dated](items []T, r Range) []T {
	out := make([]T, 0, len(items))
	for _, it := range items {
		if r.Contains(it.TransactionDate()) {
			out = append(out, it)
		}
	}
	return out
}

package analytics

import (
	"sort"
	"time"

	"github.com/shopspring/decimal"

	"expensewise/internal/core"
)

var monthsPerYear = decimal.NewFromInt(12)

// MonthlyCost normalizes amount billed at f to a monthly basis.
func MonthlyCost(amount decimal.Decimal, f core.Frequency) (decimal.Decimal, error) {
	return f.MonthlyCost(amount)
}

// SubscriptionSummary totals the active subscriptions.
type SubscriptionSummary struct {
	Active  int             `json:"active"`
	Monthly decimal.Decimal `json:"monthly"`
	Yearly  decimal.Decimal `json:"yearly"`
}

// SubscriptionTotals sums the normalized monthly cost of active
// subscriptions. Yearly is always twelve times monthly.
func SubscriptionTotals(subs []core.Subscription) SubscriptionSummary {
	monthly := decimal.Zero
	active := 0
	for _, s := range subs {
		if !s.Active {
			continue
		}
		active++
		monthly = monthly.Add(s.MonthlyCost())
	}
	return SubscriptionSummary{
		Active:  active,
		Monthly: monthly,
		Yearly:  monthly.Mul(monthsPerYear),
	}
}

// DaysUntil counts the calendar days from now to the renewal date.
func DaysUntil(renewal core.Date, now time.Time) int {
	return core.DateOf(now).DaysUntil(renewal)
}

// Renewal is an upcoming subscription charge.
type Renewal struct {
	Subscription core.Subscription `json:"subscription"`
	DaysLeft     int               `json:"daysLeft"`
}

// UpcomingRenewals lists active subscriptions renewing within their
// reminder window, soonest first.
func UpcomingRenewals(subs []core.Subscription, now time.Time) []Renewal {
	out := []Renewal{}
	for _, s := range subs {
		if !s.Active {
			continue
		}
		days := DaysUntil(s.RenewalDate, now)
		if days >= 0 && days <= s.ReminderDays {
			out = append(out, Renewal{Subscription: s, DaysLeft: days})
		}
	}
	sort.SliceStable(out, func(i, j int) bool { return out[i].DaysLeft < out[j].DaysLeft })
	return out
}

// SortByRenewal orders subscriptions by ascending renewal date.
func SortByRenewal(subs []core.Subscription) {
	sort.SliceStable(subs, func(i, j int) bool {
		return subs[i].RenewalDate.Before(subs[j].RenewalDate)
	})
}

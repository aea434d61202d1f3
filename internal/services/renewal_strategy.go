// This file implements the per-frequency strategies that roll a past-due
// subscription renewal date forward. Monthly and yearly renewals are
// computed from the original anchor date so that a renewal on the 31st
// comes back to the 31st after a short month.

package services

import (
	"fmt"

	"expensewise/internal/core"
)

// RenewalStrategy computes the first renewal on or after today.
type RenewalStrategy interface {
	// Advance returns renewal unchanged when it is not before today.
	Advance(renewal, today core.Date) core.Date
}

// DailyStrategy renews every day.
type DailyStrategy struct{}

func (DailyStrategy) Advance(renewal, today core.Date) core.Date {
	if !renewal.Before(today) {
		return renewal
	}
	return today
}

// WeeklyStrategy renews every seven days, keeping the weekday.
type WeeklyStrategy struct{}

func (WeeklyStrategy) Advance(renewal, today core.Date) core.Date {
	if !renewal.Before(today) {
		return renewal
	}
	behind := renewal.DaysUntil(today)
	weeks := (behind + 6) / 7
	return renewal.AddDays(weeks * 7)
}

// MonthlyStrategy renews on the anchor day of each month, clamped to the
// month's last day.
type MonthlyStrategy struct{}

func (MonthlyStrategy) Advance(renewal, today core.Date) core.Date {
	return advanceMonths(renewal, today, 1)
}

// YearlyStrategy renews on the anniversary of the anchor date.
type YearlyStrategy struct{}

func (YearlyStrategy) Advance(renewal, today core.Date) core.Date {
	return advanceMonths(renewal, today, 12)
}

func advanceMonths(renewal, today core.Date, step int) core.Date {
	if !renewal.Before(today) {
		return renewal
	}
	// Jump close to today, then walk the last step or two.
	months := ((today.Year()-renewal.Year())*12 + today.Month() - renewal.Month()) / step * step
	if months < step {
		months = step
	}
	next := renewal.AddMonths(months)
	for next.Before(today) {
		months += step
		next = renewal.AddMonths(months)
	}
	return next
}

// renewalStrategies maps frequencies to their strategies.
var renewalStrategies = map[core.Frequency]RenewalStrategy{
	core.Daily:   DailyStrategy{},
	core.Weekly:  WeeklyStrategy{},
	core.Monthly: MonthlyStrategy{},
	core.Yearly:  YearlyStrategy{},
}

// GetRenewalStrategy returns the strategy for a frequency.
func GetRenewalStrategy(f core.Frequency) (RenewalStrategy, error) {
	s, ok := renewalStrategies[f]
	if !ok {
		return nil, fmt.Errorf("unknown frequency: %s", f)
	}
	return s, nil
}

// RegisterRenewalStrategy installs s for f, replacing any existing one.
func RegisterRenewalStrategy(f core.Frequency, s RenewalStrategy) {
	renewalStrategies[f] = s
}

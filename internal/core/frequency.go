package core

import (
	"fmt"

	"github.com/shopspring/decimal"
)

var (
	thirty = decimal.NewFromInt(30)
	four   = decimal.NewFromInt(4)
	twelve = decimal.NewFromInt(12)
)

// MonthlyCost rescales an amount billed at frequency f to a monthly basis:
// daily x30, weekly x4, monthly x1, yearly /12.
func (f Frequency) MonthlyCost(amount decimal.Decimal) (decimal.Decimal, error) {
	switch f {
	case Daily:
		return amount.Mul(thirty), nil
	case Weekly:
		return amount.Mul(four), nil
	case Monthly:
		return amount, nil
	case Yearly:
		return amount.Div(twelve), nil
	default:
		return decimal.Zero, fmt.Errorf("unknown frequency: %s", f)
	}
}

// Next returns the renewal date following d for frequency f. Monthly and
// yearly renewals clamp to the end of shorter months.
func (f Frequency) Next(d Date) (Date, error) {
	switch f {
	case Daily:
		return d.AddDays(1), nil
	case Weekly:
		return d.AddDays(7), nil
	case Monthly:
		return d.AddMonths(1), nil
	case Yearly:
		return d.AddMonths(12), nil
	default:
		return Date{}, fmt.Errorf("unknown frequency: %s", f)
	}
}

// MonthlyCost returns the subscription's normalized monthly cost. Unknown
// frequencies count as monthly.
func (s Subscription) MonthlyCost() decimal.Decimal {
	c, err := s.Frequency.MonthlyCost(s.Amount)
	if err != nil {
		return s.Amount
	}
	return c
}

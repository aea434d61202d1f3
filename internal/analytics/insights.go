package analytics

import (
	"fmt"

	"github.com/shopspring/decimal"

	"expensewise/internal/core"
)

// InsightInput gathers what the insight generator reads. Budget is nil when
// budget tracking is disabled.
type InsightInput struct {
	Profile      core.Profile
	Categories   []CategorySlice
	AverageDaily decimal.Decimal
	Budget       *BudgetEvaluation
}

// Insights returns the short messages shown on the analytics screen, in
// fixed order: top category, budget, average daily. Inapplicable messages
// are omitted.
func Insights(in InsightInput) []string {
	out := []string{}
	symbol := in.Profile.CurrencySymbol

	if len(in.Categories) > 0 && in.Categories[0].Amount.IsPositive() {
		top := in.Categories[0]
		out = append(out, fmt.Sprintf("Your highest spending is on %s (%s)",
			top.Label, core.FormatAmount(symbol, top.Amount, 2)))
	}

	if b := in.Budget; b != nil {
		switch b.Tier {
		case TierCritical:
			out = append(out, "⚠️ You've spent over 90% of your monthly budget!")
		case TierWarning:
			out = append(out, "You're at 70% of your monthly budget. Keep an eye on spending!")
		default:
			left := hundred.Sub(b.Percentage).Round(0)
			out = append(out, fmt.Sprintf("You're doing great! %s%% of budget remaining.", left))
		}
	}

	if in.AverageDaily.IsPositive() {
		out = append(out, fmt.Sprintf("Your average daily spending is %s",
			core.FormatAmount(symbol, in.AverageDaily, 0)))
	}
	return out
}

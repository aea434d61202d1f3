package analytics

import (
	"time"

	"github.com/shopspring/decimal"

	"expensewise/internal/core"
)

// Tier classifies spend against a budget.
type Tier string

const (
	TierNominal  Tier = "nominal"
	TierWarning  Tier = "warning"
	TierCritical Tier = "critical"
)

var (
	hundred        = decimal.NewFromInt(100)
	criticalAbove  = decimal.NewFromInt(90)
	warningAtLeast = decimal.NewFromInt(70)
)

// BudgetEvaluation compares spend with a budget threshold. Remaining is
// negative when the budget is overspent.
type BudgetEvaluation struct {
	Spent      decimal.Decimal `json:"spent"`
	Budget     decimal.Decimal `json:"budget"`
	Percentage decimal.Decimal `json:"percentage"`
	Remaining  decimal.Decimal `json:"remaining"`
	Tier       Tier            `json:"tier"`
}

// EvaluateBudget rates spent against budget. The second result is false
// when budget is not positive, in which case no evaluation exists.
func EvaluateBudget(spent, budget decimal.Decimal) (BudgetEvaluation, bool) {
	if !budget.IsPositive() {
		return BudgetEvaluation{}, false
	}
	pct := spent.Div(budget).Mul(hundred)
	return BudgetEvaluation{
		Spent:      spent,
		Budget:     budget,
		Percentage: pct,
		Remaining:  budget.Sub(spent),
		Tier:       TierOf(pct),
	}, true
}

// TierOf maps a spend percentage to its tier: above 90 is critical, 70
// through 90 is warning.
func TierOf(pct decimal.Decimal) Tier {
	switch {
	case pct.GreaterThan(criticalAbove):
		return TierCritical
	case pct.GreaterThanOrEqual(warningAtLeast):
		return TierWarning
	default:
		return TierNominal
	}
}

// AverageDaily divides total by the number of days elapsed in now's month,
// today included.
func AverageDaily(total decimal.Decimal, now time.Time) decimal.Decimal {
	return total.Div(decimal.NewFromInt(int64(now.Day())))
}

// BudgetStatus is the evaluation of one stored budget over its own scope.
type BudgetStatus struct {
	Budget     core.Budget      `json:"budget"`
	Scope      Range            `json:"scope"`
	Evaluation BudgetEvaluation `json:"evaluation"`
}

// BudgetScope resolves the date range a budget applies to at now. Weekly
// budgets run Monday through Sunday.
func BudgetScope(b core.Budget, now time.Time) Range {
	today := core.DateOf(now)
	switch b.Type {
	case core.BudgetWeekly:
		offset := (int(today.Weekday()) + 6) % 7
		start := today.AddDays(-offset)
		return Range{Start: start, End: start.AddDays(6)}
	case core.BudgetCustom:
		return Range{Start: b.StartDate, End: b.EndDate}
	default:
		return CurrentMonth(now)
	}
}

// BudgetProgress evaluates every budget against the expenses in its scope.
// Category budgets only count their own category.
func BudgetProgress(budgets []core.Budget, expenses []core.Expense, now time.Time) []BudgetStatus {
	out := make([]BudgetStatus, 0, len(budgets))
	for _, b := range budgets {
		scope := BudgetScope(b, now)
		spent := decimal.Zero
		for _, e := range FilterByDate(expenses, scope) {
			if b.Category != "" && e.Category != b.Category {
				continue
			}
			spent = spent.Add(e.Amount)
		}
		eval, ok := EvaluateBudget(spent, b.Amount)
		if !ok {
			continue
		}
		out = append(out, BudgetStatus{Budget: b, Scope: scope, Evaluation: eval})
	}
	return out
}

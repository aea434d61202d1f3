package analytics

import (
	"time"

	"github.com/shopspring/decimal"

	"expensewise/internal/core"
)

const (
	dashboardTopCategories = 4
	dashboardRecent        = 5
)

// DashboardView is the rollup behind the dashboard screen.
type DashboardView struct {
	Greeting      string            `json:"greeting"`
	Currency      string            `json:"currency"`
	Period        Period            `json:"period"`
	Range         Range             `json:"range"`
	Total         decimal.Decimal   `json:"total"`
	TopCategories []CategorySlice   `json:"topCategories"`
	Budget        *BudgetEvaluation `json:"budget,omitempty"`
	Recent        []core.Expense    `json:"recent"`
}

// Dashboard summarizes expenses over the given period. The budget gauge is
// always rated against the profile's monthly budget.
func Dashboard(p core.Profile, expenses []core.Expense, period Period, now time.Time) DashboardView {
	r := RangeFor(period, now)
	in := FilterByDate(expenses, r)
	SortByDateDesc(in)

	total := Total(in)
	v := DashboardView{
		Greeting:      greeting(p),
		Currency:      p.CurrencySymbol,
		Period:        period,
		Range:         r,
		Total:         total,
		TopCategories: TopCategories(ByCategory(in), dashboardTopCategories),
		Recent:        in[:min(len(in), dashboardRecent)],
	}
	if eval, ok := EvaluateBudget(total, p.MonthlyBudget); ok {
		v.Budget = &eval
	}
	return v
}

func greeting(p core.Profile) string {
	if p.Name == "" {
		return "Hello, User!"
	}
	return "Hello, " + p.Name + "!"
}

// MonthlyView is the rollup behind the analytics screen.
type MonthlyView struct {
	Currency     string            `json:"currency"`
	Month        Range             `json:"month"`
	Total        decimal.Decimal   `json:"total"`
	AverageDaily decimal.Decimal   `json:"averageDaily"`
	Categories   []CategorySlice   `json:"categories"`
	Daily        []DayTotal        `json:"daily"`
	Budget       *BudgetEvaluation `json:"budget,omitempty"`
	Insights     []string          `json:"insights"`
}

// MonthlyAnalytics summarizes the current calendar month.
func MonthlyAnalytics(p core.Profile, expenses []core.Expense, now time.Time) MonthlyView {
	month := CurrentMonth(now)
	in := FilterByDate(expenses, month)

	total := Total(in)
	v := MonthlyView{
		Currency:     p.CurrencySymbol,
		Month:        month,
		Total:        total,
		AverageDaily: AverageDaily(total, now),
		Categories:   ByCategory(in),
		Daily:        DailySeries(in, month.Start.Year(), month.Start.Month()),
	}
	if eval, ok := EvaluateBudget(total, p.MonthlyBudget); ok {
		v.Budget = &eval
	}
	v.Insights = Insights(InsightInput{
		Profile:      p,
		Categories:   v.Categories,
		AverageDaily: v.AverageDaily,
		Budget:       v.Budget,
	})
	return v
}

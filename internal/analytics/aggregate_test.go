package analytics

import (
	"testing"

	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"expensewise/internal/core"
	"expensewise/internal/taxonomy"
)

func sampleMonth() []core.Expense {
	return []core.Expense{
		expense("1", "120.50", taxonomy.Food, core.NewDate(2025, 3, 1)),
		expense("2", "80", taxonomy.Travel, core.NewDate(2025, 3, 1)),
		expense("3", "40", taxonomy.Food, core.NewDate(2025, 3, 5)),
		expense("4", "80", taxonomy.Transportation, core.NewDate(2025, 3, 9)),
		expense("5", "999.99", taxonomy.Shopping, core.NewDate(2025, 3, 31)),
	}
}

func TestCategoryTotalsMatchGrandTotal(t *testing.T) {
	expenses := sampleMonth()
	sum := decimal.Zero
	for _, s := range ByCategory(expenses) {
		sum = sum.Add(s.Amount)
	}
	assert.True(t, sum.Equal(Total(expenses)), "sum %s total %s", sum, Total(expenses))
	assert.True(t, Total(expenses).Equal(dec("1320.49")))
}

func TestByCategoryOrdering(t *testing.T) {
	got := ByCategory(sampleMonth())
	require.Len(t, got, 4)

	keys := make([]taxonomy.Category, len(got))
	for i, s := range got {
		keys[i] = s.Category
		if i > 0 {
			assert.False(t, s.Amount.GreaterThan(got[i-1].Amount), "not descending at %d", i)
		}
	}
	// Transportation and Travel tie at 80; transportation comes first in the
	// enumeration.
	assert.Equal(t, []taxonomy.Category{
		taxonomy.Shopping, taxonomy.Food, taxonomy.Transportation, taxonomy.Travel,
	}, keys)

	assert.Equal(t, "Food & Dining", got[1].Label)
	assert.NotEmpty(t, got[1].Color)
}

func TestByCategoryKeepsUnknownKeys(t *testing.T) {
	got := ByCategory([]core.Expense{
		expense("1", "5", "legacy", core.NewDate(2025, 3, 1)),
		expense("2", "5", taxonomy.Miscellaneous, core.NewDate(2025, 3, 1)),
	})
	require.Len(t, got, 2)
	assert.Equal(t, taxonomy.Miscellaneous, got[0].Category)
	assert.Equal(t, "legacy", got[1].Label)
}

func TestTopCategories(t *testing.T) {
	all := ByCategory(sampleMonth())
	assert.Len(t, TopCategories(all, 2), 2)
	assert.Len(t, TopCategories(all, 10), 4)
	assert.Empty(t, TopCategories(all, -1))
}

func TestDailySeriesIsGapFree(t *testing.T) {
	for month := 1; month <= 12; month++ {
		series := DailySeries(nil, 2024, month)
		require.Len(t, series, core.DaysIn(2024, month))
		for i, d := range series {
			assert.Equal(t, i+1, d.Date.Day())
			assert.True(t, d.Amount.IsZero())
		}
	}
}

func TestDailySeriesSums(t *testing.T) {
	expenses := append(sampleMonth(), expense("x", "7", taxonomy.Food, core.NewDate(2025, 4, 1)))
	series := DailySeries(expenses, 2025, 3)
	require.Len(t, series, 31)

	assert.True(t, series[0].Amount.Equal(dec("200.50")))
	assert.True(t, series[1].Amount.IsZero())
	assert.True(t, series[4].Amount.Equal(dec("40")))
	assert.True(t, series[30].Amount.Equal(dec("999.99")))

	sum := decimal.Zero
	for _, d := range series {
		sum = sum.Add(d.Amount)
	}
	assert.True(t, sum.Equal(Total(sampleMonth())), "april expense leaked into march")
}

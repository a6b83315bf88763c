package analytics_test

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/MrJamesThe3rd/finsight/internal/analytics"
	"github.com/MrJamesThe3rd/finsight/internal/budget"
	"github.com/MrJamesThe3rd/finsight/internal/expense"
)

func TestBudgetProgress_OverBudget(t *testing.T) {
	ref := date(2024, 5, 15)
	expenses := []expense.Expense{
		exp("Food", "70", date(2024, 5, 2)),
		exp("Food", "50", date(2024, 5, 31)),
		exp("Food", "999", date(2024, 4, 30)),
	}

	got := analytics.BudgetProgress(expenses, budget.Budgets{"Food": d("100")}, ref)

	require.Contains(t, got, "Food")
	p := got["Food"]
	assert.True(t, p.Spent.Equal(d("120")))
	assert.True(t, p.Budget.Equal(d("100")))
	assert.True(t, p.Remaining.Equal(d("-20")))
	assert.True(t, p.PercentageUsed.Equal(d("100")))
	assert.Equal(t, analytics.StatusOverBudget, p.Status())
}

func TestBudgetProgress_NoExpenses(t *testing.T) {
	got := analytics.BudgetProgress(nil, budget.Budgets{"Food": d("100"), "Rent": d("0")}, date(2024, 5, 1))

	assert.NotNil(t, got)
	assert.Empty(t, got)
}

func TestBudgetProgress_DropsUnbudgetedAndZeroBudgets(t *testing.T) {
	ref := date(2024, 5, 15)
	expenses := []expense.Expense{
		exp("Food", "25", date(2024, 5, 2)),
		exp("Travel", "300", date(2024, 5, 3)),
		exp("Rent", "10", date(2024, 5, 4)),
	}

	got := analytics.BudgetProgress(expenses, budget.Budgets{
		"Food":   d("100"),
		"Rent":   d("0"),
		"Health": d("40"),
	}, ref)

	require.Len(t, got, 3)
	assert.NotContains(t, got, "Travel")

	assert.True(t, got["Food"].PercentageUsed.Equal(d("25")))
	assert.Equal(t, analytics.StatusOnTrack, got["Food"].Status())

	assert.True(t, got["Rent"].PercentageUsed.IsZero())
	assert.True(t, got["Rent"].Remaining.Equal(d("-10")))

	assert.True(t, got["Health"].Spent.IsZero())
	assert.True(t, got["Health"].Remaining.Equal(d("40")))
}

func TestBudgetProgress_PercentageAlwaysInRange(t *testing.T) {
	ref := date(2024, 6, 10)
	budgets := budget.Budgets{"Food": d("1"), "Housing": d("10000"), "Fun": d("0"), "Health": d("250")}

	for seed := uint64(1); seed <= 25; seed++ {
		for category, p := range analytics.BudgetProgress(randomExpenses(seed, 80), budgets, ref) {
			assert.False(t, p.PercentageUsed.IsNegative(), "%s seed %d", category, seed)
			assert.True(t, p.PercentageUsed.LessThanOrEqual(d("100")), "%s seed %d", category, seed)
		}
	}
}

func TestSummarizeBudgets(t *testing.T) {
	progress := map[string]analytics.Progress{
		"Food":   {Spent: d("120"), Budget: d("100"), Remaining: d("-20"), PercentageUsed: d("100")},
		"Rent":   {Spent: d("500"), Budget: d("800"), Remaining: d("300"), PercentageUsed: d("62.5")},
		"Travel": {Spent: d("80"), Budget: d("0"), Remaining: d("-80"), PercentageUsed: d("0")},
	}

	s := analytics.SummarizeBudgets(progress)

	assert.True(t, s.TotalBudget.Equal(d("900")))
	assert.True(t, s.TotalSpent.Equal(d("700")))
	assert.True(t, s.Remaining.Equal(d("200")))
	assert.Equal(t, []string{"Food", "Travel"}, s.OverBudget)

	empty := analytics.SummarizeBudgets(nil)
	assert.True(t, empty.PercentageUsed.IsZero())
	assert.Empty(t, empty.OverBudget)
}

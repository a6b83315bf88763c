package analytics_test

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"

	"github.com/MrJamesThe3rd/finsight/internal/analytics"
	"github.com/MrJamesThe3rd/finsight/internal/budget"
	"github.com/MrJamesThe3rd/finsight/internal/expense"
)

func TestHealthScore(t *testing.T) {
	ref := date(2024, 3, 15)

	type testCase struct {
		name     string
		expenses []expense.Expense
		budgets  budget.Budgets
		want     int
	}

	tests := []testCase{
		{
			name:     "NoBudgets",
			expenses: []expense.Expense{exp("Food", "50", date(2024, 3, 1))},
			want:     50,
		},
		{
			name:     "NoCurrentMonthSpending",
			expenses: []expense.Expense{exp("Food", "50", date(2024, 2, 1))},
			budgets:  budget.Budgets{"Food": d("100")},
			want:     50,
		},
		{
			name:     "UnderBudgetSingleCategory",
			expenses: []expense.Expense{exp("Food", "50", date(2024, 3, 1))},
			budgets:  budget.Budgets{"Food": d("100")},
			want:     55,
		},
		{
			name:     "OverBudget",
			expenses: []expense.Expense{exp("Food", "300", date(2024, 3, 1))},
			budgets:  budget.Budgets{"Food": d("100")},
			want:     10,
		},
		{
			name: "DiverseAndConsistent",
			expenses: []expense.Expense{
				exp("Food", "100", date(2024, 3, 1)),
				exp("Housing", "100", date(2024, 3, 2)),
				exp("Transport", "100", date(2024, 3, 3)),
				exp("Fun", "100", date(2024, 3, 4)),
				exp("Housing", "400", date(2024, 2, 1)),
			},
			budgets: budget.Budgets{"Food": d("500"), "Housing": d("500")},
			want:    86,
		},
		{
			name: "Volatile",
			expenses: []expense.Expense{
				exp("Food", "500", date(2024, 3, 1)),
				exp("Food", "50", date(2024, 2, 1)),
			},
			budgets: budget.Budgets{"Food": d("1000")},
			want:    45,
		},
		{
			name: "ZeroBudgetTotalSkipsAdherence",
			expenses: []expense.Expense{
				exp("Food", "10", date(2024, 3, 1)),
			},
			budgets: budget.Budgets{"Food": d("0")},
			want:    40,
		},
		{
			name: "ClampedAtZero",
			expenses: []expense.Expense{
				exp("Food", "1000", date(2024, 3, 1)),
				exp("Food", "1", date(2024, 1, 1)),
			},
			budgets: budget.Budgets{"Food": d("1")},
			want:    0,
		},
		{
			name: "ClampedAtHundred",
			expenses: []expense.Expense{
				exp("Food", "0", date(2024, 3, 1)),
				exp("Housing", "0", date(2024, 3, 1)),
				exp("Transport", "0", date(2024, 3, 1)),
				exp("Fun", "0", date(2024, 3, 1)),
				exp("Health", "0", date(2024, 3, 1)),
				exp("Food", "0", date(2024, 2, 1)),
			},
			budgets: budget.Budgets{"Food": d("100")},
			want:    100,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, tt.want, analytics.HealthScore(tt.expenses, tt.budgets, ref))
		})
	}
}

func TestHealthScore_AlwaysInRange(t *testing.T) {
	ref := time.Date(2024, 7, 1, 0, 0, 0, 0, time.UTC)
	budgets := []budget.Budgets{
		nil,
		{"Food": d("10")},
		{"Food": d("500"), "Housing": d("2000"), "Fun": d("100")},
	}

	for seed := uint64(1); seed <= 30; seed++ {
		expenses := randomExpenses(seed, int(seed)*3)

		for _, b := range budgets {
			score := analytics.HealthScore(expenses, b, ref)
			assert.GreaterOrEqual(t, score, 0)
			assert.LessOrEqual(t, score, 100)

			if len(b) == 0 {
				assert.Equal(t, 50, score)
			}
		}
	}
}

func TestRating(t *testing.T) {
	assert.Equal(t, analytics.RatingExcellent, analytics.Rating(80))
	assert.Equal(t, analytics.RatingGood, analytics.Rating(79))
	assert.Equal(t, analytics.RatingGood, analytics.Rating(60))
	assert.Equal(t, analytics.RatingNeedsAttention, analytics.Rating(40))
	assert.Equal(t, analytics.RatingNeedsImprovement, analytics.Rating(39))
}

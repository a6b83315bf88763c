package analytics_test

import (
	"math/rand/v2"
	"testing"
	"time"

	"github.com/google/uuid"
	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/MrJamesThe3rd/finsight/internal/analytics"
	"github.com/MrJamesThe3rd/finsight/internal/expense"
)

func d(s string) decimal.Decimal { return decimal.RequireFromString(s) }

func date(y int, m time.Month, day int) time.Time {
	return time.Date(y, m, day, 0, 0, 0, 0, time.UTC)
}

func exp(category, amount string, at time.Time) expense.Expense {
	return expense.Expense{
		ID:          uuid.New(),
		Description: category + " " + amount,
		Amount:      d(amount),
		Date:        at,
		Category:    category,
	}
}

var categories = []string{"Food", "Housing", "Transport", "Fun", "Health"}

// randomExpenses builds a reproducible expense list spread over 2024.
func randomExpenses(seed uint64, n int) []expense.Expense {
	r := rand.New(rand.NewPCG(seed, seed))

	out := make([]expense.Expense, n)
	for i := range out {
		out[i] = expense.Expense{
			ID:       uuid.New(),
			Amount:   decimal.New(r.Int64N(100000), -2),
			Date:     date(2024, time.Month(1+r.IntN(12)), 1+r.IntN(28)),
			Category: categories[r.IntN(len(categories))],
		}
	}

	return out
}

func TestTotalsByCategory_Scenario(t *testing.T) {
	expenses := []expense.Expense{
		exp("Food", "100", date(2024, 1, 5)),
		exp("Food", "50", date(2024, 2, 10)),
		exp("Transport", "30", date(2024, 1, 20)),
	}

	got := analytics.TotalsByCategory(expenses)

	require.Len(t, got, 2)
	assert.True(t, got["Food"].Equal(d("150")))
	assert.True(t, got["Transport"].Equal(d("30")))
}

func TestTotalsByCategory_ConservesTotal(t *testing.T) {
	for seed := uint64(1); seed <= 20; seed++ {
		expenses := randomExpenses(seed, 1+int(seed)*7)

		sum := decimal.Zero
		for _, total := range analytics.TotalsByCategory(expenses) {
			sum = sum.Add(total)
		}

		assert.True(t, sum.Equal(analytics.Sum(expenses)), "seed %d", seed)
	}
}

func TestTotalsByCategory_Empty(t *testing.T) {
	got := analytics.TotalsByCategory(nil)
	assert.NotNil(t, got)
	assert.Empty(t, got)
}

func TestTotalsByPeriod(t *testing.T) {
	expenses := []expense.Expense{
		exp("Food", "10", date(2024, 1, 8)),  // Monday
		exp("Food", "5", date(2024, 1, 3)),   // Wednesday
		exp("Food", "7", date(2024, 1, 7)),   // Sunday
		exp("Food", "1", date(2024, 12, 31)), // Tuesday
	}

	type testCase struct {
		name string
		g    analytics.Granularity
		want []analytics.PeriodTotal
	}

	tests := []testCase{
		{
			name: "Day",
			g:    analytics.Day,
			want: []analytics.PeriodTotal{
				{Period: "2024-01-08", Total: d("10")},
				{Period: "2024-01-03", Total: d("5")},
				{Period: "2024-01-07", Total: d("7")},
				{Period: "2024-12-31", Total: d("1")},
			},
		},
		{
			name: "Week",
			g:    analytics.Week,
			want: []analytics.PeriodTotal{
				{Period: "2024-01-08", Total: d("10")},
				{Period: "2024-01-01", Total: d("12")},
				{Period: "2024-12-30", Total: d("1")},
			},
		},
		{
			name: "Month",
			g:    analytics.Month,
			want: []analytics.PeriodTotal{
				{Period: "2024-01-01", Total: d("22")},
				{Period: "2024-12-01", Total: d("1")},
			},
		},
		{
			name: "Year",
			g:    analytics.Year,
			want: []analytics.PeriodTotal{
				{Period: "2024-01-01", Total: d("23")},
			},
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got := analytics.TotalsByPeriod(expenses, tt.g)

			require.Len(t, got, len(tt.want))

			for i, w := range tt.want {
				assert.Equal(t, w.Period, got[i].Period)
				assert.Equal(t, w.Period, got[i].Start.Format(time.DateOnly))
				assert.True(t, w.Total.Equal(got[i].Total), "%s: %s", w.Period, got[i].Total)
			}
		})
	}

	assert.Empty(t, analytics.TotalsByPeriod(nil, analytics.Month))
}

func TestParseGranularity(t *testing.T) {
	g, err := analytics.ParseGranularity("Week")
	require.NoError(t, err)
	assert.Equal(t, analytics.Week, g)

	g, err = analytics.ParseGranularity("")
	require.NoError(t, err)
	assert.Equal(t, analytics.Month, g)

	_, err = analytics.ParseGranularity("fortnight")
	assert.ErrorIs(t, err, analytics.ErrInvalidGranularity)
}

func TestCurrentMonthExpenses(t *testing.T) {
	expenses := []expense.Expense{
		exp("Food", "1", date(2024, 1, 31)),
		exp("Food", "2", date(2024, 2, 1)),
		exp("Food", "3", date(2024, 2, 29)),
		exp("Food", "4", date(2024, 3, 1)),
		exp("Food", "5", date(2023, 2, 15)),
	}

	got := analytics.CurrentMonthExpenses(expenses, time.Date(2024, 2, 10, 23, 59, 0, 0, time.UTC))

	require.Len(t, got, 2)
	assert.True(t, got[0].Amount.Equal(d("2")))
	assert.True(t, got[1].Amount.Equal(d("3")))
}

func TestMonthlyTotalsAndBreakdown(t *testing.T) {
	expenses := []expense.Expense{
		exp("Food", "10", date(2024, 3, 1)),
		exp("Rent", "500", date(2024, 1, 1)),
		exp("Food", "20", date(2024, 1, 15)),
	}

	months := analytics.MonthlyTotals(expenses)
	require.Len(t, months, 2)
	assert.Equal(t, "2024-01", months[0].Month)
	assert.True(t, months[0].Total.Equal(d("520")))
	assert.Equal(t, "2024-03", months[1].Month)

	breakdown := analytics.MonthlyBreakdown(expenses)
	require.Len(t, breakdown, 2)
	assert.True(t, breakdown["2024-01"]["Rent"].Equal(d("500")))
	assert.True(t, breakdown["2024-01"]["Food"].Equal(d("20")))
	assert.True(t, breakdown["2024-03"]["Food"].Equal(d("10")))
}

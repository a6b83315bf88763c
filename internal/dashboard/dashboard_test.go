package dashboard_test

import (
	"context"
	"errors"
	"testing"
	"time"

	"github.com/google/uuid"
	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/mock/gomock"

	"github.com/MrJamesThe3rd/finsight/internal/analytics"
	"github.com/MrJamesThe3rd/finsight/internal/budget"
	"github.com/MrJamesThe3rd/finsight/internal/dashboard"
	"github.com/MrJamesThe3rd/finsight/internal/expense"
	"github.com/MrJamesThe3rd/finsight/internal/goal"
)

var ref = time.Date(2024, 1, 20, 0, 0, 0, 0, time.UTC)

func date(y int, m time.Month, d int) time.Time {
	return time.Date(y, m, d, 0, 0, 0, 0, time.UTC)
}

func exp(category string, amount int64, at time.Time) expense.Expense {
	return expense.Expense{
		ID:          uuid.New(),
		Description: category,
		Amount:      decimal.NewFromInt(amount),
		Date:        at,
		Category:    category,
	}
}

func sample() dashboard.Input {
	return dashboard.Input{
		Expenses: []expense.Expense{
			exp("Food", 20, date(2023, 12, 15)),
			exp("Food", 60, date(2024, 1, 5)),
			exp("Food", 60, date(2024, 1, 10)),
			exp("Transport", 40, date(2024, 1, 12)),
		},
		Budgets: budget.Budgets{"Food": decimal.NewFromInt(100)},
		Goals: []goal.Goal{
			{Name: "Car", TargetAmount: decimal.NewFromInt(1000), CurrentAmount: decimal.NewFromInt(250)},
		},
	}
}

func TestCompute(t *testing.T) {
	got := dashboard.Compute(sample(), analytics.Filter{}, analytics.Month, ref)

	assert.Equal(t, 4, got.ExpenseCount)
	assert.True(t, got.TotalSpent.Equal(decimal.NewFromInt(180)))
	assert.True(t, got.MonthSpent.Equal(decimal.NewFromInt(160)))

	require.Len(t, got.ByCategory.Slices, 2)
	assert.Equal(t, "Food", got.ByCategory.Slices[0].Label)

	require.Len(t, got.OverTime.Points, 2)
	assert.Equal(t, date(2023, 12, 1), got.OverTime.Points[0].Date)

	require.Len(t, got.Progress, 1)
	row := got.Progress[0]
	assert.Equal(t, "Food", row.Category)
	assert.True(t, row.Spent.Equal(decimal.NewFromInt(120)))
	assert.True(t, row.Remaining.Equal(decimal.NewFromInt(-20)))
	assert.True(t, row.PercentageUsed.Equal(decimal.NewFromInt(100)))
	assert.Equal(t, analytics.StatusOverBudget, row.Status)
	assert.Equal(t, []string{"Food"}, got.Budgets.OverBudget)

	require.Len(t, got.BudgetBars.Categories, 1)
	assert.True(t, got.BudgetBars.Remaining[0].IsZero())

	assert.Equal(t, 5, got.HealthScore)
	assert.Equal(t, analytics.RatingNeedsImprovement, got.Rating)

	assert.Equal(t, 1, got.Goals.ActiveGoals)
	assert.True(t, got.Goals.OverallProgress.Equal(decimal.NewFromInt(25)))
}

func TestCompute_FilterNarrowsChartsOnly(t *testing.T) {
	filter := analytics.Filter{Category: "Transport"}

	got := dashboard.Compute(sample(), filter, analytics.Month, ref)

	assert.Equal(t, 1, got.ExpenseCount)
	require.Len(t, got.ByCategory.Slices, 1)
	assert.Equal(t, "Transport", got.ByCategory.Slices[0].Label)

	require.Len(t, got.Progress, 1)
	assert.True(t, got.Progress[0].Spent.Equal(decimal.NewFromInt(120)))
	assert.Equal(t, 5, got.HealthScore)
}

func TestCompute_Empty(t *testing.T) {
	got := dashboard.Compute(dashboard.Input{}, analytics.Filter{}, analytics.Week, ref)

	assert.Zero(t, got.ExpenseCount)
	assert.True(t, got.ByCategory.Empty)
	assert.True(t, got.OverTime.Empty)
	assert.True(t, got.BudgetBars.Empty)
	assert.NotNil(t, got.Progress)
	assert.Empty(t, got.Progress)
	assert.Equal(t, 50, got.HealthScore)
	assert.Equal(t, analytics.RatingNeedsAttention, got.Rating)
}

func TestService_Build(t *testing.T) {
	type testCase struct {
		name      string
		setupMock func(e *dashboard.MockExpenseLister, b *dashboard.MockBudgetLister, g *dashboard.MockGoalLister)
		wantErr   bool
	}

	in := sample()

	tests := []testCase{
		{
			name: "Success",
			setupMock: func(e *dashboard.MockExpenseLister, b *dashboard.MockBudgetLister, g *dashboard.MockGoalLister) {
				e.EXPECT().List(gomock.Any()).Return(in.Expenses, nil)
				b.EXPECT().List(gomock.Any()).Return(in.Budgets, nil)
				g.EXPECT().List(gomock.Any()).Return(in.Goals, nil)
			},
		},
		{
			name: "ExpenseError",
			setupMock: func(e *dashboard.MockExpenseLister, _ *dashboard.MockBudgetLister, _ *dashboard.MockGoalLister) {
				e.EXPECT().List(gomock.Any()).Return(nil, errors.New("db error"))
			},
			wantErr: true,
		},
		{
			name: "BudgetError",
			setupMock: func(e *dashboard.MockExpenseLister, b *dashboard.MockBudgetLister, _ *dashboard.MockGoalLister) {
				e.EXPECT().List(gomock.Any()).Return(in.Expenses, nil)
				b.EXPECT().List(gomock.Any()).Return(nil, errors.New("db error"))
			},
			wantErr: true,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			ctrl := gomock.NewController(t)
			defer ctrl.Finish()

			e := dashboard.NewMockExpenseLister(ctrl)
			b := dashboard.NewMockBudgetLister(ctrl)
			g := dashboard.NewMockGoalLister(ctrl)
			tt.setupMock(e, b, g)

			svc := dashboard.NewService(e, b, g).WithClock(func() time.Time { return ref })
			got, err := svc.Build(context.Background(), analytics.Filter{}, analytics.Month)

			if tt.wantErr {
				assert.Error(t, err)
				assert.Nil(t, got)

				return
			}

			require.NoError(t, err)
			assert.Equal(t, 5, got.HealthScore)
			assert.Equal(t, ref, got.Reference)
		})
	}
}

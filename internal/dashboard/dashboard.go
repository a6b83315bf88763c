package dashboard

import (
	"sort"
	"time"

	"github.com/shopspring/decimal"

	"github.com/MrJamesThe3rd/finsight/internal/analytics"
	"github.com/MrJamesThe3rd/finsight/internal/budget"
	"github.com/MrJamesThe3rd/finsight/internal/chart"
	"github.com/MrJamesThe3rd/finsight/internal/expense"
	"github.com/MrJamesThe3rd/finsight/internal/goal"
)

// Row is one line of the budget progress table.
type Row struct {
	Category       string          `json:"category"`
	Budget         decimal.Decimal `json:"budget"`
	Spent          decimal.Decimal `json:"spent"`
	Remaining      decimal.Decimal `json:"remaining"`
	PercentageUsed decimal.Decimal `json:"percentage_used"`
	Status         string          `json:"status"`
}

type Dashboard struct {
	Reference    time.Time             `json:"reference"`
	Granularity  analytics.Granularity `json:"granularity"`
	ExpenseCount int                   `json:"expense_count"`
	TotalSpent   decimal.Decimal       `json:"total_spent"`
	MonthSpent   decimal.Decimal       `json:"month_spent"`

	ByCategory      chart.Pie     `json:"by_category"`
	OverTime        chart.Series  `json:"over_time"`
	BudgetBars      chart.Bars    `json:"budget_bars"`
	Monthly         chart.Series  `json:"monthly"`
	CategoryByMonth chart.Stacked `json:"category_by_month"`

	Progress []Row                   `json:"progress"`
	Budgets  analytics.BudgetSummary `json:"budgets"`
	Goals    goal.Summary            `json:"goals"`

	HealthScore int    `json:"health_score"`
	Rating      string `json:"rating"`
}

// Input is one consistent read of the records a dashboard is built from.
type Input struct {
	Expenses []expense.Expense
	Budgets  budget.Budgets
	Goals    []goal.Goal
}

// Compute derives every view from in. The filter narrows the spending charts
// and totals only. Budget progress and the health score always look at the
// full history, since they are defined over the calendar month of ref.
func Compute(in Input, filter analytics.Filter, g analytics.Granularity, ref time.Time) *Dashboard {
	shown := analytics.FilterExpenses(in.Expenses, filter)
	progress := analytics.BudgetProgress(in.Expenses, in.Budgets, ref)
	score := analytics.HealthScore(in.Expenses, in.Budgets, ref)

	return &Dashboard{
		Reference:       expense.Day(ref),
		Granularity:     g,
		ExpenseCount:    len(shown),
		TotalSpent:      analytics.Sum(shown),
		MonthSpent:      analytics.Sum(analytics.CurrentMonthExpenses(shown, ref)),
		ByCategory:      chart.CategoryBreakdown(analytics.TotalsByCategory(shown)),
		OverTime:        chart.SpendingOverTime(analytics.TotalsByPeriod(shown, g), g),
		BudgetBars:      chart.BudgetBars(progress),
		Monthly:         chart.MonthlyComparison(analytics.MonthlyTotals(shown)),
		CategoryByMonth: chart.CategoryByMonth(analytics.MonthlyBreakdown(shown)),
		Progress:        rows(progress),
		Budgets:         analytics.SummarizeBudgets(progress),
		Goals:           goal.Summarize(in.Goals),
		HealthScore:     score,
		Rating:          analytics.Rating(score),
	}
}

func rows(progress map[string]analytics.Progress) []Row {
	out := make([]Row, 0, len(progress))

	for category, p := range progress {
		out = append(out, Row{
			Category:       category,
			Budget:         p.Budget,
			Spent:          p.Spent,
			Remaining:      p.Remaining,
			PercentageUsed: p.PercentageUsed.Round(1),
			Status:         p.Status(),
		})
	}

	sort.Slice(out, func(i, j int) bool { return out[i].Category < out[j].Category })

	return out
}

package advisor

import (
	"context"
	"fmt"
	"strings"

	"github.com/shopspring/decimal"

	"github.com/MrJamesThe3rd/finsight/internal/analytics"
	"github.com/MrJamesThe3rd/finsight/internal/budget"
	"github.com/MrJamesThe3rd/finsight/internal/chart"
	"github.com/MrJamesThe3rd/finsight/internal/expense"
)

type rule struct {
	category string
	keywords []string
}

// rules are checked in order; the first keyword hit wins.
var rules = []rule{
	{expense.CategoryHousing, []string{"rent", "mortgage", "electric", "water bill", "utility", "utilities", "internet", "landlord", "hoa"}},
	{expense.CategoryTransportation, []string{"uber", "lyft", "taxi", "gas station", "fuel", "petrol", "parking", "metro", "subway", "bus", "train", "toll", "car payment"}},
	{expense.CategoryTravel, []string{"flight", "airline", "hotel", "airbnb", "booking.com", "hostel", "vacation"}},
	{expense.CategoryFood, []string{"grocery", "groceries", "supermarket", "restaurant", "cafe", "coffee", "lunch", "dinner", "breakfast", "pizza", "burger", "bakery", "takeout"}},
	{expense.CategoryEntertainment, []string{"netflix", "spotify", "cinema", "movie", "concert", "game", "steam", "theater", "disney"}},
	{expense.CategoryHealth, []string{"pharmacy", "doctor", "dentist", "hospital", "clinic", "prescription", "gym", "medical"}},
	{expense.CategoryEducation, []string{"tuition", "course", "textbook", "book", "school", "udemy", "university"}},
	{expense.CategoryShopping, []string{"amazon", "clothes", "clothing", "shoes", "electronics", "mall", "store", "ikea"}},
	{expense.CategorySavings, []string{"savings", "investment", "brokerage", "deposit", "retirement", "401k", "etf"}},
}

// Heuristic is the deterministic advisor. It never fails.
type Heuristic struct{}

func (Heuristic) Categorize(_ context.Context, description string, _ decimal.Decimal) (string, error) {
	lower := strings.ToLower(description)

	for _, r := range rules {
		for _, kw := range r.keywords {
			if strings.Contains(lower, kw) {
				return r.category, nil
			}
		}
	}

	return expense.CategoryOther, nil
}

func (Heuristic) SummarizeSpending(_ context.Context, expenses []expense.Expense) ([]string, error) {
	if len(expenses) < MinInsightExpenses {
		return []string{MsgNotEnoughData}, nil
	}

	total := analytics.Sum(expenses)
	pie := chart.CategoryBreakdown(analytics.TotalsByCategory(expenses))
	top := pie.Slices[0]

	insights := []string{
		fmt.Sprintf("Your highest spending category is %s at %s%% of total expenses.", top.Label, top.Percent.StringFixed(1)),
	}

	avg := total.Div(decimal.NewFromInt(int64(len(expenses))))
	insights = append(insights, fmt.Sprintf("Your average expense is $%s across %d transactions.", avg.StringFixed(2), len(expenses)))

	largest := expenses[0]
	for _, e := range expenses[1:] {
		if e.Amount.GreaterThan(largest.Amount) {
			largest = e
		}
	}

	insights = append(insights, fmt.Sprintf("Your largest single expense was $%s for %q (%s).",
		largest.Amount.StringFixed(2), largest.Description, largest.Category))

	if months := analytics.MonthlyTotals(expenses); len(months) > 1 {
		prev, last := months[len(months)-2], months[len(months)-1]

		switch {
		case last.Total.GreaterThan(prev.Total):
			insights = append(insights, fmt.Sprintf("Spending rose from $%s in %s to $%s in %s.",
				prev.Total.StringFixed(2), prev.Month, last.Total.StringFixed(2), last.Month))
		case last.Total.LessThan(prev.Total):
			insights = append(insights, fmt.Sprintf("Spending fell from $%s in %s to $%s in %s.",
				prev.Total.StringFixed(2), prev.Month, last.Total.StringFixed(2), last.Month))
		}
	}

	if len(pie.Slices) > 5 {
		bottom := pie.Slices[len(pie.Slices)-3:]
		insights = append(insights, fmt.Sprintf("You spend relatively little on %s, %s and %s.",
			bottom[0].Label, bottom[1].Label, bottom[2].Label))
	}

	return insights, nil
}

// RecommendBudget suggests the average monthly spend of each category,
// rounded to whole units.
func (Heuristic) RecommendBudget(_ context.Context, expenses []expense.Expense) (budget.Budgets, error) {
	recommended := budget.Budgets{}
	if len(expenses) < MinBudgetExpenses {
		return recommended, nil
	}

	months := decimal.NewFromInt(int64(len(analytics.MonthlyTotals(expenses))))

	for category, total := range analytics.TotalsByCategory(expenses) {
		recommended[category] = total.Div(months).Round(0)
	}

	return recommended, nil
}

func (Heuristic) RecommendSavings(_ context.Context, expenses []expense.Expense, budgets budget.Budgets) ([]string, error) {
	if len(expenses) == 0 {
		return []string{MsgStartTracking}, nil
	}

	months := decimal.NewFromInt(int64(len(analytics.MonthlyTotals(expenses))))
	totals := analytics.TotalsByCategory(expenses)

	var tips []string

	for _, category := range budgets.Categories() {
		limit := budgets[category]

		avg := totals[category].Div(months)
		if avg.GreaterThan(limit) {
			tips = append(tips, fmt.Sprintf("Cut back on %s: you average $%s per month against a $%s budget.",
				category, avg.StringFixed(2), limit.StringFixed(2)))
		}
	}

	top := chart.CategoryBreakdown(totals).Slices[0]
	if _, ok := budgets[top.Label]; !ok {
		tips = append(tips, fmt.Sprintf("Set a monthly budget for %s, your largest spending category.", top.Label))
	}

	tips = append(tips,
		fmt.Sprintf("Trimming %s by 10%% would save about $%s per month.",
			top.Label, totals[top.Label].Div(months).Div(decimal.NewFromInt(10)).StringFixed(2)),
		"Move a fixed amount into savings at the start of each month before spending.",
	)

	return tips, nil
}

// Package chart shapes analytics results into render-ready series. Every
// builder returns an Empty chart with a placeholder title and message when
// there is nothing to draw.
package chart

import (
	"fmt"
	"sort"
	"strings"
	"time"

	"github.com/shopspring/decimal"

	"github.com/MrJamesThe3rd/finsight/internal/analytics"
)

const noExpenseData = "No expense data available"

var hundred = decimal.NewFromInt(100)

type Slice struct {
	Label   string          `json:"label"`
	Value   decimal.Decimal `json:"value"`
	Percent decimal.Decimal `json:"percent"`
}

type Pie struct {
	Title   string  `json:"title"`
	Slices  []Slice `json:"slices"`
	Empty   bool    `json:"empty"`
	Message string  `json:"message,omitempty"`
}

// CategoryBreakdown builds a pie of category totals, largest first. Ties are
// ordered by label.
func CategoryBreakdown(totals map[string]decimal.Decimal) Pie {
	if len(totals) == 0 {
		return Pie{
			Title:   noExpenseData,
			Slices:  []Slice{},
			Empty:   true,
			Message: "Add expenses to see spending by category",
		}
	}

	sum := decimal.Zero
	slices := make([]Slice, 0, len(totals))

	for label, value := range totals {
		slices = append(slices, Slice{Label: label, Value: value})
		sum = sum.Add(value)
	}

	sort.Slice(slices, func(i, j int) bool {
		if c := slices[i].Value.Cmp(slices[j].Value); c != 0 {
			return c > 0
		}

		return slices[i].Label < slices[j].Label
	})

	for i := range slices {
		slices[i].Percent = decimal.Zero
		if sum.IsPositive() {
			slices[i].Percent = slices[i].Value.Mul(hundred).Div(sum).Round(1)
		}
	}

	return Pie{Title: "Spending by Category", Slices: slices}
}

type Point struct {
	Label string          `json:"label"`
	Date  time.Time       `json:"date"`
	Value decimal.Decimal `json:"value"`
}

type Series struct {
	Title   string  `json:"title"`
	XLabel  string  `json:"x_label,omitempty"`
	YLabel  string  `json:"y_label,omitempty"`
	Points  []Point `json:"points"`
	Empty   bool    `json:"empty"`
	Message string  `json:"message,omitempty"`
}

// SpendingOverTime plots period totals in chronological order of the period
// start, whatever order they arrive in.
func SpendingOverTime(periods []analytics.PeriodTotal, g analytics.Granularity) Series {
	if len(periods) == 0 {
		return Series{
			Title:   noExpenseData,
			Points:  []Point{},
			Empty:   true,
			Message: "Add expenses to see spending over time",
		}
	}

	points := make([]Point, len(periods))
	for i, p := range periods {
		points[i] = Point{Label: p.Period, Date: p.Start, Value: p.Total}
	}

	sort.SliceStable(points, func(i, j int) bool { return points[i].Date.Before(points[j].Date) })

	return Series{
		Title:  fmt.Sprintf("Spending Over Time (by %s)", g),
		XLabel: "Date",
		YLabel: "Amount",
		Points: points,
	}
}

type Bars struct {
	Title      string            `json:"title"`
	Categories []string          `json:"categories"`
	Spent      []decimal.Decimal `json:"spent"`
	Remaining  []decimal.Decimal `json:"remaining"`
	Empty      bool              `json:"empty"`
	Message    string            `json:"message,omitempty"`
}

// BudgetBars stacks spent against what is left of each budget. Overspent
// categories show no remaining bar.
func BudgetBars(progress map[string]analytics.Progress) Bars {
	if len(progress) == 0 {
		return Bars{
			Title:      "No budget data available",
			Categories: []string{},
			Spent:      []decimal.Decimal{},
			Remaining:  []decimal.Decimal{},
			Empty:      true,
			Message:    "Set budgets to track your progress",
		}
	}

	categories := make([]string, 0, len(progress))
	for c := range progress {
		categories = append(categories, c)
	}

	sort.Strings(categories)

	bars := Bars{
		Title:      "Budget Progress",
		Categories: categories,
		Spent:      make([]decimal.Decimal, len(categories)),
		Remaining:  make([]decimal.Decimal, len(categories)),
	}

	for i, c := range categories {
		p := progress[c]
		bars.Spent[i] = p.Spent
		bars.Remaining[i] = decimal.Max(p.Remaining, decimal.Zero)
	}

	return bars
}

// MonthlyComparison plots one bar per month.
func MonthlyComparison(months []analytics.MonthTotal) Series {
	if len(months) == 0 {
		return Series{
			Title:   noExpenseData,
			Points:  []Point{},
			Empty:   true,
			Message: "Add expenses to see monthly comparison",
		}
	}

	points := make([]Point, len(months))
	for i, m := range months {
		points[i] = Point{Label: m.Month, Date: m.Start, Value: m.Total}
	}

	sort.SliceStable(points, func(i, j int) bool { return points[i].Date.Before(points[j].Date) })

	return Series{
		Title:  "Monthly Spending Comparison",
		XLabel: "Month",
		YLabel: "Total Spending",
		Points: points,
	}
}

type Stack struct {
	Category string            `json:"category"`
	Values   []decimal.Decimal `json:"values"`
}

type Stacked struct {
	Title   string   `json:"title"`
	Months  []string `json:"months"`
	Series  []Stack  `json:"series"`
	Empty   bool     `json:"empty"`
	Message string   `json:"message,omitempty"`
}

// CategoryByMonth builds one stack per category across every month. Months
// without spending in a category are zero filled.
func CategoryByMonth(breakdown map[string]map[string]decimal.Decimal) Stacked {
	if len(breakdown) == 0 {
		return Stacked{
			Title:   noExpenseData,
			Months:  []string{},
			Series:  []Stack{},
			Empty:   true,
			Message: "Add expenses to see category comparison",
		}
	}

	months := make([]string, 0, len(breakdown))
	seen := make(map[string]struct{})

	for month, categories := range breakdown {
		months = append(months, month)

		for c := range categories {
			seen[c] = struct{}{}
		}
	}

	sort.Strings(months)

	categories := make([]string, 0, len(seen))
	for c := range seen {
		categories = append(categories, c)
	}

	sort.Strings(categories)

	series := make([]Stack, len(categories))
	for i, c := range categories {
		values := make([]decimal.Decimal, len(months))
		for j, m := range months {
			values[j] = breakdown[m][c]
		}

		series[i] = Stack{Category: c, Values: values}
	}

	return Stacked{Title: "Category Spending by Month", Months: months, Series: series}
}

// Bar renders a fixed-width text progress bar for pct in [0, 100].
func Bar(pct decimal.Decimal, width int) string {
	if width <= 0 {
		return ""
	}

	pct = decimal.Min(decimal.Max(pct, decimal.Zero), hundred)
	filled := int(pct.Mul(decimal.NewFromInt(int64(width))).Div(hundred).IntPart())

	return strings.Repeat("█", filled) + strings.Repeat("░", width-filled)
}

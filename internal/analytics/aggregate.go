// Package analytics derives totals, budget utilization and the financial
// health score from expense snapshots. Every function is pure: inputs are
// never modified and nothing is cached between calls.
package analytics

import (
	"errors"
	"fmt"
	"sort"
	"strings"
	"time"

	"github.com/shopspring/decimal"

	"github.com/MrJamesThe3rd/finsight/internal/expense"
)

var ErrInvalidGranularity = errors.New("granularity must be day, week, month or year")

type Granularity string

const (
	Day   Granularity = "day"
	Week  Granularity = "week"
	Month Granularity = "month"
	Year  Granularity = "year"
)

func ParseGranularity(s string) (Granularity, error) {
	switch g := Granularity(strings.ToLower(strings.TrimSpace(s))); g {
	case Day, Week, Month, Year:
		return g, nil
	case "":
		return Month, nil
	default:
		return "", fmt.Errorf("%w: got %q", ErrInvalidGranularity, s)
	}
}

// PeriodStart returns the first day of the period containing t. Weeks start
// on Monday.
func (g Granularity) PeriodStart(t time.Time) time.Time {
	d := expense.Day(t)

	switch g {
	case Day:
		return d
	case Week:
		offset := (int(d.Weekday()) + 6) % 7
		return d.AddDate(0, 0, -offset)
	case Year:
		return time.Date(d.Year(), time.January, 1, 0, 0, 0, 0, time.UTC)
	default:
		return time.Date(d.Year(), d.Month(), 1, 0, 0, 0, 0, time.UTC)
	}
}

func TotalsByCategory(expenses []expense.Expense) map[string]decimal.Decimal {
	totals := make(map[string]decimal.Decimal)
	for _, e := range expenses {
		totals[e.Category] = totals[e.Category].Add(e.Amount)
	}

	return totals
}

// PeriodTotal is the spending of one calendar period. Period is the start
// date formatted as YYYY-MM-DD.
type PeriodTotal struct {
	Period string
	Start  time.Time
	Total  decimal.Decimal
}

// TotalsByPeriod buckets expenses by calendar period. Buckets appear in the
// order their first expense appears in the input.
func TotalsByPeriod(expenses []expense.Expense, g Granularity) []PeriodTotal {
	totals := []PeriodTotal{}
	index := make(map[time.Time]int)

	for _, e := range expenses {
		start := g.PeriodStart(e.Date)

		i, ok := index[start]
		if !ok {
			i = len(totals)
			index[start] = i
			totals = append(totals, PeriodTotal{
				Period: start.Format(time.DateOnly),
				Start:  start,
				Total:  decimal.Zero,
			})
		}

		totals[i].Total = totals[i].Total.Add(e.Amount)
	}

	return totals
}

// MonthBounds returns the first and last calendar day of ref's month.
func MonthBounds(ref time.Time) (time.Time, time.Time) {
	first := time.Date(ref.Year(), ref.Month(), 1, 0, 0, 0, 0, time.UTC)
	last := first.AddDate(0, 1, -1)

	return first, last
}

// CurrentMonthExpenses keeps the expenses dated within ref's calendar month,
// both ends inclusive.
func CurrentMonthExpenses(expenses []expense.Expense, ref time.Time) []expense.Expense {
	first, last := MonthBounds(ref)

	return FilterExpenses(expenses, Filter{StartDate: &first, EndDate: &last})
}

// Sum adds up the amounts of expenses.
func Sum(expenses []expense.Expense) decimal.Decimal {
	total := decimal.Zero
	for _, e := range expenses {
		total = total.Add(e.Amount)
	}

	return total
}

type MonthTotal struct {
	Month string
	Start time.Time
	Total decimal.Decimal
}

// MonthlyTotals sums spending per calendar month, oldest first. Month is
// formatted as YYYY-MM.
func MonthlyTotals(expenses []expense.Expense) []MonthTotal {
	periods := TotalsByPeriod(expenses, Month)

	months := make([]MonthTotal, len(periods))
	for i, p := range periods {
		months[i] = MonthTotal{
			Month: p.Start.Format("2006-01"),
			Start: p.Start,
			Total: p.Total,
		}
	}

	sort.Slice(months, func(i, j int) bool { return months[i].Start.Before(months[j].Start) })

	return months
}

// MonthlyBreakdown maps YYYY-MM to the per-category totals of that month.
func MonthlyBreakdown(expenses []expense.Expense) map[string]map[string]decimal.Decimal {
	breakdown := make(map[string]map[string]decimal.Decimal)

	for _, e := range expenses {
		month := e.Date.Format("2006-01")

		categories, ok := breakdown[month]
		if !ok {
			categories = make(map[string]decimal.Decimal)
			breakdown[month] = categories
		}

		categories[e.Category] = categories[e.Category].Add(e.Amount)
	}

	return breakdown
}

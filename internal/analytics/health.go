package analytics

import (
	"math"
	"time"

	"github.com/shopspring/decimal"

	"github.com/MrJamesThe3rd/finsight/internal/budget"
	"github.com/MrJamesThe3rd/finsight/internal/expense"
)

const (
	neutralScore = 50

	RatingExcellent        = "Excellent"
	RatingGood             = "Good"
	RatingNeedsAttention   = "Needs Attention"
	RatingNeedsImprovement = "Needs Improvement"
)

// HealthScore rates spending discipline on a 0-100 scale. It starts at 50
// and adjusts for budget adherence, category diversity, concentration in a
// single category and month-to-month consistency. Without budgets or
// without spending in ref's month the score stays at 50.
func HealthScore(expenses []expense.Expense, budgets budget.Budgets, ref time.Time) int {
	if len(budgets) == 0 {
		return neutralScore
	}

	current := CurrentMonthExpenses(expenses, ref)
	if len(current) == 0 {
		return neutralScore
	}

	score := float64(neutralScore)

	monthTotal := Sum(current).InexactFloat64()

	if totalBudget := budgets.Total().InexactFloat64(); totalBudget > 0 {
		ratio := monthTotal / totalBudget
		if ratio <= 1 {
			score += (1 - ratio) * 30
		} else {
			score -= math.Min(30, (ratio-1)*50)
		}
	}

	categories := TotalsByCategory(current)
	if len(categories) > 3 {
		score += math.Min(10, float64(len(categories))*2)
	}

	if monthTotal > 0 {
		largest := decimal.Zero
		for _, total := range categories {
			largest = decimal.Max(largest, total)
		}

		if share := largest.InexactFloat64() / monthTotal * 100; share > 50 {
			score -= math.Min(15, (share-50)/5)
		}
	}

	if months := MonthlyTotals(expenses); len(months) > 1 {
		cov := variation(months)

		switch {
		case cov < 0.2:
			score += 10
		case cov > 0.5:
			score -= 10
		}
	}

	return int(math.Max(0, math.Min(100, score)))
}

// variation is the coefficient of variation of the month totals, using the
// sample standard deviation. A zero mean gives zero.
func variation(months []MonthTotal) float64 {
	n := float64(len(months))

	var sum float64
	for _, m := range months {
		sum += m.Total.InexactFloat64()
	}

	mean := sum / n
	if mean <= 0 {
		return 0
	}

	var squares float64
	for _, m := range months {
		diff := m.Total.InexactFloat64() - mean
		squares += diff * diff
	}

	return math.Sqrt(squares/(n-1)) / mean
}

func Rating(score int) string {
	switch {
	case score >= 80:
		return RatingExcellent
	case score >= 60:
		return RatingGood
	case score >= 40:
		return RatingNeedsAttention
	default:
		return RatingNeedsImprovement
	}
}

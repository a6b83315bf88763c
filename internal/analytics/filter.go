package analytics

import (
	"time"

	"github.com/shopspring/decimal"

	"github.com/MrJamesThe3rd/finsight/internal/expense"
)

// AllCategories matches every category.
const AllCategories = "All"

// Filter selects expenses matching every set criterion. The zero Filter
// matches everything. Date bounds are inclusive and compared by calendar day.
type Filter struct {
	StartDate *time.Time
	EndDate   *time.Time
	Category  string
	MinAmount *decimal.Decimal
	MaxAmount *decimal.Decimal
}

func (f Filter) Match(e expense.Expense) bool {
	day := expense.Day(e.Date)

	if f.StartDate != nil && day.Before(expense.Day(*f.StartDate)) {
		return false
	}

	if f.EndDate != nil && day.After(expense.Day(*f.EndDate)) {
		return false
	}

	if f.Category != "" && f.Category != AllCategories && e.Category != f.Category {
		return false
	}

	if f.MinAmount != nil && e.Amount.LessThan(*f.MinAmount) {
		return false
	}

	if f.MaxAmount != nil && e.Amount.GreaterThan(*f.MaxAmount) {
		return false
	}

	return true
}

// FilterExpenses returns the matching expenses in input order.
func FilterExpenses(expenses []expense.Expense, f Filter) []expense.Expense {
	out := make([]expense.Expense, 0, len(expenses))

	for _, e := range expenses {
		if f.Match(e) {
			out = append(out, e)
		}
	}

	return out
}

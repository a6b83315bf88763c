package budget

import (
	"errors"
	"sort"

	"github.com/shopspring/decimal"
)

var (
	ErrNotFound      = errors.New("budget not found")
	ErrInvalidAmount = errors.New("budget amount must not be negative")
	ErrEmptyCategory = errors.New("budget category is required")
)

// Budgets maps a category to its monthly spending limit.
type Budgets map[string]decimal.Decimal

// Total sums every limit.
func (b Budgets) Total() decimal.Decimal {
	total := decimal.Zero
	for _, amount := range b {
		total = total.Add(amount)
	}

	return total
}

// Categories returns the budgeted categories sorted by name.
func (b Budgets) Categories() []string {
	categories := make([]string, 0, len(b))
	for c := range b {
		categories = append(categories, c)
	}

	sort.Strings(categories)

	return categories
}

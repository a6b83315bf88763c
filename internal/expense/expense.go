package expense

import (
	"errors"
	"fmt"
	"strings"
	"time"

	"github.com/google/uuid"
	"github.com/shopspring/decimal"
)

var (
	ErrNotFound         = errors.New("expense not found")
	ErrInvalidAmount    = errors.New("amount must not be negative")
	ErrInvalidDate      = errors.New("date is required")
	ErrEmptyCategory    = errors.New("category is required")
	ErrEmptyDescription = errors.New("description is required")
)

// Standard category labels. Any non-empty label is accepted.
const (
	CategoryHousing        = "Housing"
	CategoryTransportation = "Transportation"
	CategoryFood           = "Food"
	CategoryEntertainment  = "Entertainment"
	CategoryShopping       = "Shopping"
	CategoryHealth         = "Health"
	CategoryEducation      = "Education"
	CategoryTravel         = "Travel"
	CategorySavings        = "Savings/Investment"
	CategoryOther          = "Other"
)

// Categories lists the standard labels in display order.
var Categories = []string{
	CategoryHousing,
	CategoryTransportation,
	CategoryFood,
	CategoryEntertainment,
	CategoryShopping,
	CategoryHealth,
	CategoryEducation,
	CategoryTravel,
	CategorySavings,
	CategoryOther,
}

// Expense is a single spending record. Expenses are never edited, only
// created and deleted.
type Expense struct {
	ID          uuid.UUID
	Description string
	Amount      decimal.Decimal
	Date        time.Time
	Category    string
}

type CreateParams struct {
	Description string
	Amount      decimal.Decimal
	Date        time.Time
	Category    string
}

// Validate checks everything except the category, which may still be
// assigned by a categorizer.
func (p CreateParams) Validate() error {
	if strings.TrimSpace(p.Description) == "" {
		return ErrEmptyDescription
	}

	if p.Amount.IsNegative() {
		return fmt.Errorf("%w: got %s", ErrInvalidAmount, p.Amount)
	}

	if p.Date.IsZero() {
		return ErrInvalidDate
	}

	return nil
}

// Day truncates t to midnight UTC of its calendar date.
func Day(t time.Time) time.Time {
	return time.Date(t.Year(), t.Month(), t.Day(), 0, 0, 0, 0, time.UTC)
}

// ParseDate parses a YYYY-MM-DD date.
func ParseDate(s string) (time.Time, error) {
	d, err := time.Parse(time.DateOnly, strings.TrimSpace(s))
	if err != nil {
		return time.Time{}, fmt.Errorf("%w: %q is not YYYY-MM-DD", ErrInvalidDate, s)
	}

	return d, nil
}

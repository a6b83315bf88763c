package goal

import (
	"errors"
	"fmt"
	"strings"
	"time"

	"github.com/google/uuid"
	"github.com/shopspring/decimal"
)

var (
	ErrNotFound        = errors.New("goal not found")
	ErrInvalidTarget   = errors.New("target amount must be positive")
	ErrInvalidAmount   = errors.New("current amount must not be negative")
	ErrInvalidPriority = errors.New("priority must be Low, Medium or High")
	ErrEmptyName       = errors.New("goal name is required")
	ErrInvalidDate     = errors.New("target date is required")
)

type Priority string

const (
	PriorityLow    Priority = "Low"
	PriorityMedium Priority = "Medium"
	PriorityHigh   Priority = "High"
)

func ParsePriority(s string) (Priority, error) {
	switch p := Priority(strings.TrimSpace(s)); p {
	case PriorityLow, PriorityMedium, PriorityHigh:
		return p, nil
	case "":
		return PriorityMedium, nil
	default:
		return "", fmt.Errorf("%w: got %q", ErrInvalidPriority, s)
	}
}

// ProgressUpdate records the saved amount after a contribution.
type ProgressUpdate struct {
	Date   time.Time
	Amount decimal.Decimal
	Notes  string
}

type Goal struct {
	ID              uuid.UUID
	Name            string
	TargetAmount    decimal.Decimal
	CurrentAmount   decimal.Decimal
	TargetDate      time.Time
	Priority        Priority
	Notes           string
	CreatedDate     time.Time
	ProgressUpdates []ProgressUpdate
}

type CreateParams struct {
	Name          string
	TargetAmount  decimal.Decimal
	CurrentAmount decimal.Decimal
	TargetDate    time.Time
	Priority      Priority
	Notes         string
}

func (p CreateParams) Validate() error {
	if strings.TrimSpace(p.Name) == "" {
		return ErrEmptyName
	}

	if !p.TargetAmount.IsPositive() {
		return fmt.Errorf("%w: got %s", ErrInvalidTarget, p.TargetAmount)
	}

	if p.CurrentAmount.IsNegative() {
		return fmt.Errorf("%w: got %s", ErrInvalidAmount, p.CurrentAmount)
	}

	if p.TargetDate.IsZero() {
		return ErrInvalidDate
	}

	if _, err := ParsePriority(string(p.Priority)); err != nil {
		return err
	}

	return nil
}

// UpdateParams holds the mutable fields of a goal. Nil fields are left as is.
type UpdateParams struct {
	CurrentAmount *decimal.Decimal
	TargetDate    *time.Time
	Priority      *Priority
	Notes         *string
	// ProgressNote annotates the progress update appended when the current
	// amount changes.
	ProgressNote string
}

func (p UpdateParams) Validate() error {
	if p.CurrentAmount != nil && p.CurrentAmount.IsNegative() {
		return fmt.Errorf("%w: got %s", ErrInvalidAmount, *p.CurrentAmount)
	}

	if p.TargetDate != nil && p.TargetDate.IsZero() {
		return ErrInvalidDate
	}

	if p.Priority != nil {
		if _, err := ParsePriority(string(*p.Priority)); err != nil {
			return err
		}
	}

	return nil
}

// apply mutates g and reports whether anything changed.
func (p UpdateParams) apply(g *Goal, today time.Time) bool {
	changed := false

	if p.CurrentAmount != nil && !p.CurrentAmount.Equal(g.CurrentAmount) {
		g.CurrentAmount = *p.CurrentAmount
		g.ProgressUpdates = append(g.ProgressUpdates, ProgressUpdate{
			Date:   today,
			Amount: *p.CurrentAmount,
			Notes:  p.ProgressNote,
		})
		changed = true
	}

	if p.TargetDate != nil && !day(*p.TargetDate).Equal(g.TargetDate) {
		g.TargetDate = day(*p.TargetDate)
		changed = true
	}

	if p.Priority != nil && *p.Priority != g.Priority {
		g.Priority = *p.Priority
		changed = true
	}

	if p.Notes != nil && *p.Notes != g.Notes {
		g.Notes = *p.Notes
		changed = true
	}

	return changed
}

func day(t time.Time) time.Time {
	return time.Date(t.Year(), t.Month(), t.Day(), 0, 0, 0, 0, time.UTC)
}

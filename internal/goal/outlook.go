package goal

import (
	"time"

	"github.com/shopspring/decimal"
)

var (
	hundred      = decimal.NewFromInt(100)
	minMonths    = decimal.RequireFromString("0.1")
	daysPerMonth = decimal.NewFromInt(30)
)

type Outlook struct {
	ProgressPercent      decimal.Decimal
	Remaining            decimal.Decimal
	DaysRemaining        int
	MonthlySavingsNeeded decimal.Decimal
	OnTrack              bool
	Complete             bool
	Overdue              bool
}

// Outlook projects the goal as of today.
//
// OnTrack compares the saved amount against a straight line that reaches the
// target on the target date but starts one year before it, whatever the real
// horizon of the goal. Goals created less than a year before their deadline
// therefore look on track earlier than they are. Once the deadline has passed
// OnTrack equals Complete.
func (g Goal) Outlook(today time.Time) Outlook {
	o := Outlook{
		ProgressPercent: decimal.Zero,
		Remaining:       g.TargetAmount.Sub(g.CurrentAmount),
	}

	if g.TargetAmount.IsPositive() {
		o.ProgressPercent = g.CurrentAmount.Mul(hundred).Div(g.TargetAmount)
	}

	o.Complete = o.ProgressPercent.GreaterThanOrEqual(hundred)
	o.DaysRemaining = daysBetween(today, g.TargetDate)

	if o.DaysRemaining <= 0 {
		o.MonthlySavingsNeeded = decimal.Zero
		o.OnTrack = o.Complete
		o.Overdue = !o.Complete

		return o
	}

	days := decimal.NewFromInt(int64(o.DaysRemaining))

	months := decimal.Max(days.Div(daysPerMonth), minMonths)
	o.MonthlySavingsNeeded = o.Remaining.Div(months).Round(2)

	elapsed := decimal.NewFromInt(1).Sub(days.Div(decimal.NewFromInt(365)))
	o.OnTrack = g.CurrentAmount.GreaterThanOrEqual(g.TargetAmount.Mul(elapsed))

	return o
}

// MonthsRemaining is the whole number of 30-day months left.
func (o Outlook) MonthsRemaining() int {
	return o.DaysRemaining / 30
}

type Summary struct {
	ActiveGoals     int             `json:"active_goals"`
	TotalTarget     decimal.Decimal `json:"total_target"`
	TotalCurrent    decimal.Decimal `json:"total_current"`
	OverallProgress decimal.Decimal `json:"overall_progress"`
}

func Summarize(goals []Goal) Summary {
	s := Summary{
		ActiveGoals:     len(goals),
		TotalTarget:     decimal.Zero,
		TotalCurrent:    decimal.Zero,
		OverallProgress: decimal.Zero,
	}

	for _, g := range goals {
		s.TotalTarget = s.TotalTarget.Add(g.TargetAmount)
		s.TotalCurrent = s.TotalCurrent.Add(g.CurrentAmount)
	}

	if s.TotalTarget.IsPositive() {
		s.OverallProgress = s.TotalCurrent.Mul(hundred).Div(s.TotalTarget)
	}

	return s
}

func daysBetween(from, to time.Time) int {
	return int(day(to).Sub(day(from)).Hours() / 24)
}

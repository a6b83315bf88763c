package analytics

import (
	"sort"
	"time"

	"github.com/shopspring/decimal"

	"github.com/MrJamesThe3rd/finsight/internal/budget"
	"github.com/MrJamesThe3rd/finsight/internal/expense"
)

const (
	StatusOnTrack    = "On Track"
	StatusOverBudget = "Over Budget"
)

var hundred = decimal.NewFromInt(100)

// Progress is the current-month utilization of one category budget.
// PercentageUsed is capped at 100; Remaining goes negative when overspent.
type Progress struct {
	Spent          decimal.Decimal
	Budget         decimal.Decimal
	Remaining      decimal.Decimal
	PercentageUsed decimal.Decimal
}

func (p Progress) Status() string {
	if p.Remaining.IsNegative() {
		return StatusOverBudget
	}

	return StatusOnTrack
}

// BudgetProgress reports every budgeted category against the spending of
// ref's month. Categories without a budget are left out. No expenses at all
// yields an empty map.
func BudgetProgress(expenses []expense.Expense, budgets budget.Budgets, ref time.Time) map[string]Progress {
	progress := make(map[string]Progress)
	if len(expenses) == 0 || len(budgets) == 0 {
		return progress
	}

	spent := TotalsByCategory(CurrentMonthExpenses(expenses, ref))

	for category, limit := range budgets {
		s := spent[category]

		pct := decimal.Zero
		if limit.IsPositive() {
			pct = decimal.Min(s.Mul(hundred).Div(limit), hundred)
		}

		progress[category] = Progress{
			Spent:          s,
			Budget:         limit,
			Remaining:      limit.Sub(s),
			PercentageUsed: pct,
		}
	}

	return progress
}

type BudgetSummary struct {
	TotalBudget    decimal.Decimal `json:"total_budget"`
	TotalSpent     decimal.Decimal `json:"total_spent"`
	Remaining      decimal.Decimal `json:"remaining"`
	PercentageUsed decimal.Decimal `json:"percentage_used"`
	// OverBudget lists overspent categories sorted by name.
	OverBudget []string `json:"over_budget"`
}

// SummarizeBudgets totals a progress map. PercentageUsed is not capped.
func SummarizeBudgets(progress map[string]Progress) BudgetSummary {
	s := BudgetSummary{
		TotalBudget:    decimal.Zero,
		TotalSpent:     decimal.Zero,
		PercentageUsed: decimal.Zero,
		OverBudget:     []string{},
	}

	for category, p := range progress {
		s.TotalBudget = s.TotalBudget.Add(p.Budget)
		s.TotalSpent = s.TotalSpent.Add(p.Spent)

		if p.Status() == StatusOverBudget {
			s.OverBudget = append(s.OverBudget, category)
		}
	}

	sort.Strings(s.OverBudget)

	s.Remaining = s.TotalBudget.Sub(s.TotalSpent)
	if s.TotalBudget.IsPositive() {
		s.PercentageUsed = s.TotalSpent.Mul(hundred).Div(s.TotalBudget)
	}

	return s
}

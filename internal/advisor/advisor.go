// Package advisor answers the AI questions of the tracker: expense
// categorization, spending insights, budget and savings recommendations.
// Remote answers always have a deterministic local fallback.
package advisor

import (
	"context"

	"github.com/shopspring/decimal"

	"github.com/MrJamesThe3rd/finsight/internal/budget"
	"github.com/MrJamesThe3rd/finsight/internal/config"
	"github.com/MrJamesThe3rd/finsight/internal/expense"
)

const (
	// MinInsightExpenses is the smallest history worth analyzing.
	MinInsightExpenses = 3
	// MinBudgetExpenses is the smallest history budgets are recommended from.
	MinBudgetExpenses = 5

	MsgNotEnoughData = "Not enough expense data to analyze patterns."
	MsgStartTracking = "Start tracking your expenses to get personalized recommendations."
)

//go:generate mockgen -source=advisor.go -destination=advisor_mock.go -package=advisor
type Advisor interface {
	Categorize(ctx context.Context, description string, amount decimal.Decimal) (string, error)
	SummarizeSpending(ctx context.Context, expenses []expense.Expense) ([]string, error)
	RecommendBudget(ctx context.Context, expenses []expense.Expense) (budget.Budgets, error)
	RecommendSavings(ctx context.Context, expenses []expense.Expense, budgets budget.Budgets) ([]string, error)
}

// New returns the remote advisor guarded by the heuristic fallback when an
// API key is configured, and the heuristic advisor alone otherwise.
func New(cfg *config.Config) Advisor {
	if !cfg.AIEnabled() {
		return Heuristic{}
	}

	client := NewClient(cfg.AI.BaseURL, cfg.AI.APIKey, cfg.AI.Model)

	return NewResilient(client, cfg.AI.Timeout)
}

package advisor

import (
	"context"
	"log/slog"
	"strings"
	"time"

	"github.com/shopspring/decimal"

	"github.com/MrJamesThe3rd/finsight/internal/budget"
	"github.com/MrJamesThe3rd/finsight/internal/expense"
)

// Resilient bounds every call to the primary advisor with a timeout and
// answers from the fallback when the primary fails. Its methods never
// return the primary's errors.
type Resilient struct {
	primary  Advisor
	fallback Advisor
	timeout  time.Duration
}

func NewResilient(primary Advisor, timeout time.Duration) *Resilient {
	return &Resilient{primary: primary, fallback: Heuristic{}, timeout: timeout}
}

func (r *Resilient) call(ctx context.Context) (context.Context, context.CancelFunc) {
	if r.timeout <= 0 {
		return context.WithCancel(ctx)
	}

	return context.WithTimeout(ctx, r.timeout)
}

func (r *Resilient) warn(ctx context.Context, op string, err error) {
	slog.WarnContext(ctx, "advisor call failed, using fallback", "operation", op, "error", err)
}

func (r *Resilient) Categorize(ctx context.Context, description string, amount decimal.Decimal) (string, error) {
	cctx, cancel := r.call(ctx)
	defer cancel()

	category, err := r.primary.Categorize(cctx, description, amount)
	if err == nil && strings.TrimSpace(category) != "" {
		return category, nil
	}

	if err == nil {
		err = ErrEmptyReply
	}

	r.warn(ctx, "categorize", err)

	return r.fallback.Categorize(ctx, description, amount)
}

func (r *Resilient) SummarizeSpending(ctx context.Context, expenses []expense.Expense) ([]string, error) {
	cctx, cancel := r.call(ctx)
	defer cancel()

	insights, err := r.primary.SummarizeSpending(cctx, expenses)
	if err == nil {
		return insights, nil
	}

	r.warn(ctx, "summarize_spending", err)

	return r.fallback.SummarizeSpending(ctx, expenses)
}

func (r *Resilient) RecommendBudget(ctx context.Context, expenses []expense.Expense) (budget.Budgets, error) {
	cctx, cancel := r.call(ctx)
	defer cancel()

	recommended, err := r.primary.RecommendBudget(cctx, expenses)
	if err == nil {
		return recommended, nil
	}

	r.warn(ctx, "recommend_budget", err)

	return r.fallback.RecommendBudget(ctx, expenses)
}

func (r *Resilient) RecommendSavings(ctx context.Context, expenses []expense.Expense, budgets budget.Budgets) ([]string, error) {
	cctx, cancel := r.call(ctx)
	defer cancel()

	tips, err := r.primary.RecommendSavings(cctx, expenses, budgets)
	if err == nil {
		return tips, nil
	}

	r.warn(ctx, "recommend_savings", err)

	return r.fallback.RecommendSavings(ctx, expenses, budgets)
}

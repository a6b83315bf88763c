package dashboard

import (
	"context"
	"fmt"
	"time"

	"github.com/MrJamesThe3rd/finsight/internal/analytics"
	"github.com/MrJamesThe3rd/finsight/internal/budget"
	"github.com/MrJamesThe3rd/finsight/internal/expense"
	"github.com/MrJamesThe3rd/finsight/internal/goal"
)

//go:generate mockgen -source=service.go -destination=source_mock.go -package=dashboard
type ExpenseLister interface {
	List(ctx context.Context) ([]expense.Expense, error)
}

type BudgetLister interface {
	List(ctx context.Context) (budget.Budgets, error)
}

type GoalLister interface {
	List(ctx context.Context) ([]goal.Goal, error)
}

type Service struct {
	expenses ExpenseLister
	budgets  BudgetLister
	goals    GoalLister
	now      func() time.Time
}

func NewService(expenses ExpenseLister, budgets BudgetLister, goals GoalLister) *Service {
	return &Service{expenses: expenses, budgets: budgets, goals: goals, now: time.Now}
}

// WithClock returns a copy of the service that uses now as the reference date.
func (s *Service) WithClock(now func() time.Time) *Service {
	c := *s
	c.now = now

	return &c
}

// Load reads the current records. Nothing is cached: every call sees the
// latest data.
func (s *Service) Load(ctx context.Context) (Input, error) {
	var (
		in  Input
		err error
	)

	if in.Expenses, err = s.expenses.List(ctx); err != nil {
		return Input{}, fmt.Errorf("listing expenses: %w", err)
	}

	if in.Budgets, err = s.budgets.List(ctx); err != nil {
		return Input{}, fmt.Errorf("listing budgets: %w", err)
	}

	if in.Goals, err = s.goals.List(ctx); err != nil {
		return Input{}, fmt.Errorf("listing goals: %w", err)
	}

	return in, nil
}

func (s *Service) Build(ctx context.Context, filter analytics.Filter, g analytics.Granularity) (*Dashboard, error) {
	in, err := s.Load(ctx)
	if err != nil {
		return nil, err
	}

	return Compute(in, filter, g, s.now()), nil
}

package budget

import (
	"context"
	"fmt"
	"strings"

	"github.com/shopspring/decimal"

	"github.com/MrJamesThe3rd/finsight/internal/events"
)

//go:generate mockgen -source=service.go -destination=repository_mock.go -package=budget
type Repository interface {
	ListBudgets(ctx context.Context) (Budgets, error)
	SaveBudget(ctx context.Context, category string, amount decimal.Decimal) error
	DeleteBudget(ctx context.Context, category string) error
}

type Service struct {
	repo      Repository
	publisher events.Publisher
}

func NewService(repo Repository, publisher events.Publisher) *Service {
	if publisher == nil {
		publisher = events.Nop{}
	}

	return &Service{repo: repo, publisher: publisher}
}

func (s *Service) List(ctx context.Context) (Budgets, error) {
	return s.repo.ListBudgets(ctx)
}

// Set creates the budget for category or replaces its current limit.
func (s *Service) Set(ctx context.Context, category string, amount decimal.Decimal) error {
	category = strings.TrimSpace(category)
	if category == "" {
		return ErrEmptyCategory
	}

	if amount.IsNegative() {
		return fmt.Errorf("%w: got %s", ErrInvalidAmount, amount)
	}

	if err := s.repo.SaveBudget(ctx, category, amount); err != nil {
		return fmt.Errorf("saving budget: %w", err)
	}

	events.Emit(ctx, s.publisher, events.New(events.BudgetSaved, category, map[string]string{
		"amount": amount.StringFixed(2),
	}))

	return nil
}

func (s *Service) Delete(ctx context.Context, category string) error {
	if err := s.repo.DeleteBudget(ctx, category); err != nil {
		return err
	}

	events.Emit(ctx, s.publisher, events.New(events.BudgetDeleted, category, nil))

	return nil
}

package insight

import (
	"context"
	"fmt"

	"golang.org/x/sync/errgroup"

	"github.com/MrJamesThe3rd/finsight/internal/budget"
	"github.com/MrJamesThe3rd/finsight/internal/events"
	"github.com/MrJamesThe3rd/finsight/internal/expense"
)

//go:generate mockgen -source=service.go -destination=repository_mock.go -package=insight
type Repository interface {
	ListInsights(ctx context.Context) ([]string, error)
	ReplaceInsights(ctx context.Context, insights []string) error
}

// Advisor is the subset of the AI advisor used to build a report.
type Advisor interface {
	SummarizeSpending(ctx context.Context, expenses []expense.Expense) ([]string, error)
	RecommendSavings(ctx context.Context, expenses []expense.Expense, budgets budget.Budgets) ([]string, error)
}

type Service struct {
	repo      Repository
	advisor   Advisor
	publisher events.Publisher
}

func NewService(repo Repository, advisor Advisor, publisher events.Publisher) *Service {
	if publisher == nil {
		publisher = events.Nop{}
	}

	return &Service{repo: repo, advisor: advisor, publisher: publisher}
}

// Report is the outcome of one analysis run. Only Insights are persisted.
type Report struct {
	Insights        []string
	Recommendations []string
}

func (s *Service) List(ctx context.Context) ([]string, error) {
	return s.repo.ListInsights(ctx)
}

// Refresh analyzes the snapshot and replaces the stored insights with the
// result. Both advisor questions are asked concurrently.
func (s *Service) Refresh(ctx context.Context, expenses []expense.Expense, budgets budget.Budgets) (*Report, error) {
	var report Report

	g, gctx := errgroup.WithContext(ctx)

	g.Go(func() error {
		insights, err := s.advisor.SummarizeSpending(gctx, expenses)
		if err != nil {
			return fmt.Errorf("summarizing spending: %w", err)
		}

		report.Insights = insights

		return nil
	})

	g.Go(func() error {
		tips, err := s.advisor.RecommendSavings(gctx, expenses, budgets)
		if err != nil {
			return fmt.Errorf("recommending savings: %w", err)
		}

		report.Recommendations = tips

		return nil
	})

	if err := g.Wait(); err != nil {
		return nil, err
	}

	if report.Insights == nil {
		report.Insights = []string{}
	}

	if err := s.repo.ReplaceInsights(ctx, report.Insights); err != nil {
		return nil, fmt.Errorf("saving insights: %w", err)
	}

	events.Emit(ctx, s.publisher, events.New(events.InsightsRefreshed, "", map[string]int{
		"count": len(report.Insights),
	}))

	return &report, nil
}

package expense

import (
	"context"
	"fmt"
	"log/slog"
	"strings"

	"github.com/google/uuid"
	"github.com/shopspring/decimal"

	"github.com/MrJamesThe3rd/finsight/internal/events"
)

//go:generate mockgen -source=service.go -destination=repository_mock.go -package=expense
type Repository interface {
	CreateExpense(ctx context.Context, e *Expense) error
	GetExpense(ctx context.Context, id uuid.UUID) (*Expense, error)
	ListExpenses(ctx context.Context) ([]Expense, error)
	DeleteExpense(ctx context.Context, id uuid.UUID) error
}

// Categorizer suggests a category for an expense that was submitted without one.
type Categorizer interface {
	Categorize(ctx context.Context, description string, amount decimal.Decimal) (string, error)
}

type Service struct {
	repo        Repository
	categorizer Categorizer
	publisher   events.Publisher
}

type Option func(*Service)

func WithCategorizer(c Categorizer) Option {
	return func(s *Service) { s.categorizer = c }
}

func WithPublisher(p events.Publisher) Option {
	return func(s *Service) { s.publisher = p }
}

func NewService(repo Repository, opts ...Option) *Service {
	s := &Service{repo: repo, publisher: events.Nop{}}
	for _, opt := range opts {
		opt(s)
	}

	return s
}

func (s *Service) Create(ctx context.Context, params CreateParams) (*Expense, error) {
	if err := params.Validate(); err != nil {
		return nil, err
	}

	category := strings.TrimSpace(params.Category)
	if category == "" {
		category = s.categorize(ctx, params)
	}

	if category == "" {
		return nil, ErrEmptyCategory
	}

	e := &Expense{
		ID:          uuid.New(),
		Description: strings.TrimSpace(params.Description),
		Amount:      params.Amount,
		Date:        Day(params.Date),
		Category:    category,
	}

	if err := s.repo.CreateExpense(ctx, e); err != nil {
		return nil, fmt.Errorf("creating expense: %w", err)
	}

	events.Emit(ctx, s.publisher, events.New(events.ExpenseCreated, e.ID.String(), map[string]string{
		"category": e.Category,
		"amount":   e.Amount.StringFixed(2),
		"date":     e.Date.Format("2006-01-02"),
	}))

	return e, nil
}

func (s *Service) categorize(ctx context.Context, params CreateParams) string {
	if s.categorizer == nil {
		return ""
	}

	category, err := s.categorizer.Categorize(ctx, params.Description, params.Amount)
	if err != nil {
		slog.WarnContext(ctx, "categorization failed", "description", params.Description, "error", err)
		return CategoryOther
	}

	return strings.TrimSpace(category)
}

func (s *Service) Get(ctx context.Context, id uuid.UUID) (*Expense, error) {
	return s.repo.GetExpense(ctx, id)
}

// List returns every expense, oldest first.
func (s *Service) List(ctx context.Context) ([]Expense, error) {
	return s.repo.ListExpenses(ctx)
}

func (s *Service) Delete(ctx context.Context, id uuid.UUID) error {
	if err := s.repo.DeleteExpense(ctx, id); err != nil {
		return err
	}

	events.Emit(ctx, s.publisher, events.New(events.ExpenseDeleted, id.String(), nil))

	return nil
}

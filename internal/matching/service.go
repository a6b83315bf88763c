// Package matching remembers category corrections. A rule maps a
// description fragment to a category and wins over the advisor's guess.
package matching

import (
	"context"
	"errors"
	"fmt"
	"strings"
	"time"

	"github.com/shopspring/decimal"
)

var (
	ErrNotFound     = errors.New("rule not found")
	ErrEmptyPattern = errors.New("rule pattern is required")
	ErrEmptyTarget  = errors.New("rule category is required")
)

type Rule struct {
	Pattern   string
	Category  string
	CreatedAt time.Time
}

//go:generate mockgen -source=service.go -destination=repository_mock.go -package=matching
type Repository interface {
	FindMatch(ctx context.Context, description string) (string, error)
	SaveRule(ctx context.Context, rule Rule) error
	ListRules(ctx context.Context) ([]Rule, error)
	DeleteRule(ctx context.Context, pattern string) error
}

// Categorizer answers when no rule matches.
type Categorizer interface {
	Categorize(ctx context.Context, description string, amount decimal.Decimal) (string, error)
}

type Service struct {
	repo     Repository
	fallback Categorizer
}

func NewService(repo Repository, fallback Categorizer) *Service {
	return &Service{repo: repo, fallback: fallback}
}

// Suggest returns the category of the longest matching rule, or "" when no
// rule matches.
func (s *Service) Suggest(ctx context.Context, description string) (string, error) {
	return s.repo.FindMatch(ctx, description)
}

// Categorize implements expense.Categorizer: learned rules first, then the
// fallback.
func (s *Service) Categorize(ctx context.Context, description string, amount decimal.Decimal) (string, error) {
	category, err := s.Suggest(ctx, description)
	if err != nil {
		return "", fmt.Errorf("matching rules: %w", err)
	}

	if category != "" || s.fallback == nil {
		return category, nil
	}

	return s.fallback.Categorize(ctx, description, amount)
}

// Learn stores or replaces the rule for pattern.
func (s *Service) Learn(ctx context.Context, pattern, category string) (*Rule, error) {
	rule := Rule{
		Pattern:   strings.ToLower(strings.TrimSpace(pattern)),
		Category:  strings.TrimSpace(category),
		CreatedAt: time.Now().UTC(),
	}

	if rule.Pattern == "" {
		return nil, ErrEmptyPattern
	}

	if rule.Category == "" {
		return nil, ErrEmptyTarget
	}

	if err := s.repo.SaveRule(ctx, rule); err != nil {
		return nil, fmt.Errorf("saving rule: %w", err)
	}

	return &rule, nil
}

func (s *Service) List(ctx context.Context) ([]Rule, error) {
	return s.repo.ListRules(ctx)
}

func (s *Service) Forget(ctx context.Context, pattern string) error {
	return s.repo.DeleteRule(ctx, strings.ToLower(strings.TrimSpace(pattern)))
}

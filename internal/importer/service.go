package importer

import (
	"context"
	"fmt"
	"io"
	"strings"
	"time"

	"github.com/shopspring/decimal"

	"github.com/MrJamesThe3rd/finsight/internal/expense"
)

//go:generate mockgen -source=service.go -destination=expenses_mock.go -package=importer
type Expenses interface {
	List(ctx context.Context) ([]expense.Expense, error)
	Create(ctx context.Context, params expense.CreateParams) (*expense.Expense, error)
}

type Service struct {
	expenses Expenses
}

func NewService(expenses Expenses) *Service {
	return &Service{expenses: expenses}
}

// Conflict pairs an incoming row with the stored expense it appears to repeat.
type Conflict struct {
	Incoming expense.CreateParams
	Existing expense.Expense
}

type Result struct {
	Imported  []expense.Expense
	New       []expense.CreateParams
	Conflicts []Conflict
}

// Import parses r and stores its expenses. When some rows match expenses
// already stored (same date, amount and description) nothing is written and
// the result lists the split, so the caller can confirm with CreateBatch.
func (s *Service) Import(ctx context.Context, r io.Reader) (*Result, error) {
	params, err := Parse(r)
	if err != nil {
		return nil, err
	}

	for i, p := range params {
		if err := p.Validate(); err != nil {
			return nil, fmt.Errorf("row %d: %w", i+1, err)
		}
	}

	if len(params) == 0 {
		return &Result{Imported: []expense.Expense{}}, nil
	}

	existing, err := s.expenses.List(ctx)
	if err != nil {
		return nil, fmt.Errorf("listing expenses: %w", err)
	}

	index := make(map[key]expense.Expense, len(existing))
	for _, e := range existing {
		index[keyOf(e.Date, e.Amount, e.Description)] = e
	}

	result := &Result{}

	for _, p := range params {
		if e, ok := index[keyOf(p.Date, p.Amount, p.Description)]; ok {
			result.Conflicts = append(result.Conflicts, Conflict{Incoming: p, Existing: e})
			continue
		}

		result.New = append(result.New, p)
	}

	if len(result.Conflicts) > 0 {
		return result, nil
	}

	imported, err := s.CreateBatch(ctx, params)
	if err != nil {
		return nil, err
	}

	return &Result{Imported: imported}, nil
}

// CreateBatch stores every row. Rows without a category are categorized by
// the expense service.
func (s *Service) CreateBatch(ctx context.Context, params []expense.CreateParams) ([]expense.Expense, error) {
	created := make([]expense.Expense, 0, len(params))

	for i, p := range params {
		e, err := s.expenses.Create(ctx, p)
		if err != nil {
			return created, fmt.Errorf("creating expense %d of %d: %w", i+1, len(params), err)
		}

		created = append(created, *e)
	}

	return created, nil
}

type key struct {
	date        string
	amount      string
	description string
}

func keyOf(date time.Time, amount decimal.Decimal, description string) key {
	return key{
		date:        date.Format(time.DateOnly),
		amount:      amount.StringFixed(2),
		description: strings.ToLower(strings.TrimSpace(description)),
	}
}

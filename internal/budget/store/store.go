package store

import (
	"context"
	"database/sql"
	"fmt"

	"github.com/shopspring/decimal"

	"github.com/MrJamesThe3rd/finsight/internal/budget"
)

type Store struct {
	db *sql.DB
}

func New(db *sql.DB) *Store {
	return &Store{db: db}
}

func (s *Store) ListBudgets(ctx context.Context) (budget.Budgets, error) {
	rows, err := s.db.QueryContext(ctx, `SELECT category, amount FROM budgets`)
	if err != nil {
		return nil, fmt.Errorf("listing budgets: %w", err)
	}
	defer rows.Close()

	budgets := budget.Budgets{}

	for rows.Next() {
		var category, amount string
		if err := rows.Scan(&category, &amount); err != nil {
			return nil, fmt.Errorf("scanning budget: %w", err)
		}

		d, err := decimal.NewFromString(amount)
		if err != nil {
			return nil, fmt.Errorf("parsing budget amount %q: %w", amount, err)
		}

		budgets[category] = d
	}

	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("iterating budget rows: %w", err)
	}

	return budgets, nil
}

const upsertBudget = `
	INSERT INTO budgets (category, amount)
	VALUES ($1, $2)
	ON CONFLICT (category) DO UPDATE SET amount = EXCLUDED.amount
`

func (s *Store) SaveBudget(ctx context.Context, category string, amount decimal.Decimal) error {
	if _, err := s.db.ExecContext(ctx, upsertBudget, category, amount.String()); err != nil {
		return fmt.Errorf("saving budget: %w", err)
	}

	return nil
}

// InsertBudget writes one budget as part of tx.
func InsertBudget(ctx context.Context, tx *sql.Tx, category string, amount decimal.Decimal) error {
	if _, err := tx.ExecContext(ctx, upsertBudget, category, amount.String()); err != nil {
		return fmt.Errorf("inserting budget %q: %w", category, err)
	}

	return nil
}

func (s *Store) DeleteBudget(ctx context.Context, category string) error {
	res, err := s.db.ExecContext(ctx, `DELETE FROM budgets WHERE category = $1`, category)
	if err != nil {
		return fmt.Errorf("deleting budget: %w", err)
	}

	n, err := res.RowsAffected()
	if err != nil {
		return fmt.Errorf("deleting budget: %w", err)
	}

	if n == 0 {
		return budget.ErrNotFound
	}

	return nil
}

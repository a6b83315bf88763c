package store

import (
	"context"
	"database/sql"
	"errors"
	"fmt"
	"time"

	"github.com/google/uuid"
	"github.com/shopspring/decimal"

	"github.com/MrJamesThe3rd/finsight/internal/expense"
)

type Store struct {
	db *sql.DB
}

func New(db *sql.DB) *Store {
	return &Store{db: db}
}

// scanner is satisfied by both *sql.Row and *sql.Rows.
type scanner interface {
	Scan(dest ...any) error
}

// Expected column order: id, description, amount, date, category
func scanExpense(s scanner) (expense.Expense, error) {
	var (
		e              expense.Expense
		id, amt, dateS string
	)

	if err := s.Scan(&id, &e.Description, &amt, &dateS, &e.Category); err != nil {
		return expense.Expense{}, err
	}

	var err error
	if e.ID, err = uuid.Parse(id); err != nil {
		return expense.Expense{}, fmt.Errorf("parsing id %q: %w", id, err)
	}

	if e.Amount, err = decimal.NewFromString(amt); err != nil {
		return expense.Expense{}, fmt.Errorf("parsing amount %q: %w", amt, err)
	}

	if e.Date, err = time.Parse(time.DateOnly, dateS); err != nil {
		return expense.Expense{}, fmt.Errorf("parsing date %q: %w", dateS, err)
	}

	return e, nil
}

const selectExpenseColumns = `id, description, amount, date, category`

func (s *Store) CreateExpense(ctx context.Context, e *expense.Expense) error {
	if e.ID == uuid.Nil {
		e.ID = uuid.New()
	}

	if err := insert(ctx, s.db, e); err != nil {
		return fmt.Errorf("creating expense: %w", err)
	}

	return nil
}

// InsertExpense writes e as part of tx.
func InsertExpense(ctx context.Context, tx *sql.Tx, e *expense.Expense) error {
	if err := insert(ctx, tx, e); err != nil {
		return fmt.Errorf("inserting expense %s: %w", e.ID, err)
	}

	return nil
}

// execer is satisfied by both *sql.DB and *sql.Tx.
type execer interface {
	ExecContext(ctx context.Context, query string, args ...any) (sql.Result, error)
}

func insert(ctx context.Context, db execer, e *expense.Expense) error {
	query := `
		INSERT INTO expenses (id, description, amount, date, category)
		VALUES ($1, $2, $3, $4, $5)
	`

	_, err := db.ExecContext(ctx, query,
		e.ID.String(),
		e.Description,
		e.Amount.String(),
		e.Date.Format(time.DateOnly),
		e.Category,
	)

	return err
}

func (s *Store) GetExpense(ctx context.Context, id uuid.UUID) (*expense.Expense, error) {
	query := `SELECT ` + selectExpenseColumns + ` FROM expenses WHERE id = $1`

	e, err := scanExpense(s.db.QueryRowContext(ctx, query, id.String()))
	if err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return nil, expense.ErrNotFound
		}

		return nil, fmt.Errorf("getting expense: %w", err)
	}

	return &e, nil
}

func (s *Store) ListExpenses(ctx context.Context) ([]expense.Expense, error) {
	query := `SELECT ` + selectExpenseColumns + ` FROM expenses ORDER BY date ASC, id ASC`

	rows, err := s.db.QueryContext(ctx, query)
	if err != nil {
		return nil, fmt.Errorf("listing expenses: %w", err)
	}
	defer rows.Close()

	expenses := []expense.Expense{}

	for rows.Next() {
		e, err := scanExpense(rows)
		if err != nil {
			return nil, fmt.Errorf("scanning expense: %w", err)
		}

		expenses = append(expenses, e)
	}

	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("iterating expense rows: %w", err)
	}

	return expenses, nil
}

func (s *Store) DeleteExpense(ctx context.Context, id uuid.UUID) error {
	res, err := s.db.ExecContext(ctx, `DELETE FROM expenses WHERE id = $1`, id.String())
	if err != nil {
		return fmt.Errorf("deleting expense: %w", err)
	}

	n, err := res.RowsAffected()
	if err != nil {
		return fmt.Errorf("deleting expense: %w", err)
	}

	if n == 0 {
		return expense.ErrNotFound
	}

	return nil
}

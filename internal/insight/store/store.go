package store

import (
	"context"
	"database/sql"
	"fmt"
)

type Store struct {
	db *sql.DB
}

func New(db *sql.DB) *Store {
	return &Store{db: db}
}

func (s *Store) ListInsights(ctx context.Context) ([]string, error) {
	rows, err := s.db.QueryContext(ctx, `SELECT content FROM insights ORDER BY position ASC`)
	if err != nil {
		return nil, fmt.Errorf("listing insights: %w", err)
	}
	defer rows.Close()

	insights := []string{}

	for rows.Next() {
		var content string
		if err := rows.Scan(&content); err != nil {
			return nil, fmt.Errorf("scanning insight: %w", err)
		}

		insights = append(insights, content)
	}

	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("iterating insight rows: %w", err)
	}

	return insights, nil
}

// ReplaceInsights swaps the whole collection atomically.
func (s *Store) ReplaceInsights(ctx context.Context, insights []string) error {
	tx, err := s.db.BeginTx(ctx, nil)
	if err != nil {
		return fmt.Errorf("beginning transaction: %w", err)
	}
	defer tx.Rollback()

	if err := ReplaceTx(ctx, tx, insights); err != nil {
		return err
	}

	if err := tx.Commit(); err != nil {
		return fmt.Errorf("committing insights: %w", err)
	}

	return nil
}

// ReplaceTx clears and rewrites the collection as part of tx.
func ReplaceTx(ctx context.Context, tx *sql.Tx, insights []string) error {
	if _, err := tx.ExecContext(ctx, `DELETE FROM insights`); err != nil {
		return fmt.Errorf("clearing insights: %w", err)
	}

	for i, content := range insights {
		if _, err := tx.ExecContext(ctx, `INSERT INTO insights (position, content) VALUES ($1, $2)`, i, content); err != nil {
			return fmt.Errorf("inserting insight %d: %w", i, err)
		}
	}

	return nil
}

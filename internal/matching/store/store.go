package store

import (
	"context"
	"database/sql"
	"errors"
	"fmt"
	"time"

	"github.com/MrJamesThe3rd/finsight/internal/matching"
)

type Store struct {
	db *sql.DB
}

func New(db *sql.DB) *Store {
	return &Store{db: db}
}

// FindMatch picks the longest pattern contained in description, newest first
// on ties. Patterns are stored lower-cased.
func (s *Store) FindMatch(ctx context.Context, description string) (string, error) {
	query := `
		SELECT category
		FROM category_rules
		WHERE LOWER($1) LIKE '%' || pattern || '%'
		ORDER BY LENGTH(pattern) DESC, created_at DESC
		LIMIT 1
	`

	var category string

	err := s.db.QueryRowContext(ctx, query, description).Scan(&category)
	if err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return "", nil
		}

		return "", fmt.Errorf("finding match: %w", err)
	}

	return category, nil
}

func (s *Store) SaveRule(ctx context.Context, rule matching.Rule) error {
	query := `
		INSERT INTO category_rules (pattern, category, created_at)
		VALUES ($1, $2, $3)
		ON CONFLICT (pattern) DO UPDATE SET category = EXCLUDED.category, created_at = EXCLUDED.created_at
	`

	_, err := s.db.ExecContext(ctx, query, rule.Pattern, rule.Category, rule.CreatedAt.Format(time.RFC3339Nano))
	if err != nil {
		return fmt.Errorf("saving rule: %w", err)
	}

	return nil
}

func (s *Store) ListRules(ctx context.Context) ([]matching.Rule, error) {
	rows, err := s.db.QueryContext(ctx, `SELECT pattern, category, created_at FROM category_rules ORDER BY pattern ASC`)
	if err != nil {
		return nil, fmt.Errorf("listing rules: %w", err)
	}
	defer rows.Close()

	rules := []matching.Rule{}

	for rows.Next() {
		var (
			r         matching.Rule
			createdAt string
		)

		if err := rows.Scan(&r.Pattern, &r.Category, &createdAt); err != nil {
			return nil, fmt.Errorf("scanning rule: %w", err)
		}

		if r.CreatedAt, err = time.Parse(time.RFC3339Nano, createdAt); err != nil {
			return nil, fmt.Errorf("parsing created_at %q: %w", createdAt, err)
		}

		rules = append(rules, r)
	}

	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("iterating rule rows: %w", err)
	}

	return rules, nil
}

func (s *Store) DeleteRule(ctx context.Context, pattern string) error {
	res, err := s.db.ExecContext(ctx, `DELETE FROM category_rules WHERE pattern = $1`, pattern)
	if err != nil {
		return fmt.Errorf("deleting rule: %w", err)
	}

	n, err := res.RowsAffected()
	if err != nil {
		return fmt.Errorf("deleting rule: %w", err)
	}

	if n == 0 {
		return matching.ErrNotFound
	}

	return nil
}

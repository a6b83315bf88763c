package store

import (
	"context"
	"database/sql"
	"errors"
	"fmt"
	"time"

	"github.com/google/uuid"
	"github.com/shopspring/decimal"

	"github.com/MrJamesThe3rd/finsight/internal/goal"
)

type Store struct {
	db *sql.DB
}

func New(db *sql.DB) *Store {
	return &Store{db: db}
}

type scanner interface {
	Scan(dest ...any) error
}

// Expected column order: id, name, target_amount, current_amount, target_date, priority, notes, created_date
func scanGoal(s scanner) (goal.Goal, error) {
	var (
		g                                          goal.Goal
		id, target, current, targetDate, createdAt string
		priority                                   string
	)

	if err := s.Scan(&id, &g.Name, &target, &current, &targetDate, &priority, &g.Notes, &createdAt); err != nil {
		return goal.Goal{}, err
	}

	var err error
	if g.ID, err = uuid.Parse(id); err != nil {
		return goal.Goal{}, fmt.Errorf("parsing id %q: %w", id, err)
	}

	if g.TargetAmount, err = decimal.NewFromString(target); err != nil {
		return goal.Goal{}, fmt.Errorf("parsing target amount %q: %w", target, err)
	}

	if g.CurrentAmount, err = decimal.NewFromString(current); err != nil {
		return goal.Goal{}, fmt.Errorf("parsing current amount %q: %w", current, err)
	}

	if g.TargetDate, err = time.Parse(time.DateOnly, targetDate); err != nil {
		return goal.Goal{}, fmt.Errorf("parsing target date %q: %w", targetDate, err)
	}

	if g.CreatedDate, err = time.Parse(time.DateOnly, createdAt); err != nil {
		return goal.Goal{}, fmt.Errorf("parsing created date %q: %w", createdAt, err)
	}

	g.Priority = goal.Priority(priority)
	g.ProgressUpdates = []goal.ProgressUpdate{}

	return g, nil
}

const selectGoalColumns = `id, name, target_amount, current_amount, target_date, priority, notes, created_date`

func (s *Store) CreateGoal(ctx context.Context, g *goal.Goal) error {
	if g.ID == uuid.Nil {
		g.ID = uuid.New()
	}

	tx, err := s.db.BeginTx(ctx, nil)
	if err != nil {
		return fmt.Errorf("beginning transaction: %w", err)
	}
	defer tx.Rollback()

	if err := InsertGoal(ctx, tx, g); err != nil {
		return fmt.Errorf("creating goal: %w", err)
	}

	if err := tx.Commit(); err != nil {
		return fmt.Errorf("committing goal: %w", err)
	}

	return nil
}

// InsertGoal writes g and its progress updates using tx.
func InsertGoal(ctx context.Context, tx *sql.Tx, g *goal.Goal) error {
	query := `
		INSERT INTO goals (id, name, target_amount, current_amount, target_date, priority, notes, created_date)
		VALUES ($1, $2, $3, $4, $5, $6, $7, $8)
	`

	_, err := tx.ExecContext(ctx, query,
		g.ID.String(),
		g.Name,
		g.TargetAmount.String(),
		g.CurrentAmount.String(),
		g.TargetDate.Format(time.DateOnly),
		string(g.Priority),
		g.Notes,
		g.CreatedDate.Format(time.DateOnly),
	)
	if err != nil {
		return fmt.Errorf("inserting goal %s: %w", g.ID, err)
	}

	return insertProgress(ctx, tx, g)
}

func insertProgress(ctx context.Context, tx *sql.Tx, g *goal.Goal) error {
	query := `
		INSERT INTO goal_progress_updates (goal_id, position, date, amount, notes)
		VALUES ($1, $2, $3, $4, $5)
	`

	for i, u := range g.ProgressUpdates {
		_, err := tx.ExecContext(ctx, query,
			g.ID.String(),
			i,
			u.Date.Format(time.DateOnly),
			u.Amount.String(),
			u.Notes,
		)
		if err != nil {
			return fmt.Errorf("inserting progress update %d of goal %s: %w", i, g.ID, err)
		}
	}

	return nil
}

func (s *Store) GetGoal(ctx context.Context, id uuid.UUID) (*goal.Goal, error) {
	query := `SELECT ` + selectGoalColumns + ` FROM goals WHERE id = $1`

	g, err := scanGoal(s.db.QueryRowContext(ctx, query, id.String()))
	if err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return nil, goal.ErrNotFound
		}

		return nil, fmt.Errorf("getting goal: %w", err)
	}

	updates, err := s.listProgress(ctx, `WHERE goal_id = $1`, id.String())
	if err != nil {
		return nil, err
	}

	g.ProgressUpdates = append(g.ProgressUpdates, updates[g.ID]...)

	return &g, nil
}

func (s *Store) ListGoals(ctx context.Context) ([]goal.Goal, error) {
	query := `SELECT ` + selectGoalColumns + ` FROM goals ORDER BY created_date ASC, name ASC`

	rows, err := s.db.QueryContext(ctx, query)
	if err != nil {
		return nil, fmt.Errorf("listing goals: %w", err)
	}
	defer rows.Close()

	goals := []goal.Goal{}

	for rows.Next() {
		g, err := scanGoal(rows)
		if err != nil {
			return nil, fmt.Errorf("scanning goal: %w", err)
		}

		goals = append(goals, g)
	}

	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("iterating goal rows: %w", err)
	}

	rows.Close()

	updates, err := s.listProgress(ctx, "")
	if err != nil {
		return nil, err
	}

	for i := range goals {
		goals[i].ProgressUpdates = append(goals[i].ProgressUpdates, updates[goals[i].ID]...)
	}

	return goals, nil
}

func (s *Store) listProgress(ctx context.Context, where string, args ...any) (map[uuid.UUID][]goal.ProgressUpdate, error) {
	query := `SELECT goal_id, date, amount, notes FROM goal_progress_updates ` + where + ` ORDER BY goal_id, position`

	rows, err := s.db.QueryContext(ctx, query, args...)
	if err != nil {
		return nil, fmt.Errorf("listing progress updates: %w", err)
	}
	defer rows.Close()

	updates := make(map[uuid.UUID][]goal.ProgressUpdate)

	for rows.Next() {
		var goalID, date, amount, notes string
		if err := rows.Scan(&goalID, &date, &amount, &notes); err != nil {
			return nil, fmt.Errorf("scanning progress update: %w", err)
		}

		id, err := uuid.Parse(goalID)
		if err != nil {
			return nil, fmt.Errorf("parsing goal id %q: %w", goalID, err)
		}

		u := goal.ProgressUpdate{Notes: notes}

		if u.Date, err = time.Parse(time.DateOnly, date); err != nil {
			return nil, fmt.Errorf("parsing progress date %q: %w", date, err)
		}

		if u.Amount, err = decimal.NewFromString(amount); err != nil {
			return nil, fmt.Errorf("parsing progress amount %q: %w", amount, err)
		}

		updates[id] = append(updates[id], u)
	}

	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("iterating progress rows: %w", err)
	}

	return updates, nil
}

func (s *Store) UpdateGoal(ctx context.Context, g *goal.Goal) error {
	tx, err := s.db.BeginTx(ctx, nil)
	if err != nil {
		return fmt.Errorf("beginning transaction: %w", err)
	}
	defer tx.Rollback()

	query := `
		UPDATE goals
		SET current_amount = $1, target_date = $2, priority = $3, notes = $4
		WHERE id = $5
	`

	res, err := tx.ExecContext(ctx, query,
		g.CurrentAmount.String(),
		g.TargetDate.Format(time.DateOnly),
		string(g.Priority),
		g.Notes,
		g.ID.String(),
	)
	if err != nil {
		return fmt.Errorf("updating goal: %w", err)
	}

	if n, err := res.RowsAffected(); err == nil && n == 0 {
		return goal.ErrNotFound
	}

	if _, err := tx.ExecContext(ctx, `DELETE FROM goal_progress_updates WHERE goal_id = $1`, g.ID.String()); err != nil {
		return fmt.Errorf("clearing progress updates: %w", err)
	}

	if err := insertProgress(ctx, tx, g); err != nil {
		return err
	}

	if err := tx.Commit(); err != nil {
		return fmt.Errorf("committing goal update: %w", err)
	}

	return nil
}

func (s *Store) DeleteGoal(ctx context.Context, id uuid.UUID) error {
	tx, err := s.db.BeginTx(ctx, nil)
	if err != nil {
		return fmt.Errorf("beginning transaction: %w", err)
	}
	defer tx.Rollback()

	if _, err := tx.ExecContext(ctx, `DELETE FROM goal_progress_updates WHERE goal_id = $1`, id.String()); err != nil {
		return fmt.Errorf("deleting progress updates: %w", err)
	}

	res, err := tx.ExecContext(ctx, `DELETE FROM goals WHERE id = $1`, id.String())
	if err != nil {
		return fmt.Errorf("deleting goal: %w", err)
	}

	n, err := res.RowsAffected()
	if err != nil {
		return fmt.Errorf("deleting goal: %w", err)
	}

	if n == 0 {
		return goal.ErrNotFound
	}

	if err := tx.Commit(); err != nil {
		return fmt.Errorf("committing goal delete: %w", err)
	}

	return nil
}

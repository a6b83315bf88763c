package store

import (
	"context"
	"database/sql"
	"fmt"

	"github.com/MrJamesThe3rd/finsight/internal/backup"
	budgetStore "github.com/MrJamesThe3rd/finsight/internal/budget/store"
	expenseStore "github.com/MrJamesThe3rd/finsight/internal/expense/store"
	goalStore "github.com/MrJamesThe3rd/finsight/internal/goal/store"
	insightStore "github.com/MrJamesThe3rd/finsight/internal/insight/store"
)

type Store struct {
	db       *sql.DB
	expenses *expenseStore.Store
	budgets  *budgetStore.Store
	goals    *goalStore.Store
	insights *insightStore.Store
}

func New(db *sql.DB) *Store {
	return &Store{
		db:       db,
		expenses: expenseStore.New(db),
		budgets:  budgetStore.New(db),
		goals:    goalStore.New(db),
		insights: insightStore.New(db),
	}
}

func (s *Store) Snapshot(ctx context.Context) (*backup.Snapshot, error) {
	var (
		snap backup.Snapshot
		err  error
	)

	if snap.Expenses, err = s.expenses.ListExpenses(ctx); err != nil {
		return nil, err
	}

	if snap.Budgets, err = s.budgets.ListBudgets(ctx); err != nil {
		return nil, err
	}

	if snap.Goals, err = s.goals.ListGoals(ctx); err != nil {
		return nil, err
	}

	if snap.Insights, err = s.insights.ListInsights(ctx); err != nil {
		return nil, err
	}

	return &snap, nil
}

func (s *Store) BeginRestore(ctx context.Context) (backup.RestoreTx, error) {
	tx, err := s.db.BeginTx(ctx, nil)
	if err != nil {
		return nil, fmt.Errorf("beginning transaction: %w", err)
	}

	return &restoreTx{tx: tx}, nil
}

type restoreTx struct {
	tx *sql.Tx
}

func (rtx *restoreTx) Commit() error   { return rtx.tx.Commit() }
func (rtx *restoreTx) Rollback() error { return rtx.tx.Rollback() }

// Children before parents.
var clearOrder = []string{"goal_progress_updates", "goals", "expenses", "budgets"}

func (rtx *restoreTx) Replace(ctx context.Context, snap *backup.Snapshot) error {
	for _, table := range clearOrder {
		if _, err := rtx.tx.ExecContext(ctx, `DELETE FROM `+table); err != nil {
			return fmt.Errorf("clearing %s: %w", table, err)
		}
	}

	for i := range snap.Expenses {
		if err := expenseStore.InsertExpense(ctx, rtx.tx, &snap.Expenses[i]); err != nil {
			return err
		}
	}

	for _, category := range snap.Budgets.Categories() {
		if err := budgetStore.InsertBudget(ctx, rtx.tx, category, snap.Budgets[category]); err != nil {
			return err
		}
	}

	for i := range snap.Goals {
		if err := goalStore.InsertGoal(ctx, rtx.tx, &snap.Goals[i]); err != nil {
			return err
		}
	}

	return insightStore.ReplaceTx(ctx, rtx.tx, snap.Insights)
}

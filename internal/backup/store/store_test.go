package store_test

import (
	"context"
	"strings"
	"testing"
	"time"

	"github.com/google/uuid"
	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/MrJamesThe3rd/finsight/internal/backup"
	"github.com/MrJamesThe3rd/finsight/internal/backup/store"
	budgetStore "github.com/MrJamesThe3rd/finsight/internal/budget/store"
	"github.com/MrJamesThe3rd/finsight/internal/database/dbtest"
	"github.com/MrJamesThe3rd/finsight/internal/expense"
	expenseStore "github.com/MrJamesThe3rd/finsight/internal/expense/store"
	"github.com/MrJamesThe3rd/finsight/internal/goal"
	goalStore "github.com/MrJamesThe3rd/finsight/internal/goal/store"
	insightStore "github.com/MrJamesThe3rd/finsight/internal/insight/store"
)

func date(y int, m time.Month, d int) time.Time {
	return time.Date(y, m, d, 0, 0, 0, 0, time.UTC)
}

func TestStore_ImportReplacesEverything(t *testing.T) {
	ctx := context.Background()
	db := dbtest.NewSQLite(t)
	s := store.New(db)

	require.NoError(t, expenseStore.New(db).CreateExpense(ctx, &expense.Expense{
		Description: "Old", Amount: decimal.NewFromInt(1), Date: date(2023, 1, 1), Category: "Other",
	}))
	require.NoError(t, budgetStore.New(db).SaveBudget(ctx, "Travel", decimal.NewFromInt(50)))
	require.NoError(t, goalStore.New(db).CreateGoal(ctx, &goal.Goal{
		ID: uuid.New(), Name: "Old goal", TargetAmount: decimal.NewFromInt(10), CurrentAmount: decimal.Zero,
		TargetDate: date(2023, 12, 31), Priority: goal.PriorityLow, CreatedDate: date(2023, 1, 1),
		ProgressUpdates: []goal.ProgressUpdate{{Date: date(2023, 2, 1), Amount: decimal.NewFromInt(5)}},
	}))
	require.NoError(t, insightStore.New(db).ReplaceInsights(ctx, []string{"old"}))

	doc := `{
		"expenses": [
			{"description": "Lunch", "amount": "12.50", "date": "2024-01-05", "category": "Food"},
			{"description": "Bus", "amount": "3", "date": "2024-01-06", "category": "Transportation"}
		],
		"budgets": {"Food": "100"},
		"insights": ["new"]
	}`

	svc := backup.NewService(s, nil)
	summary, err := svc.Import(ctx, strings.NewReader(doc))
	require.NoError(t, err)
	assert.Equal(t, &backup.Summary{Expenses: 2, Budgets: 1, Goals: 0, Insights: 1}, summary)

	snap, err := s.Snapshot(ctx)
	require.NoError(t, err)
	require.Len(t, snap.Expenses, 2)
	assert.Equal(t, "Lunch", snap.Expenses[0].Description)
	assert.Len(t, snap.Budgets, 1)
	assert.Contains(t, snap.Budgets, "Food")
	assert.Empty(t, snap.Goals)
	assert.Equal(t, []string{"new"}, snap.Insights)
}

func TestStore_FailedRestoreKeepsPriorState(t *testing.T) {
	ctx := context.Background()
	db := dbtest.NewSQLite(t)
	s := store.New(db)

	require.NoError(t, budgetStore.New(db).SaveBudget(ctx, "Food", decimal.NewFromInt(100)))
	require.NoError(t, insightStore.New(db).ReplaceInsights(ctx, []string{"keep"}))

	id := uuid.New()
	dup := &backup.Snapshot{
		Expenses: []expense.Expense{
			{ID: id, Description: "a", Amount: decimal.NewFromInt(1), Date: date(2024, 1, 1), Category: "Food"},
			{ID: id, Description: "b", Amount: decimal.NewFromInt(2), Date: date(2024, 1, 2), Category: "Food"},
		},
	}

	_, err := backup.NewService(s, nil).Restore(ctx, dup)
	require.Error(t, err)

	snap, err := s.Snapshot(ctx)
	require.NoError(t, err)
	assert.Empty(t, snap.Expenses)
	assert.True(t, snap.Budgets["Food"].Equal(decimal.NewFromInt(100)))
	assert.Equal(t, []string{"keep"}, snap.Insights)
}

func TestStore_ExportImportRoundTrip(t *testing.T) {
	ctx := context.Background()
	src := store.New(dbtest.NewSQLite(t))
	dst := store.New(dbtest.NewSQLite(t))

	original := &backup.Snapshot{
		Expenses: []expense.Expense{
			{ID: uuid.New(), Description: "Rent", Amount: decimal.NewFromInt(900), Date: date(2024, 3, 1), Category: "Housing"},
		},
		Budgets: map[string]decimal.Decimal{"Housing": decimal.NewFromInt(1000)},
		Goals: []goal.Goal{{
			ID: uuid.New(), Name: "Fund", TargetAmount: decimal.NewFromInt(3000), CurrentAmount: decimal.NewFromInt(300),
			TargetDate: date(2024, 12, 31), Priority: goal.PriorityMedium, CreatedDate: date(2024, 1, 1),
			ProgressUpdates: []goal.ProgressUpdate{{Date: date(2024, 2, 1), Amount: decimal.NewFromInt(300), Notes: "start"}},
		}},
		Insights: []string{"x", "y"},
	}

	_, err := backup.NewService(src, nil).Restore(ctx, original)
	require.NoError(t, err)

	doc, err := backup.NewService(src, nil).Export(ctx)
	require.NoError(t, err)

	var buf strings.Builder
	require.NoError(t, doc.Encode(&buf))

	_, err = backup.NewService(dst, nil).Import(ctx, strings.NewReader(buf.String()))
	require.NoError(t, err)

	got, err := dst.Snapshot(ctx)
	require.NoError(t, err)
	require.Len(t, got.Expenses, 1)
	assert.Equal(t, original.Expenses[0].ID, got.Expenses[0].ID)
	assert.True(t, got.Expenses[0].Amount.Equal(decimal.NewFromInt(900)))
	require.Len(t, got.Goals, 1)
	assert.Equal(t, original.Goals[0].ID, got.Goals[0].ID)
	require.Len(t, got.Goals[0].ProgressUpdates, 1)
	assert.Equal(t, "start", got.Goals[0].ProgressUpdates[0].Notes)
	assert.Equal(t, []string{"x", "y"}, got.Insights)
}

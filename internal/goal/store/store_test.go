package store_test

import (
	"context"
	"testing"
	"time"

	"github.com/google/uuid"
	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/MrJamesThe3rd/finsight/internal/database/dbtest"
	"github.com/MrJamesThe3rd/finsight/internal/goal"
	"github.com/MrJamesThe3rd/finsight/internal/goal/store"
)

func newGoal(name string) *goal.Goal {
	return &goal.Goal{
		ID:              uuid.New(),
		Name:            name,
		TargetAmount:    decimal.NewFromInt(1000),
		CurrentAmount:   decimal.NewFromInt(100),
		TargetDate:      time.Date(2025, 6, 30, 0, 0, 0, 0, time.UTC),
		Priority:        goal.PriorityHigh,
		Notes:           "notes",
		CreatedDate:     time.Date(2024, 1, 15, 0, 0, 0, 0, time.UTC),
		ProgressUpdates: []goal.ProgressUpdate{},
	}
}

func TestStore_RoundTrip(t *testing.T) {
	ctx := context.Background()
	s := store.New(dbtest.NewSQLite(t))

	g := newGoal("Car")
	g.ProgressUpdates = []goal.ProgressUpdate{
		{Date: time.Date(2024, 2, 1, 0, 0, 0, 0, time.UTC), Amount: decimal.NewFromInt(50), Notes: "first"},
		{Date: time.Date(2024, 3, 1, 0, 0, 0, 0, time.UTC), Amount: decimal.NewFromInt(100)},
	}
	require.NoError(t, s.CreateGoal(ctx, g))

	got, err := s.GetGoal(ctx, g.ID)
	require.NoError(t, err)
	assert.Equal(t, g.Name, got.Name)
	assert.Equal(t, g.TargetDate, got.TargetDate)
	assert.Equal(t, g.CreatedDate, got.CreatedDate)
	assert.Equal(t, goal.PriorityHigh, got.Priority)
	require.Len(t, got.ProgressUpdates, 2)
	assert.Equal(t, "first", got.ProgressUpdates[0].Notes)
	assert.True(t, got.ProgressUpdates[1].Amount.Equal(decimal.NewFromInt(100)))
}

func TestStore_UpdateAndList(t *testing.T) {
	ctx := context.Background()
	s := store.New(dbtest.NewSQLite(t))

	a := newGoal("A")
	b := newGoal("B")
	require.NoError(t, s.CreateGoal(ctx, a))
	require.NoError(t, s.CreateGoal(ctx, b))

	a.CurrentAmount = decimal.NewFromInt(300)
	a.Priority = goal.PriorityLow
	a.ProgressUpdates = append(a.ProgressUpdates, goal.ProgressUpdate{
		Date:   time.Date(2024, 4, 1, 0, 0, 0, 0, time.UTC),
		Amount: decimal.NewFromInt(300),
	})
	require.NoError(t, s.UpdateGoal(ctx, a))

	goals, err := s.ListGoals(ctx)
	require.NoError(t, err)
	require.Len(t, goals, 2)
	assert.Equal(t, "A", goals[0].Name)
	assert.True(t, goals[0].CurrentAmount.Equal(decimal.NewFromInt(300)))
	assert.Equal(t, goal.PriorityLow, goals[0].Priority)
	assert.Len(t, goals[0].ProgressUpdates, 1)
	assert.Empty(t, goals[1].ProgressUpdates)
}

func TestStore_DeleteAndMissing(t *testing.T) {
	ctx := context.Background()
	s := store.New(dbtest.NewSQLite(t))

	g := newGoal("Trip")
	g.ProgressUpdates = []goal.ProgressUpdate{{Date: g.CreatedDate, Amount: decimal.NewFromInt(1)}}
	require.NoError(t, s.CreateGoal(ctx, g))

	require.NoError(t, s.DeleteGoal(ctx, g.ID))
	assert.ErrorIs(t, s.DeleteGoal(ctx, g.ID), goal.ErrNotFound)

	_, err := s.GetGoal(ctx, g.ID)
	assert.ErrorIs(t, err, goal.ErrNotFound)

	assert.ErrorIs(t, s.UpdateGoal(ctx, newGoal("ghost")), goal.ErrNotFound)
}

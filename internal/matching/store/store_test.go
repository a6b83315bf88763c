package store_test

import (
	"context"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/MrJamesThe3rd/finsight/internal/database/dbtest"
	"github.com/MrJamesThe3rd/finsight/internal/matching"
	"github.com/MrJamesThe3rd/finsight/internal/matching/store"
)

func rule(pattern, category string) matching.Rule {
	return matching.Rule{Pattern: pattern, Category: category, CreatedAt: time.Date(2024, 1, 1, 12, 0, 0, 0, time.UTC)}
}

func TestStore_FindMatch(t *testing.T) {
	ctx := context.Background()
	s := store.New(dbtest.NewSQLite(t))

	require.NoError(t, s.SaveRule(ctx, rule("uber", "Transportation")))
	require.NoError(t, s.SaveRule(ctx, rule("uber eats", "Food")))

	got, err := s.FindMatch(ctx, "UBER EATS LISBOA")
	require.NoError(t, err)
	assert.Equal(t, "Food", got)

	got, err = s.FindMatch(ctx, "Uber trip")
	require.NoError(t, err)
	assert.Equal(t, "Transportation", got)

	got, err = s.FindMatch(ctx, "Bakery")
	require.NoError(t, err)
	assert.Empty(t, got)
}

func TestStore_SaveOverwritesAndDelete(t *testing.T) {
	ctx := context.Background()
	s := store.New(dbtest.NewSQLite(t))

	require.NoError(t, s.SaveRule(ctx, rule("gym", "Health")))
	require.NoError(t, s.SaveRule(ctx, rule("gym", "Entertainment")))

	rules, err := s.ListRules(ctx)
	require.NoError(t, err)
	require.Len(t, rules, 1)
	assert.Equal(t, "Entertainment", rules[0].Category)
	assert.Equal(t, time.Date(2024, 1, 1, 12, 0, 0, 0, time.UTC), rules[0].CreatedAt)

	require.NoError(t, s.DeleteRule(ctx, "gym"))
	assert.ErrorIs(t, s.DeleteRule(ctx, "gym"), matching.ErrNotFound)
}

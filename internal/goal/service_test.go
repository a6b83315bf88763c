package goal_test

import (
	"context"
	"testing"
	"time"

	"github.com/google/uuid"
	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/mock/gomock"

	"github.com/MrJamesThe3rd/finsight/internal/goal"
)

var fixedNow = func() time.Time { return time.Date(2024, 5, 20, 18, 0, 0, 0, time.UTC) }

func TestService_Create(t *testing.T) {
	valid := goal.CreateParams{
		Name:         "Emergency fund",
		TargetAmount: d("5000"),
		TargetDate:   time.Date(2025, 1, 1, 0, 0, 0, 0, time.UTC),
		Priority:     goal.PriorityHigh,
	}

	type testCase struct {
		name    string
		modify  func(p *goal.CreateParams)
		wantErr error
	}

	tests := []testCase{
		{name: "Success"},
		{name: "ZeroTarget", modify: func(p *goal.CreateParams) { p.TargetAmount = decimal.Zero }, wantErr: goal.ErrInvalidTarget},
		{name: "NegativeCurrent", modify: func(p *goal.CreateParams) { p.CurrentAmount = d("-1") }, wantErr: goal.ErrInvalidAmount},
		{name: "BadPriority", modify: func(p *goal.CreateParams) { p.Priority = "Urgent" }, wantErr: goal.ErrInvalidPriority},
		{name: "EmptyName", modify: func(p *goal.CreateParams) { p.Name = " " }, wantErr: goal.ErrEmptyName},
		{name: "MissingDate", modify: func(p *goal.CreateParams) { p.TargetDate = time.Time{} }, wantErr: goal.ErrInvalidDate},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			ctrl := gomock.NewController(t)
			defer ctrl.Finish()

			repo := goal.NewMockRepository(ctrl)

			params := valid
			if tt.modify != nil {
				tt.modify(&params)
			}

			if tt.wantErr == nil {
				repo.EXPECT().CreateGoal(gomock.Any(), gomock.Any()).Return(nil)
			}

			svc := goal.NewService(repo, nil).WithClock(fixedNow)
			got, err := svc.Create(context.Background(), params)

			if tt.wantErr != nil {
				assert.ErrorIs(t, err, tt.wantErr)
				return
			}

			require.NoError(t, err)
			assert.Equal(t, time.Date(2024, 5, 20, 0, 0, 0, 0, time.UTC), got.CreatedDate)
			assert.Empty(t, got.ProgressUpdates)
			assert.Equal(t, goal.PriorityHigh, got.Priority)
		})
	}
}

func TestService_Update(t *testing.T) {
	id := uuid.New()

	existing := func() *goal.Goal {
		return &goal.Goal{
			ID:            id,
			Name:          "Vacation",
			TargetAmount:  d("2000"),
			CurrentAmount: d("500"),
			TargetDate:    time.Date(2024, 12, 1, 0, 0, 0, 0, time.UTC),
			Priority:      goal.PriorityMedium,
			ProgressUpdates: []goal.ProgressUpdate{
				{Date: time.Date(2024, 4, 1, 0, 0, 0, 0, time.UTC), Amount: d("500")},
			},
		}
	}

	t.Run("AmountChangeAppendsOneUpdate", func(t *testing.T) {
		ctrl := gomock.NewController(t)
		repo := goal.NewMockRepository(ctrl)

		repo.EXPECT().GetGoal(gomock.Any(), id).Return(existing(), nil)
		repo.EXPECT().UpdateGoal(gomock.Any(), gomock.Any()).Return(nil)

		amount := d("800")
		svc := goal.NewService(repo, nil).WithClock(fixedNow)

		got, err := svc.Update(context.Background(), id, goal.UpdateParams{
			CurrentAmount: &amount,
			ProgressNote:  "bonus",
		})
		require.NoError(t, err)

		require.Len(t, got.ProgressUpdates, 2)
		last := got.ProgressUpdates[1]
		assert.Equal(t, time.Date(2024, 5, 20, 0, 0, 0, 0, time.UTC), last.Date)
		assert.True(t, last.Amount.Equal(amount))
		assert.Equal(t, "bonus", last.Notes)
		assert.True(t, got.CurrentAmount.Equal(amount))
	})

	t.Run("PriorityOnlyLeavesHistory", func(t *testing.T) {
		ctrl := gomock.NewController(t)
		repo := goal.NewMockRepository(ctrl)

		repo.EXPECT().GetGoal(gomock.Any(), id).Return(existing(), nil)
		repo.EXPECT().UpdateGoal(gomock.Any(), gomock.Any()).Return(nil)

		p := goal.PriorityHigh
		got, err := goal.NewService(repo, nil).Update(context.Background(), id, goal.UpdateParams{Priority: &p})
		require.NoError(t, err)

		assert.Len(t, got.ProgressUpdates, 1)
		assert.Equal(t, goal.PriorityHigh, got.Priority)
	})

	t.Run("SameAmountIsNoop", func(t *testing.T) {
		ctrl := gomock.NewController(t)
		repo := goal.NewMockRepository(ctrl)

		repo.EXPECT().GetGoal(gomock.Any(), id).Return(existing(), nil)

		amount := d("500.00")
		got, err := goal.NewService(repo, nil).Update(context.Background(), id, goal.UpdateParams{CurrentAmount: &amount})
		require.NoError(t, err)
		assert.Len(t, got.ProgressUpdates, 1)
	})

	t.Run("NotFound", func(t *testing.T) {
		ctrl := gomock.NewController(t)
		repo := goal.NewMockRepository(ctrl)

		repo.EXPECT().GetGoal(gomock.Any(), id).Return(nil, goal.ErrNotFound)

		amount := d("1")
		_, err := goal.NewService(repo, nil).Update(context.Background(), id, goal.UpdateParams{CurrentAmount: &amount})
		assert.ErrorIs(t, err, goal.ErrNotFound)
	})

	t.Run("NegativeAmount", func(t *testing.T) {
		ctrl := gomock.NewController(t)
		repo := goal.NewMockRepository(ctrl)

		amount := d("-1")
		_, err := goal.NewService(repo, nil).Update(context.Background(), id, goal.UpdateParams{CurrentAmount: &amount})
		assert.ErrorIs(t, err, goal.ErrInvalidAmount)
	})
}

func TestParsePriority(t *testing.T) {
	p, err := goal.ParsePriority("")
	require.NoError(t, err)
	assert.Equal(t, goal.PriorityMedium, p)

	p, err = goal.ParsePriority("Low")
	require.NoError(t, err)
	assert.Equal(t, goal.PriorityLow, p)

	_, err = goal.ParsePriority("low")
	assert.ErrorIs(t, err, goal.ErrInvalidPriority)
}

package insight_test

import (
	"context"
	"errors"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/mock/gomock"

	"github.com/MrJamesThe3rd/finsight/internal/budget"
	"github.com/MrJamesThe3rd/finsight/internal/expense"
	"github.com/MrJamesThe3rd/finsight/internal/insight"
)

func TestService_Refresh(t *testing.T) {
	expenses := []expense.Expense{{Category: "Food"}}
	budgets := budget.Budgets{}

	type testCase struct {
		name      string
		setupMock func(repo *insight.MockRepository, adv *insight.MockAdvisor)
		want      *insight.Report
		wantErr   bool
	}

	tests := []testCase{
		{
			name: "Success",
			setupMock: func(repo *insight.MockRepository, adv *insight.MockAdvisor) {
				adv.EXPECT().SummarizeSpending(gomock.Any(), expenses).Return([]string{"i1", "i2"}, nil)
				adv.EXPECT().RecommendSavings(gomock.Any(), expenses, budgets).Return([]string{"tip"}, nil)
				repo.EXPECT().ReplaceInsights(gomock.Any(), []string{"i1", "i2"}).Return(nil)
			},
			want: &insight.Report{Insights: []string{"i1", "i2"}, Recommendations: []string{"tip"}},
		},
		{
			name: "AdvisorError",
			setupMock: func(_ *insight.MockRepository, adv *insight.MockAdvisor) {
				adv.EXPECT().SummarizeSpending(gomock.Any(), gomock.Any()).Return(nil, errors.New("down"))
				adv.EXPECT().RecommendSavings(gomock.Any(), gomock.Any(), gomock.Any()).Return([]string{"tip"}, nil).AnyTimes()
			},
			wantErr: true,
		},
		{
			name: "StoreError",
			setupMock: func(repo *insight.MockRepository, adv *insight.MockAdvisor) {
				adv.EXPECT().SummarizeSpending(gomock.Any(), gomock.Any()).Return([]string{"i"}, nil)
				adv.EXPECT().RecommendSavings(gomock.Any(), gomock.Any(), gomock.Any()).Return(nil, nil)
				repo.EXPECT().ReplaceInsights(gomock.Any(), gomock.Any()).Return(errors.New("db error"))
			},
			wantErr: true,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			ctrl := gomock.NewController(t)
			defer ctrl.Finish()

			repo := insight.NewMockRepository(ctrl)
			adv := insight.NewMockAdvisor(ctrl)
			tt.setupMock(repo, adv)

			svc := insight.NewService(repo, adv, nil)
			got, err := svc.Refresh(context.Background(), expenses, budgets)

			if tt.wantErr {
				assert.Error(t, err)
				return
			}

			require.NoError(t, err)
			assert.Equal(t, tt.want, got)
		})
	}
}

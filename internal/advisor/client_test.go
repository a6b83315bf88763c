package advisor_test

import (
	"context"
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/MrJamesThe3rd/finsight/internal/advisor"
	"github.com/MrJamesThe3rd/finsight/internal/budget"
)

type capturedRequest struct {
	Model    string `json:"model"`
	Messages []struct {
		Role    string `json:"role"`
		Content string `json:"content"`
	} `json:"messages"`
	ResponseFormat *struct {
		Type string `json:"type"`
	} `json:"response_format"`
}

func newModelServer(t *testing.T, reply string, captured *capturedRequest) *httptest.Server {
	t.Helper()

	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		assert.Equal(t, "/chat/completions", r.URL.Path)
		assert.Equal(t, "Bearer test-key", r.Header.Get("Authorization"))

		if captured != nil {
			require.NoError(t, json.NewDecoder(r.Body).Decode(captured))
		}

		resp := map[string]any{
			"choices": []map[string]any{
				{"message": map[string]string{"role": "assistant", "content": reply}},
			},
		}

		w.Header().Set("Content-Type", "application/json")
		require.NoError(t, json.NewEncoder(w).Encode(resp))
	}))
	t.Cleanup(srv.Close)

	return srv
}

func TestClient_Categorize(t *testing.T) {
	var req capturedRequest
	srv := newModelServer(t, " Transportation.\n", &req)

	c := advisor.NewClient(srv.URL+"/", "test-key", "gpt-4o")
	got, err := c.Categorize(context.Background(), "Uber", d("12.5"))

	require.NoError(t, err)
	assert.Equal(t, "Transportation", got)
	assert.Equal(t, "gpt-4o", req.Model)
	require.Len(t, req.Messages, 2)
	assert.Equal(t, "Description: Uber, Amount: $12.50", req.Messages[1].Content)
	assert.Nil(t, req.ResponseFormat)
}

func TestClient_SummarizeSpending(t *testing.T) {
	var req capturedRequest
	srv := newModelServer(t, "Sure! {\"insights\": [\"Eat out less\", \"Cancel unused subscriptions\"]}", &req)

	c := advisor.NewClient(srv.URL, "test-key", "gpt-4o")
	got, err := c.SummarizeSpending(context.Background(), sampleExpenses())

	require.NoError(t, err)
	assert.Equal(t, []string{"Eat out less", "Cancel unused subscriptions"}, got)
	require.NotNil(t, req.ResponseFormat)
	assert.Equal(t, "json_object", req.ResponseFormat.Type)
	assert.Contains(t, req.Messages[1].Content, "Category: Housing, Amount: $900.00, Date: 2024-01-01, Description: Rent")
}

func TestClient_SummarizeSpending_TooFewSkipsCall(t *testing.T) {
	c := advisor.NewClient("http://127.0.0.1:0", "test-key", "gpt-4o")

	got, err := c.SummarizeSpending(context.Background(), sampleExpenses()[:1])
	require.NoError(t, err)
	assert.Equal(t, []string{advisor.MsgNotEnoughData}, got)
}

func TestClient_RecommendBudget(t *testing.T) {
	srv := newModelServer(t, `{"Food": 400, "Housing": "950.50"}`, nil)

	c := advisor.NewClient(srv.URL, "test-key", "gpt-4o")
	got, err := c.RecommendBudget(context.Background(), sampleExpenses())

	require.NoError(t, err)
	assert.True(t, got["Food"].Equal(d("400")))
	assert.True(t, got["Housing"].Equal(d("950.50")))
}

func TestClient_RecommendBudget_RejectsNegative(t *testing.T) {
	srv := newModelServer(t, `{"Food": -5}`, nil)

	c := advisor.NewClient(srv.URL, "test-key", "gpt-4o")
	_, err := c.RecommendBudget(context.Background(), sampleExpenses())

	assert.Error(t, err)
}

func TestClient_RecommendSavings(t *testing.T) {
	var req capturedRequest
	srv := newModelServer(t, `{"recommendations": ["Cook at home"]}`, &req)

	c := advisor.NewClient(srv.URL, "test-key", "gpt-4o")
	got, err := c.RecommendSavings(context.Background(), sampleExpenses(), budget.Budgets{"Food": d("100")})

	require.NoError(t, err)
	assert.Equal(t, []string{"Cook at home"}, got)
	assert.Contains(t, req.Messages[1].Content, "- Food: $100.00")
}

func TestClient_Errors(t *testing.T) {
	t.Run("Status", func(t *testing.T) {
		srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, _ *http.Request) {
			http.Error(w, "rate limited", http.StatusTooManyRequests)
		}))
		defer srv.Close()

		_, err := advisor.NewClient(srv.URL, "test-key", "m").Categorize(context.Background(), "x", d("1"))
		assert.ErrorContains(t, err, "429")
	})

	t.Run("NoJSON", func(t *testing.T) {
		srv := newModelServer(t, "I cannot help with that", nil)

		_, err := advisor.NewClient(srv.URL, "test-key", "m").SummarizeSpending(context.Background(), sampleExpenses())
		assert.ErrorIs(t, err, advisor.ErrEmptyReply)
	})

	t.Run("EmptyCategory", func(t *testing.T) {
		srv := newModelServer(t, "  ", nil)

		_, err := advisor.NewClient(srv.URL, "test-key", "m").Categorize(context.Background(), "x", d("1"))
		assert.ErrorIs(t, err, advisor.ErrEmptyReply)
	})
}

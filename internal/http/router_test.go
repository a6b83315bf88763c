package http_test

import (
	"bytes"
	"encoding/json"
	"mime/multipart"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"

	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/MrJamesThe3rd/finsight/internal/app"
	"github.com/MrJamesThe3rd/finsight/internal/config"
	"github.com/MrJamesThe3rd/finsight/internal/database/dbtest"
	"github.com/MrJamesThe3rd/finsight/internal/events"
	finsightHttp "github.com/MrJamesThe3rd/finsight/internal/http"
	backupHandler "github.com/MrJamesThe3rd/finsight/internal/http/backup"
	budgetHandler "github.com/MrJamesThe3rd/finsight/internal/http/budget"
	dashboardHandler "github.com/MrJamesThe3rd/finsight/internal/http/dashboard"
	expenseHandler "github.com/MrJamesThe3rd/finsight/internal/http/expense"
	goalHandler "github.com/MrJamesThe3rd/finsight/internal/http/goal"
	importHandler "github.com/MrJamesThe3rd/finsight/internal/http/importcsv"
	insightHandler "github.com/MrJamesThe3rd/finsight/internal/http/insight"
	rulesHandler "github.com/MrJamesThe3rd/finsight/internal/http/rules"
)

func newRouter(t *testing.T) http.Handler {
	t.Helper()

	svc := app.New(&config.Config{}, dbtest.NewSQLite(t), events.Nop{})

	return finsightHttp.New(finsightHttp.Handlers{
		Expenses:  expenseHandler.NewHandler(svc.Expenses, svc.Rules),
		Budgets:   budgetHandler.NewHandler(svc.Budgets, svc.Expenses, svc.Advisor),
		Goals:     goalHandler.NewHandler(svc.Goals),
		Insights:  insightHandler.NewHandler(svc.Insights, svc.Expenses, svc.Budgets),
		Dashboard: dashboardHandler.NewHandler(svc.Dashboard),
		Backup:    backupHandler.NewHandler(svc.Backup, svc.Reports),
		Import:    importHandler.NewHandler(svc.Import),
		Rules:     rulesHandler.NewHandler(svc.Rules),
	})
}

func do(t *testing.T, h http.Handler, method, path, body string) *httptest.ResponseRecorder {
	t.Helper()

	var req *http.Request
	if body == "" {
		req = httptest.NewRequest(method, path, nil)
	} else {
		req = httptest.NewRequest(method, path, strings.NewReader(body))
		req.Header.Set("Content-Type", "application/json")
	}

	rec := httptest.NewRecorder()
	h.ServeHTTP(rec, req)

	return rec
}

func decode(t *testing.T, rec *httptest.ResponseRecorder, v any) {
	t.Helper()
	require.NoError(t, json.Unmarshal(rec.Body.Bytes(), v), rec.Body.String())
}

type expenseJSON struct {
	ID          string          `json:"id"`
	Description string          `json:"description"`
	Amount      decimal.Decimal `json:"amount"`
	Date        string          `json:"date"`
	Category    string          `json:"category"`
}

func TestExpenses_Lifecycle(t *testing.T) {
	h := newRouter(t)

	rec := do(t, h, http.MethodPost, "/api/v1/expenses", `{"description":"Coffee shop","amount":"4.50","date":"2024-03-02"}`)
	require.Equal(t, http.StatusCreated, rec.Code, rec.Body.String())

	var created expenseJSON
	decode(t, rec, &created)
	assert.Equal(t, "Food", created.Category)
	assert.Equal(t, "2024-03-02", created.Date)
	assert.True(t, decimal.RequireFromString("4.5").Equal(created.Amount))

	rec = do(t, h, http.MethodPost, "/api/v1/expenses", `{"description":"Rent","amount":"900","date":"2024-03-01","category":"Housing"}`)
	require.Equal(t, http.StatusCreated, rec.Code, rec.Body.String())

	rec = do(t, h, http.MethodGet, "/api/v1/expenses?category=Food", "")
	require.Equal(t, http.StatusOK, rec.Code)

	var listed []expenseJSON
	decode(t, rec, &listed)
	require.Len(t, listed, 1)
	assert.Equal(t, created.ID, listed[0].ID)

	rec = do(t, h, http.MethodGet, "/api/v1/expenses?min_amount=100", "")
	decode(t, rec, &listed)
	require.Len(t, listed, 1)
	assert.Equal(t, "Rent", listed[0].Description)

	rec = do(t, h, http.MethodGet, "/api/v1/expenses/"+created.ID, "")
	assert.Equal(t, http.StatusOK, rec.Code)

	rec = do(t, h, http.MethodDelete, "/api/v1/expenses/"+created.ID, "")
	assert.Equal(t, http.StatusNoContent, rec.Code)

	rec = do(t, h, http.MethodGet, "/api/v1/expenses/"+created.ID, "")
	assert.Equal(t, http.StatusNotFound, rec.Code)
}

func TestExpenses_BadRequests(t *testing.T) {
	h := newRouter(t)

	type testCase struct {
		name   string
		method string
		path   string
		body   string
	}

	tests := []testCase{
		{
			name:   "NegativeAmount",
			method: http.MethodPost,
			path:   "/api/v1/expenses",
			body:   `{"description":"Refund","amount":"-3","date":"2024-03-02","category":"Food"}`,
		},
		{
			name:   "BadDate",
			method: http.MethodPost,
			path:   "/api/v1/expenses",
			body:   `{"description":"Lunch","amount":"3","date":"02/03/2024","category":"Food"}`,
		},
		{
			name:   "EmptyDescription",
			method: http.MethodPost,
			path:   "/api/v1/expenses",
			body:   `{"description":" ","amount":"3","date":"2024-03-02","category":"Food"}`,
		},
		{
			name:   "MalformedBody",
			method: http.MethodPost,
			path:   "/api/v1/expenses",
			body:   `{"description":`,
		},
		{
			name:   "BadAmountFilter",
			method: http.MethodGet,
			path:   "/api/v1/expenses?min_amount=lots",
		},
		{
			name:   "BadDateFilter",
			method: http.MethodGet,
			path:   "/api/v1/expenses?start_date=yesterday",
		},
		{
			name:   "InvalidID",
			method: http.MethodGet,
			path:   "/api/v1/expenses/42",
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			rec := do(t, h, tt.method, tt.path, tt.body)
			assert.Equal(t, http.StatusBadRequest, rec.Code, rec.Body.String())
		})
	}
}

func TestRules_OverrideCategorization(t *testing.T) {
	h := newRouter(t)

	rec := do(t, h, http.MethodPost, "/api/v1/expenses/categorize", `{"description":"STARBUCKS #123","amount":"3"}`)
	require.Equal(t, http.StatusOK, rec.Code)

	var got struct {
		Category string `json:"category"`
	}

	decode(t, rec, &got)
	assert.Equal(t, "Other", got.Category)

	rec = do(t, h, http.MethodPut, "/api/v1/rules", `{"pattern":"Starbucks","category":"Treats"}`)
	require.Equal(t, http.StatusOK, rec.Code, rec.Body.String())

	rec = do(t, h, http.MethodPost, "/api/v1/expenses/categorize", `{"description":"STARBUCKS #123","amount":"3"}`)
	decode(t, rec, &got)
	assert.Equal(t, "Treats", got.Category)

	rec = do(t, h, http.MethodDelete, "/api/v1/rules/starbucks", "")
	assert.Equal(t, http.StatusNoContent, rec.Code)

	rec = do(t, h, http.MethodDelete, "/api/v1/rules/starbucks", "")
	assert.Equal(t, http.StatusNotFound, rec.Code)

	rec = do(t, h, http.MethodPut, "/api/v1/rules", `{"pattern":"","category":"Treats"}`)
	assert.Equal(t, http.StatusBadRequest, rec.Code)
}

func TestBudgets(t *testing.T) {
	h := newRouter(t)

	rec := do(t, h, http.MethodPut, "/api/v1/budgets/Food", `{"amount":"100"}`)
	require.Equal(t, http.StatusOK, rec.Code, rec.Body.String())

	rec = do(t, h, http.MethodPut, "/api/v1/budgets/Travel", `{"amount":"-1"}`)
	assert.Equal(t, http.StatusBadRequest, rec.Code)

	rec = do(t, h, http.MethodGet, "/api/v1/budgets", "")
	require.Equal(t, http.StatusOK, rec.Code)

	var got struct {
		Budgets []struct {
			Category string          `json:"category"`
			Amount   decimal.Decimal `json:"amount"`
		} `json:"budgets"`
		Total decimal.Decimal `json:"total"`
	}

	decode(t, rec, &got)
	require.Len(t, got.Budgets, 1)
	assert.Equal(t, "Food", got.Budgets[0].Category)
	assert.True(t, decimal.NewFromInt(100).Equal(got.Total))

	rec = do(t, h, http.MethodGet, "/api/v1/budgets/recommendations", "")
	require.Equal(t, http.StatusOK, rec.Code)
	decode(t, rec, &got)
	assert.Empty(t, got.Budgets)

	rec = do(t, h, http.MethodDelete, "/api/v1/budgets/Food", "")
	assert.Equal(t, http.StatusNoContent, rec.Code)

	rec = do(t, h, http.MethodDelete, "/api/v1/budgets/Food", "")
	assert.Equal(t, http.StatusNotFound, rec.Code)
}

func TestGoals_CreateAndRecordProgress(t *testing.T) {
	h := newRouter(t)

	rec := do(t, h, http.MethodPost, "/api/v1/goals", `{"name":"Trip","target_amount":"1000","target_date":"2099-01-01","priority":"High"}`)
	require.Equal(t, http.StatusCreated, rec.Code, rec.Body.String())

	type goalJSON struct {
		ID              string `json:"id"`
		Priority        string `json:"priority"`
		ProgressUpdates []struct {
			Amount decimal.Decimal `json:"amount"`
			Notes  string          `json:"notes"`
		} `json:"progress_updates"`
		Outlook struct {
			ProgressPercent decimal.Decimal `json:"progress_percent"`
			Overdue         bool            `json:"overdue"`
		} `json:"outlook"`
	}

	var created goalJSON
	decode(t, rec, &created)
	assert.Equal(t, "High", created.Priority)
	assert.Empty(t, created.ProgressUpdates)

	rec = do(t, h, http.MethodPatch, "/api/v1/goals/"+created.ID, `{"current_amount":"250","progress_note":"bonus"}`)
	require.Equal(t, http.StatusOK, rec.Code, rec.Body.String())

	var updated goalJSON
	decode(t, rec, &updated)
	require.Len(t, updated.ProgressUpdates, 1)
	assert.Equal(t, "bonus", updated.ProgressUpdates[0].Notes)
	assert.True(t, decimal.NewFromInt(25).Equal(updated.Outlook.ProgressPercent))
	assert.False(t, updated.Outlook.Overdue)

	rec = do(t, h, http.MethodGet, "/api/v1/goals", "")
	require.Equal(t, http.StatusOK, rec.Code)

	var list struct {
		Goals   []goalJSON `json:"goals"`
		Summary struct {
			ActiveGoals int `json:"active_goals"`
		} `json:"summary"`
	}

	decode(t, rec, &list)
	assert.Len(t, list.Goals, 1)
	assert.Equal(t, 1, list.Summary.ActiveGoals)

	rec = do(t, h, http.MethodPost, "/api/v1/goals", `{"name":"Car","target_amount":"1000","target_date":"2099-01-01","priority":"Urgent"}`)
	assert.Equal(t, http.StatusBadRequest, rec.Code)

	rec = do(t, h, http.MethodDelete, "/api/v1/goals/"+created.ID, "")
	assert.Equal(t, http.StatusNoContent, rec.Code)

	rec = do(t, h, http.MethodGet, "/api/v1/goals/"+created.ID, "")
	assert.Equal(t, http.StatusNotFound, rec.Code)
}

func TestInsights_RefreshReplacesStored(t *testing.T) {
	h := newRouter(t)

	rec := do(t, h, http.MethodPost, "/api/v1/insights", "")
	require.Equal(t, http.StatusCreated, rec.Code, rec.Body.String())

	var report struct {
		Insights        []string `json:"insights"`
		Recommendations []string `json:"recommendations"`
	}

	decode(t, rec, &report)
	assert.Equal(t, []string{"Not enough expense data to analyze patterns."}, report.Insights)
	assert.Equal(t, []string{"Start tracking your expenses to get personalized recommendations."}, report.Recommendations)

	rec = do(t, h, http.MethodGet, "/api/v1/insights", "")
	require.Equal(t, http.StatusOK, rec.Code)

	var stored struct {
		Insights []string `json:"insights"`
	}

	decode(t, rec, &stored)
	assert.Equal(t, report.Insights, stored.Insights)
}

func TestDashboard(t *testing.T) {
	h := newRouter(t)

	rec := do(t, h, http.MethodGet, "/api/v1/dashboard?granularity=fortnight", "")
	assert.Equal(t, http.StatusBadRequest, rec.Code)

	rec = do(t, h, http.MethodGet, "/api/v1/dashboard", "")
	require.Equal(t, http.StatusOK, rec.Code, rec.Body.String())

	var got struct {
		Granularity string `json:"granularity"`
		HealthScore int    `json:"health_score"`
		Rating      string `json:"rating"`
	}

	decode(t, rec, &got)
	assert.Equal(t, "month", got.Granularity)
	assert.Equal(t, 50, got.HealthScore)
	assert.Equal(t, "Needs Attention", got.Rating)
}

const backupDocument = `{
  "expenses": [
    {"id": 1, "description": "Groceries", "amount": 45.5, "date": "2024-01-05", "category": "Food"},
    {"id": 2, "description": "Bus pass", "amount": "30.00", "date": "2024-01-06", "category": "Transportation"}
  ],
  "budgets": {"Food": "100.00"},
  "insights": ["Spending is steady."]
}`

func TestBackup_ImportExport(t *testing.T) {
	h := newRouter(t)

	rec := do(t, h, http.MethodPost, "/api/v1/backup", backupDocument)
	require.Equal(t, http.StatusOK, rec.Code, rec.Body.String())

	var summary struct {
		Expenses int `json:"expenses"`
		Budgets  int `json:"budgets"`
		Goals    int `json:"goals"`
		Insights int `json:"insights"`
	}

	decode(t, rec, &summary)
	assert.Equal(t, 2, summary.Expenses)
	assert.Equal(t, 1, summary.Budgets)
	assert.Equal(t, 0, summary.Goals)
	assert.Equal(t, 1, summary.Insights)

	rec = do(t, h, http.MethodPost, "/api/v1/backup", `{"expenses":[{"description":"x","amount":"oops","date":"2024-01-01","category":"Food"}]}`)
	assert.Equal(t, http.StatusBadRequest, rec.Code)

	for _, body := range []string{`null`, `{"expenses": []} trailing garbage`} {
		rec = do(t, h, http.MethodPost, "/api/v1/backup", body)
		assert.Equal(t, http.StatusBadRequest, rec.Code, body)
	}

	rec = do(t, h, http.MethodGet, "/api/v1/backup", "")
	require.Equal(t, http.StatusOK, rec.Code)
	assert.Contains(t, rec.Header().Get("Content-Disposition"), "attachment")

	var doc struct {
		Expenses []struct {
			Amount string `json:"amount"`
		} `json:"expenses"`
		Budgets map[string]string `json:"budgets"`
	}

	decode(t, rec, &doc)
	require.Len(t, doc.Expenses, 2)
	assert.Equal(t, "45.50", doc.Expenses[0].Amount)
	assert.Equal(t, map[string]string{"Food": "100.00"}, doc.Budgets)

	rec = do(t, h, http.MethodGet, "/api/v1/reports/digest?category=Food", "")
	require.Equal(t, http.StatusOK, rec.Code)
	assert.Equal(t, "* 2024-01-05 | Groceries | Food | 45.50\nTotal: 45.50\n", rec.Body.String())

	rec = do(t, h, http.MethodGet, "/api/v1/backup/xlsx", "")
	require.Equal(t, http.StatusOK, rec.Code)
	assert.Equal(t, "application/vnd.openxmlformats-officedocument.spreadsheetml.sheet", rec.Header().Get("Content-Type"))
	assert.NotZero(t, rec.Body.Len())
}

func upload(t *testing.T, h http.Handler, csv string) *httptest.ResponseRecorder {
	t.Helper()

	var body bytes.Buffer

	mw := multipart.NewWriter(&body)
	part, err := mw.CreateFormFile("file", "expenses.csv")
	require.NoError(t, err)

	_, err = part.Write([]byte(csv))
	require.NoError(t, err)
	require.NoError(t, mw.Close())

	req := httptest.NewRequest(http.MethodPost, "/api/v1/import", &body)
	req.Header.Set("Content-Type", mw.FormDataContentType())

	rec := httptest.NewRecorder()
	h.ServeHTTP(rec, req)

	return rec
}

func TestImport_ConflictsAndConfirm(t *testing.T) {
	h := newRouter(t)

	const csv = "date,description,amount,category\n" +
		"2024-02-01,Pizza night,18.00,Food\n" +
		"2024-02-03,Metro card,40.00,\n"

	rec := upload(t, h, csv)
	require.Equal(t, http.StatusCreated, rec.Code, rec.Body.String())

	var imported struct {
		Imported int           `json:"imported"`
		Expenses []expenseJSON `json:"expenses"`
	}

	decode(t, rec, &imported)
	require.Equal(t, 2, imported.Imported)
	assert.Equal(t, "Transportation", imported.Expenses[1].Category)

	rec = upload(t, h, csv+"2024-02-04,Bakery,5.00,Food\n")
	require.Equal(t, http.StatusConflict, rec.Code, rec.Body.String())

	var conflict struct {
		New       []json.RawMessage `json:"new"`
		Conflicts []json.RawMessage `json:"conflicts"`
	}

	decode(t, rec, &conflict)
	assert.Len(t, conflict.New, 1)
	assert.Len(t, conflict.Conflicts, 2)

	rec = do(t, h, http.MethodPost, "/api/v1/import/confirm", `{"params":[{"description":"Bakery","amount":"5.00","date":"2024-02-04","category":"Food"}]}`)
	require.Equal(t, http.StatusCreated, rec.Code, rec.Body.String())

	rec = do(t, h, http.MethodGet, "/api/v1/expenses", "")

	var listed []expenseJSON
	decode(t, rec, &listed)
	assert.Len(t, listed, 3)

	rec = upload(t, h, "foo;bar\n1;2\n")
	assert.Equal(t, http.StatusBadRequest, rec.Code)
}

package insight

import (
	"net/http"

	"github.com/go-chi/chi/v5"

	"github.com/MrJamesThe3rd/finsight/internal/budget"
	"github.com/MrJamesThe3rd/finsight/internal/expense"
	"github.com/MrJamesThe3rd/finsight/internal/http/respond"
	"github.com/MrJamesThe3rd/finsight/internal/insight"
)

type Handler struct {
	svc      *insight.Service
	expenses *expense.Service
	budgets  *budget.Service
}

func NewHandler(svc *insight.Service, expenses *expense.Service, budgets *budget.Service) *Handler {
	return &Handler{svc: svc, expenses: expenses, budgets: budgets}
}

func (h *Handler) Routes(r chi.Router) {
	r.Get("/", h.list)
	r.Post("/", h.refresh)
}

type listResponse struct {
	Insights []string `json:"insights"`
}

type reportResponse struct {
	Insights        []string `json:"insights"`
	Recommendations []string `json:"recommendations"`
}

func (h *Handler) list(w http.ResponseWriter, r *http.Request) {
	insights, err := h.svc.List(r.Context())
	if err != nil {
		respond.Error(w, r, err)
		return
	}

	if insights == nil {
		insights = []string{}
	}

	respond.JSON(w, http.StatusOK, listResponse{Insights: insights})
}

func (h *Handler) refresh(w http.ResponseWriter, r *http.Request) {
	expenses, err := h.expenses.List(r.Context())
	if err != nil {
		respond.Error(w, r, err)
		return
	}

	budgets, err := h.budgets.List(r.Context())
	if err != nil {
		respond.Error(w, r, err)
		return
	}

	report, err := h.svc.Refresh(r.Context(), expenses, budgets)
	if err != nil {
		respond.Error(w, r, err)
		return
	}

	resp := reportResponse{Insights: report.Insights, Recommendations: report.Recommendations}
	if resp.Recommendations == nil {
		resp.Recommendations = []string{}
	}

	respond.JSON(w, http.StatusCreated, resp)
}

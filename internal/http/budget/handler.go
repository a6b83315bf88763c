package budget

import (
	"context"
	"encoding/json"
	"net/http"

	"github.com/go-chi/chi/v5"
	"github.com/shopspring/decimal"

	"github.com/MrJamesThe3rd/finsight/internal/budget"
	"github.com/MrJamesThe3rd/finsight/internal/expense"
	"github.com/MrJamesThe3rd/finsight/internal/http/respond"
)

// Recommender proposes monthly limits from spending history.
type Recommender interface {
	RecommendBudget(ctx context.Context, expenses []expense.Expense) (budget.Budgets, error)
}

type Handler struct {
	svc         *budget.Service
	expenses    *expense.Service
	recommender Recommender
}

func NewHandler(svc *budget.Service, expenses *expense.Service, recommender Recommender) *Handler {
	return &Handler{svc: svc, expenses: expenses, recommender: recommender}
}

func (h *Handler) Routes(r chi.Router) {
	r.Get("/", h.list)
	r.Get("/recommendations", h.recommend)
	r.Put("/{category}", h.set)
	r.Delete("/{category}", h.delete)
}

type budgetResponse struct {
	Category string          `json:"category"`
	Amount   decimal.Decimal `json:"amount"`
}

type listResponse struct {
	Budgets []budgetResponse `json:"budgets"`
	Total   decimal.Decimal  `json:"total"`
}

func toListResponse(b budget.Budgets) listResponse {
	resp := listResponse{
		Budgets: make([]budgetResponse, 0, len(b)),
		Total:   b.Total(),
	}

	for _, c := range b.Categories() {
		resp.Budgets = append(resp.Budgets, budgetResponse{Category: c, Amount: b[c]})
	}

	return resp
}

func (h *Handler) list(w http.ResponseWriter, r *http.Request) {
	budgets, err := h.svc.List(r.Context())
	if err != nil {
		respond.Error(w, r, err)
		return
	}

	respond.JSON(w, http.StatusOK, toListResponse(budgets))
}

type setRequest struct {
	Amount decimal.Decimal `json:"amount"`
}

func (h *Handler) set(w http.ResponseWriter, r *http.Request) {
	var req setRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		http.Error(w, err.Error(), http.StatusBadRequest)
		return
	}

	category := chi.URLParam(r, "category")

	if err := h.svc.Set(r.Context(), category, req.Amount); err != nil {
		respond.Error(w, r, err)
		return
	}

	respond.JSON(w, http.StatusOK, budgetResponse{Category: category, Amount: req.Amount})
}

func (h *Handler) delete(w http.ResponseWriter, r *http.Request) {
	if err := h.svc.Delete(r.Context(), chi.URLParam(r, "category")); err != nil {
		respond.Error(w, r, err)
		return
	}

	w.WriteHeader(http.StatusNoContent)
}

func (h *Handler) recommend(w http.ResponseWriter, r *http.Request) {
	expenses, err := h.expenses.List(r.Context())
	if err != nil {
		respond.Error(w, r, err)
		return
	}

	recommended, err := h.recommender.RecommendBudget(r.Context(), expenses)
	if err != nil {
		respond.Error(w, r, err)
		return
	}

	respond.JSON(w, http.StatusOK, toListResponse(recommended))
}

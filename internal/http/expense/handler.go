package expense

import (
	"encoding/json"
	"net/http"
	"strings"

	"github.com/go-chi/chi/v5"
	"github.com/google/uuid"
	"github.com/shopspring/decimal"

	"github.com/MrJamesThe3rd/finsight/internal/analytics"
	"github.com/MrJamesThe3rd/finsight/internal/expense"
	"github.com/MrJamesThe3rd/finsight/internal/http/respond"
)

type Handler struct {
	svc         *expense.Service
	categorizer expense.Categorizer
}

func NewHandler(svc *expense.Service, categorizer expense.Categorizer) *Handler {
	return &Handler{svc: svc, categorizer: categorizer}
}

func (h *Handler) Routes(r chi.Router) {
	r.Post("/", h.create)
	r.Get("/", h.list)
	r.Post("/categorize", h.categorize)
	r.Get("/{id}", h.get)
	r.Delete("/{id}", h.delete)
}

type createExpenseRequest struct {
	Description string          `json:"description"`
	Amount      decimal.Decimal `json:"amount"`
	Date        string          `json:"date"`
	Category    string          `json:"category"`
}

func (h *Handler) create(w http.ResponseWriter, r *http.Request) {
	var req createExpenseRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		http.Error(w, err.Error(), http.StatusBadRequest)
		return
	}

	date, err := expense.ParseDate(req.Date)
	if err != nil {
		respond.Error(w, r, err)
		return
	}

	e, err := h.svc.Create(r.Context(), expense.CreateParams{
		Description: req.Description,
		Amount:      req.Amount,
		Date:        date,
		Category:    req.Category,
	})
	if err != nil {
		respond.Error(w, r, err)
		return
	}

	respond.JSON(w, http.StatusCreated, toResponse(*e))
}

func (h *Handler) list(w http.ResponseWriter, r *http.Request) {
	filter, err := respond.Filter(r.URL.Query())
	if err != nil {
		respond.Error(w, r, err)
		return
	}

	expenses, err := h.svc.List(r.Context())
	if err != nil {
		respond.Error(w, r, err)
		return
	}

	respond.JSON(w, http.StatusOK, ToResponseList(analytics.FilterExpenses(expenses, filter)))
}

func (h *Handler) get(w http.ResponseWriter, r *http.Request) {
	id, err := uuid.Parse(chi.URLParam(r, "id"))
	if err != nil {
		http.Error(w, "invalid id", http.StatusBadRequest)
		return
	}

	e, err := h.svc.Get(r.Context(), id)
	if err != nil {
		respond.Error(w, r, err)
		return
	}

	respond.JSON(w, http.StatusOK, toResponse(*e))
}

func (h *Handler) delete(w http.ResponseWriter, r *http.Request) {
	id, err := uuid.Parse(chi.URLParam(r, "id"))
	if err != nil {
		http.Error(w, "invalid id", http.StatusBadRequest)
		return
	}

	if err := h.svc.Delete(r.Context(), id); err != nil {
		respond.Error(w, r, err)
		return
	}

	w.WriteHeader(http.StatusNoContent)
}

type categorizeRequest struct {
	Description string          `json:"description"`
	Amount      decimal.Decimal `json:"amount"`
}

type categorizeResponse struct {
	Category string `json:"category"`
}

func (h *Handler) categorize(w http.ResponseWriter, r *http.Request) {
	var req categorizeRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		http.Error(w, err.Error(), http.StatusBadRequest)
		return
	}

	if strings.TrimSpace(req.Description) == "" {
		respond.Error(w, r, expense.ErrEmptyDescription)
		return
	}

	category, err := h.categorizer.Categorize(r.Context(), req.Description, req.Amount)
	if err != nil {
		respond.Error(w, r, err)
		return
	}

	if category == "" {
		category = expense.CategoryOther
	}

	respond.JSON(w, http.StatusOK, categorizeResponse{Category: category})
}

package dashboard

import (
	"net/http"

	"github.com/go-chi/chi/v5"

	"github.com/MrJamesThe3rd/finsight/internal/analytics"
	"github.com/MrJamesThe3rd/finsight/internal/dashboard"
	"github.com/MrJamesThe3rd/finsight/internal/http/respond"
)

type Handler struct {
	svc *dashboard.Service
}

func NewHandler(svc *dashboard.Service) *Handler {
	return &Handler{svc: svc}
}

func (h *Handler) Routes(r chi.Router) {
	r.Get("/", h.get)
}

func (h *Handler) get(w http.ResponseWriter, r *http.Request) {
	q := r.URL.Query()

	g, err := analytics.ParseGranularity(q.Get("granularity"))
	if err != nil {
		respond.Error(w, r, err)
		return
	}

	filter, err := respond.Filter(q)
	if err != nil {
		respond.Error(w, r, err)
		return
	}

	d, err := h.svc.Build(r.Context(), filter, g)
	if err != nil {
		respond.Error(w, r, err)
		return
	}

	respond.JSON(w, http.StatusOK, d)
}

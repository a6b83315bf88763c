package backup

import (
	"bytes"
	"log/slog"
	"net/http"
	"time"

	"github.com/go-chi/chi/v5"

	"github.com/MrJamesThe3rd/finsight/internal/backup"
	"github.com/MrJamesThe3rd/finsight/internal/http/respond"
	"github.com/MrJamesThe3rd/finsight/internal/report"
)

const (
	maxDocumentSize = 32 << 20
	xlsxContentType = "application/vnd.openxmlformats-officedocument.spreadsheetml.sheet"
)

type Handler struct {
	svc     *backup.Service
	reports *report.Service
}

func NewHandler(svc *backup.Service, reports *report.Service) *Handler {
	return &Handler{svc: svc, reports: reports}
}

func (h *Handler) Routes(r chi.Router) {
	r.Get("/", h.export)
	r.Post("/", h.restore)
	r.Get("/xlsx", h.workbook)
}

// ReportRoutes serves read-only renderings of the stored data.
func (h *Handler) ReportRoutes(r chi.Router) {
	r.Get("/digest", h.digest)
}

func (h *Handler) export(w http.ResponseWriter, r *http.Request) {
	doc, err := h.svc.Export(r.Context())
	if err != nil {
		respond.Error(w, r, err)
		return
	}

	w.Header().Set("Content-Type", "application/json")
	w.Header().Set("Content-Disposition", attachment("json"))

	if err := doc.Encode(w); err != nil {
		slog.Error("failed to encode response", "error", err)
	}
}

func (h *Handler) restore(w http.ResponseWriter, r *http.Request) {
	summary, err := h.svc.Import(r.Context(), http.MaxBytesReader(w, r.Body, maxDocumentSize))
	if err != nil {
		respond.Error(w, r, err)
		return
	}

	respond.JSON(w, http.StatusOK, summary)
}

func (h *Handler) workbook(w http.ResponseWriter, r *http.Request) {
	var buf bytes.Buffer
	if err := h.reports.WriteWorkbook(r.Context(), &buf); err != nil {
		respond.Error(w, r, err)
		return
	}

	w.Header().Set("Content-Type", xlsxContentType)
	w.Header().Set("Content-Disposition", attachment("xlsx"))

	if _, err := buf.WriteTo(w); err != nil {
		slog.Error("failed to write workbook", "error", err)
	}
}

func (h *Handler) digest(w http.ResponseWriter, r *http.Request) {
	filter, err := respond.Filter(r.URL.Query())
	if err != nil {
		respond.Error(w, r, err)
		return
	}

	text, err := h.reports.Digest(r.Context(), filter)
	if err != nil {
		respond.Error(w, r, err)
		return
	}

	w.Header().Set("Content-Type", "text/plain; charset=utf-8")

	if _, err := w.Write([]byte(text)); err != nil {
		slog.Error("failed to write digest", "error", err)
	}
}

func attachment(ext string) string {
	return `attachment; filename="finsight-` + time.Now().Format("20060102") + "." + ext + `"`
}

// Package respond writes JSON responses and maps domain errors to HTTP
// status codes.
package respond

import (
	"encoding/json"
	"errors"
	"log/slog"
	"net/http"

	"github.com/MrJamesThe3rd/finsight/internal/analytics"
	"github.com/MrJamesThe3rd/finsight/internal/backup"
	"github.com/MrJamesThe3rd/finsight/internal/budget"
	"github.com/MrJamesThe3rd/finsight/internal/expense"
	"github.com/MrJamesThe3rd/finsight/internal/goal"
	"github.com/MrJamesThe3rd/finsight/internal/importer"
	"github.com/MrJamesThe3rd/finsight/internal/matching"
)

var notFound = []error{
	expense.ErrNotFound,
	budget.ErrNotFound,
	goal.ErrNotFound,
	matching.ErrNotFound,
}

var invalid = []error{
	expense.ErrInvalidAmount,
	expense.ErrInvalidDate,
	expense.ErrEmptyCategory,
	expense.ErrEmptyDescription,
	budget.ErrInvalidAmount,
	budget.ErrEmptyCategory,
	goal.ErrInvalidTarget,
	goal.ErrInvalidAmount,
	goal.ErrInvalidPriority,
	goal.ErrEmptyName,
	goal.ErrInvalidDate,
	matching.ErrEmptyPattern,
	matching.ErrEmptyTarget,
	analytics.ErrInvalidGranularity,
	backup.ErrMalformedDocument,
	importer.ErrUnknownFormat,
}

func JSON(w http.ResponseWriter, status int, v any) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)

	if err := json.NewEncoder(w).Encode(v); err != nil {
		slog.Error("failed to encode response", "error", err)
	}
}

// Status returns the HTTP status for err.
func Status(err error) int {
	var tooLarge *http.MaxBytesError
	if errors.As(err, &tooLarge) {
		return http.StatusRequestEntityTooLarge
	}

	for _, target := range notFound {
		if errors.Is(err, target) {
			return http.StatusNotFound
		}
	}

	for _, target := range invalid {
		if errors.Is(err, target) {
			return http.StatusBadRequest
		}
	}

	return http.StatusInternalServerError
}

// Error writes err with its mapped status. Internal errors are logged and
// hidden from the client.
func Error(w http.ResponseWriter, r *http.Request, err error) {
	status := Status(err)
	if status == http.StatusInternalServerError {
		slog.ErrorContext(r.Context(), "request failed", "method", r.Method, "path", r.URL.Path, "error", err)
		http.Error(w, "internal error", status)

		return
	}

	http.Error(w, err.Error(), status)
}

package http

import (
	"net/http"

	"github.com/go-chi/chi/v5"
	"github.com/go-chi/chi/v5/middleware"
	"github.com/go-chi/cors"

	"github.com/MrJamesThe3rd/finsight/internal/http/backup"
	"github.com/MrJamesThe3rd/finsight/internal/http/budget"
	"github.com/MrJamesThe3rd/finsight/internal/http/dashboard"
	"github.com/MrJamesThe3rd/finsight/internal/http/expense"
	"github.com/MrJamesThe3rd/finsight/internal/http/goal"
	"github.com/MrJamesThe3rd/finsight/internal/http/importcsv"
	"github.com/MrJamesThe3rd/finsight/internal/http/insight"
	"github.com/MrJamesThe3rd/finsight/internal/http/rules"
)

type Handlers struct {
	Expenses  *expense.Handler
	Budgets   *budget.Handler
	Goals     *goal.Handler
	Insights  *insight.Handler
	Dashboard *dashboard.Handler
	Backup    *backup.Handler
	Import    *importcsv.Handler
	Rules     *rules.Handler
}

func New(h Handlers) http.Handler {
	router := chi.NewRouter()

	router.Use(middleware.RequestID)
	router.Use(middleware.Logger)
	router.Use(middleware.Recoverer)
	router.Use(cors.Handler(cors.Options{
		AllowedOrigins: []string{"https://*", "http://*"},
		AllowedMethods: []string{"GET", "POST", "PUT", "PATCH", "DELETE", "OPTIONS"},
		AllowedHeaders: []string{"Accept", "Content-Type", "X-Request-Id"},
		ExposedHeaders: []string{"Content-Disposition"},
		MaxAge:         300,
	}))

	router.Route("/api/v1", func(r chi.Router) {
		r.Route("/expenses", func(r chi.Router) {
			r.Use(middleware.AllowContentType("application/json"))
			h.Expenses.Routes(r)
		})

		r.Route("/budgets", func(r chi.Router) {
			r.Use(middleware.AllowContentType("application/json"))
			h.Budgets.Routes(r)
		})

		r.Route("/goals", func(r chi.Router) {
			r.Use(middleware.AllowContentType("application/json"))
			h.Goals.Routes(r)
		})

		r.Route("/rules", func(r chi.Router) {
			r.Use(middleware.AllowContentType("application/json"))
			h.Rules.Routes(r)
		})

		r.Route("/insights", h.Insights.Routes)
		r.Route("/dashboard", h.Dashboard.Routes)
		r.Route("/backup", h.Backup.Routes)
		r.Route("/reports", h.Backup.ReportRoutes)
		r.Route("/import", h.Import.Routes)
	})

	return router
}

package main

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/joho/godotenv"

	"github.com/MrJamesThe3rd/finsight/internal/app"
	"github.com/MrJamesThe3rd/finsight/internal/config"
	"github.com/MrJamesThe3rd/finsight/internal/database"
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

const shutdownTimeout = 10 * time.Second

func main() {
	_ = godotenv.Load()

	cfg, err := config.Load()
	if err != nil {
		slog.Error("failed to load config", "error", err)
		os.Exit(1)
	}

	slog.SetDefault(cfg.NewLogger(os.Stderr))

	db, err := database.Open(cfg)
	if err != nil {
		slog.Error("failed to connect to database", "error", err)
		os.Exit(1)
	}
	defer db.Close()

	publisher, closePublisher, err := app.Publisher(cfg)
	if err != nil {
		slog.Error("failed to connect to broker", "error", err)
		os.Exit(1)
	}
	defer closePublisher()

	svc := app.New(cfg, db, publisher)

	router := finsightHttp.New(finsightHttp.Handlers{
		Expenses:  expenseHandler.NewHandler(svc.Expenses, svc.Rules),
		Budgets:   budgetHandler.NewHandler(svc.Budgets, svc.Expenses, svc.Advisor),
		Goals:     goalHandler.NewHandler(svc.Goals),
		Insights:  insightHandler.NewHandler(svc.Insights, svc.Expenses, svc.Budgets),
		Dashboard: dashboardHandler.NewHandler(svc.Dashboard),
		Backup:    backupHandler.NewHandler(svc.Backup, svc.Reports),
		Import:    importHandler.NewHandler(svc.Import),
		Rules:     rulesHandler.NewHandler(svc.Rules),
	})

	server := &http.Server{
		Addr:              fmt.Sprintf(":%d", cfg.App.Port),
		Handler:           router,
		ReadHeaderTimeout: 5 * time.Second,
		ReadTimeout:       cfg.Server.Timeout,
		WriteTimeout:      cfg.Server.Timeout + cfg.AI.Timeout,
	}

	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	defer stop()

	go func() {
		slog.Info("starting server", "port", server.Addr, "driver", cfg.Store.Driver, "ai", cfg.AIEnabled())

		if err := server.ListenAndServe(); err != nil && !errors.Is(err, http.ErrServerClosed) {
			slog.Error("server failed", "error", err)
			stop()
		}
	}()

	<-ctx.Done()

	shutdownCtx, cancel := context.WithTimeout(context.Background(), shutdownTimeout)
	defer cancel()

	if err := server.Shutdown(shutdownCtx); err != nil {
		slog.Error("failed to shut down server", "error", err)
	}
}

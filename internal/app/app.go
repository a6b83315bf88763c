// Package app assembles the services shared by the API server and the TUI.
package app

import (
	"database/sql"
	"log/slog"

	"github.com/MrJamesThe3rd/finsight/internal/advisor"
	"github.com/MrJamesThe3rd/finsight/internal/backup"
	backupStore "github.com/MrJamesThe3rd/finsight/internal/backup/store"
	"github.com/MrJamesThe3rd/finsight/internal/budget"
	budgetStore "github.com/MrJamesThe3rd/finsight/internal/budget/store"
	"github.com/MrJamesThe3rd/finsight/internal/config"
	"github.com/MrJamesThe3rd/finsight/internal/dashboard"
	"github.com/MrJamesThe3rd/finsight/internal/events"
	"github.com/MrJamesThe3rd/finsight/internal/expense"
	expenseStore "github.com/MrJamesThe3rd/finsight/internal/expense/store"
	"github.com/MrJamesThe3rd/finsight/internal/goal"
	goalStore "github.com/MrJamesThe3rd/finsight/internal/goal/store"
	"github.com/MrJamesThe3rd/finsight/internal/importer"
	"github.com/MrJamesThe3rd/finsight/internal/insight"
	insightStore "github.com/MrJamesThe3rd/finsight/internal/insight/store"
	"github.com/MrJamesThe3rd/finsight/internal/matching"
	matchingStore "github.com/MrJamesThe3rd/finsight/internal/matching/store"
	"github.com/MrJamesThe3rd/finsight/internal/report"
)

type App struct {
	Advisor   advisor.Advisor
	Rules     *matching.Service
	Expenses  *expense.Service
	Budgets   *budget.Service
	Goals     *goal.Service
	Insights  *insight.Service
	Dashboard *dashboard.Service
	Backup    *backup.Service
	Reports   *report.Service
	Import    *importer.Service
}

func New(cfg *config.Config, db *sql.DB, publisher events.Publisher) *App {
	adv := advisor.New(cfg)
	rules := matching.NewService(matchingStore.New(db), adv)

	var (
		expenseService = expense.NewService(expenseStore.New(db),
			expense.WithCategorizer(rules),
			expense.WithPublisher(publisher),
		)
		budgetService = budget.NewService(budgetStore.New(db), publisher)
		goalService   = goal.NewService(goalStore.New(db), publisher)
		snapshots     = backupStore.New(db)
	)

	return &App{
		Advisor:   adv,
		Rules:     rules,
		Expenses:  expenseService,
		Budgets:   budgetService,
		Goals:     goalService,
		Insights:  insight.NewService(insightStore.New(db), adv, publisher),
		Dashboard: dashboard.NewService(expenseService, budgetService, goalService),
		Backup:    backup.NewService(snapshots, publisher),
		Reports:   report.NewService(snapshots),
		Import:    importer.NewService(expenseService),
	}
}

// Publisher connects to the configured broker. Without AMQP_URL events are
// dropped. The returned close func is never nil.
func Publisher(cfg *config.Config) (events.Publisher, func() error, error) {
	if cfg.AMQP.URL == "" {
		return events.Nop{}, func() error { return nil }, nil
	}

	p, err := events.NewAMQPPublisher(cfg.AMQP.URL, cfg.AMQP.Exchange)
	if err != nil {
		return nil, nil, err
	}

	slog.Info("publishing events", "exchange", cfg.AMQP.Exchange)

	return p, p.Close, nil
}

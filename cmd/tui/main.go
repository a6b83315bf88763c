package main

import (
	"log/slog"
	"os"

	tea "github.com/charmbracelet/bubbletea"
	"github.com/charmbracelet/lipgloss"
	"github.com/joho/godotenv"

	"github.com/MrJamesThe3rd/finsight/cmd/tui/internal/view"
	"github.com/MrJamesThe3rd/finsight/internal/app"
	"github.com/MrJamesThe3rd/finsight/internal/config"
	"github.com/MrJamesThe3rd/finsight/internal/database"
)

type model struct {
	svc *app.App

	currentView View

	dashboardView view.DashboardModel
	expensesView  view.ExpensesModel
	budgetsView   view.BudgetsModel
	goalsView     view.GoalsModel
	insightsView  view.InsightsModel
	importView    view.ImportModel
	backupView    view.BackupModel
}

type View int

const (
	ViewMenu      View = 0
	ViewDashboard View = 1
	ViewExpenses  View = 2
	ViewBudgets   View = 3
	ViewGoals     View = 4
	ViewInsights  View = 5
	ViewImport    View = 6
	ViewBackup    View = 7
)

func initialModel(svc *app.App) model {
	return model{
		svc:         svc,
		currentView: ViewMenu,
	}
}

func (m model) Init() tea.Cmd {
	return nil
}

func (m model) Update(msg tea.Msg) (tea.Model, tea.Cmd) {
	var cmd tea.Cmd

	switch msg := msg.(type) {
	case tea.KeyMsg:
		if msg.String() == "ctrl+c" {
			return m, tea.Quit
		}

		if m.currentView == ViewMenu {
			switch msg.String() {
			case "q":
				return m, tea.Quit
			case "1":
				m.currentView = ViewDashboard
				m.dashboardView = view.NewDashboardModel(m.svc.Dashboard)

				return m, m.dashboardView.Init()
			case "2":
				m.currentView = ViewExpenses
				m.expensesView = view.NewExpensesModel(m.svc.Expenses, m.svc.Rules)

				return m, m.expensesView.Init()
			case "3":
				m.currentView = ViewBudgets
				m.budgetsView = view.NewBudgetsModel(m.svc.Budgets, m.svc.Expenses, m.svc.Advisor)

				return m, m.budgetsView.Init()
			case "4":
				m.currentView = ViewGoals
				m.goalsView = view.NewGoalsModel(m.svc.Goals)

				return m, m.goalsView.Init()
			case "5":
				m.currentView = ViewInsights
				m.insightsView = view.NewInsightsModel(m.svc.Insights, m.svc.Expenses, m.svc.Budgets)

				return m, m.insightsView.Init()
			case "6":
				m.currentView = ViewImport
				m.importView = view.NewImportModel(m.svc.Import)

				return m, m.importView.Init()
			case "7":
				m.currentView = ViewBackup
				m.backupView = view.NewBackupModel(m.svc.Backup, m.svc.Reports)

				return m, m.backupView.Init()
			}
		}
	case view.BackMsg:
		m.currentView = ViewMenu
		return m, nil
	}

	switch m.currentView {
	case ViewDashboard:
		var newModel tea.Model
		newModel, cmd = m.dashboardView.Update(msg)
		m.dashboardView = newModel.(view.DashboardModel)
	case ViewExpenses:
		var newModel tea.Model
		newModel, cmd = m.expensesView.Update(msg)
		m.expensesView = newModel.(view.ExpensesModel)
	case ViewBudgets:
		var newModel tea.Model
		newModel, cmd = m.budgetsView.Update(msg)
		m.budgetsView = newModel.(view.BudgetsModel)
	case ViewGoals:
		var newModel tea.Model
		newModel, cmd = m.goalsView.Update(msg)
		m.goalsView = newModel.(view.GoalsModel)
	case ViewInsights:
		var newModel tea.Model
		newModel, cmd = m.insightsView.Update(msg)
		m.insightsView = newModel.(view.InsightsModel)
	case ViewImport:
		var newModel tea.Model
		newModel, cmd = m.importView.Update(msg)
		m.importView = newModel.(view.ImportModel)
	case ViewBackup:
		var newModel tea.Model
		newModel, cmd = m.backupView.Update(msg)
		m.backupView = newModel.(view.BackupModel)
	}

	return m, cmd
}

func (m model) View() string {
	switch m.currentView {
	case ViewMenu:
		return lipgloss.NewStyle().Padding(2).Render(
			"Finsight\n\n" +
				"1. Dashboard\n" +
				"2. Expenses\n" +
				"3. Budgets\n" +
				"4. Savings Goals\n" +
				"5. AI Insights\n" +
				"6. Import CSV\n" +
				"7. Backup & Reports\n\n" +
				"q. Quit",
		)
	case ViewDashboard:
		return m.dashboardView.View()
	case ViewExpenses:
		return m.expensesView.View()
	case ViewBudgets:
		return m.budgetsView.View()
	case ViewGoals:
		return m.goalsView.View()
	case ViewInsights:
		return m.insightsView.View()
	case ViewImport:
		return m.importView.View()
	case ViewBackup:
		return m.backupView.View()
	}

	return "Unknown View"
}

func main() {
	_ = godotenv.Load()

	cfg, err := config.Load()
	if err != nil {
		slog.Error("failed to load config", "error", err)
		os.Exit(1)
	}

	// The terminal belongs to the UI; logs go to a file.
	logFile, err := os.OpenFile("finsight-tui.log", os.O_CREATE|os.O_WRONLY|os.O_APPEND, 0o644)
	if err != nil {
		slog.Error("failed to open log file", "error", err)
		os.Exit(1)
	}
	defer logFile.Close()

	slog.SetDefault(cfg.NewLogger(logFile))

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

	p := tea.NewProgram(initialModel(app.New(cfg, db, publisher)), tea.WithAltScreen())
	if _, err := p.Run(); err != nil {
		slog.Error("failed to run TUI", "error", err)
		os.Exit(1)
	}
}

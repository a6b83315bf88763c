package view

import (
	"fmt"
	"strings"

	"github.com/charmbracelet/bubbles/table"
	tea "github.com/charmbracelet/bubbletea"
	"github.com/charmbracelet/lipgloss"
	"github.com/shopspring/decimal"

	"github.com/MrJamesThe3rd/finsight/internal/analytics"
	"github.com/MrJamesThe3rd/finsight/internal/chart"
	"github.com/MrJamesThe3rd/finsight/internal/dashboard"
)

const barWidth = 30

var granularities = []analytics.Granularity{analytics.Day, analytics.Week, analytics.Month, analytics.Year}

type DashboardModel struct {
	svc *dashboard.Service

	granularityIdx int
	progress       table.Model
	data           *dashboard.Dashboard
	loading        bool
	err            error
}

func NewDashboardModel(svc *dashboard.Service) DashboardModel {
	t := table.New(
		table.WithColumns([]table.Column{
			{Title: "Category", Width: 20},
			{Title: "Budget", Width: 12},
			{Title: "Spent", Width: 12},
			{Title: "Remaining", Width: 12},
			{Title: "Used", Width: 8},
			{Title: "Status", Width: 12},
		}),
		table.WithHeight(8),
	)

	return DashboardModel{
		svc:            svc,
		granularityIdx: 2,
		progress:       t,
		loading:        true,
	}
}

func (m DashboardModel) Title() string     { return "Dashboard" }
func (m DashboardModel) ShortHelp() string { return "Esc: back | g: granularity | r: refresh" }

func (m DashboardModel) Init() tea.Cmd {
	return m.loadCmd()
}

func (m DashboardModel) Update(msg tea.Msg) (tea.Model, tea.Cmd) {
	switch msg := msg.(type) {
	case dashboardMsg:
		m.loading = false
		m.err = msg.err
		m.data = msg.data

		if msg.data != nil {
			m.refreshTable()
		}

		return m, nil

	case tea.KeyMsg:
		switch msg.String() {
		case "esc":
			return m, Back
		case "g":
			m.granularityIdx = (m.granularityIdx + 1) % len(granularities)
			m.loading = true

			return m, m.loadCmd()
		case "r":
			m.loading = true
			return m, m.loadCmd()
		}
	}

	return m, nil
}

func (m *DashboardModel) refreshTable() {
	rows := make([]table.Row, 0, len(m.data.Progress))
	for _, r := range m.data.Progress {
		rows = append(rows, table.Row{
			r.Category,
			FormatMoney(r.Budget),
			FormatMoney(r.Spent),
			FormatMoney(r.Remaining),
			r.PercentageUsed.String() + "%",
			r.Status,
		})
	}

	m.progress.SetRows(rows)
}

func (m DashboardModel) View() string {
	if m.loading {
		return lipgloss.NewStyle().Padding(2).Render("Loading dashboard...")
	}

	if m.err != nil {
		return lipgloss.NewStyle().Padding(2).Render(errorStyle.Render(fmt.Sprintf("Error: %v", m.err)))
	}

	d := m.data

	summary := fmt.Sprintf(
		"Total spent: %s   This month: %s   Expenses: %d\nHealth score: %s (%s)   Goals: %d active, %s%% saved",
		FormatMoney(d.TotalSpent),
		FormatMoney(d.MonthSpent),
		d.ExpenseCount,
		activeStyle(fmt.Sprintf("%d/100", d.HealthScore)),
		d.Rating,
		d.Goals.ActiveGoals,
		d.Goals.OverallProgress.Round(1),
	)

	sections := []string{
		headerStyle.Render("Finsight Dashboard"),
		summary,
		"",
		headerStyle.Render(d.ByCategory.Title),
		renderPie(d.ByCategory),
		headerStyle.Render(fmt.Sprintf("%s  [g] %s", d.OverTime.Title, activeStyle(string(d.Granularity)))),
		renderSeries(d.OverTime),
		headerStyle.Render("Budget Progress (this month)"),
	}

	if len(d.Progress) == 0 {
		sections = append(sections, faintStyle.Render("No budgets set"))
	} else {
		sections = append(sections, m.progress.View())

		for _, category := range d.Budgets.OverBudget {
			sections = append(sections, statusColor(analytics.StatusOverBudget)+" "+category)
		}
	}

	return lipgloss.NewStyle().Padding(1).Render(lipgloss.JoinVertical(lipgloss.Left, sections...))
}

func renderPie(p chart.Pie) string {
	if p.Empty {
		return faintStyle.Render(p.Message) + "\n"
	}

	var sb strings.Builder
	for _, s := range p.Slices {
		fmt.Fprintf(&sb, "%-20s %s %5s%% %s\n", s.Label, chart.Bar(s.Percent, barWidth), s.Percent, FormatMoney(s.Value))
	}

	return sb.String()
}

// renderSeries scales every point against the largest one.
func renderSeries(s chart.Series) string {
	if s.Empty {
		return faintStyle.Render(s.Message) + "\n"
	}

	peak := decimal.Zero
	for _, p := range s.Points {
		peak = decimal.Max(peak, p.Value)
	}

	var sb strings.Builder
	for _, p := range s.Points {
		pct := decimal.Zero
		if peak.IsPositive() {
			pct = p.Value.Mul(decimal.NewFromInt(100)).Div(peak)
		}

		fmt.Fprintf(&sb, "%-12s %s %s\n", p.Label, chart.Bar(pct, barWidth), FormatMoney(p.Value))
	}

	return sb.String()
}

type dashboardMsg struct {
	data *dashboard.Dashboard
	err  error
}

func (m DashboardModel) loadCmd() tea.Cmd {
	g := granularities[m.granularityIdx]

	return func() tea.Msg {
		ctx, cancel := DbCtx()
		defer cancel()

		d, err := m.svc.Build(ctx, analytics.Filter{}, g)

		return dashboardMsg{data: d, err: err}
	}
}

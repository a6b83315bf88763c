package view

import (
	"context"
	"fmt"
	"strings"

	"github.com/charmbracelet/bubbles/spinner"
	tea "github.com/charmbracelet/bubbletea"
	"github.com/charmbracelet/lipgloss"

	"github.com/MrJamesThe3rd/finsight/internal/budget"
	"github.com/MrJamesThe3rd/finsight/internal/expense"
	"github.com/MrJamesThe3rd/finsight/internal/insight"
)

type InsightsModel struct {
	svc      *insight.Service
	expenses *expense.Service
	budgets  *budget.Service

	spinner         spinner.Model
	working         bool
	insights        []string
	recommendations []string
	err             error
}

func NewInsightsModel(svc *insight.Service, expenses *expense.Service, budgets *budget.Service) InsightsModel {
	s := spinner.New()
	s.Spinner = spinner.Dot
	s.Style = lipgloss.NewStyle().Foreground(lipgloss.Color("205"))

	return InsightsModel{
		svc:      svc,
		expenses: expenses,
		budgets:  budgets,
		spinner:  s,
		working:  true,
	}
}

func (m InsightsModel) Title() string     { return "AI Insights" }
func (m InsightsModel) ShortHelp() string { return "Esc: back | g: generate new insights" }

func (m InsightsModel) Init() tea.Cmd {
	return tea.Batch(m.spinner.Tick, m.loadCmd())
}

func (m InsightsModel) Update(msg tea.Msg) (tea.Model, tea.Cmd) {
	switch msg := msg.(type) {
	case insightsMsg:
		m.working = false
		m.err = msg.err

		if msg.err == nil {
			m.insights = msg.insights

			if msg.recommendations != nil {
				m.recommendations = msg.recommendations
			}
		}

		return m, nil

	case tea.KeyMsg:
		switch msg.String() {
		case "esc":
			return m, Back
		case "g":
			if m.working {
				return m, nil
			}

			m.working = true

			return m, tea.Batch(m.spinner.Tick, m.refreshCmd())
		}
	}

	if !m.working {
		return m, nil
	}

	var cmd tea.Cmd
	m.spinner, cmd = m.spinner.Update(msg)

	return m, cmd
}

func (m InsightsModel) View() string {
	if m.working {
		return lipgloss.NewStyle().Padding(2).Render(m.spinner.View() + " Analyzing your spending...")
	}

	if m.err != nil {
		return lipgloss.NewStyle().Padding(2).Render(errorStyle.Render(fmt.Sprintf("Error: %v", m.err)))
	}

	sections := []string{headerStyle.Render("Spending Insights")}

	if len(m.insights) == 0 {
		sections = append(sections, faintStyle.Render("No insights yet. Press g to generate them."))
	} else {
		sections = append(sections, bullets(m.insights))
	}

	if len(m.recommendations) > 0 {
		sections = append(sections, "", headerStyle.Render("Savings Recommendations"), bullets(m.recommendations))
	}

	return lipgloss.NewStyle().Padding(1).Render(lipgloss.JoinVertical(lipgloss.Left, sections...))
}

func bullets(lines []string) string {
	var sb strings.Builder
	for _, l := range lines {
		sb.WriteString("• " + l + "\n")
	}

	return sb.String()
}

// Messages

type insightsMsg struct {
	insights        []string
	recommendations []string
	err             error
}

func (m InsightsModel) loadCmd() tea.Cmd {
	return func() tea.Msg {
		ctx, cancel := DbCtx()
		defer cancel()

		insights, err := m.svc.List(ctx)

		return insightsMsg{insights: insights, err: err}
	}
}

func (m InsightsModel) refreshCmd() tea.Cmd {
	return func() tea.Msg {
		ctx, cancel := context.WithTimeout(context.Background(), adviceTimeout)
		defer cancel()

		expenses, err := m.expenses.List(ctx)
		if err != nil {
			return insightsMsg{err: err}
		}

		budgets, err := m.budgets.List(ctx)
		if err != nil {
			return insightsMsg{err: err}
		}

		report, err := m.svc.Refresh(ctx, expenses, budgets)
		if err != nil {
			return insightsMsg{err: err}
		}

		return insightsMsg{insights: report.Insights, recommendations: report.Recommendations}
	}
}

package view

import (
	"context"
	"fmt"
	"strings"
	"time"

	"github.com/charmbracelet/bubbles/table"
	tea "github.com/charmbracelet/bubbletea"
	"github.com/charmbracelet/huh"
	"github.com/charmbracelet/lipgloss"

	"github.com/MrJamesThe3rd/finsight/internal/advisor"
	"github.com/MrJamesThe3rd/finsight/internal/analytics"
	"github.com/MrJamesThe3rd/finsight/internal/budget"
	"github.com/MrJamesThe3rd/finsight/internal/chart"
	"github.com/MrJamesThe3rd/finsight/internal/expense"
)

const adviceTimeout = 30 * time.Second

// BudgetAdvisor proposes monthly limits from spending history.
type BudgetAdvisor interface {
	RecommendBudget(ctx context.Context, expenses []expense.Expense) (budget.Budgets, error)
}

type budgetsState int

const (
	budgetsStateBrowse budgetsState = iota
	budgetsStateSet
)

type BudgetsModel struct {
	svc      *budget.Service
	expenses *expense.Service
	advisor  BudgetAdvisor

	state       budgetsState
	table       table.Model
	categories  []string
	recommended budget.Budgets
	form        *huh.Form
	draft       *budgetDraft

	loading bool
	err     error
	status  string
}

type budgetDraft struct {
	Category string
	Amount   string
}

func NewBudgetsModel(svc *budget.Service, expenses *expense.Service, advisor BudgetAdvisor) BudgetsModel {
	t := table.New(
		table.WithColumns([]table.Column{
			{Title: "Category", Width: 20},
			{Title: "Budget", Width: 12},
			{Title: "Spent", Width: 12},
			{Title: "Remaining", Width: 12},
			{Title: "Used", Width: 34},
			{Title: "Status", Width: 12},
		}),
		table.WithFocused(true),
		table.WithHeight(12),
	)

	return BudgetsModel{
		svc:      svc,
		expenses: expenses,
		advisor:  advisor,
		table:    t,
		loading:  true,
	}
}

func (m BudgetsModel) Title() string { return "Budgets" }

func (m BudgetsModel) ShortHelp() string {
	if m.state == budgetsStateSet {
		return "Navigate form | Esc: cancel"
	}

	return "Esc: back | s: set | x: delete | p: propose | A: apply proposal | r: refresh"
}

func (m BudgetsModel) Init() tea.Cmd {
	return m.loadCmd()
}

func (m BudgetsModel) Update(msg tea.Msg) (tea.Model, tea.Cmd) {
	switch msg := msg.(type) {
	case budgetsLoadedMsg:
		m.loading = false
		m.err = msg.err

		if msg.err == nil {
			m.setRows(msg.budgets, msg.expenses)
		}

		return m, nil

	case budgetsSavedMsg:
		m.status = msg.status
		if msg.err != nil {
			m.status = fmt.Sprintf("Error: %v", msg.err)
		}

		m.state = budgetsStateBrowse
		m.form = nil
		m.table.Focus()

		return m, m.loadCmd()

	case recommendationMsg:
		if msg.err != nil {
			m.status = fmt.Sprintf("Error: %v", msg.err)
			return m, nil
		}

		m.recommended = msg.budgets
		m.status = ""

		if len(msg.budgets) == 0 {
			m.status = fmt.Sprintf("Record at least %d expenses to get a proposal.", advisor.MinBudgetExpenses)
		}

		return m, nil
	}

	if m.state == budgetsStateSet {
		return m.updateForm(msg)
	}

	keyMsg, ok := msg.(tea.KeyMsg)
	if ok {
		switch keyMsg.String() {
		case "esc":
			return m, Back
		case "r":
			m.loading = true
			return m, m.loadCmd()
		case "s":
			return m.enterSetMode()
		case "x":
			return m, m.deleteCmd()
		case "p":
			m.status = "Asking the advisor..."
			return m, m.recommendCmd()
		case "A":
			if len(m.recommended) == 0 {
				return m, nil
			}

			return m, m.applyCmd(m.recommended)
		}
	}

	var cmd tea.Cmd
	m.table, cmd = m.table.Update(msg)

	return m, cmd
}

func (m *BudgetsModel) setRows(budgets budget.Budgets, expenses []expense.Expense) {
	progress := analytics.BudgetProgress(expenses, budgets, time.Now())

	m.categories = budgets.Categories()

	rows := make([]table.Row, 0, len(m.categories))
	for _, c := range m.categories {
		p, ok := progress[c]
		if !ok {
			// Progress is empty until the first expense is recorded.
			p = analytics.Progress{Budget: budgets[c], Remaining: budgets[c]}
		}

		rows = append(rows, table.Row{
			c,
			FormatMoney(p.Budget),
			FormatMoney(p.Spent),
			FormatMoney(p.Remaining),
			fmt.Sprintf("%s %s%%", chart.Bar(p.PercentageUsed, 20), p.PercentageUsed.Round(1)),
			p.Status(),
		})
	}

	m.table.SetRows(rows)
}

func (m BudgetsModel) enterSetMode() (tea.Model, tea.Cmd) {
	m.draft = &budgetDraft{}

	if idx := m.table.Cursor(); idx >= 0 && idx < len(m.categories) {
		m.draft.Category = m.categories[idx]
	}

	m.form = huh.NewForm(
		huh.NewGroup(
			huh.NewInput().
				Key("category").
				Title("Category").
				Suggestions(expense.Categories).
				Value(&m.draft.Category).
				Validate(func(s string) error {
					if strings.TrimSpace(s) == "" {
						return budget.ErrEmptyCategory
					}

					return nil
				}),

			huh.NewInput().
				Key("amount").
				Title("Monthly limit").
				Placeholder("0.00").
				Value(&m.draft.Amount).
				Validate(func(s string) error {
					_, err := parseAmount(s)
					return err
				}),
		),
	).WithWidth(45).WithShowHelp(false)

	m.state = budgetsStateSet
	m.table.Blur()

	return m, m.form.Init()
}

func (m BudgetsModel) updateForm(msg tea.Msg) (tea.Model, tea.Cmd) {
	if keyMsg, ok := msg.(tea.KeyMsg); ok && keyMsg.Type == tea.KeyEsc {
		m.state = budgetsStateBrowse
		m.form = nil
		m.table.Focus()

		return m, nil
	}

	form, cmd := m.form.Update(msg)
	if f, ok := form.(*huh.Form); ok {
		m.form = f
	}

	if m.form.State != huh.StateCompleted {
		return m, cmd
	}

	return m, m.setCmd(*m.draft)
}

func (m BudgetsModel) View() string {
	if m.loading {
		return lipgloss.NewStyle().Padding(2).Render("Loading budgets...")
	}

	if m.err != nil {
		return lipgloss.NewStyle().Padding(2).Render(errorStyle.Render(fmt.Sprintf("Error: %v", m.err)))
	}

	sections := []string{headerStyle.Render("Monthly Budgets")}

	if len(m.categories) == 0 {
		sections = append(sections, faintStyle.Render("No budgets yet. Press s to set one."))
	} else {
		sections = append(sections, m.table.View())
	}

	if len(m.recommended) > 0 {
		var sb strings.Builder

		sb.WriteString("Proposed limits (A to apply):\n")

		for _, c := range m.recommended.Categories() {
			fmt.Fprintf(&sb, "  %-20s %s\n", c, FormatMoney(m.recommended[c]))
		}

		sections = append(sections, panelStyle.Render(sb.String()))
	}

	content := lipgloss.JoinVertical(lipgloss.Left, sections...)

	if m.form != nil {
		content = lipgloss.JoinHorizontal(lipgloss.Top, content, panelStyle.Width(48).Render("Set Budget\n\n"+m.form.View()))
	}

	if m.status != "" {
		content = faintStyle.Render(m.status) + "\n" + content
	}

	return lipgloss.NewStyle().Padding(1).Render(content)
}

// Messages

type budgetsLoadedMsg struct {
	budgets  budget.Budgets
	expenses []expense.Expense
	err      error
}

type budgetsSavedMsg struct {
	status string
	err    error
}

type recommendationMsg struct {
	budgets budget.Budgets
	err     error
}

func (m BudgetsModel) loadCmd() tea.Cmd {
	return func() tea.Msg {
		ctx, cancel := DbCtx()
		defer cancel()

		budgets, err := m.svc.List(ctx)
		if err != nil {
			return budgetsLoadedMsg{err: err}
		}

		expenses, err := m.expenses.List(ctx)

		return budgetsLoadedMsg{budgets: budgets, expenses: expenses, err: err}
	}
}

func (m BudgetsModel) setCmd(d budgetDraft) tea.Cmd {
	return func() tea.Msg {
		amount, err := parseAmount(d.Amount)
		if err != nil {
			return budgetsSavedMsg{err: err}
		}

		ctx, cancel := DbCtx()
		defer cancel()

		if err := m.svc.Set(ctx, d.Category, amount); err != nil {
			return budgetsSavedMsg{err: err}
		}

		return budgetsSavedMsg{status: fmt.Sprintf("%s limit set to %s", strings.TrimSpace(d.Category), FormatMoney(amount))}
	}
}

func (m BudgetsModel) deleteCmd() tea.Cmd {
	idx := m.table.Cursor()
	if idx < 0 || idx >= len(m.categories) {
		return nil
	}

	category := m.categories[idx]

	return func() tea.Msg {
		ctx, cancel := DbCtx()
		defer cancel()

		if err := m.svc.Delete(ctx, category); err != nil {
			return budgetsSavedMsg{err: err}
		}

		return budgetsSavedMsg{status: "Removed budget for " + category}
	}
}

func (m BudgetsModel) recommendCmd() tea.Cmd {
	return func() tea.Msg {
		ctx, cancel := context.WithTimeout(context.Background(), adviceTimeout)
		defer cancel()

		expenses, err := m.expenses.List(ctx)
		if err != nil {
			return recommendationMsg{err: err}
		}

		budgets, err := m.advisor.RecommendBudget(ctx, expenses)

		return recommendationMsg{budgets: budgets, err: err}
	}
}

func (m BudgetsModel) applyCmd(recommended budget.Budgets) tea.Cmd {
	return func() tea.Msg {
		ctx, cancel := DbCtx()
		defer cancel()

		for _, c := range recommended.Categories() {
			if err := m.svc.Set(ctx, c, recommended[c]); err != nil {
				return budgetsSavedMsg{err: err}
			}
		}

		return budgetsSavedMsg{status: fmt.Sprintf("Applied %d proposed limits", len(recommended))}
	}
}

package view

import (
	"fmt"
	"strings"
	"time"

	"github.com/charmbracelet/bubbles/table"
	tea "github.com/charmbracelet/bubbletea"
	"github.com/charmbracelet/huh"
	"github.com/charmbracelet/lipgloss"
	"github.com/shopspring/decimal"

	"github.com/MrJamesThe3rd/finsight/internal/analytics"
	"github.com/MrJamesThe3rd/finsight/internal/expense"
	"github.com/MrJamesThe3rd/finsight/internal/matching"
)

type expensesState int

const (
	expensesStateBrowse expensesState = iota
	expensesStateTimeframe
	expensesStateAdd
	expensesStateLearn
)

// autoCategory asks the categorizer to pick the category.
const autoCategory = ""

type ExpensesModel struct {
	svc   *expense.Service
	rules *matching.Service

	state    expensesState
	table    table.Model
	all      []expense.Expense
	shown    []expense.Expense
	form     *huh.Form
	picker   TimeframePicker
	filter   analytics.Filter
	rangeTag string

	categoryIdx int
	loading     bool
	err         error
	status      string

	draft *expenseDraft
}

// expenseDraft holds form bindings. It is shared by pointer so the values
// huh writes survive the model being copied between updates.
type expenseDraft struct {
	Description string
	Amount      string
	Date        string
	Category    string
	Pattern     string
}

func NewExpensesModel(svc *expense.Service, rules *matching.Service) ExpensesModel {
	t := table.New(
		table.WithColumns([]table.Column{
			{Title: "Date", Width: 12},
			{Title: "Category", Width: 20},
			{Title: "Amount", Width: 12},
			{Title: "Description", Width: 40},
		}),
		table.WithFocused(true),
		table.WithHeight(15),
	)

	s := table.DefaultStyles()
	s.Header = s.Header.
		BorderStyle(lipgloss.NormalBorder()).
		BorderForeground(lipgloss.Color("240")).
		BorderBottom(true).
		Bold(false)
	s.Selected = s.Selected.
		Foreground(lipgloss.Color("229")).
		Background(lipgloss.Color("57")).
		Bold(false)
	t.SetStyles(s)

	return ExpensesModel{
		svc:      svc,
		rules:    rules,
		table:    t,
		picker:   NewTimeframePicker(TimeframeThisWeek),
		rangeTag: TimeframeAll.String(),
		loading:  true,
	}
}

func (m ExpensesModel) Title() string { return "Expenses" }

func (m ExpensesModel) ShortHelp() string {
	if m.state == expensesStateAdd || m.state == expensesStateLearn {
		return "Navigate form | Esc: cancel"
	}

	return "Esc: back | a: add | x: delete | l: learn rule | c: category | d: dates | r: refresh"
}

func (m ExpensesModel) Init() tea.Cmd {
	return m.loadCmd()
}

// categoryOptions is "all" followed by the standard labels.
func categoryOptions() []string {
	return append([]string{analytics.AllCategories}, expense.Categories...)
}

func (m ExpensesModel) Update(msg tea.Msg) (tea.Model, tea.Cmd) {
	switch msg := msg.(type) {
	case expensesLoadedMsg:
		m.loading = false
		m.err = msg.err
		m.all = msg.expenses
		m.refreshTable()

		return m, nil

	case expenseSavedMsg:
		m.status = msg.status
		if msg.err != nil {
			m.status = fmt.Sprintf("Error: %v", msg.err)
		}

		m.state = expensesStateBrowse
		m.form = nil
		m.table.Focus()

		return m, m.loadCmd()

	case TimeframeSelectedMsg:
		m.filter.StartDate = msg.Start
		m.filter.EndDate = msg.End
		m.rangeTag = msg.Label
		m.state = expensesStateBrowse
		m.picker.Reset()
		m.table.Focus()
		m.refreshTable()

		return m, nil

	case tea.WindowSizeMsg:
		m.table.SetHeight(msg.Height - 10)
		return m, nil
	}

	switch m.state {
	case expensesStateTimeframe:
		if keyMsg, ok := msg.(tea.KeyMsg); ok && keyMsg.Type == tea.KeyEsc {
			m.state = expensesStateBrowse
			m.table.Focus()

			return m, nil
		}

		var cmd tea.Cmd
		m.picker, cmd = m.picker.Update(msg)

		return m, cmd
	case expensesStateAdd, expensesStateLearn:
		return m.updateForm(msg)
	}

	return m.updateBrowse(msg)
}

func (m ExpensesModel) updateBrowse(msg tea.Msg) (tea.Model, tea.Cmd) {
	keyMsg, ok := msg.(tea.KeyMsg)
	if ok {
		switch keyMsg.String() {
		case "esc":
			return m, Back
		case "r":
			m.loading = true
			return m, m.loadCmd()
		case "a":
			return m.enterAddMode()
		case "l":
			return m.enterLearnMode()
		case "x":
			return m, m.deleteCmd()
		case "c":
			options := categoryOptions()
			m.categoryIdx = (m.categoryIdx + 1) % len(options)
			m.filter.Category = options[m.categoryIdx]
			m.refreshTable()

			return m, nil
		case "d":
			m.state = expensesStateTimeframe
			m.picker.Reset()
			m.table.Blur()

			return m, m.picker.Init()
		}
	}

	var cmd tea.Cmd
	m.table, cmd = m.table.Update(msg)

	return m, cmd
}

func (m ExpensesModel) enterAddMode() (tea.Model, tea.Cmd) {
	m.draft = &expenseDraft{Date: FormatDate(time.Now()), Category: autoCategory}

	options := []huh.Option[string]{huh.NewOption("Suggest for me", autoCategory)}
	for _, c := range expense.Categories {
		options = append(options, huh.NewOption(c, c))
	}

	m.form = huh.NewForm(
		huh.NewGroup(
			huh.NewInput().
				Key("description").
				Title("Description").
				Value(&m.draft.Description).
				Validate(func(s string) error {
					if strings.TrimSpace(s) == "" {
						return expense.ErrEmptyDescription
					}

					return nil
				}),

			huh.NewInput().
				Key("amount").
				Title("Amount").
				Placeholder("0.00").
				Value(&m.draft.Amount).
				Validate(func(s string) error {
					_, err := parseAmount(s)
					return err
				}),

			huh.NewInput().
				Key("date").
				Title("Date").
				Placeholder("YYYY-MM-DD").
				Value(&m.draft.Date).
				Validate(func(s string) error {
					_, err := expense.ParseDate(s)
					return err
				}),

			huh.NewSelect[string]().
				Key("category").
				Title("Category").
				Options(options...).
				Value(&m.draft.Category),
		),
	).WithWidth(45).WithShowHelp(false)

	m.state = expensesStateAdd
	m.table.Blur()

	return m, m.form.Init()
}

func (m ExpensesModel) enterLearnMode() (tea.Model, tea.Cmd) {
	e, ok := m.selected()
	if !ok {
		return m, nil
	}

	m.draft = &expenseDraft{Pattern: strings.ToLower(e.Description), Category: e.Category}

	m.form = huh.NewForm(
		huh.NewGroup(
			huh.NewInput().
				Key("pattern").
				Title("When the description contains").
				Value(&m.draft.Pattern).
				Validate(func(s string) error {
					if strings.TrimSpace(s) == "" {
						return matching.ErrEmptyPattern
					}

					return nil
				}),

			huh.NewInput().
				Key("category").
				Title("Use category").
				Value(&m.draft.Category).
				Validate(func(s string) error {
					if strings.TrimSpace(s) == "" {
						return matching.ErrEmptyTarget
					}

					return nil
				}),
		),
	).WithWidth(45).WithShowHelp(false)

	m.state = expensesStateLearn
	m.table.Blur()

	return m, m.form.Init()
}

func (m ExpensesModel) updateForm(msg tea.Msg) (tea.Model, tea.Cmd) {
	if keyMsg, ok := msg.(tea.KeyMsg); ok && keyMsg.Type == tea.KeyEsc {
		m.state = expensesStateBrowse
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

	if m.state == expensesStateLearn {
		return m, m.learnCmd()
	}

	return m, m.createCmd()
}

func (m ExpensesModel) View() string {
	if m.loading {
		return lipgloss.NewStyle().Padding(2).Render("Loading expenses...")
	}

	if m.err != nil {
		return lipgloss.NewStyle().Padding(2).Render(errorStyle.Render(fmt.Sprintf("Error: %v", m.err)))
	}

	if m.state == expensesStateTimeframe {
		return lipgloss.NewStyle().Padding(1).Render(m.picker.View())
	}

	header := fmt.Sprintf(
		"Filter: [c] Category: %s | [d] Dates: %s | %d shown, total %s",
		activeStyle(categoryOptions()[m.categoryIdx]),
		activeStyle(m.rangeTag),
		len(m.shown),
		FormatMoney(analytics.Sum(m.shown)),
	)

	tableView := lipgloss.NewStyle().
		BorderStyle(lipgloss.NormalBorder()).
		BorderForeground(lipgloss.Color("240")).
		Render(m.table.View())

	content := lipgloss.JoinVertical(lipgloss.Left,
		lipgloss.NewStyle().PaddingBottom(1).Render(header),
		tableView,
	)

	if m.form != nil {
		title := "New Expense"
		if m.state == expensesStateLearn {
			title = "Learn Category Rule"
		}

		panel := panelStyle.Width(48).Render(fmt.Sprintf("%s\n\n%s", title, m.form.View()))
		content = lipgloss.JoinHorizontal(lipgloss.Top, content, panel)
	}

	if m.status != "" {
		content = faintStyle.Render(m.status) + "\n" + content
	}

	return lipgloss.NewStyle().Padding(1).Render(content)
}

func (m *ExpensesModel) refreshTable() {
	m.shown = analytics.FilterExpenses(m.all, m.filter)

	rows := make([]table.Row, len(m.shown))
	for i, e := range m.shown {
		rows[i] = table.Row{FormatDate(e.Date), e.Category, FormatMoney(e.Amount), e.Description}
	}

	m.table.SetRows(rows)
}

func (m ExpensesModel) selected() (expense.Expense, bool) {
	idx := m.table.Cursor()
	if idx < 0 || idx >= len(m.shown) {
		return expense.Expense{}, false
	}

	return m.shown[idx], true
}

func parseAmount(s string) (decimal.Decimal, error) {
	d, err := decimal.NewFromString(strings.TrimSpace(s))
	if err != nil {
		return decimal.Zero, fmt.Errorf("%w: %q is not a number", expense.ErrInvalidAmount, s)
	}

	if d.IsNegative() {
		return decimal.Zero, expense.ErrInvalidAmount
	}

	return d, nil
}

// Messages

type expensesLoadedMsg struct {
	expenses []expense.Expense
	err      error
}

type expenseSavedMsg struct {
	status string
	err    error
}

func (m ExpensesModel) loadCmd() tea.Cmd {
	return func() tea.Msg {
		ctx, cancel := DbCtx()
		defer cancel()

		expenses, err := m.svc.List(ctx)

		return expensesLoadedMsg{expenses: expenses, err: err}
	}
}

func (m ExpensesModel) createCmd() tea.Cmd {
	d := *m.draft

	return func() tea.Msg {
		amount, err := parseAmount(d.Amount)
		if err != nil {
			return expenseSavedMsg{err: err}
		}

		date, err := expense.ParseDate(d.Date)
		if err != nil {
			return expenseSavedMsg{err: err}
		}

		ctx, cancel := DbCtx()
		defer cancel()

		e, err := m.svc.Create(ctx, expense.CreateParams{
			Description: d.Description,
			Amount:      amount,
			Date:        date,
			Category:    d.Category,
		})
		if err != nil {
			return expenseSavedMsg{err: err}
		}

		return expenseSavedMsg{status: fmt.Sprintf("Added %s (%s)", e.Description, e.Category)}
	}
}

func (m ExpensesModel) deleteCmd() tea.Cmd {
	e, ok := m.selected()
	if !ok {
		return nil
	}

	return func() tea.Msg {
		ctx, cancel := DbCtx()
		defer cancel()

		if err := m.svc.Delete(ctx, e.ID); err != nil {
			return expenseSavedMsg{err: err}
		}

		return expenseSavedMsg{status: "Deleted " + e.Description}
	}
}

func (m ExpensesModel) learnCmd() tea.Cmd {
	d := *m.draft

	return func() tea.Msg {
		ctx, cancel := DbCtx()
		defer cancel()

		rule, err := m.rules.Learn(ctx, d.Pattern, d.Category)
		if err != nil {
			return expenseSavedMsg{err: err}
		}

		return expenseSavedMsg{status: fmt.Sprintf("Descriptions containing %q now go to %s", rule.Pattern, rule.Category)}
	}
}

package view

import (
	"fmt"
	"strings"
	"time"

	tea "github.com/charmbracelet/bubbletea"
	"github.com/charmbracelet/huh"
	"github.com/charmbracelet/lipgloss"
	"github.com/google/uuid"

	"github.com/MrJamesThe3rd/finsight/internal/chart"
	"github.com/MrJamesThe3rd/finsight/internal/expense"
	"github.com/MrJamesThe3rd/finsight/internal/goal"
)

type goalsState int

const (
	goalsStateBrowse goalsState = iota
	goalsStateAdd
	goalsStateUpdate
)

type GoalsModel struct {
	svc *goal.Service

	state  goalsState
	goals  []goal.Goal
	cursor int
	form   *huh.Form
	draft  *goalDraft

	loading bool
	err     error
	status  string
}

type goalDraft struct {
	Name       string
	Target     string
	Current    string
	TargetDate string
	Priority   goal.Priority
	Notes      string
}

func NewGoalsModel(svc *goal.Service) GoalsModel {
	return GoalsModel{svc: svc, loading: true}
}

func (m GoalsModel) Title() string { return "Savings Goals" }

func (m GoalsModel) ShortHelp() string {
	if m.state != goalsStateBrowse {
		return "Navigate form | Esc: cancel"
	}

	return "Esc: back | ↑/↓: select | a: add | u: update progress | x: delete"
}

func (m GoalsModel) Init() tea.Cmd {
	return m.loadCmd()
}

func (m GoalsModel) Update(msg tea.Msg) (tea.Model, tea.Cmd) {
	switch msg := msg.(type) {
	case goalsLoadedMsg:
		m.loading = false
		m.err = msg.err
		m.goals = msg.goals

		if m.cursor >= len(m.goals) {
			m.cursor = max(len(m.goals)-1, 0)
		}

		return m, nil

	case goalSavedMsg:
		m.status = msg.status
		if msg.err != nil {
			m.status = fmt.Sprintf("Error: %v", msg.err)
		}

		m.state = goalsStateBrowse
		m.form = nil

		return m, m.loadCmd()
	}

	if m.state != goalsStateBrowse {
		return m.updateForm(msg)
	}

	if keyMsg, ok := msg.(tea.KeyMsg); ok {
		switch keyMsg.String() {
		case "esc":
			return m, Back
		case "up", "k":
			if m.cursor > 0 {
				m.cursor--
			}
		case "down", "j":
			if m.cursor < len(m.goals)-1 {
				m.cursor++
			}
		case "a":
			return m.enterAddMode()
		case "u":
			return m.enterUpdateMode()
		case "x":
			return m, m.deleteCmd()
		}
	}

	return m, nil
}

func (m GoalsModel) enterAddMode() (tea.Model, tea.Cmd) {
	m.draft = &goalDraft{
		Current:    "0",
		TargetDate: FormatDate(time.Now().AddDate(1, 0, 0)),
		Priority:   goal.PriorityMedium,
	}

	m.form = huh.NewForm(
		huh.NewGroup(
			huh.NewInput().Key("name").Title("Goal").Value(&m.draft.Name).
				Validate(func(s string) error {
					if strings.TrimSpace(s) == "" {
						return goal.ErrEmptyName
					}

					return nil
				}),
			huh.NewInput().Key("target").Title("Target amount").Value(&m.draft.Target).
				Validate(func(s string) error {
					d, err := parseAmount(s)
					if err == nil && !d.IsPositive() {
						return goal.ErrInvalidTarget
					}

					return err
				}),
			huh.NewInput().Key("current").Title("Saved so far").Value(&m.draft.Current).
				Validate(func(s string) error {
					_, err := parseAmount(s)
					return err
				}),
			huh.NewInput().Key("date").Title("Target date").Placeholder("YYYY-MM-DD").Value(&m.draft.TargetDate).
				Validate(func(s string) error {
					_, err := expense.ParseDate(s)
					return err
				}),
			huh.NewSelect[goal.Priority]().Key("priority").Title("Priority").
				Options(
					huh.NewOption("Low", goal.PriorityLow),
					huh.NewOption("Medium", goal.PriorityMedium),
					huh.NewOption("High", goal.PriorityHigh),
				).
				Value(&m.draft.Priority),
			huh.NewText().Key("notes").Title("Notes").Value(&m.draft.Notes),
		),
	).WithWidth(50).WithShowHelp(false)

	m.state = goalsStateAdd

	return m, m.form.Init()
}

func (m GoalsModel) enterUpdateMode() (tea.Model, tea.Cmd) {
	if m.cursor >= len(m.goals) {
		return m, nil
	}

	m.draft = &goalDraft{Current: m.goals[m.cursor].CurrentAmount.String()}

	m.form = huh.NewForm(
		huh.NewGroup(
			huh.NewInput().Key("current").Title("Saved so far").Value(&m.draft.Current).
				Validate(func(s string) error {
					_, err := parseAmount(s)
					return err
				}),
			huh.NewInput().Key("notes").Title("Note").Placeholder("optional").Value(&m.draft.Notes),
		),
	).WithWidth(50).WithShowHelp(false)

	m.state = goalsStateUpdate

	return m, m.form.Init()
}

func (m GoalsModel) updateForm(msg tea.Msg) (tea.Model, tea.Cmd) {
	if keyMsg, ok := msg.(tea.KeyMsg); ok && keyMsg.Type == tea.KeyEsc {
		m.state = goalsStateBrowse
		m.form = nil

		return m, nil
	}

	form, cmd := m.form.Update(msg)
	if f, ok := form.(*huh.Form); ok {
		m.form = f
	}

	if m.form.State != huh.StateCompleted {
		return m, cmd
	}

	if m.state == goalsStateUpdate {
		return m, m.updateCmd(m.goals[m.cursor].ID, *m.draft)
	}

	return m, m.createCmd(*m.draft)
}

func (m GoalsModel) View() string {
	if m.loading {
		return lipgloss.NewStyle().Padding(2).Render("Loading goals...")
	}

	if m.err != nil {
		return lipgloss.NewStyle().Padding(2).Render(errorStyle.Render(fmt.Sprintf("Error: %v", m.err)))
	}

	if m.form != nil {
		title := "New Goal"
		if m.state == goalsStateUpdate {
			title = "Update " + m.goals[m.cursor].Name
		}

		return lipgloss.NewStyle().Padding(1).Render(panelStyle.Render(title + "\n\n" + m.form.View()))
	}

	sections := []string{headerStyle.Render("Savings Goals")}

	if len(m.goals) == 0 {
		sections = append(sections, faintStyle.Render("No goals yet. Press a to add one."))
	}

	today := m.svc.Today()

	for i, g := range m.goals {
		sections = append(sections, renderGoal(g, today, i == m.cursor))
	}

	if len(m.goals) > 0 {
		s := goal.Summarize(m.goals)
		sections = append(sections, fmt.Sprintf("Overall: %s of %s (%s%%)",
			FormatMoney(s.TotalCurrent), FormatMoney(s.TotalTarget), s.OverallProgress.Round(1)))
	}

	content := lipgloss.JoinVertical(lipgloss.Left, sections...)

	if m.status != "" {
		content = faintStyle.Render(m.status) + "\n" + content
	}

	return lipgloss.NewStyle().Padding(1).Render(content)
}

func renderGoal(g goal.Goal, today time.Time, selected bool) string {
	o := g.Outlook(today)

	cursor := "  "
	if selected {
		cursor = "> "
	}

	state := "Behind schedule"

	switch {
	case o.Complete:
		state = successStyle.Render("Complete")
	case o.Overdue:
		state = errorStyle.Render("Overdue")
	case o.OnTrack:
		state = successStyle.Render("On track")
	}

	lines := []string{
		fmt.Sprintf("%s%s [%s]  %s", cursor, activeStyle(g.Name), g.Priority, state),
		fmt.Sprintf("    %s %s%%  %s of %s",
			chart.Bar(o.ProgressPercent, barWidth), o.ProgressPercent.Round(1),
			FormatMoney(g.CurrentAmount), FormatMoney(g.TargetAmount)),
	}

	if !o.Complete && o.DaysRemaining > 0 {
		lines = append(lines, fmt.Sprintf("    %d days left (%d months), save %s/month",
			o.DaysRemaining, o.MonthsRemaining(), FormatMoney(o.MonthlySavingsNeeded)))
	}

	return strings.Join(lines, "\n")
}

// Messages

type goalsLoadedMsg struct {
	goals []goal.Goal
	err   error
}

type goalSavedMsg struct {
	status string
	err    error
}

func (m GoalsModel) loadCmd() tea.Cmd {
	return func() tea.Msg {
		ctx, cancel := DbCtx()
		defer cancel()

		goals, err := m.svc.List(ctx)

		return goalsLoadedMsg{goals: goals, err: err}
	}
}

func (m GoalsModel) createCmd(d goalDraft) tea.Cmd {
	return func() tea.Msg {
		target, err := parseAmount(d.Target)
		if err != nil {
			return goalSavedMsg{err: err}
		}

		current, err := parseAmount(d.Current)
		if err != nil {
			return goalSavedMsg{err: err}
		}

		date, err := expense.ParseDate(d.TargetDate)
		if err != nil {
			return goalSavedMsg{err: err}
		}

		ctx, cancel := DbCtx()
		defer cancel()

		g, err := m.svc.Create(ctx, goal.CreateParams{
			Name:          d.Name,
			TargetAmount:  target,
			CurrentAmount: current,
			TargetDate:    date,
			Priority:      d.Priority,
			Notes:         d.Notes,
		})
		if err != nil {
			return goalSavedMsg{err: err}
		}

		return goalSavedMsg{status: "Created goal " + g.Name}
	}
}

func (m GoalsModel) updateCmd(id uuid.UUID, d goalDraft) tea.Cmd {
	return func() tea.Msg {
		current, err := parseAmount(d.Current)
		if err != nil {
			return goalSavedMsg{err: err}
		}

		ctx, cancel := DbCtx()
		defer cancel()

		g, err := m.svc.Update(ctx, id, goal.UpdateParams{
			CurrentAmount: &current,
			ProgressNote:  d.Notes,
		})
		if err != nil {
			return goalSavedMsg{err: err}
		}

		return goalSavedMsg{status: fmt.Sprintf("%s: %s saved", g.Name, FormatMoney(g.CurrentAmount))}
	}
}

func (m GoalsModel) deleteCmd() tea.Cmd {
	if m.cursor >= len(m.goals) {
		return nil
	}

	g := m.goals[m.cursor]

	return func() tea.Msg {
		ctx, cancel := DbCtx()
		defer cancel()

		if err := m.svc.Delete(ctx, g.ID); err != nil {
			return goalSavedMsg{err: err}
		}

		return goalSavedMsg{status: "Deleted goal " + g.Name}
	}
}

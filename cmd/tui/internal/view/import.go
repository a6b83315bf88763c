package view

import (
	"context"
	"fmt"
	"os"
	"slices"
	"strings"
	"time"

	"github.com/charmbracelet/bubbles/filepicker"
	tea "github.com/charmbracelet/bubbletea"
	"github.com/charmbracelet/huh"
	"github.com/charmbracelet/lipgloss"

	"github.com/MrJamesThe3rd/finsight/internal/analytics"
	"github.com/MrJamesThe3rd/finsight/internal/expense"
	"github.com/MrJamesThe3rd/finsight/internal/importer"
)

const importTimeout = 2 * time.Minute

type importStep int

const (
	importStepPick importStep = iota
	importStepRunning
	importStepReview
	importStepDone
)

// reviewDraft holds the conflicts the user chose to import anyway.
type reviewDraft struct {
	Keep []int
}

// ImportModel reads a CSV file into the expense store. Rows that repeat a
// stored expense are held back until the user picks which ones to keep.
type ImportModel struct {
	imports *importer.Service

	step   importStep
	picker filepicker.Model

	pending *importer.Result
	review  *huh.Form
	draft   *reviewDraft

	imported []expense.Expense
	status   string
	err      error
}

func NewImportModel(imports *importer.Service) ImportModel {
	fp := filepicker.New()
	fp.CurrentDirectory, _ = os.Getwd()
	fp.AllowedTypes = []string{".csv", ".txt"}
	fp.DirAllowed = false
	fp.FileAllowed = true
	fp.SetHeight(15)

	return ImportModel{imports: imports, picker: fp}
}

func (m ImportModel) Title() string { return "Import Expenses" }

func (m ImportModel) ShortHelp() string {
	if m.step == importStepReview {
		return "x: toggle | Enter: import | Esc: discard"
	}

	return "Enter: select | Esc: back"
}

func (m ImportModel) Init() tea.Cmd {
	return m.picker.Init()
}

type importDoneMsg struct {
	result *importer.Result
	err    error
}

type batchDoneMsg struct {
	created []expense.Expense
	err     error
}

func (m ImportModel) Update(msg tea.Msg) (tea.Model, tea.Cmd) {
	switch msg := msg.(type) {
	case tea.KeyMsg:
		if msg.Type == tea.KeyEsc {
			return m.leave()
		}

	case importDoneMsg:
		if msg.err != nil || len(msg.result.Conflicts) == 0 {
			return m.finish(resultExpenses(msg.result), msg.err), nil
		}

		m.step = importStepReview
		m.pending = msg.result
		m.draft = &reviewDraft{}
		m.review = m.reviewForm()

		return m, m.review.Init()

	case batchDoneMsg:
		return m.finish(msg.created, msg.err), nil
	}

	switch m.step {
	case importStepPick:
		return m.updatePick(msg)
	case importStepReview:
		return m.updateReview(msg)
	}

	return m, nil
}

func resultExpenses(r *importer.Result) []expense.Expense {
	if r == nil {
		return nil
	}

	return r.Imported
}

func (m ImportModel) finish(created []expense.Expense, err error) ImportModel {
	m.step = importStepDone
	m.imported = created
	m.err = err
	m.pending = nil
	m.review = nil

	switch {
	case err != nil && len(created) > 0:
		m.status = fmt.Sprintf("Stopped after %d expenses: %v", len(created), err)
	case err != nil:
		m.status = fmt.Sprintf("Error: %v", err)
	default:
		m.status = fmt.Sprintf("Imported %d expenses.", len(created))
	}

	return m
}

func (m ImportModel) leave() (tea.Model, tea.Cmd) {
	if m.step == importStepPick {
		return m, Back
	}

	m.step = importStepPick
	m.pending = nil
	m.review = nil
	m.imported = nil
	m.err = nil
	m.status = ""

	return m, m.picker.Init()
}

func (m ImportModel) updatePick(msg tea.Msg) (tea.Model, tea.Cmd) {
	var cmd tea.Cmd
	m.picker, cmd = m.picker.Update(msg)

	if ok, path := m.picker.DidSelectFile(msg); ok {
		m.step = importStepRunning
		m.status = "Reading " + path + "..."

		return m, m.importCmd(path)
	}

	return m, cmd
}

func (m ImportModel) updateReview(msg tea.Msg) (tea.Model, tea.Cmd) {
	form, cmd := m.review.Update(msg)
	if f, ok := form.(*huh.Form); ok {
		m.review = f
	}

	if m.review.State != huh.StateCompleted {
		return m, cmd
	}

	m.step = importStepRunning
	m.status = "Saving..."

	return m, m.batchCmd(m.rowsToSave())
}

func (m ImportModel) reviewForm() *huh.Form {
	options := make([]huh.Option[int], len(m.pending.Conflicts))

	for i, c := range m.pending.Conflicts {
		label := fmt.Sprintf("%s  %10s  %s  (stored as %s)",
			FormatDate(c.Incoming.Date),
			FormatMoney(c.Incoming.Amount),
			c.Incoming.Description,
			c.Existing.Category,
		)
		options[i] = huh.NewOption(label, i)
	}

	description := fmt.Sprintf("%d new rows will be imported. Tick the duplicates to import as well.", len(m.pending.New))

	return huh.NewForm(
		huh.NewGroup(
			huh.NewMultiSelect[int]().
				Title("Possible duplicates").
				Description(description).
				Options(options...).
				Value(&m.draft.Keep),
		),
	).WithShowHelp(false)
}

func (m ImportModel) rowsToSave() []expense.CreateParams {
	rows := slices.Clone(m.pending.New)

	for _, i := range m.draft.Keep {
		rows = append(rows, m.pending.Conflicts[i].Incoming)
	}

	return rows
}

func (m ImportModel) importCmd(path string) tea.Cmd {
	return func() tea.Msg {
		f, err := os.Open(path)
		if err != nil {
			return importDoneMsg{err: err}
		}
		defer f.Close()

		ctx, cancel := context.WithTimeout(context.Background(), importTimeout)
		defer cancel()

		result, err := m.imports.Import(ctx, f)

		return importDoneMsg{result: result, err: err}
	}
}

func (m ImportModel) batchCmd(rows []expense.CreateParams) tea.Cmd {
	return func() tea.Msg {
		ctx, cancel := context.WithTimeout(context.Background(), importTimeout)
		defer cancel()

		created, err := m.imports.CreateBatch(ctx, rows)

		return batchDoneMsg{created: created, err: err}
	}
}

func (m ImportModel) View() string {
	pad := lipgloss.NewStyle().Padding(1)

	switch m.step {
	case importStepPick:
		return pad.Render("Choose a CSV file (Finsight and CGD layouts are recognised):\n\n" + m.picker.View())
	case importStepRunning:
		return pad.Render(m.status)
	case importStepReview:
		return pad.Render(m.review.View())
	}

	style := successStyle
	if m.err != nil {
		style = errorStyle
	}

	return pad.Render(style.Render(m.status) + "\n\n" + breakdown(m.imported) + faintStyle.Render("(Esc to import another file)"))
}

// breakdown lists the imported total per category.
func breakdown(expenses []expense.Expense) string {
	if len(expenses) == 0 {
		return ""
	}

	totals := analytics.TotalsByCategory(expenses)

	categories := make([]string, 0, len(totals))
	for c := range totals {
		categories = append(categories, c)
	}

	slices.Sort(categories)

	var b strings.Builder

	b.WriteString(headerStyle.Render("By category") + "\n")

	for _, c := range categories {
		fmt.Fprintf(&b, "  %-16s %12s\n", c, FormatMoney(totals[c]))
	}

	fmt.Fprintf(&b, "  %-16s %12s\n\n", "Total", FormatMoney(analytics.Sum(expenses)))

	return b.String()
}

package view

import (
	"context"
	"fmt"
	"os"
	"path/filepath"
	"time"

	"github.com/charmbracelet/bubbles/spinner"
	tea "github.com/charmbracelet/bubbletea"
	"github.com/charmbracelet/huh"
	"github.com/charmbracelet/lipgloss"

	"github.com/MrJamesThe3rd/finsight/internal/analytics"
	"github.com/MrJamesThe3rd/finsight/internal/backup"
	"github.com/MrJamesThe3rd/finsight/internal/report"
)

const backupTimeout = 2 * time.Minute

type backupAction string

const (
	actionExportJSON backupAction = "export-json"
	actionExportXLSX backupAction = "export-xlsx"
	actionImportJSON backupAction = "import-json"
	actionDigest     backupAction = "digest"
)

type backupState int

const (
	backupStateForm backupState = iota
	backupStateTimeframe
	backupStateWorking
	backupStateResult
)

type BackupModel struct {
	backupService *backup.Service
	reportService *report.Service

	state           backupState
	form            *huh.Form
	draft           *backupDraft
	timeframePicker TimeframePicker
	spinner         spinner.Model

	summary string
	err     error
}

type backupDraft struct {
	Action backupAction
	Path   string
}

func NewBackupModel(backupSvc *backup.Service, reportSvc *report.Service) BackupModel {
	s := spinner.New()
	s.Spinner = spinner.Dot
	s.Style = lipgloss.NewStyle().Foreground(lipgloss.Color("205"))

	m := BackupModel{
		backupService:   backupSvc,
		reportService:   reportSvc,
		timeframePicker: NewTimeframePicker(TimeframeThisMonth),
		spinner:         s,
	}
	m.draft = &backupDraft{Action: actionExportJSON, Path: "./exports"}
	m.form = m.buildForm()

	return m
}

func (m BackupModel) Title() string { return "Backup & Reports" }

func (m BackupModel) ShortHelp() string {
	switch m.state {
	case backupStateResult:
		return "Esc: back to menu"
	case backupStateWorking:
		return "Working..."
	}

	return "Esc: back | Enter: confirm"
}

func (m BackupModel) Init() tea.Cmd {
	return m.form.Init()
}

func (m BackupModel) Update(msg tea.Msg) (tea.Model, tea.Cmd) {
	if tfMsg, ok := msg.(TimeframeSelectedMsg); ok {
		m.state = backupStateWorking
		return m, tea.Batch(m.spinner.Tick, m.digestCmd(analytics.Filter{StartDate: tfMsg.Start, EndDate: tfMsg.End}))
	}

	switch m.state {
	case backupStateForm:
		return m.updateForm(msg)
	case backupStateTimeframe:
		return m.updateTimeframe(msg)
	case backupStateWorking:
		return m.updateWorking(msg)
	case backupStateResult:
		if keyMsg, ok := msg.(tea.KeyMsg); ok && keyMsg.Type == tea.KeyEsc {
			return m, Back
		}
	}

	return m, nil
}

func (m BackupModel) updateForm(msg tea.Msg) (tea.Model, tea.Cmd) {
	if keyMsg, ok := msg.(tea.KeyMsg); ok && keyMsg.Type == tea.KeyEsc {
		return m, Back
	}

	form, cmd := m.form.Update(msg)
	if f, ok := form.(*huh.Form); ok {
		m.form = f
	}

	if m.form.State != huh.StateCompleted {
		return m, cmd
	}

	if m.draft.Action == actionDigest {
		m.state = backupStateTimeframe
		m.timeframePicker.Reset()

		return m, m.timeframePicker.Init()
	}

	m.state = backupStateWorking
	m.err = nil

	return m, tea.Batch(m.spinner.Tick, m.runCmd(*m.draft))
}

func (m BackupModel) updateTimeframe(msg tea.Msg) (tea.Model, tea.Cmd) {
	if keyMsg, ok := msg.(tea.KeyMsg); ok && keyMsg.Type == tea.KeyEsc {
		return m, Back
	}

	var cmd tea.Cmd
	m.timeframePicker, cmd = m.timeframePicker.Update(msg)

	return m, cmd
}

func (m BackupModel) updateWorking(msg tea.Msg) (tea.Model, tea.Cmd) {
	if result, ok := msg.(backupResultMsg); ok {
		m.state = backupStateResult
		m.err = result.err
		m.summary = result.body

		return m, nil
	}

	var cmd tea.Cmd
	m.spinner, cmd = m.spinner.Update(msg)

	return m, cmd
}

func (m BackupModel) buildForm() *huh.Form {
	return huh.NewForm(
		huh.NewGroup(
			huh.NewSelect[backupAction]().
				Key("action").
				Title("What do you want to do?").
				Options(
					huh.NewOption("Export all data (JSON)", actionExportJSON),
					huh.NewOption("Export spreadsheet report (XLSX)", actionExportXLSX),
					huh.NewOption("Import all data (JSON, replaces everything)", actionImportJSON),
					huh.NewOption("Expense digest", actionDigest),
				).
				Value(&m.draft.Action),
		),
		huh.NewGroup(
			huh.NewInput().
				Key("path").
				Title("Path").
				Description("Export directory, or the JSON file to import").
				Value(&m.draft.Path),
		).WithHideFunc(func() bool { return m.draft.Action == actionDigest }),
	).WithWidth(60).WithShowHelp(false)
}

func (m BackupModel) View() string {
	switch m.state {
	case backupStateForm:
		return lipgloss.NewStyle().Padding(1).Render(m.form.View())

	case backupStateTimeframe:
		return lipgloss.NewStyle().Padding(1).Render(m.timeframePicker.View())

	case backupStateWorking:
		return lipgloss.NewStyle().Padding(1).Render(m.spinner.View() + " Working...")

	case backupStateResult:
		if m.err != nil {
			return lipgloss.NewStyle().Padding(1).Render(errorStyle.Render(fmt.Sprintf("Error: %v", m.err)))
		}

		return lipgloss.NewStyle().Padding(1).Render(
			lipgloss.JoinVertical(lipgloss.Left, successStyle.Bold(true).Render("Done!"), "", m.summary),
		)
	}

	return ""
}

type backupResultMsg struct {
	body string
	err  error
}

func (m BackupModel) runCmd(d backupDraft) tea.Cmd {
	return func() tea.Msg {
		ctx, cancel := context.WithTimeout(context.Background(), backupTimeout)
		defer cancel()

		var (
			body string
			err  error
		)

		switch d.Action {
		case actionExportJSON:
			body, err = m.exportJSON(ctx, d.Path)
		case actionExportXLSX:
			body, err = m.exportXLSX(ctx, d.Path)
		case actionImportJSON:
			body, err = m.importJSON(ctx, d.Path)
		}

		return backupResultMsg{body: body, err: err}
	}
}

func (m BackupModel) exportJSON(ctx context.Context, dir string) (string, error) {
	doc, err := m.backupService.Export(ctx)
	if err != nil {
		return "", err
	}

	path, err := createExport(dir, "json", func(f *os.File) error { return doc.Encode(f) })
	if err != nil {
		return "", err
	}

	return fmt.Sprintf("Wrote %d expenses, %d budgets, %d goals to %s", len(doc.Expenses), len(doc.Budgets), len(doc.Goals), path), nil
}

func (m BackupModel) exportXLSX(ctx context.Context, dir string) (string, error) {
	path, err := createExport(dir, "xlsx", func(f *os.File) error { return m.reportService.WriteWorkbook(ctx, f) })
	if err != nil {
		return "", err
	}

	return "Wrote report to " + path, nil
}

func (m BackupModel) importJSON(ctx context.Context, path string) (string, error) {
	f, err := os.Open(path)
	if err != nil {
		return "", err
	}
	defer f.Close()

	summary, err := m.backupService.Import(ctx, f)
	if err != nil {
		return "", err
	}

	return fmt.Sprintf("Restored %d expenses, %d budgets, %d goals and %d insights",
		summary.Expenses, summary.Budgets, summary.Goals, summary.Insights), nil
}

func (m BackupModel) digestCmd(filter analytics.Filter) tea.Cmd {
	return func() tea.Msg {
		ctx, cancel := DbCtx()
		defer cancel()

		body, err := m.reportService.Digest(ctx, filter)

		return backupResultMsg{body: body, err: err}
	}
}

// createExport writes a dated file into dir, creating dir when missing.
func createExport(dir, ext string, write func(*os.File) error) (string, error) {
	if err := os.MkdirAll(dir, 0o755); err != nil {
		return "", fmt.Errorf("creating export directory: %w", err)
	}

	path := filepath.Join(dir, fmt.Sprintf("finsight-%s.%s", time.Now().Format("20060102-150405"), ext))

	f, err := os.Create(path)
	if err != nil {
		return "", fmt.Errorf("creating export file: %w", err)
	}
	defer f.Close()

	if err := write(f); err != nil {
		return "", err
	}

	return path, f.Close()
}

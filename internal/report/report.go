// Package report renders spreadsheet and plain-text views of all records.
package report

import (
	"fmt"
	"io"
	"sort"
	"strings"
	"time"

	"github.com/xuri/excelize/v2"

	"github.com/MrJamesThe3rd/finsight/internal/analytics"
	"github.com/MrJamesThe3rd/finsight/internal/backup"
	"github.com/MrJamesThe3rd/finsight/internal/expense"
	"github.com/MrJamesThe3rd/finsight/internal/goal"
)

const (
	SheetSummary  = "Summary"
	SheetExpenses = "Expenses"
	SheetBudgets  = "Budgets"
	SheetGoals    = "Goals"
	SheetInsights = "Insights"
)

type sheet struct {
	name   string
	header []any
	widths []float64
	rows   [][]any
}

// Workbook lays out snap as one sheet per collection plus a summary sheet
// evaluated at ref.
func Workbook(snap *backup.Snapshot, ref time.Time) (*excelize.File, error) {
	sheets := []sheet{
		summarySheet(snap, ref),
		expenseSheet(snap.Expenses),
		budgetSheet(snap, ref),
		goalSheet(snap.Goals, ref),
		insightSheet(snap.Insights),
	}

	f := excelize.NewFile()

	for i, s := range sheets {
		if i == 0 {
			if err := f.SetSheetName(f.GetSheetName(0), s.name); err != nil {
				return nil, fmt.Errorf("renaming sheet: %w", err)
			}
		} else if _, err := f.NewSheet(s.name); err != nil {
			return nil, fmt.Errorf("creating sheet %s: %w", s.name, err)
		}

		if err := writeSheet(f, s); err != nil {
			return nil, fmt.Errorf("writing sheet %s: %w", s.name, err)
		}
	}

	f.SetActiveSheet(0)

	return f, nil
}

// WriteWorkbook renders snap and writes the XLSX bytes to w.
func WriteWorkbook(w io.Writer, snap *backup.Snapshot, ref time.Time) error {
	f, err := Workbook(snap, ref)
	if err != nil {
		return err
	}
	defer f.Close()

	if err := f.Write(w); err != nil {
		return fmt.Errorf("writing workbook: %w", err)
	}

	return nil
}

func writeSheet(f *excelize.File, s sheet) error {
	style, err := f.NewStyle(&excelize.Style{Font: &excelize.Font{Bold: true}})
	if err != nil {
		return err
	}

	if err := f.SetSheetRow(s.name, "A1", &s.header); err != nil {
		return err
	}

	last, err := excelize.CoordinatesToCellName(len(s.header), 1)
	if err != nil {
		return err
	}

	if err := f.SetCellStyle(s.name, "A1", last, style); err != nil {
		return err
	}

	for i, row := range s.rows {
		cell, err := excelize.CoordinatesToCellName(1, i+2)
		if err != nil {
			return err
		}

		if err := f.SetSheetRow(s.name, cell, &row); err != nil {
			return err
		}
	}

	for i, width := range s.widths {
		col, err := excelize.ColumnNumberToName(i + 1)
		if err != nil {
			return err
		}

		if err := f.SetColWidth(s.name, col, col, width); err != nil {
			return err
		}
	}

	return nil
}

func summarySheet(snap *backup.Snapshot, ref time.Time) sheet {
	score := analytics.HealthScore(snap.Expenses, snap.Budgets, ref)
	budgets := analytics.SummarizeBudgets(analytics.BudgetProgress(snap.Expenses, snap.Budgets, ref))
	goals := goal.Summarize(snap.Goals)

	return sheet{
		name:   SheetSummary,
		header: []any{"Metric", "Value"},
		widths: []float64{28, 18},
		rows: [][]any{
			{"Report date", ref.Format(time.DateOnly)},
			{"Expenses recorded", len(snap.Expenses)},
			{"Total spent", analytics.Sum(snap.Expenses).InexactFloat64()},
			{"Spent this month", analytics.Sum(analytics.CurrentMonthExpenses(snap.Expenses, ref)).InexactFloat64()},
			{"Total monthly budget", budgets.TotalBudget.InexactFloat64()},
			{"Over budget categories", strings.Join(budgets.OverBudget, ", ")},
			{"Active goals", goals.ActiveGoals},
			{"Goal progress %", goals.OverallProgress.Round(1).InexactFloat64()},
			{"Financial health score", score},
			{"Rating", analytics.Rating(score)},
		},
	}
}

func expenseSheet(expenses []expense.Expense) sheet {
	s := sheet{
		name:   SheetExpenses,
		header: []any{"Date", "Description", "Category", "Amount"},
		widths: []float64{12, 36, 18, 12},
		rows:   make([][]any, 0, len(expenses)),
	}

	for _, e := range expenses {
		s.rows = append(s.rows, []any{e.Date.Format(time.DateOnly), e.Description, e.Category, e.Amount.InexactFloat64()})
	}

	return s
}

func budgetSheet(snap *backup.Snapshot, ref time.Time) sheet {
	progress := analytics.BudgetProgress(snap.Expenses, snap.Budgets, ref)

	s := sheet{
		name:   SheetBudgets,
		header: []any{"Category", "Budget", "Spent", "Remaining", "Used %", "Status"},
		widths: []float64{18, 12, 12, 12, 10, 14},
	}

	for _, category := range snap.Budgets.Categories() {
		limit := snap.Budgets[category]

		p, ok := progress[category]
		if !ok {
			p = analytics.Progress{Budget: limit, Remaining: limit}
		}

		s.rows = append(s.rows, []any{
			category,
			limit.InexactFloat64(),
			p.Spent.InexactFloat64(),
			p.Remaining.InexactFloat64(),
			p.PercentageUsed.Round(1).InexactFloat64(),
			p.Status(),
		})
	}

	return s
}

func goalSheet(goals []goal.Goal, ref time.Time) sheet {
	s := sheet{
		name:   SheetGoals,
		header: []any{"Goal", "Priority", "Target", "Current", "Target date", "Progress %", "Monthly need", "On track"},
		widths: []float64{24, 10, 12, 12, 12, 11, 13, 9},
	}

	for _, g := range goals {
		o := g.Outlook(ref)

		s.rows = append(s.rows, []any{
			g.Name,
			string(g.Priority),
			g.TargetAmount.InexactFloat64(),
			g.CurrentAmount.InexactFloat64(),
			g.TargetDate.Format(time.DateOnly),
			o.ProgressPercent.Round(1).InexactFloat64(),
			o.MonthlySavingsNeeded.InexactFloat64(),
			o.OnTrack,
		})
	}

	return s
}

func insightSheet(insights []string) sheet {
	s := sheet{
		name:   SheetInsights,
		header: []any{"Insight"},
		widths: []float64{100},
	}

	for _, text := range insights {
		s.rows = append(s.rows, []any{text})
	}

	return s
}

// Digest lists expenses one per line, newest first, followed by the total.
// It is meant for pasting into a message.
func Digest(expenses []expense.Expense) string {
	sorted := append([]expense.Expense(nil), expenses...)
	sort.SliceStable(sorted, func(i, j int) bool { return sorted[i].Date.After(sorted[j].Date) })

	var sb strings.Builder

	for _, e := range sorted {
		fmt.Fprintf(&sb, "* %s | %s | %s | %s\n", e.Date.Format(time.DateOnly), e.Description, e.Category, backup.Money(e.Amount))
	}

	fmt.Fprintf(&sb, "Total: %s\n", backup.Money(analytics.Sum(expenses)))

	return sb.String()
}

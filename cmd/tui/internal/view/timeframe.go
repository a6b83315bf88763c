package view

import (
	"fmt"
	"time"

	tea "github.com/charmbracelet/bubbletea"
	"github.com/charmbracelet/huh"

	"github.com/MrJamesThe3rd/finsight/internal/analytics"
	"github.com/MrJamesThe3rd/finsight/internal/expense"
)

// Timeframe is a predefined or custom date range.
type Timeframe int

const (
	TimeframeThisWeek Timeframe = iota
	TimeframeLastWeek
	TimeframeThisMonth
	TimeframeLastMonth
	TimeframeAll
	TimeframeCustom
)

var timeframeLabels = map[Timeframe]string{
	TimeframeThisWeek:  "This Week",
	TimeframeLastWeek:  "Last Week",
	TimeframeThisMonth: "This Month",
	TimeframeLastMonth: "Last Month",
	TimeframeAll:       "All Time",
	TimeframeCustom:    "Custom Range",
}

func (t Timeframe) String() string {
	if label, ok := timeframeLabels[t]; ok {
		return label
	}

	return "Unknown"
}

// dateRange returns the calendar days covered by t, both inclusive. Weeks
// start on Monday.
func (t Timeframe) dateRange(today time.Time) (time.Time, time.Time) {
	today = expense.Day(today)

	switch t {
	case TimeframeThisWeek:
		return analytics.Week.PeriodStart(today), today
	case TimeframeLastWeek:
		start := analytics.Week.PeriodStart(today).AddDate(0, 0, -7)
		return start, start.AddDate(0, 0, 6)
	case TimeframeThisMonth:
		first, _ := analytics.MonthBounds(today)
		return first, today
	case TimeframeLastMonth:
		first, _ := analytics.MonthBounds(today)
		return analytics.MonthBounds(first.AddDate(0, -1, 0))
	}

	return time.Time{}, time.Time{}
}

// TimeframeSelectedMsg is emitted once a range is chosen. Start and End are
// nil for All Time.
type TimeframeSelectedMsg struct {
	Label string
	Start *time.Time
	End   *time.Time
}

type timeframeDraft struct {
	Choice Timeframe
	Start  string
	End    string
}

// TimeframePicker asks for a date range, offering every timeframe from
// minFrame on.
type TimeframePicker struct {
	minFrame Timeframe
	draft    *timeframeDraft
	form     *huh.Form
}

func NewTimeframePicker(minFrame Timeframe) TimeframePicker {
	p := TimeframePicker{minFrame: minFrame}
	p.Reset()

	return p
}

func (p *TimeframePicker) Reset() {
	p.draft = &timeframeDraft{Choice: p.minFrame}

	options := make([]huh.Option[Timeframe], 0, TimeframeCustom-p.minFrame+1)
	for t := p.minFrame; t <= TimeframeCustom; t++ {
		options = append(options, huh.NewOption(t.String(), t))
	}

	draft := p.draft
	custom := func() bool { return draft.Choice != TimeframeCustom }

	p.form = huh.NewForm(
		huh.NewGroup(
			huh.NewSelect[Timeframe]().
				Title("Timeframe").
				Options(options...).
				Value(&draft.Choice),
		),
		huh.NewGroup(
			huh.NewInput().
				Title("Start date").
				Placeholder("YYYY-MM-DD").
				CharLimit(10).
				Value(&draft.Start).
				Validate(validDate),
			huh.NewInput().
				Title("End date").
				Placeholder("YYYY-MM-DD").
				CharLimit(10).
				Value(&draft.End).
				Validate(func(s string) error {
					if err := validDate(s); err != nil {
						return err
					}

					start, err := expense.ParseDate(draft.Start)
					if err != nil {
						return nil
					}

					if end, _ := expense.ParseDate(s); end.Before(start) {
						return fmt.Errorf("end date is before %s", FormatDate(start))
					}

					return nil
				}),
		).WithHideFunc(custom),
	).WithWidth(40).WithShowHelp(false)
}

func validDate(s string) error {
	_, err := expense.ParseDate(s)
	return err
}

func (p TimeframePicker) Init() tea.Cmd {
	return p.form.Init()
}

func (p TimeframePicker) Update(msg tea.Msg) (TimeframePicker, tea.Cmd) {
	form, cmd := p.form.Update(msg)
	if f, ok := form.(*huh.Form); ok {
		p.form = f
	}

	if p.form.State != huh.StateCompleted {
		return p, cmd
	}

	selected := p.selection(time.Now())

	return p, func() tea.Msg { return selected }
}

func (p TimeframePicker) selection(now time.Time) TimeframeSelectedMsg {
	d := p.draft

	switch d.Choice {
	case TimeframeAll:
		return TimeframeSelectedMsg{Label: d.Choice.String()}
	case TimeframeCustom:
		start, _ := expense.ParseDate(d.Start)
		end, _ := expense.ParseDate(d.End)

		return TimeframeSelectedMsg{Label: d.Start + " to " + d.End, Start: &start, End: &end}
	}

	start, end := d.Choice.dateRange(now)

	return TimeframeSelectedMsg{Label: d.Choice.String(), Start: &start, End: &end}
}

func (p TimeframePicker) View() string {
	return p.form.View() + "\n" + faintStyle.Render("(Enter to select, Esc to back)")
}

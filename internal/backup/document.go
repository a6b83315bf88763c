package backup

import (
	"bytes"
	"encoding/json"
	"errors"
	"fmt"
	"io"
	"strings"
	"time"

	"github.com/google/uuid"
	"github.com/shopspring/decimal"

	"github.com/MrJamesThe3rd/finsight/internal/budget"
	"github.com/MrJamesThe3rd/finsight/internal/expense"
	"github.com/MrJamesThe3rd/finsight/internal/goal"
)

var ErrMalformedDocument = errors.New("malformed backup document")

// Snapshot holds every collection of the tracker at one point in time.
type Snapshot struct {
	Expenses []expense.Expense
	Budgets  budget.Budgets
	Goals    []goal.Goal
	Insights []string
}

// Document is the JSON exchange format of a Snapshot. Money is written as
// decimal strings and dates as YYYY-MM-DD.
type Document struct {
	Expenses []ExpenseRecord `json:"expenses"`
	Budgets  map[string]Text `json:"budgets"`
	Goals    []GoalRecord    `json:"goals"`
	Insights []string        `json:"insights"`
}

// Text is a string that also accepts JSON numbers and null on input, so
// documents with numeric ids or amounts still load.
type Text string

func (t *Text) UnmarshalJSON(b []byte) error {
	if string(b) == "null" {
		*t = ""
		return nil
	}

	if len(b) > 0 && b[0] == '"' {
		var s string
		if err := json.Unmarshal(b, &s); err != nil {
			return err
		}

		*t = Text(s)

		return nil
	}

	var n json.Number
	if err := json.Unmarshal(b, &n); err != nil {
		return fmt.Errorf("expected string or number, got %s", b)
	}

	*t = Text(n.String())

	return nil
}

type ExpenseRecord struct {
	ID          Text   `json:"id"`
	Description string `json:"description"`
	Amount      Text   `json:"amount"`
	Date        string `json:"date"`
	Category    string `json:"category"`
}

type GoalRecord struct {
	ID              Text             `json:"id"`
	Name            string           `json:"name"`
	TargetAmount    Text             `json:"target_amount"`
	CurrentAmount   Text             `json:"current_amount"`
	TargetDate      string           `json:"target_date"`
	Priority        string           `json:"priority"`
	Notes           string           `json:"notes"`
	CreatedDate     string           `json:"created_date"`
	ProgressUpdates []ProgressRecord `json:"progress_updates"`
}

type ProgressRecord struct {
	Date   string `json:"date"`
	Amount Text   `json:"amount"`
	Notes  string `json:"notes"`
}

// Money formats an amount with at least two decimals.
func Money(d decimal.Decimal) string {
	if d.Exponent() >= -2 {
		return d.StringFixed(2)
	}

	return d.String()
}

func NewDocument(s *Snapshot) *Document {
	doc := &Document{
		Expenses: make([]ExpenseRecord, len(s.Expenses)),
		Budgets:  make(map[string]Text, len(s.Budgets)),
		Goals:    make([]GoalRecord, len(s.Goals)),
		Insights: s.Insights,
	}

	if doc.Insights == nil {
		doc.Insights = []string{}
	}

	for i, e := range s.Expenses {
		doc.Expenses[i] = ExpenseRecord{
			ID:          Text(e.ID.String()),
			Description: e.Description,
			Amount:      Text(Money(e.Amount)),
			Date:        e.Date.Format(time.DateOnly),
			Category:    e.Category,
		}
	}

	for category, amount := range s.Budgets {
		doc.Budgets[category] = Text(Money(amount))
	}

	for i, g := range s.Goals {
		rec := GoalRecord{
			ID:              Text(g.ID.String()),
			Name:            g.Name,
			TargetAmount:    Text(Money(g.TargetAmount)),
			CurrentAmount:   Text(Money(g.CurrentAmount)),
			TargetDate:      g.TargetDate.Format(time.DateOnly),
			Priority:        string(g.Priority),
			Notes:           g.Notes,
			CreatedDate:     g.CreatedDate.Format(time.DateOnly),
			ProgressUpdates: make([]ProgressRecord, len(g.ProgressUpdates)),
		}

		for j, u := range g.ProgressUpdates {
			rec.ProgressUpdates[j] = ProgressRecord{
				Date:   u.Date.Format(time.DateOnly),
				Amount: Text(Money(u.Amount)),
				Notes:  u.Notes,
			}
		}

		doc.Goals[i] = rec
	}

	return doc
}

func (d *Document) Encode(w io.Writer) error {
	enc := json.NewEncoder(w)
	enc.SetIndent("", "  ")

	return enc.Encode(d)
}

// Decode reads and validates a document. The input must be exactly one JSON
// object; missing collections decode as empty ones. Any problem with the
// content is reported as ErrMalformedDocument and nothing is returned, so
// callers never act on a partial snapshot. Read failures are returned as is.
func Decode(r io.Reader, today time.Time) (*Snapshot, error) {
	data, err := io.ReadAll(r)
	if err != nil {
		return nil, fmt.Errorf("reading document: %w", err)
	}

	data = bytes.TrimSpace(data)
	if len(data) == 0 || data[0] != '{' {
		return nil, fmt.Errorf("%w: top level must be an object", ErrMalformedDocument)
	}

	dec := json.NewDecoder(bytes.NewReader(data))

	var doc Document
	if err := dec.Decode(&doc); err != nil {
		return nil, fmt.Errorf("%w: %w", ErrMalformedDocument, err)
	}

	if _, err := dec.Token(); !errors.Is(err, io.EOF) {
		return nil, fmt.Errorf("%w: unexpected data after document", ErrMalformedDocument)
	}

	snap, err := doc.Snapshot(today)
	if err != nil {
		return nil, fmt.Errorf("%w: %w", ErrMalformedDocument, err)
	}

	return snap, nil
}

// Snapshot validates the document and converts it. Goals without a created
// date are stamped with today.
func (d *Document) Snapshot(today time.Time) (*Snapshot, error) {
	snap := &Snapshot{
		Expenses: make([]expense.Expense, 0, len(d.Expenses)),
		Budgets:  make(budget.Budgets, len(d.Budgets)),
		Goals:    make([]goal.Goal, 0, len(d.Goals)),
		Insights: make([]string, 0, len(d.Insights)),
	}

	seen := make(map[uuid.UUID]bool)

	for i, rec := range d.Expenses {
		e, err := rec.expense()
		if err != nil {
			return nil, fmt.Errorf("expenses[%d]: %w", i, err)
		}

		if seen[e.ID] {
			return nil, fmt.Errorf("expenses[%d]: duplicate id %s", i, e.ID)
		}

		seen[e.ID] = true
		snap.Expenses = append(snap.Expenses, e)
	}

	for category, raw := range d.Budgets {
		if strings.TrimSpace(category) == "" {
			return nil, fmt.Errorf("budgets: %w", budget.ErrEmptyCategory)
		}

		amount, err := parseAmount(raw)
		if err != nil {
			return nil, fmt.Errorf("budgets[%q]: %w", category, err)
		}

		snap.Budgets[category] = amount
	}

	seen = make(map[uuid.UUID]bool)

	for i, rec := range d.Goals {
		g, err := rec.goal(today)
		if err != nil {
			return nil, fmt.Errorf("goals[%d]: %w", i, err)
		}

		if seen[g.ID] {
			return nil, fmt.Errorf("goals[%d]: duplicate id %s", i, g.ID)
		}

		seen[g.ID] = true
		snap.Goals = append(snap.Goals, g)
	}

	snap.Insights = append(snap.Insights, d.Insights...)

	return snap, nil
}

func (rec ExpenseRecord) expense() (expense.Expense, error) {
	id := parseID(rec.ID)

	amount, err := parseAmount(rec.Amount)
	if err != nil {
		return expense.Expense{}, err
	}

	date, err := expense.ParseDate(rec.Date)
	if err != nil {
		return expense.Expense{}, err
	}

	category := strings.TrimSpace(rec.Category)
	if category == "" {
		return expense.Expense{}, expense.ErrEmptyCategory
	}

	return expense.Expense{
		ID:          id,
		Description: rec.Description,
		Amount:      amount,
		Date:        date,
		Category:    category,
	}, nil
}

func (rec GoalRecord) goal(today time.Time) (goal.Goal, error) {
	id := parseID(rec.ID)

	target, err := parseAmount(rec.TargetAmount)
	if err != nil {
		return goal.Goal{}, fmt.Errorf("target_amount: %w", err)
	}

	current, err := parseAmount(rec.CurrentAmount)
	if err != nil {
		return goal.Goal{}, fmt.Errorf("current_amount: %w", err)
	}

	targetDate, err := expense.ParseDate(rec.TargetDate)
	if err != nil {
		return goal.Goal{}, fmt.Errorf("target_date: %w", err)
	}

	created := today
	if rec.CreatedDate != "" {
		if created, err = expense.ParseDate(rec.CreatedDate); err != nil {
			return goal.Goal{}, fmt.Errorf("created_date: %w", err)
		}
	}

	priority, err := goal.ParsePriority(rec.Priority)
	if err != nil {
		return goal.Goal{}, err
	}

	params := goal.CreateParams{
		Name:          rec.Name,
		TargetAmount:  target,
		CurrentAmount: current,
		TargetDate:    targetDate,
		Priority:      priority,
	}
	if err := params.Validate(); err != nil {
		return goal.Goal{}, err
	}

	g := goal.Goal{
		ID:              id,
		Name:            strings.TrimSpace(rec.Name),
		TargetAmount:    target,
		CurrentAmount:   current,
		TargetDate:      targetDate,
		Priority:        priority,
		Notes:           rec.Notes,
		CreatedDate:     created,
		ProgressUpdates: make([]goal.ProgressUpdate, 0, len(rec.ProgressUpdates)),
	}

	for j, u := range rec.ProgressUpdates {
		date, err := expense.ParseDate(u.Date)
		if err != nil {
			return goal.Goal{}, fmt.Errorf("progress_updates[%d]: %w", j, err)
		}

		amount, err := parseAmount(u.Amount)
		if err != nil {
			return goal.Goal{}, fmt.Errorf("progress_updates[%d]: %w", j, err)
		}

		g.ProgressUpdates = append(g.ProgressUpdates, goal.ProgressUpdate{Date: date, Amount: amount, Notes: u.Notes})
	}

	return g, nil
}

// parseID keeps UUIDs. Anything else, including the integer ids of older
// exports, is replaced by a new id.
func parseID(s Text) uuid.UUID {
	id, err := uuid.Parse(strings.TrimSpace(string(s)))
	if err != nil {
		return uuid.New()
	}

	return id
}

func parseAmount(t Text) (decimal.Decimal, error) {
	s := string(t)

	d, err := decimal.NewFromString(strings.TrimSpace(s))
	if err != nil {
		return decimal.Decimal{}, fmt.Errorf("invalid amount %q: %w", s, err)
	}

	if d.IsNegative() {
		return decimal.Decimal{}, fmt.Errorf("%w: got %s", expense.ErrInvalidAmount, s)
	}

	return d, nil
}

package events

import (
	"context"
	"log/slog"
	"time"
)

// Type is the routing key of a domain event.
type Type string

const (
	ExpenseCreated    Type = "expense.created"
	ExpenseDeleted    Type = "expense.deleted"
	BudgetSaved       Type = "budget.saved"
	BudgetDeleted     Type = "budget.deleted"
	GoalSaved         Type = "goal.saved"
	GoalDeleted       Type = "goal.deleted"
	InsightsRefreshed Type = "insights.refreshed"
	DataRestored      Type = "data.restored"
)

type Event struct {
	Type       Type      `json:"type"`
	SubjectID  string    `json:"subject_id,omitempty"`
	OccurredAt time.Time `json:"occurred_at"`
	Payload    any       `json:"payload,omitempty"`
}

func New(t Type, subjectID string, payload any) Event {
	return Event{
		Type:       t,
		SubjectID:  subjectID,
		OccurredAt: time.Now().UTC(),
		Payload:    payload,
	}
}

type Publisher interface {
	Publish(ctx context.Context, e Event) error
}

// Nop drops every event. Used when no broker is configured.
type Nop struct{}

func (Nop) Publish(context.Context, Event) error { return nil }

// Emit publishes e and only logs failures: notifications never fail the
// operation that produced them.
func Emit(ctx context.Context, p Publisher, e Event) {
	if p == nil {
		return
	}

	if err := p.Publish(ctx, e); err != nil {
		slog.WarnContext(ctx, "failed to publish event", "type", e.Type, "subject_id", e.SubjectID, "error", err)
	}
}

package backup

import (
	"context"
	"fmt"
	"io"
	"time"

	"github.com/MrJamesThe3rd/finsight/internal/events"
	"github.com/MrJamesThe3rd/finsight/internal/expense"
)

//go:generate mockgen -source=service.go -destination=repository_mock.go -package=backup
type Repository interface {
	Snapshot(ctx context.Context) (*Snapshot, error)
	BeginRestore(ctx context.Context) (RestoreTx, error)
}

// RestoreTx replaces every collection at once. Nothing is visible to other
// readers until Commit.
type RestoreTx interface {
	Replace(ctx context.Context, s *Snapshot) error
	Commit() error
	Rollback() error
}

type Service struct {
	repo      Repository
	publisher events.Publisher
	now       func() time.Time
}

func NewService(repo Repository, publisher events.Publisher) *Service {
	if publisher == nil {
		publisher = events.Nop{}
	}

	return &Service{repo: repo, publisher: publisher, now: time.Now}
}

// WithClock returns a copy of the service that reads today's date from now.
func (s *Service) WithClock(now func() time.Time) *Service {
	c := *s
	c.now = now

	return &c
}

// Summary counts what an import wrote.
type Summary struct {
	Expenses int `json:"expenses"`
	Budgets  int `json:"budgets"`
	Goals    int `json:"goals"`
	Insights int `json:"insights"`
}

func summarize(s *Snapshot) *Summary {
	return &Summary{
		Expenses: len(s.Expenses),
		Budgets:  len(s.Budgets),
		Goals:    len(s.Goals),
		Insights: len(s.Insights),
	}
}

func (s *Service) Export(ctx context.Context) (*Document, error) {
	snap, err := s.repo.Snapshot(ctx)
	if err != nil {
		return nil, fmt.Errorf("reading snapshot: %w", err)
	}

	return NewDocument(snap), nil
}

// Import replaces all data with the contents of r. The document is parsed and
// validated in full before the store is touched, and the replacement runs in a
// single transaction: on any error the previous data is left as it was.
func (s *Service) Import(ctx context.Context, r io.Reader) (*Summary, error) {
	snap, err := Decode(r, expense.Day(s.now()))
	if err != nil {
		return nil, err
	}

	return s.Restore(ctx, snap)
}

// Restore replaces all data with snap.
func (s *Service) Restore(ctx context.Context, snap *Snapshot) (*Summary, error) {
	rtx, err := s.repo.BeginRestore(ctx)
	if err != nil {
		return nil, fmt.Errorf("beginning restore: %w", err)
	}
	defer rtx.Rollback()

	if err := rtx.Replace(ctx, snap); err != nil {
		return nil, fmt.Errorf("replacing data: %w", err)
	}

	if err := rtx.Commit(); err != nil {
		return nil, fmt.Errorf("committing restore: %w", err)
	}

	summary := summarize(snap)
	events.Emit(ctx, s.publisher, events.New(events.DataRestored, "", summary))

	return summary, nil
}

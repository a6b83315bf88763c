package report

import (
	"context"
	"fmt"
	"io"
	"time"

	"github.com/MrJamesThe3rd/finsight/internal/analytics"
	"github.com/MrJamesThe3rd/finsight/internal/backup"
	"github.com/MrJamesThe3rd/finsight/internal/expense"
)

type Source interface {
	Snapshot(ctx context.Context) (*backup.Snapshot, error)
}

type Service struct {
	source Source
	now    func() time.Time
}

func NewService(source Source) *Service {
	return &Service{source: source, now: time.Now}
}

// WithClock returns a copy of the service that uses now as the report date.
func (s *Service) WithClock(now func() time.Time) *Service {
	c := *s
	c.now = now

	return &c
}

func (s *Service) WriteWorkbook(ctx context.Context, w io.Writer) error {
	snap, err := s.source.Snapshot(ctx)
	if err != nil {
		return fmt.Errorf("reading snapshot: %w", err)
	}

	return WriteWorkbook(w, snap, expense.Day(s.now()))
}

// Digest renders the expenses matching filter as text.
func (s *Service) Digest(ctx context.Context, filter analytics.Filter) (string, error) {
	snap, err := s.source.Snapshot(ctx)
	if err != nil {
		return "", fmt.Errorf("reading snapshot: %w", err)
	}

	return Digest(analytics.FilterExpenses(snap.Expenses, filter)), nil
}

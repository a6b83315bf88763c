package goal

import (
	"context"
	"fmt"
	"strings"
	"time"

	"github.com/google/uuid"

	"github.com/MrJamesThe3rd/finsight/internal/events"
)

//go:generate mockgen -source=service.go -destination=repository_mock.go -package=goal
type Repository interface {
	CreateGoal(ctx context.Context, g *Goal) error
	GetGoal(ctx context.Context, id uuid.UUID) (*Goal, error)
	ListGoals(ctx context.Context) ([]Goal, error)
	UpdateGoal(ctx context.Context, g *Goal) error
	DeleteGoal(ctx context.Context, id uuid.UUID) error
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

func (s *Service) Today() time.Time {
	return day(s.now())
}

func (s *Service) Create(ctx context.Context, params CreateParams) (*Goal, error) {
	if err := params.Validate(); err != nil {
		return nil, err
	}

	priority, _ := ParsePriority(string(params.Priority))

	g := &Goal{
		ID:              uuid.New(),
		Name:            strings.TrimSpace(params.Name),
		TargetAmount:    params.TargetAmount,
		CurrentAmount:   params.CurrentAmount,
		TargetDate:      day(params.TargetDate),
		Priority:        priority,
		Notes:           params.Notes,
		CreatedDate:     s.Today(),
		ProgressUpdates: []ProgressUpdate{},
	}

	if err := s.repo.CreateGoal(ctx, g); err != nil {
		return nil, fmt.Errorf("creating goal: %w", err)
	}

	events.Emit(ctx, s.publisher, events.New(events.GoalSaved, g.ID.String(), nil))

	return g, nil
}

func (s *Service) Get(ctx context.Context, id uuid.UUID) (*Goal, error) {
	return s.repo.GetGoal(ctx, id)
}

func (s *Service) List(ctx context.Context) ([]Goal, error) {
	return s.repo.ListGoals(ctx)
}

// Update applies params to the goal. Changing the current amount appends one
// progress update dated today.
func (s *Service) Update(ctx context.Context, id uuid.UUID, params UpdateParams) (*Goal, error) {
	if err := params.Validate(); err != nil {
		return nil, err
	}

	g, err := s.repo.GetGoal(ctx, id)
	if err != nil {
		return nil, err
	}

	if !params.apply(g, s.Today()) {
		return g, nil
	}

	if err := s.repo.UpdateGoal(ctx, g); err != nil {
		return nil, fmt.Errorf("updating goal: %w", err)
	}

	events.Emit(ctx, s.publisher, events.New(events.GoalSaved, g.ID.String(), nil))

	return g, nil
}

func (s *Service) Delete(ctx context.Context, id uuid.UUID) error {
	if err := s.repo.DeleteGoal(ctx, id); err != nil {
		return err
	}

	events.Emit(ctx, s.publisher, events.New(events.GoalDeleted, id.String(), nil))

	return nil
}

package goal

import (
	"time"

	"github.com/google/uuid"
	"github.com/shopspring/decimal"

	"github.com/MrJamesThe3rd/finsight/internal/goal"
)

type progressResponse struct {
	Date   string          `json:"date"`
	Amount decimal.Decimal `json:"amount"`
	Notes  string          `json:"notes"`
}

type outlookResponse struct {
	ProgressPercent      decimal.Decimal `json:"progress_percent"`
	Remaining            decimal.Decimal `json:"remaining"`
	DaysRemaining        int             `json:"days_remaining"`
	MonthsRemaining      int             `json:"months_remaining"`
	MonthlySavingsNeeded decimal.Decimal `json:"monthly_savings_needed"`
	OnTrack              bool            `json:"on_track"`
	Complete             bool            `json:"complete"`
	Overdue              bool            `json:"overdue"`
}

type goalResponse struct {
	ID              uuid.UUID          `json:"id"`
	Name            string             `json:"name"`
	TargetAmount    decimal.Decimal    `json:"target_amount"`
	CurrentAmount   decimal.Decimal    `json:"current_amount"`
	TargetDate      string             `json:"target_date"`
	Priority        goal.Priority      `json:"priority"`
	Notes           string             `json:"notes"`
	CreatedDate     string             `json:"created_date"`
	ProgressUpdates []progressResponse `json:"progress_updates"`
	Outlook         outlookResponse    `json:"outlook"`
}

type listResponse struct {
	Goals   []goalResponse `json:"goals"`
	Summary goal.Summary   `json:"summary"`
}

func toResponse(g goal.Goal, today time.Time) goalResponse {
	o := g.Outlook(today)

	updates := make([]progressResponse, len(g.ProgressUpdates))
	for i, u := range g.ProgressUpdates {
		updates[i] = progressResponse{
			Date:   u.Date.Format(time.DateOnly),
			Amount: u.Amount,
			Notes:  u.Notes,
		}
	}

	return goalResponse{
		ID:              g.ID,
		Name:            g.Name,
		TargetAmount:    g.TargetAmount,
		CurrentAmount:   g.CurrentAmount,
		TargetDate:      g.TargetDate.Format(time.DateOnly),
		Priority:        g.Priority,
		Notes:           g.Notes,
		CreatedDate:     g.CreatedDate.Format(time.DateOnly),
		ProgressUpdates: updates,
		Outlook: outlookResponse{
			ProgressPercent:      o.ProgressPercent.Round(1),
			Remaining:            o.Remaining,
			DaysRemaining:        o.DaysRemaining,
			MonthsRemaining:      o.MonthsRemaining(),
			MonthlySavingsNeeded: o.MonthlySavingsNeeded,
			OnTrack:              o.OnTrack,
			Complete:             o.Complete,
			Overdue:              o.Overdue,
		},
	}
}

package expense

import (
	"time"

	"github.com/google/uuid"
	"github.com/shopspring/decimal"

	"github.com/MrJamesThe3rd/finsight/internal/expense"
)

type Response struct {
	ID          uuid.UUID       `json:"id"`
	Description string          `json:"description"`
	Amount      decimal.Decimal `json:"amount"`
	Date        string          `json:"date"`
	Category    string          `json:"category"`
}

func toResponse(e expense.Expense) Response {
	return Response{
		ID:          e.ID,
		Description: e.Description,
		Amount:      e.Amount,
		Date:        e.Date.Format(time.DateOnly),
		Category:    e.Category,
	}
}

// ToResponseList is shared with handlers that echo stored expenses.
func ToResponseList(expenses []expense.Expense) []Response {
	resp := make([]Response, len(expenses))
	for i, e := range expenses {
		resp[i] = toResponse(e)
	}

	return resp
}

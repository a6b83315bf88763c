package view

import (
	"context"
	"time"

	"github.com/shopspring/decimal"

	"github.com/MrJamesThe3rd/finsight/internal/backup"
)

const dbTimeout = 5 * time.Second

// FormatMoney formats an amount with two decimals and a currency sign.
func FormatMoney(d decimal.Decimal) string {
	return "$" + backup.Money(d.Round(2))
}

// FormatDate formats a time.Time into YYYY-MM-DD.
func FormatDate(t time.Time) string {
	return t.Format(time.DateOnly)
}

// DbCtx returns a context with a standard timeout for database operations.
func DbCtx() (context.Context, context.CancelFunc) {
	return context.WithTimeout(context.Background(), dbTimeout)
}

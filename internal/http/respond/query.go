package respond

import (
	"fmt"
	"net/url"

	"github.com/shopspring/decimal"

	"github.com/MrJamesThe3rd/finsight/internal/analytics"
	"github.com/MrJamesThe3rd/finsight/internal/expense"
)

// Filter reads start_date, end_date, category, min_amount and max_amount
// from q. Absent parameters leave that criterion open.
func Filter(q url.Values) (analytics.Filter, error) {
	f := analytics.Filter{Category: q.Get("category")}

	if s := q.Get("start_date"); s != "" {
		t, err := expense.ParseDate(s)
		if err != nil {
			return analytics.Filter{}, err
		}

		f.StartDate = &t
	}

	if s := q.Get("end_date"); s != "" {
		t, err := expense.ParseDate(s)
		if err != nil {
			return analytics.Filter{}, err
		}

		f.EndDate = &t
	}

	var err error

	if f.MinAmount, err = amountParam(q, "min_amount"); err != nil {
		return analytics.Filter{}, err
	}

	if f.MaxAmount, err = amountParam(q, "max_amount"); err != nil {
		return analytics.Filter{}, err
	}

	return f, nil
}

func amountParam(q url.Values, name string) (*decimal.Decimal, error) {
	s := q.Get(name)
	if s == "" {
		return nil, nil
	}

	d, err := decimal.NewFromString(s)
	if err != nil {
		return nil, fmt.Errorf("%w: %s %q", expense.ErrInvalidAmount, name, s)
	}

	return &d, nil
}

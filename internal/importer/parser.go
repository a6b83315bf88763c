package importer

import (
	"bytes"
	"encoding/csv"
	"errors"
	"fmt"
	"io"
	"strings"
	"time"

	"github.com/shopspring/decimal"

	"github.com/MrJamesThe3rd/finsight/internal/encoding"
	"github.com/MrJamesThe3rd/finsight/internal/expense"
)

var ErrUnknownFormat = errors.New("no matching CSV format: expected date, description and amount columns")

// Parse reads a CSV export into expense params. The encoding, separator and
// column layout are detected. Rows that are not expenses (footers, credits)
// are skipped; a malformed expense row fails the whole parse.
func Parse(r io.Reader) ([]expense.CreateParams, error) {
	utf8r, err := encoding.NewUTF8Reader(r)
	if err != nil {
		return nil, fmt.Errorf("detecting encoding: %w", err)
	}

	content, err := io.ReadAll(utf8r)
	if err != nil {
		return nil, fmt.Errorf("reading csv: %w", err)
	}

	for _, comma := range []rune{',', ';'} {
		rows, err := readRows(content, comma)
		if err != nil {
			continue
		}

		profile, cols, headerIdx := detectProfile(rows, comma)
		if profile == nil {
			continue
		}

		return parseRows(profile, cols, rows[headerIdx+1:], headerIdx+2)
	}

	return nil, ErrUnknownFormat
}

func readRows(content []byte, comma rune) ([][]string, error) {
	reader := csv.NewReader(bytes.NewReader(content))
	reader.Comma = comma
	reader.FieldsPerRecord = -1
	reader.LazyQuotes = true

	return reader.ReadAll()
}

// colIndex maps lower-cased column names to their index in the row.
type colIndex map[string]int

func detectProfile(rows [][]string, comma rune) (*Profile, colIndex, int) {
	for rowIdx, row := range rows {
		cols := make(colIndex)

		for i, cell := range row {
			if name := strings.ToLower(strings.TrimSpace(cell)); name != "" {
				cols[name] = i
			}
		}

		for i := range profiles {
			if profiles[i].Comma == comma && matchesProfile(&profiles[i], cols) {
				return &profiles[i], cols, rowIdx
			}
		}
	}

	return nil, nil, 0
}

func matchesProfile(p *Profile, cols colIndex) bool {
	for _, name := range p.requiredCols() {
		if _, ok := cols[name]; !ok {
			return false
		}
	}

	return true
}

// firstRow is the 1-based line number of rows[0], for error messages.
func parseRows(p *Profile, cols colIndex, rows [][]string, firstRow int) ([]expense.CreateParams, error) {
	dateIdx := cols[p.DateCol]
	descIdx := cols[p.DescCol]

	categoryIdx := -1
	if idx, ok := cols[p.CategoryCol]; ok && p.CategoryCol != "" {
		categoryIdx = idx
	}

	params := []expense.CreateParams{}

	for i, row := range rows {
		rowNum := firstRow + i

		date, ok := p.parseDate(cellValue(row, dateIdx))
		if !ok {
			continue
		}

		amount, ok, err := p.parseAmount(cols, row)
		if err != nil {
			return nil, fmt.Errorf("row %d: %w", rowNum, err)
		}

		if !ok {
			continue
		}

		desc := cellValue(row, descIdx)
		if desc == "" {
			return nil, fmt.Errorf("row %d: %w", rowNum, expense.ErrEmptyDescription)
		}

		params = append(params, expense.CreateParams{
			Description: desc,
			Amount:      amount,
			Date:        date,
			Category:    cellValue(row, categoryIdx),
		})
	}

	return params, nil
}

// parseDate reports false for empty or non-date cells, which marks footer
// and separator rows.
func (p *Profile) parseDate(s string) (time.Time, bool) {
	if s == "" {
		return time.Time{}, false
	}

	for _, layout := range p.DateLayouts {
		if t, err := time.Parse(layout, s); err == nil {
			return t, true
		}
	}

	return time.Time{}, false
}

// parseAmount returns the expense amount of a row, false when the row holds
// no expense.
func (p *Profile) parseAmount(cols colIndex, row []string) (decimal.Decimal, bool, error) {
	switch p.AmountMode {
	case amountPlain:
		d, err := p.number(cellValue(row, cols[p.AmountCol]))
		if err != nil {
			return decimal.Zero, false, err
		}

		if d.IsNegative() {
			return decimal.Zero, false, fmt.Errorf("%w: got %s", expense.ErrInvalidAmount, d)
		}

		return d, true, nil

	case amountSigned:
		d, err := p.number(cellValue(row, cols[p.AmountCol]))
		if err != nil || !d.IsNegative() {
			return decimal.Zero, false, nil
		}

		return d.Abs(), true, nil

	case amountSplit:
		s := cellValue(row, cols[p.DebitCol])
		if s == "" {
			return decimal.Zero, false, nil
		}

		d, err := p.number(s)
		if err != nil || d.IsZero() {
			return decimal.Zero, false, nil
		}

		return d.Abs(), true, nil
	}

	return decimal.Zero, false, nil
}

func (p *Profile) number(s string) (decimal.Decimal, error) {
	clean := strings.NewReplacer(" ", "", "€", "", "$", "").Replace(s)

	if p.European {
		clean = strings.ReplaceAll(clean, ".", "")
		clean = strings.ReplaceAll(clean, ",", ".")
	} else {
		clean = strings.ReplaceAll(clean, ",", "")
	}

	d, err := decimal.NewFromString(clean)
	if err != nil {
		return decimal.Zero, fmt.Errorf("invalid amount %q: %w", s, err)
	}

	return d, nil
}

func cellValue(row []string, idx int) string {
	if idx < 0 || idx >= len(row) {
		return ""
	}

	return strings.TrimSpace(row[idx])
}

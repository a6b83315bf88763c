package importer

// amountMode determines how amounts are extracted from a row.
type amountMode int

const (
	// amountPlain is one non-negative column holding the expense amount.
	amountPlain amountMode = iota
	// amountSigned is one signed column where debits are negative, as in
	// bank statements. Credits are not expenses and are skipped.
	amountSigned
	// amountSplit means separate debit and credit columns.
	amountSplit
)

// Profile describes the column layout of a supported CSV export. Header
// names are matched case-insensitively.
type Profile struct {
	Name        string
	Comma       rune
	DateLayouts []string
	// European amounts use "." for thousands and "," for decimals.
	European bool

	DateCol     string
	DescCol     string
	CategoryCol string // optional

	AmountMode amountMode
	AmountCol  string
	DebitCol   string
	CreditCol  string
}

func (p Profile) requiredCols() []string {
	cols := []string{p.DateCol, p.DescCol}

	switch p.AmountMode {
	case amountPlain, amountSigned:
		cols = append(cols, p.AmountCol)
	case amountSplit:
		cols = append(cols, p.DebitCol, p.CreditCol)
	}

	return cols
}

// profiles are tried in order; more specific layouts come first.
var profiles = []Profile{
	{
		Name:        "finsight",
		Comma:       ',',
		DateLayouts: []string{"2006-01-02", "2006/01/02", "01/02/2006"},
		DateCol:     "date",
		DescCol:     "description",
		CategoryCol: "category",
		AmountMode:  amountPlain,
		AmountCol:   "amount",
	},
	{
		Name:        "cgd-card",
		Comma:       ';',
		DateLayouts: []string{"02-01-2006"},
		European:    true,
		DateCol:     "data",
		DescCol:     "descrição",
		AmountMode:  amountSplit,
		DebitCol:    "débito",
		CreditCol:   "crédito",
	},
	{
		Name:        "cgd-statement",
		Comma:       ';',
		DateLayouts: []string{"02-01-2006"},
		European:    true,
		DateCol:     "data mov.",
		DescCol:     "descrição",
		AmountMode:  amountSigned,
		AmountCol:   "movimento",
	},
	{
		Name:        "cgd-account",
		Comma:       ';',
		DateLayouts: []string{"02-01-2006"},
		European:    true,
		DateCol:     "data mov.",
		DescCol:     "descrição",
		AmountMode:  amountSigned,
		AmountCol:   "montante",
	},
}

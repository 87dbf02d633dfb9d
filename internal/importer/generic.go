package importer

import (
	"encoding/csv"
	"fmt"
	"io"
	"strings"
	"time"

	"github.com/shopspring/decimal"

	"github.com/finpulse-dev/finpulse/internal/model"
)

// GenericParser parses the plain signed-amount export most banks can
// produce: a date,description,amount header and one row per movement,
// negative amounts for money out.
type GenericParser struct{}

const (
	genericDateFormat = "2006-01-02"
	genericNumFields  = 3
	genericColDate    = 0
	genericColDesc    = 1
	genericColAmount  = 2
)

// Format returns the parser name.
func (p *GenericParser) Format() string { return "generic" }

// Parse reads a generic CSV and returns BankTransactions.
func (p *GenericParser) Parse(r io.Reader) ([]model.BankTransaction, error) {
	cr := csv.NewReader(r)
	cr.FieldsPerRecord = genericNumFields

	records, err := cr.ReadAll()
	if err != nil {
		return nil, fmt.Errorf("reading generic CSV: %w", err)
	}

	if len(records) <= 1 {
		return nil, nil
	}

	var txns []model.BankTransaction
	for i, rec := range records[1:] {
		txn, err := parseGenericRow(rec)
		if err != nil {
			return nil, fmt.Errorf("row %d: %w", i+2, err)
		}
		txns = append(txns, txn)
	}
	return txns, nil
}

func parseGenericRow(rec []string) (model.BankTransaction, error) {
	date, err := time.Parse(genericDateFormat, rec[genericColDate])
	if err != nil {
		return model.BankTransaction{}, fmt.Errorf("parsing date %q: %w", rec[genericColDate], err)
	}

	amount, err := decimal.NewFromString(strings.TrimSpace(rec[genericColAmount]))
	if err != nil {
		return model.BankTransaction{}, fmt.Errorf("parsing amount %q: %w", rec[genericColAmount], err)
	}

	typ := "credit"
	if amount.IsNegative() {
		typ = "debit"
	}

	desc := rec[genericColDesc]
	return model.BankTransaction{
		Date:        date,
		Description: desc,
		Amount:      amount,
		Reference:   makeReference("generic", date, desc),
		Type:        typ,
	}, nil
}

// makeReference creates a reference like generic_20250103_UPWORK.
func makeReference(format string, date time.Time, desc string) string {
	prefix := strings.Map(func(r rune) rune {
		if r >= 'A' && r <= 'Z' || r >= 'a' && r <= 'z' || r >= '0' && r <= '9' {
			return r
		}
		return -1
	}, desc)
	if len(prefix) > 10 {
		prefix = prefix[:10]
	}
	return fmt.Sprintf("%s_%s_%s", format, date.Format("20060102"), prefix)
}

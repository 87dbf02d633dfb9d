package ledger

import (
	"encoding/csv"
	"fmt"
	"io"
	"strings"
	"time"

	"github.com/shopspring/decimal"

	"github.com/finpulse-dev/finpulse/internal/model"
)

// Header is the CSV header for ledger.csv.
const Header = "id,type,amount,date,category,status,recurring,gst_eligible,scheduled_for,tags,description"

const (
	numFields    = 11
	colID        = 0
	colType      = 1
	colAmount    = 2
	colDate      = 3
	colCategory  = 4
	colStatus    = 5
	colRecurring = 6
	colGST       = 7
	colScheduled = 8
	colTags      = 9
	colDesc      = 10
)

// ReadTransactions reads all transactions from a ledger.csv reader.
func ReadTransactions(r io.Reader) ([]model.Transaction, error) {
	cr := csv.NewReader(r)
	cr.FieldsPerRecord = numFields

	records, err := cr.ReadAll()
	if err != nil {
		return nil, fmt.Errorf("reading ledger CSV: %w", err)
	}

	if len(records) == 0 {
		return nil, nil
	}

	// Skip header row.
	var txns []model.Transaction
	for i, rec := range records[1:] {
		txn, err := UnmarshalTransaction(rec)
		if err != nil {
			return nil, fmt.Errorf("row %d: %w", i+2, err)
		}
		txns = append(txns, txn)
	}
	return txns, nil
}

// WriteTransactions writes transactions to a ledger.csv writer
// (including header).
func WriteTransactions(w io.Writer, txns []model.Transaction) error {
	cw := csv.NewWriter(w)
	defer cw.Flush()

	if err := cw.Write(strings.Split(Header, ",")); err != nil {
		return fmt.Errorf("writing header: %w", err)
	}

	for i, txn := range txns {
		if err := cw.Write(MarshalTransaction(txn)); err != nil {
			return fmt.Errorf("writing row %d: %w", i+2, err)
		}
	}
	return cw.Error()
}

// AppendTransactions appends transactions to an existing ledger.csv
// writer (no header).
func AppendTransactions(w io.Writer, txns []model.Transaction) error {
	cw := csv.NewWriter(w)
	defer cw.Flush()

	for i, txn := range txns {
		if err := cw.Write(MarshalTransaction(txn)); err != nil {
			return fmt.Errorf("writing row %d: %w", i, err)
		}
	}
	return cw.Error()
}

// MarshalTransaction converts a Transaction to a CSV row ([]string).
func MarshalTransaction(txn model.Transaction) []string {
	row := make([]string, numFields)
	row[colID] = txn.ID
	row[colType] = string(txn.Type)
	row[colAmount] = txn.Amount.StringFixed(2)
	row[colDate] = txn.Date
	row[colCategory] = txn.Category
	row[colStatus] = string(txn.Status)

	if txn.IsRecurring {
		row[colRecurring] = "true"
	}
	if txn.GSTEligible {
		row[colGST] = "true"
	}
	if txn.ScheduledFor != nil {
		row[colScheduled] = txn.ScheduledFor.Format(model.DateLayout)
	}

	row[colTags] = txn.Tags
	row[colDesc] = txn.Description

	return row
}

// UnmarshalTransaction converts a CSV row to a Transaction. The date
// column is kept verbatim: malformed dates are an aggregation-time
// concern, not a load error.
func UnmarshalTransaction(record []string) (model.Transaction, error) {
	if len(record) != numFields {
		return model.Transaction{}, fmt.Errorf("expected %d fields, got %d", numFields, len(record))
	}

	amount, err := decimal.NewFromString(record[colAmount])
	if err != nil {
		return model.Transaction{}, fmt.Errorf("parsing amount %q: %w", record[colAmount], err)
	}

	var scheduled *time.Time
	if record[colScheduled] != "" {
		t, err := time.Parse(model.DateLayout, record[colScheduled])
		if err != nil {
			return model.Transaction{}, fmt.Errorf("parsing scheduled_for %q: %w", record[colScheduled], err)
		}
		scheduled = &t
	}

	return model.Transaction{
		ID:           record[colID],
		Type:         model.TransactionType(record[colType]),
		Amount:       amount,
		Date:         record[colDate],
		Category:     record[colCategory],
		Status:       model.LedgerStatus(record[colStatus]),
		IsRecurring:  record[colRecurring] == "true",
		GSTEligible:  record[colGST] == "true",
		ScheduledFor: scheduled,
		Tags:         record[colTags],
		Description:  record[colDesc],
	}, nil
}

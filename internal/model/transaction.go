package model

import (
	"time"

	"github.com/shopspring/decimal"
)

// TransactionType classifies a ledger row by cash direction.
type TransactionType string

const (
	TypeIncome   TransactionType = "income"
	TypeExpense  TransactionType = "expense"
	TypeTransfer TransactionType = "transfer"
)

// Valid reports whether t is one of the known transaction types.
func (t TransactionType) Valid() bool {
	switch t {
	case TypeIncome, TypeExpense, TypeTransfer:
		return true
	}
	return false
}

// LedgerStatus represents the reconciliation state of a transaction.
type LedgerStatus string

const (
	StatusUnreconciled LedgerStatus = "unreconciled"
	StatusPending      LedgerStatus = "pending"
	StatusCleared      LedgerStatus = "cleared"
)

// Valid reports whether s is one of the known ledger statuses.
func (s LedgerStatus) Valid() bool {
	switch s {
	case StatusUnreconciled, StatusPending, StatusCleared:
		return true
	}
	return false
}

// DateLayout is the canonical date format for transaction dates.
const DateLayout = "2006-01-02"

// ParseDate parses a transaction date string. Accepts the canonical
// YYYY-MM-DD form and falls back to RFC 3339 for imported rows that
// carry a timestamp.
func ParseDate(s string) (time.Time, error) {
	if t, err := time.Parse(DateLayout, s); err == nil {
		return t, nil
	}
	return time.Parse(time.RFC3339, s)
}

// Transaction is a single row in ledger.csv. Amounts are always
// non-negative; direction comes from Type. Date is kept as the raw
// stored string: rows with malformed dates remain loadable and are
// skipped (and counted) at aggregation time instead.
type Transaction struct {
	ID           string
	Type         TransactionType
	Amount       decimal.Decimal
	Date         string
	Category     string
	Status       LedgerStatus
	IsRecurring  bool
	GSTEligible  bool
	ScheduledFor *time.Time // future-dated leg, drives upcoming events
	Tags         string     // semicolon-separated
	Description  string
}

// ParsedDate returns the transaction date as a time.Time.
func (t Transaction) ParsedDate() (time.Time, error) {
	return ParseDate(t.Date)
}

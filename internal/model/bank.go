package model

import (
	"time"

	"github.com/shopspring/decimal"
)

// BankTransaction represents a parsed bank statement CSV row before it
// is converted into a ledger Transaction.
type BankTransaction struct {
	Date        time.Time
	Description string
	Amount      decimal.Decimal // negative = money out, positive = money in
	Reference   string
	Type        string // bank-side direction: credit or debit
}

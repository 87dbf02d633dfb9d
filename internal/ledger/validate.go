package ledger

import (
	"fmt"

	"github.com/shopspring/decimal"

	"github.com/finpulse-dev/finpulse/internal/model"
)

// ValidationError describes a single rule violation on a transaction.
type ValidationError struct {
	Rule        int
	TxnID       string
	Description string
}

func (e ValidationError) Error() string {
	return fmt.Sprintf("rule %d [%s]: %s", e.Rule, e.TxnID, e.Description)
}

// ValidateTransactions enforces the ledger's row rules. Amount and enum
// problems are boundary errors and surface here; malformed dates are
// not: they stay loadable and are skipped (and counted) at
// aggregation time.
//
// Rules:
//  1. amount is non-negative (direction comes from type, never sign)
//  2. type is a known transaction type
//  3. status is a known ledger status
//  4. amount has at most 2 decimal places
//  5. IDs are unique across the ledger
func ValidateTransactions(txns []model.Transaction) []ValidationError {
	var errs []ValidationError

	seen := make(map[string]bool)
	for _, txn := range txns {
		if txn.Amount.IsNegative() {
			errs = append(errs, ValidationError{
				Rule:        1,
				TxnID:       txn.ID,
				Description: fmt.Sprintf("negative amount %s", txn.Amount),
			})
		}

		if !txn.Type.Valid() {
			errs = append(errs, ValidationError{
				Rule:        2,
				TxnID:       txn.ID,
				Description: fmt.Sprintf("unknown transaction type %q", txn.Type),
			})
		}

		if !txn.Status.Valid() {
			errs = append(errs, ValidationError{
				Rule:        3,
				TxnID:       txn.ID,
				Description: fmt.Sprintf("unknown ledger status %q", txn.Status),
			})
		}

		hundred := decimal.NewFromInt(100)
		if !txn.Amount.Mul(hundred).Equal(txn.Amount.Mul(hundred).Floor()) {
			errs = append(errs, ValidationError{
				Rule:        4,
				TxnID:       txn.ID,
				Description: fmt.Sprintf("amount %s has more than 2 decimal places", txn.Amount),
			})
		}

		if seen[txn.ID] {
			errs = append(errs, ValidationError{
				Rule:        5,
				TxnID:       txn.ID,
				Description: "duplicate transaction ID",
			})
		}
		seen[txn.ID] = true
	}

	return errs
}

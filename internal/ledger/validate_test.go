package ledger

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/finpulse-dev/finpulse/internal/model"
)

func validTxn(id string) model.Transaction {
	return model.Transaction{
		ID:     id,
		Type:   model.TypeIncome,
		Amount: dec("5000.00"),
		Date:   "2025-04-05",
		Status: model.StatusCleared,
	}
}

func TestValidateTransactions_Clean(t *testing.T) {
	txns := []model.Transaction{validTxn("a"), validTxn("b")}
	assert.Empty(t, ValidateTransactions(txns))
}

func TestValidateTransactions_NegativeAmount(t *testing.T) {
	txn := validTxn("a")
	txn.Amount = dec("-10.00")

	errs := ValidateTransactions([]model.Transaction{txn})
	require.Len(t, errs, 1)
	assert.Equal(t, 1, errs[0].Rule)
	assert.Contains(t, errs[0].Error(), "negative amount")
}

func TestValidateTransactions_UnknownType(t *testing.T) {
	txn := validTxn("a")
	txn.Type = "refund"

	errs := ValidateTransactions([]model.Transaction{txn})
	require.Len(t, errs, 1)
	assert.Equal(t, 2, errs[0].Rule)
}

func TestValidateTransactions_UnknownStatus(t *testing.T) {
	txn := validTxn("a")
	txn.Status = "done"

	errs := ValidateTransactions([]model.Transaction{txn})
	require.Len(t, errs, 1)
	assert.Equal(t, 3, errs[0].Rule)
}

func TestValidateTransactions_TooManyDecimalPlaces(t *testing.T) {
	txn := validTxn("a")
	txn.Amount = dec("10.005")

	errs := ValidateTransactions([]model.Transaction{txn})
	require.Len(t, errs, 1)
	assert.Equal(t, 4, errs[0].Rule)
}

func TestValidateTransactions_DuplicateID(t *testing.T) {
	txns := []model.Transaction{validTxn("same"), validTxn("same")}

	errs := ValidateTransactions(txns)
	require.Len(t, errs, 1)
	assert.Equal(t, 5, errs[0].Rule)
	assert.Equal(t, "same", errs[0].TxnID)
}

func TestValidateTransactions_BadDateIsNotAnError(t *testing.T) {
	txn := validTxn("a")
	txn.Date = "someday"
	assert.Empty(t, ValidateTransactions([]model.Transaction{txn}))
}

func TestValidateTransactions_MultipleViolations(t *testing.T) {
	txn := validTxn("a")
	txn.Amount = dec("-3.123")
	txn.Type = "bogus"

	errs := ValidateTransactions([]model.Transaction{txn})
	assert.Len(t, errs, 3)
}

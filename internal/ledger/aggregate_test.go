package ledger

import (
	"testing"

	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/finpulse-dev/finpulse/internal/model"
)

func txn(typ model.TransactionType, amount, date string) model.Transaction {
	return model.Transaction{
		ID:     date + "/" + string(typ) + "/" + amount,
		Type:   typ,
		Amount: dec(amount),
		Date:   date,
		Status: model.StatusCleared,
	}
}

func TestAggregate_MonthlyBuckets(t *testing.T) {
	txns := []model.Transaction{
		txn(model.TypeIncome, "85000.00", "2025-04-05"),
		txn(model.TypeIncome, "12000.00", "2025-04-20"),
		txn(model.TypeExpense, "43000.00", "2025-04-12"),
		txn(model.TypeIncome, "85000.00", "2025-05-05"),
		txn(model.TypeExpense, "91000.00", "2025-05-15"),
	}

	res := Aggregate(txns, AggregateOptions{})
	require.Len(t, res.Records, 2)
	assert.Zero(t, res.SkippedDates)

	apr := res.Records[0]
	assert.Equal(t, "2025-04", apr.Key())
	assert.True(t, apr.Income.Equal(dec("97000.00")), "income = %s", apr.Income)
	assert.True(t, apr.Expense.Equal(dec("43000.00")))
	assert.True(t, apr.Savings.Equal(dec("54000.00")))

	may := res.Records[1]
	assert.Equal(t, "2025-05", may.Key())
	assert.True(t, may.Savings.Equal(dec("-6000.00")), "overspent month keeps negative savings")
}

func TestAggregate_ExactSums(t *testing.T) {
	// Amounts chosen to drift under float64 addition.
	txns := []model.Transaction{
		txn(model.TypeIncome, "0.10", "2025-01-01"),
		txn(model.TypeIncome, "0.20", "2025-01-02"),
		txn(model.TypeIncome, "0.30", "2025-01-03"),
		txn(model.TypeExpense, "0.01", "2025-01-04"),
		txn(model.TypeExpense, "0.02", "2025-01-05"),
	}

	res := Aggregate(txns, AggregateOptions{})
	require.Len(t, res.Records, 1)
	assert.True(t, res.Records[0].Income.Equal(dec("0.60")), "income = %s", res.Records[0].Income)
	assert.True(t, res.Records[0].Expense.Equal(dec("0.03")))
	assert.True(t, res.Records[0].Savings.Equal(dec("0.57")))
}

func TestAggregate_SkipsUnparseableDates(t *testing.T) {
	txns := []model.Transaction{
		txn(model.TypeIncome, "100.00", "2025-04-05"),
		txn(model.TypeIncome, "200.00", "05/04/2025"),
		txn(model.TypeExpense, "50.00", ""),
	}

	res := Aggregate(txns, AggregateOptions{})
	assert.Equal(t, 2, res.SkippedDates)
	require.Len(t, res.Records, 1)
	assert.True(t, res.Records[0].Income.Equal(dec("100.00")))
}

func TestAggregate_RFC3339Dates(t *testing.T) {
	txns := []model.Transaction{
		txn(model.TypeIncome, "100.00", "2025-04-05T10:30:00Z"),
	}

	res := Aggregate(txns, AggregateOptions{})
	assert.Zero(t, res.SkippedDates)
	require.Len(t, res.Records, 1)
	assert.Equal(t, "2025-04", res.Records[0].Key())
}

func TestAggregate_TransfersExcludedByDefault(t *testing.T) {
	txns := []model.Transaction{
		txn(model.TypeIncome, "1000.00", "2025-04-01"),
		txn(model.TypeTransfer, "400.00", "2025-04-02"),
	}

	res := Aggregate(txns, AggregateOptions{})
	require.Len(t, res.Records, 1)
	assert.True(t, res.Records[0].Income.Equal(dec("1000.00")))
	assert.True(t, res.Records[0].Expense.IsZero())
}

func TestAggregate_TransfersIncludedKeepSavingsInvariant(t *testing.T) {
	txns := []model.Transaction{
		txn(model.TypeIncome, "1000.00", "2025-04-01"),
		txn(model.TypeTransfer, "400.00", "2025-04-02"),
	}

	res := Aggregate(txns, AggregateOptions{IncludeTransfers: true})
	require.Len(t, res.Records, 1)
	rec := res.Records[0]
	assert.True(t, rec.Income.Equal(dec("1400.00")))
	assert.True(t, rec.Expense.Equal(dec("400.00")))
	assert.True(t, rec.Savings.Equal(dec("1000.00")), "transfers never move savings")
}

func TestAggregate_DateRange(t *testing.T) {
	txns := []model.Transaction{
		txn(model.TypeIncome, "100.00", "2025-03-31"),
		txn(model.TypeIncome, "200.00", "2025-04-01"),
		txn(model.TypeIncome, "300.00", "2025-06-30"),
		txn(model.TypeIncome, "400.00", "2025-07-01"),
	}

	res := Aggregate(txns, AggregateOptions{
		Since: date(2025, 4, 1),
		Until: date(2025, 6, 30),
	})
	require.Len(t, res.Records, 2)
	assert.True(t, res.Records[0].Income.Equal(dec("200.00")), "range is inclusive on both ends")
	assert.True(t, res.Records[1].Income.Equal(dec("300.00")))
}

func TestAggregate_DenseFill(t *testing.T) {
	txns := []model.Transaction{
		txn(model.TypeIncome, "100.00", "2025-01-15"),
		txn(model.TypeIncome, "300.00", "2025-04-15"),
	}

	res := Aggregate(txns, AggregateOptions{DenseFill: true})
	require.Len(t, res.Records, 4)
	assert.Equal(t, "2025-01", res.Records[0].Key())
	assert.Equal(t, "2025-02", res.Records[1].Key())
	assert.Equal(t, "2025-03", res.Records[2].Key())
	assert.Equal(t, "2025-04", res.Records[3].Key())
	assert.True(t, res.Records[1].Income.IsZero())
	assert.True(t, res.Records[1].Savings.IsZero())
}

func TestAggregate_DenseFillAcrossYearEnd(t *testing.T) {
	txns := []model.Transaction{
		txn(model.TypeIncome, "100.00", "2024-12-15"),
		txn(model.TypeIncome, "300.00", "2025-02-15"),
	}

	res := Aggregate(txns, AggregateOptions{DenseFill: true})
	require.Len(t, res.Records, 3)
	assert.Equal(t, "2025-01", res.Records[1].Key())
}

func TestAggregate_Empty(t *testing.T) {
	res := Aggregate(nil, AggregateOptions{})
	assert.Empty(t, res.Records)
	assert.Zero(t, res.SkippedDates)
}

func TestAggregate_BudgetOverlays(t *testing.T) {
	budget := dec("40000")
	target := dec("20000")
	txns := []model.Transaction{
		txn(model.TypeIncome, "85000.00", "2025-04-05"),
	}

	res := Aggregate(txns, AggregateOptions{
		BudgetedExpense: &budget,
		TargetSavings:   &target,
	})
	require.Len(t, res.Records, 1)
	require.NotNil(t, res.Records[0].BudgetedExpense)
	assert.True(t, res.Records[0].BudgetedExpense.Equal(budget))
	require.NotNil(t, res.Records[0].TargetSavings)
}

func TestSurplusStats(t *testing.T) {
	records := []model.MonthlyRecord{
		{Month: date(2025, 4, 1), Income: dec("90000"), Expense: dec("60000")},
		{Month: date(2025, 5, 1), Income: dec("80000"), Expense: dec("70000")},
	}

	stats := SurplusStats(records)
	assert.Equal(t, 2, stats.Months)
	assert.True(t, stats.AvgIncome.Equal(dec("85000")), "avg income = %s", stats.AvgIncome)
	assert.True(t, stats.AvgExpense.Equal(dec("65000")))
	assert.True(t, stats.AvgSurplus.Equal(dec("20000")))
}

func TestSurplusStats_Empty(t *testing.T) {
	stats := SurplusStats(nil)
	assert.Zero(t, stats.Months)
	assert.True(t, stats.AvgIncome.IsZero())
	assert.True(t, decimal.Zero.Equal(stats.AvgSurplus))
}

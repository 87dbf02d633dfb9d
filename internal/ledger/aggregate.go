package ledger

import (
	"sort"
	"time"

	"github.com/shopspring/decimal"

	"github.com/finpulse-dev/finpulse/internal/fiscal"
	"github.com/finpulse-dev/finpulse/internal/model"
)

// AggregateOptions controls how transactions are bucketed into months.
type AggregateOptions struct {
	// Since/Until bound the parsed transaction date, inclusive. Zero
	// values mean unbounded.
	Since time.Time
	Until time.Time

	// IncludeTransfers adds transfer amounts to both the income and
	// expense side of the month, so gross cash movement is visible
	// while savings stays income minus expense either way.
	IncludeTransfers bool

	// DenseFill inserts zero-activity months between the first and
	// last active month, so charts and trend math see a contiguous
	// series.
	DenseFill bool

	// Plan overlays stamped onto every record when set.
	BudgetedExpense *decimal.Decimal
	TargetSavings   *decimal.Decimal
}

// Result is the outcome of one aggregation pass.
type Result struct {
	Records []model.MonthlyRecord

	// SkippedDates counts transactions dropped because their date
	// would not parse. Surfaced so callers can report data quality
	// instead of silently losing rows.
	SkippedDates int
}

// Aggregate buckets transactions into chronologically ordered monthly
// records. Pure: the input slice is never modified and every call
// recomputes from scratch.
func Aggregate(txns []model.Transaction, opts AggregateOptions) Result {
	buckets := make(map[string]*model.MonthlyRecord)
	skipped := 0

	for _, txn := range txns {
		when, err := txn.ParsedDate()
		if err != nil {
			skipped++
			continue
		}
		if !opts.Since.IsZero() && when.Before(opts.Since) {
			continue
		}
		if !opts.Until.IsZero() && when.After(opts.Until) {
			continue
		}

		month := monthStart(when)
		key := fiscal.MonthKey(month)
		rec, ok := buckets[key]
		if !ok {
			rec = &model.MonthlyRecord{Month: month}
			buckets[key] = rec
		}

		switch txn.Type {
		case model.TypeIncome:
			rec.Income = rec.Income.Add(txn.Amount)
		case model.TypeExpense:
			rec.Expense = rec.Expense.Add(txn.Amount)
		case model.TypeTransfer:
			if opts.IncludeTransfers {
				rec.Income = rec.Income.Add(txn.Amount)
				rec.Expense = rec.Expense.Add(txn.Amount)
			}
		}
	}

	records := make([]model.MonthlyRecord, 0, len(buckets))
	for _, rec := range buckets {
		records = append(records, *rec)
	}
	sort.Slice(records, func(i, j int) bool {
		return records[i].Month.Before(records[j].Month)
	})

	if opts.DenseFill {
		records = denseFill(records)
	}

	for i := range records {
		records[i].Savings = records[i].Income.Sub(records[i].Expense)
		records[i].BudgetedExpense = opts.BudgetedExpense
		records[i].TargetSavings = opts.TargetSavings
	}

	return Result{Records: records, SkippedDates: skipped}
}

// denseFill inserts zero-activity months so the series is contiguous
// from the first active month to the last.
func denseFill(records []model.MonthlyRecord) []model.MonthlyRecord {
	if len(records) < 2 {
		return records
	}

	filled := make([]model.MonthlyRecord, 0, len(records))
	next := 0
	for month := records[0].Month; !month.After(records[len(records)-1].Month); month = month.AddDate(0, 1, 0) {
		if next < len(records) && records[next].Month.Equal(month) {
			filled = append(filled, records[next])
			next++
			continue
		}
		filled = append(filled, model.MonthlyRecord{Month: month})
	}
	return filled
}

// Stats summarizes a monthly series for planning math.
type Stats struct {
	AvgIncome  decimal.Decimal
	AvgExpense decimal.Decimal
	AvgSurplus decimal.Decimal
	Months     int
}

// SurplusStats averages income, expense and surplus across records.
// Zero-valued for an empty series.
func SurplusStats(records []model.MonthlyRecord) Stats {
	if len(records) == 0 {
		return Stats{}
	}

	var income, expense decimal.Decimal
	for _, rec := range records {
		income = income.Add(rec.Income)
		expense = expense.Add(rec.Expense)
	}

	n := decimal.NewFromInt(int64(len(records)))
	avgIncome := income.Div(n)
	avgExpense := expense.Div(n)
	return Stats{
		AvgIncome:  avgIncome,
		AvgExpense: avgExpense,
		AvgSurplus: avgIncome.Sub(avgExpense),
		Months:     len(records),
	}
}

func monthStart(t time.Time) time.Time {
	return time.Date(t.Year(), t.Month(), 1, 0, 0, 0, 0, time.UTC)
}

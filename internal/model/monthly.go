package model

import (
	"time"

	"github.com/shopspring/decimal"
)

// MonthlyRecord is one aggregated month of ledger activity. Month is
// normalized to the first day of the month, UTC. Savings is always
// Income minus Expense, which may be negative.
type MonthlyRecord struct {
	Month   time.Time
	Income  decimal.Decimal
	Expense decimal.Decimal
	Savings decimal.Decimal

	// Optional plan overlays stamped by the aggregator when the
	// workspace carries budget targets.
	BudgetedExpense *decimal.Decimal
	TargetSavings   *decimal.Decimal
}

// Key returns the sortable month key, e.g. "2025-04".
func (r MonthlyRecord) Key() string {
	return r.Month.Format("2006-01")
}

// Label returns the human-facing month label, e.g. "Apr 2025".
func (r MonthlyRecord) Label() string {
	return r.Month.Format("Jan 2006")
}

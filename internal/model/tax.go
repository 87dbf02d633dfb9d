package model

import (
	"time"

	"github.com/shopspring/decimal"
)

// TaxRegime selects the slab table used for an estimate.
type TaxRegime string

const (
	RegimeNew TaxRegime = "new"
	RegimeOld TaxRegime = "old"
	// RegimeHybrid estimates both regimes and keeps the cheaper one,
	// padding old-regime deductions with a planning buffer.
	RegimeHybrid TaxRegime = "hybrid"
)

// Valid reports whether r is one of the known regimes.
func (r TaxRegime) Valid() bool {
	switch r {
	case RegimeNew, RegimeOld, RegimeHybrid:
		return true
	}
	return false
}

// TaxEstimate is the result of running income through a regime's slabs.
type TaxEstimate struct {
	Regime           TaxRegime
	TaxableIncome    decimal.Decimal
	GrossTax         decimal.Decimal // slab tax before cess
	Cess             decimal.Decimal
	TotalTax         decimal.Decimal // rounded to whole currency units
	EffectiveRatePct float64         // TotalTax / TaxableIncome * 100, 0 when income is 0
}

// AdvanceTaxMilestone is one quarterly installment checkpoint.
// TargetPercent is cumulative: 15, 45, 75, 100 across the year.
type AdvanceTaxMilestone struct {
	Quarter       int // 1..4 of the financial year (Q1 = Apr-Jun)
	DueDate       time.Time
	TargetPercent int64
	PaidPercent   float64 // cumulative payments / estimated annual tax * 100
}

// Shortfall returns how much of the estimated annual tax is still owed
// to reach this milestone's cumulative target. Never negative.
func (m AdvanceTaxMilestone) Shortfall(estimatedAnnual decimal.Decimal) decimal.Decimal {
	missingPct := float64(m.TargetPercent) - m.PaidPercent
	if missingPct <= 0 {
		return decimal.Zero
	}
	return estimatedAnnual.Mul(decimal.NewFromFloat(missingPct)).Div(decimal.NewFromInt(100)).Round(2)
}

// Package tax computes Indian income-tax estimates: progressive slab
// liability under the new, old and hybrid regimes, quarterly
// advance-tax milestones, and the freelancer-facing checks (TDS, GST
// registration, deductible-expense categorization). All functions are
// pure; callers validate amounts and inject the clock.
package tax

import (
	"fmt"
	"strings"

	"github.com/shopspring/decimal"

	"github.com/finpulse-dev/finpulse/internal/model"
)

// slab is one progressive bracket: income up to limit is taxed at rate.
type slab struct {
	limit decimal.Decimal
	rate  decimal.Decimal
}

// FY 2024-25 slab tables.
var (
	newRegimeSlabs = []slab{
		{limit: decimal.NewFromInt(300000), rate: decimal.Zero},
		{limit: decimal.NewFromInt(700000), rate: decimal.NewFromFloat(0.05)},
		{limit: decimal.NewFromInt(1000000), rate: decimal.NewFromFloat(0.10)},
		{limit: decimal.NewFromInt(1200000), rate: decimal.NewFromFloat(0.15)},
		{limit: decimal.NewFromInt(1500000), rate: decimal.NewFromFloat(0.20)},
	}
	newRegimeTopRate = decimal.NewFromFloat(0.30)

	oldRegimeSlabs = []slab{
		{limit: decimal.NewFromInt(250000), rate: decimal.Zero},
		{limit: decimal.NewFromInt(500000), rate: decimal.NewFromFloat(0.05)},
		{limit: decimal.NewFromInt(1000000), rate: decimal.NewFromFloat(0.20)},
	}
	oldRegimeTopRate = decimal.NewFromFloat(0.30)
)

// cessRate is the flat 4% health-and-education cess on computed tax.
var cessRate = decimal.NewFromFloat(0.04)

// oldRegimeDeductionCap limits claimable deductions under the old
// regime. The value equals the first slab boundary; whether that is
// intentional is unresolved, so it is replicated, not "fixed".
var oldRegimeDeductionCap = decimal.NewFromInt(250000)

// hybridDeductionBuffer is the planning pad added to old-regime
// deductions before the hybrid comparison. A coach assumption, not a
// statutory rule.
var hybridDeductionBuffer = decimal.NewFromInt(50000)

// ParseRegime parses a regime selector from user input.
func ParseRegime(s string) (model.TaxRegime, error) {
	r := model.TaxRegime(strings.ToLower(s))
	if !r.Valid() {
		return "", fmt.Errorf("unknown tax regime %q (want new, old or hybrid)", s)
	}
	return r, nil
}

// Estimate computes the tax liability for one financial year.
//
// The new regime ignores deductions entirely. The old regime reduces
// taxable income by the capped deductions. Hybrid runs both (padding
// old-regime deductions with the planning buffer) and keeps the
// cheaper estimate; its Regime field reports which slab table won.
func Estimate(annualIncome, totalDeductions decimal.Decimal, regime model.TaxRegime) (model.TaxEstimate, error) {
	switch regime {
	case model.RegimeNew:
		return slabEstimate(annualIncome, model.RegimeNew, newRegimeSlabs, newRegimeTopRate), nil

	case model.RegimeOld:
		deductible := decimal.Min(totalDeductions, oldRegimeDeductionCap)
		taxable := annualIncome.Sub(deductible)
		if taxable.IsNegative() {
			taxable = decimal.Zero
		}
		return slabEstimate(taxable, model.RegimeOld, oldRegimeSlabs, oldRegimeTopRate), nil

	case model.RegimeHybrid:
		newEst, err := Estimate(annualIncome, totalDeductions, model.RegimeNew)
		if err != nil {
			return model.TaxEstimate{}, err
		}
		oldEst, err := Estimate(annualIncome, totalDeductions.Add(hybridDeductionBuffer), model.RegimeOld)
		if err != nil {
			return model.TaxEstimate{}, err
		}
		if newEst.TotalTax.LessThanOrEqual(oldEst.TotalTax) {
			return newEst, nil
		}
		return oldEst, nil

	default:
		return model.TaxEstimate{}, fmt.Errorf("unknown tax regime %q", regime)
	}
}

// slabEstimate walks a slab table over taxable income and applies cess.
func slabEstimate(taxable decimal.Decimal, regime model.TaxRegime, slabs []slab, topRate decimal.Decimal) model.TaxEstimate {
	remaining := taxable
	accumulated := decimal.Zero
	tax := decimal.Zero

	for _, sl := range slabs {
		taxableInSlab := decimal.Min(remaining, sl.limit.Sub(accumulated))
		if taxableInSlab.IsNegative() {
			taxableInSlab = decimal.Zero
		}
		tax = tax.Add(taxableInSlab.Mul(sl.rate))
		remaining = remaining.Sub(taxableInSlab)
		accumulated = sl.limit
	}
	if remaining.IsPositive() {
		tax = tax.Add(remaining.Mul(topRate))
	}

	cess := tax.Mul(cessRate)
	total := tax.Add(cess).Round(0)

	effective := 0.0
	if taxable.IsPositive() {
		effective = total.Div(taxable).InexactFloat64() * 100
	}

	return model.TaxEstimate{
		Regime:           regime,
		TaxableIncome:    taxable,
		GrossTax:         tax,
		Cess:             cess,
		TotalTax:         total,
		EffectiveRatePct: effective,
	}
}

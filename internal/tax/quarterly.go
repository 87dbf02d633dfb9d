package tax

import (
	"fmt"

	"github.com/shopspring/decimal"

	"github.com/finpulse-dev/finpulse/internal/fiscal"
	"github.com/finpulse-dev/finpulse/internal/model"
)

// standardDeduction is the flat deduction applied to freelancer income
// before the quarterly estimate.
var standardDeduction = decimal.NewFromInt(50000)

// QuarterlyEstimate is the advance-tax planning view for one quarter.
type QuarterlyEstimate struct {
	Quarter           fiscal.Quarter
	EstimatedAnnual   decimal.Decimal // new-regime tax + cess on the adjusted base
	InstallmentDue    decimal.Decimal // this quarter's share of the annual estimate
	TotalIncome       decimal.Decimal
	BusinessExpenses  decimal.Decimal
	StandardDeduction decimal.Decimal
	TaxableIncome     decimal.Decimal
	EffectiveRatePct  float64 // annual estimate / total income * 100
	Categories        map[ExpenseCategory]decimal.Decimal
}

// EstimateQuarterly estimates the advance-tax installment for q from
// raw ledger rows: income minus categorized business expenses minus the
// standard deduction, run through the new-regime slabs. Transfers and
// rows with unparseable dates are the aggregator's concern; here every
// income and expense row counts.
func EstimateQuarterly(txns []model.Transaction, q fiscal.Quarter) QuarterlyEstimate {
	var totalIncome decimal.Decimal
	for _, txn := range txns {
		if txn.Type == model.TypeIncome {
			totalIncome = totalIncome.Add(txn.Amount)
		}
	}

	categories := CategorizeExpenses(txns)
	var deductible decimal.Decimal
	for _, amount := range categories {
		deductible = deductible.Add(amount)
	}

	taxable := totalIncome.Sub(deductible).Sub(standardDeduction)
	if taxable.IsNegative() {
		taxable = decimal.Zero
	}

	est := slabEstimate(taxable, model.RegimeNew, newRegimeSlabs, newRegimeTopRate)
	annual := est.GrossTax.Add(est.Cess).Round(2)
	installment := annual.Mul(quarterShares[q]).Round(2)

	effective := 0.0
	if totalIncome.IsPositive() {
		effective = annual.Div(totalIncome).InexactFloat64() * 100
	}

	return QuarterlyEstimate{
		Quarter:           q,
		EstimatedAnnual:   annual,
		InstallmentDue:    installment,
		TotalIncome:       totalIncome,
		BusinessExpenses:  deductible,
		StandardDeduction: standardDeduction,
		TaxableIncome:     taxable,
		EffectiveRatePct:  effective,
		Categories:        categories,
	}
}

// Suggestions turns a quarterly estimate into short coaching lines.
func Suggestions(q QuarterlyEstimate) []string {
	var out []string

	tenPct := q.TotalIncome.Mul(decimal.NewFromFloat(0.1))
	if q.BusinessExpenses.LessThan(tenPct) {
		out = append(out, "Track business expenses carefully. Even 10-15% of income as valid business expenses can significantly reduce tax.")
	}

	if q.TaxableIncome.GreaterThan(decimal.NewFromInt(300000)) {
		out = append(out, "Consider investing in 80C instruments (PPF, ELSS) to reduce taxable income.")
	}

	out = append(out, "Health insurance premiums qualify for an 80D deduction of up to 25,000 (50,000 for seniors).")

	if q.InstallmentDue.GreaterThan(decimal.NewFromInt(10000)) {
		out = append(out, fmt.Sprintf("Pay the %s advance-tax installment of %s to avoid interest penalties.", q.Quarter, q.InstallmentDue.StringFixed(0)))
	}

	out = append(out, "Keep digital copies of all invoices and receipts.")
	return out
}

package tax

import (
	"github.com/shopspring/decimal"

	"github.com/finpulse-dev/finpulse/internal/fiscal"
	"github.com/finpulse-dev/finpulse/internal/model"
)

// milestoneTargets are the cumulative advance-tax percentages due by
// each quarter's installment date.
var milestoneTargets = [4]int64{15, 45, 75, 100}

// quarterShares are the per-installment fractions of the annual
// estimate, the deltas of the cumulative targets (15/30/30/25).
var quarterShares = map[fiscal.Quarter]decimal.Decimal{
	fiscal.Q1: decimal.NewFromFloat(0.15),
	fiscal.Q2: decimal.NewFromFloat(0.30),
	fiscal.Q3: decimal.NewFromFloat(0.30),
	fiscal.Q4: decimal.NewFromFloat(0.25),
}

// MilestoneSchedule builds the four advance-tax checkpoints for a
// financial year. payments maps each quarter to the amount paid in that
// quarter; paid percentages are cumulative.
func MilestoneSchedule(fy fiscal.Year, estimatedAnnual decimal.Decimal, payments map[fiscal.Quarter]decimal.Decimal) []model.AdvanceTaxMilestone {
	milestones := make([]model.AdvanceTaxMilestone, 0, 4)
	cumulative := decimal.Zero

	for q := fiscal.Q1; q <= fiscal.Q4; q++ {
		cumulative = cumulative.Add(payments[q])

		paidPct := 0.0
		if estimatedAnnual.IsPositive() {
			paidPct = cumulative.Div(estimatedAnnual).InexactFloat64() * 100
		}

		milestones = append(milestones, model.AdvanceTaxMilestone{
			Quarter:       int(q),
			DueDate:       fy.DueDate(q),
			TargetPercent: milestoneTargets[q-1],
			PaidPercent:   paidPct,
		})
	}
	return milestones
}

// CurrentMilestone returns the first milestone whose cumulative target
// is not yet met, or the last one when everything is satisfied. Expects
// the non-empty schedule produced by MilestoneSchedule.
func CurrentMilestone(milestones []model.AdvanceTaxMilestone) model.AdvanceTaxMilestone {
	for _, m := range milestones {
		if m.PaidPercent < float64(m.TargetPercent) {
			return m
		}
	}
	return milestones[len(milestones)-1]
}

// Package whatif simulates the cash-flow impact of a hypothetical
// purchase: affordability score, buffer left after the upfront hit,
// months to rebuild savings, and the projected slip of active goals.
package whatif

import (
	"fmt"
	"math"
	"sort"
	"strings"
	"time"

	"github.com/shopspring/decimal"

	"github.com/finpulse-dev/finpulse/internal/goalplan"
	"github.com/finpulse-dev/finpulse/internal/model"
)

// emiDownPayment is the upfront share of an EMI purchase.
var emiDownPayment = decimal.NewFromFloat(0.25)

// bufferTargetMonths is the expense coverage a healthy buffer holds.
var bufferTargetMonths = decimal.NewFromInt(3)

const (
	minScore = 15
	maxScore = 95

	maxGoalImpacts = 3
	maxDelayMonths = 24.0
	delayDamping   = 0.1
	lowImpactScore = 80
	watchlistScore = 60
)

// ParseScenario maps user input to a purchase scenario.
func ParseScenario(s string) (model.PurchaseScenario, error) {
	scenario := model.PurchaseScenario(strings.ToLower(strings.TrimSpace(s)))
	if !scenario.Valid() {
		return "", fmt.Errorf("unknown purchase scenario %q (want cash, emi6 or emi12)", s)
	}
	return scenario, nil
}

// Input is a snapshot of the finances a purchase is simulated against.
type Input struct {
	PurchaseAmount    decimal.Decimal
	Scenario          model.PurchaseScenario
	BaseSavings       decimal.Decimal
	AvgMonthlySurplus decimal.Decimal
	AvgMonthlyExpense decimal.Decimal
	Goals             []model.Goal
	Now               time.Time
}

// Simulate models the purchase against the snapshot. The score is
// clamped to [15, 95]: even a trivial spend is never a free pass and
// even a reckless one gets a floor instead of zero.
func Simulate(in Input) (model.SimulationResult, error) {
	if !in.PurchaseAmount.IsPositive() {
		return model.SimulationResult{}, fmt.Errorf("purchase amount %s must be positive", in.PurchaseAmount)
	}
	if !in.Scenario.Valid() {
		return model.SimulationResult{}, fmt.Errorf("unknown purchase scenario %q", in.Scenario)
	}

	upfront := in.PurchaseAmount
	monthlyPayment := decimal.Zero
	if in.Scenario != model.ScenarioCash {
		upfront = in.PurchaseAmount.Mul(emiDownPayment)
		monthlyPayment = in.PurchaseAmount.Div(decimal.NewFromInt(int64(in.Scenario.Months())))
	}

	bufferRemaining := in.BaseSavings.Sub(upfront)

	bufferTarget := in.PurchaseAmount.Abs()
	if in.AvgMonthlyExpense.IsPositive() {
		bufferTarget = in.AvgMonthlyExpense.Mul(bufferTargetMonths)
	}

	bufferRatio := 0.0
	if bufferTarget.IsPositive() {
		bufferRatio = bufferRemaining.Div(bufferTarget).InexactFloat64()
	}

	score := clampScore(int(math.Round((bufferRatio + 1) * 50)))

	recoveryMonths := 0.0
	if in.AvgMonthlySurplus.IsPositive() {
		recoveryMonths = math.Max(0, upfront.Div(in.AvgMonthlySurplus).InexactFloat64())
	}

	return model.SimulationResult{
		PurchaseAmount:     in.PurchaseAmount,
		Scenario:           in.Scenario,
		AffordabilityScore: score,
		BufferRemaining:    bufferRemaining,
		MonthlyPayment:     monthlyPayment,
		RecoveryMonths:     recoveryMonths,
		Recommendation:     recommendation(score, bufferRemaining),
		GoalImpacts:        goalImpacts(in.Goals, upfront, in.Now),
	}, nil
}

func recommendation(score int, bufferRemaining decimal.Decimal) string {
	buffer := bufferRemaining.StringFixed(0)
	switch {
	case score >= lowImpactScore:
		return fmt.Sprintf("Low impact: this purchase fits comfortably, leaving a buffer of %s.", buffer)
	case score >= watchlistScore:
		return fmt.Sprintf("Watchlist: manageable if needed, but your buffer drops to %s.", buffer)
	default:
		return fmt.Sprintf("High risk: this would strain your finances, leaving %s in reserve. Better to wait.", buffer)
	}
}

// goalImpacts projects the slip of the three active goals with the
// largest remaining gap. The damping factor keeps a one-off hit from
// reading as a month-for-month delay on every goal at once.
func goalImpacts(goals []model.Goal, upfront decimal.Decimal, now time.Time) []model.GoalImpact {
	var active []model.Goal
	for _, g := range goals {
		if g.Status == model.GoalActive {
			active = append(active, g)
		}
	}

	sort.SliceStable(active, func(i, j int) bool {
		return active[i].Gap().GreaterThan(active[j].Gap())
	})
	if len(active) > maxGoalImpacts {
		active = active[:maxGoalImpacts]
	}

	impacts := make([]model.GoalImpact, 0, len(active))
	for _, g := range active {
		impacts = append(impacts, model.GoalImpact{
			GoalID:      g.ID,
			Title:       g.Title,
			DelayMonths: delayMonths(g, upfront, now),
		})
	}
	return impacts
}

func delayMonths(g model.Goal, upfront decimal.Decimal, now time.Time) float64 {
	plan := goalplan.Plan(g, now)
	if plan.Gap.IsZero() {
		return 0
	}

	contribution := g.MonthlyContribution
	if !contribution.IsPositive() {
		contribution = plan.Gap.Div(decimal.NewFromInt(int64(plan.MonthsRemaining)))
	}
	if !contribution.IsPositive() {
		return 0
	}

	delay := upfront.Div(contribution).InexactFloat64() * delayDamping
	return math.Min(maxDelayMonths, math.Max(0, delay))
}

func clampScore(score int) int {
	if score < minScore {
		return minScore
	}
	if score > maxScore {
		return maxScore
	}
	return score
}

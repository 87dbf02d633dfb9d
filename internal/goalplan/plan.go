// Package goalplan turns savings goals into funding plans: required
// monthly contribution, shortfall against the current contribution, an
// attention queue of goals that need a look, and scenario-adjusted
// contribution plans. Planning math is pure; the yaml-backed goal store
// lives alongside it in this package.
package goalplan

import (
	"math"
	"sort"
	"time"

	"github.com/shopspring/decimal"

	"github.com/finpulse-dev/finpulse/internal/fiscal"
	"github.com/finpulse-dev/finpulse/internal/model"
)

// DefaultHorizonMonths is the planning horizon for goals without a
// deadline.
const DefaultHorizonMonths = 12

// Plan computes the funding plan for a single goal at a point in time.
// MonthsRemaining is always at least 1, so the division is safe even
// for past deadlines.
func Plan(g model.Goal, now time.Time) model.GoalPlan {
	months := DefaultHorizonMonths
	if g.Deadline != nil {
		months = fiscal.MonthsUntil(now, *g.Deadline)
	}

	gap := g.Gap()
	required := gap.Div(decimal.NewFromInt(int64(months)))

	shortfall := required.Sub(g.MonthlyContribution)
	if shortfall.IsNegative() {
		shortfall = decimal.Zero
	}

	onTrack := g.MonthlyContribution.Mul(decimal.NewFromInt(int64(months))).GreaterThanOrEqual(gap)

	return model.GoalPlan{
		GoalID:          g.ID,
		Title:           g.Title,
		Priority:        g.Priority,
		MonthsRemaining: months,
		Gap:             gap,
		RequiredMonthly: required,
		Shortfall:       shortfall,
		OnTrack:         onTrack,
	}
}

// AttentionQueue returns the goals that deserve a look: active goals
// that are off track or marked high priority, most urgent first
// (off-track before on-track, then nearest deadline). limit <= 0 means
// no cap.
func AttentionQueue(goals []model.Goal, now time.Time, limit int) []model.GoalPlan {
	var queue []model.GoalPlan
	for _, g := range goals {
		if g.Status != model.GoalActive {
			continue
		}
		plan := Plan(g, now)
		if !plan.OnTrack || g.Priority == model.PriorityHigh {
			queue = append(queue, plan)
		}
	}

	sort.SliceStable(queue, func(i, j int) bool {
		if queue[i].OnTrack != queue[j].OnTrack {
			return !queue[i].OnTrack
		}
		return queue[i].MonthsRemaining < queue[j].MonthsRemaining
	})

	if limit > 0 && len(queue) > limit {
		queue = queue[:limit]
	}
	return queue
}

// Scenario adjusts the contribution assumption in a plan.
type Scenario string

const (
	ScenarioBase  Scenario = "base"  // contribution as-is
	ScenarioBoost Scenario = "boost" // contribution x1.5
	ScenarioLower Scenario = "lower" // contribution x0.7
)

// Multiplier returns the contribution multiplier for the scenario.
func (s Scenario) Multiplier() decimal.Decimal {
	switch s {
	case ScenarioBoost:
		return decimal.NewFromFloat(1.5)
	case ScenarioLower:
		return decimal.NewFromFloat(0.7)
	default:
		return decimal.NewFromInt(1)
	}
}

// ScenarioPlan is one what-if contribution line for a goal.
type ScenarioPlan struct {
	Scenario     Scenario
	Contribution decimal.Decimal // rounded to whole units
	// CompletionMonths is gap / contribution, +Inf when the scenario
	// contribution is zero.
	CompletionMonths float64
}

// ScenarioPlans computes base, boost and lower contribution plans for a
// goal.
func ScenarioPlans(g model.Goal) []ScenarioPlan {
	gap := g.Gap()
	scenarios := []Scenario{ScenarioBase, ScenarioBoost, ScenarioLower}

	plans := make([]ScenarioPlan, 0, len(scenarios))
	for _, sc := range scenarios {
		contribution := g.MonthlyContribution.Mul(sc.Multiplier()).Round(0)

		completion := math.Inf(1)
		if contribution.IsPositive() {
			completion = gap.Div(contribution).InexactFloat64()
		}

		plans = append(plans, ScenarioPlan{
			Scenario:         sc,
			Contribution:     contribution,
			CompletionMonths: completion,
		})
	}
	return plans
}

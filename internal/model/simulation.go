package model

import "github.com/shopspring/decimal"

// PurchaseScenario selects how a simulated purchase is financed.
type PurchaseScenario string

const (
	ScenarioCash  PurchaseScenario = "cash"
	ScenarioEMI6  PurchaseScenario = "emi6"
	ScenarioEMI12 PurchaseScenario = "emi12"
)

// Valid reports whether s is one of the known scenarios.
func (s PurchaseScenario) Valid() bool {
	switch s {
	case ScenarioCash, ScenarioEMI6, ScenarioEMI12:
		return true
	}
	return false
}

// Months returns the payment span. A cash purchase settles in one
// month.
func (s PurchaseScenario) Months() int {
	switch s {
	case ScenarioEMI6:
		return 6
	case ScenarioEMI12:
		return 12
	}
	return 1
}

// GoalImpact is the projected slip of a single goal caused by a
// simulated purchase.
type GoalImpact struct {
	GoalID      string
	Title       string
	DelayMonths float64
}

// SimulationResult is the outcome of an affordability simulation.
type SimulationResult struct {
	PurchaseAmount     decimal.Decimal
	Scenario           PurchaseScenario
	AffordabilityScore int // clamped to [15, 95]
	BufferRemaining    decimal.Decimal
	MonthlyPayment     decimal.Decimal
	RecoveryMonths     float64
	Recommendation     string
	GoalImpacts        []GoalImpact
}

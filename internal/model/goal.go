package model

import (
	"time"

	"github.com/shopspring/decimal"
)

// GoalStatus represents the lifecycle state of a savings goal.
type GoalStatus string

const (
	GoalActive   GoalStatus = "active"
	GoalPaused   GoalStatus = "paused"
	GoalAchieved GoalStatus = "achieved"
)

// Valid reports whether s is one of the known goal statuses.
func (s GoalStatus) Valid() bool {
	switch s {
	case GoalActive, GoalPaused, GoalAchieved:
		return true
	}
	return false
}

// GoalPriority ranks goals for planning. High outranks medium outranks low.
type GoalPriority string

const (
	PriorityHigh   GoalPriority = "high"
	PriorityMedium GoalPriority = "medium"
	PriorityLow    GoalPriority = "low"
)

// Valid reports whether p is one of the known priorities.
func (p GoalPriority) Valid() bool {
	switch p {
	case PriorityHigh, PriorityMedium, PriorityLow:
		return true
	}
	return false
}

// Rank returns a sortable weight, lower = more urgent. Unknown
// priorities sort last.
func (p GoalPriority) Rank() int {
	switch p {
	case PriorityHigh:
		return 0
	case PriorityMedium:
		return 1
	case PriorityLow:
		return 2
	}
	return 3
}

// Goal is a row in goals.yaml. CurrentAmount may exceed TargetAmount
// (overshoot is legal and never clamped); Gap floors at zero instead.
type Goal struct {
	ID                  string          `yaml:"id"`
	Title               string          `yaml:"title"`
	Category            string          `yaml:"category,omitempty"`
	Status              GoalStatus      `yaml:"status"`
	Priority            GoalPriority    `yaml:"priority"`
	TargetAmount        decimal.Decimal `yaml:"target_amount"`
	CurrentAmount       decimal.Decimal `yaml:"current_amount"`
	Deadline            *time.Time      `yaml:"deadline,omitempty"`
	MonthlyContribution decimal.Decimal `yaml:"monthly_contribution"`
	Notes               string          `yaml:"notes,omitempty"`
}

// Gap returns how much is still missing: max(0, target - current).
func (g Goal) Gap() decimal.Decimal {
	gap := g.TargetAmount.Sub(g.CurrentAmount)
	if gap.IsNegative() {
		return decimal.Zero
	}
	return gap
}

// GoalPlan is the planning view of a single goal at a point in time.
type GoalPlan struct {
	GoalID          string
	Title           string
	Priority        GoalPriority
	MonthsRemaining int
	Gap             decimal.Decimal
	RequiredMonthly decimal.Decimal
	Shortfall       decimal.Decimal
	OnTrack         bool
}

package goalplan

import (
	"fmt"

	"github.com/finpulse-dev/finpulse/internal/model"
)

// ValidationError describes a single rule violation on a goal.
type ValidationError struct {
	Rule        int
	GoalID      string
	Description string
}

func (e ValidationError) Error() string {
	return fmt.Sprintf("rule %d [%s]: %s", e.Rule, e.GoalID, e.Description)
}

// ValidateGoals enforces the goal store's row rules.
//
// Rules:
//  1. target_amount is positive
//  2. current_amount is non-negative (overshoot past target is legal)
//  3. monthly_contribution is non-negative
//  4. status is a known goal status
//  5. priority is a known priority
//  6. IDs are unique
func ValidateGoals(goals []model.Goal) []ValidationError {
	var errs []ValidationError

	seen := make(map[string]bool)
	for _, g := range goals {
		if !g.TargetAmount.IsPositive() {
			errs = append(errs, ValidationError{
				Rule:        1,
				GoalID:      g.ID,
				Description: fmt.Sprintf("target amount %s must be positive", g.TargetAmount),
			})
		}

		if g.CurrentAmount.IsNegative() {
			errs = append(errs, ValidationError{
				Rule:        2,
				GoalID:      g.ID,
				Description: fmt.Sprintf("negative current amount %s", g.CurrentAmount),
			})
		}

		if g.MonthlyContribution.IsNegative() {
			errs = append(errs, ValidationError{
				Rule:        3,
				GoalID:      g.ID,
				Description: fmt.Sprintf("negative monthly contribution %s", g.MonthlyContribution),
			})
		}

		if !g.Status.Valid() {
			errs = append(errs, ValidationError{
				Rule:        4,
				GoalID:      g.ID,
				Description: fmt.Sprintf("unknown goal status %q", g.Status),
			})
		}

		if !g.Priority.Valid() {
			errs = append(errs, ValidationError{
				Rule:        5,
				GoalID:      g.ID,
				Description: fmt.Sprintf("unknown priority %q", g.Priority),
			})
		}

		if seen[g.ID] {
			errs = append(errs, ValidationError{
				Rule:        6,
				GoalID:      g.ID,
				Description: "duplicate goal ID",
			})
		}
		seen[g.ID] = true
	}

	return errs
}

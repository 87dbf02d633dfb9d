package commands

import (
	"fmt"
	"math"
	"os"
	"strings"
	"text/tabwriter"
	"time"

	"github.com/spf13/cobra"

	"github.com/finpulse-dev/finpulse/internal/goalplan"
	"github.com/finpulse-dev/finpulse/internal/model"
)

func newPlanCommand() *cobra.Command {
	var limit int

	planCmd := &cobra.Command{
		Use:   "plan",
		Short: "Goal funding plans and attention queue",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			root, err := workspaceDir(cmd)
			if err != nil {
				return err
			}
			cfg, err := loadConfig(root)
			if err != nil {
				return err
			}

			svc, err := goalplan.Load(root)
			if err != nil {
				return err
			}
			goals := svc.Active()
			if len(goals) == 0 {
				fmt.Println("No active goals. Add one with 'finpulse goal add'.")
				return nil
			}

			now := time.Now()
			w := tabwriter.NewWriter(os.Stdout, 0, 4, 2, ' ', 0)
			fmt.Fprintln(w, "TITLE\tPRIORITY\tGAP\tMONTHS\tREQUIRED/MO\tCONTRIBUTION\tSTATUS")
			for _, g := range goals {
				plan := goalplan.Plan(g, now)
				fmt.Fprintf(w, "%s\t%s\t%s\t%d\t%s\t%s\t%s\n",
					plan.Title, plan.Priority, plan.Gap.StringFixed(2), plan.MonthsRemaining,
					plan.RequiredMonthly.StringFixed(2), g.MonthlyContribution.StringFixed(2),
					goalStatus(g, plan))
			}
			if err := w.Flush(); err != nil {
				return err
			}

			if limit == 0 {
				limit = cfg.Planning.AttentionLimit
			}
			queue := goalplan.AttentionQueue(goals, now, limit)
			if len(queue) == 0 {
				fmt.Println("\nEverything is on track.")
				return nil
			}

			fmt.Println("\nNeeds attention:")
			for i, p := range queue {
				line := fmt.Sprintf("%d. %s: needs %s/mo over %d month(s)",
					i+1, p.Title, p.RequiredMonthly.StringFixed(2), p.MonthsRemaining)
				if p.Shortfall.IsPositive() {
					line += fmt.Sprintf(", short %s/mo", p.Shortfall.StringFixed(2))
				} else {
					line += ", on track"
				}
				fmt.Printf("  %s\n", line)
			}
			return nil
		},
	}

	planCmd.Flags().IntVar(&limit, "limit", 0, "attention queue size (default from config)")

	planCmd.AddCommand(newPlanScenariosCommand())

	return planCmd
}

func newPlanScenariosCommand() *cobra.Command {
	return &cobra.Command{
		Use:   "scenarios <goal>",
		Short: "Contribution what-ifs for one goal",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			root, err := workspaceDir(cmd)
			if err != nil {
				return err
			}
			if _, err := loadConfig(root); err != nil {
				return err
			}

			svc, err := goalplan.Load(root)
			if err != nil {
				return err
			}

			g, err := findGoal(svc.All(), args[0])
			if err != nil {
				return err
			}

			fmt.Printf("Contribution scenarios for %q (gap %s):\n", g.Title, g.Gap().StringFixed(2))
			w := tabwriter.NewWriter(os.Stdout, 0, 4, 2, ' ', 0)
			fmt.Fprintln(w, "SCENARIO\tCONTRIBUTION/MO\tMONTHS TO GOAL")
			for _, p := range goalplan.ScenarioPlans(g) {
				fmt.Fprintf(w, "%s\t%s\t%s\n",
					p.Scenario, p.Contribution.StringFixed(0), formatMonths(p.CompletionMonths))
			}
			return w.Flush()
		},
	}
}

// findGoal matches a goal by ID prefix or case-insensitive title
// substring. The match must be unique.
func findGoal(goals []model.Goal, key string) (model.Goal, error) {
	lowered := strings.ToLower(key)

	var matches []model.Goal
	for _, g := range goals {
		if strings.HasPrefix(g.ID, key) || strings.Contains(strings.ToLower(g.Title), lowered) {
			matches = append(matches, g)
		}
	}

	switch len(matches) {
	case 0:
		return model.Goal{}, fmt.Errorf("no goal matching %q", key)
	case 1:
		return matches[0], nil
	default:
		titles := make([]string, len(matches))
		for i, g := range matches {
			titles[i] = g.Title
		}
		return model.Goal{}, fmt.Errorf("%q is ambiguous: %s", key, strings.Join(titles, ", "))
	}
}

func formatMonths(months float64) string {
	if math.IsInf(months, 1) {
		return "never (no contribution)"
	}
	return fmt.Sprintf("%.1f", months)
}

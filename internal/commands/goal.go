package commands

import (
	"fmt"
	"os"
	"text/tabwriter"
	"time"

	"github.com/shopspring/decimal"
	"github.com/spf13/cobra"

	"github.com/finpulse-dev/finpulse/internal/auditlog"
	"github.com/finpulse-dev/finpulse/internal/goalplan"
	"github.com/finpulse-dev/finpulse/internal/highlights"
	"github.com/finpulse-dev/finpulse/internal/logger"
	"github.com/finpulse-dev/finpulse/internal/model"
)

func newGoalCommand() *cobra.Command {
	goalCmd := &cobra.Command{
		Use:   "goal",
		Short: "Savings goals",
	}
	goalCmd.AddCommand(newGoalAddCommand())
	goalCmd.AddCommand(newGoalListCommand())
	return goalCmd
}

func newGoalAddCommand() *cobra.Command {
	var (
		title        string
		category     string
		priority     string
		targetFlag   string
		currentFlag  string
		deadlineFlag string
		contribFlag  string
		notes        string
	)

	cmd := &cobra.Command{
		Use:   "add",
		Short: "Add a savings goal",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			root, err := workspaceDir(cmd)
			if err != nil {
				return err
			}
			if _, err := loadConfig(root); err != nil {
				return err
			}

			target, err := decimal.NewFromString(targetFlag)
			if err != nil {
				return fmt.Errorf("parsing target %q: %w", targetFlag, err)
			}

			current := decimal.Zero
			if currentFlag != "" {
				if current, err = decimal.NewFromString(currentFlag); err != nil {
					return fmt.Errorf("parsing current %q: %w", currentFlag, err)
				}
			}

			contribution := decimal.Zero
			if contribFlag != "" {
				if contribution, err = decimal.NewFromString(contribFlag); err != nil {
					return fmt.Errorf("parsing contribution %q: %w", contribFlag, err)
				}
			}

			params := goalplan.AppendParams{
				Title:               title,
				Category:            category,
				Priority:            model.GoalPriority(priority),
				TargetAmount:        target,
				CurrentAmount:       current,
				MonthlyContribution: contribution,
				Notes:               notes,
			}
			if deadlineFlag != "" {
				when, err := time.Parse(model.DateLayout, deadlineFlag)
				if err != nil {
					return fmt.Errorf("parsing deadline %q: %w", deadlineFlag, err)
				}
				params.Deadline = &when
			}

			svc, err := goalplan.Load(root)
			if err != nil {
				return err
			}
			id, err := svc.Append(params)
			if err != nil {
				return err
			}
			if err := svc.Save(root); err != nil {
				return err
			}

			details := fmt.Sprintf("%s target %s", title, target.StringFixed(2))
			if err := auditlog.Record(root, "cli", "goal_add", details, shortRef(id)); err != nil {
				logger.New().Warn().Err(err).Msg("audit log write failed")
			}

			fmt.Printf("Added goal %q with target %s [%s]\n", title, target.StringFixed(2), shortRef(id))
			return nil
		},
	}

	cmd.Flags().StringVar(&title, "title", "", "goal title (required)")
	_ = cmd.MarkFlagRequired("title")
	cmd.Flags().StringVar(&targetFlag, "target", "", "target amount (required)")
	_ = cmd.MarkFlagRequired("target")
	cmd.Flags().StringVar(&currentFlag, "current", "", "amount already saved")
	cmd.Flags().StringVar(&priority, "priority", "medium", "high, medium or low")
	cmd.Flags().StringVar(&category, "category", "", "goal category, e.g. safety, travel")
	cmd.Flags().StringVar(&deadlineFlag, "deadline", "", "deadline YYYY-MM-DD")
	cmd.Flags().StringVar(&contribFlag, "contribution", "", "current monthly contribution")
	cmd.Flags().StringVar(&notes, "notes", "", "free-form notes")

	return cmd
}

func newGoalListCommand() *cobra.Command {
	var all bool

	cmd := &cobra.Command{
		Use:   "list",
		Short: "List savings goals",
		Args:  cobra.NoArgs,
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

			goals := svc.Active()
			if all {
				goals = svc.All()
			}
			if len(goals) == 0 {
				fmt.Println("No goals. Add one with 'finpulse goal add'.")
				return nil
			}

			now := time.Now()
			w := tabwriter.NewWriter(os.Stdout, 0, 4, 2, ' ', 0)
			fmt.Fprintln(w, "TITLE\tPRIORITY\tTARGET\tSAVED\tGAP\tDUE\tREQUIRED/MO\tSTATUS")
			for _, g := range goals {
				plan := goalplan.Plan(g, now)
				fmt.Fprintf(w, "%s\t%s\t%s\t%s\t%s\t%s\t%s\t%s\n",
					g.Title, g.Priority,
					g.TargetAmount.StringFixed(2), g.CurrentAmount.StringFixed(2), plan.Gap.StringFixed(2),
					highlights.DueStatus(g.Deadline, now),
					plan.RequiredMonthly.StringFixed(2),
					goalStatus(g, plan))
			}
			return w.Flush()
		},
	}

	cmd.Flags().BoolVar(&all, "all", false, "include paused and achieved goals")

	return cmd
}

func goalStatus(g model.Goal, plan model.GoalPlan) string {
	if g.Status != model.GoalActive {
		return string(g.Status)
	}
	if plan.OnTrack {
		return "on track"
	}
	return fmt.Sprintf("short %s/mo", plan.Shortfall.StringFixed(2))
}

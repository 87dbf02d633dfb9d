package commands

import (
	"fmt"
	"os"
	"text/tabwriter"
	"time"

	"github.com/shopspring/decimal"
	"github.com/spf13/cobra"

	"github.com/finpulse-dev/finpulse/internal/goalplan"
	"github.com/finpulse-dev/finpulse/internal/ledger"
	"github.com/finpulse-dev/finpulse/internal/logger"
	"github.com/finpulse-dev/finpulse/internal/whatif"
)

func newWhatifCommand() *cobra.Command {
	var (
		scenarioFlag string
		months       int
	)

	cmd := &cobra.Command{
		Use:   "whatif <amount>",
		Short: "Simulate a purchase against your finances",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			root, err := workspaceDir(cmd)
			if err != nil {
				return err
			}
			if _, err := loadConfig(root); err != nil {
				return err
			}

			amount, err := decimal.NewFromString(args[0])
			if err != nil {
				return fmt.Errorf("parsing amount %q: %w", args[0], err)
			}
			scenario, err := whatif.ParseScenario(scenarioFlag)
			if err != nil {
				return err
			}

			txns, err := ledger.NewService(root).ReadAll()
			if err != nil {
				return err
			}
			result := ledger.Aggregate(txns, ledger.AggregateOptions{DenseFill: true})
			if result.SkippedDates > 0 {
				logger.New().Warn().
					Int("rows", result.SkippedDates).
					Msg("transactions with unparseable dates were skipped")
			}
			stats := ledger.SurplusStats(result.Records)

			var saved decimal.Decimal
			for _, rec := range result.Records {
				saved = saved.Add(rec.Savings)
			}

			goals, err := goalplan.Load(root)
			if err != nil {
				return err
			}

			now := time.Now()
			res, err := whatif.Simulate(whatif.Input{
				PurchaseAmount:    amount,
				Scenario:          scenario,
				BaseSavings:       saved,
				AvgMonthlySurplus: stats.AvgSurplus,
				AvgMonthlyExpense: stats.AvgExpense,
				Goals:             goals.Active(),
				Now:               now,
			})
			if err != nil {
				return err
			}

			fmt.Printf("What-if: spending %s (%s)\n", amount.StringFixed(2), scenario)
			fmt.Printf("  Affordability score  %d/100\n", res.AffordabilityScore)
			fmt.Printf("  Buffer remaining     %s\n", res.BufferRemaining.StringFixed(2))
			if res.MonthlyPayment.IsPositive() {
				fmt.Printf("  Monthly payment      %s over %d months\n",
					res.MonthlyPayment.StringFixed(2), res.Scenario.Months())
			}
			fmt.Printf("  Recovery time        %.1f month(s)\n", res.RecoveryMonths)
			fmt.Println()
			fmt.Printf("  %s\n", res.Recommendation)

			if len(res.GoalImpacts) > 0 {
				fmt.Println("\nGoal impact:")
				w := tabwriter.NewWriter(os.Stdout, 0, 4, 2, ' ', 0)
				for _, impact := range res.GoalImpacts {
					fmt.Fprintf(w, "  %s\t+%.1f month(s)\n", impact.Title, impact.DelayMonths)
				}
				if err := w.Flush(); err != nil {
					return err
				}
			}

			without := whatif.Trajectory(saved, stats.AvgSurplus, months, decimal.Zero)
			with := whatif.Trajectory(saved, stats.AvgSurplus, months, amount)

			fmt.Printf("\nSavings trajectory (%d months):\n", months)
			w := tabwriter.NewWriter(os.Stdout, 0, 4, 2, ' ', 0)
			fmt.Fprintln(w, "MONTH\tWITHOUT\tWITH\tGAP")
			for i := range without {
				fmt.Fprintf(w, "%d\t%s\t%s\t%s\n",
					without[i].Month,
					without[i].Balance.StringFixed(2),
					with[i].Balance.StringFixed(2),
					without[i].Balance.Sub(with[i].Balance).StringFixed(2))
			}
			return w.Flush()
		},
	}

	cmd.Flags().StringVar(&scenarioFlag, "scenario", "cash", "cash, emi6 or emi12")
	cmd.Flags().IntVar(&months, "months", 12, "trajectory span in months")

	return cmd
}

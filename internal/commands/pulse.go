package commands

import (
	"errors"
	"fmt"
	"time"

	"github.com/shopspring/decimal"
	"github.com/spf13/cobra"

	"github.com/finpulse-dev/finpulse/internal/ledger"
	"github.com/finpulse-dev/finpulse/internal/logger"
	"github.com/finpulse-dev/finpulse/internal/pulse"
)

func newPulseCommand() *cobra.Command {
	var months int

	cmd := &cobra.Command{
		Use:   "pulse",
		Short: "Financial pulse score and income rhythm",
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

			txns, err := ledger.NewService(root).ReadAll()
			if err != nil {
				return err
			}

			now := time.Now()
			opts := ledger.AggregateOptions{DenseFill: true}
			if months > 0 {
				first := time.Date(now.Year(), now.Month(), 1, 0, 0, 0, 0, time.UTC)
				opts.Since = first.AddDate(0, -(months - 1), 0)
			}
			result := ledger.Aggregate(txns, opts)
			if result.SkippedDates > 0 {
				logger.New().Warn().
					Int("rows", result.SkippedDates).
					Msg("transactions with unparseable dates were skipped")
			}

			res, err := pulse.Compute(result.Records)
			if errors.Is(err, pulse.ErrNoData) {
				fmt.Println("No transactions yet. Record some with 'finpulse txn add' to see your pulse.")
				return nil
			}
			if err != nil {
				return err
			}

			fmt.Printf("Pulse score: %d/100 (trend: %s)\n", res.Score, res.Trend)
			fmt.Printf("  Stability     %.1f (volatility %.2f)\n", res.StabilityScore, res.Volatility)
			fmt.Printf("  Savings rate  %.1f%%\n", res.SavingsRatePct)
			fmt.Println()

			rhythm, err := pulse.AnalyzeRhythm(result.Records)
			if err != nil {
				return err
			}
			fmt.Printf("Income rhythm: %s over %d month(s)\n", rhythm.Pattern, rhythm.DataPoints)

			var saved decimal.Decimal
			for _, rec := range result.Records {
				saved = saved.Add(rec.Savings)
			}
			plan := pulse.SuggestSavingsPlan(rhythm, saved, cfg.Planning.HorizonMonths)
			fmt.Printf("Savings plan: %s/mo (%.0f%% of average income), reaching %s over %d months [confidence: %s]\n",
				plan.MonthlyAmount.StringFixed(2), plan.RatePct,
				plan.TargetSavings.StringFixed(2), plan.HorizonMonths, plan.Confidence)
			fmt.Println()

			for _, line := range pulse.Insights(res) {
				fmt.Printf("  * %s\n", line)
			}
			return nil
		},
	}

	cmd.Flags().IntVar(&months, "months", 0, "limit to the last N months")

	return cmd
}

package commands

import (
	"fmt"
	"os"
	"text/tabwriter"
	"time"

	"github.com/spf13/cobra"

	"github.com/finpulse-dev/finpulse/internal/forecast"
	"github.com/finpulse-dev/finpulse/internal/ledger"
	"github.com/finpulse-dev/finpulse/internal/logger"
	"github.com/finpulse-dev/finpulse/internal/model"
	"github.com/finpulse-dev/finpulse/internal/pulse"
)

func newForecastCommand() *cobra.Command {
	var months int

	cmd := &cobra.Command{
		Use:   "forecast",
		Short: "Income forecast and emergency-fund sizing",
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

			// Months without any activity are no signal at all, so the
			// history is the active months only, not a dense series.
			result := ledger.Aggregate(txns, ledger.AggregateOptions{})
			if result.SkippedDates > 0 {
				logger.New().Warn().
					Int("rows", result.SkippedDates).
					Msg("transactions with unparseable dates were skipped")
			}
			if len(result.Records) == 0 {
				fmt.Println("No income history yet. Record income with 'finpulse txn add' to see a forecast.")
				return nil
			}

			history := make([]forecast.Point, 0, len(result.Records))
			for _, rec := range result.Records {
				history = append(history, forecast.Point{Date: rec.Month, Amount: rec.Income})
			}

			now := time.Now()
			forecasts := forecast.Income(history, months, now)
			if len(forecasts) > 0 {
				fmt.Printf("Income forecast (%d months, %s confidence):\n", months, forecasts[0].Confidence)
				w := tabwriter.NewWriter(os.Stdout, 0, 4, 2, ' ', 0)
				fmt.Fprintln(w, "MONTH\tPREDICTED")
				for _, f := range forecasts {
					fmt.Fprintf(w, "%s\t%s\n", f.Month.Format(model.DateLayout), f.Predicted.StringFixed(2))
				}
				if err := w.Flush(); err != nil {
					return err
				}
				fmt.Println()
			}

			rhythm, err := pulse.AnalyzeRhythm(result.Records)
			if err != nil {
				return err
			}
			stats := ledger.SurplusStats(result.Records)

			fund := forecast.EmergencyFund(stats.AvgExpense, rhythm.Volatility, cfg.Planning.Dependents)
			fmt.Printf("Emergency fund: %s (%.1f months of expenses)\n",
				fund.RecommendedAmount.StringFixed(2), fund.MonthsCovered)
			fmt.Printf("  %s\n", fund.Reason)
			return nil
		},
	}

	cmd.Flags().IntVar(&months, "months", 3, "forecast horizon in months")

	return cmd
}

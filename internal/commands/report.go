package commands

import (
	"fmt"
	"os"
	"text/tabwriter"
	"time"

	"github.com/shopspring/decimal"
	"github.com/spf13/cobra"

	"github.com/finpulse-dev/finpulse/internal/ledger"
	"github.com/finpulse-dev/finpulse/internal/logger"
)

func newReportCommand() *cobra.Command {
	var (
		months    int
		transfers bool
	)

	cmd := &cobra.Command{
		Use:   "report",
		Short: "Monthly income, expense and savings report",
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
			opts := ledger.AggregateOptions{
				DenseFill:        true,
				IncludeTransfers: transfers,
			}
			if months > 0 {
				first := time.Date(now.Year(), now.Month(), 1, 0, 0, 0, 0, time.UTC)
				opts.Since = first.AddDate(0, -(months - 1), 0)
			}
			if cfg.Budget.MonthlyExpense.IsPositive() {
				opts.BudgetedExpense = &cfg.Budget.MonthlyExpense
			}
			if cfg.Budget.MonthlySavings.IsPositive() {
				opts.TargetSavings = &cfg.Budget.MonthlySavings
			}

			result := ledger.Aggregate(txns, opts)
			if result.SkippedDates > 0 {
				logger.New().Warn().
					Int("rows", result.SkippedDates).
					Msg("transactions with unparseable dates were skipped")
			}
			if len(result.Records) == 0 {
				fmt.Println("No transactions in range.")
				return nil
			}

			w := tabwriter.NewWriter(os.Stdout, 0, 4, 2, ' ', 0)
			header := "MONTH\tINCOME\tEXPENSE\tSAVINGS"
			if opts.BudgetedExpense != nil {
				header += "\tVS BUDGET"
			}
			if opts.TargetSavings != nil {
				header += "\tVS TARGET"
			}
			fmt.Fprintln(w, header)

			for _, rec := range result.Records {
				fmt.Fprintf(w, "%s\t%s\t%s\t%s",
					rec.Label(), rec.Income.StringFixed(2), rec.Expense.StringFixed(2), rec.Savings.StringFixed(2))
				if rec.BudgetedExpense != nil {
					fmt.Fprintf(w, "\t%s", signed(rec.Expense.Sub(*rec.BudgetedExpense)))
				}
				if rec.TargetSavings != nil {
					fmt.Fprintf(w, "\t%s", signed(rec.Savings.Sub(*rec.TargetSavings)))
				}
				fmt.Fprintln(w)
			}
			if err := w.Flush(); err != nil {
				return err
			}

			stats := ledger.SurplusStats(result.Records)
			fmt.Printf("Average over %d month(s): income %s, expense %s, surplus %s\n",
				stats.Months,
				stats.AvgIncome.StringFixed(2), stats.AvgExpense.StringFixed(2), stats.AvgSurplus.StringFixed(2))
			return nil
		},
	}

	cmd.Flags().IntVar(&months, "months", 0, "limit to the last N months")
	cmd.Flags().BoolVar(&transfers, "transfers", false, "count transfers on both sides of the month")

	return cmd
}

// signed renders a delta with an explicit plus sign so over/under reads
// at a glance.
func signed(d decimal.Decimal) string {
	if d.IsPositive() {
		return "+" + d.StringFixed(2)
	}
	return d.StringFixed(2)
}

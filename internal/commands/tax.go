package commands

import (
	"fmt"
	"os"
	"sort"
	"text/tabwriter"
	"time"

	"github.com/shopspring/decimal"
	"github.com/spf13/cobra"

	"github.com/finpulse-dev/finpulse/internal/config"
	"github.com/finpulse-dev/finpulse/internal/fiscal"
	"github.com/finpulse-dev/finpulse/internal/ledger"
	"github.com/finpulse-dev/finpulse/internal/model"
	"github.com/finpulse-dev/finpulse/internal/tax"
)

func newTaxCommand() *cobra.Command {
	var (
		regimeFlag     string
		deductionsFlag string
	)

	taxCmd := &cobra.Command{
		Use:   "tax",
		Short: "Tax estimates and advance-tax planning",
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
			if err := checkFiscalConfig(cfg); err != nil {
				return err
			}
			return runTaxEstimate(root, cfg, regimeFlag, deductionsFlag, time.Now())
		},
	}

	taxCmd.Flags().StringVar(&regimeFlag, "regime", "", "override the configured regime: new, old or hybrid")
	taxCmd.Flags().StringVar(&deductionsFlag, "deductions", "", "override the configured deductions")

	taxCmd.AddCommand(newTaxQuarterlyCommand())
	taxCmd.AddCommand(newTaxMilestonesCommand())
	taxCmd.AddCommand(newTaxGSTCommand())
	taxCmd.AddCommand(newTaxTDSCommand())

	return taxCmd
}

func runTaxEstimate(root string, cfg *config.Config, regimeFlag, deductionsFlag string, now time.Time) error {
	regime := cfg.Tax.Regime
	if regimeFlag != "" {
		parsed, err := tax.ParseRegime(regimeFlag)
		if err != nil {
			return err
		}
		regime = parsed
	}

	deductions := cfg.Tax.Deductions
	if deductionsFlag != "" {
		parsed, err := decimal.NewFromString(deductionsFlag)
		if err != nil {
			return fmt.Errorf("parsing deductions %q: %w", deductionsFlag, err)
		}
		deductions = parsed
	}

	txns, err := ledger.NewService(root).ReadAll()
	if err != nil {
		return err
	}

	fy := fiscal.YearOf(now)
	annual, avgMonthly, activeMonths := projectedAnnualIncome(txns, fy)

	est, err := tax.Estimate(annual, deductions, regime)
	if err != nil {
		return err
	}

	fmt.Printf("FY%s tax estimate (%s regime)\n", fy, regime)
	w := tabwriter.NewWriter(os.Stdout, 0, 4, 2, ' ', 0)
	fmt.Fprintf(w, "  Projected annual income\t%s\t(12 x %s avg over %d month(s))\n",
		annual.StringFixed(2), avgMonthly.StringFixed(2), activeMonths)
	fmt.Fprintf(w, "  Deductions\t%s\t\n", deductions.StringFixed(2))
	fmt.Fprintf(w, "  Taxable income\t%s\t\n", est.TaxableIncome.StringFixed(2))
	fmt.Fprintf(w, "  Slab tax\t%s\t\n", est.GrossTax.StringFixed(2))
	fmt.Fprintf(w, "  Cess (4%%)\t%s\t\n", est.Cess.StringFixed(2))
	fmt.Fprintf(w, "  Total tax\t%s\t\n", est.TotalTax.StringFixed(0))
	fmt.Fprintf(w, "  Effective rate\t%.1f%%\t\n", est.EffectiveRatePct)
	if err := w.Flush(); err != nil {
		return err
	}

	if regime == model.RegimeHybrid {
		fmt.Printf("Hybrid comparison: the %s regime wins.\n", est.Regime)
	}
	return nil
}

func newTaxQuarterlyCommand() *cobra.Command {
	return &cobra.Command{
		Use:   "quarterly",
		Short: "Advance-tax installment estimate for the current quarter",
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
			if err := checkFiscalConfig(cfg); err != nil {
				return err
			}

			txns, err := ledger.NewService(root).ReadAll()
			if err != nil {
				return err
			}

			now := time.Now()
			fy := fiscal.YearOf(now)
			q := fiscal.QuarterOf(now)
			est := tax.EstimateQuarterly(fyTransactions(txns, fy), q)

			fmt.Printf("%s advance-tax estimate (FY%s)\n", q, fy)
			w := tabwriter.NewWriter(os.Stdout, 0, 4, 2, ' ', 0)
			fmt.Fprintf(w, "  Income to date\t%s\n", est.TotalIncome.StringFixed(2))
			fmt.Fprintf(w, "  Business expenses\t%s\n", est.BusinessExpenses.StringFixed(2))
			fmt.Fprintf(w, "  Standard deduction\t%s\n", est.StandardDeduction.StringFixed(2))
			fmt.Fprintf(w, "  Taxable income\t%s\n", est.TaxableIncome.StringFixed(2))
			fmt.Fprintf(w, "  Estimated annual tax\t%s\n", est.EstimatedAnnual.StringFixed(2))
			fmt.Fprintf(w, "  Installment due (%s)\t%s\n", est.Quarter, est.InstallmentDue.StringFixed(2))
			fmt.Fprintf(w, "  Effective rate\t%.1f%%\n", est.EffectiveRatePct)
			if err := w.Flush(); err != nil {
				return err
			}

			printCategories(est.Categories)

			fmt.Println("Suggestions:")
			for _, line := range tax.Suggestions(est) {
				fmt.Printf("  * %s\n", line)
			}
			return nil
		},
	}
}

func newTaxMilestonesCommand() *cobra.Command {
	return &cobra.Command{
		Use:   "milestones",
		Short: "Advance-tax milestones for the financial year",
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
			if err := checkFiscalConfig(cfg); err != nil {
				return err
			}

			txns, err := ledger.NewService(root).ReadAll()
			if err != nil {
				return err
			}

			now := time.Now()
			fy := fiscal.YearOf(now)
			fyTxns := fyTransactions(txns, fy)
			annual := tax.EstimateQuarterly(fyTxns, fiscal.QuarterOf(now)).EstimatedAnnual

			payments := advanceTaxPayments(fyTxns)
			schedule := tax.MilestoneSchedule(fy, annual, payments)
			current := tax.CurrentMilestone(schedule)

			fmt.Printf("Advance-tax milestones FY%s (estimated annual tax %s)\n", fy, annual.StringFixed(2))
			w := tabwriter.NewWriter(os.Stdout, 0, 4, 2, ' ', 0)
			fmt.Fprintln(w, "QUARTER\tDUE\tTARGET\tPAID\tSHORTFALL\t")
			for _, m := range schedule {
				marker := ""
				if m.Quarter == current.Quarter {
					marker = "<- next"
				}
				fmt.Fprintf(w, "Q%d\t%s\t%d%%\t%.1f%%\t%s\t%s\n",
					m.Quarter, m.DueDate.Format(model.DateLayout),
					m.TargetPercent, m.PaidPercent, m.Shortfall(annual).StringFixed(2), marker)
			}
			if err := w.Flush(); err != nil {
				return err
			}

			if len(payments) == 0 {
				fmt.Println("No payments found. Record installments as expenses with category 'advance-tax'.")
			}
			return nil
		},
	}
}

func newTaxGSTCommand() *cobra.Command {
	return &cobra.Command{
		Use:   "gst",
		Short: "GST registration check against projected turnover",
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
			if err := checkFiscalConfig(cfg); err != nil {
				return err
			}

			txns, err := ledger.NewService(root).ReadAll()
			if err != nil {
				return err
			}

			fy := fiscal.YearOf(time.Now())
			turnover, _, _ := projectedAnnualIncome(txns, fy)
			status := tax.CheckGST(turnover)

			fmt.Printf("GST check (FY%s)\n", fy)
			fmt.Printf("  Projected turnover  %s\n", status.Turnover.StringFixed(2))
			fmt.Printf("  Threshold           %s\n", status.Threshold.StringFixed(0))
			fmt.Printf("  %s\n", status.Message)
			return nil
		},
	}
}

func newTaxTDSCommand() *cobra.Command {
	var (
		incomeType string
		amountFlag string
	)

	// A pure calculator: no workspace needed.
	cmd := &cobra.Command{
		Use:   "tds",
		Short: "Tax deducted at source on an income payment",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			amount, err := decimal.NewFromString(amountFlag)
			if err != nil {
				return fmt.Errorf("parsing amount %q: %w", amountFlag, err)
			}

			res := tax.TDS(incomeType, amount)
			fmt.Printf("TDS on %s income of %s:\n", res.IncomeType, res.Gross.StringFixed(2))
			fmt.Printf("  Rate      %.0f%%\n", res.RatePct)
			fmt.Printf("  Deducted  %s\n", res.Deducted.StringFixed(2))
			fmt.Printf("  Net       %s\n", res.Net.StringFixed(2))
			return nil
		},
	}

	cmd.Flags().StringVar(&incomeType, "type", "professional_fees", "income type: professional_fees, freelance, contract or rent")
	cmd.Flags().StringVar(&amountFlag, "amount", "", "gross amount (required)")
	_ = cmd.MarkFlagRequired("amount")

	return cmd
}

// checkFiscalConfig rejects year starts the tax engine cannot honor.
// The estimators assume the April-March Indian financial year.
func checkFiscalConfig(cfg *config.Config) error {
	if cfg.Fiscal.YearStart != "04-01" {
		return fmt.Errorf("fiscal year start %q is not supported (the tax estimators assume 04-01)", cfg.Fiscal.YearStart)
	}
	return nil
}

// fyTransactions filters transactions to those dated within the
// financial year. Rows with unparseable dates are dropped.
func fyTransactions(txns []model.Transaction, fy fiscal.Year) []model.Transaction {
	var out []model.Transaction
	for _, txn := range txns {
		when, err := txn.ParsedDate()
		if err != nil {
			continue
		}
		if when.Before(fy.Start()) || when.After(fy.End()) {
			continue
		}
		out = append(out, txn)
	}
	return out
}

// projectedAnnualIncome projects the year's income as 12 times the
// average monthly income observed so far in the financial year.
func projectedAnnualIncome(txns []model.Transaction, fy fiscal.Year) (annual, avgMonthly decimal.Decimal, months int) {
	result := ledger.Aggregate(txns, ledger.AggregateOptions{
		Since:     fy.Start(),
		Until:     fy.End(),
		DenseFill: true,
	})
	stats := ledger.SurplusStats(result.Records)
	return stats.AvgIncome.Mul(decimal.NewFromInt(12)).Round(2), stats.AvgIncome, stats.Months
}

// advanceTaxPayments buckets expenses recorded with category
// "advance-tax" into the quarter they were paid.
func advanceTaxPayments(txns []model.Transaction) map[fiscal.Quarter]decimal.Decimal {
	payments := make(map[fiscal.Quarter]decimal.Decimal)
	for _, txn := range txns {
		if txn.Type != model.TypeExpense || txn.Category != "advance-tax" {
			continue
		}
		when, err := txn.ParsedDate()
		if err != nil {
			continue
		}
		q := fiscal.QuarterOf(when)
		payments[q] = payments[q].Add(txn.Amount)
	}
	return payments
}

// printCategories lists the non-zero deduction buckets.
func printCategories(categories map[tax.ExpenseCategory]decimal.Decimal) {
	var names []string
	for name, amount := range categories {
		if amount.IsPositive() {
			names = append(names, string(name))
		}
	}
	if len(names) == 0 {
		return
	}
	sort.Strings(names)

	fmt.Println("Deductible expenses:")
	w := tabwriter.NewWriter(os.Stdout, 0, 4, 2, ' ', 0)
	for _, name := range names {
		fmt.Fprintf(w, "  %s\t%s\n", name, categories[tax.ExpenseCategory(name)].StringFixed(2))
	}
	_ = w.Flush()
}

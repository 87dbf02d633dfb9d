package commands

import (
	"fmt"
	"os"
	"sort"
	"strings"
	"text/tabwriter"
	"time"

	"github.com/shopspring/decimal"
	"github.com/spf13/cobra"

	"github.com/finpulse-dev/finpulse/internal/auditlog"
	"github.com/finpulse-dev/finpulse/internal/ledger"
	"github.com/finpulse-dev/finpulse/internal/logger"
	"github.com/finpulse-dev/finpulse/internal/model"
)

func newTxnCommand() *cobra.Command {
	txnCmd := &cobra.Command{
		Use:   "txn",
		Short: "Ledger transactions",
	}
	txnCmd.AddCommand(newTxnAddCommand())
	txnCmd.AddCommand(newTxnListCommand())
	return txnCmd
}

func newTxnAddCommand() *cobra.Command {
	var (
		typeFlag   string
		amountFlag string
		dateFlag   string
		category   string
		statusFlag string
		recurring  bool
		gst        bool
		scheduled  string
		tags       string
		desc       string
	)

	cmd := &cobra.Command{
		Use:   "add",
		Short: "Record a transaction",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			root, err := workspaceDir(cmd)
			if err != nil {
				return err
			}
			if _, err := loadConfig(root); err != nil {
				return err
			}

			typ := model.TransactionType(typeFlag)
			if !typ.Valid() {
				return fmt.Errorf("unknown transaction type %q (want income, expense or transfer)", typeFlag)
			}

			amount, err := decimal.NewFromString(amountFlag)
			if err != nil {
				return fmt.Errorf("parsing amount %q: %w", amountFlag, err)
			}

			if statusFlag != "" && !model.LedgerStatus(statusFlag).Valid() {
				return fmt.Errorf("unknown status %q (want unreconciled, pending or cleared)", statusFlag)
			}

			date := dateFlag
			if date == "" {
				date = time.Now().Format(model.DateLayout)
			}
			if _, err := model.ParseDate(date); err != nil {
				return fmt.Errorf("parsing date %q: %w", date, err)
			}

			params := ledger.AppendParams{
				Type:        typ,
				Amount:      amount,
				Date:        date,
				Category:    category,
				Status:      model.LedgerStatus(statusFlag),
				IsRecurring: recurring,
				GSTEligible: gst,
				Tags:        tags,
				Description: desc,
			}
			if scheduled != "" {
				when, err := time.Parse(model.DateLayout, scheduled)
				if err != nil {
					return fmt.Errorf("parsing scheduled date %q: %w", scheduled, err)
				}
				params.ScheduledFor = &when
			}

			id, err := ledger.NewService(root).Append(params)
			if err != nil {
				return err
			}

			details := fmt.Sprintf("%s %s %s", typ, amount.StringFixed(2), category)
			if err := auditlog.Record(root, "cli", "txn_add", details, shortRef(id)); err != nil {
				logger.New().Warn().Err(err).Msg("audit log write failed")
			}

			fmt.Printf("Recorded %s of %s (%s) on %s [%s]\n",
				typ, amount.StringFixed(2), category, date, shortRef(id))
			return nil
		},
	}

	cmd.Flags().StringVar(&typeFlag, "type", "", "income, expense or transfer (required)")
	_ = cmd.MarkFlagRequired("type")
	cmd.Flags().StringVar(&amountFlag, "amount", "", "amount, e.g. 650.50 (required)")
	_ = cmd.MarkFlagRequired("amount")
	cmd.Flags().StringVar(&dateFlag, "date", "", "transaction date YYYY-MM-DD (default today)")
	cmd.Flags().StringVar(&category, "category", "general", "category, e.g. rent, software, client payment")
	cmd.Flags().StringVar(&statusFlag, "status", "", "unreconciled, pending or cleared")
	cmd.Flags().BoolVar(&recurring, "recurring", false, "mark as recurring")
	cmd.Flags().BoolVar(&gst, "gst", false, "mark as GST eligible")
	cmd.Flags().StringVar(&scheduled, "scheduled", "", "scheduled date YYYY-MM-DD for a future cash event")
	cmd.Flags().StringVar(&tags, "tags", "", "semicolon-separated tags")
	cmd.Flags().StringVar(&desc, "desc", "", "free-form description")

	return cmd
}

func newTxnListCommand() *cobra.Command {
	var (
		month    string
		typeFlag string
	)

	cmd := &cobra.Command{
		Use:   "list",
		Short: "List ledger transactions",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			root, err := workspaceDir(cmd)
			if err != nil {
				return err
			}
			if _, err := loadConfig(root); err != nil {
				return err
			}

			txns, err := ledger.NewService(root).ReadAll()
			if err != nil {
				return err
			}

			var rows []model.Transaction
			for _, txn := range txns {
				if month != "" && !strings.HasPrefix(txn.Date, month) {
					continue
				}
				if typeFlag != "" && txn.Type != model.TransactionType(typeFlag) {
					continue
				}
				rows = append(rows, txn)
			}

			if len(rows) == 0 {
				fmt.Println("No transactions. Record one with 'finpulse txn add'.")
				return nil
			}

			sort.SliceStable(rows, func(i, j int) bool {
				return rows[i].Date < rows[j].Date
			})

			w := tabwriter.NewWriter(os.Stdout, 0, 4, 2, ' ', 0)
			fmt.Fprintln(w, "DATE\tTYPE\tAMOUNT\tCATEGORY\tSTATUS\tDESCRIPTION")
			for _, txn := range rows {
				fmt.Fprintf(w, "%s\t%s\t%s\t%s\t%s\t%s\n",
					txn.Date, txn.Type, txn.Amount.StringFixed(2), txn.Category, txn.Status, txn.Description)
			}
			if err := w.Flush(); err != nil {
				return err
			}

			fmt.Printf("%d transaction(s)\n", len(rows))
			return nil
		},
	}

	cmd.Flags().StringVar(&month, "month", "", "filter by month, e.g. 2025-07")
	cmd.Flags().StringVar(&typeFlag, "type", "", "filter by type: income, expense or transfer")

	return cmd
}

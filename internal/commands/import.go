package commands

import (
	"fmt"
	"os"
	"path/filepath"
	"strings"

	"github.com/spf13/cobra"

	"github.com/finpulse-dev/finpulse/internal/auditlog"
	"github.com/finpulse-dev/finpulse/internal/importer"
	"github.com/finpulse-dev/finpulse/internal/ledger"
	"github.com/finpulse-dev/finpulse/internal/logger"
	"github.com/finpulse-dev/finpulse/internal/model"
	"github.com/finpulse-dev/finpulse/internal/tax"
)

func newImportCommand() *cobra.Command {
	var format string

	cmd := &cobra.Command{
		Use:   "import [file]",
		Short: "Import a bank CSV from import/ into the ledger",
		Long: "Import parses a bank-statement CSV dropped into import/ and records\n" +
			"its rows as ledger transactions. Without a file argument it lists the\n" +
			"files waiting to be ingested.",
		Args: cobra.MaximumNArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			root, err := workspaceDir(cmd)
			if err != nil {
				return err
			}
			if _, err := loadConfig(root); err != nil {
				return err
			}

			if len(args) == 0 {
				return runImportScan(root)
			}
			return runImport(root, args[0], format)
		},
	}

	cmd.Flags().StringVar(&format, "format", "generic", "statement format")

	return cmd
}

func runImportScan(root string) error {
	files, err := importer.Scan(root)
	if err != nil {
		return err
	}
	if len(files) == 0 {
		fmt.Println("No files waiting in import/.")
		return nil
	}

	fmt.Printf("%d file(s) waiting in import/:\n", len(files))
	for _, f := range files {
		fmt.Printf("  %s (%d bytes)\n", f.Name, f.Size)
	}
	fmt.Println("Run 'finpulse import <file>' to ingest one.")
	return nil
}

func runImport(root, fileName, format string) error {
	registry := importer.DefaultRegistry()
	parser := registry.Get(format)
	if parser == nil {
		return fmt.Errorf("unknown statement format %q (have: %s)",
			format, strings.Join(registry.Formats(), ", "))
	}

	path := filepath.Join(root, "import", fileName)
	f, err := os.Open(path)
	if err != nil {
		return fmt.Errorf("opening %s: %w", fileName, err)
	}
	defer f.Close()

	bankTxns, err := parser.Parse(f)
	if err != nil {
		return fmt.Errorf("parsing %s: %w", fileName, err)
	}

	svc := ledger.NewService(root)
	existing, err := svc.ReadAll()
	if err != nil {
		return err
	}
	seen := knownReferences(existing)

	var batch []ledger.AppendParams
	var incomeRows, expenseRows, duplicates int
	for _, b := range bankTxns {
		if seen[b.Reference] {
			duplicates++
			continue
		}

		params := ledger.AppendParams{
			Date:        b.Date.Format(model.DateLayout),
			Description: b.Description,
			Tags:        b.Reference,
		}
		if b.Amount.IsNegative() {
			params.Type = model.TypeExpense
			params.Amount = b.Amount.Abs()
			params.Category = string(tax.Classify(b.Description))
			expenseRows++
		} else {
			params.Type = model.TypeIncome
			params.Amount = b.Amount
			params.Category = "client payment"
			incomeRows++
		}
		batch = append(batch, params)
	}

	if _, err := svc.AppendAll(batch); err != nil {
		return err
	}

	if err := importer.MarkProcessed(root, fileName); err != nil {
		return err
	}

	details := fmt.Sprintf("%d transactions from %s", len(batch), fileName)
	if err := auditlog.Record(root, "cli", "import", details, fileName); err != nil {
		logger.New().Warn().Err(err).Msg("audit log write failed")
	}

	fmt.Printf("Imported %d transaction(s) from %s (%d income, %d expense)\n",
		len(batch), fileName, incomeRows, expenseRows)
	if duplicates > 0 {
		fmt.Printf("Skipped %d duplicate(s) already in the ledger.\n", duplicates)
	}
	return nil
}

// knownReferences collects the bank references already recorded, so a
// re-run of the same statement is a no-op instead of a double entry.
// References ride in the tags column.
func knownReferences(txns []model.Transaction) map[string]bool {
	seen := make(map[string]bool)
	for _, txn := range txns {
		for _, tag := range strings.Split(txn.Tags, ";") {
			if tag != "" {
				seen[tag] = true
			}
		}
	}
	return seen
}

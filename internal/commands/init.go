package commands

import (
	"fmt"
	"os"
	"path/filepath"

	"github.com/spf13/cobra"

	"github.com/finpulse-dev/finpulse/internal/auditlog"
	"github.com/finpulse-dev/finpulse/internal/config"
	"github.com/finpulse-dev/finpulse/internal/goalplan"
)

func newInitCommand() *cobra.Command {
	var name string
	var occupation string

	cmd := &cobra.Command{
		Use:   "init [directory]",
		Short: "Initialize a new finpulse workspace",
		Args:  cobra.MaximumNArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			dir := "."
			if len(args) > 0 {
				dir = args[0]
			}

			absDir, err := filepath.Abs(dir)
			if err != nil {
				return fmt.Errorf("resolving path: %w", err)
			}

			return runInit(absDir, name, occupation)
		},
	}

	cmd.Flags().StringVar(&name, "name", "", "profile name (required)")
	_ = cmd.MarkFlagRequired("name")
	cmd.Flags().StringVar(&occupation, "occupation", "freelancer", "occupation")

	return cmd
}

func runInit(dir, name, occupation string) error {
	// Create directory structure.
	dirs := []string{
		"import",
		filepath.Join("import", "processed"),
		"logs",
	}
	for _, d := range dirs {
		if err := os.MkdirAll(filepath.Join(dir, d), 0o755); err != nil {
			return fmt.Errorf("creating directory %s: %w", d, err)
		}
	}

	// Write finpulse.yaml.
	cfg := config.Default(name, occupation)
	if err := config.Save(filepath.Join(dir, config.FileName), cfg); err != nil {
		return fmt.Errorf("writing config: %w", err)
	}

	// Write an empty goal list. The ledger is created lazily on the
	// first recorded transaction.
	if err := goalplan.NewService(nil).Save(dir); err != nil {
		return fmt.Errorf("writing goals file: %w", err)
	}

	if err := auditlog.Record(dir, "cli", "init", "initialized workspace for "+name, ""); err != nil {
		return fmt.Errorf("writing audit log: %w", err)
	}

	fmt.Printf("Initialized finpulse workspace at %s\n", dir)
	return nil
}

package commands

import (
	"errors"
	"fmt"
	"io/fs"
	"path/filepath"

	"github.com/spf13/cobra"

	"github.com/finpulse-dev/finpulse/internal/buildinfo"
	"github.com/finpulse-dev/finpulse/internal/config"
)

// NewRootCommand creates the root CLI command with all subcommands registered.
func NewRootCommand() *cobra.Command {
	rootCmd := &cobra.Command{
		Use:     "finpulse",
		Short:   "Personal finance pulse and planning for freelancers",
		Version: fmt.Sprintf("%s (commit: %s, built: %s)", buildinfo.Version, buildinfo.Commit, buildinfo.Date),
		CompletionOptions: cobra.CompletionOptions{
			DisableDefaultCmd: true,
		},
		SilenceUsage: true,
	}

	rootCmd.PersistentFlags().String("dir", ".", "workspace directory")

	rootCmd.AddCommand(newInitCommand())
	rootCmd.AddCommand(newTxnCommand())
	rootCmd.AddCommand(newGoalCommand())
	rootCmd.AddCommand(newImportCommand())
	rootCmd.AddCommand(newReportCommand())
	rootCmd.AddCommand(newPulseCommand())
	rootCmd.AddCommand(newTaxCommand())
	rootCmd.AddCommand(newPlanCommand())
	rootCmd.AddCommand(newWhatifCommand())
	rootCmd.AddCommand(newForecastCommand())
	rootCmd.AddCommand(newInboxCommand())

	return rootCmd
}

// workspaceDir resolves the --dir flag to an absolute path.
func workspaceDir(cmd *cobra.Command) (string, error) {
	dir, err := cmd.Flags().GetString("dir")
	if err != nil {
		return "", err
	}
	abs, err := filepath.Abs(dir)
	if err != nil {
		return "", fmt.Errorf("resolving path: %w", err)
	}
	return abs, nil
}

// loadConfig reads the workspace config, mapping a missing file to a
// hint rather than a raw ENOENT.
func loadConfig(root string) (*config.Config, error) {
	cfg, err := config.Load(filepath.Join(root, config.FileName))
	if err != nil {
		if errors.Is(err, fs.ErrNotExist) {
			return nil, fmt.Errorf("%s is not a finpulse workspace (run 'finpulse init' first)", root)
		}
		return nil, err
	}
	return cfg, nil
}

// shortRef trims an ID to the 8-character form used in output and the
// audit log.
func shortRef(id string) string {
	if len(id) > 8 {
		return id[:8]
	}
	return id
}

package commands

import (
	"fmt"
	"os"

	"github.com/charmbracelet/log"
	"github.com/spf13/cobra"

	"github.com/extrato-dev/extrato/internal/buildinfo"
)

// NewRootCommand creates the root CLI command with all subcommands registered.
func NewRootCommand() *cobra.Command {
	var verbose bool
	logger := log.NewWithOptions(os.Stderr, log.Options{ReportTimestamp: false})

	rootCmd := &cobra.Command{
		Use:     "extrato",
		Short:   "Plain-file ledger for Brazilian bank statements and notifications",
		Version: fmt.Sprintf("%s (commit: %s, built: %s)", buildinfo.Version, buildinfo.Commit, buildinfo.Date),
		CompletionOptions: cobra.CompletionOptions{
			DisableDefaultCmd: true,
		},
		SilenceUsage: true,
		PersistentPreRun: func(cmd *cobra.Command, args []string) {
			if verbose {
				logger.SetLevel(log.DebugLevel)
			}
		},
	}

	rootCmd.PersistentFlags().BoolVarP(&verbose, "verbose", "v", false, "enable debug logging")

	rootCmd.AddCommand(newInitCommand())
	rootCmd.AddCommand(newImportCommand(logger))
	rootCmd.AddCommand(newNotifyCommand(logger))
	rootCmd.AddCommand(newSummaryCommand(logger))

	return rootCmd
}

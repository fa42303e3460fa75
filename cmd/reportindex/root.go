package main

import (
	"fmt"
	"os"

	"github.com/spf13/cobra"
)

// NewRootCmd creates the root command for reportindex.
// Running it without a subcommand generates the index with default settings.
func NewRootCmd() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "reportindex",
		Short: "Generate an index page for historical report folders",
		Long: `reportindex scans historical-reports/ for report folders that contain an
index.html, orders them newest first by the timestamp at the end of each
folder name (for example report_Dec_31_2023_23_59), and writes index.html
linking to every report with the latest one marked.

Running reportindex without a subcommand is the same as 'reportindex generate'.`,
		Version:       getVersion(),
		Args:          cobra.NoArgs,
		SilenceUsage:  true,
		SilenceErrors: true,
		RunE:          runGenerateCmd,
	}

	// Global flags that apply to all commands
	cmd.PersistentFlags().BoolP("verbose", "v", false, "Enable verbose logging")

	addGenerateFlags(cmd)

	cmd.AddCommand(NewGenerateCmd())
	cmd.AddCommand(NewListCmd())
	cmd.AddCommand(NewHistoryCmd())
	cmd.AddCommand(NewInitCmd())
	cmd.AddCommand(NewVersionCmd())

	return cmd
}

// Execute runs the root command.
func Execute() {
	if err := NewRootCmd().Execute(); err != nil {
		fmt.Fprintln(os.Stderr, err)
		os.Exit(1)
	}
}

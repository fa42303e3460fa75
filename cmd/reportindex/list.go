package main

import (
	"fmt"

	"github.com/spf13/cobra"

	"github.com/nao1215/reportindex/internal/generator"
	"github.com/nao1215/reportindex/internal/report"
)

// NewListCmd creates the list command.
// It prints the order the index would use without writing anything.
func NewListCmd() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "list",
		Short: "Print report folders in index order",
		Long: `List scans the reports directory and prints the report folders in the
order the index uses, newest first, with the parsed date of each folder.
Nothing is written to disk.

Examples:
  # Preview the order for ./historical-reports
  reportindex list

  # Include the link of every report
  reportindex list --urls`,
		Args: cobra.NoArgs,
		RunE: runListCmd,
	}

	addSourceFlags(cmd)
	cmd.Flags().Bool("urls", false, "Print the link of every report")

	return cmd
}

// runListCmd executes the list command.
func runListCmd(cmd *cobra.Command, _ []string) error {
	cfg, err := buildConfig(cmd)
	if err != nil {
		return err
	}

	if err := cfg.Validate(); err != nil {
		return fmt.Errorf("configuration error: %w", err)
	}

	showURL, err := cmd.Flags().GetBool("urls")
	if err != nil {
		return err
	}

	logger := setupLogger(cfg.Verbose)
	ctx, cancel := signalContext(logger)
	defer cancel()

	index, err := generator.FromConfig(cfg, generator.WithLogger(logger)).Build(ctx)
	if err != nil {
		return err
	}

	_, err = report.NewSimpleWriter(cmd.OutOrStdout(), report.WithShowURL(showURL)).Write(index)
	return err
}

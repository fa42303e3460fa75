package main

import (
	"context"
	"fmt"
	"log/slog"
	"os"
	"os/signal"
	"syscall"

	"github.com/spf13/cobra"

	"github.com/nao1215/reportindex/internal/config"
	"github.com/nao1215/reportindex/internal/database"
	"github.com/nao1215/reportindex/internal/generator"
	applog "github.com/nao1215/reportindex/internal/log"
	"github.com/nao1215/reportindex/internal/model"
	"github.com/nao1215/reportindex/internal/report"
)

// NewGenerateCmd creates the generate command.
func NewGenerateCmd() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "generate",
		Short: "Scan report folders and write the index",
		Long: `Generate scans the reports directory and writes the index.

Every immediate subdirectory that contains index.html is listed. Folder
names ending in _<Mon>_<D>_<YYYY>_<HH>_<MM> are ordered newest first by that
local time; other names are listed after them. The first entry is marked
as the latest report.

Examples:
  # Write ./index.html for ./historical-reports
  reportindex generate

  # Generate for another site root
  reportindex generate -C /srv/www/e2e

  # Write a Markdown table (index.md) instead of the HTML page
  reportindex generate --markdown

  # Print JSON to stdout
  reportindex generate --json -o -

  # Record the generation in the history database
  reportindex generate --history`,
		Args: cobra.NoArgs,
		RunE: runGenerateCmd,
	}

	addGenerateFlags(cmd)

	return cmd
}

// addGenerateFlags registers the flags shared by the root and generate commands.
func addGenerateFlags(cmd *cobra.Command) {
	addSourceFlags(cmd)

	cmd.Flags().StringP("output", "o", config.DefaultOutput,
		"Output file path relative to --dir, or - for stdout")
	cmd.Flags().StringP("title", "t", model.DefaultTitle,
		"Page title and heading")
	cmd.Flags().String("url-prefix", "",
		"Prefix for report links (default: path from the output to the reports directory)")
	cmd.Flags().BoolP("json", "j", false,
		"Output JSON (mutually exclusive with --markdown)")
	cmd.Flags().BoolP("markdown", "m", false,
		"Output Markdown (mutually exclusive with --json)")
	cmd.Flags().Bool("history", false,
		"Record the generation in the history database")
}

// addSourceFlags registers the flags that locate the report folders.
func addSourceFlags(cmd *cobra.Command) {
	cmd.Flags().StringP("dir", "C", config.DefaultRootDir,
		"Root directory holding the reports directory and the output")
	cmd.Flags().StringP("reports-dir", "r", config.DefaultReportsDir,
		"Directory whose subdirectories are report folders, relative to --dir")
	cmd.Flags().Bool("skip-hidden", false,
		"Skip report folders whose names start with a dot")
	cmd.Flags().StringP("config", "c", "",
		"Configuration file path (default: .reportindex in current or home directory)")
}

// runGenerateCmd executes the generate command.
func runGenerateCmd(cmd *cobra.Command, _ []string) error {
	cfg, err := buildConfig(cmd)
	if err != nil {
		return err
	}

	if err := cfg.Validate(); err != nil {
		return fmt.Errorf("configuration error: %w", err)
	}

	logger := setupLogger(cfg.Verbose)
	slog.SetDefault(logger)

	ctx, cancel := signalContext(logger)
	defer cancel()

	return runGenerate(ctx, cmd, cfg, logger)
}

// runGenerate writes the index and prints where it went.
func runGenerate(ctx context.Context, cmd *cobra.Command, cfg *config.Config, logger *slog.Logger) error {
	opts := []generator.Option{
		generator.WithLogger(logger),
		generator.WithVersion(getVersion()),
	}

	if cfg.History {
		db, err := database.Open(cfg.DBDir, database.DefaultOptions())
		if err != nil {
			// The page does not depend on history, so keep going.
			logger.Warn("history disabled: failed to open database", "dir", cfg.DBDir, "error", err)
		} else {
			defer db.Close()
			opts = append(opts, generator.WithHistory(db))
		}
	}

	result, err := generator.FromConfig(cfg, opts...).Run(ctx)
	if err != nil {
		return err
	}

	// Keep stdout clean when it carries the index itself.
	out := cmd.OutOrStdout()
	if result.Output == report.Stdout {
		out = cmd.ErrOrStderr()
	}
	fmt.Fprintf(out, "✅ Generated: %s\n", result.Output)

	return nil
}

// getVerboseFlag retrieves the verbose flag from the command or its parent.
func getVerboseFlag(cmd *cobra.Command) bool {
	verbose, err := cmd.Flags().GetBool("verbose")
	if err != nil {
		verbose, err = cmd.Root().PersistentFlags().GetBool("verbose")
		if err != nil {
			return false
		}
	}
	return verbose
}

// buildConfig creates a Config from the configuration file and cobra flags.
// Flags the user set explicitly override the configuration file.
func buildConfig(cmd *cobra.Command) (*config.Config, error) {
	cfg := config.NewConfig()
	flags := cmd.Flags()

	var err error
	cfg.ConfigFilePath, err = flags.GetString("config")
	if err != nil {
		return nil, err
	}

	// If user explicitly specified a config file path, error if not found.
	// If no path specified, silently use defaults if no file found.
	configPath := config.FindConfigFile(cfg.ConfigFilePath)
	if configPath != "" {
		file, err := config.LoadConfigFile(configPath)
		if err != nil {
			return nil, fmt.Errorf("failed to load config file %s: %w", configPath, err)
		}
		if err := cfg.ApplyFile(file); err != nil {
			return nil, fmt.Errorf("invalid config file %s: %w", configPath, err)
		}
	} else if cfg.ConfigFilePath != "" {
		return nil, fmt.Errorf("configuration file not found: %s", cfg.ConfigFilePath)
	}

	stringFlags := []struct {
		name string
		dst  *string
	}{
		{"dir", &cfg.RootDir},
		{"reports-dir", &cfg.ReportsDir},
		{"output", &cfg.Output},
		{"title", &cfg.Title},
		{"url-prefix", &cfg.URLPrefix},
	}
	for _, f := range stringFlags {
		if flags.Lookup(f.name) == nil || !flags.Changed(f.name) {
			continue
		}
		if *f.dst, err = flags.GetString(f.name); err != nil {
			return nil, err
		}
	}

	boolFlags := []struct {
		name string
		dst  *bool
	}{
		{"skip-hidden", &cfg.SkipHidden},
		{"history", &cfg.History},
	}
	for _, f := range boolFlags {
		if flags.Lookup(f.name) == nil || !flags.Changed(f.name) {
			continue
		}
		if *f.dst, err = flags.GetBool(f.name); err != nil {
			return nil, err
		}
	}

	// A format flag replaces the format from the config file as a whole,
	// so --markdown wins over "format: json" instead of conflicting with it.
	hasFormatFlags := flags.Lookup("json") != nil && flags.Lookup("markdown") != nil
	if hasFormatFlags && (flags.Changed("json") || flags.Changed("markdown")) {
		if cfg.JSONReport, err = flags.GetBool("json"); err != nil {
			return nil, err
		}
		if cfg.MarkdownReport, err = flags.GetBool("markdown"); err != nil {
			return nil, err
		}
	}

	cfg.Verbose = getVerboseFlag(cmd)

	return cfg, nil
}

// setupLogger creates a structured logger based on verbosity setting.
// Report folder names are untrusted, so the handler neutralises control
// characters before they reach the terminal.
func setupLogger(verbose bool) *slog.Logger {
	return applog.NewLogger(os.Stderr, verbose)
}

// signalContext returns a context that is cancelled on SIGINT or SIGTERM.
func signalContext(logger *slog.Logger) (context.Context, context.CancelFunc) {
	ctx, cancel := context.WithCancel(context.Background())

	sigCh := make(chan os.Signal, 1)
	signal.Notify(sigCh, os.Interrupt, syscall.SIGTERM)
	go func() {
		select {
		case <-sigCh:
			logger.Info("received shutdown signal, cancelling...")
			cancel()
		case <-ctx.Done():
		}
	}()

	return ctx, func() {
		signal.Stop(sigCh)
		cancel()
	}
}

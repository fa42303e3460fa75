package main

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"io"
	"os"
	"path/filepath"
	"strings"

	"github.com/dustin/go-humanize"
	"github.com/spf13/cobra"

	"github.com/nao1215/reportindex/internal/database"
)

// noHistoryMessage is printed when nothing has been recorded yet.
const noHistoryMessage = "No generations recorded."

// NewHistoryCmd creates the history command.
// This command lists generations recorded with --history.
func NewHistoryCmd() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "history",
		Short: "List recorded index generations",
		Long: `History lists the generations recorded in the history database, newest first.

Generations are only recorded when 'reportindex generate' runs with --history
or the configuration file sets history: true. The database lives in the XDG
data directory (~/.local/share/reportindex/reportindex.db on Linux) unless
dbDir is configured.

Examples:
  # Show the last 20 generations
  reportindex history

  # Show the last 5 generations as JSON
  reportindex history -n 5 --json`,
		Args: cobra.NoArgs,
		RunE: runHistoryCmd,
	}

	cmd.Flags().IntP("limit", "n", 0,
		"Maximum number of generations to show (default: historyLimit from config, or 20)")
	cmd.Flags().BoolP("json", "j", false, "Output JSON")
	cmd.Flags().StringP("config", "c", "",
		"Configuration file path (default: .reportindex in current or home directory)")

	return cmd
}

// runHistoryCmd executes the history command.
func runHistoryCmd(cmd *cobra.Command, _ []string) error {
	cfg, err := buildConfig(cmd)
	if err != nil {
		return err
	}

	if cmd.Flags().Changed("limit") {
		if cfg.HistoryLimit, err = cmd.Flags().GetInt("limit"); err != nil {
			return err
		}
	}

	if err := cfg.Validate(); err != nil {
		return fmt.Errorf("configuration error: %w", err)
	}

	asJSON, err := cmd.Flags().GetBool("json")
	if err != nil {
		return err
	}

	logger := setupLogger(cfg.Verbose)
	ctx, cancel := signalContext(logger)
	defer cancel()

	records, err := loadHistory(ctx, cfg.DBDir, cfg.HistoryLimit)
	if err != nil {
		return err
	}

	if asJSON {
		return printHistoryJSON(cmd.OutOrStdout(), records)
	}
	printHistory(cmd.OutOrStdout(), records)
	return nil
}

// loadHistory reads up to limit generations from the database in dbDir.
// A missing database means nothing was recorded yet and is not an error.
func loadHistory(ctx context.Context, dbDir string, limit int) ([]database.GenerationRecord, error) {
	if _, err := os.Stat(filepath.Join(dbDir, database.DBFileName)); errors.Is(err, os.ErrNotExist) {
		return nil, nil
	}

	db, err := database.Open(dbDir, database.Options{EnableWAL: true})
	if err != nil {
		return nil, fmt.Errorf("failed to open database: %w", err)
	}
	defer db.Close()

	records, err := db.ListGenerations(ctx, limit)
	if err != nil {
		return nil, err
	}
	return records, nil
}

// printHistory writes generations as an aligned table.
func printHistory(w io.Writer, records []database.GenerationRecord) {
	if len(records) == 0 {
		fmt.Fprintln(w, noHistoryMessage)
		fmt.Fprintln(w, "\nUse 'reportindex generate --history' to record generations.")
		return
	}

	fmt.Fprintf(w, "Generations (%d):\n\n", len(records))
	fmt.Fprintf(w, "  %-6s  %-19s  %-16s  %-8s  %7s  %s\n",
		"ID", "Date", "When", "Format", "Reports", "Latest")
	fmt.Fprintln(w, "  "+strings.Repeat("-", 80))

	for _, rec := range records {
		latest := rec.Latest
		if latest == "" {
			latest = "-"
		}
		fmt.Fprintf(w, "  %-6d  %-19s  %-16s  %-8s  %7d  %s\n",
			rec.ID,
			rec.GeneratedAt.Local().Format("2006-01-02 15:04:05"),
			humanize.Time(rec.GeneratedAt),
			rec.Format,
			rec.ReportCount,
			latest,
		)
	}
}

// printHistoryJSON writes generations as a JSON array.
func printHistoryJSON(w io.Writer, records []database.GenerationRecord) error {
	if records == nil {
		records = []database.GenerationRecord{}
	}

	data, err := json.MarshalIndent(records, "", "  ")
	if err != nil {
		return fmt.Errorf("failed to encode history: %w", err)
	}
	data = append(data, '\n')

	_, err = w.Write(data)
	return err
}

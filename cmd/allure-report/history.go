package main

import (
	"context"
	"encoding/json"
	"fmt"
	"text/tabwriter"

	"github.com/spf13/cobra"

	"github.com/allurefw/report/internal/config"
	"github.com/allurefw/report/internal/history"
)

// NewHistoryCmd creates the history command.
// This command lists past builds recorded in the history database.
func NewHistoryCmd() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "history",
		Short: "List recorded build statistics",
		Long: `History lists the builds recorded in the history database, oldest
first, with their outcome counts.

Builds are recorded by 'allure-report generate' unless --no-history was
given. The same database feeds the trend widget of the report itself.

Examples:
  # List the most recent builds
  allure-report history

  # List more builds
  allure-report history --limit 50

  # Output build history in JSON format
  allure-report history --json`,
		Args: cobra.NoArgs,
		RunE: runHistoryCmd,
	}

	cmd.Flags().IntP("limit", "l", config.DefaultHistoryLimit,
		"Maximum number of builds to list")
	cmd.Flags().String("history-dir", config.XDGDataDir(),
		"Directory holding the build-history database")
	cmd.Flags().BoolP("json", "j", false,
		"Output build history in JSON format")

	return cmd
}

// runHistoryCmd executes the history command.
func runHistoryCmd(cmd *cobra.Command, _ []string) error {
	limit, err := cmd.Flags().GetInt("limit")
	if err != nil {
		return err
	}
	dir, err := cmd.Flags().GetString("history-dir")
	if err != nil {
		return err
	}
	asJSON, err := cmd.Flags().GetBool("json")
	if err != nil {
		return err
	}

	// Never create the database here; an absent one means no builds were
	// recorded yet, which deserves a clear message rather than an empty
	// file on disk.
	store, err := history.Open(dir, history.Options{CreateIfNotExists: false})
	if err != nil {
		return fmt.Errorf("no build history found (run 'allure-report generate' first): %w", err)
	}
	defer store.Close() //nolint:errcheck // Read-only store

	entries, err := store.Trend(context.Background(), limit)
	if err != nil {
		return err
	}

	if asJSON {
		encoder := json.NewEncoder(cmd.OutOrStdout())
		encoder.SetIndent("", "  ")
		return encoder.Encode(entries)
	}

	if len(entries) == 0 {
		fmt.Fprintln(cmd.OutOrStdout(), "No builds recorded.")
		return nil
	}

	w := tabwriter.NewWriter(cmd.OutOrStdout(), 0, 0, 2, ' ', 0)
	fmt.Fprintln(w, "ID\tDATE\tNAME\tTOTAL\tPASSED\tFAILED\tBROKEN\tSKIPPED")
	for _, e := range entries {
		fmt.Fprintf(w, "%d\t%s\t%s\t%d\t%d\t%d\t%d\t%d\n",
			e.ID,
			e.CreatedAt.Format("2006-01-02 15:04"),
			e.Name,
			e.Statistic.Total,
			e.Statistic.Passed,
			e.Statistic.Failed,
			e.Statistic.Broken,
			e.Statistic.Skipped,
		)
	}
	return w.Flush()
}

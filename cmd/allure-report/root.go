// Package main provides the entry point for the allure-report CLI.
package main

import (
	"fmt"
	"os"

	"github.com/spf13/cobra"
)

// NewRootCmd creates the root command for allure-report.
func NewRootCmd() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "allure-report",
		Short: "Build a test report artifact from raw test results",
		Long: `allure-report builds a self-contained test report artifact from one or
more directories of raw test results (Allure 1 XML, JUnit XML).

The artifact is a directory with an entry page, the unpacked plugin
assets, and the aggregated report data files. Past builds are recorded
so the report can show an outcome trend.`,
		Version:       getVersion(),
		SilenceUsage:  true,
		SilenceErrors: true,
	}

	// Global flags that apply to all commands
	cmd.PersistentFlags().BoolP("verbose", "v", false, "Enable verbose logging")

	// Add subcommands
	cmd.AddCommand(NewGenerateCmd())
	cmd.AddCommand(NewHistoryCmd())
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

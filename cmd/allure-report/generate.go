package main

import (
	"context"
	"fmt"
	"log/slog"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/spf13/cobra"

	"github.com/allurefw/report/internal/config"
	"github.com/allurefw/report/internal/generator"
	"github.com/allurefw/report/internal/history"
	"github.com/allurefw/report/internal/log"
	"github.com/allurefw/report/internal/model"
	"github.com/allurefw/report/internal/report"
)

// NewGenerateCmd creates the generate command.
func NewGenerateCmd() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "generate [input-dirs...]",
		Short: "Build a report artifact from result directories",
		Long: `Generate builds a self-contained report artifact from the given input
directories.

Each input directory is probed for every supported result format
(Allure 1 XML testsuite files, JUnit XML files). Missing or empty
directories are valid; the build still produces a complete, empty
report. A plugin whose assets fail to unpack degrades the report
instead of aborting it.

Examples:
  # Build a report from one result directory
  allure-report generate --output allure-report target/results

  # Combine results from several runs
  allure-report generate -o report run1/ run2/ run3/

  # Name the report and print a JSON summary
  allure-report generate -o report --report-name "Nightly" --json results/

  # Use a custom report configuration file
  allure-report generate -o report -c myconfig.yaml results/

Configuration file (.allure-report.yaml) example:
  categories:
    - name: Infrastructure problems
      matchedStatuses: [broken]
      messageRegex: ".*timeout.*"
  environment:
    BRANCH: main
    STAGE: nightly`,
		Args: cobra.ArbitraryArgs,
		RunE: runGenerateCmd,
	}

	// Output flags
	cmd.Flags().StringP("output", "o", "",
		"Output directory for the report artifact (required)")
	cmd.Flags().StringP("report-name", "n", config.DefaultReportName,
		"Report name shown in summaries")
	cmd.Flags().Int("jobs", config.DefaultJobs,
		"Number of plugin asset bundles unpacked concurrently")

	// Configuration file
	cmd.Flags().StringP("config", "c", "",
		"Report configuration file path (default: .allure-report.yaml in current or home directory)")

	// History flags
	cmd.Flags().String("history-dir", config.XDGDataDir(),
		"Directory holding the build-history database")
	cmd.Flags().Int("history-limit", config.DefaultHistoryLimit,
		"Number of past builds the trend widget includes")
	cmd.Flags().Bool("no-history", false,
		"Do not record this build or render the trend widget")

	// Summary flags
	cmd.Flags().BoolP("json", "j", false,
		"Print the build summary as JSON (mutually exclusive with --markdown)")
	cmd.Flags().BoolP("markdown", "m", false,
		"Print the build summary as Markdown (mutually exclusive with --json)")

	return cmd
}

// runGenerateCmd executes the generate command.
func runGenerateCmd(cmd *cobra.Command, args []string) error {
	cfg, err := buildConfig(cmd, args)
	if err != nil {
		return err
	}
	if err := cfg.Validate(); err != nil {
		return fmt.Errorf("configuration error: %w", err)
	}

	// Set up structured logging with build tallying
	logger, handler := log.NewBuildLogger(os.Stderr, getVerboseFlag(cmd))
	slog.SetDefault(logger)

	// Set up context with signal handling for graceful shutdown
	ctx, cancel := context.WithCancel(cmd.Context())
	defer cancel()

	sigCh := make(chan os.Signal, 1)
	signal.Notify(sigCh, os.Interrupt, syscall.SIGTERM)
	defer signal.Stop(sigCh)
	go func() {
		select {
		case <-sigCh:
			logger.Info("received shutdown signal, cancelling...")
			cancel()
		case <-ctx.Done():
		}
	}()

	return runGenerate(ctx, cmd, cfg, logger, handler)
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

// buildConfig creates a Config from cobra command flags.
func buildConfig(cmd *cobra.Command, args []string) (*config.Config, error) {
	cfg := config.NewConfig()

	var err error

	cfg.OutputDir, err = cmd.Flags().GetString("output")
	if err != nil {
		return nil, err
	}

	cfg.ReportName, err = cmd.Flags().GetString("report-name")
	if err != nil {
		return nil, err
	}

	cfg.Jobs, err = cmd.Flags().GetInt("jobs")
	if err != nil {
		return nil, err
	}

	cfg.ReportConfigPath, err = cmd.Flags().GetString("config")
	if err != nil {
		return nil, err
	}

	// Load the report configuration file.
	// If user explicitly specified a config file path, error if not found.
	// If no path specified, silently proceed without one.
	explicitConfigPath := cfg.ReportConfigPath != ""
	configPath := config.FindConfigFile(cfg.ReportConfigPath)

	if configPath != "" {
		cfg.ReportConfig, err = config.LoadConfigFile(configPath)
		if err != nil {
			return nil, fmt.Errorf("failed to load config file %s: %w", configPath, err)
		}
	} else if explicitConfigPath {
		return nil, fmt.Errorf("configuration file not found: %s", cfg.ReportConfigPath)
	}

	cfg.HistoryDir, err = cmd.Flags().GetString("history-dir")
	if err != nil {
		return nil, err
	}

	cfg.HistoryLimit, err = cmd.Flags().GetInt("history-limit")
	if err != nil {
		return nil, err
	}

	noHistory, err := cmd.Flags().GetBool("no-history")
	if err != nil {
		return nil, err
	}
	cfg.SaveHistory = !noHistory

	cfg.JSONSummary, err = cmd.Flags().GetBool("json")
	if err != nil {
		return nil, err
	}

	cfg.MarkdownSummary, err = cmd.Flags().GetBool("markdown")
	if err != nil {
		return nil, err
	}

	cfg.Verbose = getVerboseFlag(cmd)

	// Positional arguments are the input directories.
	cfg.InputDirs = args

	return cfg, nil
}

// runGenerate executes the report build.
func runGenerate(ctx context.Context, cmd *cobra.Command, cfg *config.Config, logger *slog.Logger, handler *log.BuildHandler) error {
	opts := []generator.Option{
		generator.WithLogger(logger),
		generator.WithBuildHandler(handler),
	}

	// Open the history store if recording is enabled. A store that fails
	// to open costs the trend widget, not the build.
	if cfg.SaveHistory {
		store, err := history.Open(cfg.HistoryDir, history.DefaultOptions())
		if err != nil {
			logger.Warn("failed to open history store, trend disabled",
				"dir", cfg.HistoryDir,
				"error", err,
			)
		} else {
			defer store.Close() //nolint:errcheck // Read-mostly store
			opts = append(opts, generator.WithStore(store))
		}
	}

	g, err := generator.New(cfg, opts...)
	if err != nil {
		return err
	}

	fmt.Fprintf(cmd.OutOrStdout(), "Building report into %s...\n", cfg.OutputDir)
	startTime := time.Now()

	data, err := g.Generate(ctx)
	if err != nil {
		return err
	}

	elapsed := time.Since(startTime)
	fmt.Fprintf(cmd.OutOrStdout(), "Report built in %s\n\n", elapsed.Round(time.Millisecond))

	return outputSummary(cmd, cfg, data)
}

// outputSummary prints the build summary to the terminal.
func outputSummary(cmd *cobra.Command, cfg *config.Config, data *model.ReportData) error {
	out := cmd.OutOrStdout()

	if cfg.JSONSummary {
		_, err := report.NewJSONWriter(out, report.WithPrettyPrint()).Write(data)
		return err
	}
	if cfg.MarkdownSummary {
		_, err := report.NewMarkdownWriter(out).Write(data)
		return err
	}

	// Human-readable one-liner (default)
	stat := data.Statistic
	fmt.Fprintf(out, "%s: %d results (%d passed, %d failed, %d broken, %d skipped)\n",
		data.Name, stat.Total, stat.Passed, stat.Failed, stat.Broken, stat.Skipped)
	if len(data.DegradedPlugins) > 0 {
		fmt.Fprintf(out, "Degraded plugins: %v\n", data.DegradedPlugins)
	}
	return nil
}

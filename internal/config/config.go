package config

import (
	"path/filepath"

	"github.com/adrg/xdg"
)

// Default configuration values. These match the behavior of the original
// report generator where applicable.
const (
	// AppName is the application name used for XDG directory paths.
	AppName = "allure-report"

	// DefaultReportName is used when the caller does not name the report.
	DefaultReportName = "Allure Report"

	// DefaultJobs is the number of plugin asset bundles unpacked
	// concurrently. Plugin output directories are disjoint, so parallel
	// unpack is safe; a small limit keeps file-descriptor usage bounded
	// on reports with many plugins.
	DefaultJobs = 4

	// DefaultHistoryLimit is how many past builds the trend widget and
	// the history command show by default.
	DefaultHistoryLimit = 20
)

// Config holds all options for one report build.
// It is populated from CLI flags and passed through the application via
// dependency injection rather than global state.
//
// Design decision: We use a single flat struct instead of nested structs
// because the number of options is manageable, and nesting would add
// complexity without significant benefit.
type Config struct {
	// InputDirs are the directories to probe for result files.
	// Zero inputs is valid: the build still produces an (empty) report.
	InputDirs []string

	// OutputDir is the destination directory for the report artifact.
	// Created if absent; creation failure is the only fatal build error
	// before the processing run.
	OutputDir string

	// ReportName is the human-readable report title shown in summaries.
	ReportName string

	// Jobs is the number of concurrent plugin asset unpacks.
	Jobs int

	// Verbose enables detailed log output using slog.LevelDebug.
	// When false, only info and above are logged.
	Verbose bool

	// ReportConfigPath is the path to the YAML report configuration file.
	// If empty, the tool searches for .allure-report.yaml in the current
	// directory and then in the user's home directory.
	ReportConfigPath string

	// ReportConfig holds defect categories and environment entries loaded
	// from the report configuration file. Nil when no file was found.
	ReportConfig *File

	// HistoryDir is the directory holding the build-history database.
	// Defaults to the XDG data directory. When SaveHistory is false the
	// database is neither opened nor written.
	HistoryDir string

	// SaveHistory controls whether build statistics are persisted for
	// the trend widget and the history command.
	SaveHistory bool

	// HistoryLimit is how many past builds the trend widget includes.
	HistoryLimit int

	// JSONSummary prints the build summary as JSON instead of markdown.
	// Mutually exclusive with MarkdownSummary.
	JSONSummary bool

	// MarkdownSummary prints the build summary as markdown to stdout in
	// addition to the summary.md written into the report.
	MarkdownSummary bool
}

// NewConfig creates a Config with default values.
//
// Design decision: We use a constructor function instead of relying on
// zero values because several defaults are non-zero. This also serves as
// documentation of what the defaults are.
func NewConfig() *Config {
	return &Config{
		ReportName:   DefaultReportName,
		Jobs:         DefaultJobs,
		HistoryDir:   XDGDataDir(),
		SaveHistory:  true,
		HistoryLimit: DefaultHistoryLimit,
	}
}

// XDGDataDir returns the XDG data directory for the report generator.
// On Linux: ~/.local/share/allure-report
// On macOS: ~/Library/Application Support/allure-report
// On Windows: %LOCALAPPDATA%\allure-report
func XDGDataDir() string {
	return filepath.Join(xdg.DataHome, AppName)
}

// XDGConfigDir returns the XDG config directory for the report generator.
func XDGConfigDir() string {
	return filepath.Join(xdg.ConfigHome, AppName)
}

// Validate checks the configuration and returns the first problem found
// as a sentinel error usable with errors.Is.
func (c *Config) Validate() error {
	if c.OutputDir == "" {
		return ErrNoOutput
	}
	if c.Jobs <= 0 {
		return ErrInvalidJobs
	}
	if c.HistoryLimit < 0 {
		return ErrInvalidHistoryLimit
	}
	if c.JSONSummary && c.MarkdownSummary {
		return ErrConflictingSummaryFormats
	}
	return nil
}

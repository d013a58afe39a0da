package config

import "errors"

// Configuration validation errors.
//
// Design decision: We use package-level sentinel errors rather than
// creating new error instances in Validate(). This allows callers to use
// errors.Is() for programmatic error handling while still providing
// human-readable messages.
var (
	// ErrNoOutput is returned when no output directory is specified.
	// Unlike inputs (where an empty set is a valid, empty report), the
	// build has nowhere to write without an output directory.
	ErrNoOutput = errors.New("no output directory specified: use --output")

	// ErrInvalidJobs is returned when the unpack concurrency is not
	// positive. Zero workers would mean no assets are ever unpacked.
	ErrInvalidJobs = errors.New("invalid jobs: must be positive")

	// ErrInvalidHistoryLimit is returned when the history limit is
	// negative. Use 0 to disable the trend widget.
	ErrInvalidHistoryLimit = errors.New("invalid history limit: must be non-negative")

	// ErrConflictingSummaryFormats is returned when both --json and
	// --markdown are specified. Only one summary format can be printed.
	ErrConflictingSummaryFormats = errors.New("conflicting summary formats: --json and --markdown cannot be used together")
)

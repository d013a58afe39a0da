package model

import "strings"

// Status represents the outcome of a single test case.
//
// Design decision: We use iota-based constants rather than string constants
// for efficiency in comparisons and sorting. The String() method provides
// the canonical lower-case form used in report data files.
type Status int

const (
	// StatusUnknown is the fallback for results whose outcome could not be
	// determined from the input file. Unknown results are counted separately
	// so that a malformed input is visible in the statistics rather than
	// silently inflating another bucket.
	StatusUnknown Status = iota

	// StatusPassed indicates the test completed without failure.
	StatusPassed

	// StatusFailed indicates an assertion failure. Failures are expected
	// outcomes of a test (the assertion fired), as opposed to broken tests.
	StatusFailed

	// StatusBroken indicates the test could not run to completion because
	// of an unexpected error (exception in fixture or test code).
	StatusBroken

	// StatusSkipped indicates the test was deliberately not executed
	// (ignored, pending, or canceled by a dependency).
	StatusSkipped
)

// String returns the canonical lower-case name of the status.
func (s Status) String() string {
	switch s {
	case StatusPassed:
		return "passed"
	case StatusFailed:
		return "failed"
	case StatusBroken:
		return "broken"
	case StatusSkipped:
		return "skipped"
	default:
		return "unknown"
	}
}

// MarshalText implements encoding.TextMarshaler so that Status serializes
// as its canonical name in JSON data files.
func (s Status) MarshalText() ([]byte, error) {
	return []byte(s.String()), nil
}

// UnmarshalText implements encoding.TextUnmarshaler.
func (s *Status) UnmarshalText(text []byte) error {
	*s = ParseStatus(string(text))
	return nil
}

// ParseStatus maps a status name from an input file to a Status.
// Matching is case-insensitive and accepts the aliases used by the
// supported input formats (Allure 1.4 uses "pending" and "canceled",
// JUnit reports errors as "error").
//
// Unrecognized names map to StatusUnknown rather than returning an error
// because a single odd status in one result file must not fail the whole
// source (an empty or partially readable source is valid input).
func ParseStatus(name string) Status {
	switch strings.ToLower(strings.TrimSpace(name)) {
	case "passed", "pass", "ok", "success":
		return StatusPassed
	case "failed", "fail", "failure":
		return StatusFailed
	case "broken", "error":
		return StatusBroken
	case "skipped", "skip", "pending", "canceled", "cancelled", "ignored":
		return StatusSkipped
	default:
		return StatusUnknown
	}
}

package model

import "time"

// Label attaches a named piece of metadata to a test result.
// Labels drive grouping aggregations: the behaviors view groups by
// "feature"/"story" labels, the packages view by "package".
type Label struct {
	// Name identifies the label kind ("feature", "story", "package", ...).
	Name string `json:"name"`

	// Value is the label payload.
	Value string `json:"value"`
}

// Failure carries the diagnostic detail of a failed or broken test.
type Failure struct {
	// Message is the short failure message, typically the assertion text
	// or the exception message.
	Message string `json:"message,omitempty"`

	// Trace is the full stack trace or system-err output, when the input
	// format provides one.
	Trace string `json:"trace,omitempty"`
}

// TestResult is the normalized view of one executed test case.
// Every format adapter produces this shape regardless of the input file
// layout, so downstream aggregation is format-agnostic.
type TestResult struct {
	// Name is the short test name as reported by the framework.
	Name string `json:"name"`

	// FullName is the fully qualified name (suite plus test name) used to
	// correlate the same test across builds.
	FullName string `json:"full_name"`

	// Status is the normalized test outcome.
	Status Status `json:"status"`

	// Start is when the test began, when the input format records it.
	Start time.Time `json:"start,omitempty"`

	// Duration is how long the test ran. Zero when the format does not
	// record timing.
	Duration time.Duration `json:"duration"`

	// Failure holds diagnostic detail for failed and broken tests.
	Failure *Failure `json:"failure,omitempty"`

	// Labels carries grouping metadata (feature, story, package).
	Labels []Label `json:"labels,omitempty"`
}

// Label returns the value of the first label with the given name,
// and whether such a label exists.
func (r *TestResult) Label(name string) (string, bool) {
	for _, l := range r.Labels {
		if l.Name == name {
			return l.Value, true
		}
	}
	return "", false
}

package model

import "time"

// SourceInfo describes one result source that contributed to a build:
// which directory it came from, which format adapter read it, and how
// many results it yielded. Empty sources are recorded too, so the report
// shows that a directory was probed even when nothing was found.
type SourceInfo struct {
	// Path is the input directory the source was discovered under.
	Path string `json:"path"`

	// Format is the adapter's format identity ("allure1", "junit").
	Format string `json:"format"`

	// ResultCount is the number of results the source yielded.
	ResultCount int `json:"result_count"`
}

// ReportData accumulates everything the processing run derives from the
// discovered result sources. It is created fresh per build, filled in by
// the pipeline stages in order, and discarded when the build returns.
//
// Design decision: We use a single mutable accumulator passed through the
// pipeline rather than having each stage return values, mirroring how
// stages compose: later stages (widgets, history trend) read what earlier
// stages (collect) produced.
type ReportData struct {
	// Name is the report name shown in summaries, from configuration.
	Name string `json:"name"`

	// GeneratedAt is when the build started.
	GeneratedAt time.Time `json:"generated_at"`

	// Results holds every normalized test result from all sources,
	// in source order.
	Results []TestResult `json:"results"`

	// Sources describes where the results came from.
	Sources []SourceInfo `json:"sources"`

	// Statistic is the outcome summary over Results.
	Statistic Statistic `json:"statistic"`

	// Widgets maps widget name to the aggregated payload written to
	// data/<name>.json. Populated by the aggregate stage.
	Widgets map[string]any `json:"-"`

	// DegradedPlugins lists plugins whose static assets could not be
	// unpacked. The build still succeeds; the summary surfaces these.
	DegradedPlugins []string `json:"degraded_plugins,omitempty"`
}

// NewReportData creates an empty accumulator for one build.
func NewReportData(name string) *ReportData {
	return &ReportData{
		Name:        name,
		GeneratedAt: time.Now(),
		Widgets:     make(map[string]any),
	}
}

// AddResult appends a result and folds it into the statistic.
func (d *ReportData) AddResult(r TestResult) {
	d.Results = append(d.Results, r)
	d.Statistic.Update(r.Status)
}

// SetWidget stores an aggregated widget payload under the given name.
// A later aggregator with the same widget name overwrites the earlier one.
func (d *ReportData) SetWidget(name string, payload any) {
	d.Widgets[name] = payload
}

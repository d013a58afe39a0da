package pipeline

import (
	"context"
	"fmt"
	"log/slog"

	"github.com/allurefw/report/internal/model"
	"github.com/allurefw/report/internal/plugin"
)

// CollectStage drains every result source in the graph into the report
// data. Empty sources are recorded with a zero count; they are valid.
type CollectStage struct {
	graph  *plugin.ServiceGraph
	logger *slog.Logger
}

// NewCollectStage creates the result collection stage.
func NewCollectStage(graph *plugin.ServiceGraph, logger *slog.Logger) *CollectStage {
	if logger == nil {
		logger = slog.Default()
	}
	return &CollectStage{graph: graph, logger: logger}
}

// Name returns the stage name.
func (s *CollectStage) Name() string {
	return "collect"
}

// Do executes the collection stage.
func (s *CollectStage) Do(ctx context.Context, data *model.ReportData) error {
	for _, src := range s.graph.Sources() {
		results, err := src.Results(ctx)
		if err != nil {
			// Sources degrade internally; an error here is a hard read
			// failure worth surfacing, but other sources still count.
			s.logger.Warn("result source failed",
				"path", src.Path(),
				"format", src.Format(),
				"error", err,
			)
			continue
		}

		data.Sources = append(data.Sources, model.SourceInfo{
			Path:        src.Path(),
			Format:      src.Format(),
			ResultCount: len(results),
		})
		for _, r := range results {
			data.AddResult(r)
		}

		s.logger.Debug("source collected",
			"path", src.Path(),
			"format", src.Format(),
			"results", len(results),
		)
	}

	s.logger.Info("results collected",
		"sources", len(data.Sources),
		"results", len(data.Results),
	)
	return nil
}

// RecordStage persists the build through every Recorder in the graph.
// It runs before aggregation so trend-style widgets include the current
// build.
type RecordStage struct {
	graph  *plugin.ServiceGraph
	logger *slog.Logger
}

// NewRecordStage creates the history recording stage.
func NewRecordStage(graph *plugin.ServiceGraph, logger *slog.Logger) *RecordStage {
	if logger == nil {
		logger = slog.Default()
	}
	return &RecordStage{graph: graph, logger: logger}
}

// Name returns the stage name.
func (s *RecordStage) Name() string {
	return "record"
}

// Do executes the recording stage. A failing recorder is logged and the
// remaining recorders still run: losing one build's history row must not
// degrade the report itself.
func (s *RecordStage) Do(ctx context.Context, data *model.ReportData) error {
	for _, rec := range s.graph.Recorders() {
		if err := rec.Record(ctx, data); err != nil {
			s.logger.Warn("build recording failed", "error", err)
		}
	}
	return nil
}

// AggregateStage asks every Aggregator in the graph for its widget.
// A failing aggregator degrades its own widget only.
type AggregateStage struct {
	graph  *plugin.ServiceGraph
	logger *slog.Logger
}

// NewAggregateStage creates the widget aggregation stage.
func NewAggregateStage(graph *plugin.ServiceGraph, logger *slog.Logger) *AggregateStage {
	if logger == nil {
		logger = slog.Default()
	}
	return &AggregateStage{graph: graph, logger: logger}
}

// Name returns the stage name.
func (s *AggregateStage) Name() string {
	return "aggregate"
}

// Do executes the aggregation stage.
func (s *AggregateStage) Do(ctx context.Context, data *model.ReportData) error {
	for _, agg := range s.graph.Aggregators() {
		payload, err := agg.Aggregate(ctx, data)
		if err != nil {
			s.logger.Warn("widget aggregation failed",
				"widget", agg.WidgetName(),
				"error", err,
			)
			continue
		}
		data.SetWidget(agg.WidgetName(), payload)
	}

	s.logger.Info("widgets aggregated", "count", len(data.Widgets))
	return nil
}

// WriteStage persists the normalized results and every widget through
// the graph's data writers.
type WriteStage struct {
	graph     *plugin.ServiceGraph
	outputDir string
	logger    *slog.Logger
}

// NewWriteStage creates the data writing stage.
func NewWriteStage(graph *plugin.ServiceGraph, outputDir string, logger *slog.Logger) *WriteStage {
	if logger == nil {
		logger = slog.Default()
	}
	return &WriteStage{graph: graph, outputDir: outputDir, logger: logger}
}

// Name returns the stage name.
func (s *WriteStage) Name() string {
	return "write"
}

// Do executes the write stage. Each payload write is independent: a
// failed widget file is logged and the rest are still written.
func (s *WriteStage) Do(_ context.Context, data *model.ReportData) error {
	writers := s.graph.DataWriters()
	if len(writers) == 0 {
		return fmt.Errorf("service graph has no data writer")
	}

	for _, w := range writers {
		if err := w.WriteData(s.outputDir, "results", data.Results); err != nil {
			s.logger.Warn("failed to write results data", "error", err)
		}
		for name, payload := range data.Widgets {
			if err := w.WriteData(s.outputDir, name, payload); err != nil {
				s.logger.Warn("failed to write widget data",
					"widget", name,
					"error", err,
				)
			}
		}
	}
	return nil
}

// DefaultRun assembles the standard processing run over a service graph:
// collect, record, aggregate, write.
func DefaultRun(graph *plugin.ServiceGraph, outputDir string, logger *slog.Logger) *Run {
	r := New(
		WithLogger(logger),
		WithContinueOnError(true),
	)
	r.AddStages(
		NewCollectStage(graph, logger),
		NewRecordStage(graph, logger),
		NewAggregateStage(graph, logger),
		NewWriteStage(graph, outputDir, logger),
	)
	return r
}

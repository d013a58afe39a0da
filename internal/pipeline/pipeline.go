package pipeline

import (
	"context"
	"log/slog"

	"github.com/allurefw/report/internal/model"
)

// Stage defines the interface all processing stages implement.
// Stages are executed in sequence, each receiving the report data
// accumulated by previous stages.
type Stage interface {
	// Do executes the stage. It receives the context for cancellation
	// and the report data to read and extend. Returning an error fails
	// the stage; whether the run continues depends on its configuration.
	Do(ctx context.Context, data *model.ReportData) error

	// Name returns the stage's name for logging purposes.
	Name() string
}

// Run orchestrates the execution of multiple stages.
type Run struct {
	// stages contains the ordered list of stages to execute.
	stages []Stage

	// logger is used for structured logging during execution.
	logger *slog.Logger

	// continueOnError determines whether to continue executing stages
	// after one fails. The report build sets this: a broken widget must
	// not suppress the remaining data files.
	continueOnError bool
}

// Option is a function that configures a Run.
type Option func(*Run)

// WithLogger sets a custom logger for the run.
func WithLogger(logger *slog.Logger) Option {
	return func(r *Run) {
		r.logger = logger
	}
}

// WithContinueOnError configures the run to keep executing stages after
// one fails. Failed stages are logged; later stages still execute.
func WithContinueOnError(continueOnError bool) Option {
	return func(r *Run) {
		r.continueOnError = continueOnError
	}
}

// New creates an empty Run with the given options.
// Stages are added with AddStage / AddStages.
func New(opts ...Option) *Run {
	r := &Run{stages: make([]Stage, 0)}

	for _, opt := range opts {
		opt(r)
	}

	if r.logger == nil {
		r.logger = slog.Default()
	}

	return r
}

// AddStage appends a stage to the run.
func (r *Run) AddStage(stage Stage) {
	r.stages = append(r.stages, stage)
}

// AddStages appends multiple stages in order.
func (r *Run) AddStages(stages ...Stage) {
	r.stages = append(r.stages, stages...)
}

// StageCount returns the number of stages in the run.
func (r *Run) StageCount() int {
	return len(r.stages)
}

// StageNames returns the stage names in execution order.
func (r *Run) StageNames() []string {
	names := make([]string, len(r.stages))
	for i, stage := range r.stages {
		names[i] = stage.Name()
	}
	return names
}

// Execute runs all stages in sequence, checking for cancellation between
// stages. It returns the first stage error when continueOnError is
// false, or nil after all stages ran (failures logged) when true.
func (r *Run) Execute(ctx context.Context, data *model.ReportData) error {
	for _, stage := range r.stages {
		select {
		case <-ctx.Done():
			r.logger.Warn("processing run cancelled",
				"stage", stage.Name(),
				"reason", ctx.Err(),
			)
			return ctx.Err()
		default:
		}

		r.logger.Debug("executing stage", "stage", stage.Name())

		if err := stage.Do(ctx, data); err != nil {
			r.logger.Error("stage failed",
				"stage", stage.Name(),
				"error", err,
			)
			if !r.continueOnError {
				return err
			}
			continue
		}

		r.logger.Debug("stage completed", "stage", stage.Name())
	}

	return nil
}

package resultsource

import (
	"context"
	"log/slog"
	"sync"

	"github.com/allurefw/report/internal/model"
)

// Source is the normalized view of test results discovered under one
// input directory in one recognized format.
type Source interface {
	// Path returns the input directory this source probes.
	Path() string

	// Format returns the format identity ("allure1", "junit").
	Format() string

	// Results returns the normalized results found under the directory.
	// The first call scans the filesystem; later calls return the cached
	// slice. An empty slice with a nil error means nothing was found,
	// which is a valid outcome.
	Results(ctx context.Context) ([]model.TestResult, error)
}

// Discover constructs one Source per (input directory x supported format)
// pair. The format adapters are fixed and applied unconditionally to every
// directory; probing is deferred until Results is called.
func Discover(inputs []string, logger *slog.Logger) []Source {
	if logger == nil {
		logger = slog.Default()
	}

	sources := make([]Source, 0, 2*len(inputs))
	for _, dir := range inputs {
		sources = append(sources,
			NewAllure1Source(dir, WithLogger(logger)),
			NewJUnitSource(dir, WithLogger(logger)),
		)
	}
	return sources
}

// Option configures a source adapter.
type Option func(*baseSource)

// WithLogger sets a custom logger for the adapter.
func WithLogger(logger *slog.Logger) Option {
	return func(b *baseSource) {
		b.logger = logger
	}
}

// baseSource carries the state shared by all format adapters: the probed
// directory, lazy single-flight scanning, and the result cache.
type baseSource struct {
	dir    string
	logger *slog.Logger

	once    sync.Once
	results []model.TestResult
}

func initBaseSource(b *baseSource, dir string, opts ...Option) {
	b.dir = dir
	b.logger = slog.Default()
	for _, opt := range opts {
		opt(b)
	}
}

// Path implements Source.
func (b *baseSource) Path() string {
	return b.dir
}

// load runs scan exactly once and caches its output. Scan implementations
// never fail the source: unreadable directories and malformed files
// degrade to fewer results, logged by the adapter.
func (b *baseSource) load(ctx context.Context, scan func(ctx context.Context) []model.TestResult) []model.TestResult {
	b.once.Do(func() {
		b.results = scan(ctx)
	})
	return b.results
}

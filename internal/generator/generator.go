package generator

import (
	"context"
	"log/slog"
	"os"
	"path/filepath"
	"sort"

	"github.com/allurefw/report/internal/assets"
	"github.com/allurefw/report/internal/config"
	"github.com/allurefw/report/internal/history"
	"github.com/allurefw/report/internal/log"
	"github.com/allurefw/report/internal/model"
	"github.com/allurefw/report/internal/pipeline"
	"github.com/allurefw/report/internal/plugin"
	"github.com/allurefw/report/internal/render"
	"github.com/allurefw/report/internal/report"
	"github.com/allurefw/report/internal/resultsource"
)

// IndexFileName is the entry page file name inside the output root.
const IndexFileName = "index.html"

// PluginsDirName is the plugin asset directory inside the output root.
const PluginsDirName = "plugins"

// Generator builds one report artifact per Generate call.
type Generator struct {
	cfg      *config.Config
	unpacker *assets.Unpacker
	renderer *render.IndexRenderer
	store    *history.Store
	handler  *log.BuildHandler
	logger   *slog.Logger
}

// Option configures a Generator.
type Option func(*Generator)

// WithLogger sets a custom logger.
func WithLogger(logger *slog.Logger) Option {
	return func(g *Generator) {
		g.logger = logger
	}
}

// WithUnpacker sets the asset unpacker. Tests use this to substitute a
// bundle; the default unpacks the embedded one.
func WithUnpacker(u *assets.Unpacker) Option {
	return func(g *Generator) {
		g.unpacker = u
	}
}

// WithStore sets the build-history store. When nil (the default) the
// build records no history and the report carries no trend widget.
func WithStore(store *history.Store) Option {
	return func(g *Generator) {
		g.store = store
	}
}

// WithBuildHandler attaches the log handler whose per-plugin failure
// counts feed the degraded-plugin list of the build summary.
func WithBuildHandler(h *log.BuildHandler) Option {
	return func(g *Generator) {
		g.handler = h
	}
}

// New creates a Generator for the given configuration.
func New(cfg *config.Config, opts ...Option) (*Generator, error) {
	renderer, err := render.NewIndexRenderer()
	if err != nil {
		return nil, err
	}

	g := &Generator{
		cfg:      cfg,
		renderer: renderer,
		logger:   slog.Default(),
	}
	for _, opt := range opts {
		opt(g)
	}
	if g.unpacker == nil {
		g.unpacker = assets.NewUnpacker(assets.WithLogger(g.logger))
	}
	return g, nil
}

// Generate runs one full report build into cfg.OutputDir and returns the
// report data the processing run accumulated. The returned data is valid
// whenever the error is nil, including degraded builds; the error is
// non-nil only for the output root creation failure or a cancelled
// context.
func (g *Generator) Generate(ctx context.Context) (*model.ReportData, error) {
	if err := os.MkdirAll(g.cfg.OutputDir, 0750); err != nil {
		return nil, &DirectoryCreationError{Path: g.cfg.OutputDir, Err: err}
	}

	sources := resultsource.Discover(g.cfg.InputDirs, g.logger)

	catalogue := plugin.DefaultCatalogue(g.cfg, g.store)
	for _, problem := range catalogue.Validate() {
		g.logger.Warn("contributor catalogue problem", "problem", problem)
	}

	// The active set is fixed here, before rendering and unpacking: the
	// entry page must list every active plugin even when its assets later
	// fail to unpack.
	active := catalogue.ActiveNames()
	g.logger.Info("report build started",
		"output", g.cfg.OutputDir,
		"inputs", len(g.cfg.InputDirs),
		"plugins", len(active),
	)

	g.renderIndex(active)

	degraded := g.unpacker.UnpackAll(ctx, active,
		filepath.Join(g.cfg.OutputDir, PluginsDirName), g.cfg.Jobs)

	graph := plugin.NewServiceGraph(sources, catalogue.Modules(), catalogue.Plugins())

	data := model.NewReportData(g.cfg.ReportName)
	run := pipeline.DefaultRun(graph, g.cfg.OutputDir, g.logger)
	if err := run.Execute(ctx, data); err != nil {
		return nil, err
	}

	data.DegradedPlugins = g.degradedPlugins(degraded)

	// The summary is part of the artifact; losing it degrades the build
	// like any other optional output.
	if err := report.WriteSummaryFile(g.cfg.OutputDir, data); err != nil {
		g.logger.Warn("failed to write summary file", "error", err)
	}

	g.logger.Info("report build finished",
		"results", len(data.Results),
		"widgets", len(data.Widgets),
		"degraded", len(data.DegradedPlugins),
	)
	return data, nil
}

// renderIndex writes the entry page. A render or write failure degrades
// the artifact (the data files remain usable) and is logged, not raised.
func (g *Generator) renderIndex(active []string) {
	page, err := g.renderer.Render(active)
	if err != nil {
		g.logger.Error("failed to render entry page", "error", err)
		return
	}

	path := filepath.Join(g.cfg.OutputDir, IndexFileName)
	if err := os.WriteFile(path, page, 0600); err != nil {
		g.logger.Error("failed to write entry page", "error", err)
	}
}

// degradedPlugins merges the unpack failures with the per-plugin
// failures the log handler observed, de-duplicated and sorted.
func (g *Generator) degradedPlugins(unpackFailures []string) []string {
	seen := make(map[string]struct{}, len(unpackFailures))
	for _, name := range unpackFailures {
		seen[name] = struct{}{}
	}
	if g.handler != nil {
		for _, name := range g.handler.DegradedPlugins() {
			seen[name] = struct{}{}
		}
	}
	if len(seen) == 0 {
		return nil
	}

	names := make([]string, 0, len(seen))
	for name := range seen {
		names = append(names, name)
	}
	sort.Strings(names)
	return names
}

package plugin

import (
	"context"

	"github.com/allurefw/report/internal/model"
)

// Plugin is a named, self-contained extension unit.
//
// The name doubles as the asset namespace prefix ("allure"+name+"/" in
// the embedded bundle) and the output subdirectory (plugins/<name>/), so
// plugin names must be unique and no name may be a prefix of another
// name. The builtin catalogue satisfies this by construction.
type Plugin interface {
	// Name returns the unique plugin name.
	Name() string

	// HasStaticContent reports whether the plugin ships a static asset
	// bundle to unpack into the output tree.
	HasStaticContent() bool
}

// Module is a non-plugin contributor to the service graph: configuration,
// output writing, computed aggregates. Modules have no static assets and
// never appear on the entry page.
type Module interface {
	// ModuleName identifies the module in logs only.
	ModuleName() string
}

// Aggregator is the capability of deriving a named widget from the
// collected results. Both plugins and modules may implement it.
type Aggregator interface {
	// WidgetName is the widget file name (data/<name>.json).
	WidgetName() string

	// Aggregate derives the widget payload from the collected results.
	// An error degrades that one widget; the processing run continues.
	Aggregate(ctx context.Context, data *model.ReportData) (any, error)
}

// DataWriter is the capability of persisting named payloads into the
// output tree. The write stage uses the graph's data writers for every
// widget, so swapping the serialization format is a module change.
type DataWriter interface {
	// WriteData writes one named payload under the output directory.
	WriteData(outputDir, name string, payload any) error
}

// Recorder is the capability of persisting per-build data outside the
// output tree, such as the build-history store.
type Recorder interface {
	// Record persists data derived from the finished collection.
	Record(ctx context.Context, data *model.ReportData) error
}

package plugin

import (
	"github.com/allurefw/report/internal/config"
	"github.com/allurefw/report/internal/history"
)

// basePlugin carries the two attributes every plugin exposes. Concrete
// plugins embed it and add capabilities.
type basePlugin struct {
	name   string
	static bool
}

// Name implements Plugin.
func (p basePlugin) Name() string { return p.name }

// HasStaticContent implements Plugin.
func (p basePlugin) HasStaticContent() bool { return p.static }

// DefaultCatalogue returns the fixed contributor catalogue for one build.
//
// The plugin order matches the original generator's face plugin list; the
// active-name set derived from it is sorted, so order only matters for
// aggregation (later widgets of the same name would win, which the
// builtin set never does).
//
// store may be nil, in which case the history module is omitted and the
// report carries no trend widget.
func DefaultCatalogue(cfg *config.Config, store *history.Store) *Catalogue {
	plugins := []Plugin{
		NewOpenSansFontPlugin(),
		NewDefectsPlugin(cfg),
		NewXUnitPlugin(),
		NewBehaviorsPlugin(),
		NewPackagesPlugin(),
		NewTimelinePlugin(),
		NewGraphPlugin(),
		NewIssuePlugin(),
		NewTmsPlugin(),
	}

	modules := []Module{
		NewEnvironmentModule(cfg),
		NewTotalModule(),
		NewWriterModule(),
	}
	if store != nil {
		modules = append(modules, NewHistoryModule(store, cfg.HistoryLimit))
	}

	return NewCatalogue(plugins, modules)
}

// OpenSansFontPlugin ships the report font bundle. It contributes no
// widget data; it exists only so the font assets land under
// plugins/opensansfont/ where every other plugin's styles reference them.
type OpenSansFontPlugin struct {
	basePlugin
}

// NewOpenSansFontPlugin creates the font asset plugin.
func NewOpenSansFontPlugin() *OpenSansFontPlugin {
	return &OpenSansFontPlugin{basePlugin{name: "opensansfont", static: true}}
}

// IssuePlugin resolves issue-tracker references from result labels into
// links. It ships no static assets: the issue links are rendered by the
// views of other plugins.
type IssuePlugin struct {
	basePlugin

	// urlPattern turns an issue key into a link, fmt.Sprintf style.
	urlPattern string
}

// IssueOption configures an IssuePlugin.
type IssueOption func(*IssuePlugin)

// WithIssueURLPattern sets the tracker URL pattern ("%s" is the key).
func WithIssueURLPattern(pattern string) IssueOption {
	return func(p *IssuePlugin) {
		p.urlPattern = pattern
	}
}

// NewIssuePlugin creates the issue link plugin.
func NewIssuePlugin(opts ...IssueOption) *IssuePlugin {
	p := &IssuePlugin{
		basePlugin: basePlugin{name: "issue", static: false},
		urlPattern: "%s",
	}
	for _, opt := range opts {
		opt(p)
	}
	return p
}

// TmsPlugin resolves test-management-system references from result labels
// into links. Like IssuePlugin it has no static assets.
type TmsPlugin struct {
	basePlugin

	urlPattern string
}

// TmsOption configures a TmsPlugin.
type TmsOption func(*TmsPlugin)

// WithTmsURLPattern sets the TMS URL pattern ("%s" is the test id).
func WithTmsURLPattern(pattern string) TmsOption {
	return func(p *TmsPlugin) {
		p.urlPattern = pattern
	}
}

// NewTmsPlugin creates the TMS link plugin.
func NewTmsPlugin(opts ...TmsOption) *TmsPlugin {
	p := &TmsPlugin{
		basePlugin: basePlugin{name: "tms", static: false},
		urlPattern: "%s",
	}
	for _, opt := range opts {
		opt(p)
	}
	return p
}

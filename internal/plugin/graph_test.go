package plugin

import (
	"context"
	"testing"

	"github.com/allurefw/report/internal/model"
	"github.com/allurefw/report/internal/resultsource"
)

// fakeAggregatorModule is a Module with the Aggregator capability.
type fakeAggregatorModule struct {
	widget string
}

func (f fakeAggregatorModule) ModuleName() string { return "fake-" + f.widget }
func (f fakeAggregatorModule) WidgetName() string { return f.widget }
func (f fakeAggregatorModule) Aggregate(context.Context, *model.ReportData) (any, error) {
	return f.widget, nil
}

// fakeAggregatorPlugin is a Plugin with the Aggregator capability.
type fakeAggregatorPlugin struct {
	fakePlugin
	widget string
}

func (f fakeAggregatorPlugin) WidgetName() string { return f.widget }
func (f fakeAggregatorPlugin) Aggregate(context.Context, *model.ReportData) (any, error) {
	return f.widget, nil
}

// TestServiceGraphCapabilities tests uniform capability queries over
// modules and plugins.
func TestServiceGraphCapabilities(t *testing.T) {
	t.Parallel()

	modules := []Module{
		fakeAggregatorModule{widget: "from-module"},
		NewWriterModule(),
	}
	plugins := []Plugin{
		fakeAggregatorPlugin{fakePlugin: fakePlugin{name: "p", static: true}, widget: "from-plugin"},
		fakePlugin{name: "bare", static: false},
	}

	g := NewServiceGraph(nil, modules, plugins)

	t.Run("aggregators come from both kinds, modules first", func(t *testing.T) {
		t.Parallel()

		aggs := g.Aggregators()
		if len(aggs) != 2 {
			t.Fatalf("expected 2 aggregators, got %d", len(aggs))
		}
		if aggs[0].WidgetName() != "from-module" || aggs[1].WidgetName() != "from-plugin" {
			t.Errorf("unexpected aggregator order: %s, %s",
				aggs[0].WidgetName(), aggs[1].WidgetName())
		}
	})

	t.Run("data writers are found", func(t *testing.T) {
		t.Parallel()

		if writers := g.DataWriters(); len(writers) != 1 {
			t.Errorf("expected 1 data writer, got %d", len(writers))
		}
	})

	t.Run("no recorders without history", func(t *testing.T) {
		t.Parallel()

		if recorders := g.Recorders(); len(recorders) != 0 {
			t.Errorf("expected no recorders, got %d", len(recorders))
		}
	})
}

// TestServiceGraphSources tests source passthrough in input order.
func TestServiceGraphSources(t *testing.T) {
	t.Parallel()

	sources := resultsource.Discover([]string{t.TempDir()}, nil)
	g := NewServiceGraph(sources, nil, nil)

	got := g.Sources()
	if len(got) != len(sources) {
		t.Fatalf("expected %d sources, got %d", len(sources), len(got))
	}
	for i := range sources {
		if got[i] != sources[i] {
			t.Errorf("source %d not passed through in order", i)
		}
	}
}

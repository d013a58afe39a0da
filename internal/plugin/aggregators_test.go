package plugin

import (
	"context"
	"encoding/json"
	"os"
	"path/filepath"
	"testing"
	"time"

	"github.com/allurefw/report/internal/config"
	"github.com/allurefw/report/internal/model"
)

// sampleData builds a small report data set for aggregator tests.
func sampleData() *model.ReportData {
	d := model.NewReportData("sample")
	d.AddResult(model.TestResult{
		Name: "a", FullName: "suite1.a", Status: model.StatusPassed,
		Start: time.UnixMilli(3000), Duration: 100 * time.Millisecond,
		Labels: []model.Label{{Name: "feature", Value: "login"}, {Name: "package", Value: "suite1"}},
	})
	d.AddResult(model.TestResult{
		Name: "b", FullName: "suite1.b", Status: model.StatusFailed,
		Start: time.UnixMilli(1000), Duration: 50 * time.Millisecond,
		Failure: &model.Failure{Message: "assert timeout waiting for page"},
		Labels:  []model.Label{{Name: "feature", Value: "login"}, {Name: "issue", Value: "PROJ-1"}},
	})
	d.AddResult(model.TestResult{
		Name: "c", FullName: "suite2.c", Status: model.StatusBroken,
		Start: time.UnixMilli(2000),
		Failure: &model.Failure{Message: "connection refused"},
		Labels:  []model.Label{{Name: "issue", Value: "PROJ-1"}, {Name: "testId", Value: "TC-9"}},
	})
	return d
}

// TestXUnitAggregate tests suite grouping.
func TestXUnitAggregate(t *testing.T) {
	t.Parallel()

	payload, err := NewXUnitPlugin().Aggregate(context.Background(), sampleData())
	if err != nil {
		t.Fatalf("Aggregate returned error: %v", err)
	}

	groups := payload.([]GroupSummary)
	if len(groups) != 2 {
		t.Fatalf("expected 2 suites, got %d", len(groups))
	}
	if groups[0].Name != "suite1" || groups[0].Statistic.Total != 2 {
		t.Errorf("unexpected first group: %+v", groups[0])
	}
	if groups[1].Name != "suite2" || groups[1].Statistic.Broken != 1 {
		t.Errorf("unexpected second group: %+v", groups[1])
	}
}

// TestBehaviorsAggregate tests feature-label grouping with fallback.
func TestBehaviorsAggregate(t *testing.T) {
	t.Parallel()

	payload, err := NewBehaviorsPlugin().Aggregate(context.Background(), sampleData())
	if err != nil {
		t.Fatalf("Aggregate returned error: %v", err)
	}

	groups := payload.([]GroupSummary)
	if len(groups) != 2 {
		t.Fatalf("expected 2 groups, got %d", len(groups))
	}
	// Sorted: "Without feature" before "login".
	if groups[0].Name != "Without feature" || groups[0].Statistic.Total != 1 {
		t.Errorf("unexpected fallback group: %+v", groups[0])
	}
	if groups[1].Name != "login" || groups[1].Statistic.Total != 2 {
		t.Errorf("unexpected feature group: %+v", groups[1])
	}
}

// TestDefectsAggregate tests category bucketing.
func TestDefectsAggregate(t *testing.T) {
	t.Parallel()

	t.Run("default categories split failed and broken", func(t *testing.T) {
		t.Parallel()

		payload, err := NewDefectsPlugin(nil).Aggregate(context.Background(), sampleData())
		if err != nil {
			t.Fatalf("Aggregate returned error: %v", err)
		}

		categories := payload.([]DefectCategory)
		if len(categories) != 2 {
			t.Fatalf("expected 2 categories, got %d", len(categories))
		}
		if categories[0].Name != "Product defects" || len(categories[0].Items) != 1 {
			t.Errorf("unexpected product defects: %+v", categories[0])
		}
		if categories[1].Name != "Test defects" || categories[1].Items[0].FullName != "suite2.c" {
			t.Errorf("unexpected test defects: %+v", categories[1])
		}
	})

	t.Run("message regex narrows a category", func(t *testing.T) {
		t.Parallel()

		cfg := config.NewConfig()
		cfg.ReportConfig = &config.File{Categories: []config.Category{
			{Name: "Timeouts", MatchedStatuses: []string{"failed"}, MessageRegex: ".*timeout.*"},
		}}

		payload, err := NewDefectsPlugin(cfg).Aggregate(context.Background(), sampleData())
		if err != nil {
			t.Fatalf("Aggregate returned error: %v", err)
		}

		categories := payload.([]DefectCategory)
		if len(categories) != 1 || categories[0].Name != "Timeouts" {
			t.Fatalf("unexpected categories: %+v", categories)
		}
		if len(categories[0].Items) != 1 || categories[0].Items[0].FullName != "suite1.b" {
			t.Errorf("unexpected items: %+v", categories[0].Items)
		}
	})

	t.Run("invalid regex degrades only this widget", func(t *testing.T) {
		t.Parallel()

		cfg := config.NewConfig()
		cfg.ReportConfig = &config.File{Categories: []config.Category{
			{Name: "Broken config", MessageRegex: "("},
		}}

		if _, err := NewDefectsPlugin(cfg).Aggregate(context.Background(), sampleData()); err == nil {
			t.Error("expected error for invalid regex")
		}
	})
}

// TestTimelineAggregate tests chronological ordering.
func TestTimelineAggregate(t *testing.T) {
	t.Parallel()

	payload, err := NewTimelinePlugin().Aggregate(context.Background(), sampleData())
	if err != nil {
		t.Fatalf("Aggregate returned error: %v", err)
	}

	items := payload.([]TimelineItem)
	if len(items) != 3 {
		t.Fatalf("expected 3 items, got %d", len(items))
	}
	if items[0].FullName != "suite1.b" || items[1].FullName != "suite2.c" || items[2].FullName != "suite1.a" {
		t.Errorf("unexpected order: %s, %s, %s", items[0].FullName, items[1].FullName, items[2].FullName)
	}
}

// TestGraphAggregate tests the chart payload.
func TestGraphAggregate(t *testing.T) {
	t.Parallel()

	payload, err := NewGraphPlugin().Aggregate(context.Background(), sampleData())
	if err != nil {
		t.Fatalf("Aggregate returned error: %v", err)
	}

	graph := payload.(GraphData)
	if graph.Statistic.Total != 3 {
		t.Errorf("unexpected statistic: %+v", graph.Statistic)
	}
	if len(graph.Durations) != 3 || graph.Durations[0] > graph.Durations[2] {
		t.Errorf("expected sorted durations, got %v", graph.Durations)
	}
}

// TestLinkAggregates tests issue and tms link resolution.
func TestLinkAggregates(t *testing.T) {
	t.Parallel()

	t.Run("issue links de-duplicate and use the pattern", func(t *testing.T) {
		t.Parallel()

		p := NewIssuePlugin(WithIssueURLPattern("https://tracker.example.com/%s"))
		payload, err := p.Aggregate(context.Background(), sampleData())
		if err != nil {
			t.Fatalf("Aggregate returned error: %v", err)
		}

		links := payload.([]LinkItem)
		if len(links) != 1 {
			t.Fatalf("expected 1 link, got %d", len(links))
		}
		if links[0].Key != "PROJ-1" || links[0].URL != "https://tracker.example.com/PROJ-1" {
			t.Errorf("unexpected link: %+v", links[0])
		}
	})

	t.Run("tms links resolve testId labels", func(t *testing.T) {
		t.Parallel()

		payload, err := NewTmsPlugin().Aggregate(context.Background(), sampleData())
		if err != nil {
			t.Fatalf("Aggregate returned error: %v", err)
		}

		links := payload.([]LinkItem)
		if len(links) != 1 || links[0].Key != "TC-9" {
			t.Errorf("unexpected links: %+v", links)
		}
	})
}

// TestEnvironmentAggregate tests properties discovery and config merge.
func TestEnvironmentAggregate(t *testing.T) {
	t.Parallel()

	dir := t.TempDir()
	props := "# build environment\nBrowser=chrome\nStand = staging\nmalformed line\n"
	if err := os.WriteFile(filepath.Join(dir, EnvironmentFile), []byte(props), 0600); err != nil {
		t.Fatal(err)
	}

	cfg := config.NewConfig()
	cfg.InputDirs = []string{dir, filepath.Join(dir, "missing")}
	cfg.ReportConfig = &config.File{Environment: map[string]string{"Browser": "firefox"}}

	payload, err := NewEnvironmentModule(cfg).Aggregate(context.Background(), model.NewReportData("x"))
	if err != nil {
		t.Fatalf("Aggregate returned error: %v", err)
	}

	entries := payload.([]EnvironmentEntry)
	if len(entries) != 2 {
		t.Fatalf("expected 2 entries, got %+v", entries)
	}
	// Sorted by key; configured value wins over discovered one.
	if entries[0].Key != "Browser" || entries[0].Value != "firefox" {
		t.Errorf("unexpected entry: %+v", entries[0])
	}
	if entries[1].Key != "Stand" || entries[1].Value != "staging" {
		t.Errorf("unexpected entry: %+v", entries[1])
	}
}

// TestTotalAggregate tests the total widget payload.
func TestTotalAggregate(t *testing.T) {
	t.Parallel()

	data := sampleData()
	data.Sources = []model.SourceInfo{{Path: "in", Format: "junit", ResultCount: 3}}

	payload, err := NewTotalModule().Aggregate(context.Background(), data)
	if err != nil {
		t.Fatalf("Aggregate returned error: %v", err)
	}

	total := payload.(TotalData)
	if total.Name != "sample" || total.Statistic.Total != 3 || total.Sources != 1 {
		t.Errorf("unexpected total payload: %+v", total)
	}
}

// TestWriterModule tests JSON data file writing.
func TestWriterModule(t *testing.T) {
	t.Parallel()

	out := t.TempDir()
	w := NewWriterModule()

	if err := w.WriteData(out, "total", TotalData{Name: "x"}); err != nil {
		t.Fatalf("WriteData returned error: %v", err)
	}

	raw, err := os.ReadFile(filepath.Join(out, "data", "total.json"))
	if err != nil {
		t.Fatalf("expected data file: %v", err)
	}

	var decoded TotalData
	if err := json.Unmarshal(raw, &decoded); err != nil {
		t.Fatalf("data file is not valid JSON: %v", err)
	}
	if decoded.Name != "x" {
		t.Errorf("unexpected payload round trip: %+v", decoded)
	}
}

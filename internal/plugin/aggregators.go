package plugin

import (
	"context"
	"fmt"
	"regexp"
	"sort"
	"strings"

	"github.com/allurefw/report/internal/config"
	"github.com/allurefw/report/internal/model"
)

// GroupSummary is one named bucket of results with its outcome counts.
// It is the payload element of the xunit, behaviors, and packages widgets.
type GroupSummary struct {
	Name      string          `json:"name"`
	Statistic model.Statistic `json:"statistic"`
}

// groupBy buckets results by a key function and returns the buckets
// sorted by name for deterministic output.
func groupBy(results []model.TestResult, key func(*model.TestResult) string) []GroupSummary {
	buckets := make(map[string]*model.Statistic)
	for i := range results {
		name := key(&results[i])
		stat, ok := buckets[name]
		if !ok {
			stat = &model.Statistic{}
			buckets[name] = stat
		}
		stat.Update(results[i].Status)
	}

	groups := make([]GroupSummary, 0, len(buckets))
	for name, stat := range buckets {
		groups = append(groups, GroupSummary{Name: name, Statistic: *stat})
	}
	sort.Slice(groups, func(i, j int) bool { return groups[i].Name < groups[j].Name })
	return groups
}

// XUnitPlugin renders the suite-oriented view of the results.
type XUnitPlugin struct {
	basePlugin
}

// NewXUnitPlugin creates the xunit view plugin.
func NewXUnitPlugin() *XUnitPlugin {
	return &XUnitPlugin{basePlugin{name: "xunit", static: true}}
}

// WidgetName implements Aggregator.
func (p *XUnitPlugin) WidgetName() string { return "xunit" }

// Aggregate groups results by suite. The suite is the full name minus
// the trailing test name, falling back to the bare test name for results
// without a qualified name.
func (p *XUnitPlugin) Aggregate(_ context.Context, data *model.ReportData) (any, error) {
	return groupBy(data.Results, func(r *model.TestResult) string {
		if idx := strings.LastIndex(r.FullName, "."); idx > 0 {
			return r.FullName[:idx]
		}
		return r.FullName
	}), nil
}

// BehaviorsPlugin renders the feature-oriented view of the results.
type BehaviorsPlugin struct {
	basePlugin
}

// NewBehaviorsPlugin creates the behaviors view plugin.
func NewBehaviorsPlugin() *BehaviorsPlugin {
	return &BehaviorsPlugin{basePlugin{name: "behaviors", static: true}}
}

// WidgetName implements Aggregator.
func (p *BehaviorsPlugin) WidgetName() string { return "behaviors" }

// Aggregate groups results by their feature label.
func (p *BehaviorsPlugin) Aggregate(_ context.Context, data *model.ReportData) (any, error) {
	return groupBy(data.Results, func(r *model.TestResult) string {
		if v, ok := r.Label("feature"); ok {
			return v
		}
		return "Without feature"
	}), nil
}

// PackagesPlugin renders the package-oriented view of the results.
type PackagesPlugin struct {
	basePlugin
}

// NewPackagesPlugin creates the packages view plugin.
func NewPackagesPlugin() *PackagesPlugin {
	return &PackagesPlugin{basePlugin{name: "packages", static: true}}
}

// WidgetName implements Aggregator.
func (p *PackagesPlugin) WidgetName() string { return "packages" }

// Aggregate groups results by their package label.
func (p *PackagesPlugin) Aggregate(_ context.Context, data *model.ReportData) (any, error) {
	return groupBy(data.Results, func(r *model.TestResult) string {
		if v, ok := r.Label("package"); ok {
			return v
		}
		return "(default)"
	}), nil
}

// DefectCategory is one defect bucket of the defects widget.
type DefectCategory struct {
	Name  string       `json:"name"`
	Items []DefectItem `json:"items"`
}

// DefectItem is one defective result with its failure message.
type DefectItem struct {
	FullName string `json:"full_name"`
	Message  string `json:"message,omitempty"`
}

// DefectsPlugin buckets failed and broken results into defect categories.
// Categories come from the report configuration file; without one, the
// default split is product defects (failed) and test defects (broken).
type DefectsPlugin struct {
	basePlugin

	categories []config.Category
}

// NewDefectsPlugin creates the defects view plugin.
func NewDefectsPlugin(cfg *config.Config) *DefectsPlugin {
	p := &DefectsPlugin{basePlugin: basePlugin{name: "defects", static: true}}
	if cfg != nil && cfg.ReportConfig != nil && len(cfg.ReportConfig.Categories) > 0 {
		p.categories = cfg.ReportConfig.Categories
	} else {
		p.categories = []config.Category{
			{Name: "Product defects", MatchedStatuses: []string{"failed"}},
			{Name: "Test defects", MatchedStatuses: []string{"broken"}},
		}
	}
	return p
}

// WidgetName implements Aggregator.
func (p *DefectsPlugin) WidgetName() string { return "defects" }

// Aggregate assigns each failed or broken result to the first category
// whose statuses and message regex match. A bad regex fails only this
// widget, not the build.
func (p *DefectsPlugin) Aggregate(_ context.Context, data *model.ReportData) (any, error) {
	type matcher struct {
		category *config.Category
		statuses map[model.Status]struct{}
		regex    *regexp.Regexp
	}

	matchers := make([]matcher, 0, len(p.categories))
	for i := range p.categories {
		c := &p.categories[i]
		m := matcher{category: c, statuses: make(map[model.Status]struct{})}
		for _, s := range c.Statuses() {
			m.statuses[s] = struct{}{}
		}
		if c.MessageRegex != "" {
			re, err := regexp.Compile(c.MessageRegex)
			if err != nil {
				return nil, fmt.Errorf("category %q: invalid message regex: %w", c.Name, err)
			}
			m.regex = re
		}
		matchers = append(matchers, m)
	}

	buckets := make(map[string][]DefectItem)
	for i := range data.Results {
		r := &data.Results[i]
		if r.Status != model.StatusFailed && r.Status != model.StatusBroken {
			continue
		}

		message := ""
		if r.Failure != nil {
			message = r.Failure.Message
		}

		for _, m := range matchers {
			if _, ok := m.statuses[r.Status]; !ok {
				continue
			}
			if m.regex != nil && !m.regex.MatchString(message) {
				continue
			}
			buckets[m.category.Name] = append(buckets[m.category.Name],
				DefectItem{FullName: r.FullName, Message: message})
			break
		}
	}

	// Categories keep configuration order; empty ones are omitted.
	categories := make([]DefectCategory, 0, len(buckets))
	for i := range p.categories {
		name := p.categories[i].Name
		if items, ok := buckets[name]; ok {
			categories = append(categories, DefectCategory{Name: name, Items: items})
		}
	}
	return categories, nil
}

// TimelineItem is one result placed on the execution timeline.
type TimelineItem struct {
	FullName   string       `json:"full_name"`
	Start      int64        `json:"start_ms"`
	DurationMs int64        `json:"duration_ms"`
	Status     model.Status `json:"status"`
}

// TimelinePlugin renders the chronological view of the results.
type TimelinePlugin struct {
	basePlugin
}

// NewTimelinePlugin creates the timeline view plugin.
func NewTimelinePlugin() *TimelinePlugin {
	return &TimelinePlugin{basePlugin{name: "timeline", static: true}}
}

// WidgetName implements Aggregator.
func (p *TimelinePlugin) WidgetName() string { return "timeline" }

// Aggregate orders results by start time. Results without timing sort
// first with a zero start.
func (p *TimelinePlugin) Aggregate(_ context.Context, data *model.ReportData) (any, error) {
	items := make([]TimelineItem, 0, len(data.Results))
	for i := range data.Results {
		r := &data.Results[i]
		item := TimelineItem{
			FullName:   r.FullName,
			DurationMs: r.Duration.Milliseconds(),
			Status:     r.Status,
		}
		if !r.Start.IsZero() {
			item.Start = r.Start.UnixMilli()
		}
		items = append(items, item)
	}
	sort.Slice(items, func(i, j int) bool {
		if items[i].Start != items[j].Start {
			return items[i].Start < items[j].Start
		}
		return items[i].FullName < items[j].FullName
	})
	return items, nil
}

// GraphData is the payload of the graph widget: the status distribution
// plus the sorted duration series the charts are drawn from.
type GraphData struct {
	Statistic model.Statistic `json:"statistic"`
	Durations []int64         `json:"durations_ms"`
}

// GraphPlugin renders the charts view of the results.
type GraphPlugin struct {
	basePlugin
}

// NewGraphPlugin creates the graph view plugin.
func NewGraphPlugin() *GraphPlugin {
	return &GraphPlugin{basePlugin{name: "graph", static: true}}
}

// WidgetName implements Aggregator.
func (p *GraphPlugin) WidgetName() string { return "graph" }

// Aggregate derives the status distribution and duration series.
func (p *GraphPlugin) Aggregate(_ context.Context, data *model.ReportData) (any, error) {
	durations := make([]int64, 0, len(data.Results))
	for i := range data.Results {
		durations = append(durations, data.Results[i].Duration.Milliseconds())
	}
	sort.Slice(durations, func(i, j int) bool { return durations[i] < durations[j] })
	return GraphData{Statistic: data.Statistic, Durations: durations}, nil
}

// LinkItem is one resolved tracker link of the issues or tms widget.
type LinkItem struct {
	Key string `json:"key"`
	URL string `json:"url"`
}

// collectLinks resolves label values into links using a URL pattern.
func collectLinks(results []model.TestResult, labelName, urlPattern string) []LinkItem {
	seen := make(map[string]struct{})
	var links []LinkItem
	for i := range results {
		for _, l := range results[i].Labels {
			if l.Name != labelName || l.Value == "" {
				continue
			}
			if _, dup := seen[l.Value]; dup {
				continue
			}
			seen[l.Value] = struct{}{}
			links = append(links, LinkItem{Key: l.Value, URL: fmt.Sprintf(urlPattern, l.Value)})
		}
	}
	sort.Slice(links, func(i, j int) bool { return links[i].Key < links[j].Key })
	return links
}

// WidgetName implements Aggregator.
func (p *IssuePlugin) WidgetName() string { return "issues" }

// Aggregate resolves issue labels into tracker links.
func (p *IssuePlugin) Aggregate(_ context.Context, data *model.ReportData) (any, error) {
	return collectLinks(data.Results, "issue", p.urlPattern), nil
}

// WidgetName implements Aggregator.
func (p *TmsPlugin) WidgetName() string { return "tms" }

// Aggregate resolves test-management ids into links.
func (p *TmsPlugin) Aggregate(_ context.Context, data *model.ReportData) (any, error) {
	return collectLinks(data.Results, "testId", p.urlPattern), nil
}

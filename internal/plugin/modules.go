package plugin

import (
	"bufio"
	"context"
	"encoding/json"
	"fmt"
	"os"
	"path/filepath"
	"sort"
	"strings"

	"github.com/allurefw/report/internal/config"
	"github.com/allurefw/report/internal/history"
	"github.com/allurefw/report/internal/model"
)

// EnvironmentFile is the per-input-directory file carrying environment
// key/value pairs, in Java properties syntax.
const EnvironmentFile = "environment.properties"

// EnvironmentEntry is one key/value pair of the environment widget.
type EnvironmentEntry struct {
	Key   string `json:"key"`
	Value string `json:"value"`
}

// EnvironmentModule aggregates the environment widget from the
// environment.properties files found in the input directories, merged
// with static entries from the report configuration file. Configured
// entries win over discovered ones on key collision.
type EnvironmentModule struct {
	inputDirs []string
	static    map[string]string
}

// NewEnvironmentModule creates the environment module from configuration.
func NewEnvironmentModule(cfg *config.Config) *EnvironmentModule {
	m := &EnvironmentModule{}
	if cfg != nil {
		m.inputDirs = cfg.InputDirs
		if cfg.ReportConfig != nil {
			m.static = cfg.ReportConfig.Environment
		}
	}
	return m
}

// ModuleName implements Module.
func (m *EnvironmentModule) ModuleName() string { return "environment" }

// WidgetName implements Aggregator.
func (m *EnvironmentModule) WidgetName() string { return "environment" }

// Aggregate merges discovered and configured environment entries, sorted
// by key. Unreadable properties files are skipped: environment data is
// informational and must not degrade the build.
func (m *EnvironmentModule) Aggregate(_ context.Context, _ *model.ReportData) (any, error) {
	merged := make(map[string]string)
	for _, dir := range m.inputDirs {
		for k, v := range readProperties(filepath.Join(dir, EnvironmentFile)) {
			merged[k] = v
		}
	}
	for k, v := range m.static {
		merged[k] = v
	}

	entries := make([]EnvironmentEntry, 0, len(merged))
	for k, v := range merged {
		entries = append(entries, EnvironmentEntry{Key: k, Value: v})
	}
	sort.Slice(entries, func(i, j int) bool { return entries[i].Key < entries[j].Key })
	return entries, nil
}

// readProperties parses a Java properties file into a map. Missing or
// unreadable files yield an empty map.
func readProperties(path string) map[string]string {
	props := make(map[string]string)

	f, err := os.Open(path) //nolint:gosec // Properties files live in caller-supplied inputs
	if err != nil {
		return props
	}
	defer f.Close() //nolint:errcheck // Read-only file

	scanner := bufio.NewScanner(f)
	for scanner.Scan() {
		line := strings.TrimSpace(scanner.Text())
		if line == "" || strings.HasPrefix(line, "#") || strings.HasPrefix(line, "!") {
			continue
		}
		key, value, found := strings.Cut(line, "=")
		if !found {
			continue
		}
		props[strings.TrimSpace(key)] = strings.TrimSpace(value)
	}
	return props
}

// TotalModule aggregates the total widget: the overall outcome counts
// plus report identity, the payload summaries and badges are built from.
type TotalModule struct{}

// NewTotalModule creates the total statistic module.
func NewTotalModule() *TotalModule {
	return &TotalModule{}
}

// ModuleName implements Module.
func (m *TotalModule) ModuleName() string { return "total" }

// WidgetName implements Aggregator.
func (m *TotalModule) WidgetName() string { return "total" }

// TotalData is the payload of the total widget.
type TotalData struct {
	Name        string          `json:"name"`
	GeneratedAt string          `json:"generated_at"`
	Statistic   model.Statistic `json:"statistic"`
	Sources     int             `json:"sources"`
}

// Aggregate implements Aggregator.
func (m *TotalModule) Aggregate(_ context.Context, data *model.ReportData) (any, error) {
	return TotalData{
		Name:        data.Name,
		GeneratedAt: data.GeneratedAt.UTC().Format("2006-01-02T15:04:05Z07:00"),
		Statistic:   data.Statistic,
		Sources:     len(data.Sources),
	}, nil
}

// WriterModule persists widget payloads as JSON files under the output
// directory's data/ subtree. It is the catalogue's only DataWriter, so
// every widget of every aggregator goes through it.
type WriterModule struct{}

// NewWriterModule creates the JSON data writer module.
func NewWriterModule() *WriterModule {
	return &WriterModule{}
}

// ModuleName implements Module.
func (m *WriterModule) ModuleName() string { return "writer" }

// WriteData implements DataWriter. The payload lands at
// <outputDir>/data/<name>.json, creating the data directory on first use.
func (m *WriterModule) WriteData(outputDir, name string, payload any) error {
	dataDir := filepath.Join(outputDir, "data")
	if err := os.MkdirAll(dataDir, 0750); err != nil {
		return fmt.Errorf("failed to create data directory: %w", err)
	}

	encoded, err := json.MarshalIndent(payload, "", "  ")
	if err != nil {
		return fmt.Errorf("failed to encode %s data: %w", name, err)
	}
	encoded = append(encoded, '\n')

	path := filepath.Join(dataDir, name+".json")
	if err := os.WriteFile(path, encoded, 0600); err != nil {
		return fmt.Errorf("failed to write %s data: %w", name, err)
	}
	return nil
}

// HistoryModule bridges the build-history store into the service graph.
// It records the finished build's statistic and aggregates the trend
// widget from past builds.
type HistoryModule struct {
	store *history.Store
	limit int
}

// NewHistoryModule creates the history module over an open store.
func NewHistoryModule(store *history.Store, limit int) *HistoryModule {
	return &HistoryModule{store: store, limit: limit}
}

// ModuleName implements Module.
func (m *HistoryModule) ModuleName() string { return "history" }

// WidgetName implements Aggregator.
func (m *HistoryModule) WidgetName() string { return "trend" }

// Aggregate returns the recent builds, oldest first, for the trend chart.
// The current build is included because Record runs before aggregation
// in the processing run.
func (m *HistoryModule) Aggregate(ctx context.Context, _ *model.ReportData) (any, error) {
	entries, err := m.store.Trend(ctx, m.limit)
	if err != nil {
		return nil, fmt.Errorf("failed to load history trend: %w", err)
	}
	return entries, nil
}

// Record implements Recorder: it persists the build statistic.
func (m *HistoryModule) Record(ctx context.Context, data *model.ReportData) error {
	return m.store.Save(ctx, data.Name, data.Statistic)
}

package log

import (
	"context"
	"io"
	"log/slog"
	"sort"
	"sync"
)

// PluginKey is the attribute key whose value names the plugin a record
// concerns. Records at Warn or above carrying this key mark that plugin
// as degraded.
const PluginKey = "plugin"

// BuildHandler wraps an slog.Handler to tally warnings and errors emitted
// during a build, and to remember which plugins they concerned.
//
// Design decision: We use a handler wrapper rather than a custom logger
// because:
//  1. It integrates seamlessly with standard slog APIs
//  2. It works with any underlying handler (text, JSON, etc.)
//  3. Components deep in the build log normally; only the CLI needs the
//     tally, and it holds the handler reference
type BuildHandler struct {
	// handler is the underlying slog handler that receives all records.
	handler slog.Handler

	// attrs are attributes attached via WithAttrs, checked alongside
	// per-record attributes for the plugin key.
	attrs []slog.Attr

	// shared tally state. Pointer-shared across WithAttrs/WithGroup
	// clones so every derived handler feeds the same counters.
	state *buildState
}

// buildState is the mutable tally shared by all clones of a BuildHandler.
type buildState struct {
	mu       sync.Mutex
	warnings int
	errors   int
	degraded map[string]struct{}
}

// NewBuildHandler creates a BuildHandler wrapping the given handler.
// If handler is nil, the returned BuildHandler wraps slog.Default().Handler().
func NewBuildHandler(handler slog.Handler) *BuildHandler {
	if handler == nil {
		handler = slog.Default().Handler()
	}
	return &BuildHandler{
		handler: handler,
		state:   &buildState{degraded: make(map[string]struct{})},
	}
}

// Enabled delegates to the underlying handler.
func (h *BuildHandler) Enabled(ctx context.Context, level slog.Level) bool {
	return h.handler.Enabled(ctx, level)
}

// Handle tallies the record when it is at Warn or above, records the
// plugin it concerns if any, and passes the record through unchanged.
func (h *BuildHandler) Handle(ctx context.Context, r slog.Record) error {
	if r.Level >= slog.LevelWarn {
		h.state.mu.Lock()
		if r.Level >= slog.LevelError {
			h.state.errors++
		} else {
			h.state.warnings++
		}
		for _, a := range h.attrs {
			h.noteDegradedLocked(a)
		}
		r.Attrs(func(a slog.Attr) bool {
			h.noteDegradedLocked(a)
			return true
		})
		h.state.mu.Unlock()
	}

	return h.handler.Handle(ctx, r)
}

// noteDegradedLocked records a plugin name from a plugin-keyed attribute.
// Callers must hold state.mu.
func (h *BuildHandler) noteDegradedLocked(a slog.Attr) {
	if a.Key == PluginKey && a.Value.Kind() == slog.KindString {
		h.state.degraded[a.Value.String()] = struct{}{}
	}
}

// WithAttrs returns a handler clone that shares this handler's tally.
func (h *BuildHandler) WithAttrs(attrs []slog.Attr) slog.Handler {
	merged := make([]slog.Attr, 0, len(h.attrs)+len(attrs))
	merged = append(merged, h.attrs...)
	merged = append(merged, attrs...)
	return &BuildHandler{
		handler: h.handler.WithAttrs(attrs),
		attrs:   merged,
		state:   h.state,
	}
}

// WithGroup returns a handler clone that shares this handler's tally.
// Plugin attributes inside groups are not tracked; build components log
// the plugin key at the top level.
func (h *BuildHandler) WithGroup(name string) slog.Handler {
	return &BuildHandler{
		handler: h.handler.WithGroup(name),
		attrs:   h.attrs,
		state:   h.state,
	}
}

// Warnings returns the number of Warn-level records handled.
func (h *BuildHandler) Warnings() int {
	h.state.mu.Lock()
	defer h.state.mu.Unlock()
	return h.state.warnings
}

// Errors returns the number of Error-level records handled.
func (h *BuildHandler) Errors() int {
	h.state.mu.Lock()
	defer h.state.mu.Unlock()
	return h.state.errors
}

// DegradedPlugins returns the sorted names of plugins that appeared in
// Warn-or-above records. Sorted so summaries are deterministic.
func (h *BuildHandler) DegradedPlugins() []string {
	h.state.mu.Lock()
	defer h.state.mu.Unlock()

	names := make([]string, 0, len(h.state.degraded))
	for name := range h.state.degraded {
		names = append(names, name)
	}
	sort.Strings(names)
	return names
}

// NewBuildLogger creates a slog.Logger with build tallying.
//
// Parameters:
//   - w: the io.Writer to write log output to (typically os.Stderr)
//   - verbose: if true, sets log level to Debug; otherwise Info
//
// Returns the logger and the BuildHandler for post-build inspection.
func NewBuildLogger(w io.Writer, verbose bool) (*slog.Logger, *BuildHandler) {
	level := slog.LevelInfo
	if verbose {
		level = slog.LevelDebug
	}

	handler := NewBuildHandler(slog.NewTextHandler(w, &slog.HandlerOptions{Level: level}))
	return slog.New(handler), handler
}

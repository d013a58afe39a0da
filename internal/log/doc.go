// Package log provides build-aware logging built on the standard slog
// package.
//
// The report build is deliberately best-effort: a plugin whose assets fail
// to unpack, or an entry page that fails to render, is logged and the build
// continues. That policy is only safe if the degradation is visible, so
// this package extends slog with a wrapping handler that tallies warnings
// and errors and remembers which plugins they concerned. After the build,
// the CLI asks the handler for the tally and tells the user whether the
// report is complete or degraded.
//
// # Usage
//
//	handler := log.NewBuildHandler(slog.NewTextHandler(os.Stderr, nil))
//	logger := slog.New(handler)
//
//	logger.Warn("unpack failed", "plugin", "graph", "error", err)
//
//	if names := handler.DegradedPlugins(); len(names) > 0 {
//	    fmt.Printf("report degraded for plugins: %v\n", names)
//	}
//
// The handler is safe for concurrent use: plugin asset unpacking fans out
// across goroutines, and all of them share one logging sink.
package log

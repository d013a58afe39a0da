// Package generator orchestrates one report build from input directories
// to a self-contained report artifact.
//
// A build runs a fixed sequence: create the output root, discover result
// sources, assemble the contributor catalogue, render the entry page,
// unpack the active plugins' assets, wire the service graph, and hand it
// to the multi-stage processing run that collects, records, aggregates,
// and writes the report data.
//
// Only the output root creation is fatal. Everything after it degrades:
// a plugin whose assets fail to unpack or a widget that fails to
// aggregate is logged and reported as degraded, and the build still
// produces a usable artifact.
package generator

// Package plugin defines the extension contracts of the report builder
// and the fixed catalogue of contributors that make up a report.
//
// Two kinds of contributor exist. A Plugin is a named unit that may ship
// a static asset bundle (unpacked to plugins/<name>/ in the output) and
// may aggregate widget data. A Module contributes to the build without a
// public face: no name on the entry page, no static assets.
//
// Both kinds are flattened into one ServiceGraph so the processing run
// never distinguishes where a capability came from. The graph is an
// explicit registry queried by capability interface (Aggregator,
// DataWriter, Recorder) through plain type assertions — no reflection,
// no resolution algorithm. A contributor opts into a capability simply
// by implementing its interface.
package plugin

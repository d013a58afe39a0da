// Package report writes the human-facing build summary.
//
// The summary is not part of the report artifact's data files (those are
// written by the processing run); it is the condensed outcome a CI log or
// a summary.md next to the artifact shows: outcome counts, result
// sources, and any plugins the build degraded.
//
// Writers implement the Writer interface, allowing them to be used
// interchangeably and composed for multi-format output.
package report

// Package resultsource discovers and normalizes raw test-execution
// results found under input directories.
//
// One Source exists per (input directory x supported format) pair. A
// directory containing results in several formats yields several sources;
// a directory containing none yields sources that report zero results.
// Finding nothing is never an error — the report build treats an empty
// source exactly like a populated one.
//
// Results are discovered lazily: a Source records only its directory and
// format at construction, and scans the filesystem on the first Results
// call. The scan is cached, so repeated calls are cheap.
//
// Per-file parse failures are logged and the file is skipped. A single
// malformed result file must not discard the rest of a directory.
package resultsource

// Package history provides SQLite-backed storage of per-build statistics.
//
// Each report build appends one row of outcome counts. The trend widget
// and the history CLI command read recent rows back, which is how a
// single report shows how the test suite evolved across builds.
//
// The store lives outside the output tree (by default in the XDG data
// directory), so regenerating a report into a fresh output directory
// keeps the build history intact.
package history

// Package model defines the core data structures for test results and
// report aggregation.
//
// The types in this package are pure data: they carry no behavior beyond
// small derivation helpers (status parsing, statistic accumulation). All
// I/O — discovering results on disk, writing report artifacts — lives in
// other packages that consume these types.
//
// Design decision: We keep the result model independent of any input
// format. Format adapters (Allure 1.4 XML, JUnit XML) normalize into
// TestResult so that aggregation and report writing never need to know
// where a result came from.
package model

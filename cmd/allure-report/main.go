// Package main provides the entry point for the allure-report CLI.
//
// allure-report builds a self-contained test report artifact from one or
// more directories of raw test results (Allure 1 XML, JUnit XML).
//
// Usage:
//
//	allure-report generate --output report results/
//	allure-report history
//
// See --help for all available options.
package main

// main is the entry point for allure-report.
func main() {
	Execute()
}

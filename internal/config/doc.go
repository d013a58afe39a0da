// Package config holds build configuration for the report generator.
//
// Configuration comes from two places:
//   - CLI flags, which populate Config directly (no global state; the
//     config is constructed once and passed down by value reference)
//   - an optional YAML report configuration file (.allure-report.yaml)
//     providing defect categories and static environment entries
//
// Design decision: We validate once after flag parsing via Validate()
// rather than at each point of use, so a bad invocation fails fast with
// a specific sentinel error before any filesystem writes happen.
package config

// Package assets unpacks plugin static asset bundles into the report
// output tree.
//
// Assets ship inside the binary as an embedded filesystem. Each plugin
// owns the logical namespace "allure"+name+"/" within the bundle, and
// unpacking a plugin copies everything under its namespace to
// plugins/<name>/ in the output, preserving the relative layout
// byte-for-byte.
//
// Unpacking is best effort per plugin: an I/O failure abandons that one
// plugin's assets (logged with the plugin name) and never aborts the
// build or blocks other plugins. Plugin output directories are disjoint,
// so the fan-out across plugins runs in parallel.
package assets

// Package render produces the report's entry page.
//
// The entry page is a single index.html listing the active plugins and
// loading each one's unpacked assets from plugins/<name>/. The template
// receives exactly one value: the active plugin names. Names are sorted
// before rendering so two builds over the same catalogue produce
// byte-identical pages.
package render

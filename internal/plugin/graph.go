package plugin

import (
	"github.com/allurefw/report/internal/resultsource"
)

// ServiceGraph is the resolved set of result sources, modules, and
// plugins for one build. It is built once, immutable afterwards, and
// handed to the processing run together with the output directory.
//
// Design decision: Modules and plugins are flattened into a single
// contributor list at construction. Capability queries walk that list
// uniformly, so the processing run cannot (and need not) tell a plugin
// capability from a module capability.
type ServiceGraph struct {
	sources      []resultsource.Source
	contributors []any
}

// NewServiceGraph flattens sources, modules, and plugins into one graph.
func NewServiceGraph(sources []resultsource.Source, modules []Module, plugins []Plugin) *ServiceGraph {
	contributors := make([]any, 0, len(modules)+len(plugins))
	for _, m := range modules {
		contributors = append(contributors, m)
	}
	for _, p := range plugins {
		contributors = append(contributors, p)
	}
	return &ServiceGraph{sources: sources, contributors: contributors}
}

// Sources returns the discovered result sources in input order.
func (g *ServiceGraph) Sources() []resultsource.Source {
	return g.sources
}

// Aggregators returns every contributor with the Aggregator capability,
// in catalogue order (modules first, then plugins).
func (g *ServiceGraph) Aggregators() []Aggregator {
	var out []Aggregator
	for _, c := range g.contributors {
		if a, ok := c.(Aggregator); ok {
			out = append(out, a)
		}
	}
	return out
}

// DataWriters returns every contributor with the DataWriter capability.
func (g *ServiceGraph) DataWriters() []DataWriter {
	var out []DataWriter
	for _, c := range g.contributors {
		if w, ok := c.(DataWriter); ok {
			out = append(out, w)
		}
	}
	return out
}

// Recorders returns every contributor with the Recorder capability.
func (g *ServiceGraph) Recorders() []Recorder {
	var out []Recorder
	for _, c := range g.contributors {
		if r, ok := c.(Recorder); ok {
			out = append(out, r)
		}
	}
	return out
}

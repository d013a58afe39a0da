package plugin

import (
	"fmt"
	"sort"
)

// Catalogue holds the fixed set of plugin and module instances for one
// build. The order is catalogue-defined, not caller-configurable, and
// all instances live only for the build that created them.
type Catalogue struct {
	plugins []Plugin
	modules []Module
}

// NewCatalogue creates a catalogue over the given contributors.
func NewCatalogue(plugins []Plugin, modules []Module) *Catalogue {
	return &Catalogue{plugins: plugins, modules: modules}
}

// Plugins returns the plugin list in catalogue order.
func (c *Catalogue) Plugins() []Plugin {
	return c.plugins
}

// Modules returns the module list in catalogue order.
func (c *Catalogue) Modules() []Module {
	return c.modules
}

// ActiveNames returns the sorted, de-duplicated names of plugins that
// ship static content. These names drive the entry page and the asset
// unpack, so the sort makes both deterministic regardless of catalogue
// order.
func (c *Catalogue) ActiveNames() []string {
	seen := make(map[string]struct{}, len(c.plugins))
	names := make([]string, 0, len(c.plugins))
	for _, p := range c.plugins {
		if !p.HasStaticContent() {
			continue
		}
		if _, dup := seen[p.Name()]; dup {
			continue
		}
		seen[p.Name()] = struct{}{}
		names = append(names, p.Name())
	}
	sort.Strings(names)
	return names
}

// Validate reports catalogue problems: duplicate plugin names and names
// that are prefixes of other names (which would make the asset namespace
// match ambiguous). Problems are returned, not raised: duplicates
// collapse in the active set and the build proceeds, but the caller
// should log them.
func (c *Catalogue) Validate() []string {
	var problems []string

	seen := make(map[string]struct{}, len(c.plugins))
	for _, p := range c.plugins {
		if _, dup := seen[p.Name()]; dup {
			problems = append(problems, fmt.Sprintf("duplicate plugin name %q", p.Name()))
			continue
		}
		seen[p.Name()] = struct{}{}
	}

	names := make([]string, 0, len(seen))
	for name := range seen {
		names = append(names, name)
	}
	sort.Strings(names)
	for i := 0; i+1 < len(names); i++ {
		if len(names[i]) < len(names[i+1]) && names[i+1][:len(names[i])] == names[i] {
			problems = append(problems,
				fmt.Sprintf("plugin name %q is a prefix of %q", names[i], names[i+1]))
		}
	}

	return problems
}

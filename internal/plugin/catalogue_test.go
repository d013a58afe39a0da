package plugin

import (
	"strings"
	"testing"
)

// fakePlugin is a minimal Plugin for catalogue tests.
type fakePlugin struct {
	name   string
	static bool
}

func (f fakePlugin) Name() string           { return f.name }
func (f fakePlugin) HasStaticContent() bool { return f.static }

// TestCatalogueActiveNames tests the active-name set derivation.
func TestCatalogueActiveNames(t *testing.T) {
	t.Parallel()

	t.Run("only static plugins contribute, sorted", func(t *testing.T) {
		t.Parallel()

		c := NewCatalogue([]Plugin{
			fakePlugin{name: "zeta", static: true},
			fakePlugin{name: "alpha", static: true},
			fakePlugin{name: "mid", static: false},
		}, nil)

		got := c.ActiveNames()
		want := []string{"alpha", "zeta"}
		if len(got) != len(want) || got[0] != want[0] || got[1] != want[1] {
			t.Errorf("expected %v, got %v", want, got)
		}
	})

	t.Run("duplicate names collapse to one", func(t *testing.T) {
		t.Parallel()

		c := NewCatalogue([]Plugin{
			fakePlugin{name: "packages", static: true},
			fakePlugin{name: "packages", static: true},
		}, nil)

		if got := c.ActiveNames(); len(got) != 1 || got[0] != "packages" {
			t.Errorf("expected [packages], got %v", got)
		}
	})

	t.Run("empty catalogue yields empty set", func(t *testing.T) {
		t.Parallel()

		c := NewCatalogue(nil, nil)
		if got := c.ActiveNames(); len(got) != 0 {
			t.Errorf("expected empty set, got %v", got)
		}
	})
}

// TestCatalogueValidate tests startup-time catalogue checks.
func TestCatalogueValidate(t *testing.T) {
	t.Parallel()

	t.Run("reports duplicate names", func(t *testing.T) {
		t.Parallel()

		c := NewCatalogue([]Plugin{
			fakePlugin{name: "graph", static: true},
			fakePlugin{name: "graph", static: true},
		}, nil)

		problems := c.Validate()
		if len(problems) != 1 || !strings.Contains(problems[0], "duplicate") {
			t.Errorf("expected one duplicate problem, got %v", problems)
		}
	})

	t.Run("reports prefix collisions", func(t *testing.T) {
		t.Parallel()

		c := NewCatalogue([]Plugin{
			fakePlugin{name: "graph", static: true},
			fakePlugin{name: "graphext", static: true},
		}, nil)

		problems := c.Validate()
		if len(problems) != 1 || !strings.Contains(problems[0], "prefix") {
			t.Errorf("expected one prefix problem, got %v", problems)
		}
	})

	t.Run("builtin catalogue is clean", func(t *testing.T) {
		t.Parallel()

		c := DefaultCatalogue(nil, nil)
		if problems := c.Validate(); len(problems) != 0 {
			t.Errorf("expected no problems, got %v", problems)
		}
	})
}

// TestDefaultCatalogue tests the builtin contributor set.
func TestDefaultCatalogue(t *testing.T) {
	t.Parallel()

	c := DefaultCatalogue(nil, nil)

	t.Run("active names match the static plugins", func(t *testing.T) {
		t.Parallel()

		got := c.ActiveNames()
		want := []string{"behaviors", "defects", "graph", "opensansfont", "packages", "timeline", "xunit"}
		if len(got) != len(want) {
			t.Fatalf("expected %v, got %v", want, got)
		}
		for i := range want {
			if got[i] != want[i] {
				t.Fatalf("expected %v, got %v", want, got)
			}
		}
	})

	t.Run("issue and tms plugins carry no static content", func(t *testing.T) {
		t.Parallel()

		for _, p := range c.Plugins() {
			if (p.Name() == "issue" || p.Name() == "tms") && p.HasStaticContent() {
				t.Errorf("plugin %q should not have static content", p.Name())
			}
		}
	})

	t.Run("nil store omits history module", func(t *testing.T) {
		t.Parallel()

		for _, m := range c.Modules() {
			if m.ModuleName() == "history" {
				t.Error("expected no history module without a store")
			}
		}
	})
}

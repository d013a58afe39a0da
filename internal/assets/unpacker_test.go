package assets

import (
	"bytes"
	"context"
	"io/fs"
	"os"
	"path/filepath"
	"testing"
	"testing/fstest"
)

// testBundle builds an in-memory bundle with two plugin namespaces.
func testBundle() fstest.MapFS {
	return fstest.MapFS{
		"alluregraph/index.js":       {Data: []byte("graph js")},
		"alluregraph/css/charts.css": {Data: []byte("graph css")},
		"alluredefects/index.js":     {Data: []byte("defects js")},
		"unrelated/readme.txt":       {Data: []byte("not a plugin namespace")},
	}
}

// TestUnpack tests namespace-prefixed asset extraction.
func TestUnpack(t *testing.T) {
	t.Parallel()

	t.Run("copies namespace contents byte-identical", func(t *testing.T) {
		t.Parallel()

		dest := t.TempDir()
		u := NewUnpacker(WithBundle(testBundle()))

		if err := u.Unpack("graph", dest); err != nil {
			t.Fatalf("Unpack returned error: %v", err)
		}

		got, err := os.ReadFile(filepath.Join(dest, "index.js"))
		if err != nil {
			t.Fatalf("expected unpacked asset: %v", err)
		}
		if !bytes.Equal(got, []byte("graph js")) {
			t.Errorf("asset content mismatch: %q", got)
		}

		nested, err := os.ReadFile(filepath.Join(dest, "css", "charts.css"))
		if err != nil {
			t.Fatalf("expected nested asset with parent directories: %v", err)
		}
		if !bytes.Equal(nested, []byte("graph css")) {
			t.Errorf("nested asset content mismatch: %q", nested)
		}
	})

	t.Run("other namespaces are not copied", func(t *testing.T) {
		t.Parallel()

		dest := t.TempDir()
		u := NewUnpacker(WithBundle(testBundle()))

		if err := u.Unpack("graph", dest); err != nil {
			t.Fatal(err)
		}

		if _, err := os.Stat(filepath.Join(dest, "readme.txt")); !os.IsNotExist(err) {
			t.Error("expected out-of-namespace file to be absent")
		}
		if _, err := os.Stat(filepath.Join(dest, "..", "defects")); !os.IsNotExist(err) {
			t.Error("expected other plugin namespace to be absent")
		}
	})

	t.Run("empty namespace unpacks nothing without error", func(t *testing.T) {
		t.Parallel()

		dest := t.TempDir()
		u := NewUnpacker(WithBundle(testBundle()))

		if err := u.Unpack("nonexistent", dest); err != nil {
			t.Errorf("expected nil error for empty namespace, got %v", err)
		}

		entries, err := os.ReadDir(dest)
		if err != nil {
			t.Fatal(err)
		}
		if len(entries) != 0 {
			t.Errorf("expected empty destination, got %d entries", len(entries))
		}
	})
}

// TestNamespacePrefix tests the namespace rule.
func TestNamespacePrefix(t *testing.T) {
	t.Parallel()

	if got := NamespacePrefix("graph"); got != "alluregraph/" {
		t.Errorf("expected alluregraph/, got %q", got)
	}
}

// failingFS wraps an fs.FS and fails reads for one path.
type failingFS struct {
	fstest.MapFS
	failPath string
}

func (f failingFS) ReadFile(name string) ([]byte, error) {
	if name == f.failPath {
		return nil, fs.ErrPermission
	}
	return f.MapFS.ReadFile(name)
}

// TestUnpackAll tests the parallel fan-out and its isolation guarantee.
func TestUnpackAll(t *testing.T) {
	t.Parallel()

	t.Run("unpacks every plugin into its own subtree", func(t *testing.T) {
		t.Parallel()

		pluginsDir := t.TempDir()
		u := NewUnpacker(WithBundle(testBundle()))

		degraded := u.UnpackAll(context.Background(), []string{"graph", "defects"}, pluginsDir, 2)
		if len(degraded) != 0 {
			t.Fatalf("expected no degraded plugins, got %v", degraded)
		}

		for _, path := range []string{
			filepath.Join(pluginsDir, "graph", "index.js"),
			filepath.Join(pluginsDir, "defects", "index.js"),
		} {
			if _, err := os.Stat(path); err != nil {
				t.Errorf("expected %s: %v", path, err)
			}
		}
	})

	t.Run("one failing plugin does not block the others", func(t *testing.T) {
		t.Parallel()

		pluginsDir := t.TempDir()
		u := NewUnpacker(WithBundle(failingFS{
			MapFS:    testBundle(),
			failPath: "alluregraph/index.js",
		}))

		degraded := u.UnpackAll(context.Background(), []string{"graph", "defects"}, pluginsDir, 2)
		if len(degraded) != 1 || degraded[0] != "graph" {
			t.Fatalf("expected [graph] degraded, got %v", degraded)
		}

		if _, err := os.Stat(filepath.Join(pluginsDir, "defects", "index.js")); err != nil {
			t.Errorf("expected healthy plugin assets despite sibling failure: %v", err)
		}
	})

	t.Run("non-positive jobs still unpacks", func(t *testing.T) {
		t.Parallel()

		pluginsDir := t.TempDir()
		u := NewUnpacker(WithBundle(testBundle()))

		if degraded := u.UnpackAll(context.Background(), []string{"graph"}, pluginsDir, 0); len(degraded) != 0 {
			t.Errorf("expected no degraded plugins, got %v", degraded)
		}
	})
}

// TestDefaultBundle tests the embedded bundle carries the builtin
// plugin namespaces.
func TestDefaultBundle(t *testing.T) {
	t.Parallel()

	for _, name := range []string{"opensansfont", "defects", "xunit", "behaviors", "packages", "timeline", "graph"} {
		found := false
		err := fs.WalkDir(Default(), ".", func(path string, d fs.DirEntry, err error) error {
			if err != nil {
				return err
			}
			if !d.IsDir() && len(path) > len(NamespacePrefix(name)) &&
				path[:len(NamespacePrefix(name))] == NamespacePrefix(name) {
				found = true
			}
			return nil
		})
		if err != nil {
			t.Fatalf("walking embedded bundle: %v", err)
		}
		if !found {
			t.Errorf("embedded bundle has no assets for plugin %q", name)
		}
	}
}

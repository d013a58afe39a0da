package assets

import (
	"context"
	"embed"
	"fmt"
	"io/fs"
	"log/slog"
	"os"
	"path/filepath"
	"strings"
	"sync"

	"golang.org/x/sync/errgroup"

	"github.com/allurefw/report/internal/log"
)

//go:embed all:static
var bundle embed.FS

// Default returns the embedded asset bundle shipped with the binary.
func Default() fs.FS {
	sub, err := fs.Sub(bundle, "static")
	if err != nil {
		// The static directory is compiled in; a failure here means a
		// broken build of the binary itself.
		panic(fmt.Sprintf("embedded asset bundle is missing: %v", err))
	}
	return sub
}

// NamespacePrefix returns the logical asset namespace of a plugin.
func NamespacePrefix(pluginName string) string {
	return "allure" + pluginName + "/"
}

// Unpacker copies plugin asset namespaces from a bundle filesystem into
// destination directories.
type Unpacker struct {
	fsys   fs.FS
	logger *slog.Logger
}

// Option configures an Unpacker.
type Option func(*Unpacker)

// WithBundle sets the bundle filesystem. Tests use fstest.MapFS here;
// the default is the embedded bundle.
func WithBundle(fsys fs.FS) Option {
	return func(u *Unpacker) {
		u.fsys = fsys
	}
}

// WithLogger sets a custom logger.
func WithLogger(logger *slog.Logger) Option {
	return func(u *Unpacker) {
		u.logger = logger
	}
}

// NewUnpacker creates an Unpacker over the embedded bundle.
func NewUnpacker(opts ...Option) *Unpacker {
	u := &Unpacker{
		fsys:   Default(),
		logger: slog.Default(),
	}
	for _, opt := range opts {
		opt(u)
	}
	return u
}

// Unpack copies every bundle entry under the plugin's namespace to
// destination/<remainder>. It returns the first I/O failure encountered;
// the caller decides whether that degrades or aborts (the build treats
// it as degradation).
func (u *Unpacker) Unpack(pluginName, destination string) error {
	prefix := NamespacePrefix(pluginName)

	return fs.WalkDir(u.fsys, ".", func(path string, d fs.DirEntry, err error) error {
		if err != nil {
			return fmt.Errorf("failed to scan asset bundle: %w", err)
		}
		if d.IsDir() || !strings.HasPrefix(path, prefix) {
			return nil
		}

		remainder := strings.TrimPrefix(path, prefix)
		dest := filepath.Join(destination, filepath.FromSlash(remainder))

		if err := os.MkdirAll(filepath.Dir(dest), 0750); err != nil {
			return fmt.Errorf("failed to create asset directory: %w", err)
		}

		content, err := fs.ReadFile(u.fsys, path)
		if err != nil {
			return fmt.Errorf("failed to read asset %s: %w", path, err)
		}
		if err := os.WriteFile(dest, content, 0600); err != nil {
			return fmt.Errorf("failed to write asset %s: %w", remainder, err)
		}

		u.logger.Debug("asset copied", "plugin", pluginName, "asset", remainder)
		return nil
	})
}

// UnpackAll unpacks every named plugin into pluginsDir/<name>/, fanning
// out across at most jobs goroutines. Failures are logged per plugin and
// never abort the fan-out; the returned slice lists the plugins whose
// assets are missing or partial, sorted by the caller's input order.
//
// The active plugin set must be fixed before this is called: the entry
// page has to reflect the full set regardless of unpack outcomes.
func (u *Unpacker) UnpackAll(ctx context.Context, names []string, pluginsDir string, jobs int) []string {
	if jobs <= 0 {
		jobs = 1
	}

	var (
		mu       sync.Mutex
		degraded []string
	)

	g, ctx := errgroup.WithContext(ctx)
	g.SetLimit(jobs)

	for _, name := range names {
		g.Go(func() error {
			select {
			case <-ctx.Done():
				return nil
			default:
			}

			if err := u.Unpack(name, filepath.Join(pluginsDir, name)); err != nil {
				u.logger.Warn("plugin asset unpack failed",
					log.PluginKey, name,
					"error", err,
				)
				mu.Lock()
				degraded = append(degraded, name)
				mu.Unlock()
			}
			return nil
		})
	}

	// Workers never return errors; Wait only flushes the group.
	_ = g.Wait()

	// Preserve the input order of the degraded names.
	order := make(map[string]int, len(names))
	for i, name := range names {
		order[name] = i
	}
	for i := 0; i < len(degraded); i++ {
		for j := i + 1; j < len(degraded); j++ {
			if order[degraded[j]] < order[degraded[i]] {
				degraded[i], degraded[j] = degraded[j], degraded[i]
			}
		}
	}
	return degraded
}

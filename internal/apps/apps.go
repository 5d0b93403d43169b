// Package apps discovers installed applications and builds the application
// index. What counts as an application, and where to look, comes from the
// platform capability.
package apps

import (
	"context"
	"io/fs"
	"log/slog"
	"os"
	"path/filepath"
	"strings"

	amerrors "github.com/Aman-CERP/amanlaunch/internal/errors"
	"github.com/Aman-CERP/amanlaunch/internal/index"
	"github.com/Aman-CERP/amanlaunch/internal/platform"
)

// Options configures application discovery.
type Options struct {
	// Progress, if set, is called after each application directory with the
	// number of applications found so far.
	Progress func(found int, dir string)
}

// Discover walks the platform's application directories in priority order
// and returns an index with one locator per application name. The first
// locator found for a name wins. Missing or unreadable directories are
// skipped.
func Discover(ctx context.Context, p platform.Platform, opts Options) *index.Index {
	b := index.NewFirstWinsBuilder()

	for _, dir := range p.ApplicationDirs() {
		if ctx.Err() != nil {
			break
		}
		info, err := os.Stat(dir)
		if err != nil || !info.IsDir() {
			slog.Debug("skipping application directory", slog.String("dir", dir))
			continue
		}

		if p.RecursiveAppDirs() {
			walkTree(ctx, p, dir, b)
		} else {
			scanFlat(p, dir, b)
		}

		if opts.Progress != nil {
			opts.Progress(b.Len(), dir)
		}
	}

	idx := b.Build()
	slog.Info("application discovery complete",
		slog.String("platform", p.Name()),
		slog.Int("apps", idx.Len()))
	return idx
}

// scanFlat classifies the direct children of dir.
func scanFlat(p platform.Platform, dir string, b *index.Builder) {
	entries, err := os.ReadDir(dir)
	if err != nil {
		slog.Debug("skipping application directory",
			slog.Any("error", amerrors.CrawlSubtreeError(dir, err)))
	}
	// ReadDir returns what it read before failing.
	for _, d := range entries {
		path := filepath.Join(dir, d.Name())
		if name, ok := p.ClassifyApp(path, d); ok {
			b.Add(name, path)
		}
	}
}

// walkTree classifies everything under dir. Application directories such as
// bundles are recorded and not descended into.
func walkTree(ctx context.Context, p platform.Platform, dir string, b *index.Builder) {
	_ = filepath.WalkDir(dir, func(path string, d fs.DirEntry, err error) error {
		if ctx.Err() != nil {
			return ctx.Err()
		}
		if err != nil {
			slog.Debug("skipping subtree",
				slog.Any("error", amerrors.CrawlSubtreeError(path, err)))
			if d != nil && d.IsDir() && path != dir {
				return filepath.SkipDir
			}
			return nil
		}
		if path == dir {
			return nil
		}

		name, ok := p.ClassifyApp(path, d)
		if d.IsDir() {
			if ok {
				b.Add(name, path)
				return filepath.SkipDir
			}
			if strings.HasPrefix(d.Name(), ".") {
				return filepath.SkipDir
			}
			return nil
		}
		if ok {
			b.Add(name, path)
		}
		return nil
	})
}

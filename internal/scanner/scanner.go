package scanner

import (
	"context"
	"errors"
	"io/fs"
	"log/slog"
	"os"
	"path/filepath"
	"runtime"
	"sync/atomic"
	"unicode/utf8"

	"golang.org/x/sync/errgroup"

	amerrors "github.com/Aman-CERP/amanlaunch/internal/errors"
	"github.com/Aman-CERP/amanlaunch/internal/index"
	"github.com/Aman-CERP/amanlaunch/internal/platform"
)

// Crawl walks every root and returns a fresh file index keyed by base name.
//
// Roots are walked concurrently, each into its own builder, and merged in
// root order, so the result does not depend on scheduling. Unreadable roots,
// subtrees and files are skipped; Crawl never fails. If ctx is cancelled the
// walk stops and whatever was collected so far is returned.
func Crawl(ctx context.Context, roots []string, ex Exclusions, opts Options) *index.Index {
	workers := opts.Workers
	if workers <= 0 {
		workers = runtime.NumCPU()
	}
	batch := opts.BatchSize
	if batch <= 0 {
		batch = DefaultBatchSize
	}

	c := &crawler{ex: ex, batch: int64(batch), progress: opts.Progress}
	parts := make([]*index.Index, len(roots))

	var g errgroup.Group
	g.SetLimit(workers)
	for i, root := range roots {
		g.Go(func() error {
			parts[i] = c.crawlRoot(ctx, root)
			return nil
		})
	}
	_ = g.Wait()

	b := index.NewBuilder()
	for _, part := range parts {
		b.Merge(part)
	}
	idx := b.Build()

	slog.Info("file crawl complete",
		slog.Int("roots", len(roots)),
		slog.Int("names", idx.Len()),
		slog.Int64("files", c.count.Load()))
	return idx
}

// errInvalidName marks paths that are not valid UTF-8. They cannot be
// persisted or matched reliably, so they are never indexed.
var errInvalidName = errors.New("name is not valid UTF-8")

type crawler struct {
	ex       Exclusions
	batch    int64
	progress func(count int, dir string)
	count    atomic.Int64
}

func (c *crawler) crawlRoot(ctx context.Context, root string) *index.Index {
	b := index.NewBuilder()

	info, err := os.Stat(root)
	if err != nil {
		slog.Warn("skipping unreadable root", slog.String("root", root), slog.String("error", err.Error()))
		return b.Build()
	}
	if !info.IsDir() {
		slog.Warn("skipping root that is not a directory", slog.String("root", root))
		return b.Build()
	}

	err = filepath.WalkDir(root, func(path string, d fs.DirEntry, err error) error {
		if ctxErr := ctx.Err(); ctxErr != nil {
			return ctxErr
		}

		if err != nil {
			slog.Debug("skipping subtree",
				slog.Any("error", amerrors.CrawlSubtreeError(path, err)))
			if d != nil && d.IsDir() && path != root {
				return filepath.SkipDir
			}
			return nil
		}

		if d.IsDir() {
			if path == root {
				return nil
			}
			if c.ex.SkipDir(d.Name()) || c.ex.SkipPath(path) {
				return filepath.SkipDir
			}
			if !utf8.ValidString(d.Name()) {
				slog.Debug("skipping subtree",
					slog.Any("error", amerrors.CrawlSubtreeError(path, errInvalidName)))
				return filepath.SkipDir
			}
			return nil
		}

		// Symlinks, devices and sockets are neither indexed nor followed.
		if !d.Type().IsRegular() {
			return nil
		}
		if c.ex.SkipExt(filepath.Ext(d.Name())) {
			return nil
		}
		if !utf8.ValidString(path) {
			slog.Debug("skipping file",
				slog.Any("error", amerrors.FileAccessError(path, errInvalidName)))
			return nil
		}

		fi, err := d.Info()
		if err != nil {
			slog.Debug("skipping file",
				slog.Any("error", amerrors.FileAccessError(path, err)))
			return nil
		}
		if c.ex.TooLarge(fi.Size()) {
			return nil
		}

		b.Add(d.Name(), path)
		if n := c.count.Add(1); n%c.batch == 0 && c.progress != nil {
			c.progress(int(n), filepath.Dir(path))
		}
		return nil
	})
	if err != nil {
		slog.Debug("crawl stopped", slog.String("root", root), slog.String("error", err.Error()))
	}
	return b.Build()
}

// DefaultRoots returns the local volumes to crawl, falling back to the
// platform's system root when enumeration fails or finds nothing. The skip
// list survives the fallback so pseudo mounts stay pruned.
func DefaultRoots(ctx context.Context, p platform.Platform) platform.Volumes {
	vols, err := p.VolumeRoots(ctx)
	if err != nil {
		slog.Warn("volume enumeration failed, using fallback roots",
			slog.String("platform", p.Name()),
			slog.String("error", err.Error()))
		return platform.Volumes{Roots: p.FallbackRoots()}
	}
	if len(vols.Roots) == 0 {
		vols.Roots = p.FallbackRoots()
	}
	return vols
}

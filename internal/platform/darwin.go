package platform

import (
	"context"
	"io/fs"
	"path/filepath"
	"strings"
)

const bundleSuffix = ".app"

// darwinPlatform discovers installed .app bundles.
type darwinPlatform struct {
	env Env
}

func (p *darwinPlatform) Name() string { return "darwin" }

func (p *darwinPlatform) VolumeRoots(ctx context.Context) (Volumes, error) {
	return localVolumeRoots(ctx)
}

func (p *darwinPlatform) FallbackRoots() []string { return []string{"/"} }

func (p *darwinPlatform) ApplicationDirs() []string {
	dirs := []string{"/Applications", "/System/Applications"}
	if p.env.HomeDir != "" {
		dirs = append(dirs, filepath.Join(p.env.HomeDir, "Applications"))
	}
	return dirs
}

func (p *darwinPlatform) RecursiveAppDirs() bool { return true }

// ClassifyApp accepts bundle directories; the caller must not descend into them.
func (p *darwinPlatform) ClassifyApp(path string, d fs.DirEntry) (string, bool) {
	if !d.IsDir() || !strings.HasSuffix(d.Name(), bundleSuffix) {
		return "", false
	}
	name := strings.TrimSuffix(d.Name(), bundleSuffix)
	return name, name != ""
}

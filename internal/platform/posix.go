package platform

import (
	"context"
	"io/fs"
	"os"
	"path/filepath"
	"strings"
)

// posixPlatform covers Linux and the BSDs: applications are executables
// found on $PATH.
type posixPlatform struct {
	env Env
}

func (p *posixPlatform) Name() string { return "posix" }

func (p *posixPlatform) VolumeRoots(ctx context.Context) (Volumes, error) {
	return localVolumeRoots(ctx)
}

func (p *posixPlatform) FallbackRoots() []string { return []string{"/"} }

// ApplicationDirs returns the $PATH entries in order, without blanks or repeats.
func (p *posixPlatform) ApplicationDirs() []string {
	return splitPathList(p.env.get("PATH"), ":")
}

func (p *posixPlatform) RecursiveAppDirs() bool { return false }

// ClassifyApp accepts regular files, or symlinks to regular files, with any
// execute bit set.
func (p *posixPlatform) ClassifyApp(path string, d fs.DirEntry) (string, bool) {
	if d.IsDir() {
		return "", false
	}

	var info fs.FileInfo
	var err error
	if d.Type()&fs.ModeSymlink != 0 {
		info, err = os.Stat(path)
	} else {
		info, err = d.Info()
	}
	if err != nil || !info.Mode().IsRegular() {
		return "", false
	}
	if info.Mode().Perm()&0o111 == 0 {
		return "", false
	}
	return d.Name(), true
}

func splitPathList(list, sep string) []string {
	var out []string
	seen := make(map[string]bool)
	for _, dir := range strings.Split(list, sep) {
		dir = strings.TrimSpace(dir)
		if dir == "" {
			continue
		}
		dir = filepath.Clean(dir)
		if seen[dir] {
			continue
		}
		seen[dir] = true
		out = append(out, dir)
	}
	return out
}

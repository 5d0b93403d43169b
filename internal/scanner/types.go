// Package scanner crawls local filesystem roots and builds the file-name index.
// Excluded directories are pruned before descent, and files are filtered by
// extension and size.
package scanner

import (
	"path/filepath"
	"strings"
)

// DefaultMaxFileSize is the largest file indexed by default (100MB).
const DefaultMaxFileSize = 100 * 1024 * 1024

// DefaultBatchSize is how many indexed files pass between progress callbacks.
const DefaultBatchSize = 1000

// DefaultExcludedDirs are system and bulky directories never worth crawling.
var DefaultExcludedDirs = []string{
	"System Volume Information",
	"$Recycle.Bin",
	"Windows",
	"Program Files",
	"Program Files (x86)",
	"AppData",
}

// DefaultExcludedExtensions are binary, temporary and database files.
var DefaultExcludedExtensions = []string{
	".sys", ".dll", ".exe", ".com", ".tmp", ".log", ".bin",
	".msi", ".cab", ".dat", ".ini", ".db", ".sqlite",
}

// Exclusions decides which directories are skipped and which files are indexed.
type Exclusions struct {
	// Dirs holds directory base names that are never descended into.
	Dirs map[string]struct{}

	// Extensions holds lower-case extensions, with the leading dot, that are
	// never indexed.
	Extensions map[string]struct{}

	// MaxFileSize is the largest indexable file in bytes (0 = DefaultMaxFileSize).
	MaxFileSize int64

	// Paths holds cleaned absolute directories that are never descended
	// into, such as pseudo filesystems mounted under a crawled root.
	Paths map[string]struct{}
}

// NewExclusions builds an Exclusions from plain lists. Extensions are matched
// case-insensitively and may be given with or without the leading dot.
func NewExclusions(dirs, exts []string, maxSize int64) Exclusions {
	ex := Exclusions{
		Dirs:        make(map[string]struct{}, len(dirs)),
		Extensions:  make(map[string]struct{}, len(exts)),
		MaxFileSize: maxSize,
	}
	for _, d := range dirs {
		if d != "" {
			ex.Dirs[d] = struct{}{}
		}
	}
	for _, e := range exts {
		if e = normalizeExt(e); e != "" {
			ex.Extensions[e] = struct{}{}
		}
	}
	return ex
}

// DefaultExclusions returns the built-in exclusion rules.
func DefaultExclusions() Exclusions {
	return NewExclusions(DefaultExcludedDirs, DefaultExcludedExtensions, DefaultMaxFileSize)
}

// SkipDir reports whether a directory with this base name is pruned.
// Names in Dirs and hidden names (leading '.') are pruned.
func (ex Exclusions) SkipDir(name string) bool {
	if strings.HasPrefix(name, ".") {
		return true
	}
	_, ok := ex.Dirs[name]
	return ok
}

// WithPaths returns a copy of ex that also prunes the given directories.
func (ex Exclusions) WithPaths(paths ...string) Exclusions {
	merged := make(map[string]struct{}, len(ex.Paths)+len(paths))
	for p := range ex.Paths {
		merged[p] = struct{}{}
	}
	for _, p := range paths {
		if p != "" {
			merged[filepath.Clean(p)] = struct{}{}
		}
	}
	ex.Paths = merged
	return ex
}

// SkipPath reports whether the directory at path is pruned by location.
func (ex Exclusions) SkipPath(path string) bool {
	if len(ex.Paths) == 0 {
		return false
	}
	_, ok := ex.Paths[filepath.Clean(path)]
	return ok
}

// SkipExt reports whether files with extension ext are never indexed.
func (ex Exclusions) SkipExt(ext string) bool {
	if ext == "" {
		return false
	}
	_, ok := ex.Extensions[strings.ToLower(ext)]
	return ok
}

// TooLarge reports whether size exceeds the size threshold.
func (ex Exclusions) TooLarge(size int64) bool {
	limit := ex.MaxFileSize
	if limit <= 0 {
		limit = DefaultMaxFileSize
	}
	return size > limit
}

func normalizeExt(e string) string {
	e = strings.ToLower(strings.TrimSpace(e))
	if e == "" || e == "." {
		return ""
	}
	if !strings.HasPrefix(e, ".") {
		e = "." + e
	}
	return e
}

// Options configures a crawl.
type Options struct {
	// Workers is the number of roots crawled concurrently (0 = NumCPU).
	Workers int

	// BatchSize is the number of indexed files between Progress calls
	// (0 = DefaultBatchSize).
	BatchSize int

	// Progress, if set, receives the crawl-wide count of indexed files and
	// the directory being walked. It may be called from several goroutines.
	Progress func(count int, dir string)
}

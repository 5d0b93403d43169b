package apps

import (
	"fmt"
	"os"
	"path/filepath"
	"strings"

	lru "github.com/hashicorp/golang-lru/v2"
)

// describeCacheSize bounds the number of cached application descriptions.
const describeCacheSize = 4096

// Application descriptions shown as search metadata.
const (
	DescExecutable = "executable"
	DescBundle     = "bundle"
	DescShortcut   = "shortcut"
	DescUnknown    = "application"
)

// Describer labels application locators for display. Labels are cached, so
// repeated searches do not hit the filesystem for every application.
type Describer struct {
	cache *lru.Cache[string, string]
}

// NewDescriber creates a Describer caching up to size labels (0 = default).
func NewDescriber(size int) (*Describer, error) {
	if size <= 0 {
		size = describeCacheSize
	}
	cache, err := lru.New[string, string](size)
	if err != nil {
		return nil, fmt.Errorf("failed to create description cache: %w", err)
	}
	return &Describer{cache: cache}, nil
}

// Describe returns "executable", "bundle", "shortcut" or "symlink -> target"
// for the application at locator. Locators that cannot be inspected are
// labelled "application" and not cached.
func (d *Describer) Describe(locator string) string {
	if desc, ok := d.cache.Get(locator); ok {
		return desc
	}

	desc, ok := describe(locator)
	if ok {
		d.cache.Add(locator, desc)
	}
	return desc
}

// Purge drops every cached label. Called after a reindex.
func (d *Describer) Purge() {
	d.cache.Purge()
}

func describe(locator string) (string, bool) {
	info, err := os.Lstat(locator)
	if err != nil {
		return DescUnknown, false
	}

	switch {
	case info.Mode()&os.ModeSymlink != 0:
		target, err := os.Readlink(locator)
		if err != nil {
			return DescUnknown, false
		}
		return "symlink -> " + target, true
	case info.IsDir():
		return DescBundle, true
	case strings.EqualFold(filepath.Ext(locator), ".lnk"):
		return DescShortcut, true
	default:
		return DescExecutable, true
	}
}

package platform

import (
	"context"
	"log/slog"
	"path/filepath"
	"sort"
	"strings"

	"github.com/shirou/gopsutil/v4/disk"
)

// partitions is replaced in tests.
var partitions = disk.PartitionsWithContext

// localVolumeRoots lists physical mount points, drops pseudo filesystems and
// removes roots nested inside another root so nothing is crawled twice.
// Mounts that are not crawled on their own (kernel, virtual and network
// filesystems) are returned in Skip so a walk from "/" does not descend into
// them either.
func localVolumeRoots(ctx context.Context) (Volumes, error) {
	parts, err := partitions(ctx, false)
	if err != nil {
		return Volumes{}, err
	}

	roots := make([]string, 0, len(parts))
	physical := make(map[string]bool, len(parts))
	var skip []string
	for _, p := range parts {
		if p.Mountpoint == "" {
			continue
		}
		m := filepath.Clean(normalizeMount(p.Mountpoint))
		if isPseudoFS(p) {
			skip = append(skip, m)
			continue
		}
		physical[m] = true
		roots = append(roots, m)
	}

	// The full table adds the nodev mounts (proc, sysfs, nfs and friends)
	// that the physical listing leaves out.
	all, err := partitions(ctx, true)
	if err != nil {
		slog.Debug("mount_table_unavailable", slog.String("error", err.Error()))
	}
	for _, p := range all {
		if p.Mountpoint == "" {
			continue
		}
		m := filepath.Clean(normalizeMount(p.Mountpoint))
		if !physical[m] {
			skip = append(skip, m)
		}
	}

	roots = pruneNested(roots)
	return Volumes{Roots: roots, Skip: skipUnder(skip, roots)}, nil
}

// skipUnder keeps the skip paths that can be pruned during a walk: a
// filesystem root or an ancestor of a crawl root would hide the root itself.
func skipUnder(skip, roots []string) []string {
	seen := make(map[string]bool, len(skip))
	var out []string
	for _, s := range skip {
		if seen[s] || filepath.Dir(s) == s {
			continue
		}
		seen[s] = true
		covers := false
		for _, r := range roots {
			if isWithin(s, r) {
				covers = true
				break
			}
		}
		if !covers {
			out = append(out, s)
		}
	}
	sort.Strings(out)
	return out
}

// isPseudoFS reports kernel and virtual filesystems that hold no user files.
func isPseudoFS(p disk.PartitionStat) bool {
	switch p.Fstype {
	case "proc", "sysfs", "devtmpfs", "devpts",
		"tmpfs", "cgroup", "cgroup2", "pstore",
		"securityfs", "debugfs", "tracefs",
		"configfs", "overlay", "squashfs", "ramfs",
		"bpf", "nsfs", "autofs", "fusectl", "devfs":
		return true
	}
	return false
}

// normalizeMount turns a bare drive ("C:") into a walkable root ("C:\").
func normalizeMount(m string) string {
	if len(m) == 2 && m[1] == ':' {
		return m + `\`
	}
	return m
}

// pruneNested removes duplicates and any root that lives under another root.
// The result is sorted so the crawl order is stable across runs.
func pruneNested(roots []string) []string {
	cleaned := make([]string, 0, len(roots))
	seen := make(map[string]bool, len(roots))
	for _, r := range roots {
		c := filepath.Clean(r)
		if !seen[c] {
			seen[c] = true
			cleaned = append(cleaned, c)
		}
	}
	sort.Strings(cleaned)

	var out []string
	for _, r := range cleaned {
		nested := false
		for _, parent := range out {
			if isWithin(parent, r) {
				nested = true
				break
			}
		}
		if !nested {
			out = append(out, r)
		}
	}
	return out
}

func isWithin(parent, child string) bool {
	rel, err := filepath.Rel(parent, child)
	if err != nil {
		return false
	}
	return rel == "." || (rel != ".." && !strings.HasPrefix(rel, ".."+string(filepath.Separator)))
}

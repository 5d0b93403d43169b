package preflight

import (
	"context"
	"errors"
	"fmt"
	"os"

	"github.com/shirou/gopsutil/v4/disk"
	"github.com/shirou/gopsutil/v4/mem"

	"github.com/Aman-CERP/amanlaunch/internal/async"
	"github.com/Aman-CERP/amanlaunch/internal/index"
	"github.com/Aman-CERP/amanlaunch/internal/search"
)

// MinDiskSpaceBytes is the free space required next to the indexes.
const MinDiskSpaceBytes = 100 * 1024 * 1024

// MinMemoryBytes is the available memory below which a full-volume crawl
// is likely to swap.
const MinMemoryBytes = 512 * 1024 * 1024

func freeDiskBytes(ctx context.Context, path string) (uint64, error) {
	u, err := disk.UsageWithContext(ctx, path)
	if err != nil {
		return 0, err
	}
	return u.Free, nil
}

func availableMemoryBytes(ctx context.Context) (uint64, error) {
	v, err := mem.VirtualMemoryWithContext(ctx)
	if err != nil {
		return 0, err
	}
	return v.Available, nil
}

// CheckDiskSpace checks the free space on the data directory's volume.
func (c *Checker) CheckDiskSpace(ctx context.Context) CheckResult {
	result := CheckResult{
		Name:     "disk_space",
		Required: true,
	}

	free, err := c.freeDisk(ctx, c.cfg.DataDir)
	if err != nil {
		result.Status = StatusFail
		result.Message = fmt.Sprintf("failed to check disk space: %v", err)
		return result
	}

	result.Message = fmt.Sprintf("%s free (minimum: %s)", search.FormatSize(int64(free)), search.FormatSize(MinDiskSpaceBytes))
	if free < MinDiskSpaceBytes {
		result.Status = StatusFail
		return result
	}
	result.Status = StatusPass
	return result
}

// CheckMemory checks available system memory. A shortfall only warns.
func (c *Checker) CheckMemory(ctx context.Context) CheckResult {
	result := CheckResult{Name: "memory"}

	avail, err := c.freeMemory(ctx)
	if err != nil {
		result.Status = StatusWarn
		result.Message = fmt.Sprintf("failed to check memory: %v", err)
		return result
	}

	result.Message = fmt.Sprintf("%s available (recommended: %s)", search.FormatSize(int64(avail)), search.FormatSize(MinMemoryBytes))
	if avail < MinMemoryBytes {
		result.Status = StatusWarn
		return result
	}
	result.Status = StatusPass
	return result
}

// CheckCrawlLock warns when another process is crawling into the same data
// directory; a new crawl would be refused until it finishes.
func (c *Checker) CheckCrawlLock() CheckResult {
	result := CheckResult{Name: "crawl_lock"}
	if async.LockHeld(c.cfg.DataDir) {
		result.Status = StatusWarn
		result.Message = "held by another process"
		result.Details = async.NewFileLock(c.cfg.DataDir).Path()
		return result
	}
	result.Status = StatusPass
	result.Message = "free"
	return result
}

// CheckIndexes loads both persisted indexes. A missing index warns; an
// unreadable one fails without being critical, since the next crawl
// replaces it.
func (c *Checker) CheckIndexes() []CheckResult {
	var results []CheckResult
	for _, kind := range []index.Kind{index.KindFile, index.KindApp} {
		path := c.cfg.IndexPath(kind)
		result := CheckResult{Name: string(kind) + "_index", Details: path}

		if _, err := os.Stat(path); errors.Is(err, os.ErrNotExist) {
			result.Status = StatusWarn
			result.Message = "not built yet, run 'amanlaunch index'"
			results = append(results, result)
			continue
		}

		idx, err := index.Load(path)
		if err != nil {
			result.Status = StatusFail
			result.Message = err.Error()
			results = append(results, result)
			continue
		}

		st := idx.Stats()
		result.Status = StatusPass
		result.Message = fmt.Sprintf("%d names, %d locators", st.Names, st.Locators)
		results = append(results, result)
	}
	return results
}

package preflight

import (
	"bytes"
	"context"
	"encoding/json"
	"errors"
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/Aman-CERP/amanlaunch/internal/async"
	"github.com/Aman-CERP/amanlaunch/internal/config"
	"github.com/Aman-CERP/amanlaunch/internal/index"
)

func testConfig(t *testing.T) *config.Config {
	t.Helper()
	cfg := config.NewConfig()
	cfg.DataDir = filepath.Join(t.TempDir(), "data")
	return cfg
}

// fixedResources makes disk and memory checks deterministic.
func fixedResources(disk, memory uint64) Option {
	return func(c *Checker) {
		c.freeDisk = func(context.Context, string) (uint64, error) { return disk, nil }
		c.freeMemory = func(context.Context) (uint64, error) { return memory, nil }
	}
}

func findResult(t *testing.T, results []CheckResult, name string) CheckResult {
	t.Helper()
	for _, r := range results {
		if r.Name == name {
			return r
		}
	}
	t.Fatalf("no result named %s", name)
	return CheckResult{}
}

func TestCheckStatus_String(t *testing.T) {
	tests := []struct {
		status CheckStatus
		want   string
	}{
		{StatusPass, "PASS"},
		{StatusWarn, "WARN"},
		{StatusFail, "FAIL"},
		{CheckStatus(9), "UNKNOWN"},
	}
	for _, tt := range tests {
		t.Run(tt.want, func(t *testing.T) {
			assert.Equal(t, tt.want, tt.status.String())
		})
	}
}

func TestCheckResult_JSON(t *testing.T) {
	data, err := json.Marshal(CheckResult{Name: "memory", Status: StatusWarn, Message: "low"})

	require.NoError(t, err)
	assert.JSONEq(t, `{"name":"memory","status":"warn","message":"low","required":false}`, string(data))
}

func TestCheckResult_IsCritical(t *testing.T) {
	assert.False(t, CheckResult{Status: StatusPass, Required: true}.IsCritical())
	assert.True(t, CheckResult{Status: StatusFail, Required: true}.IsCritical())
	assert.False(t, CheckResult{Status: StatusFail}.IsCritical())
	assert.False(t, CheckResult{Status: StatusWarn, Required: true}.IsCritical())
}

func TestRunAll_FreshDataDir(t *testing.T) {
	// Given: a data directory that does not exist yet and ample resources
	cfg := testConfig(t)
	c := New(cfg, fixedResources(10<<30, 8<<30))

	// When: running every check
	results := c.RunAll(context.Background())

	// Then: the directory is created, indexes only warn, nothing is critical
	assert.DirExists(t, cfg.DataDir)
	assert.Equal(t, StatusPass, findResult(t, results, "data_dir").Status)
	assert.Equal(t, StatusPass, findResult(t, results, "disk_space").Status)
	assert.Equal(t, StatusPass, findResult(t, results, "memory").Status)
	assert.Equal(t, StatusPass, findResult(t, results, "crawl_lock").Status)
	assert.Equal(t, StatusWarn, findResult(t, results, "file_index").Status)
	assert.Equal(t, StatusWarn, findResult(t, results, "app_index").Status)
	assert.Equal(t, "every local volume", findResult(t, results, "roots").Message)
	assert.False(t, c.HasCriticalFailures(results))
	assert.Equal(t, "ready_with_warnings", c.SummaryStatus(results))
}

func TestCheckDiskSpace(t *testing.T) {
	tests := []struct {
		name string
		free uint64
		err  error
		want CheckStatus
	}{
		{"enough", MinDiskSpaceBytes, nil, StatusPass},
		{"too little", MinDiskSpaceBytes - 1, nil, StatusFail},
		{"disk query fails", 0, errors.New("no such volume"), StatusFail},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			c := New(testConfig(t))
			c.freeDisk = func(context.Context, string) (uint64, error) { return tt.free, tt.err }

			r := c.CheckDiskSpace(context.Background())

			assert.Equal(t, tt.want, r.Status)
			assert.True(t, r.Required)
		})
	}
}

func TestCheckMemory_LowOnlyWarns(t *testing.T) {
	c := New(testConfig(t), fixedResources(10<<30, MinMemoryBytes-1))

	r := c.CheckMemory(context.Background())

	assert.Equal(t, StatusWarn, r.Status)
	assert.False(t, r.IsCritical())
}

func TestCheckIndexes(t *testing.T) {
	// Given: a valid file index and a corrupt app index
	cfg := testConfig(t)
	require.NoError(t, os.MkdirAll(cfg.DataDir, 0o755))
	b := index.NewBuilder()
	b.Add("notes.md", "/home/u/notes.md")
	b.Add("notes.md", "/home/u/old/notes.md")
	require.NoError(t, index.Save(b.Build(), cfg.IndexPath(index.KindFile)))
	require.NoError(t, os.WriteFile(cfg.IndexPath(index.KindApp), []byte("- not\n- a map\n"), 0o644))

	// When: checking indexes
	results := New(cfg).CheckIndexes()

	// Then: the file index reports its size and the app index fails non-critically
	require.Len(t, results, 2)
	assert.Equal(t, StatusPass, results[0].Status)
	assert.Equal(t, "1 names, 2 locators", results[0].Message)
	assert.Equal(t, StatusFail, results[1].Status)
	assert.False(t, results[1].IsCritical())
}

func TestCheckCrawlLock_HeldElsewhere(t *testing.T) {
	cfg := testConfig(t)
	require.NoError(t, os.MkdirAll(cfg.DataDir, 0o755))
	lock := async.NewFileLock(cfg.DataDir)
	ok, err := lock.TryLock()
	require.NoError(t, err)
	require.True(t, ok)
	t.Cleanup(func() { _ = lock.Unlock() })

	r := New(cfg).CheckCrawlLock()

	assert.Equal(t, StatusWarn, r.Status)
	assert.Equal(t, lock.Path(), r.Details)
}

func TestCheckRoots(t *testing.T) {
	cfg := testConfig(t)
	present := t.TempDir()
	cfg.Index.Roots = []string{present, filepath.Join(present, "missing")}

	r := New(cfg).CheckRoots()

	assert.Equal(t, StatusWarn, r.Status)
	assert.Equal(t, "1 of 2 roots unavailable", r.Message)
	assert.Contains(t, r.Details, "missing")
}

func TestCheckDataDir_NotWritable(t *testing.T) {
	cfg := testConfig(t)
	file := filepath.Join(t.TempDir(), "file")
	require.NoError(t, os.WriteFile(file, nil, 0o644))
	cfg.DataDir = filepath.Join(file, "data")

	r := New(cfg).CheckDataDir()

	assert.Equal(t, StatusFail, r.Status)
	assert.True(t, r.IsCritical())
}

func TestPrintResults(t *testing.T) {
	var buf bytes.Buffer
	c := New(testConfig(t), WithOutput(&buf), WithVerbose(true))

	c.PrintResults([]CheckResult{
		{Name: "data_dir", Status: StatusPass, Message: "/data", Required: true},
		{Name: "disk_space", Status: StatusFail, Message: "1 MB free", Required: true},
		{Name: "roots", Status: StatusWarn, Message: "1 of 2 roots unavailable", Details: "/gone"},
	})

	out := buf.String()
	assert.Contains(t, out, "[PASS] data_dir: /data")
	assert.Contains(t, out, "[FAIL] disk_space: 1 MB free")
	assert.Contains(t, out, "      /gone")
	assert.Contains(t, out, "Status: FAILED")
	assert.Contains(t, out, "1 error(s):")
	assert.Contains(t, out, "1 warning(s):")
}

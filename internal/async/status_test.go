package async

import (
	"sync"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestNewIndexProgress(t *testing.T) {
	// Given/When: creating a new progress tracker
	p := NewIndexProgress()

	// Then: it is idle with no stage
	require.NotNil(t, p)
	snap := p.Snapshot()
	assert.Equal(t, string(StatusIdle), snap.Status)
	assert.Empty(t, snap.Stage)
	assert.Equal(t, 0, snap.ElapsedSeconds)
	assert.False(t, p.IsIndexing())
}

func TestIndexProgress_ResetStartsCrawl(t *testing.T) {
	// Given: a tracker left in error by an earlier crawl
	p := NewIndexProgress()
	p.Reset()
	p.UpdateFiles(10, "/a")
	p.SetError("boom")

	// When: a new crawl starts
	p.Reset()

	// Then: counters and error are cleared
	snap := p.Snapshot()
	assert.Equal(t, string(StatusIndexing), snap.Status)
	assert.Equal(t, string(StageScanning), snap.Stage)
	assert.Equal(t, 0, snap.FilesIndexed)
	assert.Empty(t, snap.ErrorMessage)
	assert.True(t, p.IsIndexing())
}

func TestIndexProgress_Stages(t *testing.T) {
	tests := []struct {
		stage IndexingStage
		want  string
	}{
		{StageScanning, "scanning"},
		{StageApplications, "applications"},
		{StageSaving, "saving"},
	}

	for _, tt := range tests {
		t.Run(tt.want, func(t *testing.T) {
			p := NewIndexProgress()
			p.Reset()
			p.SetStage(tt.stage)
			assert.Equal(t, tt.want, p.Snapshot().Stage)
		})
	}
}

func TestIndexProgress_SetReadyClearsCurrentDir(t *testing.T) {
	p := NewIndexProgress()
	p.Reset()
	p.UpdateApps(4, "/Applications")

	p.SetReady()

	snap := p.Snapshot()
	assert.Equal(t, string(StatusReady), snap.Status)
	assert.Equal(t, 4, snap.AppsFound)
	assert.Empty(t, snap.CurrentDir)
	assert.False(t, p.IsIndexing())
}

func TestIndexProgress_ElapsedFreezesWhenDone(t *testing.T) {
	p := NewIndexProgress()
	p.Reset()
	p.SetReady()
	first := p.Snapshot().ElapsedSeconds

	time.Sleep(10 * time.Millisecond)

	assert.Equal(t, first, p.Snapshot().ElapsedSeconds)
}

func TestIndexProgress_ConcurrentAccess(t *testing.T) {
	// Given: a tracker shared by writers and readers
	p := NewIndexProgress()
	p.Reset()

	// When: updated and read concurrently
	var wg sync.WaitGroup
	for i := 0; i < 10; i++ {
		wg.Add(2)
		go func(n int) {
			defer wg.Done()
			p.UpdateFiles(n*1000, "/dir")
			p.SetStage(StageApplications)
		}(i)
		go func() {
			defer wg.Done()
			_ = p.Snapshot()
			_ = p.IsIndexing()
		}()
	}
	wg.Wait()

	// Then: state is consistent
	assert.Equal(t, string(StageApplications), p.Snapshot().Stage)
}

func TestIndexProgress_UpdateFilesNeverGoesBackwards(t *testing.T) {
	// Given: two roots reporting out of order
	p := NewIndexProgress()
	p.Reset()
	p.UpdateFiles(2000, "/fast")

	// When: the slower root reports a lower crawl-wide count
	p.UpdateFiles(1000, "/slow")

	// Then: the count keeps the highest value while the directory follows the latest report
	snap := p.Snapshot()
	assert.Equal(t, 2000, snap.FilesIndexed)
	assert.Equal(t, "/slow", snap.CurrentDir)

	// And: a new crawl still starts from zero
	p.Reset()
	p.UpdateFiles(5, "/a")
	assert.Equal(t, 5, p.Snapshot().FilesIndexed)
}

// Package async runs the crawl in the background and reports its progress.
package async

import (
	"sync"
	"time"
)

// IndexingStatus represents the overall indexing state.
type IndexingStatus string

const (
	// StatusIdle indicates no crawl has run in this process yet.
	StatusIdle IndexingStatus = "idle"
	// StatusIndexing indicates a crawl is in progress.
	StatusIndexing IndexingStatus = "indexing"
	// StatusReady indicates the last crawl completed and its snapshots are published.
	StatusReady IndexingStatus = "ready"
	// StatusError indicates the last crawl failed.
	StatusError IndexingStatus = "error"
)

// IndexingStage represents the current stage of a crawl.
type IndexingStage string

const (
	// StageScanning indicates the filesystem crawl.
	StageScanning IndexingStage = "scanning"
	// StageApplications indicates application discovery.
	StageApplications IndexingStage = "applications"
	// StageSaving indicates the indexes are being written to disk.
	StageSaving IndexingStage = "saving"
)

// IndexProgressSnapshot is an immutable snapshot of indexing progress.
type IndexProgressSnapshot struct {
	Status         string `json:"status"`
	Stage          string `json:"stage,omitempty"`
	FilesIndexed   int    `json:"files_indexed"`
	AppsFound      int    `json:"apps_found"`
	CurrentDir     string `json:"current_dir,omitempty"`
	ElapsedSeconds int    `json:"elapsed_seconds"`
	ErrorMessage   string `json:"error_message,omitempty"`
}

// IndexProgress provides thread-safe tracking of indexing progress.
type IndexProgress struct {
	mu sync.RWMutex

	status       IndexingStatus
	stage        IndexingStage
	filesIndexed int
	appsFound    int
	currentDir   string
	startTime    time.Time
	endTime      time.Time
	errorMessage string
}

// NewIndexProgress creates an idle progress tracker.
func NewIndexProgress() *IndexProgress {
	return &IndexProgress{status: StatusIdle}
}

// Reset starts tracking a new crawl.
func (p *IndexProgress) Reset() {
	p.mu.Lock()
	defer p.mu.Unlock()

	p.status = StatusIndexing
	p.stage = StageScanning
	p.filesIndexed = 0
	p.appsFound = 0
	p.currentDir = ""
	p.startTime = time.Now()
	p.endTime = time.Time{}
	p.errorMessage = ""
}

// SetStage updates the current stage.
func (p *IndexProgress) SetStage(stage IndexingStage) {
	p.mu.Lock()
	defer p.mu.Unlock()

	p.stage = stage
}

// UpdateFiles records the number of files indexed so far and where the crawl is.
// Roots report concurrently, so the count only moves forward within a crawl.
func (p *IndexProgress) UpdateFiles(indexed int, dir string) {
	p.mu.Lock()
	defer p.mu.Unlock()

	p.filesIndexed = max(p.filesIndexed, indexed)
	p.currentDir = dir
}

// UpdateApps records the number of applications found so far.
func (p *IndexProgress) UpdateApps(found int, dir string) {
	p.mu.Lock()
	defer p.mu.Unlock()

	p.appsFound = found
	p.currentDir = dir
}

// SetError marks the crawl as failed.
func (p *IndexProgress) SetError(message string) {
	p.mu.Lock()
	defer p.mu.Unlock()

	p.status = StatusError
	p.errorMessage = message
	p.endTime = time.Now()
}

// SetReady marks the crawl as complete.
func (p *IndexProgress) SetReady() {
	p.mu.Lock()
	defer p.mu.Unlock()

	p.status = StatusReady
	p.currentDir = ""
	p.endTime = time.Now()
}

// IsIndexing returns true while a crawl is in progress.
func (p *IndexProgress) IsIndexing() bool {
	p.mu.RLock()
	defer p.mu.RUnlock()

	return p.status == StatusIndexing
}

// Snapshot returns an immutable copy of the current progress state.
func (p *IndexProgress) Snapshot() IndexProgressSnapshot {
	p.mu.RLock()
	defer p.mu.RUnlock()

	var elapsed time.Duration
	switch {
	case p.startTime.IsZero():
	case p.endTime.IsZero():
		elapsed = time.Since(p.startTime)
	default:
		elapsed = p.endTime.Sub(p.startTime)
	}

	snap := IndexProgressSnapshot{
		Status:         string(p.status),
		FilesIndexed:   p.filesIndexed,
		AppsFound:      p.appsFound,
		CurrentDir:     p.currentDir,
		ElapsedSeconds: int(elapsed.Seconds()),
		ErrorMessage:   p.errorMessage,
	}
	if p.status != StatusIdle {
		snap.Stage = string(p.stage)
	}
	return snap
}

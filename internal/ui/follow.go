package ui

import (
	"context"
	"time"

	"github.com/Aman-CERP/amanlaunch/internal/async"
)

// DefaultFollowInterval is how often Follow samples indexer progress.
const DefaultFollowInterval = 200 * time.Millisecond

// Follow forwards indexer progress to r until the crawl stops or ctx is done,
// and returns the last snapshot seen.
func Follow(ctx context.Context, p *async.IndexProgress, r Renderer, interval time.Duration) async.IndexProgressSnapshot {
	if interval <= 0 {
		interval = DefaultFollowInterval
	}
	ticker := time.NewTicker(interval)
	defer ticker.Stop()

	for {
		snap := p.Snapshot()
		if snap.Status != string(async.StatusIndexing) {
			return snap
		}
		r.UpdateProgress(eventOf(snap))

		select {
		case <-ctx.Done():
			return p.Snapshot()
		case <-ticker.C:
		}
	}
}

func eventOf(snap async.IndexProgressSnapshot) ProgressEvent {
	stage := StageOf(async.IndexingStage(snap.Stage))
	ev := ProgressEvent{Stage: stage, Count: snap.FilesIndexed, Dir: snap.CurrentDir}
	if stage == StageApplications {
		ev.Count = snap.AppsFound
	}
	return ev
}

package ui

import (
	"context"
	"sync"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"

	"github.com/Aman-CERP/amanlaunch/internal/async"
)

type recordingRenderer struct {
	mu     sync.Mutex
	events []ProgressEvent
}

func (r *recordingRenderer) Start(context.Context) error { return nil }
func (r *recordingRenderer) UpdateProgress(ev ProgressEvent) {
	r.mu.Lock()
	defer r.mu.Unlock()
	r.events = append(r.events, ev)
}
func (r *recordingRenderer) AddError(ErrorEvent)      {}
func (r *recordingRenderer) Complete(CompletionStats) {}
func (r *recordingRenderer) Stop() error              { return nil }

func (r *recordingRenderer) seen() []ProgressEvent {
	r.mu.Lock()
	defer r.mu.Unlock()
	return append([]ProgressEvent(nil), r.events...)
}

func TestFollow_ReturnsImmediatelyWhenNotIndexing(t *testing.T) {
	p := async.NewIndexProgress()
	r := &recordingRenderer{}

	snap := Follow(context.Background(), p, r, time.Millisecond)

	assert.Equal(t, string(async.StatusIdle), snap.Status)
	assert.Empty(t, r.seen())
}

func TestFollow_ForwardsProgressUntilReady(t *testing.T) {
	// Given: a crawl in the applications stage
	p := async.NewIndexProgress()
	p.Reset()
	p.SetStage(async.StageApplications)
	p.UpdateFiles(40, "/home")
	p.UpdateApps(3, "/usr/bin")
	r := &recordingRenderer{}

	// When: the crawl finishes shortly after following starts
	go func() {
		time.Sleep(20 * time.Millisecond)
		p.SetReady()
	}()
	snap := Follow(context.Background(), p, r, time.Millisecond)

	// Then: the renderer saw application counts and the final snapshot is ready
	assert.Equal(t, string(async.StatusReady), snap.Status)
	events := r.seen()
	if assert.NotEmpty(t, events) {
		assert.Equal(t, ProgressEvent{Stage: StageApplications, Count: 3, Dir: "/usr/bin"}, events[0])
	}
}

func TestFollow_StopsOnContextCancel(t *testing.T) {
	p := async.NewIndexProgress()
	p.Reset()
	ctx, cancel := context.WithCancel(context.Background())
	cancel()

	snap := Follow(ctx, p, &recordingRenderer{}, time.Hour)

	assert.Equal(t, string(async.StatusIndexing), snap.Status)
}

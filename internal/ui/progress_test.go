package ui

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
)

// fakeClock advances only when told to.
type fakeClock struct{ t time.Time }

func (c *fakeClock) now() time.Time          { return c.t }
func (c *fakeClock) advance(d time.Duration) { c.t = c.t.Add(d) }

func TestProgressTracker_SpeedSampling(t *testing.T) {
	// Given: a tracker on a fake clock
	clock := &fakeClock{t: time.Unix(1000, 0)}
	p := newProgressTracker(clock.now)

	// When: updates arrive faster than the sampling interval
	clock.advance(100 * time.Millisecond)
	p.Update(50, "/a")
	assert.Zero(t, p.Stats().Speed.Current, "no sample before the interval elapses")

	// And: one second passes with 1000 more files
	clock.advance(900 * time.Millisecond)
	p.Update(1050, "/b")

	// Then: speed reflects the whole window since the last sample
	stats := p.Stats()
	assert.InDelta(t, 1050.0, stats.Speed.Current, 0.001)
	assert.InDelta(t, 1050.0, stats.Speed.Avg, 0.001)
	assert.InDelta(t, 1050.0, stats.Speed.Peak, 0.001)
	assert.Equal(t, 1050, stats.Count)
	assert.Equal(t, "/b", stats.Dir)
	assert.Equal(t, time.Second, stats.Elapsed)

	// When: the next window is slower
	clock.advance(time.Second)
	p.Update(1550, "")

	// Then: the average is smoothed and the peak kept
	stats = p.Stats()
	assert.InDelta(t, 500.0, stats.Speed.Current, 0.001)
	assert.InDelta(t, 0.2*500+0.8*1050, stats.Speed.Avg, 0.001)
	assert.InDelta(t, 1050.0, stats.Speed.Peak, 0.001)
	assert.Equal(t, "/b", stats.Dir, "an empty dir keeps the previous one")
}

func TestProgressTracker_SetStageResets(t *testing.T) {
	clock := &fakeClock{t: time.Unix(0, 0)}
	p := newProgressTracker(clock.now)
	clock.advance(time.Second)
	p.Update(100, "/x")

	p.SetStage(StageApplications)

	stats := p.Stats()
	assert.Equal(t, StageApplications, stats.Stage)
	assert.Zero(t, stats.Count)
	assert.Empty(t, stats.Dir)
	assert.Zero(t, stats.Speed.Peak)

	// Setting the same stage again keeps the running count.
	p.Update(3, "/Applications")
	p.SetStage(StageApplications)
	assert.Equal(t, 3, p.Stats().Count)
}

func TestProgressTracker_AddError(t *testing.T) {
	p := NewProgressTracker()

	p.AddError(ErrorEvent{IsWarn: true})
	p.AddError(ErrorEvent{IsWarn: true})
	p.AddError(ErrorEvent{})

	stats := p.Stats()
	assert.Equal(t, 2, stats.WarnCount)
	assert.Equal(t, 1, stats.ErrorCount)
}

func TestSparkline_Render(t *testing.T) {
	s := NewSparkline(4)
	assert.Equal(t, "▁▁▁▁", s.Render())

	// Partial fill pads on the right.
	s.Add(0)
	s.Add(7)
	assert.Equal(t, "▁█  ", s.Render())

	// Wrapping keeps the newest samples, oldest first.
	s.Add(7)
	s.Add(7)
	s.Add(1)
	assert.Equal(t, 5, s.Count())
	assert.Equal(t, "███▂", s.Render())
	assert.Equal(t, "█▂", s.RenderWithWidth(2))

	s.Clear()
	assert.Equal(t, "▁▁", s.RenderWithWidth(2))
	assert.Zero(t, s.Count())
}

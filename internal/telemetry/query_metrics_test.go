package telemetry

import (
	"fmt"
	"sync"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestCircularBuffer_MaintainsCapacity(t *testing.T) {
	buf := NewCircularBuffer[string](3)

	for _, q := range []string{"a", "b", "c", "d", "e"} {
		buf.Add(q)
	}

	assert.Equal(t, 3, buf.Size())
	assert.Equal(t, []string{"c", "d", "e"}, buf.Items())
}

func TestCircularBuffer_EmptyItems(t *testing.T) {
	items := NewCircularBuffer[string](0).Items()

	require.NotNil(t, items)
	assert.Empty(t, items)
}

func TestLatencyToBucket(t *testing.T) {
	tests := []struct {
		latency time.Duration
		want    LatencyBucket
	}{
		{500 * time.Microsecond, BucketP1},
		{time.Millisecond, BucketP10},
		{9 * time.Millisecond, BucketP10},
		{10 * time.Millisecond, BucketP50},
		{100 * time.Millisecond, BucketP250},
		{250 * time.Millisecond, BucketP1000},
		{2 * time.Second, BucketP1000},
	}
	for _, tt := range tests {
		t.Run(tt.latency.String(), func(t *testing.T) {
			assert.Equal(t, tt.want, LatencyToBucket(tt.latency))
		})
	}
}

func TestExtractTerms(t *testing.T) {
	tests := []struct {
		name  string
		query string
		want  []string
	}{
		{"single name", "Report.PDF", []string{"report.pdf"}},
		{"drops single runes", "a vim x", []string{"vim"}},
		{"blank", "   ", nil},
		{"unicode", "été ü", []string{"été"}},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, tt.want, ExtractTerms(tt.query))
		})
	}
}

func TestQueryMetrics_Record(t *testing.T) {
	// Given: a collector
	m := New(DefaultConfig())

	// When: recording a mix of queries
	m.Record(QueryEvent{Query: "report", Filter: "all", ResultCount: 3, Latency: 2 * time.Millisecond})
	m.Record(QueryEvent{Query: "Report ", Filter: "file", ResultCount: 2, Latency: 20 * time.Millisecond})
	m.Record(QueryEvent{Query: "zzqx", Filter: "all", ResultCount: 0, Latency: 300 * time.Microsecond})

	// Then: every aggregate reflects them
	s := m.Snapshot()
	assert.Equal(t, int64(3), s.TotalQueries)
	assert.Equal(t, int64(1), s.ZeroResultCount)
	assert.Equal(t, int64(1), s.ExactRepeatCount)
	assert.Equal(t, map[string]int64{"all": 2, "file": 1}, s.FilterCounts)
	assert.Equal(t, map[LatencyBucket]int64{BucketP1: 1, BucketP10: 1, BucketP50: 1}, s.LatencyDistribution)
	assert.Equal(t, []string{"zzqx"}, s.ZeroResultQueries)
	require.Len(t, s.TopTerms, 2)
	assert.Equal(t, TermCount{Term: "report", Count: 2}, s.TopTerms[0])
	assert.InDelta(t, 33.33, s.ZeroResultPercentage(), 0.01)
}

func TestQueryMetrics_TopTermsTiesByName(t *testing.T) {
	m := New(DefaultConfig())
	for _, q := range []string{"vim", "emacs", "code"} {
		m.Record(QueryEvent{Query: q, ResultCount: 1})
	}

	s := m.Snapshot()

	assert.Equal(t, []TermCount{{"code", 1}, {"emacs", 1}, {"vim", 1}}, s.TopTerms)
}

func TestQueryMetrics_BoundedStructures(t *testing.T) {
	m := New(Config{TopTermsCapacity: 2, ZeroResultsCapacity: 2, RecentQueriesCapacity: 2})

	for i := range 5 {
		m.Record(QueryEvent{Query: fmt.Sprintf("q%d", i)})
	}

	s := m.Snapshot()
	assert.Len(t, s.TopTerms, 2)
	assert.Equal(t, []string{"q3", "q4"}, s.ZeroResultQueries)
	assert.Equal(t, int64(5), s.ZeroResultCount)
}

func TestQueryMetrics_SnapshotIsACopy(t *testing.T) {
	m := New(DefaultConfig())
	m.Record(QueryEvent{Query: "vim", Filter: "app", ResultCount: 1})

	s := m.Snapshot()
	s.FilterCounts["app"] = 99

	assert.Equal(t, int64(1), m.Snapshot().FilterCounts["app"])
}

func TestQueryMetrics_Concurrent(t *testing.T) {
	m := New(DefaultConfig())

	var wg sync.WaitGroup
	for i := range 10 {
		wg.Add(1)
		go func() {
			defer wg.Done()
			for j := range 100 {
				m.Record(QueryEvent{Query: fmt.Sprintf("q%d-%d", i, j), ResultCount: j % 2})
				_ = m.Snapshot()
			}
		}()
	}
	wg.Wait()

	s := m.Snapshot()
	assert.Equal(t, int64(1000), s.TotalQueries)
	assert.Equal(t, int64(500), s.ZeroResultCount)
}

func TestSnapshot_ZeroResultPercentage_NoQueries(t *testing.T) {
	assert.Zero(t, Snapshot{}.ZeroResultPercentage())
}

package ui

import "strings"

// SparklineChars are the eight bar heights, lowest first.
var SparklineChars = []rune{'▁', '▂', '▃', '▄', '▅', '▆', '▇', '█'}

// Sparkline keeps the most recent samples in a ring and renders them as bars
// scaled to the largest sample seen.
type Sparkline struct {
	samples []float64
	head    int
	count   int
	max     float64
}

// NewSparkline creates a sparkline holding up to size samples.
func NewSparkline(size int) *Sparkline {
	if size <= 0 {
		size = 60
	}
	return &Sparkline{samples: make([]float64, size)}
}

// Add appends a sample, evicting the oldest once full.
func (s *Sparkline) Add(value float64) {
	s.samples[s.head] = value
	s.head = (s.head + 1) % len(s.samples)
	s.count++
	if value > s.max {
		s.max = value
	}
	// Rescale once per full rotation so old peaks age out.
	if s.count%len(s.samples) == 0 {
		s.max = 0
		for _, v := range s.samples {
			s.max = max(s.max, v)
		}
	}
}

// Render returns every held sample as bars, padded with spaces when not full.
func (s *Sparkline) Render() string {
	return s.RenderWithWidth(len(s.samples))
}

// RenderWithWidth renders the newest width samples, oldest first, padded
// on the right with spaces.
func (s *Sparkline) RenderWithWidth(width int) string {
	if width <= 0 || width > len(s.samples) {
		width = len(s.samples)
	}
	if s.count == 0 {
		return strings.Repeat(string(SparklineChars[0]), width)
	}

	recent := s.recent(width)
	var sb strings.Builder
	sb.Grow(width * 3)
	for _, v := range recent {
		sb.WriteRune(s.bar(v))
	}
	sb.WriteString(strings.Repeat(" ", width-len(recent)))
	return sb.String()
}

// recent returns up to n of the newest samples in insertion order.
func (s *Sparkline) recent(n int) []float64 {
	held := min(s.count, len(s.samples))
	n = min(n, held)
	out := make([]float64, 0, n)
	for i := n; i > 0; i-- {
		idx := (s.head - i + len(s.samples)) % len(s.samples)
		out = append(out, s.samples[idx])
	}
	return out
}

func (s *Sparkline) bar(v float64) rune {
	if s.max <= 0 || v <= 0 {
		return SparklineChars[0]
	}
	i := int(v / s.max * float64(len(SparklineChars)-1))
	return SparklineChars[min(max(i, 0), len(SparklineChars)-1)]
}

// Clear resets the sparkline.
func (s *Sparkline) Clear() {
	clear(s.samples)
	s.head = 0
	s.count = 0
	s.max = 0
}

// Count returns the number of samples added.
func (s *Sparkline) Count() int {
	return s.count
}

// Package history keeps the bounded list of past queries.
package history

import "strings"

// DefaultBound is the number of queries kept when no bound is configured.
const DefaultBound = 20

// Ring is a bounded, deduplicating FIFO of queries, oldest first.
// It is not safe for concurrent use; the owner serialises access.
type Ring struct {
	bound   int
	entries []string
}

// New returns an empty ring. A bound <= 0 means DefaultBound.
func New(bound int) *Ring {
	if bound <= 0 {
		bound = DefaultBound
	}
	return &Ring{bound: bound}
}

// Bound returns the maximum number of entries.
func (r *Ring) Bound() int { return r.bound }

// Record moves query to the most-recent position, adding it if absent and
// dropping the oldest entries past the bound. Blank queries are ignored.
func (r *Ring) Record(query string) {
	if strings.TrimSpace(query) == "" {
		return
	}
	for i, e := range r.entries {
		if e == query {
			r.entries = append(r.entries[:i], r.entries[i+1:]...)
			break
		}
	}
	r.entries = append(r.entries, query)
	if over := len(r.entries) - r.bound; over > 0 {
		r.entries = append([]string(nil), r.entries[over:]...)
	}
}

// List returns a copy of the entries, most recent first.
func (r *Ring) List() []string {
	out := make([]string, len(r.entries))
	for i, e := range r.entries {
		out[len(r.entries)-1-i] = e
	}
	return out
}

// Entries returns a copy of the entries, oldest first.
func (r *Ring) Entries() []string {
	return append([]string(nil), r.entries...)
}

// Len returns the number of entries.
func (r *Ring) Len() int { return len(r.entries) }

// Clear removes every entry.
func (r *Ring) Clear() {
	r.entries = nil
}

package index

import "sync/atomic"

// Holder publishes index snapshots. Store replaces the snapshot wholesale;
// readers that already called Load keep the snapshot they got.
type Holder struct {
	p atomic.Pointer[Index]
}

// NewHolder returns a holder seeded with idx (or an empty index when nil).
func NewHolder(idx *Index) *Holder {
	h := &Holder{}
	h.Store(idx)
	return h
}

// Load returns the current snapshot. It never returns nil.
func (h *Holder) Load() *Index {
	if idx := h.p.Load(); idx != nil {
		return idx
	}
	return Empty()
}

// Store publishes idx as the current snapshot.
func (h *Holder) Store(idx *Index) {
	if idx == nil {
		idx = Empty()
	}
	h.p.Store(idx)
}

package voxsim

// Store is a fixed-capacity array of particles plus a singly linked free
// list encoded in-place: a dead slot stores ID = -(next free slot), and
// pfree holds the head. Allocation and free are both O(1) with no separate
// free-list allocation, keeping dead slots cache-adjacent to their
// neighbors (spec.md §4.A).
//
// Slot 0 is never allocated (matches the original reserving index 0 / id 0
// as "no particle" inside a packed pmap cell).
type Store struct {
	Parts []Particle
	pfree int32
	maxID int32
}

// NewStore allocates a store with room for capacity particles (typically
// GridBounds.NumCells()).
func NewStore(capacity int) *Store {
	s := &Store{
		Parts: make([]Particle, capacity),
		pfree: 1,
		maxID: 0,
	}
	return s
}

// MaxID returns one past the largest live index currently known. It may be
// transiently stale (too high) during the parallel scan; only
// recalcFreeParticles is authoritative at tick boundaries.
func (s *Store) MaxID() int32 {
	return s.maxID
}

// Cap returns the store's fixed capacity.
func (s *Store) Cap() int {
	return len(s.Parts)
}

// alloc pops the free list and returns the new slot's index, or -1 if the
// store is full.
func (s *Store) alloc() int32 {
	if int(s.pfree) >= len(s.Parts) {
		return -1
	}
	slot := s.pfree
	next := slot + 1
	if s.Parts[slot].ID < 0 {
		next = -s.Parts[slot].ID
	}
	s.pfree = next
	if slot+1 > s.maxID {
		s.maxID = slot + 1
	}
	return slot
}

// free pushes slot i back onto the free list. Matches kill_part's
// `id = -pfree; pfree = i;` splice, and steps maxID back if i was the tip.
func (s *Store) free(i int32) {
	p := &s.Parts[i]
	p.Type = PT_NONE
	p.Flag = 0
	p.ID = -s.pfree
	s.pfree = i
	if i == s.maxID-1 && i > 0 {
		s.maxID--
	}
}

// setMaxID is used only by recalcFreeParticles, the sole place maxID is
// authoritatively recomputed from a full scan.
func (s *Store) setMaxID(v int32) {
	s.maxID = v
}

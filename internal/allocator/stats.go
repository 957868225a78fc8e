package allocator

// RegionStats is a read-only snapshot of one region's bookkeeping. It never
// feeds back into allocation decisions — exposing it cannot reintroduce
// the memory-pressure-feedback Non-goal spec.md §1 rules out. Grounded in
// allocator.go's AllocatorStats/GetStats and region_alloc.go's RegionStats
// (both deleted originals).
type RegionStats struct {
	ID           RegionID
	AllocCount   uint64
	FreeCount    uint64
	BytesInUse   uint64
	PageRuns     int
	BinOccupancy [NumBins]int
}

// Stats takes the region's own lock, walks every bin once, and returns a
// point-in-time snapshot.
func (r *Region) Stats() RegionStats {
	r.mu.Lock()
	defer r.mu.Unlock()

	s := RegionStats{
		ID:         r.id,
		AllocCount: r.allocCount,
		FreeCount:  r.freeCount,
		BytesInUse: r.bytesInUse,
		PageRuns:   len(r.pages),
	}

	for b := 0; b < NumBins; b++ {
		n := 0
		for head := r.bins[b]; head != nil; head = freeRecAt(head).next {
			n++
		}

		s.BinOccupancy[b] = n
	}

	return s
}

// Stats resolves region and returns its live snapshot, initializing it
// (and region zero, transitively) if it has never been touched. Like Free,
// Stats has no error return in its contract; a fatal page-provider failure
// while initializing a never-before-seen region panics rather than being
// swallowed.
func Stats(region RegionID) RegionStats {
	t := table()

	r, err := t.ensureRegion(region)
	if err != nil {
		panic(err)
	}

	return r.Stats()
}

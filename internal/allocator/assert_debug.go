//go:build regheapdebug

package allocator

import "unsafe"

// Debug-only invariant assertions (spec.md §7's "insert debug-only
// assertions" aid), grounded in internal/runtime/region_memory.go's
// AllocationError{Code: ErrorRegionCorrupt} pattern (deleted original).
// None of these run in ordinary builds; they exist to catch a corrupted
// boundary tag or free-list pointer close to its source rather than as a
// load-bearing safety net.

func assertHeadFootMatch(region RegionID, head unsafe.Pointer) {
	size := loadTag(head).size()
	alloc := loadTag(head).allocated()
	foot := loadTag(footAddr(head, size))

	if foot.size() != size || foot.allocated() != alloc {
		panic(&BlockCorruptionError{Region: region, Message: "head and foot tags disagree"})
	}
}

func assertBinHeadsHavePrevNil(region RegionID, r *Region) {
	for b := 0; b < NumBins; b++ {
		head := r.bins[b]
		if head == nil {
			continue
		}

		if freeRecAt(head).prev != nil {
			panic(&BlockCorruptionError{Region: region, Message: "bin head has non-nil prev"})
		}
	}
}

// assertRegionIDMatches is spec.md §7's third debug-only assertion: a
// coalescing neighbour's free-block record must carry the same region id
// as the region performing the merge. Called from both coalesce_fast.go
// and coalesce_slow.go immediately before a neighbour is unlinked.
func assertRegionIDMatches(region RegionID, neighborRegionID uint32) {
	if neighborRegionID != uint32(region) {
		panic(&BlockCorruptionError{Region: region, Message: "coalescing neighbour carries a foreign region id"})
	}
}

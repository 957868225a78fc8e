//go:build regheapslowcoalesce

package allocator

import "unsafe"

// coalesce is the slow-path fallback spec.md §4.4 requires for defensive
// builds: rather than deriving a neighbour's head directly from boundary-
// tag arithmetic, it walks the bin the neighbour's size would occupy and
// matches by address, unlinking on hit. Grounded in smalloc.c's
// region_coalesce, whose #else branch (FAST_COALESCING undefined) does
// exactly this list walk instead of the direct pointer derivation. Must
// yield identical results to coalesce_fast.go modulo timing; built only
// with -tags regheapslowcoalesce.
func (r *Region) coalesce(head unsafe.Pointer, size uintptr, cfg *Config) (unsafe.Pointer, uintptr) {
	if !isPageStart(head, cfg) {
		leftFoot := unsafe.Add(head, -int(wordSize))
		lt := loadTag(leftFoot)

		if lsize := lt.size(); lsize != 0 && !lt.allocated() {
			lhead := unsafe.Add(head, -int(lsize))
			if r.findInBin(lsize, lhead) {
				assertRegionIDMatches(r.id, freeRecAt(lhead).regionID)
				r.binRemove(lhead)
				head = lhead
				size = lsize + size
			}
		}
	}

	rhead := unsafe.Add(head, int(size))
	if !isPageStart(rhead, cfg) {
		rt := loadTag(rhead)

		if rsize := rt.size(); rsize != 0 && !rt.allocated() {
			if r.findInBin(rsize, rhead) {
				assertRegionIDMatches(r.id, freeRecAt(rhead).regionID)
				r.binRemove(rhead)
				size += rsize
			}
		}
	}

	return head, size
}

// findInBin walks the bin a block of size occupies looking for a free
// block at exactly addr. Searching the region's own bins makes a region-id
// mismatch structurally impossible here, unlike the fast path's direct
// tag-derived neighbour, which has no such guarantee and must check
// explicitly.
func (r *Region) findInBin(size uintptr, addr unsafe.Pointer) bool {
	b := binIndex(size)

	for head := r.bins[b]; head != nil; head = freeRecAt(head).next {
		if head == addr {
			return true
		}
	}

	return false
}

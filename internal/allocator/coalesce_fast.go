//go:build !regheapslowcoalesce

package allocator

import "unsafe"

// coalesce merges head (a just-freed block of size bytes) with its left
// and/or right neighbours when they are free blocks belonging to the same
// region, using the boundary-tag fast path of spec.md §4.4: read the
// neighbour's tag directly via pointer arithmetic, and unlink it from its
// bin in O(1) using its own prev/next fields. Returns the address and size
// of the (possibly larger) merged block. This is the default build; pass
// -tags regheapslowcoalesce to exercise coalesce_slow.go's bin-walk
// fallback instead (spec.md §4.4's defensive-build path).
func (r *Region) coalesce(head unsafe.Pointer, size uintptr, cfg *Config) (unsafe.Pointer, uintptr) {
	if !isPageStart(head, cfg) {
		leftFoot := unsafe.Add(head, -int(wordSize))
		lt := loadTag(leftFoot)

		if lsize := lt.size(); lsize != 0 && !lt.allocated() {
			lhead := unsafe.Add(head, -int(lsize))
			if freeRecAt(lhead).regionID == uint32(r.id) {
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
			if freeRecAt(rhead).regionID == uint32(r.id) {
				assertRegionIDMatches(r.id, freeRecAt(rhead).regionID)
				r.binRemove(rhead)
				size += rsize
			}
		}
	}

	return head, size
}

//go:build regheapslowcoalesce

package allocator

import (
	"testing"
	"unsafe"
)

// TestSlowCoalesceMatchesFastPathShape exercises the bin-walk fallback of
// coalesce_slow.go directly: a freed block between two free neighbours in
// the same region must merge into one block spanning all three, exactly
// as the fast path would (spec.md §4.4's "must yield identical results
// modulo timing"). Build with -tags regheapslowcoalesce to run this
// variant instead of coalesce_fast.go's.
func TestSlowCoalesceMatchesFastPathShape(t *testing.T) {
	tbl := freshTable(t)
	r := newRegion(1, tbl)

	const blk = 64

	buf := make([]byte, 3*blk)
	r.pages = append(r.pages, buf)

	left := unsafe.Pointer(&buf[0])
	mid := unsafe.Add(left, blk)
	right := unsafe.Add(left, 2*blk)

	writeBlockTags(left, blk, false)
	writeBlockTags(mid, blk, true)
	writeBlockTags(right, blk, false)

	r.binInsert(left, blk, 1)
	r.binInsert(right, blk, 1)

	writeBlockTags(mid, blk, false)

	newHead, newSize := r.coalesce(mid, blk, tbl.cfg)
	if newHead != left {
		t.Fatalf("expected coalesce to merge leftward to %p, got %p", left, newHead)
	}

	if newSize != 3*blk {
		t.Fatalf("expected merged size %d, got %d", 3*blk, newSize)
	}

	for b := 0; b < NumBins; b++ {
		if r.bins[b] != nil {
			t.Fatalf("expected both neighbours to be unlinked from their bins, bin %d still has %p", b, r.bins[b])
		}
	}
}

package allocator

import "testing"

// TestWithAlignmentRoundsBlockSizes exercises the WithAlignment override:
// every block size the config produces must remain a multiple of the
// configured alignment, not just the default 8.
func TestWithAlignmentRoundsBlockSizes(t *testing.T) {
	const alignment = 16

	cfg := newConfig(WithPageSize(4096), WithAlignment(alignment), WithPageProvider(NewHeapProvider(4096)))

	for _, want := range []uintptr{1, 7, 31, 100, 257} {
		got := blockSizeFor(want, cfg)
		if got%alignment != 0 {
			t.Fatalf("blockSizeFor(%d) = %d, not a multiple of alignment %d", want, got, alignment)
		}
	}

	if cfg.minBlock()%alignment != 0 {
		t.Fatalf("minBlock() = %d, not a multiple of alignment %d", cfg.minBlock(), alignment)
	}
}

// TestWithNumRegionsSizesTheTable exercises the WithNumRegions override:
// the region table's slot count must match the configured value, not the
// 1000-entry default.
func TestWithNumRegionsSizesTheTable(t *testing.T) {
	const numRegions = 4

	cfg := newConfig(WithPageSize(4096), WithNumRegions(numRegions), WithPageProvider(NewHeapProvider(4096)))
	tbl := newTable(cfg)

	if len(tbl.slots) != numRegions {
		t.Fatalf("table has %d slots, want %d", len(tbl.slots), numRegions)
	}
}

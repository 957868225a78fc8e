package allocator

import (
	"fmt"
	"sync"
	"sync/atomic"

	"github.com/regionheap/regionheap/internal/diagnostics"
)

// Table is the fixed-size region table of spec.md §4.6: a slot per region
// id, each lazily populated on first use. Grounded in
// internal/runtime/region_alloc.go's RegionAllocator, whose map[RegionID]*Region
// is replaced here by the spec's fixed-size array and whose
// double-checked-locking AllocateRegion shape is kept.
type Table struct {
	mu    sync.Mutex
	slots []atomic.Pointer[Region]
	cfg   *Config
}

func newTable(cfg *Config) *Table {
	return &Table{slots: make([]atomic.Pointer[Region], cfg.NumRegions), cfg: cfg}
}

// ensureRegionZero performs the double-checked lazy init spec.md §4.6
// requires before any operation touches region zero: an unlocked atomic
// read first, and only on a miss does a thread take the table lock and
// check again before actually constructing the region.
func (t *Table) ensureRegionZero() *Region {
	if r := t.slots[0].Load(); r != nil {
		return r
	}

	t.mu.Lock()
	defer t.mu.Unlock()

	if r := t.slots[0].Load(); r != nil {
		return r
	}

	r := newRegion(0, t)
	t.slots[0].Store(r)

	t.cfg.Diag.Log(diagnostics.Event{Kind: diagnostics.KindRegionInit, Region: 0, Message: "region zero bootstrapped"})

	return r
}

// ensureRegion resolves region id to its Region, performing the same
// double-checked init for non-zero regions. A region's own record is
// accounted for against region zero's heap (alloc(sizeof(Region), region=0)
// in spec.md §4.6's words) before the slot is published — see DESIGN.md's
// "region record self-hosting" note for why the Region value itself
// remains an ordinary Go allocation while only its byte cost is charged to
// region zero. A page-provider failure during that charge is fatal per
// spec.md §7 and is returned rather than swallowed; callers that cannot
// propagate it (Free, Stats) turn it into a panic instead.
func (t *Table) ensureRegion(id RegionID) (*Region, error) {
	zero := t.ensureRegionZero()
	if id == 0 {
		return zero, nil
	}

	if r := t.slots[id].Load(); r != nil {
		return r, nil
	}

	t.mu.Lock()
	defer t.mu.Unlock()

	if r := t.slots[id].Load(); r != nil {
		return r, nil
	}

	recordPtr, err := rawAlloc(zero, regionRecordSize, t.cfg)
	if err != nil {
		return nil, newProviderError(id, fmt.Sprintf("allocating region record from region zero: %v", err))
	}

	r := newRegion(id, t)
	r.selfRecord = recordPtr
	t.slots[id].Store(r)

	t.cfg.Diag.Log(diagnostics.Event{Kind: diagnostics.KindRegionInit, Region: uint32(id), Message: "region record allocated from region zero"})

	return r, nil
}

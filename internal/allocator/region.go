package allocator

import (
	"sync"
	"unsafe"
)

// RegionID identifies one of the allocator's independent heaps. Region zero
// is special: it hosts the bookkeeping (page-list nodes, region records)
// for every other region, per spec.md §4.3/§4.6.
type RegionID uint32

// Region is one independent heap: its own segregated free lists, its own
// page list, and its own lock. Narrowed from internal/runtime/region_alloc.go's
// much larger Region/RegionHeader (which also carried GC policy, observers,
// and type metadata this spec has no use for) down to exactly what spec.md
// §3 names.
type Region struct {
	id  RegionID
	tbl *Table

	mu   sync.Mutex
	bins [NumBins]unsafe.Pointer

	// pageHead/pageTail address pageListNode structures. For region zero
	// these live inside region zero's own page-backed bytes; for every
	// other region they also live inside region zero's bytes (§4.3), even
	// though the page *runs* they describe belong to this region.
	pageHead unsafe.Pointer
	pageTail unsafe.Pointer

	// pages retains every backing byte slice this region has ever fetched
	// from the page provider, purely so the Go garbage collector keeps
	// them alive — the allocator's own bookkeeping only ever stores raw
	// addresses into this memory, which the GC cannot trace back to a
	// live slice on its own. Mirrors region_alloc.go's own "Backing slice
	// to keep memory alive" field.
	pages [][]byte

	allocCount uint64
	freeCount  uint64
	bytesInUse uint64

	// selfRecord is the address region zero returned when this region's
	// own record was accounted for against region zero's heap (see
	// table.go). It exists for provenance and introspection only; Region
	// itself remains an ordinary garbage-collected Go value. See
	// DESIGN.md's "region record self-hosting" entry for why.
	selfRecord unsafe.Pointer
}

func newRegion(id RegionID, tbl *Table) *Region {
	return &Region{id: id, tbl: tbl}
}

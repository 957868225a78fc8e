package allocator

import (
	"sync"
	"unsafe"
)

var (
	globalMu    sync.Mutex
	globalTable *Table
)

// Initialize installs a fresh region table and configuration for the
// package-level Alloc/Free/ThreadAlloc/ThreadFree surface. Mirrors the
// teacher's own Initialize(kind, options...)/GlobalAllocator pattern
// (internal/allocator/allocator.go, deleted original): production code may
// call this once at startup to pick a page size or provider, and tests call
// it to install a deterministic PageProvider without touching global
// process state more than necessary.
func Initialize(opts ...Option) {
	globalMu.Lock()
	defer globalMu.Unlock()

	globalTable = newTable(newConfig(opts...))
}

func table() *Table {
	globalMu.Lock()
	defer globalMu.Unlock()

	if globalTable == nil {
		globalTable = newTable(newConfig())
	}

	return globalTable
}

// Alloc implements spec.md §4.7's alloc(size, region): find, extend if
// necessary, and split a free block within the given region, returning a
// payload pointer whose corresponding free is spec.md's free(ptr, region).
func Alloc(size uintptr, region RegionID) (unsafe.Pointer, error) {
	t := table()

	r, err := t.ensureRegion(region)
	if err != nil {
		return nil, err
	}

	return rawAlloc(r, size, t.cfg)
}

// Free implements spec.md §4.7's free(ptr, region): coalesce with free
// neighbours and return the block to its region's segregated free list.
// Freeing with the wrong region id, double-freeing, or freeing a pointer
// that was never returned by Alloc are all undefined per spec.md §7 — this
// function does not defend against them outside of debug builds. Free has
// no error return in spec.md's contract; a page-provider failure while
// resolving region (fatal per §7) panics instead of being swallowed. In
// practice this path is unreachable for a region that has already served a
// matching Alloc, since ensureRegion's allocating branch only runs once,
// the first time a region id is touched.
func Free(ptr unsafe.Pointer, region RegionID) {
	t := table()

	r, err := t.ensureRegion(region)
	if err != nil {
		panic(err)
	}

	rawFree(r, ptr, t.cfg)
}

// ThreadAlloc and ThreadFree are the §6.3 convenience wrappers that derive
// a region id from current_thread_id() % NumRegions. CurrentThreadID is
// the calling goroutine's id (see threadid.go), not an OS thread id, so two
// goroutines whose ids are equal modulo NumRegions alias the same region;
// that is acceptable per §1's non-goal of per-thread size-class caches or
// NUMA affinity.
func ThreadAlloc(size uintptr) (unsafe.Pointer, error) {
	t := table()
	region := RegionID(CurrentThreadID() % uint64(t.cfg.NumRegions))

	return Alloc(size, region)
}

func ThreadFree(ptr unsafe.Pointer) {
	t := table()
	region := RegionID(CurrentThreadID() % uint64(t.cfg.NumRegions))
	Free(ptr, region)
}

// rawAlloc is the region-local engine behind Alloc: it takes the region's
// own lock, searches its segregated free lists, extends the heap on a
// miss, splits the winning block, and releases the lock. It is also called
// directly by Table.ensureRegion (to account for a new region's own record
// against region zero) and by extendHeap (to obtain a page-list node),
// both of which already observe the §5 lock-ordering discipline.
func rawAlloc(r *Region, requested uintptr, cfg *Config) (unsafe.Pointer, error) {
	want := blockSizeFor(requested, cfg)

	r.mu.Lock()
	defer r.mu.Unlock()

	head := r.binSearch(want)
	if head == nil {
		if err := extendHeap(r, want, cfg); err != nil {
			return nil, err
		}

		head = r.binSearch(want)
		if head == nil {
			return nil, newProviderError(r.id, "heap extension did not yield a large enough block")
		}
	}

	r.binRemove(head)

	remHead, remSize := splitBlock(cfg, head, blockSize(head), want)
	if remHead != nil {
		r.binInsert(remHead, remSize, r.id)
	}

	r.allocCount++
	r.bytesInUse += blockSize(head)

	return payloadAddr(head), nil
}

// rawFree is the region-local engine behind Free: compute the block's
// address from its payload pointer, coalesce with free neighbours, and
// reinsert into the appropriate bin.
func rawFree(r *Region, ptr unsafe.Pointer, cfg *Config) {
	head := headFromPayload(ptr)
	size := blockSize(head)

	r.mu.Lock()
	defer r.mu.Unlock()

	assertHeadFootMatch(r.id, head)

	newHead, newSize := r.coalesce(head, size, cfg)
	writeBlockTags(newHead, newSize, false)
	r.binInsert(newHead, newSize, r.id)
	assertBinHeadsHavePrevNil(r.id, r)

	r.freeCount++
	r.bytesInUse -= size
}

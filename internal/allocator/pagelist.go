package allocator

import (
	"fmt"
	"unsafe"

	"github.com/regionheap/regionheap/internal/diagnostics"
)

// pageListNode is a plain-old-data record describing one contiguous page
// run fetched from the page provider: its base address, its page count,
// and the next node in its owning region's page list. Every field is a raw
// address or integer — no Go-managed pointers — because, per spec.md
// §4.3, these nodes themselves live inside page-backed bytes rather than
// on the ordinary Go heap, and the garbage collector does not scan byte
// slices for pointers hidden inside them.
type pageListNode struct {
	pageStart unsafe.Pointer
	numPages  uintptr
	next      unsafe.Pointer
}

var regionRecordSize = unsafe.Sizeof(struct {
	id       uint32
	bins     [NumBins]unsafe.Pointer
	pageHead unsafe.Pointer
	pageTail unsafe.Pointer
}{})

func appendPageListNode(r *Region, nodeAddr unsafe.Pointer) {
	if r.pageTail == nil {
		r.pageHead = nodeAddr
		r.pageTail = nodeAddr

		return
	}

	(*pageListNode)(r.pageTail).next = nodeAddr
	r.pageTail = nodeAddr
}

// extendHeap grows a region's heap by fetching fresh pages and installing
// them as one large free block, per spec.md §4.3. The caller must already
// hold r.mu; region zero is handled by a dedicated bootstrap path that
// never recurses back into the public API (§9's "self-hosted metadata"),
// while every other region obtains its page-list node through an ordinary
// allocation against region zero, releasing its own lock first so the two
// region locks are never nested (spec.md §5's lock-ordering rule).
func extendHeap(r *Region, requiredBlockSize uintptr, cfg *Config) error {
	if r.id == 0 {
		return extendRegionZero(r, requiredBlockSize, cfg)
	}

	pages := pagesFor(requiredBlockSize, cfg)

	mem, err := cfg.Provider.FetchPages(pages)
	if err != nil {
		return newProviderError(r.id, err.Error())
	}

	total := uintptr(len(mem))
	head := unsafe.Pointer(&mem[0])
	writeBlockTags(head, total, false)

	zero := r.tbl.ensureRegionZero()

	r.mu.Unlock()
	nodePayload, err := rawAlloc(zero, unsafe.Sizeof(pageListNode{}), cfg)
	r.mu.Lock()

	if err != nil {
		return err
	}

	node := (*pageListNode)(nodePayload)
	node.pageStart = head
	node.numPages = pages
	node.next = nil
	appendPageListNode(r, nodePayload)

	r.pages = append(r.pages, mem)
	r.binInsert(head, total, r.id)

	cfg.Diag.Log(diagnostics.Event{
		Kind:    diagnostics.KindHeapExtension,
		Region:  uint32(r.id),
		Message: fmt.Sprintf("fetched %d pages", pages),
	})

	return nil
}

// extendRegionZero implements spec.md §4.3's five-step self-hosting
// recipe: fetch enough pages to cover both the caller's request and region
// zero's own page-list-node bookkeeping, install the whole run as one free
// block, then carve the node's block off its front synchronously — never
// through the public alloc path, since region zero's own lock is already
// held.
func extendRegionZero(zero *Region, requiredBlockSize uintptr, cfg *Config) error {
	nodeBlockSize := blockSizeFor(unsafe.Sizeof(pageListNode{}), cfg)
	extended := alignUp(requiredBlockSize+nodeBlockSize, cfg.Alignment)

	pages := pagesFor(extended, cfg)

	mem, err := cfg.Provider.FetchPages(pages)
	if err != nil {
		return newProviderError(0, err.Error())
	}

	total := uintptr(len(mem))
	runHead := unsafe.Pointer(&mem[0])
	writeBlockTags(runHead, total, false)

	remHead, remSize := splitBlock(cfg, runHead, total, nodeBlockSize)

	node := (*pageListNode)(payloadAddr(runHead))
	node.pageStart = runHead
	node.numPages = pages
	node.next = nil
	appendPageListNode(zero, payloadAddr(runHead))

	zero.pages = append(zero.pages, mem)

	if remHead != nil {
		zero.binInsert(remHead, remSize, 0)
	}

	cfg.Diag.Log(diagnostics.Event{
		Kind:    diagnostics.KindHeapExtension,
		Region:  0,
		Message: fmt.Sprintf("self-hosted extension fetched %d pages", pages),
	})

	return nil
}

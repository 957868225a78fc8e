package allocator

import (
	"unsafe"

	allocerrors "github.com/regionheap/regionheap/internal/errors"
)

// wordSize is the machine word used for the boundary-tag encoding (spec.md
// §4.1: "a tag is a single machine word"); block alignment comes from
// Config.Alignment instead.
const wordSize = unsafe.Sizeof(uintptr(0))

// tag packs a block size and its allocated bit into one word, exactly as
// spec.md §4.1 describes: the low bit is stolen from size (every block size
// is a multiple of Alignment, so the bit is always free).
type tag uintptr

func makeTag(size uintptr, allocated bool) tag {
	t := tag(size &^ 1)
	if allocated {
		t |= 1
	}

	return t
}

func (t tag) size() uintptr     { return uintptr(t) &^ 1 }
func (t tag) allocated() bool   { return uintptr(t)&1 != 0 }
func loadTag(addr unsafe.Pointer) tag { return tag(*(*uintptr)(addr)) }

func storeTag(addr unsafe.Pointer, t tag) {
	*(*uintptr)(addr) = uintptr(t)
}

// footAddr returns the address of a block's foot tag given its head address
// and total size (head tag + payload + foot tag).
func footAddr(head unsafe.Pointer, size uintptr) unsafe.Pointer {
	return unsafe.Add(head, size-wordSize)
}

// payloadAddr and headFromPayload convert between the address handed to
// callers (spec.md's "payload pointer") and the head tag address used
// internally.
func payloadAddr(head unsafe.Pointer) unsafe.Pointer { return unsafe.Add(head, wordSize) }

func headFromPayload(payload unsafe.Pointer) unsafe.Pointer {
	return unsafe.Add(payload, -int(wordSize))
}

// writeBlockTags stamps matching head and foot tags for a block of the given
// total size, per the invariant that head and foot must always agree.
func writeBlockTags(head unsafe.Pointer, size uintptr, allocated bool) {
	t := makeTag(size, allocated)
	storeTag(head, t)
	storeTag(footAddr(head, size), t)
}

func blockSize(head unsafe.Pointer) uintptr   { return loadTag(head).size() }
func blockAllocated(head unsafe.Pointer) bool { return loadTag(head).allocated() }

// maxRepresentableRequest is the largest payload request blockSizeFor can
// turn into a block size without wrapping uintptr's range, grounded in
// internal/types/unsafe_allocator.go's IsValidPointer overflow guard
// ("accessStart > ^uintptr(0)-size").
var maxRepresentableRequest = ^uintptr(0) - 2*wordSize - wordSize

// blockSizeFor computes the total block size (including both tags) needed
// to satisfy a payload request of the given size, per spec.md §4.1:
// blk = max(MIN_BLK, align(size + 2*sizeof(tag))). Panics with a
// *errors.StandardError on a request so large that the computation would
// overflow — this can never happen for any legitimate allocation, only for
// a caller passing a corrupted or adversarial size.
func blockSizeFor(requested uintptr, cfg *Config) uintptr {
	if requested > maxRepresentableRequest {
		panic(allocerrors.IntegerOverflow("blockSizeFor", requested))
	}

	raw := alignUp(requested+2*wordSize, cfg.Alignment)
	if raw < cfg.minBlock() {
		return cfg.minBlock()
	}

	return raw
}

// splitBlock carves a block of exactly `want` bytes off the front of a free
// block spanning `totalSize` bytes at `head`. If what remains after the cut
// would not be strictly larger than MIN_BLK, the whole block is handed over
// instead (spec.md §4.2's split rule). Returns the
// remainder's head address and size, or (nil, 0) when nothing remains.
func splitBlock(cfg *Config, head unsafe.Pointer, totalSize, want uintptr) (unsafe.Pointer, uintptr) {
	remainder := totalSize - want
	if remainder <= cfg.minBlock() {
		writeBlockTags(head, totalSize, true)

		return nil, 0
	}

	writeBlockTags(head, want, true)
	remHead := unsafe.Add(head, int(want))
	writeBlockTags(remHead, remainder, false)

	return remHead, remainder
}

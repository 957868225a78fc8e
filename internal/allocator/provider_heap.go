package allocator

import (
	"unsafe"

	allocerrors "github.com/regionheap/regionheap/internal/errors"
)

// heapProvider backs page fetches with ordinary Go-heap byte slices, padded
// and sliced to a page-aligned offset the same way
// internal/runtime/region_alloc.go's allocateSystemMemory simulated a
// page-aligned system allocation when it couldn't call mmap directly. It is
// exported via NewHeapProvider so tests can request a deterministic,
// platform-independent provider regardless of build target.
type heapProvider struct {
	pageSize uintptr
}

// NewHeapProvider returns a PageProvider that serves pages from the Go
// heap instead of the operating system. Useful for tests and for platforms
// without a unix-style mmap.
func NewHeapProvider(pageSize uintptr) PageProvider {
	return &heapProvider{pageSize: pageSize}
}

func (p *heapProvider) FetchPages(n uintptr) ([]byte, error) {
	if n == 0 {
		return nil, allocerrors.InvalidSize(n, "heapProvider.FetchPages")
	}

	size := n * p.pageSize
	raw := make([]byte, size+p.pageSize)
	base := uintptr(unsafe.Pointer(&raw[0]))
	aligned := (base + p.pageSize - 1) &^ (p.pageSize - 1)
	offset := aligned - base

	return raw[offset : offset+size : offset+size], nil
}

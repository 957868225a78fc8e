//go:build unix

package allocator

import (
	"fmt"

	"golang.org/x/sys/unix"
)

// mmapProvider implements PageProvider with real anonymous mappings,
// grounded in internal/runtime/asyncio's platform-tagged syscall files
// (kqueue_poller_bsd.go, zerocopy_unix_file.go), which reach for
// golang.org/x/sys/unix the same way.
type mmapProvider struct {
	pageSize uintptr
}

func newDefaultProvider(pageSize uintptr) PageProvider {
	return &mmapProvider{pageSize: pageSize}
}

func (p *mmapProvider) FetchPages(n uintptr) ([]byte, error) {
	size := int(n * p.pageSize)

	mem, err := unix.Mmap(-1, 0, size, unix.PROT_READ|unix.PROT_WRITE, unix.MAP_ANON|unix.MAP_PRIVATE)
	if err != nil {
		return nil, fmt.Errorf("allocator: mmap %d bytes: %w", size, err)
	}

	return mem, nil
}

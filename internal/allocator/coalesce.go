package allocator

import "unsafe"

// isPageStart reports whether addr sits at the very start of a page,
// meaning there is no block footer immediately to its left to inspect
// (spec.md §4.4's "do not read across a page boundary" guard), nor a block
// header immediately to its right without first checking this block
// doesn't itself run off the end of its page. Shared by both the fast
// (coalesce_fast.go) and slow (coalesce_slow.go) coalescing variants.
func isPageStart(addr unsafe.Pointer, cfg *Config) bool {
	return uintptr(addr)%cfg.PageSize == 0
}

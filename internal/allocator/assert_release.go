//go:build !regheapdebug

package allocator

import "unsafe"

// No-op counterparts of assert_debug.go's checks, compiled into ordinary
// (non-regheapdebug) builds so call sites don't need a build tag of their
// own.

func assertHeadFootMatch(RegionID, unsafe.Pointer) {}

func assertBinHeadsHavePrevNil(RegionID, *Region) {}

func assertRegionIDMatches(RegionID, uint32) {}

package allocator

import "fmt"

// ErrorCategory narrows spec.md §7's error surface: the allocator core
// only ever reports bad configuration or a fatal page-provider failure.
// Everything else §7 calls out (double free, cross-region free, zero-size
// alloc with region out of range) is caller-discipline undefined
// behavior, not a reported error — grounded in internal/errors/standard.go's
// category+code+context shape and internal/runtime/region_memory.go's
// AllocationError/ErrorCode (both deleted originals).
type ErrorCategory string

const (
	CategoryConfig       ErrorCategory = "CONFIG"
	CategoryPageProvider ErrorCategory = "PAGE_PROVIDER"
)

// AllocatorError is the concrete error type Alloc returns; Free and
// Initialize have no error return (Free panics with it instead).
type AllocatorError struct {
	Category ErrorCategory
	Region   RegionID
	Message  string
}

func (e *AllocatorError) Error() string {
	if e.Category == CategoryConfig {
		return fmt.Sprintf("allocator: config: %s", e.Message)
	}

	return fmt.Sprintf("allocator: region %d: %s: %s", e.Region, e.Category, e.Message)
}

func newConfigError(msg string) error {
	return &AllocatorError{Category: CategoryConfig, Message: msg}
}

func newProviderError(region RegionID, msg string) error {
	return &AllocatorError{Category: CategoryPageProvider, Region: region, Message: msg}
}

// BlockCorruptionError is raised (via panic) only by the regheapdebug
// build's invariant assertions — see assert_debug.go. It is never returned
// by the ordinary build's API, matching spec.md §7's framing of corruption
// detection as an opt-in debug aid rather than a load-bearing runtime check.
type BlockCorruptionError struct {
	Region  RegionID
	Message string
}

func (e *BlockCorruptionError) Error() string {
	return fmt.Sprintf("allocator: region %d: corrupted block: %s", e.Region, e.Message)
}

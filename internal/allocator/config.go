// Package allocator implements a region-based, multi-threaded general
// purpose memory allocator. Each allocation is tagged with a numeric
// region id; every region owns an independent heap (free lists, page
// list, and lock) so that threads allocating into disjoint regions never
// contend. Region zero bootstraps the allocator's own bookkeeping.
package allocator

import (
	"unsafe"

	"github.com/regionheap/regionheap/internal/diagnostics"
)

// Tunable constants (spec.md §6.5). NumBins is fixed at 20 rather than the
// source's overflowing 10 — see DESIGN.md's "bin-mapping asymmetry" entry.
const (
	DefaultAlignment  uintptr = 8
	DefaultNumRegions int     = 1000
)

// Config carries every tunable the allocator core consumes. It is built
// through functional Options the same way internal/allocator/allocator.go
// (the teacher) built its Config/Option pair; the page provider is one of
// the options rather than a compile-time choice, so tests can swap it for
// a deterministic or mock implementation.
type Config struct {
	PageSize   uintptr
	Alignment  uintptr
	NumRegions int
	Provider   PageProvider
	Diag       *diagnostics.Logger

	minBlk uintptr
}

// Option configures a Config during construction.
type Option func(*Config)

// WithPageSize overrides the page size requested from the page provider.
func WithPageSize(n uintptr) Option { return func(c *Config) { c.PageSize = n } }

// WithAlignment overrides the machine word alignment (spec.md calls this A).
func WithAlignment(n uintptr) Option { return func(c *Config) { c.Alignment = n } }

// WithNumRegions overrides the size of the region table.
func WithNumRegions(n int) Option { return func(c *Config) { c.NumRegions = n } }

// WithPageProvider overrides the §6.1 page-provider collaborator.
func WithPageProvider(p PageProvider) Option { return func(c *Config) { c.Provider = p } }

// WithDiagnostics attaches an event logger for region bootstrap and heap
// extension events. Omitted by default — Diag is nil-safe, so allocation
// and free remain silent unless a caller opts in.
func WithDiagnostics(l *diagnostics.Logger) Option { return func(c *Config) { c.Diag = l } }

func newConfig(opts ...Option) *Config {
	c := &Config{
		PageSize:   uintptr(defaultPageSize()),
		Alignment:  DefaultAlignment,
		NumRegions: DefaultNumRegions,
	}

	for _, opt := range opts {
		opt(c)
	}

	if c.Provider == nil {
		c.Provider = newDefaultProvider(c.PageSize)
	}

	c.minBlk = alignUp(2*wordSize+freeRecordSize, c.Alignment)

	return c
}

// minBlock returns MIN_BLK: the smallest legal block size, derived from the
// tag size and the free-block record, rounded up to Alignment.
func (c *Config) minBlock() uintptr { return c.minBlk }

func (c *Config) pageListNodeBlockSize() uintptr {
	return blockSizeFor(unsafe.Sizeof(pageListNode{}), c)
}

func (c *Config) regionRecordBlockSize() uintptr {
	return blockSizeFor(regionRecordSize, c)
}

// alignUp rounds n up to the next multiple of a (a must be a power of two).
func alignUp(n, a uintptr) uintptr {
	return (n + a - 1) &^ (a - 1)
}

package main

import (
	"fmt"

	"github.com/regionheap/regionheap/internal/allocator"
	"github.com/regionheap/regionheap/internal/diagnostics"
	"golang.org/x/sync/errgroup"
)

// scenario pairs a human-readable name with the closure that drives one of
// spec.md §8's literal end-to-end walkthroughs against a freshly
// initialized allocator table.
type scenario struct {
	name string
	run  func() error
}

func fresh(pageSize uintptr, diag *diagnostics.Logger) {
	allocator.Initialize(
		allocator.WithPageSize(pageSize),
		allocator.WithPageProvider(allocator.NewHeapProvider(pageSize)),
		allocator.WithDiagnostics(diag),
	)
}

// singleThreadLifecycle is spec.md §8 scenario 1: one region, one
// allocation followed by one free, with the block returned whole to the
// region's free list.
func singleThreadLifecycle(pageSize uintptr, diag *diagnostics.Logger) error {
	fresh(pageSize, diag)

	const region allocator.RegionID = 0

	ptr, err := allocator.Alloc(2048, region)
	if err != nil {
		return fmt.Errorf("alloc: %w", err)
	}

	before := allocator.Stats(region)
	if before.AllocCount != 1 || before.BytesInUse == 0 {
		return fmt.Errorf("unexpected post-alloc stats: %+v", before)
	}

	allocator.Free(ptr, region)

	after := allocator.Stats(region)
	if after.FreeCount != 1 || after.BytesInUse != 0 {
		return fmt.Errorf("unexpected post-free stats: %+v", after)
	}

	total := 0
	for _, n := range after.BinOccupancy {
		total += n
	}

	if total == 0 {
		return fmt.Errorf("expected at least one free block after returning the only allocation, got none")
	}

	return nil
}

// splitAndCoalesce is spec.md §8 scenario 2: carving a small allocation out
// of a larger free block, then freeing everything back so the region
// coalesces back down to bytes-in-use zero.
func splitAndCoalesce(pageSize uintptr, diag *diagnostics.Logger) error {
	fresh(pageSize, diag)

	const region allocator.RegionID = 1

	big, err := allocator.Alloc(64, region)
	if err != nil {
		return fmt.Errorf("alloc big: %w", err)
	}

	small, err := allocator.Alloc(32, region)
	if err != nil {
		return fmt.Errorf("alloc small: %w", err)
	}

	allocator.Free(big, region)
	allocator.Free(small, region)

	s := allocator.Stats(region)
	if s.AllocCount != 2 || s.FreeCount != 2 || s.BytesInUse != 0 {
		return fmt.Errorf("expected full coalesce back to zero bytes in use, got %+v", s)
	}

	return nil
}

// segregatedSearchOrder is spec.md §8 scenario 3: requests of different
// sizes land in, and are satisfied from, different segregated bins.
func segregatedSearchOrder(pageSize uintptr, diag *diagnostics.Logger) error {
	fresh(pageSize, diag)

	const region allocator.RegionID = 2

	small, err := allocator.Alloc(32, region)
	if err != nil {
		return fmt.Errorf("alloc small: %w", err)
	}

	large, err := allocator.Alloc(4000, region)
	if err != nil {
		return fmt.Errorf("alloc large: %w", err)
	}

	allocator.Free(large, region)

	s := allocator.Stats(region)
	if s.AllocCount != 2 || s.FreeCount != 1 {
		return fmt.Errorf("unexpected counters after freeing only the large block: %+v", s)
	}

	total := 0
	for _, n := range s.BinOccupancy {
		total += n
	}

	if total == 0 {
		return fmt.Errorf("expected the freed large block to populate some bin, found none")
	}

	allocator.Free(small, region)

	return nil
}

// regionIsolation is spec.md §8 scenario 4 / property 6: concurrent
// traffic against disjoint regions never corrupts another region's free
// list and leaves every region's bytes-in-use back at zero.
func regionIsolation(pageSize uintptr, diag *diagnostics.Logger) error {
	fresh(pageSize, diag)

	const (
		numRegions = 4
		iterations = 500
	)

	var g errgroup.Group

	for i := 0; i < numRegions; i++ {
		region := allocator.RegionID(i + 10)

		g.Go(func() error {
			for j := 0; j < iterations; j++ {
				p, err := allocator.Alloc(500, region)
				if err != nil {
					return fmt.Errorf("region %d: alloc %d: %w", region, j, err)
				}

				allocator.Free(p, region)
			}

			return nil
		})
	}

	if err := g.Wait(); err != nil {
		return err
	}

	for i := 0; i < numRegions; i++ {
		region := allocator.RegionID(i + 10)

		s := allocator.Stats(region)
		if s.BytesInUse != 0 {
			return fmt.Errorf("region %d: expected zero bytes in use after the loop, got %d", region, s.BytesInUse)
		}

		if s.AllocCount != iterations || s.FreeCount != iterations {
			return fmt.Errorf("region %d: expected %d alloc/free pairs, got alloc=%d free=%d", region, iterations, s.AllocCount, s.FreeCount)
		}
	}

	return nil
}

// regionZeroBootstrap is spec.md §8 scenario 5: touching a non-zero region
// for the first time transitively bootstraps region zero, charging that
// region's own record against region zero's heap before the new region
// ever gets its own pages.
func regionZeroBootstrap(pageSize uintptr, diag *diagnostics.Logger) error {
	fresh(pageSize, diag)

	const region allocator.RegionID = 3

	ptr, err := allocator.Alloc(100, region)
	if err != nil {
		return fmt.Errorf("alloc into region %d: %w", region, err)
	}

	zero := allocator.Stats(0)
	if zero.AllocCount == 0 {
		return fmt.Errorf("expected region zero to have serviced the new region's record, got %+v", zero)
	}

	target := allocator.Stats(region)
	if target.AllocCount != 1 {
		return fmt.Errorf("expected exactly one allocation recorded against region %d, got %+v", region, target)
	}

	allocator.Free(ptr, region)

	return nil
}

// largeRequest is spec.md §8's large-request boundary case: a request well
// beyond a single page rounds its page count up to the next power of two
// and is served from a single, freshly fetched run.
func largeRequest(pageSize uintptr, diag *diagnostics.Logger) error {
	fresh(pageSize, diag)

	const region allocator.RegionID = 4

	ptr, err := allocator.Alloc(1_000_000, region)
	if err != nil {
		return fmt.Errorf("alloc 1,000,000 bytes: %w", err)
	}

	s := allocator.Stats(region)
	if s.PageRuns == 0 {
		return fmt.Errorf("expected at least one page run to back the large request, got %+v", s)
	}

	allocator.Free(ptr, region)

	return nil
}

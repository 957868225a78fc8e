package allocator

import (
	"fmt"
	"testing"

	"go.uber.org/mock/gomock"
)

// TestRegionZeroBootstrapSequence exercises spec.md §8 scenario 5: the
// very first call touching a non-zero region causes region zero to
// bootstrap, extend its own heap once, carve out the new region's record,
// then extend the new region's heap and carve its page-list node back out
// of region zero — without a second page-provider fetch, since region
// zero's first extension already left enough spare capacity. Verified with
// go.uber.org/mock/gomock against the exact FetchPages call sequence,
// grounded in cmd/orizon-mockgen's reason for existing elsewhere in the
// corpus (mocking a collaborator interface rather than hand-rolling a fake).
func TestRegionZeroBootstrapSequence(t *testing.T) {
	ctrl := gomock.NewController(t)
	mockProvider := NewMockPageProvider(ctrl)
	backing := NewHeapProvider(4096)

	first := mockProvider.EXPECT().
		FetchPages(uintptr(1)).
		DoAndReturn(func(n uintptr) ([]byte, error) { return backing.FetchPages(n) }).
		Times(1)

	second := mockProvider.EXPECT().
		FetchPages(uintptr(1)).
		DoAndReturn(func(n uintptr) ([]byte, error) { return backing.FetchPages(n) }).
		Times(1)

	gomock.InOrder(first, second)

	tbl := newTable(newConfig(WithPageSize(4096), WithPageProvider(mockProvider)))

	// First touch of region 7: region zero bootstraps (no fetch yet — an
	// empty Region costs nothing), its record is carved from region
	// zero's heap (triggering region zero's own first extension, fetch
	// #1), then region 7 is given its own page run (fetch #2) and its
	// page-list node is carved back out of region zero's now-spare
	// capacity from fetch #1, with no third fetch required.
	zero := tbl.ensureRegionZero()
	beforeBytes := zero.bytesInUse

	r7, err := tbl.ensureRegion(7)
	if err != nil {
		t.Fatalf("ensureRegion(7): %v", err)
	}

	wantCharge := uint64(tbl.cfg.regionRecordBlockSize())
	if gotCharge := zero.bytesInUse - beforeBytes; gotCharge != wantCharge {
		t.Fatalf("region 7's record charged %d bytes against region zero, want %d", gotCharge, wantCharge)
	}

	if _, err := rawAlloc(r7, 100, tbl.cfg); err != nil {
		t.Fatalf("alloc into region 7: %v", err)
	}
}

// TestEnsureRegionPropagatesFatalProviderFailure covers the fatal
// page-provider-failure path: when region zero's own self-hosted extension
// fails, ensureRegion must return the error rather than silently publishing
// a region with a nil record.
func TestEnsureRegionPropagatesFatalProviderFailure(t *testing.T) {
	ctrl := gomock.NewController(t)
	mockProvider := NewMockPageProvider(ctrl)
	mockProvider.EXPECT().
		FetchPages(gomock.Any()).
		Return(nil, fmt.Errorf("out of memory")).
		Times(1)

	tbl := newTable(newConfig(WithPageSize(4096), WithPageProvider(mockProvider)))

	if _, err := tbl.ensureRegion(9); err == nil {
		t.Fatalf("expected ensureRegion to propagate the page-provider failure, got nil error")
	}

	if r := tbl.slots[9].Load(); r != nil {
		t.Fatalf("expected region 9's slot to remain unpublished after a fatal bootstrap failure")
	}
}

package listing

import (
	"testing"

	"github.com/vayerart/storefront/pkg/types"
)

func TestPolicyForServerSideFilters(t *testing.T) {
	policy := PolicyFor(32, types.SortDefault, false)
	if policy.MaxBatches != 1 || policy.BatchSize != 32 {
		t.Errorf("Expected a single exact batch, got %+v", policy)
	}
}

func TestPolicyForClientFallback(t *testing.T) {
	policy := PolicyFor(32, types.SortDefault, true)
	if policy.MaxBatches != 12 {
		t.Errorf("Expected 12 batches, got %d", policy.MaxBatches)
	}
	if policy.BatchSize != 128 {
		t.Errorf("Expected inflated batch size 128, got %d", policy.BatchSize)
	}

	// Small pages still scan at least the floor.
	policy = PolicyFor(8, types.SortDefault, true)
	if policy.BatchSize != 128 {
		t.Errorf("Expected the batch size floor, got %d", policy.BatchSize)
	}

	// Large pages scale with the multiplier.
	policy = PolicyFor(64, types.SortDefault, true)
	if policy.BatchSize != 256 {
		t.Errorf("Expected 4x the page size, got %d", policy.BatchSize)
	}
}

func TestPolicyForPriceSortScansDeeper(t *testing.T) {
	policy := PolicyFor(32, types.SortPriceAsc, true)
	if policy.MaxBatches != 40 {
		t.Errorf("Expected 40 batches for price sorts, got %d", policy.MaxBatches)
	}
}

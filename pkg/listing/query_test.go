package listing

import (
	"testing"

	"github.com/vayerart/storefront/pkg/types"
)

func TestNormalizedDefaults(t *testing.T) {
	q := Query{}.Normalized()
	if q.PageSize != DefaultPageSize {
		t.Errorf("Expected default page size, got %d", q.PageSize)
	}
	if q.Sort != types.SortDefault {
		t.Errorf("Expected default sort, got %v", q.Sort)
	}
}

func TestCacheKeyStableUnderSelectionOrder(t *testing.T) {
	a := Query{
		Availability: true,
		Filters: types.FilterState{
			Styles:      []string{"Pop Art", "Cubism"},
			PriceRanges: []string{"1k-2k", "under-500"},
		},
	}
	b := Query{
		Availability: true,
		Filters: types.FilterState{
			Styles:      []string{"Cubism", "Pop Art", "Cubism"},
			PriceRanges: []string{"under-500", "1k-2k"},
		},
	}
	if a.CacheKey() != b.CacheKey() {
		t.Errorf("Expected identical cache keys, got %q vs %q", a.CacheKey(), b.CacheKey())
	}
}

func TestCacheKeyDistinguishesAvailability(t *testing.T) {
	available := Query{Availability: true}
	sold := Query{Availability: false}
	if available.CacheKey() == sold.CacheKey() {
		t.Errorf("Expected the sold view to cache separately")
	}
}

func TestCacheKeyDistinguishesSort(t *testing.T) {
	a := Query{Availability: true, Sort: types.SortPriceAsc}
	b := Query{Availability: true, Sort: types.SortPriceDesc}
	if a.CacheKey() == b.CacheKey() {
		t.Errorf("Expected sorts to cache separately")
	}
}

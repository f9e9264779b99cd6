package catalog

import (
	"context"
	"encoding/json"

	"github.com/vayerart/storefront/pkg/price"
	"github.com/vayerart/storefront/pkg/shopify"
	"github.com/vayerart/storefront/pkg/types"
)

// BuildResult is a compiled server-side search predicate. When
// RequiresClientFallback is set, some selected criterion could not be
// expressed server-side and every returned item must additionally be
// checked client-side.
type BuildResult struct {
	ProductFilters         []shopify.ProductFilter
	SearchQuery            string
	RequiresClientFallback bool
}

// fallbackFilter synthesizes a metafield predicate for dimensions whose
// values map directly onto product metafields even when discovery has
// not seen them.
func fallbackFilter(key types.FilterKey, value string) (shopify.ProductFilter, bool) {
	switch key {
	case types.KeyArtists:
		return shopify.ProductFilter{ProductMetafield: &shopify.MetafieldFilter{Namespace: "custom", Key: "artist", Value: value}}, true
	case types.KeyCategories:
		return shopify.ProductFilter{ProductMetafield: &shopify.MetafieldFilter{Namespace: "custom", Key: "category", Value: value}}, true
	}
	return shopify.ProductFilter{}, false
}

func appendUnique(target []shopify.ProductFilter, next shopify.ProductFilter) []shopify.ProductFilter {
	serialized, err := json.Marshal(next)
	if err != nil {
		return target
	}
	for _, existing := range target {
		if b, err := json.Marshal(existing); err == nil && string(b) == string(serialized) {
			return target
		}
	}
	return append(target, next)
}

// BuildSearchFilters compiles a filter state into search predicates.
// The availability flag is always included. Values with no known
// predicate encoding are recorded as requiring client fallback rather
// than dropped.
func (c *Catalog) BuildSearchFilters(ctx context.Context, filters types.FilterState, available bool) BuildResult {
	snap := c.snapshotFor(ctx)

	result := BuildResult{
		ProductFilters: []shopify.ProductFilter{shopify.AvailableFilter(available)},
		SearchQuery:    "*",
	}

	keyed := []types.FilterKey{types.KeyArtists, types.KeyCategories, types.KeyStyles, types.KeyThemes}
	for _, key := range keyed {
		for _, selected := range filters.Values(key) {
			normalized := normalizeLabel(selected)
			if mapped, ok := snap.inputs[key][normalized]; ok {
				result.ProductFilters = appendUnique(result.ProductFilters, mapped)
				continue
			}
			if fallback, ok := fallbackFilter(key, selected); ok {
				result.ProductFilters = appendUnique(result.ProductFilters, fallback)
				continue
			}
			result.RequiresClientFallback = true
		}
	}

	ranges := price.NormalizeValues(filters.PriceRanges)
	switch {
	case len(ranges) == 1:
		if bounds, ok := price.BoundsForRange(ranges[0]); ok {
			result.ProductFilters = appendUnique(result.ProductFilters, shopify.ProductFilter{Price: &bounds})
		}
	case len(ranges) > 1:
		if bounds, ok := price.CombinedContiguousBounds(ranges); ok {
			result.ProductFilters = appendUnique(result.ProductFilters, shopify.ProductFilter{Price: &bounds})
		} else {
			// Disjoint ranges need OR semantics the backend can't express.
			result.RequiresClientFallback = true
		}
	}

	return result
}

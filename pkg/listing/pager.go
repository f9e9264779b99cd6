package listing

import (
	"context"

	"github.com/vayerart/storefront/pkg/catalog"
	"github.com/vayerart/storefront/pkg/shopify"
	"github.com/vayerart/storefront/pkg/types"
)

// CommerceSource is the paginated product catalog/search backend.
type CommerceSource interface {
	ProductsPage(ctx context.Context, after *string, first int, sort types.SortOption, availabilityQuery string) ([]types.Artwork, types.PageInfo, error)
	SearchPage(ctx context.Context, after *string, first int, sort types.SortOption, searchQuery string, filters []shopify.ProductFilter) ([]types.Artwork, types.PageInfo, error)
	CollectionPage(ctx context.Context, handle string, after *string, first int, sort types.SortOption) ([]types.Artwork, types.PageInfo, error)
}

// CuratedSource is the CMS's hand-picked highlight list, a single
// opaque page.
type CuratedSource interface {
	SelectedArtworks(ctx context.Context) ([]types.Artwork, error)
}

// TitleSource resolves collection handles to their display titles for
// the merger's metadata overlay.
type TitleSource interface {
	CollectionTitles(ctx context.Context) map[string]string
}

// FilterCompiler turns a filter state into server-side search
// predicates.
type FilterCompiler interface {
	BuildSearchFilters(ctx context.Context, filters types.FilterState, available bool) catalog.BuildResult
}

// BatchPolicy bounds the batched client-filtering scan on the search
// endpoint. When a selected criterion isn't expressible server-side,
// batches are inflated and capped to keep worst-case latency bounded.
type BatchPolicy struct {
	MaxBatches int
	BatchSize  int
}

const (
	fallbackBatchCap          = 12
	fallbackBatchCapPriceSort = 40
	fallbackBatchSizeFloor    = 128
	fallbackBatchMultiplier   = 4
)

// PolicyFor derives batch limits from the sort mode and whether client
// filtering is in play. Price sort combined with client filtering can
// require scanning deep before finding enough matches, hence the larger
// cap.
func PolicyFor(pageSize int, sort types.SortOption, clientFallback bool) BatchPolicy {
	if !clientFallback {
		return BatchPolicy{MaxBatches: 1, BatchSize: pageSize}
	}
	maxBatches := fallbackBatchCap
	if sort.IsPriceSort() {
		maxBatches = fallbackBatchCapPriceSort
	}
	batchSize := pageSize * fallbackBatchMultiplier
	if batchSize < fallbackBatchSizeFloor {
		batchSize = fallbackBatchSizeFloor
	}
	return BatchPolicy{MaxBatches: maxBatches, BatchSize: batchSize}
}

// fetchCommercePage is the single-cursor commerce pager. Without active
// filters it uses the plain listing endpoint for maximal cache
// efficiency; with filters it compiles predicates for the search
// endpoint and scans batches client-side where needed.
func fetchCommercePage(ctx context.Context, source CommerceSource, compiler FilterCompiler, after *string, q Query) (types.ArtworksPage, error) {
	if !q.Filters.HasAnyFilters() {
		availabilityQuery := ""
		if q.Availability {
			availabilityQuery = shopify.InStockQuery
		}
		items, pageInfo, err := source.ProductsPage(ctx, after, q.PageSize, q.Sort, availabilityQuery)
		if err != nil {
			return types.ArtworksPage{}, err
		}
		return types.ArtworksPage{Source: types.SourceCommerce, Items: items, PageInfo: pageInfo}, nil
	}

	compiled := compiler.BuildSearchFilters(ctx, q.Filters, q.Availability)
	policy := PolicyFor(q.PageSize, q.Sort, compiled.RequiresClientFallback)

	cursor := after
	hasNextPage := true
	collected := make([]types.Artwork, 0, q.PageSize)

	for attempts := 0; hasNextPage && len(collected) < q.PageSize && attempts < policy.MaxBatches; attempts++ {
		items, pageInfo, err := source.SearchPage(ctx, cursor, policy.BatchSize, q.Sort, compiled.SearchQuery, compiled.ProductFilters)
		if err != nil {
			return types.ArtworksPage{}, err
		}

		batch := items
		if compiled.RequiresClientFallback {
			batch = FilterByState(items, q.Filters)
		}
		remaining := q.PageSize - len(collected)
		if len(batch) > remaining {
			batch = batch[:remaining]
		}
		collected = append(collected, batch...)

		hasNextPage = pageInfo.HasNextPage
		cursor = pageInfo.EndCursor
	}

	return types.ArtworksPage{
		Source:   types.SourceCommerce,
		Items:    collected,
		PageInfo: types.PageInfo{HasNextPage: hasNextPage, EndCursor: cursor},
	}, nil
}

package listing

import (
	"context"

	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promauto"

	"github.com/vayerart/storefront/pkg/types"
)

var listingFetches = promauto.NewCounterVec(prometheus.CounterOpts{
	Name: "storefront_listing_page_fetches_total",
	Help: "Number of listing page fetches by source",
}, []string{"source"})

// Orchestrator exposes the infinite-pagination contract over the
// curated content source and the commerce catalog: an initial page
// param, a page fetch and a next-param derivation. The UI threads the
// param opaquely between successive load-more calls and discards it
// whenever the query changes.
type Orchestrator struct {
	Commerce CommerceSource
	Curated  CuratedSource
	Compiler FilterCompiler
	Titles   TitleSource
}

func (o *Orchestrator) collectionTitles(ctx context.Context) map[string]string {
	if o.Titles == nil {
		return nil
	}
	return o.Titles.CollectionTitles(ctx)
}

// InitialPageParam decides the starting source. The curated content
// source is used only for the unsorted, unfiltered, in-stock view; the
// sold view and every filtered or sorted view go straight to commerce.
func (o *Orchestrator) InitialPageParam(q Query) types.PageParam {
	q = q.Normalized()
	handles := CollectionHandles(q.Filters)
	useContent := q.Sort == types.SortDefault &&
		!q.Filters.HasAnyFilters() &&
		q.Availability &&
		o.Curated != nil

	if useContent {
		return types.PageParam{Source: types.SourceContent}
	}
	param := types.PageParam{Source: types.SourceCommerce}
	if len(handles) > 0 {
		param.CollectionHandles = handles
	}
	return param
}

// FetchPage fetches the page the param points at. Collection handles
// are always recomputed from the current filters, never trusted from
// the param, so a stale param can't leak another request's handles.
func (o *Orchestrator) FetchPage(ctx context.Context, q Query, param types.PageParam) (types.ArtworksPage, error) {
	q = q.Normalized()

	if param.Source == types.SourceContent {
		listingFetches.WithLabelValues("content").Inc()
		return o.fetchContentPage(ctx, q.PageSize)
	}

	listingFetches.WithLabelValues("commerce").Inc()
	handles := CollectionHandles(q.Filters)
	if len(handles) > 0 {
		return MergeCollections(ctx, o.Commerce, handles, o.collectionTitles(ctx), param, q.PageSize, q.Sort, q.Filters.PriceRanges)
	}
	return fetchCommercePage(ctx, o.Commerce, o.Compiler, param.After, q)
}

// fetchContentPage serves the curated teaser. It always reports
// hasNextPage so NextPageParam hands off to commerce; the curated
// source is a first page only, never paginated on its own.
func (o *Orchestrator) fetchContentPage(ctx context.Context, pageSize int) (types.ArtworksPage, error) {
	items, err := o.Curated.SelectedArtworks(ctx)
	if err != nil {
		return types.ArtworksPage{}, err
	}
	if len(items) > pageSize {
		items = items[:pageSize]
	}
	return types.ArtworksPage{
		Source:   types.SourceContent,
		Items:    items,
		PageInfo: types.PageInfo{HasNextPage: true},
	}, nil
}

// NextPageParam derives the continuation for the next call, or nil when
// pagination is done.
func NextPageParam(lastPage types.ArtworksPage) *types.PageParam {
	if lastPage.Source == types.SourceContent {
		// Hand off to commerce with a fresh cursor; handles get
		// recomputed from the live filters on the next fetch.
		return &types.PageParam{Source: types.SourceCommerce}
	}

	if len(lastPage.CollectionHandles) > 0 {
		hasMore := false
		for _, handle := range lastPage.CollectionHandles {
			if len(lastPage.BufferedByHandle[handle]) > 0 {
				hasMore = true
				break
			}
			if cursor, ok := lastPage.CursorsByHandle[handle]; ok && cursor != nil {
				hasMore = true
				break
			}
		}
		if !hasMore {
			return nil
		}
		return &types.PageParam{
			Source:            types.SourceCommerce,
			CollectionHandles: lastPage.CollectionHandles,
			CursorsByHandle:   lastPage.CursorsByHandle,
			BufferedByHandle:  lastPage.BufferedByHandle,
		}
	}

	if !lastPage.PageInfo.HasNextPage {
		return nil
	}
	return &types.PageParam{Source: types.SourceCommerce, After: lastPage.PageInfo.EndCursor}
}

// FlattenPages concatenates delivered pages and removes duplicate
// artworks by identity, keeping the first occurrence. This is the
// consumer-facing safety net on top of the merger's own dedup: two
// overlapping collections can still surface the same artwork on
// different pages.
func FlattenPages(pages []types.ArtworksPage) []types.Artwork {
	total := 0
	for i := range pages {
		total += len(pages[i].Items)
	}
	flat := make([]types.Artwork, 0, total)
	for i := range pages {
		flat = append(flat, pages[i].Items...)
	}
	return types.DedupeArtworks(flat)
}

package listing

import (
	"context"

	"github.com/vayerart/storefront/pkg/types"
)

// ArtistInitialPageParam starts an artist-pinned listing: curated
// selected works first when the CMS has any, then the artist's
// collections.
func ArtistInitialPageParam(name string, hasSelectedWorks bool) types.PageParam {
	handles := ArtistHandles(name)
	if hasSelectedWorks {
		return types.PageParam{Source: types.SourceContent, CollectionHandles: handles}
	}
	return types.PageParam{Source: types.SourceCommerce, CollectionHandles: handles}
}

// FetchArtistPage serves one page of an artist listing. The selected
// works act as the content source; commerce pages merge every slug
// variant of the artist's collection handle.
func (o *Orchestrator) FetchArtistPage(ctx context.Context, name string, selectedWorks []types.Artwork, pageSize int, param types.PageParam) (types.ArtworksPage, error) {
	handles := ArtistHandles(name)

	if param.Source == types.SourceContent {
		items := selectedWorks
		if len(items) > pageSize {
			items = items[:pageSize]
		}
		return types.ArtworksPage{
			Source:   types.SourceContent,
			Items:    items,
			PageInfo: types.PageInfo{HasNextPage: len(handles) > 0},
		}, nil
	}

	if len(handles) == 0 {
		return types.ArtworksPage{
			Source:            types.SourceCommerce,
			Items:             []types.Artwork{},
			PageInfo:          types.PageInfo{HasNextPage: false},
			CollectionHandles: []string{},
			CursorsByHandle:   map[string]*string{},
		}, nil
	}

	return MergeCollections(ctx, o.Commerce, handles, o.collectionTitles(ctx), param, pageSize, types.SortDefault, nil)
}

// NextArtistPageParam continues an artist listing, pinning the handle
// list so every continuation stays scoped to the artist.
func NextArtistPageParam(lastPage types.ArtworksPage, name string) *types.PageParam {
	handles := ArtistHandles(name)
	if lastPage.Source == types.SourceContent {
		if len(handles) == 0 {
			return nil
		}
		return &types.PageParam{Source: types.SourceCommerce, CollectionHandles: handles}
	}
	next := NextPageParam(lastPage)
	if next == nil {
		return nil
	}
	if len(next.CollectionHandles) == 0 && len(handles) > 0 {
		next.CollectionHandles = handles
	}
	return next
}

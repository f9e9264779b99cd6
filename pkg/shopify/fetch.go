package shopify

import (
	"context"
	"strings"

	"github.com/vayerart/storefront/pkg/types"
)

func cursorVariable(variables map[string]any, key string, after *string) {
	if after != nil && *after != "" {
		variables[key] = *after
	}
}

// ProductsPage fetches one page from the plain listing endpoint. An
// empty availabilityQuery lists everything, including sold items.
func (c *Client) ProductsPage(ctx context.Context, after *string, first int, sort types.SortOption, availabilityQuery string) ([]types.Artwork, types.PageInfo, error) {
	sortKey, reverse := productSortParams(sort)
	variables := map[string]any{
		"first":       first,
		"sortKey":     sortKey,
		"reverse":     reverse,
		"imagesFirst": 1,
	}
	cursorVariable(variables, "after", after)
	if availabilityQuery != "" {
		variables["query"] = availabilityQuery
	}

	var res struct {
		Products productConnection `json:"products"`
	}
	if err := c.query(ctx, allProductsQuery, variables, &res); err != nil {
		return nil, types.PageInfo{}, err
	}
	return connectionToArtworks(res.Products), toPageInfo(res.Products.PageInfo), nil
}

// SearchPage fetches one page from the search endpoint with structured
// predicates.
func (c *Client) SearchPage(ctx context.Context, after *string, first int, sort types.SortOption, searchQuery string, filters []ProductFilter) ([]types.Artwork, types.PageInfo, error) {
	sortKey, reverse := searchSortParams(sort)
	if searchQuery == "" {
		searchQuery = "*"
	}
	variables := map[string]any{
		"first":          first,
		"query":          searchQuery,
		"sortKey":        sortKey,
		"reverse":        reverse,
		"productFilters": filters,
		"imagesFirst":    1,
	}
	cursorVariable(variables, "after", after)

	var res struct {
		Search struct {
			PageInfo pageInfo      `json:"pageInfo"`
			Nodes    []productNode `json:"nodes"`
		} `json:"search"`
	}
	if err := c.query(ctx, searchProductsQuery, variables, &res); err != nil {
		return nil, types.PageInfo{}, err
	}
	return nodesToArtworks(res.Search.Nodes), toPageInfo(res.Search.PageInfo), nil
}

// CollectionPage fetches one page of a single collection's products. A
// missing collection yields an empty, exhausted page rather than an
// error.
func (c *Client) CollectionPage(ctx context.Context, handle string, after *string, first int, sort types.SortOption) ([]types.Artwork, types.PageInfo, error) {
	sortKey, reverse := collectionSortParams(sort)
	variables := map[string]any{
		"handle":      handle,
		"first":       first,
		"sortKey":     sortKey,
		"reverse":     reverse,
		"imagesFirst": 1,
	}
	cursorVariable(variables, "after", after)

	var res struct {
		CollectionByHandle *struct {
			Products productConnection `json:"products"`
		} `json:"collectionByHandle"`
	}
	if err := c.query(ctx, collectionProductsQuery, variables, &res); err != nil {
		return nil, types.PageInfo{}, err
	}
	if res.CollectionByHandle == nil {
		return nil, types.PageInfo{HasNextPage: false}, nil
	}
	conn := res.CollectionByHandle.Products
	return connectionToArtworks(conn), toPageInfo(conn.PageInfo), nil
}

// CollectionsPage lists grouping collections for facet discovery.
// Collections without a usable handle or title are skipped.
func (c *Client) CollectionsPage(ctx context.Context, after *string, first int) ([]types.CollectionSummary, types.PageInfo, error) {
	variables := map[string]any{"first": first}
	cursorVariable(variables, "after", after)

	var res struct {
		Collections struct {
			Edges []struct {
				Node types.CollectionSummary `json:"node"`
			} `json:"edges"`
			PageInfo pageInfo `json:"pageInfo"`
		} `json:"collections"`
	}
	if err := c.query(ctx, collectionsQuery, variables, &res); err != nil {
		return nil, types.PageInfo{}, err
	}

	items := make([]types.CollectionSummary, 0, len(res.Collections.Edges))
	for _, edge := range res.Collections.Edges {
		handle := strings.TrimSpace(edge.Node.Handle)
		title := strings.TrimSpace(edge.Node.Title)
		if handle == "" {
			continue
		}
		if title == "" {
			title = prettifyHandle(handle)
		}
		items = append(items, types.CollectionSummary{Handle: handle, Title: title})
	}
	return items, toPageInfo(res.Collections.PageInfo), nil
}

// SearchFilterFacets asks the search endpoint for its faceting over a
// representative listing; the single returned node is discarded, only
// the productFilters block matters.
func (c *Client) SearchFilterFacets(ctx context.Context) ([]SearchFacet, error) {
	var res struct {
		Search struct {
			ProductFilters []SearchFacet `json:"productFilters"`
		} `json:"search"`
	}
	if err := c.query(ctx, searchFilterFacetsQuery, nil, &res); err != nil {
		return nil, err
	}
	return res.Search.ProductFilters, nil
}

// SitemapProduct is the slim product row the sitemap needs.
type SitemapProduct struct {
	Handle    string `json:"handle"`
	UpdatedAt string `json:"updatedAt"`
}

const sitemapPageSize = 250
const sitemapMaxPages = 40

// SitemapProducts scans the full catalog, bounded to sitemapMaxPages
// pages to keep a runaway catalog from stalling sitemap builds.
func (c *Client) SitemapProducts(ctx context.Context) ([]SitemapProduct, error) {
	var out []SitemapProduct
	var after *string

	for page := 0; page < sitemapMaxPages; page++ {
		variables := map[string]any{"first": sitemapPageSize}
		cursorVariable(variables, "after", after)

		var res struct {
			Products struct {
				Edges []struct {
					Node SitemapProduct `json:"node"`
				} `json:"edges"`
				PageInfo pageInfo `json:"pageInfo"`
			} `json:"products"`
		}
		if err := c.query(ctx, sitemapProductsQuery, variables, &res); err != nil {
			return out, err
		}
		for _, edge := range res.Products.Edges {
			if edge.Node.Handle != "" {
				out = append(out, edge.Node)
			}
		}
		if !res.Products.PageInfo.HasNextPage || res.Products.PageInfo.EndCursor == nil {
			break
		}
		after = res.Products.PageInfo.EndCursor
	}
	return out, nil
}

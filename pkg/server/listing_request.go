package server

import (
	"encoding/json"
	"net/http"
	"net/url"

	"github.com/gorilla/schema"

	"github.com/vayerart/storefront/pkg/listing"
	"github.com/vayerart/storefront/pkg/types"
)

// ListingRequest is the wire shape of one artwork listing call. GET
// requests carry the filter selections as repeated query parameters and
// at most a plain cursor; POST requests carry the full JSON body
// including the opaque pageParam from the previous response.
type ListingRequest struct {
	Styles      []string `json:"styles" schema:"styles"`
	Categories  []string `json:"categories" schema:"categories"`
	Themes      []string `json:"themes" schema:"themes"`
	Artists     []string `json:"artists" schema:"artists"`
	PriceRanges []string `json:"priceRanges" schema:"price"`
	Sort        string   `json:"sort" schema:"sort"`
	Sold        bool     `json:"sold" schema:"sold"`
	PageSize    int      `json:"pageSize" schema:"size"`

	// After is the GET-only shortcut for resuming a single-cursor
	// commerce sequence.
	After string `json:"-" schema:"after"`

	PageParam *types.PageParam `json:"pageParam,omitempty" schema:"-"`
}

func makeBaseListingRequest() *ListingRequest {
	return &ListingRequest{
		PageSize: listing.DefaultPageSize,
	}
}

func GetListingFromRequest(r *http.Request, lr *ListingRequest) error {
	if r.Method == http.MethodGet {
		return listingFromRequestQuery(r.URL.Query(), lr)
	}
	return json.NewDecoder(r.Body).Decode(lr)
}

func listingFromRequestQuery(query url.Values, lr *ListingRequest) error {
	decoder := schema.NewDecoder()
	decoder.IgnoreUnknownKeys(true)
	if err := decoder.Decode(lr, query); err != nil {
		return err
	}
	if lr.After != "" {
		after := lr.After
		lr.PageParam = &types.PageParam{Source: types.SourceCommerce, After: &after}
	}
	return nil
}

// Query maps the request onto a normalized listing query. Sold listings
// invert the availability flag rather than being a separate endpoint.
func (lr *ListingRequest) Query() listing.Query {
	return listing.Query{
		Filters: types.FilterState{
			Styles:      lr.Styles,
			Categories:  lr.Categories,
			Themes:      lr.Themes,
			Artists:     lr.Artists,
			PriceRanges: lr.PriceRanges,
		},
		Sort:         types.ParseSortOption(lr.Sort),
		Availability: !lr.Sold,
		PageSize:     lr.PageSize,
	}.Normalized()
}

package shopify

import "github.com/vayerart/storefront/pkg/types"

// InStockQuery is the availability predicate appended to plain listing
// queries. The sold view passes an empty query instead.
const InStockQuery = "available_for_sale:true"

func productSortParams(sort types.SortOption) (string, bool) {
	switch sort {
	case types.SortTitleDesc:
		return "TITLE", true
	case types.SortPriceAsc:
		return "PRICE", false
	case types.SortPriceDesc:
		return "PRICE", true
	}
	return "TITLE", false
}

func collectionSortParams(sort types.SortOption) (string, bool) {
	switch sort {
	case types.SortTitleDesc:
		return "TITLE", true
	case types.SortPriceAsc:
		return "PRICE", false
	case types.SortPriceDesc:
		return "PRICE", true
	}
	return "TITLE", false
}

// searchSortParams collapses default and title sorts to relevance; the
// search endpoint has no title sort.
func searchSortParams(sort types.SortOption) (string, bool) {
	switch sort {
	case types.SortPriceAsc:
		return "PRICE", false
	case types.SortPriceDesc:
		return "PRICE", true
	}
	return "RELEVANCE", false
}

package types

// SortOption selects the listing order. Title sorts are only available
// on the plain listing endpoint; the search endpoint collapses them to
// relevance.
type SortOption string

const (
	SortDefault   SortOption = "default"
	SortTitleAsc  SortOption = "title-asc"
	SortTitleDesc SortOption = "title-desc"
	SortPriceAsc  SortOption = "price-asc"
	SortPriceDesc SortOption = "price-desc"
)

// ParseSortOption falls back to SortDefault for unknown values.
func ParseSortOption(value string) SortOption {
	switch SortOption(value) {
	case SortTitleAsc, SortTitleDesc, SortPriceAsc, SortPriceDesc:
		return SortOption(value)
	}
	return SortDefault
}

// IsPriceSort reports whether the option orders by price.
func (s SortOption) IsPriceSort() bool {
	return s == SortPriceAsc || s == SortPriceDesc
}

// FilterKey identifies a filterable facet dimension.
type FilterKey string

const (
	KeyStyles     FilterKey = "styles"
	KeyCategories FilterKey = "categories"
	KeyThemes     FilterKey = "themes"
	KeyArtists    FilterKey = "artists"
)

// FilterKeys is the iteration order used everywhere facets are walked.
var FilterKeys = []FilterKey{KeyStyles, KeyCategories, KeyThemes, KeyArtists}

// FilterState holds the selected values per facet plus price ranges.
// Each slice is semantically a set; normalization sorts and dedupes so
// cache keys stay stable.
type FilterState struct {
	Styles      []string `json:"styles"`
	Categories  []string `json:"categories"`
	Themes      []string `json:"themes"`
	Artists     []string `json:"artists"`
	PriceRanges []string `json:"priceRanges"`
}

// Values returns the selected values for one facet dimension.
func (f *FilterState) Values(key FilterKey) []string {
	switch key {
	case KeyStyles:
		return f.Styles
	case KeyCategories:
		return f.Categories
	case KeyThemes:
		return f.Themes
	case KeyArtists:
		return f.Artists
	}
	return nil
}

// HasFacetFilters reports whether any facet dimension has a selection,
// price ranges excluded.
func (f *FilterState) HasFacetFilters() bool {
	for _, key := range FilterKeys {
		if len(f.Values(key)) > 0 {
			return true
		}
	}
	return false
}

// HasAnyFilters includes price ranges.
func (f *FilterState) HasAnyFilters() bool {
	return f.HasFacetFilters() || len(f.PriceRanges) > 0
}

package listing

import (
	"strings"

	"github.com/vayerart/storefront/pkg/price"
	"github.com/vayerart/storefront/pkg/types"
)

func normalizeText(value string) string {
	return strings.ToLower(strings.TrimSpace(value))
}

func hasAnyMatch(selected []string, candidates []string) bool {
	if len(selected) == 0 {
		return true
	}
	candidateSet := make(map[string]struct{}, len(candidates))
	for _, candidate := range candidates {
		if normalized := normalizeText(candidate); normalized != "" {
			candidateSet[normalized] = struct{}{}
		}
	}
	if len(candidateSet) == 0 {
		return false
	}
	for _, value := range selected {
		if _, ok := candidateSet[normalizeText(value)]; ok {
			return true
		}
	}
	return false
}

// MatchesFilters is the client-side predicate used when a selected
// criterion is not expressible server-side.
func MatchesFilters(artwork *types.Artwork, filters types.FilterState) bool {
	if !hasAnyMatch(filters.Categories, []string{artwork.Category}) {
		return false
	}
	if !hasAnyMatch(filters.Artists, []string{artwork.Artist.Name}) {
		return false
	}
	if !hasAnyMatch(filters.Styles, append([]string{artwork.Style}, artwork.StyleTags...)) {
		return false
	}
	if !hasAnyMatch(filters.Themes, append([]string{artwork.Theme}, artwork.ThemeTags...)) {
		return false
	}
	return price.Matches(artwork.Price, filters.PriceRanges)
}

// FilterByState keeps artworks matching every active facet and price
// selection.
func FilterByState(items []types.Artwork, filters types.FilterState) []types.Artwork {
	if !filters.HasAnyFilters() {
		return items
	}
	out := make([]types.Artwork, 0, len(items))
	for i := range items {
		if MatchesFilters(&items[i], filters) {
			out = append(out, items[i])
		}
	}
	return out
}

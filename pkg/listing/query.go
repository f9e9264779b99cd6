package listing

import (
	"sort"
	"strings"

	"github.com/vayerart/storefront/pkg/price"
	"github.com/vayerart/storefront/pkg/types"
)

// DefaultPageSize matches the storefront grid.
const DefaultPageSize = 32

// Query is one listing query's immutable inputs. Changing any field
// starts a brand-new pagination sequence.
type Query struct {
	Filters      types.FilterState
	Sort         types.SortOption
	Availability bool
	PageSize     int
}

func normalizeValues(values []string) []string {
	set := make(map[string]struct{}, len(values))
	for _, v := range values {
		set[v] = struct{}{}
	}
	out := make([]string, 0, len(set))
	for v := range set {
		out = append(out, v)
	}
	sort.Strings(out)
	return out
}

// NormalizeFilters dedupes and sorts every facet selection and puts
// price ranges in canonical table order, keeping cache keys stable
// regardless of selection order.
func NormalizeFilters(filters types.FilterState) types.FilterState {
	return types.FilterState{
		Styles:      normalizeValues(filters.Styles),
		Categories:  normalizeValues(filters.Categories),
		Themes:      normalizeValues(filters.Themes),
		Artists:     normalizeValues(filters.Artists),
		PriceRanges: price.NormalizeValues(filters.PriceRanges),
	}
}

// Normalized returns a copy with normalized filters, a parsed sort
// option and a sane page size.
func (q Query) Normalized() Query {
	q.Filters = NormalizeFilters(q.Filters)
	q.Sort = types.ParseSortOption(string(q.Sort))
	if q.PageSize <= 0 {
		q.PageSize = DefaultPageSize
	}
	return q
}

// CacheKey identifies the query for response caching: normalized
// filters plus sort plus availability.
func (q Query) CacheKey() string {
	q = q.Normalized()
	var b strings.Builder
	b.WriteString("artworks:")
	b.WriteString(string(q.Sort))
	if q.Availability {
		b.WriteString(":available:")
	} else {
		b.WriteString(":sold:")
	}
	for _, key := range types.FilterKeys {
		b.WriteString(string(key))
		b.WriteByte('=')
		b.WriteString(strings.Join(q.Filters.Values(key), ","))
		b.WriteByte(';')
	}
	b.WriteString("prices=")
	b.WriteString(strings.Join(q.Filters.PriceRanges, ","))
	return b.String()
}

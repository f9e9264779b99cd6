package price

import (
	"strconv"

	"github.com/vayerart/storefront/pkg/types"
)

// RangeOption is one closed-open price bucket [Min, Max). Max == nil
// means unbounded.
type RangeOption struct {
	Value string   `json:"value"`
	Label string   `json:"label"`
	Min   float64  `json:"min"`
	Max   *float64 `json:"max"`
}

func bound(v float64) *float64 { return &v }

// RangeOptions partitions price space contiguously from 0 to infinity
// with no gaps or overlaps. Extensions must preserve that invariant.
var RangeOptions = []RangeOption{
	{Value: "under-500", Label: "Under $500", Min: 0, Max: bound(500)},
	{Value: "500-1k", Label: "$500 - $1,000", Min: 500, Max: bound(1000)},
	{Value: "1k-2k", Label: "$1,000 - $2,000", Min: 1000, Max: bound(2000)},
	{Value: "2k-5k", Label: "$2,000 - $5,000", Min: 2000, Max: bound(5000)},
	{Value: "5k-10k", Label: "$5,000 - $10,000", Min: 5000, Max: bound(10000)},
	{Value: "10k-plus", Label: "Over $10,000", Min: 10000, Max: nil},
}

var rangeByValue = func() map[string]RangeOption {
	m := make(map[string]RangeOption, len(RangeOptions))
	for _, option := range RangeOptions {
		m[option.Value] = option
	}
	return m
}()

// NormalizeValues dedupes the selection and reorders it into canonical
// table order, dropping unknown identifiers.
func NormalizeValues(values []string) []string {
	selected := make(map[string]struct{}, len(values))
	for _, v := range values {
		selected[v] = struct{}{}
	}
	out := make([]string, 0, len(selected))
	for _, option := range RangeOptions {
		if _, ok := selected[option.Value]; ok {
			out = append(out, option.Value)
		}
	}
	return out
}

// Matches reports whether amount falls in any selected range. An empty
// selection matches everything. Unparseable amounts never match.
func Matches(amount string, selected []string) bool {
	if len(selected) == 0 {
		return true
	}
	if amount == "" {
		return false
	}
	numeric, err := strconv.ParseFloat(amount, 64)
	if err != nil {
		return false
	}
	for _, value := range selected {
		option, ok := rangeByValue[value]
		if !ok {
			continue
		}
		if numeric < option.Min {
			continue
		}
		if option.Max == nil || numeric < *option.Max {
			return true
		}
	}
	return false
}

// Bounds is a server-side price predicate. A nil field is unbounded.
type Bounds struct {
	Min *float64 `json:"min,omitempty"`
	Max *float64 `json:"max,omitempty"`
}

// BoundsForRange returns the single-range predicate bounds, or false
// for an unknown identifier.
func BoundsForRange(value string) (Bounds, bool) {
	option, ok := rangeByValue[value]
	if !ok {
		return Bounds{}, false
	}
	return optionBounds(option), true
}

func optionBounds(option RangeOption) Bounds {
	b := Bounds{}
	if option.Min > 0 {
		b.Min = bound(option.Min)
	}
	b.Max = option.Max
	return b
}

// CombinedContiguousBounds collapses a selection into one predicate when
// the selected ranges form a contiguous run in canonical order. A
// non-contiguous selection is not expressible as a single bound and
// returns false: the caller must filter client-side per item.
func CombinedContiguousBounds(values []string) (Bounds, bool) {
	normalized := NormalizeValues(values)
	if len(normalized) == 0 {
		return Bounds{}, false
	}

	first := -1
	for i, option := range RangeOptions {
		if option.Value == normalized[0] {
			first = i
			break
		}
	}
	if first < 0 || first+len(normalized) > len(RangeOptions) {
		return Bounds{}, false
	}
	for offset, value := range normalized {
		if RangeOptions[first+offset].Value != value {
			return Bounds{}, false
		}
	}

	start := RangeOptions[first]
	end := RangeOptions[first+len(normalized)-1]
	b := Bounds{Max: end.Max}
	if start.Min > 0 {
		b.Min = bound(start.Min)
	}
	return b, true
}

// FilterByRanges keeps artworks whose price falls in any selected range.
func FilterByRanges(items []types.Artwork, selected []string) []types.Artwork {
	if len(selected) == 0 {
		return items
	}
	out := make([]types.Artwork, 0, len(items))
	for i := range items {
		if Matches(items[i].Price, selected) {
			out = append(out, items[i])
		}
	}
	return out
}

package listing

import (
	"strings"

	"github.com/vayerart/storefront/pkg/types"
)

// collectionPrefixes maps each facet dimension to its backend
// collection handle prefix.
var collectionPrefixes = map[types.FilterKey]string{
	types.KeyStyles:     "style-",
	types.KeyCategories: "category-",
	types.KeyThemes:     "theme-",
	types.KeyArtists:    "artist-",
}

// DetectFilterKey classifies a collection handle by its prefix.
func DetectFilterKey(handle string) (types.FilterKey, bool) {
	for _, key := range types.FilterKeys {
		if strings.HasPrefix(handle, collectionPrefixes[key]) {
			return key, true
		}
	}
	return "", false
}

// TitleFromHandle derives a display title from a collection handle,
// e.g. "style-abstract-expressionism" -> "Abstract Expressionism".
func TitleFromHandle(handle string, key types.FilterKey) string {
	prefix := collectionPrefixes[key]
	if !strings.HasPrefix(handle, prefix) {
		return ""
	}
	raw := strings.TrimSpace(strings.TrimPrefix(handle, prefix))
	if raw == "" {
		return ""
	}
	segments := strings.Split(raw, "-")
	out := make([]string, 0, len(segments))
	for _, segment := range segments {
		if segment == "" {
			continue
		}
		out = append(out, strings.ToUpper(segment[:1])+segment[1:])
	}
	return strings.Join(out, " ")
}

// ArtistHandles returns every plausible collection handle for an artist
// display name. Names slugify ambiguously (diacritics, punctuation), so
// both the primary name slug and the looser generic slug are candidates;
// callers treat the set as OR alternatives.
func ArtistHandles(name string) []string {
	var handles []string
	seen := make(map[string]struct{}, 2)
	for _, variant := range []string{types.SlugifyName(name), types.Slugify(name)} {
		if variant == "" {
			continue
		}
		handle := "artist-" + variant
		if _, ok := seen[handle]; ok {
			continue
		}
		seen[handle] = struct{}{}
		handles = append(handles, handle)
	}
	return handles
}

// HandlesForFilter resolves one filter value into backend collection
// handles. Deliberately cache-free: handles are recomputed from the
// literal input on every call so concurrent server-rendered requests
// can never observe another request's state.
func HandlesForFilter(key types.FilterKey, value string) []string {
	if value == "" {
		return nil
	}
	if key == types.KeyArtists {
		return ArtistHandles(value)
	}
	slug := types.Slugify(value)
	if slug == "" {
		return nil
	}
	return []string{collectionPrefixes[key] + slug}
}

// CollectionHandles unions the handles for every selected facet value,
// order-stable and deduped.
func CollectionHandles(filters types.FilterState) []string {
	var handles []string
	seen := make(map[string]struct{})
	for _, key := range types.FilterKeys {
		for _, value := range filters.Values(key) {
			for _, handle := range HandlesForFilter(key, value) {
				if _, ok := seen[handle]; ok {
					continue
				}
				seen[handle] = struct{}{}
				handles = append(handles, handle)
			}
		}
	}
	return handles
}

package listing

import (
	"github.com/vayerart/storefront/pkg/types"
)

// applyCollectionMetadata overwrites the raw backend facet value with
// the collection's own display label, so a collection-scoped listing
// shows its facet label even when the backend's product tag differs.
// The titles index carries the collections' real titles; a handle not
// in the index falls back to a title reconstructed from the handle,
// which loses punctuation and casing ("artist-okeeffe" -> "Okeeffe").
func applyCollectionMetadata(handle string, titles map[string]string, items []types.Artwork) []types.Artwork {
	key, ok := DetectFilterKey(handle)
	if !ok {
		return items
	}
	title := titles[handle]
	if title == "" {
		title = TitleFromHandle(handle, key)
	}
	if title == "" {
		return items
	}

	out := make([]types.Artwork, len(items))
	copy(out, items)
	for i := range out {
		switch key {
		case types.KeyCategories:
			out[i].Category = title
		case types.KeyStyles:
			if out[i].Style != title {
				out[i].Style = title
				out[i].StyleTags = appendMissing(out[i].StyleTags, title)
			}
		case types.KeyThemes:
			if out[i].Theme != title {
				out[i].Theme = title
				out[i].ThemeTags = appendMissing(out[i].ThemeTags, title)
			}
		case types.KeyArtists:
			if out[i].Artist.Name != title {
				out[i].Artist = types.Artist{Name: title, Slug: types.Slugify(title)}
			}
		}
	}
	return out
}

func appendMissing(tags []string, value string) []string {
	for _, tag := range tags {
		if tag == value {
			return tags
		}
	}
	next := make([]string, 0, len(tags)+1)
	next = append(next, tags...)
	return append(next, value)
}

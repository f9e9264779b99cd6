package types

// Artist is the display identity of an artwork's creator.
type Artist struct {
	Name string `json:"name"`
	Slug string `json:"slug"`
}

// Artwork is the normalized product shape flowing through the listing
// pipeline. Gid is globally unique across both backends for a given
// underlying artwork and is the sole de-duplication key.
type Artwork struct {
	Gid                string   `json:"gid"`
	Id                 string   `json:"id"`
	Title              string   `json:"title"`
	Slug               string   `json:"slug"`
	PreviewImageUrl    string   `json:"previewImageUrl"`
	Artist             Artist   `json:"artist"`
	Price              string   `json:"price"`
	CurrencyCode       string   `json:"currencyCode"`
	AvailableForSale   bool     `json:"availableForSale"`
	Category           string   `json:"category,omitempty"`
	Style              string   `json:"style"`
	StyleTags          []string `json:"styleTags,omitempty"`
	Theme              string   `json:"theme"`
	ThemeTags          []string `json:"themeTags,omitempty"`
	Medium             string   `json:"medium"`
	DimensionsImperial string   `json:"dimensionsImperial"`
	DimensionsMetric   string   `json:"dimensionsMetric"`
}

// Key returns the de-duplication identity, preferring the global id.
func (a *Artwork) Key() string {
	if a.Gid != "" {
		return a.Gid
	}
	return a.Id
}

// DedupeArtworks removes duplicate artworks by identity, keeping the
// first occurrence. Items without an identity are dropped.
func DedupeArtworks(items []Artwork) []Artwork {
	if len(items) == 0 {
		return items
	}
	seen := make(map[string]struct{}, len(items))
	unique := make([]Artwork, 0, len(items))
	for i := range items {
		key := items[i].Key()
		if key == "" {
			continue
		}
		if _, ok := seen[key]; ok {
			continue
		}
		seen[key] = struct{}{}
		unique = append(unique, items[i])
	}
	return unique
}

package listing

import (
	"reflect"
	"testing"

	"github.com/vayerart/storefront/pkg/types"
)

func TestDetectFilterKey(t *testing.T) {
	cases := []struct {
		handle string
		key    types.FilterKey
		ok     bool
	}{
		{"category-abstract", types.KeyCategories, true},
		{"style-pop-art", types.KeyStyles, true},
		{"theme-ocean", types.KeyThemes, true},
		{"artist-jane-doe", types.KeyArtists, true},
		{"frontpage", "", false},
	}
	for _, c := range cases {
		key, ok := DetectFilterKey(c.handle)
		if key != c.key || ok != c.ok {
			t.Errorf("DetectFilterKey(%q): expected (%v, %v), got (%v, %v)", c.handle, c.key, c.ok, key, ok)
		}
	}
}

func TestTitleFromHandle(t *testing.T) {
	if got := TitleFromHandle("style-abstract-expressionism", types.KeyStyles); got != "Abstract Expressionism" {
		t.Errorf("Expected 'Abstract Expressionism', got %q", got)
	}
	if got := TitleFromHandle("category-abstract", types.KeyCategories); got != "Abstract" {
		t.Errorf("Expected 'Abstract', got %q", got)
	}
	if got := TitleFromHandle("style-", types.KeyStyles); got != "" {
		t.Errorf("Expected empty title for bare prefix, got %q", got)
	}
	if got := TitleFromHandle("theme-ocean", types.KeyStyles); got != "" {
		t.Errorf("Expected empty title for mismatched prefix, got %q", got)
	}
}

func TestArtistHandlesVariants(t *testing.T) {
	got := ArtistHandles("Georgia O'Keeffe")
	want := []string{"artist-georgia-okeeffe", "artist-georgia-o-keeffe"}
	if !reflect.DeepEqual(got, want) {
		t.Errorf("Expected both slug variants %v, got %v", want, got)
	}

	got = ArtistHandles("Jane Doe")
	if !reflect.DeepEqual(got, []string{"artist-jane-doe"}) {
		t.Errorf("Expected identical variants to collapse, got %v", got)
	}

	if got := ArtistHandles(""); got != nil {
		t.Errorf("Expected no handles for an empty name, got %v", got)
	}
}

func TestHandlesForFilterIsDeterministic(t *testing.T) {
	first := HandlesForFilter(types.KeyCategories, "Abstract")
	second := HandlesForFilter(types.KeyCategories, "Abstract")
	if !reflect.DeepEqual(first, []string{"category-abstract"}) {
		t.Errorf("Expected [category-abstract], got %v", first)
	}
	if !reflect.DeepEqual(first, second) {
		t.Errorf("Expected repeated calls to agree, got %v vs %v", first, second)
	}
}

func TestCollectionHandlesOrderAndDedup(t *testing.T) {
	filters := types.FilterState{
		Styles:  []string{"Pop Art"},
		Artists: []string{"Jane Doe"},
		Themes:  []string{"Ocean", "Ocean"},
	}
	got := CollectionHandles(filters)
	want := []string{"style-pop-art", "theme-ocean", "artist-jane-doe"}
	if !reflect.DeepEqual(got, want) {
		t.Errorf("Expected %v, got %v", want, got)
	}
}

func TestApplyCollectionMetadata(t *testing.T) {
	items := []types.Artwork{{Gid: "x", Category: "Painting", Style: "Cubism"}}

	adjusted := applyCollectionMetadata("category-sculpture", nil, items)
	if adjusted[0].Category != "Sculpture" {
		t.Errorf("Expected category overwrite, got %q", adjusted[0].Category)
	}
	if items[0].Category != "Painting" {
		t.Errorf("Expected the input slice to stay untouched")
	}

	adjusted = applyCollectionMetadata("style-pop-art", nil, items)
	if adjusted[0].Style != "Pop Art" {
		t.Errorf("Expected style overwrite, got %q", adjusted[0].Style)
	}
	if len(adjusted[0].StyleTags) != 1 || adjusted[0].StyleTags[0] != "Pop Art" {
		t.Errorf("Expected the style tag to be appended, got %v", adjusted[0].StyleTags)
	}

	adjusted = applyCollectionMetadata("artist-jane-doe", nil, items)
	if adjusted[0].Artist.Name != "Jane Doe" || adjusted[0].Artist.Slug != "jane-doe" {
		t.Errorf("Expected artist overwrite, got %v", adjusted[0].Artist)
	}

	adjusted = applyCollectionMetadata("frontpage", nil, items)
	if adjusted[0].Category != "Painting" {
		t.Errorf("Expected unknown handles to leave items alone")
	}
}

func TestApplyCollectionMetadataPrefersRealTitle(t *testing.T) {
	items := []types.Artwork{{Gid: "x"}}
	titles := map[string]string{
		"artist-okeeffe":   "Georgia O'Keeffe",
		"style-art-deco":   "Art Déco",
		"category-statues": "Sculpture",
	}

	adjusted := applyCollectionMetadata("artist-okeeffe", titles, items)
	if adjusted[0].Artist.Name != "Georgia O'Keeffe" || adjusted[0].Artist.Slug != "georgia-o-keeffe" {
		t.Errorf("Expected the real collection title, got %v", adjusted[0].Artist)
	}

	adjusted = applyCollectionMetadata("style-art-deco", titles, items)
	if adjusted[0].Style != "Art Déco" {
		t.Errorf("Expected the accented title to survive, got %q", adjusted[0].Style)
	}

	adjusted = applyCollectionMetadata("category-statues", titles, items)
	if adjusted[0].Category != "Sculpture" {
		t.Errorf("Expected the title even when it diverges from the handle, got %q", adjusted[0].Category)
	}

	// A handle outside the index keeps the derived fallback.
	adjusted = applyCollectionMetadata("theme-ocean", titles, items)
	if adjusted[0].Theme != "Ocean" {
		t.Errorf("Expected the handle-derived fallback, got %q", adjusted[0].Theme)
	}
}

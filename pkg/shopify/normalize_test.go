package shopify

import (
	"reflect"
	"testing"
)

func strptr(s string) *string { return &s }

func TestNodeToArtworkFullNode(t *testing.T) {
	available := false
	node := productNode{
		Typename:         "Product",
		Id:               "gid://shopify/Product/1",
		Title:            "Sunset",
		Handle:           "sunset",
		AvailableForSale: &available,
		Images: imageConnection{Edges: []imageEdge{
			{Node: imageNode{Url: "https://cdn.example/sunset.jpg"}},
			{Node: imageNode{Url: "https://cdn.example/sunset-2.jpg"}},
		}},
		PriceRange: &productPriceRange{MaxVariantPrice: money{Amount: "1250.00", CurrencyCode: "USD"}},
		Artist:     &metafieldValue{Value: strptr("Jane Doe")},
		Category:   &metafieldValue{Value: strptr("Painting")},
		Medium:     &metafieldValue{Value: strptr("Oil on canvas")},
		Style: &metaobjectRefField{References: &metaobjectReferences{Nodes: []metaobjectNode{
			{Typename: "Metaobject", Handle: "pop-art", Label: &labelField{Value: strptr("Pop Art")}},
			{Typename: "Metaobject", Handle: "abstract-expressionism"},
		}}},
	}

	a := nodeToArtwork(node)
	if a.Gid != node.Id || a.Id != node.Id {
		t.Errorf("Expected both ids set, got %q / %q", a.Gid, a.Id)
	}
	if a.Slug != "sunset" {
		t.Errorf("Expected the handle as slug, got %q", a.Slug)
	}
	if a.PreviewImageUrl != "https://cdn.example/sunset.jpg" {
		t.Errorf("Expected the first image, got %q", a.PreviewImageUrl)
	}
	if a.Price != "1250.00" || a.CurrencyCode != "USD" {
		t.Errorf("Expected the max variant price, got %q %q", a.Price, a.CurrencyCode)
	}
	if a.AvailableForSale {
		t.Errorf("Expected the explicit availability to win")
	}
	if a.Artist.Name != "Jane Doe" || a.Artist.Slug != "jane-doe" {
		t.Errorf("Expected the artist with slug, got %v", a.Artist)
	}
	if !reflect.DeepEqual(a.StyleTags, []string{"Pop Art", "Abstract Expressionism"}) {
		t.Errorf("Expected labeled plus prettified styles, got %v", a.StyleTags)
	}
	if a.Style != "Pop Art" {
		t.Errorf("Expected the first style as primary, got %q", a.Style)
	}
}

func TestNodeToArtworkMissingFieldsDegrade(t *testing.T) {
	a := nodeToArtwork(productNode{Id: "gid://shopify/Product/2", Title: "Untitled"})
	if a.Artist.Name != "Unknown" {
		t.Errorf("Expected the unknown-artist placeholder, got %q", a.Artist.Name)
	}
	if !a.AvailableForSale {
		t.Errorf("Expected availability to default to true")
	}
	if a.Price != "" || a.PreviewImageUrl != "" {
		t.Errorf("Expected empty price and image, got %q %q", a.Price, a.PreviewImageUrl)
	}
	if a.Style != "" || len(a.StyleTags) != 0 {
		t.Errorf("Expected no styles, got %q %v", a.Style, a.StyleTags)
	}
}

func TestNodesToArtworksFiltersNonProducts(t *testing.T) {
	nodes := []productNode{
		{Typename: "Product", Id: "p1"},
		{Typename: "Article", Id: "a1"},
		{Typename: "Product", Id: ""},
	}
	got := nodesToArtworks(nodes)
	if len(got) != 1 || got[0].Id != "p1" {
		t.Errorf("Expected only the product node, got %v", got)
	}
}

func TestLabelListDedupes(t *testing.T) {
	field := &metaobjectRefField{References: &metaobjectReferences{Nodes: []metaobjectNode{
		{Typename: "Metaobject", Handle: "ocean", Label: &labelField{Value: strptr("Ocean")}},
		{Typename: "Metaobject", Handle: "ocean-2", Label: &labelField{Value: strptr("Ocean")}},
		{Typename: "Page", Handle: "ignored"},
	}}}
	got := labelList(field)
	if !reflect.DeepEqual(got, []string{"Ocean"}) {
		t.Errorf("Expected a deduped label list, got %v", got)
	}
	if labelList(nil) != nil {
		t.Errorf("Expected nil for a missing field")
	}
}

func TestPrettifyHandle(t *testing.T) {
	if got := prettifyHandle("abstract-expressionism"); got != "Abstract Expressionism" {
		t.Errorf("Expected 'Abstract Expressionism', got %q", got)
	}
	if got := prettifyHandle(""); got != "" {
		t.Errorf("Expected empty, got %q", got)
	}
}

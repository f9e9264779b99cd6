package shopify

import (
	"strings"

	"github.com/vayerart/storefront/pkg/types"
)

func metaValue(field *metafieldValue) string {
	if field == nil || field.Value == nil {
		return ""
	}
	return *field.Value
}

// prettifyHandle turns "abstract-expressionism" into "Abstract
// Expressionism"; used when a metaobject carries no label.
func prettifyHandle(handle string) string {
	segments := strings.Split(strings.TrimSpace(handle), "-")
	out := make([]string, 0, len(segments))
	for _, segment := range segments {
		if segment == "" {
			continue
		}
		out = append(out, strings.ToUpper(segment[:1])+segment[1:])
	}
	return strings.Join(out, " ")
}

func metaobjectLabel(node metaobjectNode) string {
	if node.Label != nil && node.Label.Value != nil {
		if label := strings.TrimSpace(*node.Label.Value); label != "" {
			return label
		}
	}
	return prettifyHandle(node.Handle)
}

// labelList flattens metaobject references into a deduped label list in
// backend-returned order.
func labelList(field *metaobjectRefField) []string {
	if field == nil || field.References == nil {
		return nil
	}
	seen := make(map[string]struct{})
	var labels []string
	for _, node := range field.References.Nodes {
		if node.Typename != "" && node.Typename != "Metaobject" {
			continue
		}
		label := metaobjectLabel(node)
		if label == "" {
			continue
		}
		if _, ok := seen[label]; ok {
			continue
		}
		seen[label] = struct{}{}
		labels = append(labels, label)
	}
	return labels
}

func firstLabel(labels []string) string {
	if len(labels) == 0 {
		return ""
	}
	return labels[0]
}

// nodeToArtwork maps a raw product node into the canonical Artwork
// shape. Missing optional metadata degrades to zero values, never an
// error.
func nodeToArtwork(node productNode) types.Artwork {
	artistName := metaValue(node.Artist)
	if artistName == "" {
		artistName = "Unknown"
	}

	var previewImageUrl string
	if len(node.Images.Edges) > 0 {
		previewImageUrl = node.Images.Edges[0].Node.Url
	}

	var amount, currency string
	if node.PriceRange != nil {
		amount = node.PriceRange.MaxVariantPrice.Amount
		currency = node.PriceRange.MaxVariantPrice.CurrencyCode
	}

	available := true
	if node.AvailableForSale != nil {
		available = *node.AvailableForSale
	}

	styleTags := labelList(node.Style)
	themeTags := labelList(node.Theme)

	return types.Artwork{
		Gid:                node.Id,
		Id:                 node.Id,
		Title:              node.Title,
		Slug:               node.Handle,
		PreviewImageUrl:    previewImageUrl,
		Artist:             types.Artist{Name: artistName, Slug: types.Slugify(artistName)},
		Price:              amount,
		CurrencyCode:       currency,
		AvailableForSale:   available,
		Category:           metaValue(node.Category),
		Style:              firstLabel(styleTags),
		StyleTags:          styleTags,
		Theme:              firstLabel(themeTags),
		ThemeTags:          themeTags,
		Medium:             metaValue(node.Medium),
		DimensionsImperial: metaValue(node.DimensionsImperial),
		DimensionsMetric:   metaValue(node.DimensionsMetric),
	}
}

func connectionToArtworks(conn productConnection) []types.Artwork {
	items := make([]types.Artwork, 0, len(conn.Edges))
	for _, edge := range conn.Edges {
		if edge.Node.Id == "" {
			continue
		}
		items = append(items, nodeToArtwork(edge.Node))
	}
	return items
}

func nodesToArtworks(nodes []productNode) []types.Artwork {
	items := make([]types.Artwork, 0, len(nodes))
	for _, node := range nodes {
		if node.Typename != "Product" || node.Id == "" {
			continue
		}
		items = append(items, nodeToArtwork(node))
	}
	return items
}

func toPageInfo(pi pageInfo) types.PageInfo {
	return types.PageInfo{HasNextPage: pi.HasNextPage, EndCursor: pi.EndCursor}
}

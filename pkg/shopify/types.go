package shopify

import (
	"github.com/vayerart/storefront/pkg/price"
)

// MetafieldFilter targets a metafield-equality predicate on the search
// endpoint.
type MetafieldFilter struct {
	Namespace string `json:"namespace"`
	Key       string `json:"key"`
	Value     string `json:"value"`
}

// ProductFilter is one structured predicate for the search endpoint.
// Exactly one field is expected to be set per filter.
type ProductFilter struct {
	Available         *bool            `json:"available,omitempty"`
	Price             *price.Bounds    `json:"price,omitempty"`
	ProductMetafield  *MetafieldFilter `json:"productMetafield,omitempty"`
	TaxonomyMetafield *MetafieldFilter `json:"taxonomyMetafield,omitempty"`
}

// AvailableFilter builds the availability predicate every compiled
// search carries.
func AvailableFilter(available bool) ProductFilter {
	return ProductFilter{Available: &available}
}

// SearchFacetValue is one legal value of a search facet, carrying the
// backend's native predicate encoding as a JSON string.
type SearchFacetValue struct {
	Label string `json:"label"`
	Input string `json:"input"`
}

// SearchFacet is one filterable dimension reported by the search
// endpoint's faceting.
type SearchFacet struct {
	Id     string             `json:"id"`
	Label  string             `json:"label"`
	Values []SearchFacetValue `json:"values"`
}

type pageInfo struct {
	HasNextPage bool    `json:"hasNextPage"`
	EndCursor   *string `json:"endCursor"`
}

type metafieldValue struct {
	Value *string `json:"value"`
}

type labelField struct {
	Value *string `json:"value"`
}

type metaobjectNode struct {
	Typename string      `json:"__typename"`
	Id       string      `json:"id"`
	Handle   string      `json:"handle"`
	Label    *labelField `json:"label"`
}

type metaobjectReferences struct {
	Nodes []metaobjectNode `json:"nodes"`
}

type metaobjectRefField struct {
	References *metaobjectReferences `json:"references"`
}

type money struct {
	Amount       string `json:"amount"`
	CurrencyCode string `json:"currencyCode"`
}

type productPriceRange struct {
	MaxVariantPrice money `json:"maxVariantPrice"`
}

type imageNode struct {
	Id      *string `json:"id"`
	Url     string  `json:"url"`
	AltText *string `json:"altText"`
	Width   *int    `json:"width"`
	Height  *int    `json:"height"`
}

type imageEdge struct {
	Node imageNode `json:"node"`
}

type imageConnection struct {
	Edges []imageEdge `json:"edges"`
}

type productNode struct {
	Typename           string              `json:"__typename"`
	Id                 string              `json:"id"`
	Title              string              `json:"title"`
	Handle             string              `json:"handle"`
	CreatedAt          string              `json:"createdAt"`
	DescriptionHtml    string              `json:"descriptionHtml"`
	AvailableForSale   *bool               `json:"availableForSale"`
	Images             imageConnection     `json:"images"`
	PriceRange         *productPriceRange  `json:"priceRange"`
	Artist             *metafieldValue     `json:"artist"`
	Category           *metafieldValue     `json:"category"`
	DimensionsImperial *metafieldValue     `json:"dimensionsImperial"`
	DimensionsMetric   *metafieldValue     `json:"dimensionsMetric"`
	Medium             *metafieldValue     `json:"medium"`
	Style              *metaobjectRefField `json:"style"`
	Theme              *metaobjectRefField `json:"theme"`
}

type productEdge struct {
	Cursor string      `json:"cursor"`
	Node   productNode `json:"node"`
}

type productConnection struct {
	Edges    []productEdge `json:"edges"`
	PageInfo pageInfo      `json:"pageInfo"`
}

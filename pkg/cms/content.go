package cms

import (
	"context"
	"encoding/json"

	"github.com/vayerart/storefront/pkg/types"
)

const selectedArtworksQuery = `
  *[_type == "homePage"][0]{
    "selectedArtworks": selectedArtworks[]->{
      "gid": shopifyGid,
      "id": shopifyGid,
      title,
      "slug": slug.current,
      "previewImageUrl": previewImage.asset->url,
      "artist": {"name": artist->name, "slug": artist->slug.current},
      price,
      currencyCode,
      "availableForSale": available,
      category,
      style,
      styleTags,
      theme,
      themeTags,
      medium,
      dimensionsImperial,
      dimensionsMetric
    }
  }
`

const allArticlesQuery = `
  *[_type == "magazine"] | order(date desc) {
    "id": _id,
    title,
    subtitle,
    date,
    "slug": slug.current,
    "coverImage": coverImage.asset->url,
    body,
    "updatedAt": _updatedAt
  }
`

const articleQuery = `
  *[_type == "magazine" && slug.current == $slug][0]{
    "id": _id,
    title,
    subtitle,
    date,
    "slug": slug.current,
    "coverImage": coverImage.asset->url,
    body
  }
`

const artistWithWorksQuery = `
  *[_type == "artist" && slug.current == $slug][0]{
    "id": _id,
    name,
    "slug": slug.current,
    "selectedWorks": selectedWorks[]->{
      "gid": shopifyGid,
      "id": shopifyGid,
      title,
      "slug": slug.current,
      "previewImageUrl": previewImage.asset->url,
      "artist": {"name": artist->name, "slug": artist->slug.current},
      price,
      currencyCode,
      "availableForSale": available,
      category,
      style,
      styleTags,
      theme,
      themeTags,
      medium,
      dimensionsImperial,
      dimensionsMetric
    }
  }
`

const allArtistsQuery = `
  *[_type == "artist"] | order(name asc) {
    "id": _id,
    name,
    "slug": slug.current,
    "updatedAt": _updatedAt
  }
`

// Article is one blog/magazine entry.
type Article struct {
	Id         string          `json:"id"`
	Title      string          `json:"title"`
	Subtitle   string          `json:"subtitle,omitempty"`
	Date       string          `json:"date"`
	Slug       string          `json:"slug"`
	CoverImage string          `json:"coverImage,omitempty"`
	Body       json.RawMessage `json:"body,omitempty"`
	UpdatedAt  string          `json:"updatedAt,omitempty"`
}

// ArtistPage is the slim artist row used for sitemap generation.
type ArtistPage struct {
	Id        string `json:"id"`
	Name      string `json:"name"`
	Slug      string `json:"slug"`
	UpdatedAt string `json:"updatedAt,omitempty"`
}

// ArtistDetail is the full artist document with its hand-picked works.
type ArtistDetail struct {
	Id            string          `json:"id"`
	Name          string          `json:"name"`
	Slug          string          `json:"slug"`
	SelectedWorks []types.Artwork `json:"selectedWorks,omitempty"`
}

// ExtractSelectedArtworks tolerates both response shapes the CMS has
// used over time: a bare artwork array, or an object wrapping one under
// selectedArtworks.
func ExtractSelectedArtworks(raw json.RawMessage) []types.Artwork {
	if len(raw) == 0 {
		return nil
	}
	var direct []types.Artwork
	if err := json.Unmarshal(raw, &direct); err == nil {
		return direct
	}
	var wrapped struct {
		SelectedArtworks []types.Artwork `json:"selectedArtworks"`
	}
	if err := json.Unmarshal(raw, &wrapped); err == nil {
		return wrapped.SelectedArtworks
	}
	return nil
}

// SelectedArtworks returns the curated highlight list, unpaginated.
func (c *Client) SelectedArtworks(ctx context.Context) ([]types.Artwork, error) {
	var raw json.RawMessage
	if err := c.fetch(ctx, selectedArtworksQuery, nil, &raw); err != nil {
		return nil, err
	}
	return ExtractSelectedArtworks(raw), nil
}

func (c *Client) Articles(ctx context.Context) ([]Article, error) {
	var out []Article
	if err := c.fetch(ctx, allArticlesQuery, nil, &out); err != nil {
		return nil, err
	}
	return out, nil
}

func (c *Client) Article(ctx context.Context, slug string) (*Article, error) {
	var out *Article
	if err := c.fetch(ctx, articleQuery, map[string]string{"slug": slug}, &out); err != nil {
		return nil, err
	}
	return out, nil
}

// Artist looks up one artist by slug. Returns nil without error when no
// document matches.
func (c *Client) Artist(ctx context.Context, slug string) (*ArtistDetail, error) {
	var out *ArtistDetail
	if err := c.fetch(ctx, artistWithWorksQuery, map[string]string{"slug": slug}, &out); err != nil {
		return nil, err
	}
	return out, nil
}

func (c *Client) Artists(ctx context.Context) ([]ArtistPage, error) {
	var out []ArtistPage
	if err := c.fetch(ctx, allArtistsQuery, nil, &out); err != nil {
		return nil, err
	}
	return out, nil
}

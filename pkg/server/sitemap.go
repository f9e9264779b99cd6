package server

import (
	"encoding/xml"
	"log"
	"net/http"
	"strings"
	"time"
)

type sitemapUrl struct {
	XMLName    xml.Name `xml:"url"`
	Loc        string   `xml:"loc"`
	LastMod    string   `xml:"lastmod,omitempty"`
	ChangeFreq string   `xml:"changefreq,omitempty"`
	Priority   string   `xml:"priority,omitempty"`
}

type sitemapUrlSet struct {
	XMLName xml.Name     `xml:"urlset"`
	Xmlns   string       `xml:"xmlns,attr"`
	Urls    []sitemapUrl `xml:"url"`
}

const sitemapNamespace = "http://www.sitemaps.org/schemas/sitemap/0.9"

func normalizeLastMod(value string) string {
	if value == "" {
		return ""
	}
	if t, err := time.Parse(time.RFC3339, value); err == nil {
		return t.Format("2006-01-02")
	}
	return ""
}

// BuildSitemap assembles the url set from the product catalog, the
// magazine and the artist pages. A failing source is logged and left
// out so one broken backend doesn't blank the whole sitemap.
func (ws *WebServer) BuildSitemap(r *http.Request) sitemapUrlSet {
	base := strings.TrimSuffix(ws.BaseUrl, "/")
	urls := []sitemapUrl{
		{Loc: base + "/", ChangeFreq: "daily", Priority: "1.0"},
		{Loc: base + "/artworks", ChangeFreq: "daily", Priority: "0.9"},
		{Loc: base + "/magazine", ChangeFreq: "weekly", Priority: "0.5"},
	}

	if ws.Commerce != nil {
		products, err := ws.Commerce.SitemapProducts(r.Context())
		if err != nil {
			log.Printf("Error fetching sitemap products: %v", err)
		}
		for _, p := range products {
			urls = append(urls, sitemapUrl{
				Loc:        base + "/artworks/" + p.Handle,
				LastMod:    normalizeLastMod(p.UpdatedAt),
				ChangeFreq: "weekly",
				Priority:   "0.8",
			})
		}
	}

	if ws.Content != nil {
		articles, err := ws.Content.Articles(r.Context())
		if err != nil {
			log.Printf("Error fetching sitemap articles: %v", err)
		}
		for _, a := range articles {
			urls = append(urls, sitemapUrl{
				Loc:        base + "/magazine/" + a.Slug,
				LastMod:    normalizeLastMod(a.UpdatedAt),
				ChangeFreq: "monthly",
				Priority:   "0.6",
			})
		}

		artists, err := ws.Content.Artists(r.Context())
		if err != nil {
			log.Printf("Error fetching sitemap artists: %v", err)
		}
		for _, a := range artists {
			if a.Slug == "" {
				continue
			}
			urls = append(urls, sitemapUrl{
				Loc:        base + "/artists/" + a.Slug,
				LastMod:    normalizeLastMod(a.UpdatedAt),
				ChangeFreq: "weekly",
				Priority:   "0.7",
			})
		}
	}

	return sitemapUrlSet{Xmlns: sitemapNamespace, Urls: urls}
}

const sitemapCacheExpiration = time.Hour

func (ws *WebServer) HandleSitemap(w http.ResponseWriter, r *http.Request) {
	w.Header().Set("Content-Type", "application/xml; charset=UTF-8")
	w.Header().Set("Cache-Control", "public, max-age=3600")

	if ws.Cache != nil {
		var cached string
		if err := ws.Cache.Get("sitemap", &cached); err == nil {
			w.WriteHeader(http.StatusOK)
			w.Write([]byte(cached))
			return
		}
	}

	urlSet := ws.BuildSitemap(r)
	var buf strings.Builder
	buf.WriteString(xml.Header)
	enc := xml.NewEncoder(&buf)
	enc.Indent("", "  ")
	if err := enc.Encode(urlSet); err != nil {
		log.Printf("Error encoding sitemap: %v", err)
		w.WriteHeader(http.StatusInternalServerError)
		return
	}

	if ws.Cache != nil {
		if err := ws.Cache.Set("sitemap", buf.String(), sitemapCacheExpiration); err != nil {
			log.Printf("Error caching sitemap: %v", err)
		}
	}

	w.WriteHeader(http.StatusOK)
	w.Write([]byte(buf.String()))
}

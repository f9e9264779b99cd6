package server

import (
	"encoding/json"
	"log"
	"net/http"
	"strings"
	"time"

	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promauto"
	"github.com/prometheus/client_golang/prometheus/promhttp"
	"golang.org/x/text/cases"
	"golang.org/x/text/language"

	"github.com/vayerart/storefront/pkg/catalog"
	"github.com/vayerart/storefront/pkg/cms"
	"github.com/vayerart/storefront/pkg/common"
	"github.com/vayerart/storefront/pkg/listing"
	"github.com/vayerart/storefront/pkg/price"
	"github.com/vayerart/storefront/pkg/shopify"
	"github.com/vayerart/storefront/pkg/tracking"
	"github.com/vayerart/storefront/pkg/types"
)

var (
	noListings = promauto.NewCounter(prometheus.CounterOpts{
		Name: "storefront_listing_requests_total",
		Help: "The total number of processed listing requests",
	})
	listingCacheHits = promauto.NewCounter(prometheus.CounterOpts{
		Name: "storefront_listing_cache_hits_total",
		Help: "The total number of listing requests served from cache",
	})
)

const listingCacheExpiration = time.Minute * 5

// ChangePublisher broadcasts a catalog change to every replica.
type ChangePublisher interface {
	SendCatalogChange(reason string) error
}

// WebServer wires the listing orchestrator, the filter catalog and the
// content backend into the public API surface.
type WebServer struct {
	Listing  *listing.Orchestrator
	Catalog  *catalog.Catalog
	Content  *cms.Client
	Commerce *shopify.Client
	Cache    *Cache
	Tracking tracking.Tracking
	Changes  ChangePublisher
	BaseUrl  string
}

func defaultHeaders(w http.ResponseWriter, r *http.Request, cacheTime string) {
	w.Header().Set("Cache-Control", "private, stale-while-revalidate="+cacheTime)
	genericHeaders(w, r)
}

func genericHeaders(w http.ResponseWriter, r *http.Request) {
	w.Header().Set("Content-Type", "application/json; charset=UTF-8")
	origin := r.Header.Get("Origin")
	if origin != "" {
		w.Header().Set("Access-Control-Allow-Origin", origin)
		w.Header().Set("Access-Control-Allow-Methods", "GET, POST, OPTIONS")
		w.Header().Set("Access-Control-Allow-Headers", "*")
		w.Header().Set("Access-Control-Allow-Credentials", "true")
	}
	w.Header().Set("Age", "0")
}

func publicHeaders(w http.ResponseWriter, r *http.Request, cacheTime string) {
	w.Header().Set("Cache-Control", "public, max-age="+cacheTime)
	genericHeaders(w, r)
}

// ListingResponse is one delivered artwork page. NextPageParam is
// opaque to the client; it comes back verbatim in the next request's
// pageParam field, or is absent when pagination is done.
type ListingResponse struct {
	Items         []types.Artwork  `json:"items"`
	HasMore       bool             `json:"hasMore"`
	NextPageParam *types.PageParam `json:"nextPageParam,omitempty"`
	Source        types.Source     `json:"source"`
}

func (ws *WebServer) trackListing(sessionId, cacheKey string, source types.Source, delivered int) {
	if ws.Tracking == nil {
		return
	}
	ws.Tracking.TrackListing(sessionId, cacheKey, string(source), delivered)
}

func (ws *WebServer) HandleArtworks(w http.ResponseWriter, r *http.Request, sessionId string, enc *json.Encoder) error {
	go noListings.Inc()
	lr := makeBaseListingRequest()
	if err := GetListingFromRequest(r, lr); err != nil {
		common.WriteJsonError(w, http.StatusBadRequest, err.Error())
		return nil
	}

	q := lr.Query()
	firstPage := lr.PageParam == nil

	// Only the first page of a query is cacheable; continuation pages
	// carry per-request cursor state.
	if firstPage && ws.Cache != nil {
		var cached ListingResponse
		if err := ws.Cache.Get(q.CacheKey(), &cached); err == nil {
			go listingCacheHits.Inc()
			ws.trackListing(sessionId, q.CacheKey(), cached.Source, len(cached.Items))
			defaultHeaders(w, r, "60")
			w.WriteHeader(http.StatusOK)
			return enc.Encode(cached)
		}
	}

	param := types.PageParam{}
	if firstPage {
		param = ws.Listing.InitialPageParam(q)
	} else {
		param = *lr.PageParam
	}

	page, err := ws.Listing.FetchPage(r.Context(), q, param)
	if err != nil {
		common.WriteJsonError(w, http.StatusBadGateway, err.Error())
		return nil
	}

	response := ListingResponse{
		Items:         page.Items,
		NextPageParam: listing.NextPageParam(page),
		Source:        page.Source,
	}
	response.HasMore = response.NextPageParam != nil

	if firstPage && ws.Cache != nil {
		if err := ws.Cache.Set(q.CacheKey(), response, listingCacheExpiration); err != nil {
			log.Printf("Error caching listing response: %v", err)
		}
	}

	ws.trackListing(sessionId, q.CacheKey(), page.Source, len(page.Items))
	defaultHeaders(w, r, "60")
	w.WriteHeader(http.StatusOK)
	return enc.Encode(response)
}

// FilterOptionsResponse is the full filter catalog for rendering the
// storefront's filter panel.
type FilterOptionsResponse struct {
	Styles      []string            `json:"styles"`
	Categories  []string            `json:"categories"`
	Themes      []string            `json:"themes"`
	Artists     []string            `json:"artists"`
	PriceRanges []price.RangeOption `json:"priceRanges"`
}

func (ws *WebServer) HandleFilterOptions(w http.ResponseWriter, r *http.Request, sessionId string, enc *json.Encoder) error {
	options := ws.Catalog.Options(r.Context())
	publicHeaders(w, r, "600")
	w.WriteHeader(http.StatusOK)
	return enc.Encode(FilterOptionsResponse{
		Styles:      options.Styles,
		Categories:  options.Categories,
		Themes:      options.Themes,
		Artists:     options.Artists,
		PriceRanges: price.RangeOptions,
	})
}

func (ws *WebServer) HandleArticles(w http.ResponseWriter, r *http.Request, sessionId string, enc *json.Encoder) error {
	if ws.Cache != nil {
		var cached []cms.Article
		if err := ws.Cache.Get("articles", &cached); err == nil {
			publicHeaders(w, r, "600")
			w.WriteHeader(http.StatusOK)
			return enc.Encode(cached)
		}
	}
	articles, err := ws.Content.Articles(r.Context())
	if err != nil {
		common.WriteJsonError(w, http.StatusBadGateway, err.Error())
		return nil
	}
	if ws.Cache != nil {
		if err := ws.Cache.Set("articles", articles, listingCacheExpiration); err != nil {
			log.Printf("Error caching articles: %v", err)
		}
	}
	publicHeaders(w, r, "600")
	w.WriteHeader(http.StatusOK)
	return enc.Encode(articles)
}

func (ws *WebServer) HandleArticle(w http.ResponseWriter, r *http.Request, sessionId string, enc *json.Encoder) error {
	slug := r.PathValue("slug")
	article, err := ws.Content.Article(r.Context(), slug)
	if err != nil {
		common.WriteJsonError(w, http.StatusBadGateway, err.Error())
		return nil
	}
	if article == nil {
		common.WriteJsonError(w, http.StatusNotFound, "article not found")
		return nil
	}
	if ws.Tracking != nil {
		ws.Tracking.TrackArticleView(sessionId, slug)
	}
	publicHeaders(w, r, "600")
	w.WriteHeader(http.StatusOK)
	return enc.Encode(article)
}

// HandleCatalogWebhook relays an upstream catalog webhook into the
// invalidation topic. The local snapshot is dropped directly so this
// replica reacts even without a broker attached.
func (ws *WebServer) HandleCatalogWebhook(w http.ResponseWriter, r *http.Request) {
	reason := r.Header.Get("X-Shopify-Topic")
	if reason == "" {
		reason = "webhook"
	}

	ws.Catalog.Invalidate()
	if ws.Changes != nil {
		if err := ws.Changes.SendCatalogChange(reason); err != nil {
			log.Printf("Failed to broadcast catalog change (%s): %v", reason, err)
			common.WriteJsonError(w, http.StatusBadGateway, "broadcast failed")
			return
		}
	}

	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(http.StatusAccepted)
	_ = json.NewEncoder(w).Encode(map[string]string{"status": "accepted", "reason": reason})
}

var titleCaser = cases.Title(language.English)

func nameFromSlug(slug string) string {
	return titleCaser.String(strings.ReplaceAll(slug, "-", " "))
}

// ArtistListingResponse adds the resolved artist to the page payload so
// the UI can render the header without a second lookup.
type ArtistListingResponse struct {
	ListingResponse
	Artist types.Artist `json:"artist"`
}

func (ws *WebServer) HandleArtistArtworks(w http.ResponseWriter, r *http.Request, sessionId string, enc *json.Encoder) error {
	slug := r.PathValue("slug")
	lr := makeBaseListingRequest()
	if err := GetListingFromRequest(r, lr); err != nil {
		common.WriteJsonError(w, http.StatusBadRequest, err.Error())
		return nil
	}

	name := nameFromSlug(slug)
	var selectedWorks []types.Artwork
	if ws.Content != nil {
		artist, err := ws.Content.Artist(r.Context(), slug)
		if err != nil {
			log.Printf("Error resolving artist %s: %v", slug, err)
		} else if artist != nil {
			name = artist.Name
			selectedWorks = artist.SelectedWorks
		}
	}

	param := types.PageParam{}
	if lr.PageParam == nil {
		param = listing.ArtistInitialPageParam(name, len(selectedWorks) > 0)
	} else {
		param = *lr.PageParam
	}

	page, err := ws.Listing.FetchArtistPage(r.Context(), name, selectedWorks, lr.PageSize, param)
	if err != nil {
		common.WriteJsonError(w, http.StatusBadGateway, err.Error())
		return nil
	}

	response := ArtistListingResponse{
		ListingResponse: ListingResponse{
			Items:         page.Items,
			NextPageParam: listing.NextArtistPageParam(page, name),
			Source:        page.Source,
		},
		Artist: types.Artist{Name: name, Slug: slug},
	}
	response.HasMore = response.NextPageParam != nil

	ws.trackListing(sessionId, "artist:"+slug, page.Source, len(page.Items))
	defaultHeaders(w, r, "60")
	w.WriteHeader(http.StatusOK)
	return enc.Encode(response)
}

func (ws *WebServer) ClientHandler() *http.ServeMux {
	srv := http.NewServeMux()

	srv.HandleFunc("/health", func(w http.ResponseWriter, r *http.Request) {
		w.WriteHeader(http.StatusOK)
		w.Write([]byte("ok"))
	})

	srv.HandleFunc("/api/artworks", common.JsonHandler(ws.Tracking, ws.HandleArtworks))
	srv.HandleFunc("GET /api/filter-options", common.JsonHandler(ws.Tracking, ws.HandleFilterOptions))
	srv.HandleFunc("GET /api/articles", common.JsonHandler(ws.Tracking, ws.HandleArticles))
	srv.HandleFunc("GET /api/articles/{slug}", common.JsonHandler(ws.Tracking, ws.HandleArticle))
	srv.HandleFunc("/api/artists/{slug}/artworks", common.JsonHandler(ws.Tracking, ws.HandleArtistArtworks))
	srv.HandleFunc("POST /api/webhooks/catalog", ws.HandleCatalogWebhook)
	srv.HandleFunc("GET /sitemap.xml", ws.HandleSitemap)
	srv.Handle("/metrics", promhttp.Handler())

	return srv
}

package tracking

import "net/http"

// Tracking receives visitor events from the storefront API. A nil
// Tracking is valid and means events are dropped.
type Tracking interface {
	TrackSession(sessionId string, r *http.Request)
	TrackListing(sessionId string, cacheKey string, source string, delivered int)
	TrackArticleView(sessionId string, slug string)
	Close() error
}

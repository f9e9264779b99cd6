package types

// Source tags which backend produced (or should produce) a page.
type Source string

const (
	SourceContent  Source = "content"
	SourceCommerce Source = "commerce"
)

// PageInfo mirrors the relay-style pagination block returned by the
// commerce backend.
type PageInfo struct {
	HasNextPage bool    `json:"hasNextPage"`
	EndCursor   *string `json:"endCursor,omitempty"`
}

// PageParam is the continuation token threaded opaquely between page
// fetches. It is a tagged union over Source:
//
//   - content: no other fields are meaningful.
//   - commerce, single cursor: After carries the resume cursor.
//   - commerce, multi collection: CollectionHandles lists the active
//     handles; CursorsByHandle maps handle -> cursor where a missing key
//     means "not started" and an explicit null means "exhausted";
//     BufferedByHandle carries fetched-but-undelivered lookahead items.
type PageParam struct {
	Source            Source               `json:"source"`
	After             *string              `json:"after,omitempty"`
	CollectionHandles []string             `json:"collectionHandles,omitempty"`
	CursorsByHandle   map[string]*string   `json:"cursorsByHandle,omitempty"`
	BufferedByHandle  map[string][]Artwork `json:"bufferedByHandle,omitempty"`
}

// ArtworksPage is one delivered page plus the merger bookkeeping needed
// to derive the next PageParam.
type ArtworksPage struct {
	Source            Source               `json:"source"`
	Items             []Artwork            `json:"items"`
	PageInfo          PageInfo             `json:"pageInfo"`
	CollectionHandles []string             `json:"collectionHandles,omitempty"`
	CursorsByHandle   map[string]*string   `json:"cursorsByHandle,omitempty"`
	BufferedByHandle  map[string][]Artwork `json:"bufferedByHandle,omitempty"`
}

// CollectionSummary is one row from the commerce collections listing.
type CollectionSummary struct {
	Handle string `json:"handle"`
	Title  string `json:"title"`
}

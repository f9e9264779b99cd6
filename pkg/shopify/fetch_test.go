package shopify

import (
	"context"
	"net/http"
	"net/http/httptest"
	"testing"
)

func testClient(payload string) (*Client, *httptest.Server) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.Header().Set("Content-Type", "application/json")
		w.Write([]byte(payload))
	}))
	return &Client{endpoint: srv.URL, http: srv.Client()}, srv
}

func TestCollectionsPage(t *testing.T) {
	client, srv := testClient(`{"data":{"collections":{
		"edges":[
			{"node":{"handle":"artist-okeeffe","title":"Georgia O'Keeffe"}},
			{"node":{"handle":"style-art-deco","title":"  "}},
			{"node":{"handle":"","title":"Orphaned"}}
		],
		"pageInfo":{"hasNextPage":true,"endCursor":"abc"}
	}}}`)
	defer srv.Close()

	items, pageInfo, err := client.CollectionsPage(context.Background(), nil, 250)
	if err != nil {
		t.Fatalf("Expected no error, got %v", err)
	}
	if len(items) != 2 {
		t.Fatalf("Expected the handleless collection to be skipped, got %v", items)
	}
	if items[0].Handle != "artist-okeeffe" || items[0].Title != "Georgia O'Keeffe" {
		t.Errorf("Expected the collection's own title, got %+v", items[0])
	}
	if items[1].Title != "Style Art Deco" {
		t.Errorf("Expected a blank title to be prettified from the handle, got %q", items[1].Title)
	}
	if !pageInfo.HasNextPage || pageInfo.EndCursor == nil || *pageInfo.EndCursor != "abc" {
		t.Errorf("Expected the page info to round-trip, got %+v", pageInfo)
	}
}

func TestCollectionsPageQueryError(t *testing.T) {
	client, srv := testClient(`{"errors":[{"message":"throttled"}]}`)
	defer srv.Close()

	if _, _, err := client.CollectionsPage(context.Background(), nil, 250); err == nil {
		t.Errorf("Expected the error envelope to surface")
	}
}

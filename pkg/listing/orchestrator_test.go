package listing

import (
	"context"
	"errors"
	"testing"

	"github.com/vayerart/storefront/pkg/catalog"
	"github.com/vayerart/storefront/pkg/types"
)

type fakeCurated struct {
	items []types.Artwork
	err   error
}

func (f *fakeCurated) SelectedArtworks(ctx context.Context) ([]types.Artwork, error) {
	return f.items, f.err
}

type fakeCompiler struct {
	result catalog.BuildResult
}

func (f *fakeCompiler) BuildSearchFilters(ctx context.Context, filters types.FilterState, available bool) catalog.BuildResult {
	return f.result
}

func TestInitialPageParamSourceSelection(t *testing.T) {
	o := &Orchestrator{Curated: &fakeCurated{}}

	param := o.InitialPageParam(Query{Availability: true})
	if param.Source != types.SourceContent {
		t.Errorf("Expected the default view to start on content, got %v", param.Source)
	}

	param = o.InitialPageParam(Query{Availability: false})
	if param.Source != types.SourceCommerce {
		t.Errorf("Expected the sold view to start on commerce, got %v", param.Source)
	}

	param = o.InitialPageParam(Query{Availability: true, Sort: types.SortPriceAsc})
	if param.Source != types.SourceCommerce {
		t.Errorf("Expected sorted views to start on commerce, got %v", param.Source)
	}

	param = o.InitialPageParam(Query{
		Availability: true,
		Filters:      types.FilterState{Categories: []string{"Abstract"}},
	})
	if param.Source != types.SourceCommerce {
		t.Errorf("Expected filtered views to start on commerce, got %v", param.Source)
	}
	if len(param.CollectionHandles) != 1 || param.CollectionHandles[0] != "category-abstract" {
		t.Errorf("Expected the category handle, got %v", param.CollectionHandles)
	}

	noCurated := &Orchestrator{}
	param = noCurated.InitialPageParam(Query{Availability: true})
	if param.Source != types.SourceCommerce {
		t.Errorf("Expected commerce when no curated source is wired, got %v", param.Source)
	}
}

func TestContentPageHandsOffToCommerce(t *testing.T) {
	curated := &fakeCurated{items: arts("c1", "c2", "c3")}
	commerce := &fakeCommerce{products: arts("p1", "p2", "p3", "p4", "p5")}
	o := &Orchestrator{Commerce: commerce, Curated: curated, Compiler: &fakeCompiler{}}

	q := Query{Availability: true, PageSize: 4}
	param := o.InitialPageParam(q)

	page, err := o.FetchPage(context.Background(), q, param)
	if err != nil {
		t.Fatalf("Expected no error, got %v", err)
	}
	if page.Source != types.SourceContent {
		t.Errorf("Expected content source, got %v", page.Source)
	}
	if !equalIds(page.Items, "c1", "c2", "c3") {
		t.Errorf("Expected curated items, got %v", ids(page.Items))
	}
	if !page.PageInfo.HasNextPage {
		t.Errorf("Expected the content page to always report a next page")
	}

	next := NextPageParam(page)
	if next == nil || next.Source != types.SourceCommerce {
		t.Fatalf("Expected handoff to commerce, got %v", next)
	}

	page2, err := o.FetchPage(context.Background(), q, *next)
	if err != nil {
		t.Fatalf("Expected no error, got %v", err)
	}
	if page2.Source != types.SourceCommerce {
		t.Errorf("Expected commerce source, got %v", page2.Source)
	}
	if !equalIds(page2.Items, "p1", "p2", "p3", "p4") {
		t.Errorf("Expected the first commerce page, got %v", ids(page2.Items))
	}
	if commerce.lastAvailability != "available_for_sale:true" {
		t.Errorf("Expected the in-stock query, got %q", commerce.lastAvailability)
	}
}

func TestContentPageTruncatesToPageSize(t *testing.T) {
	curated := &fakeCurated{items: arts("c1", "c2", "c3", "c4", "c5")}
	o := &Orchestrator{Curated: &fakeCurated{items: curated.items}}

	page, err := o.FetchPage(context.Background(), Query{Availability: true, PageSize: 2}, types.PageParam{Source: types.SourceContent})
	if err != nil {
		t.Fatalf("Expected no error, got %v", err)
	}
	if !equalIds(page.Items, "c1", "c2") {
		t.Errorf("Expected truncation to the page size, got %v", ids(page.Items))
	}
}

func TestContentPageErrorPropagates(t *testing.T) {
	o := &Orchestrator{Curated: &fakeCurated{err: errors.New("cms down")}}
	_, err := o.FetchPage(context.Background(), Query{Availability: true}, types.PageParam{Source: types.SourceContent})
	if err == nil {
		t.Errorf("Expected the curated source error to propagate")
	}
}

func TestSoldViewSkipsAvailabilityQuery(t *testing.T) {
	commerce := &fakeCommerce{products: arts("p1", "p2")}
	o := &Orchestrator{Commerce: commerce, Curated: &fakeCurated{}, Compiler: &fakeCompiler{}}

	q := Query{Availability: false, PageSize: 4}
	param := o.InitialPageParam(q)
	if _, err := o.FetchPage(context.Background(), q, param); err != nil {
		t.Fatalf("Expected no error, got %v", err)
	}
	if commerce.lastAvailability != "" {
		t.Errorf("Expected no availability query on the sold view, got %q", commerce.lastAvailability)
	}
}

func TestClientFallbackFiltersAcrossBatches(t *testing.T) {
	// Disjoint price ranges can't be expressed server-side; the pager
	// scans batches and filters each one client-side.
	commerce := &fakeCommerce{search: []types.Artwork{
		{Gid: "s1", Id: "s1", Price: "250"},
		{Gid: "s2", Id: "s2", Price: "750"},
		{Gid: "s3", Id: "s3", Price: "1500"},
		{Gid: "s4", Id: "s4", Price: "400"},
		{Gid: "s5", Id: "s5", Price: "3000"},
	}}
	o := &Orchestrator{Commerce: commerce, Compiler: &fakeCompiler{result: catalog.BuildResult{
		SearchQuery:            "*",
		RequiresClientFallback: true,
	}}}

	q := Query{
		Availability: true,
		PageSize:     4,
		Filters:      types.FilterState{PriceRanges: []string{"under-500", "1k-2k"}},
	}
	page, err := o.FetchPage(context.Background(), q, o.InitialPageParam(q))
	if err != nil {
		t.Fatalf("Expected no error, got %v", err)
	}
	if !equalIds(page.Items, "s1", "s3", "s4") {
		t.Errorf("Expected client-filtered items, got %v", ids(page.Items))
	}
	if page.PageInfo.HasNextPage {
		t.Errorf("Expected the scan to reach the end of the result set")
	}
	if commerce.searchCalls != 1 {
		t.Errorf("Expected a single inflated batch, got %d", commerce.searchCalls)
	}
}

func TestFlattenPagesDeduplicates(t *testing.T) {
	pages := []types.ArtworksPage{
		{Items: arts("a", "b")},
		{Items: arts("b", "c")},
	}
	got := FlattenPages(pages)
	if !equalIds(got, "a", "b", "c") {
		t.Errorf("Expected cross-page dedup, got %v", ids(got))
	}
}

func TestArtistListingFlow(t *testing.T) {
	commerce := &fakeCommerce{collections: map[string][]types.Artwork{
		"artist-jane-doe": arts("w1", "w2", "w3", "w4", "w5", "w6", "w7"),
	}}
	o := &Orchestrator{Commerce: commerce}
	selected := arts("s1", "s2")

	param := ArtistInitialPageParam("Jane Doe", true)
	if param.Source != types.SourceContent {
		t.Fatalf("Expected selected works first, got %v", param.Source)
	}

	page, err := o.FetchArtistPage(context.Background(), "Jane Doe", selected, 4, param)
	if err != nil {
		t.Fatalf("Expected no error, got %v", err)
	}
	if !equalIds(page.Items, "s1", "s2") {
		t.Errorf("Expected the selected works, got %v", ids(page.Items))
	}

	next := NextArtistPageParam(page, "Jane Doe")
	if next == nil || next.Source != types.SourceCommerce {
		t.Fatalf("Expected handoff to the artist collection, got %v", next)
	}

	page2, err := o.FetchArtistPage(context.Background(), "Jane Doe", selected, 4, *next)
	if err != nil {
		t.Fatalf("Expected no error, got %v", err)
	}
	if !equalIds(page2.Items, "w1", "w2", "w3", "w4") {
		t.Errorf("Expected the first collection page, got %v", ids(page2.Items))
	}

	next = NextArtistPageParam(page2, "Jane Doe")
	if next == nil {
		t.Fatalf("Expected a continuation")
	}
	page3, err := o.FetchArtistPage(context.Background(), "Jane Doe", selected, 4, *next)
	if err != nil {
		t.Fatalf("Expected no error, got %v", err)
	}
	if !equalIds(page3.Items, "w5", "w6", "w7") {
		t.Errorf("Expected the remainder, got %v", ids(page3.Items))
	}
	if NextArtistPageParam(page3, "Jane Doe") != nil {
		t.Errorf("Expected pagination to be done")
	}
}

func TestArtistWithoutSelectedWorksStartsOnCommerce(t *testing.T) {
	param := ArtistInitialPageParam("Jane Doe", false)
	if param.Source != types.SourceCommerce {
		t.Errorf("Expected commerce start, got %v", param.Source)
	}
	if len(param.CollectionHandles) != 1 || param.CollectionHandles[0] != "artist-jane-doe" {
		t.Errorf("Expected the artist handle, got %v", param.CollectionHandles)
	}
}

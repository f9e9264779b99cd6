package catalog

import (
	"context"
	"encoding/json"
	"log"
	"sort"
	"strings"
	"sync"
	"time"

	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promauto"
	"golang.org/x/sync/singleflight"

	"github.com/vayerart/storefront/pkg/shopify"
	"github.com/vayerart/storefront/pkg/types"
)

var (
	discoveryCalls = promauto.NewCounter(prometheus.CounterOpts{
		Name: "storefront_filter_discovery_total",
		Help: "Number of filter option discovery calls against the commerce backend",
	})
	discoveryErrors = promauto.NewCounter(prometheus.CounterOpts{
		Name: "storefront_filter_discovery_errors_total",
		Help: "Number of failed filter option discovery calls",
	})
	titleDiscoveryCalls = promauto.NewCounter(prometheus.CounterOpts{
		Name: "storefront_collection_title_discovery_total",
		Help: "Number of collection title discovery walks against the commerce backend",
	})
	titleDiscoveryErrors = promauto.NewCounter(prometheus.CounterOpts{
		Name: "storefront_collection_title_discovery_errors_total",
		Help: "Number of failed collection title discovery walks",
	})
)

// Options are the legal values per filterable dimension, each deduped
// and lexicographically sorted.
type Options struct {
	Styles     []string `json:"styles"`
	Categories []string `json:"categories"`
	Themes     []string `json:"themes"`
	Artists    []string `json:"artists"`
}

// FacetSource provides the commerce backend's native faceting.
type FacetSource interface {
	SearchFilterFacets(ctx context.Context) ([]shopify.SearchFacet, error)
}

// CollectionSource lists the backend's grouping collections. A facet
// source that also implements it gets handle-to-title discovery.
type CollectionSource interface {
	CollectionsPage(ctx context.Context, after *string, first int) ([]types.CollectionSummary, types.PageInfo, error)
}

const collectionsPageSize = 250
const collectionsMaxPages = 8

type snapshot struct {
	options   Options
	inputs    map[types.FilterKey]map[string]shopify.ProductFilter
	labels    map[types.FilterKey]map[string]string
	fetchedAt time.Time
}

// Catalog discovers and caches filter options. It is an explicit,
// constructible component so tests can instantiate independent
// instances; concurrent callers share one in-flight backend request,
// and backend failures degrade to the last successful snapshot.
type Catalog struct {
	source FacetSource
	now    func() time.Time

	mu      sync.Mutex
	current *snapshot
	last    *snapshot

	titles     map[string]string
	titlesLast map[string]string

	group singleflight.Group
}

func New(source FacetSource) *Catalog {
	return &Catalog{source: source, now: time.Now}
}

func normalizeLabel(value string) string {
	return strings.ToLower(strings.TrimSpace(value))
}

// detectFilterKey classifies one facet value by its underlying field
// reference. Explicit metafield identifiers win; naming heuristics on
// the filter id are a fallback for facets the backend doesn't tag.
func detectFilterKey(filterId string, input shopify.ProductFilter) (types.FilterKey, bool) {
	if pm := input.ProductMetafield; pm != nil {
		if pm.Namespace == "custom" && pm.Key == "artist" {
			return types.KeyArtists, true
		}
		if pm.Namespace == "custom" && pm.Key == "category" {
			return types.KeyCategories, true
		}
		if pm.Key == "artMovement" {
			return types.KeyStyles, true
		}
		if pm.Key == "theme" {
			return types.KeyThemes, true
		}
	}
	if tm := input.TaxonomyMetafield; tm != nil {
		if tm.Namespace == "shopify" && tm.Key == "art-movement" {
			return types.KeyStyles, true
		}
		if tm.Namespace == "shopify" && tm.Key == "theme" {
			return types.KeyThemes, true
		}
	}

	if strings.Contains(filterId, ".custom.artist") {
		return types.KeyArtists, true
	}
	if strings.Contains(filterId, ".custom.category") {
		return types.KeyCategories, true
	}
	if strings.Contains(filterId, "art-movement") {
		return types.KeyStyles, true
	}
	if strings.HasSuffix(filterId, ".theme") {
		return types.KeyThemes, true
	}
	return "", false
}

func emptyIndex[V any]() map[types.FilterKey]map[string]V {
	index := make(map[types.FilterKey]map[string]V, len(types.FilterKeys))
	for _, key := range types.FilterKeys {
		index[key] = make(map[string]V)
	}
	return index
}

func (c *Catalog) load(ctx context.Context) (*snapshot, error) {
	discoveryCalls.Inc()
	facets, err := c.source.SearchFilterFacets(ctx)
	if err != nil {
		discoveryErrors.Inc()
		return nil, err
	}

	inputs := emptyIndex[shopify.ProductFilter]()
	labels := emptyIndex[string]()

	for _, facet := range facets {
		for _, value := range facet.Values {
			var input shopify.ProductFilter
			if err := json.Unmarshal([]byte(value.Input), &input); err != nil {
				continue
			}
			key, ok := detectFilterKey(facet.Id, input)
			if !ok {
				continue
			}
			normalized := normalizeLabel(value.Label)
			if normalized == "" {
				continue
			}
			if _, exists := inputs[key][normalized]; !exists {
				inputs[key][normalized] = input
				labels[key][normalized] = value.Label
			}
		}
	}

	options := Options{
		Styles:     sortedValues(labels[types.KeyStyles]),
		Categories: sortedValues(labels[types.KeyCategories]),
		Themes:     sortedValues(labels[types.KeyThemes]),
		Artists:    sortedValues(labels[types.KeyArtists]),
	}

	return &snapshot{options: options, inputs: inputs, labels: labels, fetchedAt: c.now()}, nil
}

func sortedValues(byNormalized map[string]string) []string {
	out := make([]string, 0, len(byNormalized))
	for _, label := range byNormalized {
		out = append(out, label)
	}
	sort.Strings(out)
	return out
}

func (c *Catalog) snapshotFor(ctx context.Context) *snapshot {
	c.mu.Lock()
	current := c.current
	c.mu.Unlock()
	if current != nil {
		return current
	}

	result, err, _ := c.group.Do("filter-options", func() (any, error) {
		loaded, err := c.load(ctx)
		if err != nil {
			return nil, err
		}
		c.mu.Lock()
		c.current = loaded
		c.last = loaded
		c.mu.Unlock()
		return loaded, nil
	})
	if err != nil {
		// Filter UI must always render; degrade to stale or empty.
		log.Printf("filter option discovery failed: %v", err)
		c.mu.Lock()
		stale := c.last
		c.mu.Unlock()
		if stale != nil {
			return stale
		}
		return &snapshot{inputs: emptyIndex[shopify.ProductFilter](), labels: emptyIndex[string]()}
	}
	return result.(*snapshot)
}

// Options returns the discovered filter options. Never returns an
// error: failures degrade to the last successful snapshot or an
// all-empty catalog.
func (c *Catalog) Options(ctx context.Context) Options {
	return c.snapshotFor(ctx).options
}

func (c *Catalog) loadTitles(ctx context.Context, source CollectionSource) (map[string]string, error) {
	titleDiscoveryCalls.Inc()
	titles := make(map[string]string)
	var after *string

	for page := 0; page < collectionsMaxPages; page++ {
		items, pageInfo, err := source.CollectionsPage(ctx, after, collectionsPageSize)
		if err != nil {
			titleDiscoveryErrors.Inc()
			return nil, err
		}
		for _, item := range items {
			if _, exists := titles[item.Handle]; !exists {
				titles[item.Handle] = item.Title
			}
		}
		if !pageInfo.HasNextPage || pageInfo.EndCursor == nil {
			break
		}
		after = pageInfo.EndCursor
	}
	return titles, nil
}

// CollectionTitles returns the handle-to-display-title index so
// collection-scoped listings can show the collection's real title
// instead of one reconstructed from its handle. Same degradation
// contract as Options: stale index on failure, nil when the source
// doesn't expose collections.
func (c *Catalog) CollectionTitles(ctx context.Context) map[string]string {
	source, ok := c.source.(CollectionSource)
	if !ok {
		return nil
	}

	c.mu.Lock()
	current := c.titles
	c.mu.Unlock()
	if current != nil {
		return current
	}

	result, err, _ := c.group.Do("collection-titles", func() (any, error) {
		loaded, err := c.loadTitles(ctx, source)
		if err != nil {
			return nil, err
		}
		c.mu.Lock()
		c.titles = loaded
		c.titlesLast = loaded
		c.mu.Unlock()
		return loaded, nil
	})
	if err != nil {
		log.Printf("collection title discovery failed: %v", err)
		c.mu.Lock()
		stale := c.titlesLast
		c.mu.Unlock()
		if stale != nil {
			return stale
		}
		return map[string]string{}
	}
	return result.(map[string]string)
}

// Invalidate clears the snapshots so the next caller re-discovers.
// Wired to the catalog-change messaging topic.
func (c *Catalog) Invalidate() {
	c.mu.Lock()
	c.current = nil
	c.titles = nil
	c.mu.Unlock()
}

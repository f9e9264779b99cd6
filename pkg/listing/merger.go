package listing

import (
	"context"
	"log"
	"sync"

	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promauto"

	"github.com/vayerart/storefront/pkg/price"
	"github.com/vayerart/storefront/pkg/types"
)

var collectionFetchErrors = promauto.NewCounter(prometheus.CounterOpts{
	Name: "storefront_collection_fetch_errors_total",
	Help: "Number of failed per-collection page fetches inside the multi-collection merger",
})

const minPerHandleFetchSize = 6
const priceFilterFetchAttempts = 4

// handleState is the merger's per-collection bookkeeping. A nil cursor
// with started=true means the collection is exhausted.
type handleState struct {
	started   bool
	exhausted bool
	cursor    string
	buffer    []types.Artwork
}

func (s *handleState) restore(param types.PageParam, handle string) {
	if cursor, ok := param.CursorsByHandle[handle]; ok {
		s.started = true
		if cursor == nil {
			s.exhausted = true
		} else {
			s.cursor = *cursor
		}
	}
	if buffered, ok := param.BufferedByHandle[handle]; ok {
		s.buffer = append(s.buffer, buffered...)
	}
}

func (s *handleState) resumeCursor() *string {
	if !s.started || s.cursor == "" {
		return nil
	}
	cursor := s.cursor
	return &cursor
}

func (s *handleState) advance(pageInfo types.PageInfo) {
	s.started = true
	if pageInfo.HasNextPage && pageInfo.EndCursor != nil {
		s.cursor = *pageInfo.EndCursor
		s.exhausted = false
	} else {
		s.cursor = ""
		s.exhausted = true
	}
}

// MergeCollections produces one page of up to pageSize deduplicated
// artworks drawn fairly from every handle's collection, resumable
// across calls through the returned cursor and buffer maps.
//
// Backend pagination is per-collection but output must be one fair
// interleaving; per-handle lookahead buffers absorb the mismatch
// between items-per-backend-call and items needed to keep the
// round-robin going without re-fetching.
func MergeCollections(ctx context.Context, source CommerceSource, handles []string, titles map[string]string, param types.PageParam, pageSize int, sort types.SortOption, priceRanges []string) (types.ArtworksPage, error) {
	unique := make([]string, 0, len(handles))
	seenHandles := make(map[string]struct{}, len(handles))
	for _, handle := range handles {
		if handle == "" {
			continue
		}
		if _, ok := seenHandles[handle]; ok {
			continue
		}
		seenHandles[handle] = struct{}{}
		unique = append(unique, handle)
	}

	if len(unique) == 0 {
		return types.ArtworksPage{
			Source:            types.SourceCommerce,
			Items:             []types.Artwork{},
			PageInfo:          types.PageInfo{HasNextPage: false},
			CollectionHandles: []string{},
			CursorsByHandle:   map[string]*string{},
		}, nil
	}

	states := make(map[string]*handleState, len(unique))
	for _, handle := range unique {
		state := &handleState{}
		state.restore(param, handle)
		states[handle] = state
	}

	ranges := price.NormalizeValues(priceRanges)

	perHandleFetchSize := (pageSize + len(unique) - 1) / len(unique)
	if len(ranges) > 0 {
		// Price filtering can empty out whole batches; fetch deeper.
		perHandleFetchSize *= 2
	}
	if perHandleFetchSize < minPerHandleFetchSize {
		perHandleFetchSize = minPerHandleFetchSize
	}
	maxAttempts := 1
	if len(ranges) > 0 {
		maxAttempts = priceFilterFetchAttempts
	}

	active := make(map[string]struct{}, len(unique))
	for _, handle := range unique {
		state := states[handle]
		if state.exhausted && len(state.buffer) == 0 {
			continue
		}
		active[handle] = struct{}{}
	}

	var mu sync.Mutex

	loadBuffer := func(ctx context.Context, handle string, state *handleState) error {
		for attempts := 0; !state.exhausted && attempts < maxAttempts; attempts++ {
			items, pageInfo, err := source.CollectionPage(ctx, handle, state.resumeCursor(), perHandleFetchSize, sort)
			if err != nil {
				return err
			}
			adjusted := applyCollectionMetadata(handle, titles, items)
			filtered := price.FilterByRanges(adjusted, ranges)

			mu.Lock()
			state.buffer = append(state.buffer, filtered...)
			state.advance(pageInfo)
			refilled := len(state.buffer) > 0
			mu.Unlock()

			if refilled {
				return nil
			}
		}
		return nil
	}

	delivered := make([]types.Artwork, 0, pageSize)
	seen := make(map[string]struct{}, pageSize)

	for len(delivered) < pageSize && len(active) > 0 {
		var needLoad []string
		for _, handle := range unique {
			if _, ok := active[handle]; !ok {
				continue
			}
			state := states[handle]
			if len(state.buffer) > 0 {
				continue
			}
			if state.exhausted {
				delete(active, handle)
				continue
			}
			needLoad = append(needLoad, handle)
		}

		var wg sync.WaitGroup
		for _, handle := range needLoad {
			wg.Add(1)
			go func(handle string) {
				defer wg.Done()
				state := states[handle]
				if err := loadBuffer(ctx, handle, state); err != nil {
					collectionFetchErrors.Inc()
					log.Printf("failed to load collection %q: %v", handle, err)
					// Treat the collection as exhausted for the rest of
					// the query; the others keep going.
					mu.Lock()
					state.started = true
					state.exhausted = true
					state.cursor = ""
					mu.Unlock()
				}
			}(handle)
		}
		wg.Wait()

		for _, handle := range needLoad {
			state := states[handle]
			if len(state.buffer) == 0 && state.exhausted {
				delete(active, handle)
			}
		}

		// One sweep takes at most one item from each active handle in
		// order, interleaving the collections instead of draining one
		// before the next.
		progressed := false
		for _, handle := range unique {
			if len(delivered) >= pageSize {
				break
			}
			if _, ok := active[handle]; !ok {
				continue
			}
			state := states[handle]
			if len(state.buffer) == 0 {
				if state.exhausted {
					delete(active, handle)
				}
				continue
			}

			item := state.buffer[0]
			state.buffer = state.buffer[1:]
			progressed = true

			key := item.Key()
			if key != "" {
				if _, duplicate := seen[key]; !duplicate {
					seen[key] = struct{}{}
					delivered = append(delivered, item)
				}
			}
			// A duplicate still consumed from the buffer, so the loop
			// can't spin forever on duplicate-heavy collections.

			if len(state.buffer) == 0 && state.exhausted {
				delete(active, handle)
			}
		}
		if !progressed && len(needLoad) == 0 {
			break
		}
	}

	nextCursors := make(map[string]*string, len(unique))
	nextBuffers := make(map[string][]types.Artwork)
	hasMore := false
	for _, handle := range unique {
		state := states[handle]
		if state.started {
			if state.exhausted {
				nextCursors[handle] = nil
			} else {
				cursor := state.cursor
				nextCursors[handle] = &cursor
				hasMore = true
			}
		}
		if len(state.buffer) > 0 {
			nextBuffers[handle] = state.buffer
			hasMore = true
		}
	}
	if len(nextBuffers) == 0 {
		nextBuffers = nil
	}

	return types.ArtworksPage{
		Source:            types.SourceCommerce,
		Items:             delivered,
		PageInfo:          types.PageInfo{HasNextPage: hasMore},
		CollectionHandles: unique,
		CursorsByHandle:   nextCursors,
		BufferedByHandle:  nextBuffers,
	}, nil
}

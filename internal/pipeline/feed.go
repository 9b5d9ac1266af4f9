package pipeline

import (
	"context"
	"errors"
	"fmt"
	"sync"

	"go.uber.org/zap"

	"github.com/aliveland/market-aggregator/internal/domain"
	"github.com/aliveland/market-aggregator/internal/logger"
	"github.com/aliveland/market-aggregator/internal/monitor"
)

// ErrNoFilter is returned when a page is requested before any filter was set
var ErrNoFilter = errors.New("feed has no filter")

// FetchFunc materializes the full raw item list for a filter
type FetchFunc[T any, F comparable] func(ctx context.Context, filter F) ([]T, error)

// Feed is the paginated state of one view. The raw list is fetched once per
// filter and sliced client side; every filter or page change starts a new
// generation and results of older generations are discarded.
type Feed[T any, F comparable] struct {
	fetch FetchFunc[T, F]
	join  JoinFunc[T]
	size  int
	opts  options

	mu         sync.Mutex
	generation uint64
	filter     F
	fetched    bool
	loading    bool
	pending    F
	raw        []T
	current    *Page
	items      []T
}

// NewFeed creates a feed with the given page size
func NewFeed[T any, F comparable](fetch FetchFunc[T, F], join JoinFunc[T], size int, opts ...Option) *Feed[T, F] {
	_, size = Normalize(1, size)
	return &Feed[T, F]{
		fetch: fetch,
		join:  join,
		size:  size,
		opts:  buildOptions(opts),
	}
}

// Generation returns the current generation
func (f *Feed[T, F]) Generation() uint64 {
	f.mu.Lock()
	defer f.mu.Unlock()
	return f.generation
}

// Filter returns the active filter and whether one was set
func (f *Feed[T, F]) Filter() (F, bool) {
	f.mu.Lock()
	defer f.mu.Unlock()
	return f.filter, f.fetched
}

// Current returns the last committed page, or nil
func (f *Feed[T, F]) Current() *Page {
	f.mu.Lock()
	defer f.mu.Unlock()
	return f.current
}

// SetFilter resets the feed to page 1 of a freshly fetched raw list
func (f *Feed[T, F]) SetFilter(ctx context.Context, filter F) (*Page, error) {
	return f.load(ctx, filter, 1)
}

func (f *Feed[T, F]) load(ctx context.Context, filter F, page int) (*Page, error) {
	f.mu.Lock()
	f.generation++
	gen := f.generation
	f.loading = true
	f.pending = filter
	f.mu.Unlock()

	raw, err := f.fetch(ctx, filter)

	f.mu.Lock()
	if gen != f.generation {
		f.mu.Unlock()
		return nil, f.discard(ctx, gen)
	}
	f.loading = false
	if err != nil {
		f.mu.Unlock()
		return nil, err
	}
	f.filter = filter
	f.fetched = true
	f.raw = raw
	f.current = nil
	f.items = nil
	f.mu.Unlock()

	return f.run(ctx, gen, raw, page)
}

// SetPage re-enriches the already fetched raw list at another page. While a
// filter change is still fetching, the page is taken from that filter's list
// instead, superseding the pending load.
func (f *Feed[T, F]) SetPage(ctx context.Context, page int) (*Page, error) {
	f.mu.Lock()
	if f.loading {
		filter := f.pending
		f.mu.Unlock()
		return f.load(ctx, filter, page)
	}
	if !f.fetched {
		f.mu.Unlock()
		return nil, ErrNoFilter
	}
	f.generation++
	gen := f.generation
	raw := f.raw
	f.mu.Unlock()

	return f.run(ctx, gen, raw, page)
}

// Show moves the feed to filter and page, fetching only when the filter changed
func (f *Feed[T, F]) Show(ctx context.Context, filter F, page int) (*Page, error) {
	current, ok := f.Filter()
	if !ok || current != filter {
		return f.load(ctx, filter, page)
	}
	return f.SetPage(ctx, page)
}

// Invalidate re-joins the records of the current page whose identity is in
// ids, leaving every other record untouched. Records that fail to re-join are
// dropped from the page.
func (f *Feed[T, F]) Invalidate(ctx context.Context, ids []domain.TokenIdentity) (*Page, error) {
	f.mu.Lock()
	if f.current == nil {
		f.mu.Unlock()
		return nil, nil
	}
	gen := f.generation
	page := *f.current
	page.Records = append([]domain.ViewRecord(nil), f.current.Records...)
	items := append([]T(nil), f.items...)
	f.mu.Unlock()

	affected := make(map[domain.TokenIdentity]struct{}, len(ids))
	for _, id := range ids {
		affected[id] = struct{}{}
	}

	records := make([]domain.ViewRecord, 0, len(page.Records))
	kept := make([]T, 0, len(items))
	var (
		failed, attempted int
		first             error
	)
	for i, record := range page.Records {
		if _, ok := affected[record.Identity()]; !ok {
			records = append(records, record)
			kept = append(kept, items[i])
			continue
		}
		attempted++
		updated, err := f.join(ctx, items[i])
		if err != nil || updated == nil {
			failed++
			if first == nil {
				first = err
			}
			continue
		}
		records = append(records, *updated)
		kept = append(kept, items[i])
	}
	page.Records = records
	page.Notice = domain.BatchNotification(failed, attempted, first)

	f.mu.Lock()
	defer f.mu.Unlock()
	if gen != f.generation {
		monitor.StaleResults.Inc()
		return nil, fmt.Errorf("%w: invalidated generation %d, current %d", domain.ErrStaleGeneration, gen, f.generation)
	}
	f.current = &page
	f.items = kept
	return &page, nil
}

func (f *Feed[T, F]) run(ctx context.Context, gen uint64, raw []T, page int) (*Page, error) {
	result, items := enrich(ctx, raw, page, f.size, f.join, f.opts)
	result.Generation = gen

	f.mu.Lock()
	defer f.mu.Unlock()
	if gen != f.generation {
		monitor.StaleResults.Inc()
		logger.DebugCtx(ctx, "Discarded stale page", zap.Uint64("generation", gen), zap.Uint64("current", f.generation))
		return nil, fmt.Errorf("%w: page generation %d, current %d", domain.ErrStaleGeneration, gen, f.generation)
	}
	f.current = result
	f.items = items
	return result, nil
}

func (f *Feed[T, F]) discard(ctx context.Context, gen uint64) error {
	monitor.StaleResults.Inc()
	logger.DebugCtx(ctx, "Discarded stale fetch", zap.Uint64("generation", gen))
	return fmt.Errorf("%w: fetch generation %d", domain.ErrStaleGeneration, gen)
}

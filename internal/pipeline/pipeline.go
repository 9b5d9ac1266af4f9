package pipeline

import (
	"context"
	"time"

	"github.com/sourcegraph/conc/iter"
	"go.uber.org/zap"

	"github.com/aliveland/market-aggregator/internal/domain"
	"github.com/aliveland/market-aggregator/internal/logger"
	"github.com/aliveland/market-aggregator/internal/monitor"
)

// DefaultConcurrency bounds the joins running at once for a single page
const DefaultConcurrency = 5

// JoinFunc turns one raw item into a display record
type JoinFunc[T any] func(ctx context.Context, item T) (*domain.ViewRecord, error)

// Page is one enriched window over a raw item list
type Page struct {
	Records    []domain.ViewRecord  `json:"records"`
	Page       int                  `json:"page"`
	PageSize   int                  `json:"page_size"`
	Total      int                  `json:"total"`
	TotalPages int                  `json:"total_pages"`
	Generation uint64               `json:"generation"`
	Notice     *domain.Notification `json:"notification,omitempty"`
}

// Option configures page enrichment
type Option func(*options)

type options struct {
	concurrency int
}

// WithConcurrency sets how many items of a page are joined at once
func WithConcurrency(n int) Option {
	return func(o *options) {
		if n > 0 {
			o.concurrency = n
		}
	}
}

func buildOptions(opts []Option) options {
	o := options{concurrency: DefaultConcurrency}
	for _, opt := range opts {
		opt(&o)
	}
	return o
}

// Normalize clamps a page number to >= 1 and a page size to [1, MAX_PAGE_SIZE],
// substituting DEFAULT_PAGE_SIZE for a non-positive size
func Normalize(page, size int) (int, int) {
	if page < 1 {
		page = 1
	}
	if size < 1 {
		size = domain.DEFAULT_PAGE_SIZE
	}
	if size > domain.MAX_PAGE_SIZE {
		size = domain.MAX_PAGE_SIZE
	}
	return page, size
}

// Window returns the half open range [start, end) of the page over total items.
// A page past the end yields an empty range.
func Window(total, page, size int) (int, int) {
	page, size = Normalize(page, size)
	if total <= 0 {
		return 0, 0
	}

	start := (page - 1) * size
	if start >= total {
		return total, total
	}
	end := start + size
	if end > total {
		end = total
	}
	return start, end
}

// TotalPages is the number of pages needed for total items
func TotalPages(total, size int) int {
	_, size = Normalize(1, size)
	if total <= 0 {
		return 0
	}
	return (total + size - 1) / size
}

type outcome struct {
	record *domain.ViewRecord
	err    error
}

// EnrichPage joins the items of one page concurrently. The records keep the
// order of raw; items whose join failed are left out and summarized by a
// single notification. Total counts raw, not the joined records.
func EnrichPage[T any](ctx context.Context, raw []T, page, size int, join JoinFunc[T], opts ...Option) *Page {
	result, _ := enrich(ctx, raw, page, size, join, buildOptions(opts))
	return result
}

// enrich also returns the raw item behind each record, aligned by index
func enrich[T any](ctx context.Context, raw []T, page, size int, join JoinFunc[T], o options) (*Page, []T) {
	page, size = Normalize(page, size)
	start, end := Window(len(raw), page, size)
	window := raw[start:end]

	started := time.Now()
	mapper := iter.Mapper[T, outcome]{MaxGoroutines: o.concurrency}
	outcomes := mapper.Map(window, func(item *T) outcome {
		if err := ctx.Err(); err != nil {
			return outcome{err: err}
		}
		record, err := join(ctx, *item)
		return outcome{record: record, err: err}
	})
	monitor.EnrichPageDuration.Observe(time.Since(started).Seconds())

	result := &Page{
		Records:    make([]domain.ViewRecord, 0, len(window)),
		Page:       page,
		PageSize:   size,
		Total:      len(raw),
		TotalPages: TotalPages(len(raw), size),
	}
	items := make([]T, 0, len(window))

	var (
		failed int
		first  error
	)
	for i, out := range outcomes {
		if out.err != nil || out.record == nil {
			failed++
			if first == nil {
				first = out.err
			}
			continue
		}
		result.Records = append(result.Records, *out.record)
		items = append(items, window[i])
	}

	monitor.EnrichedItems.WithLabelValues("joined").Add(float64(len(result.Records)))
	if failed > 0 {
		monitor.EnrichedItems.WithLabelValues("skipped").Add(float64(failed))
		logger.WarnCtx(ctx, "Skipped items that failed to join",
			zap.Int("page", page),
			zap.Int("failed", failed),
			zap.Int("total", len(window)),
			zap.Error(first))
	}
	result.Notice = domain.BatchNotification(failed, len(window), first)

	return result, items
}

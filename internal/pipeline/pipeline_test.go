package pipeline_test

import (
	"context"
	"errors"
	"fmt"
	"math/rand"
	"os"
	"sync"
	"sync/atomic"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/aliveland/market-aggregator/internal/domain"
	"github.com/aliveland/market-aggregator/internal/logger"
	"github.com/aliveland/market-aggregator/internal/pipeline"
)

const collection = "0xdbF03B407c01E7cD3CBea99509d93f8DDDC8C6FB"

func TestMain(m *testing.M) {
	// Initialize logger for tests
	err := logger.Initialize(logger.Config{
		Debug: false,
	})
	if err != nil {
		panic(err)
	}

	code := m.Run()
	os.Exit(code)
}

func identities(n int) []domain.TokenIdentity {
	ids := make([]domain.TokenIdentity, n)
	for i := range ids {
		ids[i] = domain.NewTokenIdentity(collection, fmt.Sprintf("%d", i))
	}
	return ids
}

func joinIdentity(ctx context.Context, id domain.TokenIdentity) (*domain.ViewRecord, error) {
	return &domain.ViewRecord{Collection: id.Collection, TokenID: id.TokenID, Name: "#" + id.TokenID}, nil
}

func tokenIDs(records []domain.ViewRecord) []string {
	out := make([]string, len(records))
	for i, r := range records {
		out[i] = r.TokenID
	}
	return out
}

func TestWindow(t *testing.T) {
	tests := []struct {
		name          string
		total         int
		page          int
		size          int
		expectedStart int
		expectedEnd   int
	}{
		{name: "first page", total: 23, page: 1, size: 10, expectedStart: 0, expectedEnd: 10},
		{name: "last partial page", total: 23, page: 3, size: 10, expectedStart: 20, expectedEnd: 23},
		{name: "past the end", total: 23, page: 4, size: 10, expectedStart: 23, expectedEnd: 23},
		{name: "empty list", total: 0, page: 1, size: 10, expectedStart: 0, expectedEnd: 0},
		{name: "non positive page", total: 23, page: 0, size: 10, expectedStart: 0, expectedEnd: 10},
		{name: "default size", total: 50, page: 2, size: 0, expectedStart: 20, expectedEnd: 40},
		{name: "size clamped", total: 500, page: 1, size: 1000, expectedStart: 0, expectedEnd: 100},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			start, end := pipeline.Window(tt.total, tt.page, tt.size)
			assert.Equal(t, tt.expectedStart, start)
			assert.Equal(t, tt.expectedEnd, end)
		})
	}
}

func TestTotalPages(t *testing.T) {
	assert.Equal(t, 3, pipeline.TotalPages(23, 10))
	assert.Equal(t, 2, pipeline.TotalPages(20, 10))
	assert.Equal(t, 0, pipeline.TotalPages(0, 10))
	assert.Equal(t, 1, pipeline.TotalPages(1, 0))
}

func TestEnrichPage_Boundary(t *testing.T) {
	raw := identities(23)

	page3 := pipeline.EnrichPage(context.Background(), raw, 3, 10, joinIdentity)
	assert.Equal(t, []string{"20", "21", "22"}, tokenIDs(page3.Records))
	assert.Equal(t, 23, page3.Total)
	assert.Equal(t, 3, page3.TotalPages)
	assert.Nil(t, page3.Notice)

	page4 := pipeline.EnrichPage(context.Background(), raw, 4, 10, joinIdentity)
	assert.Empty(t, page4.Records)
	assert.Equal(t, 23, page4.Total)
	assert.Equal(t, 4, page4.Page)
}

func TestEnrichPage_PreservesOrder(t *testing.T) {
	raw := identities(20)
	join := func(ctx context.Context, id domain.TokenIdentity) (*domain.ViewRecord, error) {
		// finish in arbitrary order
		time.Sleep(time.Duration(rand.Intn(5)) * time.Millisecond)
		return joinIdentity(ctx, id)
	}

	result := pipeline.EnrichPage(context.Background(), raw, 1, 20, join, pipeline.WithConcurrency(8))
	require.Len(t, result.Records, 20)
	for i, r := range result.Records {
		assert.Equal(t, fmt.Sprintf("%d", i), r.TokenID)
	}
}

func TestEnrichPage_BoundsConcurrency(t *testing.T) {
	var running, peak int32
	join := func(ctx context.Context, id domain.TokenIdentity) (*domain.ViewRecord, error) {
		n := atomic.AddInt32(&running, 1)
		for {
			p := atomic.LoadInt32(&peak)
			if n <= p || atomic.CompareAndSwapInt32(&peak, p, n) {
				break
			}
		}
		time.Sleep(2 * time.Millisecond)
		atomic.AddInt32(&running, -1)
		return joinIdentity(ctx, id)
	}

	pipeline.EnrichPage(context.Background(), identities(12), 1, 12, join, pipeline.WithConcurrency(3))
	assert.LessOrEqual(t, atomic.LoadInt32(&peak), int32(3))
}

func TestEnrichPage_SkipsFailures(t *testing.T) {
	raw := identities(10)
	contractErr := domain.NewContractCallError(collection, "tokenURI", errors.New("execution reverted: reason: nonexistent token"))
	join := func(ctx context.Context, id domain.TokenIdentity) (*domain.ViewRecord, error) {
		if id.TokenID == "3" || id.TokenID == "7" {
			return nil, contractErr
		}
		return joinIdentity(ctx, id)
	}

	result := pipeline.EnrichPage(context.Background(), raw, 1, 10, join)
	assert.Equal(t, []string{"0", "1", "2", "4", "5", "6", "8", "9"}, tokenIDs(result.Records))
	assert.Equal(t, 10, result.Total)

	require.NotNil(t, result.Notice)
	assert.Equal(t, domain.SeverityWarning, result.Notice.Severity)
	assert.Equal(t, domain.ErrorKindContractCall, result.Notice.Kind)
	assert.Equal(t, "2 of 10 items could not be loaded", result.Notice.Message)
}

func TestEnrichPage_AllFail(t *testing.T) {
	join := func(ctx context.Context, id domain.TokenIdentity) (*domain.ViewRecord, error) {
		return nil, &domain.NetworkError{Op: "GET", URL: "https://gateway.example", Status: 502}
	}

	result := pipeline.EnrichPage(context.Background(), identities(4), 1, 10, join)
	assert.Empty(t, result.Records)
	require.NotNil(t, result.Notice)
	assert.Equal(t, domain.SeverityError, result.Notice.Severity)
}

type filter struct {
	tab string
}

type recorder struct {
	mu      sync.Mutex
	fetches map[string]int
	joins   int
}

func (r *recorder) fetch(ctx context.Context, f filter) ([]domain.TokenIdentity, error) {
	r.mu.Lock()
	defer r.mu.Unlock()
	if r.fetches == nil {
		r.fetches = map[string]int{}
	}
	r.fetches[f.tab]++
	if f.tab == "broken" {
		return nil, errors.New("subgraph unavailable")
	}
	return identities(23), nil
}

func (r *recorder) join(ctx context.Context, id domain.TokenIdentity) (*domain.ViewRecord, error) {
	r.mu.Lock()
	r.joins++
	r.mu.Unlock()
	return joinIdentity(ctx, id)
}

func TestFeed_FilterAndPage(t *testing.T) {
	rec := &recorder{}
	feed := pipeline.NewFeed(rec.fetch, rec.join, 10)
	ctx := context.Background()

	_, err := feed.SetPage(ctx, 2)
	assert.ErrorIs(t, err, pipeline.ErrNoFilter)

	first, err := feed.SetFilter(ctx, filter{tab: "all"})
	require.NoError(t, err)
	assert.Equal(t, 1, first.Page)
	assert.Equal(t, uint64(1), first.Generation)
	assert.Len(t, first.Records, 10)

	third, err := feed.SetPage(ctx, 3)
	require.NoError(t, err)
	assert.Equal(t, []string{"20", "21", "22"}, tokenIDs(third.Records))
	assert.Equal(t, uint64(2), third.Generation)

	// page changes never re-query
	assert.Equal(t, 1, rec.fetches["all"])

	// same filter through Show only pages
	second, err := feed.Show(ctx, filter{tab: "all"}, 2)
	require.NoError(t, err)
	assert.Equal(t, 2, second.Page)
	assert.Equal(t, 1, rec.fetches["all"])

	// a new filter fetches and starts at the requested page
	other, err := feed.Show(ctx, filter{tab: "trending"}, 1)
	require.NoError(t, err)
	assert.Equal(t, 1, other.Page)
	assert.Equal(t, 1, rec.fetches["trending"])
	assert.Same(t, other, feed.Current())
}

func TestFeed_FetchError(t *testing.T) {
	rec := &recorder{}
	feed := pipeline.NewFeed(rec.fetch, rec.join, 10)

	_, err := feed.SetFilter(context.Background(), filter{tab: "broken"})
	require.Error(t, err)
	assert.NotErrorIs(t, err, domain.ErrStaleGeneration)

	_, ok := feed.Filter()
	assert.False(t, ok)
}

func TestFeed_DiscardsStaleResults(t *testing.T) {
	release := make(chan struct{})
	entered := make(chan struct{})
	var once sync.Once

	join := func(ctx context.Context, id domain.TokenIdentity) (*domain.ViewRecord, error) {
		if id.TokenID == "0" {
			once.Do(func() { close(entered) })
			<-release
		}
		return joinIdentity(ctx, id)
	}
	fetch := func(ctx context.Context, f filter) ([]domain.TokenIdentity, error) {
		return identities(23), nil
	}

	feed := pipeline.NewFeed(fetch, join, 10)
	ctx := context.Background()

	slow := make(chan error, 1)
	go func() {
		_, err := feed.SetFilter(ctx, filter{tab: "all"})
		slow <- err
	}()

	// the first page load is in flight; the viewer moves on
	<-entered
	latest, err := feed.SetPage(ctx, 2)
	require.NoError(t, err)
	close(release)

	assert.ErrorIs(t, <-slow, domain.ErrStaleGeneration)
	assert.Equal(t, 2, feed.Current().Page)
	assert.Equal(t, latest.Generation, feed.Generation())
}

func TestFeed_PageDuringFilterChangeFollowsNewFilter(t *testing.T) {
	release := make(chan struct{})
	entered := make(chan struct{})
	var blocked atomic.Bool

	fetch := func(ctx context.Context, f filter) ([]domain.TokenIdentity, error) {
		if f.tab == "trending" {
			if blocked.CompareAndSwap(false, true) {
				close(entered)
				<-release
			}
			return identities(13), nil
		}
		return identities(25), nil
	}

	feed := pipeline.NewFeed(fetch, joinIdentity, 10)
	ctx := context.Background()

	_, err := feed.SetFilter(ctx, filter{tab: "all"})
	require.NoError(t, err)

	slow := make(chan error, 1)
	go func() {
		_, err := feed.SetFilter(ctx, filter{tab: "trending"})
		slow <- err
	}()

	// the trending fetch is in flight when the viewer pages
	<-entered
	page, err := feed.SetPage(ctx, 2)
	require.NoError(t, err)
	assert.Equal(t, 13, page.Total)
	assert.Equal(t, []string{"10", "11", "12"}, tokenIDs(page.Records))
	close(release)

	assert.ErrorIs(t, <-slow, domain.ErrStaleGeneration)
	committed, ok := feed.Filter()
	require.True(t, ok)
	assert.Equal(t, filter{tab: "trending"}, committed)
	assert.Equal(t, 2, feed.Current().Page)
}

func TestFeed_Invalidate(t *testing.T) {
	names := map[string]string{}
	var mu sync.Mutex
	fetch := func(ctx context.Context, f filter) ([]domain.TokenIdentity, error) {
		return identities(5), nil
	}
	join := func(ctx context.Context, id domain.TokenIdentity) (*domain.ViewRecord, error) {
		mu.Lock()
		defer mu.Unlock()
		if names[id.TokenID] == "gone" {
			return nil, errors.New("burned")
		}
		return &domain.ViewRecord{Collection: id.Collection, TokenID: id.TokenID, Name: names[id.TokenID]}, nil
	}

	feed := pipeline.NewFeed(fetch, join, 10)
	ctx := context.Background()

	empty, err := feed.Invalidate(ctx, identities(1))
	require.NoError(t, err)
	assert.Nil(t, empty)

	_, err = feed.SetFilter(ctx, filter{tab: "all"})
	require.NoError(t, err)
	gen := feed.Generation()

	mu.Lock()
	names["1"] = "renamed"
	names["2"] = "not refreshed"
	names["3"] = "gone"
	mu.Unlock()

	ids := identities(5)
	page, err := feed.Invalidate(ctx, []domain.TokenIdentity{ids[1], ids[3]})
	require.NoError(t, err)

	assert.Equal(t, []string{"0", "1", "2", "4"}, tokenIDs(page.Records))
	assert.Equal(t, "renamed", page.Records[1].Name)
	assert.Equal(t, "", page.Records[2].Name)
	require.NotNil(t, page.Notice)
	assert.Equal(t, domain.SeverityWarning, page.Notice.Severity)

	// a mutation refresh is not a navigation
	assert.Equal(t, gen, feed.Generation())
	assert.Equal(t, 5, page.Total)
}

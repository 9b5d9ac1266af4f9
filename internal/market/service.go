package market

import (
	"context"
	"errors"
	"strings"
	"sync"
	"sync/atomic"
	"time"

	"github.com/alitto/pond/v2"
	"github.com/patrickmn/go-cache"
	"go.uber.org/zap"

	"github.com/aliveland/market-aggregator/internal/domain"
	"github.com/aliveland/market-aggregator/internal/favorites"
	"github.com/aliveland/market-aggregator/internal/joiner"
	"github.com/aliveland/market-aggregator/internal/logger"
	"github.com/aliveland/market-aggregator/internal/pipeline"
	"github.com/aliveland/market-aggregator/internal/providers/backend"
	"github.com/aliveland/market-aggregator/internal/providers/subgraph"
	"github.com/aliveland/market-aggregator/internal/readmodel"
	"github.com/aliveland/market-aggregator/internal/registry"
)

// Config holds the feed settings
type Config struct {
	PageSize    int
	Concurrency int
	// FeedTTL is how long an idle feed keeps its fetched list
	FeedTTL time.Duration
	// Blocklist hides moderated collections; nil blocks nothing
	Blocklist registry.Blocklist
}

// feed is the paginated state of one scope within a session. The read model
// is swapped on every request so joins see the latest favorites.
type feed struct {
	rm   atomic.Pointer[readmodel.ReadModel]
	feed *pipeline.Feed[Item, Filter]
}

// Service serves the paginated tabs and the token detail view
type Service struct {
	config   Config
	subgraph subgraph.Client
	backend  backend.Client
	joiner   *joiner.Joiner
	pool     pond.Pool

	mu    sync.Mutex
	feeds *cache.Cache
}

// NewService creates the market service
func NewService(cfg Config, subgraphClient subgraph.Client, backendClient backend.Client, j *joiner.Joiner) *Service {
	if cfg.Concurrency <= 0 {
		cfg.Concurrency = pipeline.DefaultConcurrency
	}
	if cfg.FeedTTL <= 0 {
		cfg.FeedTTL = 30 * time.Minute
	}
	_, cfg.PageSize = pipeline.Normalize(1, cfg.PageSize)
	if cfg.Blocklist == nil {
		cfg.Blocklist = registry.EmptyBlocklist()
	}

	return &Service{
		config:   cfg,
		subgraph: subgraphClient,
		backend:  backendClient,
		joiner:   j,
		pool:     pond.NewPool(cfg.Concurrency),
		feeds:    cache.New(cfg.FeedTTL, 2*cfg.FeedTTL),
	}
}

// Close stops the worker pool
func (s *Service) Close() {
	s.pool.StopAndWait()
}

func feedKey(sessionID string, scope Scope) string {
	return sessionID + "|" + string(scope)
}

// feedFor returns the feed of a session scope, creating it on first use
func (s *Service) feedFor(rm *readmodel.ReadModel, scope Scope) *feed {
	key := feedKey(rm.SessionID, scope)

	s.mu.Lock()
	defer s.mu.Unlock()

	if cached, ok := s.feeds.Get(key); ok {
		entry := cached.(*feed)
		entry.rm.Store(rm)
		s.feeds.SetDefault(key, entry)
		return entry
	}

	entry := &feed{}
	entry.rm.Store(rm)
	join := func(ctx context.Context, item Item) (*domain.ViewRecord, error) {
		return s.joiner.BuildViewRecord(ctx, entry.rm.Load(), item.Identity, joiner.JoinInput{
			Transfer: item.Transfer,
			Listing:  item.Listing,
			Mode:     joiner.ModeList,
		})
	}
	entry.feed = pipeline.NewFeed(s.fetchAllowed, join, s.config.PageSize, pipeline.WithConcurrency(s.config.Concurrency))
	s.feeds.SetDefault(key, entry)
	return entry
}

// fetchAllowed drops items of blocked collections before pagination
func (s *Service) fetchAllowed(ctx context.Context, filter Filter) ([]Item, error) {
	items, err := s.fetch(ctx, filter)
	if err != nil || s.config.Blocklist.Len() == 0 {
		return items, err
	}

	allowed := items[:0]
	for _, item := range items {
		if !s.config.Blocklist.IsBlocked(item.Identity.Collection) {
			allowed = append(allowed, item)
		}
	}
	return allowed, nil
}

// Browse returns one page of a tab. Moving to another tab re-fetches the raw
// list; moving to another page of the same tab only re-enriches.
func (s *Service) Browse(ctx context.Context, rm *readmodel.ReadModel, filter Filter, page int) (*pipeline.Page, error) {
	if filter.Scope == ScopeCollection && filter.Tab == TabOwned {
		filter.Viewer = rm.Viewer
	}
	filter, err := filter.Validate()
	if err != nil {
		return nil, err
	}

	entry := s.feedFor(rm, filter.Scope)
	result, err := entry.feed.Show(ctx, filter, page)
	if err != nil {
		return nil, err
	}

	out := *result
	out.Records = favorites.ApplyFavorites(result.Records, rm.Favorites)
	return &out, nil
}

// Invalidate re-joins the given tokens on every page the session currently
// shows. Feeds that moved on meanwhile are left alone.
func (s *Service) Invalidate(ctx context.Context, rm *readmodel.ReadModel, ids []domain.TokenIdentity) {
	prefix := rm.SessionID + "|"

	s.mu.Lock()
	var entries []*feed
	for key, item := range s.feeds.Items() {
		if strings.HasPrefix(key, prefix) {
			entries = append(entries, item.Object.(*feed))
		}
	}
	s.mu.Unlock()

	for _, entry := range entries {
		entry.rm.Store(rm)
		if _, err := entry.feed.Invalidate(ctx, ids); err != nil {
			if errors.Is(err, domain.ErrStaleGeneration) {
				continue
			}
			logger.WarnCtx(ctx, "Failed to refresh feed", zap.String("sessionID", rm.SessionID), zap.Error(err))
		}
	}
}

// Forget drops the feeds of a session
func (s *Service) Forget(sessionID string) {
	prefix := sessionID + "|"

	s.mu.Lock()
	defer s.mu.Unlock()
	for key := range s.feeds.Items() {
		if strings.HasPrefix(key, prefix) {
			s.feeds.Delete(key)
		}
	}
}

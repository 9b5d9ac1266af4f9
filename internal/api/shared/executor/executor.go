package executor

import (
	"context"
	"errors"
	"fmt"

	"go.uber.org/zap"

	"github.com/aliveland/market-aggregator/internal/api/shared/constants"
	"github.com/aliveland/market-aggregator/internal/api/shared/dto"
	"github.com/aliveland/market-aggregator/internal/domain"
	"github.com/aliveland/market-aggregator/internal/favorites"
	"github.com/aliveland/market-aggregator/internal/joiner"
	"github.com/aliveland/market-aggregator/internal/logger"
	"github.com/aliveland/market-aggregator/internal/market"
	"github.com/aliveland/market-aggregator/internal/pipeline"
	"github.com/aliveland/market-aggregator/internal/providers/backend"
	"github.com/aliveland/market-aggregator/internal/readmodel"
	"github.com/aliveland/market-aggregator/internal/registry"
	"github.com/aliveland/market-aggregator/internal/stats"
)

// Executor is the interface for the API executor
//
//go:generate mockgen -source=executor.go -destination=../../../mocks/api_executor.go -package=mocks -mock_names=Executor=MockAPIExecutor
type Executor interface {
	// OpenSession returns the read model of a session, starting a new one when sessionID is unknown
	OpenSession(ctx context.Context, sessionID string, viewer string) (*readmodel.ReadModel, error)

	// CloseSession forgets a session and its feeds
	CloseSession(ctx context.Context, sessionID string) error

	// Browse returns one page of a marketplace, collection or profile tab
	Browse(ctx context.Context, rm *readmodel.ReadModel, filter market.Filter, page int) (*dto.PageResponse, error)

	// GetToken returns the detail view of a token
	GetToken(ctx context.Context, rm *readmodel.ReadModel, id domain.TokenIdentity) (*dto.TokenResponse, error)

	// GetCollection returns the header of a collection page
	GetCollection(ctx context.Context, rm *readmodel.ReadModel, address string) (*domain.CollectionInfo, error)

	// GetCollectionStats returns the trading figures of a collection
	GetCollectionStats(ctx context.Context, rm *readmodel.ReadModel, address string) (*domain.CollectionStats, error)

	// GetCreatedCollections returns the collections deployed by an address
	GetCreatedCollections(ctx context.Context, rm *readmodel.ReadModel, creator string) (*dto.CollectionListResponse, error)

	// GetRecommendedCollections returns the most traded collections
	GetRecommendedCollections(ctx context.Context, rm *readmodel.ReadModel) (*dto.CollectionListResponse, error)

	// SearchCollections returns the collections whose name contains term
	SearchCollections(ctx context.Context, rm *readmodel.ReadModel, term string) (*dto.CollectionListResponse, error)

	// GetRanking returns one page of the trade volume ranking
	GetRanking(ctx context.Context, rm *readmodel.ReadModel, days int, page int) (*dto.RankingResponse, error)

	// GetActivity returns one page of the trade history
	GetActivity(ctx context.Context, collection string, page int, size int) (*stats.ActivityPage, error)

	// ToggleFavorite flips the favorite state of a token for the session viewer
	ToggleFavorite(ctx context.Context, rm *readmodel.ReadModel, id domain.TokenIdentity, current bool) (*favorites.ToggleResult, error)

	// GetUser returns the profile of an address
	GetUser(ctx context.Context, address string) (*domain.UserProfile, error)

	// GetLaunchpads returns every launchpad
	GetLaunchpads(ctx context.Context) (*dto.LaunchpadListResponse, error)

	// GetLaunchpad returns one launchpad with its sale totals
	GetLaunchpad(ctx context.Context, id string) (*dto.LaunchpadResponse, error)

	// GetQuotes returns the price quotes of the session
	GetQuotes(ctx context.Context, rm *readmodel.ReadModel) *dto.QuotesResponse
}

// Dependencies are the services the executor composes
type Dependencies struct {
	Sessions *readmodel.Sessions
	Market   *market.Service
	Stats    *stats.Service
	Toggler  *favorites.Toggler
	Joiner    *joiner.Joiner
	Backend   backend.Client
	Blocklist registry.Blocklist
}

type executor struct {
	sessions  *readmodel.Sessions
	market    *market.Service
	stats     *stats.Service
	toggler   *favorites.Toggler
	joiner    *joiner.Joiner
	backend   backend.Client
	blocklist registry.Blocklist
}

func NewExecutor(deps Dependencies) Executor {
	blocklist := deps.Blocklist
	if blocklist == nil {
		blocklist = registry.EmptyBlocklist()
	}
	return &executor{
		sessions:  deps.Sessions,
		market:    deps.Market,
		stats:     deps.Stats,
		toggler:   deps.Toggler,
		joiner:    deps.Joiner,
		backend:   deps.Backend,
		blocklist: blocklist,
	}
}

// unblocked drops the entries of blocked collections
func unblocked[T any](bl registry.Blocklist, items []T, collection func(T) string) []T {
	if bl.Len() == 0 {
		return items
	}
	out := make([]T, 0, len(items))
	for _, item := range items {
		if !bl.IsBlocked(collection(item)) {
			out = append(out, item)
		}
	}
	return out
}

func cardCollection(c domain.CollectionInfo) string { return c.Collection }

func (e *executor) checkBlocked(address string) error {
	if e.blocklist.IsBlocked(address) {
		return fmt.Errorf("%w: collection %s", domain.ErrNotFound, address)
	}
	return nil
}

func (e *executor) OpenSession(ctx context.Context, sessionID string, viewer string) (*readmodel.ReadModel, error) {
	return e.sessions.Open(ctx, sessionID, viewer)
}

func (e *executor) CloseSession(ctx context.Context, sessionID string) error {
	e.market.Forget(sessionID)
	if err := e.sessions.Drop(ctx, sessionID); err != nil {
		return fmt.Errorf("failed to drop session: %w", err)
	}
	return nil
}

func (e *executor) Browse(ctx context.Context, rm *readmodel.ReadModel, filter market.Filter, page int) (*dto.PageResponse, error) {
	result, err := e.market.Browse(ctx, rm, filter, page)
	if err != nil {
		return nil, err
	}
	return dto.MapPageToDTO(result), nil
}

func (e *executor) GetToken(ctx context.Context, rm *readmodel.ReadModel, id domain.TokenIdentity) (*dto.TokenResponse, error) {
	detail, err := e.market.Token(ctx, rm, id)
	if err != nil {
		return nil, err
	}
	return dto.MapTokenToDTO(detail), nil
}

func (e *executor) GetCollection(ctx context.Context, rm *readmodel.ReadModel, address string) (*domain.CollectionInfo, error) {
	if err := e.checkBlocked(address); err != nil {
		return nil, err
	}
	return e.joiner.BuildCollection(ctx, rm, address, joiner.CollectionPage)
}

func (e *executor) GetCollectionStats(ctx context.Context, rm *readmodel.ReadModel, address string) (*domain.CollectionStats, error) {
	if err := e.checkBlocked(address); err != nil {
		return nil, err
	}
	return e.stats.CollectionStats(ctx, rm.Quotes, address)
}

func (e *executor) GetCreatedCollections(ctx context.Context, rm *readmodel.ReadModel, creator string) (*dto.CollectionListResponse, error) {
	cards, err := e.stats.CreatedBy(ctx, rm, creator)
	if err != nil {
		return nil, err
	}
	return dto.MapCollectionsToDTO(unblocked(e.blocklist, cards, cardCollection)), nil
}

func (e *executor) GetRecommendedCollections(ctx context.Context, rm *readmodel.ReadModel) (*dto.CollectionListResponse, error) {
	cards, err := e.stats.Recommended(ctx, rm)
	if err != nil {
		return nil, err
	}
	return dto.MapCollectionsToDTO(unblocked(e.blocklist, cards, cardCollection)), nil
}

func (e *executor) SearchCollections(ctx context.Context, rm *readmodel.ReadModel, term string) (*dto.CollectionListResponse, error) {
	cards, err := e.stats.Search(ctx, rm, term)
	if err != nil {
		return nil, err
	}
	return dto.MapCollectionsToDTO(unblocked(e.blocklist, cards, cardCollection)), nil
}

func (e *executor) GetRanking(ctx context.Context, rm *readmodel.ReadModel, days int, page int) (*dto.RankingResponse, error) {
	entries, err := e.stats.Ranking(ctx, rm.Quotes, days)
	if err != nil {
		return nil, err
	}
	entries = unblocked(e.blocklist, entries, func(r domain.RankingEntry) string { return r.Collection })

	page, size := pipeline.Normalize(page, constants.RANKING_PAGE_SIZE)
	start, end := pipeline.Window(len(entries), page, size)
	return &dto.RankingResponse{
		Items:      entries[start:end],
		Days:       days,
		Page:       page,
		PageSize:   size,
		Total:      len(entries),
		TotalPages: pipeline.TotalPages(len(entries), size),
	}, nil
}

func (e *executor) GetActivity(ctx context.Context, collection string, page int, size int) (*stats.ActivityPage, error) {
	if err := e.checkBlocked(collection); err != nil {
		return nil, err
	}
	return e.stats.Activity(ctx, collection, page, size)
}

func (e *executor) ToggleFavorite(ctx context.Context, rm *readmodel.ReadModel, id domain.TokenIdentity, current bool) (*favorites.ToggleResult, error) {
	result, err := e.toggler.Toggle(ctx, rm, id, current)
	if err != nil {
		return result, err
	}

	// pages already showing the token pick up the new flag
	e.market.Invalidate(ctx, rm, []domain.TokenIdentity{id})
	return result, nil
}

func (e *executor) GetUser(ctx context.Context, address string) (*domain.UserProfile, error) {
	if !domain.IsValidAddress(address) {
		return nil, fmt.Errorf("%w: %s", domain.ErrInvalidAddress, address)
	}
	address = domain.NormalizeAddress(address)

	profile, err := e.backend.User(ctx, address)
	if err != nil {
		return nil, err
	}
	if profile == nil {
		return nil, fmt.Errorf("%w: user %s", domain.ErrNotFound, address)
	}

	users := e.sessions.Users()
	users.Upsert(*profile)
	if prepared, ok := users.Lookup(address); ok {
		return &prepared, nil
	}
	return profile, nil
}

func (e *executor) GetLaunchpads(ctx context.Context) (*dto.LaunchpadListResponse, error) {
	launchpads, err := e.backend.Launchpads(ctx)
	if err != nil {
		return nil, err
	}
	if launchpads == nil {
		launchpads = []domain.Launchpad{}
	}
	return &dto.LaunchpadListResponse{Items: launchpads}, nil
}

func (e *executor) GetLaunchpad(ctx context.Context, id string) (*dto.LaunchpadResponse, error) {
	detail, err := e.backend.Launchpad(ctx, id)
	if err != nil {
		return nil, err
	}
	if detail == nil {
		return nil, fmt.Errorf("%w: launchpad %s", domain.ErrNotFound, id)
	}
	return detail, nil
}

func (e *executor) GetQuotes(ctx context.Context, rm *readmodel.ReadModel) *dto.QuotesResponse {
	quotes := rm.Quotes.Quotes()
	if !rm.Quotes.Loaded() {
		logger.DebugCtx(ctx, "Serving session without price quotes", zap.String("sessionID", rm.SessionID))
	}
	if quotes == nil {
		quotes = []domain.PriceQuote{}
	}
	return &dto.QuotesResponse{
		NativeToken: rm.Quotes.NativeToken(),
		Quotes:      quotes,
	}
}

// IsClientError reports whether err was caused by the request rather than a source
func IsClientError(err error) bool {
	return errors.Is(err, domain.ErrInvalidAddress) ||
		errors.Is(err, domain.ErrInvalidTokenID) ||
		errors.Is(err, market.ErrUnsupportedTab)
}

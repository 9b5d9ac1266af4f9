package readmodel

import (
	"context"
	"encoding/json"
	"sync"
	"time"

	"github.com/oklog/ulid/v2"
	"github.com/patrickmn/go-cache"
	"go.uber.org/zap"

	"github.com/aliveland/market-aggregator/internal/adapter"
	"github.com/aliveland/market-aggregator/internal/domain"
	"github.com/aliveland/market-aggregator/internal/logger"
	"github.com/aliveland/market-aggregator/internal/monitor"
	"github.com/aliveland/market-aggregator/internal/price"
	"github.com/aliveland/market-aggregator/internal/providers/backend"
	"github.com/aliveland/market-aggregator/internal/store"
	"github.com/aliveland/market-aggregator/internal/uri"
)

// userDirectoryKey holds the last non-empty user list in the key-value store
const userDirectoryKey = "readmodel:user_directory"

// QuoteSource loads the current price quotes
//
//go:generate mockgen -source=sessions.go -destination=../mocks/quote_source.go -package=mocks -mock_names=QuoteSource=MockQuoteSource
type QuoteSource interface {
	Load(ctx context.Context) ([]domain.PriceQuote, error)
}

// SessionsConfig holds the session cache settings
type SessionsConfig struct {
	TTL         time.Duration
	NativeToken string
	Gateway     *uri.Gateway
}

// Sessions keeps one ReadModel per session id. The user directory is shared by
// all sessions and refreshed once per TTL; favorites, profile and quotes are
// per session and persisted so that a reload within the session restores them.
type Sessions struct {
	config  SessionsConfig
	cache   *cache.Cache
	backend backend.Client
	quotes  QuoteSource
	store   store.Store
	clock   adapter.Clock

	mu            sync.Mutex
	users         *UserDirectory
	usersLoadedAt time.Time
}

// NewSessions creates the session registry. st may be nil to keep sessions in memory only.
func NewSessions(cfg SessionsConfig, backendClient backend.Client, quotes QuoteSource, st store.Store, clock adapter.Clock) *Sessions {
	if cfg.TTL <= 0 {
		cfg.TTL = 30 * time.Minute
	}
	return &Sessions{
		config:  cfg,
		cache:   cache.New(cfg.TTL, 2*cfg.TTL),
		backend: backendClient,
		quotes:  quotes,
		store:   st,
		clock:   clock,
		users:   NewUserDirectory(cfg.Gateway, nil),
	}
}

// NewSessionID returns a fresh, time ordered session id
func NewSessionID() string {
	return ulid.Make().String()
}

// ValidSessionID reports whether id is a well formed session id
func ValidSessionID(id string) bool {
	_, err := ulid.ParseStrict(id)
	return err == nil
}

// Users returns the shared user directory
func (s *Sessions) Users() *UserDirectory {
	return s.users
}

// Open returns the read model of a session, building it on first use.
// An empty or malformed sessionID starts a new session. A cached session opened
// by a different viewer is rebuilt for the new viewer.
func (s *Sessions) Open(ctx context.Context, sessionID, viewer string) (*ReadModel, error) {
	if !ValidSessionID(sessionID) {
		sessionID = NewSessionID()
	}
	if viewer != "" {
		if !domain.IsValidAddress(viewer) {
			return nil, domain.ErrInvalidAddress
		}
		viewer = domain.NormalizeAddress(viewer)
	}

	if cached, ok := s.cache.Get(sessionID); ok {
		rm := cached.(*ReadModel)
		if rm.Viewer == viewer {
			monitor.SessionLoads.WithLabelValues("cache").Inc()
			return rm, nil
		}
	}

	users := s.ensureUsers(ctx)

	if rm := s.restore(ctx, sessionID, viewer, users); rm != nil {
		s.cache.SetDefault(sessionID, rm)
		monitor.SessionLoads.WithLabelValues("snapshot").Inc()
		return rm, nil
	}

	rm, complete := s.build(ctx, sessionID, viewer, users)
	if !complete {
		// partial models are served but not retained so that the next request retries
		rm.partial = true
		monitor.SessionLoads.WithLabelValues("partial").Inc()
		return rm, nil
	}
	monitor.SessionLoads.WithLabelValues("fresh").Inc()

	s.cache.SetDefault(sessionID, rm)
	if err := s.Persist(ctx, rm); err != nil {
		logger.WarnCtx(ctx, "Failed to persist session snapshot", zap.String("sessionID", sessionID), zap.Error(err))
	}
	return rm, nil
}

func (s *Sessions) restore(ctx context.Context, sessionID, viewer string, users *UserDirectory) *ReadModel {
	if s.store == nil {
		return nil
	}

	snapshot, err := s.store.GetSessionSnapshot(ctx, sessionID)
	if err != nil {
		logger.WarnCtx(ctx, "Failed to load session snapshot", zap.String("sessionID", sessionID), zap.Error(err))
		return nil
	}
	if snapshot == nil || snapshot.Viewer != viewer {
		return nil
	}
	if s.clock.Since(snapshot.UpdatedAt) > s.config.TTL {
		return nil
	}

	rm := Restore(*snapshot, users, s.config.NativeToken)
	if !rm.Quotes.Loaded() {
		s.loadQuotes(ctx, rm)
	}

	logger.DebugCtx(ctx, "Restored session", zap.String("sessionID", sessionID), zap.Int("favorites", rm.Favorites.Len()))
	return rm
}

func (s *Sessions) build(ctx context.Context, sessionID, viewer string, users *UserDirectory) (*ReadModel, bool) {
	rm := New(viewer, users, nil, price.NewQuoteTable(s.config.NativeToken, nil))
	rm.SessionID = sessionID
	complete := true

	if viewer != "" {
		favorites, err := s.backend.Favorites(ctx, viewer)
		if err != nil {
			logger.WarnCtx(ctx, "Failed to load favorites", zap.String("viewer", viewer), zap.Error(err))
			complete = false
		} else {
			rm.Favorites = FavoriteSetFromRecords(favorites)
		}

		profile, err := s.backend.User(ctx, viewer)
		if err != nil {
			logger.WarnCtx(ctx, "Failed to load viewer profile", zap.String("viewer", viewer), zap.Error(err))
			complete = false
		} else if profile != nil {
			rm.Profile = profile
			users.Upsert(*profile)
		}
	}

	if !s.loadQuotes(ctx, rm) {
		complete = false
	}

	return rm, complete
}

func (s *Sessions) loadQuotes(ctx context.Context, rm *ReadModel) bool {
	if s.quotes == nil {
		return true
	}
	quotes, err := s.quotes.Load(ctx)
	if err != nil {
		logger.WarnCtx(ctx, "Failed to load price quotes", zap.Error(err))
		return false
	}
	rm.Quotes.Set(quotes)
	return true
}

// ensureUsers refreshes the shared user directory when it is older than the session TTL.
// An empty backend answer keeps the current directory, or falls back to the last
// persisted one on a cold start.
func (s *Sessions) ensureUsers(ctx context.Context) *UserDirectory {
	s.mu.Lock()
	defer s.mu.Unlock()

	if !s.usersLoadedAt.IsZero() && s.clock.Since(s.usersLoadedAt) < s.config.TTL {
		return s.users
	}

	users := s.backend.UserList(ctx)
	switch {
	case len(users) > 0:
		s.users.Replace(users)
		s.saveUsers(ctx, users)
	case s.users.Len() == 0:
		if persisted := s.loadUsers(ctx); len(persisted) > 0 {
			s.users.Replace(persisted)
		}
	}
	s.usersLoadedAt = s.clock.Now()

	logger.DebugCtx(ctx, "Loaded user directory", zap.Int("users", s.users.Len()))
	return s.users
}

func (s *Sessions) saveUsers(ctx context.Context, users []domain.UserProfile) {
	if s.store == nil {
		return
	}
	data, err := json.Marshal(users)
	if err != nil {
		logger.WarnCtx(ctx, "Failed to marshal user directory", zap.Error(err))
		return
	}
	if err := s.store.SetKeyValue(ctx, userDirectoryKey, string(data)); err != nil {
		logger.WarnCtx(ctx, "Failed to persist user directory", zap.Error(err))
	}
}

func (s *Sessions) loadUsers(ctx context.Context) []domain.UserProfile {
	if s.store == nil {
		return nil
	}
	value, err := s.store.GetKeyValue(ctx, userDirectoryKey)
	if err != nil || value == "" {
		return nil
	}
	var users []domain.UserProfile
	if err := json.Unmarshal([]byte(value), &users); err != nil {
		logger.WarnCtx(ctx, "Failed to unmarshal persisted user directory", zap.Error(err))
		return nil
	}
	return users
}

// Persist saves the session snapshot and refreshes its cache lifetime.
// A partial model is neither cached nor saved.
func (s *Sessions) Persist(ctx context.Context, rm *ReadModel) error {
	if rm.Partial() {
		logger.DebugCtx(ctx, "Skipping persist of partial session", zap.String("sessionID", rm.SessionID))
		return nil
	}
	s.cache.SetDefault(rm.SessionID, rm)
	if s.store == nil {
		return nil
	}
	return s.store.SaveSessionSnapshot(ctx, rm.Snapshot(s.clock.Now()))
}

// Drop forgets a session
func (s *Sessions) Drop(ctx context.Context, sessionID string) error {
	s.cache.Delete(sessionID)
	if s.store == nil {
		return nil
	}
	return s.store.DeleteSessionSnapshot(ctx, sessionID)
}

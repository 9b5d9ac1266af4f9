package readmodel

import (
	"time"

	"github.com/aliveland/market-aggregator/internal/domain"
	"github.com/aliveland/market-aggregator/internal/price"
)

// ReadModel bundles the session scoped caches every join reads from.
// It is passed explicitly to the joiner and the pipeline; all members are safe
// for concurrent use by the enrichment goroutines of a page.
type ReadModel struct {
	SessionID string
	Viewer    string
	Profile   *domain.UserProfile
	Users     *UserDirectory
	Favorites *FavoriteSet
	Quotes    *price.QuoteTable

	// set when a session source failed while building; such a model is never cached or persisted
	partial bool
}

// New creates a read model for a viewer. Nil members are replaced by empty ones.
func New(viewer string, users *UserDirectory, favorites *FavoriteSet, quotes *price.QuoteTable) *ReadModel {
	if users == nil {
		users = NewUserDirectory(nil, nil)
	}
	if favorites == nil {
		favorites = NewFavoriteSet(nil)
	}
	if quotes == nil {
		quotes = price.NewQuoteTable("", nil)
	}
	if viewer != "" {
		viewer = domain.NormalizeAddress(viewer)
	}
	return &ReadModel{
		Viewer:    viewer,
		Users:     users,
		Favorites: favorites,
		Quotes:    quotes,
	}
}

// Partial reports whether a session source failed while the model was built
func (rm *ReadModel) Partial() bool {
	return rm.partial
}

// Snapshot captures the per-session state that has to survive a reload
func (rm *ReadModel) Snapshot(now time.Time) domain.SessionSnapshot {
	return domain.SessionSnapshot{
		SessionID: rm.SessionID,
		Viewer:    rm.Viewer,
		Profile:   rm.Profile,
		Favorites: rm.Favorites.Identities(),
		Quotes:    rm.Quotes.Quotes(),
		UpdatedAt: now,
	}
}

// Restore builds a read model from a persisted snapshot sharing the given user directory
func Restore(snapshot domain.SessionSnapshot, users *UserDirectory, nativeToken string) *ReadModel {
	rm := New(snapshot.Viewer, users, NewFavoriteSet(snapshot.Favorites), price.NewQuoteTable(nativeToken, snapshot.Quotes))
	rm.SessionID = snapshot.SessionID
	rm.Profile = snapshot.Profile
	return rm
}

package favorites

import (
	"context"

	"go.uber.org/zap"

	"github.com/aliveland/market-aggregator/internal/domain"
	"github.com/aliveland/market-aggregator/internal/logger"
	"github.com/aliveland/market-aggregator/internal/monitor"
	"github.com/aliveland/market-aggregator/internal/providers/backend"
	"github.com/aliveland/market-aggregator/internal/readmodel"
)

// ApplyFavorites returns a copy of records with isFavor recomputed against favs.
// The input slice is never modified.
func ApplyFavorites(records []domain.ViewRecord, favs *readmodel.FavoriteSet) []domain.ViewRecord {
	out := make([]domain.ViewRecord, len(records))
	for i, r := range records {
		r.IsFavor = favs != nil && favs.Contains(r.Identity())
		out[i] = r
	}
	return out
}

// Persister saves the session state after a confirmed mutation
type Persister interface {
	Persist(ctx context.Context, rm *readmodel.ReadModel) error
}

// ToggleResult is the outcome of a favorite toggle
type ToggleResult struct {
	Identity     domain.TokenIdentity `json:"identity"`
	Favorite     bool                 `json:"is_favor"`
	Notification domain.Notification  `json:"notification"`
}

// Toggler flips the favorite state of a token for the session viewer
type Toggler struct {
	backend   backend.Client
	persister Persister
}

// NewToggler creates a toggler. persister may be nil.
func NewToggler(backendClient backend.Client, persister Persister) *Toggler {
	return &Toggler{backend: backendClient, persister: persister}
}

// Toggle applies the flip to the session favorite set first, then confirms it
// with the backend. A failed confirmation reverts the flip and the returned
// result carries the error notification alongside the error.
func (t *Toggler) Toggle(ctx context.Context, rm *readmodel.ReadModel, id domain.TokenIdentity, current bool) (*ToggleResult, error) {
	if rm.Viewer == "" || domain.IsZeroAddress(rm.Viewer) {
		return nil, domain.ErrViewerRequired
	}

	target := !current
	previous := rm.Favorites.Set(id, target)
	op := string(domain.FavoriteOpAdd)
	if !target {
		op = string(domain.FavoriteOpRemove)
	}

	var err error
	if target {
		err = t.backend.AddFavorite(ctx, rm.Viewer, id)
	} else {
		err = t.backend.RemoveFavorite(ctx, rm.Viewer, id)
	}

	if err != nil {
		rm.Favorites.Set(id, previous)
		monitor.FavoriteToggles.WithLabelValues(op, "reverted").Inc()
		logger.WarnCtx(ctx, "Favorite toggle rejected",
			zap.String("identity", id.String()),
			zap.Bool("target", target),
			zap.Error(err))
		return &ToggleResult{
			Identity:     id,
			Favorite:     previous,
			Notification: domain.NotificationFor(err),
		}, err
	}

	monitor.FavoriteToggles.WithLabelValues(op, "confirmed").Inc()
	if t.persister != nil {
		if perr := t.persister.Persist(ctx, rm); perr != nil {
			logger.WarnCtx(ctx, "Failed to persist favorites", zap.String("sessionID", rm.SessionID), zap.Error(perr))
		}
	}

	title := "favorite_added"
	if !target {
		title = "favorite_removed"
	}
	return &ToggleResult{
		Identity:     id,
		Favorite:     target,
		Notification: domain.SuccessNotification(title),
	}, nil
}

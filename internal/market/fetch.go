package market

import (
	"context"

	"github.com/sourcegraph/conc/pool"
	"go.uber.org/zap"

	"github.com/aliveland/market-aggregator/internal/dedup"
	"github.com/aliveland/market-aggregator/internal/domain"
	"github.com/aliveland/market-aggregator/internal/logger"
	"github.com/aliveland/market-aggregator/internal/providers/subgraph"
)

// Item is one raw entry of a feed with the subgraph context known for it
type Item struct {
	Identity domain.TokenIdentity
	Transfer *domain.TransferEvent
	Listing  *domain.Listing
}

// fetch materializes the raw list of a filter, newest first
func (s *Service) fetch(ctx context.Context, f Filter) ([]Item, error) {
	switch f.Scope {
	case ScopeMarketplace:
		switch f.Tab {
		case TabAll:
			return s.transferItems(ctx, subgraph.ListingFilter{}, func(ctx context.Context) ([]domain.TransferEvent, error) {
				return s.subgraph.Transfers(ctx)
			}, "")
		case TabTrending:
			return s.listingItems(ctx, subgraph.ListingFilter{})
		default:
			items, err := s.transferItems(ctx, subgraph.ListingFilter{}, func(ctx context.Context) ([]domain.TransferEvent, error) {
				return s.subgraph.Transfers(ctx)
			}, "")
			if err != nil {
				return nil, err
			}
			return s.byMediaType(ctx, items, domain.MediaType(f.Tab)), nil
		}

	case ScopeCollection:
		transfers := func(ctx context.Context) ([]domain.TransferEvent, error) {
			return s.subgraph.CollectionTransfers(ctx, f.Address, "")
		}
		switch f.Tab {
		case TabSale:
			return s.listingItems(ctx, subgraph.ListingFilter{Collection: f.Address})
		case TabOwned:
			return s.transferItems(ctx, subgraph.ListingFilter{Collection: f.Address}, transfers, f.Viewer)
		default:
			return s.transferItems(ctx, subgraph.ListingFilter{Collection: f.Address}, transfers, "")
		}

	case ScopeProfile:
		switch f.Tab {
		case TabSale:
			return s.listingItems(ctx, subgraph.ListingFilter{Owner: f.Address})
		case TabFavorite:
			return s.favoriteItems(ctx, f.Address)
		default:
			return s.transferItems(ctx, subgraph.ListingFilter{Owner: f.Address}, func(ctx context.Context) ([]domain.TransferEvent, error) {
				return s.subgraph.Transfers(ctx)
			}, f.Address)
		}
	}
	return nil, ErrUnsupportedTab
}

// transferItems returns one item per token from the latest transfers with the
// matching listings attached. A non-empty owner keeps only the tokens it holds.
func (s *Service) transferItems(
	ctx context.Context,
	listingFilter subgraph.ListingFilter,
	transfers func(ctx context.Context) ([]domain.TransferEvent, error),
	owner string,
) ([]Item, error) {
	var (
		events   []domain.TransferEvent
		listings []domain.Listing
	)

	p := pool.New().WithContext(ctx).WithCancelOnError().WithFirstError()
	p.Go(func(ctx context.Context) (err error) {
		events, err = transfers(ctx)
		return err
	})
	p.Go(func(ctx context.Context) (err error) {
		listings, err = s.subgraph.Listings(ctx, listingFilter)
		return err
	})
	if err := p.Wait(); err != nil {
		return nil, err
	}

	var latest []domain.TransferEvent
	if owner != "" {
		latest = dedup.OwnedBy(events, owner)
	} else {
		latest = dedup.Unique(events)
	}

	byIdentity := make(map[domain.TokenIdentity]*domain.Listing)
	for _, l := range dedup.Listings(listings) {
		byIdentity[l.Identity()] = &l
	}

	items := make([]Item, 0, len(latest))
	for _, t := range latest {
		if domain.IsZeroAddress(t.To) {
			// burned
			continue
		}
		transfer := t
		items = append(items, Item{
			Identity: t.Identity(),
			Transfer: &transfer,
			Listing:  byIdentity[t.Identity()],
		})
	}
	return items, nil
}

func (s *Service) listingItems(ctx context.Context, filter subgraph.ListingFilter) ([]Item, error) {
	listings, err := s.subgraph.Listings(ctx, filter)
	if err != nil {
		return nil, err
	}

	unique := dedup.Listings(listings)
	items := make([]Item, len(unique))
	for i := range unique {
		items[i] = Item{Identity: unique[i].Identity(), Listing: &unique[i]}
	}
	return items, nil
}

func (s *Service) favoriteItems(ctx context.Context, address string) ([]Item, error) {
	records, err := s.backend.Favorites(ctx, address)
	if err != nil {
		return nil, err
	}

	ids := dedup.By(records, domain.FavoriteRecord.Identity)
	items := make([]Item, 0, len(ids))
	for _, r := range ids {
		id := r.Identity()
		if !id.Valid() {
			logger.DebugCtx(ctx, "Skipped malformed favorite", zap.String("collection", r.Collection), zap.String("tokenID", r.TokenID.String()))
			continue
		}
		items = append(items, Item{Identity: id})
	}
	return items, nil
}

// byMediaType keeps the items whose metadata declares mediaType, preserving
// order. Items whose metadata cannot be read are left out.
func (s *Service) byMediaType(ctx context.Context, items []Item, mediaType domain.MediaType) []Item {
	matches := make([]bool, len(items))

	group := s.pool.NewGroup()
	for i, item := range items {
		group.Submit(func() {
			var nftType domain.NFTType
			if item.Transfer != nil {
				nftType = item.Transfer.NFTType
			}
			meta, err := s.joiner.TokenMetadata(ctx, item.Identity, nftType)
			if err != nil {
				logger.DebugCtx(ctx, "Media type unknown", zap.String("identity", item.Identity.String()), zap.Error(err))
				return
			}
			matches[i] = meta.MediaType == mediaType
		})
	}
	if err := group.Wait(); err != nil {
		logger.WarnCtx(ctx, "Media classification interrupted", zap.Error(err))
	}

	out := make([]Item, 0, len(items))
	for i, item := range items {
		if matches[i] {
			out = append(out, item)
		}
	}
	return out
}

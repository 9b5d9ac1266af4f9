package market

import (
	"context"
	"errors"
	"fmt"

	"github.com/sourcegraph/conc"
	"go.uber.org/zap"

	"github.com/aliveland/market-aggregator/internal/domain"
	"github.com/aliveland/market-aggregator/internal/joiner"
	"github.com/aliveland/market-aggregator/internal/logger"
	"github.com/aliveland/market-aggregator/internal/readmodel"
)

// TokenDetail is the detail view of one token
type TokenDetail struct {
	Record  domain.ViewRecord    `json:"record"`
	Market  *domain.MarketState  `json:"market"`
	Gallery []domain.ViewRecord  `json:"gallery"`
	Notice  *domain.Notification `json:"notification,omitempty"`
}

// Token assembles the detail view of a token. A token whose joins fail is
// returned as a placeholder with a notification, and a market state that cannot
// be queried is left empty with a notification. An unknown collection is not found.
func (s *Service) Token(ctx context.Context, rm *readmodel.ReadModel, id domain.TokenIdentity) (*TokenDetail, error) {
	if !id.Valid() {
		return nil, domain.ErrInvalidTokenID
	}
	if s.config.Blocklist.IsBlocked(id.Collection) {
		return nil, fmt.Errorf("%w: token %s", domain.ErrNotFound, id)
	}

	state, marketErr := s.joiner.BuildMarketState(ctx, id, rm.Viewer)
	if marketErr != nil {
		if ctx.Err() != nil {
			return nil, marketErr
		}
		logger.WarnCtx(ctx, "Token detail without market state", zap.String("identity", id.String()), zap.Error(marketErr))
		state = emptyMarketState(id)
	}

	record, err := s.joiner.BuildViewRecord(ctx, rm, id, joiner.JoinInput{Mode: joiner.ModeDetail})
	switch {
	case errors.Is(err, domain.ErrUnknownNFTType):
		return nil, fmt.Errorf("%w: token %s", domain.ErrNotFound, id)
	case err != nil && !joiner.IsSkippable(err):
		return nil, err
	}

	detail := &TokenDetail{
		Record:  *record,
		Market:  state,
		Gallery: []domain.ViewRecord{},
	}
	switch {
	case err != nil:
		notice := domain.NotificationFor(err)
		detail.Notice = &notice
	case marketErr != nil:
		notice := domain.NotificationFor(marketErr)
		detail.Notice = &notice
	}
	applyMarket(&detail.Record, state)

	var wg conc.WaitGroup
	wg.Go(func() {
		info, err := s.joiner.BuildCollection(ctx, rm, id.Collection, joiner.CollectionCard)
		if err != nil {
			logger.WarnCtx(ctx, "Token detail without collection", zap.String("collection", id.Collection), zap.Error(err))
			return
		}
		detail.Record.CollectionName = info.Name
		detail.Record.CollectionImage = info.Icon
	})
	wg.Go(func() {
		gallery, err := s.joiner.Gallery(ctx, rm, id, domain.COLLECTION_GALLERY_SIZE)
		if err != nil {
			logger.WarnCtx(ctx, "Token detail without gallery", zap.String("identity", id.String()), zap.Error(err))
			return
		}
		detail.Gallery = gallery
	})
	wg.Wait()

	return detail, nil
}

func emptyMarketState(id domain.TokenIdentity) *domain.MarketState {
	return &domain.MarketState{
		Identity: id,
		Offers:   []domain.PricedOffer{},
		Bids:     []domain.PricedBid{},
		History:  []domain.TradeEvent{},
	}
}

// applyMarket overrides the listing fields of a record with the market state
func applyMarket(record *domain.ViewRecord, state *domain.MarketState) {
	if l := state.Listing; l != nil {
		record.Listed = true
		record.PayToken = l.PayToken
		record.Price = l.Price
		record.Quantity = l.Quantity
		record.StartingTime = l.StartingTime
	}
	if a := state.Auction; a != nil {
		record.EndTime = a.EndTime
		if !record.Listed {
			record.PayToken = a.PayToken
			record.Price = a.ReservePrice
		}
	}
}

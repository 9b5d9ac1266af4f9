package joiner

import (
	"context"
	"sort"

	"github.com/sourcegraph/conc/pool"

	"github.com/aliveland/market-aggregator/internal/dedup"
	"github.com/aliveland/market-aggregator/internal/domain"
	"github.com/aliveland/market-aggregator/internal/providers/subgraph"
)

// BuildMarketState derives the market situation of a token in one fetch cycle.
// viewer may be empty, in which case the viewer offer and bid stay nil.
func (j *Joiner) BuildMarketState(ctx context.Context, id domain.TokenIdentity, viewer string) (*domain.MarketState, error) {
	now := j.clock.Now()

	var (
		listings  []domain.Listing
		auctions  []domain.Auction
		offers    []domain.Offer
		bids      []domain.Bid
		histories []domain.HistoryEvent
	)

	p := pool.New().WithContext(ctx).WithCancelOnError().WithFirstError()
	p.Go(func(ctx context.Context) (err error) {
		listings, err = j.subgraph.Listings(ctx, subgraph.ListingFilter{Collection: id.Collection, TokenID: id.TokenID})
		return err
	})
	p.Go(func(ctx context.Context) (err error) {
		auctions, err = j.subgraph.Auctions(ctx, id)
		return err
	})
	p.Go(func(ctx context.Context) (err error) {
		offers, err = j.subgraph.Offers(ctx, id, now.Unix(), "")
		return err
	})
	p.Go(func(ctx context.Context) (err error) {
		bids, err = j.subgraph.Bids(ctx, id, "")
		return err
	})
	p.Go(func(ctx context.Context) (err error) {
		histories, err = j.subgraph.Histories(ctx, id.Collection, id.TokenID)
		return err
	})
	if err := p.Wait(); err != nil {
		return nil, err
	}

	state := &domain.MarketState{
		Identity: id,
		Offers:   make([]domain.PricedOffer, 0, len(offers)),
		Bids:     make([]domain.PricedBid, 0, len(bids)),
		History:  make([]domain.TradeEvent, 0, len(histories)),
	}

	if listed := dedup.Listings(listings); len(listed) > 0 {
		l := listed[0]
		state.Listing = &domain.PricedListing{
			Owner:        domain.NormalizeAddress(l.Owner),
			PayToken:     domain.NormalizeAddress(l.PayToken),
			Price:        j.normalizer.ToDisplay(l.PricePerItem, l.PayToken),
			Quantity:     l.Quantity,
			StartingTime: l.StartingTime,
		}
	}

	if len(auctions) > 0 {
		a := auctions[0]
		state.Auction = &domain.PricedAuction{
			PayToken:     domain.NormalizeAddress(a.PayToken),
			ReservePrice: j.normalizer.ToDisplay(a.ReservePrice, a.PayToken),
			EndTime:      a.EndTime,
		}
		state.AuctionState = domain.AuctionStateAt(a.EndTime, now)
	}

	// offers and bids may use different pay tokens, so they are ranked by display amount
	for _, o := range offers {
		if o.Deadline <= now.Unix() {
			continue
		}
		state.Offers = append(state.Offers, domain.PricedOffer{
			Creator:        domain.NormalizeAddress(o.Creator),
			PayToken:       domain.NormalizeAddress(o.PayToken),
			Price:          j.normalizer.ToDisplay(o.PricePerItem, o.PayToken),
			Deadline:       o.Deadline,
			BlockTimestamp: o.BlockTimestamp,
		})
	}
	sort.SliceStable(state.Offers, func(a, b int) bool {
		return state.Offers[a].Price.GreaterThan(state.Offers[b].Price)
	})
	for i := range state.Offers {
		if viewer != "" && domain.SameAddress(state.Offers[i].Creator, viewer) {
			viewerOffer := state.Offers[i]
			state.ViewerOffer = &viewerOffer
			break
		}
	}

	for _, b := range bids {
		state.Bids = append(state.Bids, domain.PricedBid{
			Bidder:         domain.NormalizeAddress(b.Bidder),
			PayToken:       domain.NormalizeAddress(b.PayToken),
			Bid:            j.normalizer.ToDisplay(b.Bid, b.PayToken),
			BlockTimestamp: b.BlockTimestamp,
		})
	}
	sort.SliceStable(state.Bids, func(a, b int) bool {
		return state.Bids[a].Bid.GreaterThan(state.Bids[b].Bid)
	})
	for i := range state.Bids {
		if viewer != "" && domain.SameAddress(state.Bids[i].Bidder, viewer) {
			viewerBid := state.Bids[i]
			state.ViewerBid = &viewerBid
			break
		}
	}

	sort.SliceStable(histories, func(a, b int) bool {
		return histories[a].BlockTimestamp > histories[b].BlockTimestamp
	})
	for _, h := range histories {
		state.History = append(state.History, domain.TradeEvent{
			EventType:      h.EventType,
			PayToken:       domain.NormalizeAddress(h.PayToken),
			Price:          j.normalizer.ToDisplay(h.PricePerItem, h.PayToken),
			From:           domain.NormalizeAddress(h.From),
			To:             domain.NormalizeAddress(h.To),
			BlockTimestamp: h.BlockTimestamp,
		})
	}

	return state, nil
}

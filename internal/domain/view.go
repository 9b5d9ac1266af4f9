package domain

import (
	"time"

	"github.com/shopspring/decimal"
)

// ViewRecord is the denormalized, display ready join of one token across chain,
// subgraph and backend. It is the unit of pagination and of the favorite overlay.
type ViewRecord struct {
	Collection      string          `json:"nft"`
	NFTType         NFTType         `json:"nft_type"`
	TokenID         string          `json:"token_id"`
	Name            string          `json:"name"`
	Description     string          `json:"description"`
	Image           string          `json:"image"`
	MediaType       MediaType       `json:"media_type"`
	Royalty         float64         `json:"royalty"`
	Creator         string          `json:"creator"`
	CreatorName     string          `json:"creator_name"`
	CreatorImage    string          `json:"creator_image"`
	CreatorIntro    string          `json:"creator_intro,omitempty"`
	Owner           string          `json:"owner"`
	OwnerName       string          `json:"owner_name"`
	OwnerImage      string          `json:"owner_image"`
	Price           decimal.Decimal `json:"price"`
	PayToken        string          `json:"pay_token"`
	Quantity        int64           `json:"amount"`
	StartingTime    int64           `json:"starting_time"`
	EndTime         int64           `json:"end_time"`
	Listed          bool            `json:"listed"`
	CollectionName  string          `json:"collection_name,omitempty"`
	CollectionImage string          `json:"collection_image,omitempty"`
	IsFavor         bool            `json:"is_favor"`
	Placeholder     bool            `json:"placeholder,omitempty"`
}

// Identity returns the token the record describes
func (r ViewRecord) Identity() TokenIdentity {
	return NewTokenIdentity(r.Collection, r.TokenID)
}

// AuctionState is the lifecycle phase of the auction on a token
type AuctionState string

const (
	AuctionStateNone      AuctionState = ""
	AuctionStateCreated   AuctionState = "CREATED"
	AuctionStateEnded     AuctionState = "ENDED"
	AuctionStateAvailable AuctionState = "AVAILABLE"
)

// AuctionStateAt derives the auction phase from its end time (unix seconds)
func AuctionStateAt(endTime int64, now time.Time) AuctionState {
	ts := now.Unix()
	switch {
	case ts > endTime+int64(AUCTION_SETTLEMENT_WINDOW.Seconds()):
		return AuctionStateAvailable
	case ts > endTime:
		return AuctionStateEnded
	default:
		return AuctionStateCreated
	}
}

// PricedListing is a listing with its price in display units
type PricedListing struct {
	Owner        string          `json:"owner"`
	PayToken     string          `json:"pay_token"`
	Price        decimal.Decimal `json:"price"`
	Quantity     int64           `json:"quantity"`
	StartingTime int64           `json:"starting_time"`
}

// PricedAuction is an auction with its reserve price in display units
type PricedAuction struct {
	PayToken     string          `json:"pay_token"`
	ReservePrice decimal.Decimal `json:"reserve_price"`
	EndTime      int64           `json:"end_time"`
}

// PricedOffer is an offer with its price in display units
type PricedOffer struct {
	Creator        string          `json:"creator"`
	PayToken       string          `json:"pay_token"`
	Price          decimal.Decimal `json:"price"`
	Deadline       int64           `json:"deadline"`
	BlockTimestamp int64           `json:"block_timestamp"`
}

// PricedBid is a bid with its amount in display units
type PricedBid struct {
	Bidder         string          `json:"bidder"`
	PayToken       string          `json:"pay_token"`
	Bid            decimal.Decimal `json:"bid"`
	BlockTimestamp int64           `json:"block_timestamp"`
}

// TradeEvent is a history entry with its price in display units
type TradeEvent struct {
	EventType      string          `json:"event_type"`
	PayToken       string          `json:"pay_token"`
	Price          decimal.Decimal `json:"price"`
	From           string          `json:"from"`
	To             string          `json:"to"`
	BlockTimestamp int64           `json:"block_timestamp"`
}

// MarketState is the derived market situation of a token, computed once per fetch cycle
type MarketState struct {
	Identity     TokenIdentity  `json:"identity"`
	Listing      *PricedListing `json:"listing,omitempty"`
	Auction      *PricedAuction `json:"auction,omitempty"`
	AuctionState AuctionState   `json:"auction_state"`
	ViewerOffer  *PricedOffer   `json:"viewer_offer,omitempty"`
	ViewerBid    *PricedBid     `json:"viewer_bid,omitempty"`
	Offers       []PricedOffer  `json:"offers"`
	Bids         []PricedBid    `json:"bids"`
	History      []TradeEvent   `json:"history"`
}

// Listed reports whether the token has an active listing
func (m MarketState) Listed() bool {
	return m.Listing != nil
}

// Offered reports whether the viewer has an offer on the token
func (m MarketState) Offered() bool {
	return m.ViewerOffer != nil
}

// Bidded reports whether the viewer has a bid on the token auction
func (m MarketState) Bidded() bool {
	return m.ViewerBid != nil
}

// CollectionInfo is the display record of a collection
type CollectionInfo struct {
	Collection   string  `json:"nft"`
	NFTType      NFTType `json:"nft_type"`
	Name         string  `json:"name"`
	Symbol       string  `json:"symbol"`
	Description  string  `json:"description"`
	Banner       string  `json:"banner"`
	Icon         string  `json:"icon"`
	Amount       string  `json:"amount"`
	Creator      string  `json:"creator"`
	CreatorLabel string  `json:"creator_label"`
	Intro        string  `json:"intro"`
}

// CollectionStats are the aggregate trading figures of a collection
type CollectionStats struct {
	Collection    string          `json:"nft"`
	VolumeTraded  decimal.Decimal `json:"volume_traded"`
	Owners        int             `json:"owners"`
	Items         int             `json:"items"`
	FloorPrice    decimal.Decimal `json:"floor_price"`
	FloorPayToken string          `json:"floor_pay_token"`
}

// RankingEntry is one row of the trade volume ranking, amounts in native token units
type RankingEntry struct {
	Collection  string          `json:"nft"`
	Name        string          `json:"name"`
	Count       int             `json:"count"`
	Lowest      decimal.Decimal `json:"lowest"`
	Volumes     decimal.Decimal `json:"volumes"`
	PrevVolumes decimal.Decimal `json:"prev_volumes"`
}

// ActivityItem is one row of the marketplace activity feed
type ActivityItem struct {
	Collection string          `json:"nft"`
	TokenID    string          `json:"token_id"`
	Name       string          `json:"name"`
	Image      string          `json:"image"`
	EventType  string          `json:"event"`
	Price      decimal.Decimal `json:"price"`
	PayToken   string          `json:"pay_token"`
	From       string          `json:"from"`
	To         string          `json:"to"`
	Date       int64           `json:"date"`
}

// PriceQuote is the USD value of one unit of a pay token
type PriceQuote struct {
	PayToken string          `json:"pay_token"`
	USD      decimal.Decimal `json:"usd"`
}

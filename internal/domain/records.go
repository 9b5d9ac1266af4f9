package domain

import (
	"encoding/json"
	"math/big"
)

// TransferEvent is an ownership transfer indexed by the subgraph.
// Queries deliver them newest first.
type TransferEvent struct {
	Collection     string  `json:"nft"`
	TokenID        string  `json:"token_id"`
	NFTType        NFTType `json:"nft_type"`
	From           string  `json:"from"`
	To             string  `json:"to"`
	BlockTimestamp int64   `json:"block_timestamp"`
}

// Identity returns the token the transfer moved
func (e TransferEvent) Identity() TokenIdentity {
	return NewTokenIdentity(e.Collection, e.TokenID)
}

// IsMint checks if the transfer originates from the zero address
func (e TransferEvent) IsMint() bool {
	return IsZeroAddress(e.From)
}

// ContractCreated is a collection deployed through the marketplace factory
type ContractCreated struct {
	Collection     string  `json:"nft"`
	Name           string  `json:"name"`
	Creator        string  `json:"creator"`
	NFTType        NFTType `json:"nft_type"`
	BlockTimestamp int64   `json:"block_timestamp"`
}

// Listing is an active fixed price listing. Absence means "not listed".
type Listing struct {
	Collection     string    `json:"nft"`
	TokenID        string    `json:"token_id"`
	MediaType      MediaType `json:"media_type"`
	Owner          string    `json:"owner"`
	Quantity       int64     `json:"quantity"`
	PayToken       string    `json:"pay_token"`
	PricePerItem   *big.Int  `json:"price_per_item"`
	StartingTime   int64     `json:"starting_time"`
	BlockTimestamp int64     `json:"block_timestamp"`
}

// Identity returns the listed token
func (l Listing) Identity() TokenIdentity {
	return NewTokenIdentity(l.Collection, l.TokenID)
}

// Offer is a time bounded buy offer on a token
type Offer struct {
	Collection     string   `json:"nft"`
	TokenID        string   `json:"token_id"`
	Creator        string   `json:"creator"`
	PayToken       string   `json:"pay_token"`
	PricePerItem   *big.Int `json:"price_per_item"`
	Deadline       int64    `json:"deadline"`
	BlockTimestamp int64    `json:"block_timestamp"`
}

// Bid is a bid placed on a running auction
type Bid struct {
	Collection     string   `json:"nft"`
	TokenID        string   `json:"token_id"`
	Bidder         string   `json:"bidder"`
	PayToken       string   `json:"pay_token"`
	Bid            *big.Int `json:"bid"`
	BlockTimestamp int64    `json:"block_timestamp"`
}

// Auction is an auction created for a token
type Auction struct {
	Collection   string   `json:"nft"`
	TokenID      string   `json:"token_id"`
	PayToken     string   `json:"pay_token"`
	ReservePrice *big.Int `json:"reserve_price"`
	EndTime      int64    `json:"end_time"`
}

// HistoryEvent is one entry of a token trade history
type HistoryEvent struct {
	Collection     string   `json:"nft"`
	TokenID        string   `json:"token_id"`
	EventType      string   `json:"event_type"`
	PricePerItem   *big.Int `json:"price_per_item"`
	PayToken       string   `json:"pay_token"`
	From           string   `json:"from"`
	To             string   `json:"to"`
	BlockTimestamp int64    `json:"block_timestamp"`
}

// ItemSold is a completed fixed price sale
type ItemSold struct {
	Collection     string   `json:"nft"`
	TokenID        string   `json:"token_id"`
	Seller         string   `json:"seller"`
	Buyer          string   `json:"buyer"`
	PayToken       string   `json:"pay_token"`
	PricePerItem   *big.Int `json:"price_per_item"`
	BlockTimestamp int64    `json:"block_timestamp"`
}

// AuctionResult is a settled auction
type AuctionResult struct {
	Collection     string   `json:"nft"`
	TokenID        string   `json:"token_id"`
	OldOwner       string   `json:"old_owner"`
	Winner         string   `json:"winner"`
	PayToken       string   `json:"pay_token"`
	WinningBid     *big.Int `json:"winning_bid"`
	BlockTimestamp int64    `json:"block_timestamp"`
}

// TradeVolume is the all-time traded value of a collection in one pay token
type TradeVolume struct {
	Collection string   `json:"nft"`
	PayToken   string   `json:"pay_token"`
	Value      *big.Int `json:"value"`
}

// UserProfile is a registered user as stored by the backend
type UserProfile struct {
	Address      string `json:"Address"`
	UserName     string `json:"UserName"`
	BannerImage  string `json:"BannerImage"`
	AvatarImage  string `json:"AvatarImage"`
	Introduction string `json:"Introduction"`
}

// FavoriteRecord is a favorite stored by the backend
type FavoriteRecord struct {
	Collection  string      `json:"Collection"`
	TokenID     json.Number `json:"TokenId"`
	UserAddress string      `json:"UserAddress"`
}

// Identity returns the favorited token
func (f FavoriteRecord) Identity() TokenIdentity {
	return NewTokenIdentity(f.Collection, f.TokenID.String())
}

// Launchpad is a primary sale drop managed by the backend
type Launchpad struct {
	ID              string  `json:"ID"`
	Name            string  `json:"Name"`
	Symbol          string  `json:"Symbol"`
	Description     string  `json:"Description"`
	BannerImage     string  `json:"BannerImage"`
	IconImage       string  `json:"IconImage"`
	Amount          string  `json:"Amount"`
	ERCType         string  `json:"ERCType"`
	ContractAddress string  `json:"ContractAddress"`
	Seller          string  `json:"Seller"`
	Price           float64 `json:"Price"`
	IsCompleted     bool    `json:"IsCompleted"`
	Intro           string  `json:"Intro"`
	Owners          int64   `json:"Owners"`
	VolumeTraded    float64 `json:"VolumeTraded"`
	Solds           int64   `json:"Solds"`
	Remain          int64   `json:"Remain"`
	FloorPrice      float64 `json:"FloorPrice"`
	Total           int64   `json:"Total"`
	StartTime       int64   `json:"StartTime"`
	EndTime         int64   `json:"EndTime"`
}

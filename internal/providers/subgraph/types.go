package subgraph

import (
	"strconv"

	"github.com/aliveland/market-aggregator/internal/domain"
	"github.com/aliveland/market-aggregator/internal/price"
)

// GraphQLRequest represents a GraphQL request
type GraphQLRequest struct {
	Query         string                 `json:"query"`
	Variables     map[string]interface{} `json:"variables"`
	OperationName string                 `json:"operationName"`
}

// GraphQLError is one entry of the GraphQL errors array
type GraphQLError struct {
	Message string `json:"message"`
}

// Subgraph BigInt and Bytes scalars are delivered as strings.

type transfer struct {
	NFT            string `json:"nft"`
	NFTType        string `json:"nftType"`
	TokenID        string `json:"tokenId"`
	From           string `json:"from"`
	To             string `json:"to"`
	BlockTimestamp string `json:"blockTimestamp"`
}

func (t transfer) toDomain() domain.TransferEvent {
	return domain.TransferEvent{
		Collection:     domain.NormalizeAddress(t.NFT),
		TokenID:        domain.NormalizeTokenID(t.TokenID),
		NFTType:        domain.NFTType(t.NFTType),
		From:           domain.NormalizeAddress(t.From),
		To:             domain.NormalizeAddress(t.To),
		BlockTimestamp: parseInt(t.BlockTimestamp),
	}
}

type contractCreated struct {
	NFT            string `json:"nft"`
	Name           string `json:"name"`
	Creator        string `json:"creator"`
	NFTType        string `json:"nftType"`
	BlockTimestamp string `json:"blockTimestamp"`
}

func (c contractCreated) toDomain() domain.ContractCreated {
	return domain.ContractCreated{
		Collection:     domain.NormalizeAddress(c.NFT),
		Name:           c.Name,
		Creator:        domain.NormalizeAddress(c.Creator),
		NFTType:        domain.NFTType(c.NFTType),
		BlockTimestamp: parseInt(c.BlockTimestamp),
	}
}

type itemListed struct {
	NFT            string `json:"nft"`
	TokenID        string `json:"tokenId"`
	MediaType      string `json:"mediaType"`
	Owner          string `json:"owner"`
	Quantity       string `json:"quantity"`
	PayToken       string `json:"payToken"`
	PricePerItem   string `json:"pricePerItem"`
	StartingTime   string `json:"startingTime"`
	BlockTimestamp string `json:"blockTimestamp"`
}

func (l itemListed) toDomain() domain.Listing {
	return domain.Listing{
		Collection:     domain.NormalizeAddress(l.NFT),
		TokenID:        domain.NormalizeTokenID(l.TokenID),
		MediaType:      domain.MediaType(l.MediaType),
		Owner:          domain.NormalizeAddress(l.Owner),
		Quantity:       parseInt(l.Quantity),
		PayToken:       domain.NormalizeAddress(l.PayToken),
		PricePerItem:   price.ParseRaw(l.PricePerItem),
		StartingTime:   parseInt(l.StartingTime),
		BlockTimestamp: parseInt(l.BlockTimestamp),
	}
}

type offerCreated struct {
	Creator        string `json:"creator"`
	NFT            string `json:"nft"`
	TokenID        string `json:"tokenId"`
	PayToken       string `json:"payToken"`
	PricePerItem   string `json:"pricePerItem"`
	Deadline       string `json:"deadline"`
	BlockTimestamp string `json:"blockTimestamp"`
}

func (o offerCreated) toDomain() domain.Offer {
	return domain.Offer{
		Collection:     domain.NormalizeAddress(o.NFT),
		TokenID:        domain.NormalizeTokenID(o.TokenID),
		Creator:        domain.NormalizeAddress(o.Creator),
		PayToken:       domain.NormalizeAddress(o.PayToken),
		PricePerItem:   price.ParseRaw(o.PricePerItem),
		Deadline:       parseInt(o.Deadline),
		BlockTimestamp: parseInt(o.BlockTimestamp),
	}
}

type bidPlaced struct {
	NFTAddress     string `json:"nftAddress"`
	TokenID        string `json:"tokenId"`
	Bidder         string `json:"bidder"`
	PayToken       string `json:"payToken"`
	Bid            string `json:"bid"`
	BlockTimestamp string `json:"blockTimestamp"`
}

func (b bidPlaced) toDomain() domain.Bid {
	return domain.Bid{
		Collection:     domain.NormalizeAddress(b.NFTAddress),
		TokenID:        domain.NormalizeTokenID(b.TokenID),
		Bidder:         domain.NormalizeAddress(b.Bidder),
		PayToken:       domain.NormalizeAddress(b.PayToken),
		Bid:            price.ParseRaw(b.Bid),
		BlockTimestamp: parseInt(b.BlockTimestamp),
	}
}

type auctionCreated struct {
	NFTAddress   string `json:"nftAddress"`
	TokenID      string `json:"tokenId"`
	PayToken     string `json:"payToken"`
	ReservePrice string `json:"reservePrice"`
	EndTime      string `json:"endTime"`
}

func (a auctionCreated) toDomain() domain.Auction {
	return domain.Auction{
		Collection:   domain.NormalizeAddress(a.NFTAddress),
		TokenID:      domain.NormalizeTokenID(a.TokenID),
		PayToken:     domain.NormalizeAddress(a.PayToken),
		ReservePrice: price.ParseRaw(a.ReservePrice),
		EndTime:      parseInt(a.EndTime),
	}
}

type history struct {
	NFT            string `json:"nft"`
	TokenID        string `json:"tokenId"`
	EventType      string `json:"eventType"`
	PricePerItem   string `json:"pricePerItem"`
	PayToken       string `json:"payToken"`
	From           string `json:"from"`
	To             string `json:"to"`
	BlockTimestamp string `json:"blockTimestamp"`
}

func (h history) toDomain() domain.HistoryEvent {
	return domain.HistoryEvent{
		Collection:     domain.NormalizeAddress(h.NFT),
		TokenID:        domain.NormalizeTokenID(h.TokenID),
		EventType:      h.EventType,
		PricePerItem:   price.ParseRaw(h.PricePerItem),
		PayToken:       domain.NormalizeAddress(h.PayToken),
		From:           domain.NormalizeAddress(h.From),
		To:             domain.NormalizeAddress(h.To),
		BlockTimestamp: parseInt(h.BlockTimestamp),
	}
}

type itemSold struct {
	Seller         string `json:"seller"`
	Buyer          string `json:"buyer"`
	NFT            string `json:"nft"`
	PayToken       string `json:"payToken"`
	TokenID        string `json:"tokenId"`
	PricePerItem   string `json:"pricePerItem"`
	BlockTimestamp string `json:"blockTimestamp"`
}

func (s itemSold) toDomain() domain.ItemSold {
	return domain.ItemSold{
		Collection:     domain.NormalizeAddress(s.NFT),
		TokenID:        domain.NormalizeTokenID(s.TokenID),
		Seller:         domain.NormalizeAddress(s.Seller),
		Buyer:          domain.NormalizeAddress(s.Buyer),
		PayToken:       domain.NormalizeAddress(s.PayToken),
		PricePerItem:   price.ParseRaw(s.PricePerItem),
		BlockTimestamp: parseInt(s.BlockTimestamp),
	}
}

type auctionResulted struct {
	OldOwner       string `json:"oldOwner"`
	Winner         string `json:"winner"`
	NFTAddress     string `json:"nftAddress"`
	TokenID        string `json:"tokenId"`
	WinningBid     string `json:"winningBid"`
	PayToken       string `json:"payToken"`
	BlockTimestamp string `json:"blockTimestamp"`
}

func (a auctionResulted) toDomain() domain.AuctionResult {
	return domain.AuctionResult{
		Collection:     domain.NormalizeAddress(a.NFTAddress),
		TokenID:        domain.NormalizeTokenID(a.TokenID),
		OldOwner:       domain.NormalizeAddress(a.OldOwner),
		Winner:         domain.NormalizeAddress(a.Winner),
		PayToken:       domain.NormalizeAddress(a.PayToken),
		WinningBid:     price.ParseRaw(a.WinningBid),
		BlockTimestamp: parseInt(a.BlockTimestamp),
	}
}

type tradeVolume struct {
	ID       string `json:"id"`
	NFT      string `json:"nft"`
	PayToken string `json:"payToken"`
	Value    string `json:"value"`
}

func (v tradeVolume) toDomain() domain.TradeVolume {
	return domain.TradeVolume{
		Collection: domain.NormalizeAddress(v.NFT),
		PayToken:   domain.NormalizeAddress(v.PayToken),
		Value:      price.ParseRaw(v.Value),
	}
}

func parseInt(s string) int64 {
	n, err := strconv.ParseInt(s, 10, 64)
	if err != nil {
		return 0
	}
	return n
}

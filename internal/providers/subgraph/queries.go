package subgraph

import (
	"fmt"

	"github.com/vektah/gqlparser/v2/ast"
	"github.com/vektah/gqlparser/v2/parser"
)

// query is a parsed GraphQL operation
type query struct {
	text          string
	operationName string
	// entity is the root field holding the result list
	entity string
}

// mustQuery parses the operation at startup so a malformed query fails fast
func mustQuery(entity, text string) query {
	doc, err := parser.ParseQuery(&ast.Source{Name: entity, Input: text})
	if err != nil {
		panic(fmt.Sprintf("invalid subgraph query %s: %v", entity, err))
	}
	if len(doc.Operations) != 1 || doc.Operations[0].Name == "" {
		panic(fmt.Sprintf("subgraph query %s must contain exactly one named operation", entity))
	}

	return query{
		text:          text,
		operationName: doc.Operations[0].Name,
		entity:        entity,
	}
}

var (
	transfersQuery = mustQuery("transfers", `
query TransfersQuery($where: Transfer_filter, $first: Int!, $skip: Int!) {
  transfers(where: $where, first: $first, skip: $skip, orderBy: blockTimestamp, orderDirection: desc) {
    nft
    nftType
    tokenId
    from
    to
    blockTimestamp
  }
}`)

	contractCreatedsQuery = mustQuery("contractCreateds", `
query ContractCreatedsQuery($where: ContractCreated_filter, $first: Int!, $skip: Int!) {
  contractCreateds(where: $where, first: $first, skip: $skip, orderBy: blockTimestamp, orderDirection: desc) {
    nft
    name
    creator
    nftType
    blockTimestamp
  }
}`)

	itemListedsQuery = mustQuery("itemListeds", `
query ListingsQuery($where: ItemListed_filter, $first: Int!, $skip: Int!) {
  itemListeds(where: $where, first: $first, skip: $skip, orderBy: blockTimestamp, orderDirection: desc) {
    nft
    tokenId
    mediaType
    owner
    quantity
    payToken
    pricePerItem
    startingTime
    blockTimestamp
  }
}`)

	offerCreatedsQuery = mustQuery("offerCreateds", `
query OffersQuery($where: OfferCreated_filter, $first: Int!, $skip: Int!) {
  offerCreateds(where: $where, first: $first, skip: $skip, orderBy: pricePerItem, orderDirection: desc) {
    creator
    nft
    tokenId
    payToken
    pricePerItem
    deadline
    blockTimestamp
  }
}`)

	bidPlacedsQuery = mustQuery("bidPlaceds", `
query BidsQuery($where: BidPlaced_filter, $first: Int!, $skip: Int!) {
  bidPlaceds(where: $where, first: $first, skip: $skip, orderBy: bid, orderDirection: desc) {
    nftAddress
    tokenId
    bidder
    payToken
    bid
    blockTimestamp
  }
}`)

	auctionCreatedsQuery = mustQuery("auctionCreateds", `
query AuctionsQuery($where: AuctionCreated_filter, $first: Int!, $skip: Int!) {
  auctionCreateds(where: $where, first: $first, skip: $skip, orderBy: blockTimestamp, orderDirection: desc) {
    nftAddress
    tokenId
    payToken
    reservePrice
    endTime
  }
}`)

	historiesQuery = mustQuery("histories", `
query HistoriesQuery($where: History_filter, $first: Int!, $skip: Int!) {
  histories(where: $where, first: $first, skip: $skip, orderBy: blockTimestamp, orderDirection: desc) {
    nft
    tokenId
    eventType
    pricePerItem
    payToken
    from
    to
    blockTimestamp
  }
}`)

	itemSoldsQuery = mustQuery("itemSolds", `
query SoldsQuery($where: ItemSold_filter, $first: Int!, $skip: Int!) {
  itemSolds(where: $where, first: $first, skip: $skip, orderBy: blockTimestamp, orderDirection: desc) {
    seller
    buyer
    nft
    payToken
    tokenId
    pricePerItem
    blockTimestamp
  }
}`)

	auctionResultedsQuery = mustQuery("auctionResulteds", `
query AuctionResultsQuery($where: AuctionResulted_filter, $first: Int!, $skip: Int!) {
  auctionResulteds(where: $where, first: $first, skip: $skip, orderBy: blockTimestamp, orderDirection: desc) {
    oldOwner
    winner
    nftAddress
    tokenId
    winningBid
    payToken
    blockTimestamp
  }
}`)

	tradeVolumesQuery = mustQuery("tradeVolumes", `
query TradeVolumesQuery($where: TradeVolume_filter, $first: Int!, $skip: Int!) {
  tradeVolumes(where: $where, first: $first, skip: $skip, orderBy: value, orderDirection: desc) {
    id
    nft
    payToken
    value
  }
}`)
)

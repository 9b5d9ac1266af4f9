package subgraph

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"net/http"
	"strings"

	"go.uber.org/zap"

	"github.com/aliveland/market-aggregator/internal/adapter"
	"github.com/aliveland/market-aggregator/internal/domain"
	"github.com/aliveland/market-aggregator/internal/logger"
)

const (
	// pageSize is the largest `first` the graph node accepts
	pageSize = 1000
	// maxSkip is the largest `skip` the graph node accepts
	maxSkip = 5000
)

// ListingFilter narrows itemListeds. Empty fields are ignored.
type ListingFilter struct {
	Collection string
	TokenID    string
	Owner      string
	Limit      int
}

// Client defines the interface for subgraph client operations to enable mocking
//
//go:generate mockgen -source=client.go -destination=../../mocks/subgraph_client.go -package=mocks -mock_names=Client=MockSubgraphClient
type Client interface {
	// Transfers returns every transfer, newest first
	Transfers(ctx context.Context) ([]domain.TransferEvent, error)

	// CollectionTransfers returns the transfers of a collection, newest first.
	// excludeTokenID drops one token from the result when not empty.
	CollectionTransfers(ctx context.Context, collection string, excludeTokenID string) ([]domain.TransferEvent, error)

	// TokenTransfers returns the transfers of one token, newest first
	TokenTransfers(ctx context.Context, id domain.TokenIdentity) ([]domain.TransferEvent, error)

	// MintTransfer returns the transfer from the zero address of a token, nil when unknown
	MintTransfer(ctx context.Context, id domain.TokenIdentity) (*domain.TransferEvent, error)

	// ContractCreated returns the deployment record of a collection, nil when unknown
	ContractCreated(ctx context.Context, collection string) (*domain.ContractCreated, error)

	// ContractsByCreator returns the collections deployed by creator, newest first
	ContractsByCreator(ctx context.Context, creator string) ([]domain.ContractCreated, error)

	// SearchCollections returns the collections whose name contains term, case-insensitive
	SearchCollections(ctx context.Context, term string) ([]domain.ContractCreated, error)

	// Listings returns active listings, newest first
	Listings(ctx context.Context, filter ListingFilter) ([]domain.Listing, error)

	// Offers returns unexpired offers on a token ordered by price desc.
	// creator narrows to one offerer when not empty.
	Offers(ctx context.Context, id domain.TokenIdentity, now int64, creator string) ([]domain.Offer, error)

	// Bids returns bids on a token auction ordered by amount desc.
	// bidder narrows to one bidder when not empty.
	Bids(ctx context.Context, id domain.TokenIdentity, bidder string) ([]domain.Bid, error)

	// Auctions returns the auctions created for a token, newest first
	Auctions(ctx context.Context, id domain.TokenIdentity) ([]domain.Auction, error)

	// Histories returns trade history, newest first.
	// An empty collection returns the history of the whole marketplace.
	Histories(ctx context.Context, collection, tokenID string) ([]domain.HistoryEvent, error)

	// ItemSolds returns fixed price sales after since (unix seconds)
	ItemSolds(ctx context.Context, since int64) ([]domain.ItemSold, error)

	// AuctionResults returns settled auctions after since (unix seconds)
	AuctionResults(ctx context.Context, since int64) ([]domain.AuctionResult, error)

	// TradeVolumes returns the per pay token volumes of a collection
	TradeVolumes(ctx context.Context, collection string) ([]domain.TradeVolume, error)

	// TopTradeVolumes returns the largest volumes across collections
	TopTradeVolumes(ctx context.Context, first int) ([]domain.TradeVolume, error)
}

type graphQLResponse struct {
	Data   map[string]json.RawMessage `json:"data"`
	Errors []GraphQLError             `json:"errors"`
}

// SubgraphClient implements subgraph client
type SubgraphClient struct {
	httpClient adapter.HTTPClient
	url        string
	json       adapter.JSON
}

// NewClient creates a new subgraph client
func NewClient(httpClient adapter.HTTPClient, url string, json adapter.JSON) Client {
	return &SubgraphClient{
		httpClient: httpClient,
		url:        url,
		json:       json,
	}
}

// execute runs one page of a query and returns the raw entity list
func (c *SubgraphClient) execute(ctx context.Context, q query, variables map[string]interface{}) (json.RawMessage, error) {
	requestBody, err := c.json.Marshal(GraphQLRequest{
		Query:         q.text,
		Variables:     variables,
		OperationName: q.operationName,
	})
	if err != nil {
		return nil, fmt.Errorf("failed to marshal GraphQL request: %w", err)
	}

	responseBody, err := c.httpClient.Post(ctx, c.url, "application/json", requestBody)
	if err != nil {
		return nil, fmt.Errorf("failed to call subgraph: %w", err)
	}

	var response graphQLResponse
	if err := c.json.Unmarshal(responseBody, &response); err != nil {
		return nil, fmt.Errorf("failed to unmarshal subgraph response: %w", err)
	}

	if len(response.Errors) > 0 {
		messages := make([]string, 0, len(response.Errors))
		for _, e := range response.Errors {
			messages = append(messages, e.Message)
		}
		return nil, &domain.NetworkError{
			Op:  http.MethodPost,
			URL: c.url,
			Err: fmt.Errorf("%s: %s", q.operationName, strings.Join(messages, "; ")),
		}
	}

	return response.Data[q.entity], nil
}

// list pages through a query with first/skip until the result is exhausted or limit is reached.
// A non-positive limit fetches everything the graph node allows.
func list[W any, T any](ctx context.Context, c *SubgraphClient, q query, where map[string]interface{}, limit int, convert func(W) T) ([]T, error) {
	var out []T
	for skip := 0; skip <= maxSkip; skip += pageSize {
		first := pageSize
		if limit > 0 && limit-len(out) < first {
			first = limit - len(out)
		}

		raw, err := c.execute(ctx, q, map[string]interface{}{
			"where": where,
			"first": first,
			"skip":  skip,
		})
		if err != nil {
			return nil, err
		}

		var page []W
		if len(raw) > 0 {
			if err := c.json.Unmarshal(raw, &page); err != nil {
				return nil, fmt.Errorf("failed to unmarshal %s: %w", q.entity, err)
			}
		}

		for _, w := range page {
			out = append(out, convert(w))
		}

		if len(page) < first || (limit > 0 && len(out) >= limit) {
			break
		}
	}

	logger.DebugCtx(ctx, "subgraph query",
		zap.String("operation", q.operationName),
		zap.Int("results", len(out)))

	if out == nil {
		out = []T{}
	}
	return out, nil
}

// bytesValue renders an address the way the graph node stores Bytes
func bytesValue(address string) string {
	return strings.ToLower(domain.NormalizeAddress(address))
}

func tokenWhere(id domain.TokenIdentity, collectionField string) map[string]interface{} {
	return map[string]interface{}{
		collectionField: bytesValue(id.Collection),
		"tokenId":       id.TokenID,
	}
}

func (c *SubgraphClient) Transfers(ctx context.Context) ([]domain.TransferEvent, error) {
	return list(ctx, c, transfersQuery, map[string]interface{}{}, 0, transfer.toDomain)
}

func (c *SubgraphClient) CollectionTransfers(ctx context.Context, collection string, excludeTokenID string) ([]domain.TransferEvent, error) {
	where := map[string]interface{}{"nft": bytesValue(collection)}
	if excludeTokenID != "" {
		where["tokenId_not"] = domain.NormalizeTokenID(excludeTokenID)
	}
	return list(ctx, c, transfersQuery, where, 0, transfer.toDomain)
}

func (c *SubgraphClient) TokenTransfers(ctx context.Context, id domain.TokenIdentity) ([]domain.TransferEvent, error) {
	return list(ctx, c, transfersQuery, tokenWhere(id, "nft"), 0, transfer.toDomain)
}

func (c *SubgraphClient) MintTransfer(ctx context.Context, id domain.TokenIdentity) (*domain.TransferEvent, error) {
	where := tokenWhere(id, "nft")
	where["from"] = bytesValue(domain.ETHEREUM_ZERO_ADDRESS)

	transfers, err := list(ctx, c, transfersQuery, where, 1, transfer.toDomain)
	if err != nil {
		return nil, err
	}
	if len(transfers) == 0 {
		return nil, nil
	}
	return &transfers[0], nil
}

func (c *SubgraphClient) ContractCreated(ctx context.Context, collection string) (*domain.ContractCreated, error) {
	contracts, err := list(ctx, c, contractCreatedsQuery, map[string]interface{}{"nft": bytesValue(collection)}, 1, contractCreated.toDomain)
	if err != nil {
		return nil, err
	}
	if len(contracts) == 0 {
		return nil, nil
	}
	return &contracts[0], nil
}

func (c *SubgraphClient) ContractsByCreator(ctx context.Context, creator string) ([]domain.ContractCreated, error) {
	return list(ctx, c, contractCreatedsQuery, map[string]interface{}{"creator": bytesValue(creator)}, 0, contractCreated.toDomain)
}

func (c *SubgraphClient) SearchCollections(ctx context.Context, term string) ([]domain.ContractCreated, error) {
	term = strings.TrimSpace(term)
	if term == "" {
		return []domain.ContractCreated{}, nil
	}
	return list(ctx, c, contractCreatedsQuery, map[string]interface{}{"name_contains_nocase": term}, 0, contractCreated.toDomain)
}

func (c *SubgraphClient) Listings(ctx context.Context, filter ListingFilter) ([]domain.Listing, error) {
	where := map[string]interface{}{}
	if filter.Collection != "" {
		where["nft"] = bytesValue(filter.Collection)
	}
	if filter.TokenID != "" {
		where["tokenId"] = domain.NormalizeTokenID(filter.TokenID)
	}
	if filter.Owner != "" {
		where["owner"] = bytesValue(filter.Owner)
	}
	return list(ctx, c, itemListedsQuery, where, filter.Limit, itemListed.toDomain)
}

func (c *SubgraphClient) Offers(ctx context.Context, id domain.TokenIdentity, now int64, creator string) ([]domain.Offer, error) {
	where := tokenWhere(id, "nft")
	where["deadline_gt"] = fmt.Sprintf("%d", now)
	if creator != "" {
		where["creator"] = bytesValue(creator)
	}
	return list(ctx, c, offerCreatedsQuery, where, 0, offerCreated.toDomain)
}

func (c *SubgraphClient) Bids(ctx context.Context, id domain.TokenIdentity, bidder string) ([]domain.Bid, error) {
	where := tokenWhere(id, "nftAddress")
	if bidder != "" {
		where["bidder"] = bytesValue(bidder)
	}
	return list(ctx, c, bidPlacedsQuery, where, 0, bidPlaced.toDomain)
}

func (c *SubgraphClient) Auctions(ctx context.Context, id domain.TokenIdentity) ([]domain.Auction, error) {
	return list(ctx, c, auctionCreatedsQuery, tokenWhere(id, "nftAddress"), 0, auctionCreated.toDomain)
}

func (c *SubgraphClient) Histories(ctx context.Context, collection, tokenID string) ([]domain.HistoryEvent, error) {
	where := map[string]interface{}{}
	if collection != "" {
		where["nft"] = bytesValue(collection)
	}
	if tokenID != "" {
		where["tokenId"] = domain.NormalizeTokenID(tokenID)
	}
	return list(ctx, c, historiesQuery, where, 0, history.toDomain)
}

func (c *SubgraphClient) ItemSolds(ctx context.Context, since int64) ([]domain.ItemSold, error) {
	where := map[string]interface{}{}
	if since > 0 {
		where["blockTimestamp_gt"] = fmt.Sprintf("%d", since)
	}
	return list(ctx, c, itemSoldsQuery, where, 0, itemSold.toDomain)
}

func (c *SubgraphClient) AuctionResults(ctx context.Context, since int64) ([]domain.AuctionResult, error) {
	where := map[string]interface{}{}
	if since > 0 {
		where["blockTimestamp_gt"] = fmt.Sprintf("%d", since)
	}
	return list(ctx, c, auctionResultedsQuery, where, 0, auctionResulted.toDomain)
}

func (c *SubgraphClient) TradeVolumes(ctx context.Context, collection string) ([]domain.TradeVolume, error) {
	where := map[string]interface{}{"id_starts_with": bytesValue(collection)}
	return list(ctx, c, tradeVolumesQuery, where, 0, tradeVolume.toDomain)
}

func (c *SubgraphClient) TopTradeVolumes(ctx context.Context, first int) ([]domain.TradeVolume, error) {
	if first <= 0 {
		return nil, errors.New("first must be positive")
	}
	return list(ctx, c, tradeVolumesQuery, map[string]interface{}{}, first, tradeVolume.toDomain)
}

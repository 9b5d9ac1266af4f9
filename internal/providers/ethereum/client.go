package ethereum

import (
	"context"
	"fmt"
	"math/big"
	"strings"

	"github.com/ethereum/go-ethereum"
	"github.com/ethereum/go-ethereum/accounts/abi"
	"github.com/ethereum/go-ethereum/common"
	"go.uber.org/zap"

	"github.com/aliveland/market-aggregator/internal/adapter"
	"github.com/aliveland/market-aggregator/internal/domain"
	"github.com/aliveland/market-aggregator/internal/logger"
)

const (
	erc721ABIJSON = `[
		{"constant":true,"inputs":[{"name":"tokenId","type":"uint256"}],"name":"tokenURI","outputs":[{"name":"","type":"string"}],"stateMutability":"view","type":"function"},
		{"constant":true,"inputs":[{"name":"tokenId","type":"uint256"}],"name":"ownerOf","outputs":[{"name":"","type":"address"}],"stateMutability":"view","type":"function"},
		{"constant":true,"inputs":[],"name":"totalSupply","outputs":[{"name":"","type":"uint256"}],"stateMutability":"view","type":"function"}
	]`

	erc1155ABIJSON = `[
		{"constant":true,"inputs":[{"name":"id","type":"uint256"}],"name":"uri","outputs":[{"name":"","type":"string"}],"stateMutability":"view","type":"function"},
		{"constant":true,"inputs":[],"name":"totalItems","outputs":[{"name":"","type":"uint256"}],"stateMutability":"view","type":"function"}
	]`

	collectionABIJSON = `[
		{"constant":true,"inputs":[],"name":"owner","outputs":[{"name":"","type":"address"}],"stateMutability":"view","type":"function"},
		{"constant":true,"inputs":[],"name":"metadataUrl","outputs":[{"name":"","type":"string"}],"stateMutability":"view","type":"function"}
	]`

	proxyAdminABIJSON = `[
		{"constant":true,"inputs":[{"name":"proxy","type":"address"}],"name":"getProxyImplementation","outputs":[{"name":"","type":"address"}],"stateMutability":"view","type":"function"}
	]`

	marketplaceABIJSON = `[
		{"constant":true,"inputs":[{"name":"aggregator","type":"address"}],"name":"getPrice","outputs":[{"name":"","type":"int256"}],"stateMutability":"view","type":"function"}
	]`
)

var (
	erc721ABI      = mustParseABI(erc721ABIJSON)
	erc1155ABI     = mustParseABI(erc1155ABIJSON)
	collectionABI  = mustParseABI(collectionABIJSON)
	proxyAdminABI  = mustParseABI(proxyAdminABIJSON)
	marketplaceABI = mustParseABI(marketplaceABIJSON)
)

func mustParseABI(definition string) abi.ABI {
	parsed, err := abi.JSON(strings.NewReader(definition))
	if err != nil {
		panic(fmt.Sprintf("failed to parse ABI: %v", err))
	}
	return parsed
}

// ContractReader reads marketplace and collection state from the chain.
// Every failure is returned as *domain.ContractCallError.
//
//go:generate mockgen -source=client.go -destination=../../mocks/contract_reader.go -package=mocks -mock_names=ContractReader=MockContractReader
type ContractReader interface {
	// MetadataPointer returns the metadata URI of a token.
	// ERC721 collections expose tokenURI, everything else exposes uri.
	MetadataPointer(ctx context.Context, id domain.TokenIdentity, nftType domain.NFTType) (string, error)

	// OwnerOf returns the current owner of an ERC721 token
	OwnerOf(ctx context.Context, id domain.TokenIdentity) (string, error)

	// CollectionOwner returns the owner of a collection contract
	CollectionOwner(ctx context.Context, collection string) (string, error)

	// CollectionMetadataURL returns the metadata URI of a collection contract
	CollectionMetadataURL(ctx context.Context, collection string) (string, error)

	// TotalSupply returns the number of items of a collection
	TotalSupply(ctx context.Context, collection string, nftType domain.NFTType) (*big.Int, error)

	// ProxyImplementation returns the implementation behind an upgradeable proxy
	ProxyImplementation(ctx context.Context, proxyAdmin, proxy string) (string, error)

	// OraclePrice returns the USD price of an aggregator, scaled by 1e8
	OraclePrice(ctx context.Context, marketplace, aggregator string) (*big.Int, error)

	// Close closes the connection
	Close()
}

type contractReader struct {
	chainID domain.Chain
	client  adapter.EthClient
}

func NewContractReader(chainID domain.Chain, client adapter.EthClient) ContractReader {
	return &contractReader{chainID: chainID, client: client}
}

// call packs the call, executes it against the latest block and unpacks the single return value
func (c *contractReader) call(ctx context.Context, contract abi.ABI, address, method string, out interface{}, args ...interface{}) error {
	data, err := contract.Pack(method, args...)
	if err != nil {
		return domain.NewContractCallError(address, method, fmt.Errorf("failed to pack data: %w", err))
	}

	to := common.HexToAddress(address)
	result, err := c.client.CallContract(ctx, ethereum.CallMsg{
		To:   &to,
		Data: data,
	}, nil)
	if err != nil {
		logger.DebugCtx(ctx, "contract call failed",
			zap.Int64("chainID", int64(c.chainID)),
			zap.String("address", address),
			zap.String("method", method),
			zap.Error(err))
		return domain.NewContractCallError(address, method, fmt.Errorf("failed to call contract: %w", err))
	}

	if err := contract.UnpackIntoInterface(out, method, result); err != nil {
		return domain.NewContractCallError(address, method, fmt.Errorf("failed to unpack result: %w", err))
	}

	return nil
}

func tokenNumber(id domain.TokenIdentity) (*big.Int, error) {
	n, ok := id.TokenNumber()
	if !ok {
		return nil, domain.NewContractCallError(id.Collection, "", fmt.Errorf("%w: %s", domain.ErrInvalidTokenID, id.TokenID))
	}
	return n, nil
}

// MetadataPointer returns the metadata URI of a token
func (c *contractReader) MetadataPointer(ctx context.Context, id domain.TokenIdentity, nftType domain.NFTType) (string, error) {
	n, err := tokenNumber(id)
	if err != nil {
		return "", err
	}

	contract := erc1155ABI
	if nftType == domain.NFTTypeERC721 {
		contract = erc721ABI
	}

	var uri string
	if err := c.call(ctx, contract, id.Collection, nftType.MetadataSelector(), &uri, n); err != nil {
		return "", err
	}

	return uri, nil
}

// OwnerOf returns the current owner of an ERC721 token
func (c *contractReader) OwnerOf(ctx context.Context, id domain.TokenIdentity) (string, error) {
	n, err := tokenNumber(id)
	if err != nil {
		return "", err
	}

	var owner common.Address
	if err := c.call(ctx, erc721ABI, id.Collection, "ownerOf", &owner, n); err != nil {
		return "", err
	}

	return owner.Hex(), nil
}

// CollectionOwner returns the owner of a collection contract
func (c *contractReader) CollectionOwner(ctx context.Context, collection string) (string, error) {
	var owner common.Address
	if err := c.call(ctx, collectionABI, collection, "owner", &owner); err != nil {
		return "", err
	}

	return owner.Hex(), nil
}

// CollectionMetadataURL returns the metadata URI of a collection contract
func (c *contractReader) CollectionMetadataURL(ctx context.Context, collection string) (string, error) {
	var uri string
	if err := c.call(ctx, collectionABI, collection, "metadataUrl", &uri); err != nil {
		return "", err
	}

	return uri, nil
}

// TotalSupply returns the number of items of a collection
func (c *contractReader) TotalSupply(ctx context.Context, collection string, nftType domain.NFTType) (*big.Int, error) {
	contract := erc1155ABI
	if nftType == domain.NFTTypeERC721 {
		contract = erc721ABI
	}

	var supply *big.Int
	if err := c.call(ctx, contract, collection, nftType.SupplySelector(), &supply); err != nil {
		return nil, err
	}

	return supply, nil
}

// ProxyImplementation returns the implementation behind an upgradeable proxy
func (c *contractReader) ProxyImplementation(ctx context.Context, proxyAdmin, proxy string) (string, error) {
	var implementation common.Address
	if err := c.call(ctx, proxyAdminABI, proxyAdmin, "getProxyImplementation", &implementation, common.HexToAddress(proxy)); err != nil {
		return "", err
	}

	return implementation.Hex(), nil
}

// OraclePrice returns the USD price of an aggregator, scaled by 1e8
func (c *contractReader) OraclePrice(ctx context.Context, marketplace, aggregator string) (*big.Int, error) {
	var price *big.Int
	if err := c.call(ctx, marketplaceABI, marketplace, "getPrice", &price, common.HexToAddress(aggregator)); err != nil {
		return nil, err
	}

	return price, nil
}

// Close closes the connection
func (c *contractReader) Close() {
	c.client.Close()
}

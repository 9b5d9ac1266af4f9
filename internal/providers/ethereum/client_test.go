package ethereum_test

import (
	"context"
	"errors"
	"math/big"
	"os"
	"testing"

	"github.com/ethereum/go-ethereum"
	"github.com/ethereum/go-ethereum/accounts/abi"
	"github.com/ethereum/go-ethereum/common"
	"github.com/golang/mock/gomock"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/aliveland/market-aggregator/internal/domain"
	ethprovider "github.com/aliveland/market-aggregator/internal/providers/ethereum"
	"github.com/aliveland/market-aggregator/internal/logger"
	"github.com/aliveland/market-aggregator/internal/mocks"
)

const (
	testCollection = "0x5aAeb6053F3E94C9b9A09f33669435E7Ef1BeAed"
	testOwner      = "0xfB6916095ca1df60bB79Ce92cE3Ea74c37c5d359"
)

func TestMain(m *testing.M) {
	if err := logger.Initialize(logger.Config{Debug: false}); err != nil {
		panic(err)
	}
	os.Exit(m.Run())
}

// packOutput encodes return values the way a node would answer the call
func packOutput(t *testing.T, contract abi.ABI, method string, values ...interface{}) []byte {
	t.Helper()
	out, err := contract.Methods[method].Outputs.Pack(values...)
	require.NoError(t, err)
	return out
}

// expectCall asserts the call targets address with the given selector
func expectCall(client *mocks.MockEthClient, contract abi.ABI, address, method string, result []byte, err error) {
	client.EXPECT().
		CallContract(gomock.Any(), gomock.Any(), gomock.Nil()).
		DoAndReturn(func(_ context.Context, msg ethereum.CallMsg, _ *big.Int) ([]byte, error) {
			if msg.To == nil || *msg.To != common.HexToAddress(address) {
				return nil, errors.New("unexpected target")
			}
			if string(msg.Data[:4]) != string(contract.Methods[method].ID) {
				return nil, errors.New("unexpected selector")
			}
			return result, err
		})
}

func TestContractReader_MetadataPointer(t *testing.T) {
	tests := []struct {
		name     string
		nftType  domain.NFTType
		contract abi.ABI
		method   string
	}{
		{name: "erc721 uses tokenURI", nftType: domain.NFTTypeERC721, contract: ethprovider.ERC721ABI, method: "tokenURI"},
		{name: "erc1155 uses uri", nftType: domain.NFTTypeERC1155, contract: ethprovider.ERC1155ABI, method: "uri"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			ctrl := gomock.NewController(t)
			defer ctrl.Finish()

			client := mocks.NewMockEthClient(ctrl)
			expectCall(client, tt.contract, testCollection, tt.method, packOutput(t, tt.contract, tt.method, "ipfs://QmMeta/1.json"), nil)

			reader := ethprovider.NewContractReader(domain.ChainPolygonAmoy, client)
			uri, err := reader.MetadataPointer(context.Background(), domain.NewTokenIdentity(testCollection, "1"), tt.nftType)
			require.NoError(t, err)
			assert.Equal(t, "ipfs://QmMeta/1.json", uri)
		})
	}
}

func TestContractReader_OwnerOf(t *testing.T) {
	ctrl := gomock.NewController(t)
	defer ctrl.Finish()

	client := mocks.NewMockEthClient(ctrl)
	expectCall(client, ethprovider.ERC721ABI, testCollection, "ownerOf", packOutput(t, ethprovider.ERC721ABI, "ownerOf", common.HexToAddress(testOwner)), nil)

	reader := ethprovider.NewContractReader(domain.ChainPolygonAmoy, client)
	owner, err := reader.OwnerOf(context.Background(), domain.NewTokenIdentity(testCollection, "7"))
	require.NoError(t, err)
	assert.Equal(t, testOwner, owner)
}

func TestContractReader_RevertIsContractCallError(t *testing.T) {
	ctrl := gomock.NewController(t)
	defer ctrl.Finish()

	client := mocks.NewMockEthClient(ctrl)
	expectCall(client, ethprovider.ERC721ABI, testCollection, "ownerOf", nil, errors.New("execution reverted: ERC721: invalid token ID"))

	reader := ethprovider.NewContractReader(domain.ChainPolygonAmoy, client)
	_, err := reader.OwnerOf(context.Background(), domain.NewTokenIdentity(testCollection, "7"))
	require.Error(t, err)

	var contractErr *domain.ContractCallError
	require.True(t, errors.As(err, &contractErr))
	assert.Equal(t, "ownerOf", contractErr.Method)
	assert.Equal(t, "ERC721: invalid token ID", contractErr.Reason())
	assert.Equal(t, domain.ErrorKindContractCall, domain.Classify(err))
}

func TestContractReader_InvalidTokenID(t *testing.T) {
	ctrl := gomock.NewController(t)
	defer ctrl.Finish()

	reader := ethprovider.NewContractReader(domain.ChainPolygonAmoy, mocks.NewMockEthClient(ctrl))
	_, err := reader.OwnerOf(context.Background(), domain.TokenIdentity{Collection: testCollection, TokenID: "abc"})
	require.Error(t, err)
	assert.True(t, errors.Is(err, domain.ErrInvalidTokenID))
}

func TestContractReader_CollectionReads(t *testing.T) {
	ctrl := gomock.NewController(t)
	defer ctrl.Finish()

	client := mocks.NewMockEthClient(ctrl)
	expectCall(client, ethprovider.CollectionABI, testCollection, "owner", packOutput(t, ethprovider.CollectionABI, "owner", common.HexToAddress(testOwner)), nil)
	expectCall(client, ethprovider.CollectionABI, testCollection, "metadataUrl", packOutput(t, ethprovider.CollectionABI, "metadataUrl", "ipfs://QmCollection"), nil)
	expectCall(client, ethprovider.ERC1155ABI, testCollection, "totalItems", packOutput(t, ethprovider.ERC1155ABI, "totalItems", big.NewInt(12)), nil)

	reader := ethprovider.NewContractReader(domain.ChainPolygonAmoy, client)
	ctx := context.Background()

	owner, err := reader.CollectionOwner(ctx, testCollection)
	require.NoError(t, err)
	assert.Equal(t, testOwner, owner)

	uri, err := reader.CollectionMetadataURL(ctx, testCollection)
	require.NoError(t, err)
	assert.Equal(t, "ipfs://QmCollection", uri)

	supply, err := reader.TotalSupply(ctx, testCollection, domain.NFTTypeERC1155)
	require.NoError(t, err)
	assert.Equal(t, int64(12), supply.Int64())
}

func TestContractReader_OraclePrice(t *testing.T) {
	const (
		proxyAdmin     = "0x0000000000000000000000000000000000000a01"
		proxy          = "0x0000000000000000000000000000000000000a02"
		implementation = "0x0000000000000000000000000000000000000A03"
		aggregator     = "0x0000000000000000000000000000000000000a04"
	)

	ctrl := gomock.NewController(t)
	defer ctrl.Finish()

	client := mocks.NewMockEthClient(ctrl)
	expectCall(client, ethprovider.ProxyAdminABI, proxyAdmin, "getProxyImplementation", packOutput(t, ethprovider.ProxyAdminABI, "getProxyImplementation", common.HexToAddress(implementation)), nil)
	expectCall(client, ethprovider.MarketplaceABI, implementation, "getPrice", packOutput(t, ethprovider.MarketplaceABI, "getPrice", big.NewInt(85_000_000)), nil)

	reader := ethprovider.NewContractReader(domain.ChainPolygonAmoy, client)
	ctx := context.Background()

	marketplace, err := reader.ProxyImplementation(ctx, proxyAdmin, proxy)
	require.NoError(t, err)
	assert.True(t, domain.SameAddress(implementation, marketplace))

	price, err := reader.OraclePrice(ctx, marketplace, aggregator)
	require.NoError(t, err)
	assert.Equal(t, int64(85_000_000), price.Int64())
}

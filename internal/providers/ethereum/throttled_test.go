package ethereum_test

import (
	"context"
	"math/big"
	"testing"

	"github.com/golang/mock/gomock"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/aliveland/market-aggregator/internal/config"
	"github.com/aliveland/market-aggregator/internal/domain"
	ethprovider "github.com/aliveland/market-aggregator/internal/providers/ethereum"
	"github.com/aliveland/market-aggregator/internal/mocks"
	"github.com/aliveland/market-aggregator/internal/ratelimit"
)

func TestThrottledReader(t *testing.T) {
	ctrl := gomock.NewController(t)
	defer ctrl.Finish()

	proxy, err := ratelimit.NewProxy(config.RateLimiterConfig{
		MaxWorkers: 2,
		Providers: map[string]config.RateLimitConfig{
			ratelimit.ProviderRPC: {RequestsPerSecond: 100, Burst: 10},
		},
	})
	require.NoError(t, err)
	defer func() { _ = proxy.Close() }()

	inner := mocks.NewMockContractReader(ctrl)
	reader := ethprovider.NewThrottledReader(inner, proxy)

	id := domain.NewTokenIdentity(testCollection, "1")
	inner.EXPECT().OwnerOf(gomock.Any(), id).Return(testOwner, nil)
	inner.EXPECT().TotalSupply(gomock.Any(), testCollection, domain.NFTTypeERC721).Return(big.NewInt(12), nil)
	inner.EXPECT().Close()

	owner, err := reader.OwnerOf(context.Background(), id)
	require.NoError(t, err)
	assert.Equal(t, testOwner, owner)

	supply, err := reader.TotalSupply(context.Background(), testCollection, domain.NFTTypeERC721)
	require.NoError(t, err)
	assert.Equal(t, int64(12), supply.Int64())

	reader.Close()
}

func TestThrottledReader_ProxyError(t *testing.T) {
	ctrl := gomock.NewController(t)
	defer ctrl.Finish()

	proxy := mocks.NewMockRateLimitProxy(ctrl)
	inner := mocks.NewMockContractReader(ctrl)
	reader := ethprovider.NewThrottledReader(inner, proxy)

	proxy.EXPECT().
		Request(gomock.Any(), ratelimit.ProviderRPC, gomock.Any()).
		Return(nil, context.DeadlineExceeded)

	_, err := reader.CollectionOwner(context.Background(), testCollection)
	assert.ErrorIs(t, err, context.DeadlineExceeded)

	proxy.EXPECT().
		Request(gomock.Any(), ratelimit.ProviderRPC, gomock.Any()).
		DoAndReturn(func(ctx context.Context, _ string, fn ratelimit.RequestFunc) (interface{}, error) {
			return fn(ctx)
		})
	inner.EXPECT().CollectionMetadataURL(gomock.Any(), testCollection).Return("ipfs://QmCollection", nil)

	url, err := reader.CollectionMetadataURL(context.Background(), testCollection)
	require.NoError(t, err)
	assert.Equal(t, "ipfs://QmCollection", url)
}

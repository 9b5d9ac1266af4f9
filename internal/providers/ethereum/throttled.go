package ethereum

import (
	"context"
	"math/big"

	"github.com/aliveland/market-aggregator/internal/domain"
	"github.com/aliveland/market-aggregator/internal/ratelimit"
)

// throttledReader routes every contract read through the rpc rate limit
type throttledReader struct {
	reader ContractReader
	proxy  ratelimit.Proxy
}

// NewThrottledReader wraps reader so that its calls share the rpc provider budget
func NewThrottledReader(reader ContractReader, proxy ratelimit.Proxy) ContractReader {
	return &throttledReader{reader: reader, proxy: proxy}
}

func (t *throttledReader) MetadataPointer(ctx context.Context, id domain.TokenIdentity, nftType domain.NFTType) (string, error) {
	return ratelimit.Request(ctx, t.proxy, ratelimit.ProviderRPC, func(ctx context.Context) (string, error) {
		return t.reader.MetadataPointer(ctx, id, nftType)
	})
}

func (t *throttledReader) OwnerOf(ctx context.Context, id domain.TokenIdentity) (string, error) {
	return ratelimit.Request(ctx, t.proxy, ratelimit.ProviderRPC, func(ctx context.Context) (string, error) {
		return t.reader.OwnerOf(ctx, id)
	})
}

func (t *throttledReader) CollectionOwner(ctx context.Context, collection string) (string, error) {
	return ratelimit.Request(ctx, t.proxy, ratelimit.ProviderRPC, func(ctx context.Context) (string, error) {
		return t.reader.CollectionOwner(ctx, collection)
	})
}

func (t *throttledReader) CollectionMetadataURL(ctx context.Context, collection string) (string, error) {
	return ratelimit.Request(ctx, t.proxy, ratelimit.ProviderRPC, func(ctx context.Context) (string, error) {
		return t.reader.CollectionMetadataURL(ctx, collection)
	})
}

func (t *throttledReader) TotalSupply(ctx context.Context, collection string, nftType domain.NFTType) (*big.Int, error) {
	return ratelimit.Request(ctx, t.proxy, ratelimit.ProviderRPC, func(ctx context.Context) (*big.Int, error) {
		return t.reader.TotalSupply(ctx, collection, nftType)
	})
}

func (t *throttledReader) ProxyImplementation(ctx context.Context, proxyAdmin, proxy string) (string, error) {
	return ratelimit.Request(ctx, t.proxy, ratelimit.ProviderRPC, func(ctx context.Context) (string, error) {
		return t.reader.ProxyImplementation(ctx, proxyAdmin, proxy)
	})
}

func (t *throttledReader) OraclePrice(ctx context.Context, marketplace, aggregator string) (*big.Int, error) {
	return ratelimit.Request(ctx, t.proxy, ratelimit.ProviderRPC, func(ctx context.Context) (*big.Int, error) {
		return t.reader.OraclePrice(ctx, marketplace, aggregator)
	})
}

func (t *throttledReader) Close() {
	t.reader.Close()
}

package readmodel

import (
	"context"
	"fmt"

	"github.com/alitto/pond/v2"
	"github.com/shopspring/decimal"
	"go.uber.org/zap"

	"github.com/aliveland/market-aggregator/internal/config"
	"github.com/aliveland/market-aggregator/internal/domain"
	"github.com/aliveland/market-aggregator/internal/logger"
	"github.com/aliveland/market-aggregator/internal/providers/ethereum"
)

// QuoteLoader reads the USD price of every configured pay token from the marketplace oracle
type QuoteLoader struct {
	reader           ethereum.ContractReader
	pool             pond.ResultPool[*domain.PriceQuote]
	proxyAdmin       string
	marketplaceProxy string
	feeds            []config.PriceFeedConfig
}

// NewQuoteLoader creates a quote loader reading at most concurrency feeds at a time
func NewQuoteLoader(reader ethereum.ContractReader, chain config.ChainConfig, concurrency int) *QuoteLoader {
	if concurrency <= 0 {
		concurrency = 1
	}
	return &QuoteLoader{
		reader:           reader,
		pool:             pond.NewResultPool[*domain.PriceQuote](concurrency),
		proxyAdmin:       chain.ProxyAdmin,
		marketplaceProxy: chain.MarketplaceProxy,
		feeds:            chain.PriceFeeds,
	}
}

// Load resolves the marketplace implementation and reads each feed concurrently.
// A failing feed is logged and left out; Load fails only when no feed could be read.
func (l *QuoteLoader) Load(ctx context.Context) ([]domain.PriceQuote, error) {
	if len(l.feeds) == 0 {
		return []domain.PriceQuote{}, nil
	}

	marketplace, err := l.reader.ProxyImplementation(ctx, l.proxyAdmin, l.marketplaceProxy)
	if err != nil {
		return nil, fmt.Errorf("failed to resolve marketplace implementation: %w", err)
	}

	errs := make([]error, len(l.feeds))
	group := l.pool.NewGroup()
	for i, feed := range l.feeds {
		group.Submit(func() *domain.PriceQuote {
			raw, err := l.reader.OraclePrice(ctx, marketplace, feed.Aggregator)
			if err != nil {
				errs[i] = err
				logger.WarnCtx(ctx, "Failed to read price feed",
					zap.String("payToken", feed.PayToken),
					zap.String("aggregator", feed.Aggregator),
					zap.Error(err))
				return nil
			}
			return &domain.PriceQuote{
				PayToken: domain.NormalizeAddress(feed.PayToken),
				USD:      decimal.NewFromBigInt(raw, -domain.ORACLE_PRICE_DECIMALS),
			}
		})
	}

	results, err := group.Wait()
	if err != nil {
		return nil, fmt.Errorf("failed to read price feeds: %w", err)
	}

	quotes := make([]domain.PriceQuote, 0, len(results))
	for _, q := range results {
		if q != nil {
			quotes = append(quotes, *q)
		}
	}
	if len(quotes) == 0 {
		for _, e := range errs {
			if e != nil {
				return nil, fmt.Errorf("failed to read price feeds: %w", e)
			}
		}
	}

	logger.DebugCtx(ctx, "Loaded price quotes", zap.Int("count", len(quotes)))
	return quotes, nil
}

// Close stops the worker pool
func (l *QuoteLoader) Close() {
	l.pool.StopAndWait()
}

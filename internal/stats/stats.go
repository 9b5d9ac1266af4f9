package stats

import (
	"context"
	"fmt"
	"math/big"
	"sort"
	"time"

	"github.com/alitto/pond/v2"
	"github.com/shopspring/decimal"
	"github.com/sourcegraph/conc/pool"
	"go.uber.org/zap"

	"github.com/aliveland/market-aggregator/internal/adapter"
	"github.com/aliveland/market-aggregator/internal/dedup"
	"github.com/aliveland/market-aggregator/internal/domain"
	"github.com/aliveland/market-aggregator/internal/joiner"
	"github.com/aliveland/market-aggregator/internal/logger"
	"github.com/aliveland/market-aggregator/internal/metadata"
	"github.com/aliveland/market-aggregator/internal/price"
	"github.com/aliveland/market-aggregator/internal/providers/ethereum"
	"github.com/aliveland/market-aggregator/internal/providers/subgraph"
)

const day = 24 * time.Hour

// Service computes the market statistics views
type Service struct {
	subgraph   subgraph.Client
	reader     ethereum.ContractReader
	metadata   metadata.Fetcher
	joiner     *joiner.Joiner
	normalizer *price.Normalizer
	clock      adapter.Clock
	pool       pond.Pool
}

// NewService creates a statistics service. concurrency bounds the per-collection
// lookups of one request.
func NewService(
	subgraphClient subgraph.Client,
	reader ethereum.ContractReader,
	fetcher metadata.Fetcher,
	j *joiner.Joiner,
	normalizer *price.Normalizer,
	clock adapter.Clock,
	concurrency int,
) *Service {
	if concurrency <= 0 {
		concurrency = 5
	}
	return &Service{
		subgraph:   subgraphClient,
		reader:     reader,
		metadata:   fetcher,
		joiner:     j,
		normalizer: normalizer,
		clock:      clock,
		pool:       pond.NewPool(concurrency),
	}
}

// Close stops the worker pool
func (s *Service) Close() {
	s.pool.StopAndWait()
}

// CollectionStats computes volume, owners, floor price and item count of a collection
func (s *Service) CollectionStats(ctx context.Context, quotes *price.QuoteTable, collection string) (*domain.CollectionStats, error) {
	if !domain.IsValidAddress(collection) {
		return nil, fmt.Errorf("%w: %s", domain.ErrInvalidAddress, collection)
	}
	collection = domain.NormalizeAddress(collection)

	var (
		volumes   []domain.TradeVolume
		transfers []domain.TransferEvent
		listings  []domain.Listing
	)

	p := pool.New().WithContext(ctx).WithCancelOnError().WithFirstError()
	p.Go(func(ctx context.Context) (err error) {
		volumes, err = s.subgraph.TradeVolumes(ctx, collection)
		return err
	})
	p.Go(func(ctx context.Context) (err error) {
		transfers, err = s.subgraph.CollectionTransfers(ctx, collection, "")
		return err
	})
	p.Go(func(ctx context.Context) (err error) {
		listings, err = s.subgraph.Listings(ctx, subgraph.ListingFilter{Collection: collection})
		return err
	})
	if err := p.Wait(); err != nil {
		return nil, err
	}

	stats := &domain.CollectionStats{
		Collection:   collection,
		VolumeTraded: decimal.Zero,
		Owners:       dedup.DistinctOwners(transfers),
		FloorPrice:   decimal.Zero,
	}

	usd := decimal.Zero
	for _, v := range volumes {
		usd = usd.Add(quotes.ToUSD(s.normalizer.ToDisplay(v.Value, v.PayToken), v.PayToken))
	}
	stats.VolumeTraded = quotes.ToNative(usd)

	var floorUSD decimal.Decimal
	for _, l := range dedup.Listings(listings) {
		display := s.normalizer.ToDisplay(l.PricePerItem, l.PayToken)
		value := quotes.ToUSD(display, l.PayToken)
		if !value.IsPositive() {
			continue
		}
		if stats.FloorPayToken == "" || value.LessThan(floorUSD) {
			floorUSD = value
			stats.FloorPrice = display
			stats.FloorPayToken = domain.NormalizeAddress(l.PayToken)
		}
	}

	// the item count is informational
	if items, err := s.items(ctx, collection); err != nil {
		logger.WarnCtx(ctx, "Failed to read collection supply", zap.String("collection", collection), zap.Error(err))
	} else {
		stats.Items = items
	}

	return stats, nil
}

func (s *Service) items(ctx context.Context, collection string) (int, error) {
	nftType, err := s.joiner.NFTType(ctx, collection)
	if err != nil {
		return 0, err
	}
	supply, err := s.reader.TotalSupply(ctx, collection, nftType)
	if err != nil {
		return 0, err
	}
	if supply == nil || !supply.IsInt64() {
		return 0, nil
	}
	return int(supply.Int64()), nil
}

type volume struct {
	collection string
	price      decimal.Decimal
	timestamp  int64
}

// Ranking aggregates completed sales and auctions per collection. days = 0
// ranks all time; otherwise sales within the last days count as current and
// the preceding period of the same length as previous. Amounts are native units.
func (s *Service) Ranking(ctx context.Context, quotes *price.QuoteTable, days int) ([]domain.RankingEntry, error) {
	if days < 0 {
		return nil, fmt.Errorf("days must not be negative: %d", days)
	}

	now := s.clock.Now()
	var since, current int64
	if days > 0 {
		since = now.Add(-2 * time.Duration(days) * day).Unix()
		current = now.Add(-time.Duration(days) * day).Unix()
	}

	var (
		solds   []domain.ItemSold
		results []domain.AuctionResult
	)
	p := pool.New().WithContext(ctx).WithCancelOnError().WithFirstError()
	p.Go(func(ctx context.Context) (err error) {
		solds, err = s.subgraph.ItemSolds(ctx, since)
		return err
	})
	p.Go(func(ctx context.Context) (err error) {
		results, err = s.subgraph.AuctionResults(ctx, since)
		return err
	})
	if err := p.Wait(); err != nil {
		return nil, err
	}

	trades := make([]volume, 0, len(solds)+len(results))
	for _, e := range solds {
		trades = append(trades, volume{
			collection: domain.NormalizeAddress(e.Collection),
			price:      s.toNative(quotes, e.PricePerItem, e.PayToken),
			timestamp:  e.BlockTimestamp,
		})
	}
	for _, e := range results {
		trades = append(trades, volume{
			collection: domain.NormalizeAddress(e.Collection),
			price:      s.toNative(quotes, e.WinningBid, e.PayToken),
			timestamp:  e.BlockTimestamp,
		})
	}

	entries := aggregate(trades, current)
	s.attachNames(ctx, entries)
	return entries, nil
}

// toNative values a raw amount of a pay token in native units rounded to 2 decimals
func (s *Service) toNative(quotes *price.QuoteTable, raw *big.Int, payToken string) decimal.Decimal {
	display := s.normalizer.ToDisplay(raw, payToken)
	return quotes.ToNative(quotes.ToUSD(display, payToken))
}

// aggregate folds trades into ranking entries. A trade is current when its
// timestamp is after current (current = 0 makes every trade current).
func aggregate(trades []volume, current int64) []domain.RankingEntry {
	byCollection := make(map[string]*domain.RankingEntry)
	order := make([]string, 0)

	for _, t := range trades {
		entry, ok := byCollection[t.collection]
		if !ok {
			entry = &domain.RankingEntry{
				Collection:  t.collection,
				Lowest:      decimal.Zero,
				Volumes:     decimal.Zero,
				PrevVolumes: decimal.Zero,
			}
			byCollection[t.collection] = entry
			order = append(order, t.collection)
		}

		if t.timestamp > current {
			if entry.Count == 0 || t.price.LessThan(entry.Lowest) {
				entry.Lowest = t.price
			}
			entry.Count++
			entry.Volumes = entry.Volumes.Add(t.price)
		} else {
			entry.PrevVolumes = entry.PrevVolumes.Add(t.price)
		}
	}

	entries := make([]domain.RankingEntry, 0, len(order))
	for _, c := range order {
		entries = append(entries, *byCollection[c])
	}
	sort.SliceStable(entries, func(i, j int) bool {
		return entries[i].Volumes.GreaterThan(entries[j].Volumes)
	})
	return entries
}

// attachNames reads the collection names from their metadata documents. A
// collection whose name cannot be read keeps an empty name.
func (s *Service) attachNames(ctx context.Context, entries []domain.RankingEntry) {
	group := s.pool.NewGroup()
	for i := range entries {
		entry := &entries[i]
		group.Submit(func() {
			pointer, err := s.reader.CollectionMetadataURL(ctx, entry.Collection)
			if err == nil {
				var meta *metadata.CollectionMetadata
				if meta, err = s.metadata.Collection(ctx, pointer); err == nil {
					entry.Name = meta.Name
					return
				}
			}
			logger.WarnCtx(ctx, "Failed to read collection name",
				zap.String("collection", entry.Collection),
				zap.Error(err))
		})
	}
	if err := group.Wait(); err != nil {
		logger.WarnCtx(ctx, "Collection name lookup interrupted", zap.Error(err))
	}
}

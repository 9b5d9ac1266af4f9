package stats

import (
	"context"
	"sort"

	"github.com/sourcegraph/conc/iter"
	"go.uber.org/zap"

	"github.com/aliveland/market-aggregator/internal/dedup"
	"github.com/aliveland/market-aggregator/internal/domain"
	"github.com/aliveland/market-aggregator/internal/joiner"
	"github.com/aliveland/market-aggregator/internal/logger"
	"github.com/aliveland/market-aggregator/internal/pipeline"
	"github.com/aliveland/market-aggregator/internal/readmodel"
)

// ActivityPage is one page of the activity feed
type ActivityPage struct {
	Items      []domain.ActivityItem `json:"items"`
	Page       int                   `json:"page"`
	PageSize   int                   `json:"page_size"`
	Total      int                   `json:"total"`
	TotalPages int                   `json:"total_pages"`
}

// Activity returns one page of the trade history, newest first. collection
// may be empty for the marketplace wide feed. Items whose metadata cannot be
// read keep an empty name and image.
func (s *Service) Activity(ctx context.Context, collection string, page, size int) (*ActivityPage, error) {
	if collection != "" {
		if !domain.IsValidAddress(collection) {
			return nil, domain.ErrInvalidAddress
		}
		collection = domain.NormalizeAddress(collection)
	}

	histories, err := s.subgraph.Histories(ctx, collection, "")
	if err != nil {
		return nil, err
	}
	sort.SliceStable(histories, func(a, b int) bool {
		return histories[a].BlockTimestamp > histories[b].BlockTimestamp
	})

	page, size = pipeline.Normalize(page, size)
	start, end := pipeline.Window(len(histories), page, size)

	mapper := iter.Mapper[domain.HistoryEvent, domain.ActivityItem]{MaxGoroutines: pipeline.DefaultConcurrency}
	items := mapper.Map(histories[start:end], func(h *domain.HistoryEvent) domain.ActivityItem {
		item := domain.ActivityItem{
			Collection: domain.NormalizeAddress(h.Collection),
			TokenID:    h.TokenID,
			EventType:  h.EventType,
			Price:      s.normalizer.ToDisplay(h.PricePerItem, h.PayToken),
			PayToken:   domain.NormalizeAddress(h.PayToken),
			From:       domain.NormalizeAddress(h.From),
			To:         domain.NormalizeAddress(h.To),
			Date:       h.BlockTimestamp,
		}
		meta, err := s.joiner.TokenMetadata(ctx, domain.NewTokenIdentity(h.Collection, h.TokenID), "")
		if err != nil {
			logger.DebugCtx(ctx, "Activity item without metadata",
				zap.String("collection", h.Collection),
				zap.String("tokenID", h.TokenID),
				zap.Error(err))
			return item
		}
		item.Name = meta.Name
		item.Image = meta.Image
		return item
	})

	return &ActivityPage{
		Items:      items,
		Page:       page,
		PageSize:   size,
		Total:      len(histories),
		TotalPages: pipeline.TotalPages(len(histories), size),
	}, nil
}

// Recommended returns the cards of the most traded collections
func (s *Service) Recommended(ctx context.Context, rm *readmodel.ReadModel) ([]domain.CollectionInfo, error) {
	volumes, err := s.subgraph.TopTradeVolumes(ctx, domain.RECOMMENDED_COLLECTIONS)
	if err != nil {
		return nil, err
	}

	unique := dedup.By(volumes, func(v domain.TradeVolume) string {
		return domain.NormalizeAddress(v.Collection)
	})
	addresses := make([]string, len(unique))
	for i, v := range unique {
		addresses[i] = v.Collection
	}
	return s.cards(ctx, rm, addresses), nil
}

// Search returns the cards of the collections whose name contains term
func (s *Service) Search(ctx context.Context, rm *readmodel.ReadModel, term string) ([]domain.CollectionInfo, error) {
	created, err := s.subgraph.SearchCollections(ctx, term)
	if err != nil {
		return nil, err
	}

	addresses := make([]string, len(created))
	for i, c := range created {
		addresses[i] = c.Collection
	}
	return s.cards(ctx, rm, addresses), nil
}

// CreatedBy returns the cards of the collections deployed by creator
func (s *Service) CreatedBy(ctx context.Context, rm *readmodel.ReadModel, creator string) ([]domain.CollectionInfo, error) {
	if !domain.IsValidAddress(creator) {
		return nil, domain.ErrInvalidAddress
	}
	created, err := s.subgraph.ContractsByCreator(ctx, creator)
	if err != nil {
		return nil, err
	}

	addresses := make([]string, len(created))
	for i, c := range created {
		addresses[i] = c.Collection
	}
	return s.cards(ctx, rm, addresses), nil
}

// cards builds the collection cards in input order, leaving out failures
func (s *Service) cards(ctx context.Context, rm *readmodel.ReadModel, addresses []string) []domain.CollectionInfo {
	results := make([]*domain.CollectionInfo, len(addresses))

	group := s.pool.NewGroup()
	for i, address := range addresses {
		group.Submit(func() {
			info, err := s.joiner.BuildCollection(ctx, rm, address, joiner.CollectionCard)
			if err != nil {
				logger.WarnCtx(ctx, "Skipped collection card", zap.String("collection", address), zap.Error(err))
				return
			}
			results[i] = info
		})
	}
	if err := group.Wait(); err != nil {
		logger.WarnCtx(ctx, "Collection cards interrupted", zap.Error(err))
	}

	cards := make([]domain.CollectionInfo, 0, len(results))
	for _, info := range results {
		if info != nil {
			cards = append(cards, *info)
		}
	}
	return cards
}

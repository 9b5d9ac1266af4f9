package joiner

import (
	"context"
	"fmt"

	"go.uber.org/zap"

	"github.com/aliveland/market-aggregator/internal/dedup"
	"github.com/aliveland/market-aggregator/internal/domain"
	"github.com/aliveland/market-aggregator/internal/logger"
	"github.com/aliveland/market-aggregator/internal/readmodel"
	"github.com/aliveland/market-aggregator/internal/uri"
)

// CollectionView selects the image presets of a collection record
type CollectionView int

const (
	// CollectionPage is the collection header
	CollectionPage CollectionView = iota
	// CollectionCard is the compact card shown in lists
	CollectionCard
)

// BuildCollection assembles the display record of a collection
func (j *Joiner) BuildCollection(ctx context.Context, rm *readmodel.ReadModel, collection string, view CollectionView) (*domain.CollectionInfo, error) {
	if !domain.IsValidAddress(collection) {
		return nil, fmt.Errorf("%w: %s", domain.ErrInvalidAddress, collection)
	}
	collection = domain.NormalizeAddress(collection)

	created, err := j.subgraph.ContractCreated(ctx, collection)
	if err != nil {
		return nil, err
	}
	if created == nil {
		return nil, fmt.Errorf("%w: collection %s", domain.ErrNotFound, collection)
	}
	j.nftTypes.SetDefault(collection, created.NFTType)

	pointer, err := j.reader.CollectionMetadataURL(ctx, collection)
	if err != nil {
		return nil, err
	}
	meta, err := j.metadata.Collection(ctx, pointer)
	if err != nil {
		return nil, err
	}

	info := &domain.CollectionInfo{
		Collection:  collection,
		NFTType:     created.NFTType,
		Name:        meta.Name,
		Symbol:      meta.Symbol,
		Description: meta.Description,
		Creator:     domain.NormalizeAddress(created.Creator),
		Amount:      "0",
	}
	if info.Name == "" {
		info.Name = created.Name
	}

	switch view {
	case CollectionCard:
		info.Banner = j.image(meta.Banner, uri.SizeCollectionBanner)
		info.Icon = j.image(meta.Icon, uri.SizeCollectionIcon)
	default:
		info.Banner = j.image(meta.Banner, uri.SizeCollectionPageBanner)
		info.Icon = j.image(meta.Icon, uri.SizeCollectionPageIcon)
	}

	supply, err := j.reader.TotalSupply(ctx, collection, created.NFTType)
	if err != nil {
		logger.WarnCtx(ctx, "Failed to read collection supply", zap.String("collection", collection), zap.Error(err))
	} else if supply != nil {
		info.Amount = supply.String()
	}

	creator := rm.Users.Display(info.Creator)
	info.CreatorLabel = creator.Name
	info.Intro = creator.Intro

	return info, nil
}

// Gallery returns up to size of the most recently transferred other tokens of
// the collection. Tokens that fail to join are left out.
func (j *Joiner) Gallery(ctx context.Context, rm *readmodel.ReadModel, id domain.TokenIdentity, size int) ([]domain.ViewRecord, error) {
	transfers, err := j.subgraph.CollectionTransfers(ctx, id.Collection, id.TokenID)
	if err != nil {
		return nil, err
	}

	records := make([]domain.ViewRecord, 0, size)
	for _, t := range dedup.Unique(transfers) {
		if len(records) >= size {
			break
		}
		if t.Identity() == id {
			continue
		}
		transfer := t
		record, err := j.BuildViewRecord(ctx, rm, t.Identity(), JoinInput{Transfer: &transfer, Mode: ModeList})
		if err != nil {
			if ctx.Err() != nil {
				return nil, ctx.Err()
			}
			continue
		}
		records = append(records, *record)
	}

	return records, nil
}

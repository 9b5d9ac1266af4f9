package joiner

import (
	"context"
	"errors"
	"fmt"

	"github.com/patrickmn/go-cache"
	"go.uber.org/zap"

	"github.com/aliveland/market-aggregator/internal/adapter"
	"github.com/aliveland/market-aggregator/internal/domain"
	"github.com/aliveland/market-aggregator/internal/logger"
	"github.com/aliveland/market-aggregator/internal/metadata"
	"github.com/aliveland/market-aggregator/internal/price"
	"github.com/aliveland/market-aggregator/internal/providers/ethereum"
	"github.com/aliveland/market-aggregator/internal/providers/subgraph"
	"github.com/aliveland/market-aggregator/internal/readmodel"
	"github.com/aliveland/market-aggregator/internal/uri"
)

// Mode selects the failure policy of a join
type Mode int

const (
	// ModeList drops a token whose lookups failed
	ModeList Mode = iota
	// ModeDetail returns a placeholder record with an unknown owner
	ModeDetail
)

// JoinInput is the subgraph context known for a token before the join
type JoinInput struct {
	// Transfer is the latest transfer of the token, if the caller iterates transfers
	Transfer *domain.TransferEvent
	// NFTType skips the type lookup when set
	NFTType domain.NFTType
	// Listing is the active listing of the token; nil means not listed
	Listing *domain.Listing
	Mode    Mode
}

// Joiner assembles display records from the chain, the subgraph, off-chain
// metadata and the session read model
type Joiner struct {
	reader     ethereum.ContractReader
	subgraph   subgraph.Client
	metadata   metadata.Fetcher
	gateway    *uri.Gateway
	normalizer *price.Normalizer
	clock      adapter.Clock
	nftTypes   *cache.Cache
}

// New creates a joiner
func New(
	reader ethereum.ContractReader,
	subgraphClient subgraph.Client,
	fetcher metadata.Fetcher,
	gateway *uri.Gateway,
	normalizer *price.Normalizer,
	clock adapter.Clock,
) *Joiner {
	return &Joiner{
		reader:     reader,
		subgraph:   subgraphClient,
		metadata:   fetcher,
		gateway:    gateway,
		normalizer: normalizer,
		clock:      clock,
		// a deployed contract never changes its standard
		nftTypes: cache.New(cache.NoExpiration, 0),
	}
}

// NFTType returns the token standard of a collection as recorded by the factory
func (j *Joiner) NFTType(ctx context.Context, collection string) (domain.NFTType, error) {
	collection = domain.NormalizeAddress(collection)
	if cached, ok := j.nftTypes.Get(collection); ok {
		return cached.(domain.NFTType), nil
	}

	created, err := j.subgraph.ContractCreated(ctx, collection)
	if err != nil {
		return "", err
	}
	if created == nil || created.NFTType == "" {
		return "", fmt.Errorf("%w: %s", domain.ErrUnknownNFTType, collection)
	}

	j.nftTypes.SetDefault(collection, created.NFTType)
	return created.NFTType, nil
}

// TokenMetadata resolves only the off-chain metadata of a token. The image is
// rewritten with the list preset.
func (j *Joiner) TokenMetadata(ctx context.Context, id domain.TokenIdentity, nftType domain.NFTType) (*metadata.TokenMetadata, error) {
	if nftType == "" {
		var err error
		if nftType, err = j.NFTType(ctx, id.Collection); err != nil {
			return nil, err
		}
	}

	pointer, err := j.reader.MetadataPointer(ctx, id, nftType)
	if err != nil {
		return nil, err
	}
	meta, err := j.metadata.Token(ctx, pointer, id.TokenID)
	if err != nil {
		return nil, err
	}

	out := *meta
	out.Image = j.image(meta.Image, uri.SizeItemImage)
	return &out, nil
}

// image rewrites ipfs:// pointers through the gateway and passes anything else through
func (j *Joiner) image(pointer string, size uri.ImageSize) string {
	if j.gateway != nil && uri.IsIPFS(pointer) {
		return j.gateway.Image(pointer, size)
	}
	return pointer
}

// BuildViewRecord joins one token across every source.
// In ModeList any lookup failure is returned and the token should be skipped.
// In ModeDetail the failure is returned together with a placeholder record.
func (j *Joiner) BuildViewRecord(ctx context.Context, rm *readmodel.ReadModel, id domain.TokenIdentity, in JoinInput) (*domain.ViewRecord, error) {
	record := &domain.ViewRecord{
		Collection: id.Collection,
		TokenID:    id.TokenID,
		NFTType:    in.NFTType,
	}
	if record.NFTType == "" && in.Transfer != nil {
		record.NFTType = in.Transfer.NFTType
	}

	err := j.join(ctx, rm, id, in, record)
	if err != nil {
		logger.WarnCtx(ctx, "Failed to join token",
			zap.String("identity", id.String()),
			zap.Error(err))

		if in.Mode == ModeList {
			return nil, err
		}
		record = j.placeholder(rm, id, in, record.NFTType)
		return record, err
	}

	return record, nil
}

func (j *Joiner) join(ctx context.Context, rm *readmodel.ReadModel, id domain.TokenIdentity, in JoinInput, record *domain.ViewRecord) error {
	// 1. token standard
	if record.NFTType == "" {
		nftType, err := j.NFTType(ctx, id.Collection)
		if err != nil {
			return err
		}
		record.NFTType = nftType
	}

	// 2. off-chain metadata
	pointer, err := j.reader.MetadataPointer(ctx, id, record.NFTType)
	if err != nil {
		return err
	}
	meta, err := j.metadata.Token(ctx, pointer, id.TokenID)
	if err != nil {
		return err
	}
	record.Name = meta.Name
	record.Description = meta.Description
	record.MediaType = meta.MediaType
	record.Royalty = meta.Royalty
	if in.Mode == ModeDetail {
		record.Image = j.image(meta.Image, uri.SizeOriginal)
	} else {
		record.Image = j.image(meta.Image, uri.SizeItemImage)
	}

	// 3. current owner, the chain is authoritative
	owner, err := j.owner(ctx, id, record.NFTType, in)
	if err != nil {
		return err
	}
	record.Owner = owner

	// 4. creator, tolerated when missing
	record.Creator = j.creator(ctx, id)

	// 5. display names
	j.applyUsers(rm, record)

	// 6. pricing
	j.applyListing(record, in.Listing)

	// 7. favorite flag
	record.IsFavor = rm.Favorites.Contains(id)

	return nil
}

func (j *Joiner) owner(ctx context.Context, id domain.TokenIdentity, nftType domain.NFTType, in JoinInput) (string, error) {
	if nftType == domain.NFTTypeERC721 {
		return j.reader.OwnerOf(ctx, id)
	}

	// multi-edition tokens have no single owner on chain
	switch {
	case in.Transfer != nil && !domain.IsZeroAddress(in.Transfer.To):
		return domain.NormalizeAddress(in.Transfer.To), nil
	case in.Listing != nil:
		return domain.NormalizeAddress(in.Listing.Owner), nil
	}

	transfers, err := j.subgraph.TokenTransfers(ctx, id)
	if err != nil {
		return "", err
	}
	if len(transfers) == 0 {
		return "", nil
	}
	return domain.NormalizeAddress(transfers[0].To), nil
}

func (j *Joiner) creator(ctx context.Context, id domain.TokenIdentity) string {
	mint, err := j.subgraph.MintTransfer(ctx, id)
	if err == nil && mint != nil {
		return domain.NormalizeAddress(mint.To)
	}
	if err != nil {
		logger.DebugCtx(ctx, "Mint transfer lookup failed", zap.String("identity", id.String()), zap.Error(err))
	}

	owner, err := j.reader.CollectionOwner(ctx, id.Collection)
	if err != nil {
		logger.DebugCtx(ctx, "Collection owner lookup failed", zap.String("collection", id.Collection), zap.Error(err))
		return ""
	}
	return owner
}

func (j *Joiner) applyUsers(rm *readmodel.ReadModel, record *domain.ViewRecord) {
	if record.Creator != "" {
		creator := rm.Users.Display(record.Creator)
		record.CreatorName = creator.Name
		record.CreatorImage = creator.Image
		record.CreatorIntro = creator.Intro
	}
	if record.Owner != "" {
		owner := rm.Users.Display(record.Owner)
		record.OwnerName = owner.Name
		record.OwnerImage = owner.Image
	}
}

func (j *Joiner) applyListing(record *domain.ViewRecord, listing *domain.Listing) {
	if listing == nil {
		return
	}
	record.Listed = true
	record.PayToken = domain.NormalizeAddress(listing.PayToken)
	record.Price = j.normalizer.ToDisplay(listing.PricePerItem, listing.PayToken)
	record.Quantity = listing.Quantity
	record.StartingTime = listing.StartingTime
}

func (j *Joiner) placeholder(rm *readmodel.ReadModel, id domain.TokenIdentity, in JoinInput, nftType domain.NFTType) *domain.ViewRecord {
	record := &domain.ViewRecord{
		Collection:  id.Collection,
		TokenID:     id.TokenID,
		NFTType:     nftType,
		Name:        "#" + id.TokenID,
		Placeholder: true,
	}
	j.applyListing(record, in.Listing)
	record.IsFavor = rm.Favorites.Contains(id)
	return record
}

// IsSkippable reports whether a join error only affects the token it was raised for
func IsSkippable(err error) bool {
	return err != nil && !errors.Is(err, context.Canceled) && !errors.Is(err, context.DeadlineExceeded)
}

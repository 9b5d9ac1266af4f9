package joiner_test

import (
	"context"
	"errors"
	"math/big"
	"os"
	"testing"
	"time"

	"github.com/golang/mock/gomock"
	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/aliveland/market-aggregator/internal/adapter"
	"github.com/aliveland/market-aggregator/internal/domain"
	"github.com/aliveland/market-aggregator/internal/joiner"
	"github.com/aliveland/market-aggregator/internal/logger"
	"github.com/aliveland/market-aggregator/internal/metadata"
	"github.com/aliveland/market-aggregator/internal/mocks"
	"github.com/aliveland/market-aggregator/internal/price"
	"github.com/aliveland/market-aggregator/internal/providers/subgraph"
	"github.com/aliveland/market-aggregator/internal/readmodel"
	"github.com/aliveland/market-aggregator/internal/uri"
)

const (
	creator    = "0x5aAeb6053F3E94C9b9A09f33669435E7Ef1BeAed"
	buyer      = "0xfB6916095ca1df60bB79Ce92cE3Ea74c37c5d359"
	collection = "0xdbF03B407c01E7cD3CBea99509d93f8DDDC8C6FB"
	usdt       = "0xD1220A0cf47c7B9Be7A2E6BA89F429762e7b9aDb"
	wmatic     = "0x23618e81E3f5cdF7f54C3d65f7FBc0aBf5B21E8f"
	pointer    = "ipfs://QmMeta/1.json"
)

func TestMain(m *testing.M) {
	// Initialize logger for tests
	err := logger.Initialize(logger.Config{
		Debug: false,
	})
	if err != nil {
		panic(err)
	}

	code := m.Run()
	os.Exit(code)
}

type fixture struct {
	reader   *mocks.MockContractReader
	subgraph *mocks.MockSubgraphClient
	metadata *mocks.MockMetadataFetcher
	now      time.Time
	joiner   *joiner.Joiner
	rm       *readmodel.ReadModel
}

func newFixture(t *testing.T) *fixture {
	ctrl := gomock.NewController(t)
	t.Cleanup(ctrl.Finish)

	f := &fixture{
		reader:   mocks.NewMockContractReader(ctrl),
		subgraph: mocks.NewMockSubgraphClient(ctrl),
		metadata: mocks.NewMockMetadataFetcher(ctrl),
		now:      time.Date(2026, 5, 1, 0, 0, 0, 0, time.UTC),
	}
	gateway := uri.NewGateway("https://gateway.example/ipfs/", "key")
	f.joiner = joiner.New(f.reader, f.subgraph, f.metadata, gateway, price.NewNormalizer([]string{usdt}), adapter.FixedClock{At: f.now})

	users := readmodel.NewUserDirectory(gateway, []domain.UserProfile{{Address: creator, UserName: "maker"}})
	f.rm = readmodel.New(buyer, users, nil, nil)
	return f
}

func (f *fixture) expectMetadata(id domain.TokenIdentity, nftType domain.NFTType) {
	f.reader.EXPECT().MetadataPointer(gomock.Any(), id, nftType).Return(pointer, nil)
	f.metadata.EXPECT().Token(gomock.Any(), pointer, id.TokenID).Return(&metadata.TokenMetadata{
		Name:        "Sunrise",
		Description: "first light",
		Image:       "ipfs://QmImage",
		MediaType:   domain.MediaTypeImage,
		Royalty:     5,
	}, nil)
}

func TestBuildViewRecord_MintedAndListed(t *testing.T) {
	f := newFixture(t)
	id := domain.NewTokenIdentity(collection, "1")

	mint := &domain.TransferEvent{Collection: collection, TokenID: "1", NFTType: domain.NFTTypeERC721, From: domain.ETHEREUM_ZERO_ADDRESS, To: creator}
	f.expectMetadata(id, domain.NFTTypeERC721)
	f.reader.EXPECT().OwnerOf(gomock.Any(), id).Return(creator, nil)
	f.subgraph.EXPECT().MintTransfer(gomock.Any(), id).Return(mint, nil)

	listing := &domain.Listing{
		Collection:   collection,
		TokenID:      "1",
		Owner:        creator,
		Quantity:     1,
		PayToken:     usdt,
		PricePerItem: big.NewInt(1_500_000),
		StartingTime: 1700000000,
	}

	record, err := f.joiner.BuildViewRecord(context.Background(), f.rm, id, joiner.JoinInput{Transfer: mint, Listing: listing})
	require.NoError(t, err)

	assert.True(t, decimal.RequireFromString("1.5").Equal(record.Price))
	assert.Equal(t, creator, record.Creator)
	assert.Equal(t, creator, record.Owner)
	assert.Equal(t, "maker", record.CreatorName)
	assert.Equal(t, "maker", record.OwnerName)
	assert.False(t, record.IsFavor)
	assert.True(t, record.Listed)
	assert.Equal(t, usdt, record.PayToken)
	assert.Equal(t, int64(1), record.Quantity)
	assert.Equal(t, int64(1700000000), record.StartingTime)
	assert.Equal(t, "Sunrise", record.Name)
	assert.Equal(t, domain.MediaTypeImage, record.MediaType)
	assert.Equal(t, float64(5), record.Royalty)
	assert.Equal(t, "https://gateway.example/ipfs/QmImage?pinataGatewayToken=key&img-width=300&img-height=300&img-fit=scale-down", record.Image)
}

func TestBuildViewRecord_NotListed(t *testing.T) {
	f := newFixture(t)
	id := domain.NewTokenIdentity(collection, "2")
	f.rm.Favorites.Set(id, true)

	f.expectMetadata(id, domain.NFTTypeERC721)
	f.reader.EXPECT().OwnerOf(gomock.Any(), id).Return(buyer, nil)
	f.subgraph.EXPECT().MintTransfer(gomock.Any(), id).Return(nil, nil)
	f.reader.EXPECT().CollectionOwner(gomock.Any(), collection).Return(creator, nil)

	record, err := f.joiner.BuildViewRecord(context.Background(), f.rm, id, joiner.JoinInput{NFTType: domain.NFTTypeERC721})
	require.NoError(t, err)

	assert.False(t, record.Listed)
	assert.True(t, record.Price.IsZero())
	assert.Equal(t, "", record.PayToken)
	assert.Equal(t, creator, record.Creator)
	assert.Equal(t, buyer, record.Owner)
	assert.Equal(t, "0xfB69...d359", record.OwnerName)
	assert.True(t, record.IsFavor)
}

func TestBuildViewRecord_MissingCreatorIsTolerated(t *testing.T) {
	f := newFixture(t)
	id := domain.NewTokenIdentity(collection, "3")

	f.expectMetadata(id, domain.NFTTypeERC721)
	f.reader.EXPECT().OwnerOf(gomock.Any(), id).Return(buyer, nil)
	f.subgraph.EXPECT().MintTransfer(gomock.Any(), id).Return(nil, errors.New("subgraph down"))
	f.reader.EXPECT().CollectionOwner(gomock.Any(), collection).Return("", domain.NewContractCallError(collection, "owner", errors.New("execution reverted")))

	record, err := f.joiner.BuildViewRecord(context.Background(), f.rm, id, joiner.JoinInput{NFTType: domain.NFTTypeERC721})
	require.NoError(t, err)
	assert.Equal(t, "", record.Creator)
	assert.Equal(t, "", record.CreatorName)
}

func TestBuildViewRecord_ERC1155OwnerFromTransfer(t *testing.T) {
	f := newFixture(t)
	id := domain.NewTokenIdentity(collection, "4")

	transfer := &domain.TransferEvent{Collection: collection, TokenID: "4", NFTType: domain.NFTTypeERC1155, From: creator, To: buyer}
	f.expectMetadata(id, domain.NFTTypeERC1155)
	f.subgraph.EXPECT().MintTransfer(gomock.Any(), id).Return(&domain.TransferEvent{From: domain.ETHEREUM_ZERO_ADDRESS, To: creator}, nil)

	record, err := f.joiner.BuildViewRecord(context.Background(), f.rm, id, joiner.JoinInput{Transfer: transfer})
	require.NoError(t, err)
	assert.Equal(t, domain.NFTTypeERC1155, record.NFTType)
	assert.Equal(t, buyer, record.Owner)
}

func TestBuildViewRecord_TypeLookupIsCached(t *testing.T) {
	f := newFixture(t)

	f.subgraph.EXPECT().ContractCreated(gomock.Any(), collection).Return(&domain.ContractCreated{Collection: collection, NFTType: domain.NFTTypeERC721}, nil).Times(1)
	for _, tokenID := range []string{"5", "6"} {
		id := domain.NewTokenIdentity(collection, tokenID)
		f.expectMetadata(id, domain.NFTTypeERC721)
		f.reader.EXPECT().OwnerOf(gomock.Any(), id).Return(creator, nil)
		f.subgraph.EXPECT().MintTransfer(gomock.Any(), id).Return(&domain.TransferEvent{To: creator}, nil)
	}

	for _, tokenID := range []string{"5", "6"} {
		record, err := f.joiner.BuildViewRecord(context.Background(), f.rm, domain.NewTokenIdentity(collection, tokenID), joiner.JoinInput{})
		require.NoError(t, err)
		assert.Equal(t, domain.NFTTypeERC721, record.NFTType)
	}
}

func TestBuildViewRecord_FailurePolicy(t *testing.T) {
	listing := &domain.Listing{Collection: collection, TokenID: "7", Owner: creator, PayToken: wmatic, PricePerItem: big.NewInt(2e18), Quantity: 1}

	t.Run("list mode drops the token", func(t *testing.T) {
		f := newFixture(t)
		id := domain.NewTokenIdentity(collection, "7")
		f.reader.EXPECT().MetadataPointer(gomock.Any(), id, domain.NFTTypeERC721).Return("", domain.NewContractCallError(collection, "tokenURI", errors.New("execution reverted: reason: nonexistent token")))

		record, err := f.joiner.BuildViewRecord(context.Background(), f.rm, id, joiner.JoinInput{NFTType: domain.NFTTypeERC721, Listing: listing, Mode: joiner.ModeList})
		require.Error(t, err)
		assert.Nil(t, record)
		assert.Equal(t, domain.ErrorKindContractCall, domain.Classify(err))
	})

	t.Run("detail mode returns a placeholder", func(t *testing.T) {
		f := newFixture(t)
		id := domain.NewTokenIdentity(collection, "7")
		f.reader.EXPECT().MetadataPointer(gomock.Any(), id, domain.NFTTypeERC721).Return(pointer, nil)
		f.metadata.EXPECT().Token(gomock.Any(), pointer, "7").Return(nil, &domain.NetworkError{Op: "GET", URL: pointer})

		record, err := f.joiner.BuildViewRecord(context.Background(), f.rm, id, joiner.JoinInput{NFTType: domain.NFTTypeERC721, Listing: listing, Mode: joiner.ModeDetail})
		require.Error(t, err)
		require.NotNil(t, record)
		assert.True(t, record.Placeholder)
		assert.Equal(t, "", record.Owner)
		assert.Equal(t, id, record.Identity())
		assert.True(t, decimal.NewFromInt(2).Equal(record.Price))
	})

	t.Run("unknown collection type", func(t *testing.T) {
		f := newFixture(t)
		id := domain.NewTokenIdentity(collection, "7")
		f.subgraph.EXPECT().ContractCreated(gomock.Any(), collection).Return(nil, nil)

		_, err := f.joiner.BuildViewRecord(context.Background(), f.rm, id, joiner.JoinInput{})
		assert.ErrorIs(t, err, domain.ErrUnknownNFTType)
	})
}

func TestBuildMarketState(t *testing.T) {
	f := newFixture(t)
	id := domain.NewTokenIdentity(collection, "8")
	now := f.now.Unix()

	f.subgraph.EXPECT().Listings(gomock.Any(), subgraph.ListingFilter{Collection: collection, TokenID: "8"}).Return([]domain.Listing{
		{Collection: collection, TokenID: "8", Owner: creator, PayToken: usdt, PricePerItem: big.NewInt(2_500_000), Quantity: 1},
		{Collection: collection, TokenID: "8", Owner: buyer, PayToken: usdt, PricePerItem: big.NewInt(9_000_000), Quantity: 1},
	}, nil)
	f.subgraph.EXPECT().Auctions(gomock.Any(), id).Return([]domain.Auction{
		{Collection: collection, TokenID: "8", PayToken: wmatic, ReservePrice: big.NewInt(1e18), EndTime: now - 100},
	}, nil)
	f.subgraph.EXPECT().Offers(gomock.Any(), id, now, "").Return([]domain.Offer{
		{Creator: creator, PayToken: usdt, PricePerItem: big.NewInt(1_000_000), Deadline: now + 10},
		{Creator: buyer, PayToken: usdt, PricePerItem: big.NewInt(3_000_000), Deadline: now + 10},
		{Creator: buyer, PayToken: usdt, PricePerItem: big.NewInt(5_000_000), Deadline: now - 10},
	}, nil)
	f.subgraph.EXPECT().Bids(gomock.Any(), id, "").Return([]domain.Bid{
		{Bidder: creator, PayToken: wmatic, Bid: big.NewInt(1e18)},
		{Bidder: buyer, PayToken: wmatic, Bid: big.NewInt(3e18)},
	}, nil)
	f.subgraph.EXPECT().Histories(gomock.Any(), collection, "8").Return([]domain.HistoryEvent{
		{EventType: "Listed", PayToken: usdt, PricePerItem: big.NewInt(2_500_000), BlockTimestamp: 10},
		{EventType: "Sold", PayToken: usdt, PricePerItem: big.NewInt(2_000_000), BlockTimestamp: 30},
	}, nil)

	state, err := f.joiner.BuildMarketState(context.Background(), id, buyer)
	require.NoError(t, err)

	require.True(t, state.Listed())
	assert.Equal(t, creator, state.Listing.Owner)
	assert.True(t, decimal.RequireFromString("2.5").Equal(state.Listing.Price))

	require.NotNil(t, state.Auction)
	assert.Equal(t, domain.AuctionStateEnded, state.AuctionState)
	assert.True(t, decimal.NewFromInt(1).Equal(state.Auction.ReservePrice))

	require.Len(t, state.Offers, 2)
	assert.True(t, decimal.NewFromInt(3).Equal(state.Offers[0].Price))
	assert.True(t, decimal.NewFromInt(1).Equal(state.Offers[1].Price))
	require.True(t, state.Offered())
	assert.True(t, decimal.NewFromInt(3).Equal(state.ViewerOffer.Price))

	require.Len(t, state.Bids, 2)
	assert.Equal(t, buyer, state.Bids[0].Bidder)
	require.True(t, state.Bidded())
	assert.True(t, decimal.NewFromInt(3).Equal(state.ViewerBid.Bid))

	require.Len(t, state.History, 2)
	assert.Equal(t, "Sold", state.History[0].EventType)
	assert.True(t, decimal.NewFromInt(2).Equal(state.History[0].Price))
}

func TestBuildMarketState_RanksAcrossPayTokens(t *testing.T) {
	f := newFixture(t)
	id := domain.NewTokenIdentity(collection, "4")
	now := f.now.Unix()

	f.subgraph.EXPECT().Listings(gomock.Any(), gomock.Any()).Return(nil, nil)
	f.subgraph.EXPECT().Auctions(gomock.Any(), id).Return(nil, nil)
	f.subgraph.EXPECT().Offers(gomock.Any(), id, now, "").Return([]domain.Offer{
		{Creator: creator, PayToken: wmatic, PricePerItem: big.NewInt(1e12), Deadline: now + 10},
		{Creator: buyer, PayToken: usdt, PricePerItem: big.NewInt(1_000_000), Deadline: now + 10},
	}, nil)
	f.subgraph.EXPECT().Bids(gomock.Any(), id, "").Return([]domain.Bid{
		{Bidder: buyer, PayToken: wmatic, Bid: big.NewInt(1e12)},
		{Bidder: creator, PayToken: usdt, Bid: big.NewInt(2_000_000)},
	}, nil)
	f.subgraph.EXPECT().Histories(gomock.Any(), collection, "4").Return(nil, nil)

	state, err := f.joiner.BuildMarketState(context.Background(), id, buyer)
	require.NoError(t, err)

	require.Len(t, state.Offers, 2)
	assert.Equal(t, usdt, state.Offers[0].PayToken)
	assert.True(t, decimal.NewFromInt(1).Equal(state.Offers[0].Price))
	assert.True(t, decimal.RequireFromString("0.000001").Equal(state.Offers[1].Price))
	require.NotNil(t, state.ViewerOffer)
	assert.Equal(t, usdt, state.ViewerOffer.PayToken)

	require.Len(t, state.Bids, 2)
	assert.Equal(t, creator, state.Bids[0].Bidder)
	require.NotNil(t, state.ViewerBid)
	assert.True(t, decimal.RequireFromString("0.000001").Equal(state.ViewerBid.Bid))
}

func TestBuildMarketState_NothingActive(t *testing.T) {
	f := newFixture(t)
	id := domain.NewTokenIdentity(collection, "9")

	f.subgraph.EXPECT().Listings(gomock.Any(), gomock.Any()).Return(nil, nil)
	f.subgraph.EXPECT().Auctions(gomock.Any(), id).Return(nil, nil)
	f.subgraph.EXPECT().Offers(gomock.Any(), id, gomock.Any(), "").Return(nil, nil)
	f.subgraph.EXPECT().Bids(gomock.Any(), id, "").Return(nil, nil)
	f.subgraph.EXPECT().Histories(gomock.Any(), collection, "9").Return(nil, nil)

	state, err := f.joiner.BuildMarketState(context.Background(), id, "")
	require.NoError(t, err)
	assert.False(t, state.Listed())
	assert.Nil(t, state.Auction)
	assert.Equal(t, domain.AuctionStateNone, state.AuctionState)
	assert.False(t, state.Offered())
	assert.False(t, state.Bidded())
	assert.Empty(t, state.Offers)
}

func TestBuildMarketState_QueryFailure(t *testing.T) {
	f := newFixture(t)
	id := domain.NewTokenIdentity(collection, "9")
	boom := &domain.NetworkError{Op: "POST", URL: "subgraph"}

	f.subgraph.EXPECT().Listings(gomock.Any(), gomock.Any()).Return(nil, boom).AnyTimes()
	f.subgraph.EXPECT().Auctions(gomock.Any(), id).Return(nil, nil).AnyTimes()
	f.subgraph.EXPECT().Offers(gomock.Any(), id, gomock.Any(), "").Return(nil, nil).AnyTimes()
	f.subgraph.EXPECT().Bids(gomock.Any(), id, "").Return(nil, nil).AnyTimes()
	f.subgraph.EXPECT().Histories(gomock.Any(), collection, "9").Return(nil, nil).AnyTimes()

	_, err := f.joiner.BuildMarketState(context.Background(), id, buyer)
	require.Error(t, err)
	assert.Equal(t, domain.ErrorKindNetwork, domain.Classify(err))
}

func TestBuildCollection(t *testing.T) {
	tests := []struct {
		name          string
		creator       string
		users         []domain.UserProfile
		expectedLabel string
		expectedIntro string
	}{
		{
			name:          "registered creator",
			creator:       creator,
			users:         []domain.UserProfile{{Address: creator, UserName: "maker", Introduction: "I make"}},
			expectedLabel: "maker",
			expectedIntro: "I make",
		},
		{
			name:          "registered creator without a name",
			creator:       creator,
			users:         []domain.UserProfile{{Address: creator}},
			expectedLabel: domain.NO_NAME,
		},
		{
			name:          "unregistered creator",
			creator:       buyer,
			expectedLabel: "0xfB69...d359",
			expectedIntro: domain.UNREGISTERED_USER,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			f := newFixture(t)
			f.rm.Users.Replace(tt.users)

			f.subgraph.EXPECT().ContractCreated(gomock.Any(), collection).Return(&domain.ContractCreated{
				Collection: collection, Name: "Onchain name", Creator: tt.creator, NFTType: domain.NFTTypeERC1155,
			}, nil)
			f.reader.EXPECT().CollectionMetadataURL(gomock.Any(), collection).Return("ipfs://QmCollection", nil)
			f.metadata.EXPECT().Collection(gomock.Any(), "ipfs://QmCollection").Return(&metadata.CollectionMetadata{
				Symbol: "SUN", Banner: "ipfs://QmBanner", Icon: "ipfs://QmIcon",
			}, nil)
			f.reader.EXPECT().TotalSupply(gomock.Any(), collection, domain.NFTTypeERC1155).Return(big.NewInt(42), nil)

			info, err := f.joiner.BuildCollection(context.Background(), f.rm, collection, joiner.CollectionPage)
			require.NoError(t, err)
			assert.Equal(t, "Onchain name", info.Name)
			assert.Equal(t, "SUN", info.Symbol)
			assert.Equal(t, "42", info.Amount)
			assert.Equal(t, domain.NFTTypeERC1155, info.NFTType)
			assert.Equal(t, "https://gateway.example/ipfs/QmBanner?pinataGatewayToken=key&img-width=1000&img-fit=scale-down", info.Banner)
			assert.Equal(t, "https://gateway.example/ipfs/QmIcon?pinataGatewayToken=key&img-width=300&img-height=300&img-fit=cover", info.Icon)
			assert.Equal(t, tt.expectedLabel, info.CreatorLabel)
			assert.Equal(t, tt.expectedIntro, info.Intro)
		})
	}
}

func TestBuildCollection_NotFound(t *testing.T) {
	f := newFixture(t)
	f.subgraph.EXPECT().ContractCreated(gomock.Any(), collection).Return(nil, nil)

	_, err := f.joiner.BuildCollection(context.Background(), f.rm, collection, joiner.CollectionCard)
	assert.ErrorIs(t, err, domain.ErrNotFound)

	_, err = f.joiner.BuildCollection(context.Background(), f.rm, "0xnope", joiner.CollectionCard)
	assert.ErrorIs(t, err, domain.ErrInvalidAddress)
}

func TestGallery(t *testing.T) {
	f := newFixture(t)
	current := domain.NewTokenIdentity(collection, "1")

	f.subgraph.EXPECT().CollectionTransfers(gomock.Any(), collection, "1").Return([]domain.TransferEvent{
		{Collection: collection, TokenID: "3", NFTType: domain.NFTTypeERC721, To: buyer},
		{Collection: collection, TokenID: "2", NFTType: domain.NFTTypeERC721, To: buyer},
		{Collection: collection, TokenID: "3", NFTType: domain.NFTTypeERC721, To: creator},
		{Collection: collection, TokenID: "4", NFTType: domain.NFTTypeERC721, To: creator},
	}, nil)

	id3 := domain.NewTokenIdentity(collection, "3")
	f.expectMetadata(id3, domain.NFTTypeERC721)
	f.reader.EXPECT().OwnerOf(gomock.Any(), id3).Return(buyer, nil)
	f.subgraph.EXPECT().MintTransfer(gomock.Any(), id3).Return(&domain.TransferEvent{To: creator}, nil)

	// token 2 fails and is left out
	id2 := domain.NewTokenIdentity(collection, "2")
	f.reader.EXPECT().MetadataPointer(gomock.Any(), id2, domain.NFTTypeERC721).Return("", errors.New("boom"))

	id4 := domain.NewTokenIdentity(collection, "4")
	f.expectMetadata(id4, domain.NFTTypeERC721)
	f.reader.EXPECT().OwnerOf(gomock.Any(), id4).Return(creator, nil)
	f.subgraph.EXPECT().MintTransfer(gomock.Any(), id4).Return(&domain.TransferEvent{To: creator}, nil)

	records, err := f.joiner.Gallery(context.Background(), f.rm, current, 2)
	require.NoError(t, err)
	require.Len(t, records, 2)
	assert.Equal(t, "3", records[0].TokenID)
	assert.Equal(t, "4", records[1].TokenID)
}

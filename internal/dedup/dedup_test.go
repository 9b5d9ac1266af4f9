package dedup_test

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/aliveland/market-aggregator/internal/dedup"
	"github.com/aliveland/market-aggregator/internal/domain"
)

const (
	collectionA = "0x5aAeb6053F3E94C9b9A09f33669435E7Ef1BeAed"
	collectionB = "0xfB6916095ca1df60bB79Ce92cE3Ea74c37c5d359"
	alice       = "0xdbF03B407c01E7cD3CBea99509d93f8DDDC8C6FB"
	bob         = "0xD1220A0cf47c7B9Be7A2E6BA89F429762e7b9aDb"
)

// newest first, the way the subgraph delivers them
func transfers() []domain.TransferEvent {
	return []domain.TransferEvent{
		{Collection: collectionA, TokenID: "1", From: alice, To: bob, BlockTimestamp: 40},
		{Collection: collectionB, TokenID: "1", From: domain.ETHEREUM_ZERO_ADDRESS, To: alice, BlockTimestamp: 30},
		// same token as the first event with a lowercase collection
		{Collection: "0x5aaeb6053f3e94c9b9a09f33669435e7ef1beaed", TokenID: "1", From: domain.ETHEREUM_ZERO_ADDRESS, To: alice, BlockTimestamp: 20},
		{Collection: collectionA, TokenID: "2", From: domain.ETHEREUM_ZERO_ADDRESS, To: alice, BlockTimestamp: 10},
	}
}

func TestLatestOwners(t *testing.T) {
	owners := dedup.LatestOwners(transfers())

	require.Len(t, owners, 3)
	assert.Equal(t, bob, owners[domain.NewTokenIdentity(collectionA, "1")].To)
	assert.Equal(t, int64(40), owners[domain.NewTokenIdentity(collectionA, "1")].BlockTimestamp)
	assert.Equal(t, alice, owners[domain.NewTokenIdentity(collectionA, "2")].To)
	assert.Equal(t, alice, owners[domain.NewTokenIdentity(collectionB, "1")].To)
}

func TestLatestOwners_Empty(t *testing.T) {
	assert.Empty(t, dedup.LatestOwners(nil))
	assert.Empty(t, dedup.Unique([]domain.TransferEvent{}))
}

func TestUnique(t *testing.T) {
	events := transfers()
	unique := dedup.Unique(events)

	require.Len(t, unique, 3)
	assert.Equal(t, int64(40), unique[0].BlockTimestamp)
	assert.Equal(t, int64(30), unique[1].BlockTimestamp)
	assert.Equal(t, int64(10), unique[2].BlockTimestamp)

	// every identity appears once and matches the latest owner map
	owners := dedup.LatestOwners(events)
	seen := map[domain.TokenIdentity]bool{}
	for _, e := range unique {
		assert.False(t, seen[e.Identity()])
		seen[e.Identity()] = true
		assert.Equal(t, owners[e.Identity()], e)
	}

	// input untouched
	assert.Len(t, events, 4)
}

func TestDedup_Idempotent(t *testing.T) {
	unique := dedup.Unique(transfers())
	assert.Equal(t, unique, dedup.Unique(unique))

	owners := dedup.LatestOwners(transfers())
	assert.Equal(t, owners, dedup.LatestOwners(unique))

	listings := dedup.Listings([]domain.Listing{
		{Collection: collectionA, TokenID: "1", Owner: bob},
		{Collection: collectionA, TokenID: "1", Owner: alice},
	})
	assert.Equal(t, listings, dedup.Listings(listings))
}

func TestOwnedBy(t *testing.T) {
	owned := dedup.OwnedBy(transfers(), "0xdbf03b407c01e7cd3cbea99509d93f8dddc8c6fb")
	require.Len(t, owned, 2)
	assert.Equal(t, collectionB, owned[0].Collection)
	assert.Equal(t, "2", owned[1].TokenID)

	assert.Len(t, dedup.OwnedBy(transfers(), bob), 1)
}

func TestDistinctOwners(t *testing.T) {
	assert.Equal(t, 2, dedup.DistinctOwners(transfers()))
	assert.Equal(t, 0, dedup.DistinctOwners(nil))
}

func TestListingsAndBy(t *testing.T) {
	listings := dedup.Listings([]domain.Listing{
		{Collection: collectionA, TokenID: "1", Owner: bob},
		{Collection: collectionA, TokenID: "1", Owner: alice},
		{Collection: collectionB, TokenID: "9", Owner: alice},
	})
	require.Len(t, listings, 2)
	assert.Equal(t, bob, listings[0].Owner)

	volumes := dedup.By([]domain.TradeVolume{
		{Collection: collectionA, PayToken: "a"},
		{Collection: collectionB, PayToken: "a"},
		{Collection: collectionA, PayToken: "b"},
	}, func(v domain.TradeVolume) string { return domain.NormalizeAddress(v.Collection) })
	assert.Len(t, volumes, 2)
}

package readmodel_test

import (
	"os"
	"strings"
	"sync"
	"testing"
	"time"

	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/aliveland/market-aggregator/internal/domain"
	"github.com/aliveland/market-aggregator/internal/logger"
	"github.com/aliveland/market-aggregator/internal/readmodel"
	"github.com/aliveland/market-aggregator/internal/uri"
)

const (
	alice      = "0x5aAeb6053F3E94C9b9A09f33669435E7Ef1BeAed"
	bob        = "0xfB6916095ca1df60bB79Ce92cE3Ea74c37c5d359"
	collection = "0xdbF03B407c01E7cD3CBea99509d93f8DDDC8C6FB"
	usdt       = "0xD1220A0cf47c7B9Be7A2E6BA89F429762e7b9aDb"
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

func testGateway() *uri.Gateway {
	return uri.NewGateway("https://gateway.example/ipfs/", "secret")
}

func TestUserDirectory_Display(t *testing.T) {
	dir := readmodel.NewUserDirectory(testGateway(), []domain.UserProfile{
		{Address: strings.ToLower(alice), UserName: "alice", AvatarImage: "ipfs://QmAvatar", Introduction: "hi"},
		{Address: bob},
	})

	tests := []struct {
		name     string
		address  string
		expected readmodel.UserDisplay
	}{
		{
			name:    "registered user matched case-insensitively",
			address: "0x" + strings.ToUpper(alice[2:]),
			expected: readmodel.UserDisplay{
				Address:    alice,
				Name:       "alice",
				Image:      "https://gateway.example/ipfs/QmAvatar?pinataGatewayToken=secret&img-width=40&img-height=40&img-fit=cover",
				Intro:      "hi",
				Registered: true,
			},
		},
		{
			name:    "registered user without a name",
			address: bob,
			expected: readmodel.UserDisplay{
				Address:    bob,
				Name:       domain.NO_NAME,
				Registered: true,
			},
		},
		{
			name:    "unregistered user",
			address: collection,
			expected: readmodel.UserDisplay{
				Address: collection,
				Name:    "0xdbF0...C6FB",
				Intro:   domain.UNREGISTERED_USER,
			},
		},
		{
			name:    "empty address",
			address: "",
			expected: readmodel.UserDisplay{
				Address: domain.ETHEREUM_ZERO_ADDRESS,
				Name:    "0x0",
				Intro:   domain.UNREGISTERED_USER,
			},
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, tt.expected, dir.Display(tt.address))
		})
	}
}

func TestUserDirectory_ReplaceAndUpsert(t *testing.T) {
	dir := readmodel.NewUserDirectory(nil, []domain.UserProfile{{Address: alice, UserName: "alice"}})
	assert.Equal(t, 1, dir.Len())

	dir.Upsert(domain.UserProfile{Address: bob, UserName: "bob", AvatarImage: "https://cdn.example/bob.png"})
	assert.Equal(t, 2, dir.Len())

	u, ok := dir.Lookup(strings.ToLower(bob))
	require.True(t, ok)
	assert.Equal(t, "https://cdn.example/bob.png", u.AvatarImage)

	dir.Replace([]domain.UserProfile{{Address: bob, UserName: "bobby"}})
	assert.Equal(t, 1, dir.Len())
	_, ok = dir.Lookup(alice)
	assert.False(t, ok)
	assert.Equal(t, "bobby", dir.Display(bob).Name)
}

func TestFavoriteSet(t *testing.T) {
	set := readmodel.FavoriteSetFromRecords([]domain.FavoriteRecord{
		{Collection: strings.ToLower(collection), TokenID: "0007", UserAddress: alice},
	})

	assert.True(t, set.Contains(domain.NewTokenIdentity(collection, "7")))
	assert.False(t, set.Contains(domain.NewTokenIdentity(collection, "8")))

	previous := set.Set(domain.NewTokenIdentity(collection, "8"), true)
	assert.False(t, previous)
	assert.True(t, set.Contains(domain.NewTokenIdentity(collection, "8")))

	previous = set.Set(domain.NewTokenIdentity(collection, "7"), false)
	assert.True(t, previous)
	assert.False(t, set.Contains(domain.NewTokenIdentity(collection, "7")))

	assert.Equal(t, []domain.TokenIdentity{domain.NewTokenIdentity(collection, "8")}, set.Identities())
}

func TestFavoriteSet_ConcurrentSet(t *testing.T) {
	set := readmodel.NewFavoriteSet(nil)

	var wg sync.WaitGroup
	for i := 0; i < 50; i++ {
		wg.Add(1)
		go func(i int) {
			defer wg.Done()
			id := domain.NewTokenIdentity(collection, decimal.NewFromInt(int64(i)).String())
			set.Set(id, true)
			_ = set.Contains(id)
		}(i)
	}
	wg.Wait()

	assert.Equal(t, 50, set.Len())
}

func TestReadModel_SnapshotAndRestore(t *testing.T) {
	users := readmodel.NewUserDirectory(nil, nil)
	rm := readmodel.New(strings.ToLower(alice), users,
		readmodel.NewFavoriteSet([]domain.TokenIdentity{domain.NewTokenIdentity(collection, "1")}),
		nil)
	rm.SessionID = readmodel.NewSessionID()
	rm.Quotes.Set([]domain.PriceQuote{{PayToken: usdt, USD: decimal.NewFromInt(1)}})

	assert.Equal(t, alice, rm.Viewer)

	now := time.Date(2026, 1, 2, 3, 4, 5, 0, time.UTC)
	snapshot := rm.Snapshot(now)
	assert.Equal(t, rm.SessionID, snapshot.SessionID)
	assert.Equal(t, now, snapshot.UpdatedAt)
	assert.Len(t, snapshot.Favorites, 1)
	assert.Len(t, snapshot.Quotes, 1)

	restored := readmodel.Restore(snapshot, users, usdt)
	assert.Equal(t, rm.SessionID, restored.SessionID)
	assert.Equal(t, alice, restored.Viewer)
	assert.True(t, restored.Favorites.Contains(domain.NewTokenIdentity(collection, "1")))
	assert.True(t, decimal.NewFromInt(1).Equal(restored.Quotes.USD(usdt)))
	assert.Same(t, users, restored.Users)
}

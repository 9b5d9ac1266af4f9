package store

import (
	"context"
	"testing"
	"time"

	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/aliveland/market-aggregator/internal/domain"
)

const (
	testViewer     = "0x1234567890123456789012345678901234567890"
	testCollection = "0xAbCdEf0123456789aBcDeF0123456789AbCdEf01"
	testPayToken   = "0xc2132D05D31c914a87C6611C10748AEb04B58e8F"
)

// buildTestSnapshot creates a snapshot with one favorite and one quote
func buildTestSnapshot(sessionID string, updatedAt time.Time) domain.SessionSnapshot {
	return domain.SessionSnapshot{
		SessionID: sessionID,
		Viewer:    testViewer,
		Profile: &domain.UserProfile{
			Address:  testViewer,
			UserName: "alice",
		},
		Favorites: []domain.TokenIdentity{domain.NewTokenIdentity(testCollection, "7")},
		Quotes:    []domain.PriceQuote{{PayToken: testPayToken, USD: decimal.RequireFromString("0.9998")}},
		UpdatedAt: updatedAt,
	}
}

func testSessionSnapshot(t *testing.T, store Store) {
	ctx := context.Background()
	now := time.Now().UTC().Truncate(time.Second)

	t.Run("missing snapshot returns nil", func(t *testing.T) {
		snapshot, err := store.GetSessionSnapshot(ctx, "01HNOTSAVED")
		require.NoError(t, err)
		assert.Nil(t, snapshot)
	})

	t.Run("save and get snapshot", func(t *testing.T) {
		err := store.SaveSessionSnapshot(ctx, buildTestSnapshot("01HSAVED", now))
		require.NoError(t, err)

		snapshot, err := store.GetSessionSnapshot(ctx, "01HSAVED")
		require.NoError(t, err)
		require.NotNil(t, snapshot)
		assert.Equal(t, testViewer, snapshot.Viewer)
		require.NotNil(t, snapshot.Profile)
		assert.Equal(t, "alice", snapshot.Profile.UserName)
		require.Len(t, snapshot.Favorites, 1)
		assert.Equal(t, domain.NewTokenIdentity(testCollection, "7"), snapshot.Favorites[0])
		require.Len(t, snapshot.Quotes, 1)
		assert.True(t, decimal.RequireFromString("0.9998").Equal(snapshot.Quotes[0].USD))
		assert.True(t, now.Equal(snapshot.UpdatedAt.UTC()))
	})

	t.Run("save replaces existing snapshot", func(t *testing.T) {
		first := buildTestSnapshot("01HREPLACE", now)
		require.NoError(t, store.SaveSessionSnapshot(ctx, first))

		second := first
		second.Favorites = nil
		second.Profile = nil
		second.UpdatedAt = now.Add(time.Minute)
		require.NoError(t, store.SaveSessionSnapshot(ctx, second))

		snapshot, err := store.GetSessionSnapshot(ctx, "01HREPLACE")
		require.NoError(t, err)
		require.NotNil(t, snapshot)
		assert.Nil(t, snapshot.Profile)
		assert.Empty(t, snapshot.Favorites)
		assert.True(t, now.Add(time.Minute).Equal(snapshot.UpdatedAt.UTC()))
	})

	t.Run("save without session id fails", func(t *testing.T) {
		err := store.SaveSessionSnapshot(ctx, domain.SessionSnapshot{})
		require.Error(t, err)
	})

	t.Run("delete snapshot", func(t *testing.T) {
		require.NoError(t, store.SaveSessionSnapshot(ctx, buildTestSnapshot("01HDELETE", now)))
		require.NoError(t, store.DeleteSessionSnapshot(ctx, "01HDELETE"))

		snapshot, err := store.GetSessionSnapshot(ctx, "01HDELETE")
		require.NoError(t, err)
		assert.Nil(t, snapshot)
	})

	t.Run("delete snapshots before", func(t *testing.T) {
		require.NoError(t, store.SaveSessionSnapshot(ctx, buildTestSnapshot("01HOLD", now.Add(-2*time.Hour))))
		require.NoError(t, store.SaveSessionSnapshot(ctx, buildTestSnapshot("01HFRESH", now)))

		deleted, err := store.DeleteSessionSnapshotsBefore(ctx, now.Add(-time.Hour))
		require.NoError(t, err)
		assert.GreaterOrEqual(t, deleted, int64(1))

		old, err := store.GetSessionSnapshot(ctx, "01HOLD")
		require.NoError(t, err)
		assert.Nil(t, old)

		fresh, err := store.GetSessionSnapshot(ctx, "01HFRESH")
		require.NoError(t, err)
		assert.NotNil(t, fresh)
	})
}

func testKeyValueStore(t *testing.T, store Store) {
	ctx := context.Background()

	t.Run("set and get key-value", func(t *testing.T) {
		key := "test:key1"
		value := "value1"

		err := store.SetKeyValue(ctx, key, value)
		require.NoError(t, err)

		retrievedValue, err := store.GetKeyValue(ctx, key)
		require.NoError(t, err)
		assert.Equal(t, value, retrievedValue)
	})

	t.Run("get non-existent key returns empty string", func(t *testing.T) {
		value, err := store.GetKeyValue(ctx, "nonexistent:key")
		require.NoError(t, err)
		assert.Equal(t, "", value)
	})

	t.Run("update existing key", func(t *testing.T) {
		key := "test:key2"

		err := store.SetKeyValue(ctx, key, "value1")
		require.NoError(t, err)

		err = store.SetKeyValue(ctx, key, "value2")
		require.NoError(t, err)

		value, err := store.GetKeyValue(ctx, key)
		require.NoError(t, err)
		assert.Equal(t, "value2", value)
	})
}

func TestNormalizeConnectionPoolSettings(t *testing.T) {
	open, idle, lifetime, idleTime := NormalizeConnectionPoolSettings(0, 0, 0, 0)
	assert.Equal(t, 20, open)
	assert.Equal(t, 5, idle)
	assert.Equal(t, 5*time.Minute, lifetime)
	assert.Equal(t, 10*time.Minute, idleTime)

	open, idle, _, _ = NormalizeConnectionPoolSettings(3, 10, time.Minute, time.Minute)
	assert.Equal(t, 3, open)
	assert.Equal(t, 3, idle)
}

// RunStoreTests runs all store tests with the given store implementation
func RunStoreTests(t *testing.T, initDB func(t *testing.T) Store) {
	tests := []struct {
		name string
		fn   func(*testing.T, Store)
	}{
		{"SessionSnapshot", testSessionSnapshot},
		{"KeyValueStore", testKeyValueStore},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			tt.fn(t, initDB(t))
		})
	}
}

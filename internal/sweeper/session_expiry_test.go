package sweeper_test

import (
	"context"
	"errors"
	"os"
	"testing"
	"time"

	"github.com/golang/mock/gomock"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/aliveland/market-aggregator/internal/adapter"
	"github.com/aliveland/market-aggregator/internal/logger"
	"github.com/aliveland/market-aggregator/internal/mocks"
	"github.com/aliveland/market-aggregator/internal/sweeper"
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

var now = time.Date(2024, 5, 1, 12, 0, 0, 0, time.UTC)

func runUntilStopped(t *testing.T, s sweeper.Sweeper, done <-chan struct{}) {
	ctx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
	defer cancel()

	errCh := make(chan error, 1)
	go func() {
		errCh <- s.Start(ctx)
	}()

	select {
	case <-done:
	case <-ctx.Done():
		t.Fatal("sweep cycle did not run")
	}

	require.NoError(t, s.Stop(ctx))
	require.NoError(t, <-errCh)
}

func TestSessionExpirySweeper_DeletesExpiredSnapshots(t *testing.T) {
	ctrl := gomock.NewController(t)
	st := mocks.NewMockStore(ctrl)

	done := make(chan struct{})
	st.EXPECT().DeleteSessionSnapshotsBefore(gomock.Any(), now.Add(-2*time.Hour)).
		DoAndReturn(func(context.Context, time.Time) (int64, error) {
			close(done)
			return 3, nil
		})

	s := sweeper.NewSessionExpirySweeper(sweeper.SessionExpirySweeperConfig{
		Interval: time.Hour,
		MaxAge:   2 * time.Hour,
	}, st, adapter.FixedClock{At: now})

	assert.Equal(t, "session-expiry-sweeper", s.Name())
	runUntilStopped(t, s, done)
}

func TestSessionExpirySweeper_RetriesStoreFailures(t *testing.T) {
	ctrl := gomock.NewController(t)
	st := mocks.NewMockStore(ctrl)

	done := make(chan struct{})
	gomock.InOrder(
		st.EXPECT().DeleteSessionSnapshotsBefore(gomock.Any(), gomock.Any()).Return(int64(0), errors.New("connection reset")),
		st.EXPECT().DeleteSessionSnapshotsBefore(gomock.Any(), gomock.Any()).
			DoAndReturn(func(context.Context, time.Time) (int64, error) {
				close(done)
				return 1, nil
			}),
	)

	s := sweeper.NewSessionExpirySweeper(sweeper.SessionExpirySweeperConfig{
		Interval:   time.Hour,
		MaxAge:     time.Hour,
		MaxRetries: 3,
	}, st, adapter.FixedClock{At: now})

	runUntilStopped(t, s, done)
}

func TestSessionExpirySweeper_StartTwice(t *testing.T) {
	ctrl := gomock.NewController(t)
	st := mocks.NewMockStore(ctrl)

	done := make(chan struct{})
	st.EXPECT().DeleteSessionSnapshotsBefore(gomock.Any(), gomock.Any()).
		DoAndReturn(func(context.Context, time.Time) (int64, error) {
			close(done)
			return 0, nil
		})

	s := sweeper.NewSessionExpirySweeper(sweeper.SessionExpirySweeperConfig{Interval: time.Hour}, st, adapter.FixedClock{At: now})

	ctx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
	defer cancel()
	errCh := make(chan error, 1)
	go func() {
		errCh <- s.Start(ctx)
	}()
	<-done

	assert.Error(t, s.Start(ctx))

	require.NoError(t, s.Stop(ctx))
	require.NoError(t, <-errCh)
}

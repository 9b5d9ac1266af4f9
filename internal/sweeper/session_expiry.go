package sweeper

import (
	"context"
	"errors"
	"fmt"
	"sync"
	"sync/atomic"
	"time"

	"github.com/cenkalti/backoff/v4"
	"github.com/oklog/ulid/v2"
	"go.uber.org/zap"

	"github.com/aliveland/market-aggregator/internal/adapter"
	"github.com/aliveland/market-aggregator/internal/logger"
	"github.com/aliveland/market-aggregator/internal/monitor"
	"github.com/aliveland/market-aggregator/internal/store"
)

const (
	DEFAULT_SWEEP_INTERVAL = 15 * time.Minute
	DEFAULT_SNAPSHOT_TTL   = 24 * time.Hour
)

// SessionExpirySweeperConfig holds configuration for the session expiry sweeper
type SessionExpirySweeperConfig struct {
	Interval   time.Duration // Time between sweep cycles
	MaxAge     time.Duration // Snapshots not updated for longer are removed
	MaxRetries uint64        // Attempts per cycle before giving up until the next one
}

// sessionExpirySweeper removes persisted session snapshots nobody reloaded in time
type sessionExpirySweeper struct {
	config    SessionExpirySweeperConfig
	store     store.Store
	clock     adapter.Clock
	running   atomic.Bool
	stopOnce  sync.Once
	stopChan  chan struct{}
	stoppedCh chan struct{}
}

// NewSessionExpirySweeper creates a new session expiry sweeper
func NewSessionExpirySweeper(cfg SessionExpirySweeperConfig, st store.Store, clock adapter.Clock) Sweeper {
	if cfg.Interval <= 0 {
		cfg.Interval = DEFAULT_SWEEP_INTERVAL
	}
	if cfg.MaxAge <= 0 {
		cfg.MaxAge = DEFAULT_SNAPSHOT_TTL
	}
	return &sessionExpirySweeper{
		config:    cfg,
		store:     st,
		clock:     clock,
		stopChan:  make(chan struct{}),
		stoppedCh: make(chan struct{}),
	}
}

// Name returns the sweeper's name
func (s *sessionExpirySweeper) Name() string {
	return "session-expiry-sweeper"
}

// Start runs a sweep cycle immediately and then once per interval
func (s *sessionExpirySweeper) Start(ctx context.Context) error {
	if !s.running.CompareAndSwap(false, true) {
		return fmt.Errorf("sweeper already running")
	}
	defer func() {
		s.running.Store(false)
		close(s.stoppedCh)
	}()

	logger.InfoCtx(ctx, "Starting session expiry sweeper",
		zap.Duration("interval", s.config.Interval),
		zap.Duration("max_age", s.config.MaxAge),
	)

	ticker := time.NewTicker(s.config.Interval)
	defer ticker.Stop()

	for {
		if _, err := s.runSweepCycle(ctx); err != nil && !errors.Is(err, context.Canceled) {
			logger.ErrorCtx(ctx, err, zap.String("sweeper", s.Name()))
		}

		select {
		case <-ctx.Done():
			logger.InfoCtx(ctx, "Session expiry sweeper stopping due to context cancellation", zap.Error(ctx.Err()))
			return nil
		case <-s.stopChan:
			logger.InfoCtx(ctx, "Session expiry sweeper stop requested")
			return nil
		case <-ticker.C:
		}
	}
}

// Stop gracefully stops the sweeper with timeout support
func (s *sessionExpirySweeper) Stop(ctx context.Context) error {
	if !s.running.Load() {
		return nil
	}

	logger.InfoCtx(ctx, "Stopping session expiry sweeper")
	s.stopOnce.Do(func() { close(s.stopChan) })

	select {
	case <-s.stoppedCh:
		logger.InfoCtx(ctx, "Session expiry sweeper stopped gracefully")
		return nil
	case <-ctx.Done():
		logger.WarnCtx(ctx, "Session expiry sweeper stop interrupted by context timeout")
		return ctx.Err()
	}
}

// runSweepCycle deletes every snapshot older than MaxAge, retrying transient store failures
func (s *sessionExpirySweeper) runSweepCycle(ctx context.Context) (int64, error) {
	now := s.clock.Now()
	cycleID := ulid.MustNewDefault(now).String()
	cutoff := now.Add(-s.config.MaxAge)

	b := backoff.NewExponentialBackOff()
	b.InitialInterval = time.Second
	b.MaxInterval = 30 * time.Second
	b.MaxElapsedTime = s.config.Interval / 2

	var retrier backoff.BackOff = b
	if s.config.MaxRetries > 0 {
		retrier = backoff.WithMaxRetries(b, s.config.MaxRetries)
	}

	var deleted int64
	operation := func() error {
		n, err := s.store.DeleteSessionSnapshotsBefore(ctx, cutoff)
		if err != nil {
			if ctx.Err() != nil {
				return backoff.Permanent(ctx.Err())
			}
			return err
		}
		deleted = n
		return nil
	}
	notify := func(err error, wait time.Duration) {
		logger.WarnCtx(ctx, "Session sweep failed, retrying",
			zap.String("cycle", cycleID),
			zap.Error(err),
			zap.Duration("retry_in", wait),
		)
	}

	if err := backoff.RetryNotify(operation, backoff.WithContext(retrier, ctx), notify); err != nil {
		return 0, fmt.Errorf("session sweep %s failed: %w", cycleID, err)
	}

	monitor.ExpiredSnapshots.Add(float64(deleted))
	logger.InfoCtx(ctx, "Session sweep completed",
		zap.String("cycle", cycleID),
		zap.Time("cutoff", cutoff),
		zap.Int64("deleted", deleted),
	)
	return deleted, nil
}

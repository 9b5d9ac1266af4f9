package store

import (
	"context"
	"time"

	"github.com/aliveland/market-aggregator/internal/domain"
)

// Store defines the interface for database operations
//
//go:generate mockgen -source=store.go -destination=../mocks/store.go -package=mocks -mock_names=Store=MockStore
type Store interface {
	// GetSessionSnapshot retrieves the snapshot of a session, nil if none was saved
	GetSessionSnapshot(ctx context.Context, sessionID string) (*domain.SessionSnapshot, error)
	// SaveSessionSnapshot creates or replaces the snapshot of a session
	SaveSessionSnapshot(ctx context.Context, snapshot domain.SessionSnapshot) error
	// DeleteSessionSnapshot removes the snapshot of a session
	DeleteSessionSnapshot(ctx context.Context, sessionID string) error
	// DeleteSessionSnapshotsBefore removes snapshots not updated since before and returns how many were removed
	DeleteSessionSnapshotsBefore(ctx context.Context, before time.Time) (int64, error)
	// SetKeyValue sets a key-value pair in the key-value store
	SetKeyValue(ctx context.Context, key string, value string) error
	// GetKeyValue retrieves a value by key, empty string if the key does not exist
	GetKeyValue(ctx context.Context, key string) (string, error)
}

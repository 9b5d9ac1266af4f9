package store

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"time"

	"gorm.io/datatypes"
	"gorm.io/gorm"
	"gorm.io/gorm/clause"

	"github.com/aliveland/market-aggregator/internal/domain"
	"github.com/aliveland/market-aggregator/internal/store/schema"
)

type pgStore struct {
	db *gorm.DB
}

// NewPGStore creates a new PostgreSQL store instance
func NewPGStore(db *gorm.DB) Store {
	return &pgStore{db: db}
}

// ConfigureConnectionPool configures the connection pool settings for a GORM database connection.
// It accesses the underlying *sql.DB and sets the pool configuration.
// If any of the pool settings are 0 or empty, reasonable defaults are used:
//   - MaxOpenConns: 20 (if 0)
//   - MaxIdleConns: 5 (if 0)
//   - ConnMaxLifetime: 5 minutes (if 0)
//   - ConnMaxIdleTime: 10 minutes (if 0)
func ConfigureConnectionPool(db *gorm.DB, maxOpenConns, maxIdleConns int, connMaxLifetime, connMaxIdleTime time.Duration) error {
	sqlDB, err := db.DB()
	if err != nil {
		return fmt.Errorf("failed to get underlying sql.DB: %w", err)
	}

	maxOpenConns, maxIdleConns, connMaxLifetime, connMaxIdleTime =
		NormalizeConnectionPoolSettings(maxOpenConns, maxIdleConns, connMaxLifetime, connMaxIdleTime)

	sqlDB.SetMaxOpenConns(maxOpenConns)
	sqlDB.SetMaxIdleConns(maxIdleConns)
	sqlDB.SetConnMaxLifetime(connMaxLifetime)
	sqlDB.SetConnMaxIdleTime(connMaxIdleTime)

	return nil
}

// NormalizeConnectionPoolSettings applies defaults and clamps pool settings into safe values.
// MaxIdleConns never exceeds MaxOpenConns.
func NormalizeConnectionPoolSettings(maxOpenConns, maxIdleConns int, connMaxLifetime, connMaxIdleTime time.Duration) (int, int, time.Duration, time.Duration) {
	if maxOpenConns == 0 {
		maxOpenConns = 20
	}
	if maxIdleConns == 0 {
		maxIdleConns = 5
	}
	if connMaxLifetime == 0 {
		connMaxLifetime = 5 * time.Minute
	}
	if connMaxIdleTime == 0 {
		connMaxIdleTime = 10 * time.Minute
	}

	if maxIdleConns > maxOpenConns {
		maxIdleConns = maxOpenConns
	}

	return maxOpenConns, maxIdleConns, connMaxLifetime, connMaxIdleTime
}

// GetSessionSnapshot retrieves the snapshot of a session
func (s *pgStore) GetSessionSnapshot(ctx context.Context, sessionID string) (*domain.SessionSnapshot, error) {
	var row schema.SessionSnapshot
	err := s.db.WithContext(ctx).Where("session_id = ?", sessionID).First(&row).Error
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, nil
		}
		return nil, fmt.Errorf("failed to get session snapshot: %w", err)
	}

	snapshot := domain.SessionSnapshot{
		SessionID: row.SessionID,
		Viewer:    row.Viewer,
		UpdatedAt: row.UpdatedAt,
	}
	if len(row.Profile) > 0 && string(row.Profile) != "null" {
		var profile domain.UserProfile
		if err := json.Unmarshal(row.Profile, &profile); err != nil {
			return nil, fmt.Errorf("failed to unmarshal session profile: %w", err)
		}
		snapshot.Profile = &profile
	}
	if err := json.Unmarshal(row.Favorites, &snapshot.Favorites); err != nil {
		return nil, fmt.Errorf("failed to unmarshal session favorites: %w", err)
	}
	if err := json.Unmarshal(row.Quotes, &snapshot.Quotes); err != nil {
		return nil, fmt.Errorf("failed to unmarshal session quotes: %w", err)
	}

	return &snapshot, nil
}

// SaveSessionSnapshot creates or replaces the snapshot of a session
func (s *pgStore) SaveSessionSnapshot(ctx context.Context, snapshot domain.SessionSnapshot) error {
	if snapshot.SessionID == "" {
		return fmt.Errorf("session id is required")
	}

	favorites := snapshot.Favorites
	if favorites == nil {
		favorites = []domain.TokenIdentity{}
	}
	favoritesJSON, err := json.Marshal(favorites)
	if err != nil {
		return fmt.Errorf("failed to marshal session favorites: %w", err)
	}

	quotes := snapshot.Quotes
	if quotes == nil {
		quotes = []domain.PriceQuote{}
	}
	quotesJSON, err := json.Marshal(quotes)
	if err != nil {
		return fmt.Errorf("failed to marshal session quotes: %w", err)
	}

	var profileJSON datatypes.JSON
	if snapshot.Profile != nil {
		profileJSON, err = json.Marshal(snapshot.Profile)
		if err != nil {
			return fmt.Errorf("failed to marshal session profile: %w", err)
		}
	}

	updatedAt := snapshot.UpdatedAt
	if updatedAt.IsZero() {
		updatedAt = time.Now()
	}

	row := schema.SessionSnapshot{
		SessionID: snapshot.SessionID,
		Viewer:    snapshot.Viewer,
		Profile:   profileJSON,
		Favorites: datatypes.JSON(favoritesJSON),
		Quotes:    datatypes.JSON(quotesJSON),
		UpdatedAt: updatedAt,
	}

	err = s.db.WithContext(ctx).Clauses(clause.OnConflict{
		Columns:   []clause.Column{{Name: "session_id"}},
		DoUpdates: clause.AssignmentColumns([]string{"viewer", "profile", "favorites", "quotes", "updated_at"}),
	}).Create(&row).Error
	if err != nil {
		return fmt.Errorf("failed to save session snapshot: %w", err)
	}

	return nil
}

// DeleteSessionSnapshot removes the snapshot of a session
func (s *pgStore) DeleteSessionSnapshot(ctx context.Context, sessionID string) error {
	err := s.db.WithContext(ctx).Where("session_id = ?", sessionID).Delete(&schema.SessionSnapshot{}).Error
	if err != nil {
		return fmt.Errorf("failed to delete session snapshot: %w", err)
	}
	return nil
}

// DeleteSessionSnapshotsBefore removes snapshots not updated since before
func (s *pgStore) DeleteSessionSnapshotsBefore(ctx context.Context, before time.Time) (int64, error) {
	result := s.db.WithContext(ctx).Where("updated_at < ?", before).Delete(&schema.SessionSnapshot{})
	if result.Error != nil {
		return 0, fmt.Errorf("failed to delete expired session snapshots: %w", result.Error)
	}
	return result.RowsAffected, nil
}

// SetKeyValue sets a key-value pair in the key-value store
func (s *pgStore) SetKeyValue(ctx context.Context, key string, value string) error {
	kv := schema.KeyValueStore{
		Key:   key,
		Value: value,
	}

	err := s.db.WithContext(ctx).Save(&kv).Error
	if err != nil {
		return fmt.Errorf("failed to set key-value: %w", err)
	}

	return nil
}

// GetKeyValue retrieves a value by key from the key-value store
func (s *pgStore) GetKeyValue(ctx context.Context, key string) (string, error) {
	var kv schema.KeyValueStore
	err := s.db.WithContext(ctx).Where("key = ?", key).First(&kv).Error
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return "", nil
		}
		return "", fmt.Errorf("failed to get key-value: %w", err)
	}

	return kv.Value, nil
}

package schema

import (
	"time"

	"gorm.io/datatypes"
)

// SessionSnapshot persists the per-session read model of a viewer so that a
// reload or a service restart within the session does not re-query the backend
type SessionSnapshot struct {
	SessionID string         `gorm:"column:session_id;primaryKey;type:text"`
	Viewer    string         `gorm:"column:viewer;type:text;not null;default:''"`
	Profile   datatypes.JSON `gorm:"column:profile;type:jsonb"`
	Favorites datatypes.JSON `gorm:"column:favorites;type:jsonb;not null"`
	Quotes    datatypes.JSON `gorm:"column:quotes;type:jsonb;not null"`
	UpdatedAt time.Time      `gorm:"column:updated_at;not null"`
	CreatedAt time.Time      `gorm:"column:created_at;autoCreateTime"`
}

func (SessionSnapshot) TableName() string {
	return "session_snapshots"
}

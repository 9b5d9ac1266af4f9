package domain

import "time"

// SessionSnapshot is the persisted per-session read model state.
// Restoring it avoids re-querying the backend after a reload or a restart.
type SessionSnapshot struct {
	SessionID string          `json:"session_id"`
	Viewer    string          `json:"viewer"`
	Profile   *UserProfile    `json:"profile,omitempty"`
	Favorites []TokenIdentity `json:"favorites"`
	Quotes    []PriceQuote    `json:"quotes"`
	UpdatedAt time.Time       `json:"updated_at"`
}

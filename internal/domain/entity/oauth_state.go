package entity

import "time"

// OAuthState is a single-use value handed to LINE on login init and expected back on callback.
type OAuthState struct {
	State     string    `gorm:"column:state;primaryKey"`
	ExpiresAt time.Time `gorm:"column:expires_at;index"`
	CreatedAt time.Time `gorm:"column:created_at"`
}

// TableName specifies the table name for the OAuthState entity.
func (OAuthState) TableName() string {
	return "oauth_states"
}

// Expired reports whether the state can no longer be redeemed at now.
func (s *OAuthState) Expired(now time.Time) bool {
	return !now.Before(s.ExpiresAt)
}

package models

import "time"

// AuthToken is a server-side record backing an opaque bearer credential.
// Only the SHA-256 digest of the token is stored; the raw token is returned
// to the client once at login/registration and never persisted.
type AuthToken struct {
	Base
	UserID    string    `gorm:"type:uuid;not null;index" json:"user_id"`
	TokenHash string    `gorm:"size:64;uniqueIndex;not null" json:"-"`
	ExpiresAt time.Time `gorm:"not null" json:"expires_at"`
}

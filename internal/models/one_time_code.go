package models

import (
	"time"

	"github.com/google/uuid"
)

// One-time code purposes. The auth callback dispatches on these.
const (
	CodePurposeSignup   = "signup"
	CodePurposeRecovery = "recovery"
	CodePurposeOAuth    = "oauth"
)

// OneTimeCode is a single-use exchange token carried on redirect URLs
// (email confirmation links, password recovery links, OAuth handoff).
// Only the sha256 hash of the raw code is stored.
type OneTimeCode struct {
	ID         uuid.UUID  `gorm:"type:uuid;default:gen_random_uuid();primaryKey" json:"id"`
	UserID     uuid.UUID  `gorm:"type:uuid;not null;index" json:"user_id"`
	CodeHash   string     `gorm:"uniqueIndex;not null;size:64" json:"-"`
	Purpose    string     `gorm:"size:20;not null" json:"purpose"`
	ExpiresAt  time.Time  `gorm:"not null" json:"expires_at"`
	ConsumedAt *time.Time `json:"-"`
	CreatedAt  time.Time  `json:"created_at"`
	User       User       `gorm:"foreignKey:UserID" json:"-"`
}

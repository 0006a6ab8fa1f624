package models

import (
	"time"

	"github.com/google/uuid"
)

// Profile gender values.
const (
	GenderMale   = "Male"
	GenderFemale = "Female"
	GenderOther  = "Other"
)

// Profile is one-per-user, keyed by the user id. Created minimal at sign-up
// and filled in during onboarding; never hard-deleted.
//
// FastingGoal of 0 means "not set" — completeness checks treat zero as
// missing, so a genuine zero-hour goal is not representable.
type Profile struct {
	ID            uuid.UUID  `gorm:"type:uuid;primaryKey" json:"id"`
	Email         string     `gorm:"not null;size:255" json:"email"`
	UserName      *string    `gorm:"size:100" json:"user_name"`
	FullName      *string    `gorm:"size:255" json:"full_name"`
	DOB           *time.Time `json:"dob"`
	Gender        *string    `gorm:"size:20" json:"gender"`
	LastPeriodEnd *time.Time `json:"last_period_end"`
	LocationType  *string    `gorm:"size:20" json:"location_type"`
	Address       *string    `gorm:"size:500" json:"address"`
	City          *string    `gorm:"size:100" json:"city"`
	ActivityLevel *string    `gorm:"size:30" json:"activity_level"`
	FastingGoal   int        `gorm:"default:0" json:"fasting_goal"`
	CreatedAt     time.Time  `json:"created_at"`
	UpdatedAt     time.Time  `json:"updated_at"`
}

func (Profile) TableName() string { return "profile" }

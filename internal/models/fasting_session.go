package models

import (
	"time"

	"github.com/google/uuid"
)

// FastingSession tracks an explicitly started fast. At most one session per
// user has a nil EndedAt; a partial unique index enforces this alongside the
// service-level check.
type FastingSession struct {
	ID        uuid.UUID  `gorm:"type:uuid;default:gen_random_uuid();primaryKey" json:"id"`
	UserID    uuid.UUID  `gorm:"type:uuid;not null;index;uniqueIndex:idx_fasting_sessions_one_active,where:ended_at IS NULL" json:"user_id"`
	StartedAt time.Time  `gorm:"not null" json:"started_at"`
	EndedAt   *time.Time `json:"ended_at"`
	GoalHours int        `gorm:"default:0" json:"goal_hours"`
	CreatedAt time.Time  `json:"created_at"`
}

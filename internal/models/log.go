package models

import (
	"time"

	"github.com/google/uuid"
	"gorm.io/datatypes"
)

// Journal entry types. Each type carries a different metrics shape.
const (
	LogTypeMealNote      = "meal_note"
	LogTypePersonalNote  = "personal_note"
	LogTypeKetoneReading = "ketone_reading"
)

var LogTypes = []string{LogTypeMealNote, LogTypePersonalNote, LogTypeKetoneReading}

// Log is a journal entry. Logs are immutable once created — there is no
// update path, only create, list and delete.
type Log struct {
	ID        uuid.UUID      `gorm:"type:uuid;default:gen_random_uuid();primaryKey" json:"id"`
	UserID    uuid.UUID      `gorm:"type:uuid;not null;index" json:"user_id"`
	Type      string         `gorm:"size:20;not null;index" json:"type"`
	Content   string         `gorm:"type:text;not null" json:"content"`
	ImageURL  *string        `gorm:"type:text" json:"image_url"`
	Metrics   datatypes.JSON `gorm:"type:jsonb" json:"metrics"`
	CreatedAt time.Time      `gorm:"index" json:"created_at"`
	User      User           `gorm:"foreignKey:UserID" json:"-"`
}

func (Log) TableName() string { return "logs" }

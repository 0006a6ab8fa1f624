package models

import (
	"time"

	"github.com/google/uuid"
)

type PantryItem struct {
	ID             uuid.UUID `gorm:"type:uuid;default:gen_random_uuid();primaryKey" json:"id"`
	UserID         uuid.UUID `gorm:"type:uuid;not null;uniqueIndex:idx_pantry_user_ingredient" json:"user_id"`
	IngredientName string    `gorm:"size:255;not null;uniqueIndex:idx_pantry_user_ingredient" json:"ingredient_name"`
	CreatedAt      time.Time `json:"created_at"`
}

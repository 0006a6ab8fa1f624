package models

import (
	"time"

	"github.com/google/uuid"
	"gorm.io/datatypes"
)

var RecipeCategories = []string{"breakfast", "lunch", "dinner", "snack", "dessert"}

var RecipeDifficulties = []string{"easy", "medium", "hard"}

// KetoMaxCarbsPerServing is the net-carb ceiling for a recipe or meal to
// count as keto-friendly.
const KetoMaxCarbsPerServing = 20

type Recipe struct {
	ID           uuid.UUID      `gorm:"type:uuid;default:gen_random_uuid();primaryKey" json:"id"`
	UserID       *uuid.UUID     `gorm:"type:uuid;index" json:"user_id"`
	Title        string         `gorm:"not null;size:255" json:"title"`
	Ingredients  datatypes.JSON `gorm:"type:jsonb;not null" json:"ingredients"`
	Instructions string         `gorm:"type:text" json:"instructions"`
	CookingTime  *int           `json:"cooking_time"`
	Difficulty   *string        `gorm:"size:20" json:"difficulty"`
	Category     *string        `gorm:"size:20" json:"category"`
	Macros       datatypes.JSON `gorm:"type:jsonb" json:"macros"`
	IsPublic     bool           `gorm:"default:false" json:"is_public"`
	CreatedAt    time.Time      `json:"created_at"`
}

type RecipeFavorite struct {
	ID        uuid.UUID `gorm:"type:uuid;default:gen_random_uuid();primaryKey" json:"id"`
	UserID    uuid.UUID `gorm:"type:uuid;not null;uniqueIndex:idx_recipe_favorites_user_recipe" json:"user_id"`
	RecipeID  uuid.UUID `gorm:"type:uuid;not null;uniqueIndex:idx_recipe_favorites_user_recipe" json:"recipe_id"`
	CreatedAt time.Time `json:"created_at"`
	Recipe    Recipe    `gorm:"foreignKey:RecipeID" json:"-"`
}

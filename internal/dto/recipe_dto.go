package dto

import "github.com/ketomate/backend/internal/models"

type RecipeIngredient struct {
	Name   string `json:"name"`
	Amount string `json:"amount"`
}

type GeneratedRecipe struct {
	Title        string             `json:"title"`
	Ingredients  []RecipeIngredient `json:"ingredients"`
	Instructions string             `json:"instructions"`
	Macros       Macros             `json:"macros"`
	CookingTime  int                `json:"cooking_time"`
	Difficulty   string             `json:"difficulty"`
	Category     string             `json:"category"`
}

type GenerateRecipeRequest struct {
	Ingredients []string `json:"ingredients"`
}

type CreateRecipeRequest struct {
	Title        string             `json:"title"`
	Ingredients  []RecipeIngredient `json:"ingredients"`
	Instructions string             `json:"instructions"`
	Macros       *Macros            `json:"macros,omitempty"`
	CookingTime  int                `json:"cooking_time"`
	Difficulty   string             `json:"difficulty"`
	Category     string             `json:"category"`
	IsPublic     bool               `json:"is_public"`
}

type RecipeListResponse struct {
	Recipes []models.Recipe `json:"recipes"`
	Total   int64           `json:"total"`
	Page    int             `json:"page"`
}

type FavoriteResponse struct {
	Favorited bool `json:"favorited"`
}

type UpdateVisibilityRequest struct {
	IsPublic bool `json:"is_public"`
}

type PantryResponse struct {
	Ingredients []string `json:"ingredients"`
}

type PantryItemRequest struct {
	IngredientName string `json:"ingredient_name"`
}

type ReplacePantryRequest struct {
	Ingredients []string `json:"ingredients"`
}

package services

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"log/slog"
	"strings"

	"github.com/google/uuid"
	"github.com/ketomate/backend/internal/dto"
	"github.com/ketomate/backend/internal/identity"
	"github.com/ketomate/backend/internal/models"
	"gorm.io/datatypes"
	"gorm.io/gorm"
)

var (
	ErrRecipeNotFound = errors.New("recipe not found")
	ErrNotRecipeOwner = errors.New("recipe belongs to another user")
	ErrRecipeNotKeto  = errors.New("recipe exceeds keto carb limit")
	ErrNoIngredients  = errors.New("at least one ingredient is required")
)

const recipesPerPage = 20

const recipePromptTemplate = `You are a keto recipe developer. Create one keto recipe using ONLY these available ingredients (pantry staples like salt, pepper, oil, butter and water may be assumed): %s

Hard requirements:
- At most %dg net carbs per serving.
- Realistic macros for the ingredient amounts used.
- difficulty must be one of: easy, medium, hard.
- category must be one of: breakfast, lunch, dinner, snack, dessert.
- cooking_time is total minutes as an integer.

Return ONLY a valid JSON object in this exact structure:
{
  "title": "Creamy Garlic Butter Chicken",
  "ingredients": [
    {"name": "chicken thighs", "amount": "500g"},
    {"name": "heavy cream", "amount": "200ml"}
  ],
  "instructions": "1. Season the chicken...\n2. Sear over medium heat...",
  "macros": {"carbs": 4.0, "protein": 38.0, "fat": 29.0, "calories": 430},
  "cooking_time": 35,
  "difficulty": "easy",
  "category": "dinner"
}`

type RecipeService struct {
	db     *gorm.DB
	gemini *GeminiClient
	pantry *PantryService
}

func NewRecipeService(db *gorm.DB, gemini *GeminiClient, pantry *PantryService) *RecipeService {
	return &RecipeService{db: db, gemini: gemini, pantry: pantry}
}

// Generate asks the model for a keto recipe from the given ingredients,
// falling back to the user's pantry when none are provided.
func (s *RecipeService) Generate(ctx context.Context, userID uuid.UUID, req *dto.GenerateRecipeRequest) (*dto.GeneratedRecipe, error) {
	ingredients := req.Ingredients
	if len(ingredients) == 0 {
		pantry, err := s.pantry.List(userID)
		if err != nil {
			return nil, err
		}
		ingredients = pantry
	}
	if len(ingredients) == 0 {
		return nil, ErrNoIngredients
	}

	prompt := fmt.Sprintf(recipePromptTemplate, strings.Join(ingredients, ", "), models.KetoMaxCarbsPerServing)
	raw, err := s.gemini.Prompt(ctx, prompt)
	if err != nil {
		return nil, fmt.Errorf("recipe generation failed: %w", err)
	}

	var recipe dto.GeneratedRecipe
	if err := json.Unmarshal([]byte(ExtractJSON(raw)), &recipe); err != nil {
		slog.Error("unparseable generated recipe", "error", err)
		return nil, fmt.Errorf("recipe generation returned an unexpected format: %w", err)
	}

	if recipe.Title == "" || len(recipe.Ingredients) == 0 {
		return nil, errors.New("recipe generation returned an incomplete recipe")
	}
	if recipe.Macros.Carbs > models.KetoMaxCarbsPerServing {
		return nil, ErrRecipeNotKeto
	}
	if !contains(models.RecipeDifficulties, recipe.Difficulty) {
		recipe.Difficulty = "medium"
	}
	if !contains(models.RecipeCategories, recipe.Category) {
		recipe.Category = "dinner"
	}

	return &recipe, nil
}

// Create saves a recipe for the user. Keto validation applies here too;
// a saved recipe is the one artifact other users may see.
func (s *RecipeService) Create(userID uuid.UUID, req *dto.CreateRecipeRequest) (*models.Recipe, error) {
	if strings.TrimSpace(req.Title) == "" {
		return nil, errors.New("title is required")
	}
	if len(req.Ingredients) == 0 {
		return nil, ErrNoIngredients
	}
	if req.Macros != nil && req.Macros.Carbs > models.KetoMaxCarbsPerServing {
		return nil, ErrRecipeNotKeto
	}
	if req.Difficulty != "" && !contains(models.RecipeDifficulties, req.Difficulty) {
		return nil, fmt.Errorf("difficulty must be one of %s", strings.Join(models.RecipeDifficulties, ", "))
	}
	if req.Category != "" && !contains(models.RecipeCategories, req.Category) {
		return nil, fmt.Errorf("category must be one of %s", strings.Join(models.RecipeCategories, ", "))
	}

	ingredientsJSON, err := json.Marshal(req.Ingredients)
	if err != nil {
		return nil, fmt.Errorf("failed to marshal ingredients: %w", err)
	}

	recipe := models.Recipe{
		ID:           uuid.New(),
		UserID:       &userID,
		Title:        strings.TrimSpace(req.Title),
		Ingredients:  datatypes.JSON(ingredientsJSON),
		Instructions: req.Instructions,
		IsPublic:     req.IsPublic,
	}
	if req.CookingTime > 0 {
		recipe.CookingTime = &req.CookingTime
	}
	if req.Difficulty != "" {
		recipe.Difficulty = &req.Difficulty
	}
	if req.Category != "" {
		recipe.Category = &req.Category
	}
	if req.Macros != nil {
		macrosJSON, err := json.Marshal(req.Macros)
		if err != nil {
			return nil, fmt.Errorf("failed to marshal macros: %w", err)
		}
		recipe.Macros = datatypes.JSON(macrosJSON)
	}

	if err := s.db.Create(&recipe).Error; err != nil {
		return nil, fmt.Errorf("failed to create recipe: %w", err)
	}
	return &recipe, nil
}

// List returns the user's own recipes plus everyone's public ones,
// newest first, optionally filtered by category.
func (s *RecipeService) List(userID uuid.UUID, category string, page int) (*dto.RecipeListResponse, error) {
	if page < 1 {
		page = 1
	}

	query := s.db.Model(&models.Recipe{}).
		Where("user_id = ? OR is_public = true", userID)
	if category != "" {
		query = query.Where("category = ?", category)
	}

	var total int64
	if err := query.Count(&total).Error; err != nil {
		return nil, fmt.Errorf("failed to count recipes: %w", err)
	}

	var recipes []models.Recipe
	err := query.Order("created_at DESC").
		Limit(recipesPerPage).
		Offset((page - 1) * recipesPerPage).
		Find(&recipes).Error
	if err != nil {
		return nil, fmt.Errorf("failed to list recipes: %w", err)
	}

	return &dto.RecipeListResponse{Recipes: recipes, Total: total, Page: page}, nil
}

// Get returns a recipe the user owns or any public recipe.
func (s *RecipeService) Get(userID, recipeID uuid.UUID) (*models.Recipe, error) {
	var recipe models.Recipe
	err := s.db.Where("id = ? AND (user_id = ? OR is_public = true)", recipeID, userID).
		First(&recipe).Error
	if err != nil {
		return nil, ErrRecipeNotFound
	}
	return &recipe, nil
}

func (s *RecipeService) Delete(userID, recipeID uuid.UUID) error {
	recipe, err := s.ownedRecipe(userID, recipeID)
	if err != nil {
		return err
	}

	return s.db.Transaction(func(tx *gorm.DB) error {
		if err := tx.Where("recipe_id = ?", recipe.ID).Delete(&models.RecipeFavorite{}).Error; err != nil {
			return err
		}
		return tx.Delete(recipe).Error
	})
}

func (s *RecipeService) SetVisibility(userID, recipeID uuid.UUID, isPublic bool) (*models.Recipe, error) {
	recipe, err := s.ownedRecipe(userID, recipeID)
	if err != nil {
		return nil, err
	}

	if err := s.db.Model(recipe).Update("is_public", isPublic).Error; err != nil {
		return nil, fmt.Errorf("failed to update visibility: %w", err)
	}
	recipe.IsPublic = isPublic
	return recipe, nil
}

// ToggleFavorite flips the favorite flag and reports the new state.
func (s *RecipeService) ToggleFavorite(userID, recipeID uuid.UUID) (bool, error) {
	if _, err := s.Get(userID, recipeID); err != nil {
		return false, err
	}

	var existing models.RecipeFavorite
	err := s.db.Scopes(identity.ForUser(userID)).
		Where("recipe_id = ?", recipeID).
		First(&existing).Error

	if err == nil {
		if err := s.db.Delete(&existing).Error; err != nil {
			return false, fmt.Errorf("failed to remove favorite: %w", err)
		}
		return false, nil
	}

	favorite := models.RecipeFavorite{
		ID:       uuid.New(),
		UserID:   userID,
		RecipeID: recipeID,
	}
	if err := s.db.Create(&favorite).Error; err != nil {
		return false, fmt.Errorf("failed to add favorite: %w", err)
	}
	return true, nil
}

// ListFavorites returns the user's favorited recipes, newest favorite first.
func (s *RecipeService) ListFavorites(userID uuid.UUID) ([]models.Recipe, error) {
	var favorites []models.RecipeFavorite
	err := s.db.Scopes(identity.ForUser(userID)).
		Preload("Recipe").
		Order("created_at DESC").
		Find(&favorites).Error
	if err != nil {
		return nil, fmt.Errorf("failed to list favorites: %w", err)
	}

	recipes := make([]models.Recipe, 0, len(favorites))
	for _, fav := range favorites {
		recipes = append(recipes, fav.Recipe)
	}
	return recipes, nil
}

func (s *RecipeService) ownedRecipe(userID, recipeID uuid.UUID) (*models.Recipe, error) {
	var recipe models.Recipe
	if err := s.db.First(&recipe, "id = ?", recipeID).Error; err != nil {
		return nil, ErrRecipeNotFound
	}
	if recipe.UserID == nil || *recipe.UserID != userID {
		return nil, ErrNotRecipeOwner
	}
	return &recipe, nil
}

func contains(values []string, v string) bool {
	for _, value := range values {
		if value == v {
			return true
		}
	}
	return false
}

package services

import (
	"errors"
	"fmt"
	"strings"

	"github.com/google/uuid"
	"github.com/ketomate/backend/internal/identity"
	"github.com/ketomate/backend/internal/models"
	"gorm.io/gorm"
	"gorm.io/gorm/clause"
)

var ErrPantryItemNotFound = errors.New("pantry item not found")

type PantryService struct {
	db *gorm.DB
}

func NewPantryService(db *gorm.DB) *PantryService {
	return &PantryService{db: db}
}

func (s *PantryService) List(userID uuid.UUID) ([]string, error) {
	var items []models.PantryItem
	err := s.db.Scopes(identity.ForUser(userID)).
		Order("ingredient_name ASC").
		Find(&items).Error
	if err != nil {
		return nil, fmt.Errorf("failed to list pantry: %w", err)
	}

	names := make([]string, 0, len(items))
	for _, item := range items {
		names = append(names, item.IngredientName)
	}
	return names, nil
}

// Add stores an ingredient. Duplicates are silently absorbed so the
// client can re-submit without special-casing.
func (s *PantryService) Add(userID uuid.UUID, name string) error {
	name = normalizeIngredient(name)
	if name == "" {
		return errors.New("ingredient name is required")
	}

	item := models.PantryItem{
		ID:             uuid.New(),
		UserID:         userID,
		IngredientName: name,
	}
	return s.db.Clauses(clause.OnConflict{DoNothing: true}).Create(&item).Error
}

func (s *PantryService) Remove(userID uuid.UUID, name string) error {
	result := s.db.Scopes(identity.ForUser(userID)).
		Where("ingredient_name = ?", normalizeIngredient(name)).
		Delete(&models.PantryItem{})
	if result.Error != nil {
		return fmt.Errorf("failed to remove pantry item: %w", result.Error)
	}
	if result.RowsAffected == 0 {
		return ErrPantryItemNotFound
	}
	return nil
}

// Replace swaps the entire pantry in one transaction.
func (s *PantryService) Replace(userID uuid.UUID, names []string) ([]string, error) {
	seen := make(map[string]bool)
	items := make([]models.PantryItem, 0, len(names))
	for _, name := range names {
		name = normalizeIngredient(name)
		if name == "" || seen[name] {
			continue
		}
		seen[name] = true
		items = append(items, models.PantryItem{
			ID:             uuid.New(),
			UserID:         userID,
			IngredientName: name,
		})
	}

	err := s.db.Transaction(func(tx *gorm.DB) error {
		if err := tx.Scopes(identity.ForUser(userID)).Delete(&models.PantryItem{}).Error; err != nil {
			return err
		}
		if len(items) == 0 {
			return nil
		}
		return tx.Create(&items).Error
	})
	if err != nil {
		return nil, fmt.Errorf("failed to replace pantry: %w", err)
	}

	return s.List(userID)
}

func normalizeIngredient(name string) string {
	return strings.ToLower(strings.TrimSpace(name))
}

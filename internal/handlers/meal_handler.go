package handlers

import (
	"errors"

	"github.com/gofiber/fiber/v2"
	"github.com/ketomate/backend/internal/dto"
	"github.com/ketomate/backend/internal/identity"
	"github.com/ketomate/backend/internal/services"
)

type MealHandler struct {
	mealService *services.MealService
}

func NewMealHandler(mealService *services.MealService) *MealHandler {
	return &MealHandler{mealService: mealService}
}

// Analyze runs a meal photo through the vision model without logging it.
func (h *MealHandler) Analyze(c *fiber.Ctx) error {
	if _, err := identity.GetUserID(c); err != nil {
		return c.Status(fiber.StatusUnauthorized).JSON(dto.ErrorResponse{
			Error: true, Message: "Unauthorized",
		})
	}

	var req dto.AnalyzeMealRequest
	if err := c.BodyParser(&req); err != nil {
		return c.Status(fiber.StatusBadRequest).JSON(dto.ErrorResponse{
			Error: true, Message: "Invalid request body",
		})
	}

	analysis, err := h.mealService.AnalyzeMealImage(c.Context(), &req)
	if err != nil {
		if errors.Is(err, services.ErrInvalidImage) {
			return c.Status(fiber.StatusBadRequest).JSON(dto.ErrorResponse{
				Error: true, Message: err.Error(),
			})
		}
		return c.Status(fiber.StatusBadGateway).JSON(dto.ErrorResponse{
			Error: true, Message: "Meal analysis is unavailable right now",
		})
	}

	return c.JSON(analysis)
}

func (h *MealHandler) Log(c *fiber.Ctx) error {
	userID, err := identity.GetUserID(c)
	if err != nil {
		return c.Status(fiber.StatusUnauthorized).JSON(dto.ErrorResponse{
			Error: true, Message: "Unauthorized",
		})
	}

	var req dto.LogMealRequest
	if err := c.BodyParser(&req); err != nil {
		return c.Status(fiber.StatusBadRequest).JSON(dto.ErrorResponse{
			Error: true, Message: "Invalid request body",
		})
	}

	entry, err := h.mealService.LogMeal(c.Context(), userID, &req)
	if err != nil {
		if errors.Is(err, services.ErrInvalidImage) {
			return c.Status(fiber.StatusBadRequest).JSON(dto.ErrorResponse{
				Error: true, Message: err.Error(),
			})
		}
		return c.Status(fiber.StatusBadRequest).JSON(dto.ErrorResponse{
			Error: true, Message: err.Error(),
		})
	}

	return c.Status(fiber.StatusCreated).JSON(entry)
}

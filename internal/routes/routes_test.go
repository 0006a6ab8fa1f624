package routes

import (
	"testing"

	"github.com/gofiber/fiber/v2"
	"github.com/ketomate/backend/internal/config"
	"github.com/ketomate/backend/internal/handlers"
	"github.com/ketomate/backend/internal/services"
)

// Emailed links and the OAuth hand-off all build URLs from
// services.CallbackPath; the route table must serve that exact path.
func TestCallbackMountedWhereLinksPoint(t *testing.T) {
	t.Parallel()
	cfg := &config.Config{}
	app := fiber.New()
	Setup(app, cfg,
		handlers.NewAuthHandler(nil),
		handlers.NewCallbackHandler(nil, nil, cfg),
		handlers.NewHealthHandler(),
		handlers.NewProfileHandler(nil),
		handlers.NewJournalHandler(nil),
		handlers.NewMealHandler(nil),
		handlers.NewRecipeHandler(nil),
		handlers.NewPantryHandler(nil),
		handlers.NewReportHandler(nil),
		handlers.NewFastingHandler(nil),
	)

	for _, route := range app.GetRoutes() {
		if route.Method == fiber.MethodGet && route.Path == services.CallbackPath {
			return
		}
	}
	t.Fatalf("no GET route registered at %s", services.CallbackPath)
}

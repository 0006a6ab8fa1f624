package routes

import (
	"time"

	"github.com/gofiber/fiber/v2"
	"github.com/gofiber/fiber/v2/middleware/limiter"
	"github.com/ketomate/backend/internal/config"
	"github.com/ketomate/backend/internal/handlers"
	"github.com/ketomate/backend/internal/middleware"
)

func Setup(
	app *fiber.App,
	cfg *config.Config,
	authHandler *handlers.AuthHandler,
	callbackHandler *handlers.CallbackHandler,
	healthHandler *handlers.HealthHandler,
	profileHandler *handlers.ProfileHandler,
	journalHandler *handlers.JournalHandler,
	mealHandler *handlers.MealHandler,
	recipeHandler *handlers.RecipeHandler,
	pantryHandler *handlers.PantryHandler,
	reportHandler *handlers.ReportHandler,
	fastingHandler *handlers.FastingHandler,
) {
	api := app.Group("/api")

	// General API rate limiter: 60 req/min per IP
	api.Use(limiter.New(limiter.Config{
		Max:               60,
		Expiration:        1 * time.Minute,
		LimiterMiddleware: limiter.SlidingWindow{},
		KeyGenerator:      func(c *fiber.Ctx) string { return c.IP() },
	}))

	api.Get("/health", healthHandler.Check)

	// Auth — public, with a stricter limit: 10 req/min per IP
	auth := api.Group("/auth")
	auth.Use(limiter.New(limiter.Config{
		Max:               10,
		Expiration:        1 * time.Minute,
		LimiterMiddleware: limiter.SlidingWindow{},
		KeyGenerator:      func(c *fiber.Ctx) string { return c.IP() },
	}))
	auth.Post("/register", authHandler.Register)
	auth.Post("/login", authHandler.Login)
	auth.Post("/refresh", authHandler.Refresh)
	auth.Post("/google", authHandler.GoogleSignIn)
	auth.Post("/forgot-password", authHandler.ForgotPassword)

	// Every email link and OAuth hand-off lands here
	auth.Get("/callback", callbackHandler.Handle)

	// Protected auth routes, applied per-route so the public ones above
	// stay reachable without a token
	api.Post("/auth/logout", middleware.JWTProtected(cfg), authHandler.Logout)
	api.Post("/auth/reset-password", middleware.JWTProtected(cfg), authHandler.ResetPassword)
	api.Delete("/auth/account", middleware.JWTProtected(cfg), authHandler.DeleteAccount)
	api.Get("/auth/me", middleware.JWTProtected(cfg), authHandler.Me)

	protected := api.Group("", middleware.JWTProtected(cfg))

	profile := protected.Group("/profile")
	profile.Get("/", profileHandler.Get)
	profile.Put("/", profileHandler.Update)
	profile.Get("/status", profileHandler.Status)
	profile.Get("/cycle", profileHandler.CycleStatus)

	journal := protected.Group("/journal")
	journal.Post("/", journalHandler.Create)
	journal.Get("/", journalHandler.List)
	journal.Get("/:id", journalHandler.Get)
	journal.Delete("/:id", journalHandler.Delete)

	meals := protected.Group("/meals")
	meals.Post("/analyze", mealHandler.Analyze)
	meals.Post("/", mealHandler.Log)

	recipes := protected.Group("/recipes")
	recipes.Post("/generate", recipeHandler.Generate)
	recipes.Post("/", recipeHandler.Create)
	recipes.Get("/", recipeHandler.List)
	recipes.Get("/favorites", recipeHandler.ListFavorites)
	recipes.Get("/:id", recipeHandler.Get)
	recipes.Delete("/:id", recipeHandler.Delete)
	recipes.Put("/:id/visibility", recipeHandler.SetVisibility)
	recipes.Post("/:id/favorite", recipeHandler.ToggleFavorite)

	pantry := protected.Group("/pantry")
	pantry.Get("/", pantryHandler.List)
	pantry.Post("/", pantryHandler.Add)
	pantry.Put("/", pantryHandler.Replace)
	pantry.Delete("/:name", pantryHandler.Remove)

	fasting := protected.Group("/fasting")
	fasting.Post("/start", fastingHandler.Start)
	fasting.Post("/end", fastingHandler.End)
	fasting.Get("/status", fastingHandler.Status)

	protected.Get("/reports/monthly", reportHandler.Monthly)
}

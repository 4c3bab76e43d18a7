package http

import (
	"github.com/gofiber/fiber/v2"
)

// SetupRoutes configures all HTTP routes
func SetupRoutes(app *fiber.App, handler *Handler) {
	// Health check
	app.Get("/health", handler.HealthCheck)

	// API v1 routes
	api := app.Group("/api/v1")
	{
		// Dashboard
		api.Get("/dashboard", handler.GetDashboard)

		// Crop tracking
		api.Get("/crops", handler.ListCrops)
		api.Post("/crops", handler.CreateCrop)
		api.Get("/crops/:id", handler.GetCrop)
		api.Get("/crops/:id/insights", handler.GetCropInsights)

		// Weather and location
		api.Get("/weather", handler.GetWeather)
		api.Get("/geocode/reverse", handler.ReverseGeocode)

		// Advisory screens
		api.Get("/market", handler.GetMarketPrices)
		api.Post("/planner/rotation", handler.PlanRotation)
		api.Get("/suggestions", handler.GetSuggestions)

		// Live harvest-date estimation for the add-crop form
		api.Post("/estimates/:session", handler.UpdateEstimate)
		api.Get("/estimates/:session", handler.PollEstimate)
	}
}

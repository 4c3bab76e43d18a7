package http

import (
	"errors"
	"log"
	"strconv"
	"sync"
	"time"

	"github.com/gofiber/fiber/v2"
	"github.com/google/uuid"

	"github.com/pavans5097/EVS-pro/internal/domain"
	"github.com/pavans5097/EVS-pro/internal/estimator"
	"github.com/pavans5097/EVS-pro/internal/service"
)

// Handler contains all HTTP handlers
type Handler struct {
	repo      domain.CropRepository
	weather   service.WeatherProvider
	advisory  service.Advisor
	resolver  *estimator.Resolver
	sessions  *estimator.Sessions
	dashboard *service.DashboardService
}

// NewHandler creates a new handler
func NewHandler(repo domain.CropRepository, weather service.WeatherProvider, advisory service.Advisor,
	resolver *estimator.Resolver, sessions *estimator.Sessions, dashboard *service.DashboardService) *Handler {
	return &Handler{
		repo:      repo,
		weather:   weather,
		advisory:  advisory,
		resolver:  resolver,
		sessions:  sessions,
		dashboard: dashboard,
	}
}

// HealthCheck returns service health status
func (h *Handler) HealthCheck(c *fiber.Ctx) error {
	status := "ok"
	if err := h.repo.Health(c.Context()); err != nil {
		status = "degraded"
	}
	return c.JSON(fiber.Map{
		"status":  status,
		"service": "evs-pro-backend",
		"version": "1.0.0",
	})
}

// GetDashboard returns the aggregated farm overview
func (h *Handler) GetDashboard(c *fiber.Ctx) error {
	data, err := h.dashboard.GetOverview(c.Context())
	if err != nil {
		return fiber.NewError(fiber.StatusInternalServerError, "Failed to fetch dashboard data")
	}

	return c.JSON(fiber.Map{
		"success": true,
		"data":    data,
	})
}

// ListCrops returns every tracked crop with its timeline progress
func (h *Handler) ListCrops(c *fiber.Ctx) error {
	crops, err := h.repo.List(c.Context())
	if err != nil {
		return fiber.NewError(fiber.StatusInternalServerError, "Failed to fetch crops")
	}

	now := time.Now()
	summaries := make([]domain.CropSummary, 0, len(crops))
	for _, crop := range crops {
		summaries = append(summaries, domain.CropSummary{
			Crop:     crop,
			Timeline: crop.Timeline(now),
		})
	}

	return c.JSON(fiber.Map{
		"success": true,
		"data":    summaries,
		"count":   len(summaries),
	})
}

// createCropRequest is the add-crop form payload. The harvest date is
// optional; a missing one is resolved before the crop is persisted.
type createCropRequest struct {
	Name                string  `json:"name"`
	Variety             string  `json:"variety"`
	Area                float64 `json:"area"`
	Location            string  `json:"location"`
	SowingDate          string  `json:"sowingDate"`
	ExpectedHarvestDate string  `json:"expectedHarvestDate"`
	Notes               string  `json:"notes"`
}

// CreateCrop validates and persists a new crop record
func (h *Handler) CreateCrop(c *fiber.Ctx) error {
	ctx := c.Context()

	var req createCropRequest
	if err := c.BodyParser(&req); err != nil {
		return fiber.NewError(fiber.StatusBadRequest, "Invalid request body")
	}

	crop := domain.Crop{
		ID:                  uuid.NewString(),
		Name:                req.Name,
		Variety:             req.Variety,
		Area:                req.Area,
		Location:            req.Location,
		SowingDate:          req.SowingDate,
		ExpectedHarvestDate: req.ExpectedHarvestDate,
		Status:              domain.StatusGrowing,
		Notes:               req.Notes,
	}
	if err := crop.Validate(); err != nil {
		return fiber.NewError(fiber.StatusBadRequest, err.Error())
	}

	if crop.ExpectedHarvestDate == "" {
		crop.ExpectedHarvestDate = h.resolver.Resolve(ctx, crop.Name, crop.SowingDate, crop.Location)
	}

	if err := h.repo.Append(ctx, crop); err != nil {
		return fiber.NewError(fiber.StatusInternalServerError, "Failed to save crop")
	}

	return c.Status(fiber.StatusCreated).JSON(fiber.Map{
		"success": true,
		"data":    crop,
	})
}

// GetCrop returns a single crop with its timeline progress
func (h *Handler) GetCrop(c *fiber.Ctx) error {
	crop, err := h.repo.FindByID(c.Context(), c.Params("id"))
	if err != nil {
		if errors.Is(err, domain.ErrCropNotFound) {
			return fiber.NewError(fiber.StatusNotFound, "Crop not found")
		}
		return fiber.NewError(fiber.StatusInternalServerError, "Failed to fetch crop")
	}

	return c.JSON(fiber.Map{
		"success": true,
		"data": domain.CropSummary{
			Crop:     crop,
			Timeline: crop.Timeline(time.Now()),
		},
	})
}

// GetCropInsights returns pest alerts and the fertilizer plan for one crop.
// The two advisory calls run concurrently; each degrades on its own.
func (h *Handler) GetCropInsights(c *fiber.Ctx) error {
	ctx := c.Context()

	crop, err := h.repo.FindByID(ctx, c.Params("id"))
	if err != nil {
		if errors.Is(err, domain.ErrCropNotFound) {
			return fiber.NewError(fiber.StatusNotFound, "Crop not found")
		}
		return fiber.NewError(fiber.StatusInternalServerError, "Failed to fetch crop")
	}

	weather, werr := h.weather.WeatherFor(ctx, crop.Location)
	if werr != nil {
		log.Printf("insights: weather fetch failed for %q: %v", crop.Location, werr)
		weather = domain.DefaultWeather(crop.Location)
	}

	var (
		wg         sync.WaitGroup
		alerts     []domain.PestAlert
		fertilizer []domain.FertilizerRecommendation
	)

	wg.Add(2)
	go func() {
		defer wg.Done()
		alerts = h.advisory.PestAlerts(ctx, crop, weather)
	}()
	go func() {
		defer wg.Done()
		fertilizer = h.advisory.FertilizerPlan(ctx, crop)
	}()
	wg.Wait()

	return c.JSON(fiber.Map{
		"success": true,
		"data": fiber.Map{
			"crop":       crop,
			"weather":    weather,
			"pestAlerts": alerts,
			"fertilizer": fertilizer,
		},
	})
}

// GetWeather returns current conditions for a named location
func (h *Handler) GetWeather(c *fiber.Ctx) error {
	location := c.Query("location")
	if location == "" {
		return fiber.NewError(fiber.StatusBadRequest, "location query parameter is required")
	}

	weather, err := h.weather.WeatherFor(c.Context(), location)
	if err != nil {
		if errors.Is(err, service.ErrLocationNotFound) {
			return fiber.NewError(fiber.StatusNotFound, "Location not found")
		}
		return fiber.NewError(fiber.StatusInternalServerError, "Failed to fetch weather data")
	}

	return c.JSON(fiber.Map{
		"success": true,
		"data":    weather,
	})
}

// GetMarketPrices returns generated mandi prices around a location
func (h *Handler) GetMarketPrices(c *fiber.Ctx) error {
	location := c.Query("location", "India")

	prices := h.advisory.MarketPrices(c.Context(), location)
	return c.JSON(fiber.Map{
		"success": true,
		"data":    prices,
		"count":   len(prices),
	})
}

// rotationRequest is the crop-rotation planner payload
type rotationRequest struct {
	PreviousCrop string  `json:"previousCrop"`
	PlotSize     float64 `json:"plotSize"`
	Location     string  `json:"location"`
}

// PlanRotation suggests follow-on crops after a harvest
func (h *Handler) PlanRotation(c *fiber.Ctx) error {
	var req rotationRequest
	if err := c.BodyParser(&req); err != nil {
		return fiber.NewError(fiber.StatusBadRequest, "Invalid request body")
	}
	if req.PreviousCrop == "" {
		return fiber.NewError(fiber.StatusBadRequest, "previousCrop is required")
	}

	plan := h.advisory.RotationAdvice(c.Context(), req.PreviousCrop, req.PlotSize, req.Location)
	return c.JSON(fiber.Map{
		"success": true,
		"data":    plan,
	})
}

// GetSuggestions recommends crops to sow at a location around a date
func (h *Handler) GetSuggestions(c *fiber.Ctx) error {
	location := c.Query("location")
	if location == "" {
		return fiber.NewError(fiber.StatusBadRequest, "location query parameter is required")
	}
	date := c.Query("date", time.Now().Format(domain.DateLayout))

	suggestions := h.advisory.CropSuggestions(c.Context(), location, date)
	return c.JSON(fiber.Map{
		"success": true,
		"data":    suggestions,
		"count":   len(suggestions),
	})
}

// ReverseGeocode names the nearest city/district for a coordinate pair
func (h *Handler) ReverseGeocode(c *fiber.Ctx) error {
	lat, errLat := strconv.ParseFloat(c.Query("lat"), 64)
	lon, errLon := strconv.ParseFloat(c.Query("lon"), 64)
	if errLat != nil || errLon != nil {
		return fiber.NewError(fiber.StatusBadRequest, "lat and lon query parameters are required")
	}

	name := h.advisory.ReverseGeocode(c.Context(), lat, lon)
	return c.JSON(fiber.Map{
		"success": true,
		"data":    fiber.Map{"location": name},
	})
}

// estimateRequest is one keystroke-level update to an estimate session
type estimateRequest struct {
	CropName   string `json:"cropName"`
	SowingDate string `json:"sowingDate"`
	Location   string `json:"location"`
}

// UpdateEstimate feeds the latest form input into a debounced estimate
// session. The resolution runs after the quiet period; clients poll for it.
func (h *Handler) UpdateEstimate(c *fiber.Ctx) error {
	var req estimateRequest
	if err := c.BodyParser(&req); err != nil {
		return fiber.NewError(fiber.StatusBadRequest, "Invalid request body")
	}

	gen := h.sessions.Input(c.Params("session"), estimator.Input{
		CropName:   req.CropName,
		SowingDate: req.SowingDate,
		Location:   req.Location,
	})

	return c.Status(fiber.StatusAccepted).JSON(fiber.Map{
		"success":    true,
		"generation": gen,
	})
}

// PollEstimate returns the latest committed estimate for a session
func (h *Handler) PollEstimate(c *fiber.Ctx) error {
	snap, ok := h.sessions.Poll(c.Params("session"))
	if !ok {
		return fiber.NewError(fiber.StatusNotFound, "Unknown estimate session")
	}

	return c.JSON(fiber.Map{
		"success": true,
		"data": fiber.Map{
			"generation":  snap.Generation,
			"harvestDate": snap.HarvestDate,
			"pending":     snap.Pending,
		},
	})
}

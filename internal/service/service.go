package service

import (
	"context"

	"github.com/pavans5097/EVS-pro/internal/domain"
)

// CropRepository is re-exported from domain for convenience
type CropRepository = domain.CropRepository

// WeatherProvider resolves a place name to current conditions.
type WeatherProvider interface {
	WeatherFor(ctx context.Context, location string) (domain.WeatherData, error)
}

// Advisor is the advisory gateway contract consumed by delivery and the
// dashboard. Every operation absorbs its own failures and returns the
// documented fallback instead of an error, except EstimateHarvestDate,
// whose fallback lives in the estimator package.
type Advisor interface {
	PestAlerts(ctx context.Context, crop domain.Crop, weather domain.WeatherData) []domain.PestAlert
	FertilizerPlan(ctx context.Context, crop domain.Crop) []domain.FertilizerRecommendation
	RotationAdvice(ctx context.Context, prevCrop string, plotSize float64, location string) *domain.RotationPlan
	MarketPrices(ctx context.Context, location string) []domain.MarketPrice
	CropSuggestions(ctx context.Context, location, date string) []domain.CropSuggestion
	DailyTip(ctx context.Context, crop domain.Crop, weather domain.WeatherData) string
	ReverseGeocode(ctx context.Context, lat, lon float64) string
	EstimateHarvestDate(ctx context.Context, cropName, sowingDate, location string) (string, error)
}

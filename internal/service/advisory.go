package service

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"log"
	"strings"
	"time"

	"google.golang.org/genai"

	"github.com/pavans5097/EVS-pro/internal/domain"
)

const defaultAdvisoryModel = "gemini-2.5-flash"

// advisoryTimeout bounds every gateway call. No retry, no backoff: a call
// that fails or times out degrades to its documented fallback.
const advisoryTimeout = 20 * time.Second

var errAdvisoryOffline = errors.New("advisory: no API key configured")

// generator abstracts the generative-language backend so the service can
// be exercised against a fake in tests.
type generator interface {
	GenerateJSON(ctx context.Context, prompt string, schema *genai.Schema) (string, error)
	GenerateText(ctx context.Context, prompt string) (string, error)
}

// geminiGenerator implements generator over the Gemini API.
type geminiGenerator struct {
	client *genai.Client
	model  string
}

func (g *geminiGenerator) GenerateJSON(ctx context.Context, prompt string, schema *genai.Schema) (string, error) {
	resp, err := g.client.Models.GenerateContent(ctx, g.model, genai.Text(prompt), &genai.GenerateContentConfig{
		ResponseMIMEType: "application/json",
		ResponseSchema:   schema,
	})
	if err != nil {
		return "", fmt.Errorf("advisory: generate failed: %w", err)
	}
	return resp.Text(), nil
}

func (g *geminiGenerator) GenerateText(ctx context.Context, prompt string) (string, error) {
	resp, err := g.client.Models.GenerateContent(ctx, g.model, genai.Text(prompt), nil)
	if err != nil {
		return "", fmt.Errorf("advisory: generate failed: %w", err)
	}
	return resp.Text(), nil
}

// AdvisoryService produces agronomy suggestions through the Gemini API,
// constraining every structured operation with a declared response schema.
// A response that fails to parse is treated exactly like a failed call.
// No failure ever propagates to the delivery layer; each operation
// degrades to its documented fallback.
type AdvisoryService struct {
	gen generator
}

// NewAdvisoryService creates the advisory gateway. An empty API key yields
// an offline service whose every operation returns its fallback.
func NewAdvisoryService(apiKey, model string) (*AdvisoryService, error) {
	if model == "" {
		model = defaultAdvisoryModel
	}
	if apiKey == "" {
		return &AdvisoryService{}, nil
	}

	client, err := genai.NewClient(context.Background(), &genai.ClientConfig{APIKey: apiKey})
	if err != nil {
		return nil, fmt.Errorf("advisory: failed to create Gemini client: %w", err)
	}
	return &AdvisoryService{gen: &geminiGenerator{client: client, model: model}}, nil
}

// PestAlerts analyzes pest and disease risks for a crop under the current
// weather. On failure: empty list, rendered as "no risks detected".
func (s *AdvisoryService) PestAlerts(ctx context.Context, crop domain.Crop, weather domain.WeatherData) []domain.PestAlert {
	prompt := fmt.Sprintf(`Analyze pest and disease risks for %s in %s.
Current weather: %.0f°C, %d%% humidity, %.1fmm rain.
Return a list of potential pests/diseases with severity, description, and prevention measures.`,
		crop.Name, crop.Location, weather.Temperature, weather.Humidity, weather.Rainfall)

	var alerts []domain.PestAlert
	if err := s.callJSON(ctx, prompt, pestAlertSchema, &alerts); err != nil {
		log.Printf("advisory: pest alerts unavailable: %v", err)
		return nil
	}
	return alerts
}

// FertilizerPlan suggests a staged fertilizer schedule for a crop.
// On failure: empty list.
func (s *AdvisoryService) FertilizerPlan(ctx context.Context, crop domain.Crop) []domain.FertilizerRecommendation {
	prompt := fmt.Sprintf(`Suggest a fertilizer schedule for %s (Sown: %s).
Provide 3-4 key stages (e.g., Basal, Vegetative, Flowering). Include quantity per acre and reasoning.`,
		crop.Name, crop.SowingDate)

	var plan []domain.FertilizerRecommendation
	if err := s.callJSON(ctx, prompt, fertilizerSchema, &plan); err != nil {
		log.Printf("advisory: fertilizer plan unavailable: %v", err)
		return nil
	}
	return plan
}

// RotationAdvice suggests follow-on crops after a harvest. On failure: nil.
func (s *AdvisoryService) RotationAdvice(ctx context.Context, prevCrop string, plotSize float64, location string) *domain.RotationPlan {
	prompt := fmt.Sprintf(`I have just harvested %s on a %.1f acre plot in %s.
Suggest optimal next crops for rotation to improve soil health and break pest cycles.`,
		prevCrop, plotSize, location)

	var plan domain.RotationPlan
	if err := s.callJSON(ctx, prompt, rotationSchema, &plan); err != nil {
		log.Printf("advisory: rotation advice unavailable: %v", err)
		return nil
	}
	return &plan
}

// MarketPrices generates current average prices for common crops around a
// location. On failure: empty list.
func (s *AdvisoryService) MarketPrices(ctx context.Context, location string) []domain.MarketPrice {
	prompt := fmt.Sprintf(`Generate a list of current average market prices for common Indian crops (e.g., Wheat, Rice, Cotton, Onions, Tomatoes, Potatoes, Soybeans) in %s or the general region.

IMPORTANT:
- Return ONE entry per crop type (e.g., do not list "Nasik Onion" and "Pune Onion" separately, just "Onion" with an average price).
- The 'region' field should be the State name or "All India Average".
- Prices MUST be in Indian Rupee (INR) per Quintal.
- Provide a 6-month price history trend.`, location)

	var prices []domain.MarketPrice
	if err := s.callJSON(ctx, prompt, marketSchema, &prices); err != nil {
		log.Printf("advisory: market prices unavailable: %v", err)
		return nil
	}
	return prices
}

// CropSuggestions recommends crops to sow at a location around a date.
// On failure: empty list.
func (s *AdvisoryService) CropSuggestions(ctx context.Context, location, date string) []domain.CropSuggestion {
	prompt := fmt.Sprintf(`Suggest 3 best crops to sow in %s (India context) around %s.
Consider: Seasons (Kharif/Rabi), profitability in INR, and weather.
Return 3 distinct recommendations.`, location, date)

	var suggestions []domain.CropSuggestion
	if err := s.callJSON(ctx, prompt, suggestionSchema, &suggestions); err != nil {
		log.Printf("advisory: crop suggestions unavailable: %v", err)
		return nil
	}
	return suggestions
}

// DailyTip returns a short actionable tip for a crop under the current
// weather, with a static encouragement as fallback.
func (s *AdvisoryService) DailyTip(ctx context.Context, crop domain.Crop, weather domain.WeatherData) string {
	if s.gen == nil {
		return "Keep monitoring your crops closely today."
	}

	prompt := fmt.Sprintf(`Give a short, encouraging, and actionable daily tip for a farmer growing %s in %s.
Weather is %s, %.0f°C. Plain text, max 2 sentences.`,
		crop.Name, crop.Location, weather.Condition, weather.Temperature)

	ctx, cancel := context.WithTimeout(ctx, advisoryTimeout)
	defer cancel()
	tip, err := s.gen.GenerateText(ctx, prompt)
	if err != nil {
		log.Printf("advisory: daily tip unavailable: %v", err)
		return "Unable to generate advice at this moment."
	}
	if strings.TrimSpace(tip) == "" {
		return "Keep monitoring your crops closely today."
	}
	return strings.TrimSpace(tip)
}

// ReverseGeocode names the city/district for a coordinate pair, falling
// back to the formatted coordinates.
func (s *AdvisoryService) ReverseGeocode(ctx context.Context, lat, lon float64) string {
	fallback := fmt.Sprintf("%.2f, %.2f", lat, lon)
	if s.gen == nil {
		return fallback
	}

	prompt := fmt.Sprintf("Identify the Indian city/district for: %f, %f. Return ONLY the name.", lat, lon)

	ctx, cancel := context.WithTimeout(ctx, advisoryTimeout)
	defer cancel()
	name, err := s.gen.GenerateText(ctx, prompt)
	if err != nil {
		log.Printf("advisory: reverse geocode unavailable: %v", err)
		return fallback
	}
	name = strings.TrimSpace(name)
	if name == "" {
		return fallback
	}
	return name
}

// EstimateHarvestDate asks the model for an expected harvest date. Unlike
// the other operations this one returns its error: the estimator package
// owns the local fallback and composes it with this call.
func (s *AdvisoryService) EstimateHarvestDate(ctx context.Context, cropName, sowingDate, location string) (string, error) {
	prompt := fmt.Sprintf(`Calculate the expected harvest date for '%s' sown on %s in or near '%s'.
Assume typical Indian growing season duration.
Return a JSON object with 'harvestDate' (YYYY-MM-DD).`, cropName, sowingDate, location)

	var estimate struct {
		HarvestDate    string `json:"harvestDate"`
		DaysToMaturity int    `json:"daysToMaturity"`
	}
	if err := s.callJSON(ctx, prompt, harvestDateSchema, &estimate); err != nil {
		return "", err
	}
	return estimate.HarvestDate, nil
}

// callJSON runs one schema-constrained generation and parses the result.
// A parse failure is folded into the same failure channel as a network
// failure so a schema-violating response never reaches the view layer.
func (s *AdvisoryService) callJSON(ctx context.Context, prompt string, schema *genai.Schema, out any) error {
	if s.gen == nil {
		return errAdvisoryOffline
	}

	ctx, cancel := context.WithTimeout(ctx, advisoryTimeout)
	defer cancel()

	text, err := s.gen.GenerateJSON(ctx, prompt, schema)
	if err != nil {
		return err
	}
	if err := json.Unmarshal([]byte(text), out); err != nil {
		return fmt.Errorf("advisory: failed to decode response: %w", err)
	}
	return nil
}

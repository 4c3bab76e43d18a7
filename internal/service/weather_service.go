package service

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"net/http"
	"net/url"
	"time"

	"github.com/pavans5097/EVS-pro/internal/domain"
	"github.com/pavans5097/EVS-pro/pkg/utils"
)

const (
	defaultGeocodingURL = "https://geocoding-api.open-meteo.com/v1/search"
	defaultForecastURL  = "https://api.open-meteo.com/v1/forecast"
)

// ErrLocationNotFound is returned when geocoding yields no result for a
// place name. Like a stale crop id, this is a normal outcome.
var ErrLocationNotFound = errors.New("location not found")

// WeatherService resolves place names to coordinates and fetches current
// conditions from the Open-Meteo APIs. Neither endpoint needs an API key.
type WeatherService struct {
	httpClient   *http.Client
	geocodingURL string
	forecastURL  string
}

// NewWeatherService creates a new weather service
func NewWeatherService() *WeatherService {
	return &WeatherService{
		httpClient: &http.Client{
			Timeout: 10 * time.Second,
		},
		geocodingURL: defaultGeocodingURL,
		forecastURL:  defaultForecastURL,
	}
}

// Coordinates is a geocoding result.
type Coordinates struct {
	Lat         float64 `json:"lat"`
	Lon         float64 `json:"lon"`
	DisplayName string  `json:"displayName"`
}

// geocodingResponse represents the Open-Meteo geocoding API response
type geocodingResponse struct {
	Results []struct {
		Latitude    float64 `json:"latitude"`
		Longitude   float64 `json:"longitude"`
		Name        string  `json:"name"`
		Admin1      string  `json:"admin1"`
		CountryCode string  `json:"country_code"`
	} `json:"results"`
}

// forecastResponse represents the Open-Meteo forecast API response
type forecastResponse struct {
	Current struct {
		Temperature float64 `json:"temperature_2m"`
		Humidity    int     `json:"relative_humidity_2m"`
		Rain        float64 `json:"rain"`
		WindSpeed   float64 `json:"wind_speed_10m"`
		WeatherCode int     `json:"weather_code"`
	} `json:"current"`
}

// Geocode resolves a place name to coordinates and a display name.
func (s *WeatherService) Geocode(ctx context.Context, location string) (Coordinates, error) {
	q := url.Values{}
	q.Set("name", location)
	q.Set("count", "1")
	q.Set("language", "en")
	q.Set("format", "json")

	var resp geocodingResponse
	if err := s.getJSON(ctx, s.geocodingURL+"?"+q.Encode(), &resp); err != nil {
		return Coordinates{}, fmt.Errorf("weather: geocoding failed: %w", err)
	}
	if len(resp.Results) == 0 {
		return Coordinates{}, ErrLocationNotFound
	}

	r := resp.Results[0]
	region := r.Admin1
	if region == "" {
		region = r.CountryCode
	}
	return Coordinates{
		Lat:         r.Latitude,
		Lon:         r.Longitude,
		DisplayName: fmt.Sprintf("%s, %s", r.Name, region),
	}, nil
}

// CurrentWeather fetches current conditions for a coordinate pair. The
// location name is left empty; callers that geocoded first fill it in.
func (s *WeatherService) CurrentWeather(ctx context.Context, lat, lon float64) (domain.WeatherData, error) {
	q := url.Values{}
	q.Set("latitude", fmt.Sprintf("%f", lat))
	q.Set("longitude", fmt.Sprintf("%f", lon))
	q.Set("current", "temperature_2m,relative_humidity_2m,rain,wind_speed_10m,weather_code")
	q.Set("timezone", "auto")

	var resp forecastResponse
	if err := s.getJSON(ctx, s.forecastURL+"?"+q.Encode(), &resp); err != nil {
		return domain.WeatherData{}, fmt.Errorf("weather: forecast failed: %w", err)
	}

	return domain.WeatherData{
		Temperature: utils.RoundTo(resp.Current.Temperature, 0),
		Humidity:    resp.Current.Humidity,
		Rainfall:    resp.Current.Rain,
		WindSpeed:   resp.Current.WindSpeed,
		Condition:   conditionFromCode(resp.Current.WeatherCode),
	}, nil
}

// WeatherFor resolves a place name and fetches its current conditions.
func (s *WeatherService) WeatherFor(ctx context.Context, location string) (domain.WeatherData, error) {
	coords, err := s.Geocode(ctx, location)
	if err != nil {
		return domain.WeatherData{}, err
	}

	weather, err := s.CurrentWeather(ctx, coords.Lat, coords.Lon)
	if err != nil {
		return domain.WeatherData{}, err
	}
	weather.Location = coords.DisplayName
	return weather, nil
}

func (s *WeatherService) getJSON(ctx context.Context, rawURL string, out any) error {
	req, err := http.NewRequestWithContext(ctx, http.MethodGet, rawURL, nil)
	if err != nil {
		return fmt.Errorf("failed to create request: %w", err)
	}

	resp, err := s.httpClient.Do(req)
	if err != nil {
		return err
	}
	defer resp.Body.Close()

	if resp.StatusCode != http.StatusOK {
		return fmt.Errorf("unexpected status %d", resp.StatusCode)
	}
	if err := json.NewDecoder(resp.Body).Decode(out); err != nil {
		return fmt.Errorf("failed to decode response: %w", err)
	}
	return nil
}

// conditionFromCode maps WMO weather interpretation codes to condition labels
func conditionFromCode(code int) string {
	switch {
	case code == 0:
		return "Clear Sky"
	case code >= 1 && code <= 3:
		return "Partly Cloudy"
	case code == 45 || code == 48:
		return "Foggy"
	case code >= 51 && code <= 55:
		return "Drizzle"
	case code >= 61 && code <= 65:
		return "Rainy"
	case code >= 80 && code <= 82:
		return "Showers"
	case code >= 95:
		return "Thunderstorm"
	default:
		return "Cloudy"
	}
}

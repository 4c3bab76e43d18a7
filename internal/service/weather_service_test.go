package service

import (
	"context"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func newTestWeatherService(geocodeBody, forecastBody string) (*WeatherService, func()) {
	geo := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.Header().Set("Content-Type", "application/json")
		w.Write([]byte(geocodeBody))
	}))
	fc := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.Header().Set("Content-Type", "application/json")
		w.Write([]byte(forecastBody))
	}))

	svc := NewWeatherService()
	svc.geocodingURL = geo.URL
	svc.forecastURL = fc.URL
	return svc, func() {
		geo.Close()
		fc.Close()
	}
}

func TestGeocode_BuildsDisplayName(t *testing.T) {
	svc, done := newTestWeatherService(
		`{"results":[{"latitude":18.52,"longitude":73.86,"name":"Pune","admin1":"Maharashtra","country_code":"IN"}]}`, `{}`)
	defer done()

	coords, err := svc.Geocode(context.Background(), "Pune")
	require.NoError(t, err)
	assert.Equal(t, 18.52, coords.Lat)
	assert.Equal(t, 73.86, coords.Lon)
	assert.Equal(t, "Pune, Maharashtra", coords.DisplayName)
}

func TestGeocode_FallsBackToCountryCode(t *testing.T) {
	svc, done := newTestWeatherService(
		`{"results":[{"latitude":1.29,"longitude":103.85,"name":"Singapore","admin1":"","country_code":"SG"}]}`, `{}`)
	defer done()

	coords, err := svc.Geocode(context.Background(), "Singapore")
	require.NoError(t, err)
	assert.Equal(t, "Singapore, SG", coords.DisplayName)
}

func TestGeocode_NoResults(t *testing.T) {
	svc, done := newTestWeatherService(`{"results":[]}`, `{}`)
	defer done()

	_, err := svc.Geocode(context.Background(), "Nowhereville")
	assert.ErrorIs(t, err, ErrLocationNotFound)
}

func TestCurrentWeather_MapsFields(t *testing.T) {
	svc, done := newTestWeatherService(`{}`,
		`{"current":{"temperature_2m":27.6,"relative_humidity_2m":71,"rain":0.4,"wind_speed_10m":9.3,"weather_code":61}}`)
	defer done()

	weather, err := svc.CurrentWeather(context.Background(), 18.52, 73.86)
	require.NoError(t, err)
	assert.Equal(t, 28.0, weather.Temperature)
	assert.Equal(t, 71, weather.Humidity)
	assert.Equal(t, 0.4, weather.Rainfall)
	assert.Equal(t, 9.3, weather.WindSpeed)
	assert.Equal(t, "Rainy", weather.Condition)
	assert.Empty(t, weather.Location)
}

func TestWeatherFor_ComposesGeocodeAndForecast(t *testing.T) {
	svc, done := newTestWeatherService(
		`{"results":[{"latitude":18.52,"longitude":73.86,"name":"Pune","admin1":"Maharashtra","country_code":"IN"}]}`,
		`{"current":{"temperature_2m":31.2,"relative_humidity_2m":48,"rain":0,"wind_speed_10m":14,"weather_code":0}}`)
	defer done()

	weather, err := svc.WeatherFor(context.Background(), "Pune")
	require.NoError(t, err)
	assert.Equal(t, "Pune, Maharashtra", weather.Location)
	assert.Equal(t, 31.0, weather.Temperature)
	assert.Equal(t, "Clear Sky", weather.Condition)
}

func TestWeatherFor_ForecastHTTPError(t *testing.T) {
	geo := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.Write([]byte(`{"results":[{"latitude":1,"longitude":2,"name":"X","admin1":"Y","country_code":"Z"}]}`))
	}))
	defer geo.Close()
	fc := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.WriteHeader(http.StatusBadGateway)
	}))
	defer fc.Close()

	svc := NewWeatherService()
	svc.geocodingURL = geo.URL
	svc.forecastURL = fc.URL

	_, err := svc.WeatherFor(context.Background(), "X")
	assert.Error(t, err)
}

func TestConditionFromCode(t *testing.T) {
	cases := []struct {
		code int
		want string
	}{
		{0, "Clear Sky"},
		{1, "Partly Cloudy"},
		{2, "Partly Cloudy"},
		{3, "Partly Cloudy"},
		{45, "Foggy"},
		{48, "Foggy"},
		{51, "Drizzle"},
		{55, "Drizzle"},
		{61, "Rainy"},
		{65, "Rainy"},
		{80, "Showers"},
		{82, "Showers"},
		{95, "Thunderstorm"},
		{99, "Thunderstorm"},
		{71, "Cloudy"},
	}
	for _, tc := range cases {
		assert.Equal(t, tc.want, conditionFromCode(tc.code), "code %d", tc.code)
	}
}

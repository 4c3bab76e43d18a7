package domain

// WeatherData represents current conditions for a location. It is fetched
// per view and never persisted.
type WeatherData struct {
	Location    string  `json:"location"`
	Temperature float64 `json:"temperature"` // °C
	Humidity    int     `json:"humidity"`    // %
	Rainfall    float64 `json:"rainfall"`    // mm
	WindSpeed   float64 `json:"windSpeed"`   // km/h
	Condition   string  `json:"condition"`
}

// DefaultWeather is the degraded-but-functional stand-in rendered when the
// weather gateway fails or no location is known yet.
func DefaultWeather(location string) WeatherData {
	if location == "" {
		location = "Home Farm"
	}
	return WeatherData{
		Location:    location,
		Temperature: 24,
		Humidity:    65,
		Rainfall:    0,
		WindSpeed:   12,
		Condition:   "Partly Cloudy",
	}
}

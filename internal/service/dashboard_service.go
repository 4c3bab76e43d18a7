package service

import (
	"context"
	"log"
	"sync"
	"time"

	"github.com/pavans5097/EVS-pro/internal/domain"
)

// DashboardService aggregates the farm overview: tracked crops with their
// countdown metrics, current weather for the first crop's location, and a
// daily tip for the first crop.
type DashboardService struct {
	repo     domain.CropRepository
	weather  WeatherProvider
	advisory Advisor
}

// NewDashboardService creates a new dashboard service
func NewDashboardService(repo domain.CropRepository, weather WeatherProvider, advisory Advisor) *DashboardService {
	return &DashboardService{
		repo:     repo,
		weather:  weather,
		advisory: advisory,
	}
}

// GetOverview fetches weather and the daily tip concurrently. Either call
// failing degrades only its own slot; the overview always renders.
func (s *DashboardService) GetOverview(ctx context.Context) (domain.DashboardData, error) {
	crops, err := s.repo.List(ctx)
	if err != nil {
		return domain.DashboardData{}, err
	}

	now := time.Now()
	summaries := make([]domain.CropSummary, 0, len(crops))
	for _, c := range crops {
		summaries = append(summaries, domain.CropSummary{
			Crop:     c,
			Timeline: c.Timeline(now),
		})
	}

	data := domain.DashboardData{
		Crops:     summaries,
		Weather:   domain.DefaultWeather(""),
		Timestamp: now,
	}
	if len(crops) == 0 {
		return data, nil
	}

	first := crops[0]
	data.Weather = domain.DefaultWeather(first.Location)

	var (
		wg      sync.WaitGroup
		mu      sync.Mutex
		weather domain.WeatherData
		gotW    bool
		tip     string
	)

	wg.Add(1)
	go func() {
		defer wg.Done()
		w, err := s.weather.WeatherFor(ctx, first.Location)
		mu.Lock()
		if err != nil {
			log.Printf("dashboard: weather fetch failed for %q: %v", first.Location, err)
		} else {
			weather = w
			gotW = true
		}
		mu.Unlock()
	}()

	wg.Add(1)
	go func() {
		defer wg.Done()
		// The tip is generated against the default conditions; the live
		// weather fetch runs in parallel and may not have landed yet.
		t := s.advisory.DailyTip(ctx, first, domain.DefaultWeather(first.Location))
		mu.Lock()
		tip = t
		mu.Unlock()
	}()

	wg.Wait()

	if gotW {
		data.Weather = weather
	}
	data.DailyTip = tip
	return data, nil
}

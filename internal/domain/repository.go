package domain

import (
	"context"
	"time"
)

// DashboardData aggregates everything the farm overview screen shows.
type DashboardData struct {
	Crops     []CropSummary `json:"crops"`
	Weather   WeatherData   `json:"weather"`
	DailyTip  string        `json:"dailyTip,omitempty"`
	Timestamp time.Time     `json:"timestamp"`
}

// CropSummary is a crop plus its derived countdown metrics.
type CropSummary struct {
	Crop
	Timeline TimelineProgress `json:"timeline"`
}

// CropRepository defines the interface for crop persistence.
// This follows the Dependency Inversion Principle - domain defines the interface.
type CropRepository interface {
	// List returns the full collection in insertion order. A missing or
	// malformed store reads as an empty collection, never an error.
	List(ctx context.Context) ([]Crop, error)

	// Append adds one crop to the end of the collection. The write is a
	// read-modify-write of the whole collection and is not isolated
	// against concurrent writers; the last writer wins.
	Append(ctx context.Context, crop Crop) error

	// FindByID returns the crop with the given id, or ErrCropNotFound.
	FindByID(ctx context.Context, id string) (Crop, error)

	// Health checks store availability.
	Health(ctx context.Context) error
}

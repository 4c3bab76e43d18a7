package domain

import (
	"errors"
	"fmt"
	"strings"
	"time"
)

// DateLayout is the wire and storage format for all crop dates.
const DateLayout = "2006-01-02"

// CropStatus is the lifecycle state of a tracked planting.
type CropStatus string

const (
	StatusPlanned   CropStatus = "Planned"
	StatusGrowing   CropStatus = "Growing"
	StatusHarvested CropStatus = "Harvested"
)

// Crop represents one tracked planting.
type Crop struct {
	ID                  string     `json:"id"`
	Name                string     `json:"name"`
	Variety             string     `json:"variety,omitempty"`
	Area                float64    `json:"area"` // acres
	Location            string     `json:"location"`
	SowingDate          string     `json:"sowingDate"`
	ExpectedHarvestDate string     `json:"expectedHarvestDate"`
	Status              CropStatus `json:"status"`
	Notes               string     `json:"notes,omitempty"`
}

// ErrCropNotFound is returned when a crop id is not present in the store.
// A stale link is a normal outcome, not a failure; delivery maps it to an
// empty state rather than an error surface.
var ErrCropNotFound = errors.New("crop not found")

// Validate enforces the input-boundary rules: required fields present,
// area positive, sowing date well-formed. The harvest date is accepted
// as-is (it comes from an external estimator) and is deliberately not
// checked against the sowing date.
func (c Crop) Validate() error {
	if strings.TrimSpace(c.Name) == "" {
		return errors.New("crop name is required")
	}
	if strings.TrimSpace(c.Location) == "" {
		return errors.New("location is required")
	}
	if c.Area <= 0 {
		return errors.New("area must be a positive number of acres")
	}
	if _, err := time.Parse(DateLayout, c.SowingDate); err != nil {
		return fmt.Errorf("sowing date must be YYYY-MM-DD: %w", err)
	}
	return nil
}

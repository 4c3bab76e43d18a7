package domain

import (
	"math"
	"time"

	"github.com/pavans5097/EVS-pro/pkg/utils"
)

// TimelineProgress is the derived countdown view of a crop's growing window.
type TimelineProgress struct {
	Percent  float64 `json:"percent"`  // 0..100
	DaysLeft int     `json:"daysLeft"` // >= 0
}

// Progress maps (sowing, harvest, now) to an elapsed fraction and a day
// countdown. The total window is floored at one millisecond so equal or
// inverted dates never divide by zero; elapsed is floored at zero so a
// future sowing date reads as 0%.
func Progress(sowing, harvest, now time.Time) TimelineProgress {
	total := harvest.Sub(sowing)
	if total < time.Millisecond {
		total = time.Millisecond
	}

	elapsed := now.Sub(sowing)
	if elapsed < 0 {
		elapsed = 0
	}

	percent := utils.Clamp(float64(elapsed)/float64(total)*100, 0, 100)

	daysLeft := int(math.Ceil(harvest.Sub(now).Hours() / 24))
	if daysLeft < 0 {
		daysLeft = 0
	}

	return TimelineProgress{Percent: percent, DaysLeft: daysLeft}
}

// Timeline computes the progress view from the crop's stored date strings.
// Unparseable dates read as an empty timeline rather than an error; a crop
// with malformed dates still renders.
func (c Crop) Timeline(now time.Time) TimelineProgress {
	sowing, err := time.Parse(DateLayout, c.SowingDate)
	if err != nil {
		return TimelineProgress{}
	}
	harvest, err := time.Parse(DateLayout, c.ExpectedHarvestDate)
	if err != nil {
		return TimelineProgress{}
	}
	return Progress(sowing, harvest, now)
}

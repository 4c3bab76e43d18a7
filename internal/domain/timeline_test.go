package domain

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func date(s string) time.Time {
	t, err := time.Parse(DateLayout, s)
	if err != nil {
		panic(err)
	}
	return t
}

func TestProgress_MidSeason(t *testing.T) {
	sowing := date("2024-01-01")
	harvest := date("2024-01-11")
	now := date("2024-01-06")

	p := Progress(sowing, harvest, now)
	assert.InDelta(t, 50.0, p.Percent, 0.01)
	assert.Equal(t, 5, p.DaysLeft)
}

func TestProgress_BoundsWithinWindow(t *testing.T) {
	sowing := date("2024-03-01")
	harvest := date("2024-07-01")

	prev := -1.0
	for d := sowing; !d.After(harvest); d = d.AddDate(0, 0, 7) {
		p := Progress(sowing, harvest, d)
		assert.GreaterOrEqual(t, p.Percent, 0.0)
		assert.LessOrEqual(t, p.Percent, 100.0)
		// Monotonically non-decreasing as now advances.
		assert.GreaterOrEqual(t, p.Percent, prev)
		assert.GreaterOrEqual(t, p.DaysLeft, 0)
		prev = p.Percent
	}
}

func TestProgress_ZeroLengthWindow(t *testing.T) {
	d := date("2024-05-01")

	p := Progress(d, d, d)
	assert.False(t, p.Percent != p.Percent, "percent must be finite")
	assert.LessOrEqual(t, p.Percent, 100.0)
	assert.Equal(t, 0, p.DaysLeft)
}

func TestProgress_InvertedDates(t *testing.T) {
	sowing := date("2024-06-01")
	harvest := date("2024-05-01")
	now := date("2024-06-15")

	p := Progress(sowing, harvest, now)
	assert.GreaterOrEqual(t, p.Percent, 0.0)
	assert.LessOrEqual(t, p.Percent, 100.0)
	assert.Equal(t, 0, p.DaysLeft)
}

func TestProgress_NowBeforeSowing(t *testing.T) {
	sowing := date("2024-06-01")
	harvest := date("2024-09-01")
	now := date("2024-05-01")

	p := Progress(sowing, harvest, now)
	assert.Equal(t, 0.0, p.Percent)
	// Plain day count to harvest, not bounded by the window.
	assert.Equal(t, 123, p.DaysLeft)
}

func TestProgress_DaysLeftFloorsAtZero(t *testing.T) {
	sowing := date("2024-01-01")
	harvest := date("2024-04-01")
	now := date("2025-01-01")

	p := Progress(sowing, harvest, now)
	assert.Equal(t, 0, p.DaysLeft)
	assert.Equal(t, 100.0, p.Percent)
}

func TestCropTimeline_MalformedDates(t *testing.T) {
	c := Crop{SowingDate: "not-a-date", ExpectedHarvestDate: "2024-05-01"}
	p := c.Timeline(time.Now())
	assert.Equal(t, TimelineProgress{}, p)
}

func TestCropValidate(t *testing.T) {
	valid := Crop{
		Name:       "Wheat",
		Area:       2.5,
		Location:   "Pune",
		SowingDate: "2024-01-01",
	}
	require.NoError(t, valid.Validate())

	cases := map[string]Crop{
		"missing name":     {Area: 1, Location: "Pune", SowingDate: "2024-01-01"},
		"missing location": {Name: "Wheat", Area: 1, SowingDate: "2024-01-01"},
		"zero area":        {Name: "Wheat", Location: "Pune", SowingDate: "2024-01-01"},
		"negative area":    {Name: "Wheat", Area: -3, Location: "Pune", SowingDate: "2024-01-01"},
		"bad sowing date":  {Name: "Wheat", Area: 1, Location: "Pune", SowingDate: "01/01/2024"},
	}
	for name, c := range cases {
		t.Run(name, func(t *testing.T) {
			assert.Error(t, c.Validate())
		})
	}
}

func TestCropValidate_DoesNotCrossCheckDates(t *testing.T) {
	// Harvest before sowing is accepted; the estimator owns that value.
	c := Crop{
		Name:                "Wheat",
		Area:                1,
		Location:            "Pune",
		SowingDate:          "2024-06-01",
		ExpectedHarvestDate: "2024-01-01",
	}
	assert.NoError(t, c.Validate())
}

// Package estimator resolves expected harvest dates. The advisory gateway
// gives the best answer when it is reachable; a local maturity table
// guarantees a usable date when it is not.
package estimator

import (
	"strings"
	"time"

	"github.com/pavans5097/EVS-pro/internal/domain"
)

// defaultMaturityDays is used when no table entry matches the crop name.
const defaultMaturityDays = 120

// maturityTable maps crop-name substrings to typical days to maturity for
// the Indian growing season. Scanned in order; first match wins.
var maturityTable = []struct {
	key  string
	days int
}{
	{"wheat", 120},
	{"rice", 130},
	{"paddy", 130},
	{"corn", 100},
	{"maize", 100},
	{"cotton", 160},
	{"sugarcane", 365},
	{"potato", 90},
	{"tomato", 80},
	{"onion", 100},
	{"soybean", 100},
	{"chickpea", 100},
	{"groundnut", 110},
	{"mustard", 100},
}

// MaturityDays returns the typical days-to-maturity for a crop name.
func MaturityDays(cropName string) int {
	name := strings.ToLower(strings.TrimSpace(cropName))
	for _, entry := range maturityTable {
		if strings.Contains(name, entry.key) {
			return entry.days
		}
	}
	return defaultMaturityDays
}

// FallbackHarvestDate computes the local harvest-date estimate: sowing date
// plus the crop's typical maturity period.
func FallbackHarvestDate(cropName string, sowing time.Time) time.Time {
	return sowing.AddDate(0, 0, MaturityDays(cropName))
}

// FallbackHarvestDateString is FallbackHarvestDate over wire-format dates.
// An unparseable sowing date yields an empty string.
func FallbackHarvestDateString(cropName, sowingDate string) string {
	sowing, err := time.Parse(domain.DateLayout, sowingDate)
	if err != nil {
		return ""
	}
	return FallbackHarvestDate(cropName, sowing).Format(domain.DateLayout)
}

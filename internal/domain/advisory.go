package domain

// Advisory result types. These are produced per request by the advisory
// gateway and discarded with the view; nothing here is persisted.

// PestSeverity grades a pest or disease risk.
type PestSeverity string

const (
	SeverityLow    PestSeverity = "Low"
	SeverityMedium PestSeverity = "Medium"
	SeverityHigh   PestSeverity = "High"
)

// PestAlert describes one pest or disease risk for a crop.
type PestAlert struct {
	PestName    string       `json:"pestName"`
	Severity    PestSeverity `json:"severity"`
	Description string       `json:"description"`
	Prevention  string       `json:"prevention"`
}

// FertilizerRecommendation is one stage of a fertilizer schedule.
type FertilizerRecommendation struct {
	Stage      string `json:"stage"`
	Fertilizer string `json:"fertilizer"`
	Quantity   string `json:"quantity"`
	Reason     string `json:"reason"`
}

// PriceTrend is the direction of a market price.
type PriceTrend string

const (
	TrendUp     PriceTrend = "up"
	TrendDown   PriceTrend = "down"
	TrendStable PriceTrend = "stable"
)

// PricePoint is one entry of a price history series.
type PricePoint struct {
	Date  string  `json:"date"`
	Price float64 `json:"price"`
}

// MarketPrice is the current quote and recent history for one crop.
type MarketPrice struct {
	Crop         string       `json:"crop"`
	CurrentPrice float64      `json:"currentPrice"`
	Unit         string       `json:"unit"`
	Trend        PriceTrend   `json:"trend"`
	Region       string       `json:"region"`
	History      []PricePoint `json:"history"`
}

// NextCrop is one rotation candidate.
type NextCrop struct {
	CropName string   `json:"cropName"`
	Reason   string   `json:"reason"`
	Benefits []string `json:"benefits"`
}

// RotationPlan suggests follow-on crops after a harvest.
type RotationPlan struct {
	CurrentCrop        string     `json:"currentCrop"`
	SuggestedNextCrops []NextCrop `json:"suggestedNextCrops"`
}

// CropSuggestion is one sowing recommendation for a location and date.
type CropSuggestion struct {
	CropName         string  `json:"cropName"`
	Variety          string  `json:"variety"`
	Reason           string  `json:"reason"`
	EstimatedYield   string  `json:"estimatedYield"`
	MarketOutlook    string  `json:"marketOutlook"`
	SuitabilityScore float64 `json:"suitabilityScore"` // 0-100
}

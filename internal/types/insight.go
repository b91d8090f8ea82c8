package types

import "time"

// DemandLevel is the hiring demand for an industry.
type DemandLevel string

// Demand levels
const (
	DemandHigh   DemandLevel = "High"
	DemandMedium DemandLevel = "Medium"
	DemandLow    DemandLevel = "Low"
)

// MarketOutlook is the overall direction of an industry.
type MarketOutlook string

// Market outlooks
const (
	OutlookPositive MarketOutlook = "Positive"
	OutlookNeutral  MarketOutlook = "Neutral"
	OutlookNegative MarketOutlook = "Negative"
)

// SalaryRange is the salary band of one role.
type SalaryRange struct {
	Role     string  `json:"role"`
	Min      float64 `json:"min"`
	Max      float64 `json:"max"`
	Median   float64 `json:"median"`
	Location string  `json:"location"`
}

// InsightData is the AI generated part of an industry insight.
type InsightData struct {
	SalaryRanges      []SalaryRange `json:"salaryRanges"`
	GrowthRate        float64       `json:"growthRate"`
	DemandLevel       DemandLevel   `json:"demandLevel"`
	TopSkills         []string      `json:"topSkills"`
	MarketOutlook     MarketOutlook `json:"marketOutlook"`
	KeyTrends         []string      `json:"keyTrends"`
	RecommendedSkills []string      `json:"recommendedSkills"`
}

// IndustryInsight is a stored insight for one industry.
type IndustryInsight struct {
	Industry string `json:"industry"`
	InsightData
	LastUpdated time.Time `json:"last_updated"`
	NextUpdate  time.Time `json:"next_update"`
}

// InsightRefreshInterval is how long an insight stays fresh.
const InsightRefreshInterval = 7 * 24 * time.Hour

// IsStale reports whether the insight is due for regeneration at now.
func (i *IndustryInsight) IsStale(now time.Time) bool {
	return !now.Before(i.NextUpdate)
}
